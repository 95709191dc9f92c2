// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// HTTP server for panel images

package display

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log"
	"net/http"
	"sync"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// Minimum scale to draw pixels as round LEDs.
const ledScale = 4

// Server is an Output that serves the most recent frame over HTTP,
// scaled up so that the small panel is easily viewed.
type Server struct {
	Scale   int // Image scale factor
	Refresh int // Page refresh rate in seconds
	mu      sync.Mutex
	frame   *image.RGBA
	srv     *http.Server
}

// NewServer creates a frame server listening on port.
func NewServer(port, scale, refresh int) *Server {
	s := new(Server)
	if scale < 1 {
		scale = 1
	}
	s.Scale = scale
	s.Refresh = refresh
	s.srv = &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: s.Handler()}
	return s
}

// Show keeps a copy of the frame.
func (s *Server) Show(img *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil || s.frame.Rect != img.Rect {
		s.frame = image.NewRGBA(img.Rect)
	}
	copy(s.frame.Pix, img.Pix)
	return nil
}

// Handler returns the HTTP handler for the preview pages.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.page)
	mux.HandleFunc("/frame.jpg", s.image(func(w http.ResponseWriter, img image.Image) error {
		w.Header().Set("Content-Type", "image/jpeg")
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	}))
	mux.HandleFunc("/frame.png", s.image(func(w http.ResponseWriter, img image.Image) error {
		w.Header().Set("Content-Type", "image/png")
		return png.Encode(w, img)
	}))
	return mux
}

// ListenAndServe runs the server until Close is called.
func (s *Server) ListenAndServe() error {
	log.Printf("display: starting preview server on %s", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close shuts down the server.
func (s *Server) Close() error {
	return s.srv.Close()
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<html><head><title>Panel</title>")
	if s.Refresh > 0 {
		fmt.Fprintf(w, `<meta http-equiv="refresh" content="%d">`, s.Refresh)
	}
	fmt.Fprintf(w, `</head><body style="background:#222"><img src="/frame.png"></body></html>`)
}

func (s *Server) image(encode func(http.ResponseWriter, image.Image) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		img := s.render()
		if img == nil {
			http.Error(w, "no frame", http.StatusServiceUnavailable)
			return
		}
		if err := encode(w, img); err != nil {
			log.Printf("display: error writing image: %v", err)
		}
	}
}

// render returns the latest frame scaled up. At larger scales each
// pixel is drawn as a round LED.
func (s *Server) render() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		return nil
	}
	b := s.frame.Rect
	w, h := b.Dx()*s.Scale, b.Dy()*s.Scale
	if s.Scale < ledScale {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.NearestNeighbor.Scale(dst, dst.Rect, s.frame, b, xdraw.Src, nil)
		return dst
	}
	c := gg.NewContext(w, h)
	c.SetColor(color.Black)
	c.Clear()
	r := float64(s.Scale) * 0.45
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c.SetColor(s.frame.At(x, y))
			cx := (float64(x-b.Min.X) + 0.5) * float64(s.Scale)
			cy := (float64(y-b.Min.Y) + 0.5) * float64(s.Scale)
			c.DrawCircle(cx, cy, r)
			c.Fill()
		}
	}
	return c.Image()
}
