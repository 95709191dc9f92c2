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

package screens

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/aamcrae/panel/display"
	"github.com/aamcrae/panel/input"
	"github.com/aamcrae/panel/screen"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// Image shows one of a list of image files scaled to the panel.
// A short click toggles edit mode, in which rotating selects the image;
// outside edit mode rotation is left for screen navigation.
// A long click toggles inverted colours.
type Image struct {
	screen.Nop
	files  []string
	size   image.Point
	scaler xdraw.Scaler
	index  int
	edit   bool
	invert bool
	cache  map[string]*image.RGBA
	invBuf *image.RGBA
}

// NewImage creates an image screen. The files are checked now, and
// decoded and scaled when first shown.
func NewImage(files []string, w, h int, nearest bool) (*Image, error) {
	if len(files) == 0 {
		return nil, errors.New("image: no image files")
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return nil, fmt.Errorf("image: %w", err)
		}
	}
	im := new(Image)
	im.files = append([]string(nil), files...)
	im.size = image.Pt(w, h)
	im.scaler = xdraw.CatmullRom
	if nearest {
		im.scaler = xdraw.NearestNeighbor
	}
	im.cache = make(map[string]*image.RGBA)
	return im, nil
}

func (im *Image) Name() string {
	return "image"
}

func (im *Image) Handle(ev input.Event) bool {
	switch ev.Type {
	case input.ShortClick:
		im.edit = !im.edit
		return true
	case input.LongClick:
		im.invert = !im.invert
		return true
	case input.Rotate:
		if !im.edit {
			return false
		}
		n := len(im.files)
		switch {
		case ev.Delta > 0:
			im.index = (im.index + 1) % n
		case ev.Delta < 0:
			im.index = (im.index + n - 1) % n
		}
		return true
	}
	return false
}

// Index returns the index of the image shown.
func (im *Image) Index() int {
	return im.index
}

// load returns the scaled image, or nil if it cannot be decoded.
// Failures are cached so they are only logged once.
func (im *Image) load(f string) *image.RGBA {
	if img, ok := im.cache[f]; ok {
		return img
	}
	var dst *image.RGBA
	src, err := gg.LoadImage(f)
	if err != nil {
		log.Printf("image: %s: %v", f, err)
	} else {
		dst = image.NewRGBA(image.Rectangle{Max: im.size})
		im.scaler.Scale(dst, dst.Rect, src, src.Bounds(), xdraw.Src, nil)
	}
	im.cache[f] = dst
	return dst
}

func (im *Image) Draw(s display.Surface) {
	s.Clear()
	img := im.load(im.files[im.index])
	if img != nil {
		if im.invert {
			img = im.inverted(img)
		}
		s.DrawImage(0, 0, img)
	}
	if im.edit {
		s.SetPixel(0, 0, color.White)
	}
}

func (im *Image) inverted(img *image.RGBA) *image.RGBA {
	if im.invBuf == nil || im.invBuf.Rect != img.Rect {
		im.invBuf = image.NewRGBA(img.Rect)
	}
	for i := 0; i < len(img.Pix); i += 4 {
		im.invBuf.Pix[i] = 255 - img.Pix[i]
		im.invBuf.Pix[i+1] = 255 - img.Pix[i+1]
		im.invBuf.Pix[i+2] = 255 - img.Pix[i+2]
		im.invBuf.Pix[i+3] = 255
	}
	return im.invBuf
}
