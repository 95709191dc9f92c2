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

// Package display provides the drawing surface for screens, and
// presents finished frames to the panel and other outputs.
package display

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Surface is a drawable frame.
type Surface interface {
	// Clear sets every pixel to black.
	Clear()
	// DrawText draws a string with its baseline at y.
	DrawText(f *Font, x, y int, c color.Color, s string)
	// DrawImage draws an image with its top left corner at x, y.
	DrawImage(x, y int, img image.Image)
	// SetPixel sets a single pixel. Points outside the surface are ignored.
	SetPixel(x, y int, c color.Color)
	// Bounds returns the size of the surface.
	Bounds() image.Rectangle
	// Image returns the frame image.
	Image() *image.RGBA
}

// Canvas is a Surface drawn with a gg context.
type Canvas struct {
	img *image.RGBA
	dc  *gg.Context
}

// NewCanvas creates a canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	c := new(Canvas)
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	c.dc = gg.NewContextForRGBA(c.img)
	return c
}

func (c *Canvas) Clear() {
	c.dc.SetColor(color.Black)
	c.dc.Clear()
}

func (c *Canvas) DrawText(f *Font, x, y int, col color.Color, s string) {
	if f.tiny != nil {
		tinyfont.WriteLine(c.Displayer(), f.tiny, int16(x), int16(y), s, rgba(col))
		return
	}
	c.dc.SetFontFace(f.face)
	c.dc.SetColor(col)
	c.dc.DrawString(s, float64(x), float64(y))
}

func (c *Canvas) DrawImage(x, y int, img image.Image) {
	b := img.Bounds()
	xdraw.Draw(c.img, b.Sub(b.Min).Add(image.Pt(x, y)), img, b.Min, xdraw.Over)
}

func (c *Canvas) SetPixel(x, y int, col color.Color) {
	if !image.Pt(x, y).In(c.img.Rect) {
		return
	}
	c.img.Set(x, y, col)
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Rect
}

func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Displayer returns the canvas as a TinyGo display driver, so that
// bitmap fonts and other TinyGo drawing code can render onto it.
func (c *Canvas) Displayer() drivers.Displayer {
	return displayer{c}
}

type displayer struct {
	c *Canvas
}

func (d displayer) Size() (x, y int16) {
	r := d.c.img.Rect
	return int16(r.Dx()), int16(r.Dy())
}

func (d displayer) SetPixel(x, y int16, c color.RGBA) {
	d.c.SetPixel(int(x), int(y), c)
}

func (d displayer) Display() error {
	return nil
}

func rgba(c color.Color) color.RGBA {
	if v, ok := c.(color.RGBA); ok {
		return v
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
