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

package display

import (
	"errors"
	"image"
	"log"
)

// Output receives each finished frame. The frame is only valid for the
// duration of the call, so an Output that keeps it must copy it.
type Output interface {
	Show(img *image.RGBA) error
	Close() error
}

// Multi sends frames to several outputs.
type Multi []Output

func (m Multi) Show(img *image.RGBA) error {
	var errs []error
	for _, o := range m {
		if err := o.Show(img); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, o := range m {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Display is a double buffered frame store. Screens draw onto one canvas
// while the other holds the last presented frame.
type Display struct {
	Server  *Server // HTTP preview, if configured
	bufs    [2]*Canvas
	out     Output
	closers []func() error
	lastErr string
	Frames  int // Number of frames presented
}

// New creates a display with the given size and output.
// A nil output discards frames.
func New(w, h int, out Output) *Display {
	d := new(Display)
	d.bufs[0] = NewCanvas(w, h)
	d.bufs[1] = NewCanvas(w, h)
	d.out = out
	return d
}

// Canvas returns the surface to draw the first frame on.
func (d *Display) Canvas() Surface {
	return d.bufs[0]
}

// Present shows the frame drawn on s, and returns the surface
// to draw the next frame on.
// Output errors are logged once (until the error changes), and
// otherwise ignored so that a failing panel does not stop the display.
func (d *Display) Present(s Surface) Surface {
	if d.out != nil {
		if err := d.out.Show(s.Image()); err != nil {
			if e := err.Error(); e != d.lastErr {
				log.Printf("display: %v", err)
				d.lastErr = e
			}
		} else {
			d.lastErr = ""
		}
	}
	d.Frames++
	if s == Surface(d.bufs[0]) {
		return d.bufs[1]
	}
	return d.bufs[0]
}

// Close closes the outputs and any other resources held by the display.
func (d *Display) Close() error {
	var errs []error
	if d.out != nil {
		errs = append(errs, d.out.Close())
	}
	for _, c := range d.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
