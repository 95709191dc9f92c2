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

package display_test

import (
	"errors"
	"image"
	"testing"

	"github.com/aamcrae/panel/display"
)

type recorder struct {
	frames []*image.RGBA
	err    error
	closed bool
}

func (r *recorder) Show(img *image.RGBA) error {
	c := image.NewRGBA(img.Rect)
	copy(c.Pix, img.Pix)
	r.frames = append(r.frames, c)
	return r.err
}

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

func TestPresentSwapsBuffers(t *testing.T) {
	rec := new(recorder)
	d := display.New(64, 32, rec)
	s1 := d.Canvas()
	s1.Clear()
	s1.SetPixel(0, 0, red)
	s2 := d.Present(s1)
	if s2 == s1 {
		t.Fatalf("Present returned the presented surface")
	}
	s2.Clear()
	s3 := d.Present(s2)
	if s3 != s1 {
		t.Fatalf("buffers do not alternate")
	}
	if len(rec.frames) != 2 {
		t.Fatalf("%d frames shown, want 2", len(rec.frames))
	}
	if rec.frames[0].RGBAAt(0, 0) != red || rec.frames[1].RGBAAt(0, 0) == red {
		t.Errorf("frames shown out of order")
	}
	if d.Frames != 2 {
		t.Errorf("Frames = %d", d.Frames)
	}
	if err := d.Close(); err != nil || !rec.closed {
		t.Errorf("Close: %v, closed %v", err, rec.closed)
	}
}

func TestPresentOutputError(t *testing.T) {
	rec := &recorder{err: errors.New("panel gone")}
	d := display.New(8, 8, rec)
	s := d.Canvas()
	for i := 0; i < 3; i++ {
		s = d.Present(s)
	}
	if len(rec.frames) != 3 {
		t.Errorf("%d frames shown, want 3", len(rec.frames))
	}
}

func TestMulti(t *testing.T) {
	a, b := new(recorder), &recorder{err: errors.New("fail")}
	m := display.Multi{a, b}
	if err := m.Show(image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Errorf("error not returned")
	}
	if len(a.frames) != 1 || len(b.frames) != 1 {
		t.Errorf("frame not sent to all outputs")
	}
	m.Close()
	if !a.closed || !b.closed {
		t.Errorf("outputs not closed")
	}
}

func TestNilOutput(t *testing.T) {
	d := display.New(8, 8, nil)
	s := d.Present(d.Canvas())
	if s == nil {
		t.Fatalf("nil surface")
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
