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
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aamcrae/panel/display"
	"github.com/aamcrae/panel/input"
)

var allEvents = []input.Event{
	input.RotateEvent(1),
	input.RotateEvent(-1),
	input.ShortClickEvent(),
	input.LongClickEvent(),
}

func basicFont(t *testing.T) *display.Font {
	t.Helper()
	f, err := display.LoadFont("basic", 10)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func lit(img *image.RGBA) int {
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			n++
		}
	}
	return n
}

// writePNG writes a w by h image filled with c.
func writePNG(t *testing.T, name string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestClock(t *testing.T) {
	now := time.Date(2024, 3, 1, 13, 4, 5, 0, time.UTC)
	c := NewClock(basicFont(t), time.FixedZone("X", 3600))
	c.now = func() time.Time { return now }
	c.OnEnter()
	if c.text != "14:04:05" {
		t.Errorf("text %q, want 14:04:05", c.text)
	}
	now = now.Add(time.Second)
	c.Update(150 * time.Millisecond)
	if c.text != "14:04:05" {
		t.Errorf("text refreshed early: %q", c.text)
	}
	c.Update(50 * time.Millisecond)
	if c.text != "14:04:06" {
		t.Errorf("text %q, want 14:04:06", c.text)
	}
	now = now.Add(time.Second)
	c.OnEnter()
	if c.text != "14:04:07" {
		t.Errorf("text not refreshed on enter: %q", c.text)
	}
	for _, ev := range allEvents {
		if c.Handle(ev) {
			t.Errorf("clock consumed %s", ev)
		}
	}
	s := display.NewCanvas(64, 32)
	s.SetPixel(63, 31, white)
	c.Draw(s)
	if lit(s.Image()) == 0 || s.Image().RGBAAt(63, 31) != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("clock not drawn on a cleared surface")
	}
}

func TestCountdownText(t *testing.T) {
	loc := time.FixedZone("X", -6*3600)
	tests := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2024, 3, 1, 23, 59, 59, 0, loc), "00:00:01  (1)"},
		{time.Date(2024, 3, 1, 0, 0, 0, 0, loc), "24:00:00  (86400)"},
		{time.Date(2024, 3, 1, 12, 30, 15, 500_000_000, loc), "11:29:44  (41384)"},
		{time.Date(2024, 12, 31, 22, 0, 0, 0, loc), "02:00:00  (7200)"},
	}
	for _, tc := range tests {
		if got := countdownText(tc.now); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.now, got, tc.want)
		}
	}
}

func TestCountdownUpdate(t *testing.T) {
	now := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	c := NewCountdown(basicFont(t), time.UTC)
	c.now = func() time.Time { return now }
	c.OnEnter()
	if c.text != "01:00:00  (3600)" {
		t.Fatalf("text %q", c.text)
	}
	now = now.Add(2 * time.Second)
	c.Update(900 * time.Millisecond)
	if c.text != "01:00:00  (3600)" {
		t.Errorf("recomputed early: %q", c.text)
	}
	c.Update(300 * time.Millisecond)
	if c.text != "00:59:58  (3598)" {
		t.Errorf("text %q", c.text)
	}
	if c.accum != 200*time.Millisecond {
		t.Errorf("accumulator %s, want 200ms", c.accum)
	}
	for _, ev := range allEvents {
		if c.Handle(ev) {
			t.Errorf("countdown consumed %s", ev)
		}
	}
}

func TestText(t *testing.T) {
	tx := NewText(basicFont(t), "Salaam!")
	if tx.Colour() != Palette[0] {
		t.Errorf("initial colour %v", tx.Colour())
	}
	for i := 1; i <= len(Palette); i++ {
		if !tx.Handle(input.ShortClickEvent()) {
			t.Fatal("short click not consumed")
		}
		if tx.Colour() != Palette[i%len(Palette)] {
			t.Errorf("click %d: colour %v", i, tx.Colour())
		}
	}
	tx.Handle(input.ShortClickEvent())
	tx.Handle(input.ShortClickEvent())
	for _, d := range []int{1, -1} {
		if tx.Handle(input.RotateEvent(d)) {
			t.Errorf("rotate %d consumed", d)
		}
	}
	if tx.Colour() != Palette[2] {
		t.Errorf("rotate changed colour to %v", tx.Colour())
	}
	if !tx.Handle(input.LongClickEvent()) || tx.Colour() != Palette[0] {
		t.Errorf("long click did not reset colour")
	}
	s := display.NewCanvas(64, 32)
	tx.Draw(s)
	if lit(s.Image()) == 0 {
		t.Errorf("no text drawn")
	}
}

func TestImageErrors(t *testing.T) {
	if _, err := NewImage(nil, 64, 32, true); err == nil {
		t.Errorf("empty list accepted")
	}
	if _, err := NewImage([]string{filepath.Join(t.TempDir(), "none.png")}, 64, 32, true); err == nil {
		t.Errorf("missing file accepted")
	}
}

func TestImage(t *testing.T) {
	dir := t.TempDir()
	red, blue := filepath.Join(dir, "red.png"), filepath.Join(dir, "blue.png")
	writePNG(t, red, 4, 2, color.RGBA{255, 0, 0, 255})
	writePNG(t, blue, 8, 8, color.RGBA{0, 0, 255, 255})
	im, err := NewImage([]string{red, blue}, 16, 8, true)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	s := display.NewCanvas(16, 8)
	im.Draw(s)
	if got := s.Image().RGBAAt(15, 7); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("scaled pixel %v, want red", got)
	}
	// Rotation is not used outside edit mode.
	if im.Handle(input.RotateEvent(1)) || im.Index() != 0 {
		t.Errorf("rotate consumed outside edit mode")
	}
	if !im.Handle(input.ShortClickEvent()) || !im.edit {
		t.Fatalf("short click did not enter edit mode")
	}
	if !im.Handle(input.RotateEvent(1)) || im.Index() != 1 {
		t.Errorf("index %d, want 1", im.Index())
	}
	if !im.Handle(input.RotateEvent(1)) || im.Index() != 0 {
		t.Errorf("index %d, want 0 after wrap", im.Index())
	}
	if !im.Handle(input.RotateEvent(-1)) || im.Index() != 1 {
		t.Errorf("index %d, want 1 after wrap back", im.Index())
	}
	// A zero rotation is still taken in edit mode, without moving.
	if !im.Handle(input.Event{Type: input.Rotate}) || im.Index() != 1 {
		t.Errorf("zero rotate: index %d, want 1 and consumed", im.Index())
	}
	im.Draw(s)
	if got := s.Image().RGBAAt(8, 4); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("pixel %v, want blue", got)
	}
	if got := s.Image().RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("edit marker %v, want white", got)
	}
	if !im.Handle(input.LongClickEvent()) {
		t.Fatal("long click not consumed")
	}
	im.Handle(input.ShortClickEvent())
	im.Draw(s)
	if got := s.Image().RGBAAt(8, 4); got != (color.RGBA{255, 255, 0, 255}) {
		t.Errorf("inverted pixel %v, want yellow", got)
	}
	if got := s.Image().RGBAAt(0, 0); got != (color.RGBA{255, 255, 0, 255}) {
		t.Errorf("marker shown outside edit mode: %v", got)
	}
}

func TestImageBadFile(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0600); err != nil {
		t.Fatal(err)
	}
	im, err := NewImage([]string{bad}, 16, 8, false)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	s := display.NewCanvas(16, 8)
	im.Draw(s)
	im.Draw(s)
	if lit(s.Image()) != 0 {
		t.Errorf("undecodable image drew pixels")
	}
}
