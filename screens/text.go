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
	"image/color"

	"github.com/aamcrae/panel/display"
	"github.com/aamcrae/panel/input"
	"github.com/aamcrae/panel/screen"
)

// Palette used by the text screen.
var Palette = []color.RGBA{
	{255, 255, 255, 255}, // white
	{255, 0, 0, 255},     // red
	{0, 255, 0, 255},     // green
	{0, 0, 255, 255},     // blue
	{255, 255, 0, 255},   // yellow
	{255, 0, 255, 255},   // magenta
	{0, 255, 255, 255},   // cyan
}

// Text shows a fixed message. A short click changes the colour,
// and a long click resets it to white.
type Text struct {
	screen.Nop
	font    *display.Font
	message string
	colour  int
}

// NewText creates a screen showing message.
func NewText(f *display.Font, message string) *Text {
	return &Text{font: f, message: message}
}

func (t *Text) Name() string {
	return "text"
}

func (t *Text) Handle(ev input.Event) bool {
	switch ev.Type {
	case input.ShortClick:
		t.colour = (t.colour + 1) % len(Palette)
		return true
	case input.LongClick:
		t.colour = 0
		return true
	}
	return false
}

// Colour returns the current text colour.
func (t *Text) Colour() color.RGBA {
	return Palette[t.colour]
}

func (t *Text) Draw(s display.Surface) {
	s.Clear()
	s.DrawText(t.font, 2, 12, Palette[t.colour], t.message)
}
