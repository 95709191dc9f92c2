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

// Package screens holds the screens shown on the panel.
package screens

import (
	"image/color"
	"time"

	"github.com/aamcrae/panel/display"
	"github.com/aamcrae/panel/screen"
)

const clockRefresh = 200 * time.Millisecond

var (
	white = color.RGBA{255, 255, 255, 255}
	cyan  = color.RGBA{0, 255, 255, 255}
)

// Clock shows the time of day as HH:MM:SS.
type Clock struct {
	screen.Nop
	font  *display.Font
	loc   *time.Location
	now   func() time.Time
	accum time.Duration
	text  string
}

// NewClock creates a clock showing the time in loc.
func NewClock(f *display.Font, loc *time.Location) *Clock {
	c := new(Clock)
	c.font = f
	c.loc = loc
	c.now = time.Now
	c.refresh()
	return c
}

func (c *Clock) Name() string {
	return "clock"
}

// OnEnter refreshes the time immediately.
func (c *Clock) OnEnter() {
	c.refresh()
}

// Update refreshes the time several times a second so the
// seconds change promptly.
func (c *Clock) Update(elapsed time.Duration) {
	c.accum += elapsed
	if c.accum >= clockRefresh {
		c.refresh()
	}
}

func (c *Clock) refresh() {
	c.accum = 0
	c.text = c.now().In(c.loc).Format("15:04:05")
}

func (c *Clock) Draw(s display.Surface) {
	s.Clear()
	s.DrawText(c.font, 2, 12, white, c.text)
}
