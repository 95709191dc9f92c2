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
	"fmt"
	"time"

	"github.com/aamcrae/panel/display"
	"github.com/aamcrae/panel/screen"
)

// Countdown shows the number of seconds left until local midnight.
type Countdown struct {
	screen.Nop
	font  *display.Font
	loc   *time.Location
	now   func() time.Time
	accum time.Duration
	text  string
}

// NewCountdown creates a countdown to midnight in loc.
func NewCountdown(f *display.Font, loc *time.Location) *Countdown {
	c := new(Countdown)
	c.font = f
	c.loc = loc
	c.now = time.Now
	c.recompute()
	return c
}

func (c *Countdown) Name() string {
	return "countdown"
}

func (c *Countdown) OnEnter() {
	c.accum = 0
	c.recompute()
}

// Update recomputes the text once a second.
func (c *Countdown) Update(elapsed time.Duration) {
	c.accum += elapsed
	if c.accum >= time.Second {
		c.accum %= time.Second
		c.recompute()
	}
}

func (c *Countdown) recompute() {
	c.text = countdownText(c.now().In(c.loc))
}

// countdownText formats the time left in the day of now.
// Days with a daylight saving change are handled by time.Date.
func countdownText(now time.Time) string {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	left := int(midnight.Sub(now) / time.Second)
	if left < 0 {
		left = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d  (%d)", left/3600, (left%3600)/60, left%60, left)
}

func (c *Countdown) Draw(s display.Surface) {
	s.Clear()
	s.DrawText(c.font, 1, 12, cyan, "Seconds left today:")
	s.DrawText(c.font, 1, 26, cyan, c.text)
}
