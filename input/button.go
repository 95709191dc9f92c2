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

// Push button press classifier.

package input

import (
	"time"
)

// Button tracks a push button and classifies each press by how
// long it was held. Classification is done on release, so that each
// press and release generates exactly one event.
// Edges within the debounce interval of the last accepted edge are ignored.
type Button struct {
	idle      bool          // Level when not pressed
	debounce  time.Duration // Minimum time between accepted edges
	long      time.Duration // Minimum hold time of a long click
	pressed   bool
	pressedAt time.Time // Only valid when pressed
	lastEdge  time.Time // Time of last accepted edge
	prev      bool      // Level at last accepted edge
}

// NewButton creates a button classifier. With a pull-up, the button
// idles HIGH and is pressed when LOW; with a pull-down the reverse.
func NewButton(pullUp bool, debounce, long time.Duration) *Button {
	b := new(Button)
	b.idle = pullUp
	b.prev = pullUp
	b.debounce = debounce
	b.long = long
	return b
}

// Reset sets the current level (usually from the initial read of the pin).
// A button that is held down at startup is not treated as pressed.
func (b *Button) Reset(level bool) {
	b.prev = level
	b.pressed = false
}

// Pressed reports whether the button is currently held.
func (b *Button) Pressed() bool {
	return b.pressed
}

// Update processes the current level of the button pin, and returns
// an event when a press has been released.
func (b *Button) Update(level bool, now time.Time) (Event, bool) {
	if level == b.prev {
		return Event{}, false
	}
	if now.Sub(b.lastEdge) < b.debounce {
		return Event{}, false
	}
	b.lastEdge = now
	b.prev = level
	if level != b.idle {
		if !b.pressed {
			b.pressed = true
			b.pressedAt = now
		}
		return Event{}, false
	}
	if !b.pressed {
		return Event{}, false
	}
	b.pressed = false
	if now.Sub(b.pressedAt) >= b.long {
		return LongClickEvent(), true
	}
	return ShortClickEvent(), true
}
