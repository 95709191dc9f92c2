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

// Package screen coordinates the set of screens shown on the panel.
// Exactly one screen is active at a time; input events are offered to
// the active screen, and rotation the screen does not use moves to
// the next or previous screen.
package screen

import (
	"time"

	"github.com/aamcrae/panel/display"
	"github.com/aamcrae/panel/input"
)

// Screen is a single panel behaviour with private state.
type Screen interface {
	// Name identifies the screen in logs.
	Name() string
	// OnEnter is called when the screen becomes active.
	OnEnter()
	// OnExit is called when the screen stops being active.
	OnExit()
	// Handle offers an event to the screen, and returns true if the
	// screen used it. The screen must not change state if it
	// returns false.
	Handle(ev input.Event) bool
	// Update advances time based state by the time since the last frame.
	Update(elapsed time.Duration)
	// Draw renders the screen, starting with a cleared surface.
	Draw(s display.Surface)
}

// Nop provides empty lifecycle and event methods for embedding
// in screens that do not need them.
type Nop struct{}

func (Nop) OnEnter()                {}
func (Nop) OnExit()                 {}
func (Nop) Handle(input.Event) bool { return false }
func (Nop) Update(time.Duration)    {}
