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

package screen

import (
	"errors"
	"fmt"
	"log"

	"github.com/aamcrae/panel/input"
)

// ErrNoScreens is returned when a coordinator is created without screens.
var ErrNoScreens = errors.New("no screens configured")

// Coordinator owns the screens and the index of the active screen.
// It is not safe for concurrent use; it belongs to the render loop.
type Coordinator struct {
	screens []Screen
	active  int
}

// NewCoordinator creates a coordinator with the first screen active.
func NewCoordinator(screens []Screen) (*Coordinator, error) {
	if len(screens) == 0 {
		return nil, ErrNoScreens
	}
	for i, s := range screens {
		if s == nil {
			return nil, fmt.Errorf("screen %d: missing", i)
		}
	}
	c := &Coordinator{screens: append([]Screen(nil), screens...)}
	log.Printf("screen: %d screens, starting with %s", len(c.screens), c.screens[0].Name())
	c.screens[0].OnEnter()
	return c, nil
}

// Handle offers the event to the active screen. If the screen does not
// use it, a rotation moves to the next or previous screen.
// Any other unused event is dropped.
func (c *Coordinator) Handle(ev input.Event) {
	if c.screens[c.active].Handle(ev) {
		return
	}
	if ev.Type != input.Rotate {
		return
	}
	switch {
	case ev.Delta > 0:
		c.Next()
	case ev.Delta < 0:
		c.Prev()
	}
}

// Next activates the following screen, wrapping to the first.
func (c *Coordinator) Next() {
	c.switchTo((c.active + 1) % len(c.screens))
}

// Prev activates the preceding screen, wrapping to the last.
func (c *Coordinator) Prev() {
	c.switchTo((c.active + len(c.screens) - 1) % len(c.screens))
}

func (c *Coordinator) switchTo(i int) {
	if i == c.active {
		return
	}
	old := c.screens[c.active]
	old.OnExit()
	c.active = i
	c.screens[i].OnEnter()
	log.Printf("screen: %s -> %s", old.Name(), c.screens[i].Name())
}

// Current returns the active screen.
func (c *Coordinator) Current() Screen {
	return c.screens[c.active]
}

// Index returns the index of the active screen.
func (c *Coordinator) Index() int {
	return c.active
}

// Len returns the number of screens.
func (c *Coordinator) Len() int {
	return len(c.screens)
}
