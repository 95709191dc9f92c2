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

package pins

import (
	"sync"
	"time"
)

// Quadrature sequence for clockwise rotation, as CLK<<1 | DT.
var gray = [4]int{0b00, 0b01, 0b11, 0b10}

// Knob drives the pins of a Sim as a rotary encoder with a push button.
// Each Turn steps the encoder lines through transitions quadrature
// transitions, pausing between each so that a poller sees every state.
type Knob struct {
	sim         *Sim
	clk, dt, sw int
	pullUp      bool
	transitions int
	pause       time.Duration
	mu          sync.Mutex // Serialises turns

	// Settle is how long Click leaves the button released, so that
	// a following press is seen as a separate edge after debouncing.
	Settle time.Duration
}

// DefaultSettle is the release time after a click.
const DefaultSettle = 100 * time.Millisecond

// NewKnob creates a knob on the given pins. The button is active at
// the opposite level to its pull.
func NewKnob(sim *Sim, clk, dt, sw int, pullUp bool, transitions int, pause time.Duration) *Knob {
	k := &Knob{sim: sim, clk: clk, dt: dt, sw: sw, pullUp: pullUp, transitions: transitions, pause: pause, Settle: DefaultSettle}
	if k.transitions < 1 {
		k.transitions = 1
	}
	return k
}

// position returns the place in the quadrature sequence of the
// current line levels.
func (k *Knob) position() int {
	s := 0
	if v, _ := k.sim.Read(k.clk); v {
		s |= 2
	}
	if v, _ := k.sim.Read(k.dt); v {
		s |= 1
	}
	for i, g := range gray {
		if g == s {
			return i
		}
	}
	return 0
}

// Turn moves the encoder one detent clockwise for a positive
// direction, or anticlockwise for a negative one.
func (k *Knob) Turn(dir int) {
	if dir == 0 {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	pos := k.position()
	for i := 0; i < k.transitions; i++ {
		if dir > 0 {
			pos = (pos + 1) % len(gray)
		} else {
			pos = (pos + len(gray) - 1) % len(gray)
		}
		k.sim.Set(k.clk, gray[pos]&2 != 0)
		k.sim.Set(k.dt, gray[pos]&1 != 0)
		time.Sleep(k.pause)
	}
}

// Press sets the button state.
func (k *Knob) Press(down bool) {
	k.sim.Set(k.sw, down != k.pullUp)
}

// Click presses the button for the duration given, then keeps it
// released for Settle.
func (k *Knob) Click(hold time.Duration) {
	k.Press(true)
	time.Sleep(hold)
	k.Press(false)
	time.Sleep(k.Settle)
}
