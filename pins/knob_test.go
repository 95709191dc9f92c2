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

package pins_test

import (
	"testing"
	"time"

	"github.com/aamcrae/panel/pins"
)

func levels(s *pins.Sim, a, b int) [2]bool {
	va, _ := s.Read(a)
	vb, _ := s.Read(b)
	return [2]bool{va, vb}
}

func TestKnobTurn(t *testing.T) {
	s := pins.NewSim()
	s.Configure(1, pins.IN, pins.PullUp)
	s.Configure(2, pins.IN, pins.PullUp)
	s.Configure(3, pins.IN, pins.PullUp)
	k := pins.NewKnob(s, 1, 2, 3, true, 1, 0)
	// From 11, clockwise is 10, 00, 01, 11.
	for i, want := range [][2]bool{{true, false}, {false, false}, {false, true}, {true, true}} {
		k.Turn(1)
		if got := levels(s, 1, 2); got != want {
			t.Errorf("turn %d: %v, want %v", i, got, want)
		}
	}
	k.Turn(-1)
	if got := levels(s, 1, 2); got != [2]bool{false, true} {
		t.Errorf("anticlockwise: %v", got)
	}
	k.Turn(0)
	if got := levels(s, 1, 2); got != [2]bool{false, true} {
		t.Errorf("zero turn moved the knob: %v", got)
	}
	// A full detent of 4 transitions returns to the same state.
	k = pins.NewKnob(s, 1, 2, 3, true, 4, 0)
	k.Turn(-1)
	if got := levels(s, 1, 2); got != [2]bool{false, true} {
		t.Errorf("full detent: %v", got)
	}
}

func TestKnobPress(t *testing.T) {
	s := pins.NewSim()
	k := pins.NewKnob(s, 1, 2, 3, true, 1, 0)
	k.Press(true)
	if v, _ := s.Read(3); v {
		t.Errorf("pull-up button pressed reads HIGH")
	}
	k.Press(false)
	if v, _ := s.Read(3); !v {
		t.Errorf("pull-up button released reads LOW")
	}
	k = pins.NewKnob(s, 1, 2, 4, false, 1, 0)
	k.Settle = 20 * time.Millisecond
	start := time.Now()
	k.Click(time.Millisecond)
	if d := time.Since(start); d < 21*time.Millisecond {
		t.Errorf("click returned after %s, before the button settled", d)
	}
	if v, _ := s.Read(4); v {
		t.Errorf("pull-down button reads HIGH after click")
	}
}

func TestKnobSettle(t *testing.T) {
	if k := pins.NewKnob(pins.NewSim(), 1, 2, 3, true, 1, 0); k.Settle != pins.DefaultSettle {
		t.Errorf("settle %s, want %s", k.Settle, pins.DefaultSettle)
	}
}
