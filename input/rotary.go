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

// Quadrature rotary decoder.

package input

import (
	"time"
)

// RawState is the 2 bit state of the encoder lines,
// with line A (CLK) as bit 1 and line B (DT) as bit 0.
type RawState uint8

// NewRawState packs the two line levels.
func NewRawState(a, b bool) RawState {
	var s RawState
	if a {
		s |= 2
	}
	if b {
		s |= 1
	}
	return s
}

type transition struct {
	from, to RawState
}

// Valid Gray code transitions and the direction of each step.
// Any other pair of states is bounce or a missed state.
var transitions = map[transition]int{
	{0b00, 0b01}: +1,
	{0b01, 0b11}: +1,
	{0b11, 0b10}: +1,
	{0b10, 0b00}: +1,

	{0b00, 0b10}: -1,
	{0b10, 0b11}: -1,
	{0b11, 0b01}: -1,
	{0b01, 0b00}: -1,
}

// Transition returns the step (+1 or -1) for a change of state,
// or 0 if the change is not a valid quadrature step.
func Transition(from, to RawState) int {
	return transitions[transition{from, to}]
}

// Rotary decodes quadrature encoder states into detent steps.
// Valid steps are accumulated, and a single step is emitted
// once a detent's worth of steps has been seen.
// Steps arriving less than the debounce interval after the previous
// accepted step are discarded.
type Rotary struct {
	perDetent int
	debounce  time.Duration
	invert    bool
	last      RawState  // Last raw state seen
	accum     int       // Accumulated steps towards a detent
	lastStep  time.Time // Time of last accepted step
}

// NewRotary creates a decoder. stepsPerDetent values less than 1 are treated as 1.
func NewRotary(stepsPerDetent int, debounce time.Duration, invert bool) *Rotary {
	r := new(Rotary)
	if stepsPerDetent < 1 {
		stepsPerDetent = 1
	}
	r.perDetent = stepsPerDetent
	r.debounce = debounce
	r.invert = invert
	return r
}

// Reset sets the current raw state (usually from the initial read of the lines)
// and clears any partially accumulated detent.
func (r *Rotary) Reset(s RawState) {
	r.last = s & 3
	r.accum = 0
}

// Accumulated returns the steps accumulated towards the next detent.
func (r *Rotary) Accumulated() int {
	return r.accum
}

// Update processes the current levels of the encoder lines, and
// returns a step of +1 or -1 when a full detent has been accumulated.
func (r *Rotary) Update(a, b bool, now time.Time) (int, bool) {
	s := NewRawState(a, b)
	if s == r.last {
		return 0, false
	}
	step := Transition(r.last, s)
	r.last = s
	if step == 0 || now.Sub(r.lastStep) < r.debounce {
		return 0, false
	}
	r.lastStep = now
	r.accum += step
	var delta int
	switch {
	case r.accum >= r.perDetent:
		delta = 1
	case r.accum <= -r.perDetent:
		delta = -1
	default:
		return 0, false
	}
	r.accum = 0
	if r.invert {
		delta = -delta
	}
	return delta, true
}
