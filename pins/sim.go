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
	"fmt"
	"sync"
	"time"
)

type simPin struct {
	level  bool
	pull   Pull
	filter time.Duration
	err    error
}

// Sim is an in-memory pin source. Levels are set by the caller
// (a simulator or a test) and read back by the input poller.
// A configured pin floats to the level of its pull resistor
// until explicitly set.
type Sim struct {
	mu     sync.Mutex
	pins   map[int]*simPin
	closed bool
}

// NewSim creates a simulated pin source.
func NewSim() *Sim {
	return &Sim{pins: make(map[int]*simPin)}
}

func (s *Sim) pin(n int) *simPin {
	p, ok := s.pins[n]
	if !ok {
		p = new(simPin)
		s.pins[n] = p
	}
	return p
}

// Configure records the pull and sets the idle level.
func (s *Sim) Configure(pin int, dir Direction, pull Pull) error {
	if dir != IN {
		return fmt.Errorf("gpio%d: output not supported", pin)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("gpio%d: %w: closed", pin, ErrUnavailable)
	}
	p := s.pin(pin)
	p.pull = pull
	p.level = pull == PullUp
	return nil
}

// SetGlitchFilter records the filter duration.
func (s *Sim) SetGlitchFilter(pin int, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pin(pin).filter = d
	return nil
}

// Read returns the last level set on the pin.
func (s *Sim) Read(pin int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pin(pin)
	return p.level, p.err
}

// Set changes the level of a pin.
func (s *Sim) Set(pin int, level bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pin(pin).level = level
}

// SetError causes reads of the pin to fail with err (nil clears it).
func (s *Sim) SetError(pin int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pin(pin).err = err
}

// Pull returns the pull configured on a pin.
func (s *Sim) Pull(pin int) Pull {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pin(pin).pull
}

// Filter returns the glitch filter set on a pin.
func (s *Sim) Filter(pin int) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pin(pin).filter
}

// Close marks the source as closed.
func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *Sim) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
