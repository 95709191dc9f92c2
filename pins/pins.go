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

// Package pins provides digital input access to GPIO pins.
// Several backends are supported, selected by name when opened.
// Pins are numbered using the BCM (SoC) numbering.
package pins

import (
	"errors"
	"fmt"
	"time"
)

// Direction of a pin.
type Direction int

const (
	IN  Direction = iota // Default
	OUT Direction = iota
)

// Pull resistor selection.
type Pull int

const (
	PullNone Pull = iota // Default
	PullUp   Pull = iota
	PullDown Pull = iota
)

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	}
	return "none"
}

// ErrUnavailable is returned when the GPIO hardware (or the
// daemon or device that provides access to it) cannot be used.
var ErrUnavailable = errors.New("gpio unavailable")

// Input is a source of digital input levels.
type Input interface {
	// Configure sets the direction and pull resistor for a pin.
	Configure(pin int, dir Direction, pull Pull) error
	// Read returns the current level of a pin, true being HIGH.
	Read(pin int) (bool, error)
	// Close releases all pins and handles.
	Close() error
}

// GlitchFilter is implemented by backends that can suppress
// pulses shorter than a given duration in hardware or the kernel.
type GlitchFilter interface {
	SetGlitchFilter(pin int, d time.Duration) error
}

// Backends lists the names accepted by Open.
var Backends = []string{"periph", "gpiod", "rpio", "sysfs", "sim"}

// Open initialises the named backend. The chip name is only used
// by the gpiod backend.
func Open(backend, chip string) (Input, error) {
	switch backend {
	case "periph", "":
		return OpenPeriph()
	case "gpiod":
		return OpenGpiod(chip)
	case "rpio":
		return OpenRpio()
	case "sysfs":
		return OpenSysfs()
	case "sim":
		return NewSim(), nil
	}
	return nil, fmt.Errorf("%s: unknown gpio backend", backend)
}

// unavailable wraps an error as ErrUnavailable.
func unavailable(backend string, err error) error {
	return fmt.Errorf("%s: %w: %v", backend, ErrUnavailable, err)
}
