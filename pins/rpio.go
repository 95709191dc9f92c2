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

	"github.com/stianeikeland/go-rpio/v4"
)

// Rpio reads pins through memory mapped GPIO registers (/dev/gpiomem).
type Rpio struct {
	pins map[int]rpio.Pin
}

// OpenRpio maps the GPIO registers.
func OpenRpio() (*Rpio, error) {
	if err := rpio.Open(); err != nil {
		return nil, unavailable("rpio", err)
	}
	return &Rpio{pins: make(map[int]rpio.Pin)}, nil
}

// Configure sets the pin as an input with the selected pull resistor.
func (r *Rpio) Configure(pin int, dir Direction, pull Pull) error {
	if dir != IN {
		return fmt.Errorf("gpio%d: output not supported", pin)
	}
	p := rpio.Pin(pin)
	p.Input()
	switch pull {
	case PullUp:
		p.PullUp()
	case PullDown:
		p.PullDown()
	default:
		p.PullOff()
	}
	r.pins[pin] = p
	return nil
}

// Read returns the current pin level.
func (r *Rpio) Read(pin int) (bool, error) {
	p, ok := r.pins[pin]
	if !ok {
		return false, fmt.Errorf("gpio%d: not configured", pin)
	}
	return p.Read() == rpio.High, nil
}

// Close removes the pulls and unmaps the registers.
func (r *Rpio) Close() error {
	for n, p := range r.pins {
		p.PullOff()
		delete(r.pins, n)
	}
	return rpio.Close()
}
