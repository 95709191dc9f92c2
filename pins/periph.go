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

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Periph reads pins using the periph.io host drivers.
type Periph struct {
	pins map[int]gpio.PinIO
}

// OpenPeriph initialises the periph.io host drivers.
func OpenPeriph() (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, unavailable("periph", err)
	}
	return &Periph{pins: make(map[int]gpio.PinIO)}, nil
}

// Configure sets the pin as an input with the selected pull resistor.
func (p *Periph) Configure(pin int, dir Direction, pull Pull) error {
	if dir != IN {
		return fmt.Errorf("gpio%d: output not supported", pin)
	}
	gp := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	if gp == nil {
		return fmt.Errorf("gpio%d: %w: no such pin", pin, ErrUnavailable)
	}
	var gpull gpio.Pull
	switch pull {
	case PullUp:
		gpull = gpio.PullUp
	case PullDown:
		gpull = gpio.PullDown
	default:
		gpull = gpio.Float
	}
	if err := gp.In(gpull, gpio.NoEdge); err != nil {
		return fmt.Errorf("gpio%d: %v", pin, err)
	}
	p.pins[pin] = gp
	return nil
}

// Read returns the current pin level.
func (p *Periph) Read(pin int) (bool, error) {
	gp, ok := p.pins[pin]
	if !ok {
		return false, fmt.Errorf("gpio%d: not configured", pin)
	}
	return gp.Read() == gpio.High, nil
}

// Close halts all the configured pins.
func (p *Periph) Close() error {
	var first error
	for n, gp := range p.pins {
		if err := gp.Halt(); err != nil && first == nil {
			first = fmt.Errorf("gpio%d: %v", n, err)
		}
		delete(p.pins, n)
	}
	return first
}
