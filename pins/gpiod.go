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
	"time"

	"github.com/warthog618/gpiod"
)

const defaultChip = "gpiochip0"

// Gpiod reads pins as lines on a GPIO character device.
// Line offsets are the same as the BCM pin numbers on a Raspberry Pi.
type Gpiod struct {
	chip  *gpiod.Chip
	lines map[int]*gpiod.Line
}

// OpenGpiod opens the named GPIO chip (e.g gpiochip0).
func OpenGpiod(name string) (*Gpiod, error) {
	if name == "" {
		name = defaultChip
	}
	c, err := gpiod.NewChip(name, gpiod.WithConsumer("panel"))
	if err != nil {
		return nil, unavailable("gpiod", err)
	}
	return &Gpiod{chip: c, lines: make(map[int]*gpiod.Line)}, nil
}

// Configure requests the line as an input with the selected bias.
func (g *Gpiod) Configure(pin int, dir Direction, pull Pull) error {
	if dir != IN {
		return fmt.Errorf("gpio%d: output not supported", pin)
	}
	if l, ok := g.lines[pin]; ok {
		l.Close()
		delete(g.lines, pin)
	}
	var bias gpiod.LineReqOption
	switch pull {
	case PullUp:
		bias = gpiod.WithPullUp
	case PullDown:
		bias = gpiod.WithPullDown
	default:
		bias = gpiod.WithBiasDisabled
	}
	l, err := g.chip.RequestLine(pin, gpiod.AsInput, bias)
	if err != nil {
		return fmt.Errorf("gpio%d: %v", pin, err)
	}
	g.lines[pin] = l
	return nil
}

// SetGlitchFilter uses the kernel line debouncer to filter short pulses.
func (g *Gpiod) SetGlitchFilter(pin int, d time.Duration) error {
	l, ok := g.lines[pin]
	if !ok {
		return fmt.Errorf("gpio%d: not configured", pin)
	}
	return l.Reconfigure(gpiod.WithDebounce(d))
}

// Read returns the current line value.
func (g *Gpiod) Read(pin int) (bool, error) {
	l, ok := g.lines[pin]
	if !ok {
		return false, fmt.Errorf("gpio%d: not configured", pin)
	}
	v, err := l.Value()
	if err != nil {
		return false, fmt.Errorf("gpio%d: %v", pin, err)
	}
	return v != 0, nil
}

// Close releases all lines and the chip.
func (g *Gpiod) Close() error {
	for n, l := range g.lines {
		l.Close()
		delete(g.lines, n)
	}
	return g.chip.Close()
}
