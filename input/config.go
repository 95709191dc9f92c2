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

package input

import (
	"errors"
	"fmt"
	"time"

	"github.com/aamcrae/config"
	"github.com/aamcrae/panel/cfg"
)

// ErrInvalidConfig is returned for out of range configuration values.
var ErrInvalidConfig = errors.New("invalid input configuration")

// Config holds the encoder wiring and decoding parameters.
type Config struct {
	Backend          string        // Pin backend name
	Chip             string        // GPIO chip (gpiod backend)
	CLK              int           // Encoder line A
	DT               int           // Encoder line B
	SW               int           // Push button
	PullUp           bool          // Lines idle HIGH with pull-ups, LOW with pull-downs
	LongPress        time.Duration // Minimum hold for a long click
	ButtonDebounce   time.Duration // Minimum time between button edges
	PollInterval     time.Duration // Time between polls of the pins
	InvertDirection  bool          // Reverse the rotation direction
	StepsPerDetent   int           // Quadrature steps per detent
	RotationDebounce time.Duration // Minimum time between quadrature steps
	GlitchFilter     bool          // Use the backend glitch filter if available
}

// DefaultConfig returns the configuration for a KY-040 module wired
// to BCM pins 18 (CLK), 19 (DT) and 25 (SW).
func DefaultConfig() *Config {
	return &Config{
		Backend:          "periph",
		CLK:              18,
		DT:               19,
		SW:               25,
		PullUp:           true,
		LongPress:        600 * time.Millisecond,
		ButtonDebounce:   30 * time.Millisecond,
		PollInterval:     500 * time.Microsecond,
		StepsPerDetent:   1,
		RotationDebounce: 500 * time.Microsecond,
		GlitchFilter:     true,
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	switch {
	case c.StepsPerDetent < 1:
		return fmt.Errorf("%w: steps_per_detent %d is less than 1", ErrInvalidConfig, c.StepsPerDetent)
	case c.PollInterval <= 0:
		return fmt.Errorf("%w: poll_interval_seconds must be positive", ErrInvalidConfig)
	case c.LongPress < 0:
		return fmt.Errorf("%w: long_press_threshold_seconds is negative", ErrInvalidConfig)
	case c.ButtonDebounce < 0:
		return fmt.Errorf("%w: button_debounce_seconds is negative", ErrInvalidConfig)
	case c.RotationDebounce < 0:
		return fmt.Errorf("%w: rotation_debounce_seconds is negative", ErrInvalidConfig)
	case c.CLK == c.DT || c.CLK == c.SW || c.DT == c.SW:
		return fmt.Errorf("%w: clk, dt and sw must be different pins", ErrInvalidConfig)
	}
	return nil
}

// ParseConfig reads the input configuration from a config file section.
// Sample config:
//  [input]
//  backend=gpiod                         # periph, gpiod, rpio, sysfs or sim
//  chip=gpiochip0                        # GPIO chip for gpiod
//  clk=18                                # Encoder CLK (A) pin
//  dt=19                                 # Encoder DT (B) pin
//  sw=25                                 # Push button pin
//  pull_up=true                          # Idle HIGH with pull-ups
//  long_press_threshold_seconds=0.6
//  button_debounce_seconds=0.03
//  poll_interval_seconds=0.0005
//  invert_direction=false
//  steps_per_detent=2
//  rotation_debounce_seconds=0.0005
//  glitch_filter=true
func ParseConfig(conf *config.Config, name string) (*Config, error) {
	s := cfg.Get(conf, name)
	c := DefaultConfig()
	var err error
	if c.Backend, err = s.String("backend", c.Backend); err != nil {
		return nil, err
	}
	if c.Chip, err = s.String("chip", c.Chip); err != nil {
		return nil, err
	}
	if c.CLK, err = s.Int("clk", c.CLK); err != nil {
		return nil, err
	}
	if c.DT, err = s.Int("dt", c.DT); err != nil {
		return nil, err
	}
	if c.SW, err = s.Int("sw", c.SW); err != nil {
		return nil, err
	}
	if c.PullUp, err = s.Bool("pull_up", c.PullUp); err != nil {
		return nil, err
	}
	if c.LongPress, err = s.Seconds("long_press_threshold_seconds", c.LongPress); err != nil {
		return nil, err
	}
	if c.ButtonDebounce, err = s.Seconds("button_debounce_seconds", c.ButtonDebounce); err != nil {
		return nil, err
	}
	if c.PollInterval, err = s.Seconds("poll_interval_seconds", c.PollInterval); err != nil {
		return nil, err
	}
	if c.InvertDirection, err = s.Bool("invert_direction", c.InvertDirection); err != nil {
		return nil, err
	}
	if c.StepsPerDetent, err = s.Int("steps_per_detent", c.StepsPerDetent); err != nil {
		return nil, err
	}
	if c.RotationDebounce, err = s.Seconds("rotation_debounce_seconds", c.RotationDebounce); err != nil {
		return nil, err
	}
	if c.GlitchFilter, err = s.Bool("glitch_filter", c.GlitchFilter); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
