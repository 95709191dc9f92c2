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
	"log"

	sysfs "github.com/aamcrae/gpio"
	"golang.org/x/sys/unix"
)

const gpioBaseDir = "/sys/class/gpio/"

// Sysfs reads pins through the legacy /sys/class/gpio interface.
// The sysfs interface has no control of the pull resistors, so these
// must be set externally (e.g via device tree or config.txt).
type Sysfs struct {
	pins map[int]*sysfs.Gpio
}

// OpenSysfs checks that the sysfs GPIO interface is present.
func OpenSysfs() (*Sysfs, error) {
	if err := unix.Access(gpioBaseDir+"export", unix.W_OK); err != nil {
		return nil, unavailable("sysfs", err)
	}
	return &Sysfs{pins: make(map[int]*sysfs.Gpio)}, nil
}

// Configure exports the pin as an input.
func (s *Sysfs) Configure(pin int, dir Direction, pull Pull) error {
	if dir != IN {
		return fmt.Errorf("gpio%d: output not supported", pin)
	}
	if pull != PullNone {
		log.Printf("gpio%d: sysfs cannot set pull %s, assuming external configuration", pin, pull)
	}
	if _, ok := s.pins[pin]; ok {
		return nil
	}
	g, err := sysfs.Pin(pin)
	if err != nil {
		return fmt.Errorf("gpio%d: %v", pin, err)
	}
	s.pins[pin] = g
	return nil
}

// Read returns the current pin level.
func (s *Sysfs) Read(pin int) (bool, error) {
	g, ok := s.pins[pin]
	if !ok {
		return false, fmt.Errorf("gpio%d: not configured", pin)
	}
	v, err := g.Get()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// Close unexports all the pins.
func (s *Sysfs) Close() error {
	for n, g := range s.pins {
		g.Close()
		delete(s.pins, n)
	}
	return nil
}
