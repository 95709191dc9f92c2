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

// Input poller.

package input

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/aamcrae/panel/pins"
)

const (
	eventQueueSize = 128             // Size of queue for events
	stopTimeout    = time.Second     // Maximum wait for the poller to stop
	lineFilter     = 800 * time.Microsecond
	buttonFilter   = 3 * time.Millisecond
)

// Poller reads the encoder and button pins at a fixed interval in a
// background goroutine, and sends the decoded events to a channel.
// The poller is the only reader of the pins.
type Poller struct {
	in       pins.Input
	cfg      *Config
	rotary   *Rotary
	button   *Button
	events   chan Event
	stop     chan struct{} // closed to request stop
	done     chan struct{} // closed when goroutine exits
	stopOnce sync.Once
	started  bool
	lastErr  string // last read error reported
}

// NewPoller configures the pins and initialises the decoders from
// the current pin levels. Any failure to set up the pins is returned,
// so the poller never runs with partially working hardware.
func NewPoller(in pins.Input, c *Config) (*Poller, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p := new(Poller)
	p.in = in
	p.cfg = c
	p.rotary = NewRotary(c.StepsPerDetent, c.RotationDebounce, c.InvertDirection)
	p.button = NewButton(c.PullUp, c.ButtonDebounce, c.LongPress)
	p.events = make(chan Event, eventQueueSize)
	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	pull := pins.PullDown
	if c.PullUp {
		pull = pins.PullUp
	}
	for _, pin := range []int{c.CLK, c.DT, c.SW} {
		if err := in.Configure(pin, pins.IN, pull); err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
	}
	if gf, ok := in.(pins.GlitchFilter); ok && c.GlitchFilter {
		filters := []struct {
			pin int
			d   time.Duration
		}{{c.CLK, lineFilter}, {c.DT, lineFilter}, {c.SW, buttonFilter}}
		for _, f := range filters {
			if err := gf.SetGlitchFilter(f.pin, f.d); err != nil {
				return nil, fmt.Errorf("input: gpio%d glitch filter: %w", f.pin, err)
			}
		}
	}
	a, b, sw, err := p.read()
	if err != nil {
		return nil, fmt.Errorf("input: initial read: %w", err)
	}
	p.rotary.Reset(NewRawState(a, b))
	p.button.Reset(sw)
	log.Printf("input: clk %d, dt %d, sw %d, pull %s, poll %s, %d steps/detent, long press %s",
		c.CLK, c.DT, c.SW, pull, c.PollInterval, c.StepsPerDetent, c.LongPress)
	return p, nil
}

// Events returns the channel that decoded events are sent to.
func (p *Poller) Events() <-chan Event {
	return p.events
}

// Start starts the polling goroutine.
func (p *Poller) Start() {
	if p.started {
		return
	}
	p.started = true
	go p.run()
}

// Stop requests the polling goroutine to exit, and waits for it to do so.
// An error is returned if the goroutine does not stop in time.
// The pins are not closed; they are owned by the caller.
func (p *Poller) Stop() error {
	p.stopOnce.Do(func() { close(p.stop) })
	if !p.started {
		return nil
	}
	select {
	case <-p.done:
		return nil
	case <-time.After(stopTimeout):
		return fmt.Errorf("input: poller did not stop within %s", stopTimeout)
	}
}

// goroutine handler.
func (p *Poller) run() {
	defer close(p.done)
	for {
		select {
		case <-p.stop:
			return
		default:
		}
		if !p.poll(time.Now()) {
			return
		}
		time.Sleep(p.cfg.PollInterval)
	}
}

// poll reads the pins once and sends any decoded events.
// false is returned if a stop was requested while sending.
func (p *Poller) poll(now time.Time) bool {
	a, b, sw, err := p.read()
	if err != nil {
		if s := err.Error(); s != p.lastErr {
			log.Printf("input: %v", err)
			p.lastErr = s
		}
		return true
	}
	p.lastErr = ""
	if d, ok := p.rotary.Update(a, b, now); ok {
		if !p.send(RotateEvent(d)) {
			return false
		}
	}
	if ev, ok := p.button.Update(sw, now); ok {
		if !p.send(ev) {
			return false
		}
	}
	return true
}

func (p *Poller) send(ev Event) bool {
	select {
	case p.events <- ev:
		return true
	case <-p.stop:
		return false
	}
}

func (p *Poller) read() (a, b, sw bool, err error) {
	if a, err = p.in.Read(p.cfg.CLK); err != nil {
		return
	}
	if b, err = p.in.Read(p.cfg.DT); err != nil {
		return
	}
	sw, err = p.in.Read(p.cfg.SW)
	return
}
