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

package screen

import (
	"context"
	"log"
	"time"

	"github.com/aamcrae/panel/display"
	"github.com/aamcrae/panel/input"
)

const defaultFPS = 60

// Presenter is a double buffered frame sink.
type Presenter interface {
	// Canvas returns the surface for the first frame.
	Canvas() display.Surface
	// Present shows a finished frame and returns the surface
	// for the next one.
	Present(s display.Surface) display.Surface
}

// Loop is the foreground render loop. Each tick it hands every pending
// input event to the coordinator, then updates, draws and presents
// the active screen.
type Loop struct {
	Frames  int // Frames rendered
	Events  int // Events handled
	c       *Coordinator
	events  <-chan input.Event
	out     Presenter
	surface display.Surface
	period  time.Duration
}

// NewLoop creates a render loop running at fps frames per second.
func NewLoop(c *Coordinator, events <-chan input.Event, out Presenter, fps int) *Loop {
	if fps <= 0 {
		fps = defaultFPS
	}
	return &Loop{
		c:       c,
		events:  events,
		out:     out,
		surface: out.Canvas(),
		period:  time.Second / time.Duration(fps),
	}
}

// Tick drains the pending events, then renders and presents one frame.
// It never waits for events. The number of events handled is returned.
func (l *Loop) Tick(elapsed time.Duration) int {
	n := l.drain()
	s := l.c.Current()
	s.Update(elapsed)
	s.Draw(l.surface)
	l.surface = l.out.Present(l.surface)
	l.Frames++
	l.Events += n
	return n
}

func (l *Loop) drain() int {
	n := 0
	for {
		select {
		case ev, ok := <-l.events:
			if !ok {
				// Producer has gone; stop selecting on the closed channel.
				l.events = nil
				return n
			}
			l.c.Handle(ev)
			n++
		default:
			return n
		}
	}
}

// Run renders frames until the context is cancelled.
// The frame rate is best effort; a slow frame delays the next one.
func (l *Loop) Run(ctx context.Context) error {
	log.Printf("screen: render loop at %s per frame", l.period)
	last := time.Now()
	l.Tick(0)
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("screen: render loop stopped after %d frames, %d events", l.Frames, l.Events)
			return nil
		case now := <-ticker.C:
			l.Tick(now.Sub(last))
			last = now
		}
	}
}
