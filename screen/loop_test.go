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

package screen_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/aamcrae/panel/display"
	"github.com/aamcrae/panel/input"
	"github.com/aamcrae/panel/screen"
)

// presenter records the frames presented.
type presenter struct {
	d      *display.Display
	frames int
}

func (p *presenter) Canvas() display.Surface { return p.d.Canvas() }

func (p *presenter) Present(s display.Surface) display.Surface {
	p.frames++
	return p.d.Present(s)
}

func newLoop(t *testing.T, names ...string) (*screen.Loop, chan input.Event, []*stub, *presenter, *[]string) {
	t.Helper()
	log := new([]string)
	scr, st := stubs(log, names...)
	c := newCoordinator(t, scr)
	*log = nil
	ch := make(chan input.Event, 16)
	p := &presenter{d: display.New(16, 8, nil)}
	return screen.NewLoop(c, ch, p, 100), ch, st, p, log
}

func TestTickDrainsInOrder(t *testing.T) {
	l, ch, st, p, _ := newLoop(t, "A")
	want := []input.Event{input.ShortClickEvent(), input.RotateEvent(1), input.LongClickEvent(), input.RotateEvent(-1)}
	for _, ev := range want {
		ch <- ev
	}
	if n := l.Tick(10 * time.Millisecond); n != len(want) {
		t.Errorf("Tick handled %d events, want %d", n, len(want))
	}
	if !reflect.DeepEqual(st[0].events, want) {
		t.Errorf("events %v, want %v", st[0].events, want)
	}
	if n := l.Tick(10 * time.Millisecond); n != 0 {
		t.Errorf("second Tick handled %d events", n)
	}
	if len(st[0].events) != len(want) {
		t.Errorf("events delivered more than once")
	}
	if st[0].draws != 2 || p.frames != 2 || l.Frames != 2 || l.Events != len(want) {
		t.Errorf("draws %d presented %d frames %d events %d", st[0].draws, p.frames, l.Frames, l.Events)
	}
	if !reflect.DeepEqual(st[0].elapsed, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond}) {
		t.Errorf("elapsed %v", st[0].elapsed)
	}
}

func TestTickDrainsBeforeDraw(t *testing.T) {
	l, ch, st, _, log := newLoop(t, "A", "B")
	ch <- input.RotateEvent(1)
	ch <- input.RotateEvent(1)
	ch <- input.RotateEvent(1)
	l.Tick(0)
	want := []string{"A.exit", "B.enter", "B.exit", "A.enter", "A.exit", "B.enter"}
	if !reflect.DeepEqual(*log, want) {
		t.Errorf("calls %q, want %q", *log, want)
	}
	// Only the screen active after the drain is updated and drawn.
	if st[0].draws != 0 || st[1].draws != 1 || len(st[1].elapsed) != 1 {
		t.Errorf("A drawn %d, B drawn %d", st[0].draws, st[1].draws)
	}
}

func TestTickEmpty(t *testing.T) {
	l, _, st, _, _ := newLoop(t, "A")
	done := make(chan int)
	go func() { done <- l.Tick(0) }()
	select {
	case n := <-done:
		if n != 0 {
			t.Errorf("handled %d events", n)
		}
	case <-time.After(time.Second):
		t.Fatal("Tick blocked on empty channel")
	}
	if st[0].draws != 1 {
		t.Errorf("draws %d", st[0].draws)
	}
}

func TestTickClosedChannel(t *testing.T) {
	l, ch, st, _, _ := newLoop(t, "A")
	ch <- input.ShortClickEvent()
	close(ch)
	if n := l.Tick(0); n != 1 {
		t.Errorf("handled %d events, want 1", n)
	}
	if n := l.Tick(0); n != 0 {
		t.Errorf("handled %d events from closed channel", n)
	}
	if len(st[0].events) != 1 {
		t.Errorf("%d events delivered", len(st[0].events))
	}
}

func TestRun(t *testing.T) {
	l, ch, st, _, _ := newLoop(t, "A")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- l.Run(ctx) }()
	ch <- input.ShortClickEvent()
	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if l.Frames < 2 {
		t.Errorf("%d frames rendered", l.Frames)
	}
	if len(st[0].events) != 1 {
		t.Errorf("%d events delivered, want 1", len(st[0].events))
	}
	if st[0].elapsed[0] != 0 {
		t.Errorf("first frame elapsed %s", st[0].elapsed[0])
	}
}
