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

// Package input decodes a rotary encoder with a push button
// (e.g a KY-040 module) into rotation and click events.
package input

import (
	"encoding/json"
	"fmt"
)

// EventType is the kind of input event.
type EventType int

const (
	Rotate     EventType = iota // Encoder moved one detent
	ShortClick EventType = iota // Button released before the long press threshold
	LongClick  EventType = iota // Button released at or after the long press threshold
)

func (t EventType) String() string {
	switch t {
	case Rotate:
		return "ROTATE"
	case ShortClick:
		return "SHORT_CLICK"
	case LongClick:
		return "LONG_CLICK"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is a single input event. Delta is +1 or -1 for Rotate events,
// and zero for all others.
type Event struct {
	Type  EventType
	Delta int
}

// RotateEvent returns a Rotate event for the direction of delta.
func RotateEvent(delta int) Event {
	if delta < 0 {
		return Event{Type: Rotate, Delta: -1}
	}
	return Event{Type: Rotate, Delta: 1}
}

// ShortClickEvent returns a ShortClick event.
func ShortClickEvent() Event {
	return Event{Type: ShortClick}
}

// LongClickEvent returns a LongClick event.
func LongClickEvent() Event {
	return Event{Type: LongClick}
}

func (e Event) String() string {
	if e.Type == Rotate {
		return fmt.Sprintf("%s %+d", e.Type, e.Delta)
	}
	return e.Type.String()
}

type eventRecord struct {
	Type  string `json:"type"`
	Delta *int   `json:"delta,omitempty"`
}

// MarshalJSON encodes the event as a tagged record,
// e.g {"type":"ROTATE","delta":-1} or {"type":"SHORT_CLICK"}.
func (e Event) MarshalJSON() ([]byte, error) {
	r := eventRecord{Type: e.Type.String()}
	if e.Type == Rotate {
		d := e.Delta
		r.Delta = &d
	}
	return json.Marshal(r)
}
