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

package input_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aamcrae/config"
	"github.com/aamcrae/panel/input"
)

func parseConfig(t *testing.T, text string) *config.Config {
	t.Helper()
	f := filepath.Join(t.TempDir(), "panel.conf")
	if err := os.WriteFile(f, []byte(text), 0600); err != nil {
		t.Fatal(err)
	}
	conf, err := config.ParseFile(f)
	if err != nil {
		t.Fatalf("%s: %v", f, err)
	}
	return conf
}

func TestParseConfig(t *testing.T) {
	conf := parseConfig(t, `[input]
backend=gpiod
chip=gpiochip4
clk=5
dt=6
sw=13
pull_up=false
long_press_threshold_seconds=1.5
button_debounce_seconds=0.05
poll_interval_seconds=0.002
invert_direction=true
steps_per_detent=4
rotation_debounce_seconds=0.001
glitch_filter=false
`)
	c, err := input.ParseConfig(conf, "input")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := input.Config{
		Backend:          "gpiod",
		Chip:             "gpiochip4",
		CLK:              5,
		DT:               6,
		SW:               13,
		PullUp:           false,
		LongPress:        1500 * time.Millisecond,
		ButtonDebounce:   50 * time.Millisecond,
		PollInterval:     2 * time.Millisecond,
		InvertDirection:  true,
		StepsPerDetent:   4,
		RotationDebounce: time.Millisecond,
		GlitchFilter:     false,
	}
	if *c != want {
		t.Errorf("got %+v\nwant %+v", *c, want)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	conf := parseConfig(t, "[display]\nwidth=64\n")
	c, err := input.ParseConfig(conf, "input")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if *c != *input.DefaultConfig() {
		t.Errorf("got %+v, want defaults", *c)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	for _, text := range []string{
		"[input]\nsteps_per_detent=0\n",
		"[input]\npoll_interval_seconds=0\n",
		"[input]\nbutton_debounce_seconds=-1\n",
		"[input]\nclk=5\ndt=5\n",
	} {
		_, err := input.ParseConfig(parseConfig(t, text), "input")
		if !errors.Is(err, input.ErrInvalidConfig) {
			t.Errorf("%q: got %v, want ErrInvalidConfig", text, err)
		}
	}
	if _, err := input.ParseConfig(parseConfig(t, "[input]\npull_up=maybe\n"), "input"); err == nil {
		t.Errorf("bad pull_up accepted")
	}
	if _, err := input.ParseConfig(parseConfig(t, "[input]\nclk=5\nclk=6\n"), "input"); err == nil {
		t.Errorf("duplicate clk accepted")
	}
}

func TestParseConfigComments(t *testing.T) {
	conf := parseConfig(t, `[input]
backend=gpiod                         # periph, gpiod, rpio, sysfs or sim
chip=gpiochip0                        # GPIO chip for gpiod
clk=18                                # Encoder CLK (A) pin
dt=19                                 # Encoder DT (B) pin
sw=25                                 # Push button pin
pull_up=false                         # Idle LOW with pull-downs
`)
	c, err := input.ParseConfig(conf, "input")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if c.Backend != "gpiod" || c.Chip != "gpiochip0" {
		t.Errorf("backend %q chip %q", c.Backend, c.Chip)
	}
	if c.CLK != 18 || c.DT != 19 || c.SW != 25 || c.PullUp {
		t.Errorf("clk %d dt %d sw %d pull_up %v", c.CLK, c.DT, c.SW, c.PullUp)
	}
}
