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

package display

import (
	"fmt"
	"log"

	"github.com/aamcrae/config"
	"github.com/aamcrae/panel/cfg"
	"github.com/aamcrae/panel/pins"
)

// Config holds the display configuration.
type Config struct {
	Width       int      // Frame width in pixels
	Height      int      // Frame height in pixels
	FPS         int      // Frame rate
	Outputs     []string // ssd1306, http
	I2C         string   // I²C bus for ssd1306
	PanelWidth  int      // ssd1306 panel size
	PanelHeight int
	Port        int // HTTP preview port
	Scale       int // HTTP preview scale
	Refresh     int // HTTP page refresh in seconds
	Backlight   int // PWM unit for backlight, -1 for none
	Brightness  int // Backlight percentage
}

// DefaultConfig returns the configuration for a 64x32 panel
// previewed over HTTP.
func DefaultConfig() *Config {
	return &Config{
		Width:       64,
		Height:      32,
		FPS:         60,
		Outputs:     []string{"http"},
		PanelWidth:  128,
		PanelHeight: 64,
		Port:        8080,
		Scale:       8,
		Refresh:     1,
		Backlight:   -1,
		Brightness:  60,
	}
}

// ParseConfig reads the display configuration from a config file section.
// Sample config:
//  [display]
//  width=64                 # Frame size
//  height=32
//  fps=60                   # Frame rate
//  output=ssd1306,http      # Where frames are sent
//  i2c=1                    # I2C bus for ssd1306 panel
//  panel_width=128          # ssd1306 panel size
//  panel_height=64
//  port=8080                # HTTP preview port
//  scale=8                  # HTTP preview scale
//  refresh=1                # HTTP page refresh (seconds)
//  backlight_pwm=0          # PWM unit driving the backlight
//  brightness=60            # Backlight brightness percentage
func ParseConfig(conf *config.Config, name string) (*Config, error) {
	s := cfg.Get(conf, name)
	c := DefaultConfig()
	var err error
	ints := []struct {
		key string
		v   *int
	}{
		{"width", &c.Width},
		{"height", &c.Height},
		{"fps", &c.FPS},
		{"panel_width", &c.PanelWidth},
		{"panel_height", &c.PanelHeight},
		{"port", &c.Port},
		{"scale", &c.Scale},
		{"refresh", &c.Refresh},
		{"backlight_pwm", &c.Backlight},
		{"brightness", &c.Brightness},
	}
	for _, i := range ints {
		if *i.v, err = s.Int(i.key, *i.v); err != nil {
			return nil, err
		}
	}
	if c.Outputs, err = s.List("output", c.Outputs); err != nil {
		return nil, err
	}
	if c.I2C, err = s.String("i2c", c.I2C); err != nil {
		return nil, err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("%s: invalid size %dx%d", name, c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return nil, fmt.Errorf("%s: fps must be positive", name)
	}
	if c.Brightness < 0 || c.Brightness > 100 {
		return nil, fmt.Errorf("%s: brightness %d out of range", name, c.Brightness)
	}
	for _, o := range c.Outputs {
		if o != "ssd1306" && o != "http" {
			return nil, fmt.Errorf("%s: %s: unknown output", name, o)
		}
	}
	return c, nil
}

// Open creates the display and opens the configured outputs.
// On error, anything already opened is closed.
func Open(c *Config) (*Display, error) {
	var outs Multi
	var srv *Server
	var bl *pins.Backlight
	fail := func(err error) (*Display, error) {
		outs.Close()
		if bl != nil {
			bl.Close()
		}
		return nil, err
	}
	for _, o := range c.Outputs {
		switch o {
		case "ssd1306":
			p, err := OpenSSD1306(c.I2C, c.PanelWidth, c.PanelHeight)
			if err != nil {
				return fail(err)
			}
			outs = append(outs, p)
		case "http":
			srv = NewServer(c.Port, c.Scale, c.Refresh)
			outs = append(outs, srv)
		default:
			return fail(fmt.Errorf("%s: unknown output", o))
		}
	}
	if c.Backlight >= 0 {
		var err error
		if bl, err = pins.NewBacklight(c.Backlight); err != nil {
			return fail(fmt.Errorf("backlight: %w", err))
		}
		if err = bl.Set(c.Brightness); err != nil {
			return fail(fmt.Errorf("backlight: %w", err))
		}
	}
	d := New(c.Width, c.Height, outs)
	d.Server = srv
	if bl != nil {
		d.closers = append(d.closers, bl.Close)
	}
	log.Printf("display: %dx%d at %d fps, outputs %v", c.Width, c.Height, c.FPS, c.Outputs)
	return d, nil
}
