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
	"image"

	"github.com/aamcrae/panel/pins"
	xdraw "golang.org/x/image/draw"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

// SSD1306 is a monochrome OLED panel on an I²C bus.
// Frames are scaled to the panel size, and converted to
// monochrome by the driver.
type SSD1306 struct {
	bus   i2c.BusCloser
	dev   *ssd1306.Dev
	frame *image.RGBA
}

// OpenSSD1306 opens the panel on the named I²C bus (the first
// available bus if empty) with the panel dimensions given.
func OpenSSD1306(bus string, w, h int) (*SSD1306, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("ssd1306: %w: %v", pins.ErrUnavailable, err)
	}
	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: %w: %v", pins.ErrUnavailable, err)
	}
	opts := ssd1306.DefaultOpts
	opts.W = w
	opts.H = h
	dev, err := ssd1306.NewI2C(b, &opts)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("ssd1306: %v", err)
	}
	s := &SSD1306{bus: b, dev: dev}
	s.frame = image.NewRGBA(dev.Bounds())
	return s, nil
}

// Show draws the frame on the panel.
func (s *SSD1306) Show(img *image.RGBA) error {
	r := s.dev.Bounds()
	var src image.Image = img
	if img.Rect.Size() != r.Size() {
		xdraw.NearestNeighbor.Scale(s.frame, r, img, img.Rect, xdraw.Src, nil)
		src = s.frame
	}
	if err := s.dev.Draw(r, src, image.Point{}); err != nil {
		return fmt.Errorf("ssd1306: %v", err)
	}
	return nil
}

// Close turns off the panel and closes the bus.
func (s *SSD1306) Close() error {
	s.dev.Halt()
	return s.bus.Close()
}
