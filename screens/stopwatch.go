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

package screens

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/aamcrae/panel/display"
	"github.com/aamcrae/panel/input"
	"github.com/aamcrae/panel/screen"
	"github.com/fogleman/gg"
)

const (
	stopwatchFrames = 8
	iconHeight      = 25 // Target height of the idle animation
)

// Stopwatch modes.
const (
	Idle = iota
	Running
	Paused
)

// Stopwatch shows an animation while idle. A short click starts
// the stopwatch from zero, and then pauses and resumes it.
// A long click returns to the idle animation.
type Stopwatch struct {
	screen.Nop
	frames   []*image.RGBA
	animStep time.Duration
	textStep time.Duration
	font     *display.Font
	mode     int
	elapsed  time.Duration
	frame    int
	animTime time.Duration
	textTime time.Duration
	text     string
}

// NewStopwatch loads the animation frames stopwatch0.png to stopwatch7.png
// from dir. The frames are drawn in white using their alpha channel, and
// are centered on a w by h frame.
func NewStopwatch(f *display.Font, dir string, w, h int, animFPS, displayFPS float64) (*Stopwatch, error) {
	sw := new(Stopwatch)
	sw.font = f
	sw.animStep = fpsPeriod(animFPS)
	sw.textStep = fpsPeriod(displayFPS)
	for i := 0; i < stopwatchFrames; i++ {
		p := filepath.Join(dir, fmt.Sprintf("stopwatch%d.png", i))
		src, err := gg.LoadPNG(p)
		if err != nil {
			return nil, fmt.Errorf("stopwatch: missing animation frame: %w", err)
		}
		sw.frames = append(sw.frames, iconFrame(src, w, h))
	}
	sw.reset()
	return sw, nil
}

// fpsPeriod returns the period of a rate, which is at least 1 per second.
func fpsPeriod(fps float64) time.Duration {
	if fps < 1 {
		fps = 1
	}
	return time.Duration(float64(time.Second) / fps)
}

// iconFrame masks white with the alpha of src, scales it up by a whole
// number to about iconHeight pixels tall, and centers it on a black frame.
func iconFrame(src image.Image, w, h int) *image.RGBA {
	b := src.Bounds()
	scale := 1
	if b.Dy() > 0 && iconHeight/b.Dy() > 1 {
		scale = iconHeight / b.Dy()
	}
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(frame.Pix); i += 4 {
		frame.Pix[i] = 255
	}
	x0 := (w - b.Dx()*scale) / 2
	y0 := (h - b.Dy()*scale) / 2
	for y := 0; y < b.Dy()*scale; y++ {
		for x := 0; x < b.Dx()*scale; x++ {
			fx, fy := x0+x, y0+y
			if fx < 0 || fy < 0 || fx >= w || fy >= h {
				continue
			}
			_, _, _, a := src.At(b.Min.X+x/scale, b.Min.Y+y/scale).RGBA()
			v := uint8(a >> 8)
			i := frame.PixOffset(fx, fy)
			frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2] = v, v, v
		}
	}
	return frame
}

func (sw *Stopwatch) Name() string {
	return "stopwatch"
}

func (sw *Stopwatch) reset() {
	sw.mode = Idle
	sw.elapsed = 0
	sw.frame = 0
	sw.animTime = 0
	sw.textTime = 0
	sw.text = formatElapsed(0)
}

func (sw *Stopwatch) Handle(ev input.Event) bool {
	switch ev.Type {
	case input.LongClick:
		sw.reset()
		return true
	case input.ShortClick:
		switch sw.mode {
		case Idle:
			sw.mode = Running
			sw.elapsed = 0
			sw.text = formatElapsed(0)
		case Running:
			sw.mode = Paused
		case Paused:
			sw.mode = Running
		}
		return true
	}
	return false
}

// Mode returns the current mode.
func (sw *Stopwatch) Mode() int {
	return sw.mode
}

// Elapsed returns the stopwatch time.
func (sw *Stopwatch) Elapsed() time.Duration {
	return sw.elapsed
}

func (sw *Stopwatch) Update(elapsed time.Duration) {
	if sw.mode == Idle {
		sw.animTime += elapsed
		for sw.animTime >= sw.animStep {
			sw.animTime -= sw.animStep
			sw.frame = (sw.frame + 1) % len(sw.frames)
		}
		return
	}
	if sw.mode == Running {
		sw.elapsed += elapsed
	}
	// The text is only reformatted at the display rate.
	sw.textTime += elapsed
	if sw.textTime >= sw.textStep {
		sw.textTime %= sw.textStep
		sw.text = formatElapsed(sw.elapsed)
	}
}

// formatElapsed formats as MM:SS.mmm, with minutes kept to 2 digits.
func formatElapsed(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	s := ms / 1000
	return fmt.Sprintf("%02d:%02d.%03d", (s/60)%100, s%60, ms%1000)
}

func (sw *Stopwatch) Draw(s display.Surface) {
	s.Clear()
	if sw.mode == Idle {
		s.DrawImage(0, 0, sw.frames[sw.frame])
		return
	}
	label := "RUN"
	if sw.mode == Paused {
		label = "PAUSE"
	}
	s.DrawText(sw.font, 1, 10, white, label)
	s.DrawText(sw.font, 1, 26, cyan, sw.text)
}
