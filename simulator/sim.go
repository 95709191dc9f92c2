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

// Simulator panel program.
// The panel is shown in a window, and the keyboard stands in for the
// rotary encoder: the arrow keys turn it one detent, and holding the
// space bar holds the button down.

package main

import (
	"context"
	"errors"
	"image"
	"log"
	"sync"

	"github.com/aamcrae/config"
	"github.com/aamcrae/panel/cfg"
	"github.com/aamcrae/panel/display"
	"github.com/aamcrae/panel/input"
	"github.com/aamcrae/panel/pins"
	"github.com/aamcrae/panel/screen"
	"github.com/aamcrae/panel/screens"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
)

var (
	configFile string
	scale      int
)

// Window is a display output and the ebiten game showing it.
type Window struct {
	knob    *pins.Knob
	turns   chan int
	w, h    int
	mu      sync.Mutex
	frame   *image.RGBA
	pressed bool
}

func main() {
	cmd := &cobra.Command{
		Use:           "simulator",
		Short:         "Run the panel in a desktop window",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "configuration file")
	cmd.Flags().IntVar(&scale, "scale", 10, "window scale")
	if err := cmd.Execute(); err != nil {
		log.Fatalf("simulator: %v", err)
	}
}

func run(ctx context.Context) error {
	var conf *config.Config
	var err error
	if configFile != "" {
		if conf, err = cfg.ParseFile(configFile); err != nil {
			return err
		}
	}
	ic, err := input.ParseConfig(conf, "input")
	if err != nil {
		return err
	}
	ic.Backend = "sim"
	dc, err := display.ParseConfig(conf, "display")
	if err != nil {
		return err
	}
	list, err := screens.Build(conf, dc.Width, dc.Height)
	if err != nil {
		return err
	}
	coord, err := screen.NewCoordinator(list)
	if err != nil {
		return err
	}
	sim := pins.NewSim()
	defer sim.Close()
	poller, err := input.NewPoller(sim, ic)
	if err != nil {
		return err
	}
	poller.Start()
	defer poller.Stop()

	// Hold each encoder state for several polls.
	pause := 4 * max(ic.PollInterval, ic.RotationDebounce)
	win := NewWindow(pins.NewKnob(sim, ic.CLK, ic.DT, ic.SW, ic.PullUp, ic.StepsPerDetent, pause), dc.Width, dc.Height)
	d := display.New(dc.Width, dc.Height, win)
	defer d.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	loop := screen.NewLoop(coord, poller.Events(), d, dc.FPS)
	done := make(chan error, 1)
	go func() {
		done <- loop.Run(ctx)
	}()
	ebiten.SetWindowSize(dc.Width*scale, dc.Height*scale)
	ebiten.SetWindowTitle("Panel simulator")
	err = ebiten.RunGame(win)
	cancel()
	if lerr := <-done; lerr != nil {
		err = errors.Join(err, lerr)
	}
	return err
}

// NewWindow creates a w by h window driving the knob.
func NewWindow(k *pins.Knob, w, h int) *Window {
	win := &Window{knob: k, turns: make(chan int, 16), w: w, h: h}
	go win.turner()
	return win
}

// turner turns the knob in the background, so the window
// is not held up by the pauses between encoder states.
func (win *Window) turner() {
	for dir := range win.turns {
		win.knob.Turn(dir)
	}
}

// Show keeps a copy of the frame for the next window update.
func (win *Window) Show(img *image.RGBA) error {
	win.mu.Lock()
	defer win.mu.Unlock()
	if win.frame == nil {
		win.frame = image.NewRGBA(img.Rect)
	}
	copy(win.frame.Pix, img.Pix)
	return nil
}

// Close stops the knob.
func (win *Window) Close() error {
	close(win.turns)
	return nil
}

func (win *Window) Update() error {
	turn := func(dir int) {
		select {
		case win.turns <- dir:
		default:
			log.Printf("simulator: knob busy, turn dropped")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		turn(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		turn(-1)
	}
	if p := ebiten.IsKeyPressed(ebiten.KeySpace); p != win.pressed {
		win.pressed = p
		win.knob.Press(p)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (win *Window) Draw(s *ebiten.Image) {
	win.mu.Lock()
	defer win.mu.Unlock()
	if win.frame != nil && win.frame.Rect.Dx() == win.w && win.frame.Rect.Dy() == win.h {
		s.WritePixels(win.frame.Pix)
	}
}

func (win *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return win.w, win.h
}
