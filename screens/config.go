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
	"log"
	"time"

	"github.com/aamcrae/config"
	"github.com/aamcrae/panel/cfg"
	"github.com/aamcrae/panel/display"
	"github.com/aamcrae/panel/screen"
)

// Names lists the screens that can be configured.
var Names = []string{"clock", "countdown", "text", "image", "stopwatch"}

// Build creates the screens in the order configured, each drawing
// on a w by h surface.
// Sample config:
//  [screens]
//  order=clock,countdown,text  # Screens in navigation order
//  font=basic                  # basic, inconsolata, inconsolata-bold, proggy or a .ttf file
//  points=10                   # Size of .ttf fonts
//  timezone=America/Chicago    # Clock and countdown location
//
//  [text]
//  message=Salaam!
//
//  [image]
//  files=a.png,b.png
//  nearest=true                # Nearest neighbour scaling, else Catmull-Rom
//
//  [stopwatch]
//  frames=/usr/share/panel     # Directory holding stopwatch0.png .. stopwatch7.png
//  anim_fps=12
//  display_fps=30
func Build(conf *config.Config, w, h int) ([]screen.Screen, error) {
	s := cfg.Get(conf, "screens")
	order, err := s.List("order", []string{"clock", "text"})
	if err != nil {
		return nil, err
	}
	points, err := s.Float("points", 10)
	if err != nil {
		return nil, err
	}
	face, err := s.String("font", "basic")
	if err != nil {
		return nil, err
	}
	font, err := display.LoadFont(face, points)
	if err != nil {
		return nil, err
	}
	tz, err := s.String("timezone", "Local")
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	var list []screen.Screen
	for _, name := range order {
		sc, err := build(conf, name, font, loc, w, h)
		if err != nil {
			return nil, err
		}
		list = append(list, sc)
	}
	log.Printf("screens: %v, font %s, timezone %s", order, font.Name, loc)
	return list, nil
}

func build(conf *config.Config, name string, font *display.Font, loc *time.Location, w, h int) (screen.Screen, error) {
	s := cfg.Get(conf, name)
	switch name {
	case "clock":
		return NewClock(font, loc), nil
	case "countdown":
		return NewCountdown(font, loc), nil
	case "text":
		msg, err := s.String("message", "Salaam!")
		if err != nil {
			return nil, err
		}
		return NewText(font, msg), nil
	case "image":
		nearest, err := s.Bool("nearest", true)
		if err != nil {
			return nil, err
		}
		files, err := s.List("files", nil)
		if err != nil {
			return nil, err
		}
		im, err := NewImage(files, w, h, nearest)
		if err != nil {
			return nil, err
		}
		return im, nil
	case "stopwatch":
		anim, err := s.Float("anim_fps", 12)
		if err != nil {
			return nil, err
		}
		fps, err := s.Float("display_fps", 30)
		if err != nil {
			return nil, err
		}
		frames, err := s.String("frames", ".")
		if err != nil {
			return nil, err
		}
		sw, err := NewStopwatch(font, frames, w, h, anim, fps)
		if err != nil {
			return nil, err
		}
		return sw, nil
	}
	return nil, fmt.Errorf("%s: unknown screen", name)
}
