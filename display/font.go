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
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is either a scalable or fixed font face, or a TinyGo bitmap font.
type Font struct {
	Name string
	face font.Face
	tiny *tinyfont.Font
}

// Fonts lists the built in font names.
var Fonts = []string{"basic", "inconsolata", "inconsolata-bold", "proggy"}

// LoadFont returns a built in font by name, or loads a TrueType
// font file at the size given in points.
func LoadFont(name string, points float64) (*Font, error) {
	f := &Font{Name: name}
	switch name {
	case "", "basic":
		f.face = basicfont.Face7x13
	case "inconsolata":
		f.face = inconsolata.Regular8x16
	case "inconsolata-bold":
		f.face = inconsolata.Bold8x16
	case "proggy":
		f.tiny = &proggy.TinySZ8pt7b
	default:
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			return nil, fmt.Errorf("%s: unknown font", name)
		}
		face, err := gg.LoadFontFace(name, points)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", name, err)
		}
		f.face = face
	}
	return f, nil
}
