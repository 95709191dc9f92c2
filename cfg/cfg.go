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

// Package cfg provides typed access with defaults to the sections
// of a configuration file.
package cfg

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aamcrae/config"
)

// Section wraps a configuration file section. A missing section
// behaves as an empty one, so every value takes its default.
type Section struct {
	Name string
	s    *config.Section
}

// Get returns the named section of the configuration.
func Get(conf *config.Config, name string) *Section {
	sec := &Section{Name: name}
	if conf != nil {
		sec.s = conf.GetSection(name)
	}
	return sec
}

// ParseFile reads a configuration file.
func ParseFile(name string) (*config.Config, error) {
	return config.ParseFile(name)
}

// ParseString reads configuration text.
func ParseString(text string) (*config.Config, error) {
	return config.ParseString(text)
}

// Present reports whether the section exists in the configuration.
func (s *Section) Present() bool {
	return s.s != nil
}

// Has reports whether a key is set in the section.
func (s *Section) Has(key string) bool {
	return s.s != nil && len(s.s.Get(key)) > 0
}

// values returns the comma separated values of a key, with any
// trailing # comment removed. The config parser splits lines on
// '=' and ',', so a value list arrives as separate tokens.
// A key set more than once is an error.
func (s *Section) values(key string) ([]string, bool, error) {
	if s.s == nil {
		return nil, false, nil
	}
	entries := s.s.Get(key)
	switch len(entries) {
	case 0:
		return nil, false, nil
	case 1:
	default:
		return nil, false, fmt.Errorf("%s: %s: set %d times", s.Name, key, len(entries))
	}
	var v []string
	for _, tok := range entries[0].Tokens {
		tok, _, comment := strings.Cut(tok, "#")
		if comment && strings.TrimSpace(tok) == "" {
			break
		}
		v = append(v, tok)
		if comment {
			break
		}
	}
	return v, true, nil
}

// scalar returns the single value of a key.
func (s *Section) scalar(key string) (string, bool, error) {
	v, ok, err := s.values(key)
	if !ok || err != nil {
		return "", ok, err
	}
	switch len(v) {
	case 0:
		return "", true, nil
	case 1:
		return strings.TrimSpace(v[0]), true, nil
	}
	return "", true, fmt.Errorf("%s: %s: expected a single value, got %q", s.Name, key, v)
}

// String returns a string value. Commas in the value are kept.
func (s *Section) String(key, def string) (string, error) {
	v, ok, err := s.values(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return def, nil
	}
	return strings.TrimSpace(strings.Join(v, ",")), nil
}

// List returns a comma separated list, with empty entries removed.
func (s *Section) List(key string, def []string) ([]string, error) {
	v, ok, err := s.values(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	var l []string
	for _, e := range v {
		if e = strings.TrimSpace(e); e != "" {
			l = append(l, e)
		}
	}
	return l, nil
}

// Int returns an integer value.
func (s *Section) Int(key string, def int) (int, error) {
	v, ok, err := s.scalar(key)
	if !ok || err != nil {
		return def, err
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %v", s.Name, key, err)
	}
	return i, nil
}

// Float returns a floating point value.
func (s *Section) Float(key string, def float64) (float64, error) {
	v, ok, err := s.scalar(key)
	if !ok || err != nil {
		return def, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %v", s.Name, key, err)
	}
	return f, nil
}

// Bool returns a boolean value.
func (s *Section) Bool(key string, def bool) (bool, error) {
	v, ok, err := s.scalar(key)
	if !ok || err != nil {
		return def, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %s: %v", s.Name, key, err)
	}
	return b, nil
}

// Seconds returns a value given in (fractional) seconds as a duration.
func (s *Section) Seconds(key string, def time.Duration) (time.Duration, error) {
	if !s.Has(key) {
		return def, nil
	}
	f, err := s.Float(key, 0)
	if err != nil {
		return 0, err
	}
	return time.Duration(math.Round(f * float64(time.Second))), nil
}
