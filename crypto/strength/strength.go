/*
 * Copyright 2019 The CovenantSQL Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package strength defines the assurance levels of random building blocks.
package strength

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownStrength indicates a strength name or value that is not defined.
var ErrUnknownStrength = errors.New("unknown strength")

// Strength classifies how much a source or mixer can be relied upon.
type Strength int

const (
	// VeryLow is only fit for non security purposes.
	VeryLow Strength = 1
	// Low is a building block meant to be combined with other sources.
	Low Strength = 3
	// Medium is fit for most security purposes.
	Medium Strength = 5
	// High is fit for long term keys.
	High Strength = 7
)

func (s Strength) String() string {
	switch s {
	case VeryLow:
		return "VeryLow"
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	}
	return "Unknown"
}

// IsValid reports whether s is one of the defined levels.
func (s Strength) IsValid() bool {
	switch s {
	case VeryLow, Low, Medium, High:
		return true
	}
	return false
}

// Compare returns -1, 0 or 1 when s is weaker than, equal to or stronger than o.
func (s Strength) Compare(o Strength) int {
	switch {
	case s < o:
		return -1
	case s > o:
		return 1
	}
	return 0
}

// ParseStrength parses a case insensitive level name, "very_low" and
// "very-low" are accepted for VeryLow.
func ParseStrength(str string) (s Strength, err error) {
	key := strings.ToLower(strings.TrimSpace(str))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	switch key {
	case "verylow":
		s = VeryLow
	case "low":
		s = Low
	case "medium":
		s = Medium
	case "high":
		s = High
	default:
		err = errors.Wrapf(ErrUnknownStrength, "parse %q", str)
	}
	return
}

// MarshalYAML implements the yaml.Marshaler interface.
func (s Strength) MarshalYAML() (interface{}, error) {
	if !s.IsValid() {
		return nil, errors.Wrapf(ErrUnknownStrength, "marshal %d", int(s))
	}
	return s.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (s *Strength) UnmarshalYAML(unmarshal func(interface{}) error) (err error) {
	var str string
	if err = unmarshal(&str); err != nil {
		return
	}
	*s, err = ParseStrength(str)
	return
}
