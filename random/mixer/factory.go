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

package mixer

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/CovenantSQL/randmix/crypto/strength"
	"github.com/CovenantSQL/randmix/utils/log"
)

var (
	// ErrMixerNotFound indicates no available mixer satisfies the request.
	ErrMixerNotFound = errors.New("mixer not found")
	// ErrDuplicateMixer indicates the mixer name is already registered.
	ErrDuplicateMixer = errors.New("mixer already registered")
	// ErrInvalidDescriptor indicates a descriptor without name, constructor
	// or valid strength.
	ErrInvalidDescriptor = errors.New("invalid mixer descriptor")
)

// Descriptor describes a mixer without constructing it.
type Descriptor struct {
	Name     string
	Strength strength.Strength
	// Test reports availability, nil means always available.
	Test func() bool
	New  func() (Mixer, error)
}

func (d *Descriptor) available() bool {
	return d.Test == nil || d.Test()
}

// Factory selects mixers by strength.
type Factory struct {
	sync.RWMutex
	mixers map[string]Descriptor
}

// NewFactory returns a Factory with the hash mixer registered, backed by the
// named hash algorithm.
func NewFactory(algorithm string) *Factory {
	f := &Factory{
		mixers: make(map[string]Descriptor),
	}
	f.mixers[HashMixerName] = Descriptor{
		Name:     HashMixerName,
		Strength: HashMixerStrength(),
		Test:     HashMixerAvailable,
		New: func() (Mixer, error) {
			m, err := NewHashMixerWithAlgorithm(algorithm)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
	}
	return f
}

// Register adds a mixer to the factory.
func (f *Factory) Register(d Descriptor) error {
	if d.Name == "" || d.New == nil || !d.Strength.IsValid() {
		return errors.Wrapf(ErrInvalidDescriptor, "register %q", d.Name)
	}

	f.Lock()
	defer f.Unlock()
	if _, ok := f.mixers[d.Name]; ok {
		return errors.Wrapf(ErrDuplicateMixer, "register %q", d.Name)
	}
	f.mixers[d.Name] = d
	return nil
}

// Mixers returns the available mixers sorted by name.
func (f *Factory) Mixers() (ds []Descriptor) {
	f.RLock()
	defer f.RUnlock()
	for _, d := range f.mixers {
		if d.available() {
			ds = append(ds, d)
		}
	}
	sort.Slice(ds, func(i, j int) bool {
		return ds[i].Name < ds[j].Name
	})
	return
}

// Get returns a new mixer of strength s. Without an exact match, the
// strongest mixer weaker than s is used, a stronger one is never
// substituted. Ties are broken by name.
func (f *Factory) Get(s strength.Strength) (m Mixer, err error) {
	var exact, fallback *Descriptor
	ds := f.Mixers()
	for i := range ds {
		d := &ds[i]
		switch d.Strength.Compare(s) {
		case 0:
			if exact == nil {
				exact = d
			}
		case -1:
			if fallback == nil || d.Strength > fallback.Strength {
				fallback = d
			}
		}
	}

	chosen := exact
	if chosen == nil {
		chosen = fallback
	}
	if chosen == nil {
		err = errors.Wrapf(ErrMixerNotFound, "strength %s", s)
		return
	}

	if m, err = chosen.New(); err != nil {
		m = nil
		err = errors.Wrapf(err, "create mixer %q failed", chosen.Name)
		return
	}

	log.WithFields(log.Fields{
		"mixer":     chosen.Name,
		"requested": s.String(),
		"strength":  chosen.Strength.String(),
	}).Debug("mixer selected")
	return
}
