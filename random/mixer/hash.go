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
	"github.com/pkg/errors"

	"github.com/CovenantSQL/randmix/crypto/hash"
	"github.com/CovenantSQL/randmix/crypto/strength"
	"github.com/CovenantSQL/randmix/utils/log"
)

// HashMixerName is the name of the hash mixer in a Factory.
const HashMixerName = "hash"

// HashMixer mixes parts with the HMAC of a hash.Hasher.
//
// It is a low strength building block: combine it with other sources rather
// than relying on it alone.
type HashMixer struct {
	hasher hash.Hasher
}

// NewHashMixer returns a HashMixer using h, a nil h resolves
// hash.DefaultAlgorithm.
func NewHashMixer(h hash.Hasher) (m *HashMixer, err error) {
	if h == nil {
		return NewHashMixerWithAlgorithm(hash.DefaultAlgorithm)
	}
	if h.Size() <= 0 {
		err = errors.Wrapf(ErrInvalidPartSize, "hasher size %d", h.Size())
		return
	}

	m = &HashMixer{hasher: h}
	log.WithField("size", h.Size()).Debug("hash mixer created")
	return
}

// NewHashMixerWithAlgorithm returns a HashMixer using the named algorithm of
// the default hash factory.
func NewHashMixerWithAlgorithm(algorithm string) (m *HashMixer, err error) {
	var h *hash.HMACHasher
	if h, err = hash.GetHash(algorithm); err != nil {
		err = errors.Wrap(err, "create hash mixer failed")
		return
	}
	return NewHashMixer(h)
}

// HashMixerStrength returns the strength of every HashMixer.
func HashMixerStrength() strength.Strength {
	return strength.Low
}

// HashMixerAvailable reports whether a HashMixer can be used, the hash
// primitives are always compiled in.
func HashMixerAvailable() bool {
	return true
}

// PartSize implements PartMixer.PartSize.
func (m *HashMixer) PartSize() int {
	return m.hasher.Size()
}

// MixParts1 returns the HMAC of part2 keyed with part1.
func (m *HashMixer) MixParts1(part1, part2 []byte) ([]byte, error) {
	return m.hasher.HMAC(part1, part2)
}

// MixParts2 returns the HMAC of part1 keyed with part2.
func (m *HashMixer) MixParts2(part1, part2 []byte) ([]byte, error) {
	return m.hasher.HMAC(part2, part1)
}

// Mix implements Mixer.Mix.
func (m *HashMixer) Mix(partA, partB []byte) ([]byte, error) {
	return Mix(m, partA, partB)
}

// Strength implements Mixer.Strength.
func (m *HashMixer) Strength() strength.Strength {
	return HashMixerStrength()
}

// Test implements Mixer.Test.
func (m *HashMixer) Test() bool {
	return HashMixerAvailable()
}
