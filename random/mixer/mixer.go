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

// Package mixer combines entropy samples from different sources into a single
// block, following RFC 4086 section 5.2.
//
// The block reduction is shared by every mixer: both inputs are split into
// blocks of PartSize bytes, the blocks are paired by index and each pair is
// folded into an accumulator with the two pairwise functions of the mixer.
// The result is always exactly PartSize bytes, whatever the input lengths.
package mixer

import (
	"github.com/pkg/errors"

	"github.com/CovenantSQL/randmix/crypto/strength"
	"github.com/CovenantSQL/randmix/utils"
)

// ErrInvalidPartSize indicates a mixer reported a non positive part size or a
// pairwise function returned a block of the wrong size.
var ErrInvalidPartSize = errors.New("invalid part size")

// PartMixer is the extension point of the block reduction.
//
// MixParts1 and MixParts2 must be distinct, order sensitive functions of
// exactly one block from each side, both returning PartSize bytes.
type PartMixer interface {
	PartSize() int
	MixParts1(part1, part2 []byte) ([]byte, error)
	MixParts2(part1, part2 []byte) ([]byte, error)
}

// Mixer combines two entropy parts.
type Mixer interface {
	// Mix returns a block of the mixer part size depending on every byte of
	// partA and partB.
	Mix(partA, partB []byte) ([]byte, error)
	// Strength returns the fixed quality classification of the mixer.
	Strength() strength.Strength
	// Test reports whether the mixer is usable in the current environment.
	Test() bool
}

// Mix reduces partA and partB to a single block of pm.PartSize() bytes.
//
// The shorter block sequence is padded with empty blocks, so a block is
// always paired with the block at the same index of the other part, or with
// nothing. For each pair (a, b):
//
//	r1  = MixParts1(a, b)
//	r2  = MixParts2(a, b)
//	acc = MixParts1(acc, r1) ^ MixParts2(acc, r2)
//
// acc starts as a zero block. Two empty inputs still go through one round.
// Errors of the pairwise functions are returned as is.
func Mix(pm PartMixer, partA, partB []byte) (acc []byte, err error) {
	size := pm.PartSize()
	if size <= 0 {
		err = errors.Wrapf(ErrInvalidPartSize, "part size %d", size)
		return
	}

	blocksA := utils.SplitBlocks(partA, size)
	blocksB := utils.SplitBlocks(partB, size)

	rounds := len(blocksA)
	if len(blocksB) > rounds {
		rounds = len(blocksB)
	}
	if rounds == 0 {
		rounds = 1
	}

	acc = make([]byte, size)
	for i := 0; i < rounds; i++ {
		var a, b []byte
		if i < len(blocksA) {
			a = blocksA[i]
		}
		if i < len(blocksB) {
			b = blocksB[i]
		}
		if acc, err = mixRound(pm, size, acc, a, b); err != nil {
			acc = nil
			return
		}
	}

	return
}

func mixRound(pm PartMixer, size int, acc, a, b []byte) (next []byte, err error) {
	var r1, r2, m1, m2 []byte
	if r1, err = mixParts(pm.MixParts1, size, a, b); err != nil {
		return
	}
	if r2, err = mixParts(pm.MixParts2, size, a, b); err != nil {
		return
	}
	if m1, err = mixParts(pm.MixParts1, size, acc, r1); err != nil {
		return
	}
	if m2, err = mixParts(pm.MixParts2, size, acc, r2); err != nil {
		return
	}

	next = make([]byte, size)
	utils.XORBytes(next, m1, m2)
	return
}

func mixParts(f func(part1, part2 []byte) ([]byte, error), size int, part1, part2 []byte) (out []byte, err error) {
	if out, err = f(part1, part2); err != nil {
		return
	}
	if len(out) != size {
		err = errors.Wrapf(ErrInvalidPartSize, "mixed part is %d bytes, want %d", len(out), size)
		out = nil
	}
	return
}

// MixAll folds every part into a single block with m, from left to right.
// Zero parts mix two empty parts and a single part is mixed with an empty one,
// so the result always has the part size of m.
func MixAll(m Mixer, parts ...[]byte) (out []byte, err error) {
	switch len(parts) {
	case 0:
		return m.Mix(nil, nil)
	case 1:
		return m.Mix(parts[0], nil)
	}

	out = parts[0]
	for _, part := range parts[1:] {
		if out, err = m.Mix(out, part); err != nil {
			return nil, err
		}
	}
	return
}
