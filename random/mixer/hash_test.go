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
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"sync"
	"testing"

	"github.com/fortytw2/leaktest"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/CovenantSQL/randmix/crypto/hash"
	"github.com/CovenantSQL/randmix/crypto/strength"
)

type failingHasher struct {
	err error
}

func (f *failingHasher) Size() int {
	return 32
}

func (f *failingHasher) HMAC(key, message []byte) ([]byte, error) {
	return nil, f.err
}

func TestHashMixer(t *testing.T) {
	Convey("default hash mixer", t, func() {
		m, err := NewHashMixer(nil)
		So(err, ShouldBeNil)
		So(m.PartSize(), ShouldEqual, sha512.Size)

		out, err := m.Mix([]byte("source-a"), []byte("source-b"))
		So(err, ShouldBeNil)
		So(out, ShouldHaveLength, 64)

		again, err := m.Mix([]byte("source-a"), []byte("source-b"))
		So(err, ShouldBeNil)
		So(again, ShouldResemble, out)

		swapped, err := m.Mix([]byte("source-b"), []byte("source-a"))
		So(err, ShouldBeNil)
		So(swapped, ShouldHaveLength, 64)
		So(swapped, ShouldNotResemble, out)
	})
	Convey("pairwise functions are swapped hmacs", t, func() {
		m, err := NewHashMixerWithAlgorithm("sha512")
		So(err, ShouldBeNil)
		a, b := []byte("part-a"), []byte("part-b")

		mac := hmac.New(sha512.New, a)
		mac.Write(b)
		p1, err := m.MixParts1(a, b)
		So(err, ShouldBeNil)
		So(p1, ShouldResemble, mac.Sum(nil))

		p2, err := m.MixParts2(a, b)
		So(err, ShouldBeNil)
		So(p2, ShouldNotResemble, p1)

		p2Swapped, err := m.MixParts2(b, a)
		So(err, ShouldBeNil)
		So(p2Swapped, ShouldResemble, p1)
	})
	Convey("empty parts", t, func() {
		m, err := NewHashMixer(nil)
		So(err, ShouldBeNil)

		empty, err := m.Mix(nil, nil)
		So(err, ShouldBeNil)
		So(empty, ShouldHaveLength, m.PartSize())
		So(empty, ShouldNotResemble, make([]byte, m.PartSize()))

		again, err := m.Mix([]byte{}, []byte{})
		So(err, ShouldBeNil)
		So(again, ShouldResemble, empty)

		a := []byte("some entropy")
		left, err := m.Mix(a, nil)
		So(err, ShouldBeNil)
		right, err := m.Mix(nil, a)
		So(err, ShouldBeNil)
		So(left, ShouldHaveLength, m.PartSize())
		So(right, ShouldHaveLength, m.PartSize())
		So(left, ShouldNotResemble, right)
	})
	Convey("single bit flips change the output", t, func() {
		m, err := NewHashMixer(nil)
		So(err, ShouldBeNil)

		a := bytes.Repeat([]byte("alpha"), 40)
		b := bytes.Repeat([]byte("beta"), 7)
		base, err := m.Mix(a, b)
		So(err, ShouldBeNil)

		for _, i := range []int{0, 63, 64, 127, 128, len(a) - 1} {
			flipped := append([]byte{}, a...)
			flipped[i] ^= 0x01
			out, err := m.Mix(flipped, b)
			So(err, ShouldBeNil)
			So(out, ShouldNotResemble, base)
		}
		for _, i := range []int{0, len(b) - 1} {
			flipped := append([]byte{}, b...)
			flipped[i] ^= 0x40
			out, err := m.Mix(a, flipped)
			So(err, ShouldBeNil)
			So(out, ShouldNotResemble, base)
		}
	})
	Convey("part size follows the hash", t, func() {
		for name, size := range map[string]int{
			"sha256":      32,
			"sha3-384":    48,
			"blake2b-512": 64,
			"thash":       32,
		} {
			m, err := NewHashMixerWithAlgorithm(name)
			So(err, ShouldBeNil)
			So(m.PartSize(), ShouldEqual, size)
			out, err := m.Mix([]byte("source-a"), []byte("source-b"))
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, size)
		}
	})
	Convey("different hashes give different blocks", t, func() {
		m1, _ := NewHashMixerWithAlgorithm("sha256")
		m2, _ := NewHashMixerWithAlgorithm("sha3-256")
		out1, _ := m1.Mix([]byte("source-a"), []byte("source-b"))
		out2, _ := m2.Mix([]byte("source-a"), []byte("source-b"))
		So(out1, ShouldNotResemble, out2)
	})
	Convey("strength and availability are fixed", t, func() {
		for _, name := range []string{"sha512", "md5", "keccak256"} {
			m, err := NewHashMixerWithAlgorithm(name)
			So(err, ShouldBeNil)
			So(m.Strength(), ShouldEqual, strength.Low)
			So(m.Test(), ShouldBeTrue)
		}
		So(HashMixerStrength(), ShouldEqual, strength.Low)
		So(HashMixerAvailable(), ShouldBeTrue)
	})
	Convey("unknown algorithm fails at construction", t, func() {
		m, err := NewHashMixerWithAlgorithm("no-such-hash")
		So(m, ShouldBeNil)
		So(err, ShouldNotBeNil)
		So(errors.Cause(err), ShouldEqual, hash.ErrUnknownAlgorithm)
	})
	Convey("hasher failures propagate unchanged", t, func() {
		hashErr := errors.New("hasher state corrupted")
		m, err := NewHashMixer(&failingHasher{err: hashErr})
		So(err, ShouldBeNil)
		out, err := m.Mix([]byte("a"), []byte("b"))
		So(out, ShouldBeNil)
		So(err, ShouldEqual, hashErr)
	})
	Convey("hasher without size is rejected", t, func() {
		m, err := NewHashMixer(&zeroSizeHasher{})
		So(m, ShouldBeNil)
		So(errors.Cause(err), ShouldEqual, ErrInvalidPartSize)
	})
}

func TestHashMixerConcurrent(t *testing.T) {
	defer leaktest.Check(t)()

	Convey("a mixer is shared by concurrent callers", t, func() {
		m, err := NewHashMixer(nil)
		So(err, ShouldBeNil)
		want, err := m.Mix([]byte("source-a"), []byte("source-b"))
		So(err, ShouldBeNil)

		var wg sync.WaitGroup
		results := make([][]byte, 32)
		errs := make([]error, len(results))
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = m.Mix([]byte("source-a"), []byte("source-b"))
			}(i)
		}
		wg.Wait()
		for i := range results {
			So(errs[i], ShouldBeNil)
			So(results[i], ShouldResemble, want)
		}
	})
}

type zeroSizeHasher struct{}

func (z *zeroSizeHasher) Size() int {
	return 0
}

func (z *zeroSizeHasher) HMAC(key, message []byte) ([]byte, error) {
	return nil, nil
}

func BenchmarkHashMixer(b *testing.B) {
	m, err := NewHashMixer(nil)
	if err != nil {
		b.Fatal(err)
	}
	partA := bytes.Repeat([]byte{0xaa}, 4096)
	partB := bytes.Repeat([]byte{0x55}, 1024)
	b.SetBytes(int64(len(partA) + len(partB)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = m.Mix(partA, partB); err != nil {
			b.Fatal(err)
		}
	}
}
