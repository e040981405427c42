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

package hash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"sort"
	"strings"
	"sync"

	blake2b "github.com/minio/blake2b-simd"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"

	"github.com/CovenantSQL/randmix/utils/log"
)

// DefaultAlgorithm is the algorithm used when none is configured.
const DefaultAlgorithm = "sha512"

var (
	// ErrUnknownAlgorithm indicates the requested algorithm is not registered.
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
	// ErrDuplicateAlgorithm indicates the algorithm name is already registered.
	ErrDuplicateAlgorithm = errors.New("hash algorithm already registered")
	// ErrInvalidAlgorithm indicates an empty name or a nil constructor.
	ErrInvalidAlgorithm = errors.New("invalid hash algorithm")
)

var builtinAlgorithms = map[string]func() hash.Hash{
	"md5":         md5.New,
	"sha1":        sha1.New,
	"sha224":      sha256.New224,
	"sha256":      sha256.New,
	"sha384":      sha512.New384,
	"sha512":      sha512.New,
	"sha512/224":  sha512.New512_224,
	"sha512/256":  sha512.New512_256,
	"sha3-224":    sha3.New224,
	"sha3-256":    sha3.New256,
	"sha3-384":    sha3.New384,
	"sha3-512":    sha3.New512,
	"keccak256":   sha3.NewLegacyKeccak256,
	"ripemd160":   ripemd160.New,
	"blake2b-256": blake2b.New256,
	"blake2b-512": blake2b.New512,
	"sha256d":     NewDoubleSHA256,
	"thash":       NewTHash,
}

// Factory resolves hash algorithms by name.
type Factory struct {
	sync.RWMutex
	algorithms map[string]func() hash.Hash
}

// NewFactory returns a Factory knowing all the built-in algorithms.
func NewFactory() *Factory {
	f := &Factory{
		algorithms: make(map[string]func() hash.Hash, len(builtinAlgorithms)),
	}
	for name, fn := range builtinAlgorithms {
		f.algorithms[name] = fn
	}
	return f
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a new algorithm to the factory.
func (f *Factory) Register(name string, fn func() hash.Hash) (err error) {
	key := normalizeName(name)
	if key == "" || fn == nil {
		return errors.Wrapf(ErrInvalidAlgorithm, "register %q", name)
	}

	f.Lock()
	defer f.Unlock()
	if _, ok := f.algorithms[key]; ok {
		return errors.Wrapf(ErrDuplicateAlgorithm, "register %q", name)
	}
	f.algorithms[key] = fn
	return
}

// Has reports whether name can be resolved.
func (f *Factory) Has(name string) bool {
	f.RLock()
	defer f.RUnlock()
	_, ok := f.algorithms[normalizeName(name)]
	return ok
}

// GetHash returns the HMACHasher for name.
func (f *Factory) GetHash(name string) (h *HMACHasher, err error) {
	key := normalizeName(name)

	f.RLock()
	fn, ok := f.algorithms[key]
	f.RUnlock()

	if !ok {
		err = errors.Wrapf(ErrUnknownAlgorithm, "resolve %q", name)
		return
	}

	h = NewHMACHasher(key, fn)
	log.WithFields(log.Fields{
		"algorithm": key,
		"size":      h.Size(),
	}).Debug("resolved hash algorithm")
	return
}

// Algorithms returns the sorted names of all registered algorithms.
func (f *Factory) Algorithms() (names []string) {
	f.RLock()
	defer f.RUnlock()
	names = make([]string, 0, len(f.algorithms))
	for name := range f.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

var defaultFactory = NewFactory()

// DefaultFactory returns the package level factory.
func DefaultFactory() *Factory {
	return defaultFactory
}

// GetHash resolves name with the default factory.
func GetHash(name string) (*HMACHasher, error) {
	return defaultFactory.GetHash(name)
}

// Algorithms lists the algorithms of the default factory.
func Algorithms() []string {
	return defaultFactory.Algorithms()
}
