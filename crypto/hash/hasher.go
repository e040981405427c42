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
	"crypto/hmac"
	"hash"
)

// Hasher is the hash strategy consumed by the mixers.
//
// Implementations must be safe for concurrent use.
type Hasher interface {
	// Size returns the digest size in bytes.
	Size() int
	// HMAC returns the keyed hash of message, always Size() bytes long.
	HMAC(key, message []byte) ([]byte, error)
}

// HMACHasher implements Hasher with crypto/hmac over a hash.Hash constructor.
type HMACHasher struct {
	name      string
	newFunc   func() hash.Hash
	size      int
	blockSize int
}

// NewHMACHasher returns a HMACHasher named name using fn to create digests.
func NewHMACHasher(name string, fn func() hash.Hash) *HMACHasher {
	h := fn()
	return &HMACHasher{
		name:      name,
		newFunc:   fn,
		size:      h.Size(),
		blockSize: h.BlockSize(),
	}
}

// Name returns the algorithm name the hasher was created with.
func (h *HMACHasher) Name() string {
	return h.name
}

// Size implements Hasher.Size.
func (h *HMACHasher) Size() int {
	return h.size
}

// BlockSize returns the block size of the underlying digest.
func (h *HMACHasher) BlockSize() int {
	return h.blockSize
}

// Sum returns the plain digest of data.
func (h *HMACHasher) Sum(data []byte) []byte {
	d := h.newFunc()
	d.Write(data)
	return d.Sum(nil)
}

// HMAC implements Hasher.HMAC.
func (h *HMACHasher) HMAC(key, message []byte) ([]byte, error) {
	mac := hmac.New(h.newFunc, key)
	if _, err := mac.Write(message); err != nil {
		return nil, err
	}
	return mac.Sum(nil), nil
}
