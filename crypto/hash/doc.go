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

// Package hash provides abstracted keyed hash functionality.
//
// A Hasher only exposes the digest size and an HMAC construction, which is all
// the entropy mixers need. Concrete algorithms are resolved by name through a
// Factory, so the algorithm backing a mixer can be chosen from configuration:
//
//	h, err := hash.GetHash("sha512")
//	if err != nil {
//		// unknown or unavailable algorithm
//	}
//	mac, err := h.HMAC(key, message)
//
// Besides the standard library digests, the factory knows the SHA-3 family and
// Keccak-256, RIPEMD-160, BLAKE2b (SIMD accelerated) and two chained digests:
// "sha256d" which is SHA-256(SHA-256(x)), the length-extension resistant
// construction from "Practical Cryptography", and "thash" which is
// SHA-256(BLAKE2b-512(x)).
package hash
