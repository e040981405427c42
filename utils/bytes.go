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

package utils

// SplitBlocks splits b into consecutive blocks of size bytes, the last block
// may be shorter. The blocks share memory with b. An empty b or a non
// positive size gives no block.
func SplitBlocks(b []byte, size int) (blocks [][]byte) {
	if size <= 0 || len(b) == 0 {
		return
	}

	blocks = make([][]byte, 0, (len(b)+size-1)/size)
	for len(b) > size {
		blocks = append(blocks, b[:size:size])
		b = b[size:]
	}
	return append(blocks, b)
}

// XORBytes sets dst[i] = a[i] ^ b[i] for every i < n, where n is the shortest
// length of the three slices, and returns n.
func XORBytes(dst, a, b []byte) (n int) {
	n = len(a)
	if len(b) < n {
		n = len(b)
	}
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
	return
}
