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

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSplitBlocks(t *testing.T) {
	Convey("split into blocks", t, func() {
		So(SplitBlocks(nil, 4), ShouldBeEmpty)
		So(SplitBlocks([]byte{}, 4), ShouldBeEmpty)
		So(SplitBlocks([]byte{'0'}, 0), ShouldBeEmpty)
		So(SplitBlocks([]byte{'0'}, -1), ShouldBeEmpty)
		So(SplitBlocks([]byte{'0', '1'}, 4), ShouldResemble, [][]byte{{'0', '1'}})
		So(SplitBlocks([]byte{'0', '1', '2', '3'}, 4), ShouldResemble, [][]byte{{'0', '1', '2', '3'}})
		So(SplitBlocks([]byte{'0', '1', '2', '3', '4'}, 2), ShouldResemble,
			[][]byte{{'0', '1'}, {'2', '3'}, {'4'}})
		So(SplitBlocks([]byte{'0', '1', '2', '3'}, 1), ShouldHaveLength, 4)
	})
	Convey("blocks can not grow into each other", t, func() {
		blocks := SplitBlocks([]byte{'0', '1', '2', '3'}, 2)
		So(cap(blocks[0]), ShouldEqual, 2)
		_ = append(blocks[0], 'x')
		So(blocks[1], ShouldResemble, []byte{'2', '3'})
	})
}

func TestXORBytes(t *testing.T) {
	Convey("xor bytes", t, func() {
		dst := make([]byte, 3)
		So(XORBytes(dst, []byte{0x0f, 0xf0, 0xff}, []byte{0xff, 0xff, 0xff}), ShouldEqual, 3)
		So(dst, ShouldResemble, []byte{0xf0, 0x0f, 0x00})

		dst = make([]byte, 3)
		So(XORBytes(dst, []byte{0x01, 0x02}, []byte{0x03, 0x04, 0x05}), ShouldEqual, 2)
		So(dst, ShouldResemble, []byte{0x02, 0x06, 0x00})

		dst = make([]byte, 1)
		So(XORBytes(dst, []byte{0x01, 0x02}, []byte{0x03, 0x04}), ShouldEqual, 1)
		So(dst, ShouldResemble, []byte{0x02})

		So(XORBytes(nil, nil, nil), ShouldEqual, 0)
	})
	Convey("xor in place", t, func() {
		a := []byte{0xaa, 0x55}
		XORBytes(a, a, []byte{0xff, 0xff})
		So(a, ShouldResemble, []byte{0x55, 0xaa})
	})
}
