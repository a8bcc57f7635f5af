// A Golang RFC7049 implementation
// Copyright (C) 2015 Oscar Campos

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

// http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cbor

import "fmt"

type Major byte

// RFC7049 defines eight "Major Types" that are contained in the
// higher-order 3 bits in the initial byte of data of a 'data item'
const (
	cborUnsignedInt Major = iota // Unsigned integers
	cborNegativeInt              // Negative integers
	cborByteString               // String of bytes
	cborTextString               // String of text UTF-8 encoded
	cborDataArray                // Array of arbitrary data
	cborDataMap                  // Map of arbitrary data
	cborTag                      // Semantic tag
	cborNC                       // Other types that needs no content like "break"
)

func (m Major) String() string {
	switch m {
	case cborUnsignedInt:
		return "unsigned integer"
	case cborNegativeInt:
		return "negative integer"
	case cborByteString:
		return "byte string"
	case cborTextString:
		return "text string"
	case cborDataArray:
		return "array"
	case cborDataMap:
		return "map"
	case cborTag:
		return "tag"
	case cborNC:
		return "simple/float"
	}
	return fmt.Sprintf("Major(%d)", byte(m))
}

// Additional information contained in the 5 low-order bits of
// the header byte have an specific meaning in general and a
// special meaning in case of the Major 7
const (
	cborSmallInt   byte = 0x17
	cborUint8      byte = 0x18
	cborUint16     byte = 0x19
	cborUint32     byte = 0x1a
	cborUint64     byte = 0x1b
	cborIndefinite byte = 0x1f
)

// Additional information values for Major 7
const (
	cborFalse byte = 0x14 + iota
	cborTrue
	cborNil
	cborUndef
	cborSimple
	cborFloat16
	cborFloat32
	cborFloat64
)

// Well-known tags the codec normalises through the registry
const (
	tagBigNum    uint64 = 2
	tagBigNegNum uint64 = 3
	tagFraction  uint64 = 4
	tagBigFloat  uint64 = 5
	tagRational  uint64 = 30
)

// this is being used to break indefinite streams
const cborBreak byte = 0xff

// convenience header constants for the Major 7 payloads
const (
	absoluteFalse byte = 0xf4 + iota
	absoluteTrue
	absoluteNil
	absoluteUndef
	absoluteSimple
	absoluteFloat16
	absoluteFloat32
	absoluteFloat64
)
