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

import (
	"bytes"

	"github.com/DamnWidget/cbornum/num"
)

// A Value is one CBOR data item. The concrete types are:
//
//   - Uint, NegInt: the two integer majors; values outside the 64-bit
//     range widen to BigNum
//   - Bytes, Text: the string majors; Text is well-formed UTF-8
//   - Array, Map: containers; Map preserves pair order
//   - Tagged: a tag number wrapping an inner value the registry did
//     not normalise
//   - Simple, Bool, Null, Undefined: major 7 simple values
//   - Float16, Float32, Float64: major 7 floats; a decoded half keeps
//     its width for byte-exact re-encoding
//   - BigNum, Decimal, BigFloat, Rational: numbers synthesised from
//     tags 2/3, 4, 5 and 30
//   - Invalid: a tagged payload its handler rejected, kept raw
type Value interface {
	isValue()
}

// Uint is major type 0, an unsigned integer
type Uint uint64

// NegInt is major type 1; the represented value is -1 - NegInt
type NegInt uint64

// Bytes is major type 2, a byte string
type Bytes []byte

// Text is major type 3, a UTF-8 text string
type Text string

// Array is major type 4
type Array []Value

// Pair is one key/value entry of a Map
type Pair struct {
	Key   Value
	Value Value
}

// Map is major type 5; pair order is preserved as decoded or built,
// and the canonical encoder sorts by encoded key
type Map []Pair

// Tagged is major type 6 wrapping an inner value; tag chains nest
type Tagged struct {
	Number uint64
	Inner  Value
}

// Simple is an unassigned major type 7 simple value
type Simple uint8

// Bool is major 7 values 20 and 21
type Bool bool

// Null is major 7 value 22
type Null struct{}

// Undefined is major 7 value 23
type Undefined struct{}

// Float16 is a value decoded from a binary16 float; the upscale to
// binary32 is lossless so the payload is kept as float32
type Float16 float32

// Float32 is major 7 argument 26
type Float32 float32

// Float64 is major 7 argument 27
type Float64 float64

// BigNum is an integer outside the 64-bit majors, from tags 2 and 3
type BigNum struct {
	Value *num.BigInt
}

// Decimal is a decimal fraction, from tag 4
type Decimal struct {
	Value *num.ExtendedDecimal
}

// BigFloat is a binary float, from tag 5
type BigFloat struct {
	Value *num.ExtendedFloat
}

// Rational is a ratio of integers, from tag 30
type Rational struct {
	Value *num.ExtendedRational
}

// Invalid keeps the raw payload of a tagged value its handler
// rejected; strict mode never produces one, it fails the decode
type Invalid struct {
	Tag    uint64
	Raw    Value
	Reason error
}

func (Uint) isValue()      {}
func (NegInt) isValue()    {}
func (Bytes) isValue()     {}
func (Text) isValue()      {}
func (Array) isValue()     {}
func (Map) isValue()       {}
func (Tagged) isValue()    {}
func (Simple) isValue()    {}
func (Bool) isValue()      {}
func (Null) isValue()      {}
func (Undefined) isValue() {}
func (Float16) isValue()   {}
func (Float32) isValue()   {}
func (Float64) isValue()   {}
func (BigNum) isValue()    {}
func (Decimal) isValue()   {}
func (BigFloat) isValue()  {}
func (Rational) isValue()  {}
func (Invalid) isValue()   {}

// Integer builds the natural Value for a BigInt: the 64-bit majors
// when the value fits, a BigNum otherwise
func Integer(v *num.BigInt) Value {
	if v.Sign() >= 0 {
		if u, err := v.CheckedUint64(); err == nil {
			return Uint(u)
		}
		return BigNum{Value: v}
	}
	// -1 - n representation of the negative major
	n := v.Neg().Sub(num.NewBigInt(1))
	if u, err := n.CheckedUint64(); err == nil {
		return NegInt(u)
	}
	return BigNum{Value: v}
}

// Equal reports whether two values carry the same data: values are
// equal exactly when their canonical encodings are equal, which folds
// every float NaN, whatever its width, onto the one half-precision
// NaN pattern
func Equal(a, b Value) bool {
	ab, err := EncodeCanonical(a)
	if err != nil {
		return false
	}
	bb, err := EncodeCanonical(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}
