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
	"fmt"
	"io"
	"sort"

	"github.com/DamnWidget/cbornum/num"
)

// An Encoder writes encoded CBOR 'data items' to an output stream.
// Arguments always take their shortest encoding; canonical mode
// additionally sorts map keys into the canonical order and emits every
// float in the narrowest exact width.
type Encoder struct {
	composer  *composer
	canonical bool
}

// NewEncoder returns a new encoder that writes to w in canonical mode;
// options may relax it
func NewEncoder(w io.Writer, options ...func(*Encoder)) *Encoder {
	e := &Encoder{composer: newComposer(w), canonical: true}
	for _, option := range options {
		option(e)
	}
	return e
}

// PreserveEncodings keeps map pair order and float widths as built
// instead of canonicalising them
func PreserveEncodings(e *Encoder) {
	e.canonical = false
}

// Encode writes one value
func (enc *Encoder) Encode(v Value) error {
	return enc.encode(v)
}

// EncodeCanonical returns the canonical encoding of v as a byte slice
func EncodeCanonical(v Value) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (enc *Encoder) encode(v Value) error {
	c := enc.composer
	switch t := v.(type) {
	case Uint:
		return c.composeUint(uint64(t))
	case NegInt:
		return c.composeUint(uint64(t), cborNegativeInt)
	case Bytes:
		return c.composeBytes(t)
	case Text:
		return c.composeString(string(t))
	case Array:
		if err := c.composeUint(uint64(len(t)), cborDataArray); err != nil {
			return err
		}
		for _, item := range t {
			if err := enc.encode(item); err != nil {
				return err
			}
		}
		return nil
	case Map:
		return enc.encodeMap(t)
	case Tagged:
		if err := c.composeTag(t.Number); err != nil {
			return err
		}
		return enc.encode(t.Inner)
	case Simple:
		return c.composeSimple(uint8(t))
	case Bool:
		return c.composeBoolean(bool(t))
	case Null:
		return c.composeNil()
	case Undefined:
		return c.composeUndefined()
	case Float16:
		return enc.encodeFloat(float64(t), 16)
	case Float32:
		return enc.encodeFloat(float64(t), 32)
	case Float64:
		return enc.encodeFloat(float64(t), 64)
	case BigNum:
		return enc.encodeBigNum(t.Value)
	case Decimal:
		return enc.encodeDecimal(t.Value)
	case BigFloat:
		return enc.encodeBigFloat(t.Value)
	case Rational:
		return enc.encodeRational(t.Value)
	case Invalid:
		if err := c.composeTag(t.Tag); err != nil {
			return err
		}
		return enc.encode(t.Raw)
	case nil:
		return c.composeNil()
	default:
		return &UnsupportedValueError{Str: fmt.Sprintf("%T", v)}
	}
}

// encodeFloat emits the value's own width, or the narrowest exact one
// in canonical mode; a half always re-encodes as a half since the
// decoder's upscale was lossless
func (enc *Encoder) encodeFloat(f float64, width int) error {
	if enc.canonical {
		return enc.composer.composeShortestFloat(f)
	}
	switch width {
	case 16:
		return enc.composer.composeShortestFloat(f)
	case 32:
		return enc.composer.composeFloat32(float32(f))
	default:
		return enc.composer.composeFloat64(f)
	}
}

// encodeBigNum keeps the integer majors for anything 64-bit and emits
// tags 2 and 3 above that, canonical either way
func (enc *Encoder) encodeBigNum(v *num.BigInt) error {
	if v == nil {
		return &BigNumEncodeError{Str: "nil big num"}
	}
	return enc.composer.composeInteger(v)
}

// encodeDecimal writes tag 4 with the [exponent, mantissa] pair; only
// finite values have a wire form
func (enc *Encoder) encodeDecimal(v *num.ExtendedDecimal) error {
	if v == nil || !v.IsFinite() {
		return &UnsupportedValueError{Str: "non-finite decimal fraction"}
	}
	if err := enc.composer.composeTag(tagFraction); err != nil {
		return err
	}
	return enc.encodeExponentMantissa(v.Exponent(), v.Mantissa(), v.IsNegative())
}

// encodeBigFloat writes tag 5 with the [exponent, mantissa] pair
func (enc *Encoder) encodeBigFloat(v *num.ExtendedFloat) error {
	if v == nil || !v.IsFinite() {
		return &UnsupportedValueError{Str: "non-finite big float"}
	}
	if err := enc.composer.composeTag(tagBigFloat); err != nil {
		return err
	}
	return enc.encodeExponentMantissa(v.Exponent(), v.Mantissa(), v.IsNegative())
}

func (enc *Encoder) encodeExponentMantissa(exponent, mantissa *num.BigInt, neg bool) error {
	c := enc.composer
	if err := c.composeInformation(cborDataArray, 2); err != nil {
		return err
	}
	e, err := exponent.CheckedInt64()
	if err != nil {
		return &BigNumEncodeError{Str: "exponent does not fit the integer majors"}
	}
	if err := c.composeInt(e); err != nil {
		return err
	}
	if neg && mantissa.IsZero() {
		// the integer majors cannot carry -0; the bignum tag can not
		// either, so a negative zero mantissa loses its sign here
		return c.composeUint(0)
	}
	return c.composeInteger(mantissa)
}

// encodeRational writes tag 30 with the [numerator, denominator] pair
func (enc *Encoder) encodeRational(v *num.ExtendedRational) error {
	if v == nil {
		return &UnsupportedValueError{Str: "nil rational"}
	}
	c := enc.composer
	if err := c.composeTag(tagRational); err != nil {
		return err
	}
	if err := c.composeInformation(cborDataArray, 2); err != nil {
		return err
	}
	if err := c.composeInteger(v.Numerator()); err != nil {
		return err
	}
	return c.composeInteger(v.Denominator())
}

// encodeMap emits the pairs, sorted into the canonical key order when
// canonical: shorter encoded key first, lexicographic tie-break
func (enc *Encoder) encodeMap(m Map) error {
	if err := enc.composer.composeUint(uint64(len(m)), cborDataMap); err != nil {
		return err
	}
	pairs := m
	if enc.canonical && len(m) > 1 {
		encoded := make([][]byte, len(m))
		for i, p := range m {
			kb, err := EncodeCanonical(p.Key)
			if err != nil {
				return err
			}
			encoded[i] = kb
		}
		order := make([]int, len(m))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return canonicalKeyLess(encoded[order[i]], encoded[order[j]])
		})
		sorted := make(Map, len(m))
		for i, idx := range order {
			sorted[i] = m[idx]
		}
		pairs = sorted
	}
	for _, p := range pairs {
		if err := enc.encode(p.Key); err != nil {
			return err
		}
		if err := enc.encode(p.Value); err != nil {
			return err
		}
	}
	return nil
}

// canonicalKeyLess is the RFC canonical key order: by encoded length
// first, then bytewise
func canonicalKeyLess(a, b []byte) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return bytes.Compare(a, b) < 0
}
