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
	"fmt"
	"io"
	"math"

	"github.com/x448/float16"

	"github.com/DamnWidget/cbornum/num"
)

// Composes a 'data item'
type composer struct {
	header byte
	w      io.Writer
}

// Create a new composer with the given
// io.Writer and returns back it's address
func newComposer(w io.Writer) *composer {
	return &composer{w: w}
}

func (c *composer) composeInformation(major Major, info byte) error {
	c.header = (byte(major) << 5) | info
	if _, err := c.w.Write([]byte{c.header}); err != nil {
		return fmt.Errorf("while composing information byte: %s", err)
	}
	return nil
}

// Write bytes into the io.Writer, returns the
// number of bytes written and an error in case of any
func (c *composer) write(buf []byte) (n int, err error) {
	if len(buf) == 0 {
		return 0, nil
	}
	n, err = c.w.Write(buf)
	if err != nil {
		return n, err
	}
	if n != len(buf) {
		err = fmt.Errorf("buf was %d bytes length but only %d bytes were written", len(buf), n)
	}
	return n, err
}

// Writes a single byte into the io.Writer
func (c *composer) write1(b byte) error {
	if _, err := c.write([]byte{b}); err != nil {
		return err
	}
	return nil
}

// Handle unsigned integers writing with the smallest argument width
// that preserves the value
func (c *composer) composeUint(i uint64, infoType ...Major) error {
	var t Major = cborUnsignedInt
	if len(infoType) > 0 {
		t = infoType[0]
	}
	switch {
	case i < 24:
		return c.composeInformation(t, byte(i))
	case i <= math.MaxUint8:
		if err := c.composeInformation(t, cborUint8); err != nil {
			return err
		}
		return c.write1(byte(i))
	case i <= math.MaxUint16:
		if err := c.composeInformation(t, cborUint16); err != nil {
			return err
		}
		_, err := c.write([]byte{byte(i >> 8), byte(i)})
		return err
	case i <= math.MaxUint32:
		if err := c.composeInformation(t, cborUint32); err != nil {
			return err
		}
		_, err := c.write([]byte{byte(i >> 24), byte(i >> 16), byte(i >> 8), byte(i)})
		return err
	default:
		if err := c.composeInformation(t, cborUint64); err != nil {
			return err
		}
		_, err := c.write([]byte{
			byte(i >> 56), byte(i >> 48), byte(i >> 40), byte(i >> 32),
			byte(i >> 24), byte(i >> 16), byte(i >> 8), byte(i),
		})
		return err
	}
}

// Handle signed integers writing
func (c *composer) composeInt(i int64) error {
	if i < 0 {
		return c.composeUint(uint64(^i), cborNegativeInt)
	}
	return c.composeUint(uint64(i))
}

// Write one byte into the io.Writer
// as an encoded CBOR boolean value
func (c *composer) composeBoolean(v bool) error {
	b := absoluteFalse
	if v {
		b = absoluteTrue
	}
	if err := c.write1(b); err != nil {
		return fmt.Errorf("while writting boolean %v value: %s", v, err.Error())
	}
	return nil
}

// Write a single byte into the io.Writer
// as an encoded CBOR Null value
func (c *composer) composeNil() error {
	if err := c.write1(absoluteNil); err != nil {
		return fmt.Errorf("while writting nil value: %s", err.Error())
	}
	return nil
}

// Write a single byte into the io.Writer
// as an encoded CBOR Undefined value
func (c *composer) composeUndefined() error {
	return c.write1(absoluteUndef)
}

// Write an unassigned simple value; 0..23 ride the header byte and
// 32..255 take the two-byte form, nothing in between is encodable
func (c *composer) composeSimple(v uint8) error {
	if v < 24 {
		return c.composeInformation(cborNC, v)
	}
	if v < 32 {
		return NewParseErr(fmt.Sprintf("simple value %d has no valid encoding", v))
	}
	if err := c.write1(absoluteSimple); err != nil {
		return err
	}
	return c.write1(v)
}

// Write two bytes into the io.Writer
// as an encoded CBOR float16
func (c *composer) composeFloat16(bits uint16) error {
	if err := c.write1(absoluteFloat16); err != nil {
		return err
	}
	_, err := c.write([]byte{byte(bits >> 8), byte(bits)})
	return err
}

// Write four bytes into the io.Writer
// as an encoded CBOR float32
func (c *composer) composeFloat32(f float32) error {
	if err := c.write1(absoluteFloat32); err != nil {
		return err
	}
	i := math.Float32bits(f)
	_, err := c.write([]byte{byte(i >> 24), byte(i >> 16), byte(i >> 8), byte(i)})
	return err
}

// Write eight bytes into the io.Writer
// as an encoded CBOR float64
func (c *composer) composeFloat64(f float64) error {
	if err := c.write1(absoluteFloat64); err != nil {
		return err
	}
	i := math.Float64bits(f)
	_, err := c.write([]byte{
		byte(i >> 56), byte(i >> 48), byte(i >> 40), byte(i >> 32),
		byte(i >> 24), byte(i >> 16), byte(i >> 8), byte(i),
	})
	return err
}

// composeShortestFloat emits the narrowest width that round-trips the
// value exactly; NaN normalises to the canonical half-precision NaN
func (c *composer) composeShortestFloat(f float64) error {
	if math.IsNaN(f) {
		return c.composeCanonicalNaN()
	}
	if f16 := float16.Fromfloat32(float32(f)); float64(f16.Float32()) == f {
		return c.composeFloat16(uint16(f16))
	}
	if f32 := float32(f); float64(f32) == f {
		return c.composeFloat32(f32)
	}
	return c.composeFloat64(f)
}

// Write 3 bytes into the io.Writer
// as a CBOR NaN canonicalized float16 value
func (c *composer) composeCanonicalNaN() error {
	if _, err := c.write([]byte{0xf9, 0x7e, 0x00}); err != nil {
		return err
	}
	return nil
}

// Write len(b) + header bytes into the
// io.Writer as a sequence of bytes
func (c *composer) composeBytes(b []byte, major ...Major) error {
	m := cborByteString
	if len(major) != 0 {
		m = major[0]
	}
	if err := c.composeUint(uint64(len(b)), m); err != nil {
		return err
	}
	n, err := c.write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return fmt.Errorf("expected to write %d bytes, %d written", len(b), n)
	}
	return nil
}

// Write len(s) + header bytes into the
// io.Writer as an UTF-8 string
func (c *composer) composeString(s string) error {
	return c.composeBytes([]byte(s), cborTextString)
}

// Write a tag header
func (c *composer) composeTag(number uint64) error {
	return c.composeUint(number, cborTag)
}

// Write N bytes into the io.Writer as an encoded CBOR big num; the
// integer majors cover anything that fits 64 bits, so a bignum payload
// only ever carries the wide values
func (c *composer) composeBigNum(v *num.BigInt) error {
	if v.Sign() >= 0 {
		if err := c.composeTag(tagBigNum); err != nil {
			return err
		}
		return c.composeBytes(v.UnsignedBytes())
	}
	// tag 3 carries -1 - n
	payload := v.Neg().Sub(num.NewBigInt(1))
	if err := c.composeTag(tagBigNegNum); err != nil {
		return err
	}
	return c.composeBytes(payload.UnsignedBytes())
}

// composeInteger picks the integer major when the value fits 64 bits
// and falls back to the bignum tags
func (c *composer) composeInteger(v *num.BigInt) error {
	if v.Sign() >= 0 {
		if u, err := v.CheckedUint64(); err == nil {
			return c.composeUint(u)
		}
		return c.composeBigNum(v)
	}
	n := v.Neg().Sub(num.NewBigInt(1))
	if u, err := n.CheckedUint64(); err == nil {
		return c.composeUint(u, cborNegativeInt)
	}
	return c.composeBigNum(v)
}
