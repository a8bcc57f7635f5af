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

package num

import (
	"fmt"
	"math/bits"
)

// A BigInt is a signed arbitrary-precision integer stored as a sign and
// a little-endian sequence of 16-bit limbs. Values are immutable; every
// operation returns a fresh BigInt. The zero value is the number zero.
type BigInt struct {
	sign      int // -1, 0 or 1
	words     []uint16
	wordCount int
}

// RangeError reports a narrowing conversion that does not fit the
// destination type, or an integer operation outside its domain
type RangeError struct {
	Op  string
	Msg string
}

func (e *RangeError) Error() string {
	return "num: " + e.Op + ": " + e.Msg
}

var (
	bigZero = &BigInt{}
	bigOne  = NewBigInt(1)
	bigTwo  = NewBigInt(2)
	bigTen  = NewBigInt(10)
)

// roundupSize picks the backing array length for a limb count from the
// fixed rounding table 2, 4, 8, 16 and then powers of two, so repeated
// growth amortises
func roundupSize(n int) int {
	if n <= 2 {
		return 2
	}
	if n <= 4 {
		return 4
	}
	if n <= 8 {
		return 8
	}
	if n <= 16 {
		return 16
	}
	return nextPowerOfTwo(n)
}

// makeBigInt builds a value from raw limbs, trimming high zero limbs
// and normalising zero to a non-negative sign
func makeBigInt(words []uint16, sign int) *BigInt {
	count := len(words)
	for count > 0 && words[count-1] == 0 {
		count--
	}
	if count == 0 {
		return bigZero
	}
	size := roundupSize(count)
	reg := make([]uint16, size)
	copy(reg, words[:count])
	return &BigInt{sign: sign, words: reg, wordCount: count}
}

// NewBigInt returns the BigInt with the given 64-bit value
func NewBigInt(v int64) *BigInt {
	if v == 0 {
		return bigZero
	}
	sign := 1
	uv := uint64(v)
	if v < 0 {
		sign = -1
		uv = -uv
	}
	words := []uint16{
		uint16(uv), uint16(uv >> 16), uint16(uv >> 32), uint16(uv >> 48),
	}
	return makeBigInt(words, sign)
}

// NewBigIntFromUint64 returns the BigInt with the given unsigned value
func NewBigIntFromUint64(v uint64) *BigInt {
	if v == 0 {
		return bigZero
	}
	words := []uint16{
		uint16(v), uint16(v >> 16), uint16(v >> 32), uint16(v >> 48),
	}
	return makeBigInt(words, 1)
}

func (x *BigInt) magnitude() []uint16 {
	return x.words[:x.wordCount]
}

// Sign returns -1, 0 or 1
func (x *BigInt) Sign() int {
	return x.sign
}

// IsZero reports whether x is zero
func (x *BigInt) IsZero() bool {
	return x.wordCount == 0
}

// IsEven reports whether x is even
func (x *BigInt) IsEven() bool {
	return x.wordCount == 0 || x.words[0]&1 == 0
}

// Neg returns -x
func (x *BigInt) Neg() *BigInt {
	if x.sign == 0 {
		return x
	}
	return &BigInt{sign: -x.sign, words: x.words, wordCount: x.wordCount}
}

// Abs returns |x|
func (x *BigInt) Abs() *BigInt {
	if x.sign >= 0 {
		return x
	}
	return x.Neg()
}

// CmpAbs compares |x| and |y|
func (x *BigInt) CmpAbs(y *BigInt) int {
	if x.wordCount != y.wordCount {
		if x.wordCount > y.wordCount {
			return 1
		}
		return -1
	}
	return compareWords(x.words, y.words, x.wordCount)
}

// Cmp compares x and y and returns -1, 0 or 1
func (x *BigInt) Cmp(y *BigInt) int {
	if x.sign != y.sign {
		if x.sign > y.sign {
			return 1
		}
		return -1
	}
	if x.sign >= 0 {
		return x.CmpAbs(y)
	}
	return y.CmpAbs(x)
}

// Equals reports whether x and y hold the same value
func (x *BigInt) Equals(y *BigInt) bool {
	return x.Cmp(y) == 0
}

func addMagnitudes(x, y *BigInt) []uint16 {
	a, b := x.magnitude(), y.magnitude()
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]uint16, len(a)+1)
	carry := addWords(out, a, b, len(b))
	for i := len(b); i < len(a); i++ {
		s := uint32(a[i]) + carry
		out[i] = uint16(s)
		carry = s >> 16
	}
	out[len(a)] = uint16(carry)
	return out
}

// subMagnitudes computes |x| - |y|; |x| must not be below |y|
func subMagnitudes(x, y *BigInt) []uint16 {
	a, b := x.magnitude(), y.magnitude()
	out := make([]uint16, len(a))
	borrow := subtractWords(out, a, b, len(b))
	for i := len(b); i < len(a); i++ {
		d := uint32(a[i]) - borrow
		out[i] = uint16(d)
		borrow = (d >> 16) & 1
	}
	return out
}

// Add returns x + y. Opposite signs dispatch to a magnitude subtraction
// with the result sign taken from the larger magnitude.
func (x *BigInt) Add(y *BigInt) *BigInt {
	if x.sign == 0 {
		return y
	}
	if y.sign == 0 {
		return x
	}
	if x.sign == y.sign {
		return makeBigInt(addMagnitudes(x, y), x.sign)
	}
	switch x.CmpAbs(y) {
	case 0:
		return bigZero
	case 1:
		return makeBigInt(subMagnitudes(x, y), x.sign)
	default:
		return makeBigInt(subMagnitudes(y, x), y.sign)
	}
}

// Sub returns x - y
func (x *BigInt) Sub(y *BigInt) *BigInt {
	return x.Add(y.Neg())
}

// Mul returns x * y
func (x *BigInt) Mul(y *BigInt) *BigInt {
	if x.sign == 0 || y.sign == 0 {
		return bigZero
	}
	var prod []uint16
	if x == y {
		prod = squareWords(x.magnitude(), x.wordCount)
	} else {
		prod = multiplyWords(x.magnitude(), x.wordCount, y.magnitude(), y.wordCount)
	}
	return makeBigInt(prod, x.sign*y.sign)
}

// Square returns x * x through the dedicated squaring path
func (x *BigInt) Square() *BigInt {
	if x.sign == 0 {
		return bigZero
	}
	return makeBigInt(squareWords(x.magnitude(), x.wordCount), 1)
}

// DivRem returns the truncated quotient and remainder of x / y. The
// remainder carries the sign of the dividend. Division by zero panics.
func (x *BigInt) DivRem(y *BigInt) (*BigInt, *BigInt) {
	if y.sign == 0 {
		panic(&RangeError{Op: "DivRem", Msg: "division by zero"})
	}
	if x.sign == 0 {
		return bigZero, bigZero
	}
	if cmp := x.CmpAbs(y); cmp < 0 {
		return bigZero, x
	} else if cmp == 0 {
		return NewBigInt(int64(x.sign * y.sign)), bigZero
	}
	qsign := x.sign * y.sign
	if y.wordCount == 1 {
		qw := make([]uint16, x.wordCount)
		copy(qw, x.magnitude())
		rem := divModSmallWords(qw, x.wordCount, uint32(y.words[0]))
		q := makeBigInt(qw, qsign)
		if rem == 0 {
			return q, bigZero
		}
		r := NewBigInt(int64(rem))
		if x.sign < 0 {
			r = r.Neg()
		}
		return q, r
	}
	qw, rw := divideWords(x.magnitude(), x.wordCount, y.magnitude(), y.wordCount)
	return makeBigInt(qw, qsign), makeBigInt(rw, x.sign)
}

// Div returns the truncated quotient x / y
func (x *BigInt) Div(y *BigInt) *BigInt {
	q, _ := x.DivRem(y)
	return q
}

// Rem returns the remainder of x / y with the sign of x
func (x *BigInt) Rem(y *BigInt) *BigInt {
	_, r := x.DivRem(y)
	return r
}

// Mod returns the non-negative residue of x modulo y
func (x *BigInt) Mod(y *BigInt) *BigInt {
	r := x.Rem(y)
	if r.sign < 0 {
		r = r.Add(y.Abs())
	}
	return r
}

// Gcd returns the greatest common divisor of |x| and |y|
func (x *BigInt) Gcd(y *BigInt) *BigInt {
	a, b := x.Abs(), y.Abs()
	for !b.IsZero() {
		a, b = b, a.Rem(b)
	}
	return a
}

// Pow returns x**n for n >= 0 by square and multiply
func (x *BigInt) Pow(n int) *BigInt {
	if n < 0 {
		panic(&RangeError{Op: "Pow", Msg: "negative exponent"})
	}
	result := bigOne
	base := x
	for n > 0 {
		if n&1 != 0 {
			result = result.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Square()
		}
	}
	return result
}

// ModPow returns x**e mod m for e >= 0 by square and multiply with a
// modular reduction on every step
func (x *BigInt) ModPow(e, m *BigInt) *BigInt {
	if e.sign < 0 {
		panic(&RangeError{Op: "ModPow", Msg: "negative exponent"})
	}
	if m.IsZero() {
		panic(&RangeError{Op: "ModPow", Msg: "zero modulus"})
	}
	result := bigOne.Mod(m)
	base := x.Mod(m)
	for i := 0; i < e.BitLength(); i++ {
		if e.TestBit(i) {
			result = result.Mul(base).Mod(m)
		}
		base = base.Square().Mod(m)
	}
	return result
}

// Sqrt returns the integer square root of x by Newton iteration seeded
// from 2^ceil(bitlen/2). Negative input panics.
func (x *BigInt) Sqrt() *BigInt {
	if x.sign < 0 {
		panic(&RangeError{Op: "Sqrt", Msg: "negative operand"})
	}
	if x.wordCount == 0 || x.Equals(bigOne) {
		return x
	}
	guess := bigOne.ShiftLeft((x.BitLength() + 1) / 2)
	for {
		next := guess.Add(x.Div(guess)).ShiftRight(1)
		if next.Cmp(guess) >= 0 {
			break
		}
		guess = next
	}
	for guess.Square().Cmp(x) > 0 {
		guess = guess.Sub(bigOne)
	}
	return guess
}

// BitLength returns the number of bits in |x|; zero has length 0
func (x *BigInt) BitLength() int {
	if x.wordCount == 0 {
		return 0
	}
	return (x.wordCount-1)*16 + bits.Len16(x.words[x.wordCount-1])
}

// TestBit reports bit n of the two's-complement representation of x
func (x *BigInt) TestBit(n int) bool {
	if n < 0 {
		panic(&RangeError{Op: "TestBit", Msg: "negative bit index"})
	}
	if x.sign >= 0 {
		return x.magnitudeBit(n)
	}
	// bit n of -m is the complement of bit n of m-1
	return !x.Abs().Sub(bigOne).magnitudeBit(n)
}

func (x *BigInt) magnitudeBit(n int) bool {
	word := n / 16
	if word >= x.wordCount {
		return false
	}
	return x.words[word]>>(n%16)&1 != 0
}

// ShiftLeft returns x shifted left by n bits; a negative n shifts right
func (x *BigInt) ShiftLeft(n int) *BigInt {
	if n < 0 {
		return x.ShiftRight(-n)
	}
	if n == 0 || x.sign == 0 {
		return x
	}
	wordShift, bitShift := n/16, uint(n%16)
	out := make([]uint16, x.wordCount+wordShift+1)
	copy(out[wordShift:], x.magnitude())
	out[len(out)-1] = shiftWordsLeftBits(out[wordShift:len(out)-1], x.wordCount, bitShift)
	return makeBigInt(out, x.sign)
}

// ShiftRight returns x shifted right by n bits. For negative values the
// shift is arithmetic: the magnitude is shifted and, when any set bit
// was shifted out, increased by one before the sign is restored, which
// rounds the quotient toward negative infinity.
func (x *BigInt) ShiftRight(n int) *BigInt {
	if n < 0 {
		return x.ShiftLeft(-n)
	}
	if n == 0 || x.sign == 0 {
		return x
	}
	if x.sign < 0 {
		mag := x.Abs()
		shifted := mag.ShiftRight(n)
		if !shifted.ShiftLeft(n).Equals(mag) {
			shifted = shifted.Add(bigOne)
		}
		return shifted.Neg()
	}
	wordShift, bitShift := n/16, uint(n%16)
	if wordShift >= x.wordCount {
		return bigZero
	}
	out := make([]uint16, x.wordCount-wordShift)
	copy(out, x.words[wordShift:x.wordCount])
	shiftWordsRightBits(out, len(out), bitShift)
	return makeBigInt(out, 1)
}

// Int64 returns the low 64 bits of x with its sign; use CheckedInt64
// when the value may not fit
func (x *BigInt) Int64() int64 {
	var v uint64
	for i := min(x.wordCount, 4) - 1; i >= 0; i-- {
		v = v<<16 | uint64(x.words[i])
	}
	if x.sign < 0 {
		return -int64(v)
	}
	return int64(v)
}

// CheckedInt64 converts x to int64, with an explicit carve-out for the
// most negative value whose magnitude has no positive counterpart
func (x *BigInt) CheckedInt64() (int64, error) {
	if x.wordCount > 4 {
		return 0, &RangeError{Op: "CheckedInt64", Msg: "value out of int64 range"}
	}
	var v uint64
	for i := x.wordCount - 1; i >= 0; i-- {
		v = v<<16 | uint64(x.words[i])
	}
	if x.sign < 0 {
		if v > 1<<63 {
			return 0, &RangeError{Op: "CheckedInt64", Msg: "value out of int64 range"}
		}
		return -int64(v), nil
	}
	if v > 1<<63-1 {
		return 0, &RangeError{Op: "CheckedInt64", Msg: "value out of int64 range"}
	}
	return int64(v), nil
}

// CheckedInt32 converts x to int32 when it fits
func (x *BigInt) CheckedInt32() (int32, error) {
	v, err := x.CheckedInt64()
	if err != nil {
		return 0, &RangeError{Op: "CheckedInt32", Msg: "value out of int32 range"}
	}
	if v < -1<<31 || v > 1<<31-1 {
		return 0, &RangeError{Op: "CheckedInt32", Msg: "value out of int32 range"}
	}
	return int32(v), nil
}

// CheckedUint64 converts x to uint64 when it fits
func (x *BigInt) CheckedUint64() (uint64, error) {
	if x.sign < 0 || x.wordCount > 4 {
		return 0, &RangeError{Op: "CheckedUint64", Msg: "value out of uint64 range"}
	}
	var v uint64
	for i := x.wordCount - 1; i >= 0; i-- {
		v = v<<16 | uint64(x.words[i])
	}
	return v, nil
}

func (x *BigInt) String() string {
	return x.toDecimalString()
}

// Format implements fmt.Formatter for the %v and %s verbs
func (x *BigInt) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v', 's', 'd':
		fmt.Fprint(s, x.String())
	default:
		fmt.Fprintf(s, "%%!%c(BigInt=%s)", verb, x.String())
	}
}
