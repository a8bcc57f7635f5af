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
	"strings"
)

// toDecimalString emits groups of four decimal digits per pass by
// dividing the magnitude by 10000, which is below 2^16 so every pass is
// a single linear sweep of the limbs
func (x *BigInt) toDecimalString() string {
	if x.wordCount == 0 {
		return "0"
	}
	w := make([]uint16, x.wordCount)
	copy(w, x.magnitude())
	count := x.wordCount

	var groups []uint32
	for count > 0 {
		groups = append(groups, divModSmallWords(w, count, 10000))
		for count > 0 && w[count-1] == 0 {
			count--
		}
	}

	var sb strings.Builder
	if x.sign < 0 {
		sb.WriteByte('-')
	}
	last := len(groups) - 1
	fmt.Fprintf(&sb, "%d", groups[last])
	for i := last - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%04d", groups[i])
	}
	return sb.String()
}

// BigIntFromString parses a decimal integer of the form [-+]?digit+,
// ingesting one digit at a time with a multiply-by-ten and increment
// over the limb buffer
func BigIntFromString(s string) (*BigInt, error) {
	if s == "" {
		return nil, fmt.Errorf("num: empty integer literal")
	}
	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
		if s == "" {
			return nil, fmt.Errorf("num: sign without digits")
		}
	}
	w := make([]uint16, 4)
	count := 1
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("num: invalid digit %q in integer literal", c)
		}
		carry := mulAddSmallWords(w, count, 10, uint32(c-'0'))
		if carry != 0 {
			if count == len(w) {
				grown := make([]uint16, roundupSize(len(w)+1))
				copy(grown, w)
				w = grown
			}
			w[count] = carry
			count++
		}
	}
	sign := 1
	if neg {
		sign = -1
	}
	return makeBigInt(w[:count], sign), nil
}

// MustBigIntFromString is BigIntFromString for literals known to be valid
func MustBigIntFromString(s string) *BigInt {
	v, err := BigIntFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// DigitCount returns the number of decimal digits in |x|. Tight upper
// and lower bounds on bitlen * log10(2) decide the count without a full
// conversion whenever the two bounds agree; the constants are empirical
// bounds valid over the stated bit-length windows.
func (x *BigInt) DigitCount() int {
	if x.wordCount == 0 {
		return 1
	}
	bitlen := x.BitLength()
	var minDigits, maxDigits int
	switch {
	case bitlen <= 2135:
		minDigits = 1 + ((bitlen-1)*631305)>>21
		maxDigits = 1 + (bitlen*631305)>>21
	case bitlen <= 6432162:
		minDigits = 1 + int((int64(bitlen-1)*661971961083)>>41)
		maxDigits = 1 + int((int64(bitlen)*661971961083)>>41)
	default:
		return len(x.Abs().String())
	}
	if minDigits == maxDigits {
		return minDigits
	}
	if x.CmpAbs(powerOfTen(maxDigits-1)) >= 0 {
		return maxDigits
	}
	return minDigits
}

// small cache of powers of ten shared by conversion and rounding paths
var tenPowers = func() []*BigInt {
	p := make([]*BigInt, 19)
	p[0] = bigOne
	for i := 1; i < len(p); i++ {
		p[i] = p[i-1].Mul(bigTen)
	}
	return p
}()

func powerOfTen(n int) *BigInt {
	if n < len(tenPowers) {
		return tenPowers[n]
	}
	result := tenPowers[len(tenPowers)-1]
	n -= len(tenPowers) - 1
	for n >= len(tenPowers)-1 {
		result = result.Mul(tenPowers[len(tenPowers)-1])
		n -= len(tenPowers) - 1
	}
	if n > 0 {
		result = result.Mul(tenPowers[n])
	}
	return result
}

// BigIntFromBytes builds a value from a two's-complement byte sequence
// in the given byte order. A set top bit of the most significant byte
// makes the result negative.
func BigIntFromBytes(b []byte, littleEndian bool) *BigInt {
	if len(b) == 0 {
		return bigZero
	}
	le := b
	if !littleEndian {
		le = make([]byte, len(b))
		for i := range b {
			le[i] = b[len(b)-1-i]
		}
	}
	words := make([]uint16, (len(le)+1)/2)
	for i, c := range le {
		words[i/2] |= uint16(c) << (8 * uint(i%2))
	}
	negative := le[len(le)-1]&0x80 != 0
	if negative {
		// sign-extend the top limb when the byte count is odd
		if len(le)%2 == 1 {
			words[len(words)-1] |= 0xff00
		}
		mag := makeBigInt(words, 1)
		return bigOne.ShiftLeft(16 * len(words)).Sub(mag).Neg()
	}
	return makeBigInt(words, 1)
}

// BigIntFromUnsignedBytes builds a non-negative value from a big-endian
// magnitude with no sign interpretation, the shape CBOR bignum payloads
// carry
func BigIntFromUnsignedBytes(b []byte) *BigInt {
	words := make([]uint16, (len(b)+1)/2)
	for i := 0; i < len(b); i++ {
		c := b[len(b)-1-i]
		words[i/2] |= uint16(c) << (8 * uint(i%2))
	}
	return makeBigInt(words, 1)
}

// UnsignedBytes returns the minimal big-endian magnitude of |x| with no
// sign byte; zero yields an empty slice
func (x *BigInt) UnsignedBytes() []byte {
	if x.wordCount == 0 {
		return []byte{}
	}
	n := (x.BitLength() + 7) / 8
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		w := x.words[i/2]
		out[n-1-i] = byte(w >> (8 * uint(i%2)))
	}
	return out
}

// Bytes returns the minimal two's-complement representation of x with
// exactly one sign bit of headroom, in the requested byte order
func (x *BigInt) Bytes(littleEndian bool) []byte {
	if x.wordCount == 0 {
		return []byte{0}
	}
	mag := x.Abs()
	bitlen := mag.BitLength()
	var n int
	if x.sign > 0 {
		n = bitlen/8 + 1
	} else {
		// -2^(8n-1) is the one negative value that saves a byte
		n = (bitlen + 7) / 8
		if !mag.Equals(bigOne.ShiftLeft(8*n - 1)) && bitlen > 8*n-1 {
			n++
		}
	}
	var le []byte
	if x.sign > 0 {
		le = make([]byte, n)
		for i := 0; i < n && i/2 < mag.wordCount; i++ {
			w := mag.words[i/2]
			le[i] = byte(w >> (8 * uint(i%2)))
		}
	} else {
		t := bigOne.ShiftLeft(8 * n).Sub(mag)
		le = make([]byte, n)
		for i := 0; i < n && i/2 < t.wordCount; i++ {
			w := t.words[i/2]
			le[i] = byte(w >> (8 * uint(i%2)))
		}
	}
	if littleEndian {
		return le
	}
	for i, j := 0, len(le)-1; i < j; i, j = i+1, j-1 {
		le[i], le[j] = le[j], le[i]
	}
	return le
}
