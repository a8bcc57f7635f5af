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
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oracle converts to the standard library type for cross-checking
func oracle(t *testing.T, v *BigInt) *big.Int {
	t.Helper()
	o, ok := new(big.Int).SetString(v.String(), 10)
	require.True(t, ok, "oracle conversion of %q", v.String())
	return o
}

// randomBigInt builds a value with the given number of limbs so both
// baseline and Karatsuba paths get exercised
func randomBigInt(rnd *rand.Rand, limbs int) *BigInt {
	if limbs == 0 {
		return NewBigInt(0)
	}
	words := make([]uint16, limbs)
	for i := range words {
		words[i] = uint16(rnd.Intn(1 << 16))
	}
	words[limbs-1] |= 1 // keep the top limb non-zero
	sign := 1
	if rnd.Intn(2) == 0 {
		sign = -1
	}
	return makeBigInt(words, sign)
}

func TestBigIntIdentities(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	zero := NewBigInt(0)
	one := NewBigInt(1)
	for _, limbs := range []int{0, 1, 2, 5, 17, 40} {
		a := randomBigInt(rnd, limbs)
		assert.True(t, a.Add(zero).Equals(a), "a + 0 = a")
		assert.True(t, a.Sub(a).IsZero(), "a - a = 0")
		assert.True(t, a.Mul(one).Equals(a), "a * 1 = a")
		assert.True(t, a.Mul(zero).IsZero(), "a * 0 = 0")
	}
}

func TestBigIntAddSubAgainstOracle(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		a := randomBigInt(rnd, rnd.Intn(30))
		b := randomBigInt(rnd, rnd.Intn(30))
		oa, ob := oracle(t, a), oracle(t, b)
		assert.Equal(t, new(big.Int).Add(oa, ob).String(), a.Add(b).String())
		assert.Equal(t, new(big.Int).Sub(oa, ob).String(), a.Sub(b).String())
	}
}

func TestBigIntMulAgainstOracle(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	// limb counts straddling the Karatsuba recursion threshold
	for _, limbs := range []int{1, 2, 4, 8, 15, 16, 17, 31, 33, 64, 100} {
		a := randomBigInt(rnd, limbs)
		b := randomBigInt(rnd, limbs)
		oa, ob := oracle(t, a), oracle(t, b)
		assert.Equal(t, new(big.Int).Mul(oa, ob).String(), a.Mul(b).String(), "%d limbs", limbs)
		assert.Equal(t, new(big.Int).Mul(oa, oa).String(), a.Square().String(), "square %d limbs", limbs)
	}
	// asymmetric shapes
	for i := 0; i < 50; i++ {
		a := randomBigInt(rnd, 1+rnd.Intn(60))
		b := randomBigInt(rnd, 1+rnd.Intn(6))
		oa, ob := oracle(t, a), oracle(t, b)
		assert.Equal(t, new(big.Int).Mul(oa, ob).String(), a.Mul(b).String())
	}
}

func TestBigIntDivRemAgainstOracle(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	for i := 0; i < 200; i++ {
		a := randomBigInt(rnd, 1+rnd.Intn(40))
		b := randomBigInt(rnd, 1+rnd.Intn(20))
		if b.IsZero() {
			continue
		}
		q, r := a.DivRem(b)
		oq, or := new(big.Int).QuoRem(oracle(t, a), oracle(t, b), new(big.Int))
		assert.Equal(t, oq.String(), q.String())
		assert.Equal(t, or.String(), r.String())
		// (a / b) * b + (a mod b) = a
		assert.True(t, q.Mul(b).Add(r).Equals(a))
	}
}

func TestBigIntMulDivRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		a := randomBigInt(rnd, 1+rnd.Intn(30))
		b := randomBigInt(rnd, 1+rnd.Intn(30))
		if b.IsZero() {
			continue
		}
		assert.True(t, a.Mul(b).Div(b).Equals(a), "(a*b)/b = a")
	}
}

func TestBigIntDivideByZeroPanics(t *testing.T) {
	assert.Panics(t, func() { NewBigInt(5).Div(NewBigInt(0)) })
}

func TestBigIntStringRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(6))
	for i := 0; i < 100; i++ {
		a := randomBigInt(rnd, rnd.Intn(40))
		parsed, err := BigIntFromString(a.String())
		require.NoError(t, err)
		assert.True(t, parsed.Equals(a), "fromString(toString(a)) = a for %s", a)
	}
	for _, bad := range []string{"", "-", "+", "12a", "0x10", " 1"} {
		_, err := BigIntFromString(bad)
		assert.Error(t, err, "literal %q", bad)
	}
}

func TestBigIntByteRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		a := randomBigInt(rnd, rnd.Intn(20))
		for _, le := range []bool{true, false} {
			back := BigIntFromBytes(a.Bytes(le), le)
			assert.True(t, back.Equals(a), "endianness le=%v value %s", le, a)
		}
	}
}

func TestBigIntBytesMinimalTwosComplement(t *testing.T) {
	cases := []struct {
		value string
		be    []byte
	}{
		{"0", []byte{0x00}},
		{"1", []byte{0x01}},
		{"127", []byte{0x7f}},
		{"128", []byte{0x00, 0x80}},
		{"255", []byte{0x00, 0xff}},
		{"-1", []byte{0xff}},
		{"-128", []byte{0x80}},
		{"-129", []byte{0xff, 0x7f}},
		{"32767", []byte{0x7f, 0xff}},
	}
	for _, c := range cases {
		v := MustBigIntFromString(c.value)
		assert.Equal(t, c.be, v.Bytes(false), "big-endian bytes of %s", c.value)
	}
}

func TestBigIntTwoPow128MinusOneBytes(t *testing.T) {
	v := MustBigIntFromString("340282366920938463463374607431768211455")
	want := make([]byte, 17)
	for i := 1; i < 17; i++ {
		want[i] = 0xff
	}
	assert.Equal(t, want, v.Bytes(false))
}

func TestBigIntShiftRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(8))
	for i := 0; i < 50; i++ {
		a := randomBigInt(rnd, 1+rnd.Intn(10)).Abs()
		n := rnd.Intn(100)
		assert.True(t, a.ShiftLeft(n).ShiftRight(n).Equals(a))
	}
	// arithmetic right shift rounds toward negative infinity
	assert.Equal(t, "-1", NewBigInt(-1).ShiftRight(5).String())
	assert.Equal(t, "-2", NewBigInt(-3).ShiftRight(1).String())
	assert.Equal(t, "-4", NewBigInt(-7).ShiftRight(1).String())
}

func TestBigIntGcdLcm(t *testing.T) {
	rnd := rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		a := randomBigInt(rnd, 1+rnd.Intn(8))
		b := randomBigInt(rnd, 1+rnd.Intn(8))
		if a.IsZero() || b.IsZero() {
			continue
		}
		g := a.Gcd(b)
		lcm := a.Mul(b).Abs().Div(g)
		assert.True(t, g.Mul(lcm).Equals(a.Mul(b).Abs()), "gcd*lcm = |a*b|")
		assert.True(t, a.Rem(g).IsZero())
		assert.True(t, b.Rem(g).IsZero())
	}
}

func TestBigIntSqrtBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(10))
	one := NewBigInt(1)
	for i := 0; i < 60; i++ {
		a := randomBigInt(rnd, rnd.Intn(12)).Abs()
		s := a.Sqrt()
		assert.True(t, s.Square().Cmp(a) <= 0, "sqrt(a)^2 <= a")
		assert.True(t, s.Add(one).Square().Cmp(a) > 0, "(sqrt(a)+1)^2 > a")
	}
	assert.Panics(t, func() { NewBigInt(-4).Sqrt() })
}

func TestBigIntPowAndModPow(t *testing.T) {
	two := NewBigInt(2)
	assert.Equal(t, "1024", two.Pow(10).String())
	assert.Equal(t, "1", two.Pow(0).String())
	m := NewBigInt(1000)
	assert.Equal(t, "24", two.ModPow(NewBigInt(10), m).String())
	assert.Equal(t, "376", two.ModPow(NewBigInt(100), m).String())
}

func TestBigIntDigitCount(t *testing.T) {
	cases := map[string]int{
		"0":          1,
		"9":          1,
		"10":         2,
		"999":        3,
		"1000":       4,
		"1024":       4,
		"9999999999": 10,
	}
	for s, want := range cases {
		assert.Equal(t, want, MustBigIntFromString(s).DigitCount(), "digits of %s", s)
	}
	// powers of ten around the approximation boundaries
	v := NewBigInt(1)
	ten := NewBigInt(10)
	for digits := 1; digits <= 60; digits++ {
		assert.Equal(t, digits, v.DigitCount(), "10^%d", digits-1)
		assert.Equal(t, digits, v.Mul(ten).Sub(NewBigInt(1)).DigitCount())
		v = v.Mul(ten)
	}
}

func TestBigIntNarrowingConversions(t *testing.T) {
	v, err := NewBigInt(-9223372036854775808).CheckedInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-9223372036854775808), v)

	_, err = MustBigIntFromString("9223372036854775808").CheckedInt64()
	assert.Error(t, err)
	_, err = MustBigIntFromString("-9223372036854775809").CheckedInt64()
	assert.Error(t, err)

	i32, err := NewBigInt(-2147483648).CheckedInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-2147483648), i32)
	_, err = NewBigInt(2147483648).CheckedInt32()
	assert.Error(t, err)

	u, err := MustBigIntFromString("18446744073709551615").CheckedUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0xffffffffffffffff), u)
	_, err = NewBigInt(-1).CheckedUint64()
	assert.Error(t, err)
}

func TestBigIntTestBit(t *testing.T) {
	v := NewBigInt(10) // 1010
	assert.False(t, v.TestBit(0))
	assert.True(t, v.TestBit(1))
	assert.False(t, v.TestBit(2))
	assert.True(t, v.TestBit(3))
	assert.False(t, v.TestBit(64))
	// two's complement of -2 is ...11110
	n := NewBigInt(-2)
	assert.False(t, n.TestBit(0))
	for i := 1; i < 20; i++ {
		assert.True(t, n.TestBit(i))
	}
}

func TestBigIntUnsignedBytes(t *testing.T) {
	v := MustBigIntFromString("18446744073709551616") // 2^64
	assert.Equal(t, []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0}, v.UnsignedBytes())
	assert.True(t, BigIntFromUnsignedBytes(v.UnsignedBytes()).Equals(v))
	assert.Empty(t, NewBigInt(0).UnsignedBytes())
}
