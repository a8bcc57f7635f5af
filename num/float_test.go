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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func efloat(t *testing.T, s string, ctx *PrecisionContext) *ExtendedFloat {
	t.Helper()
	v, err := ExtendedFloatFromString(s, ctx)
	require.NoError(t, err)
	return v
}

func TestFloatFromFloat64RoundTrip(t *testing.T) {
	values := []float64{
		0, 0.5, 1, -1, 0.1, 3.141592653589793, 1e300, -1e-300,
		math.SmallestNonzeroFloat64, math.MaxFloat64, -0.0,
	}
	for _, f := range values {
		v := ExtendedFloatFromFloat64(f)
		assert.Equal(t, f, v.ToFloat64(), "round trip of %g", f)
	}
	assert.True(t, ExtendedFloatFromFloat64(math.Inf(1)).IsPositiveInfinity())
	assert.True(t, ExtendedFloatFromFloat64(math.Inf(-1)).IsNegativeInfinity())
	assert.True(t, ExtendedFloatFromFloat64(math.NaN()).IsNaN())
	assert.True(t, math.Signbit(ExtendedFloatFromFloat64(math.Copysign(0, -1)).ToFloat64()))
}

func TestFloatPointOnePlusPointTwoBinary64(t *testing.T) {
	ctx := ContextBinary64.WithBlankFlags()
	a := efloat(t, "0.1", ContextBinary64)
	b := efloat(t, "0.2", ContextBinary64)
	sum := a.Add(b, ctx)
	bits := math.Float64bits(sum.ToFloat64())
	assert.Equal(t, uint64(0x3fd3333333333334), bits)
	assert.NotZero(t, ctx.Flags()&FlagInexact)
	assert.NotZero(t, ctx.Flags()&FlagRounded)
}

func TestFloatDecimalStringConversion(t *testing.T) {
	// 0.5 and friends terminate in binary
	half := efloat(t, "0.5", nil)
	assert.Equal(t, "0.5", half.String())
	q := efloat(t, "0.25", nil)
	assert.Equal(t, "0.25", q.String())
	three := efloat(t, "3", nil)
	assert.Equal(t, "3", three.String())
	// 0.1 does not; at Binary64 it converts to the well-known value
	tenth := efloat(t, "0.1", ContextBinary64)
	assert.Equal(t, 0.1, tenth.ToFloat64())
}

func TestFloatExactDecimalExpansion(t *testing.T) {
	// 2^-2 is exactly 0.25 in decimal
	v := NewExtendedFloat(NewBigInt(1), NewBigInt(-2))
	d := v.ToExtendedDecimal()
	assert.Equal(t, 0, d.CompareTo(MustDecimal("0.25")))
	// 3 * 2^2 = 12
	v = NewExtendedFloat(NewBigInt(3), NewBigInt(2))
	assert.Equal(t, "12", v.ToExtendedDecimal().String())
}

// MustDecimal is shared test shorthand
func MustDecimal(s string) *ExtendedDecimal {
	return MustExtendedDecimalFromString(s)
}

func TestFloatArithmetic(t *testing.T) {
	ctx := ContextBinary64.WithBlankFlags()
	two := NewExtendedFloatFromInt64(2)
	three := NewExtendedFloatFromInt64(3)
	assert.Equal(t, "5", two.Add(three, ctx).String())
	assert.Equal(t, "6", two.Multiply(three, ctx).String())
	assert.Equal(t, "-1", two.Subtract(three, ctx).String())
	assert.Equal(t, 1.5, three.Divide(two, ctx).ToFloat64())
	// 2/3 is inexact in binary
	inner := ContextBinary64.WithBlankFlags()
	r := two.Divide(three, inner)
	assert.NotZero(t, inner.Flags()&FlagInexact)
	assert.InDelta(t, 2.0/3.0, r.ToFloat64(), 0)
}

func TestFloatSubnormalBinary64(t *testing.T) {
	// the smallest positive binary64 is 2^-1074 = 2^(eMin - precision + 1)
	ctx := ContextBinary64.WithBlankFlags()
	tiny := NewExtendedFloat(NewBigInt(1), NewBigInt(-1074))
	r := tiny.RoundToPrecision(ctx)
	assert.Equal(t, math.SmallestNonzeroFloat64, r.ToFloat64())
	assert.NotZero(t, ctx.Flags()&FlagSubnormal)

	// anything below it underflows
	ctx2 := ContextBinary64.WithBlankFlags()
	half := NewExtendedFloat(NewBigInt(1), NewBigInt(-1076))
	r2 := half.RoundToPrecision(ctx2)
	assert.True(t, r2.IsZero())
	assert.NotZero(t, ctx2.Flags()&FlagUnderflow)
	assert.NotZero(t, ctx2.Flags()&FlagInexact)
}

func TestFloatOverflowBinary64(t *testing.T) {
	ctx := ContextBinary64.WithBlankFlags()
	big := ExtendedFloatFromFloat64(math.MaxFloat64)
	r := big.Multiply(NewExtendedFloatFromInt64(2), ctx)
	assert.True(t, r.IsInfinity())
	assert.NotZero(t, ctx.Flags()&FlagOverflow)
}

func TestFloatSquareRoot(t *testing.T) {
	ctx := ContextBinary64.WithBlankFlags()
	four := NewExtendedFloatFromInt64(4)
	assert.Equal(t, 2.0, four.SquareRoot(ctx).ToFloat64())
	two := NewExtendedFloatFromInt64(2)
	assert.Equal(t, math.Sqrt2, two.SquareRoot(ctx).ToFloat64())
}

func TestFloatQuantizeAndCompare(t *testing.T) {
	a := NewExtendedFloat(NewBigInt(6), NewBigInt(-1)) // 3
	b := NewExtendedFloatFromInt64(3)
	assert.Equal(t, 0, a.CompareTo(b))
	q := a.Quantize(b, ContextBinary64)
	assert.Equal(t, "3", q.UnsignedMantissa().String())
	assert.True(t, q.Exponent().IsZero())
}

func TestFloatNaNHandling(t *testing.T) {
	ctx := ContextBinary64.WithBlankFlags()
	out := FloatSignalingNaN.Add(FloatOne, ctx)
	assert.True(t, out.IsQuietNaN())
	assert.NotZero(t, ctx.Flags()&FlagInvalid)
	assert.True(t, math.IsNaN(FloatNaN.ToFloat64()))
}
