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
)

// An ExtendedFloat is an arbitrary-precision binary float of the form
// mantissa * 2**exponent, with the same flags layout as
// ExtendedDecimal. Precision in a context governing ExtendedFloat
// operations is measured in bits.
type ExtendedFloat struct {
	flags    int
	mantissa *BigInt
	exponent *BigInt
}

// Predefined values
var (
	FloatZero             = NewExtendedFloatFromInt64(0)
	FloatNegativeZero     = &ExtendedFloat{flags: flagNegative, mantissa: bigZero, exponent: bigZero}
	FloatOne              = NewExtendedFloatFromInt64(1)
	FloatNaN              = &ExtendedFloat{flags: flagQuietNaN, mantissa: bigZero, exponent: bigZero}
	FloatSignalingNaN     = &ExtendedFloat{flags: flagSignalingNaN, mantissa: bigZero, exponent: bigZero}
	FloatPositiveInfinity = &ExtendedFloat{flags: flagInfinity, mantissa: bigZero, exponent: bigZero}
	FloatNegativeInfinity = &ExtendedFloat{flags: flagInfinity | flagNegative, mantissa: bigZero, exponent: bigZero}
)

// NewExtendedFloat builds a finite value from a signed mantissa and an
// exponent
func NewExtendedFloat(mantissa, exponent *BigInt) *ExtendedFloat {
	flags := 0
	if mantissa.Sign() < 0 {
		flags = flagNegative
	}
	return &ExtendedFloat{flags: flags, mantissa: mantissa.Abs(), exponent: exponent}
}

// NewExtendedFloatFromInt64 builds a finite value with exponent 0
func NewExtendedFloatFromInt64(v int64) *ExtendedFloat {
	return NewExtendedFloat(NewBigInt(v), bigZero)
}

// ExtendedFloatFromFloat64 converts a binary64 value exactly
func ExtendedFloatFromFloat64(f float64) *ExtendedFloat {
	if math.IsNaN(f) {
		if math.Signbit(f) {
			return &ExtendedFloat{flags: flagQuietNaN | flagNegative, mantissa: bigZero, exponent: bigZero}
		}
		return FloatNaN
	}
	if math.IsInf(f, 1) {
		return FloatPositiveInfinity
	}
	if math.IsInf(f, -1) {
		return FloatNegativeInfinity
	}
	neg := math.Signbit(f)
	bits := math.Float64bits(f)
	mantBits := bits & (1<<52 - 1)
	expBits := int((bits >> 52) & 0x7ff)
	var mant *BigInt
	var exp int64
	if expBits == 0 {
		mant = NewBigIntFromUint64(mantBits)
		exp = -1074
	} else {
		mant = NewBigIntFromUint64(mantBits | 1<<52)
		exp = int64(expBits) - 1075
	}
	return &ExtendedFloat{flags: boolFlag(neg), mantissa: mant, exponent: NewBigInt(exp)}
}

// ExtendedFloatFromString parses a decimal literal and rounds it into
// the given context; with a nil context the conversion rounds half-even
// at 113 bits when it does not terminate
func ExtendedFloatFromString(s string, ctx *PrecisionContext) (*ExtendedFloat, error) {
	d, err := ExtendedDecimalFromString(s)
	if err != nil {
		return nil, err
	}
	return d.ToExtendedFloat(ctx), nil
}

// --- accessors -------------------------------------------------------

// Mantissa returns the signed mantissa
func (f *ExtendedFloat) Mantissa() *BigInt {
	if f.flags&flagNegative != 0 {
		return f.mantissa.Neg()
	}
	return f.mantissa
}

// UnsignedMantissa returns the mantissa magnitude
func (f *ExtendedFloat) UnsignedMantissa() *BigInt {
	return f.mantissa
}

// Exponent returns the exponent
func (f *ExtendedFloat) Exponent() *BigInt {
	return f.exponent
}

// Sign returns -1, 0 or 1; both zeros report 0
func (f *ExtendedFloat) Sign() int {
	if f.IsFinite() && f.mantissa.IsZero() {
		return 0
	}
	if f.flags&flagNegative != 0 {
		return -1
	}
	return 1
}

func (f *ExtendedFloat) IsNegative() bool {
	return f.flags&flagNegative != 0
}

func (f *ExtendedFloat) IsFinite() bool {
	return f.flags&flagSpecial == 0
}

func (f *ExtendedFloat) IsZero() bool {
	return f.IsFinite() && f.mantissa.IsZero()
}

func (f *ExtendedFloat) IsInfinity() bool {
	return f.flags&flagInfinity != 0
}

func (f *ExtendedFloat) IsPositiveInfinity() bool {
	return f.flags&(flagInfinity|flagNegative) == flagInfinity
}

func (f *ExtendedFloat) IsNegativeInfinity() bool {
	return f.flags&(flagInfinity|flagNegative) == flagInfinity|flagNegative
}

func (f *ExtendedFloat) IsNaN() bool {
	return f.flags&flagNaN != 0
}

func (f *ExtendedFloat) IsQuietNaN() bool {
	return f.flags&flagQuietNaN != 0
}

func (f *ExtendedFloat) IsSignalingNaN() bool {
	return f.flags&flagSignalingNaN != 0
}

// --- arithmetic surface ----------------------------------------------

func (f *ExtendedFloat) Add(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Add(f, other, ctx)
}

func (f *ExtendedFloat) Subtract(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Subtract(f, other, ctx)
}

func (f *ExtendedFloat) Multiply(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Multiply(f, other, ctx)
}

// MultiplyAndAdd returns f*b + c with a single rounding
func (f *ExtendedFloat) MultiplyAndAdd(b, c *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).MultiplyAndAdd(f, b, c, ctx)
}

func (f *ExtendedFloat) Divide(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Divide(f, other, ctx)
}

func (f *ExtendedFloat) DivideToExponent(other *ExtendedFloat, exponent *BigInt, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).DivideToExponent(f, other, exponent, ctx)
}

func (f *ExtendedFloat) DivideToIntegerNaturalScale(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).DivideToIntegerNaturalScale(f, other, ctx)
}

func (f *ExtendedFloat) DivideToIntegerZeroScale(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).DivideToIntegerZeroScale(f, other, ctx)
}

func (f *ExtendedFloat) Remainder(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Remainder(f, other, ctx)
}

func (f *ExtendedFloat) RemainderNear(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).RemainderNear(f, other, ctx)
}

func (f *ExtendedFloat) Abs(ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Abs(f, ctx)
}

func (f *ExtendedFloat) Negate(ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Negate(f, ctx)
}

func (f *ExtendedFloat) Plus(ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Plus(f, ctx)
}

func (f *ExtendedFloat) Min(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Min(f, other, ctx)
}

func (f *ExtendedFloat) Max(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Max(f, other, ctx)
}

func (f *ExtendedFloat) MinMagnitude(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).MinMagnitude(f, other, ctx)
}

func (f *ExtendedFloat) MaxMagnitude(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).MaxMagnitude(f, other, ctx)
}

func (f *ExtendedFloat) Quantize(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Quantize(f, other, ctx)
}

func (f *ExtendedFloat) RoundToPrecision(ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).RoundToPrecision(f, ctx)
}

// RoundToBinaryPrecision is RoundToPrecision: binary precision and
// context precision coincide for this type
func (f *ExtendedFloat) RoundToBinaryPrecision(ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).RoundToPrecision(f, ctx)
}

func (f *ExtendedFloat) RoundToExponentExact(exponent *BigInt, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).RoundToExponentExact(f, exponent, ctx)
}

func (f *ExtendedFloat) RoundToExponentSimple(exponent *BigInt, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).RoundToExponentSimple(f, exponent, ctx)
}

func (f *ExtendedFloat) RoundToExponentNoRoundedFlag(exponent *BigInt, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).RoundToExponentNoRoundedFlag(f, exponent, ctx)
}

func (f *ExtendedFloat) Reduce(ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Reduce(f, ctx)
}

func (f *ExtendedFloat) Exp(ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Exp(f, ctx)
}

func (f *ExtendedFloat) Ln(ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Ln(f, ctx)
}

func (f *ExtendedFloat) Log10(ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Log10(f, ctx)
}

// FloatPi returns the circle constant at the context's precision
func FloatPi(ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Pi(ctx)
}

func (f *ExtendedFloat) Power(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).Power(f, other, ctx)
}

func (f *ExtendedFloat) SquareRoot(ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).SquareRoot(f, ctx)
}

func (f *ExtendedFloat) NextPlus(ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).NextPlus(f, ctx)
}

func (f *ExtendedFloat) NextMinus(ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).NextMinus(f, ctx)
}

func (f *ExtendedFloat) NextToward(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).NextToward(f, other, ctx)
}

// CompareTo orders two values; NaNs order after everything else
func (f *ExtendedFloat) CompareTo(other *ExtendedFloat) int {
	return binaryMathFull.CompareTo(f, other)
}

// CompareToWithContext reports the order as a float, propagating NaNs
func (f *ExtendedFloat) CompareToWithContext(other *ExtendedFloat, ctx *PrecisionContext) *ExtendedFloat {
	return binaryKernel(ctx).CompareToWithContext(f, other, ctx, false)
}

// Equals reports operand identity: same flags, mantissa and exponent
func (f *ExtendedFloat) Equals(other *ExtendedFloat) bool {
	return f.flags == other.flags &&
		f.mantissa.Equals(other.mantissa) &&
		f.exponent.Equals(other.exponent)
}

// --- conversions ------------------------------------------------------

// ToExtendedDecimal converts exactly: every binary float has a
// terminating decimal expansion
func (f *ExtendedFloat) ToExtendedDecimal() *ExtendedDecimal {
	if f.IsNaN() {
		return &ExtendedDecimal{flags: f.flags, mantissa: f.mantissa, exponent: bigZero}
	}
	if f.IsInfinity() {
		return &ExtendedDecimal{flags: f.flags, mantissa: bigZero, exponent: bigZero}
	}
	if f.mantissa.IsZero() {
		return &ExtendedDecimal{flags: f.flags, mantissa: bigZero, exponent: bigZero}
	}
	e, err := f.exponent.CheckedInt64()
	if err != nil {
		panic(&RangeError{Op: "ToExtendedDecimal", Msg: "exponent out of range"})
	}
	if e >= 0 {
		return &ExtendedDecimal{
			flags:    f.flags,
			mantissa: f.mantissa.ShiftLeft(int(e)),
			exponent: bigZero,
		}
	}
	// 2**-k is 5**k * 10**-k
	k := int(-e)
	return &ExtendedDecimal{
		flags:    f.flags,
		mantissa: f.mantissa.Mul(NewBigInt(5).Pow(k)),
		exponent: NewBigInt(e),
	}
}

// ToBigInt truncates toward zero; NaN and infinity do not convert
func (f *ExtendedFloat) ToBigInt() (*BigInt, error) {
	if f.IsNaN() {
		return nil, &RangeError{Op: "ToBigInt", Msg: "not a number"}
	}
	if f.IsInfinity() {
		return nil, &RangeError{Op: "ToBigInt", Msg: "infinity"}
	}
	e, err := f.exponent.CheckedInt64()
	if err != nil {
		if f.exponent.Sign() < 0 || f.mantissa.IsZero() {
			return bigZero, nil
		}
		return nil, &RangeError{Op: "ToBigInt", Msg: "exponent out of range"}
	}
	var v *BigInt
	if e >= 0 {
		v = f.mantissa.ShiftLeft(int(e))
	} else {
		v = f.mantissa.ShiftRight(int(-e))
	}
	if f.flags&flagNegative != 0 {
		v = v.Neg()
	}
	return v, nil
}

// ToFloat64 rounds to the nearest binary64 value; overflow produces an
// infinity and NaN payloads survive in the low mantissa bits
func (f *ExtendedFloat) ToFloat64() float64 {
	if f.IsNaN() {
		bits := uint64(0x7ff8000000000000)
		if payload, err := f.mantissa.CheckedUint64(); err == nil {
			bits |= payload & (1<<51 - 1)
		}
		if f.IsNegative() {
			bits |= 1 << 63
		}
		return math.Float64frombits(bits)
	}
	if f.IsInfinity() {
		if f.IsNegative() {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	r := binaryMathFull.RoundToPrecision(f, ContextBinary64.WithBlankFlags())
	if r.IsInfinity() {
		if r.IsNegative() {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	m, err := r.mantissa.CheckedUint64()
	if err != nil {
		// cannot happen after rounding to 53 bits
		return math.NaN()
	}
	e, _ := r.exponent.CheckedInt64()
	out := math.Ldexp(float64(m), int(e))
	if r.IsNegative() {
		out = -out
	}
	return out
}

// String renders the exact decimal expansion of the value
func (f *ExtendedFloat) String() string {
	return f.ToExtendedDecimal().String()
}
