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

// mathKernel is the operation surface shared by the full kernel and
// the simplified wrapper; the facades pick one per context
type mathKernel[T any] interface {
	Add(a, b T, ctx *PrecisionContext) T
	Subtract(a, b T, ctx *PrecisionContext) T
	Multiply(a, b T, ctx *PrecisionContext) T
	MultiplyAndAdd(a, b, c T, ctx *PrecisionContext) T
	Divide(a, b T, ctx *PrecisionContext) T
	DivideToExponent(a, b T, desiredExp *BigInt, ctx *PrecisionContext) T
	DivideToIntegerNaturalScale(a, b T, ctx *PrecisionContext) T
	DivideToIntegerZeroScale(a, b T, ctx *PrecisionContext) T
	Remainder(a, b T, ctx *PrecisionContext) T
	RemainderNear(a, b T, ctx *PrecisionContext) T
	Quantize(a, b T, ctx *PrecisionContext) T
	Reduce(a T, ctx *PrecisionContext) T
	RoundToPrecision(a T, ctx *PrecisionContext) T
	RoundToExponentExact(a T, exponent *BigInt, ctx *PrecisionContext) T
	RoundToExponentSimple(a T, exponent *BigInt, ctx *PrecisionContext) T
	RoundToExponentNoRoundedFlag(a T, exponent *BigInt, ctx *PrecisionContext) T
	Abs(a T, ctx *PrecisionContext) T
	Negate(a T, ctx *PrecisionContext) T
	Plus(a T, ctx *PrecisionContext) T
	Exp(a T, ctx *PrecisionContext) T
	Ln(a T, ctx *PrecisionContext) T
	Log10(a T, ctx *PrecisionContext) T
	Pi(ctx *PrecisionContext) T
	Power(a, b T, ctx *PrecisionContext) T
	SquareRoot(a T, ctx *PrecisionContext) T
	Min(a, b T, ctx *PrecisionContext) T
	Max(a, b T, ctx *PrecisionContext) T
	MinMagnitude(a, b T, ctx *PrecisionContext) T
	MaxMagnitude(a, b T, ctx *PrecisionContext) T
	NextPlus(a T, ctx *PrecisionContext) T
	NextMinus(a T, ctx *PrecisionContext) T
	NextToward(a, b T, ctx *PrecisionContext) T
	CompareToWithContext(a, b T, ctx *PrecisionContext, treatQuietNaNsAsSignaling bool) T
}

// decimalHelper adapts ExtendedDecimal to the kernel for radix 10
type decimalHelper struct{}

func (decimalHelper) Radix() int {
	return 10
}

func (decimalHelper) CreateNewWithFlags(mantissa, exponent *BigInt, flags int) *ExtendedDecimal {
	return &ExtendedDecimal{flags: flags, mantissa: mantissa.Abs(), exponent: exponent}
}

func (decimalHelper) Mantissa(v *ExtendedDecimal) *BigInt {
	return v.mantissa
}

func (decimalHelper) Exponent(v *ExtendedDecimal) *BigInt {
	return v.exponent
}

func (decimalHelper) Flags(v *ExtendedDecimal) int {
	return v.flags
}

func (decimalHelper) ValueOf(i int64) *ExtendedDecimal {
	return NewExtendedDecimalFromInt64(i)
}

func (decimalHelper) MultiplyByRadixPower(mantissa *BigInt, power *fastInteger) *BigInt {
	if mantissa.IsZero() || power.Sign() == 0 {
		return mantissa
	}
	if power.CanFitInInt32() {
		return mantissa.Mul(powerOfTen(int(power.AsInt32())))
	}
	panic(&RangeError{Op: "MultiplyByRadixPower", Msg: "power too large"})
}

func (decimalHelper) CreateShiftAccumulator(mantissa *BigInt, lastDiscarded, olderDiscarded int) shiftAccumulator {
	return newDigitShiftAccumulator(mantissa, lastDiscarded, olderDiscarded)
}

func (decimalHelper) ArithmeticSupport() int {
	return supportNonFinite
}

// binaryHelper adapts ExtendedFloat to the kernel for radix 2
type binaryHelper struct{}

func (binaryHelper) Radix() int {
	return 2
}

func (binaryHelper) CreateNewWithFlags(mantissa, exponent *BigInt, flags int) *ExtendedFloat {
	return &ExtendedFloat{flags: flags, mantissa: mantissa.Abs(), exponent: exponent}
}

func (binaryHelper) Mantissa(v *ExtendedFloat) *BigInt {
	return v.mantissa
}

func (binaryHelper) Exponent(v *ExtendedFloat) *BigInt {
	return v.exponent
}

func (binaryHelper) Flags(v *ExtendedFloat) int {
	return v.flags
}

func (binaryHelper) ValueOf(i int64) *ExtendedFloat {
	return NewExtendedFloatFromInt64(i)
}

func (binaryHelper) MultiplyByRadixPower(mantissa *BigInt, power *fastInteger) *BigInt {
	if mantissa.IsZero() || power.Sign() == 0 {
		return mantissa
	}
	if power.CanFitInInt32() {
		return mantissa.ShiftLeft(int(power.AsInt32()))
	}
	panic(&RangeError{Op: "MultiplyByRadixPower", Msg: "power too large"})
}

func (binaryHelper) CreateShiftAccumulator(mantissa *BigInt, lastDiscarded, olderDiscarded int) shiftAccumulator {
	return newBitShiftAccumulator(mantissa, lastDiscarded, olderDiscarded)
}

func (binaryHelper) ArithmeticSupport() int {
	return supportNonFinite
}

// one kernel pair per radix, shared by every value
var (
	decimalMathFull   = newRadixMath[*ExtendedDecimal](decimalHelper{})
	decimalMathSimple = newSimpleRadixMath(decimalMathFull)
	binaryMathFull    = newRadixMath[*ExtendedFloat](binaryHelper{})
	binaryMathSimple  = newSimpleRadixMath(binaryMathFull)
)

func decimalKernel(ctx *PrecisionContext) mathKernel[*ExtendedDecimal] {
	if ctx != nil && ctx.IsSimplified() {
		return decimalMathSimple
	}
	return decimalMathFull
}

func binaryKernel(ctx *PrecisionContext) mathKernel[*ExtendedFloat] {
	if ctx != nil && ctx.IsSimplified() {
		return binaryMathSimple
	}
	return binaryMathFull
}
