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
	"math"
	"strings"
)

// An ExtendedDecimal is an arbitrary-precision decimal number of the
// form mantissa * 10**exponent. The mantissa is stored unsigned; the
// sign and the special markers (infinity, quiet NaN, signaling NaN)
// live in the flags word, so negative zero is representable and
// distinct from positive zero. For a NaN the mantissa carries the
// diagnostic payload and the exponent is zero.
//
// Values are immutable. Operations taking a *PrecisionContext accept
// nil for exact, unlimited-precision arithmetic.
type ExtendedDecimal struct {
	flags    int
	mantissa *BigInt
	exponent *BigInt
}

// Predefined values
var (
	DecimalZero             = NewExtendedDecimalFromInt64(0)
	DecimalNegativeZero     = &ExtendedDecimal{flags: flagNegative, mantissa: bigZero, exponent: bigZero}
	DecimalOne              = NewExtendedDecimalFromInt64(1)
	DecimalTen              = NewExtendedDecimalFromInt64(10)
	DecimalNaN              = &ExtendedDecimal{flags: flagQuietNaN, mantissa: bigZero, exponent: bigZero}
	DecimalSignalingNaN     = &ExtendedDecimal{flags: flagSignalingNaN, mantissa: bigZero, exponent: bigZero}
	DecimalPositiveInfinity = &ExtendedDecimal{flags: flagInfinity, mantissa: bigZero, exponent: bigZero}
	DecimalNegativeInfinity = &ExtendedDecimal{flags: flagInfinity | flagNegative, mantissa: bigZero, exponent: bigZero}
)

// NewExtendedDecimal builds a finite value from a signed mantissa and
// an exponent
func NewExtendedDecimal(mantissa, exponent *BigInt) *ExtendedDecimal {
	flags := 0
	if mantissa.Sign() < 0 {
		flags = flagNegative
	}
	return &ExtendedDecimal{flags: flags, mantissa: mantissa.Abs(), exponent: exponent}
}

// NewExtendedDecimalFromInt64 builds a finite value with exponent 0
func NewExtendedDecimalFromInt64(v int64) *ExtendedDecimal {
	return NewExtendedDecimal(NewBigInt(v), bigZero)
}

// NewExtendedDecimalFromBigInt builds a finite value with exponent 0
func NewExtendedDecimalFromBigInt(v *BigInt) *ExtendedDecimal {
	return NewExtendedDecimal(v, bigZero)
}

// ExtendedDecimalFromString parses the grammar
//
//	-? digit+ ('.' digit+)? ([eE] [-+]? digit+)?
//
// plus the special forms Infinity, NaN and sNaN, each with an optional
// minus sign and, for the NaN forms, an optional digit payload
func ExtendedDecimalFromString(s string) (*ExtendedDecimal, error) {
	orig := s
	if s == "" {
		return nil, fmt.Errorf("num: empty decimal literal")
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	lower := strings.ToLower(s)
	switch {
	case lower == "infinity" || lower == "inf":
		if neg {
			return DecimalNegativeInfinity, nil
		}
		return DecimalPositiveInfinity, nil
	case strings.HasPrefix(lower, "snan"):
		return decimalNaNFromPayload(lower[4:], neg, flagSignalingNaN)
	case strings.HasPrefix(lower, "nan"):
		return decimalNaNFromPayload(lower[3:], neg, flagQuietNaN)
	}

	mantDigits, fracDigits, expPart := "", "", ""
	rest := s
	if i := strings.IndexAny(rest, "eE"); i >= 0 {
		expPart = rest[i+1:]
		rest = rest[:i]
		if expPart == "" {
			return nil, fmt.Errorf("num: %q: empty exponent", orig)
		}
	}
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		mantDigits, fracDigits = rest[:i], rest[i+1:]
		if fracDigits == "" {
			return nil, fmt.Errorf("num: %q: trailing decimal point", orig)
		}
	} else {
		mantDigits = rest
	}
	if mantDigits == "" {
		return nil, fmt.Errorf("num: %q: missing digits", orig)
	}
	if mantDigits[0] < '0' || mantDigits[0] > '9' {
		return nil, fmt.Errorf("num: %q: invalid digit %q", orig, mantDigits[0])
	}
	mant, err := BigIntFromString(mantDigits + fracDigits)
	if err != nil {
		return nil, fmt.Errorf("num: %q: %w", orig, err)
	}
	exp := bigZero
	if expPart != "" {
		exp, err = BigIntFromString(expPart)
		if err != nil {
			return nil, fmt.Errorf("num: %q: %w", orig, err)
		}
	}
	exp = exp.Sub(NewBigInt(int64(len(fracDigits))))
	flags := 0
	if neg {
		flags = flagNegative
	}
	return &ExtendedDecimal{flags: flags, mantissa: mant, exponent: exp}, nil
}

func decimalNaNFromPayload(digits string, neg bool, kind int) (*ExtendedDecimal, error) {
	payload := bigZero
	if digits != "" {
		if digits[0] < '0' || digits[0] > '9' {
			return nil, fmt.Errorf("num: invalid NaN payload %q", digits)
		}
		var err error
		payload, err = BigIntFromString(digits)
		if err != nil {
			return nil, fmt.Errorf("num: invalid NaN payload %q", digits)
		}
	}
	flags := kind
	if neg {
		flags |= flagNegative
	}
	return &ExtendedDecimal{flags: flags, mantissa: payload, exponent: bigZero}, nil
}

// MustExtendedDecimalFromString is the panicking form for literals
func MustExtendedDecimalFromString(s string) *ExtendedDecimal {
	v, err := ExtendedDecimalFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ExtendedDecimalFromFloat64 converts a binary64 value exactly: every
// finite float64 has a terminating decimal expansion
func ExtendedDecimalFromFloat64(f float64) *ExtendedDecimal {
	if math.IsNaN(f) {
		if math.Signbit(f) {
			return &ExtendedDecimal{flags: flagQuietNaN | flagNegative, mantissa: bigZero, exponent: bigZero}
		}
		return DecimalNaN
	}
	if math.IsInf(f, 1) {
		return DecimalPositiveInfinity
	}
	if math.IsInf(f, -1) {
		return DecimalNegativeInfinity
	}
	neg := math.Signbit(f)
	bits := math.Float64bits(f)
	mantBits := bits & (1<<52 - 1)
	expBits := int((bits >> 52) & 0x7ff)
	var mant *BigInt
	var exp int
	if expBits == 0 {
		mant = NewBigIntFromUint64(mantBits)
		exp = -1074
	} else {
		mant = NewBigIntFromUint64(mantBits | 1<<52)
		exp = expBits - 1075
	}
	var dm *BigInt
	var de *BigInt
	if exp >= 0 {
		dm = mant.ShiftLeft(exp)
		de = bigZero
	} else {
		// 2**-k is 5**k * 10**-k
		dm = mant.Mul(NewBigInt(5).Pow(-exp))
		de = NewBigInt(int64(exp))
	}
	flags := 0
	if neg {
		flags = flagNegative
	}
	return &ExtendedDecimal{flags: flags, mantissa: dm, exponent: de}
}

// --- accessors -------------------------------------------------------

// Mantissa returns the signed mantissa
func (d *ExtendedDecimal) Mantissa() *BigInt {
	if d.flags&flagNegative != 0 {
		return d.mantissa.Neg()
	}
	return d.mantissa
}

// UnsignedMantissa returns the mantissa magnitude
func (d *ExtendedDecimal) UnsignedMantissa() *BigInt {
	return d.mantissa
}

// Exponent returns the exponent
func (d *ExtendedDecimal) Exponent() *BigInt {
	return d.exponent
}

// Sign returns -1, 0 or 1; both zeros report 0
func (d *ExtendedDecimal) Sign() int {
	if d.IsFinite() && d.mantissa.IsZero() {
		return 0
	}
	if d.flags&flagNegative != 0 {
		return -1
	}
	return 1
}

func (d *ExtendedDecimal) IsNegative() bool {
	return d.flags&flagNegative != 0
}

func (d *ExtendedDecimal) IsFinite() bool {
	return d.flags&flagSpecial == 0
}

func (d *ExtendedDecimal) IsZero() bool {
	return d.IsFinite() && d.mantissa.IsZero()
}

func (d *ExtendedDecimal) IsInfinity() bool {
	return d.flags&flagInfinity != 0
}

func (d *ExtendedDecimal) IsPositiveInfinity() bool {
	return d.flags&(flagInfinity|flagNegative) == flagInfinity
}

func (d *ExtendedDecimal) IsNegativeInfinity() bool {
	return d.flags&(flagInfinity|flagNegative) == flagInfinity|flagNegative
}

func (d *ExtendedDecimal) IsNaN() bool {
	return d.flags&flagNaN != 0
}

func (d *ExtendedDecimal) IsQuietNaN() bool {
	return d.flags&flagQuietNaN != 0
}

func (d *ExtendedDecimal) IsSignalingNaN() bool {
	return d.flags&flagSignalingNaN != 0
}

// --- arithmetic surface ----------------------------------------------

func (d *ExtendedDecimal) Add(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Add(d, other, ctx)
}

func (d *ExtendedDecimal) Subtract(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Subtract(d, other, ctx)
}

func (d *ExtendedDecimal) Multiply(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Multiply(d, other, ctx)
}

// MultiplyAndAdd returns d*b + c with a single rounding
func (d *ExtendedDecimal) MultiplyAndAdd(b, c *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).MultiplyAndAdd(d, b, c, ctx)
}

func (d *ExtendedDecimal) Divide(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Divide(d, other, ctx)
}

func (d *ExtendedDecimal) DivideToExponent(other *ExtendedDecimal, exponent *BigInt, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).DivideToExponent(d, other, exponent, ctx)
}

func (d *ExtendedDecimal) DivideToIntegerNaturalScale(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).DivideToIntegerNaturalScale(d, other, ctx)
}

func (d *ExtendedDecimal) DivideToIntegerZeroScale(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).DivideToIntegerZeroScale(d, other, ctx)
}

func (d *ExtendedDecimal) Remainder(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Remainder(d, other, ctx)
}

func (d *ExtendedDecimal) RemainderNear(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).RemainderNear(d, other, ctx)
}

func (d *ExtendedDecimal) Abs(ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Abs(d, ctx)
}

func (d *ExtendedDecimal) Negate(ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Negate(d, ctx)
}

func (d *ExtendedDecimal) Plus(ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Plus(d, ctx)
}

func (d *ExtendedDecimal) Min(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Min(d, other, ctx)
}

func (d *ExtendedDecimal) Max(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Max(d, other, ctx)
}

func (d *ExtendedDecimal) MinMagnitude(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).MinMagnitude(d, other, ctx)
}

func (d *ExtendedDecimal) MaxMagnitude(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).MaxMagnitude(d, other, ctx)
}

func (d *ExtendedDecimal) Quantize(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Quantize(d, other, ctx)
}

func (d *ExtendedDecimal) RoundToPrecision(ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).RoundToPrecision(d, ctx)
}

func (d *ExtendedDecimal) RoundToExponentExact(exponent *BigInt, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).RoundToExponentExact(d, exponent, ctx)
}

func (d *ExtendedDecimal) RoundToExponentSimple(exponent *BigInt, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).RoundToExponentSimple(d, exponent, ctx)
}

func (d *ExtendedDecimal) RoundToExponentNoRoundedFlag(exponent *BigInt, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).RoundToExponentNoRoundedFlag(d, exponent, ctx)
}

// RoundToBinaryPrecision rounds the value to the context's precision
// counted in bits of the binary significand, going through the binary
// form and back
func (d *ExtendedDecimal) RoundToBinaryPrecision(ctx *PrecisionContext) *ExtendedDecimal {
	if !d.IsFinite() {
		return decimalKernel(ctx).RoundToPrecision(d, ctx)
	}
	return d.ToExtendedFloat(ctx).ToExtendedDecimal()
}

func (d *ExtendedDecimal) Reduce(ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Reduce(d, ctx)
}

func (d *ExtendedDecimal) Exp(ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Exp(d, ctx)
}

func (d *ExtendedDecimal) Ln(ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Ln(d, ctx)
}

func (d *ExtendedDecimal) Log10(ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Log10(d, ctx)
}

// DecimalPi returns the circle constant at the context's precision
func DecimalPi(ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Pi(ctx)
}

func (d *ExtendedDecimal) Power(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).Power(d, other, ctx)
}

func (d *ExtendedDecimal) SquareRoot(ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).SquareRoot(d, ctx)
}

func (d *ExtendedDecimal) NextPlus(ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).NextPlus(d, ctx)
}

func (d *ExtendedDecimal) NextMinus(ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).NextMinus(d, ctx)
}

func (d *ExtendedDecimal) NextToward(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).NextToward(d, other, ctx)
}

// CompareTo orders two values; NaNs order after everything else and
// the two zeros compare equal
func (d *ExtendedDecimal) CompareTo(other *ExtendedDecimal) int {
	return decimalMathFull.CompareTo(d, other)
}

// CompareToWithContext reports the order as a decimal, propagating
// NaNs and signalling on a signaling operand
func (d *ExtendedDecimal) CompareToWithContext(other *ExtendedDecimal, ctx *PrecisionContext) *ExtendedDecimal {
	return decimalKernel(ctx).CompareToWithContext(d, other, ctx, false)
}

// Equals reports operand identity: same flags, mantissa and exponent
func (d *ExtendedDecimal) Equals(other *ExtendedDecimal) bool {
	return d.flags == other.flags &&
		d.mantissa.Equals(other.mantissa) &&
		d.exponent.Equals(other.exponent)
}

// MovePointLeft shifts the decimal point n places left
func (d *ExtendedDecimal) MovePointLeft(n int, ctx *PrecisionContext) *ExtendedDecimal {
	return d.ScaleByPowerOfTen(-n, ctx)
}

// MovePointRight shifts the decimal point n places right
func (d *ExtendedDecimal) MovePointRight(n int, ctx *PrecisionContext) *ExtendedDecimal {
	return d.ScaleByPowerOfTen(n, ctx)
}

// ScaleByPowerOfTen adds n to the exponent
func (d *ExtendedDecimal) ScaleByPowerOfTen(n int, ctx *PrecisionContext) *ExtendedDecimal {
	if !d.IsFinite() {
		return decimalKernel(ctx).RoundToPrecision(d, ctx)
	}
	scaled := &ExtendedDecimal{
		flags:    d.flags,
		mantissa: d.mantissa,
		exponent: d.exponent.Add(NewBigInt(int64(n))),
	}
	if ctx == nil {
		return scaled
	}
	return decimalKernel(ctx).RoundToPrecision(scaled, ctx)
}

// Ulp returns the value of one unit in the last place
func (d *ExtendedDecimal) Ulp() *ExtendedDecimal {
	if !d.IsFinite() {
		return DecimalPositiveInfinity
	}
	return &ExtendedDecimal{mantissa: bigOne, exponent: d.exponent}
}

// --- conversions ------------------------------------------------------

// ToBigInt truncates toward zero; NaN and infinity do not convert
func (d *ExtendedDecimal) ToBigInt() (*BigInt, error) {
	if d.IsNaN() {
		return nil, &RangeError{Op: "ToBigInt", Msg: "not a number"}
	}
	if d.IsInfinity() {
		return nil, &RangeError{Op: "ToBigInt", Msg: "infinity"}
	}
	var v *BigInt
	if e, err := d.exponent.CheckedInt64(); err != nil {
		if d.mantissa.IsZero() {
			return bigZero, nil
		}
		if d.exponent.Sign() < 0 {
			return bigZero, nil
		}
		return nil, &RangeError{Op: "ToBigInt", Msg: "exponent out of range"}
	} else if e >= 0 {
		v = d.mantissa.Mul(powerOfTen(int(e)))
	} else {
		v = d.mantissa.Div(powerOfTen(int(-e)))
	}
	if d.flags&flagNegative != 0 {
		v = v.Neg()
	}
	return v, nil
}

// ToExtendedFloat converts to a binary float, exactly when the context
// is nil and the expansion terminates; a non-terminating expansion
// rounds half-even at 113 bits when no context narrows it first
func (d *ExtendedDecimal) ToExtendedFloat(ctx *PrecisionContext) *ExtendedFloat {
	if d.IsNaN() {
		return &ExtendedFloat{flags: d.flags, mantissa: d.mantissa, exponent: bigZero}
	}
	if d.IsInfinity() {
		return &ExtendedFloat{flags: d.flags, mantissa: bigZero, exponent: bigZero}
	}
	neg := d.IsNegative()
	if d.mantissa.IsZero() {
		out := &ExtendedFloat{mantissa: bigZero, exponent: bigZero}
		if neg {
			out.flags = flagNegative
		}
		if ctx != nil {
			return binaryKernel(ctx).RoundToPrecision(out, ctx)
		}
		return out
	}
	e, err := d.exponent.CheckedInt64()
	if err != nil {
		panic(&RangeError{Op: "ToExtendedFloat", Msg: "exponent out of range"})
	}
	if e >= 0 {
		// m * 10**e is m * 5**e shifted left e bits, always exact
		bm := d.mantissa.Mul(NewBigInt(5).Pow(int(e)))
		out := binaryHelper{}.CreateNewWithFlags(bm, NewBigInt(e), boolFlag(neg))
		if ctx != nil {
			return binaryKernel(ctx).RoundToPrecision(out, ctx)
		}
		return out
	}
	k := int(-e)
	den := NewBigInt(5).Pow(k)
	prec := 113
	if ctx != nil && ctx.precisionInt() > 0 {
		prec = ctx.precisionInt()
	}
	t := den.BitLength() + prec + 2 - d.mantissa.BitLength()
	if t < 0 {
		t = 0
	}
	num := d.mantissa.ShiftLeft(t)
	q, rem := num.DivRem(den)
	if rem.IsZero() {
		out := binaryHelper{}.CreateNewWithFlags(q, NewBigInt(e-int64(t)), boolFlag(neg))
		// the added zero bits survive in an exact quotient; fold them
		// back into the exponent
		out = binaryMathFull.Reduce(out, nil)
		if ctx != nil {
			return binaryKernel(ctx).RoundToPrecision(out, ctx)
		}
		return out
	}
	useCtx := ctx
	if useCtx == nil {
		useCtx = NewPrecisionContext(prec)
	}
	return binaryMathFull.roundInternal(neg, q, NewBigInt(e-int64(t)), 0, 1, useCtx)
}

// ToFloat64 rounds to the nearest binary64 value
func (d *ExtendedDecimal) ToFloat64() float64 {
	return d.ToExtendedFloat(ContextBinary64.WithBlankFlags()).ToFloat64()
}

func boolFlag(neg bool) int {
	if neg {
		return flagNegative
	}
	return 0
}

// --- string rendering -------------------------------------------------

const (
	fmtDefault = iota
	fmtPlain
	fmtEngineering
)

// String renders scientific notation when the exponent is positive or
// the adjusted exponent is below -6, plain notation otherwise; a
// negative zero renders as -0
func (d *ExtendedDecimal) String() string {
	return d.toStringInternal(fmtDefault)
}

// ToPlainString always renders positional notation
func (d *ExtendedDecimal) ToPlainString() string {
	return d.toStringInternal(fmtPlain)
}

// ToEngineeringString renders scientific notation with an exponent
// that is a multiple of three
func (d *ExtendedDecimal) ToEngineeringString() string {
	return d.toStringInternal(fmtEngineering)
}

func (d *ExtendedDecimal) toStringInternal(mode int) string {
	var sb strings.Builder
	if d.flags&flagNegative != 0 {
		sb.WriteByte('-')
	}
	switch {
	case d.IsInfinity():
		sb.WriteString("Infinity")
		return sb.String()
	case d.IsSignalingNaN():
		sb.WriteString("sNaN")
		if !d.mantissa.IsZero() {
			sb.WriteString(d.mantissa.String())
		}
		return sb.String()
	case d.IsQuietNaN():
		sb.WriteString("NaN")
		if !d.mantissa.IsZero() {
			sb.WriteString(d.mantissa.String())
		}
		return sb.String()
	}

	digits := d.mantissa.String()
	e, err := d.exponent.CheckedInt64()
	if err != nil {
		// exponents beyond int64 only render scientifically
		sb.WriteString(scientificForm(digits, d.exponent))
		return sb.String()
	}
	adjusted := e + int64(len(digits)) - 1

	scientific := e > 0 || adjusted < -6
	if mode == fmtPlain {
		scientific = false
	}
	if !scientific {
		pointPos := int64(len(digits)) + e
		switch {
		case e >= 0:
			sb.WriteString(digits)
			for i := int64(0); i < e; i++ {
				sb.WriteByte('0')
			}
		case pointPos > 0:
			sb.WriteString(digits[:pointPos])
			sb.WriteByte('.')
			sb.WriteString(digits[pointPos:])
		default:
			sb.WriteString("0.")
			for i := pointPos; i < 0; i++ {
				sb.WriteByte('0')
			}
			sb.WriteString(digits)
		}
		return sb.String()
	}

	if mode == fmtEngineering {
		shift := ((adjusted%3)+3)%3 + 1 // leading digits before the point
		for int64(len(digits)) < shift {
			digits += "0"
		}
		sb.WriteString(digits[:shift])
		if int64(len(digits)) > shift {
			sb.WriteByte('.')
			sb.WriteString(digits[shift:])
		}
		engExp := adjusted - (shift - 1)
		writeExponent(&sb, engExp)
		return sb.String()
	}

	sb.WriteString(digits[:1])
	if len(digits) > 1 {
		sb.WriteByte('.')
		sb.WriteString(digits[1:])
	}
	writeExponent(&sb, adjusted)
	return sb.String()
}

func writeExponent(sb *strings.Builder, e int64) {
	sb.WriteByte('E')
	if e >= 0 {
		sb.WriteByte('+')
	}
	fmt.Fprintf(sb, "%d", e)
}

func scientificForm(digits string, exponent *BigInt) string {
	adjusted := exponent.Add(NewBigInt(int64(len(digits) - 1)))
	out := digits[:1]
	if len(digits) > 1 {
		out += "." + digits[1:]
	}
	out += "E"
	if adjusted.Sign() >= 0 {
		out += "+"
	}
	return out + adjusted.String()
}
