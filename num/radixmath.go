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

// Special-value flag bits shared by ExtendedDecimal and ExtendedFloat.
// Infinity, quiet NaN and signaling NaN are mutually exclusive with
// each other and with a finite value.
const (
	flagNegative     = 1
	flagInfinity     = 2
	flagQuietNaN     = 4
	flagSignalingNaN = 8
)

const flagSpecial = flagInfinity | flagQuietNaN | flagSignalingNaN
const flagNaN = flagQuietNaN | flagSignalingNaN

// arithmetic support levels a helper may declare
const (
	supportFinite = iota
	supportNonFinite
)

// A radixMathHelper adapts a concrete number shape to the generic
// arithmetic kernel: it exposes the radix, decomposes values into
// mantissa, exponent and flags, builds new values, and creates the
// shift accumulator matching its radix.
type radixMathHelper[T any] interface {
	Radix() int
	CreateNewWithFlags(mantissa, exponent *BigInt, flags int) T
	Mantissa(v T) *BigInt
	Exponent(v T) *BigInt
	Flags(v T) int
	ValueOf(i int64) T
	MultiplyByRadixPower(mantissa *BigInt, power *fastInteger) *BigInt
	CreateShiftAccumulator(mantissa *BigInt, lastDiscarded, olderDiscarded int) shiftAccumulator
	ArithmeticSupport() int
}

// radixMath is the arithmetic kernel parameterised by a radix helper.
// All rounding, range checking and flag bookkeeping funnels through
// roundInternal; the public facades wrap one instance per radix.
type radixMath[T any] struct {
	helper radixMathHelper[T]
}

func newRadixMath[T any](h radixMathHelper[T]) *radixMath[T] {
	return &radixMath[T]{helper: h}
}

// --- small structural queries ---------------------------------------

func (r *radixMath[T]) flagsOf(v T) int {
	return r.helper.Flags(v)
}

func (r *radixMath[T]) isNegative(v T) bool {
	return r.flagsOf(v)&flagNegative != 0
}
func (r *radixMath[T]) isInfinity(v T) bool {
	return r.flagsOf(v)&flagInfinity != 0
}
func (r *radixMath[T]) isNaN(v T) bool {
	return r.flagsOf(v)&flagNaN != 0
}
func (r *radixMath[T]) isSignalingNaN(v T) bool {
	return r.flagsOf(v)&flagSignalingNaN != 0
}
func (r *radixMath[T]) isFinite(v T) bool {
	return r.flagsOf(v)&flagSpecial == 0
}
func (r *radixMath[T]) isZero(v T) bool {
	return r.isFinite(v) && r.helper.Mantissa(v).IsZero()
}

func (r *radixMath[T]) newFinite(neg bool, mant, exp *BigInt) T {
	flags := 0
	if neg {
		flags = flagNegative
	}
	return r.helper.CreateNewWithFlags(mant, exp, flags)
}

func (r *radixMath[T]) infinity(neg bool) T {
	flags := flagInfinity
	if neg {
		flags |= flagNegative
	}
	return r.helper.CreateNewWithFlags(bigZero, bigZero, flags)
}

// digitLength counts mantissa digits in the helper's radix
func (r *radixMath[T]) digitLength(mant *BigInt) *BigInt {
	if mant.IsZero() {
		return bigOne
	}
	return r.helper.CreateShiftAccumulator(mant, 0, 0).DigitLength().AsBigInt()
}

// adjustedExponent is exponent + digits - 1
func (r *radixMath[T]) adjustedExponent(mant, exp *BigInt) *BigInt {
	return exp.Add(r.digitLength(mant)).Sub(bigOne)
}

func (r *radixMath[T]) radixPower(n int) *BigInt {
	return r.helper.MultiplyByRadixPower(bigOne, newFastInteger(int32(n)))
}

// signalResult accumulates flags and honours the trap mask; a trap
// carries the already-computed result and unwinds as a panic, matching
// the exception semantics the trap mask opts into
func signalResult(ctx *PrecisionContext, flags int, result interface{}) {
	if ctx == nil {
		return
	}
	if err := ctx.signal(flags); err != nil {
		err.(*TrapError).Result = result
		panic(err)
	}
}

// --- NaN handling ----------------------------------------------------

// quietNaNFrom converts a NaN operand into the quiet NaN result,
// signalling Invalid when the source was signaling
func (r *radixMath[T]) quietNaNFrom(v T, ctx *PrecisionContext) T {
	flags := r.flagsOf(v)
	payload := r.helper.Mantissa(v)
	if ctx != nil && ctx.precisionInt() > 0 {
		// NaN diagnostic payloads respect the precision too
		acc := r.helper.CreateShiftAccumulator(payload, 0, 0)
		acc.ShiftToDigits(newFastInteger(int32(ctx.precisionInt())))
		payload = acc.ShiftedInt()
	}
	out := r.helper.CreateNewWithFlags(payload, bigZero, (flags&flagNegative)|flagQuietNaN)
	if flags&flagSignalingNaN != 0 {
		signalResult(ctx, FlagInvalid, out)
	}
	return out
}

func (r *radixMath[T]) signalInvalid(ctx *PrecisionContext) T {
	out := r.helper.CreateNewWithFlags(bigZero, bigZero, flagQuietNaN)
	signalResult(ctx, FlagInvalid, out)
	return out
}

// handleNaN2 resolves the NaN cases of a two-operand operation;
// signaling NaNs win over quiet ones, first operand over second
func (r *radixMath[T]) handleNaN2(a, b T, ctx *PrecisionContext) (T, bool) {
	var zero T
	if r.isSignalingNaN(a) {
		return r.quietNaNFrom(a, ctx), true
	}
	if r.isSignalingNaN(b) {
		return r.quietNaNFrom(b, ctx), true
	}
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx), true
	}
	if r.isNaN(b) {
		return r.quietNaNFrom(b, ctx), true
	}
	return zero, false
}

// --- the rounding pipeline ------------------------------------------

// roundUpNeeded applies the rounding mode to the discard information:
// the last discarded digit, the sticky OR of everything below it, the
// retained low digit and the result sign
func (r *radixMath[T]) roundUpNeeded(last, older, retainedLow int, neg bool, rounding Rounding) bool {
	if last == 0 && older == 0 {
		return false
	}
	radix := r.helper.Radix()
	switch rounding {
	case RoundDown:
		return false
	case RoundUp:
		return true
	case RoundCeiling:
		return !neg
	case RoundFloor:
		return neg
	case RoundHalfUp:
		return last >= (radix+1)/2
	case RoundHalfDown:
		return last > radix/2 || (last == radix/2 && older != 0)
	case RoundHalfEven:
		half := radix / 2
		if last > half {
			return true
		}
		if last == half {
			return older != 0 || retainedLow%2 == 1
		}
		return false
	case RoundZeroFiveUp:
		return retainedLow%5 == 0
	}
	return false
}

func (r *radixMath[T]) lowDigit(mant *BigInt) int {
	if mant.IsZero() {
		return 0
	}
	rem := mant.Rem(NewBigInt(int64(r.helper.Radix())))
	return int(rem.Int64())
}

// roundInternal is the whole RoundToPrecision pipeline: shift to
// precision remembering last and sticky digits, apply the rounding
// mode, re-round a carry out of the precision, then check the exponent
// range for overflow, subnormals and the exponent clamp.
func (r *radixMath[T]) roundInternal(neg bool, mant, exp *BigInt, lastD, olderD int, ctx *PrecisionContext) T {
	if ctx == nil {
		ctx = ContextUnlimited
	}
	flags := 0
	prec := ctx.precisionInt()
	rounding := ctx.Rounding()

	accum := r.helper.CreateShiftAccumulator(mant, lastD, olderD)
	if prec > 0 {
		accum.ShiftToDigits(newFastInteger(int32(prec)))
	}
	discarded := accum.DiscardedDigitCount().AsBigInt()
	exp = exp.Add(discarded)
	mant = accum.ShiftedInt()
	last, older := accum.LastDiscardedDigit(), accum.OlderDiscardedDigits()

	if discarded.Sign() > 0 || last != 0 || older != 0 {
		flags |= FlagRounded
	}
	if last != 0 || older != 0 {
		flags |= FlagInexact | FlagRounded
		if r.roundUpNeeded(last, older, r.lowDigit(mant), neg, rounding) {
			mant = mant.Add(bigOne)
			if prec > 0 && r.digitLength(mant).Cmp(NewBigInt(int64(prec))) > 0 {
				carry := r.helper.CreateShiftAccumulator(mant, 0, 0)
				carry.ShiftRightInt(1)
				mant = carry.ShiftedInt()
				exp = exp.Add(bigOne)
			}
		}
	}

	if ctx.HasExponentRange() {
		eMax, eMin := ctx.EMax(), ctx.EMin()
		precBig := NewBigInt(int64(prec))
		etiny := eMin.Sub(precBig).Add(bigOne)
		if prec == 0 {
			etiny = eMin
		}
		if mant.IsZero() {
			if exp.Cmp(etiny) < 0 {
				exp = etiny
				flags |= FlagClamped
			}
		} else {
			adjusted := r.adjustedExponent(mant, exp)
			if adjusted.Cmp(eMax) > 0 {
				flags |= FlagOverflow | FlagInexact | FlagRounded
				towardZero := rounding == RoundDown || rounding == RoundZeroFiveUp ||
					(rounding == RoundCeiling && neg) || (rounding == RoundFloor && !neg)
				if towardZero && prec > 0 {
					omant := r.radixPower(prec).Sub(bigOne)
					oexp := eMax.Sub(precBig).Add(bigOne)
					out := r.newFinite(neg, omant, oexp)
					signalResult(ctx, flags, out)
					return out
				}
				out := r.infinity(neg)
				signalResult(ctx, flags, out)
				return out
			}
			if adjusted.Cmp(eMin) < 0 {
				flags |= FlagSubnormal
				if exp.Cmp(etiny) < 0 {
					diff := newFastIntegerFromBig(etiny.Sub(exp))
					sub := r.helper.CreateShiftAccumulator(mant, last, older)
					sub.ShiftRight(diff)
					mant = sub.ShiftedInt()
					sl, so := sub.LastDiscardedDigit(), sub.OlderDiscardedDigits()
					if sl != 0 || so != 0 {
						flags |= FlagUnderflow | FlagInexact | FlagRounded
						if r.roundUpNeeded(sl, so, r.lowDigit(mant), neg, rounding) {
							mant = mant.Add(bigOne)
						}
					}
					exp = etiny
				}
			}
		}
		if ctx.ClampNormalExponents() && prec > 0 {
			maxExp := eMax.Sub(precBig).Add(bigOne)
			if exp.Cmp(maxExp) > 0 {
				if mant.IsZero() {
					exp = maxExp
				} else {
					pad := newFastIntegerFromBig(exp.Sub(maxExp))
					mant = r.helper.MultiplyByRadixPower(mant, pad)
					exp = maxExp
				}
				flags |= FlagClamped
			}
		}
	}

	out := r.newFinite(neg, mant, exp)
	signalResult(ctx, flags, out)
	return out
}

// RoundToPrecision rounds any value into the context
func (r *radixMath[T]) RoundToPrecision(v T, ctx *PrecisionContext) T {
	if r.isNaN(v) {
		return r.quietNaNFrom(v, ctx)
	}
	if r.isInfinity(v) {
		return v
	}
	return r.roundInternal(r.isNegative(v), r.helper.Mantissa(v), r.helper.Exponent(v), 0, 0, ctx)
}

// --- addition and subtraction ---------------------------------------

// Add returns a + b rounded into the context. Exponents align by
// scaling the mantissa of the larger-exponent operand up; when the gap exceeds
// what the precision can observe, the smaller operand collapses into a
// single sticky unit below the guard digits, keeping the cost bound to
// the precision rather than to the gap.
func (r *radixMath[T]) Add(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.handleNaN2(a, b, ctx); ok {
		return res
	}
	aNeg, bNeg := r.isNegative(a), r.isNegative(b)
	if r.isInfinity(a) {
		if r.isInfinity(b) && aNeg != bNeg {
			return r.signalInvalid(ctx)
		}
		return a
	}
	if r.isInfinity(b) {
		return b
	}

	ma, mb := r.helper.Mantissa(a), r.helper.Mantissa(b)
	ea, eb := r.helper.Exponent(a), r.helper.Exponent(b)

	if ma.IsZero() && mb.IsZero() {
		// the sign of a zero sum depends on the rounding direction
		neg := aNeg && bNeg
		if !neg && aNeg != bNeg && ctx != nil && ctx.Rounding() == RoundFloor {
			neg = true
		}
		exp := ea
		if eb.Cmp(exp) < 0 {
			exp = eb
		}
		return r.roundInternal(neg, bigZero, exp, 0, 0, ctx)
	}
	if ma.IsZero() {
		return r.addZeroOperand(b, ea, ctx)
	}
	if mb.IsZero() {
		return r.addZeroOperand(a, eb, ctx)
	}

	// order so that a carries the higher exponent
	if ea.Cmp(eb) < 0 {
		a, b = b, a
		ma, mb = mb, ma
		ea, eb = eb, ea
		aNeg, bNeg = bNeg, aNeg
	}
	expDiff := ea.Sub(eb)

	prec := 0
	if ctx != nil {
		prec = ctx.precisionInt()
	}
	if prec > 0 {
		threshold := NewBigInt(int64(prec + 2)).Add(r.digitLength(mb))
		if expDiff.Cmp(threshold) > 0 {
			// the small operand is out of sight: give the big one
			// guard digits and fold the small one into a sticky unit
			guard := newFastInteger(int32(prec + 2))
			big2 := r.helper.MultiplyByRadixPower(ma, guard)
			e2 := ea.Sub(guard.AsBigInt())
			if aNeg == bNeg {
				big2 = big2.Add(bigOne)
			} else {
				big2 = big2.Sub(bigOne)
			}
			return r.roundInternal(aNeg, big2, e2, 0, 1, ctx)
		}
	}

	shifted := r.helper.MultiplyByRadixPower(ma, newFastIntegerFromBig(expDiff))
	if aNeg == bNeg {
		return r.roundInternal(aNeg, shifted.Add(mb), eb, 0, 0, ctx)
	}
	switch shifted.Cmp(mb) {
	case 0:
		neg := ctx != nil && ctx.Rounding() == RoundFloor
		return r.roundInternal(neg, bigZero, eb, 0, 0, ctx)
	case 1:
		return r.roundInternal(aNeg, shifted.Sub(mb), eb, 0, 0, ctx)
	default:
		return r.roundInternal(bNeg, mb.Sub(shifted), eb, 0, 0, ctx)
	}
}

// addZeroOperand rounds the non-zero operand into the context; the
// zero operand's exponent is not used, so the result keeps the
// non-zero operand's exponent
func (r *radixMath[T]) addZeroOperand(v T, zeroExp *BigInt, ctx *PrecisionContext) T {
	return r.RoundToPrecision(v, ctx)
}

// Subtract returns a - b
func (r *radixMath[T]) Subtract(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.handleNaN2(a, b, ctx); ok {
		return res
	}
	return r.Add(a, r.negateRaw(b), ctx)
}

// negateRaw flips the sign bit without rounding or NaN signalling
func (r *radixMath[T]) negateRaw(v T) T {
	return r.helper.CreateNewWithFlags(r.helper.Mantissa(v), r.helper.Exponent(v), r.flagsOf(v)^flagNegative)
}

// --- multiplication --------------------------------------------------

// Multiply returns a * b rounded into the context
func (r *radixMath[T]) Multiply(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.handleNaN2(a, b, ctx); ok {
		return res
	}
	neg := r.isNegative(a) != r.isNegative(b)
	if r.isInfinity(a) || r.isInfinity(b) {
		if r.isZero(a) || r.isZero(b) {
			return r.signalInvalid(ctx)
		}
		return r.infinity(neg)
	}
	mant := r.helper.Mantissa(a).Mul(r.helper.Mantissa(b))
	exp := r.helper.Exponent(a).Add(r.helper.Exponent(b))
	return r.roundInternal(neg, mant, exp, 0, 0, ctx)
}

// MultiplyAndAdd returns a*b + c with a single rounding at the end
func (r *radixMath[T]) MultiplyAndAdd(a, b, c T, ctx *PrecisionContext) T {
	if res, ok := r.handleNaN2(a, b, ctx); ok {
		return res
	}
	if r.isNaN(c) {
		return r.quietNaNFrom(c, ctx)
	}
	product := r.Multiply(a, b, nil)
	if r.isNaN(product) {
		signalResult(ctx, FlagInvalid, product)
		return product
	}
	return r.Add(product, c, ctx)
}

// --- division ---------------------------------------------------------

// Divide returns a / b rounded into the context. An exact quotient
// returns with the preferred exponent; otherwise the quotient is
// developed to one digit past the precision with a sticky tail.
// Division at unlimited precision with a non-terminating expansion is
// invalid.
func (r *radixMath[T]) Divide(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.handleNaN2(a, b, ctx); ok {
		return res
	}
	aNeg, bNeg := r.isNegative(a), r.isNegative(b)
	neg := aNeg != bNeg
	if r.isInfinity(a) {
		if r.isInfinity(b) {
			return r.signalInvalid(ctx)
		}
		return r.infinity(neg)
	}
	if r.isInfinity(b) {
		return r.roundInternal(neg, bigZero, bigZero, 0, 0, ctx)
	}
	ma, mb := r.helper.Mantissa(a), r.helper.Mantissa(b)
	ea, eb := r.helper.Exponent(a), r.helper.Exponent(b)
	if mb.IsZero() {
		if ma.IsZero() {
			return r.signalInvalid(ctx)
		}
		out := r.infinity(neg)
		signalResult(ctx, FlagDivideByZero, out)
		return out
	}
	if ma.IsZero() {
		return r.roundInternal(neg, bigZero, ea.Sub(eb), 0, 0, ctx)
	}

	if q, rem := ma.DivRem(mb); rem.IsZero() {
		return r.roundInternal(neg, q, ea.Sub(eb), 0, 0, ctx)
	}

	prec := 0
	if ctx != nil {
		prec = ctx.precisionInt()
	}
	if prec == 0 {
		// a non-terminating expansion cannot be represented exactly
		return r.signalInvalid(ctx)
	}
	shift := r.digitLength(mb).Add(NewBigInt(int64(prec + 1))).Sub(r.digitLength(ma))
	if shift.Sign() < 0 {
		shift = bigZero
	}
	num := r.helper.MultiplyByRadixPower(ma, newFastIntegerFromBig(shift))
	q, rem := num.DivRem(mb)
	exp := ea.Sub(eb).Sub(shift)
	sticky := 0
	if !rem.IsZero() {
		sticky = 1
	} else {
		// the division terminated inside the added zeros: fold the
		// spares back so the exponent climbs toward the preferred
		// exponent of an exact quotient
		preferred := ea.Sub(eb)
		radix := NewBigInt(int64(r.helper.Radix()))
		for exp.Cmp(preferred) < 0 {
			qq, rr := q.DivRem(radix)
			if !rr.IsZero() {
				break
			}
			q = qq
			exp = exp.Add(bigOne)
		}
	}
	return r.roundInternal(neg, q, exp, 0, sticky, ctx)
}

// DivideToExponent returns a / b with the result exponent fixed by the
// caller, rounding with the given mode
func (r *radixMath[T]) DivideToExponent(a, b T, desiredExp *BigInt, ctx *PrecisionContext) T {
	if res, ok := r.handleNaN2(a, b, ctx); ok {
		return res
	}
	aNeg, bNeg := r.isNegative(a), r.isNegative(b)
	neg := aNeg != bNeg
	if r.isInfinity(a) || r.isInfinity(b) {
		if r.isInfinity(a) && r.isInfinity(b) {
			return r.signalInvalid(ctx)
		}
		if r.isInfinity(a) {
			return r.infinity(neg)
		}
		return r.newFinite(neg, bigZero, desiredExp)
	}
	ma, mb := r.helper.Mantissa(a), r.helper.Mantissa(b)
	ea, eb := r.helper.Exponent(a), r.helper.Exponent(b)
	if mb.IsZero() {
		if ma.IsZero() {
			return r.signalInvalid(ctx)
		}
		out := r.infinity(neg)
		signalResult(ctx, FlagDivideByZero, out)
		return out
	}

	// scale so the integer quotient lands on the desired exponent
	s := ea.Sub(eb).Sub(desiredExp)
	var q, rem *BigInt
	if s.Sign() >= 0 {
		num := r.helper.MultiplyByRadixPower(ma, newFastIntegerFromBig(s))
		q, rem = num.DivRem(mb)
	} else {
		den := r.helper.MultiplyByRadixPower(mb, newFastIntegerFromBig(s.Neg()))
		q, rem = ma.DivRem(den)
	}
	flags := 0
	if !rem.IsZero() {
		flags = FlagInexact | FlagRounded
		// the exact tail decides the rounding digit: compare twice the
		// remainder against the divisor for the half-way information
		den := mb
		if s.Sign() < 0 {
			den = r.helper.MultiplyByRadixPower(mb, newFastIntegerFromBig(s.Neg()))
		}
		last, older := remainderRoundingDigits(rem, den, r.helper.Radix())
		if r.roundUpNeeded(last, older, r.lowDigit(q), neg, roundingOf(ctx)) {
			q = q.Add(bigOne)
		}
	}
	if ctx != nil && ctx.precisionInt() > 0 &&
		r.digitLength(q).Cmp(NewBigInt(int64(ctx.precisionInt()))) > 0 {
		return r.signalInvalid(ctx)
	}
	out := r.newFinite(neg, q, desiredExp)
	signalResult(ctx, flags, out)
	return out
}

func roundingOf(ctx *PrecisionContext) Rounding {
	if ctx == nil {
		return RoundHalfEven
	}
	return ctx.Rounding()
}

// remainderRoundingDigits maps an exact division tail rem/den onto the
// last-discarded plus sticky pair the rounding modes consume
func remainderRoundingDigits(rem, den *BigInt, radix int) (last, older int) {
	scaled := rem.Mul(NewBigInt(int64(radix)))
	digit, tail := scaled.DivRem(den)
	last = int(digit.Int64())
	if !tail.IsZero() {
		older = 1
	}
	return last, older
}

// DivideToIntegerNaturalScale returns the integer part of a / b with
// the preferred exponent max(0, exp(a) - exp(b)), folding trailing
// zeros of the quotient into the exponent afterwards
func (r *radixMath[T]) DivideToIntegerNaturalScale(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.handleNaN2(a, b, ctx); ok {
		return res
	}
	neg := r.isNegative(a) != r.isNegative(b)
	if r.isInfinity(a) {
		if r.isInfinity(b) {
			return r.signalInvalid(ctx)
		}
		return r.infinity(neg)
	}
	if r.isInfinity(b) {
		return r.newFinite(neg, bigZero, bigZero)
	}
	ma, mb := r.helper.Mantissa(a), r.helper.Mantissa(b)
	if mb.IsZero() {
		if ma.IsZero() {
			return r.signalInvalid(ctx)
		}
		out := r.infinity(neg)
		signalResult(ctx, FlagDivideByZero, out)
		return out
	}
	q := r.integerQuotient(a, b)
	preferred := r.helper.Exponent(a).Sub(r.helper.Exponent(b))
	if preferred.Sign() < 0 {
		preferred = bigZero
	}
	exp := bigZero
	radix := NewBigInt(int64(r.helper.Radix()))
	for exp.Cmp(preferred) < 0 && !q.IsZero() {
		qq, rem := q.DivRem(radix)
		if !rem.IsZero() {
			break
		}
		q = qq
		exp = exp.Add(bigOne)
	}
	if q.IsZero() {
		exp = preferred
	}
	return r.roundInternal(neg, q, exp, 0, 0, ctx)
}

// DivideToIntegerZeroScale returns the integer part of a / b with
// exponent 0; a quotient beyond the precision is invalid
func (r *radixMath[T]) DivideToIntegerZeroScale(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.handleNaN2(a, b, ctx); ok {
		return res
	}
	neg := r.isNegative(a) != r.isNegative(b)
	if r.isInfinity(a) {
		if r.isInfinity(b) {
			return r.signalInvalid(ctx)
		}
		return r.infinity(neg)
	}
	if r.isInfinity(b) {
		return r.newFinite(neg, bigZero, bigZero)
	}
	ma, mb := r.helper.Mantissa(a), r.helper.Mantissa(b)
	if mb.IsZero() {
		if ma.IsZero() {
			return r.signalInvalid(ctx)
		}
		out := r.infinity(neg)
		signalResult(ctx, FlagDivideByZero, out)
		return out
	}
	q := r.integerQuotient(a, b)
	if ctx != nil && ctx.precisionInt() > 0 &&
		r.digitLength(q).Cmp(NewBigInt(int64(ctx.precisionInt()))) > 0 {
		return r.signalInvalid(ctx)
	}
	return r.newFinite(neg, q, bigZero)
}

// integerQuotient computes floor(|a / b|) after aligning both operands
// to a common exponent
func (r *radixMath[T]) integerQuotient(a, b T) *BigInt {
	ma, mb := r.helper.Mantissa(a), r.helper.Mantissa(b)
	ea, eb := r.helper.Exponent(a), r.helper.Exponent(b)
	common := ea
	if eb.Cmp(common) < 0 {
		common = eb
	}
	na := r.helper.MultiplyByRadixPower(ma, newFastIntegerFromBig(ea.Sub(common)))
	nb := r.helper.MultiplyByRadixPower(mb, newFastIntegerFromBig(eb.Sub(common)))
	return na.Div(nb)
}

// Remainder returns a - (DivideToIntegerZeroScale(a, b) * b)
func (r *radixMath[T]) Remainder(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.handleNaN2(a, b, ctx); ok {
		return res
	}
	if r.isInfinity(a) || (r.isFinite(b) && r.isZero(b)) {
		return r.signalInvalid(ctx)
	}
	if r.isInfinity(b) {
		return r.RoundToPrecision(a, ctx)
	}
	ma, mb := r.helper.Mantissa(a), r.helper.Mantissa(b)
	ea, eb := r.helper.Exponent(a), r.helper.Exponent(b)
	common := ea
	if eb.Cmp(common) < 0 {
		common = eb
	}
	na := r.helper.MultiplyByRadixPower(ma, newFastIntegerFromBig(ea.Sub(common)))
	nb := r.helper.MultiplyByRadixPower(mb, newFastIntegerFromBig(eb.Sub(common)))
	rem := na.Rem(nb)
	return r.roundInternal(r.isNegative(a) && !rem.IsZero(), rem, common, 0, 0, ctx)
}

// RemainderNear returns a - n*b where n is the integer nearest to a/b,
// ties to even
func (r *radixMath[T]) RemainderNear(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.handleNaN2(a, b, ctx); ok {
		return res
	}
	if r.isInfinity(a) || (r.isFinite(b) && r.isZero(b)) {
		return r.signalInvalid(ctx)
	}
	if r.isInfinity(b) {
		return r.RoundToPrecision(a, ctx)
	}
	ma, mb := r.helper.Mantissa(a), r.helper.Mantissa(b)
	ea, eb := r.helper.Exponent(a), r.helper.Exponent(b)
	common := ea
	if eb.Cmp(common) < 0 {
		common = eb
	}
	na := r.helper.MultiplyByRadixPower(ma, newFastIntegerFromBig(ea.Sub(common)))
	nb := r.helper.MultiplyByRadixPower(mb, newFastIntegerFromBig(eb.Sub(common)))
	q, rem := na.DivRem(nb)
	// round the quotient to nearest, ties to even
	twice := rem.Mul(bigTwo)
	cmp := twice.Cmp(nb)
	if cmp > 0 || (cmp == 0 && !q.IsEven()) {
		q = q.Add(bigOne)
		rem = rem.Sub(nb)
	}
	resNeg := r.isNegative(a)
	if rem.Sign() < 0 {
		rem = rem.Neg()
		resNeg = !resNeg
	}
	return r.roundInternal(resNeg && !rem.IsZero(), rem, common, 0, 0, ctx)
}

// --- quantize and friends -------------------------------------------

// Quantize rescales a to the exponent of b, rounding as needed. This
// is the one operation where a zero result keeps the target exponent
// instead of normalising.
func (r *radixMath[T]) Quantize(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.handleNaN2(a, b, ctx); ok {
		return res
	}
	if r.isInfinity(a) || r.isInfinity(b) {
		if r.isInfinity(a) && r.isInfinity(b) {
			return a
		}
		return r.signalInvalid(ctx)
	}
	return r.quantizeToExponent(a, r.helper.Exponent(b), ctx, false)
}

func (r *radixMath[T]) quantizeToExponent(a T, desired *BigInt, ctx *PrecisionContext, suppressFlags bool) T {
	neg := r.isNegative(a)
	ma := r.helper.Mantissa(a)
	ea := r.helper.Exponent(a)
	prec := 0
	if ctx != nil {
		prec = ctx.precisionInt()
	}

	if ma.IsZero() {
		out := r.helper.CreateNewWithFlags(bigZero, desired, r.flagsOf(a))
		return out
	}

	diff := ea.Sub(desired)
	var q *BigInt
	flags := 0
	if diff.Sign() == 0 {
		q = ma
	} else if diff.Sign() > 0 {
		q = r.helper.MultiplyByRadixPower(ma, newFastIntegerFromBig(diff))
	} else {
		acc := r.helper.CreateShiftAccumulator(ma, 0, 0)
		acc.ShiftRight(newFastIntegerFromBig(diff.Neg()))
		q = acc.ShiftedInt()
		last, older := acc.LastDiscardedDigit(), acc.OlderDiscardedDigits()
		if last != 0 || older != 0 {
			flags |= FlagInexact | FlagRounded
			if r.roundUpNeeded(last, older, r.lowDigit(q), neg, roundingOf(ctx)) {
				q = q.Add(bigOne)
			}
		} else {
			flags |= FlagRounded
		}
	}
	if prec > 0 && r.digitLength(q).Cmp(NewBigInt(int64(prec))) > 0 {
		return r.signalInvalid(ctx)
	}
	out := r.newFinite(neg, q, desired)
	if suppressFlags {
		flags &^= FlagRounded | FlagInexact
	}
	signalResult(ctx, flags, out)
	return out
}

// RoundToExponentExact rounds a to the given exponent, signalling
// Inexact whenever a non-zero digit is discarded
func (r *radixMath[T]) RoundToExponentExact(a T, exponent *BigInt, ctx *PrecisionContext) T {
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx)
	}
	if r.isInfinity(a) {
		return a
	}
	return r.quantizeToExponent(a, exponent, ctx, false)
}

// RoundToExponentSimple rounds only when the value has more scale than
// the target; values already at or above the target pass through
func (r *radixMath[T]) RoundToExponentSimple(a T, exponent *BigInt, ctx *PrecisionContext) T {
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx)
	}
	if r.isInfinity(a) {
		return a
	}
	if r.helper.Exponent(a).Cmp(exponent) >= 0 {
		return r.RoundToPrecision(a, ctx)
	}
	return r.quantizeToExponent(a, exponent, ctx, false)
}

// RoundToExponentNoRoundedFlag rounds to the given exponent without
// reporting the rounding itself; only range flags survive
func (r *radixMath[T]) RoundToExponentNoRoundedFlag(a T, exponent *BigInt, ctx *PrecisionContext) T {
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx)
	}
	if r.isInfinity(a) {
		return a
	}
	return r.quantizeToExponent(a, exponent, ctx, true)
}

// Reduce rounds into the context and strips trailing zero digits,
// folding them into the exponent; zero reduces to exponent 0
func (r *radixMath[T]) Reduce(a T, ctx *PrecisionContext) T {
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx)
	}
	if r.isInfinity(a) {
		return a
	}
	rounded := r.RoundToPrecision(a, ctx)
	mant := r.helper.Mantissa(rounded)
	exp := r.helper.Exponent(rounded)
	neg := r.isNegative(rounded)
	if mant.IsZero() {
		return r.newFinite(neg, bigZero, bigZero)
	}
	radix := NewBigInt(int64(r.helper.Radix()))
	for {
		q, rem := mant.DivRem(radix)
		if !rem.IsZero() {
			break
		}
		mant = q
		exp = exp.Add(bigOne)
	}
	return r.newFinite(neg, mant, exp)
}

// --- sign-only and comparison operations ----------------------------

// Abs returns |a| rounded into the context
func (r *radixMath[T]) Abs(a T, ctx *PrecisionContext) T {
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx)
	}
	if r.isNegative(a) {
		a = r.negateRaw(a)
	}
	if r.isInfinity(a) {
		return a
	}
	return r.RoundToPrecision(a, ctx)
}

// Negate returns -a rounded into the context
func (r *radixMath[T]) Negate(a T, ctx *PrecisionContext) T {
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx)
	}
	a = r.negateRaw(a)
	if r.isInfinity(a) {
		return a
	}
	return r.RoundToPrecision(a, ctx)
}

// Plus is the identity operation under the context's rounding; it is
// the one-operand form of addition with zero, so a negative zero comes
// out positive except under floor rounding
func (r *radixMath[T]) Plus(a T, ctx *PrecisionContext) T {
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx)
	}
	if r.isInfinity(a) {
		return a
	}
	if r.isZero(a) && r.isNegative(a) && roundingOf(ctx) != RoundFloor {
		a = r.negateRaw(a)
	}
	return r.RoundToPrecision(a, ctx)
}

// CompareTo orders two values; NaNs order after everything and any two
// NaNs, quiet or signaling, compare equal. Negative and positive zero
// compare equal.
func (r *radixMath[T]) CompareTo(a, b T) int {
	aNaN, bNaN := r.isNaN(a), r.isNaN(b)
	if aNaN || bNaN {
		if aNaN && bNaN {
			return 0
		}
		if aNaN {
			return 1
		}
		return -1
	}
	aNeg, bNeg := r.isNegative(a), r.isNegative(b)
	if r.isInfinity(a) || r.isInfinity(b) {
		av, bv := 0, 0
		if r.isInfinity(a) {
			av = 1
			if aNeg {
				av = -1
			}
		}
		if r.isInfinity(b) {
			bv = 1
			if bNeg {
				bv = -1
			}
		}
		if r.isInfinity(a) && r.isInfinity(b) {
			return compareInts(av, bv)
		}
		if r.isInfinity(a) {
			if av > 0 {
				return 1
			}
			return -1
		}
		if bv > 0 {
			return -1
		}
		return 1
	}
	az, bz := r.isZero(a), r.isZero(b)
	if az && bz {
		return 0
	}
	if az {
		if bNeg {
			return 1
		}
		return -1
	}
	if bz {
		if aNeg {
			return -1
		}
		return 1
	}
	if aNeg != bNeg {
		if aNeg {
			return -1
		}
		return 1
	}
	cmp := r.compareMagnitudes(a, b)
	if aNeg {
		return -cmp
	}
	return cmp
}

func compareInts(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// compareMagnitudes compares |a| and |b| for finite non-zero operands
func (r *radixMath[T]) compareMagnitudes(a, b T) int {
	ma, mb := r.helper.Mantissa(a), r.helper.Mantissa(b)
	ea, eb := r.helper.Exponent(a), r.helper.Exponent(b)
	adjA := r.adjustedExponent(ma, ea)
	adjB := r.adjustedExponent(mb, eb)
	if c := adjA.Cmp(adjB); c != 0 {
		return c
	}
	// equal adjusted exponents: align mantissas and compare
	common := ea
	if eb.Cmp(common) < 0 {
		common = eb
	}
	na := r.helper.MultiplyByRadixPower(ma, newFastIntegerFromBig(ea.Sub(common)))
	nb := r.helper.MultiplyByRadixPower(mb, newFastIntegerFromBig(eb.Sub(common)))
	return na.Cmp(nb)
}

// CompareToWithContext compares and reports the order as a value of
// the operand type; NaN operands propagate, signalling when required
func (r *radixMath[T]) CompareToWithContext(a, b T, ctx *PrecisionContext, treatQuietNaNsAsSignaling bool) T {
	if r.isSignalingNaN(a) || r.isSignalingNaN(b) {
		res, _ := r.handleNaN2(a, b, ctx)
		return res
	}
	if r.isNaN(a) || r.isNaN(b) {
		if treatQuietNaNsAsSignaling {
			return r.signalInvalid(ctx)
		}
		res, _ := r.handleNaN2(a, b, ctx)
		return res
	}
	return r.helper.ValueOf(int64(r.CompareTo(a, b)))
}

// Min returns the smaller operand under the usual NaN and zero rules:
// a quiet NaN loses to a number, negative zero wins over positive,
// and of two equal values a positive pair prefers the smaller exponent
// and a negative pair the larger
func (r *radixMath[T]) Min(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.minMaxNaN(a, b, ctx); ok {
		return res
	}
	cmp := r.CompareTo(a, b)
	if cmp < 0 {
		return r.RoundToPrecision(a, ctx)
	}
	if cmp > 0 {
		return r.RoundToPrecision(b, ctx)
	}
	return r.RoundToPrecision(r.tieBreak(a, b, true), ctx)
}

// Max is the mirror of Min
func (r *radixMath[T]) Max(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.minMaxNaN(a, b, ctx); ok {
		return res
	}
	cmp := r.CompareTo(a, b)
	if cmp > 0 {
		return r.RoundToPrecision(a, ctx)
	}
	if cmp < 0 {
		return r.RoundToPrecision(b, ctx)
	}
	return r.RoundToPrecision(r.tieBreak(a, b, false), ctx)
}

func (r *radixMath[T]) minMaxNaN(a, b T, ctx *PrecisionContext) (T, bool) {
	var zero T
	if r.isSignalingNaN(a) || r.isSignalingNaN(b) {
		res, _ := r.handleNaN2(a, b, ctx)
		return res, true
	}
	aNaN, bNaN := r.isNaN(a), r.isNaN(b)
	if aNaN && bNaN {
		return r.quietNaNFrom(a, ctx), true
	}
	if aNaN {
		return r.RoundToPrecision(b, ctx), true
	}
	if bNaN {
		return r.RoundToPrecision(a, ctx), true
	}
	return zero, false
}

// tieBreak picks between value-equal operands: signs first, then the
// exponent, low for Min and high for Max on positive operands and the
// reverse on negative ones
func (r *radixMath[T]) tieBreak(a, b T, wantLow bool) T {
	aNeg, bNeg := r.isNegative(a), r.isNegative(b)
	if aNeg != bNeg {
		if wantLow == aNeg {
			return a
		}
		return b
	}
	ea, eb := r.helper.Exponent(a), r.helper.Exponent(b)
	cmp := ea.Cmp(eb)
	if aNeg {
		cmp = -cmp
	}
	if wantLow {
		if cmp <= 0 {
			return a
		}
		return b
	}
	if cmp >= 0 {
		return a
	}
	return b
}

// MinMagnitude compares absolute values, falling back to Min on a tie
func (r *radixMath[T]) MinMagnitude(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.minMaxNaN(a, b, ctx); ok {
		return res
	}
	cmp := r.CompareTo(r.absRaw(a), r.absRaw(b))
	if cmp < 0 {
		return r.RoundToPrecision(a, ctx)
	}
	if cmp > 0 {
		return r.RoundToPrecision(b, ctx)
	}
	return r.Min(a, b, ctx)
}

// MaxMagnitude compares absolute values, falling back to Max on a tie
func (r *radixMath[T]) MaxMagnitude(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.minMaxNaN(a, b, ctx); ok {
		return res
	}
	cmp := r.CompareTo(r.absRaw(a), r.absRaw(b))
	if cmp > 0 {
		return r.RoundToPrecision(a, ctx)
	}
	if cmp < 0 {
		return r.RoundToPrecision(b, ctx)
	}
	return r.Max(a, b, ctx)
}

func (r *radixMath[T]) absRaw(v T) T {
	if r.isNegative(v) {
		return r.negateRaw(v)
	}
	return v
}
