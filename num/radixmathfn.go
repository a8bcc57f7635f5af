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

// Transcendental routines run their series and iterations at the
// caller's precision plus operation-dependent guard digits, inside a
// derived context with unlimited exponents and blank flags; only the
// final rounding talks to the caller's context.

// workingContext derives the inner-loop context
func (r *radixMath[T]) workingContext(ctx *PrecisionContext, guard int) *PrecisionContext {
	prec := ctx.precisionInt() + guard
	return NewPrecisionContext(prec).WithRounding(RoundHalfEven).WithBlankFlags()
}

// adjustedExponentOf is adjusted(v) for finite non-zero v
func (r *radixMath[T]) adjustedExponentOf(v T) *BigInt {
	return r.adjustedExponent(r.helper.Mantissa(v), r.helper.Exponent(v))
}

// negligible reports whether term no longer moves sum at the working
// precision
func (r *radixMath[T]) negligible(term, sum T, wp int) bool {
	if r.isZero(term) {
		return true
	}
	if r.isZero(sum) {
		return false
	}
	limit := r.adjustedExponentOf(sum).Sub(NewBigInt(int64(wp + 2)))
	return r.adjustedExponentOf(term).Cmp(limit) < 0
}

// Exp returns e**a. The argument is halved until small, the Taylor
// series is summed at guarded precision, and the halvings are undone
// by repeated squaring.
func (r *radixMath[T]) Exp(a T, ctx *PrecisionContext) T {
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx)
	}
	one := r.helper.ValueOf(1)
	if r.isInfinity(a) {
		if r.isNegative(a) {
			return r.roundInternal(false, bigZero, bigZero, 0, 0, ctx)
		}
		return a
	}
	if r.isZero(a) {
		return r.RoundToPrecision(one, ctx)
	}
	if ctx == nil || ctx.precisionInt() == 0 {
		return r.signalInvalid(ctx)
	}
	prec := ctx.precisionInt()

	// arguments whose magnitude dwarfs the exponent range resolve to
	// an overflow or an underflow without running the series
	if r.adjustedExponentOf(a).Cmp(NewBigInt(25)) > 0 {
		if !ctx.HasExponentRange() {
			return r.signalInvalid(ctx)
		}
		if r.isNegative(a) {
			tiny := ctx.EMin().Sub(NewBigInt(int64(prec + 2)))
			return r.roundInternal(false, bigOne, tiny, 0, 1, ctx)
		}
		huge := ctx.EMax().Add(bigTwo)
		return r.roundInternal(false, bigOne, huge, 0, 1, ctx)
	}

	wp := prec + 10
	wctx := r.workingContext(ctx, 10)
	two := r.helper.ValueOf(2)
	half := r.Divide(one, two, wctx)

	x := a
	halvings := 0
	for r.CompareTo(r.absRaw(x), half) > 0 {
		x = r.Divide(x, two, wctx)
		halvings++
	}

	sum := one
	term := one
	for n := 1; ; n++ {
		term = r.Divide(r.Multiply(term, x, wctx), r.helper.ValueOf(int64(n)), wctx)
		if r.negligible(term, sum, wp) {
			break
		}
		sum = r.Add(sum, term, wctx)
	}
	for i := 0; i < halvings; i++ {
		sum = r.Multiply(sum, sum, wctx)
	}
	out := r.RoundToPrecision(sum, ctx)
	signalResult(ctx, FlagInexact|FlagRounded, out)
	return out
}

// Ln returns the natural logarithm of a. The operand is repeatedly
// square-rooted into a narrow band around one, the atanh series for
// ln((1+z)/(1-z)) is summed, and the roots are undone by doubling.
func (r *radixMath[T]) Ln(a T, ctx *PrecisionContext) T {
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx)
	}
	one := r.helper.ValueOf(1)
	if r.isInfinity(a) {
		if r.isNegative(a) {
			return r.signalInvalid(ctx)
		}
		return a
	}
	if r.isZero(a) {
		out := r.infinity(true)
		signalResult(ctx, FlagDivideByZero, out)
		return out
	}
	if r.isNegative(a) {
		return r.signalInvalid(ctx)
	}
	if r.CompareTo(a, one) == 0 {
		return r.roundInternal(false, bigZero, bigZero, 0, 0, ctx)
	}
	if ctx == nil || ctx.precisionInt() == 0 {
		return r.signalInvalid(ctx)
	}
	prec := ctx.precisionInt()
	wp := prec + 15
	wctx := r.workingContext(ctx, 15)
	ten := r.helper.ValueOf(10)
	lo := r.Divide(r.helper.ValueOf(9), ten, wctx)
	hi := r.Divide(r.helper.ValueOf(11), ten, wctx)

	x := a
	roots := 0
	for r.CompareTo(x, lo) < 0 || r.CompareTo(x, hi) > 0 {
		x = r.SquareRoot(x, wctx)
		roots++
	}

	z := r.Divide(r.Subtract(x, one, wctx), r.Add(x, one, wctx), wctx)
	zsq := r.Multiply(z, z, wctx)
	sum := z
	pow := z
	for n := 3; ; n += 2 {
		pow = r.Multiply(pow, zsq, wctx)
		term := r.Divide(pow, r.helper.ValueOf(int64(n)), wctx)
		if r.negligible(term, sum, wp) {
			break
		}
		sum = r.Add(sum, term, wctx)
	}
	// ln a = 2^(roots+1) * atanh(z)
	for i := 0; i <= roots; i++ {
		sum = r.Add(sum, sum, wctx)
	}
	out := r.RoundToPrecision(sum, ctx)
	signalResult(ctx, FlagInexact|FlagRounded, out)
	return out
}

// Log10 returns the base-10 logarithm; exact powers of ten short-cut
// to their integer logarithm
func (r *radixMath[T]) Log10(a T, ctx *PrecisionContext) T {
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx)
	}
	if r.isInfinity(a) && !r.isNegative(a) {
		return a
	}
	if r.isZero(a) {
		out := r.infinity(true)
		signalResult(ctx, FlagDivideByZero, out)
		return out
	}
	if r.isNegative(a) || r.isInfinity(a) {
		return r.signalInvalid(ctx)
	}
	if k, ok := r.exactPowerOfTen(a); ok {
		return r.RoundToPrecision(r.helper.ValueOf(k), ctx)
	}
	if ctx == nil || ctx.precisionInt() == 0 {
		return r.signalInvalid(ctx)
	}
	wctx := r.workingContext(ctx, 15)
	num := r.Ln(a, wctx)
	den := r.Ln(r.helper.ValueOf(10), wctx)
	out := r.Divide(num, den, ctx)
	signalResult(ctx, FlagInexact|FlagRounded, out)
	return out
}

// exactPowerOfTen recognises values of the form 10**k
func (r *radixMath[T]) exactPowerOfTen(a T) (int64, bool) {
	mant := r.helper.Mantissa(a)
	exp := r.helper.Exponent(a)
	k := int64(0)
	for mant.IsEven() || mant.Rem(NewBigInt(5)).IsZero() {
		q, rem := mant.DivRem(bigTen)
		if !rem.IsZero() {
			break
		}
		mant = q
		k++
	}
	if !mant.Equals(bigOne) {
		return 0, false
	}
	e, err := exp.CheckedInt64()
	if err != nil {
		return 0, false
	}
	return e + k, true
}

// Pi returns the circle constant by Machin's formula
// pi = 16*atan(1/5) - 4*atan(1/239)
func (r *radixMath[T]) Pi(ctx *PrecisionContext) T {
	if ctx == nil || ctx.precisionInt() == 0 {
		return r.signalInvalid(ctx)
	}
	wp := ctx.precisionInt() + 10
	wctx := r.workingContext(ctx, 10)
	one := r.helper.ValueOf(1)

	atanInv := func(x int64) T {
		xv := r.helper.ValueOf(x)
		xsq := r.Multiply(xv, xv, wctx)
		cur := r.Divide(one, xv, wctx)
		sum := cur
		add := false
		for n := 3; ; n += 2 {
			cur = r.Divide(cur, xsq, wctx)
			term := r.Divide(cur, r.helper.ValueOf(int64(n)), wctx)
			if r.negligible(term, sum, wp) {
				break
			}
			if add {
				sum = r.Add(sum, term, wctx)
			} else {
				sum = r.Subtract(sum, term, wctx)
			}
			add = !add
		}
		return sum
	}

	pi := r.Subtract(
		r.Multiply(r.helper.ValueOf(16), atanInv(5), wctx),
		r.Multiply(r.helper.ValueOf(4), atanInv(239), wctx),
		wctx)
	out := r.RoundToPrecision(pi, ctx)
	signalResult(ctx, FlagInexact|FlagRounded, out)
	return out
}

// isIntegerValue reports whether a finite value is an integer
func (r *radixMath[T]) isIntegerValue(v T) bool {
	exp := r.helper.Exponent(v)
	if exp.Sign() >= 0 {
		return true
	}
	mant := r.helper.Mantissa(v)
	neg := newFastIntegerFromBig(exp.Neg())
	scale := r.helper.MultiplyByRadixPower(bigOne, neg)
	return mant.Rem(scale).IsZero()
}

// integerValueOf collapses an integer-valued operand to a BigInt
func (r *radixMath[T]) integerValueOf(v T) (*BigInt, bool) {
	if !r.isIntegerValue(v) {
		return nil, false
	}
	mant := r.helper.Mantissa(v)
	exp := r.helper.Exponent(v)
	if exp.Sign() >= 0 {
		mant = r.helper.MultiplyByRadixPower(mant, newFastIntegerFromBig(exp))
	} else {
		scale := r.helper.MultiplyByRadixPower(bigOne, newFastIntegerFromBig(exp.Neg()))
		mant = mant.Div(scale)
	}
	if r.isNegative(v) {
		mant = mant.Neg()
	}
	return mant, true
}

// Power returns a**b. Integer exponents run square-and-multiply with a
// small guard over the precision; everything else goes through
// exp(b * ln a).
func (r *radixMath[T]) Power(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.handleNaN2(a, b, ctx); ok {
		return res
	}
	one := r.helper.ValueOf(1)
	if r.isFinite(b) && r.isZero(b) {
		if r.isFinite(a) && r.isZero(a) {
			return r.signalInvalid(ctx)
		}
		return r.RoundToPrecision(one, ctx)
	}
	if r.isFinite(a) && r.isFinite(b) && r.CompareTo(a, one) == 0 && !r.isNegative(a) {
		return r.RoundToPrecision(one, ctx)
	}
	bIsInt := r.isFinite(b) && r.isIntegerValue(b)
	bNeg := r.isNegative(b)
	if r.isInfinity(b) {
		cmp := r.CompareTo(r.absRaw(a), one)
		switch {
		case cmp == 0:
			return r.RoundToPrecision(one, ctx)
		case (cmp > 0) != bNeg:
			return r.infinity(false)
		default:
			return r.roundInternal(false, bigZero, bigZero, 0, 0, ctx)
		}
	}
	if r.isInfinity(a) {
		oddInt := false
		if n, ok := r.integerValueOf(b); ok {
			oddInt = !n.IsEven()
		}
		neg := r.isNegative(a) && oddInt
		if bNeg {
			return r.roundInternal(neg, bigZero, bigZero, 0, 0, ctx)
		}
		return r.infinity(neg)
	}
	if r.isZero(a) {
		oddInt := false
		if n, ok := r.integerValueOf(b); ok {
			oddInt = !n.IsEven()
		}
		neg := r.isNegative(a) && oddInt
		if bNeg {
			out := r.infinity(neg)
			signalResult(ctx, FlagDivideByZero, out)
			return out
		}
		return r.roundInternal(neg, bigZero, bigZero, 0, 0, ctx)
	}

	if bIsInt {
		if n, ok := r.integerValueOf(b); ok {
			if e, err := n.CheckedInt64(); err == nil {
				return r.powerInt(a, e, ctx)
			}
		}
	}
	if r.isNegative(a) {
		return r.signalInvalid(ctx)
	}
	if ctx == nil || ctx.precisionInt() == 0 {
		return r.signalInvalid(ctx)
	}
	wctx := r.workingContext(ctx, 15)
	out := r.Exp(r.Multiply(b, r.Ln(a, wctx), wctx), ctx)
	signalResult(ctx, FlagInexact|FlagRounded, out)
	return out
}

// powerInt is square-and-multiply for an exponent that fits in 64 bits
func (r *radixMath[T]) powerInt(a T, n int64, ctx *PrecisionContext) T {
	negExp := n < 0
	if negExp {
		n = -n
	}
	guard := 6 + NewBigInt(n).DigitCount()
	var wctx *PrecisionContext
	if ctx != nil && ctx.precisionInt() > 0 {
		wctx = r.workingContext(ctx, guard)
	}
	one := r.helper.ValueOf(1)
	result := one
	base := a
	for n > 0 {
		if n&1 != 0 {
			result = r.Multiply(result, base, wctx)
		}
		n >>= 1
		if n > 0 {
			base = r.Multiply(base, base, wctx)
		}
	}
	if negExp {
		result = r.Divide(one, result, wctx)
		if r.isNaN(result) {
			// a reciprocal with no representable expansion needs a
			// working precision to land in
			return r.signalInvalid(ctx)
		}
	}
	return r.RoundToPrecision(result, ctx)
}

// SquareRoot computes the square root by integer Newton iteration on a
// mantissa scaled to twice the target digit count
func (r *radixMath[T]) SquareRoot(a T, ctx *PrecisionContext) T {
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx)
	}
	if r.isInfinity(a) {
		if r.isNegative(a) {
			return r.signalInvalid(ctx)
		}
		return a
	}
	neg := r.isNegative(a)
	ma := r.helper.Mantissa(a)
	ea := r.helper.Exponent(a)
	if ma.IsZero() {
		return r.newFinite(neg, bigZero, floorHalf(ea))
	}
	if neg {
		return r.signalInvalid(ctx)
	}
	prec := 0
	if ctx != nil {
		prec = ctx.precisionInt()
	}

	mant := ma
	exp := ea
	if !exp.IsEven() {
		mant = r.helper.MultiplyByRadixPower(mant, newFastInteger(1))
		exp = exp.Sub(bigOne)
	}
	if prec > 0 {
		need := NewBigInt(int64(2 * (prec + 1)))
		have := r.digitLength(mant)
		if have.Cmp(need) < 0 {
			t := need.Sub(have)
			if !t.IsEven() {
				t = t.Add(bigOne)
			}
			mant = r.helper.MultiplyByRadixPower(mant, newFastIntegerFromBig(t))
			exp = exp.Sub(t)
		}
	}
	root := mant.Sqrt()
	exact := root.Square().Equals(mant)
	if !exact && prec == 0 {
		return r.signalInvalid(ctx)
	}
	sticky := 0
	if !exact {
		sticky = 1
	}
	return r.roundInternal(false, root, exp.Div(bigTwo), 0, sticky, ctx)
}

// floorHalf halves an exponent rounding toward negative infinity
func floorHalf(e *BigInt) *BigInt {
	if e.Sign() >= 0 || e.IsEven() {
		return e.Div(bigTwo)
	}
	return e.Sub(bigOne).Div(bigTwo)
}

// --- representable neighbours ---------------------------------------

// largestFinite is the biggest value the context can represent
func (r *radixMath[T]) largestFinite(neg bool, ctx *PrecisionContext) T {
	prec := ctx.precisionInt()
	mant := r.radixPower(prec).Sub(bigOne)
	exp := ctx.EMax().Sub(NewBigInt(int64(prec))).Add(bigOne)
	return r.newFinite(neg, mant, exp)
}

// nudge is the positive quantity below every representable gap
func (r *radixMath[T]) nudge(ctx *PrecisionContext) T {
	etiny := ctx.EMin().Sub(ctx.Precision()).Sub(bigTwo)
	return r.newFinite(false, bigOne, etiny)
}

// NextPlus returns the closest representable value above a
func (r *radixMath[T]) NextPlus(a T, ctx *PrecisionContext) T {
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx)
	}
	if ctx == nil || !ctx.HasExponentRange() || ctx.precisionInt() == 0 {
		return r.signalInvalid(ctx)
	}
	if r.isInfinity(a) {
		if r.isNegative(a) {
			return r.largestFinite(true, ctx)
		}
		return a
	}
	nctx := ctx.WithRounding(RoundCeiling).WithBlankFlags()
	return r.Add(a, r.nudge(ctx), nctx)
}

// NextMinus returns the closest representable value below a
func (r *radixMath[T]) NextMinus(a T, ctx *PrecisionContext) T {
	if r.isNaN(a) {
		return r.quietNaNFrom(a, ctx)
	}
	if ctx == nil || !ctx.HasExponentRange() || ctx.precisionInt() == 0 {
		return r.signalInvalid(ctx)
	}
	if r.isInfinity(a) {
		if r.isNegative(a) {
			return a
		}
		return r.largestFinite(false, ctx)
	}
	nctx := ctx.WithRounding(RoundFloor).WithBlankFlags()
	return r.Subtract(a, r.nudge(ctx), nctx)
}

// NextToward steps a one representable value toward b; equal operands
// return the first with the sign of the second
func (r *radixMath[T]) NextToward(a, b T, ctx *PrecisionContext) T {
	if res, ok := r.handleNaN2(a, b, ctx); ok {
		return res
	}
	cmp := r.CompareTo(a, b)
	if cmp == 0 {
		out := r.helper.CreateNewWithFlags(
			r.helper.Mantissa(a), r.helper.Exponent(a),
			(r.flagsOf(a)&^flagNegative)|(r.flagsOf(b)&flagNegative))
		return out
	}
	if cmp < 0 {
		return r.NextPlus(a, ctx)
	}
	return r.NextMinus(a, ctx)
}
