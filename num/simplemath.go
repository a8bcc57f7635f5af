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

// simpleRadixMath enforces the simplified arithmetic of the General
// Decimal Arithmetic specification's Appendix A on top of the full
// kernel: operands are pre-rounded to the precision before any
// arithmetic, subnormal results flush to zero as underflows, zero
// results never keep a positive exponent, and quotients lose their
// trailing zeros.
type simpleRadixMath[T any] struct {
	wrapped *radixMath[T]
}

func newSimpleRadixMath[T any](wrapped *radixMath[T]) *simpleRadixMath[T] {
	return &simpleRadixMath[T]{wrapped: wrapped}
}

// preRound rounds one operand into the precision, reporting lost
// digits on the caller's context when the rounding was inexact
func (s *simpleRadixMath[T]) preRound(v T, ctx *PrecisionContext) T {
	w := s.wrapped
	if !w.isFinite(v) || ctx == nil || ctx.precisionInt() == 0 {
		return v
	}
	inner := ctx.WithUnlimitedExponents().WithBlankFlags()
	rounded := w.RoundToPrecision(v, inner)
	if inner.Flags()&FlagInexact != 0 {
		signalResult(ctx, FlagLostDigits|FlagInexact|FlagRounded, rounded)
	}
	return rounded
}

func blankInner(ctx *PrecisionContext) *PrecisionContext {
	if ctx == nil {
		return nil
	}
	return ctx.WithBlankFlags()
}

// postProcess applies the Appendix A result adjustments and forwards
// the inner flags to the caller's context
func (s *simpleRadixMath[T]) postProcess(result T, ctx, inner *PrecisionContext, afterDivision bool) T {
	w := s.wrapped
	flags := 0
	if inner != nil {
		flags = inner.Flags()
	}
	if w.isFinite(result) {
		if flags&FlagUnderflow != 0 {
			// no subnormals in simplified arithmetic
			result = w.newFinite(w.isNegative(result), bigZero, bigZero)
		} else {
			mant := w.helper.Mantissa(result)
			exp := w.helper.Exponent(result)
			if mant.IsZero() && exp.Sign() > 0 {
				result = w.helper.CreateNewWithFlags(bigZero, bigZero, w.flagsOf(result))
			} else if afterDivision {
				result = w.Reduce(result, nil)
			}
		}
	}
	signalResult(ctx, flags, result)
	return result
}

func (s *simpleRadixMath[T]) unary(f func(T, *PrecisionContext) T, a T, ctx *PrecisionContext, afterDivision bool) T {
	w := s.wrapped
	if w.isNaN(a) {
		return w.quietNaNFrom(a, ctx)
	}
	a = s.preRound(a, ctx)
	inner := blankInner(ctx)
	return s.postProcess(f(a, inner), ctx, inner, afterDivision)
}

func (s *simpleRadixMath[T]) binary(f func(T, T, *PrecisionContext) T, a, b T, ctx *PrecisionContext, afterDivision bool) T {
	w := s.wrapped
	if res, ok := w.handleNaN2(a, b, ctx); ok {
		return res
	}
	a = s.preRound(a, ctx)
	b = s.preRound(b, ctx)
	inner := blankInner(ctx)
	return s.postProcess(f(a, b, inner), ctx, inner, afterDivision)
}

func (s *simpleRadixMath[T]) Add(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.Add, a, b, ctx, false)
}

func (s *simpleRadixMath[T]) Subtract(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.Subtract, a, b, ctx, false)
}

func (s *simpleRadixMath[T]) Multiply(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.Multiply, a, b, ctx, false)
}

func (s *simpleRadixMath[T]) Divide(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.Divide, a, b, ctx, true)
}

func (s *simpleRadixMath[T]) DivideToExponent(a, b T, desiredExp *BigInt, ctx *PrecisionContext) T {
	return s.binary(func(x, y T, c *PrecisionContext) T {
		return s.wrapped.DivideToExponent(x, y, desiredExp, c)
	}, a, b, ctx, false)
}

func (s *simpleRadixMath[T]) DivideToIntegerNaturalScale(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.DivideToIntegerNaturalScale, a, b, ctx, true)
}

func (s *simpleRadixMath[T]) DivideToIntegerZeroScale(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.DivideToIntegerZeroScale, a, b, ctx, false)
}

func (s *simpleRadixMath[T]) Remainder(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.Remainder, a, b, ctx, false)
}

func (s *simpleRadixMath[T]) RemainderNear(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.RemainderNear, a, b, ctx, false)
}

func (s *simpleRadixMath[T]) MultiplyAndAdd(a, b, c T, ctx *PrecisionContext) T {
	w := s.wrapped
	if res, ok := w.handleNaN2(a, b, ctx); ok {
		return res
	}
	if w.isNaN(c) {
		return w.quietNaNFrom(c, ctx)
	}
	a = s.preRound(a, ctx)
	b = s.preRound(b, ctx)
	c = s.preRound(c, ctx)
	inner := blankInner(ctx)
	return s.postProcess(w.MultiplyAndAdd(a, b, c, inner), ctx, inner, false)
}

func (s *simpleRadixMath[T]) Quantize(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.Quantize, a, b, ctx, false)
}

func (s *simpleRadixMath[T]) Reduce(a T, ctx *PrecisionContext) T {
	return s.unary(s.wrapped.Reduce, a, ctx, false)
}

func (s *simpleRadixMath[T]) RoundToPrecision(a T, ctx *PrecisionContext) T {
	return s.unary(s.wrapped.RoundToPrecision, a, ctx, false)
}

func (s *simpleRadixMath[T]) RoundToExponentExact(a T, exponent *BigInt, ctx *PrecisionContext) T {
	return s.unary(func(x T, c *PrecisionContext) T {
		return s.wrapped.RoundToExponentExact(x, exponent, c)
	}, a, ctx, false)
}

func (s *simpleRadixMath[T]) RoundToExponentSimple(a T, exponent *BigInt, ctx *PrecisionContext) T {
	return s.unary(func(x T, c *PrecisionContext) T {
		return s.wrapped.RoundToExponentSimple(x, exponent, c)
	}, a, ctx, false)
}

func (s *simpleRadixMath[T]) RoundToExponentNoRoundedFlag(a T, exponent *BigInt, ctx *PrecisionContext) T {
	return s.unary(func(x T, c *PrecisionContext) T {
		return s.wrapped.RoundToExponentNoRoundedFlag(x, exponent, c)
	}, a, ctx, false)
}

func (s *simpleRadixMath[T]) Abs(a T, ctx *PrecisionContext) T {
	return s.unary(s.wrapped.Abs, a, ctx, false)
}

func (s *simpleRadixMath[T]) Negate(a T, ctx *PrecisionContext) T {
	return s.unary(s.wrapped.Negate, a, ctx, false)
}

func (s *simpleRadixMath[T]) Plus(a T, ctx *PrecisionContext) T {
	return s.unary(s.wrapped.Plus, a, ctx, false)
}

func (s *simpleRadixMath[T]) Exp(a T, ctx *PrecisionContext) T {
	return s.unary(s.wrapped.Exp, a, ctx, false)
}

func (s *simpleRadixMath[T]) Ln(a T, ctx *PrecisionContext) T {
	return s.unary(s.wrapped.Ln, a, ctx, false)
}

func (s *simpleRadixMath[T]) Log10(a T, ctx *PrecisionContext) T {
	return s.unary(s.wrapped.Log10, a, ctx, false)
}

func (s *simpleRadixMath[T]) Pi(ctx *PrecisionContext) T {
	inner := blankInner(ctx)
	return s.postProcess(s.wrapped.Pi(inner), ctx, inner, false)
}

func (s *simpleRadixMath[T]) Power(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.Power, a, b, ctx, false)
}

func (s *simpleRadixMath[T]) SquareRoot(a T, ctx *PrecisionContext) T {
	return s.unary(s.wrapped.SquareRoot, a, ctx, false)
}

func (s *simpleRadixMath[T]) Min(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.Min, a, b, ctx, false)
}

func (s *simpleRadixMath[T]) Max(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.Max, a, b, ctx, false)
}

func (s *simpleRadixMath[T]) MinMagnitude(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.MinMagnitude, a, b, ctx, false)
}

func (s *simpleRadixMath[T]) MaxMagnitude(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.MaxMagnitude, a, b, ctx, false)
}

// NextPlus, NextMinus and NextToward run against the full kernel after
// pre-rounding; NextToward in particular is derived from a comparison
// plus a single NextPlus or NextMinus step rather than rejected.
func (s *simpleRadixMath[T]) NextPlus(a T, ctx *PrecisionContext) T {
	return s.unary(s.wrapped.NextPlus, a, ctx, false)
}

func (s *simpleRadixMath[T]) NextMinus(a T, ctx *PrecisionContext) T {
	return s.unary(s.wrapped.NextMinus, a, ctx, false)
}

func (s *simpleRadixMath[T]) NextToward(a, b T, ctx *PrecisionContext) T {
	return s.binary(s.wrapped.NextToward, a, b, ctx, false)
}

func (s *simpleRadixMath[T]) CompareToWithContext(a, b T, ctx *PrecisionContext, treatQuietNaNsAsSignaling bool) T {
	return s.wrapped.CompareToWithContext(a, b, ctx, treatQuietNaNsAsSignaling)
}
