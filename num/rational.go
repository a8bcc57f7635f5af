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

import "fmt"

// An ExtendedRational is an exact ratio of two integers. The sign
// lives on the numerator and the denominator is always positive.
type ExtendedRational struct {
	numerator   *BigInt
	denominator *BigInt
}

// NewExtendedRational builds numerator/denominator; a zero denominator
// is rejected
func NewExtendedRational(numerator, denominator *BigInt) (*ExtendedRational, error) {
	if denominator.IsZero() {
		return nil, &RangeError{Op: "NewExtendedRational", Msg: "zero denominator"}
	}
	if denominator.Sign() < 0 {
		numerator = numerator.Neg()
		denominator = denominator.Neg()
	}
	return &ExtendedRational{numerator: numerator, denominator: denominator}, nil
}

// NewExtendedRationalFromInt64 builds v/1
func NewExtendedRationalFromInt64(v int64) *ExtendedRational {
	return &ExtendedRational{numerator: NewBigInt(v), denominator: bigOne}
}

// ExtendedRationalFromExtendedDecimal converts exactly
func ExtendedRationalFromExtendedDecimal(d *ExtendedDecimal) (*ExtendedRational, error) {
	if !d.IsFinite() {
		return nil, &RangeError{Op: "ExtendedRationalFromExtendedDecimal", Msg: "not finite"}
	}
	e, err := d.Exponent().CheckedInt64()
	if err != nil {
		return nil, &RangeError{Op: "ExtendedRationalFromExtendedDecimal", Msg: "exponent out of range"}
	}
	num := d.Mantissa()
	den := bigOne
	if e >= 0 {
		num = num.Mul(powerOfTen(int(e)))
	} else {
		den = powerOfTen(int(-e))
	}
	return NewExtendedRational(num, den)
}

// ExtendedRationalFromExtendedFloat converts exactly
func ExtendedRationalFromExtendedFloat(f *ExtendedFloat) (*ExtendedRational, error) {
	if !f.IsFinite() {
		return nil, &RangeError{Op: "ExtendedRationalFromExtendedFloat", Msg: "not finite"}
	}
	e, err := f.Exponent().CheckedInt64()
	if err != nil {
		return nil, &RangeError{Op: "ExtendedRationalFromExtendedFloat", Msg: "exponent out of range"}
	}
	num := f.Mantissa()
	den := bigOne
	if e >= 0 {
		num = num.ShiftLeft(int(e))
	} else {
		den = bigOne.ShiftLeft(int(-e))
	}
	return NewExtendedRational(num, den)
}

// Numerator returns the signed numerator
func (q *ExtendedRational) Numerator() *BigInt {
	return q.numerator
}

// Denominator returns the positive denominator
func (q *ExtendedRational) Denominator() *BigInt {
	return q.denominator
}

// Sign returns -1, 0 or 1
func (q *ExtendedRational) Sign() int {
	return q.numerator.Sign()
}

// IsZero reports whether the value is zero
func (q *ExtendedRational) IsZero() bool {
	return q.numerator.IsZero()
}

// Reduce divides out the greatest common divisor
func (q *ExtendedRational) Reduce() *ExtendedRational {
	if q.numerator.IsZero() {
		return &ExtendedRational{numerator: bigZero, denominator: bigOne}
	}
	g := q.numerator.Gcd(q.denominator)
	if g.Equals(bigOne) {
		return q
	}
	return &ExtendedRational{
		numerator:   q.numerator.Div(g),
		denominator: q.denominator.Div(g),
	}
}

// Add returns q + other exactly
func (q *ExtendedRational) Add(other *ExtendedRational) *ExtendedRational {
	num := q.numerator.Mul(other.denominator).Add(other.numerator.Mul(q.denominator))
	den := q.denominator.Mul(other.denominator)
	out := &ExtendedRational{numerator: num, denominator: den}
	return out.Reduce()
}

// Subtract returns q - other exactly
func (q *ExtendedRational) Subtract(other *ExtendedRational) *ExtendedRational {
	return q.Add(other.Negate())
}

// Multiply returns q * other exactly
func (q *ExtendedRational) Multiply(other *ExtendedRational) *ExtendedRational {
	out := &ExtendedRational{
		numerator:   q.numerator.Mul(other.numerator),
		denominator: q.denominator.Mul(other.denominator),
	}
	return out.Reduce()
}

// Divide returns q / other exactly; dividing by zero is an error
func (q *ExtendedRational) Divide(other *ExtendedRational) (*ExtendedRational, error) {
	if other.IsZero() {
		return nil, &RangeError{Op: "Divide", Msg: "division by zero"}
	}
	num := q.numerator.Mul(other.denominator)
	den := q.denominator.Mul(other.numerator)
	out, err := NewExtendedRational(num, den)
	if err != nil {
		return nil, err
	}
	return out.Reduce(), nil
}

// Negate returns -q
func (q *ExtendedRational) Negate() *ExtendedRational {
	return &ExtendedRational{numerator: q.numerator.Neg(), denominator: q.denominator}
}

// Abs returns |q|
func (q *ExtendedRational) Abs() *ExtendedRational {
	return &ExtendedRational{numerator: q.numerator.Abs(), denominator: q.denominator}
}

// CompareTo orders two rationals
func (q *ExtendedRational) CompareTo(other *ExtendedRational) int {
	left := q.numerator.Mul(other.denominator)
	right := other.numerator.Mul(q.denominator)
	return left.Cmp(right)
}

// Equals reports value equality
func (q *ExtendedRational) Equals(other *ExtendedRational) bool {
	return q.CompareTo(other) == 0
}

// ToExtendedDecimal divides numerator by denominator under the context
func (q *ExtendedRational) ToExtendedDecimal(ctx *PrecisionContext) *ExtendedDecimal {
	num := NewExtendedDecimalFromBigInt(q.numerator)
	den := NewExtendedDecimalFromBigInt(q.denominator)
	return num.Divide(den, ctx)
}

// String renders numerator/denominator, or just the numerator for
// integral values
func (q *ExtendedRational) String() string {
	if q.denominator.Equals(bigOne) {
		return q.numerator.String()
	}
	return fmt.Sprintf("%s/%s", q.numerator, q.denominator)
}
