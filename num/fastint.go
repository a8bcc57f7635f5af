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

import "math"

// fastInteger is the small-number-optimised integer used for loop
// counters, digit counts and exponents. It keeps an inline 32-bit value
// until an operation overflows it, then widens to a BigInt; within one
// computation the transition is one way, but values copy freely.
type fastInteger struct {
	small int32
	large *BigInt
	wide  bool
}

func newFastInteger(v int32) *fastInteger {
	return &fastInteger{small: v}
}

func newFastIntegerFromBig(v *BigInt) *fastInteger {
	if i32, err := v.CheckedInt32(); err == nil {
		return &fastInteger{small: i32}
	}
	return &fastInteger{large: v, wide: true}
}

func (f *fastInteger) Copy() *fastInteger {
	c := *f
	return &c
}

func (f *fastInteger) widen() {
	if !f.wide {
		f.large = NewBigInt(int64(f.small))
		f.wide = true
	}
}

// AsBigInt returns the current value as a BigInt
func (f *fastInteger) AsBigInt() *BigInt {
	if f.wide {
		return f.large
	}
	return NewBigInt(int64(f.small))
}

// CanFitInInt32 reports whether the value is inside the int32 range
func (f *fastInteger) CanFitInInt32() bool {
	if !f.wide {
		return true
	}
	_, err := f.large.CheckedInt32()
	return err == nil
}

// AsInt32 returns the inline value; callers check CanFitInInt32 first
func (f *fastInteger) AsInt32() int32 {
	if f.wide {
		v, _ := f.large.CheckedInt32()
		return v
	}
	return f.small
}

func (f *fastInteger) Sign() int {
	if f.wide {
		return f.large.Sign()
	}
	if f.small > 0 {
		return 1
	}
	if f.small < 0 {
		return -1
	}
	return 0
}

func (f *fastInteger) IsZero() bool {
	return f.Sign() == 0
}

func (f *fastInteger) CompareTo(other *fastInteger) int {
	if !f.wide && !other.wide {
		if f.small < other.small {
			return -1
		}
		if f.small > other.small {
			return 1
		}
		return 0
	}
	return f.AsBigInt().Cmp(other.AsBigInt())
}

func (f *fastInteger) CompareToInt(v int32) int {
	return f.CompareTo(newFastInteger(v))
}

// AddInt adds a 32-bit value in place
func (f *fastInteger) AddInt(v int32) *fastInteger {
	if !f.wide {
		s := int64(f.small) + int64(v)
		if s >= math.MinInt32 && s <= math.MaxInt32 {
			f.small = int32(s)
			return f
		}
		f.widen()
	}
	f.large = f.large.Add(NewBigInt(int64(v)))
	return f
}

// SubtractInt subtracts a 32-bit value in place
func (f *fastInteger) SubtractInt(v int32) *fastInteger {
	if v == math.MinInt32 {
		return f.Add(newFastIntegerFromBig(NewBigInt(-int64(v))))
	}
	return f.AddInt(-v)
}

func (f *fastInteger) Increment() *fastInteger {
	return f.AddInt(1)
}

func (f *fastInteger) Decrement() *fastInteger {
	return f.AddInt(-1)
}

// Add adds another fast integer in place
func (f *fastInteger) Add(other *fastInteger) *fastInteger {
	if !f.wide && !other.wide {
		return f.AddInt(other.small)
	}
	f.widen()
	f.large = f.large.Add(other.AsBigInt())
	return f
}

// Subtract subtracts another fast integer in place
func (f *fastInteger) Subtract(other *fastInteger) *fastInteger {
	if !f.wide && !other.wide {
		return f.SubtractInt(other.small)
	}
	f.widen()
	f.large = f.large.Sub(other.AsBigInt())
	return f
}

// Multiply multiplies by a 32-bit value in place
func (f *fastInteger) Multiply(v int32) *fastInteger {
	if !f.wide {
		p := int64(f.small) * int64(v)
		if p >= math.MinInt32 && p <= math.MaxInt32 {
			f.small = int32(p)
			return f
		}
		f.widen()
	}
	f.large = f.large.Mul(NewBigInt(int64(v)))
	return f
}

// Divide divides by a 32-bit value in place, truncating toward zero
func (f *fastInteger) Divide(v int32) *fastInteger {
	if !f.wide {
		if !(f.small == math.MinInt32 && v == -1) {
			f.small /= v
			return f
		}
		f.widen()
	}
	f.large = f.large.Div(NewBigInt(int64(v)))
	return f
}

// Negate flips the sign in place
func (f *fastInteger) Negate() *fastInteger {
	if !f.wide {
		if f.small != math.MinInt32 {
			f.small = -f.small
			return f
		}
		f.widen()
	}
	f.large = f.large.Neg()
	return f
}
