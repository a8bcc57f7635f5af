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

// Rounding selects how a result is adjusted when digits are discarded
type Rounding int

const (
	// RoundHalfEven breaks ties toward the nearest even last digit
	RoundHalfEven Rounding = iota
	// RoundHalfUp breaks ties away from zero
	RoundHalfUp
	// RoundHalfDown breaks ties toward zero
	RoundHalfDown
	// RoundCeiling rounds toward positive infinity
	RoundCeiling
	// RoundFloor rounds toward negative infinity
	RoundFloor
	// RoundUp rounds away from zero whenever digits were discarded
	RoundUp
	// RoundDown truncates
	RoundDown
	// RoundZeroFiveUp rounds away from zero only when the retained
	// last digit is 0 or 5
	RoundZeroFiveUp
)

func (r Rounding) String() string {
	switch r {
	case RoundHalfEven:
		return "HalfEven"
	case RoundHalfUp:
		return "HalfUp"
	case RoundHalfDown:
		return "HalfDown"
	case RoundCeiling:
		return "Ceiling"
	case RoundFloor:
		return "Floor"
	case RoundUp:
		return "Up"
	case RoundDown:
		return "Down"
	case RoundZeroFiveUp:
		return "ZeroFiveUp"
	}
	return fmt.Sprintf("Rounding(%d)", int(r))
}

// Arithmetic status flags. The numeric encoding is fixed for external
// compatibility and doubles as the trap mask encoding.
const (
	FlagInexact      = 1
	FlagRounded      = 2
	FlagSubnormal    = 4
	FlagUnderflow    = 8
	FlagOverflow     = 16
	FlagClamped      = 32
	FlagInvalid      = 64
	FlagDivideByZero = 128
	FlagLostDigits   = 256
)

// A TrapError is raised when an operation sets a flag that intersects
// the context's trap mask. The operation's result is still the IEEE
// default and travels with the error.
type TrapError struct {
	Flag   int
	Result interface{}
}

func (e *TrapError) Error() string {
	return fmt.Sprintf("num: trap on flag %d", e.Flag)
}

// A PrecisionContext carries the precision, exponent range, rounding
// mode and trap mask governing an operation, plus a flags accumulator.
// Contexts are immutable except for the flags word on copies created by
// WithBlankFlags; operations never mutate a context that does not carry
// flags.
type PrecisionContext struct {
	precision   *BigInt
	rounding    Rounding
	hasExpRange bool
	eMin        *BigInt
	eMax        *BigInt
	clamp       bool
	simplified  bool
	traps       int
	hasFlags    bool
	flags       int
}

// NewPrecisionContext returns a context with the given precision in
// digits of the operand radix (0 is unlimited), no exponent range and
// half-even rounding
func NewPrecisionContext(precision int) *PrecisionContext {
	if precision < 0 {
		panic(&RangeError{Op: "NewPrecisionContext", Msg: "negative precision"})
	}
	return &PrecisionContext{precision: NewBigInt(int64(precision))}
}

func newRangedContext(precision int, eMin, eMax int64) *PrecisionContext {
	return &PrecisionContext{
		precision:   NewBigInt(int64(precision)),
		hasExpRange: true,
		eMin:        NewBigInt(eMin),
		eMax:        NewBigInt(eMax),
	}
}

// Predefined contexts. The exponent bounds constrain the adjusted
// exponent; the binary contexts measure precision in bits and the
// decimal ones match the IEEE interchange formats.
var (
	ContextUnlimited  = NewPrecisionContext(0)
	ContextBasic      = newRangedContext(9, -999999999, 999999999)
	ContextBinary16   = newRangedContext(11, -14, 15).WithExponentClamp(true)
	ContextBinary32   = newRangedContext(24, -126, 127).WithExponentClamp(true)
	ContextBinary64   = newRangedContext(53, -1022, 1023).WithExponentClamp(true)
	ContextBinary128  = newRangedContext(113, -16382, 16383).WithExponentClamp(true)
	ContextDecimal32  = newRangedContext(7, -95, 96)
	ContextDecimal64  = newRangedContext(16, -383, 384)
	ContextDecimal128 = newRangedContext(34, -6143, 6144)
	ContextCLIDecimal = newRangedContext(96, 0, 28).WithRounding(RoundHalfEven).WithExponentClamp(true)
)

func (c *PrecisionContext) copy() *PrecisionContext {
	n := *c
	return &n
}

// Precision returns the precision; zero means unlimited
func (c *PrecisionContext) Precision() *BigInt {
	return c.precision
}

func (c *PrecisionContext) precisionInt() int {
	v, err := c.precision.CheckedInt64()
	if err != nil {
		return 0
	}
	return int(v)
}

// Rounding returns the rounding mode
func (c *PrecisionContext) Rounding() Rounding {
	return c.rounding
}

// HasExponentRange reports whether EMin and EMax constrain results
func (c *PrecisionContext) HasExponentRange() bool {
	return c.hasExpRange
}

// EMin returns the lowest adjusted exponent; valid only when
// HasExponentRange reports true
func (c *PrecisionContext) EMin() *BigInt {
	return c.eMin
}

// EMax returns the highest adjusted exponent; valid only when
// HasExponentRange reports true
func (c *PrecisionContext) EMax() *BigInt {
	return c.eMax
}

// ClampNormalExponents reports whether large exponents of short
// mantissas are padded down into range
func (c *PrecisionContext) ClampNormalExponents() bool {
	return c.clamp
}

// IsSimplified reports whether the simplified arithmetic of the General
// Decimal Arithmetic specification's Appendix A governs operations
func (c *PrecisionContext) IsSimplified() bool {
	return c.simplified
}

// Traps returns the trap mask
func (c *PrecisionContext) Traps() int {
	return c.traps
}

// HasFlags reports whether this context records status flags
func (c *PrecisionContext) HasFlags() bool {
	return c.hasFlags
}

// Flags returns the accumulated status flags
func (c *PrecisionContext) Flags() int {
	return c.flags
}

// ClearFlags resets the flags accumulator
func (c *PrecisionContext) ClearFlags() {
	c.flags = 0
}

// WithPrecision returns a copy with the given precision
func (c *PrecisionContext) WithPrecision(precision int) *PrecisionContext {
	if precision < 0 {
		panic(&RangeError{Op: "WithPrecision", Msg: "negative precision"})
	}
	n := c.copy()
	n.precision = NewBigInt(int64(precision))
	return n
}

// WithBigPrecision returns a copy with the given precision
func (c *PrecisionContext) WithBigPrecision(precision *BigInt) *PrecisionContext {
	if precision.Sign() < 0 {
		panic(&RangeError{Op: "WithBigPrecision", Msg: "negative precision"})
	}
	n := c.copy()
	n.precision = precision
	return n
}

// WithRounding returns a copy with the given rounding mode
func (c *PrecisionContext) WithRounding(r Rounding) *PrecisionContext {
	n := c.copy()
	n.rounding = r
	return n
}

// WithExponentRange returns a copy constrained to eMin..eMax
func (c *PrecisionContext) WithExponentRange(eMin, eMax int64) *PrecisionContext {
	if eMin > eMax {
		panic(&RangeError{Op: "WithExponentRange", Msg: "eMin above eMax"})
	}
	n := c.copy()
	n.hasExpRange = true
	n.eMin = NewBigInt(eMin)
	n.eMax = NewBigInt(eMax)
	return n
}

// WithUnlimitedExponents returns a copy with no exponent range
func (c *PrecisionContext) WithUnlimitedExponents() *PrecisionContext {
	n := c.copy()
	n.hasExpRange = false
	n.eMin = nil
	n.eMax = nil
	n.clamp = false
	return n
}

// WithExponentClamp returns a copy with exponent clamping set
func (c *PrecisionContext) WithExponentClamp(clamp bool) *PrecisionContext {
	n := c.copy()
	n.clamp = clamp
	return n
}

// WithSimplified returns a copy with simplified arithmetic set
func (c *PrecisionContext) WithSimplified(simplified bool) *PrecisionContext {
	n := c.copy()
	n.simplified = simplified
	return n
}

// WithTraps returns a copy that raises a TrapError whenever a flag in
// mask is newly set; the copy records flags
func (c *PrecisionContext) WithTraps(mask int) *PrecisionContext {
	n := c.copy()
	n.traps = mask
	n.hasFlags = true
	n.flags = 0
	return n
}

// WithBlankFlags returns a copy that records status flags, starting
// from none
func (c *PrecisionContext) WithBlankFlags() *PrecisionContext {
	n := c.copy()
	n.hasFlags = true
	n.flags = 0
	return n
}

// signal accumulates flags on a flags-bearing context and reports a
// trap when a newly set flag intersects the trap mask
func (c *PrecisionContext) signal(flags int) error {
	if c == nil || flags == 0 {
		return nil
	}
	if c.hasFlags {
		c.flags |= flags
	}
	if c.traps&flags != 0 {
		return &TrapError{Flag: c.traps & flags}
	}
	return nil
}
