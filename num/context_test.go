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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagEncodings(t *testing.T) {
	// the numeric flag encoding is fixed for external compatibility
	assert.Equal(t, 1, FlagInexact)
	assert.Equal(t, 2, FlagRounded)
	assert.Equal(t, 4, FlagSubnormal)
	assert.Equal(t, 8, FlagUnderflow)
	assert.Equal(t, 16, FlagOverflow)
	assert.Equal(t, 32, FlagClamped)
	assert.Equal(t, 64, FlagInvalid)
	assert.Equal(t, 128, FlagDivideByZero)
	assert.Equal(t, 256, FlagLostDigits)
}

func TestContextBuildersAreCopies(t *testing.T) {
	base := NewPrecisionContext(10)
	mod := base.WithPrecision(20).WithRounding(RoundFloor).WithExponentRange(-100, 100)
	assert.Equal(t, "10", base.Precision().String())
	assert.Equal(t, RoundHalfEven, base.Rounding())
	assert.False(t, base.HasExponentRange())

	assert.Equal(t, "20", mod.Precision().String())
	assert.Equal(t, RoundFloor, mod.Rounding())
	assert.True(t, mod.HasExponentRange())
	assert.Equal(t, "-100", mod.EMin().String())
	assert.Equal(t, "100", mod.EMax().String())

	open := mod.WithUnlimitedExponents()
	assert.False(t, open.HasExponentRange())
	assert.True(t, mod.HasExponentRange(), "the source context is untouched")
}

func TestContextFlagsGating(t *testing.T) {
	plain := NewPrecisionContext(3)
	assert.False(t, plain.HasFlags())
	// an operation against a flags-less context records nothing
	MustDecimal("1").Divide(MustDecimal("3"), plain)
	assert.Zero(t, plain.Flags())

	flagged := plain.WithBlankFlags()
	assert.True(t, flagged.HasFlags())
	MustDecimal("1").Divide(MustDecimal("3"), flagged)
	assert.NotZero(t, flagged.Flags()&FlagInexact)
	flagged.ClearFlags()
	assert.Zero(t, flagged.Flags())
}

func TestContextInvalidRanges(t *testing.T) {
	assert.Panics(t, func() { NewPrecisionContext(-1) })
	assert.Panics(t, func() { NewPrecisionContext(5).WithExponentRange(10, -10) })
}

func TestPredefinedContexts(t *testing.T) {
	assert.Equal(t, "0", ContextUnlimited.Precision().String())
	assert.Equal(t, "7", ContextDecimal32.Precision().String())
	assert.Equal(t, "16", ContextDecimal64.Precision().String())
	assert.Equal(t, "34", ContextDecimal128.Precision().String())
	assert.Equal(t, "53", ContextBinary64.Precision().String())
	assert.True(t, ContextBinary64.ClampNormalExponents())
	assert.Equal(t, "-1022", ContextBinary64.EMin().String())
	assert.Equal(t, "1023", ContextBinary64.EMax().String())
	assert.Equal(t, "96", ContextCLIDecimal.Precision().String())
}

func TestTrapCarriesResult(t *testing.T) {
	ctx := NewPrecisionContext(5).WithTraps(FlagDivideByZero)
	defer func() {
		r := recover()
		trap, ok := r.(*TrapError)
		if !ok {
			t.Fatalf("expected a *TrapError, got %v", r)
		}
		assert.Equal(t, FlagDivideByZero, trap.Flag)
		result, ok := trap.Result.(*ExtendedDecimal)
		if !ok {
			t.Fatalf("trap result has type %T", trap.Result)
		}
		assert.True(t, result.IsPositiveInfinity(), "the IEEE default result travels with the trap")
	}()
	MustDecimal("1").Divide(MustDecimal("0"), ctx)
}

func TestRoundingString(t *testing.T) {
	assert.Equal(t, "HalfEven", RoundHalfEven.String())
	assert.Equal(t, "ZeroFiveUp", RoundZeroFiveUp.String())
}
