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
	"github.com/stretchr/testify/require"
)

func rat(t *testing.T, n, d int64) *ExtendedRational {
	t.Helper()
	q, err := NewExtendedRational(NewBigInt(n), NewBigInt(d))
	require.NoError(t, err)
	return q
}

func TestRationalNormalisation(t *testing.T) {
	_, err := NewExtendedRational(NewBigInt(1), NewBigInt(0))
	assert.Error(t, err)

	// the sign lives on the numerator
	q := rat(t, 1, -2)
	assert.Equal(t, "-1", q.Numerator().String())
	assert.Equal(t, "2", q.Denominator().String())
	assert.Equal(t, -1, q.Sign())
}

func TestRationalArithmetic(t *testing.T) {
	half := rat(t, 1, 2)
	third := rat(t, 1, 3)
	assert.Equal(t, "5/6", half.Add(third).String())
	assert.Equal(t, "1/6", half.Subtract(third).String())
	assert.Equal(t, "1/6", half.Multiply(third).String())
	q, err := half.Divide(third)
	require.NoError(t, err)
	assert.Equal(t, "3/2", q.String())

	_, err = half.Divide(rat(t, 0, 1))
	assert.Error(t, err)
}

func TestRationalReduce(t *testing.T) {
	q := rat(t, 6, 8).Reduce()
	assert.Equal(t, "3/4", q.String())
	assert.Equal(t, "0", rat(t, 0, 7).Reduce().String())
	assert.Equal(t, "2", rat(t, 4, 2).Reduce().String())
}

func TestRationalCompare(t *testing.T) {
	assert.Equal(t, 0, rat(t, 2, 4).CompareTo(rat(t, 1, 2)))
	assert.True(t, rat(t, 2, 4).Equals(rat(t, 1, 2)))
	assert.Equal(t, -1, rat(t, 1, 3).CompareTo(rat(t, 1, 2)))
	assert.Equal(t, 1, rat(t, -1, 3).CompareTo(rat(t, -1, 2)))
}

func TestRationalDecimalConversion(t *testing.T) {
	d := rat(t, 1, 4).ToExtendedDecimal(NewPrecisionContext(9))
	assert.Equal(t, "0.25", d.String())
	repeating := rat(t, 1, 3).ToExtendedDecimal(NewPrecisionContext(5))
	assert.Equal(t, "0.33333", repeating.String())

	back, err := ExtendedRationalFromExtendedDecimal(MustDecimal("0.25"))
	require.NoError(t, err)
	assert.True(t, back.Reduce().Equals(rat(t, 1, 4)))

	fromFloat, err := ExtendedRationalFromExtendedFloat(NewExtendedFloat(NewBigInt(3), NewBigInt(-2)))
	require.NoError(t, err)
	assert.True(t, fromFloat.Equals(rat(t, 3, 4)))
}
