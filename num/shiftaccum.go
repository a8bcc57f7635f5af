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

// A shiftAccumulator consumes a non-negative mantissa and shifts digits
// off the bottom while preserving the information rounding needs: the
// last digit discarded and an OR-accumulated sticky of every digit
// discarded before it. Shifts run in O(limbs) per call, not O(digits):
// a whole block of digits comes off with a single division.
type shiftAccumulator interface {
	ShiftedInt() *BigInt
	DiscardedDigitCount() *fastInteger
	LastDiscardedDigit() int
	OlderDiscardedDigits() int
	DigitLength() *fastInteger
	ShiftRight(count *fastInteger)
	ShiftRightInt(count int)
	ShiftToDigits(target *fastInteger)
}

// digitShiftAccumulator counts and shifts base-10 digits
type digitShiftAccumulator struct {
	shifted        *BigInt
	discarded      *fastInteger
	lastDiscarded  int
	olderDiscarded int
	knownLength    *fastInteger
}

func newDigitShiftAccumulator(mantissa *BigInt, lastDiscarded, olderDiscarded int) *digitShiftAccumulator {
	return &digitShiftAccumulator{
		shifted:        mantissa,
		discarded:      newFastInteger(0),
		lastDiscarded:  lastDiscarded,
		olderDiscarded: olderDiscarded,
	}
}

func (a *digitShiftAccumulator) ShiftedInt() *BigInt {
	return a.shifted
}

func (a *digitShiftAccumulator) DiscardedDigitCount() *fastInteger {
	return a.discarded
}

func (a *digitShiftAccumulator) LastDiscardedDigit() int {
	return a.lastDiscarded
}

func (a *digitShiftAccumulator) OlderDiscardedDigits() int {
	return a.olderDiscarded
}

func (a *digitShiftAccumulator) DigitLength() *fastInteger {
	if a.knownLength == nil {
		a.knownLength = newFastInteger(int32(a.shifted.DigitCount()))
	}
	return a.knownLength
}

func (a *digitShiftAccumulator) ShiftRight(count *fastInteger) {
	for count.Sign() > 0 {
		chunk := int32(1000000)
		if count.CompareToInt(chunk) < 0 {
			chunk = count.AsInt32()
		}
		a.ShiftRightInt(int(chunk))
		count = count.Copy().SubtractInt(chunk)
	}
}

// ShiftRightInt discards count digits off the bottom. The previous last
// discarded digit sits below everything discarded now, so it folds into
// the sticky accumulator first; the new last digit is the highest digit
// of the block coming off.
func (a *digitShiftAccumulator) ShiftRightInt(count int) {
	if count <= 0 {
		return
	}
	length := int(a.DigitLength().AsInt32())
	a.olderDiscarded |= a.lastDiscarded
	if count >= length {
		// everything goes; any non-zero digit of the value lands in
		// the sticky except the topmost, which becomes the last digit
		if !a.shifted.IsZero() {
			top := a.shifted.Div(powerOfTen(length - 1))
			below := a.shifted.Rem(powerOfTen(length - 1))
			if count > length {
				a.olderDiscarded |= a.lastDiscarded
				a.olderDiscarded |= boolToDigit(!below.IsZero())
				a.olderDiscarded |= int(top.Int64())
				a.lastDiscarded = 0
			} else {
				a.lastDiscarded = int(top.Int64())
				a.olderDiscarded |= boolToDigit(!below.IsZero())
			}
		} else {
			a.lastDiscarded = 0
		}
		a.shifted = bigZero
		a.discarded.AddInt(int32(count))
		a.knownLength = newFastInteger(1)
		return
	}
	divisor := powerOfTen(count)
	quo, rem := a.shifted.DivRem(divisor)
	if count == 1 {
		a.lastDiscarded = int(rem.Int64())
	} else {
		topDivisor := powerOfTen(count - 1)
		top, below := rem.DivRem(topDivisor)
		a.lastDiscarded = int(top.Int64())
		a.olderDiscarded |= boolToDigit(!below.IsZero())
	}
	a.shifted = quo
	a.discarded.AddInt(int32(count))
	a.knownLength = newFastInteger(int32(length - count))
	if a.knownLength.Sign() <= 0 {
		a.knownLength = newFastInteger(1)
	}
}

func (a *digitShiftAccumulator) ShiftToDigits(target *fastInteger) {
	length := a.DigitLength()
	if length.CompareTo(target) <= 0 {
		return
	}
	excess := length.Copy().Subtract(target)
	a.ShiftRight(excess)
}

// bitShiftAccumulator is the radix-2 twin working on bits
type bitShiftAccumulator struct {
	shifted        *BigInt
	discarded      *fastInteger
	lastDiscarded  int
	olderDiscarded int
	knownLength    *fastInteger
}

func newBitShiftAccumulator(mantissa *BigInt, lastDiscarded, olderDiscarded int) *bitShiftAccumulator {
	return &bitShiftAccumulator{
		shifted:        mantissa,
		discarded:      newFastInteger(0),
		lastDiscarded:  lastDiscarded,
		olderDiscarded: olderDiscarded,
	}
}

func (a *bitShiftAccumulator) ShiftedInt() *BigInt {
	return a.shifted
}

func (a *bitShiftAccumulator) DiscardedDigitCount() *fastInteger {
	return a.discarded
}

func (a *bitShiftAccumulator) LastDiscardedDigit() int {
	return a.lastDiscarded
}

func (a *bitShiftAccumulator) OlderDiscardedDigits() int {
	return a.olderDiscarded
}

func (a *bitShiftAccumulator) DigitLength() *fastInteger {
	if a.knownLength == nil {
		bl := a.shifted.BitLength()
		if bl == 0 {
			bl = 1
		}
		a.knownLength = newFastInteger(int32(bl))
	}
	return a.knownLength
}

func (a *bitShiftAccumulator) ShiftRight(count *fastInteger) {
	for count.Sign() > 0 {
		chunk := int32(1000000)
		if count.CompareToInt(chunk) < 0 {
			chunk = count.AsInt32()
		}
		a.ShiftRightInt(int(chunk))
		count = count.Copy().SubtractInt(chunk)
	}
}

func (a *bitShiftAccumulator) ShiftRightInt(count int) {
	if count <= 0 {
		return
	}
	length := int(a.DigitLength().AsInt32())
	a.olderDiscarded |= a.lastDiscarded
	if count >= length {
		if !a.shifted.IsZero() {
			top := a.shifted.ShiftRight(length - 1)
			below := a.shifted.Sub(top.ShiftLeft(length - 1))
			if count > length {
				a.olderDiscarded |= boolToDigit(!a.shifted.IsZero())
				a.lastDiscarded = 0
			} else {
				a.lastDiscarded = int(top.Int64())
				a.olderDiscarded |= boolToDigit(!below.IsZero())
			}
		} else {
			a.lastDiscarded = 0
		}
		a.shifted = bigZero
		a.discarded.AddInt(int32(count))
		a.knownLength = newFastInteger(1)
		return
	}
	quo := a.shifted.ShiftRight(count)
	a.lastDiscarded = boolToDigit(a.shifted.TestBit(count - 1))
	if count > 1 {
		rem := a.shifted.Sub(quo.ShiftLeft(count))
		below := rem.Sub(NewBigInt(int64(a.lastDiscarded)).ShiftLeft(count - 1))
		a.olderDiscarded |= boolToDigit(!below.IsZero())
	}
	a.shifted = quo
	a.discarded.AddInt(int32(count))
	a.knownLength = newFastInteger(int32(length - count))
	if a.knownLength.Sign() <= 0 {
		a.knownLength = newFastInteger(1)
	}
}

func (a *bitShiftAccumulator) ShiftToDigits(target *fastInteger) {
	length := a.DigitLength()
	if length.CompareTo(target) <= 0 {
		return
	}
	excess := length.Copy().Subtract(target)
	a.ShiftRight(excess)
}

func boolToDigit(b bool) int {
	if b {
		return 1
	}
	return 0
}
