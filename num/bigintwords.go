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

import "math/bits"

// Limbs are 16 bits wide so that a limb by limb product plus two limb
// addends still fits in 32-bit arithmetic. Everything in this file works
// on raw little-endian limb slices; sign handling lives in bigint.go.

// baseline multiplication is used up to this many limbs, Karatsuba above
const recursionLimit = 16

// addWords computes c = a + b over n limbs and returns the carry
func addWords(c, a, b []uint16, n int) uint32 {
	var carry uint32
	for i := 0; i < n; i++ {
		s := uint32(a[i]) + uint32(b[i]) + carry
		c[i] = uint16(s)
		carry = s >> 16
	}
	return carry
}

// subtractWords computes c = a - b over n limbs and returns the borrow
func subtractWords(c, a, b []uint16, n int) uint32 {
	var borrow uint32
	for i := 0; i < n; i++ {
		d := uint32(a[i]) - uint32(b[i]) - borrow
		c[i] = uint16(d)
		borrow = (d >> 16) & 1
	}
	return borrow
}

// compareWords compares two n-limb magnitudes
func compareWords(a, b []uint16, n int) int {
	for i := n - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// addCarryInto adds t into c starting at c[0], rippling the carry as far
// as it needs to go. The carry is guaranteed to die inside c.
func addCarryInto(c, t []uint16) {
	var carry uint32
	i := 0
	for ; i < len(t); i++ {
		s := uint32(c[i]) + uint32(t[i]) + carry
		c[i] = uint16(s)
		carry = s >> 16
	}
	for carry != 0 && i < len(c) {
		s := uint32(c[i]) + carry
		c[i] = uint16(s)
		carry = s >> 16
		i++
	}
}

// subtractInto subtracts t from c in place, rippling the borrow
func subtractInto(c, t []uint16) {
	var borrow uint32
	i := 0
	for ; i < len(t); i++ {
		d := uint32(c[i]) - uint32(t[i]) - borrow
		c[i] = uint16(d)
		borrow = (d >> 16) & 1
	}
	for borrow != 0 && i < len(c) {
		d := uint32(c[i]) - borrow
		c[i] = uint16(d)
		borrow = (d >> 16) & 1
		i++
	}
}

// addUint32At adds a 32-bit value into c at limb position pos
func addUint32At(c []uint16, pos int, v uint32) {
	carry := v
	for i := pos; carry != 0 && i < len(c); i++ {
		s := uint32(c[i]) + (carry & 0xffff)
		carry >>= 16
		c[i] = uint16(s)
		carry += s >> 16
	}
}

// baselineMultiply is the schoolbook product c = a * b; c must hold
// na+nb limbs and is fully overwritten. A single-limb ai product plus
// the running limb of c plus the carry never leaves 32 bits.
func baselineMultiply(c, a []uint16, na int, b []uint16, nb int) {
	for i := 0; i < na+nb; i++ {
		c[i] = 0
	}
	for i := 0; i < na; i++ {
		ai := uint32(a[i])
		if ai == 0 {
			continue
		}
		var carry uint32
		for j := 0; j < nb; j++ {
			t := ai*uint32(b[j]) + uint32(c[i+j]) + carry
			c[i+j] = uint16(t)
			carry = t >> 16
		}
		addUint32At(c, i+nb, carry)
	}
}

// baselineSquare computes c = a * a over n limbs exploiting symmetry:
// the strict cross products are summed once, doubled with a single
// one-bit shift, then the diagonal squares are folded in.
func baselineSquare(c, a []uint16, n int) {
	for i := 0; i < 2*n; i++ {
		c[i] = 0
	}
	for i := 0; i < n; i++ {
		ai := uint32(a[i])
		if ai == 0 {
			continue
		}
		var carry uint32
		for j := i + 1; j < n; j++ {
			t := ai*uint32(a[j]) + uint32(c[i+j]) + carry
			c[i+j] = uint16(t)
			carry = t >> 16
		}
		addUint32At(c, i+n, carry)
	}
	var carry uint32
	for i := 0; i < 2*n; i++ {
		t := (uint32(c[i]) << 1) | carry
		c[i] = uint16(t)
		carry = t >> 16
	}
	for i := 0; i < n; i++ {
		ai := uint32(a[i])
		addUint32At(c, 2*i, ai*ai)
	}
}

// absDiffWords computes c = |a - b| over n limbs and reports whether
// a was the smaller operand
func absDiffWords(c, a, b []uint16, n int) bool {
	if compareWords(a, b, n) < 0 {
		subtractWords(c, b, a, n)
		return true
	}
	subtractWords(c, a, b, n)
	return false
}

// recursiveMultiply is the Karatsuba product for two equal power-of-two
// sized operands. c holds 2n limbs. The low and high halves recurse in
// place into c; the middle term is |A_hi - A_lo| * |B_hi - B_lo| with its
// sign tracked separately: when the two difference signs disagree the
// cross term is added to z0+z2, when they agree it is subtracted.
func recursiveMultiply(c, a, b []uint16, n int) {
	if n <= recursionLimit {
		baselineMultiply(c, a, n, b, n)
		return
	}
	half := n / 2
	a0, a1 := a[:half], a[half:]
	b0, b1 := b[:half], b[half:]

	recursiveMultiply(c[:n], a0, b0, half)
	recursiveMultiply(c[n:2*n], a1, b1, half)

	am := make([]uint16, half)
	bm := make([]uint16, half)
	an2 := absDiffWords(am, a0, a1, half)
	bn2 := absDiffWords(bm, b0, b1, half)
	mid := make([]uint16, n)
	recursiveMultiply(mid, am, bm, half)

	t := make([]uint16, n+1)
	t[n] = uint16(addWords(t, c[:n], c[n:2*n], n))
	if an2 != bn2 {
		addCarryInto(t, mid)
	} else {
		subtractInto(t, mid)
	}
	addCarryInto(c[half:], t)
}

// recursiveSquare is the Karatsuba square: with s0 = lo^2, s2 = hi^2 and
// m = (|hi - lo|)^2, the doubled cross term is exactly s0 + s2 - m.
func recursiveSquare(c, a []uint16, n int) {
	if n <= recursionLimit {
		baselineSquare(c, a, n)
		return
	}
	half := n / 2
	a0, a1 := a[:half], a[half:]

	recursiveSquare(c[:n], a0, half)
	recursiveSquare(c[n:2*n], a1, half)

	am := make([]uint16, half)
	absDiffWords(am, a0, a1, half)
	mid := make([]uint16, n)
	recursiveSquare(mid, am, half)

	t := make([]uint16, n+1)
	t[n] = uint16(addWords(t, c[:n], c[n:2*n], n))
	subtractInto(t, mid)
	addCarryInto(c[half:], t)
}

// multiplyWords dispatches on operand shape: schoolbook when either side
// is inside the baseline window, Karatsuba on power-of-two padded copies
// otherwise. The result has na+nb limbs (untrimmed).
func multiplyWords(a []uint16, na int, b []uint16, nb int) []uint16 {
	if na == 0 || nb == 0 {
		return make([]uint16, 2)
	}
	if na <= recursionLimit || nb <= recursionLimit {
		c := make([]uint16, na+nb)
		baselineMultiply(c, a, na, b, nb)
		return c
	}
	n := nextPowerOfTwo(max(na, nb))
	pa := make([]uint16, n)
	pb := make([]uint16, n)
	copy(pa, a[:na])
	copy(pb, b[:nb])
	c := make([]uint16, 2*n)
	recursiveMultiply(c, pa, pb, n)
	return c[:na+nb]
}

// squareWords squares an na-limb magnitude
func squareWords(a []uint16, na int) []uint16 {
	if na == 0 {
		return make([]uint16, 2)
	}
	if na <= recursionLimit {
		c := make([]uint16, 2*na)
		baselineSquare(c, a, na)
		return c
	}
	n := nextPowerOfTwo(na)
	pa := make([]uint16, n)
	copy(pa, a[:na])
	c := make([]uint16, 2*n)
	recursiveSquare(c, pa, n)
	return c[:2*na]
}

// shiftWordsLeftBits shifts an n-limb span left by 0..15 bits in place
// and returns the bits shifted out of the top limb
func shiftWordsLeftBits(w []uint16, n int, shift uint) uint16 {
	if shift == 0 {
		return 0
	}
	var carry uint16
	for i := 0; i < n; i++ {
		t := w[i]
		w[i] = t<<shift | carry
		carry = t >> (16 - shift)
	}
	return carry
}

// shiftWordsRightBits shifts an n-limb span right by 0..15 bits in place
func shiftWordsRightBits(w []uint16, n int, shift uint) {
	if shift == 0 {
		return
	}
	for i := 0; i < n; i++ {
		t := w[i] >> shift
		if i+1 < n {
			t |= w[i+1] << (16 - shift)
		}
		w[i] = t
	}
}

// divModSmallWords divides an n-limb magnitude by a divisor below 2^16
// in a single high-to-low sweep of 32 by 16 bit divisions, overwriting
// w with the quotient and returning the remainder
func divModSmallWords(w []uint16, n int, d uint32) uint32 {
	var rem uint32
	for i := n - 1; i >= 0; i-- {
		cur := rem<<16 | uint32(w[i])
		w[i] = uint16(cur / d)
		rem = cur % d
	}
	return rem
}

// mulAddSmallWords computes w = w*m + add in place over n limbs and
// returns the carry limb (m and add below 2^16)
func mulAddSmallWords(w []uint16, n int, m, add uint32) uint16 {
	carry := add
	for i := 0; i < n; i++ {
		t := uint32(w[i])*m + carry
		w[i] = uint16(t)
		carry = t >> 16
	}
	return uint16(carry)
}

// divideWords is Knuth Algorithm D over 16-bit limbs. It divides the
// m-limb dividend u by the n-limb divisor v (n >= 2, top limb of v
// non-zero) and returns quotient and remainder limb slices.
//
// The divisor is first normalised so its top bit is set; each round
// forms a two-word quotient estimate from the top three dividend words,
// refines it by at most two decrements against the next divisor word,
// applies it with a multiply-subtract sweep, and corrects once more if
// the subtraction borrowed.
func divideWords(u []uint16, m int, v []uint16, n int) (q, r []uint16) {
	shift := uint(bits.LeadingZeros16(v[n-1]))

	vn := make([]uint16, n)
	copy(vn, v[:n])
	shiftWordsLeftBits(vn, n, shift)

	un := make([]uint16, m+1)
	copy(un, u[:m])
	un[m] = shiftWordsLeftBits(un, m, shift)

	q = make([]uint16, m-n+1)
	vTop := uint32(vn[n-1])
	vNext := uint32(vn[n-2])

	for j := m - n; j >= 0; j-- {
		// two-word estimate from the top three dividend words
		num := uint64(un[j+n])<<16 | uint64(un[j+n-1])
		qhat := num / uint64(vTop)
		rhat := num % uint64(vTop)
		for qhat >= 1<<16 || qhat*uint64(vNext) > rhat<<16|uint64(un[j+n-2]) {
			qhat--
			rhat += uint64(vTop)
			if rhat >= 1<<16 {
				break
			}
		}

		// multiply-subtract the scaled divisor out of the window
		var borrow, carry uint32
		qh := uint32(qhat)
		for i := 0; i < n; i++ {
			p := qh*uint32(vn[i]) + carry
			carry = p >> 16
			d := uint32(un[j+i]) - (p & 0xffff) - borrow
			un[j+i] = uint16(d)
			borrow = (d >> 16) & 1
		}
		top := uint32(un[j+n]) - carry - borrow
		un[j+n] = uint16(top)

		if top>>16 != 0 {
			// the estimate was one too large: add the divisor back
			qh--
			var c uint32
			for i := 0; i < n; i++ {
				s := uint32(un[j+i]) + uint32(vn[i]) + c
				un[j+i] = uint16(s)
				c = s >> 16
			}
			un[j+n] = uint16(uint32(un[j+n]) + c)
		}
		q[j] = uint16(qh)
	}

	r = make([]uint16, n)
	copy(r, un[:n])
	shiftWordsRightBits(r, n, shift)
	return q, r
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
