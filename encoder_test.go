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

package cbor

import (
	"math"
	"testing"

	"github.com/DamnWidget/cbornum/internal/test"
	"github.com/DamnWidget/cbornum/num"
)

func encoded(t *testing.T, v Value) []byte {
	t.Helper()
	out, err := EncodeCanonical(v)
	if err != nil {
		t.Fatalf("encoding %#v: %s", v, err)
	}
	return out
}

func expectWire(t *testing.T, v Value, hexWant string) {
	t.Helper()
	got := encoded(t, v)
	want := test.Hex(hexWant)
	if !test.BytesEqual(got, want) {
		t.Errorf("encode(%#v): expected % x, got % x", v, want, got)
	}
}

func TestEncodeSmallIntegers(t *testing.T) {
	expectWire(t, Uint(0), "00")
	expectWire(t, Uint(23), "17")
	expectWire(t, Uint(24), "18 18")
	expectWire(t, Uint(255), "18 ff")
	expectWire(t, Uint(256), "19 0100")
	expectWire(t, Uint(1000000), "1a 000f4240")
	expectWire(t, Uint(18446744073709551615), "1b ffffffffffffffff")
}

func TestEncodeNegativeIntegers(t *testing.T) {
	expectWire(t, NegInt(0), "20")    // -1
	expectWire(t, NegInt(9), "29")    // -10
	expectWire(t, NegInt(99), "18 63")
	expectWire(t, NegInt(999), "19 03e7")
}

func TestEncodeStrings(t *testing.T) {
	expectWire(t, Bytes{}, "40")
	expectWire(t, Bytes{1, 2, 3, 4}, "44 01020304")
	expectWire(t, Text(""), "60")
	expectWire(t, Text("IETF"), "64 49455446")
	expectWire(t, Text("\"\\"), "62 225c")
	expectWire(t, Text("ü"), "62 c3bc")
}

func TestEncodeArrays(t *testing.T) {
	expectWire(t, Array{}, "80")
	expectWire(t, Array{Uint(1), Uint(2), Uint(3)}, "83 010203")
	expectWire(t, Array{Uint(1), Array{Uint(2), Uint(3)}, Array{Uint(4), Uint(5)}},
		"83 01 82 0203 82 0405")
}

func TestEncodeSimpleValues(t *testing.T) {
	expectWire(t, Bool(false), "f4")
	expectWire(t, Bool(true), "f5")
	expectWire(t, Null{}, "f6")
	expectWire(t, Undefined{}, "f7")
	expectWire(t, Simple(16), "f0")
	expectWire(t, Simple(255), "f8 ff")
	if _, err := EncodeCanonical(Simple(24)); err == nil {
		t.Error("simple value 24 must not encode")
	}
}

func TestEncodeFloatShortestForm(t *testing.T) {
	expectWire(t, Float64(0), "f9 0000")
	expectWire(t, Float64(1), "f9 3c00")
	expectWire(t, Float64(1.5), "f9 3e00")
	expectWire(t, Float64(65504), "f9 7bff")
	expectWire(t, Float64(100000), "fa 47c35000")
	expectWire(t, Float64(1.1), "fb 3ff199999999999a")
	expectWire(t, Float64(math.Inf(1)), "f9 7c00")
	expectWire(t, Float64(math.Inf(-1)), "f9 fc00")
	expectWire(t, Float64(math.NaN()), "f9 7e00")
	expectWire(t, Float32(100000), "fa 47c35000")
	expectWire(t, Float16(1), "f9 3c00")
	// the smallest subnormal half
	expectWire(t, Float64(5.960464477539063e-8), "f9 0001")
}

func TestEncodeFloatWidthPreserved(t *testing.T) {
	// outside canonical mode a float32 keeps its width
	buf := newCollector()
	enc := NewEncoder(buf, PreserveEncodings)
	if err := enc.Encode(Float32(1)); err != nil {
		t.Fatal(err)
	}
	if !test.BytesEqual(buf.data, test.Hex("fa 3f800000")) {
		t.Errorf("expected full width, got % x", buf.data)
	}
}

func TestEncodeCanonicalMapOrdering(t *testing.T) {
	m := Map{
		{Key: Uint(100), Value: Text("hundred")},
		{Key: NegInt(0), Value: Text("minus")},
		{Key: Uint(10), Value: Text("ten")},
	}
	// shorter encoded key first, bytewise tie-break: 0a, 20, 1864
	got := encoded(t, m)
	want := test.Hex("a3 0a 6374656e 20 656d696e7573 1864 6768756e64726564")
	if !test.BytesEqual(got, want) {
		t.Errorf("canonical map order: expected % x, got % x", want, got)
	}
}

func TestEncodeMapPreservedOrder(t *testing.T) {
	m := Map{
		{Key: Uint(100), Value: Uint(1)},
		{Key: Uint(10), Value: Uint(2)},
	}
	buf := newCollector()
	if err := NewEncoder(buf, PreserveEncodings).Encode(m); err != nil {
		t.Fatal(err)
	}
	if !test.BytesEqual(buf.data, test.Hex("a2 1864 01 0a 02")) {
		t.Errorf("insertion order lost: % x", buf.data)
	}
}

func TestEncodeTagged(t *testing.T) {
	expectWire(t, Tagged{Number: 1, Inner: Uint(1363896240)}, "c1 1a514b67b0")
	expectWire(t, Tagged{Number: 55799, Inner: Null{}}, "d9 d9f7 f6")
}

func TestEncodeBigNum(t *testing.T) {
	two64 := num.MustBigIntFromString("18446744073709551616")
	expectWire(t, BigNum{Value: two64}, "c2 49 010000000000000000")
	negTwo64Minus1 := num.MustBigIntFromString("-18446744073709551617")
	expectWire(t, BigNum{Value: negTwo64Minus1}, "c3 49 010000000000000000")
	// anything inside the integer majors collapses to them
	expectWire(t, BigNum{Value: num.NewBigInt(5)}, "05")
	expectWire(t, BigNum{Value: num.NewBigInt(-6)}, "25")
}

func TestEncodeDecimalFraction(t *testing.T) {
	d := num.MustExtendedDecimalFromString("273.15")
	expectWire(t, Decimal{Value: d}, "c4 82 21 196ab3")
	neg := num.MustExtendedDecimalFromString("-273.15")
	expectWire(t, Decimal{Value: neg}, "c4 82 21 39 6ab2")
	if _, err := EncodeCanonical(Decimal{Value: num.DecimalNaN}); err == nil {
		t.Error("a NaN decimal has no tag 4 encoding")
	}
}

func TestEncodeBigFloat(t *testing.T) {
	f := num.NewExtendedFloat(num.NewBigInt(3), num.NewBigInt(-1))
	expectWire(t, BigFloat{Value: f}, "c5 82 20 03")
}

func TestEncodeRational(t *testing.T) {
	q, err := num.NewExtendedRational(num.NewBigInt(1), num.NewBigInt(3))
	if err != nil {
		t.Fatal(err)
	}
	expectWire(t, Rational{Value: q}, "d8 1e 82 01 03")
}

// collector is a trivial write sink for width tests
type collector struct {
	data []byte
}

func newCollector() *collector {
	return &collector{}
}

func (c *collector) Write(p []byte) (int, error) {
	c.data = append(c.data, p...)
	return len(p), nil
}
