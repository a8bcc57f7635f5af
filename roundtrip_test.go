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

	"github.com/google/go-cmp/cmp"

	"github.com/DamnWidget/cbornum/internal/test"
	"github.com/DamnWidget/cbornum/num"
)

// corpus covers every variant the public API can build
func corpus(t *testing.T) []Value {
	t.Helper()
	q, err := num.NewExtendedRational(num.NewBigInt(-22), num.NewBigInt(7))
	if err != nil {
		t.Fatal(err)
	}
	return []Value{
		Uint(0), Uint(23), Uint(24), Uint(math.MaxUint64),
		NegInt(0), NegInt(255), NegInt(math.MaxUint64),
		Bytes{}, Bytes{0xde, 0xad, 0xbe, 0xef},
		Text(""), Text("hello"), Text("héllo ☃"),
		Array{}, Array{Uint(1), Text("two"), Bool(true)},
		Array{Array{Array{Uint(1)}}},
		Map{}, Map{{Key: Text("k"), Value: Uint(1)}, {Key: Uint(2), Value: Null{}}},
		Tagged{Number: 1, Inner: Uint(1363896240)},
		Tagged{Number: 99999, Inner: Array{Uint(1), Uint(2)}},
		Simple(16), Simple(100),
		Bool(true), Bool(false), Null{}, Undefined{},
		Float16(1.5), Float16(float32(math.Inf(-1))),
		Float32(100000), Float64(1.1), Float64(-4.1),
		BigNum{Value: num.MustBigIntFromString("18446744073709551616")},
		BigNum{Value: num.MustBigIntFromString("-680564733841876926926749214863536422912")},
		Decimal{Value: num.MustExtendedDecimalFromString("273.15")},
		Decimal{Value: num.MustExtendedDecimalFromString("-0.001")},
		BigFloat{Value: num.NewExtendedFloat(num.NewBigInt(3), num.NewBigInt(-1))},
		Rational{Value: q},
	}
}

func TestRoundTripCorpus(t *testing.T) {
	for _, v := range corpus(t) {
		data, err := EncodeCanonical(v)
		if err != nil {
			t.Fatalf("encode %#v: %s", v, err)
		}
		back, err := DecodeBytes(data, Strict)
		if err != nil {
			t.Fatalf("decode of canonical % x: %s", data, err)
		}
		if !Equal(v, back) {
			t.Errorf("round trip of %#v: got %#v", v, back)
		}
	}
}

func TestCanonicalEncodeIdempotent(t *testing.T) {
	for _, v := range corpus(t) {
		first, err := EncodeCanonical(v)
		if err != nil {
			t.Fatal(err)
		}
		back, err := DecodeBytes(first)
		if err != nil {
			t.Fatal(err)
		}
		second, err := EncodeCanonical(back)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("encode(decode(encode(%#v))) drifted:\n%s", v, diff)
		}
	}
}

func TestRoundTripNonCanonicalInputs(t *testing.T) {
	// decoding tolerates what strict mode refuses, and re-encoding
	// lands on the canonical bytes
	cases := map[string]string{
		"1817":           "17",    // overwide argument
		"5f 41 01 ff":    "41 01", // indefinite string
		"9f 01 02 ff":    "82 0102",
		"fa 3f800000":    "f9 3c00", // float narrows
		"c2 41 05":       "05",      // bignum collapses to the major
		"a2 02 00 01 00": "a2 0100 0200",
	}
	for in, want := range cases {
		v, err := DecodeBytes(test.Hex(in))
		if err != nil {
			t.Fatalf("decode %s: %s", in, err)
		}
		out, err := EncodeCanonical(v)
		if err != nil {
			t.Fatal(err)
		}
		if !test.BytesEqual(out, test.Hex(want)) {
			t.Errorf("canonicalising %s: expected % x, got % x", in, test.Hex(want), out)
		}
	}
}

func TestEqualitySemantics(t *testing.T) {
	// equality is canonical-encoding equality
	if !Equal(Uint(5), BigNum{Value: num.NewBigInt(5)}) {
		t.Error("5 and bignum(5) encode identically")
	}
	if !Equal(Float64(1.5), Float16(1.5)) {
		t.Error("exact halves compare equal across widths")
	}
	if Equal(Float64(1.5), Float64(1.25)) {
		t.Error("distinct values compare unequal")
	}
	// NaNs normalise to one bit pattern
	if !Equal(Float64(math.NaN()), Float32(float32(math.NaN()))) {
		t.Error("NaNs compare equal after normalisation")
	}
	// map order is canonicalised away
	a := Map{{Key: Uint(1), Value: Uint(10)}, {Key: Uint(2), Value: Uint(20)}}
	b := Map{{Key: Uint(2), Value: Uint(20)}, {Key: Uint(1), Value: Uint(10)}}
	if !Equal(a, b) {
		t.Error("pair order is not part of map identity")
	}
}

func TestIntegerWidening(t *testing.T) {
	if v := Integer(num.NewBigInt(100)); v != Uint(100) {
		t.Errorf("widening 100: %#v", v)
	}
	if v := Integer(num.NewBigInt(-100)); v != NegInt(99) {
		t.Errorf("widening -100: %#v", v)
	}
	wide := Integer(num.MustBigIntFromString("18446744073709551616"))
	if _, ok := wide.(BigNum); !ok {
		t.Errorf("2^64 must widen to BigNum, got %#v", wide)
	}
	edge := Integer(num.MustBigIntFromString("-18446744073709551616"))
	if edge != NegInt(math.MaxUint64) {
		t.Errorf("-2^64 still fits the negative major: %#v", edge)
	}
}
