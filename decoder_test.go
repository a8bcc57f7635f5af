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
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/DamnWidget/cbornum/internal/test"
	"github.com/DamnWidget/cbornum/num"
)

func decoded(t *testing.T, hexIn string, options ...func(*Decoder)) Value {
	t.Helper()
	v, err := DecodeBytes(test.Hex(hexIn), options...)
	if err != nil {
		t.Fatalf("decoding %s: %s", hexIn, err)
	}
	return v
}

func decodeErr(t *testing.T, hexIn string, options ...func(*Decoder)) error {
	t.Helper()
	_, err := DecodeBytes(test.Hex(hexIn), options...)
	if err == nil {
		t.Fatalf("decoding %s: expected an error", hexIn)
	}
	return err
}

func TestDecodeIntegers(t *testing.T) {
	if v := decoded(t, "00"); v != Uint(0) {
		t.Errorf("expected 0, got %#v", v)
	}
	if v := decoded(t, "17"); v != Uint(23) {
		t.Errorf("expected 23, got %#v", v)
	}
	if v := decoded(t, "18 18"); v != Uint(24) {
		t.Errorf("expected 24, got %#v", v)
	}
	if v := decoded(t, "1b ffffffffffffffff"); v != Uint(math.MaxUint64) {
		t.Errorf("expected max, got %#v", v)
	}
	if v := decoded(t, "20"); v != NegInt(0) {
		t.Errorf("expected -1, got %#v", v)
	}
	if v := decoded(t, "39 03e7"); v != NegInt(999) {
		t.Errorf("expected -1000, got %#v", v)
	}
}

func TestDecodeStringsAndContainers(t *testing.T) {
	v := decoded(t, "64 49455446")
	if v != Text("IETF") {
		t.Errorf("expected IETF, got %#v", v)
	}
	b := decoded(t, "44 01020304").(Bytes)
	if !test.BytesEqual(b, []byte{1, 2, 3, 4}) {
		t.Errorf("bytes payload: %v", b)
	}
	a := decoded(t, "83 01 02 03").(Array)
	if len(a) != 3 || a[2] != Uint(3) {
		t.Errorf("array payload: %#v", a)
	}
	m := decoded(t, "a2 01 02 03 04").(Map)
	if len(m) != 2 || m[1].Key != Uint(3) || m[1].Value != Uint(4) {
		t.Errorf("map payload: %#v", m)
	}
}

func TestDecodeIndefiniteItems(t *testing.T) {
	b := decoded(t, "5f 42 0102 41 03 ff").(Bytes)
	if !test.BytesEqual(b, []byte{1, 2, 3}) {
		t.Errorf("indefinite bytes: %v", b)
	}
	s := decoded(t, "7f 62 6865 63 6c6c6f ff")
	if s != Text("hello") {
		t.Errorf("indefinite text: %#v", s)
	}
	a := decoded(t, "9f 01 82 02 03 ff").(Array)
	if len(a) != 2 {
		t.Errorf("indefinite array: %#v", a)
	}
	m := decoded(t, "bf 61 61 01 ff").(Map)
	if len(m) != 1 || m[0].Key != Text("a") {
		t.Errorf("indefinite map: %#v", m)
	}
}

func TestDecodeMalformedIndefinite(t *testing.T) {
	// mixed-type chunks inside an indefinite string
	err := decodeErr(t, "5f 61 61 ff")
	var malformed *MalformedIndefiniteError
	if !errors.As(err, &malformed) {
		t.Errorf("expected MalformedIndefiniteError, got %T", err)
	}
	// stray break
	if _, err := DecodeBytes(test.Hex("ff")); err == nil {
		t.Error("a lone break byte must not decode")
	}
	// nested indefinite chunk
	err = decodeErr(t, "5f 5f 41 01 ff ff")
	if !errors.As(err, &malformed) {
		t.Errorf("expected MalformedIndefiniteError, got %T", err)
	}
}

func TestDecodeFloats(t *testing.T) {
	if v := decoded(t, "f9 3c00"); v != Float16(1) {
		t.Errorf("half 1.0: %#v", v)
	}
	if v := decoded(t, "f9 3e00"); v != Float16(1.5) {
		t.Errorf("half 1.5: %#v", v)
	}
	if v := decoded(t, "f9 7c00"); v != Float16(float32(math.Inf(1))) {
		t.Errorf("half +Inf: %#v", v)
	}
	if v := decoded(t, "f9 0001"); v != Float16(5.960464477539063e-8) {
		t.Errorf("half subnormal: %#v", v)
	}
	if v := decoded(t, "fa 47c35000"); v != Float32(100000) {
		t.Errorf("single: %#v", v)
	}
	if v := decoded(t, "fb 3ff199999999999a"); v != Float64(1.1) {
		t.Errorf("double: %#v", v)
	}
	nan := decoded(t, "f9 7e00").(Float16)
	if !math.IsNaN(float64(nan)) {
		t.Errorf("half NaN: %#v", nan)
	}
}

func TestDecodeSimples(t *testing.T) {
	if v := decoded(t, "f4"); v != Bool(false) {
		t.Errorf("false: %#v", v)
	}
	if v := decoded(t, "f5"); v != Bool(true) {
		t.Errorf("true: %#v", v)
	}
	if _, ok := decoded(t, "f6").(Null); !ok {
		t.Error("null")
	}
	if _, ok := decoded(t, "f7").(Undefined); !ok {
		t.Error("undefined")
	}
	if v := decoded(t, "f0"); v != Simple(16) {
		t.Errorf("simple 16: %#v", v)
	}
	if v := decoded(t, "f8 ff"); v != Simple(255) {
		t.Errorf("simple 255: %#v", v)
	}
	// two-byte simple values below 32 are malformed
	if _, err := DecodeBytes(test.Hex("f8 10")); err == nil {
		t.Error("f810 must not decode")
	}
}

func TestDecodeReservedArgument(t *testing.T) {
	for _, in := range []string{"1c", "1d", "1e", "fc", "fd", "fe"} {
		err := decodeErr(t, in)
		var reserved *ReservedArgumentError
		if !errors.As(err, &reserved) {
			t.Errorf("%s: expected ReservedArgumentError, got %T", in, err)
		}
	}
}

func TestDecodeTruncatedInput(t *testing.T) {
	for _, in := range []string{"18", "1a 0001", "44 010203", "83 01 02", "a1 01", "c2 42 01"} {
		err := decodeErr(t, in)
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("%s: expected unexpected EOF, got %v", in, err)
		}
	}
}

func TestDecodeInvalidUTF8(t *testing.T) {
	err := decodeErr(t, "62 c328")
	var utf8Err *InvalidUTF8Error
	if !errors.As(err, &utf8Err) {
		t.Errorf("expected InvalidUTF8Error, got %T", err)
	}
}

func TestStrictModeRejections(t *testing.T) {
	// non-minimal argument
	err := decodeErr(t, "18 17", Strict)
	var nonMinimal *NonMinimalArgumentError
	if !errors.As(err, &nonMinimal) {
		t.Errorf("expected NonMinimalArgumentError, got %T", err)
	}
	// indefinite lengths
	if _, err := DecodeBytes(test.Hex("5f 41 01 ff"), Strict); err == nil {
		t.Error("strict mode accepted an indefinite string")
	}
	if _, err := DecodeBytes(test.Hex("9f ff"), Strict); err == nil {
		t.Error("strict mode accepted an indefinite array")
	}
	// duplicate keys
	err = decodeErr(t, "a2 01 02 01 03", Strict)
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Errorf("expected DuplicateKeyError, got %T", err)
	}
	// out-of-order keys
	err = decodeErr(t, "a2 02 00 01 00", Strict)
	var canonical *CanonicalModeError
	if !errors.As(err, &canonical) {
		t.Errorf("expected CanonicalModeError, got %T", err)
	}
	// the same payloads pass outside strict mode
	decoded(t, "a2 02 00 01 00")
	decoded(t, "18 17")
}

func TestDecodeBigNumTags(t *testing.T) {
	v := decoded(t, "c2 49 010000000000000000").(BigNum)
	if v.Value.String() != "18446744073709551616" {
		t.Errorf("tag 2 wide: %s", v.Value)
	}
	// a short payload collapses onto the integer majors
	if v := decoded(t, "c2 41 05"); v != Uint(5) {
		t.Errorf("tag 2 narrow: %#v", v)
	}
	if v := decoded(t, "c3 41 05"); v != NegInt(5) {
		t.Errorf("tag 3 narrow: %#v", v)
	}
	n := decoded(t, "c3 49 010000000000000000").(BigNum)
	if n.Value.String() != "-18446744073709551617" {
		t.Errorf("tag 3 wide: %s", n.Value)
	}
}

func TestDecodeDecimalFractionTag(t *testing.T) {
	v := decoded(t, "c4 82 21 196ab3").(Decimal)
	want := num.MustExtendedDecimalFromString("273.15")
	if v.Value.CompareTo(want) != 0 {
		t.Errorf("tag 4: %s", v.Value)
	}
	neg := decoded(t, "c4 82 21 396ab2").(Decimal)
	if neg.Value.CompareTo(num.MustExtendedDecimalFromString("-273.15")) != 0 {
		t.Errorf("negative tag 4: %s", neg.Value)
	}
}

func TestDecodeBigFloatTag(t *testing.T) {
	v := decoded(t, "c5 82 20 03").(BigFloat)
	if v.Value.ToFloat64() != 1.5 {
		t.Errorf("tag 5: %s", v.Value)
	}
	// a bignum mantissa widens the payload
	wide := decoded(t, "c5 82 20 c2 49 010000000000000000").(BigFloat)
	if wide.Value.Mantissa().String() != "18446744073709551616" {
		t.Errorf("tag 5 bignum mantissa: %s", wide.Value.Mantissa())
	}
}

func TestDecodeRationalTag(t *testing.T) {
	v := decoded(t, "d8 1e 82 01 03").(Rational)
	if v.Value.String() != "1/3" {
		t.Errorf("tag 30: %s", v.Value)
	}
}

func TestDecodeUnknownTagStaysTagged(t *testing.T) {
	v := decoded(t, "c1 1a 514b67b0").(Tagged)
	if v.Number != 1 || v.Inner != Uint(1363896240) {
		t.Errorf("unknown tag: %#v", v)
	}
}

func TestDecodeNestedTags(t *testing.T) {
	// tag 1 wrapping tag 2 wrapping bytes
	v := decoded(t, "c1 c2 41 05").(Tagged)
	if v.Number != 1 || v.Inner != Uint(5) {
		t.Errorf("nested tags: %#v", v)
	}
}

func TestDecodeMultipleItemsFromStream(t *testing.T) {
	dec := NewDecoder(bytes.NewReader(test.Hex("01 02 03")))
	for want := Uint(1); want <= 3; want++ {
		v, err := dec.Decode()
		if err != nil {
			t.Fatal(err)
		}
		if v != want {
			t.Errorf("expected %d, got %#v", want, v)
		}
	}
	if _, err := dec.Decode(); err != io.EOF {
		t.Errorf("expected io.EOF between items, got %v", err)
	}
}

func TestDecodeTrailingGarbage(t *testing.T) {
	if _, err := DecodeBytes(test.Hex("01 02")); err == nil {
		t.Error("trailing bytes must fail DecodeBytes")
	}
}

func TestDecodeDepthLimit(t *testing.T) {
	deep := make([]byte, 0, maxNestingDepth+2)
	for i := 0; i < maxNestingDepth+1; i++ {
		deep = append(deep, 0x81) // array(1)
	}
	deep = append(deep, 0x01)
	if _, err := DecodeBytes(deep); err == nil {
		t.Error("the nesting depth limit did not trip")
	}
}
