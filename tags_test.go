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
	"errors"
	"fmt"
	"testing"

	"github.com/DamnWidget/cbornum/internal/test"
)

func TestTagValidationFailureKeepsRawPayload(t *testing.T) {
	// tag 2 over an unsigned int fails the bytes filter
	v := decoded(t, "c2 05")
	invalid, ok := v.(Invalid)
	if !ok {
		t.Fatalf("expected Invalid, got %#v", v)
	}
	if invalid.Tag != 2 || invalid.Raw != Uint(5) {
		t.Errorf("raw payload lost: %#v", invalid)
	}
	var tagErr *TagValidationError
	if !errors.As(invalid.Reason, &tagErr) {
		t.Errorf("reason has type %T", invalid.Reason)
	}
}

func TestTagValidationFailureStrict(t *testing.T) {
	err := decodeErr(t, "c2 05", Strict)
	var tagErr *TagValidationError
	if !errors.As(err, &tagErr) {
		t.Fatalf("expected TagValidationError, got %T", err)
	}
	if tagErr.Tag != 2 {
		t.Errorf("wrong tag in error: %d", tagErr.Tag)
	}
}

func TestTagFractionShapeErrors(t *testing.T) {
	// tag 4 over a three-element array fails the filter
	v := decoded(t, "c4 83 01 02 03")
	if _, ok := v.(Invalid); !ok {
		t.Errorf("expected Invalid, got %#v", v)
	}
	// a float exponent is rejected by the validator
	v = decoded(t, "c4 82 f93c00 02")
	if _, ok := v.(Invalid); !ok {
		t.Errorf("expected Invalid, got %#v", v)
	}
	// a bignum exponent is rejected too
	v = decoded(t, "c4 82 c2 49 010000000000000000 02")
	if _, ok := v.(Invalid); !ok {
		t.Errorf("expected Invalid, got %#v", v)
	}
}

func TestTagRationalZeroDenominator(t *testing.T) {
	v := decoded(t, "d8 1e 82 01 00")
	if _, ok := v.(Invalid); !ok {
		t.Errorf("expected Invalid, got %#v", v)
	}
	err := decodeErr(t, "d8 1e 82 01 00", Strict)
	var tagErr *TagValidationError
	if !errors.As(err, &tagErr) {
		t.Errorf("expected TagValidationError, got %T", err)
	}
}

func TestCustomRegistry(t *testing.T) {
	// a registry that validates tag 42 as an even unsigned int
	reg := DefaultTagRegistry()
	reg.Register(42, TagHandler{
		Filter: func(v Value) bool {
			_, ok := v.(Uint)
			return ok
		},
		Validate: func(v Value) (Value, error) {
			if v.(Uint)%2 != 0 {
				return nil, fmt.Errorf("odd payload")
			}
			return v, nil
		},
	})

	v, err := DecodeBytes(test.Hex("d8 2a 04"), WithRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}
	if v != Uint(4) {
		t.Errorf("validated payload: %#v", v)
	}

	odd, err := DecodeBytes(test.Hex("d8 2a 05"), WithRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := odd.(Invalid); !ok {
		t.Errorf("expected Invalid for the odd payload, got %#v", odd)
	}
}

func TestEmptyRegistryLeavesTagsAlone(t *testing.T) {
	v, err := DecodeBytes(test.Hex("c2 41 05"), WithRegistry(NewTagRegistry()))
	if err != nil {
		t.Fatal(err)
	}
	tagged, ok := v.(Tagged)
	if !ok || tagged.Number != 2 {
		t.Errorf("expected the raw tagged value, got %#v", v)
	}
}
