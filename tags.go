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

	"github.com/DamnWidget/cbornum/num"
)

// A TypeFilter accepts or rejects the inner value of a tag before its
// validator runs
type TypeFilter func(Value) bool

// A TagHandler validates the payload of one tag number and may
// transform the decoded value into a normalised shape
type TagHandler struct {
	Filter   TypeFilter
	Validate func(Value) (Value, error)
}

// A TagRegistry maps tag numbers to handlers. Registries are plain
// values handed to the decoder, so tests and callers can install
// their own without any global mutation.
type TagRegistry struct {
	handlers map[uint64]TagHandler
}

// NewTagRegistry returns an empty registry
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{handlers: make(map[uint64]TagHandler)}
}

// Register installs a handler for a tag number, replacing any
// previous one
func (r *TagRegistry) Register(tag uint64, h TagHandler) {
	r.handlers[tag] = h
}

// Lookup returns the handler for a tag number
func (r *TagRegistry) Lookup(tag uint64) (TagHandler, bool) {
	h, ok := r.handlers[tag]
	return h, ok
}

// validate runs the handler for a tag over the decoded inner value.
// Handler failures keep the raw payload behind an Invalid marker;
// strict mode upgrades them to a decode error at the caller.
func (r *TagRegistry) validate(tag uint64, inner Value) (Value, error) {
	h, ok := r.handlers[tag]
	if !ok {
		return Tagged{Number: tag, Inner: inner}, nil
	}
	if h.Filter != nil && !h.Filter(inner) {
		return nil, &TagValidationError{Tag: tag, Reason: errors.New("payload type not accepted")}
	}
	out, err := h.Validate(inner)
	if err != nil {
		return nil, &TagValidationError{Tag: tag, Reason: err}
	}
	return out, nil
}

// DefaultTagRegistry returns the registry with the numeric tags the
// codec normalises: 2 and 3 (bignums), 4 (decimal fraction), 5 (big
// float) and 30 (rational)
func DefaultTagRegistry() *TagRegistry {
	r := NewTagRegistry()
	r.Register(tagBigNum, TagHandler{
		Filter:   isBytesValue,
		Validate: validateBigNum,
	})
	r.Register(tagBigNegNum, TagHandler{
		Filter:   isBytesValue,
		Validate: validateBigNegNum,
	})
	r.Register(tagFraction, TagHandler{
		Filter:   isPairArray,
		Validate: validateFraction,
	})
	r.Register(tagBigFloat, TagHandler{
		Filter:   isPairArray,
		Validate: validateBigFloat,
	})
	r.Register(tagRational, TagHandler{
		Filter:   isPairArray,
		Validate: validateRational,
	})
	return r
}

func isBytesValue(v Value) bool {
	_, ok := v.(Bytes)
	return ok
}

func isPairArray(v Value) bool {
	a, ok := v.(Array)
	return ok && len(a) == 2
}

// validateBigNum turns a tag 2 payload into the narrowest integer
// shape
func validateBigNum(v Value) (Value, error) {
	b := v.(Bytes)
	return Integer(num.BigIntFromUnsignedBytes(b)), nil
}

// validateBigNegNum turns a tag 3 payload n into -1 - n
func validateBigNegNum(v Value) (Value, error) {
	b := v.(Bytes)
	n := num.BigIntFromUnsignedBytes(b)
	return Integer(n.Add(num.NewBigInt(1)).Neg()), nil
}

// integerOperand extracts an integer from the shapes the numeric tag
// payloads allow
func integerOperand(v Value) (*num.BigInt, error) {
	switch t := v.(type) {
	case Uint:
		return num.NewBigIntFromUint64(uint64(t)), nil
	case NegInt:
		return num.NewBigIntFromUint64(uint64(t)).Add(num.NewBigInt(1)).Neg(), nil
	case BigNum:
		return t.Value, nil
	}
	return nil, fmt.Errorf("expected an integer, got %T", v)
}

// validateFraction builds an extended decimal from the tag 4 pair
// [exponent, mantissa]; the exponent must use the integer majors
func validateFraction(v Value) (Value, error) {
	exp, mant, err := exponentMantissa(v.(Array))
	if err != nil {
		return nil, err
	}
	return Decimal{Value: num.NewExtendedDecimal(mant, exp)}, nil
}

// validateBigFloat builds an extended float from the tag 5 pair
func validateBigFloat(v Value) (Value, error) {
	exp, mant, err := exponentMantissa(v.(Array))
	if err != nil {
		return nil, err
	}
	return BigFloat{Value: num.NewExtendedFloat(mant, exp)}, nil
}

func exponentMantissa(a Array) (exp, mant *num.BigInt, err error) {
	switch a[0].(type) {
	case Uint, NegInt:
		exp, err = integerOperand(a[0])
	default:
		return nil, nil, fmt.Errorf("exponent must use the integer majors, got %T", a[0])
	}
	if err != nil {
		return nil, nil, err
	}
	mant, err = integerOperand(a[1])
	if err != nil {
		return nil, nil, err
	}
	return exp, mant, nil
}

// validateRational builds a rational from the tag 30 pair
// [numerator, denominator]; a zero denominator is rejected
func validateRational(v Value) (Value, error) {
	a := v.(Array)
	numerator, err := integerOperand(a[0])
	if err != nil {
		return nil, err
	}
	denominator, err := integerOperand(a[1])
	if err != nil {
		return nil, err
	}
	q, err := num.NewExtendedRational(numerator, denominator)
	if err != nil {
		return nil, err
	}
	return Rational{Value: q}, nil
}
