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

import "fmt"

// errors returned by the parser
type ParserErr struct {
	Msg string
}

// implements the Error interface
func (pe ParserErr) Error() string {
	return pe.Msg
}

// creates a new ParseErr component and return it back
func NewParseErr(msg string) ParserErr {
	return ParserErr{msg}
}

// An StrictModeError describes an invalid operation that violates
// the section 3.10. Strict Mode definition of the RFC7049
type StrictModeError struct {
	Msg string
}

func NewStrictModeError(msg string) *StrictModeError {
	return &StrictModeError{Msg: fmt.Sprintf("strict-mode: %s", msg)}
}

func (e *StrictModeError) Error() string {
	return e.Msg
}

// A CanonicalModeError describes an invalid operation that violates
// the section 3.9. Canonical CBOR definition of the RFC7049
type CanonicalModeError struct {
	Msg string
}

func NewCanonicalModeError(msg string) *CanonicalModeError {
	return &CanonicalModeError{Msg: fmt.Sprintf("canonical-mode: %s", msg)}
}

func (e *CanonicalModeError) Error() string {
	return e.Msg
}

// A ReservedArgumentError reports additional information 28..30,
// which the wire format reserves
type ReservedArgumentError struct {
	Major Major
	Info  byte
}

func (e *ReservedArgumentError) Error() string {
	return fmt.Sprintf("cbor: reserved additional info %d for major %d", e.Info, e.Major)
}

// A NonMinimalArgumentError reports an argument that strict mode
// requires in a shorter encoding
type NonMinimalArgumentError struct {
	Value uint64
	Width int
}

func (e *NonMinimalArgumentError) Error() string {
	return fmt.Sprintf("strict-mode: argument %d must not be sent in %d bytes", e.Value, e.Width)
}

// An InvalidUTF8Error reports a text string payload that is not
// well-formed UTF-8
type InvalidUTF8Error struct {
	Payload []byte
}

func (e *InvalidUTF8Error) Error() string {
	return "cbor: text string payload is not well-formed UTF-8"
}

// A DuplicateKeyError reports a map carrying the same key twice
type DuplicateKeyError struct {
	Key Value
}

func (e *DuplicateKeyError) Error() string {
	return "strict-mode: duplicate map key"
}

// A MalformedIndefiniteError reports a misuse of indefinite-length
// encoding: a wrong major, a mixed-type chunk or a stray break
type MalformedIndefiniteError struct {
	Msg string
}

func (e *MalformedIndefiniteError) Error() string {
	return fmt.Sprintf("cbor: malformed indefinite-length item: %s", e.Msg)
}

// A TagValidationError reports a tagged payload its handler rejected
type TagValidationError struct {
	Tag    uint64
	Reason error
}

func (e *TagValidationError) Error() string {
	return fmt.Sprintf("cbor: tag %d validation failed: %s", e.Tag, e.Reason)
}

func (e *TagValidationError) Unwrap() error {
	return e.Reason
}

// An UnsupportedValueError describes a value the encoder has no wire
// shape for, like a non-finite decimal fraction
type UnsupportedValueError struct {
	Str string
}

func (e *UnsupportedValueError) Error() string {
	return "cbor: unsupported value: " + e.Str
}

// A BigNumEncodeError describes a failure while encoding a big num
type BigNumEncodeError struct {
	Str string
}

func (e *BigNumEncodeError) Error() string {
	return "cbor: while encoding big num: " + e.Str
}
