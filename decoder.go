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
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/x448/float16"
)

// decode depth cap; protects against header bombs of nested arrays
const maxNestingDepth = 512

// errBreak flows up from a break byte to the innermost indefinite
// frame; anywhere else it is a malformed item
var errBreak = &MalformedIndefiniteError{Msg: "break outside indefinite-length item"}

// A Decoder reads CBOR 'data items' from an input stream and builds
// Values. Tagged items run through the registry on the way out. In
// strict mode the decoder also enforces the canonical form: definite
// lengths only, minimal arguments, sorted and unique map keys, and
// handler failures become decode errors.
type Decoder struct {
	parser   *Parser
	strict   bool
	registry *TagRegistry
}

// NewDecoder returns a new decoder that reads from r with the default
// tag registry
func NewDecoder(r io.Reader, options ...func(*Decoder)) *Decoder {
	d := &Decoder{parser: NewParser(r), registry: DefaultTagRegistry()}
	for _, option := range options {
		option(d)
	}
	return d
}

// Strict puts the decoder in strict canonical mode
func Strict(d *Decoder) {
	d.strict = true
	d.parser.strict = true
}

// WithRegistry installs a tag registry in place of the default one
func WithRegistry(registry *TagRegistry) func(*Decoder) {
	return func(d *Decoder) {
		d.registry = registry
	}
}

// Decode reads the next value from the stream. The end of the input
// between items surfaces as io.EOF.
func (dec *Decoder) Decode() (Value, error) {
	v, err := dec.decodeValue(0)
	if err == errBreak {
		return nil, &MalformedIndefiniteError{Msg: "break as top-level item"}
	}
	return v, err
}

// DecodeBytes decodes a single value from a byte slice, rejecting
// trailing garbage
func DecodeBytes(data []byte, options ...func(*Decoder)) (Value, error) {
	r := bytes.NewReader(data)
	dec := NewDecoder(r, options...)
	v, err := dec.Decode()
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, NewParseErr(fmt.Sprintf("%d trailing bytes after item", r.Len()))
	}
	return v, nil
}

func (dec *Decoder) decodeValue(depth int) (Value, error) {
	if depth > maxNestingDepth {
		return nil, NewParseErr("nesting depth limit exceeded")
	}
	major, info, err := dec.parser.parseHeader()
	if err != nil {
		return nil, err
	}
	switch major {
	case cborUnsignedInt:
		arg, err := dec.parser.parseArgument(major, info)
		if err != nil {
			return nil, err
		}
		return Uint(arg), nil
	case cborNegativeInt:
		arg, err := dec.parser.parseArgument(major, info)
		if err != nil {
			return nil, err
		}
		return NegInt(arg), nil
	case cborByteString:
		b, err := dec.decodeStringPayload(major, info)
		if err != nil {
			return nil, err
		}
		return Bytes(b), nil
	case cborTextString:
		b, err := dec.decodeStringPayload(major, info)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, &InvalidUTF8Error{Payload: b}
		}
		return Text(b), nil
	case cborDataArray:
		return dec.decodeArray(info, depth)
	case cborDataMap:
		return dec.decodeMap(info, depth)
	case cborTag:
		return dec.decodeTagged(info, depth)
	default:
		return dec.decodeSimpleOrFloat(info)
	}
}

// decodeStringPayload reads a definite string payload, or reassembles
// an indefinite one from definite chunks of the same major type
func (dec *Decoder) decodeStringPayload(major Major, info byte) ([]byte, error) {
	if info != cborIndefinite {
		n, err := dec.parser.parseArgument(major, info)
		if err != nil {
			return nil, err
		}
		return dec.parser.scan(n)
	}
	if dec.strict {
		return nil, NewStrictModeError("indefinite-length string")
	}
	var out []byte
	for {
		m, i, err := dec.parser.parseHeader()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		if dec.parser.isBreak() {
			return out, nil
		}
		if m != major {
			return nil, &MalformedIndefiniteError{
				Msg: fmt.Sprintf("chunk major %d inside indefinite %d", m, major),
			}
		}
		if i == cborIndefinite {
			return nil, &MalformedIndefiniteError{Msg: "nested indefinite-length chunk"}
		}
		n, err := dec.parser.parseArgument(m, i)
		if err != nil {
			return nil, err
		}
		chunk, err := dec.parser.scan(n)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
}

func (dec *Decoder) decodeArray(info byte, depth int) (Value, error) {
	if info == cborIndefinite {
		if dec.strict {
			return nil, NewStrictModeError("indefinite-length array")
		}
		out := Array{}
		for {
			item, err := dec.decodeValue(depth + 1)
			if err == errBreak {
				return out, nil
			}
			if err != nil {
				return nil, eofIsUnexpected(err)
			}
			out = append(out, item)
		}
	}
	n, err := dec.parser.parseArgument(cborDataArray, info)
	if err != nil {
		return nil, err
	}
	out := make(Array, 0, clampPrealloc(n))
	for i := uint64(0); i < n; i++ {
		item, err := dec.decodeValue(depth + 1)
		if err == errBreak {
			return nil, &MalformedIndefiniteError{Msg: "break inside definite-length array"}
		}
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (dec *Decoder) decodeMap(info byte, depth int) (Value, error) {
	indefinite := info == cborIndefinite
	var n uint64
	if indefinite {
		if dec.strict {
			return nil, NewStrictModeError("indefinite-length map")
		}
	} else {
		var err error
		n, err = dec.parser.parseArgument(cborDataMap, info)
		if err != nil {
			return nil, err
		}
	}
	out := make(Map, 0, clampPrealloc(n))
	var prevKey []byte
	seen := make(map[string]bool)
	for i := uint64(0); indefinite || i < n; i++ {
		key, err := dec.decodeValue(depth + 1)
		if err == errBreak {
			if indefinite {
				return out, nil
			}
			return nil, &MalformedIndefiniteError{Msg: "break inside definite-length map"}
		}
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		if dec.strict {
			kb, err := EncodeCanonical(key)
			if err != nil {
				return nil, err
			}
			if seen[string(kb)] {
				return nil, &DuplicateKeyError{Key: key}
			}
			seen[string(kb)] = true
			if prevKey != nil && !canonicalKeyLess(prevKey, kb) {
				return nil, NewCanonicalModeError("map keys out of canonical order")
			}
			prevKey = kb
		}
		val, err := dec.decodeValue(depth + 1)
		if err == errBreak {
			return nil, &MalformedIndefiniteError{Msg: "break in place of map value"}
		}
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		out = append(out, Pair{Key: key, Value: val})
	}
	return out, nil
}

func (dec *Decoder) decodeTagged(info byte, depth int) (Value, error) {
	number, err := dec.parser.parseArgument(cborTag, info)
	if err != nil {
		return nil, err
	}
	inner, err := dec.decodeValue(depth + 1)
	if err == errBreak {
		return nil, &MalformedIndefiniteError{Msg: "break in place of tag content"}
	}
	if err != nil {
		return nil, eofIsUnexpected(err)
	}
	out, err := dec.registry.validate(number, inner)
	if err != nil {
		if dec.strict {
			return nil, err
		}
		return Invalid{Tag: number, Raw: inner, Reason: err}, nil
	}
	return out, nil
}

func (dec *Decoder) decodeSimpleOrFloat(info byte) (Value, error) {
	switch info {
	case cborFalse:
		return Bool(false), nil
	case cborTrue:
		return Bool(true), nil
	case cborNil:
		return Null{}, nil
	case cborUndef:
		return Undefined{}, nil
	case cborSimple:
		b, err := dec.parser.scan1()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		if b < 32 {
			return nil, NewParseErr(fmt.Sprintf("two-byte simple value %d is malformed", b))
		}
		return Simple(b), nil
	case cborFloat16:
		bits, err := dec.parser.parseFloatPayload(info)
		if err != nil {
			return nil, err
		}
		// binary16 upscales into binary32 losslessly
		return Float16(float16.Float16(bits).Float32()), nil
	case cborFloat32:
		bits, err := dec.parser.parseFloatPayload(info)
		if err != nil {
			return nil, err
		}
		return Float32(math.Float32frombits(uint32(bits))), nil
	case cborFloat64:
		bits, err := dec.parser.parseFloatPayload(info)
		if err != nil {
			return nil, err
		}
		return Float64(math.Float64frombits(bits)), nil
	case cborIndefinite:
		return nil, errBreak
	default:
		if info < cborFalse {
			return Simple(info), nil
		}
		return nil, &ReservedArgumentError{Major: cborNC, Info: info}
	}
}

// eofIsUnexpected converts a clean EOF inside an item into the
// truncated-input error
func eofIsUnexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// clampPrealloc bounds container preallocation so a hostile length
// prefix cannot balloon memory before its payload is proven
func clampPrealloc(n uint64) int {
	if n > 4096 {
		return 4096
	}
	return int(n)
}
