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
	"encoding/binary"
	"fmt"
	"io"
)

// Parses 'data item' headers and payloads and checks their
// well-formedness. The parser owns the position in the stream; the
// decoder drives it one header at a time.
type Parser struct {
	header byte
	r      io.Reader
	strict bool
	buf    [8]byte
}

// Create a new Parser with the given
// io.Reader and returns back it's address
func NewParser(r io.Reader) *Parser {
	return &Parser{r: r}
}

// Returns true if the header is the
// break opcode, returns false otherwise
func (p *Parser) isBreak() bool {
	return p.header == cborBreak
}

// scan1 reads the next initial byte. A clean end of input surfaces as
// io.EOF; anything truncated later in the item is an unexpected EOF.
func (p *Parser) scan1() (byte, error) {
	if _, err := io.ReadFull(p.r, p.buf[:1]); err != nil {
		return 0, err
	}
	return p.buf[0], nil
}

// scan reads exactly n payload bytes
func (p *Parser) scan(n uint64) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(p.r, data); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return data, nil
}

// parseHeader reads the initial byte of the next 'data item' and
// splits it into major and additional information
func (p *Parser) parseHeader() (Major, byte, error) {
	h, err := p.scan1()
	if err != nil {
		return 0, 0, err
	}
	p.header = h
	return Major(h >> 5), h & 0x1f, nil
}

// parseArgument resolves the additional information into the item's
// argument. Info 24..27 pull 1, 2, 4 or 8 big-endian bytes; 28..30
// are reserved; 31 is handled by the caller. Strict mode rejects
// arguments that fit a shorter encoding.
func (p *Parser) parseArgument(major Major, info byte) (uint64, error) {
	if info <= cborSmallInt {
		return uint64(info), nil
	}
	if info >= 28 {
		return 0, &ReservedArgumentError{Major: major, Info: info}
	}
	width := 1 << (info - cborUint8)
	if _, err := io.ReadFull(p.r, p.buf[:width]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	var v uint64
	switch info {
	case cborUint8:
		v = uint64(p.buf[0])
	case cborUint16:
		v = uint64(binary.BigEndian.Uint16(p.buf[:2]))
	case cborUint32:
		v = uint64(binary.BigEndian.Uint32(p.buf[:4]))
	case cborUint64:
		v = binary.BigEndian.Uint64(p.buf[:8])
	}
	if p.strict && !minimalWidth(v, width) {
		return 0, &NonMinimalArgumentError{Value: v, Width: width}
	}
	return v, nil
}

// minimalWidth reports whether width is the shortest argument
// encoding for v
func minimalWidth(v uint64, width int) bool {
	switch width {
	case 1:
		return v >= 24
	case 2:
		return v > 0xff
	case 4:
		return v > 0xffff
	case 8:
		return v > 0xffffffff
	}
	return false
}

// parseFloatPayload reads the 2, 4 or 8 byte payload of a major 7
// float
func (p *Parser) parseFloatPayload(info byte) (uint64, error) {
	width := 1 << (info - cborUint8)
	if _, err := io.ReadFull(p.r, p.buf[:width]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	switch info {
	case cborFloat16:
		return uint64(binary.BigEndian.Uint16(p.buf[:2])), nil
	case cborFloat32:
		return uint64(binary.BigEndian.Uint32(p.buf[:4])), nil
	case cborFloat64:
		return binary.BigEndian.Uint64(p.buf[:8]), nil
	}
	return 0, NewParseErr(fmt.Sprintf("invalid float info %d", info))
}
