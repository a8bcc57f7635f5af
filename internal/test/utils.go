package test

import (
	"encoding/hex"
	"strings"
)

const (
	Succeed string = "\x1b[32m✓\x1b[0m"
	Failed  string = "\x1b[31m✗\x1b[0m"
)

// BytesEqual is used to compare equality between two bytes sequences
func BytesEqual(a, b []byte) bool {

	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// Hex decodes a spaced hex literal like "c2 49 01" into bytes,
// panicking on malformed input since it only ever sees test literals
func Hex(s string) []byte {
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		panic(err)
	}
	return b
}
