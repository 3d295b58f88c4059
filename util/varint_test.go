// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/canon-registry/canond/util"
)

// test round trip of various values including boundaries
func TestVarint64(t *testing.T) {

	testList := []struct {
		value   uint64
		encoded []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x80, 0x80, 0x01}},
		{^uint64(0), []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}

	for i, item := range testList {
		encoded := util.ToVarint64(item.value)
		if !bytes.Equal(item.encoded, encoded) {
			t.Errorf("%d: encode: %d → %x  expected: %x", i, item.value, encoded, item.encoded)
		}
		value, count := util.FromVarint64(encoded)
		if value != item.value || count != len(item.encoded) {
			t.Errorf("%d: decode: %x → %d (%d bytes)  expected: %d (%d bytes)",
				i, encoded, value, count, item.value, len(item.encoded))
		}
	}
}

// a truncated buffer must decode as 0, 0
func TestVarint64Truncated(t *testing.T) {

	value, count := util.FromVarint64([]byte{0x80})
	if 0 != value || 0 != count {
		t.Errorf("truncated varint64 decoded as: %d (%d bytes)", value, count)
	}

	value, count = util.FromVarint64([]byte{})
	if 0 != value || 0 != count {
		t.Errorf("empty varint64 decoded as: %d (%d bytes)", value, count)
	}
}

// base58 round trip and rejection of invalid text
func TestBase58(t *testing.T) {

	buffer := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	text := util.ToBase58(buffer)
	decoded := util.FromBase58(text)
	if !bytes.Equal(buffer, decoded) {
		t.Errorf("base58 round trip: %x → %q → %x", buffer, text, decoded)
	}

	if 0 != len(util.FromBase58("not !! valid 0OIl")) {
		t.Error("invalid base58 text did not decode to empty")
	}
}
