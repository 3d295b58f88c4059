// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/canon-registry/canond/fault"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - opaque fixed-width content identifier
//
// identifies a piece of off-chain content (warrant, attestation,
// receipt payload); equality is byte equality
// to convert to bytes just use d[:]
type Digest [Length]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// IsZero - true for the all-zero digest
//
// an all-zero digest never identifies real content and is rejected
// by all anchoring and minting entry points
func (digest Digest) IsZero() bool {
	return digest == Digest{}
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA3-256:" + hex.EncodeToString(digest[:]) + ">"
}

// Scan - convert a hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	if Length != hex.DecodedLen(len(token)) {
		return fault.ErrNotAValidDigest
	}
	buffer := make([]byte, Length)
	byteCount, err := hex.Decode(buffer, token)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.ErrNotAValidDigest
	}
	copy(digest[:], buffer)
	return nil
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(digest))
	buffer := make([]byte, size)
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if len(digest) != hex.DecodedLen(len(s)) {
		return fault.ErrNotAValidDigest
	}
	byteCount, err := hex.Decode(digest[:], s)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.ErrNotAValidDigest
	}
	return nil
}
