// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - principal identities
//
// A principal is any address-like actor that can sign anchor
// requests, submit them, or hold a fee balance.  The binary form is a
// varint key-variant byte followed by an ED25519 public key; the text
// form appends a 4 byte SHA3-256 checksum and encodes as Base58.
package account

import (
	"bytes"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/util"
)

// enumeration of supported key algorithms
const (
	ED25519 = 1

	// end of list (one greater than last item)
	algorithmLimit = 2
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// Account - the public identity of a principal
type Account struct {
	Test      bool
	PublicKey []byte
}

// AccountFromBase58 - convert a Base58 encoded string to an account
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	accountDecoded := util.FromBase58(accountBase58Encoded)
	if 0 == len(accountDecoded) {
		return nil, fault.ErrCannotDecodeAccount
	}

	// verify checksum before examining any other field
	checksumStart := len(accountDecoded) - checksumLength
	if checksumStart <= 0 {
		return nil, fault.ErrCannotDecodeAccount
	}
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	return AccountFromBytes(accountDecoded[:checksumStart])
}

// AccountFromBytes - convert a binary encoded buffer to an account
func AccountFromBytes(accountBytes []byte) (*Account, error) {

	keyVariant, keyVariantLength := util.FromVarint64(accountBytes)

	if 0 == keyVariantLength || publicKeyCode != keyVariant&publicKeyCode {
		return nil, fault.ErrNotPublicKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm >= algorithmLimit {
		return nil, fault.ErrInvalidKeyType
	}

	isTest := 0 != keyVariant&testKeyCode

	keyLength := len(accountBytes) - keyVariantLength
	if keyLength <= 0 {
		return nil, fault.ErrInvalidKeyLength
	}

	switch keyAlgorithm {
	case ED25519:
		if ed25519.PublicKeySize != keyLength {
			return nil, fault.ErrInvalidKeyLength
		}
		return &Account{
			Test:      isTest,
			PublicKey: accountBytes[keyVariantLength:],
		}, nil
	default:
		return nil, fault.ErrInvalidKeyType
	}
}

// IsTesting - true for a test network account
func (account *Account) IsTesting() bool {
	return account.Test
}

// Bytes - key variant followed by the public key
//
// this is the canonical binary form used for storage keys and for
// embedding the account inside packed records
func (account *Account) Bytes() []byte {
	keyVariant := uint64(ED25519<<algorithmShift | publicKeyCode)
	if account.Test {
		keyVariant |= testKeyCode
	}
	return append(util.ToVarint64(keyVariant), account.PublicKey...)
}

// CheckSignature - verify an ED25519 signature over a message
func (account *Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(account.PublicKey, message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// String - base58 encoded bytes with checksum appended
func (account Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// MarshalText - convert an account to its text form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert text back into an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.Test = a.Test
	account.PublicKey = a.PublicKey
	return nil
}
