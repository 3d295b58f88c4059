// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"io"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/util"
)

// PrivateKey - the signing half of a principal
type PrivateKey struct {
	Test       bool
	PrivateKey []byte
}

// private key bit in the key code
const privateKeyCode = 0x00 // i.e. publicKeyCode bit is clear

// NewAccount - generate a new key pair
//
// rand is normally crypto/rand.Reader, injectable for deterministic tests
func NewAccount(test bool, rand io.Reader) (*Account, *PrivateKey, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand)
	if nil != err {
		return nil, nil, err
	}
	account := &Account{
		Test:      test,
		PublicKey: []byte(publicKey),
	}
	private := &PrivateKey{
		Test:       test,
		PrivateKey: []byte(privateKey),
	}
	return account, private, nil
}

// PrivateKeyFromBase58 - convert a Base58 encoded string to a private key
func PrivateKeyFromBase58(privateKeyBase58Encoded string) (*PrivateKey, error) {
	privateKeyDecoded := util.FromBase58(privateKeyBase58Encoded)
	if 0 == len(privateKeyDecoded) {
		return nil, fault.ErrCannotDecodePrivate
	}

	checksumStart := len(privateKeyDecoded) - checksumLength
	if checksumStart <= 0 {
		return nil, fault.ErrCannotDecodePrivate
	}
	checksum := sha3.Sum256(privateKeyDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], privateKeyDecoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	keyVariant, keyVariantLength := util.FromVarint64(privateKeyDecoded)
	if 0 == keyVariantLength || 0 != keyVariant&publicKeyCode {
		return nil, fault.ErrInvalidPrivateKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if ED25519 != keyAlgorithm {
		return nil, fault.ErrInvalidKeyType
	}

	privateKey := privateKeyDecoded[keyVariantLength:checksumStart]
	if ed25519.PrivateKeySize != len(privateKey) {
		return nil, fault.ErrInvalidKeyLength
	}

	return &PrivateKey{
		Test:       0 != keyVariant&testKeyCode,
		PrivateKey: privateKey,
	}, nil
}

// Account - the corresponding public identity
func (private *PrivateKey) Account() *Account {
	publicKey := ed25519.PrivateKey(private.PrivateKey).Public().(ed25519.PublicKey)
	return &Account{
		Test:      private.Test,
		PublicKey: []byte(publicKey),
	}
}

// Sign - sign a message
func (private *PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(private.PrivateKey, message))
}

// Bytes - key variant followed by the private key
func (private *PrivateKey) Bytes() []byte {
	keyVariant := uint64(ED25519<<algorithmShift | privateKeyCode)
	if private.Test {
		keyVariant |= testKeyCode
	}
	return append(util.ToVarint64(keyVariant), private.PrivateKey...)
}

// String - base58 encoded bytes with checksum appended
func (private PrivateKey) String() string {
	buffer := private.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}
