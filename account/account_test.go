// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"crypto/rand"
	"testing"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/fault"
)

// generate, round trip through text, and verify a signature
func TestAccountRoundTrip(t *testing.T) {

	acc, private, err := account.NewAccount(true, rand.Reader)
	if nil != err {
		t.Fatalf("generate account error: %v", err)
	}

	text := acc.String()

	back, err := account.AccountFromBase58(text)
	if nil != err {
		t.Fatalf("decode account error: %v", err)
	}
	if back.String() != text {
		t.Errorf("account: %s  expected: %s", back, text)
	}
	if !back.IsTesting() {
		t.Error("test flag lost in round trip")
	}

	message := []byte("the quick brown fox")
	signature := private.Sign(message)

	if err := back.CheckSignature(message, signature); nil != err {
		t.Errorf("check signature error: %v", err)
	}

	// tamper with the message
	if err := back.CheckSignature(append(message, '!'), signature); fault.ErrInvalidSignature != err {
		t.Errorf("tampered message: error: %v  expected: %v", err, fault.ErrInvalidSignature)
	}

	// tamper with the signature
	signature[0] ^= 0xff
	if err := back.CheckSignature(message, signature); fault.ErrInvalidSignature != err {
		t.Errorf("tampered signature: error: %v  expected: %v", err, fault.ErrInvalidSignature)
	}
}

// a signature by one account must not verify for another
func TestCrossAccountSignature(t *testing.T) {

	accA, privateA, err := account.NewAccount(true, rand.Reader)
	if nil != err {
		t.Fatalf("generate account error: %v", err)
	}
	accB, _, err := account.NewAccount(true, rand.Reader)
	if nil != err {
		t.Fatalf("generate account error: %v", err)
	}

	message := []byte("signed by A")
	signature := privateA.Sign(message)

	if err := accA.CheckSignature(message, signature); nil != err {
		t.Errorf("check signature error: %v", err)
	}
	if err := accB.CheckSignature(message, signature); fault.ErrInvalidSignature != err {
		t.Errorf("cross account: error: %v  expected: %v", err, fault.ErrInvalidSignature)
	}
}

// corrupted text forms must be rejected
func TestDecodeRejection(t *testing.T) {

	acc, _, err := account.NewAccount(false, rand.Reader)
	if nil != err {
		t.Fatalf("generate account error: %v", err)
	}

	text := acc.String()

	// flip one character of the checksum region
	corrupted := []byte(text)
	last := len(corrupted) - 1
	if 'x' == corrupted[last] {
		corrupted[last] = 'y'
	} else {
		corrupted[last] = 'x'
	}

	if _, err := account.AccountFromBase58(string(corrupted)); nil == err {
		t.Error("corrupted account text was accepted")
	}

	if _, err := account.AccountFromBase58("not ** base58"); fault.ErrCannotDecodeAccount != err {
		t.Errorf("invalid text: error: %v  expected: %v", err, fault.ErrCannotDecodeAccount)
	}
}

// private key text round trip
func TestPrivateKeyRoundTrip(t *testing.T) {

	acc, private, err := account.NewAccount(true, rand.Reader)
	if nil != err {
		t.Fatalf("generate account error: %v", err)
	}

	back, err := account.PrivateKeyFromBase58(private.String())
	if nil != err {
		t.Fatalf("decode private key error: %v", err)
	}

	if back.Account().String() != acc.String() {
		t.Errorf("account: %s  expected: %s", back.Account(), acc)
	}

	// a public key text form must not decode as a private key
	if _, err := account.PrivateKeyFromBase58(acc.String()); nil == err {
		t.Error("public key text decoded as private key")
	}
}
