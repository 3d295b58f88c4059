// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package anchorrecord_test

import (
	"crypto/rand"
	"testing"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/anchorrecord"
	"github.com/canon-registry/canond/digest"
	"github.com/canon-registry/canond/fault"
)

func makeRequest(t *testing.T) (*anchorrecord.AnchorRequest, *account.PrivateKey) {
	signer, private, err := account.NewAccount(true, rand.Reader)
	if nil != err {
		t.Fatalf("generate account error: %v", err)
	}

	request := &anchorrecord.AnchorRequest{
		WarrantDigest:     digest.NewDigest([]byte("warrant")),
		AttestationDigest: digest.NewDigest([]byte("attestation")),
		SubjectTag:        digest.NewDigest([]byte("subject")),
		ControllerDidHash: digest.NewDigest([]byte("controller")),
		Assurance:         anchorrecord.AssuranceAttested,
		Nonce:             0,
		Deadline:          4102444800, // 2100-01-01
		Signer:            signer,
	}
	return request, private
}

func signRequest(t *testing.T, request *anchorrecord.AnchorRequest, private *account.PrivateKey) {
	unsigned, err := request.Pack(request.Signer)
	if fault.ErrInvalidSignature != err {
		t.Fatalf("pack unsigned: error: %v  expected: %v", err, fault.ErrInvalidSignature)
	}
	request.Signature = private.Sign(unsigned)
}

func TestPackAnchorRequest(t *testing.T) {

	request, private := makeRequest(t)
	signRequest(t, request, private)

	packed, err := request.Pack(request.Signer)
	if nil != err {
		t.Fatalf("pack error: %v", err)
	}
	if 0 == len(packed) {
		t.Fatal("empty packed record")
	}

	// any flipped byte in the packed message must break the signature
	request.Nonce += 1
	if _, err := request.Pack(request.Signer); fault.ErrInvalidSignature != err {
		t.Errorf("altered nonce: error: %v  expected: %v", err, fault.ErrInvalidSignature)
	}
	request.Nonce -= 1

	request.Deadline += 1
	if _, err := request.Pack(request.Signer); fault.ErrInvalidSignature != err {
		t.Errorf("altered deadline: error: %v  expected: %v", err, fault.ErrInvalidSignature)
	}
	request.Deadline -= 1

	request.Assurance = anchorrecord.AssuranceWarranted
	if _, err := request.Pack(request.Signer); fault.ErrInvalidSignature != err {
		t.Errorf("altered assurance: error: %v  expected: %v", err, fault.ErrInvalidSignature)
	}
}

func TestPackRejectsAssuranceLevel(t *testing.T) {

	request, private := makeRequest(t)
	request.Assurance = 3
	_ = private

	if _, err := request.Pack(request.Signer); fault.ErrInvalidAssuranceLevel != err {
		t.Errorf("assurance 3: error: %v  expected: %v", err, fault.ErrInvalidAssuranceLevel)
	}
}

func TestPackRejectsRepeatedDigests(t *testing.T) {

	request, _ := makeRequest(t)
	request.AttestationDigest = request.WarrantDigest

	if _, err := request.Pack(request.Signer); fault.ErrNotDistinctDigests != err {
		t.Errorf("repeated digest: error: %v  expected: %v", err, fault.ErrNotDistinctDigests)
	}
}

func TestPackRejectsZeroDigest(t *testing.T) {

	request, _ := makeRequest(t)
	request.SubjectTag = digest.Digest{}

	if _, err := request.Pack(request.Signer); fault.ErrInvalidDigest != err {
		t.Errorf("zero digest: error: %v  expected: %v", err, fault.ErrInvalidDigest)
	}
}

func TestCheckDistinctDigests(t *testing.T) {

	d1 := digest.NewDigest([]byte("one"))
	d2 := digest.NewDigest([]byte("two"))
	d3 := digest.NewDigest([]byte("three"))

	if err := anchorrecord.CheckDistinctDigests(d1, d2, d3); nil != err {
		t.Errorf("distinct digests: error: %v", err)
	}
	if err := anchorrecord.CheckDistinctDigests(d1, d2, d1); fault.ErrNotDistinctDigests != err {
		t.Errorf("repeated digest: error: %v  expected: %v", err, fault.ErrNotDistinctDigests)
	}
}
