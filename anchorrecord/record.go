// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package anchorrecord - typed signed anchor requests
//
// a request binds four distinct content digests, an assurance level,
// the signer's current nonce and a deadline into one signed byte
// string; the nonce inside the signed bytes is what makes a captured
// request worthless once the signer's counter has advanced
package anchorrecord

import (
	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/digest"
)

// TagType - type code for records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of the packed bytes
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	AnchorRequestTag = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// assurance levels
const (
	AssuranceSelfDeclared = 0
	AssuranceAttested     = 1
	AssuranceWarranted    = 2
	MaximumAssuranceLevel = AssuranceWarranted
)

// byte sizes for various fields
const (
	maxSignatureLength = 1024
)

// Packed - packed records are just a byte slice
type Packed []byte

// AnchorRequest - the unpacked anchor request structure
//
// digest fields in order: warrant content, attestation content,
// subject handle, controller identity - each semantically different
// and so each a different digest value
type AnchorRequest struct {
	WarrantDigest     digest.Digest     `json:"warrantDigest"`     // hex
	AttestationDigest digest.Digest     `json:"attestationDigest"` // hex
	SubjectTag        digest.Digest     `json:"subjectTag"`        // hex
	ControllerDidHash digest.Digest     `json:"controllerDidHash"` // hex
	Assurance         uint8             `json:"assurance"`         // 0..2
	Nonce             uint64            `json:"nonce,string"`      // signer's current nonce
	Deadline          uint64            `json:"deadline,string"`   // unix seconds
	Signer            *account.Account  `json:"signer"`            // base58
	Signature         account.Signature `json:"signature"`         // hex
}
