// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package anchorrecord

import (
	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/digest"
	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/util"
)

// Pack - serialise and check the signature of an anchor request
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last; the signature is checked against the supplied
// signer which must be the account embedded in the record
//
// NOTE: returns the "unsigned" message on signature failure - for
//       the relayer to sign
func (request *AnchorRequest) Pack(signer *account.Account) (Packed, error) {
	if len(request.Signature) > maxSignatureLength {
		return nil, fault.ErrSignatureTooLong
	}

	if nil == request.Signer || nil == signer {
		return nil, fault.ErrInvalidSigner
	}

	if request.Assurance > MaximumAssuranceLevel {
		return nil, fault.ErrInvalidAssuranceLevel
	}

	err := CheckDistinctDigests(
		request.WarrantDigest,
		request.AttestationDigest,
		request.SubjectTag,
		request.ControllerDidHash,
	)
	if nil != err {
		return nil, err
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(AnchorRequestTag))
	message = append(message, request.WarrantDigest[:]...)
	message = append(message, request.AttestationDigest[:]...)
	message = append(message, request.SubjectTag[:]...)
	message = append(message, request.ControllerDidHash[:]...)
	message = append(message, util.ToVarint64(uint64(request.Assurance))...)
	message = append(message, util.ToVarint64(request.Nonce)...)
	message = append(message, util.ToVarint64(request.Deadline)...)
	message = appendAccount(message, request.Signer)

	// signature
	err = signer.CheckSignature(message, request.Signature)
	if nil != err {
		return message, err
	}
	// Signature Last
	return appendBytes(message, request.Signature), nil
}

// CheckDistinctDigests - enforce the distinct-digest contract
//
// the relayer must compute a different digest for each semantically
// different field; a repeated or zero digest silently destroys
// auditability so it is rejected here, not tolerated
func CheckDistinctDigests(digests ...digest.Digest) error {
	for i, d := range digests {
		if d.IsZero() {
			return fault.ErrInvalidDigest
		}
		for _, e := range digests[i+1:] {
			if d == e {
				return fault.ErrNotDistinctDigests
			}
		}
	}
	return nil
}

// append a length prefixed byte buffer
func appendBytes(buffer []byte, data []byte) []byte {
	buffer = append(buffer, util.ToVarint64(uint64(len(data)))...)
	buffer = append(buffer, data...)
	return buffer
}

// append a length prefixed account
func appendAccount(buffer []byte, acc *account.Account) []byte {
	return appendBytes(buffer, acc.Bytes())
}
