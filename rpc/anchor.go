// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/anchor"
	"github.com/canon-registry/canond/anchorrecord"
	"github.com/canon-registry/canond/authorize"
	"github.com/canon-registry/canond/digest"
	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/mode"
)

// Anchor - type for the RPC
type Anchor struct {
	Log        *logger.L
	Limiter    *rate.Limiter
	Engine     *anchor.Engine
	Authorizer *authorize.Authorizer
}

// AnchorCreateArguments - direct anchor request
//
// the caller anchors in its own name and must hold the anchorer
// capability
type AnchorCreateArguments struct {
	Caller            *account.Account `json:"caller"`
	WarrantDigest     digest.Digest    `json:"warrantDigest"`
	AttestationDigest digest.Digest    `json:"attestationDigest"`
	SubjectTag        digest.Digest    `json:"subjectTag"`
	ControllerDidHash digest.Digest    `json:"controllerDidHash"`
	Assurance         uint8            `json:"assurance"`
	Payment           uint64           `json:"payment"`
}

// AnchorCreateReply - result of an anchor
type AnchorCreateReply struct {
	Sequence uint64 `json:"sequence"`
}

// Create - anchor a set of digests
func (an *Anchor) Create(arguments *AnchorCreateArguments, reply *AnchorCreateReply) error {

	if err := rateLimit(an.Limiter); nil != err {
		return err
	}

	log := an.Log
	log.Infof("Anchor.Create: %+v", arguments)

	if mode.IsNot(mode.Normal) {
		return fault.ErrNotAvailable
	}

	if nil == arguments.Caller {
		return fault.ErrMissingParameters
	}

	sequence, err := an.Engine.Anchor(
		arguments.Caller,
		arguments.WarrantDigest,
		arguments.AttestationDigest,
		arguments.SubjectTag,
		arguments.ControllerDidHash,
		arguments.Assurance,
		arguments.Payment,
	)
	if nil != err {
		return err
	}

	reply.Sequence = sequence
	return nil
}

// AnchorCreateMetaArguments - relayed anchor request
//
// the request is a detached signed payload; the executor only
// submits it and never becomes the principal
type AnchorCreateMetaArguments struct {
	Executor *account.Account            `json:"executor"`
	Request  *anchorrecord.AnchorRequest `json:"request"`
	Payment  uint64                      `json:"payment"`
}

// CreateMeta - anchor on behalf of a signed request
func (an *Anchor) CreateMeta(arguments *AnchorCreateMetaArguments, reply *AnchorCreateReply) error {

	if err := rateLimit(an.Limiter); nil != err {
		return err
	}

	log := an.Log
	log.Infof("Anchor.CreateMeta: %+v", arguments)

	if mode.IsNot(mode.Normal) {
		return fault.ErrNotAvailable
	}

	if nil == arguments.Executor || nil == arguments.Request {
		return fault.ErrMissingParameters
	}

	sequence, err := an.Engine.AnchorMeta(arguments.Executor, arguments.Request, arguments.Payment)
	if nil != err {
		return err
	}

	reply.Sequence = sequence
	return nil
}

// AnchorNonceArguments - principal whose counter is wanted
type AnchorNonceArguments struct {
	Principal *account.Account `json:"principal"`
}

// AnchorNonceReply - the nonce the next signed request must carry
type AnchorNonceReply struct {
	Nonce uint64 `json:"nonce"`
}

// Nonce - read a principal's current nonce
//
// a relayer calls this to learn the value to embed in the request it
// is about to have signed
func (an *Anchor) Nonce(arguments *AnchorNonceArguments, reply *AnchorNonceReply) error {

	if err := rateLimit(an.Limiter); nil != err {
		return err
	}

	if nil == arguments.Principal {
		return fault.ErrMissingParameters
	}

	reply.Nonce = an.Authorizer.CurrentNonce(arguments.Principal)
	return nil
}
