// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authorize - resolve who a request is from
//
// two paths produce an authorized principal: a direct call resolves
// to the caller after a capability check, a meta call resolves to
// the signer recovered from the request's signature.  downstream
// code only ever sees the resolved principal; the raw submitter is
// accepted for logging and fee attribution and nothing else
package authorize

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/anchorrecord"
	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/nonce"
)

// Authorizer - verifies direct callers and signed requests
type Authorizer struct {
	log       *logger.L
	nonces    *nonce.Authority
	anchorers map[string]struct{}
	admins    map[string]struct{}
}

// New - create an authorizer
//
// anchorers are the accounts allowed to anchor directly; admins hold
// the pause/sweep capability
func New(nonces *nonce.Authority, anchorers []*account.Account, admins []*account.Account) *Authorizer {
	a := &Authorizer{
		log:       logger.New("authorize"),
		nonces:    nonces,
		anchorers: make(map[string]struct{}),
		admins:    make(map[string]struct{}),
	}
	for _, acc := range anchorers {
		a.anchorers[string(acc.Bytes())] = struct{}{}
	}
	for _, acc := range admins {
		a.admins[string(acc.Bytes())] = struct{}{}
	}
	return a
}

// CurrentNonce - the nonce a principal's next signed request must
// carry, zero for unseen principals
func (a *Authorizer) CurrentNonce(principal *account.Account) uint64 {
	if nil == principal {
		return 0
	}
	return a.nonces.Current(principal)
}

// VerifyDirect - confirm a direct caller holds the anchor capability
func (a *Authorizer) VerifyDirect(caller *account.Account) error {
	if nil == caller {
		return fault.ErrUnauthorized
	}
	if _, ok := a.anchorers[string(caller.Bytes())]; !ok {
		a.log.Warnf("direct call rejected: %s", caller)
		return fault.ErrUnauthorized
	}
	return nil
}

// VerifyAdmin - confirm a caller holds the admin capability
func (a *Authorizer) VerifyAdmin(caller *account.Account) error {
	if nil == caller {
		return fault.ErrUnauthorized
	}
	if _, ok := a.admins[string(caller.Bytes())]; !ok {
		a.log.Warnf("admin call rejected: %s", caller)
		return fault.ErrUnauthorized
	}
	return nil
}

// VerifyMeta - verify a signed anchor request and advance the
// signer's nonce
//
// the executor is whoever submitted the request; it is recorded in
// the log line only and must never reach the nonce lookup - the
// replay protection binds to the signer inside the signed bytes
func (a *Authorizer) VerifyMeta(request *anchorrecord.AnchorRequest, executor *account.Account, now time.Time) (*account.Account, error) {
	if nil == request || nil == request.Signer {
		return nil, fault.ErrInvalidSigner
	}

	// signature over all fields including the nonce
	_, err := request.Pack(request.Signer)
	if nil != err {
		return nil, err
	}
	signer := request.Signer

	if uint64(now.Unix()) > request.Deadline {
		a.log.Infof("expired request from: %s  deadline: %d", signer, request.Deadline)
		return nil, fault.ErrExpiredRequest
	}

	// strict equality against the signer's own counter
	current := a.nonces.Current(signer)
	if request.Nonce != current {
		a.log.Infof("nonce mismatch for: %s  request: %d  current: %d", signer, request.Nonce, current)
		return nil, fault.ErrNonceMismatch
	}

	a.nonces.Advance(signer)

	a.log.Debugf("meta request from: %s  submitted by: %s", signer, executor)
	return signer, nil
}
