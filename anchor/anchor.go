// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package anchor - the anchoring engine
//
// ties together authorization, the digest registry, the fee ledger and
// the audit log; every anchor runs verify, mutate, pay, emit in that
// order under one lock so no partially applied anchor is ever visible
package anchor

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/anchorrecord"
	"github.com/canon-registry/canond/audit"
	"github.com/canon-registry/canond/authorize"
	"github.com/canon-registry/canond/counter"
	"github.com/canon-registry/canond/digest"
	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/feeledger"
	"github.com/canon-registry/canond/registry"
	"github.com/canon-registry/canond/storage"
)

// keys into the counters pool
var (
	totalAnchorsKey = []byte("anchor.total")
	totalFeesKey    = []byte("anchor.fees")
	pausedKey       = []byte("anchor.paused")
)

// Engine - the anchoring engine
type Engine struct {
	sync.Mutex

	log        *logger.L
	registry   *registry.Registry
	authorizer *authorize.Authorizer
	ledger     *feeledger.Ledger
	baseFee    uint64

	paused       bool
	totalAnchors counter.Counter
	totalFees    counter.Counter
}

// New - create an engine
//
// counters and the paused flag are restored from the counters pool so
// a restart resumes exactly where the daemon stopped
func New(reg *registry.Registry, authorizer *authorize.Authorizer, ledger *feeledger.Ledger, baseFee uint64) *Engine {
	e := &Engine{
		log:        logger.New("anchor"),
		registry:   reg,
		authorizer: authorizer,
		ledger:     ledger,
		baseFee:    baseFee,
	}

	if n, found := storage.Pool.Counters.GetN(totalAnchorsKey); found {
		e.totalAnchors.Set(n)
	}
	if n, found := storage.Pool.Counters.GetN(totalFeesKey); found {
		e.totalFees.Set(n)
	}
	if n, found := storage.Pool.Counters.GetN(pausedKey); found && 0 != n {
		e.paused = true
	}

	e.log.Infof("engine: anchors: %d  fees: %d  paused: %t  base fee: %d",
		e.totalAnchors.Uint64(), e.totalFees.Uint64(), e.paused, e.baseFee)
	return e
}

// Anchor - record an anchor on behalf of the caller itself
//
// the caller must hold the anchorer capability; returns the sequence
// number assigned to the anchor
func (e *Engine) Anchor(
	caller *account.Account,
	warrant digest.Digest,
	attestation digest.Digest,
	subjectTag digest.Digest,
	controllerDidHash digest.Digest,
	assurance uint8,
	payment uint64,
) (uint64, error) {
	e.Lock()
	defer e.Unlock()

	if e.paused {
		return 0, fault.ErrPaused
	}

	err := e.authorizer.VerifyDirect(caller)
	if nil != err {
		return 0, err
	}
	if assurance > anchorrecord.MaximumAssuranceLevel {
		return 0, fault.ErrInvalidAssuranceLevel
	}
	if payment < e.baseFee {
		return 0, fault.ErrInsufficientFee
	}
	err = anchorrecord.CheckDistinctDigests(warrant, attestation, subjectTag, controllerDidHash)
	if nil != err {
		return 0, err
	}

	return e.anchor(caller, nil, warrant, attestation, subjectTag, controllerDidHash, assurance, payment)
}

// AnchorMeta - record an anchor from a relayed signed request
//
// the executor submits on behalf of the request's signer, who becomes
// the anchor's principal; the request's own checks (signature, nonce,
// deadline, assurance bound, digest distinctness) are all enforced
// before any state changes
func (e *Engine) AnchorMeta(executor *account.Account, request *anchorrecord.AnchorRequest, payment uint64) (uint64, error) {
	e.Lock()
	defer e.Unlock()

	if e.paused {
		return 0, fault.ErrPaused
	}

	// fee check precedes signature verification so an underpaid
	// request does not consume the signer's nonce
	if payment < e.baseFee {
		return 0, fault.ErrInsufficientFee
	}

	principal, err := e.authorizer.VerifyMeta(request, executor, time.Now())
	if nil != err {
		return 0, err
	}

	return e.anchor(principal, executor,
		request.WarrantDigest, request.AttestationDigest,
		request.SubjectTag, request.ControllerDidHash,
		request.Assurance, payment)
}

// all checks passed: mutate, pay, emit
//
// caller holds the lock
func (e *Engine) anchor(
	principal *account.Account,
	executor *account.Account,
	warrant digest.Digest,
	attestation digest.Digest,
	subjectTag digest.Digest,
	controllerDidHash digest.Digest,
	assurance uint8,
	payment uint64,
) (uint64, error) {

	sequence := audit.NextSequence()

	e.registry.Record(warrant, sequence)
	e.registry.Record(attestation, sequence)
	e.registry.Record(subjectTag, sequence)
	e.registry.Record(controllerDidHash, sequence)

	e.ledger.Deposit(payment)

	storage.Pool.Counters.PutN(totalAnchorsKey, e.totalAnchors.Increment())
	storage.Pool.Counters.PutN(totalFeesKey, e.totalFees.Add(payment))

	audit.Append("anchor", sequence, audit.KindAnchored, &audit.AnchoredEvent{
		Sequence:          sequence,
		WarrantDigest:     warrant,
		AttestationDigest: attestation,
		SubjectTag:        subjectTag,
		ControllerDidHash: controllerDidHash,
		Principal:         principal,
		Executor:          executor,
		Assurance:         assurance,
		Fee:               payment,
		Timestamp:         uint64(time.Now().Unix()),
	})

	e.log.Infof("anchor: %d  principal: %s  warrant: %v  fee: %d", sequence, principal, warrant, payment)
	return sequence, nil
}

// Pause - stop accepting anchors
func (e *Engine) Pause(admin *account.Account) error {
	return e.setPaused(admin, true)
}

// Unpause - resume accepting anchors
func (e *Engine) Unpause(admin *account.Account) error {
	return e.setPaused(admin, false)
}

func (e *Engine) setPaused(admin *account.Account, paused bool) error {
	e.Lock()
	defer e.Unlock()

	err := e.authorizer.VerifyAdmin(admin)
	if nil != err {
		return err
	}

	e.paused = paused
	flag := uint64(0)
	if paused {
		flag = 1
	}
	storage.Pool.Counters.PutN(pausedKey, flag)

	e.log.Warnf("paused: %t  by: %s", paused, admin)
	return nil
}

// IsPaused - true while anchoring is suspended
func (e *Engine) IsPaused() bool {
	e.Lock()
	defer e.Unlock()
	return e.paused
}

// TotalAnchors - lifetime count of successful anchors
func (e *Engine) TotalAnchors() uint64 {
	return e.totalAnchors.Uint64()
}

// TotalFeesCollected - lifetime sum of anchor fees
func (e *Engine) TotalFeesCollected() uint64 {
	return e.totalFees.Uint64()
}

// BaseFee - the minimum payment per anchor
func (e *Engine) BaseFee() uint64 {
	return e.baseFee
}
