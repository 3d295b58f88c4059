// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/authorize"
	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/feeledger"
	"github.com/canon-registry/canond/mode"
)

// Ledger - type for the RPC
type Ledger struct {
	Log        *logger.L
	Limiter    *rate.Limiter
	Ledger     *feeledger.Ledger
	Authorizer *authorize.Authorizer
}

// LedgerWithdrawArguments - claim a pending balance
//
// the funds always go to the named principal, so any caller may
// trigger the payout
type LedgerWithdrawArguments struct {
	Principal *account.Account `json:"principal"`
}

// LedgerWithdrawReply - amount paid out
type LedgerWithdrawReply struct {
	Amount uint64 `json:"amount"`
}

// Withdraw - pay out a principal's entire pending balance
func (ledger *Ledger) Withdraw(arguments *LedgerWithdrawArguments, reply *LedgerWithdrawReply) error {

	if err := rateLimit(ledger.Limiter); nil != err {
		return err
	}

	log := ledger.Log
	log.Infof("Ledger.Withdraw: %+v", arguments)

	if mode.IsNot(mode.Normal) {
		return fault.ErrNotAvailable
	}

	if nil == arguments.Principal {
		return fault.ErrMissingParameters
	}

	amount, err := ledger.Ledger.Withdraw(arguments.Principal)
	if nil != err {
		return err
	}

	reply.Amount = amount
	return nil
}

// LedgerEmergencyWithdrawArguments - sweep the undistributed pot
type LedgerEmergencyWithdrawArguments struct {
	Admin *account.Account `json:"admin"`
}

// EmergencyWithdraw - drain the undistributed pot to an admin account
func (ledger *Ledger) EmergencyWithdraw(arguments *LedgerEmergencyWithdrawArguments, reply *LedgerWithdrawReply) error {

	if err := rateLimit(ledger.Limiter); nil != err {
		return err
	}

	log := ledger.Log
	log.Warnf("Ledger.EmergencyWithdraw: %+v", arguments)

	if mode.IsNot(mode.Normal) {
		return fault.ErrNotAvailable
	}

	if nil == arguments.Admin {
		return fault.ErrMissingParameters
	}

	if err := ledger.Authorizer.VerifyAdmin(arguments.Admin); nil != err {
		return err
	}

	amount, err := ledger.Ledger.EmergencySweep(arguments.Admin)
	if nil != err {
		return err
	}

	reply.Amount = amount
	return nil
}

// LedgerPendingArguments - query a pending balance
type LedgerPendingArguments struct {
	Principal *account.Account `json:"principal"`
}

// LedgerPendingReply - balance and lifetime totals
type LedgerPendingReply struct {
	Pending        uint64 `json:"pending"`
	TotalDeposited uint64 `json:"totalDeposited"`
	TotalWithdrawn uint64 `json:"totalWithdrawn"`
}

// Pending - read a principal's uncollected balance
func (ledger *Ledger) Pending(arguments *LedgerPendingArguments, reply *LedgerPendingReply) error {

	if err := rateLimit(ledger.Limiter); nil != err {
		return err
	}

	if nil == arguments.Principal {
		return fault.ErrMissingParameters
	}

	reply.Pending = ledger.Ledger.Pending(arguments.Principal)
	reply.TotalDeposited = ledger.Ledger.TotalDeposited()
	reply.TotalWithdrawn = ledger.Ledger.TotalWithdrawn()
	return nil
}
