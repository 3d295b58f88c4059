// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package feeledger - protocol fee accounting
//
// incoming anchor fees are split between two treasuries and credited
// as pending balances; treasuries pull their funds through Withdraw.
// splitting a deposit and handing funds over are two independent,
// individually locked operations so no transfer ever runs inside a
// half-finished ledger mutation
package feeledger

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/audit"
	"github.com/canon-registry/canond/counter"
	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/storage"
)

// the foundation's share of every fee is 1/13, the implementer takes
// the remainder so the two shares always sum exactly to the fee
const foundationDivisor = 13

// durable counter keys
var (
	depositedKey = []byte("fee.deposited")
	withdrawnKey = []byte("fee.withdrawn")
)

// Transferor - the external value-movement step
//
// implementations hand an amount to a principal outside the ledger;
// a rejected transfer returns an error and moves nothing
type Transferor interface {
	Transfer(to *account.Account, amount uint64) error
}

// Ledger - pending balances for the two treasuries
type Ledger struct {
	sync.Mutex
	log         *logger.L
	pool        *storage.PoolHandle
	foundation  *account.Account
	implementer *account.Account
	transferor  Transferor

	totalDeposited counter.Counter
	totalWithdrawn counter.Counter
}

// New - create a ledger over the balances pool
func New(pool *storage.PoolHandle, foundation *account.Account, implementer *account.Account, transferor Transferor) *Ledger {
	l := &Ledger{
		log:         logger.New("feeledger"),
		pool:        pool,
		foundation:  foundation,
		implementer: implementer,
		transferor:  transferor,
	}

	deposited, _ := storage.Pool.Counters.GetN(depositedKey)
	withdrawn, _ := storage.Pool.Counters.GetN(withdrawnKey)
	l.totalDeposited.Set(deposited)
	l.totalWithdrawn.Set(withdrawn)

	return l
}

// Split - the fee split rule
//
// foundationShare + implementerShare == amount for every amount
func Split(amount uint64) (foundationShare uint64, implementerShare uint64) {
	foundationShare = amount / foundationDivisor
	implementerShare = amount - foundationShare
	return
}

// Deposit - split a fee and credit the treasuries
//
// called exactly once per successful anchor, after the registry
// write
func (l *Ledger) Deposit(amount uint64) {
	l.Lock()
	defer l.Unlock()

	foundationShare, implementerShare := Split(amount)

	l.credit(l.foundation, foundationShare)
	l.credit(l.implementer, implementerShare)

	storage.Pool.Counters.PutN(depositedKey, l.totalDeposited.Add(amount))

	l.log.Debugf("deposit: %d → foundation: %d  implementer: %d", amount, foundationShare, implementerShare)
}

// Pending - a principal's uncollected balance
func (l *Ledger) Pending(principal *account.Account) uint64 {
	value, _ := l.pool.GetN(principal.Bytes())
	return value
}

// Withdraw - pull payment of a principal's entire pending balance
//
// the balance is zeroed before the transfer runs; if the transfer is
// rejected the balance is restored so the funds stay claimable - the
// two outcomes are exactly "paid and zero" or "unpaid and intact"
func (l *Ledger) Withdraw(principal *account.Account) (uint64, error) {
	l.Lock()
	defer l.Unlock()

	key := principal.Bytes()
	amount, _ := l.pool.GetN(key)
	if 0 == amount {
		return 0, fault.ErrNoBalance
	}

	// zero first, transfer second
	l.pool.Delete(key)

	err := l.transferor.Transfer(principal, amount)
	if nil != err {
		l.pool.PutN(key, amount)
		l.log.Errorf("withdraw transfer failed for: %s  amount: %d  error: %v", principal, amount, err)
		return 0, fault.ErrTransferFailed
	}

	storage.Pool.Counters.PutN(withdrawnKey, l.totalWithdrawn.Add(amount))

	sequence := audit.NextSequence()
	audit.Append("feeledger", sequence, audit.KindWithdrawn, &audit.WithdrawnEvent{
		Sequence:  sequence,
		Principal: principal,
		Amount:    amount,
		Timestamp: uint64(time.Now().Unix()),
	})

	l.log.Infof("withdraw: %s  amount: %d", principal, amount)
	return amount, nil
}

// EmergencySweep - transfer the whole undistributed pot to an admin
//
// the pot is everything deposited and not yet paid out, the
// treasuries' pending balances included: this is the circuit-breaker
// path.  the drained balances are cleared in the same locked section
// so swept funds can never be withdrawn again
func (l *Ledger) EmergencySweep(admin *account.Account) (uint64, error) {
	l.Lock()
	defer l.Unlock()

	deposited := l.totalDeposited.Uint64()
	withdrawn := l.totalWithdrawn.Uint64()
	if withdrawn >= deposited {
		return 0, fault.ErrNoBalance
	}
	amount := deposited - withdrawn

	err := l.transferor.Transfer(admin, amount)
	if nil != err {
		l.log.Errorf("sweep transfer failed for: %s  amount: %d  error: %v", admin, amount, err)
		return 0, fault.ErrTransferFailed
	}

	// the swept pot contained the pending balances
	l.pool.Delete(l.foundation.Bytes())
	l.pool.Delete(l.implementer.Bytes())

	storage.Pool.Counters.PutN(withdrawnKey, l.totalWithdrawn.Add(amount))

	sequence := audit.NextSequence()
	audit.Append("feeledger", sequence, audit.KindSwept, &audit.SweptEvent{
		Sequence:  sequence,
		Admin:     admin,
		Amount:    amount,
		Timestamp: uint64(time.Now().Unix()),
	})

	l.log.Warnf("emergency sweep: %s  amount: %d", admin, amount)
	return amount, nil
}

// TotalDeposited - lifetime fees taken in
func (l *Ledger) TotalDeposited() uint64 {
	return l.totalDeposited.Uint64()
}

// TotalWithdrawn - lifetime fees paid out
func (l *Ledger) TotalWithdrawn() uint64 {
	return l.totalWithdrawn.Uint64()
}

// add to a balance, zero credits store nothing
func (l *Ledger) credit(principal *account.Account, amount uint64) {
	if 0 == amount {
		return
	}
	key := principal.Bytes()
	value, _ := l.pool.GetN(key)
	l.pool.PutN(key, value+amount)
}
