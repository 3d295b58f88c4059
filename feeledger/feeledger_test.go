// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feeledger_test

import (
	"crypto/rand"
	"errors"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/audit"
	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/feeledger"
	"github.com/canon-registry/canond/storage"
)

const (
	testDatabase = "test-feeledger.leveldb"
	testLogDir   = "test-feeledger-log"
)

// records transfers and optionally rejects them
type testTransferor struct {
	rejectNext bool
	received   map[string]uint64
}

func newTestTransferor() *testTransferor {
	return &testTransferor{received: make(map[string]uint64)}
}

func (tr *testTransferor) Transfer(to *account.Account, amount uint64) error {
	if tr.rejectNext {
		tr.rejectNext = false
		return errors.New("recipient rejected transfer")
	}
	tr.received[to.String()] += amount
	return nil
}

type fixture struct {
	ledger      *feeledger.Ledger
	transferor  *testTransferor
	foundation  *account.Account
	implementer *account.Account
	admin       *account.Account
}

func setup(t *testing.T) *fixture {
	os.RemoveAll(testDatabase)
	_ = os.Mkdir(testLogDir, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: testLogDir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	err := storage.Initialise(testDatabase)
	if nil != err {
		t.Fatalf("storage initialise error: %v", err)
	}
	err = audit.Initialise()
	if nil != err {
		t.Fatalf("audit initialise error: %v", err)
	}

	f := &fixture{transferor: newTestTransferor()}
	f.foundation = makeAccount(t)
	f.implementer = makeAccount(t)
	f.admin = makeAccount(t)
	f.ledger = feeledger.New(storage.Pool.Balances, f.foundation, f.implementer, f.transferor)
	return f
}

func teardown() {
	audit.Finalise()
	storage.Finalise()
	logger.Finalise()
	os.RemoveAll(testDatabase)
	os.RemoveAll(testLogDir)
}

func makeAccount(t *testing.T) *account.Account {
	acc, _, err := account.NewAccount(true, rand.Reader)
	if nil != err {
		t.Fatalf("generate account error: %v", err)
	}
	return acc
}

// the two shares must always sum exactly to the amount
func TestSplitExactness(t *testing.T) {

	testList := []uint64{
		0, 1, 12, 13, 14, 25, 26, 100, 999,
		1000000000000000000, // 1e18
		^uint64(0) / 2,
	}

	for _, amount := range testList {
		foundationShare, implementerShare := feeledger.Split(amount)
		assert.Equal(t, amount, foundationShare+implementerShare, "rounding leakage for %d", amount)
		assert.Equal(t, amount/13, foundationShare, "wrong foundation share for %d", amount)
	}
}

func TestDeposit(t *testing.T) {
	f := setup(t)
	defer teardown()

	fee := uint64(1000000) // 0.001 in micro units

	f.ledger.Deposit(fee)

	assert.Equal(t, fee/13, f.ledger.Pending(f.foundation), "foundation balance")
	assert.Equal(t, fee-fee/13, f.ledger.Pending(f.implementer), "implementer balance")
	assert.Equal(t, fee, f.ledger.TotalDeposited(), "total deposited")

	f.ledger.Deposit(fee)

	assert.Equal(t, 2*(fee/13), f.ledger.Pending(f.foundation), "foundation balance after second deposit")
	assert.Equal(t, 2*fee, f.ledger.TotalDeposited(), "total deposited after second deposit")
}

func TestWithdraw(t *testing.T) {
	f := setup(t)
	defer teardown()

	f.ledger.Deposit(1300)

	amount, err := f.ledger.Withdraw(f.foundation)
	assert.NoError(t, err, "withdraw")
	assert.Equal(t, uint64(100), amount, "withdrawn amount")
	assert.Equal(t, uint64(100), f.transferor.received[f.foundation.String()], "transferred amount")
	assert.Equal(t, uint64(0), f.ledger.Pending(f.foundation), "balance after withdraw")

	// drained balance cannot be withdrawn again
	_, err = f.ledger.Withdraw(f.foundation)
	assert.Equal(t, fault.ErrNoBalance, err, "double withdraw")
}

func TestWithdrawNoBalance(t *testing.T) {
	f := setup(t)
	defer teardown()

	_, err := f.ledger.Withdraw(f.foundation)
	assert.Equal(t, fault.ErrNoBalance, err, "withdraw with no balance")
}

// a rejected transfer restores the balance so funds are never lost,
// and a retry can succeed
func TestWithdrawTransferFailure(t *testing.T) {
	f := setup(t)
	defer teardown()

	f.ledger.Deposit(1300)

	f.transferor.rejectNext = true
	_, err := f.ledger.Withdraw(f.implementer)
	assert.Equal(t, fault.ErrTransferFailed, err, "rejected withdraw")

	// balance restored, nothing transferred, nothing counted
	assert.Equal(t, uint64(1200), f.ledger.Pending(f.implementer), "balance after failed withdraw")
	assert.Equal(t, uint64(0), f.transferor.received[f.implementer.String()], "transferred after failure")
	assert.Equal(t, uint64(0), f.ledger.TotalWithdrawn(), "total withdrawn after failure")

	// retry succeeds exactly once
	amount, err := f.ledger.Withdraw(f.implementer)
	assert.NoError(t, err, "retry withdraw")
	assert.Equal(t, uint64(1200), amount, "retried amount")
	assert.Equal(t, uint64(1200), f.transferor.received[f.implementer.String()], "transferred after retry")

	_, err = f.ledger.Withdraw(f.implementer)
	assert.Equal(t, fault.ErrNoBalance, err, "withdraw after retry")
}

// pending + withdrawn never exceeds deposited, through any sequence
func TestAccountingInvariant(t *testing.T) {
	f := setup(t)
	defer teardown()

	check := func(context string) {
		pending := f.ledger.Pending(f.foundation) + f.ledger.Pending(f.implementer)
		withdrawn := f.ledger.TotalWithdrawn()
		deposited := f.ledger.TotalDeposited()
		if pending+withdrawn > deposited {
			t.Fatalf("%s: pending: %d + withdrawn: %d > deposited: %d", context, pending, withdrawn, deposited)
		}
	}

	f.ledger.Deposit(997)
	check("after deposit")

	f.transferor.rejectNext = true
	f.ledger.Withdraw(f.foundation)
	check("after failed withdraw")

	f.ledger.Withdraw(f.foundation)
	check("after retried withdraw")

	f.ledger.Deposit(13)
	check("after second deposit")

	f.ledger.Withdraw(f.implementer)
	check("after implementer withdraw")
}

func TestEmergencySweep(t *testing.T) {
	f := setup(t)
	defer teardown()

	f.ledger.Deposit(2600)

	amount, err := f.ledger.EmergencySweep(f.admin)
	assert.NoError(t, err, "sweep")
	assert.Equal(t, uint64(2600), amount, "swept amount")
	assert.Equal(t, uint64(2600), f.transferor.received[f.admin.String()], "transferred to admin")

	// an empty pot cannot be swept
	_, err = f.ledger.EmergencySweep(f.admin)
	assert.Equal(t, fault.ErrNoBalance, err, "sweep of empty pot")
}

func TestSweepTransferFailure(t *testing.T) {
	f := setup(t)
	defer teardown()

	f.ledger.Deposit(2600)

	f.transferor.rejectNext = true
	_, err := f.ledger.EmergencySweep(f.admin)
	assert.Equal(t, fault.ErrTransferFailed, err, "rejected sweep")

	// pot intact, retry succeeds
	amount, err := f.ledger.EmergencySweep(f.admin)
	assert.NoError(t, err, "retry sweep")
	assert.Equal(t, uint64(2600), amount, "retried sweep amount")
}

// swept funds must not be claimable again by withdraw or a second sweep
func TestSweepClearsPendingBalances(t *testing.T) {
	f := setup(t)
	defer teardown()

	f.ledger.Deposit(1300)

	amount, err := f.ledger.EmergencySweep(f.admin)
	assert.NoError(t, err, "sweep")
	assert.Equal(t, uint64(1300), amount, "swept amount")

	assert.Equal(t, uint64(0), f.ledger.Pending(f.foundation), "foundation balance after sweep")
	assert.Equal(t, uint64(0), f.ledger.Pending(f.implementer), "implementer balance after sweep")

	// the drained balances cannot be withdrawn
	_, err = f.ledger.Withdraw(f.foundation)
	assert.Equal(t, fault.ErrNoBalance, err, "withdraw after sweep")
	_, err = f.ledger.Withdraw(f.implementer)
	assert.Equal(t, fault.ErrNoBalance, err, "withdraw after sweep")

	// the empty pot cannot be swept and never wraps
	_, err = f.ledger.EmergencySweep(f.admin)
	assert.Equal(t, fault.ErrNoBalance, err, "second sweep")

	assert.Equal(t, uint64(1300), f.ledger.TotalDeposited(), "deposited")
	assert.Equal(t, uint64(1300), f.ledger.TotalWithdrawn(), "withdrawn")

	// fresh deposits keep working after a sweep
	f.ledger.Deposit(26)
	paid, err := f.ledger.Withdraw(f.foundation)
	assert.NoError(t, err, "withdraw after new deposit")
	assert.Equal(t, uint64(2), paid, "foundation share after new deposit")
}
