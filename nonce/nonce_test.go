// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nonce_test

import (
	"crypto/rand"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/nonce"
	"github.com/canon-registry/canond/storage"
)

const (
	testDatabase = "test-nonce.leveldb"
	testLogDir   = "test-nonce-log"
)

func setup(t *testing.T) *nonce.Authority {
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
	return nonce.New(storage.Pool.Nonces)
}

func teardown() {
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

func TestAdvance(t *testing.T) {
	authority := setup(t)
	defer teardown()

	principal := makeAccount(t)

	if 0 != authority.Current(principal) {
		t.Errorf("unseen principal nonce: %d  expected: 0", authority.Current(principal))
	}

	if 1 != authority.Advance(principal) {
		t.Error("first advance did not return 1")
	}
	if 1 != authority.Current(principal) {
		t.Errorf("nonce: %d  expected: 1", authority.Current(principal))
	}

	authority.Advance(principal)
	authority.Advance(principal)
	if 3 != authority.Current(principal) {
		t.Errorf("nonce: %d  expected: 3", authority.Current(principal))
	}
}

// advancing one principal must never move another's counter
func TestPerPrincipalIsolation(t *testing.T) {
	authority := setup(t)
	defer teardown()

	signer := makeAccount(t)
	executor := makeAccount(t)

	authority.Advance(signer)
	authority.Advance(signer)

	if 2 != authority.Current(signer) {
		t.Errorf("signer nonce: %d  expected: 2", authority.Current(signer))
	}
	if 0 != authority.Current(executor) {
		t.Errorf("executor nonce: %d  expected: 0", authority.Current(executor))
	}
}
