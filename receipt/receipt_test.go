// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package receipt_test

import (
	"crypto/rand"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/audit"
	"github.com/canon-registry/canond/authorize"
	"github.com/canon-registry/canond/digest"
	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/nonce"
	"github.com/canon-registry/canond/receipt"
	"github.com/canon-registry/canond/storage"
)

const (
	testDatabase = "test-receipt.leveldb"
	testLogDir   = "test-receipt-log"
)

type fixture struct {
	token *receipt.Token
	owner *account.Account
	admin *account.Account
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

	f := &fixture{}
	f.owner = makeAccount(t)
	f.admin = makeAccount(t)
	f.token = newToken(f.admin)
	return f
}

func newToken(admin *account.Account) *receipt.Token {
	authorizer := authorize.New(nonce.New(storage.Pool.Nonces),
		nil,
		[]*account.Account{admin},
	)
	return receipt.New(storage.Pool.Tokens, storage.Pool.TokenIndex, authorizer)
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

func TestMint(t *testing.T) {
	f := setup(t)
	defer teardown()

	contentHash := digest.NewDigest([]byte("receipt document"))

	tokenId, err := f.token.Mint(f.owner, contentHash)
	assert.NoError(t, err, "mint")
	assert.Equal(t, uint64(1), tokenId, "first token id")

	assert.True(t, f.token.IsMinted(contentHash), "minted")
	assert.Equal(t, uint64(1), f.token.ActiveSupply(), "active supply")

	owner, err := f.token.OwnerOf(tokenId)
	assert.NoError(t, err, "owner of")
	assert.Equal(t, f.owner.String(), owner.String(), "owner")

	hash, err := f.token.ContentHash(tokenId)
	assert.NoError(t, err, "content hash of")
	assert.Equal(t, contentHash, hash, "content hash")

	indexed, err := f.token.TokenOf(contentHash)
	assert.NoError(t, err, "token of")
	assert.Equal(t, tokenId, indexed, "reverse index")
}

func TestMintChecks(t *testing.T) {
	f := setup(t)
	defer teardown()

	contentHash := digest.NewDigest([]byte("checked document"))

	_, err := f.token.Mint(nil, contentHash)
	assert.Equal(t, fault.ErrZeroRecipient, err, "nil recipient")

	var zero digest.Digest
	_, err = f.token.Mint(f.owner, zero)
	assert.Equal(t, fault.ErrInvalidContentHash, err, "zero content hash")

	_, err = f.token.Mint(f.owner, contentHash)
	assert.NoError(t, err, "first mint")

	// one live receipt per content hash
	other := makeAccount(t)
	_, err = f.token.Mint(other, contentHash)
	assert.Equal(t, fault.ErrDuplicateContentHash, err, "duplicate content hash")
}

func TestBurn(t *testing.T) {
	f := setup(t)
	defer teardown()

	contentHash := digest.NewDigest([]byte("burned document"))

	tokenId, err := f.token.Mint(f.owner, contentHash)
	assert.NoError(t, err, "mint")

	err = f.token.Burn(tokenId)
	assert.NoError(t, err, "burn")

	assert.False(t, f.token.IsMinted(contentHash), "minted after burn")
	assert.Equal(t, uint64(0), f.token.ActiveSupply(), "active supply after burn")

	_, err = f.token.OwnerOf(tokenId)
	assert.Equal(t, fault.ErrUnknownToken, err, "owner of burned token")

	err = f.token.Burn(tokenId)
	assert.Equal(t, fault.ErrUnknownToken, err, "double burn")

	err = f.token.Burn(99)
	assert.Equal(t, fault.ErrUnknownToken, err, "burn of never-minted id")
}

// burning frees the content hash for a fresh mint, but the retired
// token id is never reissued
func TestBurnThenRemint(t *testing.T) {
	f := setup(t)
	defer teardown()

	contentHash := digest.NewDigest([]byte("recycled document"))

	first, err := f.token.Mint(f.owner, contentHash)
	assert.NoError(t, err, "first mint")

	err = f.token.Burn(first)
	assert.NoError(t, err, "burn")

	second, err := f.token.Mint(f.owner, contentHash)
	assert.NoError(t, err, "second mint")
	assert.True(t, second > first, "token id reissued")

	assert.Equal(t, uint64(2), f.token.TotalMinted(), "total minted")
	assert.Equal(t, uint64(1), f.token.TotalBurned(), "total burned")
	assert.Equal(t, uint64(1), f.token.ActiveSupply(), "active supply")
}

func TestToggleMinting(t *testing.T) {
	f := setup(t)
	defer teardown()

	// only an admin may toggle
	err := f.token.ToggleMinting(f.owner, false)
	assert.Equal(t, fault.ErrUnauthorized, err, "non-admin toggle")
	assert.True(t, f.token.MintingEnabled(), "minting after rejected toggle")

	err = f.token.ToggleMinting(f.admin, false)
	assert.NoError(t, err, "admin disable")
	assert.False(t, f.token.MintingEnabled(), "minting disabled")

	_, err = f.token.Mint(f.owner, digest.NewDigest([]byte("late document")))
	assert.Equal(t, fault.ErrMintingDisabled, err, "mint while disabled")

	err = f.token.ToggleMinting(f.admin, true)
	assert.NoError(t, err, "admin enable")

	_, err = f.token.Mint(f.owner, digest.NewDigest([]byte("late document")))
	assert.NoError(t, err, "mint after enable")
}

// token ids, totals and the minting flag all survive a restart
func TestTokenRestart(t *testing.T) {
	f := setup(t)

	first, err := f.token.Mint(f.owner, digest.NewDigest([]byte("document a")))
	assert.NoError(t, err, "mint a")
	err = f.token.Burn(first)
	assert.NoError(t, err, "burn a")
	err = f.token.ToggleMinting(f.admin, false)
	assert.NoError(t, err, "disable")

	audit.Finalise()
	storage.Finalise()
	err = storage.Initialise(testDatabase)
	if nil != err {
		t.Fatalf("storage reopen error: %v", err)
	}
	err = audit.Initialise()
	if nil != err {
		t.Fatalf("audit reopen error: %v", err)
	}
	defer teardown()

	token := newToken(f.admin)

	assert.Equal(t, uint64(1), token.TotalMinted(), "total minted after restart")
	assert.Equal(t, uint64(1), token.TotalBurned(), "total burned after restart")
	assert.False(t, token.MintingEnabled(), "minting after restart")

	err = token.ToggleMinting(f.admin, true)
	assert.NoError(t, err, "enable after restart")

	// the retired id stays retired
	second, err := token.Mint(f.owner, digest.NewDigest([]byte("document b")))
	assert.NoError(t, err, "mint b")
	assert.True(t, second > first, "token id reissued after restart")
}
