// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package receipt - non-transferable anchor receipts
//
// one receipt per content hash; a receipt can be minted and burned but
// never transferred, and a burned token id is never reissued
package receipt

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/audit"
	"github.com/canon-registry/canond/authorize"
	"github.com/canon-registry/canond/counter"
	"github.com/canon-registry/canond/digest"
	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/storage"
)

// keys into the counters pool
var (
	mintedKey   = []byte("token.minted")
	burnedKey   = []byte("token.burned")
	highestKey  = []byte("token.highest")
	disabledKey = []byte("token.disabled")
)

// Token - the receipt token book
type Token struct {
	sync.Mutex

	log        *logger.L
	tokens     *storage.PoolHandle
	index      *storage.PoolHandle
	authorizer *authorize.Authorizer

	mintingEnabled bool
	highestId      counter.Counter
	totalMinted    counter.Counter
	totalBurned    counter.Counter
}

// New - create the token book
//
// the highest issued id and the mint/burn totals are restored from the
// counters pool; the highest id only ever grows, so burned ids stay
// retired across restarts
func New(tokens *storage.PoolHandle, index *storage.PoolHandle, authorizer *authorize.Authorizer) *Token {
	tok := &Token{
		log:            logger.New("receipt"),
		tokens:         tokens,
		index:          index,
		authorizer:     authorizer,
		mintingEnabled: true,
	}

	if n, found := storage.Pool.Counters.GetN(highestKey); found {
		tok.highestId.Set(n)
	}
	if n, found := storage.Pool.Counters.GetN(mintedKey); found {
		tok.totalMinted.Set(n)
	}
	if n, found := storage.Pool.Counters.GetN(burnedKey); found {
		tok.totalBurned.Set(n)
	}
	if n, found := storage.Pool.Counters.GetN(disabledKey); found && 0 != n {
		tok.mintingEnabled = false
	}

	tok.log.Infof("tokens: minted: %d  burned: %d  highest: %d  minting: %t",
		tok.totalMinted.Uint64(), tok.totalBurned.Uint64(),
		tok.highestId.Uint64(), tok.mintingEnabled)
	return tok
}

// Mint - issue a receipt for a content hash
//
// exactly one live receipt may exist per content hash; returns the new
// token id
func (tok *Token) Mint(to *account.Account, contentHash digest.Digest) (uint64, error) {
	tok.Lock()
	defer tok.Unlock()

	if !tok.mintingEnabled {
		return 0, fault.ErrMintingDisabled
	}
	if nil == to {
		return 0, fault.ErrZeroRecipient
	}
	if contentHash.IsZero() {
		return 0, fault.ErrInvalidContentHash
	}
	if tok.index.Has(contentHash[:]) {
		return 0, fault.ErrDuplicateContentHash
	}

	tokenId := tok.highestId.Increment()
	storage.Pool.Counters.PutN(highestKey, tokenId)

	record := tokenRecord{
		contentHash: contentHash,
		owner:       to,
		minter:      to,
		mintedAt:    uint64(time.Now().Unix()),
	}
	tok.tokens.Put(tokenKey(tokenId), record.pack())
	tok.index.PutN(contentHash[:], tokenId)
	storage.Pool.Counters.PutN(mintedKey, tok.totalMinted.Increment())

	sequence := audit.NextSequence()
	audit.Append("receipt", sequence, audit.KindMinted, &audit.MintedEvent{
		Sequence:    sequence,
		TokenId:     tokenId,
		ContentHash: contentHash,
		Owner:       to,
		Minter:      to,
		Timestamp:   record.mintedAt,
	})

	tok.log.Infof("mint: %d  owner: %s  content: %v", tokenId, to, contentHash)
	return tokenId, nil
}

// Burn - retire a receipt
//
// removes both the token record and its content hash index entry, so
// the hash becomes mintable again while the id stays retired forever
func (tok *Token) Burn(tokenId uint64) error {
	tok.Lock()
	defer tok.Unlock()

	record, err := tok.fetch(tokenId)
	if nil != err {
		return err
	}

	tok.tokens.Delete(tokenKey(tokenId))
	tok.index.Delete(record.contentHash[:])
	storage.Pool.Counters.PutN(burnedKey, tok.totalBurned.Increment())

	sequence := audit.NextSequence()
	audit.Append("receipt", sequence, audit.KindBurned, &audit.BurnedEvent{
		Sequence:    sequence,
		TokenId:     tokenId,
		ContentHash: record.contentHash,
		Timestamp:   uint64(time.Now().Unix()),
	})

	tok.log.Infof("burn: %d  content: %v", tokenId, record.contentHash)
	return nil
}

// ToggleMinting - enable or disable further minting
func (tok *Token) ToggleMinting(admin *account.Account, enabled bool) error {
	tok.Lock()
	defer tok.Unlock()

	err := tok.authorizer.VerifyAdmin(admin)
	if nil != err {
		return err
	}

	tok.mintingEnabled = enabled
	flag := uint64(0)
	if !enabled {
		flag = 1
	}
	storage.Pool.Counters.PutN(disabledKey, flag)

	tok.log.Warnf("minting: %t  by: %s", enabled, admin)
	return nil
}

// IsMinted - true if a live receipt exists for the content hash
func (tok *Token) IsMinted(contentHash digest.Digest) bool {
	return tok.index.Has(contentHash[:])
}

// TokenOf - token id of the live receipt for a content hash
func (tok *Token) TokenOf(contentHash digest.Digest) (uint64, error) {
	tokenId, found := tok.index.GetN(contentHash[:])
	if !found {
		return 0, fault.ErrUnknownToken
	}
	return tokenId, nil
}

// OwnerOf - owner of a live receipt
func (tok *Token) OwnerOf(tokenId uint64) (*account.Account, error) {
	record, err := tok.fetch(tokenId)
	if nil != err {
		return nil, err
	}
	return record.owner, nil
}

// ContentHash - content hash of a live receipt
func (tok *Token) ContentHash(tokenId uint64) (digest.Digest, error) {
	record, err := tok.fetch(tokenId)
	if nil != err {
		return digest.Digest{}, err
	}
	return record.contentHash, nil
}

// ActiveSupply - count of live receipts
func (tok *Token) ActiveSupply() uint64 {
	return tok.totalMinted.Uint64() - tok.totalBurned.Uint64()
}

// TotalMinted - lifetime count of mints
func (tok *Token) TotalMinted() uint64 {
	return tok.totalMinted.Uint64()
}

// TotalBurned - lifetime count of burns
func (tok *Token) TotalBurned() uint64 {
	return tok.totalBurned.Uint64()
}

// MintingEnabled - true while minting is allowed
func (tok *Token) MintingEnabled() bool {
	tok.Lock()
	defer tok.Unlock()
	return tok.mintingEnabled
}

func (tok *Token) fetch(tokenId uint64) (*tokenRecord, error) {
	buffer := tok.tokens.Get(tokenKey(tokenId))
	if nil == buffer {
		return nil, fault.ErrUnknownToken
	}
	record, err := unpackTokenRecord(buffer)
	if nil != err {
		tok.log.Criticalf("corrupt token record: %d  error: %v", tokenId, err)
		return nil, err
	}
	return record, nil
}

func tokenKey(tokenId uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, tokenId)
	return key
}
