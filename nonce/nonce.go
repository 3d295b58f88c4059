// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package nonce - per-signer monotonic counters
//
// the counter that authorises meta-transactions.  state is keyed by
// the cryptographic signer recovered from a request's signature and
// by nothing else: an executor submitting on behalf of a signer has
// its own independent counter which must never be read or written
// while processing that signer's request
package nonce

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/storage"
)

// Authority - the only holder and mutator of nonce state
type Authority struct {
	sync.Mutex
	log  *logger.L
	pool *storage.PoolHandle
}

// New - create an authority over a nonce pool
func New(pool *storage.PoolHandle) *Authority {
	return &Authority{
		log:  logger.New("nonce"),
		pool: pool,
	}
}

// Current - read a principal's nonce, zero for unseen principals
func (authority *Authority) Current(principal *account.Account) uint64 {
	value, _ := authority.pool.GetN(principal.Bytes())
	return value
}

// Advance - increment a principal's nonce, returns the new value
//
// exclusively called by the authorizer after a successful signature
// and nonce verification
func (authority *Authority) Advance(principal *account.Account) uint64 {
	authority.Lock()
	defer authority.Unlock()

	key := principal.Bytes()
	value, _ := authority.pool.GetN(key)
	value += 1
	authority.pool.PutN(key, value)

	authority.log.Debugf("advance: %s → %d", principal, value)
	return value
}
