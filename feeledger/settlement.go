// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feeledger

import (
	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/storage"
)

// key prefix separating settled payouts from pending balances in the
// shared balances pool
var settledPrefix = []byte("settled:")

// BookTransferor - settlement by book entry
//
// payouts accumulate against the recipient's account; an external
// settlement process reads these records and clears them out of band
type BookTransferor struct {
	pool *storage.PoolHandle
}

// NewBookTransferor - create a book entry transferor over the
// balances pool
func NewBookTransferor(pool *storage.PoolHandle) *BookTransferor {
	return &BookTransferor{pool: pool}
}

// Transfer - credit the recipient's settled total
func (b *BookTransferor) Transfer(to *account.Account, amount uint64) error {
	key := append(append([]byte{}, settledPrefix...), to.Bytes()...)
	current, _ := b.pool.GetN(key)
	b.pool.PutN(key, current+amount)
	return nil
}

// Settled - total paid out to an account so far
func (b *BookTransferor) Settled(to *account.Account) uint64 {
	key := append(append([]byte{}, settledPrefix...), to.Bytes()...)
	value, _ := b.pool.GetN(key)
	return value
}
