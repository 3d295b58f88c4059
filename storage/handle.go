// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// PoolHandle - a prefix-scoped view of the database
type PoolHandle struct {
	prefix byte
	limit  []byte
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
func (p *PoolHandle) Put(key []byte, value []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		logger.Panic("pool.Put nil database")
		return
	}
	prefixedKey := p.prefixKey(key)
	err := poolData.db.Put(prefixedKey, value, nil)
	logger.PanicIfError("pool.Put", err)
	poolData.cache.Set(dbPut, string(prefixedKey), value)
}

// PutN - store a key/uint64 pair to the database
func (p *PoolHandle) PutN(key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	p.Put(key, buffer)
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		logger.Panic("pool.Delete nil database")
		return
	}
	prefixedKey := p.prefixKey(key)
	err := poolData.db.Delete(prefixedKey, nil)
	logger.PanicIfError("pool.Delete", err)
	poolData.cache.Set(dbDelete, string(prefixedKey), nil)
}

// Get - read a value for a given key
//
// this returns the actual element - copy the result if it must be preserved
func (p *PoolHandle) Get(key []byte) []byte {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return nil
	}

	prefixedKey := p.prefixKey(key)
	if value, found := poolData.cache.Get(string(prefixedKey)); found {
		return value
	}

	value, err := poolData.db.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// GetN - read a uint64 value for a given key
//
// second return value is false if the key does not exist
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, false
	}
	if 8 != len(buffer) {
		logger.Panicf("pool.GetN: %q corrupt uint64 record: %x", p.prefix, buffer)
	}
	return binary.BigEndian.Uint64(buffer), true
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return false
	}

	prefixedKey := p.prefixKey(key)
	if _, found := poolData.cache.Get(string(prefixedKey)); found {
		return true
	}

	value, err := poolData.db.Has(prefixedKey, nil)
	logger.PanicIfError("pool.Has", err)
	return value
}
