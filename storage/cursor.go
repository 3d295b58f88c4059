// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// FetchCursor - struct to hold the cursor for the iterator
type FetchCursor struct {
	pool    *PoolHandle
	maximum []byte
	current []byte
}

// NewFetchCursor - initialise a cursor to the start of a pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool:    p,
		maximum: p.limit,
		current: []byte{p.prefix},
	}
}

// Seek - position the cursor at a specific key
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.current = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - fetch some elements starting from the cursor
//
// the cursor advances past the fetched elements so successive calls
// page through the pool
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, nil
	}
	if count <= 0 {
		return nil, nil
	}

	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return nil, nil
	}

	searchRange := &ldb_util.Range{
		Start: cursor.current,
		Limit: cursor.maximum,
	}

	iter := poolData.db.NewIterator(searchRange, nil)
	defer iter.Release()

	results := make([]Element, 0, count)
	n := 0
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		results = append(results, Element{
			Key:   dataKey,
			Value: dataValue,
		})

		// advance past the fetched key so later appends are still seen
		cursor.current = append(append([]byte{}, key...), 0x00)

		n += 1
		if n >= count {
			break
		}
	}

	return results, iter.Error()
}
