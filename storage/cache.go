// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - expiring view of recent writes
type Cache interface {
	Get(string) ([]byte, bool)
	Set(dbOperation, string, []byte)
	Clear()
}

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

const (
	defaultExpiration = 2 * time.Minute
	defaultCleanup    = 1 * time.Minute
)

type dbCache struct {
	cache *cache.Cache
}

func newCache() Cache {
	return &dbCache{
		cache: cache.New(defaultExpiration, defaultCleanup),
	}
}

func (c *dbCache) Get(key string) ([]byte, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return []byte{}, false
	}

	data := obj.(cacheData)
	// a cached delete reads as not found
	if dbDelete == data.op {
		return []byte{}, false
	}

	return data.value, true
}

func (c *dbCache) Set(op dbOperation, key string, value []byte) {
	c.cache.Set(key, cacheData{op: op, value: value}, cache.DefaultExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}

type cacheData struct {
	op    dbOperation
	value []byte
}
