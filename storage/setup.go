// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/canon-registry/canond/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Anchors    *PoolHandle `prefix:"A"`
	Nonces     *PoolHandle `prefix:"N"`
	Balances   *PoolHandle `prefix:"F"`
	Tokens     *PoolHandle `prefix:"T"`
	TokenIndex *PoolHandle `prefix:"X"`
	Events     *PoolHandle `prefix:"E"`
	Counters   *PoolHandle `prefix:"C"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// holds the database handle
var poolData struct {
	sync.RWMutex
	db    *leveldb.DB
	cache Cache
}

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		return fault.ErrAlreadyInitialised
	}

	db, err := leveldb.OpenFile(database, nil)
	if nil != err {
		return err
	}

	// ensure no database downgrade
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		version := make([]byte, 4)
		binary.BigEndian.PutUint32(version, currentDBVersion)
		err = db.Put(versionKey, version, &ldb_opt.WriteOptions{Sync: true})
		if nil != err {
			db.Close()
			return err
		}
	} else if nil != err {
		db.Close()
		return err
	} else {
		version := binary.BigEndian.Uint32(versionValue)
		if currentDBVersion != version {
			logger.Criticalf("database version: %d  current version: %d", version, currentDBVersion)
			db.Close()
			return fault.ErrNotInitialised
		}
	}

	poolData.db = db
	poolData.cache = newCache()

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			logger.Panicf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
		}
		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.db {
		return
	}
	poolData.db.Close()
	poolData.db = nil
	poolData.cache.Clear()
}
