// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package receipt

import (
	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/digest"
	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/util"
)

// stored value of a live token
//
// format: contentHash ‖ varint owner length ‖ owner ‖
//         varint minter length ‖ minter ‖ varint mintedAt
type tokenRecord struct {
	contentHash digest.Digest
	owner       *account.Account
	minter      *account.Account
	mintedAt    uint64
}

func (record *tokenRecord) pack() []byte {
	buffer := make([]byte, 0, 128)
	buffer = append(buffer, record.contentHash[:]...)
	buffer = appendAccount(buffer, record.owner)
	buffer = appendAccount(buffer, record.minter)
	buffer = append(buffer, util.ToVarint64(record.mintedAt)...)
	return buffer
}

func unpackTokenRecord(buffer []byte) (*tokenRecord, error) {
	record := &tokenRecord{}

	if len(buffer) <= digest.Length {
		return nil, fault.ErrInvalidRecord
	}
	copy(record.contentHash[:], buffer[:digest.Length])
	buffer = buffer[digest.Length:]

	owner, buffer, err := nextAccount(buffer)
	if nil != err {
		return nil, err
	}
	record.owner = owner

	minter, buffer, err := nextAccount(buffer)
	if nil != err {
		return nil, err
	}
	record.minter = minter

	mintedAt, count := util.FromVarint64(buffer)
	if 0 == count {
		return nil, fault.ErrInvalidRecord
	}
	record.mintedAt = mintedAt

	return record, nil
}

func appendAccount(buffer []byte, acc *account.Account) []byte {
	data := acc.Bytes()
	buffer = append(buffer, util.ToVarint64(uint64(len(data)))...)
	return append(buffer, data...)
}

func nextAccount(buffer []byte) (*account.Account, []byte, error) {
	length, count := util.FromVarint64(buffer)
	if 0 == count || uint64(len(buffer)-count) < length {
		return nil, nil, fault.ErrInvalidRecord
	}
	acc, err := account.AccountFromBytes(buffer[count : uint64(count)+length])
	if nil != err {
		return nil, nil, err
	}
	return acc, buffer[uint64(count)+length:], nil
}
