// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/mr-tron/base58"
)

// ToBase58 - encode a binary buffer as Base58 text
func ToBase58(buffer []byte) string {
	return base58.Encode(buffer)
}

// FromBase58 - decode Base58 text to a binary buffer
//
// returns an empty slice if the text is not valid Base58
func FromBase58(text string) []byte {
	buffer, err := base58.Decode(text)
	if nil != err {
		return []byte{}
	}
	return buffer
}
