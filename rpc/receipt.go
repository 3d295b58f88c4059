// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/digest"
	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/mode"
	"github.com/canon-registry/canond/receipt"
)

// Receipt - type for the RPC
type Receipt struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Token   *receipt.Token
}

// ReceiptMintArguments - mint a receipt for a content hash
type ReceiptMintArguments struct {
	Owner       *account.Account `json:"owner"`
	ContentHash digest.Digest    `json:"contentHash"`
}

// ReceiptMintReply - the issued token
type ReceiptMintReply struct {
	TokenId uint64 `json:"tokenId"`
}

// Mint - issue a receipt
func (rec *Receipt) Mint(arguments *ReceiptMintArguments, reply *ReceiptMintReply) error {

	if err := rateLimit(rec.Limiter); nil != err {
		return err
	}

	rec.Log.Infof("Receipt.Mint: %+v", arguments)

	if mode.IsNot(mode.Normal) {
		return fault.ErrNotAvailable
	}

	tokenId, err := rec.Token.Mint(arguments.Owner, arguments.ContentHash)
	if nil != err {
		return err
	}

	reply.TokenId = tokenId
	return nil
}

// ReceiptBurnArguments - retire a receipt
type ReceiptBurnArguments struct {
	TokenId uint64 `json:"tokenId"`
}

// ReceiptBurnReply - confirmation
type ReceiptBurnReply struct {
	Burned bool `json:"burned"`
}

// Burn - retire a receipt
func (rec *Receipt) Burn(arguments *ReceiptBurnArguments, reply *ReceiptBurnReply) error {

	if err := rateLimit(rec.Limiter); nil != err {
		return err
	}

	rec.Log.Infof("Receipt.Burn: %+v", arguments)

	if mode.IsNot(mode.Normal) {
		return fault.ErrNotAvailable
	}

	if err := rec.Token.Burn(arguments.TokenId); nil != err {
		return err
	}

	reply.Burned = true
	return nil
}

// ReceiptIsMintedArguments - query a content hash
type ReceiptIsMintedArguments struct {
	ContentHash digest.Digest `json:"contentHash"`
}

// ReceiptIsMintedReply - live receipt status for a content hash
type ReceiptIsMintedReply struct {
	Minted  bool   `json:"minted"`
	TokenId uint64 `json:"tokenId"`
}

// IsMinted - check whether a live receipt exists for a content hash
func (rec *Receipt) IsMinted(arguments *ReceiptIsMintedArguments, reply *ReceiptIsMintedReply) error {

	if err := rateLimit(rec.Limiter); nil != err {
		return err
	}

	reply.Minted = rec.Token.IsMinted(arguments.ContentHash)
	if reply.Minted {
		tokenId, err := rec.Token.TokenOf(arguments.ContentHash)
		if nil != err {
			return err
		}
		reply.TokenId = tokenId
	}
	return nil
}

// ReceiptContentHashArguments - query a token
type ReceiptContentHashArguments struct {
	TokenId uint64 `json:"tokenId"`
}

// ReceiptContentHashReply - the hash and owner behind a live token
type ReceiptContentHashReply struct {
	ContentHash digest.Digest    `json:"contentHash"`
	Owner       *account.Account `json:"owner"`
}

// ContentHash - look up a live token's content hash and owner
func (rec *Receipt) ContentHash(arguments *ReceiptContentHashArguments, reply *ReceiptContentHashReply) error {

	if err := rateLimit(rec.Limiter); nil != err {
		return err
	}

	contentHash, err := rec.Token.ContentHash(arguments.TokenId)
	if nil != err {
		return err
	}
	owner, err := rec.Token.OwnerOf(arguments.TokenId)
	if nil != err {
		return err
	}

	reply.ContentHash = contentHash
	reply.Owner = owner
	return nil
}

// ReceiptToggleMintingArguments - admin switch for new mints
type ReceiptToggleMintingArguments struct {
	Admin   *account.Account `json:"admin"`
	Enabled bool             `json:"enabled"`
}

// ReceiptToggleMintingReply - resulting minting state
type ReceiptToggleMintingReply struct {
	MintingEnabled bool `json:"mintingEnabled"`
}

// ToggleMinting - enable or disable new mints
func (rec *Receipt) ToggleMinting(arguments *ReceiptToggleMintingArguments, reply *ReceiptToggleMintingReply) error {

	if err := rateLimit(rec.Limiter); nil != err {
		return err
	}

	rec.Log.Warnf("Receipt.ToggleMinting: %+v", arguments)

	if mode.IsNot(mode.Normal) {
		return fault.ErrNotAvailable
	}

	if nil == arguments.Admin {
		return fault.ErrMissingParameters
	}

	if err := rec.Token.ToggleMinting(arguments.Admin, arguments.Enabled); nil != err {
		return err
	}

	reply.MintingEnabled = rec.Token.MintingEnabled()
	return nil
}

// ReceiptSupplyReply - token supply totals
type ReceiptSupplyReply struct {
	ActiveSupply   uint64 `json:"activeSupply"`
	TotalMinted    uint64 `json:"totalMinted"`
	TotalBurned    uint64 `json:"totalBurned"`
	MintingEnabled bool   `json:"mintingEnabled"`
}

// ActiveSupply - count of live receipts
func (rec *Receipt) ActiveSupply(arguments *NodeArguments, reply *ReceiptSupplyReply) error {

	if err := rateLimit(rec.Limiter); nil != err {
		return err
	}

	reply.ActiveSupply = rec.Token.ActiveSupply()
	reply.TotalMinted = rec.Token.TotalMinted()
	reply.TotalBurned = rec.Token.TotalBurned()
	reply.MintingEnabled = rec.Token.MintingEnabled()
	return nil
}

// ReceiptTransferArguments - shape of the disabled transfer call
type ReceiptTransferArguments struct {
	To      *account.Account `json:"to"`
	TokenId uint64           `json:"tokenId"`
}

// ReceiptTransferReply - never filled in
type ReceiptTransferReply struct{}

// Transfer - receipts are bound to their owner for life
//
// the method exists so callers get the stable error identifier
// instead of a method lookup failure
func (rec *Receipt) Transfer(arguments *ReceiptTransferArguments, reply *ReceiptTransferReply) error {

	if err := rateLimit(rec.Limiter); nil != err {
		return err
	}

	return fault.ErrTransfersDisabled
}
