// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/anchor"
	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/messagebus"
	"github.com/canon-registry/canond/mode"
	"github.com/canon-registry/canond/receipt"
)

// Node - type for the RPC
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  *anchor.Engine
	Token   *receipt.Token
	version string
	start   time.Time
}

// NodeArguments - empty arguments
type NodeArguments struct{}

// NodeInfoReply - daemon status
type NodeInfoReply struct {
	Chain              string `json:"chain"`
	Mode               string `json:"mode"`
	Version            string `json:"version"`
	Uptime             string `json:"uptime"`
	Paused             bool   `json:"paused"`
	BaseFee            uint64 `json:"baseFee"`
	TotalAnchors       uint64 `json:"totalAnchors"`
	TotalFeesCollected uint64 `json:"totalFeesCollected"`
	ActiveSupply       uint64 `json:"activeSupply"`
	DroppedMessages    uint64 `json:"droppedMessages"`
	Connections        uint64 `json:"connections"`
}

// Info - return daemon totals and state
func (node *Node) Info(arguments *NodeArguments, reply *NodeInfoReply) error {

	if err := rateLimit(node.Limiter); nil != err {
		return err
	}

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.Version = node.version
	reply.Uptime = time.Since(node.start).String()
	reply.Paused = node.Engine.IsPaused()
	reply.BaseFee = node.Engine.BaseFee()
	reply.TotalAnchors = node.Engine.TotalAnchors()
	reply.TotalFeesCollected = node.Engine.TotalFeesCollected()
	reply.ActiveSupply = node.Token.ActiveSupply()
	reply.DroppedMessages = messagebus.Dropped()
	reply.Connections = connectionCount.Uint64()
	return nil
}

// NodePauseArguments - admin account for the pause switch
type NodePauseArguments struct {
	Admin *account.Account `json:"admin"`
}

// NodePauseReply - resulting pause state
type NodePauseReply struct {
	Paused bool `json:"paused"`
}

// Pause - stop accepting anchors
func (node *Node) Pause(arguments *NodePauseArguments, reply *NodePauseReply) error {

	if err := rateLimit(node.Limiter); nil != err {
		return err
	}

	node.Log.Warnf("Node.Pause: %+v", arguments)

	if nil == arguments.Admin {
		return fault.ErrMissingParameters
	}

	if err := node.Engine.Pause(arguments.Admin); nil != err {
		return err
	}
	reply.Paused = true
	return nil
}

// Unpause - resume accepting anchors
func (node *Node) Unpause(arguments *NodePauseArguments, reply *NodePauseReply) error {

	if err := rateLimit(node.Limiter); nil != err {
		return err
	}

	node.Log.Warnf("Node.Unpause: %+v", arguments)

	if nil == arguments.Admin {
		return fault.ErrMissingParameters
	}

	if err := node.Engine.Unpause(arguments.Admin); nil != err {
		return err
	}
	reply.Paused = false
	return nil
}
