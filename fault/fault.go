// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorizationError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised    = ProcessError("already initialised")
	ErrCannotDecodeAccount   = InvalidError("cannot decode account")
	ErrCannotDecodePrivate   = InvalidError("cannot decode private key")
	ErrCertificateFileExists = ExistsError("certificate file exists")
	ErrChecksumMismatch      = InvalidError("checksum mismatch")
	ErrDuplicateContentHash  = ExistsError("duplicate content hash")
	ErrExpiredRequest        = AuthorizationError("expired request")
	ErrInsufficientFee       = InvalidError("insufficient fee")
	ErrInvalidAssuranceLevel = InvalidError("invalid assurance level")
	ErrInvalidChain          = InvalidError("invalid chain")
	ErrInvalidContentHash    = InvalidError("invalid content hash")
	ErrInvalidCount          = InvalidError("invalid count")
	ErrInvalidDigest         = InvalidError("invalid digest")
	ErrInvalidIPAddress      = InvalidError("invalid IP Address")
	ErrInvalidKeyLength      = InvalidError("invalid key length")
	ErrInvalidKeyType        = InvalidError("invalid key type")
	ErrInvalidLoggerChannel  = InvalidError("invalid logger channel")
	ErrInvalidPortNumber     = InvalidError("invalid port number")
	ErrInvalidPrivateKey     = InvalidError("invalid private key")
	ErrInvalidPrivateKeyFile = InvalidError("invalid private key file")
	ErrInvalidPublicKeyFile  = InvalidError("invalid public key file")
	ErrInvalidRecord         = InvalidError("invalid record")
	ErrInvalidSignature      = AuthorizationError("invalid signature")
	ErrInvalidSigner         = InvalidError("invalid signer")
	ErrInvalidStructPointer  = InvalidError("invalid struct pointer")
	ErrKeyFileExists         = ExistsError("key file exists")
	ErrMintingDisabled       = ProcessError("minting disabled")
	ErrMissingParameters     = InvalidError("missing parameters")
	ErrNoBalance             = NotFoundError("no balance")
	ErrNonceMismatch         = AuthorizationError("nonce mismatch")
	ErrNotAValidDigest       = InvalidError("not a valid digest")
	ErrNotAvailable          = ProcessError("not available")
	ErrNotDistinctDigests    = InvalidError("digests are not distinct")
	ErrNotInitialised        = ProcessError("not initialised")
	ErrNotPublicKey          = InvalidError("not a public key")
	ErrPaused                = ProcessError("paused")
	ErrRateLimiting          = ProcessError("rate limiting")
	ErrSignatureTooLong      = InvalidError("signature too long")
	ErrTransferFailed        = ProcessError("transfer failed")
	ErrTransfersDisabled     = ProcessError("transfers disabled")
	ErrUnauthorized          = AuthorizationError("unauthorized")
	ErrUnknownToken          = NotFoundError("unknown token")
	ErrWrongNetworkAccount   = InvalidError("wrong network account")
	ErrZeroRecipient         = InvalidError("zero recipient")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorizationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }

// determine the class of an error
func IsErrAuthorization(e error) bool { _, ok := e.(AuthorizationError); return ok }
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
