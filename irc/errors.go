// Copyright (c) 2021 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

import "errors"

// Parse Errors
var (
	// ErrEmptyMessage indicates a line that was empty, or all whitespace.
	ErrEmptyMessage = errors.New("empty message")
	// ErrEmptyCommand indicates a line with no command token, e.g. a line
	// that was exhausted after its prefix.
	ErrEmptyCommand = errors.New("no command")
	// ErrUnexpectedEnd indicates a line that ended where more input was
	// required, e.g. a prefix with no command after it.
	ErrUnexpectedEnd = errors.New("unexpected end of line")
)

// Socket Errors
var (
	errReadQ             = errors.New("ReadQ Exceeded")
	errWriterClosed      = errors.New("write to closed connection")
	errEmbeddedNewline   = errors.New("line contains a newline")
	errConnectionStopped = errors.New("connection is down")
)

// SASL Errors
var (
	errSaslMechanism   = errors.New("unsupported SASL mechanism")
	errSaslCredentials = errors.New("missing SASL credentials")
	errSaslFail        = errors.New("SASL failed")
)
