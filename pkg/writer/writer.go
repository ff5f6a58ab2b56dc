// Writer boundary of the G-code builder
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package writer delivers formatted G-code statements to their
// destination: a file, a TCP socket, a serial port or a websocket.
// Writers connect lazily on first write and report every failure to
// the caller; retry policy belongs to the caller, not here.
package writer

// Writer delivers G-code statements to an output destination
type Writer interface {
	// Connect establishes the connection to the destination
	Connect() error

	// Disconnect closes the connection. When wait is true, pending
	// operations complete before the connection is torn down.
	Disconnect(wait bool) error

	// Write delivers one statement. When requiresResponse is true
	// the device's reply is read and returned.
	Write(data []byte, requiresResponse bool) (string, error)
}
