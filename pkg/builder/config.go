// Builder configuration
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package builder

import (
	"io"

	"gscrib/pkg/errors"
)

// DirectWriteMode selects how statements are streamed to a machine
// in addition to any file output
type DirectWriteMode string

const (
	DirectWriteOff       DirectWriteMode = "off"
	DirectWriteSocket    DirectWriteMode = "socket"
	DirectWriteSerial    DirectWriteMode = "serial"
	DirectWriteWebSocket DirectWriteMode = "websocket"
)

// Config holds the builder settings
type Config struct {
	// Output is the path of the generated G-code file. Leave empty
	// to write to standard output.
	Output string

	// OutputStream sends the generated G-code to an existing stream
	// instead of a file. Takes precedence over Output.
	OutputStream io.Writer

	// PrintLines mirrors every statement to standard output even
	// when a file output is configured
	PrintLines bool

	// DirectWrite streams statements to a machine over a socket,
	// serial port or websocket
	DirectWrite DirectWriteMode

	// WaitForResponse waits for the device acknowledgment after
	// each statement when streaming to a machine
	WaitForResponse bool

	// Host and Port locate the machine for socket mode
	Host string
	Port int

	// Device and BaudRate configure the serial port for serial mode
	Device   string
	BaudRate int

	// URL is the websocket endpoint for websocket mode
	URL string

	// DecimalPlaces is the maximum number of decimal places in
	// numeric output
	DecimalPlaces int

	// CommentSymbols marks comments in the generated G-code
	CommentSymbols string

	// LineEnding terminates statements; "os" selects a newline
	LineEnding string

	// Custom output labels for the X, Y and Z axes
	AxisLabelX string
	AxisLabelY string
	AxisLabelZ string
}

// DefaultConfig returns the default builder settings
func DefaultConfig() Config {
	return Config{
		DirectWrite:    DirectWriteOff,
		Host:           "localhost",
		Port:           8000,
		BaudRate:       250000,
		DecimalPlaces:  5,
		CommentSymbols: ";",
		LineEnding:     "os",
		AxisLabelX:     "X",
		AxisLabelY:     "Y",
		AxisLabelZ:     "Z",
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	switch c.DirectWrite {
	case DirectWriteOff, DirectWriteSocket, DirectWriteSerial, DirectWriteWebSocket:
	default:
		return errors.Validation("invalid direct write mode '%s'", c.DirectWrite)
	}

	if c.DirectWrite == DirectWriteSocket {
		if c.Port < 1 || c.Port > 65535 {
			return errors.Validation("invalid port number '%d'", c.Port)
		}
	}

	if c.DirectWrite == DirectWriteSerial {
		if c.Device == "" {
			return errors.Validation("serial device cannot be empty")
		}
		if c.BaudRate <= 0 {
			return errors.Validation("invalid baud rate '%d'", c.BaudRate)
		}
	}

	if c.DirectWrite == DirectWriteWebSocket && c.URL == "" {
		return errors.Validation("websocket URL cannot be empty")
	}

	if c.DecimalPlaces < 0 {
		return errors.Validation("decimal places must be non-negative")
	}

	return nil
}
