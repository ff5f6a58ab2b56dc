// Formatter boundary of the G-code builder
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package format turns command names and parameter mappings into
// textual G-code statements. The builder core never reasons about
// numeric precision or comment syntax; it hands everything to this
// boundary.
package format

// Formatter formats commands, comments and numbers for output
type Formatter interface {
	// FormatCommand formats a command with optional parameters
	FormatCommand(command string, params *Params) (string, error)

	// FormatParameters formats a bare parameter list
	FormatParameters(params *Params) (string, error)

	// FormatComment formats text as an inline comment
	FormatComment(text string) string

	// FormatNumber formats a numeric value
	FormatNumber(number float64) (string, error)

	// FormatLine terminates a statement with the configured line
	// ending
	FormatLine(statement string) string
}
