// Default G-code formatter
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gscrib/pkg/errors"
)

const defaultDecimalPlaces = 5

// Paired comment delimiters. An opening symbol from this list gets
// its matching closing symbol appended to every comment.
var commentOpenings = []string{"(", "[", "{", "<", `"`, "'", "/*"}
var commentEndings = []string{")", "]", "}", ">", `"`, "'", "*/"}

var axisLetters = []string{"X", "Y", "Z"}

// Default is the standard G-code formatter. It trims insignificant
// zeros from numbers, relabels axes on request and brackets comments
// with the configured symbols.
type Default struct {
	labels        map[string]string
	lineEnding    string
	decimalPlaces int
	commentPrefix string
	commentSuffix string
}

// NewDefault creates a formatter with semicolon comments, newline
// line endings and five decimal places
func NewDefault() *Default {
	f := &Default{
		labels:        map[string]string{"X": "X", "Y": "Y", "Z": "Z"},
		lineEnding:    "\n",
		decimalPlaces: defaultDecimalPlaces,
	}

	// The default symbols are always valid
	_ = f.SetCommentSymbols(";")
	return f
}

// SetAxisLabel sets a custom output label for one of the X, Y or Z
// axes
func (f *Default) SetAxisLabel(axis, label string) error {
	key := strings.ToUpper(axis)

	if _, ok := f.labels[key]; !ok {
		return errors.Validation("invalid axis '%s'", axis)
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return errors.Validation("axis label cannot be empty")
	}

	f.labels[key] = strings.ToUpper(label)
	return nil
}

// SetCommentSymbols sets the symbols that open a comment. Symbols
// with a known closing pair produce bracketed comments.
func (f *Default) SetCommentSymbols(symbols string) error {
	symbols = strings.TrimSpace(symbols)
	if symbols == "" {
		return errors.Validation("comment symbols cannot be empty")
	}

	f.commentPrefix = symbols
	f.commentSuffix = ""

	for i, opening := range commentOpenings {
		if symbols == opening {
			f.commentSuffix = commentEndings[i]
			break
		}
	}

	return nil
}

// SetDecimalPlaces sets the maximum number of decimal places in
// numeric output
func (f *Default) SetDecimalPlaces(places int) error {
	if places < 0 {
		return errors.Validation("decimal places must be non-negative")
	}

	f.decimalPlaces = places
	return nil
}

// SetLineEnding sets the statement terminator. The special value
// "os" selects a plain newline.
func (f *Default) SetLineEnding(ending string) {
	if ending == "os" {
		f.lineEnding = "\n"
		return
	}

	f.lineEnding = ending
}

// FormatNumber formats a number with at most the configured decimal
// places, trimming trailing zeros. Non-finite values are rejected.
func (f *Default) FormatNumber(number float64) (string, error) {
	if number == 0 {
		return "0", nil
	}

	if math.IsInf(number, 0) || math.IsNaN(number) {
		return "", errors.Validation("number cannot be infinite or NaN")
	}

	text := strconv.FormatFloat(number, 'f', f.decimalPlaces, 64)

	if strings.Contains(text, ".") {
		text = strings.TrimRight(text, "0")
		text = strings.TrimSuffix(text, ".")
	}

	// Rounding to the configured places may collapse to zero
	if text == "-0" {
		text = "0"
	}

	return text, nil
}

// FormatLine terminates a statement with the configured line ending
func (f *Default) FormatLine(statement string) string {
	return strings.TrimRight(statement, " \t\r\n") + f.lineEnding
}

// FormatComment formats text as an inline comment
func (f *Default) FormatComment(text string) string {
	if f.commentSuffix != "" {
		return fmt.Sprintf("%s %s %s", f.commentPrefix, text, f.commentSuffix)
	}
	return fmt.Sprintf("%s %s", f.commentPrefix, text)
}

// FormatCommand formats a command with optional parameters
func (f *Default) FormatCommand(command string, params *Params) (string, error) {
	if params == nil || params.Len() == 0 {
		return command, nil
	}

	formatted, err := f.FormatParameters(params)
	if err != nil {
		return "", err
	}

	if formatted == "" {
		return command, nil
	}

	return command + " " + formatted, nil
}

// FormatParameters formats a parameter list with the axis letters
// first. Axis labels are substituted; numeric values go through
// FormatNumber and strings are emitted verbatim.
func (f *Default) FormatParameters(params *Params) (string, error) {
	var parts []string

	for _, key := range params.Keys() {
		value, _ := params.Get(key)

		label := key
		if relabeled, ok := f.labels[key]; ok && isAxis(key) {
			label = relabeled
		}

		text, err := f.formatValue(value)
		if err != nil {
			return "", err
		}

		parts = append(parts, label+text)
	}

	return strings.Join(parts, " "), nil
}

func (f *Default) formatValue(value interface{}) (string, error) {
	switch v := value.(type) {
	case float64:
		return f.FormatNumber(v)
	case float32:
		return f.FormatNumber(float64(v))
	case int:
		return f.FormatNumber(float64(v))
	case string:
		return v, nil
	}

	return "", errors.Validation("unsupported parameter value '%v'", value)
}

func isAxis(key string) bool {
	for _, axis := range axisLetters {
		if key == axis {
			return true
		}
	}
	return false
}
