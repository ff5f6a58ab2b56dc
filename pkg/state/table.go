// Mapping from modal settings to G-code instructions
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package state

import "gscrib/pkg/errors"

// Entry pairs a G-code instruction with a short description that is
// emitted as an inline comment
type Entry struct {
	Instruction string
	Description string
}

// Table is an immutable mapping from modal setting values to G-code
// instructions. It is constructed once and shared by reference; the
// lookup surface is read-only.
type Table struct {
	entries map[interface{}]Entry
}

// NewTable creates a table from a mapping of setting values to
// entries. The mapping is copied, so later changes to the argument
// do not affect the table.
func NewTable(entries map[interface{}]Entry) *Table {
	copied := make(map[interface{}]Entry, len(entries))
	for key, entry := range entries {
		copied[key] = entry
	}
	return &Table{entries: copied}
}

// Get looks up the instruction for a modal setting value
func (t *Table) Get(value interface{}) (Entry, error) {
	entry, ok := t.entries[value]
	if !ok {
		return Entry{}, errors.Validation("no G-code mapping for '%v'", value)
	}
	return entry, nil
}

// DefaultTable returns the built-in mapping used by standard G-code
// dialects
func DefaultTable() *Table {
	return NewTable(map[interface{}]Entry{
		// Length units
		Inches:      {"G20", "Set length units, inches"},
		Millimeters: {"G21", "Set length units, millimeters"},

		// Distance modes
		Absolute: {"G90", "Set distance mode, absolute"},
		Relative: {"G91", "Set distance mode, relative"},

		// Extrusion modes
		ExtrusionAbsolute: {"M82", "Set extrusion mode, absolute"},
		ExtrusionRelative: {"M83", "Set extrusion mode, relative"},

		// Feed rate modes
		InverseTime:        {"G93", "Set feed rate mode, inverse time"},
		UnitsPerMinute:     {"G94", "Set feed rate mode, units per minute"},
		UnitsPerRevolution: {"G95", "Set feed rate mode, units per revolution"},

		// Tool control
		SpinClockwise: {"M03", "Start tool, clockwise"},
		SpinCounter:   {"M04", "Start tool, counterclockwise"},
		SpinOff:       {"M05", "Stop tool"},

		// Powered tool control
		PowerConstant: {"M03", "Turn on tool, constant power"},
		PowerDynamic:  {"M04", "Turn on tool, dynamic power"},
		PowerOff:      {"M05", "Turn off tool"},

		// Tool swap modes
		RackAutomatic: {"M06", "Tool change, automatic"},
		RackManual:    {"M06", "Tool change, manual"},

		// Coolant control
		CoolantMist:  {"M07", "Turn on coolant, mist"},
		CoolantFlood: {"M08", "Turn on coolant, flood"},
		CoolantOff:   {"M09", "Turn off coolant"},

		// Fan control
		FanOn:  {"M106", "Set fan speed"},
		FanOff: {"M106", "Turn off fan"},

		// Temperature control
		BedTemperature:    {"M140", "Set bed temperature"},
		HotendTemperature: {"M104", "Set hotend temperature"},

		// Coordinate system adjustment
		OffsetPositioning: {"G92", "Set current axis position"},

		// Plane selection
		PlaneXY: {"G17", "Select plane, XY"},
		PlaneYZ: {"G19", "Select plane, YZ"},
		PlaneZX: {"G18", "Select plane, ZX"},

		// Dwell
		Seconds:      {"G04", "Sleep for a while, seconds"},
		Milliseconds: {"G04", "Sleep for a while, milliseconds"},

		// Halt modes
		HaltPause:           {"M00", "Pause program, forced"},
		HaltOptionalPause:   {"M01", "Pause program, optional"},
		HaltEndWithoutReset: {"M02", "End of program, no reset"},
		HaltEndWithReset:    {"M30", "End of program, stop and reset"},
		HaltPalletExchange:  {"M60", "Exchange pallet and end program"},
	})
}
