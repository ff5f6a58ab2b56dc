// Machine control commands
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package builder

import (
	"fmt"
	"strconv"

	"gscrib/pkg/errors"
	"gscrib/pkg/format"
	"gscrib/pkg/state"
)

// SelectUnits sets the unit system for subsequent commands
//
//	G20|G21
func (b *Builder) SelectUnits(units state.LengthUnits) error {
	statement, err := b.statement(units, nil, "")
	if err != nil {
		return err
	}

	b.state.SetLengthUnits(units)
	return b.Write(statement)
}

// SelectPlane selects the working plane for machine operations
//
//	G17|G18|G19
func (b *Builder) SelectPlane(plane state.Plane) error {
	statement, err := b.statement(plane, nil, "")
	if err != nil {
		return err
	}

	b.state.SetPlane(plane)
	return b.Write(statement)
}

// SetExtrusionMode sets the extrusion mode for subsequent commands
//
//	M82|M83
func (b *Builder) SetExtrusionMode(mode state.ExtrusionMode) error {
	statement, err := b.statement(mode, nil, "")
	if err != nil {
		return err
	}

	b.state.SetExtrusionMode(mode)
	return b.Write(statement)
}

// SetFeedMode sets the feed rate mode for subsequent commands
//
//	G93|G94|G95
func (b *Builder) SetFeedMode(mode state.FeedMode) error {
	statement, err := b.statement(mode, nil, "")
	if err != nil {
		return err
	}

	b.state.SetFeedMode(mode)
	return b.Write(statement)
}

// SetToolPower sets the power level for the current tool. Depending
// on the machine this is a spindle speed in RPM, a laser power
// output or a similar setting.
//
//	S<power>
func (b *Builder) SetToolPower(power float64) error {
	if err := b.state.SetToolPower(power); err != nil {
		return err
	}

	params := format.NewParams().Set("S", power)
	statement, err := b.formatter.FormatParameters(params)
	if err != nil {
		return err
	}

	return b.Write(statement)
}

// SetFanSpeed sets the speed of a cooling fan. Speed zero switches
// the fan off.
//
//	M106 P<fan_number> S<speed>
func (b *Builder) SetFanSpeed(speed, fanNumber int) error {
	if fanNumber < 0 {
		return errors.Validation("invalid fan number '%d'", fanNumber)
	}

	if speed < 0 || speed > 255 {
		return errors.Validation("invalid fan speed '%d'", speed)
	}

	mode := state.FanOn
	if speed == 0 {
		mode = state.FanOff
	}

	params := format.NewParams().Set("P", fanNumber).Set("S", speed)
	statement, err := b.statement(mode, params, "")
	if err != nil {
		return err
	}

	return b.Write(statement)
}

// SetBedTemperature sets the target temperature of the bed and
// returns immediately
//
//	M140 S<temp>
func (b *Builder) SetBedTemperature(temperature float64) error {
	params := format.NewParams().Set("S", temperature)
	statement, err := b.statement(state.BedTemperature, params, "")
	if err != nil {
		return err
	}

	return b.Write(statement)
}

// SetHotendTemperature sets the target temperature of the hotend
// and returns immediately
//
//	M104 S<temp>
func (b *Builder) SetHotendTemperature(temperature float64) error {
	params := format.NewParams().Set("S", temperature)
	statement, err := b.statement(state.HotendTemperature, params, "")
	if err != nil {
		return err
	}

	return b.Write(statement)
}

// Sleep pauses program execution for the given duration. The input
// is always in seconds; the units parameter selects whether the
// dwell parameter is emitted as seconds or milliseconds, since
// controllers differ on how they read it. The minimum duration is
// one millisecond.
//
//	G4 P<seconds|milliseconds>
func (b *Builder) Sleep(units state.TimeUnits, seconds float64) error {
	if seconds < 0.001 {
		return errors.Validation("invalid sleep time '%v'", seconds)
	}

	params := format.NewParams().Set("P", units.Scale(seconds))
	statement, err := b.statement(units, params, "")
	if err != nil {
		return err
	}

	return b.Write(statement)
}

// ToolOn activates the tool with the given rotation direction and
// speed
//
//	S<speed> M3|M4
func (b *Builder) ToolOn(mode state.SpinMode, speed float64) error {
	if mode == state.SpinOff {
		return errors.Validation("not a valid spin mode")
	}

	if err := b.state.SetSpinMode(mode, speed); err != nil {
		return err
	}

	return b.writeActivation(mode, speed)
}

// ToolOff deactivates the current tool
//
//	M5
func (b *Builder) ToolOff() error {
	if err := b.state.SetSpinMode(state.SpinOff, 0); err != nil {
		return err
	}

	statement, err := b.statement(state.SpinOff, nil, "")
	if err != nil {
		return err
	}

	return b.Write(statement)
}

// PowerOn activates the tool with the given power mode and level.
// Used for tools controlled by output power rather than rotation,
// such as lasers.
//
//	S<power> M3|M4
func (b *Builder) PowerOn(mode state.PowerMode, power float64) error {
	if mode == state.PowerOff {
		return errors.Validation("not a valid power mode")
	}

	if err := b.state.SetPowerMode(mode, power); err != nil {
		return err
	}

	return b.writeActivation(mode, power)
}

// PowerOff powers off the current tool
//
//	M5
func (b *Builder) PowerOff() error {
	if err := b.state.SetPowerMode(state.PowerOff, 0); err != nil {
		return err
	}

	statement, err := b.statement(state.PowerOff, nil, "")
	if err != nil {
		return err
	}

	return b.Write(statement)
}

// ToolChange executes a tool change operation. The tool and coolant
// must be inactive before a change can proceed.
//
//	T<tool_number> M6
func (b *Builder) ToolChange(mode state.RackMode, toolNumber int) error {
	if err := b.state.SetToolNumber(mode, toolNumber); err != nil {
		return err
	}

	changeStatement, err := b.statement(mode, nil, "")
	if err != nil {
		return err
	}

	digits := toolNumberDigits(toolNumber)
	statement := fmt.Sprintf("T%0*d %s", digits, toolNumber, changeStatement)
	return b.Write(statement)
}

// CoolantOn activates the coolant system with the given mode
//
//	M7|M8
func (b *Builder) CoolantOn(mode state.CoolantMode) error {
	if mode == state.CoolantOff {
		return errors.Validation("not a valid coolant mode")
	}

	if err := b.state.SetCoolantMode(mode); err != nil {
		return err
	}

	statement, err := b.statement(mode, nil, "")
	if err != nil {
		return err
	}

	return b.Write(statement)
}

// CoolantOff deactivates the coolant system
//
//	M9
func (b *Builder) CoolantOff() error {
	if err := b.state.SetCoolantMode(state.CoolantOff); err != nil {
		return err
	}

	statement, err := b.statement(state.CoolantOff, nil, "")
	if err != nil {
		return err
	}

	return b.Write(statement)
}

// HaltProgram pauses or stops program execution. The tool and
// coolant must be inactive before the program can halt.
//
//	M0|M1|M2|M30|M60 [<param><value> ...]
func (b *Builder) HaltProgram(mode state.HaltMode, params *format.Params) error {
	if mode == state.HaltOff {
		return errors.Validation("not a valid halt mode")
	}

	if err := b.state.SetHaltMode(mode); err != nil {
		return err
	}

	statement, err := b.statement(mode, params, "")
	if err != nil {
		return err
	}

	return b.Write(statement)
}

// EmergencyHalt executes a full safety shutdown: tool off, coolant
// off, a comment with the emergency message, then a mandatory pause
// that cannot resume until manually cleared
//
//	M05
//	M09
//	; Emergency halt: <message>
//	M00
func (b *Builder) EmergencyHalt(message string) error {
	if err := b.ToolOff(); err != nil {
		return err
	}
	if err := b.CoolantOff(); err != nil {
		return err
	}
	if err := b.Comment("Emergency halt: " + message); err != nil {
		return err
	}

	return b.HaltProgram(state.HaltPause, nil)
}

// writeActivation emits a tool activation statement with the power
// parameter before the mode command
func (b *Builder) writeActivation(mode interface{}, power float64) error {
	params := format.NewParams().Set("S", power)
	powerText, err := b.formatter.FormatParameters(params)
	if err != nil {
		return err
	}

	modeStatement, err := b.statement(mode, nil, "")
	if err != nil {
		return err
	}

	return b.Write(powerText + " " + modeStatement)
}

// toolNumberDigits returns the zero padding width for a tool number,
// rounded up to a power of two digits
func toolNumberDigits(toolNumber int) int {
	length := len(strconv.Itoa(toolNumber))

	digits := 1
	for digits < length {
		digits *= 2
	}

	return digits
}
