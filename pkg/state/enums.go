// Modal setting enumerations
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package state tracks the modal settings of the target machine and
// validates transitions between them.
package state

import "math"

// DistanceMode selects absolute or relative positioning
type DistanceMode string

const (
	Absolute DistanceMode = "absolute"
	Relative DistanceMode = "relative"
)

// ExtrusionMode selects absolute or relative extrusion distances
type ExtrusionMode string

const (
	ExtrusionAbsolute ExtrusionMode = "absolute"
	ExtrusionRelative ExtrusionMode = "relative"
)

// FeedMode selects how feed rate values are interpreted
type FeedMode string

const (
	InverseTime        FeedMode = "inverse-time"
	UnitsPerMinute     FeedMode = "units-per-minute"
	UnitsPerRevolution FeedMode = "units-per-revolution"
)

// SpinMode selects the rotation direction of a spinning tool
type SpinMode string

const (
	SpinOff       SpinMode = "off"
	SpinClockwise SpinMode = "cw"
	SpinCounter   SpinMode = "ccw"
)

// PowerMode selects the output mode of a powered tool such as a
// laser or plasma torch
type PowerMode string

const (
	PowerOff      PowerMode = "off"
	PowerConstant PowerMode = "constant"
	PowerDynamic  PowerMode = "dynamic"
)

// CoolantMode selects the coolant delivery system
type CoolantMode string

const (
	CoolantOff   CoolantMode = "off"
	CoolantMist  CoolantMode = "mist"
	CoolantFlood CoolantMode = "flood"
)

// RackMode selects how tool changes are performed
type RackMode string

const (
	RackOff       RackMode = "off"
	RackManual    RackMode = "manual"
	RackAutomatic RackMode = "automatic"
)

// HaltMode selects how program execution is paused or ended
type HaltMode string

const (
	HaltOff             HaltMode = "off"
	HaltPause           HaltMode = "pause"
	HaltOptionalPause   HaltMode = "optional-pause"
	HaltEndWithoutReset HaltMode = "end-without-reset"
	HaltEndWithReset    HaltMode = "end-with-reset"
	HaltPalletExchange  HaltMode = "pallet-exchange-and-end"
)

// LengthUnits selects the unit system for coordinates
type LengthUnits string

const (
	Millimeters LengthUnits = "millimeters"
	Inches      LengthUnits = "inches"
)

// TimeUnits selects how dwell durations are expressed
type TimeUnits string

const (
	Seconds      TimeUnits = "seconds"
	Milliseconds TimeUnits = "milliseconds"
)

// Scale converts a duration in seconds to this unit
func (u TimeUnits) Scale(seconds float64) float64 {
	if u == Milliseconds {
		return 1000 * seconds
	}
	return seconds
}

// PositioningMode names the coordinate system adjustments that do
// not move the head
type PositioningMode string

const (
	OffsetPositioning PositioningMode = "offset"
)

// Plane selects the working plane for circular motion
type Plane string

const (
	PlaneXY Plane = "xy"
	PlaneYZ Plane = "yz"
	PlaneZX Plane = "zx"
)

// FanMode selects whether a cooling fan is running
type FanMode string

const (
	FanOn  FanMode = "on"
	FanOff FanMode = "off"
)

// TemperatureTarget names a heated element of the machine
type TemperatureTarget string

const (
	BedTemperature    TemperatureTarget = "bed"
	HotendTemperature TemperatureTarget = "hotend"
)

// Direction selects the rotation direction of interpolated paths
type Direction string

const (
	Clockwise        Direction = "cw"
	CounterClockwise Direction = "ccw"
)

// Enforce normalizes an angular delta to match the direction: the
// delta of a clockwise arc must not be positive and the delta of a
// counter-clockwise arc must not be negative, adjusting by a full
// turn when needed.
func (d Direction) Enforce(delta float64) float64 {
	if d == Clockwise && delta > 0 {
		return delta - 2*math.Pi
	}
	if d == CounterClockwise && delta < 0 {
		return delta + 2*math.Pi
	}
	return delta
}
