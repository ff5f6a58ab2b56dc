// Machine state tracking and transition validation
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package state

import "gscrib/pkg/errors"

// State is a record of the modal settings of the target machine.
// Every field is mutated exclusively through a validated setter, so
// a State can never hold a combination the machine would reject.
// Setters are pure mutations with no output: after a successful
// transition the caller is responsible for emitting the matching
// command. One State instance belongs to one builder and is not safe
// for concurrent use.
type State struct {
	toolNumber    int
	toolPower     float64
	spinMode      SpinMode
	powerMode     PowerMode
	distanceMode  DistanceMode
	extrusionMode ExtrusionMode
	coolantMode   CoolantMode
	feedMode      FeedMode
	rackMode      RackMode
	haltMode      HaltMode
	lengthUnits   LengthUnits
	plane         Plane
	coolantActive bool
	toolActive    bool
}

// New creates a state record with the machine defaults: absolute
// positioning, units-per-minute feed and everything switched off
func New() *State {
	return &State{
		spinMode:      SpinOff,
		powerMode:     PowerOff,
		distanceMode:  Absolute,
		extrusionMode: ExtrusionAbsolute,
		coolantMode:   CoolantOff,
		feedMode:      UnitsPerMinute,
		rackMode:      RackOff,
		haltMode:      HaltOff,
	}
}

// IsToolActive reports whether a tool is currently spinning or
// powered
func (s *State) IsToolActive() bool { return s.toolActive }

// IsCoolantActive reports whether coolant is currently flowing
func (s *State) IsCoolantActive() bool { return s.coolantActive }

// IsRelative reports whether relative distance mode is active
func (s *State) IsRelative() bool { return s.distanceMode == Relative }

// ToolNumber returns the currently selected tool number
func (s *State) ToolNumber() int { return s.toolNumber }

// ToolPower returns the current tool power or spindle speed
func (s *State) ToolPower() float64 { return s.toolPower }

// SpinMode returns the current spin mode
func (s *State) SpinMode() SpinMode { return s.spinMode }

// PowerMode returns the current power mode
func (s *State) PowerMode() PowerMode { return s.powerMode }

// DistanceMode returns the current distance mode
func (s *State) DistanceMode() DistanceMode { return s.distanceMode }

// ExtrusionMode returns the current extrusion mode
func (s *State) ExtrusionMode() ExtrusionMode { return s.extrusionMode }

// CoolantMode returns the current coolant mode
func (s *State) CoolantMode() CoolantMode { return s.coolantMode }

// FeedMode returns the current feed rate mode
func (s *State) FeedMode() FeedMode { return s.feedMode }

// RackMode returns the current tool change mode
func (s *State) RackMode() RackMode { return s.rackMode }

// HaltMode returns the current halt mode
func (s *State) HaltMode() HaltMode { return s.haltMode }

// LengthUnits returns the current unit system
func (s *State) LengthUnits() LengthUnits { return s.lengthUnits }

// Plane returns the current working plane
func (s *State) Plane() Plane { return s.plane }

// SetLengthUnits sets the unit system for coordinates
func (s *State) SetLengthUnits(units LengthUnits) {
	s.lengthUnits = units
}

// SetPlane sets the working plane for circular motion
func (s *State) SetPlane(plane Plane) {
	s.plane = plane
}

// SetDistanceMode sets the coordinate input mode for moves
func (s *State) SetDistanceMode(mode DistanceMode) {
	s.distanceMode = mode
}

// SetExtrusionMode sets the coordinate input mode for extrusion
func (s *State) SetExtrusionMode(mode ExtrusionMode) {
	s.extrusionMode = mode
}

// SetFeedMode sets the feed rate interpretation mode
func (s *State) SetFeedMode(mode FeedMode) {
	s.feedMode = mode
}

// SetToolPower sets the power level of the current tool. Power must
// not be negative.
func (s *State) SetToolPower(power float64) error {
	if power < 0 {
		return errors.Validation("invalid tool power '%v'", power)
	}

	s.toolPower = power
	return nil
}

// SetSpinMode sets the tool spin mode and speed. Activating the
// spindle while any tool is already active is a tool state conflict;
// switching it off always succeeds and resets the power to zero.
func (s *State) SetSpinMode(mode SpinMode, speed float64) error {
	if mode != SpinOff {
		if err := s.ensureToolInactive("spindle already active"); err != nil {
			return err
		}
	}

	if err := s.SetToolPower(speed); err != nil {
		return err
	}

	s.toolActive = mode != SpinOff
	s.spinMode = mode
	return nil
}

// SetPowerMode sets the tool power mode and level. The same
// activation discipline as SetSpinMode applies: a powered tool and a
// spinning tool are the same activation slot.
func (s *State) SetPowerMode(mode PowerMode, power float64) error {
	if mode != PowerOff {
		if err := s.ensureToolInactive("tool power already active"); err != nil {
			return err
		}
	}

	if err := s.SetToolPower(power); err != nil {
		return err
	}

	s.toolActive = mode != PowerOff
	s.powerMode = mode
	return nil
}

// SetCoolantMode sets the coolant delivery mode. Activating coolant
// while it is already active is a coolant state conflict; switching
// it off always succeeds.
func (s *State) SetCoolantMode(mode CoolantMode) error {
	if mode != CoolantOff {
		if err := s.ensureCoolantInactive("coolant already active"); err != nil {
			return err
		}
	}

	s.coolantActive = mode != CoolantOff
	s.coolantMode = mode
	return nil
}

// SetToolNumber selects a tool for a rack change. Tool numbers start
// at one, and both tool and coolant must be inactive during a swap.
func (s *State) SetToolNumber(mode RackMode, toolNumber int) error {
	if toolNumber < 1 {
		return errors.Validation("invalid tool number '%d'", toolNumber)
	}

	if err := s.ensureToolInactive("tool change with tool on"); err != nil {
		return err
	}
	if err := s.ensureCoolantInactive("tool change with coolant on"); err != nil {
		return err
	}

	s.toolNumber = toolNumber
	s.rackMode = mode
	return nil
}

// SetHaltMode sets the program halt mode. Halting with the tool or
// coolant active is a state conflict; clearing the halt always
// succeeds.
func (s *State) SetHaltMode(mode HaltMode) error {
	if mode != HaltOff {
		if err := s.ensureToolInactive("halt with tool on"); err != nil {
			return err
		}
		if err := s.ensureCoolantInactive("halt with coolant on"); err != nil {
			return err
		}
	}

	s.haltMode = mode
	return nil
}

func (s *State) ensureToolInactive(message string) error {
	if s.toolActive {
		return errors.ToolState(message)
	}
	return nil
}

func (s *State) ensureCoolantInactive(message string) error {
	if s.coolantActive {
		return errors.CoolantState(message)
	}
	return nil
}
