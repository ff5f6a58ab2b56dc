// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package state

import (
	"math"
	"testing"

	"gscrib/pkg/errors"
)

func TestDefaults(t *testing.T) {
	s := New()

	if s.IsToolActive() {
		t.Error("tool should start inactive")
	}
	if s.IsCoolantActive() {
		t.Error("coolant should start inactive")
	}
	if s.IsRelative() {
		t.Error("distance mode should default to absolute")
	}
	if s.FeedMode() != UnitsPerMinute {
		t.Errorf("feed mode = %s", s.FeedMode())
	}
	if s.HaltMode() != HaltOff {
		t.Errorf("halt mode = %s", s.HaltMode())
	}
}

func TestSpinOnOff(t *testing.T) {
	s := New()

	if err := s.SetSpinMode(SpinClockwise, 1000); err != nil {
		t.Fatalf("SetSpinMode failed: %v", err)
	}
	if !s.IsToolActive() {
		t.Error("tool should be active after spin on")
	}
	if s.ToolPower() != 1000 {
		t.Errorf("tool power = %v, want 1000", s.ToolPower())
	}

	// Activating an already active tool is a conflict.
	if err := s.SetSpinMode(SpinCounter, 500); !errors.IsCode(err, errors.ErrToolState) {
		t.Errorf("expected tool state error, got %v", err)
	}

	// Off always succeeds and resets power.
	if err := s.SetSpinMode(SpinOff, 0); err != nil {
		t.Fatalf("spin off failed: %v", err)
	}
	if s.IsToolActive() || s.ToolPower() != 0 {
		t.Error("spin off should deactivate tool and reset power")
	}
}

func TestSpinAndPowerShareActivation(t *testing.T) {
	s := New()

	if err := s.SetPowerMode(PowerConstant, 80); err != nil {
		t.Fatalf("SetPowerMode failed: %v", err)
	}

	// The other activation kind must also be refused.
	if err := s.SetSpinMode(SpinClockwise, 100); !errors.IsCode(err, errors.ErrToolState) {
		t.Errorf("expected tool state error, got %v", err)
	}
	if err := s.SetPowerMode(PowerDynamic, 50); !errors.IsCode(err, errors.ErrToolState) {
		t.Errorf("expected tool state error, got %v", err)
	}

	if err := s.SetPowerMode(PowerOff, 0); err != nil {
		t.Fatalf("power off failed: %v", err)
	}
	if err := s.SetSpinMode(SpinClockwise, 100); err != nil {
		t.Errorf("spin on after power off failed: %v", err)
	}
}

func TestNegativePower(t *testing.T) {
	s := New()

	if err := s.SetToolPower(-1); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if err := s.SetSpinMode(SpinClockwise, -5); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if s.IsToolActive() {
		t.Error("failed activation must not flip tool state")
	}
}

func TestCoolant(t *testing.T) {
	s := New()

	if err := s.SetCoolantMode(CoolantMist); err != nil {
		t.Fatalf("SetCoolantMode failed: %v", err)
	}
	if !s.IsCoolantActive() {
		t.Error("coolant should be active")
	}

	if err := s.SetCoolantMode(CoolantFlood); !errors.IsCode(err, errors.ErrCoolantState) {
		t.Errorf("expected coolant state error, got %v", err)
	}

	if err := s.SetCoolantMode(CoolantOff); err != nil {
		t.Fatalf("coolant off failed: %v", err)
	}
	if s.IsCoolantActive() {
		t.Error("coolant should be inactive")
	}
}

func TestToolNumber(t *testing.T) {
	s := New()

	if err := s.SetToolNumber(RackManual, 0); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}

	if err := s.SetToolNumber(RackAutomatic, 3); err != nil {
		t.Fatalf("SetToolNumber failed: %v", err)
	}
	if s.ToolNumber() != 3 {
		t.Errorf("tool number = %d, want 3", s.ToolNumber())
	}

	// Swaps are refused while the tool or coolant is running.
	if err := s.SetSpinMode(SpinClockwise, 100); err != nil {
		t.Fatal(err)
	}
	if err := s.SetToolNumber(RackManual, 4); !errors.IsCode(err, errors.ErrToolState) {
		t.Errorf("expected tool state error, got %v", err)
	}
	if err := s.SetSpinMode(SpinOff, 0); err != nil {
		t.Fatal(err)
	}

	if err := s.SetCoolantMode(CoolantFlood); err != nil {
		t.Fatal(err)
	}
	if err := s.SetToolNumber(RackManual, 4); !errors.IsCode(err, errors.ErrCoolantState) {
		t.Errorf("expected coolant state error, got %v", err)
	}
}

func TestHalt(t *testing.T) {
	s := New()

	if err := s.SetSpinMode(SpinClockwise, 100); err != nil {
		t.Fatal(err)
	}
	if err := s.SetHaltMode(HaltPause); !errors.IsCode(err, errors.ErrToolState) {
		t.Errorf("expected tool state error, got %v", err)
	}

	// Clearing the halt is always allowed.
	if err := s.SetHaltMode(HaltOff); err != nil {
		t.Errorf("halt off failed: %v", err)
	}

	if err := s.SetSpinMode(SpinOff, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.SetHaltMode(HaltEndWithReset); err != nil {
		t.Errorf("halt failed: %v", err)
	}
	if s.HaltMode() != HaltEndWithReset {
		t.Errorf("halt mode = %s", s.HaltMode())
	}
}

func TestDirectionEnforce(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		delta     float64
		want      float64
	}{
		{"cw keeps negative", Clockwise, -1, -1},
		{"cw wraps positive", Clockwise, math.Pi / 2, math.Pi/2 - 2*math.Pi},
		{"cw keeps zero", Clockwise, 0, 0},
		{"ccw keeps positive", CounterClockwise, 1, 1},
		{"ccw wraps negative", CounterClockwise, -math.Pi / 2, 2*math.Pi - math.Pi/2},
		{"ccw keeps zero", CounterClockwise, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.direction.Enforce(tt.delta); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Enforce(%v) = %v, want %v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestTimeUnitsScale(t *testing.T) {
	if got := Seconds.Scale(2.5); got != 2.5 {
		t.Errorf("Seconds.Scale = %v", got)
	}
	if got := Milliseconds.Scale(2.5); got != 2500 {
		t.Errorf("Milliseconds.Scale = %v", got)
	}
}

func TestTableLookup(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		value       interface{}
		instruction string
	}{
		{Absolute, "G90"},
		{Relative, "G91"},
		{Millimeters, "G21"},
		{SpinClockwise, "M03"},
		{CoolantFlood, "M08"},
		{HaltEndWithReset, "M30"},
		{PlaneXY, "G17"},
	}

	for _, tt := range tests {
		entry, err := table.Get(tt.value)
		if err != nil {
			t.Fatalf("Get(%v) failed: %v", tt.value, err)
		}
		if entry.Instruction != tt.instruction {
			t.Errorf("Get(%v) = %s, want %s", tt.value, entry.Instruction, tt.instruction)
		}
	}
}

func TestTableUnknownValue(t *testing.T) {
	table := DefaultTable()
	if _, err := table.Get("no-such-mode"); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestTableIsolation(t *testing.T) {
	source := map[interface{}]Entry{Absolute: {"G90", "abs"}}
	table := NewTable(source)
	source[Absolute] = Entry{"G00", "changed"}

	entry, err := table.Get(Absolute)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Instruction != "G90" {
		t.Error("table must copy the source mapping")
	}
}
