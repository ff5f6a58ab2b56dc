// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package builder

import (
	"strings"
	"testing"

	"gscrib/pkg/errors"
	"gscrib/pkg/state"
)

func TestSelectUnits(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.SelectUnits(state.Millimeters); err != nil {
		t.Fatalf("SelectUnits failed: %v", err)
	}

	got := lastLine(t, buf)
	want := "G21 ; Set length units, millimeters"
	if got != want {
		t.Errorf("statement = %q, want %q", got, want)
	}
	if b.State().LengthUnits() != state.Millimeters {
		t.Error("length units were not tracked")
	}
}

func TestSelectPlane(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.SelectPlane(state.PlaneZX); err != nil {
		t.Fatalf("SelectPlane failed: %v", err)
	}

	got := lastLine(t, buf)
	if !strings.HasPrefix(got, "G18") {
		t.Errorf("statement = %q, want G18 prefix", got)
	}
}

func TestSetExtrusionMode(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.SetExtrusionMode(state.ExtrusionRelative); err != nil {
		t.Fatalf("SetExtrusionMode failed: %v", err)
	}

	if got := lastLine(t, buf); !strings.HasPrefix(got, "M83") {
		t.Errorf("statement = %q, want M83 prefix", got)
	}
}

func TestSetFeedMode(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.SetFeedMode(state.InverseTime); err != nil {
		t.Fatalf("SetFeedMode failed: %v", err)
	}

	if got := lastLine(t, buf); !strings.HasPrefix(got, "G93") {
		t.Errorf("statement = %q, want G93 prefix", got)
	}
}

func TestSetToolPower(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.SetToolPower(1000); err != nil {
		t.Fatalf("SetToolPower failed: %v", err)
	}

	if got := lastLine(t, buf); got != "S1000" {
		t.Errorf("statement = %q, want %q", got, "S1000")
	}

	if err := b.SetToolPower(-1); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestToolOn(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.ToolOn(state.SpinClockwise, 1000); err != nil {
		t.Fatalf("ToolOn failed: %v", err)
	}

	got := lastLine(t, buf)
	want := "S1000 M03 ; Start tool, clockwise"
	if got != want {
		t.Errorf("statement = %q, want %q", got, want)
	}
	if !b.State().IsToolActive() {
		t.Error("tool should be active")
	}
}

func TestToolOnTwiceFails(t *testing.T) {
	b, _ := testBuilder(t)

	if err := b.ToolOn(state.SpinClockwise, 1000); err != nil {
		t.Fatalf("ToolOn failed: %v", err)
	}

	err := b.ToolOn(state.SpinCounter, 500)
	if !errors.IsCode(err, errors.ErrToolState) {
		t.Errorf("error code = %v, want %v", errors.CodeOf(err), errors.ErrToolState)
	}
}

func TestToolOnWithOffMode(t *testing.T) {
	b, _ := testBuilder(t)

	if err := b.ToolOn(state.SpinOff, 0); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestToolOffAfterOn(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.ToolOn(state.SpinClockwise, 1000); err != nil {
		t.Fatalf("ToolOn failed: %v", err)
	}
	if err := b.ToolOff(); err != nil {
		t.Fatalf("ToolOff failed: %v", err)
	}

	if got := lastLine(t, buf); !strings.HasPrefix(got, "M05") {
		t.Errorf("statement = %q, want M05 prefix", got)
	}
	if b.State().IsToolActive() {
		t.Error("tool should be inactive")
	}
}

func TestPowerOnOff(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.PowerOn(state.PowerConstant, 80); err != nil {
		t.Fatalf("PowerOn failed: %v", err)
	}

	got := lastLine(t, buf)
	if !strings.HasPrefix(got, "S80 M03") {
		t.Errorf("statement = %q, want S80 M03 prefix", got)
	}

	if err := b.PowerOff(); err != nil {
		t.Fatalf("PowerOff failed: %v", err)
	}
	if b.State().IsToolActive() {
		t.Error("tool should be inactive")
	}
}

func TestToolChangePadding(t *testing.T) {
	tests := []struct {
		toolNumber int
		prefix     string
	}{
		{5, "T5 M06"},
		{12, "T12 M06"},
		{123, "T0123 M06"},
	}

	for _, tt := range tests {
		b, buf := testBuilder(t)

		if err := b.ToolChange(state.RackAutomatic, tt.toolNumber); err != nil {
			t.Fatalf("ToolChange failed: %v", err)
		}

		got := lastLine(t, buf)
		if !strings.HasPrefix(got, tt.prefix) {
			t.Errorf("statement = %q, want %q prefix", got, tt.prefix)
		}
	}
}

func TestToolChangeGuards(t *testing.T) {
	b, _ := testBuilder(t)

	if err := b.ToolChange(state.RackManual, 0); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("expected a validation error, got %v", err)
	}

	if err := b.ToolOn(state.SpinClockwise, 1000); err != nil {
		t.Fatalf("ToolOn failed: %v", err)
	}

	err := b.ToolChange(state.RackManual, 1)
	if !errors.IsCode(err, errors.ErrToolState) {
		t.Errorf("error code = %v, want %v", errors.CodeOf(err), errors.ErrToolState)
	}
}

func TestCoolantOnOff(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.CoolantOn(state.CoolantFlood); err != nil {
		t.Fatalf("CoolantOn failed: %v", err)
	}

	if got := lastLine(t, buf); !strings.HasPrefix(got, "M08") {
		t.Errorf("statement = %q, want M08 prefix", got)
	}

	err := b.CoolantOn(state.CoolantMist)
	if !errors.IsCode(err, errors.ErrCoolantState) {
		t.Errorf("error code = %v, want %v", errors.CodeOf(err), errors.ErrCoolantState)
	}

	if err := b.CoolantOff(); err != nil {
		t.Fatalf("CoolantOff failed: %v", err)
	}
	if b.State().IsCoolantActive() {
		t.Error("coolant should be inactive")
	}
}

func TestSetFanSpeed(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.SetFanSpeed(255, 0); err != nil {
		t.Fatalf("SetFanSpeed failed: %v", err)
	}

	got := lastLine(t, buf)
	if !strings.HasPrefix(got, "M106 P0 S255") {
		t.Errorf("statement = %q, want M106 P0 S255 prefix", got)
	}

	if err := b.SetFanSpeed(256, 0); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("expected a validation error, got %v", err)
	}
	if err := b.SetFanSpeed(-1, 0); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("expected a validation error, got %v", err)
	}
	if err := b.SetFanSpeed(100, -1); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestSetTemperatures(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.SetBedTemperature(60); err != nil {
		t.Fatalf("SetBedTemperature failed: %v", err)
	}
	if got := lastLine(t, buf); !strings.HasPrefix(got, "M140 S60") {
		t.Errorf("statement = %q, want M140 S60 prefix", got)
	}

	if err := b.SetHotendTemperature(210); err != nil {
		t.Fatalf("SetHotendTemperature failed: %v", err)
	}
	if got := lastLine(t, buf); !strings.HasPrefix(got, "M104 S210") {
		t.Errorf("statement = %q, want M104 S210 prefix", got)
	}
}

func TestSleep(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.Sleep(state.Milliseconds, 1.5); err != nil {
		t.Fatalf("Sleep failed: %v", err)
	}
	if got := lastLine(t, buf); !strings.HasPrefix(got, "G04 P1500") {
		t.Errorf("statement = %q, want G04 P1500 prefix", got)
	}

	if err := b.Sleep(state.Seconds, 2); err != nil {
		t.Fatalf("Sleep failed: %v", err)
	}
	if got := lastLine(t, buf); !strings.HasPrefix(got, "G04 P2") {
		t.Errorf("statement = %q, want G04 P2 prefix", got)
	}

	if err := b.Sleep(state.Seconds, 0.0005); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestHaltProgram(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.HaltProgram(state.HaltEndWithReset, nil); err != nil {
		t.Fatalf("HaltProgram failed: %v", err)
	}
	if got := lastLine(t, buf); !strings.HasPrefix(got, "M30") {
		t.Errorf("statement = %q, want M30 prefix", got)
	}

	if err := b.HaltProgram(state.HaltOff, nil); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestHaltProgramWithToolActive(t *testing.T) {
	b, _ := testBuilder(t)

	if err := b.ToolOn(state.SpinClockwise, 1000); err != nil {
		t.Fatalf("ToolOn failed: %v", err)
	}

	err := b.HaltProgram(state.HaltPause, nil)
	if !errors.IsCode(err, errors.ErrToolState) {
		t.Errorf("error code = %v, want %v", errors.CodeOf(err), errors.ErrToolState)
	}
}

func TestEmergencyHalt(t *testing.T) {
	b, buf := testBuilder(t)

	if err := b.ToolOn(state.SpinClockwise, 1000); err != nil {
		t.Fatalf("ToolOn failed: %v", err)
	}
	if err := b.CoolantOn(state.CoolantFlood); err != nil {
		t.Fatalf("CoolantOn failed: %v", err)
	}

	buf.Reset()
	if err := b.EmergencyHalt("probe failure"); err != nil {
		t.Fatalf("EmergencyHalt failed: %v", err)
	}

	lines := outputLines(buf)
	if len(lines) != 4 {
		t.Fatalf("got %d statements, want 4: %v", len(lines), lines)
	}

	if !strings.HasPrefix(lines[0], "M05") {
		t.Errorf("first statement = %q, want M05 prefix", lines[0])
	}
	if !strings.HasPrefix(lines[1], "M09") {
		t.Errorf("second statement = %q, want M09 prefix", lines[1])
	}
	if lines[2] != "; Emergency halt: probe failure" {
		t.Errorf("third statement = %q, want emergency comment", lines[2])
	}
	if !strings.HasPrefix(lines[3], "M00") {
		t.Errorf("fourth statement = %q, want M00 prefix", lines[3])
	}
}
