// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package format

import (
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	f := NewDefault()

	tests := []struct {
		name   string
		number float64
		want   string
	}{
		{"zero", 0, "0"},
		{"integer", 10, "10"},
		{"negative", -2.5, "-2.5"},
		{"trailing zeros trimmed", 1.50000, "1.5"},
		{"rounded to places", 1.123456789, "1.12346"},
		{"small value", 0.00001, "0.00001"},
		{"rounds to zero", 0.0000001, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.FormatNumber(tt.number)
			if err != nil {
				t.Fatalf("FormatNumber(%v) failed: %v", tt.number, err)
			}
			if got != tt.want {
				t.Errorf("FormatNumber(%v) = %q, want %q", tt.number, got, tt.want)
			}
		})
	}
}

func TestFormatNumberNonFinite(t *testing.T) {
	f := NewDefault()

	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if _, err := f.FormatNumber(v); err == nil {
			t.Errorf("FormatNumber(%v) should fail", v)
		}
	}
}

func TestFormatNumberDecimalPlaces(t *testing.T) {
	f := NewDefault()
	if err := f.SetDecimalPlaces(2); err != nil {
		t.Fatal(err)
	}

	got, err := f.FormatNumber(1.239)
	if err != nil {
		t.Fatal(err)
	}
	if got != "1.24" {
		t.Errorf("FormatNumber = %q, want %q", got, "1.24")
	}

	if err := f.SetDecimalPlaces(-1); err == nil {
		t.Error("negative decimal places should fail")
	}
}

func TestFormatCommand(t *testing.T) {
	f := NewDefault()

	params := NewParams().
		Set("F", 1500.0).
		Set("y", 20.0).
		Set("x", 10.0)

	got, err := f.FormatCommand("G1", params)
	if err != nil {
		t.Fatal(err)
	}

	// Axes come first, in X/Y/Z order, then insertion order.
	want := "G1 X10 Y20 F1500"
	if got != want {
		t.Errorf("FormatCommand = %q, want %q", got, want)
	}
}

func TestFormatCommandNoParams(t *testing.T) {
	f := NewDefault()

	got, err := f.FormatCommand("G90", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "G90" {
		t.Errorf("FormatCommand = %q", got)
	}

	got, err = f.FormatCommand("G90", NewParams())
	if err != nil {
		t.Fatal(err)
	}
	if got != "G90" {
		t.Errorf("FormatCommand = %q", got)
	}
}

func TestFormatCommandStringValue(t *testing.T) {
	f := NewDefault()

	params := NewParams().Set("T", "01")
	got, err := f.FormatCommand("M06", params)
	if err != nil {
		t.Fatal(err)
	}
	if got != "M06 T01" {
		t.Errorf("FormatCommand = %q", got)
	}
}

func TestAxisRelabel(t *testing.T) {
	f := NewDefault()
	if err := f.SetAxisLabel("x", "a"); err != nil {
		t.Fatal(err)
	}

	params := NewParams().Set("X", 5.0)
	got, err := f.FormatCommand("G1", params)
	if err != nil {
		t.Fatal(err)
	}
	if got != "G1 A5" {
		t.Errorf("FormatCommand = %q, want %q", got, "G1 A5")
	}

	if err := f.SetAxisLabel("e", "A"); err == nil {
		t.Error("relabeling an unknown axis should fail")
	}
	if err := f.SetAxisLabel("x", "  "); err == nil {
		t.Error("empty label should fail")
	}
}

func TestFormatComment(t *testing.T) {
	f := NewDefault()

	if got := f.FormatComment("hello"); got != "; hello" {
		t.Errorf("FormatComment = %q", got)
	}

	if err := f.SetCommentSymbols("("); err != nil {
		t.Fatal(err)
	}
	if got := f.FormatComment("hello"); got != "( hello )" {
		t.Errorf("FormatComment = %q", got)
	}

	if err := f.SetCommentSymbols(""); err == nil {
		t.Error("empty comment symbols should fail")
	}
}

func TestFormatLine(t *testing.T) {
	f := NewDefault()

	if got := f.FormatLine("G1 X10  "); got != "G1 X10\n" {
		t.Errorf("FormatLine = %q", got)
	}

	f.SetLineEnding("\r\n")
	if got := f.FormatLine("G1 X10"); got != "G1 X10\r\n" {
		t.Errorf("FormatLine = %q", got)
	}
}

func TestParamsOrder(t *testing.T) {
	p := NewParams().
		Set("s", 100.0).
		Set("Z", 1.0).
		Set("f", 200.0).
		Set("X", 2.0)

	want := []string{"X", "Z", "S", "F"}
	got := p.Keys()

	if len(got) != len(want) {
		t.Fatalf("Keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys = %v, want %v", got, want)
		}
	}
}

func TestParamsUpdateKeepsPosition(t *testing.T) {
	p := NewParams().Set("F", 100.0).Set("S", 50.0)
	p.Set("f", 200.0)

	value, ok := p.Get("F")
	if !ok || value.(float64) != 200.0 {
		t.Errorf("Get(F) = %v, %v", value, ok)
	}
	if p.Len() != 2 {
		t.Errorf("Len = %d, want 2", p.Len())
	}
}

func TestParamsMergeClone(t *testing.T) {
	base := NewParams().Set("F", 100.0)
	clone := base.Clone()
	clone.Set("S", 50.0)

	if base.Has("S") {
		t.Error("Clone must be independent of the source")
	}

	merged := NewParams().Set("E", 1.0).Merge(clone)
	if !merged.Has("F") || !merged.Has("S") || !merged.Has("E") {
		t.Error("Merge should contain all parameters")
	}
}
