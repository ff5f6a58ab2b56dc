// Demo program that generates a small G-code file
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"gscrib/pkg/builder"
	"gscrib/pkg/format"
	"gscrib/pkg/geometry"
	"gscrib/pkg/state"
)

func main() {
	output := flag.String("output", "", "output file path (default stdout)")
	resolution := flag.Float64("resolution", 0.1, "interpolation resolution in mm")
	flag.Parse()

	if err := run(*output, *resolution); err != nil {
		fmt.Fprintf(os.Stderr, "gscrib-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(output string, resolution float64) error {
	config := builder.DefaultConfig()
	config.Output = output

	g, err := builder.New(config)
	if err != nil {
		return err
	}
	defer g.Teardown(true)

	if err := g.Comment("Sample program"); err != nil {
		return err
	}
	if err := g.SelectUnits(state.Millimeters); err != nil {
		return err
	}
	if err := g.SelectPlane(state.PlaneXY); err != nil {
		return err
	}
	if err := g.Absolute(); err != nil {
		return err
	}

	// Position above the work piece and start the spindle
	if err := g.RapidAbsolute(geometry.XYZ(0, 0, 5), nil); err != nil {
		return err
	}
	if err := g.ToolOn(state.SpinClockwise, 12000); err != nil {
		return err
	}
	if err := g.Move(geometry.Z(0), format.NewParams().Set("F", 500)); err != nil {
		return err
	}

	// A square pocket outline, then a rounded pass traced as arcs
	feed := format.NewParams().Set("F", 1500)
	if err := g.Move(geometry.XY(40, 0), feed); err != nil {
		return err
	}
	if err := g.Move(geometry.XY(40, 40), nil); err != nil {
		return err
	}
	if err := g.Move(geometry.XY(0, 40), nil); err != nil {
		return err
	}
	if err := g.Move(geometry.XY(0, 0), nil); err != nil {
		return err
	}

	trace := g.Trace()
	if err := trace.SelectResolution(resolution); err != nil {
		return err
	}
	if err := trace.SelectDirection(state.CounterClockwise); err != nil {
		return err
	}

	if err := g.Comment("Rounded pass"); err != nil {
		return err
	}
	if err := g.Move(geometry.XY(20, 0), nil); err != nil {
		return err
	}
	if err := trace.Circle(geometry.XY(0, 20)); err != nil {
		return err
	}

	// The same circle rotated 45 degrees around the X axis
	g.PushMatrix()
	if err := g.Rotate(math.Pi/4, "x"); err != nil {
		return err
	}
	if err := trace.Circle(geometry.XY(0, 20)); err != nil {
		return err
	}
	if err := g.PopMatrix(); err != nil {
		return err
	}

	// Retract and shut down
	if err := g.ToolOff(); err != nil {
		return err
	}
	if err := g.RapidAbsolute(geometry.Z(5), nil); err != nil {
		return err
	}

	return g.HaltProgram(state.HaltEndWithReset, nil)
}
