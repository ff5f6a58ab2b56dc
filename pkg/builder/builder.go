// Core G-code generation
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package builder turns semantic motion and machine-control requests
// into a validated stream of G-code statements. A Builder tracks the
// head position in the machine's original coordinate system, applies
// the active transform to every move, validates modal transitions
// and hands formatted statements to the configured writers.
package builder

import (
	"os"

	"gscrib/pkg/errors"
	"gscrib/pkg/format"
	"gscrib/pkg/geometry"
	"gscrib/pkg/state"
	"gscrib/pkg/transform"
	"gscrib/pkg/writer"
)

// Builder generates G-code statements from semantic requests.
//
// The current position of the X, Y and Z axes is tracked in the
// machine's original, untransformed coordinate system; moves
// reconcile it with the active transform and distance mode before
// any output is produced. Position tracking and transformations are
// limited to the three primary axes: additional parameters travel
// through move commands unchanged and can be read back with
// GetParameter.
//
// Teardown must be called when done to disconnect the writers. One
// Builder drives one output stream and is not safe for concurrent
// use.
type Builder struct {
	config        Config
	formatter     *format.Default
	transformer   *transform.Transformer
	state         *state.State
	table         *state.Table
	tracer        *Tracer
	writers       []writer.Writer
	currentAxes   geometry.Point
	currentParams *format.Params
}

// New creates a builder from the given configuration
func New(config Config) (*Builder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	b := &Builder{
		config:        config,
		formatter:     format.NewDefault(),
		transformer:   transform.New(),
		state:         state.New(),
		table:         state.DefaultTable(),
		currentAxes:   geometry.Zero(),
		currentParams: format.NewParams(),
	}

	b.tracer = newTracer(b)

	if err := b.initFormatter(); err != nil {
		return nil, err
	}

	b.initWriters()
	return b, nil
}

func (b *Builder) initFormatter() error {
	if err := b.formatter.SetDecimalPlaces(b.config.DecimalPlaces); err != nil {
		return err
	}
	if err := b.formatter.SetCommentSymbols(b.config.CommentSymbols); err != nil {
		return err
	}

	b.formatter.SetLineEnding(b.config.LineEnding)

	labels := map[string]string{
		"x": b.config.AxisLabelX,
		"y": b.config.AxisLabelY,
		"z": b.config.AxisLabelZ,
	}

	for axis, label := range labels {
		if label == "" {
			continue
		}
		if err := b.formatter.SetAxisLabel(axis, label); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) initWriters() {
	if b.config.PrintLines {
		b.writers = append(b.writers, writer.NewStreamWriter(os.Stdout))
	}

	if b.config.OutputStream != nil {
		b.writers = append(b.writers, writer.NewStreamWriter(b.config.OutputStream))
	} else if b.config.Output != "" {
		b.writers = append(b.writers, writer.NewFileWriter(b.config.Output))
	}

	switch b.config.DirectWrite {
	case DirectWriteSocket:
		wait := b.config.WaitForResponse
		b.writers = append(b.writers, writer.NewSocketWriter(b.config.Host, b.config.Port, wait))
	case DirectWriteSerial:
		b.writers = append(b.writers, writer.NewSerialWriter(b.config.Device, b.config.BaudRate))
	case DirectWriteWebSocket:
		b.writers = append(b.writers, writer.NewWebSocketWriter(b.config.URL))
	}

	if len(b.writers) == 0 {
		b.writers = append(b.writers, writer.NewStreamWriter(os.Stdout))
	}
}

// Transformer returns the coordinate transformer of this builder
func (b *Builder) Transformer() *transform.Transformer {
	return b.transformer
}

// Formatter returns the G-code formatter of this builder
func (b *Builder) Formatter() *format.Default {
	return b.formatter
}

// State returns the machine state tracker of this builder
func (b *Builder) State() *state.State {
	return b.state
}

// Trace returns the interpolated path generator of this builder
func (b *Builder) Trace() *Tracer {
	return b.tracer
}

// Position returns the current absolute position of the axes in the
// machine's original coordinate system, with any coordinate that was
// never established resolved to zero
func (b *Builder) Position() geometry.Point {
	return b.currentAxes.Resolve()
}

// IsRelative reports whether relative distance mode is active
func (b *Builder) IsRelative() bool {
	return b.state.IsRelative()
}

// GetParameter returns the last value used for a move parameter
func (b *Builder) GetParameter(name string) (interface{}, bool) {
	return b.currentParams.Get(name)
}

// Move executes a controlled linear move to the target location.
//
// The move is coordinated at the current feed rate and interpreted
// according to the current distance mode. The target goes through
// the active transform; an axis appears in the output when it was
// explicitly requested or when the transform displaced it.
//
//	G1 [X<x>] [Y<y>] [Z<z>] [<param><value> ...]
func (b *Builder) Move(target geometry.Coord, params *format.Params) error {
	return b.move(target, params, false)
}

// Rapid executes a rapid move to the target location.
//
// Each axis moves independently at its maximum rate, which is
// typically used for non-cutting movements like positioning or tool
// approach.
//
//	G0 [X<x>] [Y<y>] [Z<z>] [<param><value> ...]
func (b *Builder) Rapid(target geometry.Coord, params *format.Params) error {
	return b.move(target, params, true)
}

func (b *Builder) move(target geometry.Coord, params *format.Params, rapid bool) error {
	current := b.currentAxes.Resolve()
	isRelative := b.state.IsRelative()

	// Target in the machine's original coordinate system. Omitted
	// axes keep the current coordinate in absolute mode and add no
	// displacement in relative mode.

	var point geometry.Point
	if isRelative {
		point = current.Add(target.ToPoint())
	} else {
		point = current.Replace(target)
	}

	origin := b.transformer.Apply(current)
	axes := b.transformer.Apply(point)

	emitted := axes
	if isRelative {
		emitted = axes.Sub(origin)
	}

	moveParams := format.NewParams()
	_, hasX := target.X()
	_, hasY := target.Y()
	_, hasZ := target.Z()

	if hasX || axes.X != origin.X {
		moveParams.Set("X", emitted.X)
	}
	if hasY || axes.Y != origin.Y {
		moveParams.Set("Y", emitted.Y)
	}
	if hasZ || axes.Z != origin.Z {
		moveParams.Set("Z", emitted.Z)
	}

	moveParams.Merge(params)

	if err := b.writeMove(moveParams, rapid); err != nil {
		return err
	}

	b.currentParams.Merge(params)
	b.currentAxes = point
	return nil
}

// MoveAbsolute executes a controlled move to absolute coordinates,
// bypassing any active transform. Relative distance mode is
// temporarily switched to absolute for the duration of the move.
//
//	G1 [X<x>] [Y<y>] [Z<z>] [<param><value> ...]
func (b *Builder) MoveAbsolute(target geometry.Coord, params *format.Params) error {
	return b.moveAbsolute(target, params, false)
}

// RapidAbsolute executes a rapid move to absolute coordinates,
// bypassing any active transform
//
//	G0 [X<x>] [Y<y>] [Z<z>] [<param><value> ...]
func (b *Builder) RapidAbsolute(target geometry.Coord, params *format.Params) error {
	return b.moveAbsolute(target, params, true)
}

func (b *Builder) moveAbsolute(target geometry.Coord, params *format.Params, rapid bool) error {
	axes := b.currentAxes.Replace(target)
	wasRelative := b.state.IsRelative()

	if wasRelative {
		if err := b.SetDistanceMode(state.Absolute); err != nil {
			return err
		}
	}

	moveParams := format.NewParams()
	if x, ok := target.X(); ok {
		moveParams.Set("X", x)
	}
	if y, ok := target.Y(); ok {
		moveParams.Set("Y", y)
	}
	if z, ok := target.Z(); ok {
		moveParams.Set("Z", z)
	}
	moveParams.Merge(params)

	if err := b.writeMove(moveParams, rapid); err != nil {
		return err
	}

	if wasRelative {
		if err := b.SetDistanceMode(state.Relative); err != nil {
			return err
		}
	}

	b.currentParams.Merge(params)
	b.currentAxes = axes
	return nil
}

// SetAxisPosition redefines the current position without moving the
// head. It changes the meaning of "current position", commonly used
// to establish a new reference point.
//
//	G92 [X<x>] [Y<y>] [Z<z>] [<param><value> ...]
func (b *Builder) SetAxisPosition(target geometry.Coord, params *format.Params) error {
	axes := b.currentAxes.Replace(target)

	positionParams := format.NewParams()
	if x, ok := target.X(); ok {
		positionParams.Set("X", x)
	}
	if y, ok := target.Y(); ok {
		positionParams.Set("Y", y)
	}
	if z, ok := target.Z(); ok {
		positionParams.Set("Z", z)
	}
	positionParams.Merge(params)

	statement, err := b.statement(state.OffsetPositioning, positionParams, "")
	if err != nil {
		return err
	}

	if err := b.Write(statement); err != nil {
		return err
	}

	b.currentParams.Merge(params)
	b.currentAxes = axes
	return nil
}

// SetDistanceMode sets the positioning mode for subsequent commands
//
//	G90|G91
func (b *Builder) SetDistanceMode(mode state.DistanceMode) error {
	statement, err := b.statement(mode, nil, "")
	if err != nil {
		return err
	}

	b.state.SetDistanceMode(mode)
	return b.Write(statement)
}

// Absolute sets the distance mode to absolute
//
//	G90
func (b *Builder) Absolute() error {
	return b.SetDistanceMode(state.Absolute)
}

// Relative sets the distance mode to relative
//
//	G91
func (b *Builder) Relative() error {
	return b.SetDistanceMode(state.Relative)
}

// PushMatrix saves the current transform so it can be restored later
// with PopMatrix
func (b *Builder) PushMatrix() {
	b.transformer.Push()
}

// PopMatrix restores the transform saved by the matching PushMatrix
func (b *Builder) PopMatrix() error {
	return b.transformer.Pop()
}

// Translate applies a translation to the current transform
func (b *Builder) Translate(x, y, z float64) error {
	return b.transformer.Translate(x, y, z)
}

// Scale applies a scaling to the current transform. A single factor
// scales uniformly; two or three factors scale per axis.
func (b *Builder) Scale(factors ...float64) error {
	return b.transformer.Scale(factors...)
}

// Rotate applies a rotation of angle radians around the named axis
func (b *Builder) Rotate(angle float64, axis string) error {
	return b.transformer.Rotate(angle, axis)
}

// Reflect applies a reflection across the plane with the given
// normal vector
func (b *Builder) Reflect(nx, ny, nz float64) error {
	return b.transformer.Reflect(nx, ny, nz)
}

// Mirror applies a reflection across one of the principal planes
// named "xy", "yz" or "zx"
func (b *Builder) Mirror(plane string) error {
	return b.transformer.Mirror(plane)
}

// RenameAxis changes the output label of the X, Y or Z axis
func (b *Builder) RenameAxis(axis, label string) error {
	return b.formatter.SetAxisLabel(axis, label)
}

// Comment writes a comment to the G-code output
//
//	; <message>
func (b *Builder) Comment(message string) error {
	return b.Write(b.formatter.FormatComment(message))
}

// Write delivers a raw statement to all configured writers.
//
// Direct use bypasses state management and may leave the internal
// tracking out of sync with the machine; prefer the dedicated
// methods like Move or ToolOn, which maintain state properly.
func (b *Builder) Write(statement string) error {
	// Any statement after a halt resumes the program
	_ = b.state.SetHaltMode(state.HaltOff)

	line := b.formatter.FormatLine(statement)
	data := []byte(line)

	for _, w := range b.writers {
		wait := b.config.WaitForResponse
		if _, err := w.Write(data, wait); err != nil {
			return errors.Device(err, "failed to write statement")
		}
	}

	return nil
}

// Teardown disconnects all writers. When wait is true, pending
// operations complete before the connections are torn down.
func (b *Builder) Teardown(wait bool) error {
	var firstErr error

	for _, w := range b.writers {
		if err := w.Disconnect(wait); err != nil && firstErr == nil {
			firstErr = errors.Device(err, "failed to disconnect writer")
		}
	}

	b.writers = nil
	return firstErr
}

func (b *Builder) writeMove(params *format.Params, rapid bool) error {
	command := "G1"
	if rapid {
		command = "G0"
	}

	statement, err := b.formatter.FormatCommand(command, params)
	if err != nil {
		return err
	}

	return b.Write(statement)
}

// statement builds a command line from the instruction table entry
// for a modal setting, appending its description as a comment
func (b *Builder) statement(value interface{}, params *format.Params, comment string) (string, error) {
	entry, err := b.table.Get(value)
	if err != nil {
		return "", err
	}

	command, err := b.formatter.FormatCommand(entry.Instruction, params)
	if err != nil {
		return "", err
	}

	if comment == "" {
		comment = entry.Description
	}

	return command + " " + b.formatter.FormatComment(comment), nil
}
