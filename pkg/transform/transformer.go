// Transformation stack for scoped geometric operations
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package transform

import (
	"strings"

	"gscrib/pkg/errors"
	"gscrib/pkg/geometry"
)

// Transformer owns the current transformation matrix, its cached
// inverse and a stack for nested save/restore. Operations chain as
// new = op * current, so the most recent operation is applied last
// to incoming points. Transformer is a single-owner object and is
// not safe for concurrent use.
type Transformer struct {
	current Matrix
	inverse Matrix
	stack   []Matrix
}

// New creates a transformer with the identity transformation
func New() *Transformer {
	return &Transformer{
		current: Identity(),
		inverse: Identity(),
	}
}

// Current returns the active transformation matrix
func (t *Transformer) Current() Matrix {
	return t.current
}

// Depth returns the number of saved matrices on the stack
func (t *Transformer) Depth() int {
	return len(t.stack)
}

// Push saves a copy of the current matrix onto the stack
func (t *Transformer) Push() {
	t.stack = append(t.stack, t.current)
}

// Pop restores the most recently pushed matrix. Popping an empty
// stack is a scoping bug and reported as a stack discipline error,
// never as argument validation.
func (t *Transformer) Pop() error {
	if len(t.stack) == 0 {
		return errors.StackUnderflow("cannot pop matrix: stack is empty")
	}

	t.current = t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]

	inverse, err := t.current.Inverse()
	if err != nil {
		return err
	}

	t.inverse = inverse
	return nil
}

// Scoped runs fn inside a push/pop pair. The pop happens even when
// fn returns an error, keeping the stack balanced under error exit.
func (t *Transformer) Scoped(fn func() error) error {
	t.Push()

	fnErr := fn()

	if popErr := t.Pop(); popErr != nil {
		return popErr
	}

	return fnErr
}

// Chain left-multiplies a transformation onto the current matrix and
// recomputes the cached inverse
func (t *Transformer) Chain(op Matrix) error {
	current := op.Mul(t.current)

	inverse, err := current.Inverse()
	if err != nil {
		return err
	}

	t.current = current
	t.inverse = inverse
	return nil
}

// Translate applies a translation by (x, y, z)
func (t *Transformer) Translate(x, y, z float64) error {
	return t.Chain(Translation(x, y, z))
}

// Scale applies uniform or per-axis scaling. A single factor scales
// all three axes; two or three factors scale each axis in turn, with
// untouched axes left at 1. Zero factors and argument counts outside
// 1 to 3 are rejected.
func (t *Transformer) Scale(factors ...float64) error {
	if len(factors) < 1 || len(factors) > 3 {
		return errors.Validation("scale accepts 1 to 3 factors, got %d", len(factors))
	}

	for _, factor := range factors {
		if factor == 0 {
			return errors.Validation("scale factor cannot be zero")
		}
	}

	sx, sy, sz := factors[0], factors[0], factors[0]

	if len(factors) > 1 {
		sy, sz = factors[1], 1.0
		if len(factors) > 2 {
			sz = factors[2]
		}
	}

	return t.Chain(Scaling(sx, sy, sz))
}

// Rotate applies a rotation of angle radians around the named axis
// ("x", "y" or "z")
func (t *Transformer) Rotate(angle float64, axis string) error {
	switch strings.ToLower(axis) {
	case "x":
		return t.Chain(RotationX(angle))
	case "y":
		return t.Chain(RotationY(angle))
	case "z":
		return t.Chain(RotationZ(angle))
	}

	return errors.Validation("invalid rotation axis '%s'", axis)
}

// Reflect applies a Householder reflection across the plane with the
// given normal vector
func (t *Transformer) Reflect(nx, ny, nz float64) error {
	m, err := Reflection(nx, ny, nz)
	if err != nil {
		return err
	}

	return t.Chain(m)
}

// Mirror reflects across one of the three principal planes: "xy",
// "yz" or "zx"
func (t *Transformer) Mirror(plane string) error {
	switch strings.ToLower(plane) {
	case "xy":
		return t.Reflect(0, 0, 1)
	case "yz":
		return t.Reflect(1, 0, 0)
	case "zx":
		return t.Reflect(0, 1, 0)
	}

	return errors.Validation("invalid mirror plane '%s'", plane)
}

// Apply transforms a point through the current matrix
func (t *Transformer) Apply(p geometry.Point) geometry.Point {
	return t.current.Apply(p)
}

// Reverse transforms a point through the cached inverse matrix
func (t *Transformer) Reverse(p geometry.Point) geometry.Point {
	return t.inverse.Apply(p)
}
