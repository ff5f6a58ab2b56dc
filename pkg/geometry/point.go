// Point primitive for the G-code builder
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package geometry provides the immutable point primitive and the
// partial coordinate requests used by movement commands.
package geometry

import "math"

// unknown is the reserved sentinel for a coordinate that has not been
// established yet. It is distinguishable from a legitimate zero and
// only ever converted to zero by an explicit Resolve call.
var unknown = math.Inf(-1)

// Point is an immutable coordinate in 3D space. Points are passed and
// returned by value and never mutated in place.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Zero returns a point at the origin (0, 0, 0)
func Zero() Point {
	return Point{}
}

// Unknown returns a point whose coordinates are not yet established
func Unknown() Point {
	return Point{unknown, unknown, unknown}
}

// IsUnknown reports whether any coordinate is not yet established
func (p Point) IsUnknown() bool {
	return p.X == unknown || p.Y == unknown || p.Z == unknown
}

// Resolve returns a copy of the point with every unknown coordinate
// replaced by zero. This is the single place where the unknown
// sentinel is allowed to collapse to a number; arithmetic on
// unresolved points propagates the sentinel instead of hiding it.
func (p Point) Resolve() Point {
	return Point{
		X: resolve(p.X),
		Y: resolve(p.Y),
		Z: resolve(p.Z),
	}
}

// Add returns the component-wise sum of two points
func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y, p.Z + other.Z}
}

// Sub returns the component-wise difference of two points
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// Replace returns a copy of the point with the explicit components of
// the request overriding the current values. Omitted components keep
// the current coordinate unchanged.
func (p Point) Replace(c Coord) Point {
	out := p

	if x, ok := c.X(); ok {
		out.X = x
	}
	if y, ok := c.Y(); ok {
		out.Y = y
	}
	if z, ok := c.Z(); ok {
		out.Z = z
	}

	return out
}

// Vector4 converts the point to a homogeneous 4-component vector
func (p Point) Vector4() [4]float64 {
	return [4]float64{p.X, p.Y, p.Z, 1.0}
}

// FromVector4 creates a point from a homogeneous 4-component vector
func FromVector4(v [4]float64) Point {
	return Point{v[0], v[1], v[2]}
}

// Distance returns the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	d := p.Sub(other)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

func resolve(v float64) float64 {
	if v == unknown {
		return 0
	}
	return v
}
