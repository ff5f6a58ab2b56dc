// Partial coordinate requests
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package geometry

// Coord is a possibly partial coordinate request. Each axis is either
// explicitly requested or omitted; an omitted axis keeps the current
// position in absolute mode and contributes no offset in relative
// mode. The zero value omits every axis.
type Coord struct {
	x, y, z          float64
	hasX, hasY, hasZ bool
}

// X returns the requested X coordinate and whether it was set
func (c Coord) X() (float64, bool) { return c.x, c.hasX }

// Y returns the requested Y coordinate and whether it was set
func (c Coord) Y() (float64, bool) { return c.y, c.hasY }

// Z returns the requested Z coordinate and whether it was set
func (c Coord) Z() (float64, bool) { return c.z, c.hasZ }

// IsEmpty reports whether no axis was requested
func (c Coord) IsEmpty() bool {
	return !c.hasX && !c.hasY && !c.hasZ
}

// WithX returns a copy of the request with an explicit X coordinate
func (c Coord) WithX(v float64) Coord {
	c.x, c.hasX = v, true
	return c
}

// WithY returns a copy of the request with an explicit Y coordinate
func (c Coord) WithY(v float64) Coord {
	c.y, c.hasY = v, true
	return c
}

// WithZ returns a copy of the request with an explicit Z coordinate
func (c Coord) WithZ(v float64) Coord {
	c.z, c.hasZ = v, true
	return c
}

// X starts a coordinate request with an explicit X coordinate
func X(v float64) Coord { return Coord{}.WithX(v) }

// Y starts a coordinate request with an explicit Y coordinate
func Y(v float64) Coord { return Coord{}.WithY(v) }

// Z starts a coordinate request with an explicit Z coordinate
func Z(v float64) Coord { return Coord{}.WithZ(v) }

// XY creates a request with explicit X and Y coordinates
func XY(x, y float64) Coord { return Coord{}.WithX(x).WithY(y) }

// XYZ creates a request with all three coordinates explicit
func XYZ(x, y, z float64) Coord {
	return Coord{}.WithX(x).WithY(y).WithZ(z)
}

// FromPoint creates a request with all three coordinates taken from
// a point
func FromPoint(p Point) Coord {
	return XYZ(p.X, p.Y, p.Z)
}

// ToPoint converts the request to a point, with omitted axes set to
// zero. Used for relative offsets, where "not requested" means "no
// displacement" on that axis.
func (c Coord) ToPoint() Point {
	return Point{c.x, c.y, c.z}
}
