// Interpolated motion paths
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package builder

import (
	"math"

	"gscrib/pkg/errors"
	"gscrib/pkg/geometry"
	"gscrib/pkg/state"
)

// splineLengthSamples is the sample count used to estimate the
// length of a fitted curve.
const splineLengthSamples = 500

// Tracer generates G-code for complex motion paths by approximating
// them with small linear segments. The approximation resolution
// balances smoothness against the number of generated commands.
//
// Paths are always traced on the XY plane; use the transformation
// methods of the builder to project them onto other planes or
// orientations. The tracer reasons in absolute coordinates and
// converts to the caller's distance mode only when each segment is
// handed to Move, so paths inherit the active transform and
// distance mode automatically.
//
// Example:
//
//	g.Move(geometry.XY(10, 0), nil)
//	g.Trace().SelectResolution(0.1)
//	g.Trace().SelectDirection(state.Clockwise)
//	g.Trace().Arc(geometry.XY(0, 10), geometry.XY(-10, 0))
type Tracer struct {
	g          *Builder
	direction  state.Direction
	resolution float64
}

func newTracer(builder *Builder) *Tracer {
	return &Tracer{
		g:          builder,
		direction:  state.Clockwise,
		resolution: 0.1,
	}
}

// SelectResolution sets the maximum length of the linear segments
// used to approximate a path, in current work units. Smaller values
// produce smoother paths and more commands.
func (tr *Tracer) SelectResolution(resolution float64) error {
	if resolution <= 0 {
		return errors.Validation("invalid resolution '%v'", resolution)
	}

	tr.resolution = resolution
	return nil
}

// SelectDirection sets the rotation direction for subsequent paths
func (tr *Tracer) SelectDirection(direction state.Direction) error {
	if direction != state.Clockwise && direction != state.CounterClockwise {
		return errors.Validation("invalid direction '%s'", direction)
	}

	tr.direction = direction
	return nil
}

// Arc traces a circular arc from the current position to a target
// point, rotating around a center given relative to the current
// position. The start and end points must be equidistant from the
// center. When the target carries a Z coordinate the height is
// interpolated linearly over the arc, producing helical motion.
func (tr *Tracer) Arc(target, center geometry.Coord) error {
	o := tr.g.Position()
	t := tr.toAbsolute(target)
	c := o.Add(center.ToPoint())

	do := o.Sub(c)
	dt := t.Sub(c)
	radius := math.Hypot(do.X, do.Y)

	if math.Abs(radius-math.Hypot(dt.X, dt.Y)) > 1e-10 {
		return errors.Geometry(
			"cannot trace arc: start and end points must be at " +
				"an equal distance from the center point")
	}

	startAngle := math.Atan2(do.Y, do.X)
	endAngle := math.Atan2(dt.Y, dt.X)
	totalAngle := tr.direction.Enforce(endAngle - startAngle)

	var height float64
	if _, ok := target.Z(); ok {
		height = t.Z - o.Z
	}

	length := math.Hypot(radius*totalAngle, height)

	fn := func(theta float64) geometry.Point {
		angle := startAngle + totalAngle*theta
		return geometry.Point{
			X: c.X + radius*math.Cos(angle),
			Y: c.Y + radius*math.Sin(angle),
			Z: o.Z + theta*height,
		}
	}

	return tr.trace(length, fn)
}

// Circle traces a complete circle around a center given relative to
// the current position, starting and ending at the current position
func (tr *Tracer) Circle(center geometry.Coord) error {
	o := tr.g.Position()
	c := o.Add(center.ToPoint())

	do := o.Sub(c)
	radius := math.Hypot(do.X, do.Y)
	startAngle := math.Atan2(do.Y, do.X)
	totalAngle := tr.fullTurn()

	fn := func(theta float64) geometry.Point {
		angle := startAngle + totalAngle*theta
		return geometry.Point{
			X: c.X + radius*math.Cos(angle),
			Y: c.Y + radius*math.Sin(angle),
			Z: o.Z,
		}
	}

	return tr.trace(2*math.Pi*radius, fn)
}

// ArcRadius traces an arc to the target point with the given radius.
// The center is derived from the chord between the current position
// and the target; of the two possible centers, the one producing the
// shorter sweep in the selected direction is chosen.
func (tr *Tracer) ArcRadius(target geometry.Coord, radius float64) error {
	if radius <= 0 {
		return errors.Validation("invalid arc radius '%v'", radius)
	}

	o := tr.g.Position()
	t := tr.toAbsolute(target)

	dx := t.X - o.X
	dy := t.Y - o.Y
	chord := math.Hypot(dx, dy)

	if chord < 1e-10 {
		return errors.Geometry(
			"cannot trace arc: target equals the current position")
	}

	if 2*radius < chord-1e-10 {
		return errors.Geometry(
			"cannot trace arc: radius is too small for the target")
	}

	// Perpendicular offset from the chord midpoint to the center

	offset := math.Sqrt(math.Max(0, radius*radius-chord*chord/4))
	ux, uy := dx/chord, dy/chord
	nx, ny := -uy, ux

	if tr.direction == state.Clockwise {
		nx, ny = -nx, -ny
	}

	cx := (o.X+t.X)/2 + nx*offset
	cy := (o.Y+t.Y)/2 + ny*offset

	return tr.Arc(target, geometry.XY(cx-o.X, cy-o.Y))
}

// Helix traces a helical path from the current position to a target
// point, spinning the given number of turns around a center given
// relative to the current position. The radius is interpolated
// linearly between the start and end distances to the center, so the
// path may also spiral inward or outward.
func (tr *Tracer) Helix(target, center geometry.Coord, turns int) error {
	if turns < 1 {
		return errors.Validation("invalid number of turns '%d'", turns)
	}

	o := tr.g.Position()
	t := tr.toAbsolute(target)
	c := o.Add(center.ToPoint())

	do := o.Sub(c)
	dt := t.Sub(c)

	startRadius := math.Hypot(do.X, do.Y)
	endRadius := math.Hypot(dt.X, dt.Y)

	startAngle := math.Atan2(do.Y, do.X)
	endAngle := math.Atan2(dt.Y, dt.X)

	delta := tr.direction.Enforce(endAngle - startAngle)
	if delta == 0 {
		delta = tr.fullTurn()
	}

	totalAngle := delta + tr.fullTurn()*float64(turns-1)

	var height float64
	if _, ok := target.Z(); ok {
		height = t.Z - o.Z
	}

	meanRadius := (startRadius + endRadius) / 2
	length := math.Hypot(meanRadius*totalAngle, height)

	fn := func(theta float64) geometry.Point {
		angle := startAngle + totalAngle*theta
		radius := startRadius + (endRadius-startRadius)*theta
		return geometry.Point{
			X: c.X + radius*math.Cos(angle),
			Y: c.Y + radius*math.Sin(angle),
			Z: o.Z + theta*height,
		}
	}

	return tr.trace(length, fn)
}

// Thread traces a threading pass from the current position to the
// target point, revolving around the axis through the midpoint of
// the chord. The number of revolutions is the target height divided
// by the thread pitch, with a minimum of one.
func (tr *Tracer) Thread(target geometry.Coord, pitch float64) error {
	if pitch <= 0 {
		return errors.Validation("invalid thread pitch '%v'", pitch)
	}

	o := tr.g.Position()
	t := tr.toAbsolute(target)

	var height float64
	if _, ok := target.Z(); ok {
		height = t.Z - o.Z
	}

	turns := int(math.Max(0, math.Round(math.Abs(height/pitch)-1)))

	cx := (o.X + t.X) / 2
	cy := (o.Y + t.Y) / 2
	radius := math.Hypot(o.X-cx, o.Y-cy)

	startAngle := math.Atan2(o.Y-cy, o.X-cx)
	endAngle := math.Atan2(t.Y-cy, t.X-cx)

	delta := tr.direction.Enforce(endAngle - startAngle)
	if delta == 0 {
		delta = tr.fullTurn()
	}

	totalAngle := delta + tr.fullTurn()*float64(turns)
	length := math.Hypot(radius*totalAngle, height)

	fn := func(theta float64) geometry.Point {
		angle := startAngle + totalAngle*theta
		return geometry.Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
			Z: o.Z + theta*height,
		}
	}

	return tr.trace(length, fn)
}

// Spiral traces a spiral from the current position out to the target
// point, making the given number of revolutions around the current
// position while the radius grows from zero
func (tr *Tracer) Spiral(target geometry.Coord, turns int) error {
	if turns < 1 {
		return errors.Validation("invalid number of turns '%d'", turns)
	}

	o := tr.g.Position()
	t := tr.toAbsolute(target)

	endRadius := math.Hypot(t.X-o.X, t.Y-o.Y)
	endAngle := math.Atan2(t.Y-o.Y, t.X-o.X)
	totalAngle := tr.fullTurn() * float64(turns)

	var height float64
	if _, ok := target.Z(); ok {
		height = t.Z - o.Z
	}

	length := math.Hypot(endRadius/2*totalAngle, height)

	fn := func(theta float64) geometry.Point {
		angle := endAngle + totalAngle*(theta-1)
		radius := endRadius * theta
		return geometry.Point{
			X: o.X + radius*math.Cos(angle),
			Y: o.Y + radius*math.Sin(angle),
			Z: o.Z + theta*height,
		}
	}

	return tr.trace(length, fn)
}

// Spline traces a smooth curve through the given control points,
// fitting one natural cubic spline per coordinate axis with the
// current position prepended as the first control point. In relative
// mode each control point is an offset from the previous one; an
// omitted Z keeps the Z of the previous control point.
func (tr *Tracer) Spline(targets []geometry.Coord) error {
	if len(targets) < 2 {
		return errors.Validation(
			"a spline needs at least two control points")
	}

	previous := tr.g.Position()
	points := make([]geometry.Point, 0, len(targets)+1)
	points = append(points, previous)

	isRelative := tr.g.state.IsRelative()

	for _, target := range targets {
		if isRelative {
			previous = previous.Add(target.ToPoint())
		} else {
			previous = previous.Replace(target)
		}
		points = append(points, previous)
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	zs := make([]float64, len(points))

	for i, p := range points {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}

	splineX := newCubicSpline(xs)
	splineY := newCubicSpline(ys)
	splineZ := newCubicSpline(zs)

	fn := func(theta float64) geometry.Point {
		return geometry.Point{
			X: splineX.at(theta),
			Y: splineY.at(theta),
			Z: splineZ.at(theta),
		}
	}

	length, err := tr.EstimateLength(splineLengthSamples, fn)
	if err != nil {
		return err
	}

	return tr.trace(length, fn)
}

// Parametric traces an arbitrary curve defined by a parametric
// function over theta in [0, 1]. The length is used to derive the
// number of segments from the current resolution.
func (tr *Tracer) Parametric(fn func(theta float64) geometry.Point, length float64) error {
	if fn == nil {
		return errors.Validation("parametric function cannot be nil")
	}

	return tr.trace(length, fn)
}

// EstimateLength approximates the length of a parametric curve by
// sampling it and summing consecutive distances
func (tr *Tracer) EstimateLength(samples int, fn func(theta float64) geometry.Point) (float64, error) {
	if samples < 2 {
		return 0, errors.Validation("invalid sample count '%d'", samples)
	}

	var length float64
	previous := fn(0)

	for i := 1; i < samples; i++ {
		theta := float64(i) / float64(samples-1)
		point := fn(theta)
		length += previous.Distance(point)
		previous = point
	}

	return length, nil
}

// FilterSegments decimates a dense point sequence to the minimum set
// of points preserving the given spatial resolution. The first and
// last points are always kept; an intermediate point is kept only
// when its distance from the last kept point exceeds the resolution.
func FilterSegments(points []geometry.Point, resolution float64) []geometry.Point {
	if len(points) <= 1 {
		return points
	}

	kept := make([]geometry.Point, 0, len(points))
	kept = append(kept, points[0])
	last := points[0]

	for _, point := range points[1 : len(points)-1] {
		if last.Distance(point) > resolution {
			kept = append(kept, point)
			last = point
		}
	}

	return append(kept, points[len(points)-1])
}

// trace approximates a parametric curve with linear segments at the
// current resolution, handing each sample to the builder as a move
// in the caller's distance mode
func (tr *Tracer) trace(length float64, fn func(theta float64) geometry.Point) error {
	steps := int(length / tr.resolution)
	if steps < 2 {
		steps = 2
	}

	for i := 1; i <= steps; i++ {
		theta := float64(i) / float64(steps)
		target := tr.toDistanceMode(fn(theta))

		if err := tr.g.Move(target, nil); err != nil {
			return err
		}
	}

	return nil
}

// toAbsolute resolves a possibly relative target request into an
// absolute point
func (tr *Tracer) toAbsolute(target geometry.Coord) geometry.Point {
	position := tr.g.Position()

	if tr.g.state.IsRelative() {
		return position.Add(target.ToPoint())
	}

	return position.Replace(target)
}

// toDistanceMode converts an absolute point into a move request in
// the caller's current distance mode
func (tr *Tracer) toDistanceMode(point geometry.Point) geometry.Coord {
	if tr.g.state.IsRelative() {
		offset := point.Sub(tr.g.Position())
		return geometry.XYZ(offset.X, offset.Y, offset.Z)
	}

	return geometry.FromPoint(point)
}

// fullTurn returns a complete revolution signed according to the
// selected direction
func (tr *Tracer) fullTurn() float64 {
	if tr.direction == state.Clockwise {
		return -2 * math.Pi
	}

	return 2 * math.Pi
}

// cubicSpline is a one-dimensional natural cubic spline over
// uniformly spaced knots, evaluated with a normalized parameter in
// [0, 1]
type cubicSpline struct {
	values  []float64
	moments []float64
}

// newCubicSpline fits a natural cubic spline through the given
// values at uniform knots
func newCubicSpline(values []float64) *cubicSpline {
	n := len(values) - 1
	moments := make([]float64, n+1)

	if n > 1 {
		// Thomas algorithm for the tridiagonal moment system with
		// natural boundary conditions
		diag := make([]float64, n-1)
		rhs := make([]float64, n-1)

		for i := 1; i < n; i++ {
			diag[i-1] = 4
			rhs[i-1] = 6 * (values[i-1] - 2*values[i] + values[i+1])
		}

		for i := 1; i < n-1; i++ {
			factor := 1 / diag[i-1]
			diag[i] -= factor
			rhs[i] -= factor * rhs[i-1]
		}

		for i := n - 2; i >= 0; i-- {
			if i < n-2 {
				rhs[i] -= moments[i+2]
			}
			moments[i+1] = rhs[i] / diag[i]
		}
	}

	return &cubicSpline{values: values, moments: moments}
}

// at evaluates the spline at theta in [0, 1]
func (s *cubicSpline) at(theta float64) float64 {
	n := len(s.values) - 1
	position := theta * float64(n)

	i := int(position)
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}

	u := position - float64(i)
	v := 1 - u

	return s.values[i]*v + s.values[i+1]*u +
		(v*v*v-v)*s.moments[i]/6 + (u*u*u-u)*s.moments[i+1]/6
}
