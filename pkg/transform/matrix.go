// Homogeneous 4x4 transformation matrices
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package transform provides homogeneous coordinate transformations
// with a nested save/restore stack for scoped geometric operations.
package transform

import (
	"math"

	"gscrib/pkg/errors"
	"gscrib/pkg/geometry"
)

// Matrix is a 4x4 homogeneous transformation matrix in row-major
// order. The zero value is not useful; start from Identity.
type Matrix [4][4]float64

// Identity returns the identity matrix
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a matrix that translates by (x, y, z)
func Translation(x, y, z float64) Matrix {
	m := Identity()
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

// Scaling returns a matrix that scales each axis independently
func Scaling(sx, sy, sz float64) Matrix {
	m := Identity()
	m[0][0] = sx
	m[1][1] = sy
	m[2][2] = sz
	return m
}

// RotationX returns a rotation of angle radians around the X axis
func RotationX(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	m := Identity()
	m[1][1], m[1][2] = cos, -sin
	m[2][1], m[2][2] = sin, cos
	return m
}

// RotationY returns a rotation of angle radians around the Y axis
func RotationY(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	m := Identity()
	m[0][0], m[0][2] = cos, sin
	m[2][0], m[2][2] = -sin, cos
	return m
}

// RotationZ returns a rotation of angle radians around the Z axis
func RotationZ(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	m := Identity()
	m[0][0], m[0][1] = cos, -sin
	m[1][0], m[1][1] = sin, cos
	return m
}

// Reflection returns a Householder reflection across the plane with
// the given normal: R = I - 2 * (n ⊗ n), with n normalized. Fails
// when the normal is the zero vector.
func Reflection(nx, ny, nz float64) (Matrix, error) {
	norm := math.Sqrt(nx*nx + ny*ny + nz*nz)

	if norm == 0 {
		return Matrix{}, errors.Geometry("normal vector cannot be zero")
	}

	nx, ny, nz = nx/norm, ny/norm, nz/norm

	m := Identity()
	m[0][0] = 1 - 2*nx*nx
	m[0][1] = -2 * nx * ny
	m[0][2] = -2 * nx * nz
	m[1][0] = -2 * ny * nx
	m[1][1] = 1 - 2*ny*ny
	m[1][2] = -2 * ny * nz
	m[2][0] = -2 * nz * nx
	m[2][1] = -2 * nz * ny
	m[2][2] = 1 - 2*nz*nz

	return m, nil
}

// Mul returns the matrix product m * other
func (m Matrix) Mul(other Matrix) Matrix {
	var out Matrix

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			out[i][j] = sum
		}
	}

	return out
}

// Apply transforms a point as a homogeneous 4-vector
func (m Matrix) Apply(p geometry.Point) geometry.Point {
	v := p.Vector4()
	var out [4]float64

	for i := 0; i < 4; i++ {
		for k := 0; k < 4; k++ {
			out[i] += m[i][k] * v[k]
		}
	}

	return geometry.FromVector4(out)
}

// Inverse computes the full inverse of the matrix by Gauss-Jordan
// elimination with partial pivoting. The inverse is always recomputed
// from scratch rather than maintained incrementally, so repeated
// transformations cannot accumulate drift in the cached inverse.
func (m Matrix) Inverse() (Matrix, error) {
	work := m
	inv := Identity()

	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(work[row][col]) > math.Abs(work[pivot][col]) {
				pivot = row
			}
		}

		if work[pivot][col] == 0 {
			return Matrix{}, errors.Geometry("matrix is singular")
		}

		work[col], work[pivot] = work[pivot], work[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		scale := work[col][col]
		for j := 0; j < 4; j++ {
			work[col][j] /= scale
			inv[col][j] /= scale
		}

		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			factor := work[row][col]
			for j := 0; j < 4; j++ {
				work[row][j] -= factor * work[col][j]
				inv[row][j] -= factor * inv[col][j]
			}
		}
	}

	return inv, nil
}

// Equal reports whether two matrices are equal within tolerance
func (m Matrix) Equal(other Matrix, tolerance float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m[i][j]-other[i][j]) > tolerance {
				return false
			}
		}
	}
	return true
}
