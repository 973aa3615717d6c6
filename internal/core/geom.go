// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned bounding box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Uses standard AABB collision detection.
func (r Rect) Intersects(other Rect) bool {
	// No overlap if one rect is completely to the left, right, above, or below
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// RectF is an axis-aligned box in world units (pixels of the simulated playfield).
type RectF struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Inset shifts the left edge right by dx and shrinks the width by dw, and
// shrinks the height by dh keeping the top edge fixed.
func (r RectF) Inset(dx, dw, dh float64) RectF {
	return RectF{X: r.X + dx, Y: r.Y, W: r.W - dw, H: r.H - dh}
}

// Intersects reports whether the two boxes overlap. All four half-plane
// conditions must hold; touching edges do not count.
func (r RectF) Intersects(o RectF) bool {
	return r.X < o.Right() &&
		r.Right() > o.X &&
		r.Y < o.Bottom() &&
		r.Bottom() > o.Y
}

// Viewport maps world coordinates onto a cell grid.
type Viewport struct {
	WorldW, WorldH float64 // World extent
	Origin         Rect    // Destination area on the screen
}

// Project converts a world box to the cells it covers. Non-empty boxes
// always cover at least one cell.
func (v Viewport) Project(r RectF) Rect {
	sx := float64(v.Origin.W) / v.WorldW
	sy := float64(v.Origin.H) / v.WorldH

	x0 := int(math.Floor(r.X * sx))
	y0 := int(math.Floor(r.Y * sy))
	x1 := int(math.Ceil(r.Right() * sx))
	y1 := int(math.Ceil(r.Bottom() * sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return NewRect(v.Origin.X+x0, v.Origin.Y+y0, x1-x0, y1-y0)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
