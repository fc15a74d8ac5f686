// Package core provides fundamental types and utilities for the duckclick game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned cell rectangle used for hit-testing and drawing.
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

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Vec is a point in continuous playfield space.
type Vec struct {
	X, Y float64
}

// Bounds is a continuous axis-aligned area, inclusive on both ends.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoundsFromRect converts a cell rectangle to continuous bounds.
func BoundsFromRect(r Rect) Bounds {
	return Bounds{
		MinX: float64(r.X),
		MinY: float64(r.Y),
		MaxX: float64(r.Right() - 1),
		MaxY: float64(r.Bottom() - 1),
	}
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Vec {
	return Vec{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
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
