package core

import "math"

// Vec2 is a 2D vector with X along columns and Y along rows.
type Vec2 struct {
	X, Y float64
}

// FromAngle returns the unit vector pointing at theta radians.
func FromAngle(theta float64) Vec2 {
	return Vec2{X: math.Cos(theta), Y: math.Sin(theta)}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
