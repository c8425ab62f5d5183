// Package geom holds the 2D primitives shared by the camera, the element
// model and the hit-tester: points, axis-aligned rectangles, affine matrices
// and the containment predicates used for picking.
package geom

import "math"

// Point is a 2D point or vector. It is used for both screen and world space;
// which one is meant is carried by the variable name, not the type.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) Div(s float64) Point   { return Point{p.X / s, p.Y / s} }

// Mid returns the midpoint between p and q.
func (p Point) Mid(q Point) Point { return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2} }

// Lerp interpolates from p (t=0) to q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Len returns the Euclidean length of p taken as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Normalize returns the unit vector in the direction of p, or the zero
// vector when p has no length.
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Perp returns p rotated by 90 degrees.
func (p Point) Perp() Point { return Point{-p.Y, p.X} }

// IsNaN reports whether either component is NaN.
func (p Point) IsNaN() bool { return math.IsNaN(p.X) || math.IsNaN(p.Y) }

func Dot(p, q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
