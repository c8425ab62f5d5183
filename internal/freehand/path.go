// Package freehand turns the raw samples of a freedraw gesture into a closed,
// fillable outline path.
package freehand

import "github.com/inamate/sketchboard/internal/geom"

// Segment is one element of an outline path.
type Segment interface {
	isSegment()
}

// MoveTo starts the path.
type MoveTo struct {
	Point geom.Point
}

// QuadTo draws a quadratic curve with an explicit control point.
type QuadTo struct {
	Control geom.Point
	Point   geom.Point
}

// SmoothQuadTo draws a quadratic curve whose control point is the reflection
// of the previous control point (SVG "T").
type SmoothQuadTo struct {
	Point geom.Point
}

// Close closes the path back to its MoveTo.
type Close struct{}

func (MoveTo) isSegment()       {}
func (QuadTo) isSegment()       {}
func (SmoothQuadTo) isSegment() {}
func (Close) isSegment()        {}

// Path is an outline built from MoveTo, QuadTo, SmoothQuadTo and Close.
// The zero value is the empty path.
type Path struct {
	Segments []Segment
}

// IsEmpty reports whether the path draws nothing.
func (p Path) IsEmpty() bool { return len(p.Segments) == 0 }

// PathFromOutline stitches an outline polygon into a smooth closed path.
// Each vertex after the third is reached through the midpoint of consecutive
// vertices, so the curve passes near, not through, the outline corners.
// An outline with fewer than four points produces the empty path.
func PathFromOutline(outline []geom.Point) Path {
	n := len(outline)
	if n < 4 {
		return Path{}
	}

	segs := make([]Segment, 0, n)
	segs = append(segs,
		MoveTo{Point: outline[0]},
		QuadTo{Control: outline[1], Point: outline[1].Mid(outline[2])},
	)
	for i := 2; i < n-1; i++ {
		segs = append(segs, SmoothQuadTo{Point: outline[i].Mid(outline[i+1])})
	}
	segs = append(segs, Close{})
	return Path{Segments: segs}
}

// Flatten approximates the path by a polygon, sampling every curve with the
// given number of steps. The closing edge is implicit.
func (p Path) Flatten(steps int) []geom.Point {
	if steps < 1 {
		steps = 1
	}
	var (
		pts      []geom.Point
		current  geom.Point
		lastCtrl geom.Point
	)
	quad := func(ctrl, to geom.Point) {
		from := current
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps)
			a := from.Lerp(ctrl, t)
			b := ctrl.Lerp(to, t)
			pts = append(pts, a.Lerp(b, t))
		}
		current = to
		lastCtrl = ctrl
	}
	for _, seg := range p.Segments {
		switch s := seg.(type) {
		case MoveTo:
			pts = append(pts, s.Point)
			current = s.Point
			lastCtrl = s.Point
		case QuadTo:
			quad(s.Control, s.Point)
		case SmoothQuadTo:
			quad(current.Scale(2).Sub(lastCtrl), s.Point)
		case Close:
		}
	}
	return pts
}

// PathCommand is a single path segment in Canvas2D form:
// ["M", x, y], ["Q", cx, cy, x, y], ["T", x, y], ["Z"].
type PathCommand []interface{}

// Commands converts the path into Canvas2D commands for a renderer.
func (p Path) Commands() []PathCommand {
	cmds := make([]PathCommand, 0, len(p.Segments))
	for _, seg := range p.Segments {
		switch s := seg.(type) {
		case MoveTo:
			cmds = append(cmds, PathCommand{"M", s.Point.X, s.Point.Y})
		case QuadTo:
			cmds = append(cmds, PathCommand{"Q", s.Control.X, s.Control.Y, s.Point.X, s.Point.Y})
		case SmoothQuadTo:
			cmds = append(cmds, PathCommand{"T", s.Point.X, s.Point.Y})
		case Close:
			cmds = append(cmds, PathCommand{"Z"})
		}
	}
	return cmds
}
