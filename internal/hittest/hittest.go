// Package hittest answers which element, if any, lies under a world point.
package hittest

import (
	"errors"
	"fmt"

	"github.com/inamate/sketchboard/internal/element"
	"github.com/inamate/sketchboard/internal/geom"
)

// ErrUnsupportedVariant means an element's shape has no containment rule.
var ErrUnsupportedVariant = errors.New("unsupported hit-test variant")

// DefaultTolerance is the pick distance for lines and strokes, in world units
// at zoom 1.
const DefaultTolerance = 10.0

// ellipseEpsilon loosens the ellipse equation so the outline itself is easy
// to grab.
const ellipseEpsilon = 0.05

// flattenSteps is the number of samples per curve when a freedraw outline is
// turned into a polygon.
const flattenSteps = 4

type Options struct {
	// Tolerance is how far from a line or stroke, in world units, a point
	// may be and still hit it. Zero means DefaultTolerance.
	Tolerance float64
}

func (o Options) tolerance() float64 {
	if o.Tolerance <= 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}

// At returns the topmost element containing p. ordered must be in paint
// order (ascending z-index), as element.Store.Ordered returns it; it is
// walked from the end. Invisible and soft-deleted elements are skipped.
// A miss is (Element{}, false, nil).
func At(p geom.Point, ordered []element.Element, opts Options) (element.Element, bool, error) {
	for i := len(ordered) - 1; i >= 0; i-- {
		el := ordered[i]
		if !el.Visible || el.SoftDeleted {
			continue
		}
		ok, err := Contains(p, el, opts)
		if err != nil {
			return element.Element{}, false, err
		}
		if ok {
			return el, true, nil
		}
	}
	return element.Element{}, false, nil
}

// Contains reports whether p is inside el, or close enough to it for
// elements without an area.
func Contains(p geom.Point, el element.Element, opts Options) (bool, error) {
	switch s := el.Shape.(type) {
	case element.Rectangle, element.Text, element.Image:
		return el.Bounds().Contains(p), nil
	case element.Ellipse:
		b := el.Bounds()
		if b.Width == 0 || b.Height == 0 {
			// A flat ellipse is drawn as a line.
			return geom.PointOnSegment(p, geom.Segment{A: b.Min(), B: b.Max()}, opts.tolerance()), nil
		}
		return geom.PointInEllipse(p, b, ellipseEpsilon), nil
	case element.Line:
		if len(el.Coords) != 2 {
			return false, nil
		}
		return geom.PointOnSegment(p, geom.Segment{A: el.Coords[0], B: el.Coords[1]}, opts.tolerance()), nil
	case element.Diamond:
		return geom.PointInPolygon(p, s.Vertices), nil
	case element.Polygon:
		return geom.PointInPolygon(p, s.Vertices), nil
	case element.Freedraw:
		return strokeContains(p, s, opts.tolerance()), nil
	default:
		return false, fmt.Errorf("hit test %s: %w %T", el.ID, ErrUnsupportedVariant, el.Shape)
	}
}

// strokeContains tests the flattened outline first. Strokes too short to have
// an outline are hit near their samples instead.
func strokeContains(p geom.Point, s element.Freedraw, tolerance float64) bool {
	if !s.Path.IsEmpty() && geom.PointInPolygon(p, s.Path.Flatten(flattenSteps)) {
		return true
	}
	pts := s.StrokePoints
	switch len(pts) {
	case 0:
		return false
	case 1:
		return geom.Distance(p, pts[0]) <= tolerance
	}
	for i := 1; i < len(pts); i++ {
		if geom.PointOnSegment(p, geom.Segment{A: pts[i-1], B: pts[i]}, tolerance) {
			return true
		}
	}
	return false
}
