// Package camera converts between screen (pointer) space and world space for
// a pannable, zoomable canvas.
//
// The transform is
//
//	screen = (world + Offset) * Zoom + Origin
//
// Offset is a world-space pan translation and Origin is the screen point that
// stays fixed while zooming.
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/inamate/sketchboard/internal/geom"
)

const (
	MinZoom = 0.1
	MaxZoom = 30.0
)

// ErrUnsupportedZoomMode is returned by AdjustZoom for a mode it does not know.
var ErrUnsupportedZoomMode = errors.New("unsupported zoom mode")

// ZoomMode selects how AdjustZoom interprets its value.
type ZoomMode string

const (
	ZoomIncrement ZoomMode = "increment" // zoom + value
	ZoomMultiply  ZoomMode = "multiply"  // zoom * value
	ZoomSet       ZoomMode = "set"       // value
)

// Camera is the view state. The zero value is not usable; call New.
type Camera struct {
	Offset geom.Point `json:"offset"`
	Zoom   float64    `json:"zoom"`
	Origin geom.Point `json:"zoomOrigin"`
}

// New returns a camera at zoom 1 with no pan.
func New() Camera {
	return Camera{Zoom: 1}
}

// ScreenToWorld maps a screen point into world space.
func (c Camera) ScreenToWorld(p geom.Point) geom.Point {
	return p.Sub(c.Origin).Div(c.Zoom).Sub(c.Offset)
}

// WorldToScreen is the inverse of ScreenToWorld.
func (c Camera) WorldToScreen(p geom.Point) geom.Point {
	return p.Add(c.Offset).Scale(c.Zoom).Add(c.Origin)
}

// View returns WorldToScreen as an affine matrix: zoom about Origin, then pan.
func (c Camera) View() geom.Matrix2D {
	return geom.Translate(c.Origin.X, c.Origin.Y).
		Multiply(geom.Scale(c.Zoom, c.Zoom)).
		Multiply(geom.Translate(c.Offset.X, c.Offset.Y))
}

// Clamp limits z to [MinZoom, MaxZoom].
func Clamp(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// AdjustZoom changes the zoom factor and moves the zoom origin so that
// center, a screen point, keeps its world position. Out-of-range results are
// clamped. A NaN value leaves the camera unchanged.
func (c *Camera) AdjustZoom(mode ZoomMode, value float64, center geom.Point) error {
	var next float64
	switch mode {
	case ZoomIncrement:
		next = c.Zoom + value
	case ZoomMultiply:
		next = c.Zoom * value
	case ZoomSet:
		next = value
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedZoomMode, mode)
	}
	if math.IsNaN(next) || center.IsNaN() {
		return nil
	}
	next = Clamp(next)

	scaleBy := next / c.Zoom
	c.Origin = center.Sub(center.Sub(c.Origin).Scale(scaleBy))
	c.Zoom = next
	return nil
}

// ZoomPercent is the zoom factor as a truncated percentage, e.g. 105 for 1.05.
func (c Camera) ZoomPercent() int {
	return int(math.Trunc(c.Zoom * 100))
}

// PanAnchor records where a pan gesture starts. Offsets produced by PanTo
// with this anchor and the same zoom reproduce the pointer motion exactly.
func (c Camera) PanAnchor(screen geom.Point) geom.Point {
	return screen.Div(c.Zoom).Sub(c.Offset)
}

// PanTo moves the camera so the pan anchor follows the pointer. zoomAtStart
// is the zoom captured when the gesture began, not the current one.
func (c *Camera) PanTo(screen, anchor geom.Point, zoomAtStart float64) {
	c.Offset = screen.Div(zoomAtStart).Sub(anchor)
}

// ViewRect returns the world-space rectangle visible in a viewport of the
// given screen size.
func (c Camera) ViewRect(width, height float64) geom.Rect {
	return geom.RectFromPoints(
		c.ScreenToWorld(geom.Pt(0, 0)),
		c.ScreenToWorld(geom.Pt(width, height)),
	)
}
