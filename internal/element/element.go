// Package element is the whiteboard's element model: the typed element
// variants, the rules that derive an element's geometry from its inputs, and
// the id-keyed store that owns them.
//
// Elements are values. Updating an element derives a new value for the same
// id from scratch; nothing mutates a stored element in place.
package element

import (
	"errors"
	"time"

	"github.com/inamate/sketchboard/internal/freehand"
	"github.com/inamate/sketchboard/internal/geom"
)

var (
	// ErrInvalidGeometry means the coordinates do not fit the variant,
	// e.g. three points for a rectangle.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrUnknownVariant means no rule exists for the element's kind.
	ErrUnknownVariant = errors.New("unknown element variant")
	// ErrUnknownElement means no element is stored under the id.
	ErrUnknownElement = errors.New("unknown element")
	// ErrInvalidStyle means a font or colour value cannot be used.
	ErrInvalidStyle = errors.New("invalid style")
)

// Kind names an element variant.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindDiamond   Kind = "diamond"
	KindPolygon   Kind = "polygon"
	KindLine      Kind = "line"
	KindFreedraw  Kind = "freedraw"
	KindText      Kind = "text"
	KindImage     Kind = "image"
)

// Shape is the variant-specific part of an element. The set of
// implementations is closed: Rectangle, Ellipse, Diamond, Polygon, Line,
// Freedraw, Text and Image.
type Shape interface {
	Kind() Kind
	isShape()
}

type Rectangle struct{}

type Ellipse struct{}

type Line struct{}

// Diamond is drawn and hit-tested as the polygon through the midpoints of
// its bounding box edges. Its coords stay the two box corners.
type Diamond struct {
	Vertices []geom.Point `json:"vertices"`
}

type Polygon struct {
	Vertices []geom.Point `json:"vertices"`
}

// Freedraw holds the raw samples of a stroke and the outline derived from them.
type Freedraw struct {
	StrokePoints []geom.Point           `json:"strokePoints"`
	Options      freehand.StrokeOptions `json:"strokeOptions"`
	Outline      []geom.Point           `json:"-"`
	Path         freehand.Path          `json:"-"`
}

type Text struct {
	Font       Font       `json:"font"`
	Text       TextObject `json:"textObject"`
	Baseline   float64    `json:"baseline"`
	LineHeight float64    `json:"lineHeight"`
}

// Image refers to an already loaded bitmap by id; loading is the caller's job.
type Image struct {
	AssetID       string  `json:"assetId"`
	NaturalWidth  float64 `json:"naturalWidth"`
	NaturalHeight float64 `json:"naturalHeight"`
}

func (Rectangle) Kind() Kind { return KindRectangle }
func (Ellipse) Kind() Kind   { return KindEllipse }
func (Line) Kind() Kind      { return KindLine }
func (Diamond) Kind() Kind   { return KindDiamond }
func (Polygon) Kind() Kind   { return KindPolygon }
func (Freedraw) Kind() Kind  { return KindFreedraw }
func (Text) Kind() Kind      { return KindText }
func (Image) Kind() Kind     { return KindImage }

func (Rectangle) isShape() {}
func (Ellipse) isShape()   {}
func (Line) isShape()      {}
func (Diamond) isShape()   {}
func (Polygon) isShape()   {}
func (Freedraw) isShape()  {}
func (Text) isShape()      {}
func (Image) isShape()     {}

// Element is one item on the board.
type Element struct {
	ID          string         `json:"id"`
	Coords      []geom.Point   `json:"coords"`
	ZIndex      int            `json:"zIndex"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	Version     int            `json:"version"`
	Visible     bool           `json:"visible"`
	Locked      bool           `json:"locked"`
	SoftDeleted bool           `json:"softDeleted"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Rough       *RoughSettings `json:"roughSettings,omitempty"`
	Shape       Shape          `json:"shape"`
}

// Kind returns the variant of e, or "" for an element without a shape.
func (e Element) Kind() Kind {
	if e.Shape == nil {
		return ""
	}
	return e.Shape.Kind()
}

// Bounds returns the world-space bounding box derived from e's coords.
func (e Element) Bounds() geom.Rect {
	switch e.Shape.(type) {
	case Polygon, Freedraw:
		return geom.BoundsOf(e.Coords)
	}
	if len(e.Coords) < 2 {
		return geom.BoundsOf(e.Coords)
	}
	return geom.RectFromPoints(e.Coords[0], e.Coords[1])
}

// Anchor is the point a move gesture measures its grab offset from.
func (e Element) Anchor() geom.Point {
	if len(e.Coords) == 0 {
		return geom.Point{}
	}
	return e.Coords[0]
}

// Seed returns the renderer seed, or 0 for variants without rough settings.
func (e Element) Seed() int64 {
	if e.Rough == nil {
		return 0
	}
	return e.Rough.Seed
}

// Translated returns e's coords shifted by d. For text only the anchor is
// returned since the far corner is derived.
func (e Element) Translated(d geom.Point) []geom.Point {
	coords := e.Coords
	if e.Kind() == KindText && len(coords) > 1 {
		coords = coords[:1]
	}
	out := make([]geom.Point, len(coords))
	for i, c := range coords {
		out[i] = c.Add(d)
	}
	return out
}
