package element

import (
	"fmt"
	"slices"
	"time"

	"github.com/inamate/sketchboard/internal/freehand"
	"github.com/inamate/sketchboard/internal/geom"
	"github.com/inamate/sketchboard/internal/typeid"
)

// ImageSource is the already loaded bitmap an image element shows.
type ImageSource struct {
	AssetID string
	Width   float64
	Height  float64
}

// Params are the inputs to Create. Only the fields that apply to the kind
// are read.
type Params struct {
	ID     string
	Coords []geom.Point
	Rough  *RoughSettings

	Text       string
	Font       *Font
	LineHeight float64

	Stroke *freehand.StrokeOptions
	Image  *ImageSource
}

// Patch is a partial update. Nil or empty fields keep the stored value.
type Patch struct {
	Coords     []geom.Point
	Text       *string
	Font       *Font
	LineHeight *float64
}

// Factory derives elements from their inputs. The zero value is usable and
// falls back to typeid ids, random seeds, Go-font text metrics and the
// constant-width stroke outliner.
type Factory struct {
	NewID    func() string
	NewSeed  func() int64
	Measurer Measurer
	// Outliner overrides the per-element stroke outliner when set.
	Outliner freehand.Outliner
	Now      func() time.Time
}

func (f *Factory) id() string {
	if f.NewID != nil {
		return f.NewID()
	}
	return typeid.NewElementID()
}

func (f *Factory) seed() int64 {
	if f.NewSeed != nil {
		return f.NewSeed()
	}
	return NewSeed()
}

func (f *Factory) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f *Factory) measurer() Measurer {
	if f.Measurer == nil {
		f.Measurer = NewFaceMeasurer()
	}
	return f.Measurer
}

// Measure sets text in font with the factory's measurer, the same way text
// elements are sized.
func (f *Factory) Measure(text string, font Font) (Metrics, error) {
	return f.measurer().Measure(NewTextObject(text).Lines, font)
}

func (f *Factory) outliner(opts freehand.StrokeOptions) freehand.Outliner {
	if f.Outliner != nil {
		return f.Outliner
	}
	return freehand.Stroke{Options: opts}
}

// Create builds a new element of the given kind at version 1. A missing id
// is generated, and geometric kinds get a fresh seed unless p.Rough already
// carries one.
func (f *Factory) Create(kind Kind, p Params) (Element, error) {
	el := Element{
		ID:      p.ID,
		Version: 1,
		Visible: true,
	}
	if el.ID == "" {
		el.ID = f.id()
	}
	return f.derive(kind, el, p)
}

// Update re-derives prev with patch applied. Everything the patch does not
// set is carried over, including the seed, and the version is incremented.
func (f *Factory) Update(prev Element, patch Patch) (Element, error) {
	p := Params{ID: prev.ID, Coords: prev.Coords}
	if len(patch.Coords) > 0 {
		p.Coords = patch.Coords
	}
	if prev.Rough != nil {
		r := *prev.Rough
		p.Rough = &r
	}

	switch s := prev.Shape.(type) {
	case Rectangle, Ellipse, Line, Diamond, Polygon:
	case Freedraw:
		opts := s.Options
		p.Stroke = &opts
	case Text:
		p.Coords = p.Coords[:min(len(p.Coords), 1)]
		p.Text = s.Text.RawText
		if patch.Text != nil {
			p.Text = *patch.Text
		}
		font := s.Font
		if patch.Font != nil {
			font = *patch.Font
		}
		p.Font = &font
		p.LineHeight = s.LineHeight
		if patch.LineHeight != nil {
			p.LineHeight = *patch.LineHeight
		}
	case Image:
		p.Image = &ImageSource{AssetID: s.AssetID, Width: s.NaturalWidth, Height: s.NaturalHeight}
	default:
		return Element{}, fmt.Errorf("update %s: %w %T", prev.ID, ErrUnknownVariant, prev.Shape)
	}

	next := Element{
		ID:          prev.ID,
		ZIndex:      prev.ZIndex,
		Version:     prev.Version + 1,
		Visible:     prev.Visible,
		Locked:      prev.Locked,
		SoftDeleted: prev.SoftDeleted,
	}
	return f.derive(prev.Kind(), next, p)
}

func (f *Factory) derive(kind Kind, el Element, p Params) (Element, error) {
	coords := slices.Clone(p.Coords)
	el.UpdatedAt = f.now()

	switch kind {
	case KindRectangle, KindEllipse, KindLine:
		if len(coords) != 2 {
			return Element{}, invalid(kind, "exactly 2 points", len(coords))
		}
		switch kind {
		case KindRectangle:
			el.Shape = Rectangle{}
		case KindEllipse:
			el.Shape = Ellipse{}
		default:
			el.Shape = Line{}
		}

	case KindDiamond:
		if len(coords) != 2 {
			return Element{}, invalid(kind, "exactly 2 points", len(coords))
		}
		el.Shape = Diamond{Vertices: diamondVertices(coords[0], coords[1])}

	case KindPolygon:
		if len(coords) < 3 {
			return Element{}, invalid(kind, "at least 3 points", len(coords))
		}
		el.Shape = Polygon{Vertices: slices.Clone(coords)}

	case KindFreedraw:
		if len(coords) < 1 {
			return Element{}, invalid(kind, "at least 1 point", len(coords))
		}
		opts := freehand.DefaultStrokeOptions
		if p.Stroke != nil {
			opts = *p.Stroke
		}
		outline, path := freehand.Build(coords, f.outliner(opts))
		el.Shape = Freedraw{StrokePoints: coords, Options: opts, Outline: outline, Path: path}

	case KindText:
		if len(coords) != 1 {
			return Element{}, invalid(kind, "exactly 1 anchor point", len(coords))
		}
		font := DefaultFont
		if p.Font != nil {
			font = *p.Font
		}
		text := NewTextObject(p.Text)
		m, err := f.measurer().Measure(text.Lines, font)
		if err != nil {
			return Element{}, fmt.Errorf("measure text: %w", err)
		}
		lineHeight := p.LineHeight
		if lineHeight <= 0 {
			lineHeight = m.LineHeight
		}
		coords = append(coords, coords[0].Add(geom.Pt(m.Width, m.Height)))
		el.Shape = Text{Font: font, Text: text, Baseline: m.Baseline, LineHeight: lineHeight}

	case KindImage:
		if len(coords) != 2 {
			return Element{}, invalid(kind, "exactly 2 points", len(coords))
		}
		if p.Image == nil {
			return Element{}, fmt.Errorf("%w: image element without a source", ErrInvalidGeometry)
		}
		el.Shape = Image{AssetID: p.Image.AssetID, NaturalWidth: p.Image.Width, NaturalHeight: p.Image.Height}

	default:
		return Element{}, fmt.Errorf("create: %w %q", ErrUnknownVariant, kind)
	}

	if roughKind(kind) {
		r := DefaultRoughSettings()
		if p.Rough != nil {
			r = *p.Rough
		}
		if r.Seed == 0 {
			r.Seed = f.seed()
		}
		r, err := r.normalize()
		if err != nil {
			return Element{}, err
		}
		el.Rough = &r
	}

	el.Coords = coords
	b := el.Bounds()
	el.Width, el.Height = b.Width, b.Height
	return el, nil
}

// roughKind reports whether kind is drawn by the sketchy renderer.
func roughKind(kind Kind) bool {
	switch kind {
	case KindRectangle, KindEllipse, KindLine, KindDiamond, KindPolygon:
		return true
	}
	return false
}

func diamondVertices(a, b geom.Point) []geom.Point {
	mid := a.Mid(b)
	return []geom.Point{
		{X: mid.X, Y: a.Y},
		{X: b.X, Y: mid.Y},
		{X: mid.X, Y: b.Y},
		{X: a.X, Y: mid.Y},
	}
}

func invalid(kind Kind, want string, got int) error {
	return fmt.Errorf("%w: %s needs %s, got %d", ErrInvalidGeometry, kind, want, got)
}
