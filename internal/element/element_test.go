package element

import (
	"errors"
	"fmt"
	"testing"

	"github.com/inamate/sketchboard/internal/geom"
)

// fixedMeasurer reports 10 units per rune and 20 per line.
type fixedMeasurer struct{}

func (fixedMeasurer) Measure(lines []string, f Font) (Metrics, error) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	n := float64(len(lines))
	return Metrics{Width: float64(w) * 10, Height: n * 20, Baseline: (n-1)*20 + 16, LineHeight: 20}, nil
}

func testFactory() *Factory {
	ids, seeds := 0, int64(0)
	return &Factory{
		NewID:    func() string { ids++; return fmt.Sprintf("el_%d", ids) },
		NewSeed:  func() int64 { seeds++; return seeds * 7919 },
		Measurer: fixedMeasurer{},
	}
}

func pts(xy ...float64) []geom.Point {
	out := make([]geom.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, geom.Pt(xy[i], xy[i+1]))
	}
	return out
}

func TestCreateValidatesCoords(t *testing.T) {
	tests := []struct {
		kind   Kind
		coords []geom.Point
		ok     bool
	}{
		{KindRectangle, pts(0, 0, 1, 1), true},
		{KindRectangle, pts(0, 0), false},
		{KindRectangle, pts(0, 0, 1, 1, 2, 2), false},
		{KindLine, pts(0, 0, 1, 1), true},
		{KindLine, pts(0, 0), false},
		{KindEllipse, pts(0, 0, 1, 1), true},
		{KindEllipse, nil, false},
		{KindDiamond, pts(0, 0, 1, 1), true},
		{KindDiamond, pts(0, 0, 1, 1, 2, 2, 3, 3), false},
		{KindPolygon, pts(0, 0, 1, 1, 2, 0), true},
		{KindPolygon, pts(0, 0, 1, 1), false},
		{KindText, pts(0, 0), true},
		{KindText, pts(0, 0, 5, 5), false},
		{KindFreedraw, pts(0, 0), true},
		{KindFreedraw, nil, false},
	}
	f := testFactory()
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.kind, len(tt.coords)), func(t *testing.T) {
			_, err := f.Create(tt.kind, Params{Coords: tt.coords})
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidGeometry) {
				t.Fatalf("err = %v, want ErrInvalidGeometry", err)
			}
		})
	}
}

func TestCreateUnknownKind(t *testing.T) {
	_, err := testFactory().Create("star", Params{Coords: pts(0, 0, 1, 1)})
	if !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("err = %v, want ErrUnknownVariant", err)
	}
}

func TestCreateDefaults(t *testing.T) {
	el, err := testFactory().Create(KindRectangle, Params{Coords: pts(50, 30, 10, 10)})
	if err != nil {
		t.Fatal(err)
	}
	if el.ID != "el_1" || el.Version != 1 || !el.Visible || el.Locked || el.SoftDeleted {
		t.Errorf("unexpected base fields: %+v", el)
	}
	if el.Width != 40 || el.Height != 20 {
		t.Errorf("size = %vx%v, want 40x20", el.Width, el.Height)
	}
	if el.Rough == nil || el.Rough.Seed == 0 {
		t.Fatal("rectangle must get a seed")
	}
	if el.Rough.Stroke != "#000000" || el.Rough.HachureAngle != -41 {
		t.Errorf("rough defaults not applied: %+v", el.Rough)
	}
	if el.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestCreateKeepsSuppliedIDAndSeed(t *testing.T) {
	r := DefaultRoughSettings()
	r.Seed = 42
	el, err := testFactory().Create(KindLine, Params{ID: "mine", Coords: pts(0, 0, 3, 4), Rough: &r})
	if err != nil {
		t.Fatal(err)
	}
	if el.ID != "mine" || el.Seed() != 42 {
		t.Errorf("id=%q seed=%d", el.ID, el.Seed())
	}
}

func TestFreshSeedsDiffer(t *testing.T) {
	var f Factory
	f.Measurer = fixedMeasurer{}
	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		el, err := f.Create(KindEllipse, Params{Coords: pts(0, 0, 1, 1)})
		if err != nil {
			t.Fatal(err)
		}
		seen[el.Seed()] = true
	}
	if len(seen) < 45 {
		t.Errorf("only %d distinct seeds in 50 creations", len(seen))
	}
}

func TestUpdatePreservesSeed(t *testing.T) {
	for _, kind := range []Kind{KindRectangle, KindLine, KindEllipse, KindDiamond} {
		t.Run(string(kind), func(t *testing.T) {
			s := NewStore(testFactory())
			el, err := s.Create(kind, Params{Coords: pts(10, 10, 10, 10)})
			if err != nil {
				t.Fatal(err)
			}
			seed := el.Seed()
			for i := 1; i <= 3; i++ {
				el, err = s.Update(el.ID, Patch{Coords: pts(10, 10, 10+float64(i)*10, 40)})
				if err != nil {
					t.Fatal(err)
				}
				if el.Seed() != seed {
					t.Fatalf("update %d changed seed %d -> %d", i, seed, el.Seed())
				}
				if el.Version != i+1 {
					t.Errorf("version = %d, want %d", el.Version, i+1)
				}
			}
		})
	}
}

func TestDrawRectangleScenario(t *testing.T) {
	s := NewStore(testFactory())
	el, err := s.Create(KindRectangle, Params{Coords: pts(10, 10, 10, 10)})
	if err != nil {
		t.Fatal(err)
	}
	seed := el.Seed()
	el, err = s.Update(el.ID, Patch{Coords: pts(10, 10, 30, 20)})
	if err != nil {
		t.Fatal(err)
	}
	el, err = s.Update(el.ID, Patch{Coords: pts(10, 10, 50, 30)})
	if err != nil {
		t.Fatal(err)
	}
	if el.Coords[0] != geom.Pt(10, 10) || el.Coords[1] != geom.Pt(50, 30) {
		t.Errorf("coords = %v", el.Coords)
	}
	if el.Width != 40 || el.Height != 20 {
		t.Errorf("size = %vx%v, want 40x20", el.Width, el.Height)
	}
	if el.Seed() != seed {
		t.Errorf("seed changed %d -> %d", seed, el.Seed())
	}
}

func TestDiamondVertices(t *testing.T) {
	el, err := testFactory().Create(KindDiamond, Params{Coords: pts(0, 0, 100, 50)})
	if err != nil {
		t.Fatal(err)
	}
	d := el.Shape.(Diamond)
	want := pts(50, 0, 100, 25, 50, 50, 0, 25)
	for i := range want {
		if d.Vertices[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, d.Vertices[i], want[i])
		}
	}
	if len(el.Coords) != 2 {
		t.Errorf("diamond keeps its box corners as coords, got %v", el.Coords)
	}
}

func TestTextCreateAndUpdate(t *testing.T) {
	s := NewStore(testFactory())
	font := Font{Family: "serif", Size: 20, Style: "normal", Variant: "normal", Weight: 700}
	el, err := s.Create(KindText, Params{Coords: pts(5, 5), Text: "hi\r\nthere", Font: &font})
	if err != nil {
		t.Fatal(err)
	}
	txt := el.Shape.(Text)
	if len(txt.Text.Lines) != 2 || txt.Text.Lines[1] != "there" {
		t.Fatalf("lines = %q", txt.Text.Lines)
	}
	if el.Width != 50 || el.Height != 40 {
		t.Errorf("size = %vx%v, want 50x40", el.Width, el.Height)
	}
	if len(el.Coords) != 2 || el.Coords[1] != geom.Pt(55, 45) {
		t.Errorf("coords = %v", el.Coords)
	}
	if txt.LineHeight != 20 {
		t.Errorf("line height = %v, want measured 20", txt.LineHeight)
	}

	el, err = s.Update(el.ID, Patch{Coords: pts(100, 100)})
	if err != nil {
		t.Fatal(err)
	}
	txt = el.Shape.(Text)
	if txt.Font != font || txt.Text.RawText != "hi\nthere" {
		t.Errorf("coords-only update lost font or text: %+v", txt)
	}
	if el.Coords[0] != geom.Pt(100, 100) || el.Coords[1] != geom.Pt(150, 140) {
		t.Errorf("coords = %v", el.Coords)
	}

	text, lh := "done", 33.0
	el, err = s.Update(el.ID, Patch{Text: &text, LineHeight: &lh})
	if err != nil {
		t.Fatal(err)
	}
	txt = el.Shape.(Text)
	if txt.Text.RawText != "done" || txt.LineHeight != 33 || el.Coords[0] != geom.Pt(100, 100) {
		t.Errorf("text update = %+v coords %v", txt, el.Coords)
	}
	if el.Rough != nil {
		t.Error("text elements have no rough settings")
	}
}

func TestFreedrawPath(t *testing.T) {
	s := NewStore(testFactory())
	el, err := s.Create(KindFreedraw, Params{Coords: pts(0, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if !el.Shape.(Freedraw).Path.IsEmpty() {
		t.Fatal("single sample should give an empty path")
	}
	el, err = s.Update(el.ID, Patch{Coords: pts(0, 0, 10, 0, 20, 5, 30, 10, 40, 10)})
	if err != nil {
		t.Fatal(err)
	}
	fd := el.Shape.(Freedraw)
	if fd.Path.IsEmpty() || len(fd.StrokePoints) != 5 {
		t.Fatalf("path empty=%v samples=%d", fd.Path.IsEmpty(), len(fd.StrokePoints))
	}
	if el.Width != 40 || el.Height != 10 {
		t.Errorf("size = %vx%v", el.Width, el.Height)
	}
}

type bogus struct{}

func (bogus) Kind() Kind { return "bogus" }
func (bogus) isShape()   {}

func TestUpdateUnknownVariant(t *testing.T) {
	_, err := testFactory().Update(Element{ID: "x", Coords: pts(0, 0, 1, 1), Shape: bogus{}}, Patch{})
	if !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("err = %v, want ErrUnknownVariant", err)
	}
}

func TestStore(t *testing.T) {
	s := NewStore(testFactory())
	a, _ := s.Create(KindRectangle, Params{Coords: pts(0, 0, 1, 1)})
	b, _ := s.Create(KindLine, Params{Coords: pts(0, 0, 1, 1)})
	c, _ := s.Create(KindEllipse, Params{Coords: pts(0, 0, 1, 1)})
	if a.ZIndex >= b.ZIndex || b.ZIndex >= c.ZIndex {
		t.Fatalf("z-indices not increasing: %d %d %d", a.ZIndex, b.ZIndex, c.ZIndex)
	}

	// Updating the bottom element must not raise it.
	if _, err := s.Update(a.ID, Patch{Coords: pts(0, 0, 9, 9)}); err != nil {
		t.Fatal(err)
	}
	ordered := s.Ordered()
	if len(ordered) != 3 || ordered[0].ID != a.ID || ordered[2].ID != c.ID {
		t.Errorf("order = %v", ids(ordered))
	}

	if !s.Delete(b.ID) || s.Delete(b.ID) {
		t.Error("Delete should report existence")
	}
	if _, err := s.Update(b.ID, Patch{}); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("err = %v, want ErrUnknownElement", err)
	}

	d, _ := s.Create(KindRectangle, Params{Coords: pts(0, 0, 1, 1)})
	if d.ZIndex <= c.ZIndex {
		t.Errorf("new element z=%d not above %d", d.ZIndex, c.ZIndex)
	}
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d", s.Len())
	}
}

func ids(els []Element) []string {
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.ID
	}
	return out
}

func TestRoughStrokeNormalised(t *testing.T) {
	r := DefaultRoughSettings()
	r.Stroke = "#F00"
	el, err := testFactory().Create(KindRectangle, Params{Coords: pts(0, 0, 1, 1), Rough: &r})
	if err != nil {
		t.Fatal(err)
	}
	if el.Rough.Stroke != "#ff0000" {
		t.Errorf("stroke = %q", el.Rough.Stroke)
	}

	r.Stroke = "red-ish"
	if _, err := testFactory().Create(KindRectangle, Params{Coords: pts(0, 0, 1, 1), Rough: &r}); !errors.Is(err, ErrInvalidStyle) {
		t.Errorf("err = %v, want ErrInvalidStyle", err)
	}
}

func TestTranslated(t *testing.T) {
	el, _ := testFactory().Create(KindText, Params{Coords: pts(1, 1), Text: "a"})
	got := el.Translated(geom.Pt(2, 3))
	if len(got) != 1 || got[0] != geom.Pt(3, 4) {
		t.Errorf("Translated = %v", got)
	}
}

func TestFactoryMeasure(t *testing.T) {
	m, err := testFactory().Measure("abc\r\nd", DefaultFont)
	if err != nil {
		t.Fatal(err)
	}
	if m.Width != 30 || m.Height != 40 {
		t.Errorf("metrics = %+v", m)
	}
}
