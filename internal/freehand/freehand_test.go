package freehand

import (
	"testing"

	"github.com/inamate/sketchboard/internal/geom"
)

func line(n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(float64(i)*10, 0)
	}
	return pts
}

func TestPathFromOutlineTooFewPoints(t *testing.T) {
	for n := 0; n < 4; n++ {
		if p := PathFromOutline(line(n)); !p.IsEmpty() {
			t.Errorf("%d points: got %d segments, want empty path", n, len(p.Segments))
		}
	}
}

func TestPathFromOutline(t *testing.T) {
	outline := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10), geom.Pt(-5, 5)}
	p := PathFromOutline(outline)

	want := []Segment{
		MoveTo{Point: geom.Pt(0, 0)},
		QuadTo{Control: geom.Pt(10, 0), Point: geom.Pt(10, 5)},
		SmoothQuadTo{Point: geom.Pt(5, 10)},
		SmoothQuadTo{Point: geom.Pt(-2.5, 7.5)},
		Close{},
	}
	if len(p.Segments) != len(want) {
		t.Fatalf("got %d segments, want %d: %#v", len(p.Segments), len(want), p.Segments)
	}
	for i := range want {
		if p.Segments[i] != want[i] {
			t.Errorf("segment %d = %#v, want %#v", i, p.Segments[i], want[i])
		}
	}
}

func TestPathIsClosed(t *testing.T) {
	for n := 4; n < 12; n++ {
		p := PathFromOutline(line(n))
		if p.IsEmpty() {
			t.Fatalf("%d points: empty path", n)
		}
		if _, ok := p.Segments[0].(MoveTo); !ok {
			t.Errorf("%d points: first segment %T, want MoveTo", n, p.Segments[0])
		}
		if _, ok := p.Segments[len(p.Segments)-1].(Close); !ok {
			t.Errorf("%d points: last segment %T, want Close", n, p.Segments[len(p.Segments)-1])
		}
	}
}

func TestCommands(t *testing.T) {
	p := PathFromOutline([]geom.Point{geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 2), geom.Pt(0, 2)})
	cmds := p.Commands()
	ops := ""
	for _, c := range cmds {
		ops += c[0].(string)
	}
	if ops != "MQTZ" {
		t.Fatalf("ops = %q, want MQTZ", ops)
	}
	if q := cmds[1]; q[1] != 2.0 || q[2] != 0.0 || q[3] != 2.0 || q[4] != 1.0 {
		t.Errorf("Q command = %v", q)
	}
}

func TestBuild(t *testing.T) {
	o := Stroke{Options: DefaultStrokeOptions}

	outline, p := Build(line(3), o)
	if outline != nil || !p.IsEmpty() {
		t.Fatal("three samples should give an empty stroke")
	}

	outline, p = Build(line(10), o)
	if len(outline) < 4 || p.IsEmpty() {
		t.Fatalf("outline %d points, path empty=%v", len(outline), p.IsEmpty())
	}
	poly := p.Flatten(8)
	if !geom.PointInPolygon(geom.Pt(20, 0), poly) {
		t.Error("stroke centre line should be inside the outline")
	}
	if geom.PointInPolygon(geom.Pt(20, 20), poly) {
		t.Error("point far from the stroke should be outside")
	}
}

func TestOutlineDropsCoincidentSamples(t *testing.T) {
	o := Stroke{Options: StrokeOptions{Size: 4}}
	same := []geom.Point{geom.Pt(1, 1), geom.Pt(1, 1), geom.Pt(1, 1), geom.Pt(1, 1)}
	if got := o.Outline(same); got != nil {
		t.Errorf("outline of a single repeated point = %v, want nil", got)
	}

	got := o.Outline([]geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)})
	want := []geom.Point{geom.Pt(0, 2), geom.Pt(10, 2), geom.Pt(10, -2), geom.Pt(0, -2)}
	if len(got) != len(want) {
		t.Fatalf("outline = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("outline[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTriangulate(t *testing.T) {
	square := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10)}
	tris, err := Triangulate(square)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	if _, err := Triangulate(square[:2]); err == nil {
		t.Error("expected error for a degenerate polygon")
	}
}
