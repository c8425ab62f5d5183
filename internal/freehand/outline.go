package freehand

import (
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/inamate/sketchboard/internal/geom"
)

// Outliner converts raw stroke samples into an outline polygon that encloses
// the painted area of the stroke.
type Outliner interface {
	Outline(samples []geom.Point) []geom.Point
}

// StrokeOptions configure the default outliner.
type StrokeOptions struct {
	// Size is the stroke diameter in world units.
	Size float64 `json:"size"`
	// Streamline in [0, 1) pulls each sample towards the previous one;
	// higher values give smoother, laggier strokes.
	Streamline float64 `json:"streamline"`
}

// DefaultStrokeOptions are used when no options are configured.
var DefaultStrokeOptions = StrokeOptions{Size: 8, Streamline: 0.5}

// Stroke is a constant-width outliner. It has no pressure or taper model.
type Stroke struct {
	Options StrokeOptions
}

// minSpacing drops samples closer than this to the previous kept sample.
const minSpacing = 0.5

// Outline implements Outliner. It returns the left side of the stroke
// followed by the right side in reverse, which walks the boundary once.
func (s Stroke) Outline(samples []geom.Point) []geom.Point {
	pts := s.streamline(samples)
	if len(pts) < 2 {
		return nil
	}

	radius := s.Options.Size / 2
	left := make([]geom.Point, len(pts))
	right := make([]geom.Point, len(pts))
	for i, p := range pts {
		prev := pts[max(i-1, 0)]
		next := pts[min(i+1, len(pts)-1)]
		n := next.Sub(prev).Normalize().Perp().Scale(radius)
		left[i] = p.Add(n)
		right[i] = p.Sub(n)
	}

	outline := make([]geom.Point, 0, 2*len(pts))
	outline = append(outline, left...)
	for i := len(right) - 1; i >= 0; i-- {
		outline = append(outline, right[i])
	}
	return outline
}

func (s Stroke) streamline(samples []geom.Point) []geom.Point {
	if len(samples) == 0 {
		return nil
	}
	t := 1 - max(0, min(s.Options.Streamline, 0.99))
	out := []geom.Point{samples[0]}
	prev := samples[0]
	for _, p := range samples[1:] {
		p = prev.Lerp(p, t)
		if geom.Distance(p, out[len(out)-1]) < minSpacing {
			continue
		}
		out = append(out, p)
		prev = p
	}
	return out
}

// Build runs samples through the outliner and stitches the result into a
// path. Fewer than four samples produce an empty outline and path.
func Build(samples []geom.Point, o Outliner) ([]geom.Point, Path) {
	if len(samples) < 4 {
		return nil, Path{}
	}
	outline := o.Outline(samples)
	return outline, PathFromOutline(outline)
}

// Triangulate splits a simple polygon into triangles for renderers that can
// only fill triangle meshes.
func Triangulate(polygon []geom.Point) ([][3]geom.Point, error) {
	if len(polygon) < 3 {
		return nil, fmt.Errorf("triangulate: degenerate polygon (%d vertices < 3)", len(polygon))
	}

	coords := make([]float64, len(polygon)*2)
	for i, p := range polygon {
		coords[i*2] = p.X
		coords[i*2+1] = p.Y
	}

	indices, err := earcut.Earcut(coords, nil, 2)
	if err != nil {
		return nil, fmt.Errorf("triangulate %d-vertex polygon: %w", len(polygon), err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("triangulate: index count %d not divisible by 3", len(indices))
	}

	tris := make([][3]geom.Point, len(indices)/3)
	for i := range tris {
		tris[i] = [3]geom.Point{
			polygon[indices[i*3]],
			polygon[indices[i*3+1]],
			polygon[indices[i*3+2]],
		}
	}
	return tris, nil
}
