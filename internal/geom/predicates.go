package geom

// Segment is a closed line segment between A and B.
type Segment struct {
	A, B Point
}

// Orientation classifies the turn made by three ordered points.
type Orientation int

const (
	Collinear Orientation = iota
	Clockwise
	CounterClockwise
)

// Orient returns the orientation of the ordered triple (a, b, c).
// Clockwise is with respect to a y-down screen, matching the canvas.
func Orient(a, b, c Point) Orientation {
	v := (b.Y-a.Y)*(c.X-b.X) - (b.X-a.X)*(c.Y-b.Y)
	switch {
	case v > 0:
		return Clockwise
	case v < 0:
		return CounterClockwise
	default:
		return Collinear
	}
}

// withinBox reports whether q lies inside the bounding box of segment pr.
// Only meaningful once p, q, r are known to be collinear.
func withinBox(p, q, r Point) bool {
	return q.X <= max(p.X, r.X) && q.X >= min(p.X, r.X) &&
		q.Y <= max(p.Y, r.Y) && q.Y >= min(p.Y, r.Y)
}

// SegmentsIntersect reports whether two closed segments share at least one
// point, including collinear overlap and touching endpoints.
func SegmentsIntersect(s1, s2 Segment) bool {
	p1, q1, p2, q2 := s1.A, s1.B, s2.A, s2.B
	o1 := Orient(p1, q1, p2)
	o2 := Orient(p1, q1, q2)
	o3 := Orient(p2, q2, p1)
	o4 := Orient(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}
	switch {
	case o1 == Collinear && withinBox(p1, p2, q1):
		return true
	case o2 == Collinear && withinBox(p1, q2, q1):
		return true
	case o3 == Collinear && withinBox(p2, p1, q2):
		return true
	case o4 == Collinear && withinBox(p2, q1, q2):
		return true
	}
	return false
}

// NearestOnSegment projects p onto s and clamps the projection parameter to
// the segment ends.
func NearestOnSegment(p Point, s Segment) Point {
	d := s.B.Sub(s.A)
	l2 := Dot(d, d)
	if l2 == 0 {
		return s.A
	}
	t := Dot(p.Sub(s.A), d) / l2
	t = max(0, min(1, t))
	return s.A.Add(d.Scale(t))
}

// PointOnSegment reports whether p lies within eps of segment s.
func PointOnSegment(p Point, s Segment, eps float64) bool {
	return Distance(p, NearestOnSegment(p, s)) <= eps
}

// PointInPolygon tests containment by casting a horizontal ray from p towards
// +X and counting the polygon edges it crosses. Points on the boundary are
// inside. Fewer than three vertices never contain anything.
func PointInPolygon(p Point, vertices []Point) bool {
	n := len(vertices)
	if n < 3 {
		return false
	}

	far := p.X
	for _, v := range vertices {
		far = max(far, v.X)
	}
	ray := Segment{A: p, B: Point{far + 1, p.Y}}

	crossings := 0
	for i := 0; i < n; i++ {
		edge := Segment{A: vertices[i], B: vertices[(i+1)%n]}
		if Orient(edge.A, p, edge.B) == Collinear && withinBox(edge.A, p, edge.B) {
			return true
		}
		// Half-open rule: a vertex lying on the ray is counted for exactly
		// one of its two edges.
		if (edge.A.Y > p.Y) == (edge.B.Y > p.Y) {
			continue
		}
		if SegmentsIntersect(ray, edge) {
			crossings++
		}
	}
	return crossings%2 == 1
}

// PointInEllipse tests p against the ellipse inscribed in bbox using the
// normalised ellipse equation, allowing a result of up to 1+eps. A box with
// no area has no inside.
func PointInEllipse(p Point, bbox Rect, eps float64) bool {
	rx := bbox.Width / 2
	ry := bbox.Height / 2
	if rx <= 0 || ry <= 0 {
		return false
	}
	c := bbox.Center()
	nx := (p.X - c.X) / rx
	ny := (p.Y - c.Y) / ry
	return nx*nx+ny*ny <= 1+eps
}
