package physics

import "math"

// ShapeKind discriminates the Shape tagged union. No inheritance, no
// shared vtable: every operation dispatches on Kind.
type ShapeKind int

const (
	ShapePolygon ShapeKind = iota
	ShapeCircle
)

// Shape is either a Polygon or a Circle. Exactly one of Vertices /
// Radius is meaningful, selected by Kind.
type Shape struct {
	Kind ShapeKind

	// Polygon fields. Vertices are ordered CCW and centered on the
	// local origin (the centroid); NewPolygon enforces both.
	Vertices []Vec2

	// Circle fields.
	Radius float64

	bound AABB
	area  float64
}

// NewPolygon builds a polygon shape from an ordered vertex list,
// re-centering it on its own centroid and forcing CCW winding. n must
// be >= 3 and the vertices must not be colinear (zero area).
func NewPolygon(vertices []Vec2) (*Shape, error) {
	if len(vertices) < 3 {
		return nil, ErrConstructionInvalid
	}
	verts := make([]Vec2, len(vertices))
	copy(verts, vertices)

	verts = makeCCW(verts)
	area := signedArea(verts)
	if math.Abs(area) < 1e-9 {
		return nil, ErrConstructionInvalid
	}
	c := centroid(verts, area)
	for i := range verts {
		verts[i] = verts[i].Sub(c)
	}

	s := &Shape{Kind: ShapePolygon, Vertices: verts}
	s.area = math.Abs(signedArea(verts))
	s.UpdateBound(0, Vec2Zero)
	return s, nil
}

// NewRectangle is a convenience constructor for an axis-aligned
// w x h rectangle centered on the local origin.
func NewRectangle(w, h float64) (*Shape, error) {
	hw, hh := w/2, h/2
	return NewPolygon([]Vec2{
		{-hw, -hh},
		{hw, -hh},
		{hw, hh},
		{-hw, hh},
	})
}

// NewCircle builds a circle shape of the given radius, centered on
// the local origin. radius must be positive.
func NewCircle(radius float64) (*Shape, error) {
	if radius <= 0 {
		return nil, ErrConstructionInvalid
	}
	s := &Shape{Kind: ShapeCircle, Radius: radius, area: math.Pi * radius * radius}
	s.UpdateBound(0, Vec2Zero)
	return s, nil
}

func (s *Shape) Area() float64 { return s.area }

func (s *Shape) Bound() AABB { return s.bound }

// Support returns the shape's local-space extreme point along dir
// (dir given in world space; transform locates the shape to compare
// candidate vertices in world space, but the returned point itself is
// always local, matching opus_shape_polygon_get_support and
// opus_shape_circle_get_support in the source this is ported from),
// plus the local vertex index the point came from (always 0 for
// circles). Ties on polygons break toward the lower index. Callers
// that need the world-space point apply the same transform themselves
// (see vclip.go).
func (s *Shape) Support(transform Mat2d, dir Vec2) (Vec2, int) {
	switch s.Kind {
	case ShapeCircle:
		return dir.WithLen(s.Radius), 0
	default:
		maxDot := -math.MaxFloat64
		maxI := 0
		for i, v := range s.Vertices {
			p := transform.MulVec(v)
			dot := p.Dot(dir)
			if dot > maxDot {
				maxDot = dot
				maxI = i
			}
		}
		return s.Vertices[maxI], maxI
	}
}

// ContainsPoint is the exact-shape stage of a point query: p is in the
// shape's own local frame (caller transforms via Body.WorldToLocal
// first). Circles test squared distance to the origin against
// Radius²; polygons test that p is on the inside (left, given CCW
// winding) of every edge, the standard convex point-in-polygon
// winding test.
func (s *Shape) ContainsPoint(p Vec2) bool {
	switch s.Kind {
	case ShapeCircle:
		return p.Dot(p) <= s.Radius*s.Radius
	default:
		n := len(s.Vertices)
		for i := 0; i < n; i++ {
			a := s.Vertices[i]
			b := s.Vertices[(i+1)%n]
			if b.Sub(a).Cross(p.Sub(a)) < 0 {
				return false
			}
		}
		return true
	}
}

// Inertia returns the moment of inertia about the local origin for a
// body of the given mass.
func (s *Shape) Inertia(mass float64) float64 {
	switch s.Kind {
	case ShapeCircle:
		return mass * s.Radius * s.Radius / 2
	default:
		return polygonInertia(s.Vertices, mass)
	}
}

// UpdateBound recomputes the world-space AABB given the body's
// rotation and position. Called once per body at the start of every
// broad-phase pass.
func (s *Shape) UpdateBound(rotation float64, position Vec2) {
	switch s.Kind {
	case ShapeCircle:
		s.bound = AABB{
			Min: Vec2{position.X - s.Radius, position.Y - s.Radius},
			Max: Vec2{position.X + s.Radius, position.Y + s.Radius},
		}
	default:
		t := RotateAbout(rotation, position)
		min := Vec2{math.MaxFloat64, math.MaxFloat64}
		max := Vec2{-math.MaxFloat64, -math.MaxFloat64}
		for _, v := range s.Vertices {
			p := t.MulVec(v)
			if p.X < min.X {
				min.X = p.X
			}
			if p.X > max.X {
				max.X = p.X
			}
			if p.Y < min.Y {
				min.Y = p.Y
			}
			if p.Y > max.Y {
				max.Y = p.Y
			}
		}
		s.bound = AABB{Min: min, Max: max}
	}
}

// makeCCW reverses the vertex order if it is wound clockwise.
func makeCCW(verts []Vec2) []Vec2 {
	if signedArea(verts) >= 0 {
		return verts
	}
	out := make([]Vec2, len(verts))
	for i, v := range verts {
		out[len(verts)-1-i] = v
	}
	return out
}

// signedArea is the shoelace-formula signed area; positive for CCW
// winding.
func signedArea(verts []Vec2) float64 {
	var sum float64
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		sum += a.Cross(b)
	}
	return sum / 2
}

func centroid(verts []Vec2, area float64) Vec2 {
	var cx, cy float64
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		cr := a.Cross(b)
		cx += (a.X + b.X) * cr
		cy += (a.Y + b.Y) * cr
	}
	if area == 0 {
		return Vec2Zero
	}
	f := 1 / (6 * area)
	return Vec2{cx * f, cy * f}
}

// polygonInertia is the standard CCW-triangle-fan moment of inertia
// about the centroid, for a polygon already centered on its centroid.
func polygonInertia(verts []Vec2, mass float64) float64 {
	var numer, denom float64
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		cr := math.Abs(a.Cross(b))
		numer += cr * (a.Dot(a) + a.Dot(b) + b.Dot(b))
		denom += cr
	}
	if denom == 0 {
		return 0
	}
	return mass / 6 * (numer / denom)
}
