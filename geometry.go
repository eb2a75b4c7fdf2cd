package physics

// lineIntersect finds the intersection point of the infinite lines
// through (a1,a2) and (b1,b2). Only ever called once the caller
// already knows the segments cross, so the degenerate parallel case
// just returns a1 rather than failing.
func lineIntersect(a1, a2, b1, b2 Vec2) Vec2 {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	denom := d1.Cross(d2)
	if denom == 0 {
		physicsLog.Warn("lineIntersect: parallel segments, returning a1", "a1", a1, "a2", a2, "b1", b1, "b2", b2)
		return a1
	}
	diff := b1.Sub(a1)
	t := diff.Cross(d2) / denom
	return a1.Add(d1.Scale(t))
}

// sameSide reports whether p1 and p2 lie on the same side of the
// line through a and b.
func sameSide(a, b, p1, p2 Vec2) bool {
	edge := b.Sub(a)
	c1 := edge.Cross(p1.Sub(a))
	c2 := edge.Cross(p2.Sub(a))
	return c1*c2 >= 0
}

// nearestPointOnLine projects p onto the infinite line through a and b.
func nearestPointOnLine(a, b, p Vec2) Vec2 {
	edge := b.Sub(a)
	lenSq := edge.LenSq()
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(edge) / lenSq
	return a.Add(edge.Scale(t))
}

// voronoiRegion classifies p against the segment (a,b): -1 before a,
// +1 past b, 0 between the two perpendicular planes through a and b.
func voronoiRegion(a, b, p Vec2) int {
	edge := b.Sub(a)
	lenSq := edge.LenSq()
	if lenSq == 0 {
		return 0
	}
	t := p.Sub(a).Dot(edge) / lenSq
	if t < 0 {
		return -1
	}
	if t > 1 {
		return 1
	}
	return 0
}
