package physics

import "math"

// contactPoint is one candidate contact: pa lies on A, pb on B.
type contactPoint struct {
	pa, pb Vec2
}

// manifold is the output of V-Clip: up to two contact points between
// a reference edge and an incident edge. pa always lies on ov.a and pb
// on ov.b, whichever of the two supplies the reference edge.
type manifold struct {
	points []contactPoint
}

// findClipEdge locates the incident edge on B (via support in
// -normal) and the candidate reference edge on A (via support in
// normal), each picked from the two edges adjacent to the support
// vertex by whichever is more perpendicular to the normal. It then
// compares the two candidates and returns them with the more
// perpendicular one first (the true reference edge) — swapping roles
// if the initial A-side guess turns out less perpendicular than the
// B-side guess.
func findClipEdge(a, b *Body, ta, tb Mat2d, normal Vec2) (refS, refE Vec2, incS, incE Vec2) {
	_, idxB := b.shape.Support(tb, normal.Neg())
	sb := tb.MulVec(b.shape.Vertices[idxB])

	nb := len(b.shape.Vertices)
	prevB := tb.MulVec(b.shape.Vertices[(idxB-1+nb)%nb])
	nextB := tb.MulVec(b.shape.Vertices[(idxB+1)%nb])
	r1 := math.Abs(prevB.To(sb).Dot(normal))
	r2 := math.Abs(nextB.To(sb).Dot(normal))
	var candIncS, candIncE Vec2
	if math.Abs(r1) < math.Abs(r2) {
		candIncS, candIncE = prevB, sb
	} else {
		candIncS, candIncE = sb, nextB
	}

	_, idxA := a.shape.Support(ta, normal)
	sa := ta.MulVec(a.shape.Vertices[idxA])

	na := len(a.shape.Vertices)
	prevA := ta.MulVec(a.shape.Vertices[(idxA-1+na)%na])
	nextA := ta.MulVec(a.shape.Vertices[(idxA+1)%na])
	ra1 := math.Abs(prevA.To(sa).Dot(normal))
	ra2 := math.Abs(nextA.To(sa).Dot(normal))
	var candRefS, candRefE Vec2
	if math.Abs(ra1) < math.Abs(ra2) {
		candRefS, candRefE = prevA, sa
	} else {
		candRefS, candRefE = sa, nextA
	}

	refPerp := math.Abs(candRefS.To(candRefE).Dot(normal))
	incPerp := math.Abs(candIncS.To(candIncE).Dot(normal))
	if refPerp > incPerp {
		// The B-side edge is actually the more perpendicular one: swap roles.
		return candIncS, candIncE, candRefS, candRefE
	}
	return candRefS, candRefE, candIncS, candIncE
}

func vclipPolygonPolygon(ov overlap) manifold {
	refS, refE, incS, incE := findClipEdge(ov.a, ov.b, ov.ta, ov.tb, ov.normal)

	refN := refE.Sub(refS).Norm()

	vs := voronoiRegion(refS, refE, incS)
	ve := voronoiRegion(refS, refE, incE)
	if vs == -1 {
		incS = lineIntersect(refS, refS.Add(ov.normal), incS, incE)
	}
	if ve == -1 {
		incE = lineIntersect(refS, refS.Add(ov.normal), incS, incE)
	}
	vs = voronoiRegion(refS, refE, incS)
	ve = voronoiRegion(refS, refE, incE)
	if vs == 1 {
		incS = lineIntersect(refE, refE.Add(ov.normal), incS, incE)
	}
	if ve == 1 {
		incE = lineIntersect(refE, refE.Add(ov.normal), incS, incE)
	}

	farSide := refS.Add(refN.SkewT())
	clipS := !sameSide(refS, refE, farSide, incS)
	clipE := !sameSide(refS, refE, farSide, incE)
	if clipS && !clipE {
		incS = lineIntersect(refS, refE, incS, incE)
	}
	if !clipS && clipE {
		incE = lineIntersect(refS, refE, incS, incE)
	}

	pa1 := nearestPointOnLine(refS, refE, incS)
	pa2 := nearestPointOnLine(refS, refE, incE)

	// A reference edge whose outward normal faces against ov.normal came
	// from ov.b (findClipEdge swapped roles): the projected points then
	// lie on B and the incident points on A.
	if refN.SkewT().Dot(ov.normal) < 0 {
		return manifold{points: []contactPoint{
			{pa: incS, pb: pa1},
			{pa: incE, pb: pa2},
		}}
	}

	return manifold{points: []contactPoint{
		{pa: pa1, pb: incS},
		{pa: pa2, pb: incE},
	}}
}

func vclipPolygonCircle(ov overlap) manifold {
	poly, circle := ov.a, ov.b

	supportA, idxA := poly.shape.Support(ov.ta, ov.normal)
	supportA = ov.ta.MulVec(supportA)

	center := ov.tb.MulVec(Vec2Zero)
	supportB := center.Sub(ov.normal.Scale(circle.shape.Radius))

	n := len(poly.shape.Vertices)
	p1 := ov.ta.MulVec(poly.shape.Vertices[(idxA-1+n)%n])
	p2 := ov.ta.MulVec(poly.shape.Vertices[(idxA+1)%n])
	r1 := math.Abs(p1.To(supportA).Dot(ov.normal))
	r2 := math.Abs(p2.To(supportA).Dot(ov.normal))

	var refS, refE Vec2
	if r1 < r2 {
		refS, refE = p1, supportA
	} else {
		refS, refE = supportA, p2
	}

	return manifold{points: []contactPoint{
		{pa: nearestPointOnLine(refS, refE, supportB), pb: supportB},
	}}
}

func vclipCircleCircle(ov overlap) manifold {
	centerA := ov.ta.MulVec(Vec2Zero)
	centerB := ov.tb.MulVec(Vec2Zero)
	pa := centerA.Add(ov.normal.Scale(ov.a.shape.Radius))
	pb := centerB.Sub(ov.normal.Scale(ov.b.shape.Radius))
	return manifold{points: []contactPoint{{pa: pa, pb: pb}}}
}

// vclip dispatches to the right manifold generator for an overlap
// already known to be real (ov.isOverlap).
func vclip(ov overlap) manifold {
	switch {
	case ov.a.shape.Kind == ShapePolygon && ov.b.shape.Kind == ShapePolygon:
		return vclipPolygonPolygon(ov)
	case ov.a.shape.Kind == ShapePolygon && ov.b.shape.Kind == ShapeCircle:
		return vclipPolygonCircle(ov)
	case ov.a.shape.Kind == ShapeCircle && ov.b.shape.Kind == ShapeCircle:
		return vclipCircleCircle(ov)
	default:
		return manifold{}
	}
}
