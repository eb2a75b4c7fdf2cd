package physics

import "math"

// overlap is the result of a separating-axis test: the minimum
// penetration axis and depth, plus the two bodies reordered so the
// reference edge (used by V-Clip) lies on A.
type overlap struct {
	isOverlap bool

	a, b   *Body
	ta, tb Mat2d

	// normal points from a toward b.
	normal     Vec2
	separation float64
}

// axisOverlap is the minimum overlap found while projecting both
// vertex sets onto every edge normal of one polygon.
type axisOverlap struct {
	amount float64
	axis   Vec2
}

func transformedVertices(verts []Vec2, t Mat2d) []Vec2 {
	out := make([]Vec2, len(verts))
	for i, v := range verts {
		out[i] = t.MulVec(v)
	}
	return out
}

// minAxisOverlap projects every vertex of both sets onto each edge
// normal of edgeVerts (the polygon whose edges provide candidate
// axes) and keeps the minimum separating overlap. Returns a
// non-positive amount the moment any axis separates the shapes (the
// caller can stop early).
func minAxisOverlap(edgeVerts, otherVerts []Vec2) axisOverlap {
	best := axisOverlap{amount: math.MaxFloat64}
	n := len(edgeVerts)
	for i := 0; i < n; i++ {
		edge := edgeVerts[(i+1)%n].Sub(edgeVerts[i])
		axis := edge.Perp().Norm()

		minA, maxA := math.MaxFloat64, -math.MaxFloat64
		for _, v := range edgeVerts {
			d := v.Dot(axis)
			if d < minA {
				minA = d
			}
			if d > maxA {
				maxA = d
			}
		}
		minB, maxB := math.MaxFloat64, -math.MaxFloat64
		for _, v := range otherVerts {
			d := v.Dot(axis)
			if d < minB {
				minB = d
			}
			if d > maxB {
				maxB = d
			}
		}

		amount := minf(maxA-minB, maxB-minA)
		if amount < best.amount {
			best.amount = amount
			best.axis = axis
			if amount <= 0 {
				return best
			}
		}
	}
	return best
}

// referenceFaceBias makes the reference-edge tie-break sticky toward
// A's axes: B only wins when its separation is smaller by more than
// this margin. Without it, two same-size axis-aligned boxes (any
// resting stack) produce ra.amount and rb.amount equal to within
// sub-ULP floating noise, so `ra.amount < rb.amount` flips which body
// supplies the reference edge from frame to frame; each flip
// perturbs which contact points get matched for warm-starting and the
// friction solve amplifies that perturbation into growing spurious
// angular/linear velocity on an otherwise motionless stack.
const referenceFaceBias = 1e-3

func satPolygonPolygon(a, b *Body, ta, tb Mat2d) overlap {
	vertsA := transformedVertices(a.shape.Vertices, ta)
	vertsB := transformedVertices(b.shape.Vertices, tb)

	rb := minAxisOverlap(vertsB, vertsA) // axes from B's edges
	if rb.amount <= 0 {
		return overlap{}
	}
	ra := minAxisOverlap(vertsA, vertsB) // axes from A's edges
	if ra.amount <= 0 {
		return overlap{}
	}

	var result overlap
	result.isOverlap = true

	var chosen axisOverlap
	var refBody, incBody *Body
	var refT, incT Mat2d
	if rb.amount+referenceFaceBias < ra.amount {
		chosen = rb
		refBody, incBody = b, a
		refT, incT = tb, ta
	} else {
		chosen = ra
		refBody, incBody = a, b
		refT, incT = ta, tb
	}

	centerRef := refT.MulVec(Vec2Zero)
	centerInc := incT.MulVec(Vec2Zero)
	normal := chosen.axis
	if centerRef.To(centerInc).Dot(normal) < 0 {
		normal = normal.Neg()
	}

	result.a, result.b = refBody, incBody
	result.ta, result.tb = refT, incT
	result.normal = normal
	result.separation = chosen.amount
	return result
}

func satPolygonCircle(poly, circle *Body, tPoly, tCircle Mat2d) overlap {
	vertsA := transformedVertices(poly.shape.Vertices, tPoly)
	centerB := tCircle.MulVec(Vec2Zero)
	radius := circle.shape.Radius

	best := axisOverlap{amount: math.MaxFloat64}
	n := len(vertsA)
	for i := 0; i < n; i++ {
		edge := vertsA[(i+1)%n].Sub(vertsA[i])
		axis := edge.Perp().Norm()

		minA, maxA := math.MaxFloat64, -math.MaxFloat64
		for _, v := range vertsA {
			d := v.Dot(axis)
			if d < minA {
				minA = d
			}
			if d > maxA {
				maxA = d
			}
		}
		dot := centerB.Dot(axis)
		minB, maxB := dot-radius, dot+radius

		amount := minf(maxA-minB, maxB-minA)
		if amount < best.amount {
			best.amount = amount
			best.axis = axis
			if amount <= 0 {
				return overlap{}
			}
		}
	}

	centerA := tPoly.MulVec(Vec2Zero)
	normal := best.axis
	if centerA.To(centerB).Dot(normal) < 0 {
		normal = normal.Neg()
	}

	return overlap{
		isOverlap:  true,
		a:          poly,
		b:          circle,
		ta:         tPoly,
		tb:         tCircle,
		normal:     normal,
		separation: best.amount,
	}
}

// sat dispatches on shape kind; circle/circle is handled by the
// caller as a degenerate special case before reaching here.
func sat(a, b *Body, ta, tb Mat2d) overlap {
	switch {
	case a.shape.Kind == ShapePolygon && b.shape.Kind == ShapePolygon:
		return satPolygonPolygon(a, b, ta, tb)
	case a.shape.Kind == ShapePolygon && b.shape.Kind == ShapeCircle:
		return satPolygonCircle(a, b, ta, tb)
	case a.shape.Kind == ShapeCircle && b.shape.Kind == ShapePolygon:
		return satPolygonCircle(b, a, tb, ta)
	default:
		return overlap{}
	}
}

// satCircleCircle is the degenerate circle/circle short-circuit the
// spec allows in place of running full SAT.
func satCircleCircle(a, b *Body, ta, tb Mat2d) overlap {
	ca := ta.MulVec(Vec2Zero)
	cb := tb.MulVec(Vec2Zero)
	d := cb.Sub(ca)
	dist := d.Len()
	radiusSum := a.shape.Radius + b.shape.Radius
	sep := radiusSum - dist
	if sep <= 0 {
		return overlap{}
	}
	normal := d.Norm()
	if dist == 0 {
		normal = Vec2{1, 0}
	}
	return overlap{
		isOverlap:  true,
		a:          a,
		b:          b,
		ta:         ta,
		tb:         tb,
		normal:     normal,
		separation: sep,
	}
}
