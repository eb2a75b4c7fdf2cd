package physics

import "math"

// Vec2 is a 2D vector or point, depending on context.
//
// Not built on github.com/go-gl/mathgl: mathgl's generated vector
// types target 3D/4D work and never gained a 2D pseudo-cross or
// perpendicular operator, both of which the SAT/V-Clip/solver code
// below leans on constantly. See DESIGN.md.
type Vec2 struct {
	X, Y float64
}

// Vec2Zero is the additive identity.
var Vec2Zero = Vec2{}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Neg() Vec2       { return Vec2{-a.X, -a.Y} }
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// To returns the vector pointing from a to b.
func (a Vec2) To(b Vec2) Vec2 { return b.Sub(a) }

func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// Cross is the 2D scalar "cross product" a.x*b.y - a.y*b.x: twice the
// signed area of the parallelogram spanned by a and b.
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// CrossRV is the scalar-times-vector cross product r x v (r a scalar
// angular velocity, v a lever arm), used by Body.velocityAt to turn
// angular velocity into the tangential linear velocity it contributes
// at a point.
func CrossRV(r float64, v Vec2) Vec2 { return Vec2{-r * v.Y, r * v.X} }

func (a Vec2) LenSq() float64 { return a.X*a.X + a.Y*a.Y }
func (a Vec2) Len() float64   { return math.Sqrt(a.LenSq()) }

func (a Vec2) DistSq(b Vec2) float64 { return a.Sub(b).LenSq() }

func (a Vec2) Norm() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// WithLen returns a vector with the same direction as a scaled to length l.
func (a Vec2) WithLen(l float64) Vec2 {
	n := a.Norm()
	return n.Scale(l)
}

// Perp rotates a vector +90 degrees (CCW).
func (a Vec2) Perp() Vec2 { return Vec2{-a.Y, a.X} }

// SkewT rotates a vector -90 degrees (CW); the transpose of Perp.
func (a Vec2) SkewT() Vec2 { return Vec2{a.Y, -a.X} }

// EqualTol reports whether a and b are within tol of each other on
// both axes.
func (a Vec2) EqualTol(b Vec2, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func (a Vec2) IsZero() bool { return a.X == 0 && a.Y == 0 }

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
