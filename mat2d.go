package physics

import "math"

// Mat2d is a 2D affine transform: a rotation followed by a
// translation, stored row-major as
//
//	[ a  c  tx ]
//	[ b  d  ty ]
//
// i.e. p' = (a*x + c*y + tx, b*x + d*y + ty).
type Mat2d struct {
	A, B, C, D, Tx, Ty float64
}

// Identity is the neutral transform.
var Identity = Mat2d{A: 1, D: 1}

// RotateAbout builds the transform that rotates by angle radians
// about the origin and then translates by pos — the transform every
// body uses to go from local shape space to world space.
func RotateAbout(angle float64, pos Vec2) Mat2d {
	s, c := math.Sin(angle), math.Cos(angle)
	return Mat2d{A: c, B: s, C: -s, D: c, Tx: pos.X, Ty: pos.Y}
}

// MulVec transforms a point (applies rotation and translation).
func (m Mat2d) MulVec(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.C*p.Y + m.Tx,
		Y: m.B*p.X + m.D*p.Y + m.Ty,
	}
}

// MulDir transforms a direction (rotation only, no translation).
func (m Mat2d) MulDir(p Vec2) Vec2 {
	return Vec2{X: m.A*p.X + m.C*p.Y, Y: m.B*p.X + m.D*p.Y}
}

// Inv returns the inverse transform. Only needed for world-to-local
// conversions at body setup/utility time — the hot path (shape
// support, bound update, SAT/V-Clip) only ever goes local-to-world.
func (m Mat2d) Inv() Mat2d {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Identity
	}
	invDet := 1 / det
	a := m.D * invDet
	b := -m.B * invDet
	c := -m.C * invDet
	d := m.A * invDet
	tx := -(a*m.Tx + c*m.Ty)
	ty := -(b*m.Tx + d*m.Ty)
	return Mat2d{A: a, B: b, C: c, D: d, Tx: tx, Ty: ty}
}
