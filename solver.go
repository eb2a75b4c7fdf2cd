package physics

import "math"

// bothImmovable reports whether neither body in a contact can
// possibly move, so the solver can skip it outright: a body is
// immovable here if it is Static or currently asleep. Such a contact
// cannot move either body (Body.ApplyImpulse leaves a sleeping body at
// rest and Static bodies have zero inverse mass); skipping it saves
// the work and leaves its accumulated impulses unchanged.
func bothImmovable(a, b *Body) bool {
	return (a.Type == BodyStatic || a.isSleeping) && (b.Type == BodyStatic || b.isSleeping)
}

// solveVelocity runs velocityIterations passes of sequential impulses
// over every active contact: a clamped normal impulse (non-negative
// accumulator) followed by a Coulomb-clamped tangent (friction)
// impulse.
func solveVelocity(contacts []*Contact, biasFactor, positionSlop float64, dt float64, iterations int) {
	for i := 0; i < iterations; i++ {
		for _, c := range contacts {
			if !c.IsActive || bothImmovable(c.A, c.B) {
				continue
			}
			frictionNormalImpulse := applyNormalImpulse(c, biasFactor, positionSlop, dt)
			applyTangentImpulse(c, frictionNormalImpulse)
		}
	}
}

// applyNormalImpulse resolves the normal constraint for one contact
// and returns the post-resolve accumulated normal impulse, used as
// the friction clamp bound.
func applyNormalImpulse(c *Contact, biasFactor, positionSlop, dt float64) float64 {
	A, B := c.A, c.B

	va := A.velocityAt(c.ra)
	vb := B.velocityAt(c.rb)
	dv := va.To(vb)

	dp := c.Pa.To(c.Pb)
	positionBias := biasFactor / dt * maxf(0, dp.Len()-positionSlop)

	// The positional (Baumgarte) bias absorbs penetration; the
	// restitution bias (computed at prepare time from approach
	// velocity) is what actually produces an elastic bounce. Neither
	// the libopus source nor spec.md cross-reference the two
	// explicitly (see DESIGN.md); taking the larger of the two is the
	// standard sequential-impulse resolution and is what makes
	// restitution observable at all.
	restitutionBias := c.velocityBias.Dot(c.Normal)
	vBias := maxf(positionBias, restitutionBias)

	dvN := c.Normal.Dot(dv)
	lambdaN := (-dvN + vBias) * c.effectiveMassNormal

	oldImpulse := c.NormalImpulse
	c.NormalImpulse = maxf(oldImpulse+lambdaN, 0)
	lambdaN = c.NormalImpulse - oldImpulse

	impulse := c.Normal.Scale(lambdaN)
	A.ApplyImpulse(impulse.Neg(), c.ra)
	B.ApplyImpulse(impulse, c.rb)

	return c.NormalImpulse
}

func applyTangentImpulse(c *Contact, frictionNormalImpulse float64) {
	A, B := c.A, c.B

	va := A.velocityAt(c.ra)
	vb := B.velocityAt(c.rb)
	dv := va.To(vb)

	dvT := c.Tangent.Dot(dv)
	lambdaT := dvT * c.effectiveMassTangent

	maxFriction := math.Sqrt(A.Friction*B.Friction) * frictionNormalImpulse

	oldImpulse := c.TangentImpulse
	c.TangentImpulse = clampf(oldImpulse+lambdaT, -maxFriction, maxFriction)
	lambdaT = c.TangentImpulse - oldImpulse

	impulse := c.Tangent.Scale(lambdaT)
	A.ApplyImpulse(impulse, c.ra)
	B.ApplyImpulse(impulse.Neg(), c.rb)
}

// solvePosition runs positionIterations passes of direct positional
// correction over every active, still-penetrating contact.
func solvePosition(contacts []*Contact, biasFactor, positionSlop float64, dt float64, iterations int) {
	for i := 0; i < iterations; i++ {
		for _, c := range contacts {
			if !c.IsActive || bothImmovable(c.A, c.B) {
				continue
			}

			A, B := c.A, c.B
			dp := c.Pa.To(c.Pb)
			if dp.Dot(c.Normal) >= 0 {
				continue
			}

			bias := biasFactor / dt * maxf(dp.Len()-positionSlop, 0)
			if c.effectiveMassNormal == 0 || bias == 0 {
				continue
			}
			lambda := c.effectiveMassNormal * bias
			impulse := c.Normal.Scale(lambda)

			if A.Type != BodyStatic && !A.isSleeping {
				A.Position = A.Position.Sub(impulse.Scale(A.invMass))
				A.Rotation -= A.invInertia * c.ra.Cross(impulse)
			}
			if B.Type != BodyStatic && !B.isSleeping {
				B.Position = B.Position.Add(impulse.Scale(B.invMass))
				B.Rotation += B.invInertia * c.rb.Cross(impulse)
			}
		}
	}
}
