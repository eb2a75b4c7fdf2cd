package physics

import "math"

// contactMatchTolerance is the positional tolerance (per endpoint)
// used to re-match a freshly detected contact point against one
// already stored in its bucket, so warm-start impulses carry over.
const contactMatchTolerance = 0.01

// Contact is a single persistent contact point between an ordered
// pair of bodies (A.ID() < B.ID()).
type Contact struct {
	A, B *Body

	Pa, Pb Vec2
	Normal Vec2
	Tangent Vec2
	Depth  float64

	ra, rb                              Vec2
	effectiveMassNormal, effectiveMassTangent float64
	velocityBias                        Vec2

	NormalImpulse, TangentImpulse float64

	IsActive bool
}

// Contacts is the persistent bucket of up to two contact points for
// one ordered body pair. It is keyed by pair identity and its
// contacts survive across frames; new manifold points are matched by
// proximity into existing slots so warm-start impulses are preserved.
type Contacts struct {
	A, B     *Body
	contacts []*Contact
}

// pairKey packs an ordered pair of small positive body ids into a
// single 64-bit map key, the representation the design notes ask for
// in place of a formatted string.
type pairKey uint64

func makePairKey(aID, bID int) pairKey {
	lo, hi := aID, bID
	if lo > hi {
		lo, hi = hi, lo
	}
	return pairKey(uint64(uint32(lo))<<32 | uint64(uint32(hi)))
}

// contactStore owns every Contacts bucket in a World, keyed by pair
// identity. Pruning buckets with zero active contacts is permitted
// but not required; we keep buckets for the lifetime of the world so
// warm-start state for intermittently-separating pairs is retained.
type contactStore struct {
	buckets map[pairKey]*Contacts
}

func newContactStore() *contactStore {
	return &contactStore{buckets: make(map[pairKey]*Contacts)}
}

func (s *contactStore) bucketFor(a, b *Body) *Contacts {
	key := makePairKey(a.id, b.id)
	bucket, ok := s.buckets[key]
	if !ok {
		lo, hi := a, b
		if lo.id > hi.id {
			lo, hi = hi, lo
		}
		bucket = &Contacts{A: lo, B: hi}
		s.buckets[key] = bucket
	}
	return bucket
}

func (s *contactStore) each(f func(*Contacts)) {
	for _, bucket := range s.buckets {
		f(bucket)
	}
}

// merge canonicalizes a freshly-detected manifold point pair (which is
// expressed relative to ov.a/ov.b, not id order) into the bucket's id
// order, then matches each point against the bucket's existing
// contacts for warm-starting. Unlike opus_physics_world_step's
// collision callback (world.c, which only ever opus_arr_pushes new
// contacts into a pair's bucket and never removes one that fails to
// rematch), the bucket is replaced with exactly this frame's matched
// manifold: a pair's contact count is bounded by its current manifold
// size instead of growing without bound as clip points drift in and
// out of the 0.01 match tolerance over a long-running simulation.
func (s *contactStore) merge(ov overlap, m manifold, restFactor float64) {
	bucket := s.bucketFor(ov.a, ov.b)
	next := make([]*Contact, 0, len(m.points))

	for _, pt := range m.points {
		pa, pb := pt.pa, pt.pb
		normal := ov.normal

		// Re-express in canonical (A.id < B.id) order.
		if ov.a.id > ov.b.id {
			pa, pb = pb, pa
			normal = normal.Neg()
		}

		// restFactor gates out degenerate clip points (pa and pb
		// coincident to within noise); restFactor is itself a squared
		// distance, matching opus_vec2_dist2 in the source this is
		// ported from, so it is compared directly, not re-squared.
		if pa.DistSq(pb) <= restFactor {
			continue
		}

		var matched *Contact
		for _, c := range bucket.contacts {
			if c.Pa.EqualTol(pa, contactMatchTolerance) && c.Pb.EqualTol(pb, contactMatchTolerance) {
				matched = c
				break
			}
		}
		if matched == nil {
			matched = &Contact{A: bucket.A, B: bucket.B}
		}
		matched.Pa, matched.Pb = pa, pb
		matched.Normal = normal
		matched.Tangent = normal.Perp()
		matched.Depth = ov.separation
		matched.IsActive = true
		next = append(next, matched)
	}

	bucket.contacts = next
}

// prepare computes lever arms, effective masses, restitution bias,
// and applies the warm-start impulse immediately.
func (c *Contact) prepare() {
	A, B := c.A, c.B

	c.ra = A.Position.To(c.Pa)
	c.rb = B.Position.To(c.Pb)

	raN := c.ra.Cross(c.Normal)
	rbN := c.rb.Cross(c.Normal)
	raT := c.ra.Cross(c.Tangent)
	rbT := c.rb.Cross(c.Tangent)

	emn := A.invMass + B.invMass + A.invInertia*raN*raN + B.invInertia*rbN*rbN
	emt := A.invMass + B.invMass + A.invInertia*raT*raT + B.invInertia*rbT*rbT

	if emn == 0 {
		c.effectiveMassNormal = math.MaxFloat64
	} else {
		c.effectiveMassNormal = 1 / emn
	}
	if emt == 0 {
		c.effectiveMassTangent = math.MaxFloat64
	} else {
		c.effectiveMassTangent = 1 / emt
	}

	restitution := minf(A.Restitution, B.Restitution)
	va := A.velocityAt(c.ra)
	vb := B.velocityAt(c.rb)
	c.velocityBias = va.Sub(vb).Scale(restitution)

	if c.NormalImpulse != 0 || c.TangentImpulse != 0 {
		j := c.Normal.Scale(c.NormalImpulse).Add(c.Tangent.Scale(c.TangentImpulse))
		A.ApplyImpulse(j.Neg(), c.ra)
		B.ApplyImpulse(j, c.rb)
	}
}
