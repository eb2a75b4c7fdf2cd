package physics

import "sort"

// pairCallback is invoked by sweepAndPrune for every candidate pair
// whose world AABBs overlap and whose bitmasks intersect, along with
// each body's current world transform.
type pairCallback func(a, b *Body, ta, tb Mat2d)

// sweepAndPrune refreshes every body's world-space AABB, sorts by
// ascending AABB min-x, and reports candidate pairs with a classic
// single-axis sweep. Expected near-linear for spatially coherent
// scenes, worst case O(n^2).
func sweepAndPrune(bodies []*Body, f pairCallback) {
	for _, b := range bodies {
		if b.shape != nil {
			b.shape.UpdateBound(b.Rotation, b.Position)
		}
	}

	sorted := make([]*Body, len(bodies))
	copy(sorted, bodies)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].shape.Bound().Min.X < sorted[j].shape.Bound().Min.X
	})

	n := len(sorted)
	for i := 0; i < n; i++ {
		a := sorted[i]
		ba := a.shape.Bound()
		for j := i + 1; j < n; j++ {
			b := sorted[j]
			bb := b.shape.Bound()

			if bb.Min.X > ba.Max.X {
				break
			}
			if ba.Max.Y < bb.Min.Y || ba.Min.Y > bb.Max.Y {
				continue
			}
			if a.Bitmask&b.Bitmask == 0 {
				continue
			}

			f(a, b, a.Transform(), b.Transform())
		}
	}
}
