package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldStepRejectsNonPositiveDt(t *testing.T) {
	w := NewWorld()
	err := w.Step(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStepPrecondition))

	err = w.Step(-1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStepPrecondition))
}

func TestWorldAddAndRemoveBody(t *testing.T) {
	w := NewWorld()
	b, err := w.AddRect(1, 1, BodyDynamic, V(0, 0))
	require.NoError(t, err)
	require.Len(t, w.Bodies(), 1)

	require.NoError(t, w.Remove(b))
	assert.Empty(t, w.Bodies())
}

func TestWorldQueryPointAndAABB(t *testing.T) {
	w := NewWorld()
	a, err := w.AddRect(2, 2, BodyStatic, V(0, 0))
	require.NoError(t, err)
	_, err = w.AddRect(2, 2, BodyStatic, V(100, 100))
	require.NoError(t, err)

	hits := w.QueryPoint(V(0, 0))
	require.Len(t, hits, 1)
	assert.Equal(t, a, hits[0])

	region := AABB{Min: V(-5, -5), Max: V(5, 5)}
	hits = w.QueryAABB(region)
	require.Len(t, hits, 1)
	assert.Equal(t, a, hits[0])
}

// TestWorldQueryPointRefinesPastAABB checks the exact-shape stage: a
// point inside a body's AABB corner but outside its (rotated) polygon
// must not be returned.
func TestWorldQueryPointRefinesPastAABB(t *testing.T) {
	w := NewWorld()
	b, err := w.AddRect(2, 2, BodyStatic, V(0, 0))
	require.NoError(t, err)
	b.Rotation = math.Pi / 4
	b.shape.UpdateBound(b.Rotation, b.Position)

	corner := V(0.9, 0.9)
	assert.True(t, b.shape.Bound().Contains(corner))
	assert.Empty(t, w.QueryPoint(corner))

	assert.Equal(t, []*Body{b}, w.QueryPoint(V(0, 0)))
}

// Scenario 1 (spec §8.1): a dynamic block falls onto a static floor
// and comes to rest on its surface. The spec's illustrative 60 steps
// covers only one second of simulated time; a 1x1 block starting at
// y=0 under g=9.8 free-falls only ~4.9 units in that span, not the
// full 9 units to the floor, so this test runs enough steps to let
// the block actually arrive and settle instead of asserting the
// literal step count.
func TestWorldTwoRestingBlocks(t *testing.T) {
	w := NewWorld(WithGravity(V(0, 9.8)))

	_, err := w.AddRect(20, 1, BodyStatic, V(0, 10))
	require.NoError(t, err)

	box, err := w.AddRect(1, 1, BodyDynamic, V(0, 0))
	require.NoError(t, err)
	box.SetDensity(1)
	box.Friction = 0.2
	box.Restitution = 0

	for i := 0; i < 360; i++ {
		require.NoError(t, w.Step(1.0/60))
	}

	assert.InDelta(t, 9.0, box.Position.Y, 0.2)
	assert.Less(t, box.Velocity.Len(), 0.1)
}

// Scenario 2 (spec §8.2): a disk bounces elastically off a static
// wall, reversing its velocity within 2%.
func TestWorldElasticBounce(t *testing.T) {
	w := NewWorld(WithGravity(Vec2Zero))

	wall, err := w.AddRect(1, 20, BodyStatic, V(5, 0))
	require.NoError(t, err)
	wall.Restitution = 1

	disk, err := w.AddCircle(1, BodyDynamic, V(-5, 0))
	require.NoError(t, err)
	disk.SetDensity(1)
	disk.Restitution = 1
	disk.Velocity = V(5, 0)

	bounced := false
	for i := 0; i < 600 && !bounced; i++ {
		require.NoError(t, w.Step(1.0/60))
		if disk.Velocity.X < 0 {
			bounced = true
		}
	}

	require.True(t, bounced, "disk never bounced off the wall")
	assert.InDelta(t, -5.0, disk.Velocity.X, 0.1)
	assert.Less(t, disk.Position.X, 5.0)
}

// Scenario 3 (spec §8.3): a stack of three resting blocks stays put.
func TestWorldStackOfThree(t *testing.T) {
	w := NewWorld(WithGravity(V(0, -9.8)))

	_, err := w.AddRect(20, 1, BodyStatic, V(0, -1))
	require.NoError(t, err)

	var blocks []*Body
	for _, y := range []float64{0, 1, 2} {
		b, err := w.AddRect(1, 1, BodyDynamic, V(0, y))
		require.NoError(t, err)
		b.SetDensity(1)
		b.Friction = 0.3
		b.Restitution = 0
		blocks = append(blocks, b)
	}
	top := blocks[2]

	for i := 0; i < 240; i++ {
		require.NoError(t, w.Step(1.0/60))
	}

	assert.InDelta(t, 2.0, top.Position.Y, 0.2)
	assert.Less(t, top.Velocity.Len(), 0.1)
}

// Scenario 4 (spec §8.4): friction brings a sliding block to rest.
func TestWorldFrictionStop(t *testing.T) {
	w := NewWorld(WithGravity(V(0, 9.8)))

	floor, err := w.AddRect(40, 1, BodyStatic, V(0, 1))
	require.NoError(t, err)
	floor.Friction = 0.5

	box, err := w.AddRect(1, 1, BodyDynamic, V(0, 0))
	require.NoError(t, err)
	box.SetDensity(1)
	box.Friction = 0.5
	box.Restitution = 0
	box.Velocity = V(10, 0)

	initialSpeed := box.Velocity.Len()
	for i := 0; i < 180; i++ {
		require.NoError(t, w.Step(1.0/60))
	}

	assert.Less(t, box.Velocity.Len(), initialSpeed)
	assert.Less(t, box.Velocity.Len(), 0.5)
}

// Scenario 5 (spec §8.5): a resting stack sleeps, and a force applied
// to the top block wakes the whole stack within one step.
func TestWorldSleepAndWake(t *testing.T) {
	w := NewWorld(WithGravity(V(0, 9.8)))

	_, err := w.AddRect(20, 1, BodyStatic, V(0, 1))
	require.NoError(t, err)

	bottom, err := w.AddRect(1, 1, BodyDynamic, V(0, 0))
	require.NoError(t, err)
	bottom.SetDensity(1)
	bottom.Restitution = 0

	top, err := w.AddRect(1, 1, BodyDynamic, V(0, -1))
	require.NoError(t, err)
	top.SetDensity(1)
	top.Restitution = 0

	for i := 0; i < 300; i++ {
		require.NoError(t, w.Step(1.0/60))
	}

	require.True(t, bottom.IsSleeping())
	require.True(t, top.IsSleeping())

	top.ApplyForce(V(0, -500), Vec2Zero)
	require.NoError(t, w.Step(1.0/60))

	assert.False(t, top.IsSleeping())
	assert.False(t, bottom.IsSleeping())
}

// Scenario 6 (spec §8.6): non-intersecting bitmasks never produce a
// contact bucket or any impulse.
func TestWorldFilterBitmask(t *testing.T) {
	w := NewWorld(WithGravity(Vec2Zero))

	a, err := w.AddRect(2, 2, BodyDynamic, V(0, 0))
	require.NoError(t, err)
	a.Bitmask = 0b01
	a.SetDensity(1)

	b, err := w.AddRect(2, 2, BodyDynamic, V(1, 0))
	require.NoError(t, err)
	b.Bitmask = 0b10
	b.SetDensity(1)

	for i := 0; i < 10; i++ {
		require.NoError(t, w.Step(1.0/60))
	}

	count := 0
	w.contacts.each(func(*Contacts) { count++ })
	assert.Equal(t, 0, count)
}
