package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSatPolygonPolygonOverlap(t *testing.T) {
	a := rectBody(1, V(0, 0))
	b := rectBody(2, V(1.5, 0))

	ov := sat(a, b, a.Transform(), b.Transform())
	require.True(t, ov.isOverlap)
	assert.InDelta(t, 0.5, ov.separation, 1e-9)
	assert.Greater(t, ov.normal.X, 0.0)
}

func TestSatPolygonPolygonSeparated(t *testing.T) {
	a := rectBody(1, V(0, 0))
	b := rectBody(2, V(10, 0))

	ov := sat(a, b, a.Transform(), b.Transform())
	assert.False(t, ov.isOverlap)
}

func TestSatPolygonCircleOverlap(t *testing.T) {
	poly := rectBody(1, V(0, 0))
	circle := newBody(2)
	shape, err := NewCircle(1)
	require.NoError(t, err)
	circle.setShape(shape)
	circle.Position = V(1.5, 0)

	ov := sat(poly, circle, poly.Transform(), circle.Transform())
	require.True(t, ov.isOverlap)
	assert.Greater(t, ov.separation, 0.0)
}

func TestSatCircleCircleOverlap(t *testing.T) {
	a := newBody(1)
	shapeA, err := NewCircle(1)
	require.NoError(t, err)
	a.setShape(shapeA)

	b := newBody(2)
	shapeB, err := NewCircle(1)
	require.NoError(t, err)
	b.setShape(shapeB)
	b.Position = V(1.5, 0)

	ov := satCircleCircle(a, b, a.Transform(), b.Transform())
	require.True(t, ov.isOverlap)
	assert.InDelta(t, 0.5, ov.separation, 1e-9)
}

func TestSatCircleCircleSeparated(t *testing.T) {
	a := newBody(1)
	shapeA, err := NewCircle(1)
	require.NoError(t, err)
	a.setShape(shapeA)

	b := newBody(2)
	shapeB, err := NewCircle(1)
	require.NoError(t, err)
	b.setShape(shapeB)
	b.Position = V(5, 0)

	ov := satCircleCircle(a, b, a.Transform(), b.Transform())
	assert.False(t, ov.isOverlap)
}
