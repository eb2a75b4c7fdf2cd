package physics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolygonRejectsTooFewVertices(t *testing.T) {
	_, err := NewPolygon([]Vec2{{0, 0}, {1, 0}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstructionInvalid))
}

func TestNewPolygonRejectsDegenerate(t *testing.T) {
	_, err := NewPolygon([]Vec2{{0, 0}, {1, 0}, {2, 0}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstructionInvalid))
}

func TestNewPolygonRecentersOnCentroid(t *testing.T) {
	s, err := NewPolygon([]Vec2{{10, 10}, {12, 10}, {12, 12}, {10, 12}})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, s.Area(), 1e-9)

	var cx, cy float64
	for _, v := range s.Vertices {
		cx += v.X
		cy += v.Y
	}
	assert.InDelta(t, 0, cx/float64(len(s.Vertices)), 1e-9)
	assert.InDelta(t, 0, cy/float64(len(s.Vertices)), 1e-9)
}

func TestNewPolygonForcesCCW(t *testing.T) {
	cw, err := NewPolygon([]Vec2{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}})
	require.NoError(t, err)
	assert.Greater(t, signedArea(cw.Vertices), 0.0)
}

func TestNewRectangle(t *testing.T) {
	s, err := NewRectangle(4, 2)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, s.Area(), 1e-9)
	bound := s.Bound()
	assert.InDelta(t, -2, bound.Min.X, 1e-9)
	assert.InDelta(t, -1, bound.Min.Y, 1e-9)
}

func TestNewCircleRejectsNonPositiveRadius(t *testing.T) {
	_, err := NewCircle(0)
	assert.True(t, errors.Is(err, ErrConstructionInvalid))
	_, err = NewCircle(-1)
	assert.True(t, errors.Is(err, ErrConstructionInvalid))
}

func TestCircleSupport(t *testing.T) {
	s, err := NewCircle(2)
	require.NoError(t, err)
	transform := RotateAbout(0, V(5, 0))
	p, idx := s.Support(transform, V(1, 0))
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 2.0, p.X, 1e-9)
	assert.InDelta(t, 0.0, p.Y, 1e-9)
}

func TestPolygonSupportPicksExtremeVertex(t *testing.T) {
	s, err := NewRectangle(2, 2)
	require.NoError(t, err)
	p, _ := s.Support(Identity, V(1, 1))
	assert.InDelta(t, 1.0, p.X, 1e-9)
	assert.InDelta(t, 1.0, p.Y, 1e-9)
}

func TestInertiaPositive(t *testing.T) {
	rect, err := NewRectangle(2, 2)
	require.NoError(t, err)
	assert.Greater(t, rect.Inertia(1), 0.0)

	circle, err := NewCircle(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, circle.Inertia(1), 1e-9)
}

func TestContainsPointPolygonRespectsWinding(t *testing.T) {
	s, err := NewRectangle(2, 2)
	require.NoError(t, err)
	assert.True(t, s.ContainsPoint(V(0, 0)))
	assert.True(t, s.ContainsPoint(V(0.9, 0.9)))
	assert.False(t, s.ContainsPoint(V(1.1, 0)))
}

func TestContainsPointCircle(t *testing.T) {
	s, err := NewCircle(2)
	require.NoError(t, err)
	assert.True(t, s.ContainsPoint(V(1.9, 0)))
	assert.False(t, s.ContainsPoint(V(2.1, 0)))
}

func TestUpdateBoundTracksRotationForPolygon(t *testing.T) {
	s, err := NewRectangle(2, 2)
	require.NoError(t, err)
	s.UpdateBound(0.78539816339, V(0, 0)) // 45 degrees
	bound := s.Bound()
	assert.InDelta(t, -1.41421356, bound.Min.X, 1e-3)
	assert.InDelta(t, 1.41421356, bound.Max.X, 1e-3)
}
