package physics2d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() Polygon {
	return Polygon{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
}

func assertPolygonInDelta(t *testing.T, expected, actual Polygon, delta float64) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i].X, actual[i].X, delta, "vertex %d x", i)
		assert.InDelta(t, expected[i].Y, actual[i].Y, delta, "vertex %d y", i)
	}
}

func TestPolygon_Area(t *testing.T) {
	assert.Equal(t, 4.0, square().Area())
	assert.Equal(t, 6.0, Rect(2, 3).Area())

	// clockwise winding flips the sign
	cw := Polygon{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}}
	assert.Equal(t, -4.0, cw.Area())
}

func TestPolygon_Centroid(t *testing.T) {
	assert.Equal(t, Vector{1, 1.5}, Rect(2, 3).Centroid())

	tri := Polygon{{0, 0}, {3, 0}, {0, 3}}
	c := tri.Centroid()
	assert.InDelta(t, 1, c.X, 1e-12)
	assert.InDelta(t, 1, c.Y, 1e-12)

	// winding does not change the centroid
	cw := Polygon{{0, 3}, {3, 0}, {0, 0}}
	c = cw.Centroid()
	assert.InDelta(t, 1, c.X, 1e-12)
	assert.InDelta(t, 1, c.Y, 1e-12)
}

func TestPolygon_TranslateRotateRoundTrip(t *testing.T) {
	shape := Star(5, 10, 4)
	original := shape.Clone()

	shape.Translate(Vector{3, -7})
	shape.Rotate(1.25, Vector{2, 2})
	shape.Rotate(-1.25, Vector{2, 2})
	shape.Translate(Vector{-3, 7})

	assertPolygonInDelta(t, original, shape, 1e-9)
}

func TestPolygon_Rotate(t *testing.T) {
	shape := Rect(2, 1)
	shape.Rotate(math.Pi/2, Vector{})
	assertPolygonInDelta(t, Polygon{{0, 0}, {0, 2}, {-1, 2}, {-1, 0}}, shape, 1e-12)
}

func TestPolygon_BB(t *testing.T) {
	bb := Polygon{{1, 2}, {4, -1}, {0, 5}}.BB()
	assert.Equal(t, NewBB(0, -1, 4, 5), bb)
	assert.Equal(t, 4.0, bb.Width())
	assert.Equal(t, 6.0, bb.Height())
}

func TestPolygon_ContainsPoint(t *testing.T) {
	shape := square()
	assert.True(t, shape.ContainsPoint(Vector{0, 0}))
	assert.True(t, shape.ContainsPoint(Vector{0.9, -0.9}))
	assert.False(t, shape.ContainsPoint(Vector{1.5, 0}))
	assert.False(t, shape.ContainsPoint(Vector{0, -2}))
}

func TestShapes(t *testing.T) {
	box := Box(2, 1)
	assert.Equal(t, 8.0, box.Area())
	assert.Equal(t, Vector{}, box.Centroid())

	hex := RegularPolygon(1, 6)
	require.Len(t, hex, 6)
	assert.InDelta(t, 3*math.Sqrt(3)/2, hex.Area(), 1e-12)

	star := Star(5, 10, 4)
	require.Len(t, star, 10)
	assert.InDelta(t, 0, star[0].X, 1e-12)
	assert.InDelta(t, 10, star[0].Y, 1e-12)
	assert.InDelta(t, 4, star[1].Length(), 1e-12)
}

func TestBB(t *testing.T) {
	a := NewBB(0, 0, 2, 2)
	assert.True(t, a.Intersects(NewBB(2, 2, 3, 3)), "touching boxes intersect")
	assert.False(t, a.Intersects(NewBB(2.1, 0, 3, 1)))
	assert.Equal(t, NewBB(0, -1, 3, 2), a.Merge(NewBB(1, -1, 3, 0)))
	assert.Equal(t, NewBB(1, 2, 1, 2), EmptyBB().Expand(Vector{1, 2}))
}

func TestTransform(t *testing.T) {
	rigid := NewTransformRigid(Vector{5, 6}, math.Pi/2)
	p := rigid.Point(Vector{1, 0})
	assert.InDelta(t, 5, p.X, 1e-12)
	assert.InDelta(t, 7, p.Y, 1e-12)

	moved := NewTransformTranslate(Vector{-1, 2}).Point(Vector{3, 4})
	assert.Equal(t, Vector{2, 6}, moved)

	src := Polygon{{0, 0}, {1, 0}}
	dst := make(Polygon, 2)
	NewTransformRigid(Vector{1, 1}, 0).Apply(dst, src)
	assert.Equal(t, Polygon{{1, 1}, {2, 1}}, dst)
}

func TestColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	require.NoError(t, err)
	r, g, b := c.RGB8()
	assert.Equal(t, [3]uint8{255, 128, 0}, [3]uint8{r, g, b})
	assert.Equal(t, "#ff8000", c.Hex())

	_, err = ParseHexColor("ff8000")
	assert.Error(t, err)
	_, err = ParseHexColor("#zz8000")
	assert.Error(t, err)

	red := HSV(0, 1, 1)
	assert.Equal(t, Color{1, 0, 0}, red)
	blue := HSV(240, 1, 1)
	assert.InDelta(t, 0, blue.R, 1e-12)
	assert.InDelta(t, 0, blue.G, 1e-12)
	assert.InDelta(t, 1, blue.B, 1e-12)
}
