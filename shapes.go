package physics2d

import "math"

// Rect returns a width x height rectangle with its lower-left corner at the
// origin, wound counter-clockwise.
func Rect(width, height float64) Polygon {
	return Polygon{
		{0, 0},
		{width, 0},
		{width, height},
		{0, height},
	}
}

// Box returns a rectangle centred on the origin.
func Box(halfWidth, halfHeight float64) Polygon {
	return Polygon{
		{-halfWidth, -halfHeight},
		{halfWidth, -halfHeight},
		{halfWidth, halfHeight},
		{-halfWidth, halfHeight},
	}
}

// RegularPolygon approximates a circle of the given radius with n vertices,
// starting on the positive x axis.
func RegularPolygon(radius float64, n int) Polygon {
	check(n >= 3, "polygon needs at least 3 vertices")
	shape := make(Polygon, n)
	step := 2 * math.Pi / float64(n)
	for i := range shape {
		shape[i] = ForAngle(float64(i) * step).Mult(radius)
	}
	return shape
}

// Star returns a star with the given number of points, alternating between
// the outer and inner radius. The first tip points up.
func Star(points int, outer, inner float64) Polygon {
	check(points >= 2, "star needs at least 2 points")
	shape := make(Polygon, 2*points)
	step := math.Pi / float64(points)
	for i := range shape {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		shape[i] = ForAngle(math.Pi/2 + float64(i)*step).Mult(r)
	}
	return shape
}
