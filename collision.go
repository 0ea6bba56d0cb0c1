package physics2d

import "math"

// CollisionInfo is the result of a separating axis test.
type CollisionInfo struct {
	Collided bool
	// Axis is the unit normal of minimum overlap. It is not oriented towards
	// either shape. Zero when Collided is false.
	Axis Vector
	// Depth is the overlap along Axis.
	Depth float64
}

// Oriented returns the collision axis flipped, if needed, so that it points
// along to - from.
func (info CollisionInfo) Oriented(from, to Vector) Vector {
	if to.Sub(from).Dot(info.Axis) < 0 {
		return info.Axis.Neg()
	}
	return info.Axis
}

func edgeNormal(v1, v2 Vector) Vector {
	return v1.Sub(v2).Normalize().Perp()
}

func project(shape Polygon, axis Vector) (min, max float64) {
	min = INFINITY
	max = -INFINITY
	for _, v := range shape {
		proj := v.Dot(axis)
		if proj < min {
			min = proj
		}
		if proj > max {
			max = proj
		}
	}
	return min, max
}

// FindCollision runs the separating axis test over every edge normal of a,
// then every edge normal of b. Both shapes need at least 3 vertices.
func FindCollision(a, b Polygon) CollisionInfo {
	shortest := INFINITY
	var axis Vector

	for _, shape := range [2]Polygon{a, b} {
		n := len(shape)
		for i := 0; i < n; i++ {
			normal := edgeNormal(shape[i], shape[(i+1)%n])
			// repeated vertex
			if normal == (Vector{}) {
				continue
			}

			minA, maxA := project(a, normal)
			minB, maxB := project(b, normal)

			if maxA < minB || maxB < minA {
				return CollisionInfo{Collided: false}
			}

			overlap := math.Abs(math.Max(minA, minB) - math.Min(maxA, maxB))
			if overlap < shortest {
				shortest = overlap
				axis = normal
			}
		}
	}

	return CollisionInfo{Collided: true, Axis: axis, Depth: shortest}
}
