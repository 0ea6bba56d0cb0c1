package physics2d

// Polygon is an ordered loop of vertices. The last vertex connects back to
// the first. Winding is not fixed; the sign of Area encodes it.
type Polygon []Vector

func (p Polygon) Clone() Polygon {
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Area returns the signed area using the shoelace sum.
func (p Polygon) Area() float64 {
	n := len(p)
	var sum float64
	for i := 0; i < n; i++ {
		curr := p[i]
		next := p[(i+1)%n]
		sum += (curr.Y + next.Y) * (curr.X - next.X)
	}
	return sum / 2
}

// Centroid returns the area-weighted centroid. The area must be non-zero;
// a degenerate polygon yields NaN or Inf components.
func (p Polygon) Centroid() Vector {
	area := p.Area()
	n := len(p)
	var cx, cy float64
	for i := 0; i < n; i++ {
		curr := p[i]
		next := p[(i+1)%n]
		cross := curr.X*next.Y - next.X*curr.Y
		cx += (curr.X + next.X) * cross
		cy += (curr.Y + next.Y) * cross
	}
	return Vector{cx / (6 * area), cy / (6 * area)}
}

// Translate shifts every vertex by v in place.
func (p Polygon) Translate(v Vector) {
	for i := range p {
		p[i] = p[i].Add(v)
	}
}

// Rotate rotates every vertex by angle radians about point in place.
func (p Polygon) Rotate(angle float64, point Vector) {
	p.Translate(point.Neg())
	rot := ForAngle(angle)
	for i := range p {
		p[i] = p[i].Rotate(rot)
	}
	p.Translate(point)
}

func (p Polygon) BB() BB {
	bb := EmptyBB()
	for _, v := range p {
		bb = bb.Expand(v)
	}
	return bb
}

// ContainsPoint reports whether pt lies inside p using the even-odd rule.
func (p Polygon) ContainsPoint(pt Vector) bool {
	inside := false
	n := len(p)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) &&
			pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}
