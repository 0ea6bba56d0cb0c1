package physics2d

// Transform is a 2x3 affine matrix mapping local body coordinates to world
// coordinates.
type Transform struct {
	a, b, c, d, tx, ty float64
}

func NewTransformTranspose(a, c, tx, b, d, ty float64) Transform {
	return Transform{a, b, c, d, tx, ty}
}

func NewTransformTranslate(translate Vector) Transform {
	return NewTransformTranspose(
		1, 0, translate.X,
		0, 1, translate.Y,
	)
}

// NewTransformRigid rotates by radians about the local origin, then
// translates by translate.
func NewTransformRigid(translate Vector, radians float64) Transform {
	if radians == 0 {
		return NewTransformTranslate(translate)
	}
	rot := ForAngle(radians)
	return NewTransformTranspose(
		rot.X, -rot.Y, translate.X,
		rot.Y, rot.X, translate.Y,
	)
}

func (t Transform) Point(p Vector) Vector {
	return Vector{X: t.a*p.X + t.c*p.Y + t.tx, Y: t.b*p.X + t.d*p.Y + t.ty}
}

// Apply writes the transformed src vertices into dst, which must be at least
// as long as src.
func (t Transform) Apply(dst, src Polygon) {
	for i, v := range src {
		dst[i] = t.Point(v)
	}
}
