package physics2d

import (
	"fmt"
	"math"
)

type Vector struct {
	X, Y float64
}

func (v Vector) String() string {
	return fmt.Sprintf("%f,%f", v.X, v.Y)
}

func (v Vector) Add(other Vector) Vector {
	return Vector{v.X + other.X, v.Y + other.Y}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{v.X - other.X, v.Y - other.Y}
}

func (v Vector) Neg() Vector {
	return Vector{-v.X, -v.Y}
}

func (v Vector) Mult(s float64) Vector {
	return Vector{v.X * s, v.Y * s}
}

func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product of v and other.
func (v Vector) Cross(other Vector) float64 {
	return v.X*other.Y - v.Y*other.X
}

func (v Vector) Perp() Vector {
	return Vector{-v.Y, v.X}
}

// ForAngle returns the unit length vector for the given angle (in radians).
func ForAngle(a float64) Vector {
	return Vector{math.Cos(a), math.Sin(a)}
}

// Rotate rotates v by the unit vector other using complex multiplication.
func (v Vector) Rotate(other Vector) Vector {
	return Vector{v.X*other.X - v.Y*other.Y, v.X*other.Y + v.Y*other.X}
}

// RotateAngle rotates v counter-clockwise by angle radians about the origin.
func (v Vector) RotateAngle(angle float64) Vector {
	return v.Rotate(ForAngle(angle))
}

// DirectionAngle returns the angle of v measured counter-clockwise from the
// positive x axis, in [0, 2π). The zero vector has angle 0.
func (v Vector) DirectionAngle() float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	a := math.Atan2(v.Y, v.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	// -tiny + 2π rounds to exactly 2π
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return v.Mult(1 / l)
}

func Clamp(f, min, max float64) float64 {
	return math.Min(math.Max(f, min), max)
}
