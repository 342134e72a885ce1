package rowan

import "math"

// transformEpsilon is the determinant threshold below which a basis is
// treated as non-invertible.
const transformEpsilon = 1e-6

// Transform2D is a 2D affine transform stored as two basis columns and an
// origin. X and Y are the images of the unit axes; Origin is the translation.
// The zero value is degenerate; use IdentityTransform2D or a constructor.
type Transform2D struct {
	X, Y, Origin Vec2
}

// IdentityTransform2D returns the identity transform.
func IdentityTransform2D() Transform2D {
	return Transform2D{X: Vec2{1, 0}, Y: Vec2{0, 1}}
}

// NewTransform2D returns a transform that rotates by rotation radians and
// translates to position.
func NewTransform2D(rotation float64, position Vec2) Transform2D {
	sin, cos := math.Sincos(rotation)
	return Transform2D{
		X:      Vec2{cos, sin},
		Y:      Vec2{-sin, cos},
		Origin: position,
	}
}

// NewTransform2DScaled returns a transform built from rotation, scale, skew,
// and position. Skew shears the Y basis column.
func NewTransform2DScaled(rotation float64, scale Vec2, skew float64, position Vec2) Transform2D {
	return Transform2D{
		X:      Vec2{math.Cos(rotation) * scale.X, math.Sin(rotation) * scale.X},
		Y:      Vec2{-math.Sin(rotation+skew) * scale.Y, math.Cos(rotation+skew) * scale.Y},
		Origin: position,
	}
}

// TransformPoint maps p through the transform: X*p.X + Y*p.Y + Origin.
func (t Transform2D) TransformPoint(p Vec2) Vec2 {
	return Vec2{
		X: t.X.X*p.X + t.Y.X*p.Y + t.Origin.X,
		Y: t.X.Y*p.X + t.Y.Y*p.Y + t.Origin.Y,
	}
}

// BasisTransform maps p through the basis only, ignoring Origin.
// Use it for directions and other translation-independent vectors.
func (t Transform2D) BasisTransform(p Vec2) Vec2 {
	return Vec2{
		X: t.X.X*p.X + t.Y.X*p.Y,
		Y: t.X.Y*p.X + t.Y.Y*p.Y,
	}
}

// Mul composes two transforms: the result applies other first, then t, so
// parent.Mul(child) maps child-local points into parent space.
func (t Transform2D) Mul(other Transform2D) Transform2D {
	return Transform2D{
		X:      t.BasisTransform(other.X),
		Y:      t.BasisTransform(other.Y),
		Origin: t.TransformPoint(other.Origin),
	}
}

// Determinant returns the determinant of the basis.
func (t Transform2D) Determinant() float64 {
	return t.X.X*t.Y.Y - t.X.Y*t.Y.X
}

// Inverse returns the affine inverse of t.
// Returns the identity transform if the basis is singular (|det| < 1e-6).
func (t Transform2D) Inverse() Transform2D {
	det := t.Determinant()
	if math.Abs(det) < transformEpsilon {
		return IdentityTransform2D()
	}
	invDet := 1 / det
	inv := Transform2D{
		X: Vec2{t.Y.Y * invDet, -t.X.Y * invDet},
		Y: Vec2{-t.Y.X * invDet, t.X.X * invDet},
	}
	o := inv.BasisTransform(t.Origin)
	inv.Origin = Vec2{-o.X, -o.Y}
	return inv
}

// Rotation returns the rotation of the X basis column in radians.
func (t Transform2D) Rotation() float64 {
	return math.Atan2(t.X.Y, t.X.X)
}

// SetRotation replaces the basis rotation, preserving the current scale.
func (t *Transform2D) SetRotation(rotation float64) {
	scale := t.Scale()
	sin, cos := math.Sincos(rotation)
	t.X = Vec2{cos, sin}
	t.Y = Vec2{-sin, cos}
	t.SetScale(scale)
}

// Scale returns the basis column lengths. Sign and skew are not recoverable,
// so a transform built with negative scale reports its magnitude.
func (t Transform2D) Scale() Vec2 {
	return Vec2{t.X.Length(), t.Y.Length()}
}

// SetScale rebuilds the basis from the current rotation and the given scale.
// Any skew in the basis is discarded.
func (t *Transform2D) SetScale(scale Vec2) {
	rot := t.Rotation()
	sin, cos := math.Sincos(rot)
	t.X = Vec2{cos * scale.X, sin * scale.X}
	t.Y = Vec2{-sin * scale.Y, cos * scale.Y}
}
