package rowan

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication is left to the rendering backend.
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorRed         = Color{1, 0, 0, 1}
	ColorGreen       = Color{0, 1, 0, 1}
	ColorBlue        = Color{0, 0, 1, 1}
	ColorTransparent = Color{0, 0, 0, 0}
)

// Modulated returns the component-wise product of c and other.
// Used to combine a node's modulate color with an inherited tint.
func (c Color) Modulated(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B, c.A * other.A}
}

// WithAlpha returns c with its alpha component replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API. The coordinate system has its origin at the top-left,
// with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Direction and unit constants. Up points toward negative Y.
var (
	Vec2Zero  = Vec2{0, 0}
	Vec2One   = Vec2{1, 1}
	Vec2Up    = Vec2{0, -1}
	Vec2Down  = Vec2{0, 1}
	Vec2Left  = Vec2{-1, 0}
	Vec2Right = Vec2{1, 0}
)

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and other.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared length of v, avoiding a square root.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// DistanceTo returns the Euclidean distance between v and other.
func (v Vec2) DistanceTo(other Vec2) float64 {
	return other.Sub(v).Length()
}

// Normalized returns v scaled to unit length.
// The zero vector is returned unchanged.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Lerp returns the linear interpolation from v to other at t.
// t is not clamped.
func (v Vec2) Lerp(other Vec2, t float64) Vec2 {
	return Vec2{v.X + (other.X-v.X)*t, v.Y + (other.Y-v.Y)*t}
}

// Rect2 is an axis-aligned rectangle defined by its top-left position and
// size. Containment is half-open: the left and top edges are inside, the
// right and bottom edges are outside.
type Rect2 struct {
	Position, Size Vec2
}

// NewRect2 constructs a Rect2 from scalar position and size.
func NewRect2(x, y, w, h float64) Rect2 {
	return Rect2{Position: Vec2{x, y}, Size: Vec2{w, h}}
}

// End returns the bottom-right corner, Position + Size.
func (r Rect2) End() Vec2 {
	return r.Position.Add(r.Size)
}

// Center returns the midpoint of the rectangle.
func (r Rect2) Center() Vec2 {
	return r.Position.Add(r.Size.Mul(0.5))
}

// Area returns Size.X * Size.Y.
func (r Rect2) Area() float64 {
	return r.Size.X * r.Size.Y
}

// HasPoint reports whether p lies inside the rectangle.
// Points on the right or bottom edge are outside, so adjacent rectangles
// never both contain a shared boundary point.
func (r Rect2) HasPoint(p Vec2) bool {
	return p.X >= r.Position.X && p.X < r.Position.X+r.Size.X &&
		p.Y >= r.Position.Y && p.Y < r.Position.Y+r.Size.Y
}

// Intersects reports whether r and other overlap.
// Rectangles sharing only an edge do not intersect.
func (r Rect2) Intersects(other Rect2) bool {
	return r.Position.X < other.Position.X+other.Size.X &&
		r.Position.X+r.Size.X > other.Position.X &&
		r.Position.Y < other.Position.Y+other.Size.Y &&
		r.Position.Y+r.Size.Y > other.Position.Y
}

// Lerp returns the linear interpolation from a to b at t. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to the range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
