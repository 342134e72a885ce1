package rowan

// BodyType classifies how a physics body participates in simulation.
type BodyType uint8

const (
	BodyStatic    BodyType = iota // never moves; collides
	BodyKinematic                 // moved by code; pushes dynamic bodies
	BodyDynamic                   // fully simulated
)

// CollisionShape is a convex region centered on a body's origin.
type CollisionShape interface {
	// Contains reports whether a body-local point lies inside the shape.
	Contains(p Vec2) bool
	// Bounds returns the body-local axis-aligned bounding rectangle.
	Bounds() Rect2
}

// RectangleShape is an axis-aligned rectangle centered on the origin.
type RectangleShape struct {
	Size Vec2
}

// Contains reports whether p lies inside the rectangle.
func (r RectangleShape) Contains(p Vec2) bool {
	hw, hh := r.Size.X/2, r.Size.Y/2
	return p.X >= -hw && p.X <= hw && p.Y >= -hh && p.Y <= hh
}

// Bounds returns the rectangle centered on the origin.
func (r RectangleShape) Bounds() Rect2 {
	return Rect2{Position: Vec2{-r.Size.X / 2, -r.Size.Y / 2}, Size: r.Size}
}

// CircleShape is a circle centered on the origin.
type CircleShape struct {
	Radius float64
}

// Contains reports whether p lies inside or on the circle.
func (c CircleShape) Contains(p Vec2) bool {
	return p.X*p.X+p.Y*p.Y <= c.Radius*c.Radius
}

// Bounds returns the square enclosing the circle.
func (c CircleShape) Bounds() Rect2 {
	return Rect2{Position: Vec2{-c.Radius, -c.Radius}, Size: Vec2{c.Radius * 2, c.Radius * 2}}
}

// PhysicsBody is one body in a physics backend. Bodies live outside the node
// tree; game code reads simulated positions during PhysicsProcess and writes
// them onto its nodes.
type PhysicsBody interface {
	BodyType() BodyType
	Position() Vec2
	SetPosition(p Vec2)
	Velocity() Vec2
	SetVelocity(v Vec2)
	ApplyForce(force Vec2)
	ApplyImpulse(impulse Vec2)
	Shape() CollisionShape
}

// PhysicsWorld is the simulation contract an Engine steps before fixed-step
// node processing. No backend ships with this module.
type PhysicsWorld interface {
	CreateBody(t BodyType, shape CollisionShape, position Vec2) PhysicsBody
	DestroyBody(b PhysicsBody)
	Gravity() Vec2
	SetGravity(g Vec2)
	// Step advances the simulation by delta seconds.
	Step(delta float64)
}
