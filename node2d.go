package rowan

// Node2D is a node with a 2D transform. Its local transform is rebuilt from
// position, rotation, and scale on every setter; the global transform is
// cached and recomputed lazily. Mutating a node's transform or moving it in
// the tree invalidates the cache for its whole spatial subtree, so a read
// through any descendant always sees fresh ancestor state.
type Node2D struct {
	Node

	position  Vec2
	rotation  float64
	scale     Vec2
	zIndex    int
	zRelative bool

	transform       Transform2D
	globalTransform Transform2D
	globalDirty     bool
}

// NewNode2D creates a spatial node with the given name at the origin.
func NewNode2D(name string) *Node2D {
	n := &Node2D{}
	InitNode2D(n, n, name)
	return n
}

// InitNode2D wires the embedded Node2D of a concrete node kind. self must be
// the outermost value. Call it once from the kind's constructor.
func InitNode2D(n *Node2D, self Noder, name string) {
	InitNode(&n.Node, self, name)
	n.scale = Vec2One
	n.zRelative = true
	n.transform = IdentityTransform2D()
	n.globalDirty = true
}

func (n *Node2D) node2d() *Node2D { return n }

// TypeName returns "Node2D".
func (n *Node2D) TypeName() string { return "Node2D" }

// updateLocalTransform rebuilds the local transform from the node's
// components and invalidates cached globals below it.
func (n *Node2D) updateLocalTransform() {
	n.transform = NewTransform2DScaled(n.rotation, n.scale, 0, n.position)
	n.markSubtreeDirty()
}

// markSubtreeDirty invalidates the cached global transform of this node and
// every descendant reachable through spatial nodes. A non-spatial child
// breaks the chain: its own spatial descendants compose against identity and
// are unaffected by this node.
func (n *Node2D) markSubtreeDirty() {
	n.globalDirty = true
	for _, c := range n.children {
		if s, ok := c.(spatial); ok {
			s.markSubtreeDirty()
		}
	}
}

// --- Local transform components ---

// Position returns the local position.
func (n *Node2D) Position() Vec2 { return n.position }

// SetPosition sets the local position.
func (n *Node2D) SetPosition(p Vec2) {
	n.position = p
	n.updateLocalTransform()
}

// Rotation returns the local rotation in radians.
func (n *Node2D) Rotation() float64 { return n.rotation }

// SetRotation sets the local rotation in radians.
func (n *Node2D) SetRotation(r float64) {
	n.rotation = r
	n.updateLocalTransform()
}

// Scale returns the local scale.
func (n *Node2D) Scale() Vec2 { return n.scale }

// SetScale sets the local scale.
func (n *Node2D) SetScale(s Vec2) {
	n.scale = s
	n.updateLocalTransform()
}

// Translate offsets the local position.
func (n *Node2D) Translate(offset Vec2) {
	n.SetPosition(n.position.Add(offset))
}

// Rotate adds to the local rotation.
func (n *Node2D) Rotate(radians float64) {
	n.SetRotation(n.rotation + radians)
}

// ScaleBy multiplies the local scale component-wise.
func (n *Node2D) ScaleBy(factor Vec2) {
	n.SetScale(Vec2{n.scale.X * factor.X, n.scale.Y * factor.Y})
}

// ZIndex returns the node's draw order bias.
func (n *Node2D) ZIndex() int { return n.zIndex }

// SetZIndex sets the node's draw order bias. Higher values draw later.
func (n *Node2D) SetZIndex(z int) { n.zIndex = z }

// ZRelative reports whether ZIndex is added to the parent's effective
// z-index rather than used as an absolute layer.
func (n *Node2D) ZRelative() bool { return n.zRelative }

// SetZRelative sets whether ZIndex is relative to the parent.
func (n *Node2D) SetZRelative(relative bool) { n.zRelative = relative }

// --- Transforms ---

// Transform returns the local transform.
func (n *Node2D) Transform() Transform2D { return n.transform }

// SetTransform replaces the local transform, decomposing it into position,
// rotation, and scale. Skew is not representable and is discarded.
func (n *Node2D) SetTransform(t Transform2D) {
	n.position = t.Origin
	n.rotation = t.Rotation()
	n.scale = t.Scale()
	n.updateLocalTransform()
}

// GlobalTransform returns the node's transform composed with every spatial
// ancestor up to the first non-spatial parent. The result is cached until a
// local change or a tree move invalidates it.
func (n *Node2D) GlobalTransform() Transform2D {
	if n.globalDirty {
		if s, ok := n.parent.(spatial); ok {
			n.globalTransform = s.node2d().GlobalTransform().Mul(n.transform)
		} else {
			n.globalTransform = n.transform
		}
		n.globalDirty = false
	}
	return n.globalTransform
}

// GlobalPosition returns the node's position in global space.
func (n *Node2D) GlobalPosition() Vec2 {
	return n.GlobalTransform().Origin
}

// SetGlobalPosition moves the node so its global position becomes p,
// solving through the parent's global transform.
func (n *Node2D) SetGlobalPosition(p Vec2) {
	if s, ok := n.parent.(spatial); ok {
		n.SetPosition(s.node2d().GlobalTransform().Inverse().TransformPoint(p))
		return
	}
	n.SetPosition(p)
}

// GlobalRotation returns the rotation of the global transform in radians.
func (n *Node2D) GlobalRotation() float64 {
	return n.GlobalTransform().Rotation()
}

// GlobalScale returns the scale of the global transform.
func (n *Node2D) GlobalScale() Vec2 {
	return n.GlobalTransform().Scale()
}

// ToGlobal maps a point from this node's local space to global space.
func (n *Node2D) ToGlobal(local Vec2) Vec2 {
	return n.GlobalTransform().TransformPoint(local)
}

// ToLocal maps a point from global space to this node's local space.
func (n *Node2D) ToLocal(global Vec2) Vec2 {
	return n.GlobalTransform().Inverse().TransformPoint(global)
}

// --- Serialization ---

// SaveToDict writes the node's spatial state after the base keys.
func (n *Node2D) SaveToDict(dict map[string]Variant) {
	n.Node.SaveToDict(dict)
	dict["position"] = VariantVec2(n.position)
	dict["rotation"] = VariantFloat(n.rotation)
	dict["scale"] = VariantVec2(n.scale)
	dict["z_index"] = VariantInt(n.zIndex)
	dict["z_relative"] = VariantBool(n.zRelative)
}

// LoadFromDict applies the base keys, then the spatial keys present in dict.
func (n *Node2D) LoadFromDict(dict map[string]Variant) {
	n.Node.LoadFromDict(dict)
	if v, ok := dict["position"]; ok {
		n.position = v.AsVec2()
	}
	if v, ok := dict["rotation"]; ok {
		n.rotation = v.AsFloat()
	}
	if v, ok := dict["scale"]; ok {
		n.scale = v.AsVec2()
	}
	if v, ok := dict["z_index"]; ok {
		n.zIndex = v.AsInt()
	}
	if v, ok := dict["z_relative"]; ok {
		n.zRelative = v.AsBool()
	}
	n.updateLocalTransform()
}
