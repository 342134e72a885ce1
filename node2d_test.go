package rowan

import (
	"math"
	"testing"
)

// --- Defaults ---

func TestNode2DDefaults(t *testing.T) {
	n := NewNode2D("n")
	if n.TypeName() != "Node2D" {
		t.Errorf("TypeName = %q", n.TypeName())
	}
	assertVec2Near(t, "Position", n.Position(), Vec2Zero)
	assertNear(t, "Rotation", n.Rotation(), 0)
	assertVec2Near(t, "Scale", n.Scale(), Vec2One)
	if n.ZIndex() != 0 {
		t.Errorf("ZIndex = %d, want 0", n.ZIndex())
	}
	if !n.ZRelative() {
		t.Error("ZRelative should default to true")
	}
	assertTransformNear(t, "Transform", n.Transform(), IdentityTransform2D())
}

// --- Global transform composition ---

func TestGlobalPositionComposesThroughParent(t *testing.T) {
	a := NewNode2D("A")
	b := NewNode2D("B")
	a.AddChild(b)

	a.SetPosition(Vec2{10, 0})
	b.SetPosition(Vec2{0, 5})

	assertVec2Near(t, "B global", b.GlobalPosition(), Vec2{10, 5})
}

func TestGlobalPositionWithParentRotation(t *testing.T) {
	a := NewNode2D("A")
	b := NewNode2D("B")
	a.AddChild(b)

	a.SetPosition(Vec2{10, 0})
	a.SetRotation(math.Pi / 2)
	b.SetPosition(Vec2{0, 5})

	// rot90 maps (0,5) to (-5,0), so B lands at (5,0).
	assertVec2Near(t, "B global", b.GlobalPosition(), Vec2{5, 0})
}

func TestGlobalPositionWithParentScale(t *testing.T) {
	a := NewNode2D("A")
	b := NewNode2D("B")
	a.AddChild(b)

	a.SetPosition(Vec2{10, 20})
	a.SetScale(Vec2{2, 3})
	b.SetPosition(Vec2{1, 1})

	assertVec2Near(t, "B global", b.GlobalPosition(), Vec2{12, 23})
}

// --- Cache invalidation ---

func TestAncestorMoveInvalidatesCachedGlobal(t *testing.T) {
	a := NewNode2D("A")
	b := NewNode2D("B")
	c := NewNode2D("C")
	a.AddChild(b)
	b.AddChild(c)

	a.SetPosition(Vec2{10, 0})
	c.SetPosition(Vec2{1, 1})
	assertVec2Near(t, "warm", c.GlobalPosition(), Vec2{11, 1})

	// Mutating an ancestor must be visible through the cached descendant.
	a.SetPosition(Vec2{50, 0})
	assertVec2Near(t, "after move", c.GlobalPosition(), Vec2{51, 1})

	a.SetRotation(math.Pi)
	assertVec2Near(t, "after rotate", c.GlobalPosition(), Vec2{49, -1})
}

func TestReparentInvalidatesCachedGlobal(t *testing.T) {
	a := NewNode2D("A")
	b := NewNode2D("B")
	child := NewNode2D("child")
	a.SetPosition(Vec2{10, 0})
	b.SetPosition(Vec2{50, 0})

	a.AddChild(child)
	child.SetPosition(Vec2{0, 5})
	assertVec2Near(t, "under A", child.GlobalPosition(), Vec2{10, 5})

	b.AddChild(child)
	assertVec2Near(t, "under B", child.GlobalPosition(), Vec2{50, 5})

	child.RemoveFromParent()
	assertVec2Near(t, "detached", child.GlobalPosition(), Vec2{0, 5})
}

func TestPlainNodeBreaksSpatialChain(t *testing.T) {
	top := NewNode2D("top")
	mid := NewNode("mid")
	leaf := NewNode2D("leaf")
	top.AddChild(mid)
	mid.AddChild(leaf)

	top.SetPosition(Vec2{100, 100})
	leaf.SetPosition(Vec2{5, 5})

	// The chain breaks at the plain node: leaf composes against identity.
	assertVec2Near(t, "leaf global", leaf.GlobalPosition(), Vec2{5, 5})

	top.SetPosition(Vec2{200, 200})
	assertVec2Near(t, "after top move", leaf.GlobalPosition(), Vec2{5, 5})
}

// --- Global setters and point mapping ---

func TestSetGlobalPositionSolvesThroughParent(t *testing.T) {
	a := NewNode2D("A")
	b := NewNode2D("B")
	a.AddChild(b)
	a.SetPosition(Vec2{10, 0})
	a.SetRotation(math.Pi / 2)
	a.SetScale(Vec2{2, 2})

	b.SetGlobalPosition(Vec2{10, 5})
	assertVec2Near(t, "global", b.GlobalPosition(), Vec2{10, 5})

	// Without a spatial parent the global position is the local one.
	free := NewNode2D("free")
	free.SetGlobalPosition(Vec2{3, 4})
	assertVec2Near(t, "free local", free.Position(), Vec2{3, 4})
}

func TestToGlobalToLocalRoundTrip(t *testing.T) {
	a := NewNode2D("A")
	b := NewNode2D("B")
	a.AddChild(b)
	a.SetPosition(Vec2{10, 20})
	a.SetRotation(0.7)
	b.SetPosition(Vec2{5, -3})
	b.SetScale(Vec2{2, 0.5})

	p := Vec2{13, -8}
	assertVec2Near(t, "round trip", b.ToLocal(b.ToGlobal(p)), p)

	assertVec2Near(t, "origin", b.ToGlobal(Vec2Zero), b.GlobalPosition())
}

func TestGlobalRotationAndScale(t *testing.T) {
	a := NewNode2D("A")
	b := NewNode2D("B")
	a.AddChild(b)
	a.SetRotation(0.5)
	a.SetScale(Vec2{2, 2})
	b.SetRotation(0.25)
	b.SetScale(Vec2{3, 1})

	assertNear(t, "GlobalRotation", b.GlobalRotation(), 0.75)
	assertVec2Near(t, "GlobalScale", b.GlobalScale(), Vec2{6, 2})
}

// --- Local transform ---

func TestSetTransformDecomposes(t *testing.T) {
	n := NewNode2D("n")
	n.SetTransform(NewTransform2DScaled(0.5, Vec2{2, 3}, 0, Vec2{7, 8}))

	assertVec2Near(t, "Position", n.Position(), Vec2{7, 8})
	assertNear(t, "Rotation", n.Rotation(), 0.5)
	assertVec2Near(t, "Scale", n.Scale(), Vec2{2, 3})
}

func TestTranslateRotateScaleBy(t *testing.T) {
	n := NewNode2D("n")
	n.SetPosition(Vec2{1, 1})
	n.Translate(Vec2{2, 3})
	assertVec2Near(t, "Translate", n.Position(), Vec2{3, 4})

	n.SetRotation(0.5)
	n.Rotate(0.25)
	assertNear(t, "Rotate", n.Rotation(), 0.75)

	n.SetScale(Vec2{2, 3})
	n.ScaleBy(Vec2{2, 0.5})
	assertVec2Near(t, "ScaleBy", n.Scale(), Vec2{4, 1.5})
}

// --- Serialization ---

func TestNode2DSaveLoadRoundTrip(t *testing.T) {
	n := NewNode2D("spatial")
	n.SetPosition(Vec2{10, 20})
	n.SetRotation(0.5)
	n.SetScale(Vec2{2, 3})
	n.SetZIndex(7)
	n.SetZRelative(false)

	dict := make(map[string]Variant)
	n.SaveToDict(dict)
	if dict["type"].AsString() != "Node2D" {
		t.Errorf("type = %v", dict["type"])
	}

	loaded := NewNode2D("")
	loaded.LoadFromDict(dict)
	assertVec2Near(t, "position", loaded.Position(), Vec2{10, 20})
	assertNear(t, "rotation", loaded.Rotation(), 0.5)
	assertVec2Near(t, "scale", loaded.Scale(), Vec2{2, 3})
	if loaded.ZIndex() != 7 || loaded.ZRelative() {
		t.Errorf("z = %d relative %t", loaded.ZIndex(), loaded.ZRelative())
	}

	// The local transform is rebuilt, so globals read correctly right away.
	assertVec2Near(t, "global", loaded.GlobalPosition(), Vec2{10, 20})
}

// --- Benchmarks ---

func BenchmarkGlobalTransformCached(b *testing.B) {
	nodes := make([]*Node2D, 10)
	for i := range nodes {
		nodes[i] = NewNode2D("n")
		nodes[i].SetPosition(Vec2{1, 2})
		if i > 0 {
			nodes[i-1].AddChild(nodes[i])
		}
	}
	leaf := nodes[len(nodes)-1]
	leaf.GlobalTransform() // warm the cache

	b.ReportAllocs()
	for b.Loop() {
		_ = leaf.GlobalTransform()
	}
}

func BenchmarkGlobalTransformRecompute(b *testing.B) {
	nodes := make([]*Node2D, 10)
	for i := range nodes {
		nodes[i] = NewNode2D("n")
		nodes[i].SetPosition(Vec2{1, 2})
		if i > 0 {
			nodes[i-1].AddChild(nodes[i])
		}
	}
	root, leaf := nodes[0], nodes[len(nodes)-1]

	b.ReportAllocs()
	for b.Loop() {
		root.SetPosition(Vec2{1, 2}) // dirties the whole chain
		_ = leaf.GlobalTransform()
	}
}
