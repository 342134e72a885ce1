package rowan

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float values toward targets and applies them
// through a node setter each update, so transform caches invalidate the
// normal way. Create one via the convenience constructors and call
// Update(dt) each frame, typically from a Process hook.
//
// There is no global animation manager; callers drive their own groups.
type TweenGroup struct {
	tweens [4]*gween.Tween
	values [4]float64
	count  int
	apply  func(values []float64)

	// Done reports whether every tween in the group has finished. The final
	// values are applied exactly once, on the update that completes them.
	Done bool
}

// Update advances all tweens by dt seconds and applies the current values.
// No-op once the group is done.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.apply != nil {
		g.apply(g.values[:g.count])
	}
}

// TweenPosition animates a node's local position to the target over
// duration seconds using the easing function.
func TweenPosition(node *Node2D, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Position()
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	g.apply = func(v []float64) { node.SetPosition(Vec2{v[0], v[1]}) }
	return g
}

// TweenScale animates a node's local scale to the target over duration
// seconds using the easing function.
func TweenScale(node *Node2D, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Scale()
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	g.apply = func(v []float64) { node.SetScale(Vec2{v[0], v[1]}) }
	return g
}

// TweenRotation animates a node's local rotation to the target over
// duration seconds using the easing function.
func TweenRotation(node *Node2D, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(node.Rotation()), float32(to), duration, fn)
	g.apply = func(v []float64) { node.SetRotation(v[0]) }
	return g
}

// TweenModulate animates all four components of a sprite's modulate color
// to the target over duration seconds.
func TweenModulate(sprite *Sprite, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := sprite.Modulate()
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	g.apply = func(v []float64) { sprite.SetModulate(Color{v[0], v[1], v[2], v[3]}) }
	return g
}

// TweenProperty animates a float property in a node's property bag to the
// target over duration seconds. The starting value is the property's
// current float payload, or 0 when unset or not a float.
func TweenProperty(node Noder, name string, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Property(name).AsFloat()
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(from), float32(to), duration, fn)
	g.apply = func(v []float64) { node.SetProperty(name, VariantFloat(v[0])) }
	return g
}
