// Package rowan is a scene graph and node lifecycle core for 2D games,
// designed to sit behind [Ebitengine] or any other backend that can satisfy
// its small rendering contract.
//
// Rowan provides the node tree, 2D transform hierarchy, lifecycle dispatch
// (ready, process, physics, input), signals, groups, cameras, input mapping,
// tweens, and scene serialization that a 2D game builds on. Rendering,
// physics simulation, and script execution stay behind interfaces; the
// rowan/ebitenx subpackage implements the rendering side on Ebitengine.
//
// # Quick start
//
// The simplest way to get started is [ebitenx.Run], which creates a window
// and game loop around an [Engine]:
//
//	engine := rowan.NewEngine(rowan.DefaultEngineConfig())
//	// ... add nodes to engine.Scene() ...
//	ebitenx.Run(engine)
//
// For full control, implement [ebiten.Game] yourself and call
// [Engine.HandleInput], [Engine.Update], and [Engine.Render] directly.
//
// # Scene graph
//
// Every participant in the game loop is a node kind implementing [Noder].
// Nodes form trees whose roots a [Scene] owns. Plain [Node] carries
// identity, groups, properties, signals, and lifecycle flags; [Node2D] adds
// a local transform and a cached global transform; [Sprite], [Label],
// [Camera2D], and [Timer] build on those.
//
//	scene := engine.Scene()
//	world := rowan.NewNode2D("world")
//	scene.AddRootNode(world)
//
//	hero := rowan.NewSprite("hero")
//	hero.SetTexturePath("art/hero.png")
//	hero.SetPosition(rowan.Vec2{X: 100, Y: 50})
//	world.AddChild(hero)
//
// Custom kinds embed Node or Node2D and override the hooks they need:
//
//	type Coin struct {
//		rowan.Node2D
//		value int
//	}
//
//	func NewCoin(name string, value int) *Coin {
//		c := &Coin{value: value}
//		rowan.InitNode2D(&c.Node2D, c, name)
//		return c
//	}
//
//	func (c *Coin) Ready() { c.AddToGroup("coins") }
//
// # Lifecycle
//
// Entering a tree runs EnterTree parent-first, then TreeEntered. Ready runs
// once per node, parents before children. Each frame [Engine.Update]
// readies newly added nodes, then runs Process over every visible,
// process-enabled subtree; fixed physics steps follow from an accumulator.
// Input delivery ignores visibility. Leaving a tree runs TreeExiting and
// ExitTree children-first.
//
// # Key features
//
// Rowan includes cameras with limits, smoothing, and scroll-to (via
// [gween]), named signals with ordered synchronous delivery, an input map
// with action bindings, property tweens, a node type registry for
// serialization, and YAML engine config.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package rowan
