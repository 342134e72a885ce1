// Package ebitenx backs rowan with [Ebitengine]: a Renderer that queues
// rowan render commands and flushes them to an ebiten.Image, an input
// poller that turns ebiten device state into rowan input events, and a
// Game/Run pair that drives an Engine from the ebiten game loop.
//
// [Ebitengine]: https://ebitengine.org
package ebitenx
