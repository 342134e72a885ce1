package ebitenx

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/rowan"
)

// mouseButtons orders the ebiten buttons against their rowan values.
var mouseButtons = [3]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// eventPoller diffs ebiten device state between frames and produces rowan
// input events for the transitions. Keyboard, mouse buttons, cursor motion,
// and the wheel are covered; anything else reaches the engine through
// Engine.InjectEvent or a direct HandleInput call.
type eventPoller struct {
	keysDown    [ebiten.KeyMax + 1]bool
	buttonsDown [len(mouseButtons)]bool

	cursor     rowan.Vec2
	cursorInit bool

	events []rowan.InputEvent // reused between polls
}

// Poll reads the current device state and returns the events since the last
// call. The returned slice is reused; consume it before the next Poll.
func (p *eventPoller) Poll() []rowan.InputEvent {
	p.events = p.events[:0]
	mods := readModifiers()

	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		down := ebiten.IsKeyPressed(k)
		if down == p.keysDown[k] {
			continue
		}
		p.keysDown[k] = down
		typ := rowan.EventKeyRelease
		if down {
			typ = rowan.EventKeyPress
		}
		p.events = append(p.events, rowan.InputEvent{
			Type:      typ,
			Key:       rowan.Key(k),
			Modifiers: mods,
		})
	}

	mx, my := ebiten.CursorPosition()
	pos := rowan.Vec2{X: float64(mx), Y: float64(my)}
	if p.cursorInit && pos != p.cursor {
		p.events = append(p.events, rowan.InputEvent{
			Type:     rowan.EventMouseMove,
			Position: pos,
			Delta:    pos.Sub(p.cursor),
		})
	}
	p.cursor = pos
	p.cursorInit = true

	for i, eb := range mouseButtons {
		down := ebiten.IsMouseButtonPressed(eb)
		if down == p.buttonsDown[i] {
			continue
		}
		p.buttonsDown[i] = down
		typ := rowan.EventMouseButtonRelease
		if down {
			typ = rowan.EventMouseButtonPress
		}
		p.events = append(p.events, rowan.InputEvent{
			Type:      typ,
			Button:    rowan.MouseButton(i),
			Position:  pos,
			Modifiers: mods,
		})
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		p.events = append(p.events, rowan.InputEvent{
			Type:  rowan.EventMouseWheel,
			Wheel: rowan.Vec2{X: wx, Y: wy},
		})
	}

	return p.events
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() rowan.KeyModifiers {
	var mods rowan.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= rowan.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= rowan.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= rowan.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= rowan.ModMeta
	}
	return mods
}
