package rowan

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// cameraLimitDefault is the default limit extent. Limits are always applied,
// but at this size they never constrain a real viewport.
const cameraLimitDefault = 10000000

// defaultSmoothingSpeed is the position smoothing rate in 1/seconds.
const defaultSmoothingSpeed = 5.0

// CameraRegistry is the explicit slot that decides which camera renders a
// scene. There is no package-global current camera: an Engine owns one
// registry and passes it to MakeCurrent. The slot is last-writer-wins.
type CameraRegistry struct {
	current *Camera2D
}

// Current returns the camera in the slot, or nil.
func (r *CameraRegistry) Current() *Camera2D { return r.current }

// SetCurrent puts c in the slot, clearing the previous holder's flag.
// A nil c empties the slot.
func (r *CameraRegistry) SetCurrent(c *Camera2D) {
	if r.current == c {
		return
	}
	if r.current != nil {
		r.current.current = false
	}
	r.current = c
	if c != nil {
		c.current = true
	}
}

// ClearCurrent empties the slot if c holds it. No-op otherwise.
func (r *CameraRegistry) ClearCurrent(c *Camera2D) {
	if r.current == c {
		r.SetCurrent(nil)
	}
}

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera2D is a spatial node that defines the view into the scene: the world
// point at its global position (plus offset) appears at the viewport center,
// scaled by zoom. Limits clamp the visible area, and optional smoothing
// makes the view trail the camera's actual position.
type Camera2D struct {
	Node2D

	current bool
	enabled bool
	zoom    Vec2
	offset  Vec2

	limitLeft   int
	limitTop    int
	limitRight  int
	limitBottom int

	smoothingEnabled bool
	smoothingSpeed   float64

	smoothedCenter Vec2
	smoothInit     bool

	scroll *scrollAnim
}

// NewCamera2D creates a camera with default zoom, open limits, and smoothing
// off. The camera is not current until MakeCurrent is called.
func NewCamera2D(name string) *Camera2D {
	c := &Camera2D{}
	InitCamera2D(c, c, name)
	return c
}

// InitCamera2D wires the embedded Camera2D of a concrete node kind.
func InitCamera2D(c *Camera2D, self Noder, name string) {
	InitNode2D(&c.Node2D, self, name)
	c.enabled = true
	c.zoom = Vec2One
	c.limitLeft = -cameraLimitDefault
	c.limitTop = -cameraLimitDefault
	c.limitRight = cameraLimitDefault
	c.limitBottom = cameraLimitDefault
	c.smoothingSpeed = defaultSmoothingSpeed
}

// TypeName returns "Camera2D".
func (c *Camera2D) TypeName() string { return "Camera2D" }

// camera returns the embedded Camera2D. Engine camera discovery reaches the
// camera part of embedding kinds through it.
func (c *Camera2D) camera() *Camera2D { return c }

// --- Current slot ---

// IsCurrent reports whether this camera holds a registry slot.
func (c *Camera2D) IsCurrent() bool { return c.current }

// MakeCurrent claims the registry slot for this camera, displacing any
// previous holder.
func (c *Camera2D) MakeCurrent(reg *CameraRegistry) {
	reg.SetCurrent(c)
}

// ClearCurrent releases the registry slot if this camera holds it.
func (c *Camera2D) ClearCurrent(reg *CameraRegistry) {
	reg.ClearCurrent(c)
}

// --- View parameters ---

// Enabled reports whether the camera may drive a view.
func (c *Camera2D) Enabled() bool { return c.enabled }

// SetEnabled turns the camera on or off. A disabled current camera leaves
// the view at identity.
func (c *Camera2D) SetEnabled(enabled bool) { c.enabled = enabled }

// Zoom returns the view scale factors.
func (c *Camera2D) Zoom() Vec2 { return c.zoom }

// SetZoom sets the view scale factors. Values above 1 magnify.
func (c *Camera2D) SetZoom(zoom Vec2) { c.zoom = zoom }

// Offset returns the view offset added to the camera's global position.
func (c *Camera2D) Offset() Vec2 { return c.offset }

// SetOffset sets the view offset.
func (c *Camera2D) SetOffset(offset Vec2) { c.offset = offset }

// Limits returns the clamp rectangle as left, top, right, bottom.
func (c *Camera2D) Limits() (left, top, right, bottom int) {
	return c.limitLeft, c.limitTop, c.limitRight, c.limitBottom
}

// SetLimits sets the world-space rectangle the visible area is clamped to.
func (c *Camera2D) SetLimits(left, top, right, bottom int) {
	c.limitLeft = left
	c.limitTop = top
	c.limitRight = right
	c.limitBottom = bottom
}

// SmoothingEnabled reports whether position smoothing is on.
func (c *Camera2D) SmoothingEnabled() bool { return c.smoothingEnabled }

// SetSmoothingEnabled turns position smoothing on or off.
func (c *Camera2D) SetSmoothingEnabled(enabled bool) { c.smoothingEnabled = enabled }

// SmoothingSpeed returns the smoothing rate in 1/seconds.
func (c *Camera2D) SmoothingSpeed() float64 { return c.smoothingSpeed }

// SetSmoothingSpeed sets the smoothing rate. Higher values catch up faster.
func (c *Camera2D) SetSmoothingSpeed(speed float64) { c.smoothingSpeed = speed }

// --- Scrolling ---

// ScrollTo animates the camera's local position to target over duration
// seconds using the given easing function. The animation advances in
// Process, so it only plays while the camera processes.
func (c *Camera2D) ScrollTo(target Vec2, duration float32, easeFn ease.TweenFunc) {
	pos := c.Position()
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(pos.X), float32(target.X), duration, easeFn),
		tweenY: gween.New(float32(pos.Y), float32(target.Y), duration, easeFn),
	}
}

// ForceUpdateScroll snaps the smoothed view center to the camera's current
// target, skipping the trailing animation for one cut.
func (c *Camera2D) ForceUpdateScroll() {
	c.smoothedCenter = c.GlobalPosition().Add(c.offset)
	c.smoothInit = true
}

// Process advances the scroll animation and position smoothing. Kinds that
// embed Camera2D and override Process must call this implementation.
func (c *Camera2D) Process(delta float64) {
	if c.scroll != nil {
		pos := c.Position()
		if !c.scroll.doneX {
			val, done := c.scroll.tweenX.Update(float32(delta))
			pos.X = float64(val)
			c.scroll.doneX = done
		}
		if !c.scroll.doneY {
			val, done := c.scroll.tweenY.Update(float32(delta))
			pos.Y = float64(val)
			c.scroll.doneY = done
		}
		c.SetPosition(pos)
		if c.scroll.doneX && c.scroll.doneY {
			c.scroll = nil
		}
	}

	target := c.GlobalPosition().Add(c.offset)
	if !c.smoothInit {
		c.smoothedCenter = target
		c.smoothInit = true
	}
	if c.smoothingEnabled {
		c.smoothedCenter = c.smoothedCenter.Lerp(target, Clamp(c.smoothingSpeed*delta, 0, 1))
	} else {
		c.smoothedCenter = target
	}
}

// ScreenCenter returns the world point currently at the viewport center:
// the smoothed camera position plus offset, before limit clamping.
func (c *Camera2D) ScreenCenter() Vec2 {
	if !c.smoothInit {
		return c.GlobalPosition().Add(c.offset)
	}
	return c.smoothedCenter
}

// --- View transform ---

// clampCenter restricts the view center so the visible area stays inside the
// limit rectangle. When the limits are narrower than the visible area, the
// view centers on them.
func (c *Camera2D) clampCenter(center Vec2, viewport Rect2) Vec2 {
	halfW := viewport.Size.X / (2 * c.zoom.X)
	halfH := viewport.Size.Y / (2 * c.zoom.Y)

	minX := float64(c.limitLeft) + halfW
	maxX := float64(c.limitRight) - halfW
	minY := float64(c.limitTop) + halfH
	maxY := float64(c.limitBottom) - halfH

	if minX > maxX {
		center.X = float64(c.limitLeft+c.limitRight) / 2
	} else {
		center.X = Clamp(center.X, minX, maxX)
	}
	if minY > maxY {
		center.Y = float64(c.limitTop+c.limitBottom) / 2
	} else {
		center.Y = Clamp(center.Y, minY, maxY)
	}
	return center
}

// ViewTransform returns the world-to-screen transform for the given
// viewport: the clamped view center maps to the viewport center, scaled by
// zoom. Camera rotation is not applied to the view.
func (c *Camera2D) ViewTransform(viewport Rect2) Transform2D {
	center := c.clampCenter(c.ScreenCenter(), viewport)
	vc := viewport.Center()
	return Transform2D{
		X:      Vec2{c.zoom.X, 0},
		Y:      Vec2{0, c.zoom.Y},
		Origin: Vec2{vc.X - center.X*c.zoom.X, vc.Y - center.Y*c.zoom.Y},
	}
}

// WorldToScreen converts a world point to viewport coordinates.
func (c *Camera2D) WorldToScreen(world Vec2, viewport Rect2) Vec2 {
	return c.ViewTransform(viewport).TransformPoint(world)
}

// ScreenToWorld converts viewport coordinates to a world point.
func (c *Camera2D) ScreenToWorld(screen Vec2, viewport Rect2) Vec2 {
	return c.ViewTransform(viewport).Inverse().TransformPoint(screen)
}

// VisibleBounds returns the world-space rectangle the camera shows in the
// given viewport.
func (c *Camera2D) VisibleBounds(viewport Rect2) Rect2 {
	inv := c.ViewTransform(viewport).Inverse()
	topLeft := inv.TransformPoint(viewport.Position)
	bottomRight := inv.TransformPoint(viewport.End())
	return Rect2{Position: topLeft, Size: bottomRight.Sub(topLeft)}
}

// --- Serialization ---

// SaveToDict writes the camera keys after the spatial keys.
func (c *Camera2D) SaveToDict(dict map[string]Variant) {
	c.Node2D.SaveToDict(dict)
	dict["current"] = VariantBool(c.current)
	dict["enabled"] = VariantBool(c.enabled)
	dict["zoom"] = VariantVec2(c.zoom)
	dict["offset"] = VariantVec2(c.offset)
	dict["limit_left"] = VariantInt(c.limitLeft)
	dict["limit_top"] = VariantInt(c.limitTop)
	dict["limit_right"] = VariantInt(c.limitRight)
	dict["limit_bottom"] = VariantInt(c.limitBottom)
	dict["smoothing_enabled"] = VariantBool(c.smoothingEnabled)
	dict["smoothing_speed"] = VariantFloat(c.smoothingSpeed)
}

// LoadFromDict applies the camera keys present in dict. The current flag is
// restored on the node only; claiming a registry slot is the scene owner's
// decision when it adopts the tree.
func (c *Camera2D) LoadFromDict(dict map[string]Variant) {
	c.Node2D.LoadFromDict(dict)
	if v, ok := dict["current"]; ok {
		c.current = v.AsBool()
	}
	if v, ok := dict["enabled"]; ok {
		c.enabled = v.AsBool()
	}
	if v, ok := dict["zoom"]; ok {
		c.zoom = v.AsVec2()
	}
	if v, ok := dict["offset"]; ok {
		c.offset = v.AsVec2()
	}
	if v, ok := dict["limit_left"]; ok {
		c.limitLeft = v.AsInt()
	}
	if v, ok := dict["limit_top"]; ok {
		c.limitTop = v.AsInt()
	}
	if v, ok := dict["limit_right"]; ok {
		c.limitRight = v.AsInt()
	}
	if v, ok := dict["limit_bottom"]; ok {
		c.limitBottom = v.AsInt()
	}
	if v, ok := dict["smoothing_enabled"]; ok {
		c.smoothingEnabled = v.AsBool()
	}
	if v, ok := dict["smoothing_speed"]; ok {
		c.smoothingSpeed = v.AsFloat()
	}
}
