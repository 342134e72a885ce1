package rowan

import "math"

// InputEventType identifies the kind of an InputEvent.
type InputEventType uint8

const (
	EventKeyPress           InputEventType = iota // a key went down
	EventKeyRelease                               // a key came up
	EventMouseButtonPress                         // a mouse button went down
	EventMouseButtonRelease                       // a mouse button came up
	EventMouseMove                                // the pointer moved
	EventMouseWheel                               // the wheel scrolled
	EventWindowResize                             // the window changed size
	EventWindowClose                              // the window was asked to close
	EventGamepadButtonPress                       // a gamepad button went down
	EventGamepadButtonRelease                     // a gamepad button came up
	EventGamepadAxisMotion                        // a gamepad axis moved
)

// Key is a keyboard key code. Codes are assigned by the event source; the
// ebitenx adapter uses ebiten's key values.
type Key int

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values combine with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// InputEvent is a single input occurrence delivered to the tree. Only the
// fields relevant to Type are meaningful; the rest stay zero.
type InputEvent struct {
	Type      InputEventType
	Key       Key          // key events
	Modifiers KeyModifiers // key and mouse button events
	Repeat    bool         // true for held-key auto-repeat

	Button   MouseButton // mouse button events
	Position Vec2        // pointer position, window coordinates
	Delta    Vec2        // pointer movement since the last move event
	Wheel    Vec2        // wheel scroll amounts

	WindowSize Vec2 // window resize events

	GamepadID     int     // gamepad events
	GamepadButton int     // gamepad button events
	GamepadAxis   int     // gamepad axis events
	AxisValue     float64 // axis position in [-1, 1]
}

// InputAction binds a name to any number of keys, mouse buttons, and gamepad
// axes. An action is pressed while any binding is active; axis bindings
// contribute analog strength above the deadzone.
type InputAction struct {
	Name     string
	Keys     []Key
	Buttons  []MouseButton
	Axes     []int
	Deadzone float64
}

// InputMap tracks input device state from a stream of InputEvents and
// answers pressed / just-pressed / just-released queries, directly or
// through named actions. Feed it every event with HandleEvent; call
// BeginFrame once per frame after queries to rotate the edge state.
type InputMap struct {
	keysDown     map[Key]bool
	keysPressed  map[Key]bool
	keysReleased map[Key]bool

	buttonsDown     map[MouseButton]bool
	buttonsPressed  map[MouseButton]bool
	buttonsReleased map[MouseButton]bool

	mousePosition Vec2
	mouseDelta    Vec2
	wheel         Vec2

	axisValues map[int]float64

	actions map[string]*InputAction
}

// NewInputMap creates an empty input state tracker.
func NewInputMap() *InputMap {
	return &InputMap{
		keysDown:        make(map[Key]bool),
		keysPressed:     make(map[Key]bool),
		keysReleased:    make(map[Key]bool),
		buttonsDown:     make(map[MouseButton]bool),
		buttonsPressed:  make(map[MouseButton]bool),
		buttonsReleased: make(map[MouseButton]bool),
		axisValues:      make(map[int]float64),
		actions:         make(map[string]*InputAction),
	}
}

// HandleEvent folds one event into the tracked state.
func (m *InputMap) HandleEvent(ev *InputEvent) {
	if ev == nil {
		return
	}
	switch ev.Type {
	case EventKeyPress:
		if !ev.Repeat && !m.keysDown[ev.Key] {
			m.keysPressed[ev.Key] = true
		}
		m.keysDown[ev.Key] = true
	case EventKeyRelease:
		if m.keysDown[ev.Key] {
			m.keysReleased[ev.Key] = true
		}
		delete(m.keysDown, ev.Key)
	case EventMouseButtonPress:
		if !m.buttonsDown[ev.Button] {
			m.buttonsPressed[ev.Button] = true
		}
		m.buttonsDown[ev.Button] = true
		m.mousePosition = ev.Position
	case EventMouseButtonRelease:
		if m.buttonsDown[ev.Button] {
			m.buttonsReleased[ev.Button] = true
		}
		delete(m.buttonsDown, ev.Button)
		m.mousePosition = ev.Position
	case EventMouseMove:
		m.mouseDelta = m.mouseDelta.Add(ev.Delta)
		m.mousePosition = ev.Position
	case EventMouseWheel:
		m.wheel = m.wheel.Add(ev.Wheel)
	case EventGamepadAxisMotion:
		m.axisValues[ev.GamepadAxis] = ev.AxisValue
	}
}

// BeginFrame clears the per-frame edge state: just-pressed and just-released
// sets, accumulated mouse delta, and wheel amounts. Held state persists.
func (m *InputMap) BeginFrame() {
	clear(m.keysPressed)
	clear(m.keysReleased)
	clear(m.buttonsPressed)
	clear(m.buttonsReleased)
	m.mouseDelta = Vec2{}
	m.wheel = Vec2{}
}

// --- Direct queries ---

// IsKeyDown reports whether the key is currently held.
func (m *InputMap) IsKeyDown(k Key) bool { return m.keysDown[k] }

// IsKeyJustPressed reports whether the key went down this frame.
func (m *InputMap) IsKeyJustPressed(k Key) bool { return m.keysPressed[k] }

// IsKeyJustReleased reports whether the key came up this frame.
func (m *InputMap) IsKeyJustReleased(k Key) bool { return m.keysReleased[k] }

// IsMouseButtonDown reports whether the button is currently held.
func (m *InputMap) IsMouseButtonDown(b MouseButton) bool { return m.buttonsDown[b] }

// IsMouseButtonJustPressed reports whether the button went down this frame.
func (m *InputMap) IsMouseButtonJustPressed(b MouseButton) bool { return m.buttonsPressed[b] }

// IsMouseButtonJustReleased reports whether the button came up this frame.
func (m *InputMap) IsMouseButtonJustReleased(b MouseButton) bool { return m.buttonsReleased[b] }

// MousePosition returns the last known pointer position.
func (m *InputMap) MousePosition() Vec2 { return m.mousePosition }

// MouseDelta returns the pointer movement accumulated this frame.
func (m *InputMap) MouseDelta() Vec2 { return m.mouseDelta }

// Wheel returns the wheel scroll accumulated this frame.
func (m *InputMap) Wheel() Vec2 { return m.wheel }

// AxisValue returns the last reported position of a gamepad axis.
func (m *InputMap) AxisValue(axis int) float64 { return m.axisValues[axis] }

// --- Actions ---

// AddAction registers an action binding, replacing any action with the same
// name. The action's Deadzone applies to its axis bindings.
func (m *InputMap) AddAction(action InputAction) {
	m.actions[action.Name] = &action
}

// RemoveAction unregisters an action. No-op when absent.
func (m *InputMap) RemoveAction(name string) {
	delete(m.actions, name)
}

// HasAction reports whether an action with the name is registered.
func (m *InputMap) HasAction(name string) bool {
	_, ok := m.actions[name]
	return ok
}

// IsActionPressed reports whether any of the action's bindings is active.
// Unknown actions are never pressed.
func (m *InputMap) IsActionPressed(name string) bool {
	a := m.actions[name]
	if a == nil {
		return false
	}
	for _, k := range a.Keys {
		if m.keysDown[k] {
			return true
		}
	}
	for _, b := range a.Buttons {
		if m.buttonsDown[b] {
			return true
		}
	}
	for _, axis := range a.Axes {
		if math.Abs(m.axisValues[axis]) > a.Deadzone {
			return true
		}
	}
	return false
}

// IsActionJustPressed reports whether any key or button binding of the
// action went down this frame.
func (m *InputMap) IsActionJustPressed(name string) bool {
	a := m.actions[name]
	if a == nil {
		return false
	}
	for _, k := range a.Keys {
		if m.keysPressed[k] {
			return true
		}
	}
	for _, b := range a.Buttons {
		if m.buttonsPressed[b] {
			return true
		}
	}
	return false
}

// IsActionJustReleased reports whether any key or button binding of the
// action came up this frame.
func (m *InputMap) IsActionJustReleased(name string) bool {
	a := m.actions[name]
	if a == nil {
		return false
	}
	for _, k := range a.Keys {
		if m.keysReleased[k] {
			return true
		}
	}
	for _, b := range a.Buttons {
		if m.buttonsReleased[b] {
			return true
		}
	}
	return false
}

// ActionStrength returns the analog strength of an action in [0, 1]: the
// largest axis magnitude above the deadzone, or 1 when a key or button
// binding is held. Unknown actions have strength 0.
func (m *InputMap) ActionStrength(name string) float64 {
	a := m.actions[name]
	if a == nil {
		return 0
	}
	strength := 0.0
	for _, axis := range a.Axes {
		v := math.Abs(m.axisValues[axis])
		if v > a.Deadzone && v > strength {
			strength = v
		}
	}
	if strength == 0 && m.IsActionPressed(name) {
		return 1
	}
	return Clamp(strength, 0, 1)
}
