package rowan

// maxPhysicsSteps caps the fixed steps run in a single Update so a long
// frame cannot snowball into an ever-growing physics backlog.
const maxPhysicsSteps = 8

// fpsWindow is the sampling window for the FPS estimate, in seconds.
const fpsWindow = 0.5

// cameraCarrier is implemented by node kinds that carry a Camera2D.
type cameraCarrier interface {
	camera() *Camera2D
}

// EventSink receives a copy of every input event the engine handles. Used by
// integration bridges; rowan/ecs forwards events into a donburi world.
type EventSink interface {
	EmitEvent(ev InputEvent)
}

// Engine drives a scene through the frame lifecycle: injected input, ready
// catch-up, per-frame processing, fixed-step physics, and rendering. It owns
// the camera registry and the input map; there is no package-global state,
// so two engines can run side by side.
type Engine struct {
	scene   *Scene
	cameras CameraRegistry
	input   *InputMap
	world   PhysicsWorld
	sink    EventSink
	config  EngineConfig

	injectQueue []InputEvent
	testRunner  *TestRunner

	physicsAccum float64

	elapsed    float64
	frameCount uint64
	fps        float64
	fpsTime    float64
	fpsFrames  int
}

// NewEngine creates an engine with an empty scene and the given config.
// Non-positive config values are replaced with defaults.
func NewEngine(config EngineConfig) *Engine {
	config.applyDefaults()
	SetDebugMode(config.Debug)
	return &Engine{
		scene:  NewScene("main"),
		input:  NewInputMap(),
		config: config,
	}
}

// Scene returns the active scene.
func (e *Engine) Scene() *Scene { return e.scene }

// Cameras returns the engine's camera registry.
func (e *Engine) Cameras() *CameraRegistry { return &e.cameras }

// Input returns the engine's input state tracker.
func (e *Engine) Input() *InputMap { return e.input }

// Config returns the engine's config.
func (e *Engine) Config() EngineConfig { return e.config }

// PhysicsWorld returns the attached physics world, or nil.
func (e *Engine) PhysicsWorld() PhysicsWorld { return e.world }

// SetPhysicsWorld attaches a physics world. When set, Update steps it with
// the config's fixed delta before each PhysicsProcess pass.
func (e *Engine) SetPhysicsWorld(world PhysicsWorld) { e.world = world }

// SetEventSink attaches an event sink. A nil sink detaches.
func (e *Engine) SetEventSink(sink EventSink) { e.sink = sink }

// ChangeScene makes scene the active one and re-resolves the current camera:
// the registry is dropped without touching the outgoing scene's camera
// flags, then the new scene's tree is scanned for cameras marked current,
// last one in tree order winning. A scene swapped back in reclaims its
// camera this way. Panics on nil.
func (e *Engine) ChangeScene(scene *Scene) {
	if scene == nil {
		panic("rowan: cannot change to nil scene")
	}
	e.scene = scene
	e.cameras.current = nil
	for _, root := range scene.RootNodes() {
		e.adoptCameras(root)
	}
}

// adoptCameras claims the registry for every camera in the subtree whose
// current flag is set, in tree order.
func (e *Engine) adoptCameras(n Noder) {
	if cc, ok := n.(cameraCarrier); ok {
		if cam := cc.camera(); cam.current {
			e.cameras.SetCurrent(cam)
		}
	}
	for _, child := range n.base().children {
		e.adoptCameras(child)
	}
}

// --- Input ---

// HandleInput folds one event into the input map, forwards it to the event
// sink, and delivers it to the scene tree. Call it for every event the
// platform layer produces, before Update.
func (e *Engine) HandleInput(ev InputEvent) {
	e.input.HandleEvent(&ev)
	if e.sink != nil {
		e.sink.EmitEvent(ev)
	}
	e.scene.Input(&ev)
}

// InjectEvent queues a synthetic event. One queued event is consumed at the
// start of each Update, exactly as if the platform layer had produced it.
// Positions are in window coordinates, matching real pointer input.
func (e *Engine) InjectEvent(ev InputEvent) {
	e.injectQueue = append(e.injectQueue, ev)
}

// InjectKeyTap queues a key press followed by a release. Consumes two frames.
func (e *Engine) InjectKeyTap(key Key) {
	e.InjectEvent(InputEvent{Type: EventKeyPress, Key: key})
	e.InjectEvent(InputEvent{Type: EventKeyRelease, Key: key})
}

// InjectClick queues a left button press followed by a release at the same
// window coordinates. Consumes two frames.
func (e *Engine) InjectClick(pos Vec2) {
	e.InjectEvent(InputEvent{Type: EventMouseButtonPress, Button: MouseButtonLeft, Position: pos})
	e.InjectEvent(InputEvent{Type: EventMouseButtonRelease, Button: MouseButtonLeft, Position: pos})
}

// InjectDrag queues a full drag sequence: press at from, linearly
// interpolated moves over frames-2 intermediate frames, and release at to.
// Minimum frames is 2 (press and release).
func (e *Engine) InjectDrag(from, to Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectEvent(InputEvent{Type: EventMouseButtonPress, Button: MouseButtonLeft, Position: from})
	steps := frames - 2
	prev := from
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		pos := from.Lerp(to, t)
		e.InjectEvent(InputEvent{Type: EventMouseMove, Position: pos, Delta: pos.Sub(prev)})
		prev = pos
	}
	e.InjectEvent(InputEvent{Type: EventMouseButtonRelease, Button: MouseButtonLeft, Position: to})
}

// processInjectedInput pops one queued event and feeds it through
// HandleInput. Returns true if an event was consumed.
func (e *Engine) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	ev := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]
	e.HandleInput(ev)
	return true
}

// --- Frame lifecycle ---

// Update advances one frame: consumes one injected event, readies nodes that
// joined the tree since the last frame, runs the process pass, then runs as
// many fixed physics steps as the accumulated time covers. Input edge state
// rotates at the end, so hooks and queries during the frame see this frame's
// just-pressed sets.
func (e *Engine) Update(delta float64) {
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.processInjectedInput()

	e.scene.Ready()
	e.scene.Process(delta)

	e.physicsAccum += delta
	steps := 0
	for e.physicsAccum >= e.config.FixedDelta && steps < maxPhysicsSteps {
		e.StepPhysics(e.config.FixedDelta)
		e.physicsAccum -= e.config.FixedDelta
		steps++
	}
	if steps == maxPhysicsSteps {
		// Too far behind: drop the backlog rather than stall the frame.
		e.physicsAccum = 0
	}

	e.input.BeginFrame()

	e.elapsed += delta
	e.frameCount++
	e.fpsTime += delta
	e.fpsFrames++
	if e.fpsTime >= fpsWindow {
		e.fps = float64(e.fpsFrames) / e.fpsTime
		e.fpsTime = 0
		e.fpsFrames = 0
	}
}

// StepPhysics runs one fixed physics step: the attached world first, then
// the scene's physics pass. Update calls this from its accumulator; call it
// directly only when stepping manually.
func (e *Engine) StepPhysics(delta float64) {
	if e.world != nil {
		e.world.Step(delta)
	}
	e.scene.PhysicsProcess(delta)
}

// Render draws the scene: the view comes from the current enabled camera
// (identity when there is none, or it is disabled or detached), then every
// root subtree draws in tree order. Invisible nodes skip their whole
// subtree. A node's z-index sets the renderer's draw order, adding to the
// parent's when the node is z-relative; renderers sort by it at flush.
func (e *Engine) Render(r Renderer, viewport Rect2) {
	view := IdentityTransform2D()
	if cam := e.cameras.Current(); cam != nil && cam.enabled && cam.inTree {
		view = cam.ViewTransform(viewport)
	}
	r.SetViewTransform(view)

	for _, root := range e.scene.RootNodes() {
		e.drawNode(r, root, 0)
	}
}

// drawNode draws one node and recurses, carrying the effective z-index down
// the subtree.
func (e *Engine) drawNode(r Renderer, n Noder, parentZ int) {
	nb := n.base()
	if !nb.visible {
		return
	}
	z := parentZ
	if sp, ok := n.(spatial); ok {
		n2 := sp.node2d()
		if n2.zRelative {
			z = parentZ + n2.zIndex
		} else {
			z = n2.zIndex
		}
	}
	r.SetZIndex(z)
	n.Draw(r)
	for _, child := range nb.children {
		e.drawNode(r, child, z)
	}
}

// --- Frame accounting ---

// Elapsed returns total time passed to Update, in seconds.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// FrameCount returns the number of completed Update calls.
func (e *Engine) FrameCount() uint64 { return e.frameCount }

// FPS returns the update rate estimated over the last half second window.
// Zero until the first window completes.
func (e *Engine) FPS() float64 { return e.fps }
