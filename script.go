package rowan

// ScriptInstance is the contract between a node and an attached script. The
// typed Call methods are invoked by lifecycle dispatch every frame; the
// named method and property accessors serve dynamic access from tools and
// serialization. Implementations back these however they like: FuncScript
// uses plain Go callbacks, an embedding runtime would bridge to its
// interpreter.
type ScriptInstance interface {
	// Attach binds the script to its owning node. Called by Node.SetScript.
	Attach(owner Noder)

	// HasMethod reports whether the script defines the named method.
	HasMethod(name string) bool
	// CallMethod invokes the named method. Calling an undefined method is a
	// no-op that returns the nil variant.
	CallMethod(name string, args ...Variant) Variant

	// HasProperty reports whether the script exposes the named property.
	HasProperty(name string) bool
	// GetProperty returns the named property, or the nil variant.
	GetProperty(name string) Variant
	// SetProperty stores the named property. Unknown names are accepted.
	SetProperty(name string, value Variant)

	// Lifecycle bridges, called by node dispatch.
	CallReady()
	CallProcess(delta float64)
	CallPhysicsProcess(delta float64)
	CallInput(ev *InputEvent)
}

// FuncScript is a ScriptInstance backed by plain Go callbacks. Nil callbacks
// cost nothing. The zero value is ready to use:
//
//	node.SetScript(&rowan.FuncScript{
//		OnProcess: func(owner rowan.Noder, delta float64) { ... },
//	})
//
// Named methods registered in Methods are reachable through CallMethod, and
// the enter/exit callbacks double as the "_enter_tree" and "_exit_tree"
// methods that lifecycle dispatch looks up by name.
type FuncScript struct {
	OnReady          func(owner Noder)
	OnProcess        func(owner Noder, delta float64)
	OnPhysicsProcess func(owner Noder, delta float64)
	OnInput          func(owner Noder, ev *InputEvent)
	OnEnterTree      func(owner Noder)
	OnExitTree       func(owner Noder)

	// Methods maps method names to callbacks for CallMethod dispatch.
	Methods map[string]func(owner Noder, args ...Variant) Variant

	owner      Noder
	properties map[string]Variant
}

// Attach records the owning node. Part of ScriptInstance.
func (f *FuncScript) Attach(owner Noder) {
	f.owner = owner
}

// Owner returns the node this script is attached to, or nil before Attach.
func (f *FuncScript) Owner() Noder { return f.owner }

// HasMethod reports whether name is in Methods or is a lifecycle callback
// name with a non-nil callback.
func (f *FuncScript) HasMethod(name string) bool {
	switch name {
	case scriptEnterTree:
		return f.OnEnterTree != nil
	case scriptExitTree:
		return f.OnExitTree != nil
	}
	_, ok := f.Methods[name]
	return ok
}

// CallMethod invokes a named method. Undefined methods return the nil
// variant.
func (f *FuncScript) CallMethod(name string, args ...Variant) Variant {
	switch name {
	case scriptEnterTree:
		if f.OnEnterTree != nil {
			f.OnEnterTree(f.owner)
		}
		return Variant{}
	case scriptExitTree:
		if f.OnExitTree != nil {
			f.OnExitTree(f.owner)
		}
		return Variant{}
	}
	if fn, ok := f.Methods[name]; ok {
		return fn(f.owner, args...)
	}
	return Variant{}
}

// HasProperty reports whether the property has been set on this script.
func (f *FuncScript) HasProperty(name string) bool {
	_, ok := f.properties[name]
	return ok
}

// GetProperty returns a script property, or the nil variant when unset.
func (f *FuncScript) GetProperty(name string) Variant {
	return f.properties[name]
}

// SetProperty stores a script property.
func (f *FuncScript) SetProperty(name string, value Variant) {
	if f.properties == nil {
		f.properties = make(map[string]Variant)
	}
	f.properties[name] = value
}

// CallReady runs the OnReady callback if set.
func (f *FuncScript) CallReady() {
	if f.OnReady != nil {
		f.OnReady(f.owner)
	}
}

// CallProcess runs the OnProcess callback if set.
func (f *FuncScript) CallProcess(delta float64) {
	if f.OnProcess != nil {
		f.OnProcess(f.owner, delta)
	}
}

// CallPhysicsProcess runs the OnPhysicsProcess callback if set.
func (f *FuncScript) CallPhysicsProcess(delta float64) {
	if f.OnPhysicsProcess != nil {
		f.OnPhysicsProcess(f.owner, delta)
	}
}

// CallInput runs the OnInput callback if set.
func (f *FuncScript) CallInput(ev *InputEvent) {
	if f.OnInput != nil {
		f.OnInput(f.owner, ev)
	}
}
