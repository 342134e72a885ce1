package rowan

import (
	"fmt"
	"strings"
)

// Built-in signal names emitted by node lifecycle dispatch. Built-in signals
// fire only once something has looked them up with Signal and connected, so
// idle nodes pay nothing for them.
const (
	SignalReady       = "ready"        // after a node's Ready hook runs
	SignalTreeEntered = "tree_entered" // after a node enters a tree
	SignalTreeExiting = "tree_exiting" // before a node leaves a tree
	SignalRenamed     = "renamed"      // after SetName changes the name
)

// Script method names invoked by lifecycle dispatch when the attached
// ScriptInstance reports them via HasMethod.
const (
	scriptEnterTree = "_enter_tree"
	scriptExitTree  = "_exit_tree"
)

// Noder is the capability interface every node kind implements. Concrete
// kinds embed Node (or Node2D) and get the whole surface by promotion,
// overriding only the lifecycle hooks they care about. Tree links hold Noder
// values, so a node retrieved from the tree keeps its concrete behavior.
type Noder interface {
	base() *Node

	// Identity
	Name() string
	SetName(name string)
	TypeName() string

	// Hierarchy
	Parent() Noder
	AddChild(child Noder)
	RemoveChild(child Noder)
	RemoveChildNamed(name string)
	RemoveChildren()
	RemoveFromParent()
	Child(name string) Noder
	ChildAt(index int) Noder
	ChildCount() int
	Children() []Noder
	IsInTree() bool
	Path() string
	NodeAt(path string) Noder
	Find(name string) Noder

	// Groups
	AddToGroup(group string)
	RemoveFromGroup(group string)
	InGroup(group string) bool
	Groups() []string

	// Properties
	SetProperty(name string, value Variant)
	Property(name string) Variant
	HasProperty(name string) bool

	// Signals
	Signal(name string) *Signal
	EmitSignal(name string, args ...Variant)
	HasSignal(name string) bool

	// Script
	SetScript(script ScriptInstance)
	Script() ScriptInstance
	HasScript() bool

	// Flags
	Visible() bool
	SetVisible(visible bool)
	ProcessEnabled() bool
	SetProcessEnabled(enabled bool)
	PhysicsProcessEnabled() bool
	SetPhysicsProcessEnabled(enabled bool)

	// Lifecycle hooks. No-ops on Node; override in embedding kinds.
	Ready()
	Process(delta float64)
	PhysicsProcess(delta float64)
	Input(ev *InputEvent)
	Draw(r Renderer)
	EnterTree()
	TreeEntered()
	TreeExiting()
	ExitTree()

	// Lifecycle dispatch. Walks the subtree calling hooks, script methods,
	// and built-in signals. Scene fans these out over its roots.
	PropagateReady()
	PropagateProcess(delta float64)
	PropagatePhysicsProcess(delta float64)
	PropagateInput(ev *InputEvent)

	// Serialization. Additive: embedding kinds write their own keys after
	// calling the embedded implementation.
	SaveToDict(dict map[string]Variant)
	LoadFromDict(dict map[string]Variant)
}

// spatial is implemented by node kinds that carry a 2D transform. Tree
// operations use it to invalidate cached global transforms, and transform
// reads use it to reach the parent's Node2D part through the outer type.
type spatial interface {
	markSubtreeDirty()
	node2d() *Node2D
}

// Node is the fundamental scene graph element: a named member of a tree with
// groups, dynamic properties, signals, an optional script, and lifecycle
// dispatch. Node itself has no position; spatial kinds embed it via Node2D.
//
// Nodes are not safe for concurrent use. A tree belongs to the goroutine
// that updates it.
type Node struct {
	self Noder

	name     string
	parent   Noder
	children []Noder

	inTree      bool
	readyCalled bool

	visible               bool
	processEnabled        bool
	physicsProcessEnabled bool

	groups     []string
	properties map[string]Variant
	signals    map[string]*Signal
	script     ScriptInstance

	dispatchBuf   []Noder // reused snapshot buffer for lifecycle traversal
	dispatchDepth int     // live traversals over this node's children
}

// NewNode creates a plain node with the given name.
func NewNode(name string) *Node {
	n := &Node{}
	InitNode(n, n, name)
	return n
}

// InitNode wires the embedded Node of a concrete node kind. self must be the
// outermost value so lifecycle dispatch reaches overridden hooks. Call it
// once from the kind's constructor, before any tree operation.
func InitNode(n *Node, self Noder, name string) {
	n.self = self
	n.name = name
	n.visible = true
	n.processEnabled = true
	n.physicsProcessEnabled = true
}

func (n *Node) base() *Node { return n }

// TypeName returns the registered kind name used in serialization
// dictionaries. Embedding kinds override it.
func (n *Node) TypeName() string { return "Node" }

// --- Identity ---

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// SetName renames the node. If the node has a parent the new name is made
// unique among its siblings, then the "renamed" signal fires.
func (n *Node) SetName(name string) {
	if name == n.name {
		return
	}
	n.name = name
	if n.parent != nil {
		n.parent.base().uniquifyChildName(n)
	}
	n.EmitSignal(SignalRenamed)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children. If child already has a
// parent it is removed from that parent first, with full exit semantics when
// it was inside a tree. The child's name is made unique among its new
// siblings. If this node is inside a tree the child's subtree enters it.
// Panics if child is nil, uninitialized, or an ancestor of this node.
func (n *Node) AddChild(child Noder) {
	if child == nil {
		panic("rowan: cannot add nil child")
	}
	cb := child.base()
	if n.self == nil || cb.self == nil {
		panic("rowan: node not initialized; construct with New* or InitNode")
	}
	if isAncestor(child, n.self) {
		panic("rowan: adding child would create a cycle")
	}
	if cb.parent != nil {
		cb.parent.RemoveChild(child)
	}
	cb.parent = n.self
	n.uniquifyChildName(cb)
	n.children = append(n.children, child)
	if s, ok := child.(spatial); ok {
		s.markSubtreeDirty()
	}
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	if n.inTree {
		cb.propagateEnterTree()
	}
}

// RemoveChild detaches child from this node. If the child is inside a tree
// its subtree exits first, children before parents. No-op when child is nil
// or not a child of this node.
func (n *Node) RemoveChild(child Noder) {
	if child == nil {
		return
	}
	cb := child.base()
	if cb.parent != n.self {
		return
	}
	if cb.inTree {
		cb.propagateExitTree()
	}
	n.removeChildRef(child)
	cb.parent = nil
	if s, ok := child.(spatial); ok {
		s.markSubtreeDirty()
	}
}

// RemoveChildNamed removes the direct child with the given name.
// No-op when no child has that name.
func (n *Node) RemoveChildNamed(name string) {
	n.RemoveChild(n.Child(name))
}

// RemoveChildren detaches every child, each with full exit semantics.
func (n *Node) RemoveChildren() {
	for len(n.children) > 0 {
		n.RemoveChild(n.children[len(n.children)-1])
	}
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n.self)
}

// Parent returns the node's parent, or nil at a root.
func (n *Node) Parent() Noder { return n.parent }

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) Noder {
	for _, c := range n.children {
		if c.base().name == name {
			return c
		}
	}
	return nil
}

// ChildAt returns the child at the given index, or nil if out of range.
func (n *Node) ChildAt(index int) Noder {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.children) }

// Children returns the child list in sibling order.
// The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []Noder { return n.children }

// IsInTree reports whether the node is attached to a scene tree.
func (n *Node) IsInTree() bool { return n.inTree }

// --- Paths ---

// Path returns the absolute path of this node: the names from the root-most
// ancestor down to this node, each prefixed with "/".
func (n *Node) Path() string {
	if n.parent == nil {
		return "/" + n.name
	}
	return n.parent.Path() + "/" + n.name
}

// NodeAt resolves a path relative to this node and returns the target, or
// nil when any segment is missing. Paths starting with "/" are absolute:
// resolution walks up to the root-most ancestor, whose name must match the
// first segment. Empty segments never match, so NodeAt(n.Path()) == n holds
// for any attached node.
func (n *Node) NodeAt(path string) Noder {
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "/") {
		root := n.self
		for root.base().parent != nil {
			root = root.base().parent
		}
		segs := strings.Split(path[1:], "/")
		if len(segs) == 0 || segs[0] != root.base().name {
			return nil
		}
		return descendPath(root, segs[1:])
	}
	return descendPath(n.self, strings.Split(path, "/"))
}

// descendPath walks child names from cur. Returns nil on the first miss.
func descendPath(cur Noder, segs []string) Noder {
	for _, seg := range segs {
		if seg == "" {
			return nil
		}
		cur = cur.base().Child(seg)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Find searches the subtree below this node for the first node with the
// given name: direct children in sibling order first, then each child's
// subtree depth-first. Returns nil when nothing matches.
func (n *Node) Find(name string) Noder {
	for _, c := range n.children {
		if c.base().name == name {
			return c
		}
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Groups ---

// AddToGroup adds the node to a named group. Groups keep insertion order
// and ignore duplicates.
func (n *Node) AddToGroup(group string) {
	if n.InGroup(group) {
		return
	}
	n.groups = append(n.groups, group)
}

// RemoveFromGroup removes the node from a group. No-op when absent.
func (n *Node) RemoveFromGroup(group string) {
	for i, g := range n.groups {
		if g == group {
			copy(n.groups[i:], n.groups[i+1:])
			n.groups = n.groups[:len(n.groups)-1]
			return
		}
	}
}

// InGroup reports whether the node belongs to the group.
func (n *Node) InGroup(group string) bool {
	for _, g := range n.groups {
		if g == group {
			return true
		}
	}
	return false
}

// Groups returns the node's groups in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (n *Node) Groups() []string { return n.groups }

// --- Properties ---

// SetProperty stores a dynamic property on the node.
func (n *Node) SetProperty(name string, value Variant) {
	if n.properties == nil {
		n.properties = make(map[string]Variant)
	}
	n.properties[name] = value
}

// Property returns the named property, or the nil variant when unset.
func (n *Node) Property(name string) Variant {
	return n.properties[name]
}

// HasProperty reports whether the property has been set.
func (n *Node) HasProperty(name string) bool {
	_, ok := n.properties[name]
	return ok
}

// --- Signals ---

// Signal returns the named signal, creating it on first reference.
func (n *Node) Signal(name string) *Signal {
	if n.signals == nil {
		n.signals = make(map[string]*Signal)
	}
	s, ok := n.signals[name]
	if !ok {
		s = NewSignal(name)
		n.signals[name] = s
	}
	return s
}

// EmitSignal emits the named signal with the given arguments.
// No-op when the signal was never referenced.
func (n *Node) EmitSignal(name string, args ...Variant) {
	if s := n.signals[name]; s != nil {
		s.Emit(args...)
	}
}

// HasSignal reports whether the signal has been referenced on this node.
func (n *Node) HasSignal(name string) bool {
	_, ok := n.signals[name]
	return ok
}

// --- Script ---

// SetScript attaches a script instance to the node, replacing any previous
// one. The instance is attached immediately; pass nil to detach.
func (n *Node) SetScript(script ScriptInstance) {
	n.script = script
	if script != nil {
		script.Attach(n.self)
	}
}

// Script returns the attached script instance, or nil.
func (n *Node) Script() ScriptInstance { return n.script }

// HasScript reports whether a script instance is attached.
func (n *Node) HasScript() bool { return n.script != nil }

// --- Flags ---

// Visible reports whether the node is visible. An invisible node is not
// drawn and, together with its whole subtree, does not process.
func (n *Node) Visible() bool { return n.visible }

// SetVisible sets the node's visibility.
func (n *Node) SetVisible(visible bool) {
	n.visible = visible
}

// ProcessEnabled reports whether per-frame processing is enabled.
func (n *Node) ProcessEnabled() bool { return n.processEnabled }

// SetProcessEnabled enables or disables per-frame processing for this node
// and, transitively, its subtree.
func (n *Node) SetProcessEnabled(enabled bool) { n.processEnabled = enabled }

// PhysicsProcessEnabled reports whether fixed-step processing is enabled.
func (n *Node) PhysicsProcessEnabled() bool { return n.physicsProcessEnabled }

// SetPhysicsProcessEnabled enables or disables fixed-step processing for
// this node and, transitively, its subtree.
func (n *Node) SetPhysicsProcessEnabled(enabled bool) { n.physicsProcessEnabled = enabled }

// --- Lifecycle hooks (no-op defaults) ---

// Ready is called once, the first time the node is readied inside a tree.
func (n *Node) Ready() {}

// Process is called every frame with the elapsed time in seconds.
func (n *Node) Process(delta float64) {}

// PhysicsProcess is called every fixed step with the step size in seconds.
func (n *Node) PhysicsProcess(delta float64) {}

// Input is called for every input event, regardless of visibility.
func (n *Node) Input(ev *InputEvent) {}

// Draw is called during rendering with the active renderer.
func (n *Node) Draw(r Renderer) {}

// EnterTree is called when the node joins a tree, before its children do.
func (n *Node) EnterTree() {}

// TreeEntered is called after EnterTree and the node's script hook.
func (n *Node) TreeEntered() {}

// TreeExiting is called when the node is about to leave a tree, after its
// children have exited.
func (n *Node) TreeExiting() {}

// ExitTree is called as the node leaves a tree, just before inTree clears.
func (n *Node) ExitTree() {}

// --- Lifecycle dispatch ---

// PropagateReady readies this subtree, parents before children. Each node is
// readied at most once; the latch is set before the hook runs, so a child
// added during a Ready hook is readied exactly once. Dispatch is safe to
// repeat every frame.
func (n *Node) PropagateReady() {
	n.propagateReady()
}

func (n *Node) propagateReady() {
	if !n.readyCalled {
		n.readyCalled = true
		n.self.Ready()
		if n.script != nil {
			n.script.CallReady()
		}
		n.EmitSignal(SignalReady)
	}
	buf := n.snapshotChildren()
	defer n.releaseSnapshot()
	for _, c := range buf {
		cb := c.base()
		if cb.parent == n.self && cb.inTree {
			cb.propagateReady()
		}
	}
	// Children attached by a Ready hook above are not in the snapshot.
	// The hooks below may add or remove siblings too, so rescan the live
	// child list after every dispatch until a pass finds nothing pending.
	for {
		var pending *Node
		for _, c := range n.children {
			cb := c.base()
			if cb.inTree && !cb.readyCalled {
				pending = cb
				break
			}
		}
		if pending == nil {
			return
		}
		pending.propagateReady()
	}
}

// PropagateProcess runs per-frame processing over this subtree. A node that
// is invisible or has processing disabled short-circuits its whole subtree.
func (n *Node) PropagateProcess(delta float64) {
	if !n.processEnabled || !n.visible {
		return
	}
	n.self.Process(delta)
	if n.script != nil {
		n.script.CallProcess(delta)
	}
	buf := n.snapshotChildren()
	defer n.releaseSnapshot()
	for _, c := range buf {
		cb := c.base()
		if cb.parent == n.self && cb.inTree {
			cb.PropagateProcess(delta)
		}
	}
}

// PropagatePhysicsProcess runs fixed-step processing over this subtree with
// the same gating as PropagateProcess.
func (n *Node) PropagatePhysicsProcess(delta float64) {
	if !n.physicsProcessEnabled || !n.visible {
		return
	}
	n.self.PhysicsProcess(delta)
	if n.script != nil {
		n.script.CallPhysicsProcess(delta)
	}
	buf := n.snapshotChildren()
	defer n.releaseSnapshot()
	for _, c := range buf {
		cb := c.base()
		if cb.parent == n.self && cb.inTree {
			cb.PropagatePhysicsProcess(delta)
		}
	}
}

// PropagateInput delivers an input event to this subtree. Input is not
// gated: hidden and disabled nodes still receive events.
func (n *Node) PropagateInput(ev *InputEvent) {
	n.self.Input(ev)
	if n.script != nil {
		n.script.CallInput(ev)
	}
	buf := n.snapshotChildren()
	defer n.releaseSnapshot()
	for _, c := range buf {
		cb := c.base()
		if cb.parent == n.self && cb.inTree {
			cb.PropagateInput(ev)
		}
	}
}

// propagateEnterTree attaches a subtree: the node first, then its children.
func (n *Node) propagateEnterTree() {
	n.inTree = true
	n.self.EnterTree()
	if n.script != nil && n.script.HasMethod(scriptEnterTree) {
		n.script.CallMethod(scriptEnterTree)
	}
	n.self.TreeEntered()
	n.EmitSignal(SignalTreeEntered)
	buf := n.snapshotChildren()
	defer n.releaseSnapshot()
	for _, c := range buf {
		cb := c.base()
		if cb.parent == n.self && !cb.inTree {
			cb.propagateEnterTree()
		}
	}
}

// propagateExitTree detaches a subtree: children first, then the node, the
// mirror of propagateEnterTree. Exit hooks run while the node is still
// linked to its parent, so paths resolve inside them.
func (n *Node) propagateExitTree() {
	buf := n.snapshotChildren()
	defer n.releaseSnapshot()
	for _, c := range buf {
		cb := c.base()
		if cb.parent == n.self && cb.inTree {
			cb.propagateExitTree()
		}
	}
	n.self.TreeExiting()
	n.EmitSignal(SignalTreeExiting)
	if n.script != nil && n.script.HasMethod(scriptExitTree) {
		n.script.CallMethod(scriptExitTree)
	}
	n.self.ExitTree()
	n.inTree = false
}

// --- Serialization ---

// SaveToDict writes this node's persistent state into dict. Embedding kinds
// call the embedded implementation first, then add their own keys.
func (n *Node) SaveToDict(dict map[string]Variant) {
	dict["name"] = VariantString(n.name)
	dict["type"] = VariantString(n.self.TypeName())
	dict["visible"] = VariantBool(n.visible)
	dict["process_enabled"] = VariantBool(n.processEnabled)
	dict["physics_process_enabled"] = VariantBool(n.physicsProcessEnabled)
}

// LoadFromDict applies the keys present in dict, leaving everything else
// unchanged. Embedding kinds call the embedded implementation first.
func (n *Node) LoadFromDict(dict map[string]Variant) {
	if v, ok := dict["name"]; ok {
		n.name = v.AsString()
	}
	if v, ok := dict["visible"]; ok {
		n.visible = v.AsBool()
	}
	if v, ok := dict["process_enabled"]; ok {
		n.processEnabled = v.AsBool()
	}
	if v, ok := dict["physics_process_enabled"]; ok {
		n.physicsProcessEnabled = v.AsBool()
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of node's ancestors.
func isAncestor(candidate, node Noder) bool {
	for p := node; p != nil; p = p.base().parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildRef removes child from n.children without clearing its parent.
// Uses copy+nil to avoid retaining a dangling reference in the backing array.
func (n *Node) removeChildRef(child Noder) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// uniquifyChildName renames child so no sibling shares its name. An empty
// name defaults to the child's type name; collisions get a numeric suffix
// (name_2, name_3, ...).
func (n *Node) uniquifyChildName(child *Node) {
	if child.name == "" {
		child.name = child.self.TypeName()
	}
	base := child.name
	name := base
	for suffix := 2; n.childNamedExcept(name, child) != nil; suffix++ {
		name = nameWithSuffix(base, suffix)
	}
	child.name = name
}

// nameWithSuffix builds the collision rename for uniquifyChildName.
func nameWithSuffix(base string, suffix int) string {
	return fmt.Sprintf("%s_%d", base, suffix)
}

// childNamedExcept returns the child with the given name, skipping except.
func (n *Node) childNamedExcept(name string, except *Node) Noder {
	for _, c := range n.children {
		if c.base() != except && c.base().name == name {
			return c
		}
	}
	return nil
}

// snapshotChildren copies the child list so dispatch can survive structural
// mutation from inside hooks. The outermost traversal reuses a per-node
// buffer; a hook that re-enters dispatch on the same node (a Process hook
// feeding input back through the scene, say) gets a fresh copy so the outer
// loop's view survives the rewrite. Callers release when their loop ends.
func (n *Node) snapshotChildren() []Noder {
	n.dispatchDepth++
	if n.dispatchDepth > 1 {
		return append([]Noder(nil), n.children...)
	}
	n.dispatchBuf = append(n.dispatchBuf[:0], n.children...)
	return n.dispatchBuf
}

func (n *Node) releaseSnapshot() {
	n.dispatchDepth--
}
