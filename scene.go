package rowan

import "strings"

// Scene owns an ordered list of root nodes and fans lifecycle dispatch out
// over them. Nodes added as roots (or anywhere below them) are attached;
// removing them detaches with full exit semantics. A scene exclusively owns
// its roots: adding a parented node as a root detaches it first.
type Scene struct {
	name  string
	roots []Noder

	dispatchBuf   []Noder // reused snapshot buffer for root fan-out
	dispatchDepth int     // live fan-outs over the root list
}

// NewScene creates an empty scene.
func NewScene(name string) *Scene {
	return &Scene{name: name}
}

// Name returns the scene's name.
func (s *Scene) Name() string { return s.name }

// SetName renames the scene.
func (s *Scene) SetName(name string) { s.name = name }

// AddRootNode appends a node to the root list and attaches its subtree. A
// parented node is detached from its parent first; a node that is already a
// root of this scene stays where it is. Root names are made unique the same
// way sibling names are. Panics on nil or uninitialized nodes.
func (s *Scene) AddRootNode(n Noder) {
	if n == nil {
		panic("rowan: cannot add nil root node")
	}
	nb := n.base()
	if nb.self == nil {
		panic("rowan: node not initialized; construct with New* or InitNode")
	}
	for _, r := range s.roots {
		if r == n {
			return
		}
	}
	if nb.parent != nil {
		nb.parent.RemoveChild(n)
	}
	s.uniquifyRootName(nb)
	s.roots = append(s.roots, n)
	if sp, ok := n.(spatial); ok {
		sp.markSubtreeDirty()
	}
	nb.propagateEnterTree()
}

// RemoveRootNode detaches a root and its subtree, children exiting before
// parents. No-op when n is not a root of this scene.
func (s *Scene) RemoveRootNode(n Noder) {
	if n == nil {
		return
	}
	for i, r := range s.roots {
		if r == n {
			nb := n.base()
			if nb.inTree {
				nb.propagateExitTree()
			}
			copy(s.roots[i:], s.roots[i+1:])
			s.roots[len(s.roots)-1] = nil
			s.roots = s.roots[:len(s.roots)-1]
			return
		}
	}
}

// RootNodes returns the root list in order.
// The returned slice MUST NOT be mutated by the caller.
func (s *Scene) RootNodes() []Noder { return s.roots }

// Find searches the whole scene for a node by name: roots in order first,
// then each root's subtree depth-first. Returns nil when nothing matches.
func (s *Scene) Find(name string) Noder {
	for _, r := range s.roots {
		if r.base().name == name {
			return r
		}
	}
	for _, r := range s.roots {
		if found := r.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// NodeAt resolves an absolute path against the scene: the first segment
// names a root, the rest walk children. A leading "/" is optional. Returns
// nil on any miss.
func (s *Scene) NodeAt(path string) Noder {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	segs := strings.Split(path, "/")
	for _, r := range s.roots {
		if r.base().name == segs[0] {
			return descendPath(r, segs[1:])
		}
	}
	return nil
}

// --- Lifecycle fan-out ---

// Ready readies every root subtree, parents before children. Safe to call
// every frame: nodes that are already readied are skipped, while nodes that
// joined the tree since the last call get their turn.
func (s *Scene) Ready() {
	defer s.releaseSnapshot()
	for _, r := range s.snapshotRoots() {
		if r.base().inTree {
			r.PropagateReady()
		}
	}
}

// Process runs per-frame processing over every root subtree in root order.
func (s *Scene) Process(delta float64) {
	defer s.releaseSnapshot()
	for _, r := range s.snapshotRoots() {
		if r.base().inTree {
			r.PropagateProcess(delta)
		}
	}
}

// PhysicsProcess runs fixed-step processing over every root subtree.
func (s *Scene) PhysicsProcess(delta float64) {
	defer s.releaseSnapshot()
	for _, r := range s.snapshotRoots() {
		if r.base().inTree {
			r.PropagatePhysicsProcess(delta)
		}
	}
}

// Input delivers an event to every root subtree, in root order, regardless
// of visibility or process flags.
func (s *Scene) Input(ev *InputEvent) {
	defer s.releaseSnapshot()
	for _, r := range s.snapshotRoots() {
		if r.base().inTree {
			r.PropagateInput(ev)
		}
	}
}

// --- Serialization ---

// Save captures every root subtree as node records.
func (s *Scene) Save() []*NodeRecord {
	records := make([]*NodeRecord, 0, len(s.roots))
	for _, r := range s.roots {
		records = append(records, SaveNode(r))
	}
	return records
}

// Load reconstructs node trees from records and adds them as roots, after
// any existing roots.
func (s *Scene) Load(records []*NodeRecord) {
	for _, rec := range records {
		if n := LoadNode(rec); n != nil {
			s.AddRootNode(n)
		}
	}
}

// --- Helpers ---

// uniquifyRootName applies the sibling naming rule across the root list.
func (s *Scene) uniquifyRootName(n *Node) {
	if n.name == "" {
		n.name = n.self.TypeName()
	}
	base := n.name
	name := base
	for suffix := 2; s.rootNamedExcept(name, n) != nil; suffix++ {
		name = nameWithSuffix(base, suffix)
	}
	n.name = name
}

// rootNamedExcept returns the root with the given name, skipping except.
func (s *Scene) rootNamedExcept(name string, except *Node) Noder {
	for _, r := range s.roots {
		if r.base() != except && r.base().name == name {
			return r
		}
	}
	return nil
}

// snapshotRoots copies the root list so fan-out survives roots being added
// or removed from inside hooks. The outermost fan-out reuses a buffer; a
// hook re-entering the scene mid-traversal (Process dispatching an input
// event, say) gets a fresh copy so the outer loop's view survives the
// rewrite. Callers release when their loop ends.
func (s *Scene) snapshotRoots() []Noder {
	s.dispatchDepth++
	if s.dispatchDepth > 1 {
		return append([]Noder(nil), s.roots...)
	}
	s.dispatchBuf = append(s.dispatchBuf[:0], s.roots...)
	return s.dispatchBuf
}

func (s *Scene) releaseSnapshot() {
	s.dispatchDepth--
}
