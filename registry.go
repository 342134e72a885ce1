package rowan

import "sort"

// nodeFactories maps type names to constructors for serialization.
// Registration happens at init time; the map is read-only afterwards.
var nodeFactories = map[string]func() Noder{}

func init() {
	RegisterNodeType("Node", func() Noder { return NewNode("") })
	RegisterNodeType("Node2D", func() Noder { return NewNode2D("") })
	RegisterNodeType("Camera2D", func() Noder { return NewCamera2D("") })
	RegisterNodeType("Sprite", func() Noder { return NewSprite("") })
	RegisterNodeType("Label", func() Noder { return NewLabel("") })
	RegisterNodeType("Timer", func() Noder { return NewTimer("") })
}

// RegisterNodeType binds a type name to a factory so LoadNode can
// reconstruct nodes of that kind. The name must match what the kind's
// TypeName returns. Register custom kinds during init; registration is not
// safe once loading has started.
func RegisterNodeType(typeName string, factory func() Noder) {
	nodeFactories[typeName] = factory
}

// NewNodeOfType constructs a node of the registered kind, or nil when the
// name is unknown.
func NewNodeOfType(typeName string) Noder {
	if factory, ok := nodeFactories[typeName]; ok {
		return factory()
	}
	return nil
}

// RegisteredNodeTypes returns the registered type names, sorted.
func RegisteredNodeTypes() []string {
	names := make([]string, 0, len(nodeFactories))
	for name := range nodeFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NodeRecord is the serialized form of one node: its flat property
// dictionary plus records for its children in sibling order. The dictionary
// is exactly what SaveToDict produced, so kinds stay free to extend their
// persisted state without touching the record shape.
type NodeRecord struct {
	Props    map[string]Variant
	Children []*NodeRecord
}

// SaveNode captures a node and its subtree as records.
func SaveNode(n Noder) *NodeRecord {
	rec := &NodeRecord{Props: make(map[string]Variant)}
	n.SaveToDict(rec.Props)
	children := n.Children()
	if len(children) > 0 {
		rec.Children = make([]*NodeRecord, 0, len(children))
		for _, c := range children {
			rec.Children = append(rec.Children, SaveNode(c))
		}
	}
	return rec
}

// LoadNode reconstructs a node tree from records. The "type" key selects the
// registered factory; an unknown type degrades to a plain Node so the tree
// shape survives loading data from builds with extra kinds. Returns nil for
// a nil record.
func LoadNode(rec *NodeRecord) Noder {
	if rec == nil {
		return nil
	}
	n := NewNodeOfType(rec.Props["type"].AsString())
	if n == nil {
		n = NewNode("")
	}
	n.LoadFromDict(rec.Props)
	for _, childRec := range rec.Children {
		if child := LoadNode(childRec); child != nil {
			n.AddChild(child)
		}
	}
	return n
}
