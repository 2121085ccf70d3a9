package mdlx

// NodeIndex is the position of a Node within Model.Nodes. It is assigned in
// file order as nodes are decoded, and is how records refer to their node.
// It is unrelated to Node.ObjectID.
type NodeIndex int

// NoNode is a NodeIndex that refers to no node.
const NoNode NodeIndex = -1

// Node is the hierarchical transform shared by bones, lights, helpers,
// attachments, emitters, event objects and collision shapes.
type Node struct {
	Name string

	// ObjectID identifies the node to other records, such as the ParentID of
	// another node, or the index of its pivot point.
	ObjectID int32

	// ParentID is the ObjectID of the parent node. A value of -1, or a value
	// equal to ObjectID, indicates a root node.
	ParentID int32

	Flags NodeFlags

	Tracks TrackSets
}

// IsRoot returns whether the node declares no parent.
func (n *Node) IsRoot() bool {
	return n.ParentID == -1 || n.ParentID == n.ObjectID
}

// NodeFlags is the bitfield of a node.
type NodeFlags uint32

const (
	NodeDontInheritTranslation NodeFlags = 1 << iota
	NodeDontInheritRotation
	NodeDontInheritScaling
	NodeBillboarded
	NodeBillboardedX
	NodeBillboardedY
	NodeBillboardedZ
	NodeCameraAnchored
	NodeBone
	NodeLight
	NodeEventObject
	NodeAttachment
	NodeParticleEmitter
	NodeCollisionShape
	NodeRibbonEmitter
	NodeEmitterUsesMDLOrUnshaded
	NodeEmitterUsesTGAOrSortPrimitivesFarZ
	NodeLineEmitter
	NodeUnfogged
	NodeModelSpace
	NodeXYQuad
)

// NodeTypeMask covers the bits that name the kind of a node. A node with
// none of them set is a helper.
const NodeTypeMask = NodeBone | NodeLight | NodeEventObject | NodeAttachment |
	NodeParticleEmitter | NodeCollisionShape | NodeRibbonEmitter

// Helper returns whether no type bit is set.
func (f NodeFlags) Helper() bool { return f&NodeTypeMask == 0 }

// Has returns whether every bit of mask is set.
func (f NodeFlags) Has(mask NodeFlags) bool { return f&mask == mask }

func (f NodeFlags) DontInheritTranslation() bool { return f.Has(NodeDontInheritTranslation) }
func (f NodeFlags) DontInheritRotation() bool    { return f.Has(NodeDontInheritRotation) }
func (f NodeFlags) DontInheritScaling() bool     { return f.Has(NodeDontInheritScaling) }
func (f NodeFlags) Billboarded() bool            { return f.Has(NodeBillboarded) }
func (f NodeFlags) BillboardedX() bool           { return f.Has(NodeBillboardedX) }
func (f NodeFlags) BillboardedY() bool           { return f.Has(NodeBillboardedY) }
func (f NodeFlags) BillboardedZ() bool           { return f.Has(NodeBillboardedZ) }
func (f NodeFlags) CameraAnchored() bool         { return f.Has(NodeCameraAnchored) }
func (f NodeFlags) Bone() bool                   { return f.Has(NodeBone) }
func (f NodeFlags) Light() bool                  { return f.Has(NodeLight) }
func (f NodeFlags) EventObject() bool            { return f.Has(NodeEventObject) }
func (f NodeFlags) Attachment() bool             { return f.Has(NodeAttachment) }
func (f NodeFlags) ParticleEmitter() bool        { return f.Has(NodeParticleEmitter) }
func (f NodeFlags) CollisionShape() bool         { return f.Has(NodeCollisionShape) }
func (f NodeFlags) RibbonEmitter() bool          { return f.Has(NodeRibbonEmitter) }
func (f NodeFlags) EmitterUsesMDLOrUnshaded() bool {
	return f.Has(NodeEmitterUsesMDLOrUnshaded)
}
func (f NodeFlags) EmitterUsesTGAOrSortPrimitivesFarZ() bool {
	return f.Has(NodeEmitterUsesTGAOrSortPrimitivesFarZ)
}
func (f NodeFlags) LineEmitter() bool { return f.Has(NodeLineEmitter) }
func (f NodeFlags) Unfogged() bool    { return f.Has(NodeUnfogged) }
func (f NodeFlags) ModelSpace() bool  { return f.Has(NodeModelSpace) }
func (f NodeFlags) XYQuad() bool      { return f.Has(NodeXYQuad) }

// Hierarchy is the forest formed by the ParentID of each node in a model.
type Hierarchy struct {
	// Parents maps each node to its parent, or NoNode for a root.
	Parents []NodeIndex
	// Children maps each node to its children, in table order.
	Children [][]NodeIndex
	// Roots lists every node without a parent, in table order.
	Roots []NodeIndex
}

// Hierarchy resolves the ParentID of every node. A ParentID that does not
// name the ObjectID of another node makes the node a root. Cycles are not
// detected.
func (m *Model) Hierarchy() Hierarchy {
	byObject := make(map[int32]NodeIndex, len(m.Nodes))
	for i := range m.Nodes {
		id := m.Nodes[i].ObjectID
		if _, ok := byObject[id]; !ok {
			byObject[id] = NodeIndex(i)
		}
	}

	h := Hierarchy{
		Parents:  make([]NodeIndex, len(m.Nodes)),
		Children: make([][]NodeIndex, len(m.Nodes)),
	}
	for i := range m.Nodes {
		node := &m.Nodes[i]
		h.Parents[i] = NoNode
		if node.IsRoot() {
			h.Roots = append(h.Roots, NodeIndex(i))
			continue
		}
		parent, ok := byObject[node.ParentID]
		if !ok || parent == NodeIndex(i) {
			h.Roots = append(h.Roots, NodeIndex(i))
			continue
		}
		h.Parents[i] = parent
		h.Children[parent] = append(h.Children[parent], NodeIndex(i))
	}
	return h
}

// Ancestors returns the chain of parents of a node, nearest first. The walk
// stops if a node repeats.
func (h Hierarchy) Ancestors(i NodeIndex) []NodeIndex {
	var chain []NodeIndex
	seen := map[NodeIndex]bool{i: true}
	for {
		if i < 0 || int(i) >= len(h.Parents) {
			return chain
		}
		i = h.Parents[i]
		if i == NoNode || seen[i] {
			return chain
		}
		seen[i] = true
		chain = append(chain, i)
	}
}
