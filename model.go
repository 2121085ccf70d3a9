// The mdlx package holds the in-memory form of an MDX model.
//
// A Model is produced by a decoder, such as the one in the "mdx"
// sub-package, and is read-only afterwards. It owns a table of Nodes, the
// animation Sequences and Global Sequences, and every record of the model.
// Records that carry a transform refer to their Node by its NodeIndex in
// Model.Nodes.
//
// Animatable properties of a record are held as TrackSets. The "anim"
// sub-package binds a TrackSet to the sequences of its Model so that the
// value of the property can be queried at any time.
package mdlx

// Model is the decoded content of an MDX file.
type Model struct {
	Version uint32
	Info    ModelInfo

	Sequences       []Sequence
	GlobalSequences []uint32

	Textures          []Texture
	Materials         []Material
	TextureAnimations []TextureAnimation
	Geosets           []Geoset
	GeosetAnimations  []GeosetAnimation

	// Nodes is the node table. Records embedding a node append to it in file
	// order.
	Nodes []Node

	Bones             []Bone
	Lights            []Light
	Helpers           []Helper
	Attachments       []Attachment
	PivotPoints       [][3]float32
	ParticleEmitters  []ParticleEmitter
	ParticleEmitters2 []ParticleEmitter2
	RibbonEmitters    []RibbonEmitter
	EventObjects      []EventObject
	Cameras           []Camera
	CollisionShapes   []CollisionShape
}

// Node returns the node at index i, or nil if i is out of range.
func (m *Model) Node(i NodeIndex) *Node {
	if i < 0 || int(i) >= len(m.Nodes) {
		return nil
	}
	return &m.Nodes[i]
}

// NodeByObjectID returns the index of the first node with the given ObjectID.
func (m *Model) NodeByObjectID(id int32) (NodeIndex, bool) {
	for i := range m.Nodes {
		if m.Nodes[i].ObjectID == id {
			return NodeIndex(i), true
		}
	}
	return NoNode, false
}

// Pivot returns the pivot point of a node, which is the pivot point indexed
// by the node's ObjectID. Returns the origin if there is no such point.
func (m *Model) Pivot(i NodeIndex) [3]float32 {
	node := m.Node(i)
	if node == nil || node.ObjectID < 0 || int(node.ObjectID) >= len(m.PivotPoints) {
		return [3]float32{}
	}
	return m.PivotPoints[node.ObjectID]
}

// Sequence returns the sequence at index i, or nil if i is out of range.
func (m *Model) Sequence(i int) *Sequence {
	if i < 0 || i >= len(m.Sequences) {
		return nil
	}
	return &m.Sequences[i]
}

// TrackSets calls fn with every track set in the model, along with a short
// description of its owner. Iteration stops when fn returns false.
func (m *Model) TrackSets(fn func(owner string, index int, set *TrackSet) bool) {
	each := func(owner string, index int, sets TrackSets) bool {
		for p := PropertyInvalid + 1; p < propertyCount; p++ {
			if set := sets[p]; set != nil {
				if !fn(owner, index, set) {
					return false
				}
			}
		}
		return true
	}
	for i := range m.Nodes {
		if !each("node", i, m.Nodes[i].Tracks) {
			return
		}
	}
	for i := range m.Materials {
		for _, layer := range m.Materials[i].Layers {
			if !each("material", i, layer.Tracks) {
				return
			}
		}
	}
	for i := range m.TextureAnimations {
		if !each("textureAnimation", i, m.TextureAnimations[i].Tracks) {
			return
		}
	}
	for i := range m.GeosetAnimations {
		if !each("geosetAnimation", i, m.GeosetAnimations[i].Tracks) {
			return
		}
	}
	for i := range m.Lights {
		if !each("light", i, m.Lights[i].Tracks) {
			return
		}
	}
	for i := range m.Attachments {
		if !each("attachment", i, m.Attachments[i].Tracks) {
			return
		}
	}
	for i := range m.ParticleEmitters {
		if !each("particleEmitter", i, m.ParticleEmitters[i].Tracks) {
			return
		}
	}
	for i := range m.ParticleEmitters2 {
		if !each("particleEmitter2", i, m.ParticleEmitters2[i].Tracks) {
			return
		}
	}
	for i := range m.RibbonEmitters {
		if !each("ribbonEmitter", i, m.RibbonEmitters[i].Tracks) {
			return
		}
	}
	for i := range m.Cameras {
		if !each("camera", i, m.Cameras[i].Tracks) {
			return
		}
	}
}
