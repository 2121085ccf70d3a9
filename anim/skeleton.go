package anim

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mdlxkit/mdlx"
)

// Skeleton computes the world transform of every node of a model.
//
// The local transform of a node scales, rotates and then translates around
// the pivot point of the node. The world transform applies the world
// transform of the parent afterwards. Billboarding and the inheritance
// flags of a node are not applied.
//
// A Skeleton holds mutable matrices and must not be shared between
// goroutines.
type Skeleton struct {
	model *mdlx.Model
	nodes []Set

	parents []mdlx.NodeIndex
	// order lists every node after its parent.
	order []mdlx.NodeIndex

	// World holds the world transform of each node, as of the last call to
	// Update.
	World []mgl32.Mat4
}

// NewSkeleton binds the node tracks of m.
func NewSkeleton(m *mdlx.Model) (*Skeleton, error) {
	s := &Skeleton{
		model: m,
		nodes: make([]Set, len(m.Nodes)),
		World: make([]mgl32.Mat4, len(m.Nodes)),
	}
	for i := range m.Nodes {
		var err error
		if s.nodes[i], err = BindAll(m.Nodes[i].Tracks, m); err != nil {
			return nil, OwnerError{Owner: "node", Index: i, Cause: err}
		}
		s.World[i] = mgl32.Ident4()
	}

	h := m.Hierarchy()
	s.parents = h.Parents
	visited := make([]bool, len(m.Nodes))
	queue := append([]mdlx.NodeIndex(nil), h.Roots...)
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		if visited[i] {
			continue
		}
		visited[i] = true
		s.order = append(s.order, i)
		queue = append(queue, h.Children[i]...)
	}
	// Nodes within a parent cycle are not reachable from a root, and are
	// treated as roots.
	for i, ok := range visited {
		if !ok {
			s.parents[i] = mdlx.NoNode
			s.order = append(s.order, mdlx.NodeIndex(i))
		}
	}
	return s, nil
}

// Local returns the local transform of a node at the given time.
func (s *Skeleton) Local(i mdlx.NodeIndex, sequence int, frame int32, counter uint64) mgl32.Mat4 {
	set := s.nodes[i]
	t := set.ValueAt(mdlx.PropertyTranslation, sequence, frame, counter)
	r := set.ValueAt(mdlx.PropertyRotation, sequence, frame, counter)
	sc := set.ValueAt(mdlx.PropertyScaling, sequence, frame, counter)
	p := s.model.Pivot(i)

	m := mgl32.Translate3D(p[0]+t[0], p[1]+t[1], p[2]+t[2])
	m = m.Mul4(toQuat(&r).Normalize().Mat4())
	m = m.Mul4(mgl32.Scale3D(sc[0], sc[1], sc[2]))
	return m.Mul4(mgl32.Translate3D(-p[0], -p[1], -p[2]))
}

// Update recomputes the world transform of every node.
func (s *Skeleton) Update(sequence int, frame int32, counter uint64) {
	for _, i := range s.order {
		local := s.Local(i, sequence, frame, counter)
		if parent := s.parents[i]; parent != mdlx.NoNode {
			s.World[i] = s.World[parent].Mul4(local)
		} else {
			s.World[i] = local
		}
	}
}

// Transform returns a point transformed by the world transform of a node.
func (s *Skeleton) Transform(i mdlx.NodeIndex, p [3]float32) [3]float32 {
	v := s.World[i].Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
	return [3]float32{v[0], v[1], v[2]}
}
