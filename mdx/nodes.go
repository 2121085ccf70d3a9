package mdx

import (
	"github.com/mdlxkit/mdlx"
)

var tagEventTracks = MakeTag("KEVT")

// decodeNode decodes a node into the node table of the model, returning its
// index and its inclusive size.
func (d *decodeState) decodeNode(r *reader) (index mdlx.NodeIndex, inclusive uint32, err error) {
	start := r.Offset()
	var node mdlx.Node
	var flags uint32
	if r.Number(&inclusive) ||
		r.String(80, &node.Name) ||
		r.Number(&node.ObjectID) ||
		r.Number(&node.ParentID) ||
		r.Number(&flags) {
		return mdlx.NoNode, 0, r.Err()
	}
	node.Flags = mdlx.NodeFlags(flags)
	if node.Tracks, err = d.decodeTracks(r, ownerNode, start+int64(inclusive)); err != nil {
		return mdlx.NoNode, 0, err
	}
	if err = d.fit(r, start, inclusive); err != nil {
		return mdlx.NoNode, 0, err
	}
	d.model.Nodes = append(d.model.Nodes, node)
	return mdlx.NodeIndex(len(d.model.Nodes) - 1), inclusive, nil
}

func decodeBones(d *decodeState, r *reader) error {
	d.model.Bones = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		node, inclusive, err := d.decodeNode(r)
		if err != nil {
			return 0, err
		}
		b := mdlx.Bone{Node: node}
		if r.Number(&b.GeosetID) || r.Number(&b.GeosetAnimationID) {
			return 0, r.Err()
		}
		d.model.Bones = append(d.model.Bones, b)
		return int64(inclusive) + 8, nil
	})
}

func decodeHelpers(d *decodeState, r *reader) error {
	d.model.Helpers = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		node, inclusive, err := d.decodeNode(r)
		if err != nil {
			return 0, err
		}
		d.model.Helpers = append(d.model.Helpers, mdlx.Helper{Node: node})
		return int64(inclusive), nil
	})
}

// decodeEventObjects decodes event objects. The frame list of an event
// object is optional; when its tag is absent, the record is only a node.
func decodeEventObjects(d *decodeState, r *reader) error {
	d.model.EventObjects = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		node, inclusive, err := d.decodeNode(r)
		if err != nil {
			return 0, err
		}
		e := mdlx.EventObject{Node: node, GlobalSequenceID: -1}
		size := int64(inclusive)
		if p, ok := r.Peek(4); ok && string(p) == string(tagEventTracks[:]) {
			var count uint32
			if r.Skip(4) ||
				r.Number(&count) ||
				r.Number(&e.GlobalSequenceID) ||
				r.Uint32s(count, &e.Frames) {
				return 0, r.Err()
			}
			size += 12 + 4*int64(count)
		}
		d.model.EventObjects = append(d.model.EventObjects, e)
		return size, nil
	})
}

// decodeCollisionShapes decodes collision shapes. The type of a shape
// determines which of the vertex pair, single vertex, and radius follow it.
func decodeCollisionShapes(d *decodeState, r *reader) error {
	d.model.CollisionShapes = nil
	return d.sizedRecords(r, func(i int) (int64, error) {
		node, inclusive, err := d.decodeNode(r)
		if err != nil {
			return 0, err
		}
		s := mdlx.CollisionShape{Node: node}
		if r.Number(&s.Type) {
			return 0, r.Err()
		}
		size := int64(inclusive) + 4
		switch {
		case s.Type.HasVertexPair():
			if r.Vectors3(2, &s.Vertices) {
				return 0, r.Err()
			}
			size += 24
		case s.Type == mdlx.CollisionSphere:
			if r.Vectors3(1, &s.Vertices) {
				return 0, r.Err()
			}
			size += 12
		}
		if s.Type.HasRadius() {
			if r.Number(&s.Radius) {
				return 0, r.Err()
			}
			size += 4
		}
		d.model.CollisionShapes = append(d.model.CollisionShapes, s)
		return size, nil
	})
}
