package mdlx_test

import (
	"reflect"
	"testing"

	"github.com/mdlxkit/mdlx"
)

func hierarchyModel() *mdlx.Model {
	return &mdlx.Model{
		Nodes: []mdlx.Node{
			{Name: "Root", ObjectID: 0, ParentID: -1},
			{Name: "Arm", ObjectID: 1, ParentID: 0},
			{Name: "Hand", ObjectID: 2, ParentID: 1},
			{Name: "Self", ObjectID: 3, ParentID: 3},
			{Name: "Orphan", ObjectID: 4, ParentID: 99},
			{Name: "Leg", ObjectID: 5, ParentID: 0},
		},
		PivotPoints: [][3]float32{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
	}
}

func TestHierarchy(t *testing.T) {
	h := hierarchyModel().Hierarchy()
	if want := []mdlx.NodeIndex{0, 3, 4}; !reflect.DeepEqual(h.Roots, want) {
		t.Errorf("expected roots %v, got %v", want, h.Roots)
	}
	if want := []mdlx.NodeIndex{-1, 0, 1, -1, -1, 0}; !reflect.DeepEqual(h.Parents, want) {
		t.Errorf("expected parents %v, got %v", want, h.Parents)
	}
	if want := []mdlx.NodeIndex{1, 5}; !reflect.DeepEqual(h.Children[0], want) {
		t.Errorf("expected children %v, got %v", want, h.Children[0])
	}
	if want := []mdlx.NodeIndex{1, 0}; !reflect.DeepEqual(h.Ancestors(2), want) {
		t.Errorf("expected ancestors %v, got %v", want, h.Ancestors(2))
	}
	if len(h.Ancestors(0)) != 0 {
		t.Error("expected root to have no ancestors")
	}
}

func TestAncestorsCycle(t *testing.T) {
	m := &mdlx.Model{Nodes: []mdlx.Node{
		{ObjectID: 0, ParentID: 1},
		{ObjectID: 1, ParentID: 2},
		{ObjectID: 2, ParentID: 0},
	}}
	h := m.Hierarchy()
	if len(h.Roots) != 0 {
		t.Errorf("expected no roots, got %v", h.Roots)
	}
	if want := []mdlx.NodeIndex{1, 2}; !reflect.DeepEqual(h.Ancestors(0), want) {
		t.Errorf("expected ancestors %v, got %v", want, h.Ancestors(0))
	}
}

func TestModelLookup(t *testing.T) {
	m := hierarchyModel()
	if i, ok := m.NodeByObjectID(2); !ok || i != 2 {
		t.Errorf("unexpected result from NodeByObjectID: %d, %t", i, ok)
	}
	if _, ok := m.NodeByObjectID(42); ok {
		t.Error("expected missing object")
	}
	if m.Node(-1) != nil || m.Node(6) != nil {
		t.Error("expected nil node out of range")
	}
	if m.Node(1).Name != "Arm" {
		t.Error("unexpected node")
	}
	if p := m.Pivot(1); p != [3]float32{1, 0, 0} {
		t.Errorf("unexpected pivot %v", p)
	}
	if p := m.Pivot(4); p != [3]float32{} {
		t.Errorf("expected origin for missing pivot, got %v", p)
	}
	if m.Sequence(0) != nil {
		t.Error("expected nil sequence")
	}
}

func TestNodeFlags(t *testing.T) {
	tests := []struct {
		flags mdlx.NodeFlags
		check func(mdlx.NodeFlags) bool
	}{
		{0x1, mdlx.NodeFlags.DontInheritTranslation},
		{0x8, mdlx.NodeFlags.Billboarded},
		{0x100, mdlx.NodeFlags.Bone},
		{0x200, mdlx.NodeFlags.Light},
		{0x400, mdlx.NodeFlags.EventObject},
		{0x800, mdlx.NodeFlags.Attachment},
		{0x1000, mdlx.NodeFlags.ParticleEmitter},
		{0x2000, mdlx.NodeFlags.CollisionShape},
		{0x4000, mdlx.NodeFlags.RibbonEmitter},
		{0x100000, mdlx.NodeFlags.XYQuad},
	}
	for _, tt := range tests {
		if !tt.check(tt.flags) {
			t.Errorf("expected bit %#x to be set", uint32(tt.flags))
		}
		if tt.check(0) {
			t.Errorf("expected bit %#x to be unset", uint32(tt.flags))
		}
	}
	if !mdlx.NodeFlags(0x1).Helper() || mdlx.NodeFlags(0x100).Helper() {
		t.Error("unexpected result from Helper")
	}
}

func TestModelTrackSets(t *testing.T) {
	alpha := mdlx.NewTrackSet(mdlx.PropertyAlpha, mdlx.InterpolationNone, -1)
	translation := mdlx.NewTrackSet(mdlx.PropertyTranslation, mdlx.InterpolationLinear, -1)
	rotation := mdlx.NewTrackSet(mdlx.PropertyRotation, mdlx.InterpolationLinear, -1)
	color := mdlx.NewTrackSet(mdlx.PropertyColor, mdlx.InterpolationLinear, -1)
	m := &mdlx.Model{
		Nodes: []mdlx.Node{{Tracks: mdlx.TrackSets{
			mdlx.PropertyRotation:    rotation,
			mdlx.PropertyTranslation: translation,
		}}},
		Materials: []mdlx.Material{{Layers: []mdlx.Layer{{Tracks: mdlx.TrackSets{mdlx.PropertyAlpha: alpha}}}}},
		Lights:    []mdlx.Light{{Tracks: mdlx.TrackSets{mdlx.PropertyColor: color}}},
	}

	var got []*mdlx.TrackSet
	var owners []string
	m.TrackSets(func(owner string, index int, set *mdlx.TrackSet) bool {
		got = append(got, set)
		owners = append(owners, owner)
		return true
	})
	if want := []*mdlx.TrackSet{translation, rotation, alpha, color}; !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected sets %v", got)
	}
	if want := []string{"node", "node", "material", "light"}; !reflect.DeepEqual(owners, want) {
		t.Errorf("expected owners %v, got %v", want, owners)
	}

	var n int
	m.TrackSets(func(owner string, index int, set *mdlx.TrackSet) bool {
		n++
		return false
	})
	if n != 1 {
		t.Errorf("expected iteration to stop after 1 set, got %d", n)
	}
}
