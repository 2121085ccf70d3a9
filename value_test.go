package mdlx_test

import (
	"testing"

	"github.com/mdlxkit/mdlx"
)

func TestProperty_String(t *testing.T) {
	if mdlx.PropertyTranslation.String() != "translation" {
		t.Error("unexpected result from String")
	}
	if mdlx.Property(0).String() != "Invalid" {
		t.Error("unexpected result from String")
	}
	if mdlx.Property(255).String() != "Invalid" {
		t.Error("unexpected result from String")
	}
}

func TestPropertyFromString(t *testing.T) {
	for p := mdlx.PropertyInvalid + 1; p.Valid(); p++ {
		if q := mdlx.PropertyFromString(p.String()); q != p {
			t.Errorf("%s: got %s from PropertyFromString", p, q)
		}
	}
	if mdlx.PropertyFromString("UnknownProperty") != mdlx.PropertyInvalid {
		t.Error("unexpected result from PropertyFromString")
	}
}

func TestProperty_Default(t *testing.T) {
	tests := []struct {
		p    mdlx.Property
		want mdlx.Value
	}{
		{mdlx.PropertyTranslation, mdlx.Vector3(0, 0, 0)},
		{mdlx.PropertyRotation, mdlx.Quaternion(0, 0, 0, 1)},
		{mdlx.PropertyScaling, mdlx.Vector3(1, 1, 1)},
		{mdlx.PropertyAlpha, mdlx.Scalar(1)},
		{mdlx.PropertyVisibility, mdlx.Scalar(1)},
		{mdlx.PropertyTextureID, mdlx.Scalar(0)},
		{mdlx.PropertyInvalid, mdlx.Value{}},
	}
	for _, tt := range tests {
		if got := tt.p.Default(); got != tt.want {
			t.Errorf("%s: expected default %v, got %v", tt.p, tt.want, got)
		}
	}
}

func TestProperty_Kind(t *testing.T) {
	for p := mdlx.PropertyInvalid + 1; p.Valid(); p++ {
		if p.Kind().Arity() == 0 {
			t.Errorf("%s: invalid kind", p)
		}
	}
	if mdlx.PropertyRotation.Kind() != mdlx.KindQuaternion {
		t.Error("expected rotation to be a quaternion")
	}
	if mdlx.PropertyInvalid.Kind() != mdlx.KindInvalid {
		t.Error("expected invalid kind")
	}
	if !mdlx.PropertyTextureSlot.Integer() || mdlx.PropertyAlpha.Integer() {
		t.Error("unexpected result from Integer")
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		k     mdlx.Kind
		name  string
		arity int
	}{
		{mdlx.KindScalar, "scalar", 1},
		{mdlx.KindVector3, "vector3", 3},
		{mdlx.KindQuaternion, "quaternion", 4},
		{mdlx.KindInvalid, "Invalid", 0},
	}
	for _, tt := range tests {
		if tt.k.String() != tt.name {
			t.Errorf("expected name %q, got %q", tt.name, tt.k.String())
		}
		if tt.k.Arity() != tt.arity {
			t.Errorf("%s: expected arity %d, got %d", tt.name, tt.arity, tt.k.Arity())
		}
	}
}

func TestInterpolation(t *testing.T) {
	if mdlx.InterpolationLinear.HasTangents() || !mdlx.InterpolationHermite.HasTangents() {
		t.Error("unexpected result from HasTangents")
	}
	if s := mdlx.InterpolationBezier.String(); s != "bezier" {
		t.Errorf("unexpected result from String: %s", s)
	}
	if s := mdlx.Interpolation(7).String(); s != "Interpolation(7)" {
		t.Errorf("unexpected result from String: %s", s)
	}
}

func TestValue_Format(t *testing.T) {
	v := mdlx.Quaternion(1, 0.5, -2, 3)
	tests := []struct {
		k    mdlx.Kind
		want string
	}{
		{mdlx.KindScalar, "1"},
		{mdlx.KindVector3, "(1, 0.5, -2)"},
		{mdlx.KindQuaternion, "(1, 0.5, -2, 3)"},
		{mdlx.KindInvalid, "(1, 0.5, -2, 3)"},
	}
	for _, tt := range tests {
		if got := v.Format(tt.k); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.k, tt.want, got)
		}
	}
}

func TestTrackSet(t *testing.T) {
	set := mdlx.NewTrackSet(mdlx.PropertyScaling, mdlx.InterpolationLinear, -1)
	if set.Kind != mdlx.KindVector3 || set.Default != mdlx.Vector3(1, 1, 1) {
		t.Errorf("unexpected track set %+v", set)
	}
	set.Tracks = []mdlx.Track{{Frame: 0}, {Frame: 10}, {Frame: 10}}
	if !set.Sorted() {
		t.Error("expected sorted")
	}
	set.Tracks = append(set.Tracks, mdlx.Track{Frame: 5})
	if set.Sorted() {
		t.Error("expected unsorted")
	}

	var sets mdlx.TrackSets
	if sets.Get(mdlx.PropertyScaling) != nil {
		t.Error("expected nil from nil TrackSets")
	}
	sets = mdlx.TrackSets{mdlx.PropertyScaling: set}
	if sets.Get(mdlx.PropertyScaling) != set {
		t.Error("unexpected result from Get")
	}
}
