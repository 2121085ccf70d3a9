package anim

import (
	"errors"
	"math"
	"testing"

	"github.com/mdlxkit/mdlx"
)

func testModel() *mdlx.Model {
	return &mdlx.Model{
		Sequences: []mdlx.Sequence{
			{Name: "Stand", Interval: [2]uint32{0, 100}},
			{Name: "Walk", Interval: [2]uint32{10, 20}},
		},
		GlobalSequences: []uint32{20, 0},
	}
}

func scalarSet(interp mdlx.Interpolation, globalSequenceID int32, keys ...float32) *mdlx.TrackSet {
	set := mdlx.NewTrackSet(mdlx.PropertyAlpha, interp, globalSequenceID)
	for i := 0; i+1 < len(keys); i += 2 {
		set.Tracks = append(set.Tracks, mdlx.Track{Frame: int32(keys[i]), Value: mdlx.Scalar(keys[i+1])})
	}
	return set
}

func mustBind(t *testing.T, set *mdlx.TrackSet, m *mdlx.Model) *SD {
	t.Helper()
	sd, err := Bind(set, m)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return sd
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func nearValue(a, b mdlx.Value) bool {
	for i := range a {
		if !near(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestEmptyReturnsDefault(t *testing.T) {
	m := testModel()
	set := mdlx.NewTrackSet(mdlx.PropertyScaling, mdlx.InterpolationLinear, -1)
	sd := mustBind(t, set, m)
	for _, seq := range []int{NoSequence, 0, 1, 5} {
		for _, frame := range []int32{-10, 0, 15, 1000} {
			for _, counter := range []uint64{0, 7, 1 << 40} {
				if v := sd.ValueAt(seq, frame, counter); v != mdlx.Vector3(1, 1, 1) {
					t.Errorf("(%d, %d, %d): expected default, got %v", seq, frame, counter, v)
				}
			}
		}
	}
}

func TestNoSequenceReturnsDefault(t *testing.T) {
	sd := mustBind(t, scalarSet(mdlx.InterpolationLinear, -1, 0, 0, 10, 100), testModel())
	if v := sd.ValueAt(NoSequence, 5, 0); v != mdlx.Scalar(1) {
		t.Errorf("expected default, got %v", v)
	}
}

func TestLinear(t *testing.T) {
	sd := mustBind(t, scalarSet(mdlx.InterpolationLinear, -1, 0, 0, 10, 100), testModel())
	tests := []struct {
		frame int32
		want  float32
	}{
		{0, 0},
		{5, 50},
		{10, 100},
		{2, 20},
		// Past the last key, the last key holds.
		{50, 100},
	}
	for _, test := range tests {
		if v := sd.ValueAt(0, test.frame, 0).Scalar(); !near(v, test.want) {
			t.Errorf("frame %d: expected %g, got %g", test.frame, test.want, v)
		}
	}
}

func TestStep(t *testing.T) {
	sd := mustBind(t, scalarSet(mdlx.InterpolationNone, -1, 0, 0.3, 10, 100, 20, -7), testModel())
	for frame := int32(0); frame < 20; frame++ {
		want := float32(0.3)
		if frame >= 10 {
			want = 100
		}
		if v := sd.ValueAt(0, frame, 0).Scalar(); v != want {
			t.Errorf("frame %d: expected %g, got %g", frame, want, v)
		}
	}
}

func TestUnknownInterpolationSteps(t *testing.T) {
	sd := mustBind(t, scalarSet(mdlx.Interpolation(7), -1, 0, 1, 10, 2), testModel())
	if v := sd.ValueAt(0, 5, 0).Scalar(); v != 1 {
		t.Errorf("expected 1, got %g", v)
	}
}

func TestGlobalSequence(t *testing.T) {
	sd := mustBind(t, scalarSet(mdlx.InterpolationLinear, 0, 5, 42), testModel())
	if d, ok := sd.Global(); !ok || d != 20 {
		t.Errorf("unexpected global sequence %d, %t", d, ok)
	}
	for _, counter := range []uint64{5, 25, 45, 1e9 + 5} {
		for _, seq := range []int{NoSequence, 0, 1} {
			if v := sd.ValueAt(seq, 999, counter).Scalar(); v != 42 {
				t.Errorf("counter %d: expected 42, got %g", counter, v)
			}
		}
	}

	sd = mustBind(t, scalarSet(mdlx.InterpolationLinear, 0, 0, 0, 10, 100), testModel())
	if v := sd.ValueAt(NoSequence, 0, 25).Scalar(); !near(v, 50) {
		t.Errorf("expected 50, got %g", v)
	}
}

func TestZeroDurationGlobalSequence(t *testing.T) {
	sd := mustBind(t, scalarSet(mdlx.InterpolationLinear, 1, 0, 3, 10, 4), testModel())
	if v := sd.ValueAt(NoSequence, 0, 12345).Scalar(); v != 3 {
		t.Errorf("expected 3, got %g", v)
	}
}

func TestOutOfWindowKey(t *testing.T) {
	m := testModel()
	sd := mustBind(t, scalarSet(mdlx.InterpolationLinear, -1, 100, 9), m)
	if v := sd.ValueAt(1, 15, 0); v != mdlx.Scalar(1) {
		t.Errorf("expected default, got %v", v)
	}

	// A key before the window does not take part either; the key inside
	// the window holds.
	sd = mustBind(t, scalarSet(mdlx.InterpolationLinear, -1, 0, 0, 15, 4, 100, 9), m)
	if v := sd.ValueAt(1, 12, 0).Scalar(); v != 4 {
		t.Errorf("expected 4, got %g", v)
	}
	if v := sd.ValueAt(1, 18, 0).Scalar(); v != 4 {
		t.Errorf("expected 4, got %g", v)
	}
	// Within the first sequence both keys apply.
	if v := sd.ValueAt(0, 50, 0).Scalar(); !near(v, 4+5*35.0/85) {
		t.Errorf("unexpected value %g", v)
	}
}

func TestEqualFrames(t *testing.T) {
	// Keys sharing a frame form a zero-length segment. The left bracket is
	// the last key at or before the frame.
	sd := mustBind(t, scalarSet(mdlx.InterpolationLinear, -1, 10, 1, 10, 2), testModel())
	tests := []struct {
		frame int32
		want  float32
	}{
		{5, 1},
		{10, 2},
		{15, 2},
	}
	for _, test := range tests {
		if v := sd.ValueAt(0, test.frame, 0).Scalar(); v != test.want {
			t.Errorf("frame %d: expected %g, got %g", test.frame, test.want, v)
		}
	}
}

func TestCubic(t *testing.T) {
	m := testModel()
	for _, interp := range []mdlx.Interpolation{mdlx.InterpolationHermite, mdlx.InterpolationBezier} {
		set := mdlx.NewTrackSet(mdlx.PropertyTranslation, interp, -1)
		set.Tracks = []mdlx.Track{
			{Frame: 0, Value: mdlx.Vector3(0, 0, 0), OutTan: mdlx.Vector3(0, 0, 0)},
			{Frame: 10, Value: mdlx.Vector3(10, 20, 30), InTan: mdlx.Vector3(10, 20, 30)},
		}
		sd := mustBind(t, set, m)
		if v := sd.ValueAt(0, 0, 0); v != mdlx.Vector3(0, 0, 0) {
			t.Errorf("%s: expected start, got %v", interp, v)
		}
		if v := sd.ValueAt(0, 10, 0); v != mdlx.Vector3(10, 20, 30) {
			t.Errorf("%s: expected end, got %v", interp, v)
		}
		mid := sd.ValueAt(0, 5, 0)
		if mid[0] <= 0 || mid[0] >= 10 || mid[3] != 0 {
			t.Errorf("%s: unexpected midpoint %v", interp, mid)
		}
	}

	// With tangents equal to the keys, bezier is the straight line.
	set := mdlx.NewTrackSet(mdlx.PropertyAlpha, mdlx.InterpolationBezier, -1)
	set.Tracks = []mdlx.Track{
		{Frame: 0, Value: mdlx.Scalar(0), OutTan: mdlx.Scalar(0)},
		{Frame: 10, Value: mdlx.Scalar(1), InTan: mdlx.Scalar(1)},
	}
	sd := mustBind(t, set, m)
	if v := sd.ValueAt(0, 5, 0).Scalar(); !near(v, 0.5) {
		t.Errorf("expected 0.5, got %g", v)
	}
}

func TestQuaternion(t *testing.T) {
	m := testModel()
	s := float32(math.Sqrt2 / 2)

	set := mdlx.NewTrackSet(mdlx.PropertyRotation, mdlx.InterpolationLinear, -1)
	set.Tracks = []mdlx.Track{
		{Frame: 0, Value: mdlx.Quaternion(0, 0, 0, 1)},
		{Frame: 10, Value: mdlx.Quaternion(0, 0, 1, 0)},
	}
	sd := mustBind(t, set, m)
	if v := sd.ValueAt(0, 5, 0); !nearValue(v, mdlx.Quaternion(0, 0, s, s)) {
		t.Errorf("expected half rotation, got %v", v)
	}

	// The shorter arc is taken when the keys lie in opposite hemispheres.
	set.Tracks[1].Value = mdlx.Quaternion(0, 0, -s, -s)
	sd = mustBind(t, set, m)
	eighth := mdlx.Quaternion(0, 0, float32(math.Sin(math.Pi/8)), float32(math.Cos(math.Pi/8)))
	if v := sd.ValueAt(0, 5, 0); !nearValue(v, eighth) {
		t.Errorf("expected %v, got %v", eighth, v)
	}

	for _, interp := range []mdlx.Interpolation{mdlx.InterpolationHermite, mdlx.InterpolationBezier} {
		set := mdlx.NewTrackSet(mdlx.PropertyRotation, interp, -1)
		set.Tracks = []mdlx.Track{
			{Frame: 0, Value: mdlx.Quaternion(0, 0, 0, 1), OutTan: mdlx.Quaternion(0, 0, 0, 1)},
			{Frame: 10, Value: mdlx.Quaternion(0, 0, 1, 0), InTan: mdlx.Quaternion(0, 0, 1, 0)},
		}
		sd := mustBind(t, set, m)
		v := sd.ValueAt(0, 5, 0)
		if !nearValue(v, mdlx.Quaternion(0, 0, s, s)) {
			t.Errorf("%s: expected half rotation, got %v", interp, v)
		}
		length := math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2] + v[3]*v[3]))
		if math.Abs(length-1) > 1e-4 {
			t.Errorf("%s: expected unit quaternion, got length %g", interp, length)
		}
	}
}

func TestDanglingGlobalSequence(t *testing.T) {
	m := testModel()
	for _, id := range []int32{2, 100, -2} {
		_, err := Bind(scalarSet(mdlx.InterpolationLinear, id, 0, 1), m)
		if !errors.Is(err, ErrDanglingGlobalSequence) {
			t.Errorf("id %d: expected ErrDanglingGlobalSequence, got %v", id, err)
		}
	}

	m.Nodes = []mdlx.Node{{Name: "Bone", ParentID: -1, Tracks: mdlx.TrackSets{
		mdlx.PropertyAlpha: scalarSet(mdlx.InterpolationLinear, 5, 0, 1),
	}}}
	_, err := BindModel(m)
	var ownerErr OwnerError
	if !errors.As(err, &ownerErr) || ownerErr.Owner != "node" || ownerErr.Index != 0 {
		t.Errorf("expected node owner error, got %v", err)
	}
	if !errors.Is(err, ErrDanglingGlobalSequence) {
		t.Errorf("expected ErrDanglingGlobalSequence, got %v", err)
	}

	m.Nodes = nil
	m.Materials = []mdlx.Material{{}, {Layers: []mdlx.Layer{{}, {Tracks: mdlx.TrackSets{
		mdlx.PropertyAlpha: scalarSet(mdlx.InterpolationNone, 5, 0, 1),
	}}}}}
	_, err = BindModel(m)
	if !errors.As(err, &ownerErr) || ownerErr.Owner != "material" || ownerErr.Index != 1 {
		t.Fatalf("expected material owner error, got %v", err)
	}
	var layerErr OwnerError
	if !errors.As(ownerErr.Cause, &layerErr) || layerErr.Owner != "layer" || layerErr.Index != 1 {
		t.Errorf("expected layer owner error, got %v", ownerErr.Cause)
	}
	if !errors.Is(err, ErrDanglingGlobalSequence) {
		t.Errorf("expected ErrDanglingGlobalSequence, got %v", err)
	}
}

func TestSample(t *testing.T) {
	if v := Sample(nil, 0, 0, 0, mdlx.Scalar(3)); v != mdlx.Scalar(3) {
		t.Errorf("expected fallback, got %v", v)
	}
	sd, err := Bind(nil, testModel())
	if sd != nil || err != nil {
		t.Errorf("expected nil binding, got %v, %v", sd, err)
	}

	var set Set
	if v := set.ValueAt(mdlx.PropertyRotation, 0, 0, 0); v != mdlx.Quaternion(0, 0, 0, 1) {
		t.Errorf("expected property default, got %v", v)
	}
}

func TestBindModel(t *testing.T) {
	m := testModel()
	m.Nodes = []mdlx.Node{{Name: "Bone", ParentID: -1, Tracks: mdlx.TrackSets{
		mdlx.PropertyAlpha: scalarSet(mdlx.InterpolationLinear, -1, 0, 0, 10, 100),
	}}}
	m.Materials = []mdlx.Material{{Layers: []mdlx.Layer{{}, {Tracks: mdlx.TrackSets{
		mdlx.PropertyAlpha: scalarSet(mdlx.InterpolationNone, 0, 0, 0.5),
	}}}}}
	b, err := BindModel(m)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if v := b.Nodes[0].ValueAt(mdlx.PropertyAlpha, 0, 5, 0).Scalar(); !near(v, 50) {
		t.Errorf("expected 50, got %g", v)
	}
	if len(b.Layers) != 1 || len(b.Layers[0]) != 2 || b.Layers[0][0] != nil {
		t.Fatalf("unexpected layers %v", b.Layers)
	}
	if v := b.Layers[0][1].ValueAt(mdlx.PropertyAlpha, NoSequence, 0, 3).Scalar(); v != 0.5 {
		t.Errorf("expected 0.5, got %g", v)
	}
}
