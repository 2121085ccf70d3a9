package mdlx

import (
	"strconv"
	"strings"
)

// Kind indicates the arity of the values held by a track set.
type Kind byte

const (
	KindInvalid    Kind = iota
	KindScalar          // One component.
	KindVector3         // Three components.
	KindQuaternion      // Four components, ordered x, y, z, w.
)

var kindStrings = map[Kind]string{
	KindScalar:     "scalar",
	KindVector3:    "vector3",
	KindQuaternion: "quaternion",
}

// String returns a string representation of the kind. If the kind is not
// valid, then the returned value will be "Invalid".
func (k Kind) String() string {
	s, ok := kindStrings[k]
	if !ok {
		return "Invalid"
	}
	return s
}

// Arity returns the number of components in a value of the kind, or 0 if the
// kind is invalid.
func (k Kind) Arity() int {
	switch k {
	case KindScalar:
		return 1
	case KindVector3:
		return 3
	case KindQuaternion:
		return 4
	}
	return 0
}

// Value holds the components of a keyframe value. Only the first Arity
// components of the owning Kind are meaningful; the rest are zero.
type Value [4]float32

// Scalar returns a scalar value.
func Scalar(v float32) Value {
	return Value{v}
}

// Vector3 returns a three-component value.
func Vector3(x, y, z float32) Value {
	return Value{x, y, z}
}

// Quaternion returns a quaternion value.
func Quaternion(x, y, z, w float32) Value {
	return Value{x, y, z, w}
}

// Scalar returns the first component.
func (v Value) Scalar() float32 {
	return v[0]
}

// Vec3 returns the first three components.
func (v Value) Vec3() [3]float32 {
	return [3]float32{v[0], v[1], v[2]}
}

// Format returns a string representation of the value with the given kind.
func (v Value) Format(k Kind) string {
	n := k.Arity()
	if n == 0 {
		n = len(v)
	}
	var s strings.Builder
	if n > 1 {
		s.WriteByte('(')
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(strconv.FormatFloat(float64(v[i]), 'g', -1, 32))
	}
	if n > 1 {
		s.WriteByte(')')
	}
	return s.String()
}

// Interpolation is the curve used between two keyframes of a track set.
type Interpolation uint32

const (
	InterpolationNone    Interpolation = iota // Step to the earlier key.
	InterpolationLinear                       // Straight interpolation.
	InterpolationHermite                      // Cubic hermite with tangents.
	InterpolationBezier                       // Cubic bezier with tangents.
)

// HasTangents returns whether tracks of the interpolation carry in and out
// tangents.
func (i Interpolation) HasTangents() bool {
	return i > InterpolationLinear
}

func (i Interpolation) String() string {
	switch i {
	case InterpolationNone:
		return "none"
	case InterpolationLinear:
		return "linear"
	case InterpolationHermite:
		return "hermite"
	case InterpolationBezier:
		return "bezier"
	}
	return "Interpolation(" + strconv.FormatUint(uint64(i), 10) + ")"
}
