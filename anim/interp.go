package anim

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mdlxkit/mdlx"
)

// kernel interpolates from a to b at t in [0, 1]. outTan is the out tangent
// of a, and inTan is the in tangent of b.
type kernel func(a, outTan, inTan, b *mdlx.Value, t float32) mdlx.Value

// selectKernel returns the kernel for values of a kind under an
// interpolation. Unknown interpolations step.
func selectKernel(kind mdlx.Kind, interp mdlx.Interpolation) kernel {
	switch interp {
	case mdlx.InterpolationLinear:
		if kind == mdlx.KindQuaternion {
			return slerpKernel
		}
		return lerpKernel(kind.Arity())
	case mdlx.InterpolationHermite:
		if kind == mdlx.KindQuaternion {
			return squadKernel
		}
		return cubicKernel(kind.Arity(), hermiteFactors)
	case mdlx.InterpolationBezier:
		if kind == mdlx.KindQuaternion {
			return squadKernel
		}
		return cubicKernel(kind.Arity(), bezierFactors)
	}
	return stepKernel
}

func stepKernel(a, _, _, _ *mdlx.Value, _ float32) mdlx.Value {
	return *a
}

func lerpKernel(n int) kernel {
	return func(a, _, _, b *mdlx.Value, t float32) (v mdlx.Value) {
		for i := 0; i < n; i++ {
			v[i] = a[i] + (b[i]-a[i])*t
		}
		return v
	}
}

// factors returns the weights of a, outTan, inTan and b.
type factors func(t float32) (f1, f2, f3, f4 float32)

func hermiteFactors(t float32) (f1, f2, f3, f4 float32) {
	t2 := t * t
	f1 = t2*(2*t-3) + 1
	f2 = t2*(t-2) + t
	f3 = t2 * (t - 1)
	f4 = t2 * (3 - 2*t)
	return
}

func bezierFactors(t float32) (f1, f2, f3, f4 float32) {
	it := 1 - t
	f1 = it * it * it
	f2 = 3 * t * it * it
	f3 = 3 * t * t * it
	f4 = t * t * t
	return
}

func cubicKernel(n int, weights factors) kernel {
	return func(a, outTan, inTan, b *mdlx.Value, t float32) (v mdlx.Value) {
		f1, f2, f3, f4 := weights(t)
		for i := 0; i < n; i++ {
			v[i] = a[i]*f1 + outTan[i]*f2 + inTan[i]*f3 + b[i]*f4
		}
		return v
	}
}

func toQuat(v *mdlx.Value) mgl32.Quat {
	return mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}
}

func fromQuat(q mgl32.Quat) mdlx.Value {
	return mdlx.Quaternion(q.V[0], q.V[1], q.V[2], q.W)
}

// slerp interpolates along the shorter arc between two rotations.
func slerp(a, b mgl32.Quat, t float32) mgl32.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl32.QuatSlerp(a, b, t)
}

func slerpKernel(a, _, _, b *mdlx.Value, t float32) mdlx.Value {
	return fromQuat(slerp(toQuat(a), toQuat(b), t))
}

// squadKernel is the spherical cubic used for quaternions with tangents.
func squadKernel(a, outTan, inTan, b *mdlx.Value, t float32) mdlx.Value {
	q := slerp(toQuat(a), toQuat(b), t)
	c := slerp(toQuat(outTan), toQuat(inTan), t)
	return fromQuat(slerp(q, c, 2*t*(1-t)).Normalize())
}
