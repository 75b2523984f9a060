package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

func homogeneous(v Vec3, w float64) mgl64.Vec4 {
	return mgl64.Vec4{v.X, v.Y, v.Z, w}
}

func fromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Transform is an affine transformation stored with its inverse
type Transform struct {
	mat    mgl64.Mat4
	matInv mgl64.Mat4
}

// IdentityTransform returns the transformation that changes nothing
func IdentityTransform() Transform {
	return Transform{mat: mgl64.Ident4(), matInv: mgl64.Ident4()}
}

// Translation returns a translation by v
func Translation(v Vec3) Transform {
	return Transform{
		mat:    mgl64.Translate3D(v.X, v.Y, v.Z),
		matInv: mgl64.Translate3D(-v.X, -v.Y, -v.Z),
	}
}

// UniformScaling returns a scaling by s on every axis
func UniformScaling(s float64) Transform {
	return Scaling(s, s, s)
}

// Scaling returns a per-axis scaling. Factors must be non-zero.
func Scaling(sx, sy, sz float64) Transform {
	return Transform{
		mat:    mgl64.Scale3D(sx, sy, sz),
		matInv: mgl64.Scale3D(1/sx, 1/sy, 1/sz),
	}
}

// RotationX returns a rotation of theta radians around the x axis
func RotationX(theta float64) Transform {
	return Rotation(NewVec3(1, 0, 0), theta)
}

// RotationY returns a rotation of theta radians around the y axis
func RotationY(theta float64) Transform {
	return Rotation(NewVec3(0, 1, 0), theta)
}

// RotationZ returns a rotation of theta radians around the z axis
func RotationZ(theta float64) Transform {
	return Rotation(NewVec3(0, 0, 1), theta)
}

// Rotation returns a rotation of theta radians around an arbitrary axis.
// The inverse of a rotation is its transpose.
func Rotation(axis Vec3, theta float64) Transform {
	a := axis.Normalize()
	mat := mgl64.HomogRotate3D(theta, mgl64.Vec3{a.X, a.Y, a.Z})
	return Transform{mat: mat, matInv: mat.Transpose()}
}

// LocalToWorld returns the transformation mapping coordinates expressed in the
// orthonormal basis (i, j, k) centred at o to world coordinates
func LocalToWorld(o, i, j, k Vec3) Transform {
	mat := mgl64.Mat4FromCols(homogeneous(i, 0), homogeneous(j, 0), homogeneous(k, 0), homogeneous(o, 1))
	return Transform{mat: mat, matInv: mat.Inv()}
}

// WorldToLocal returns the inverse of LocalToWorld
func WorldToLocal(o, i, j, k Vec3) Transform {
	return LocalToWorld(o, i, j, k).Inverse()
}

// Then returns the transformation applying t first, then other
func (t Transform) Then(other Transform) Transform {
	return Transform{
		mat:    other.mat.Mul4(t.mat),
		matInv: t.matInv.Mul4(other.matInv),
	}
}

// Inverse returns the inverse transformation
func (t Transform) Inverse() Transform {
	return Transform{mat: t.matInv, matInv: t.mat}
}

// Matrix returns the forward matrix
func (t Transform) Matrix() mgl64.Mat4 {
	return t.mat
}

// ApplyPoint transforms a point (translations apply)
func (t Transform) ApplyPoint(p Vec3) Vec3 {
	return fromMgl(t.mat.Mul4x1(homogeneous(p, 1)).Vec3())
}

// ApplyInvPoint transforms a point by the inverse transformation
func (t Transform) ApplyInvPoint(p Vec3) Vec3 {
	return fromMgl(t.matInv.Mul4x1(homogeneous(p, 1)).Vec3())
}

// ApplyVector transforms a direction (translations do not apply)
func (t Transform) ApplyVector(v Vec3) Vec3 {
	return fromMgl(t.mat.Mul4x1(homogeneous(v, 0)).Vec3())
}

// ApplyInvVector transforms a direction by the inverse transformation
func (t Transform) ApplyInvVector(v Vec3) Vec3 {
	return fromMgl(t.matInv.Mul4x1(homogeneous(v, 0)).Vec3())
}

// ApplyNormal transforms a surface normal with the inverse transpose.
// The result is not normalized.
func (t Transform) ApplyNormal(n Vec3) Vec3 {
	return fromMgl(t.matInv.Mat3().Transpose().Mul3x1(mgl64.Vec3{n.X, n.Y, n.Z}))
}

// ApplyInvNormal transforms a normal by the inverse transformation
func (t Transform) ApplyInvNormal(n Vec3) Vec3 {
	return fromMgl(t.mat.Mat3().Transpose().Mul3x1(mgl64.Vec3{n.X, n.Y, n.Z}))
}

// ApplyRay transforms a ray. The direction is not renormalized, so a parameter
// t designates the same point before and after the transformation.
func (t Transform) ApplyRay(r Ray) Ray {
	return Ray{Origin: t.ApplyPoint(r.Origin), Direction: t.ApplyVector(r.Direction)}
}

// ApplyInvRay transforms a ray by the inverse transformation, preserving dates
func (t Transform) ApplyInvRay(r Ray) Ray {
	return Ray{Origin: t.ApplyInvPoint(r.Origin), Direction: t.ApplyInvVector(r.Direction)}
}

// ApplyAABB returns the world box bounding the eight transformed corners of box
func (t Transform) ApplyAABB(box AABB) AABB {
	if box.IsEmpty() {
		return box
	}
	if box.isUnbounded() {
		return FullAABB()
	}
	result := EmptyAABB()
	for _, corner := range box.Corners() {
		result = result.AddPoint(t.ApplyPoint(corner))
	}
	return result
}
