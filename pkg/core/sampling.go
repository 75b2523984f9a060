package core

import "math"

// ToUniformDisk maps a sample in [0,1)² to a point uniformly distributed on the
// unit disk of the z=0 plane
func ToUniformDisk(sample Vec2) Vec3 {
	r := math.Sqrt(sample.X)
	phi := 2 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), 0)
}

// ToUniformSphere maps a sample to a direction uniformly distributed on the unit sphere
func ToUniformSphere(sample Vec2) Vec3 {
	z := 2*sample.X - 1
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// ToUniformHemisphere maps a sample to a direction uniformly distributed on the
// hemisphere around +Z
func ToUniformHemisphere(sample Vec2) Vec3 {
	z := sample.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// ToCosineHemisphere maps a sample to a direction on the hemisphere around +Z
// with density cos(theta)/pi, by lifting a uniform disk point onto the hemisphere
func ToCosineHemisphere(sample Vec2) Vec3 {
	onDisk := ToUniformDisk(sample)
	return NewVec3(onDisk.X, onDisk.Y, math.Sqrt(math.Max(0, 1-onDisk.LengthSquared())))
}

// OrthonormalBasis completes a unit normal into a right-handed basis (tangent, bitangent, normal)
func OrthonormalBasis(normal Vec3) (tangent, bitangent Vec3) {
	// Find a vector that is not parallel to normal
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}

	tangent = nt.Cross(normal).Normalize()
	bitangent = normal.Cross(tangent)
	return tangent, bitangent
}

// SampleCosineHemisphere generates a cosine-weighted direction in the hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	local := ToCosineHemisphere(sample)
	tangent, bitangent := OrthonormalBasis(normal)

	// Transform to world space
	return tangent.Multiply(local.X).Add(bitangent.Multiply(local.Y)).Add(normal.Multiply(local.Z))
}
