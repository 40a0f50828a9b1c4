package shutter

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Component names one independently interpolated part of an affine matrix.
type Component uint8

const (
	ComponentScale Component = iota
	ComponentShear
	ComponentRotation
	ComponentTranslation
)

func (c Component) String() string {
	switch c {
	case ComponentScale:
		return "scale"
	case ComponentShear:
		return "shear"
	case ComponentRotation:
		return "rotation"
	case ComponentTranslation:
		return "translation"
	default:
		return "unknown"
	}
}

// DecomposeOrder is the order Decompose extracts components in. Scale and
// shear must be removed from the basis vectors before rotation is read, or
// sheared and non-uniformly scaled matrices decompose into the wrong
// rotation.
var DecomposeOrder = [4]Component{ComponentScale, ComponentShear, ComponentTranslation, ComponentRotation}

// RecomposeOrder is the row-vector product Recompose builds:
//
//	scale * shear * rotation * translation
//
// It is the exact inverse of DecomposeOrder.
var RecomposeOrder = [4]Component{ComponentScale, ComponentShear, ComponentRotation, ComponentTranslation}

// Decomposition is an affine matrix split into parts that can be interpolated
// independently. Shear holds the xy, xz and yz shear factors.
type Decomposition struct {
	Scale       mgl64.Vec3
	Shear       mgl64.Vec3
	Rotation    mgl64.Quat
	Translation mgl64.Vec3
}

// Decompose splits m into scale, shear, rotation and translation.
//
// Basis vector i occupies flat elements 4i..4i+2 (a row in row-vector
// storage, a column to mathgl). Scale and shear are found by Gram-Schmidt
// orthogonalisation of the three basis vectors; a negative determinant flips
// the sign of all three scales so the remainder is a proper rotation.
func Decompose(m mgl64.Mat4) Decomposition {
	var d Decomposition
	row := [3]mgl64.Vec3{m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()}

	// Scale and shear.
	d.Scale[0] = row[0].Len()
	row[0] = safeDiv(row[0], d.Scale[0])

	d.Shear[0] = row[0].Dot(row[1])
	row[1] = row[1].Sub(row[0].Mul(d.Shear[0]))

	d.Scale[1] = row[1].Len()
	row[1] = safeDiv(row[1], d.Scale[1])
	d.Shear[0] = safeQuo(d.Shear[0], d.Scale[1])

	d.Shear[1] = row[0].Dot(row[2])
	row[2] = row[2].Sub(row[0].Mul(d.Shear[1]))
	d.Shear[2] = row[1].Dot(row[2])
	row[2] = row[2].Sub(row[1].Mul(d.Shear[2]))

	d.Scale[2] = row[2].Len()
	row[2] = safeDiv(row[2], d.Scale[2])
	d.Shear[1] = safeQuo(d.Shear[1], d.Scale[2])
	d.Shear[2] = safeQuo(d.Shear[2], d.Scale[2])

	if row[0].Dot(row[1].Cross(row[2])) < 0 {
		for i := range row {
			d.Scale[i] = -d.Scale[i]
			row[i] = row[i].Mul(-1)
		}
	}

	// Translation.
	d.Translation = m.Col(3).Vec3()

	// Rotation from the orthonormal remainder.
	rot := mgl64.Mat4{
		row[0][0], row[0][1], row[0][2], 0,
		row[1][0], row[1][1], row[1][2], 0,
		row[2][0], row[2][1], row[2][2], 0,
		0, 0, 0, 1,
	}
	d.Rotation = mgl64.Mat4ToQuat(rot).Normalize()
	return d
}

// Recompose rebuilds the matrix described by d by multiplying its component
// matrices in RecomposeOrder.
func Recompose(d Decomposition) mgl64.Mat4 {
	m := mgl64.Ident4()
	for _, c := range RecomposeOrder {
		// Left-multiplying in column-vector form appends on the right in
		// row-vector form.
		m = d.matrix(c).Mul4(m)
	}
	return m
}

func (d Decomposition) matrix(c Component) mgl64.Mat4 {
	switch c {
	case ComponentScale:
		return mgl64.Scale3D(d.Scale[0], d.Scale[1], d.Scale[2])
	case ComponentShear:
		return mgl64.Mat4{
			1, 0, 0, 0,
			d.Shear[0], 1, 0, 0,
			d.Shear[1], d.Shear[2], 1, 0,
			0, 0, 0, 1,
		}
	case ComponentRotation:
		return d.Rotation.Mat4()
	case ComponentTranslation:
		return mgl64.Translate3D(d.Translation[0], d.Translation[1], d.Translation[2])
	default:
		return mgl64.Ident4()
	}
}

// LerpDecomposed blends two decompositions. Scale, shear and translation are
// interpolated linearly; rotation is slerped along the shorter arc, negating
// b's quaternion first when the two point into opposite hemispheres.
func LerpDecomposed(a, b Decomposition, alpha float64) Decomposition {
	q := b.Rotation
	if a.Rotation.Dot(q) < 0 {
		q = q.Scale(-1)
	}
	return Decomposition{
		Scale:       lerpVec3(a.Scale, b.Scale, alpha),
		Shear:       lerpVec3(a.Shear, b.Shear, alpha),
		Rotation:    mgl64.QuatSlerp(a.Rotation, q, alpha),
		Translation: lerpVec3(a.Translation, b.Translation, alpha),
	}
}

// Interpolate returns the affine matrix alpha of the way from a to b.
// An alpha of exactly zero returns a untouched, so the common
// non-interpolated lookup carries no decomposition round-off. Alpha is not
// clamped.
func Interpolate(a, b mgl64.Mat4, alpha float64) mgl64.Mat4 {
	if alpha == 0 {
		return a
	}
	return Recompose(LerpDecomposed(Decompose(a), Decompose(b), alpha))
}

func lerpVec3(a, b mgl64.Vec3, alpha float64) mgl64.Vec3 {
	return mgl64.Vec3{
		a[0] + (b[0]-a[0])*alpha,
		a[1] + (b[1]-a[1])*alpha,
		a[2] + (b[2]-a[2])*alpha,
	}
}

// safeDiv divides v by s, leaving v unchanged for a zero-length axis.
func safeDiv(v mgl64.Vec3, s float64) mgl64.Vec3 {
	if math.Abs(s) < 1e-12 {
		return v
	}
	return v.Mul(1 / s)
}

func safeQuo(a, s float64) float64 {
	if math.Abs(s) < 1e-12 {
		return a
	}
	return a / s
}
