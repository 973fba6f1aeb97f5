package bls12381

import (
	"fmt"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/f3rmion/tbls/group"
)

// G1Point represents a point of the BLS12-381 G1 subgroup.
// It implements [group.Point] by wrapping gnark-crypto's G1Affine.
// The zero value is the identity.
type G1Point struct {
	inner bls.G1Affine
}

// Add sets p to a + b and returns p.
func (p *G1Point) Add(a, b group.Point) group.Point {
	var j bls.G1Jac
	j.FromAffine(&a.(*G1Point).inner)
	j.AddMixed(&b.(*G1Point).inner)
	p.inner.FromJacobian(&j)
	return p
}

// Sub sets p to a - b and returns p.
func (p *G1Point) Sub(a, b group.Point) group.Point {
	var negB bls.G1Affine
	negB.Neg(&b.(*G1Point).inner)
	var j bls.G1Jac
	j.FromAffine(&a.(*G1Point).inner)
	j.AddMixed(&negB)
	p.inner.FromJacobian(&j)
	return p
}

// Negate sets p to -a and returns p.
func (p *G1Point) Negate(a group.Point) group.Point {
	p.inner.Neg(&a.(*G1Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *G1Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.ScalarMultiplication(&q.(*G1Point).inner, s.(*Scalar).bigInt())
	return p
}

// Set copies the value of a into p and returns p.
func (p *G1Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*G1Point).inner)
	return p
}

// Bytes returns the 48-byte compressed encoding of p.
func (p *G1Point) Bytes() []byte {
	b := p.inner.Bytes()
	return b[:]
}

// SetBytes sets p from a compressed encoding and returns p.
// Returns an error if the data is not a point of the G1 subgroup.
func (p *G1Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != bls.SizeOfG1AffineCompressed {
		return nil, fmt.Errorf("G1 encoding must be %d bytes, got %d", bls.SizeOfG1AffineCompressed, len(data))
	}
	var q bls.G1Affine
	if _, err := q.SetBytes(data); err != nil {
		return nil, err
	}
	p.inner = q
	return p, nil
}

// Equal reports whether p and b represent the same point.
func (p *G1Point) Equal(b group.Point) bool {
	return p.inner.Equal(&b.(*G1Point).inner)
}

// IsIdentity reports whether p is the point at infinity.
func (p *G1Point) IsIdentity() bool {
	return p.inner.IsInfinity()
}

// G2Point represents a point of the BLS12-381 G2 subgroup.
// It implements [group.Point] by wrapping gnark-crypto's G2Affine.
// The zero value is the identity.
type G2Point struct {
	inner bls.G2Affine
}

// Add sets p to a + b and returns p.
func (p *G2Point) Add(a, b group.Point) group.Point {
	var j bls.G2Jac
	j.FromAffine(&a.(*G2Point).inner)
	j.AddMixed(&b.(*G2Point).inner)
	p.inner.FromJacobian(&j)
	return p
}

// Sub sets p to a - b and returns p.
func (p *G2Point) Sub(a, b group.Point) group.Point {
	var negB bls.G2Affine
	negB.Neg(&b.(*G2Point).inner)
	var j bls.G2Jac
	j.FromAffine(&a.(*G2Point).inner)
	j.AddMixed(&negB)
	p.inner.FromJacobian(&j)
	return p
}

// Negate sets p to -a and returns p.
func (p *G2Point) Negate(a group.Point) group.Point {
	p.inner.Neg(&a.(*G2Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *G2Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.ScalarMultiplication(&q.(*G2Point).inner, s.(*Scalar).bigInt())
	return p
}

// Set copies the value of a into p and returns p.
func (p *G2Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*G2Point).inner)
	return p
}

// Bytes returns the 96-byte compressed encoding of p.
func (p *G2Point) Bytes() []byte {
	b := p.inner.Bytes()
	return b[:]
}

// SetBytes sets p from a compressed encoding and returns p.
// Returns an error if the data is not a point of the G2 subgroup.
func (p *G2Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != bls.SizeOfG2AffineCompressed {
		return nil, fmt.Errorf("G2 encoding must be %d bytes, got %d", bls.SizeOfG2AffineCompressed, len(data))
	}
	var q bls.G2Affine
	if _, err := q.SetBytes(data); err != nil {
		return nil, err
	}
	p.inner = q
	return p, nil
}

// Equal reports whether p and b represent the same point.
func (p *G2Point) Equal(b group.Point) bool {
	return p.inner.Equal(&b.(*G2Point).inner)
}

// IsIdentity reports whether p is the point at infinity.
func (p *G2Point) IsIdentity() bool {
	return p.inner.IsInfinity()
}
