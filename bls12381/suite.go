package bls12381

import (
	"errors"
	"io"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/f3rmion/tbls/group"
)

// MessageDST is the hash-to-curve domain separation tag for messages,
// the minimal-signature-size ciphersuite of the BLS signature draft.
var MessageDST = []byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_")

// G1 implements [group.Group] for BLS12-381 G1.
type G1 struct{}

// NewScalar returns a new scalar initialized to zero.
func (g *G1) NewScalar() group.Scalar { return newScalar() }

// NewPoint returns the identity of G1.
func (g *G1) NewPoint() group.Point { return &G1Point{} }

// Generator returns the standard G1 base point.
func (g *G1) Generator() group.Point {
	_, _, g1, _ := bls.Generators()
	return &G1Point{inner: g1}
}

// RandomScalar returns a uniformly random scalar read from r.
func (g *G1) RandomScalar(r io.Reader) (group.Scalar, error) { return randomScalar(r) }

// HashToScalar hashes the provided data to a scalar.
func (g *G1) HashToScalar(data ...[]byte) (group.Scalar, error) { return hashToScalar(data...) }

// Order returns the prime subgroup order as a big-endian byte slice.
func (g *G1) Order() []byte { return order() }

// PointLen returns the compressed G1 encoding length.
func (g *G1) PointLen() int { return bls.SizeOfG1AffineCompressed }

// G2 implements [group.Group] for BLS12-381 G2.
type G2 struct{}

// NewScalar returns a new scalar initialized to zero.
func (g *G2) NewScalar() group.Scalar { return newScalar() }

// NewPoint returns the identity of G2.
func (g *G2) NewPoint() group.Point { return &G2Point{} }

// Generator returns the standard G2 base point.
func (g *G2) Generator() group.Point {
	_, _, _, g2 := bls.Generators()
	return &G2Point{inner: g2}
}

// RandomScalar returns a uniformly random scalar read from r.
func (g *G2) RandomScalar(r io.Reader) (group.Scalar, error) { return randomScalar(r) }

// HashToScalar hashes the provided data to a scalar.
func (g *G2) HashToScalar(data ...[]byte) (group.Scalar, error) { return hashToScalar(data...) }

// Order returns the prime subgroup order as a big-endian byte slice.
func (g *G2) Order() []byte { return order() }

// PointLen returns the compressed G2 encoding length.
func (g *G2) PointLen() int { return bls.SizeOfG2AffineCompressed }

// Suite implements [group.Pairing] for the optimal ate pairing on
// BLS12-381. Signatures and messages live in G1, keys in G2.
//
// Suite is a zero-sized type; create an instance with [New] or &Suite{}.
type Suite struct {
	g1 G1
	g2 G2
}

// New returns a BLS12-381 pairing suite.
func New() *Suite {
	return &Suite{}
}

// G1 returns the signature group.
func (s *Suite) G1() group.Group { return &s.g1 }

// G2 returns the key group.
func (s *Suite) G2() group.Group { return &s.g2 }

// ScalarLen returns the canonical scalar encoding length.
func (s *Suite) ScalarLen() int { return ScalarLen }

// HashToG1 hashes msg onto G1 with SSWU under [MessageDST].
func (s *Suite) HashToG1(msg []byte) (group.Point, error) {
	p, err := bls.HashToG1(msg, MessageDST)
	if err != nil {
		return nil, err
	}
	return &G1Point{inner: p}, nil
}

// PairingCheck reports whether prod e(g1[i], g2[i]) == 1.
func (s *Suite) PairingCheck(g1, g2 []group.Point) (bool, error) {
	if len(g1) != len(g2) {
		return false, errors.New("pairing check needs the same number of G1 and G2 points")
	}
	p := make([]bls.G1Affine, len(g1))
	q := make([]bls.G2Affine, len(g2))
	for i := range g1 {
		a, ok := g1[i].(*G1Point)
		if !ok {
			return false, errors.New("pairing check: left operand is not a G1 point")
		}
		b, ok := g2[i].(*G2Point)
		if !ok {
			return false, errors.New("pairing check: right operand is not a G2 point")
		}
		p[i] = a.inner
		q[i] = b.inner
	}
	return bls.PairingCheck(p, q)
}
