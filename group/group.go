package group

import (
	"io"
)

// Scalar represents an element of the scalar field associated with a
// pairing-friendly curve. Scalars are integers modulo the group order and
// are used as exponents in scalar multiplication in both source groups.
//
// All arithmetic methods use a mutable receiver pattern: they modify
// the receiver, store the result in it, and return it.
type Scalar interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Scalar) Scalar
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Scalar) Scalar
	// Mul sets the receiver to a*b and returns it.
	Mul(a, b Scalar) Scalar
	// Negate sets the receiver to -a and returns it.
	Negate(a Scalar) Scalar
	// Invert sets the receiver to a^{-1} and returns it.
	// Returns an error if a is zero.
	Invert(a Scalar) (Scalar, error)
	// Set sets the receiver to a and returns it.
	Set(a Scalar) Scalar
	// SetUint64 sets the receiver to the small integer v and returns it.
	SetUint64(v uint64) Scalar
	// Bytes returns the canonical fixed-size byte representation.
	Bytes() []byte
	// SetBytes sets the receiver from its canonical encoding and returns it.
	// Returns an error if the data has the wrong length or is out of range.
	SetBytes(data []byte) (Scalar, error)
	// Equal reports whether the receiver equals b.
	Equal(b Scalar) bool
	// IsZero reports whether the receiver is zero.
	IsZero() bool
	// Zero overwrites the receiver with zero.
	Zero()
}

// Point represents an element of one of the two source groups of a
// pairing. Points of different groups must not be mixed; implementations
// panic on a type mismatch the same way they do for foreign scalars.
//
// The identity element is the additive identity: P + Identity = P.
type Point interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Point) Point
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Point) Point
	// Negate sets the receiver to -a and returns it.
	Negate(a Point) Point
	// ScalarMult sets the receiver to s*p and returns it.
	ScalarMult(s Scalar, p Point) Point
	// Set sets the receiver to a and returns it.
	Set(a Point) Point
	// Bytes returns the canonical compressed encoding of the point.
	Bytes() []byte
	// SetBytes sets the receiver from a compressed encoding and returns it.
	// Returns an error if the data is not a point of the prime-order subgroup.
	SetBytes(data []byte) (Point, error)
	// Equal reports whether the receiver equals b.
	Equal(b Point) bool
	// IsIdentity reports whether the receiver is the identity element.
	IsIdentity() bool
}

// Group is one source group of a pairing. It provides factory methods for
// scalars and points, the group's base point and random scalar sampling.
type Group interface {
	// NewScalar returns a new zero scalar.
	NewScalar() Scalar
	// NewPoint returns a new identity point.
	NewPoint() Point
	// Generator returns the group's standard base point.
	Generator() Point
	// RandomScalar returns a uniformly random scalar read from r.
	RandomScalar(r io.Reader) (Scalar, error)
	// HashToScalar hashes the input data to a scalar.
	HashToScalar(data ...[]byte) (Scalar, error)
	// Order returns the group order as a big-endian byte slice.
	Order() []byte
	// PointLen returns the length of a compressed point encoding.
	PointLen() int
}

// Pairing bundles the two source groups of a bilinear map
// e: G1 x G2 -> GT together with the hash-to-curve primitive used
// for messages. Both groups share the same scalar field.
//
// Example usage:
//
//	p := bls12381.New()
//	sk, _ := p.G2().RandomScalar(rand.Reader)
//	pk := p.G2().NewPoint().ScalarMult(sk, p.G2().Generator())
//	h, _ := p.HashToG1([]byte("hello"))
//	sig := p.G1().NewPoint().ScalarMult(sk, h)
//	ok, _ := p.PairingCheck([]Point{sig, p.G1().NewPoint().Negate(h)},
//		[]Point{p.G2().Generator(), pk})
type Pairing interface {
	// G1 returns the group messages and signatures live in.
	G1() Group
	// G2 returns the group public keys and generators live in.
	G2() Group
	// ScalarLen returns the length of a canonical scalar encoding.
	ScalarLen() int
	// HashToG1 maps an arbitrary message onto a G1 point.
	HashToG1(msg []byte) (Point, error)
	// PairingCheck reports whether the product of e(g1[i], g2[i]) is the
	// identity of GT. The slices must have equal length.
	PairingCheck(g1, g2 []Point) (bool, error)
}
