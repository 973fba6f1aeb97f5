// Package group defines abstract interfaces for the pairing-friendly
// groups used by the blinded threshold BLS scheme in package tbls.
//
// The interfaces abstract over the arithmetic the protocol consumes:
//
//   - [Scalar]: Elements of the scalar field (integers modulo the group order)
//   - [Point]: Elements of a source group (points on an elliptic curve)
//   - [Group]: Factory and utility methods for one source group
//   - [Pairing]: The two source groups, hash-to-curve and the pairing check
//
// # Design Philosophy
//
// The interfaces use a mutable receiver pattern for efficiency. Operations
// like Add, Mul, and ScalarMult set the receiver to the result and return it,
// allowing method chaining while minimizing allocations:
//
//	// Compute a + b*c
//	result := g.NewScalar().Mul(b, c)
//	result = g.NewScalar().Add(a, result)
//
// Decoding never panics; malformed encodings are reported as errors.
//
// # Implementing a Pairing
//
// See the bls12381 package for a complete implementation on BLS12-381.
//
// # Security Considerations
//
// Implementations must ensure:
//
//   - Scalar arithmetic is performed modulo the group order
//   - Random scalars are generated from the supplied reader only
//   - SetBytes rejects points outside the prime-order subgroup
//   - SetBytes rejects non-canonical scalar encodings
package group
