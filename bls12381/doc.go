// Package bls12381 provides a BLS12-381 implementation of the
// [group.Pairing] interface for use with the blinded threshold BLS
// scheme in package tbls.
//
// BLS12-381 is a pairing-friendly Barreto-Lynn-Scott curve with embedding
// degree 12 and a 255-bit prime-order subgroup. This package wraps the
// implementation from gnark-crypto, exposing:
//
//   - [Scalar]: elements of Fr, encoded as 32 big-endian bytes
//   - [G1Point]: points of G1, 48-byte compressed encoding (signatures)
//   - [G2Point]: points of G2, 96-byte compressed encoding (public keys)
//   - [Suite]: the pairing, hash-to-G1 and hash-to-scalar
//
// # Usage
//
//	suite := bls12381.New()
//	scheme := tbls.New(suite)
//
// # Security
//
// Point decoding rejects encodings outside the prime-order subgroups and
// scalar decoding rejects non-canonical values. Messages are hashed to G1
// with the SSWU map of RFC 9380 under [MessageDST].
package bls12381
