// Package tbls implements a two-party blinded threshold BLS signature
// scheme over an arbitrary pairing-friendly group.
//
// A master key pair is split into per-participant derived shares. Each
// participant blinds the message with its own share and the identifier of
// its counterpart, signs the blinded message, and the two partial
// signatures add up to an ordinary BLS signature that verifies under the
// master public key.
//
// # Key Derivation
//
// A coordinator holding the master key runs:
//
//  1. [Scheme.KeyGen] once, producing the master secret, public key and generator.
//  2. [Scheme.Rand] once per session, producing the shared randomness.
//  3. [Scheme.Derive] once per participant with the same randomness.
//
// # Threshold Signing
//
//  1. Each participant blinds the message using [Scheme.Blind], passing its
//     own id first and the counterpart's id second.
//  2. Each participant signs its blinded message using [Scheme.SignGroup].
//     A partial signature can be checked with [Scheme.VerifyBlinded].
//  3. The partial signatures are combined using [Scheme.Aggregate].
//  4. Anyone can verify the result with [Scheme.Verify] against the
//     original message and the master public key.
//
// [Scheme.Restore] adds the two blinding remainders of a pair and yields
// the master secret. It is a consistency check of the sharing, not part
// of signing, and it never reports a mismatch on its own.
//
// # Example
//
//	s := tbls.New(bls12381.New())
//	key, _ := s.KeyGen(rand.Reader)
//	r, _ := s.Rand(rand.Reader)
//
//	share1, _ := s.Derive(key.Generator, r, 1, key.Secret)
//	share2, _ := s.Derive(key.Generator, r, 2, key.Secret)
//
//	b1, _ := s.Blind(msg, share1.Secret, 1, 2)
//	b2, _ := s.Blind(msg, share2.Secret, 2, 1)
//
//	sig1, _ := s.SignGroup(b1.Message, share1.Secret)
//	sig2, _ := s.SignGroup(b2.Message, share2.Secret)
//
//	sig, _ := s.Aggregate(sig1, sig2)
//	ok, _ := s.Verify(msg, sig, key.Public, key.Generator)
//
// # Security Considerations
//
// All operations are pure functions over byte slices. Secrets handed in
// are copied into scalars that are cleared before returning, but the
// caller's slices are left untouched; use [KeyPair.Zero] and [Share.Zero]
// when the material is no longer needed.
//
// Re-deriving shares for a session with new randomness produces shares
// incompatible with the old ones. Session bookkeeping belongs to the
// caller; see package session.
package tbls
