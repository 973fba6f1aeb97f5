package tbls

import "github.com/f3rmion/tbls/group"

// Verify checks signature against message under publicKey and generator,
// i.e. e(signature, generator) == e(H(message), publicKey).
//
// It serves single-party signatures and aggregate signatures alike. A
// well-formed signature that does not verify returns false with a nil
// error; malformed encodings return [ErrInvalidInput].
func (s *Scheme) Verify(message, signature, publicKey, generator []byte) (bool, error) {
	if len(message) == 0 {
		return false, invalidf("empty message")
	}
	h, err := s.suite.HashToG1(message)
	if err != nil {
		return false, wrapf(err, "hash message to curve")
	}
	return s.verifyPoint(h, signature, publicKey, generator)
}

// VerifyBlinded checks a partial signature over a blinded message against
// the signer's share public key. The blinded message is already a curve
// point and is used as-is instead of being hashed.
func (s *Scheme) VerifyBlinded(blinded, signature, sharePublic, generator []byte) (bool, error) {
	b, err := s.decodeG1(blinded, "blinded message")
	if err != nil {
		return false, err
	}
	if b.IsIdentity() {
		return false, invalidf("blinded message is the identity")
	}
	return s.verifyPoint(b, signature, sharePublic, generator)
}

func (s *Scheme) verifyPoint(h group.Point, signature, publicKey, generator []byte) (bool, error) {
	sig, err := s.decodeG1(signature, "signature")
	if err != nil {
		return false, err
	}
	pk, err := s.decodeG2(publicKey, "public key")
	if err != nil {
		return false, err
	}
	g, err := s.decodeG2(generator, "generator")
	if err != nil {
		return false, err
	}

	// e(sig, g) * e(-h, pk) == 1
	negH := s.suite.G1().NewPoint().Negate(h)
	ok, err := s.suite.PairingCheck(
		[]group.Point{sig, negH},
		[]group.Point{g, pk},
	)
	if err != nil {
		return false, wrapf(err, "pairing check")
	}
	return ok, nil
}
