package tbls

import "github.com/f3rmion/tbls/group"

// SignGroup computes the partial signature shareSecret*B of a blinded
// message B produced by [Scheme.Blind].
func (s *Scheme) SignGroup(blinded, shareSecret []byte) ([]byte, error) {
	b, err := s.decodeG1(blinded, "blinded message")
	if err != nil {
		return nil, err
	}
	if b.IsIdentity() {
		return nil, invalidf("blinded message is the identity")
	}
	share, err := s.decodeScalar(shareSecret, "share secret")
	if err != nil {
		return nil, err
	}
	defer share.Zero()

	sig := s.suite.G1().NewPoint().ScalarMult(share, b)
	return sig.Bytes(), nil
}

// Sign computes the single-party signature secret*H(message).
func (s *Scheme) Sign(message, secret []byte) ([]byte, error) {
	if len(message) == 0 {
		return nil, invalidf("empty message")
	}
	sk, err := s.decodeScalar(secret, "secret key")
	if err != nil {
		return nil, err
	}
	defer sk.Zero()

	h, err := s.suite.HashToG1(message)
	if err != nil {
		return nil, wrapf(err, "hash message to curve")
	}
	sig := s.suite.G1().NewPoint().ScalarMult(sk, h)
	return sig.Bytes(), nil
}

// Aggregate adds two partial signatures. It is commutative.
func (s *Scheme) Aggregate(sig1, sig2 []byte) ([]byte, error) {
	return s.AggregateAll(sig1, sig2)
}

// AggregateAll folds any number of partial signatures left to right with
// point addition.
func (s *Scheme) AggregateAll(sigs ...[]byte) ([]byte, error) {
	if len(sigs) == 0 {
		return nil, invalidf("no partial signatures")
	}
	var sum group.Point = s.suite.G1().NewPoint()
	for i, raw := range sigs {
		p, err := s.decodeG1(raw, "partial signature")
		if err != nil {
			return nil, wrapf(err, "partial signature %d", i)
		}
		sum = s.suite.G1().NewPoint().Add(sum, p)
	}
	return sum.Bytes(), nil
}
