package tbls

// Derive computes the share of participant id for the session identified
// by generator and randomness.
//
// Shares lie on the line f(x) = master + a*x where a is the hasher's
// coefficient for (generator, randomness). Two participants deriving with
// the same generator, randomness and master secret therefore hold
// complementary shares: any two of them interpolate back to f(0).
//
// Derive is deterministic. It fails with [ErrInvalidInput] if generator
// is malformed or the identity, randomness is empty, id is zero, or
// masterSecret is not a canonical scalar.
func (s *Scheme) Derive(generator, randomness []byte, id ParticipantID, masterSecret []byte) (*Share, error) {
	if id == 0 {
		return nil, invalidf("participant id must be non-zero")
	}
	if len(randomness) == 0 {
		return nil, invalidf("empty shared randomness")
	}
	g, err := s.decodeG2(generator, "generator")
	if err != nil {
		return nil, err
	}
	sk, err := s.decodeScalar(masterSecret, "master secret")
	if err != nil {
		return nil, err
	}
	defer sk.Zero()

	a, err := s.hasher.Coefficient(s.suite, g.Bytes(), randomness)
	if err != nil {
		return nil, wrapf(err, "derive coefficient")
	}
	defer a.Zero()

	// secret = master + a*id
	secret := s.suite.G2().NewScalar().Mul(a, s.scalarFromID(id))
	secret = s.suite.G2().NewScalar().Add(sk, secret)
	defer secret.Zero()

	public := s.suite.G2().NewPoint().ScalarMult(secret, g)

	return &Share{
		ID:     id,
		Secret: secret.Bytes(),
		Public: public.Bytes(),
	}, nil
}

// CheckShare reports whether share.Public equals share.Secret*generator.
func (s *Scheme) CheckShare(generator []byte, share *Share) (bool, error) {
	if share == nil {
		return false, invalidf("nil share")
	}
	g, err := s.decodeG2(generator, "generator")
	if err != nil {
		return false, err
	}
	secret, err := s.decodeScalar(share.Secret, "share secret")
	if err != nil {
		return false, err
	}
	defer secret.Zero()
	public, err := s.decodeG2(share.Public, "share public key")
	if err != nil {
		return false, err
	}
	want := s.suite.G2().NewPoint().ScalarMult(secret, g)
	return want.Equal(public), nil
}
