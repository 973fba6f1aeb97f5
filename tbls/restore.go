package tbls

// Restore adds the remainders of two complementary [Scheme.Blind] calls.
// For remainders of the two members of one session the result is the
// master secret.
//
// Restore does not detect mismatched inputs: remainders from different
// sessions, wrong ids or tampered values simply yield some other scalar.
// Callers that use Restore as an audit must compare the result with the
// master secret themselves, in constant time.
func (s *Scheme) Restore(remainder1, remainder2 []byte) ([]byte, error) {
	r1, err := s.decodeScalar(remainder1, "first remainder")
	if err != nil {
		return nil, err
	}
	defer r1.Zero()
	r2, err := s.decodeScalar(remainder2, "second remainder")
	if err != nil {
		return nil, err
	}
	defer r2.Zero()

	secret := s.suite.G1().NewScalar().Add(r1, r2)
	defer secret.Zero()
	return secret.Bytes(), nil
}
