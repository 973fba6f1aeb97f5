package tbls

// Blind prepares message for partial signing by participant self, paired
// with participant other.
//
// With lambda the Lagrange coefficient of self over {self, other} at zero,
// the blinded message is lambda*H(message) and the remainder is
// lambda*shareSecret. Signing the blinded message with the share gives
// lambda*share*H(message), so the two partial signatures of a pair add up
// to master*H(message), and the two remainders add up to master.
//
// The blinded message is a compressed signature-group point, not the raw
// message bytes. The entire message is bound by hash-to-curve; callers
// interoperating with 20-byte digests should pass exactly those.
//
// Blind fails with [ErrInvalidInput] if message is empty, either id is
// zero, the ids are equal, or shareSecret is malformed.
func (s *Scheme) Blind(message, shareSecret []byte, self, other ParticipantID) (*Blinded, error) {
	if len(message) == 0 {
		return nil, invalidf("empty message")
	}
	if self == 0 || other == 0 {
		return nil, invalidf("participant ids must be non-zero")
	}
	if self == other {
		return nil, invalidf("participant %s cannot pair with itself", self)
	}
	share, err := s.decodeScalar(shareSecret, "share secret")
	if err != nil {
		return nil, err
	}
	defer share.Zero()

	lambda, err := s.lagrangeCoefficient(self, []ParticipantID{self, other})
	if err != nil {
		return nil, err
	}

	h, err := s.suite.HashToG1(message)
	if err != nil {
		return nil, wrapf(err, "hash message to curve")
	}

	blinded := s.suite.G1().NewPoint().ScalarMult(lambda, h)
	remainder := s.suite.G1().NewScalar().Mul(lambda, share)
	defer remainder.Zero()

	return &Blinded{
		Message:   blinded.Bytes(),
		Remainder: remainder.Bytes(),
	}, nil
}
