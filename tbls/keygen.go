package tbls

import (
	"fmt"
	"io"

	"github.com/f3rmion/tbls/group"
)

// RandomnessLen is the length of the shared randomness produced by [Scheme.Rand].
const RandomnessLen = 32

// KeyGen creates a master key pair. The generator is a fresh random
// element of the key group rather than the standard base point, so every
// key pair carries its own generator.
//
// Callers own the returned secret and should call [KeyPair.Zero] when
// done with it.
func (s *Scheme) KeyGen(rng io.Reader) (*KeyPair, error) {
	g2 := s.suite.G2()

	sk, err := s.randomNonZero(rng)
	if err != nil {
		return nil, err
	}
	defer sk.Zero()

	t, err := s.randomNonZero(rng)
	if err != nil {
		return nil, err
	}
	defer t.Zero()

	generator := g2.NewPoint().ScalarMult(t, g2.Generator())
	public := g2.NewPoint().ScalarMult(sk, generator)

	return &KeyPair{
		Secret:    sk.Bytes(),
		Public:    public.Bytes(),
		Generator: generator.Bytes(),
	}, nil
}

// Rand returns fresh shared randomness for one session. Both participants
// of a session must derive their shares from the same value.
func (s *Scheme) Rand(rng io.Reader) ([]byte, error) {
	buf := make([]byte, RandomnessLen)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}
	return buf, nil
}

func (s *Scheme) randomNonZero(rng io.Reader) (group.Scalar, error) {
	for {
		k, err := s.suite.G2().RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
		}
		if !k.IsZero() {
			return k, nil
		}
	}
}
