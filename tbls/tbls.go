package tbls

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/f3rmion/tbls/group"
)

// IDLen is the length of an encoded [ParticipantID].
const IDLen = 8

// ParticipantID identifies one participant of a signing pair.
// Zero is reserved: the sharing line evaluated at zero is the master secret.
type ParticipantID uint64

// Bytes returns the fixed-width big-endian encoding of id.
func (id ParticipantID) Bytes() []byte {
	b := make([]byte, IDLen)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func (id ParticipantID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseParticipantID decodes an 8-byte big-endian participant identifier.
func ParseParticipantID(b []byte) (ParticipantID, error) {
	if len(b) == 0 {
		return 0, invalidf("empty participant id")
	}
	if len(b) != IDLen {
		return 0, invalidf("participant id must be %d bytes, got %d", IDLen, len(b))
	}
	id := ParticipantID(binary.BigEndian.Uint64(b))
	if id == 0 {
		return 0, invalidf("participant id must be non-zero")
	}
	return id, nil
}

// KeyPair is a master key pair. Secret is a scalar, Public and Generator
// are points of the key group with Public = Secret*Generator.
type KeyPair struct {
	Secret    []byte
	Public    []byte
	Generator []byte
}

// Zero overwrites the secret scalar. The pair must not be used afterwards
// for signing or derivation.
func (k *KeyPair) Zero() {
	clear(k.Secret)
}

// Share is a participant's derived key share for one session.
type Share struct {
	ID     ParticipantID
	Secret []byte // derived secret scalar
	Public []byte // Secret*generator
}

// Zero overwrites the secret scalar of the share.
func (s *Share) Zero() {
	clear(s.Secret)
}

// PublicShare returns the part of s that may leave the participant.
func (s *Share) PublicShare() *PublicShare {
	return &PublicShare{ID: s.ID, Public: append([]byte(nil), s.Public...)}
}

// PublicShare is the public half of a [Share], used to check partial
// signatures with [Scheme.VerifyBlinded].
type PublicShare struct {
	ID     ParticipantID
	Public []byte
}

// Blinded is the output of [Scheme.Blind]. Message is what gets signed;
// Remainder is kept for [Scheme.Restore].
type Blinded struct {
	Message   []byte
	Remainder []byte
}

// Scheme holds the pairing suite and the coefficient hasher.
// A Scheme is immutable and safe for concurrent use.
type Scheme struct {
	suite  group.Pairing
	hasher Hasher
}

// New creates a Scheme over the given pairing with the default
// [SuiteHasher].
func New(suite group.Pairing) *Scheme {
	return &Scheme{
		suite:  suite,
		hasher: &SuiteHasher{},
	}
}

// NewWithHasher creates a Scheme with a custom coefficient hasher.
// Every participant of a session must use the same hasher.
func NewWithHasher(suite group.Pairing, hasher Hasher) (*Scheme, error) {
	if suite == nil {
		return nil, errors.New("pairing suite must not be nil")
	}
	if hasher == nil {
		return nil, errors.New("hasher must not be nil")
	}
	return &Scheme{
		suite:  suite,
		hasher: hasher,
	}, nil
}

// Suite returns the pairing the scheme operates over.
func (s *Scheme) Suite() group.Pairing {
	return s.suite
}

func (s *Scheme) scalarFromID(id ParticipantID) group.Scalar {
	return s.suite.G1().NewScalar().SetUint64(uint64(id))
}

func (s *Scheme) decodeScalar(b []byte, what string) (group.Scalar, error) {
	if len(b) == 0 {
		return nil, invalidf("empty %s", what)
	}
	sc, err := s.suite.G1().NewScalar().SetBytes(b)
	if err != nil {
		return nil, invalidf("decode %s: %v", what, err)
	}
	return sc, nil
}

func (s *Scheme) decodeG1(b []byte, what string) (group.Point, error) {
	if len(b) == 0 {
		return nil, invalidf("empty %s", what)
	}
	p, err := s.suite.G1().NewPoint().SetBytes(b)
	if err != nil {
		return nil, invalidf("decode %s: %v", what, err)
	}
	return p, nil
}

func (s *Scheme) decodeG2(b []byte, what string) (group.Point, error) {
	if len(b) == 0 {
		return nil, invalidf("empty %s", what)
	}
	p, err := s.suite.G2().NewPoint().SetBytes(b)
	if err != nil {
		return nil, invalidf("decode %s: %v", what, err)
	}
	if p.IsIdentity() {
		return nil, invalidf("%s is the identity", what)
	}
	return p, nil
}

// lagrangeCoefficient returns the Lagrange basis polynomial of id over
// signers, evaluated at zero.
func (s *Scheme) lagrangeCoefficient(id ParticipantID, signers []ParticipantID) (group.Scalar, error) {
	g := s.suite.G1()
	x := s.scalarFromID(id)
	num := g.NewScalar().SetUint64(1)
	den := g.NewScalar().SetUint64(1)

	for _, other := range signers {
		if other == id {
			continue
		}
		xj := s.scalarFromID(other)
		num = g.NewScalar().Mul(num, xj)
		diff := g.NewScalar().Sub(xj, x)
		den = g.NewScalar().Mul(den, diff)
	}

	denInv, err := g.NewScalar().Invert(den)
	if err != nil {
		return nil, invalidf("duplicate participant id %s", id)
	}
	return g.NewScalar().Mul(num, denInv), nil
}

func wrapf(err error, format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, err)...)
}
