package bls12381

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/f3rmion/tbls/group"
)

// ScalarLen is the length of a canonical scalar encoding.
const ScalarLen = fr.Bytes

// scalarDST separates HashToScalar from every other use of hash_to_field.
var scalarDST = []byte("TBLS-BLS12381-XMD:SHA-256-H2S-v1")

// Scalar represents an element of the BLS12-381 scalar field Fr.
// It implements [group.Scalar] by wrapping gnark-crypto's fr.Element.
type Scalar struct {
	inner fr.Element
}

func newScalar() *Scalar {
	return &Scalar{}
}

// Add sets s to a + b (mod r) and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b (mod r) and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.inner.Sub(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Mul sets s to a * b (mod r) and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Mul(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Negate sets s to -a (mod r) and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.Neg(&a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) (mod r) and returns s.
// Returns an error if a is zero, as zero has no multiplicative inverse.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	aScalar := a.(*Scalar)
	if aScalar.IsZero() {
		return nil, errors.New("cannot invert zero scalar")
	}
	s.inner.Inverse(&aScalar.inner)
	return s, nil
}

// Set copies the value of a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(&a.(*Scalar).inner)
	return s
}

// SetUint64 sets s to v and returns s.
func (s *Scalar) SetUint64(v uint64) group.Scalar {
	s.inner.SetUint64(v)
	return s
}

// Bytes returns the scalar as a 32-byte big-endian representation.
func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	return b[:]
}

// SetBytes sets s from a 32-byte big-endian encoding and returns s.
// Encodings that are not reduced modulo r are rejected.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if len(data) != ScalarLen {
		return nil, fmt.Errorf("scalar encoding must be %d bytes, got %d", ScalarLen, len(data))
	}
	if err := s.inner.SetBytesCanonical(data); err != nil {
		return nil, err
	}
	return s, nil
}

// Equal reports whether s and b represent the same scalar value.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.Equal(&b.(*Scalar).inner)
}

// IsZero reports whether s is the zero scalar.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// Zero overwrites s with zero.
func (s *Scalar) Zero() {
	s.inner.SetZero()
}

func (s *Scalar) bigInt() *big.Int {
	return s.inner.BigInt(new(big.Int))
}

// randomScalar reads 16 bytes more than a scalar needs so that the
// reduction modulo r has negligible bias.
func randomScalar(r io.Reader) (group.Scalar, error) {
	var buf [ScalarLen + 16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	s := newScalar()
	s.inner.SetBytes(buf[:])
	return s, nil
}

// hashToScalar length-prefixes every input so that distinct input lists
// never collide, then maps the result onto Fr with hash_to_field.
func hashToScalar(data ...[]byte) (group.Scalar, error) {
	var msg []byte
	var n [8]byte
	for _, d := range data {
		binary.BigEndian.PutUint64(n[:], uint64(len(d)))
		msg = append(msg, n[:]...)
		msg = append(msg, d...)
	}
	elems, err := fr.Hash(msg, scalarDST, 1)
	if err != nil {
		return nil, err
	}
	return &Scalar{inner: elems[0]}, nil
}

func order() []byte {
	return fr.Modulus().Bytes()
}
