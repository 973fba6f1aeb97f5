package tbls

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"

	"github.com/f3rmion/tbls/group"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// Hasher derives the slope of a session's sharing line.
// Different implementations can provide different hash functions
// and domain separation schemes; all participants of a session must
// agree on one.
type Hasher interface {
	// Coefficient maps the session generator and the shared randomness
	// to a scalar.
	Coefficient(p group.Pairing, generator, randomness []byte) (group.Scalar, error)
}

// writeFields writes each field with an 8-byte length prefix.
func writeFields(w hash.Hash, data ...[]byte) {
	var n [8]byte
	for _, d := range data {
		binary.BigEndian.PutUint64(n[:], uint64(len(d)))
		w.Write(n[:])
		w.Write(d)
	}
}

// SuiteHasher hashes directly with the suite's hash_to_field.
// This is the default hasher.
type SuiteHasher struct{}

// Coefficient implements Hasher.Coefficient.
func (h *SuiteHasher) Coefficient(p group.Pairing, generator, randomness []byte) (group.Scalar, error) {
	return p.G2().HashToScalar([]byte("coef"), generator, randomness)
}

// SHA256Hasher implements Hasher using SHA-256. The digest is mapped
// onto the scalar field by the suite.
type SHA256Hasher struct{}

func (h *SHA256Hasher) hash(data ...[]byte) []byte {
	hasher := sha256.New()
	writeFields(hasher, data...)
	return hasher.Sum(nil)
}

// Coefficient implements Hasher.Coefficient.
func (h *SHA256Hasher) Coefficient(p group.Pairing, generator, randomness []byte) (group.Scalar, error) {
	return p.G2().HashToScalar(h.hash([]byte("coef"), generator, randomness))
}

// Blake2bHasher implements Hasher using Blake2b-512 with domain separation.
//
// Domain separation format: prefix + tag + input.
type Blake2bHasher struct {
	// Prefix is the domain separation prefix.
	// Default: "TBLS-BLS12381-BLAKE512-v1"
	Prefix string
}

// NewBlake2bHasher creates a Blake2bHasher with the default prefix.
func NewBlake2bHasher() *Blake2bHasher {
	return &Blake2bHasher{
		Prefix: "TBLS-BLS12381-BLAKE512-v1",
	}
}

func (h *Blake2bHasher) hash(tag string, data ...[]byte) []byte {
	hasher, _ := blake2b.New512(nil)
	hasher.Write([]byte(h.Prefix))
	hasher.Write([]byte(tag))
	writeFields(hasher, data...)
	return hasher.Sum(nil)
}

// Coefficient implements Hasher.Coefficient.
func (h *Blake2bHasher) Coefficient(p group.Pairing, generator, randomness []byte) (group.Scalar, error) {
	return p.G2().HashToScalar(h.hash("coef", generator, randomness))
}

// Blake3Hasher implements Hasher using BLAKE3 in key derivation mode.
type Blake3Hasher struct {
	// Context is the BLAKE3 derive-key context string.
	// Default: "tbls 2025-01 share coefficient"
	Context string
}

// NewBlake3Hasher creates a Blake3Hasher with the default context.
func NewBlake3Hasher() *Blake3Hasher {
	return &Blake3Hasher{
		Context: "tbls 2025-01 share coefficient",
	}
}

func (h *Blake3Hasher) hash(data ...[]byte) []byte {
	hasher := blake3.NewDeriveKey(h.Context)
	writeFields(hasher, data...)
	return hasher.Sum(nil)
}

// Coefficient implements Hasher.Coefficient.
func (h *Blake3Hasher) Coefficient(p group.Pairing, generator, randomness []byte) (group.Scalar, error) {
	return p.G2().HashToScalar(h.hash(generator, randomness))
}

// HasherByName returns the hasher registered under name: "suite",
// "sha256", "blake2b" or "blake3". The empty name selects "suite".
func HasherByName(name string) (Hasher, bool) {
	switch name {
	case "", "suite":
		return &SuiteHasher{}, true
	case "sha256":
		return &SHA256Hasher{}, true
	case "blake2b":
		return NewBlake2bHasher(), true
	case "blake3":
		return NewBlake3Hasher(), true
	default:
		return nil, false
	}
}
