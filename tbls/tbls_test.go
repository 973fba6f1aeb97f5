package tbls

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"testing"

	"github.com/f3rmion/tbls/bls12381"
)

type pairResult struct {
	shares   [2]*Share
	blinded  [2]*Blinded
	partials [2][]byte
	sig      []byte
}

// signPair runs the full two-participant pipeline for msg.
func signPair(t *testing.T, s *Scheme, key *KeyPair, randomness, msg []byte, id1, id2 ParticipantID) *pairResult {
	t.Helper()
	var res pairResult
	ids := [2]ParticipantID{id1, id2}

	for i, id := range ids {
		share, err := s.Derive(key.Generator, randomness, id, key.Secret)
		if err != nil {
			t.Fatalf("derive share for %d: %v", id, err)
		}
		res.shares[i] = share
	}

	for i := range ids {
		b, err := s.Blind(msg, res.shares[i].Secret, ids[i], ids[1-i])
		if err != nil {
			t.Fatalf("blind for %d: %v", ids[i], err)
		}
		res.blinded[i] = b

		p, err := s.SignGroup(b.Message, res.shares[i].Secret)
		if err != nil {
			t.Fatalf("partial sign for %d: %v", ids[i], err)
		}
		res.partials[i] = p
	}

	sig, err := s.Aggregate(res.partials[0], res.partials[1])
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	res.sig = sig
	return &res
}

func newKey(t *testing.T, s *Scheme) *KeyPair {
	t.Helper()
	key, err := s.KeyGen(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

func newRand(t *testing.T, s *Scheme) []byte {
	t.Helper()
	r, err := s.Rand(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestSignAndVerify(t *testing.T) {
	s := New(bls12381.New())
	key := newKey(t, s)
	msg := bytes.Repeat([]byte{1}, 20)

	sig, err := s.Sign(msg, key.Secret)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := s.Verify(msg, sig, key.Public, key.Generator)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("signature verification failed")
	}

	// Differs in the first 20 bytes.
	other := bytes.Repeat([]byte{2}, 20)
	ok, err = s.Verify(other, sig, key.Public, key.Generator)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("signature should not verify with wrong message")
	}

	otherKey := newKey(t, s)
	ok, err = s.Verify(msg, sig, otherKey.Public, otherKey.Generator)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("signature should not verify under another key")
	}
}

func TestThresholdSigning(t *testing.T) {
	s := New(bls12381.New())
	key := newKey(t, s)
	r := newRand(t, s)
	msg := []byte("threshold message")

	res := signPair(t, s, key, r, msg, 1, 2)

	t.Run("Completeness", func(t *testing.T) {
		ok, err := s.Verify(msg, res.sig, key.Public, key.Generator)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Error("aggregate signature does not verify under the master key")
		}

		ok, _ = s.Verify([]byte("wrong message"), res.sig, key.Public, key.Generator)
		if ok {
			t.Error("aggregate signature should not verify with wrong message")
		}
	})

	t.Run("MatchesSinglePartySignature", func(t *testing.T) {
		direct, err := s.Sign(msg, key.Secret)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(direct, res.sig) {
			t.Error("aggregate signature differs from master signature")
		}
	})

	t.Run("PartialVerifiability", func(t *testing.T) {
		for i := range res.partials {
			ok, err := s.VerifyBlinded(res.blinded[i].Message, res.partials[i], res.shares[i].Public, key.Generator)
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				t.Errorf("partial signature %d does not verify under its share", i+1)
			}
		}

		// Cross-checking against the other share must fail.
		ok, err := s.VerifyBlinded(res.blinded[0].Message, res.partials[0], res.shares[1].Public, key.Generator)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Error("partial signature verified under the wrong share")
		}
	})

	t.Run("SharePublicKeys", func(t *testing.T) {
		for i, share := range res.shares {
			ok, err := s.CheckShare(key.Generator, share)
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				t.Errorf("share %d public key does not match its secret", i+1)
			}
		}
	})

	t.Run("RestorationIdentity", func(t *testing.T) {
		restored, err := s.Restore(res.blinded[0].Remainder, res.blinded[1].Remainder)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(restored, key.Secret) {
			t.Error("restored secret differs from master secret")
		}

		swapped, err := s.Restore(res.blinded[1].Remainder, res.blinded[0].Remainder)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(swapped, restored) {
			t.Error("restore should be symmetric")
		}
	})
}

func TestSigningWithDifferentPairs(t *testing.T) {
	s := New(bls12381.New())
	key := newKey(t, s)
	r := newRand(t, s)
	msg := []byte("test message")

	pairs := [][2]ParticipantID{
		{1, 2},
		{2, 1},
		{1, 3},
		{5, 9},
		{7, 1 << 40},
	}

	for _, pair := range pairs {
		t.Run(fmt.Sprintf("%d-%d", pair[0], pair[1]), func(t *testing.T) {
			res := signPair(t, s, key, r, msg, pair[0], pair[1])

			ok, err := s.Verify(msg, res.sig, key.Public, key.Generator)
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				t.Error("aggregate signature verification failed")
			}

			restored, err := s.Restore(res.blinded[0].Remainder, res.blinded[1].Remainder)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(restored, key.Secret) {
				t.Error("restored secret differs from master secret")
			}
		})
	}
}

func TestRestoreMismatch(t *testing.T) {
	s := New(bls12381.New())
	key := newKey(t, s)
	msg := []byte("restore mismatch")

	t.Run("DifferentRandomness", func(t *testing.T) {
		for trial := 0; trial < 16; trial++ {
			r1 := newRand(t, s)
			r2 := newRand(t, s)

			share1, err := s.Derive(key.Generator, r1, 1, key.Secret)
			if err != nil {
				t.Fatal(err)
			}
			share2, err := s.Derive(key.Generator, r2, 2, key.Secret)
			if err != nil {
				t.Fatal(err)
			}
			b1, _ := s.Blind(msg, share1.Secret, 1, 2)
			b2, _ := s.Blind(msg, share2.Secret, 2, 1)

			restored, err := s.Restore(b1.Remainder, b2.Remainder)
			if err != nil {
				t.Fatal(err)
			}
			if bytes.Equal(restored, key.Secret) {
				t.Fatalf("trial %d: remainders from different sessions restored the master secret", trial)
			}

			p1, _ := s.SignGroup(b1.Message, share1.Secret)
			p2, _ := s.SignGroup(b2.Message, share2.Secret)
			sig, _ := s.Aggregate(p1, p2)
			ok, err := s.Verify(msg, sig, key.Public, key.Generator)
			if err != nil {
				t.Fatal(err)
			}
			if ok {
				t.Fatalf("trial %d: mismatched shares produced a valid signature", trial)
			}
		}
	})

	t.Run("SameRoleTwice", func(t *testing.T) {
		r := newRand(t, s)
		share1, _ := s.Derive(key.Generator, r, 1, key.Secret)
		share2, _ := s.Derive(key.Generator, r, 2, key.Secret)

		// Both participants claim to be "self = 1".
		b1, _ := s.Blind(msg, share1.Secret, 1, 2)
		b2, _ := s.Blind(msg, share2.Secret, 1, 2)

		restored, err := s.Restore(b1.Remainder, b2.Remainder)
		if err != nil {
			t.Fatal(err)
		}
		if bytes.Equal(restored, key.Secret) {
			t.Error("non-complementary blinding restored the master secret")
		}
	})
}

func TestDeriveDeterministic(t *testing.T) {
	s := New(bls12381.New())
	key := newKey(t, s)
	r := newRand(t, s)

	a, err := s.Derive(key.Generator, r, 1, key.Secret)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Derive(key.Generator, r, 1, key.Secret)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Secret, b.Secret) || !bytes.Equal(a.Public, b.Public) {
		t.Error("derive is not deterministic")
	}

	c, _ := s.Derive(key.Generator, r, 2, key.Secret)
	if bytes.Equal(a.Secret, c.Secret) {
		t.Error("different ids produced the same share")
	}

	d, _ := s.Derive(key.Generator, newRand(t, s), 1, key.Secret)
	if bytes.Equal(a.Secret, d.Secret) {
		t.Error("different randomness produced the same share")
	}
}

func TestAggregateCommutative(t *testing.T) {
	s := New(bls12381.New())
	key := newKey(t, s)
	res := signPair(t, s, key, newRand(t, s), []byte("commute"), 1, 2)

	ab, err := s.Aggregate(res.partials[0], res.partials[1])
	if err != nil {
		t.Fatal(err)
	}
	ba, err := s.Aggregate(res.partials[1], res.partials[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ab, ba) {
		t.Error("aggregate(a, b) != aggregate(b, a)")
	}

	all, err := s.AggregateAll(res.partials[0], res.partials[1])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(all, ab) {
		t.Error("AggregateAll disagrees with Aggregate")
	}

	single, err := s.AggregateAll(res.partials[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(single, res.partials[0]) {
		t.Error("folding a single signature should return it unchanged")
	}
}

func TestHashers(t *testing.T) {
	hashers := map[string]Hasher{
		"suite":   &SuiteHasher{},
		"sha256":  &SHA256Hasher{},
		"blake2b": NewBlake2bHasher(),
		"blake3":  NewBlake3Hasher(),
	}

	msg := []byte("hasher message")
	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			s, err := NewWithHasher(bls12381.New(), h)
			if err != nil {
				t.Fatal(err)
			}
			key := newKey(t, s)
			res := signPair(t, s, key, newRand(t, s), msg, 1, 2)

			ok, err := s.Verify(msg, res.sig, key.Public, key.Generator)
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				t.Error("aggregate signature verification failed")
			}

			restored, _ := s.Restore(res.blinded[0].Remainder, res.blinded[1].Remainder)
			if !bytes.Equal(restored, key.Secret) {
				t.Error("restored secret differs from master secret")
			}

			byName, found := HasherByName(name)
			if !found {
				t.Fatalf("hasher %q not registered", name)
			}
			c1, _ := byName.Coefficient(s.Suite(), key.Generator, []byte("r"))
			c2, _ := h.Coefficient(s.Suite(), key.Generator, []byte("r"))
			if !c1.Equal(c2) {
				t.Error("HasherByName returned a differently configured hasher")
			}
		})
	}

	if _, found := HasherByName("md5"); found {
		t.Error("unknown hasher name should not resolve")
	}
	if _, err := NewWithHasher(bls12381.New(), nil); err == nil {
		t.Error("expected error for nil hasher")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy source closed") }

func TestRandomnessUnavailable(t *testing.T) {
	s := New(bls12381.New())

	if _, err := s.KeyGen(failingReader{}); !errors.Is(err, ErrRandomnessUnavailable) {
		t.Errorf("KeyGen: expected ErrRandomnessUnavailable, got %v", err)
	}
	if _, err := s.Rand(failingReader{}); !errors.Is(err, ErrRandomnessUnavailable) {
		t.Errorf("Rand: expected ErrRandomnessUnavailable, got %v", err)
	}
	if _, err := s.KeyGen(bytes.NewReader(make([]byte, 10))); !errors.Is(err, ErrRandomnessUnavailable) {
		t.Errorf("KeyGen with short reader: expected ErrRandomnessUnavailable, got %v", err)
	}
}

func TestMalformedInput(t *testing.T) {
	s := New(bls12381.New())
	key := newKey(t, s)
	r := newRand(t, s)
	msg := []byte("malformed")
	res := signPair(t, s, key, r, msg, 1, 2)
	share := res.shares[0]

	truncated := func(b []byte) []byte { return b[:len(b)-1] }
	identityG2 := s.Suite().G2().NewPoint().Bytes()

	cases := []struct {
		name string
		call func() error
	}{
		{"DeriveEmptyGenerator", func() error { _, err := s.Derive(nil, r, 1, key.Secret); return err }},
		{"DeriveTruncatedGenerator", func() error { _, err := s.Derive(truncated(key.Generator), r, 1, key.Secret); return err }},
		{"DeriveIdentityGenerator", func() error { _, err := s.Derive(identityG2, r, 1, key.Secret); return err }},
		{"DeriveZeroID", func() error { _, err := s.Derive(key.Generator, r, 0, key.Secret); return err }},
		{"DeriveEmptyRandomness", func() error { _, err := s.Derive(key.Generator, nil, 1, key.Secret); return err }},
		{"DeriveTruncatedSecret", func() error { _, err := s.Derive(key.Generator, r, 1, truncated(key.Secret)); return err }},
		{"BlindEmptyMessage", func() error { _, err := s.Blind(nil, share.Secret, 1, 2); return err }},
		{"BlindSameIDs", func() error { _, err := s.Blind(msg, share.Secret, 1, 1); return err }},
		{"BlindZeroID", func() error { _, err := s.Blind(msg, share.Secret, 0, 2); return err }},
		{"BlindEmptyShare", func() error { _, err := s.Blind(msg, nil, 1, 2); return err }},
		{"SignGroupEmpty", func() error { _, err := s.SignGroup(nil, share.Secret); return err }},
		{"SignGroupTruncated", func() error { _, err := s.SignGroup(truncated(res.blinded[0].Message), share.Secret); return err }},
		{"SignGroupRawMessage", func() error { _, err := s.SignGroup(msg, share.Secret); return err }},
		{"SignGroupTruncatedShare", func() error { _, err := s.SignGroup(res.blinded[0].Message, truncated(share.Secret)); return err }},
		{"SignEmptyMessage", func() error { _, err := s.Sign(nil, key.Secret); return err }},
		{"SignEmptySecret", func() error { _, err := s.Sign(msg, nil); return err }},
		{"AggregateEmpty", func() error { _, err := s.Aggregate(nil, res.partials[1]); return err }},
		{"AggregateTruncated", func() error { _, err := s.Aggregate(res.partials[0], truncated(res.partials[1])); return err }},
		{"AggregateAllNone", func() error { _, err := s.AggregateAll(); return err }},
		{"RestoreEmpty", func() error { _, err := s.Restore(nil, res.blinded[1].Remainder); return err }},
		{"RestoreTruncated", func() error { _, err := s.Restore(res.blinded[0].Remainder, truncated(res.blinded[1].Remainder)); return err }},
		{"VerifyEmptyMessage", func() error { _, err := s.Verify(nil, res.sig, key.Public, key.Generator); return err }},
		{"VerifyEmptySignature", func() error { _, err := s.Verify(msg, nil, key.Public, key.Generator); return err }},
		{"VerifyTruncatedSignature", func() error { _, err := s.Verify(msg, truncated(res.sig), key.Public, key.Generator); return err }},
		{"VerifyTruncatedPublicKey", func() error { _, err := s.Verify(msg, res.sig, truncated(key.Public), key.Generator); return err }},
		{"VerifyIdentityPublicKey", func() error { _, err := s.Verify(msg, res.sig, identityG2, key.Generator); return err }},
		{"VerifyEmptyGenerator", func() error { _, err := s.Verify(msg, res.sig, key.Public, nil); return err }},
		{"VerifyBlindedEmpty", func() error { _, err := s.VerifyBlinded(nil, res.partials[0], share.Public, key.Generator); return err }},
		{"CheckShareNil", func() error { _, err := s.CheckShare(key.Generator, nil); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestParticipantID(t *testing.T) {
	id := ParticipantID(2)
	enc := id.Bytes()
	if !bytes.Equal(enc, []byte{0, 0, 0, 0, 0, 0, 0, 2}) {
		t.Errorf("unexpected encoding %x", enc)
	}

	parsed, err := ParseParticipantID(enc)
	if err != nil {
		t.Fatal(err)
	}
	if parsed != id {
		t.Errorf("parsed %d, want %d", parsed, id)
	}

	for _, bad := range [][]byte{nil, {1}, make([]byte, IDLen)} {
		if _, err := ParseParticipantID(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseParticipantID(%x): expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestShareEncoding(t *testing.T) {
	s := New(bls12381.New())
	key := newKey(t, s)
	share, err := s.Derive(key.Generator, newRand(t, s), 3, key.Secret)
	if err != nil {
		t.Fatal(err)
	}

	data, err := share.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	var decoded Share
	if err := decoded.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	ok, err := s.CheckShare(key.Generator, &decoded)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || decoded.ID != 3 {
		t.Error("decoded share does not match the derived one")
	}

	pubData, err := share.PublicShare().MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	var pub PublicShare
	if err := pub.UnmarshalBinary(pubData); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pub.Public, share.Public) {
		t.Error("public share mismatch")
	}

	// A full share must not be accepted where only public material is expected.
	if err := pub.UnmarshalBinary(data); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for secret in public share, got %v", err)
	}
	if err := decoded.UnmarshalBinary([]byte{0xff, 0x00}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for garbage, got %v", err)
	}

	share.Zero()
	if !bytes.Equal(share.Secret, make([]byte, len(share.Secret))) {
		t.Error("Zero did not clear the share secret")
	}
}
