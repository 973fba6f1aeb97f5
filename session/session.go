package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/f3rmion/tbls/tbls"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrUnknownSession is returned when no pair was derived for a descriptor.
	ErrUnknownSession = errors.New("session: unknown session")

	// ErrDeriveInFlight is returned when a derivation with different
	// participants is already running for the same descriptor.
	ErrDeriveInFlight = errors.New("session: another derivation is in flight")

	// ErrSelfCheck is returned when a freshly produced signature fails its
	// own verification. It indicates corrupted state, not bad input.
	ErrSelfCheck = errors.New("session: signature self-check failed")
)

// Recorder receives the duration and outcome of coordinator operations.
type Recorder interface {
	Observe(op string, d time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) Observe(string, time.Duration, error) {}

// Coordinator owns the master key pair and drives the two-participant
// protocol on behalf of both participants. Create instances using
// [NewCoordinator].
type Coordinator struct {
	scheme   *tbls.Scheme
	key      *tbls.KeyPair
	store    *Store
	rng      io.Reader
	logger   zerolog.Logger
	recorder Recorder
	derives  singleflight.Group
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRecorder reports operation metrics to r.
func WithRecorder(r Recorder) Option {
	return func(c *Coordinator) { c.recorder = r }
}

// WithRand replaces crypto/rand as the source of session randomness.
func WithRand(r io.Reader) Option {
	return func(c *Coordinator) { c.rng = r }
}

// NewCoordinator creates a coordinator for key, keeping derived pairs in
// store. The coordinator takes ownership of key and zeroes it on Close.
func NewCoordinator(scheme *tbls.Scheme, key *tbls.KeyPair, store *Store, logger zerolog.Logger, opts ...Option) (*Coordinator, error) {
	if scheme == nil || key == nil || store == nil {
		return nil, errors.New("scheme, key and store are required")
	}
	c := &Coordinator{
		scheme:   scheme,
		key:      key,
		store:    store,
		rng:      rand.Reader,
		logger:   logger.With().Str("component", "coordinator").Logger(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// PublicKey returns the master public key.
func (c *Coordinator) PublicKey() []byte {
	return append([]byte(nil), c.key.Public...)
}

// Generator returns the master generator.
func (c *Coordinator) Generator() []byte {
	return append([]byte(nil), c.key.Generator...)
}

// Store returns the session store.
func (c *Coordinator) Store() *Store {
	return c.store
}

// Close zeroes the master secret. The coordinator must not be used afterwards.
func (c *Coordinator) Close() {
	c.key.Zero()
}

// Descriptor returns the session descriptor for a generator.
func Descriptor(generator []byte) string {
	return hex.EncodeToString(generator)
}

// Derive draws fresh randomness and derives a pair of shares for ids
// under generator. Deriving for a descriptor that already has a session
// is a session reset: the old shares are discarded. Concurrent calls for
// the same descriptor share one derivation.
func (c *Coordinator) Derive(generator []byte, ids [2]tbls.ParticipantID) (sess *Session, err error) {
	start := time.Now()
	defer func() { c.recorder.Observe("derive", time.Since(start), err) }()

	if ids[0] == ids[1] {
		return nil, fmt.Errorf("%w: participant ids must differ", tbls.ErrInvalidInput)
	}
	group := Descriptor(generator)

	v, err, shared := c.derives.Do(group, func() (any, error) {
		return c.derive(group, generator, ids)
	})
	if err != nil {
		return nil, err
	}
	sess = v.(*Session)
	if shared && sess.IDs != ids {
		return nil, ErrDeriveInFlight
	}
	return sess, nil
}

func (c *Coordinator) derive(group string, generator []byte, ids [2]tbls.ParticipantID) (*Session, error) {
	randomness, err := c.scheme.Rand(c.rng)
	if err != nil {
		return nil, err
	}
	defer clear(randomness)

	sess := &Session{
		Group:     group,
		Generator: append([]byte(nil), generator...),
		IDs:       ids,
		CreatedAt: time.Now(),
	}
	for i, id := range ids {
		share, err := c.scheme.Derive(generator, randomness, id, c.key.Secret)
		if err != nil {
			return nil, fmt.Errorf("derive share for participant %s: %w", id, err)
		}
		sess.Shares[i] = share
	}

	if c.store.Reset(sess) {
		c.logger.Warn().Str("session", shortID(group)).Msg("session reset: previous shares discarded")
	} else {
		c.logger.Info().Str("session", shortID(group)).
			Stringer("participant_1", ids[0]).
			Stringer("participant_2", ids[1]).
			Msg("derived session shares")
	}
	return sess, nil
}

// shortID keeps log lines readable; descriptors are 192 hex characters.
func shortID(group string) string {
	if len(group) > 16 {
		return group[:16]
	}
	return group
}
