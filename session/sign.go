package session

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/f3rmion/tbls/tbls"
)

// Sign produces an aggregate signature over message using the pair
// derived under generator. Both participants blind and partially sign in
// parallel; every partial signature is checked against its share before
// aggregation and the aggregate is checked against the master key.
func (c *Coordinator) Sign(ctx context.Context, generator, message []byte) (sig []byte, err error) {
	start := time.Now()
	defer func() { c.recorder.Observe("sign", time.Since(start), err) }()

	var partials [2][]byte
	var group string
	err = c.view(generator, func(sess *Session) error {
		group = sess.Group
		g, ctx := errgroup.WithContext(ctx)
		for i := range sess.IDs {
			i := i
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				p, err := c.partialSign(sess, i, message)
				if err != nil {
					return err
				}
				partials[i] = p
				return nil
			})
		}
		return g.Wait()
	})
	if err != nil {
		return nil, err
	}

	sig, err = c.scheme.Aggregate(partials[0], partials[1])
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	ok, err := c.scheme.Verify(message, sig, c.key.Public, c.key.Generator)
	if err != nil {
		return nil, err
	}
	if !ok {
		c.logger.Error().Str("session", shortID(group)).Msg("aggregate signature failed self-check")
		return nil, ErrSelfCheck
	}

	c.logger.Debug().Str("session", shortID(group)).Int("msg_len", len(message)).Msg("signed message")
	return sig, nil
}

// partialSign runs blind and partial signing for participant i of sess.
func (c *Coordinator) partialSign(sess *Session, i int, message []byte) ([]byte, error) {
	share := sess.Shares[i]
	self, other := sess.IDs[i], sess.IDs[1-i]

	blinded, err := c.scheme.Blind(message, share.Secret, self, other)
	if err != nil {
		return nil, fmt.Errorf("participant %s: blind: %w", self, err)
	}
	defer clear(blinded.Remainder)

	partial, err := c.scheme.SignGroup(blinded.Message, share.Secret)
	if err != nil {
		return nil, fmt.Errorf("participant %s: partial sign: %w", self, err)
	}

	ok, err := c.scheme.VerifyBlinded(blinded.Message, partial, share.Public, sess.Generator)
	if err != nil {
		return nil, fmt.Errorf("participant %s: verify partial: %w", self, err)
	}
	if !ok {
		c.logger.Error().Str("session", shortID(sess.Group)).Stringer("participant", self).
			Msg("partial signature failed self-check")
		return nil, fmt.Errorf("participant %s: %w", self, ErrSelfCheck)
	}
	return partial, nil
}

// Verify checks sig over message against the master public key.
func (c *Coordinator) Verify(message, sig []byte) (ok bool, err error) {
	start := time.Now()
	defer func() { c.recorder.Observe("verify", time.Since(start), err) }()

	return c.scheme.Verify(message, sig, c.key.Public, c.key.Generator)
}

// Audit blinds message for both participants of the session under
// generator and reports whether their remainders restore the master
// secret. The restored value never leaves this function.
func (c *Coordinator) Audit(generator, message []byte) (ok bool, err error) {
	start := time.Now()
	defer func() { c.recorder.Observe("audit", time.Since(start), err) }()

	var remainders [2][]byte
	defer func() {
		clear(remainders[0])
		clear(remainders[1])
	}()
	var group string
	err = c.view(generator, func(sess *Session) error {
		group = sess.Group
		for i, share := range sess.Shares {
			b, err := c.scheme.Blind(message, share.Secret, sess.IDs[i], sess.IDs[1-i])
			if err != nil {
				return fmt.Errorf("participant %s: blind: %w", sess.IDs[i], err)
			}
			remainders[i] = b.Remainder
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	restored, err := c.scheme.Restore(remainders[0], remainders[1])
	if err != nil {
		return false, fmt.Errorf("restore: %w", err)
	}
	defer clear(restored)

	ok = subtle.ConstantTimeCompare(restored, c.key.Secret) == 1
	if !ok {
		c.logger.Error().Str("session", shortID(group)).Msg("restored secret does not match master secret")
	}
	return ok, nil
}

// view runs fn on the session under generator while holding the store's
// read lock, so a concurrent reset cannot zero the shares mid-use. An
// empty generator selects the master generator.
func (c *Coordinator) view(generator []byte, fn func(*Session) error) error {
	if len(generator) == 0 {
		generator = c.key.Generator
	}
	return c.store.View(Descriptor(generator), fn)
}

// Participants returns the pair of the session under generator. An empty
// generator selects the master generator.
func (c *Coordinator) Participants(generator []byte) (ids [2]tbls.ParticipantID, err error) {
	err = c.view(generator, func(sess *Session) error {
		ids = sess.IDs
		return nil
	})
	return ids, err
}
