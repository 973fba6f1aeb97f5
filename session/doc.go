// Package session keeps the per-session state of the two-party threshold
// protocol in package tbls and drives both participants on behalf of a
// coordinator that holds the master key.
//
// The protocol itself is stateless. What needs bookkeeping is which pair
// of shares belongs to which session: shares derived from different
// randomness are mutually incompatible, so a session must be derived at
// most once at a time and signers must never observe half of a reset.
//
// # Store
//
// [Store] maps (descriptor, participant id) to derived shares. The
// descriptor is the hex encoding of the generator the pair was derived
// under. Signers read under a shared lock through [Store.View]; a
// derivation replaces both shares of a session under the exclusive lock.
//
// # Coordinator
//
//	store := session.NewStore()
//	c, err := session.NewCoordinator(scheme, key, store, logger)
//	if err != nil {
//		return err
//	}
//
//	// Derive a pair for participants 1 and 2 under the master generator.
//	if _, err := c.Derive(c.Generator(), [2]tbls.ParticipantID{1, 2}); err != nil {
//		return err
//	}
//
//	// Blind, partially sign, aggregate and self-check.
//	sig, err := c.Sign(ctx, c.Generator(), message)
//
//	// Check the aggregate against the master key.
//	ok, err := c.Verify(message, sig)
//
// Deriving again for the same descriptor is an explicit reset; concurrent
// derivations for one descriptor collapse into one.
//
// # Transport Agnostic
//
// This package does not handle network communication; see internal/api
// for the HTTP surface.
package session
