package api

import (
	"context"

	"github.com/f3rmion/tbls/session"
	"github.com/f3rmion/tbls/tbls"
)

// Coordinator defines the methods needed by the API server.
type Coordinator interface {
	PublicKey() []byte
	Generator() []byte
	Derive(generator []byte, ids [2]tbls.ParticipantID) (*session.Session, error)
	Participants(generator []byte) ([2]tbls.ParticipantID, error)
	Sign(ctx context.Context, generator, message []byte) ([]byte, error)
	Verify(message, sig []byte) (bool, error)
	Audit(generator, message []byte) (bool, error)
}

var _ Coordinator = (*session.Coordinator)(nil)
