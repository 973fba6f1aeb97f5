package api

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/f3rmion/tbls/session"
	"github.com/f3rmion/tbls/tbls"
)

const maxBodyBytes = 1 << 20

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleNew handles GET /new. The master secret never leaves the server.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NewResponse{
		PublicKey: hex.EncodeToString(s.coord.PublicKey()),
		Generator: hex.EncodeToString(s.coord.Generator()),
	})
}

// handleDerive handles POST /derive
func (s *Server) handleDerive(w http.ResponseWriter, r *http.Request) {
	var req DeriveRequest
	if !s.decode(w, r, &req) {
		return
	}
	g, err := decodeHex("g", req.Generator)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ids := s.defaultPair
	if len(req.IDs) > 0 {
		if ids, err = parsePair(req.IDs); err != nil {
			s.writeError(w, err)
			return
		}
	}

	if _, err := s.coord.Derive(g, ids); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Result: true})
}

// handleSign handles POST /sign
func (s *Server) handleSign(w http.ResponseWriter, r *http.Request) {
	var req SignRequest
	if !s.decode(w, r, &req) {
		return
	}
	g, err := decodeHex("g", req.Generator)
	if err != nil {
		s.writeError(w, err)
		return
	}
	msg, err := decodeHex("msg", req.Message)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(req.IDs) > 0 {
		want, err := parsePair(req.IDs)
		if err != nil {
			s.writeError(w, err)
			return
		}
		have, err := s.coord.Participants(g)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if !samePair(want, have) {
			s.writeError(w, fmt.Errorf("%w: no pair %s,%s for this generator", session.ErrUnknownSession, want[0], want[1]))
			return
		}
	}

	sig, err := s.coord.Sign(r.Context(), g, msg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SignResponse{Signature: hex.EncodeToString(sig)})
}

// handleVerify handles POST /verify
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !s.decode(w, r, &req) {
		return
	}
	sig, err := decodeHex("sig", req.Signature)
	if err != nil {
		s.writeError(w, err)
		return
	}
	msg, err := decodeHex("msg", req.Message)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ok, err := s.coord.Verify(msg, sig)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Result: ok})
}

// handleAudit handles POST /audit
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	var req AuditRequest
	if !s.decode(w, r, &req) {
		return
	}
	g, err := decodeHex("g", req.Generator)
	if err != nil {
		s.writeError(w, err)
		return
	}
	msg, err := decodeHex("msg", req.Message)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ok, err := s.coord.Audit(g, msg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Result: ok})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, fmt.Errorf("%w: request body: %v", tbls.ErrInvalidInput, err))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tbls.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrUnknownSession):
		return http.StatusNotFound
	case errors.Is(err, session.ErrDeriveInFlight):
		return http.StatusConflict
	case errors.Is(err, tbls.ErrRandomnessUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeHex(field, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid hex", tbls.ErrInvalidInput, field)
	}
	return b, nil
}

func parsePair(ids []uint64) ([2]tbls.ParticipantID, error) {
	if len(ids) != 2 {
		return [2]tbls.ParticipantID{}, fmt.Errorf("%w: expected 2 participant ids, got %d", tbls.ErrInvalidInput, len(ids))
	}
	return [2]tbls.ParticipantID{tbls.ParticipantID(ids[0]), tbls.ParticipantID(ids[1])}, nil
}

func samePair(a, b [2]tbls.ParticipantID) bool {
	return a == b || (a[0] == b[1] && a[1] == b[0])
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
