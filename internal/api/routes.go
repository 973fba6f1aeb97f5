package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// setupRoutes configures all HTTP routes for the API server
func (s *Server) setupRoutes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/new", s.handleNew).Methods(http.MethodGet)
	r.HandleFunc("/derive", s.handleDerive).Methods(http.MethodPost)
	r.HandleFunc("/sign", s.handleSign).Methods(http.MethodPost)
	r.HandleFunc("/verify", s.handleVerify).Methods(http.MethodPost)
	r.HandleFunc("/audit", s.handleAudit).Methods(http.MethodPost)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics).Methods(http.MethodGet)
	}

	r.Use(s.logRequests)
	return r
}
