package proof

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves proof material over HTTP.
type Server struct {
	reader LedgerReader
	server *http.Server
	log    *slog.Logger
}

// NewServer creates a proof server on the given port.
func NewServer(reader LedgerReader, port int) *Server {
	mux := http.NewServeMux()
	s := &Server{
		reader: reader,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
		log: slog.Default().With("component", "proof"),
	}

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /movement/v1/state-root-hash/{height}", s.handleStateRootHash)
	mux.HandleFunc("GET /movement/v1/state-proof/{height}", s.handleStateProof)
	mux.HandleFunc("GET /movement/v1/account-proof/{addr}/{height}", s.handleAccountProof)
	mux.HandleFunc("GET /movement/v1/resource-proof/{key}/{addr}/{height}", s.handleResourceProof)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info("proof server listening", "addr", s.server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleStateRootHash(w http.ResponseWriter, r *http.Request) {
	height, ok := s.height(w, r)
	if !ok {
		return
	}
	root, err := s.reader.StateRootHash(r.Context(), height)
	if err != nil {
		s.fail(w, "state root hash", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"height":          height,
		"state_root_hash": root.String(),
	})
}

func (s *Server) handleStateProof(w http.ResponseWriter, r *http.Request) {
	height, ok := s.height(w, r)
	if !ok {
		return
	}
	proof, err := s.reader.StateProof(r.Context(), height)
	if err != nil {
		s.fail(w, "state proof", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"height": height,
		"proof":  string(proof),
	})
}

func (s *Server) handleAccountProof(w http.ResponseWriter, r *http.Request) {
	height, ok := s.height(w, r)
	if !ok {
		return
	}
	addr := r.PathValue("addr")
	proof, err := s.reader.AccountProof(r.Context(), addr, height)
	if err != nil {
		s.fail(w, "account proof", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"address": addr,
		"height":  height,
		"proof":   string(proof),
	})
}

func (s *Server) handleResourceProof(w http.ResponseWriter, r *http.Request) {
	height, ok := s.height(w, r)
	if !ok {
		return
	}
	key := r.PathValue("key")
	addr := r.PathValue("addr")
	proof, err := s.reader.ResourceProof(r.Context(), key, addr, height)
	if err != nil {
		s.fail(w, "resource proof", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"key":     key,
		"address": addr,
		"height":  height,
		"proof":   string(proof),
	})
}

func (s *Server) height(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	height, err := strconv.ParseUint(r.PathValue("height"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid height",
		})
		return 0, false
	}
	return height, true
}

func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	s.log.Error("proof request failed", "what", what, "error", err)
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
