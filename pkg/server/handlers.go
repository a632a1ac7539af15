package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/vango-dev/vglob"
	"github.com/vango-dev/vglob/internal/errors"
)

// globRequest is the body of every /v1 POST endpoint.
type globRequest struct {
	Pattern string         `json:"pattern"`
	Options *vglob.Options `json:"options,omitempty"`
	Paths   []string       `json:"paths,omitempty"`
}

// CompileResponse is returned by POST /v1/compile.
type CompileResponse struct {
	Source     string `json:"source"`
	IgnoreCase bool   `json:"ignoreCase"`
	Negated    bool   `json:"negated"`
}

// MatchResponse is returned by POST /v1/match.
type MatchResponse struct {
	Matches []string `json:"matches"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	p, ok := s.compile(w, r, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, CompileResponse{
		Source:     p.Source(),
		IgnoreCase: p.IgnoreCase(),
		Negated:    p.Negated(),
	})
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, vglob.Split(req.Pattern, s.options(req.Options)))
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	if limit := s.config.Server.MaxPaths; limit > 0 && len(req.Paths) > limit {
		writeError(w, http.StatusRequestEntityTooLarge, errors.New("E203").
			WithDetail("The request carries "+strconv.Itoa(len(req.Paths))+" paths; at most "+strconv.Itoa(limit)+" are allowed.").
			WithSuggestion("Split the paths over several requests"))
		return
	}
	p, ok := s.compile(w, r, req)
	if !ok {
		return
	}

	matches := make([]string, 0, len(req.Paths))
	for _, path := range req.Paths {
		matched := p.Match(path)
		s.metrics.RecordMatch(matched)
		if matched {
			matches = append(matches, path)
		}
	}
	writeJSON(w, http.StatusOK, MatchResponse{Matches: matches})
}

// decode reads a globRequest and writes the error response itself when the
// body is unusable.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*globRequest, bool) {
	var req globRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("E201").
			WithExample(`{"pattern": "src/**/*.go", "options": {"dot": true}}`).
			Wrap(err))
		return nil, false
	}
	if req.Pattern == "" {
		writeError(w, http.StatusBadRequest, errors.New("E202").
			WithExample(`{"pattern": "*.md"}`))
		return nil, false
	}
	return &req, true
}

func (s *Server) compile(w http.ResponseWriter, r *http.Request, req *globRequest) (*vglob.Pattern, bool) {
	p, err := s.compiler.CompileWith(r.Context(), req.Pattern, s.options(req.Options))
	if err != nil {
		s.logger.Error("compile failed", "pattern", req.Pattern, "error", err)
		writeError(w, http.StatusInternalServerError, errors.FromError(err, "E010"))
		return nil, false
	}
	return p, true
}

// options returns the request options, or the configured defaults.
func (s *Server) options(opts *vglob.Options) vglob.Options {
	if opts == nil {
		return s.compiler.Options()
	}
	return *opts
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err *errors.GlobError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, err.FormatJSON())
}
