package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ucycle/pkg/buildinfo"
	"github.com/matzehuels/ucycle/pkg/errors"
	"github.com/matzehuels/ucycle/pkg/io"
	"github.com/matzehuels/ucycle/pkg/pipeline"
	"github.com/matzehuels/ucycle/pkg/ucycle"
)

type errorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

type symbolResponse struct {
	N           int    `json:"n"`
	Index       uint64 `json:"index"`
	Symbol      int    `json:"symbol"`
	Permutation []int  `json:"permutation"`
}

type verifyRequest struct {
	N        int    `json:"n"`
	Strategy string `json:"strategy,omitempty"`
	Symbols  string `json:"symbols"`
}

type rankRequest struct {
	Permutation []int `json:"permutation"`
}

type rankResponse struct {
	Permutation []int                 `json:"permutation"`
	Ranks       []pipeline.RankResult `json:"ranks"`
}

type unrankRequest struct {
	N        int    `json:"n"`
	Strategy string `json:"strategy,omitempty"`
	Rank     uint64 `json:"rank"`
}

type unrankResponse struct {
	N           int             `json:"n"`
	Strategy    ucycle.Strategy `json:"strategy"`
	Rank        uint64          `json:"rank"`
	Permutation []int           `json:"permutation"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleCycle(w http.ResponseWriter, r *http.Request) {
	n, err := pathInt(r, "n")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := pipeline.Options{
		N:        n,
		MaxOrder: s.maxOrder,
		Refresh:  r.URL.Query().Get("refresh") == "true",
		Logger:   s.logger,
	}
	u, err := s.runner.Construct(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		doc, err := io.NewDocument(u, n, ucycle.Canonical.String())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := io.WriteText(u, w); err != nil {
			s.logger.Warn("write cycle", "err", err)
		}
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", r.URL.Query().Get("format")))
	}
}

// handleSymbol answers from the ranking bijection, so it accepts any order up
// to 20 regardless of the construction limit.
func (s *Server) handleSymbol(w http.ResponseWriter, r *http.Request) {
	n, err := pathInt(r, "n")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	i, err := strconv.ParseUint(chi.URLParam(r, "i"), 10, 64)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "index"))
		return
	}
	p, err := ucycle.PermutationAt(n, i)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, symbolResponse{N: n, Index: i, Symbol: p[0], Permutation: p})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := io.DecodeText(req.Symbols)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := pipeline.Options{N: req.N, Strategy: req.Strategy, MaxOrder: s.maxOrder, Logger: s.logger}
	report, err := s.runner.Verify(r.Context(), u, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	ranks, err := s.runner.RankAll(req.Permutation)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rankResponse{Permutation: req.Permutation, Ranks: ranks})
}

func (s *Server) handleUnrank(w http.ResponseWriter, r *http.Request) {
	var req unrankRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	strategy := ucycle.Canonical
	if req.Strategy != "" {
		var err error
		if strategy, err = ucycle.ParseStrategy(req.Strategy); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	ranker, err := ucycle.NewRanker(strategy)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := ranker.Unrank(req.N, req.Rank)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, unrankResponse{N: req.N, Strategy: strategy, Rank: req.Rank, Permutation: p})
}

func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "path parameter %s", name)
	}
	return v, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	id := RequestIDFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", id, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      errors.GetCode(err),
		RequestID: id,
	})
}
