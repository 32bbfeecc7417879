package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/sardine/pkg/buildinfo"
	"github.com/matzehuels/sardine/pkg/errors"
	pkgio "github.com/matzehuels/sardine/pkg/io"
	"github.com/matzehuels/sardine/pkg/lot"
	"github.com/matzehuels/sardine/pkg/pipeline"
	"github.com/matzehuels/sardine/pkg/solver"
	"github.com/matzehuels/sardine/pkg/store"
)

// =============================================================================
// Responses
// =============================================================================

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

type validateResponse struct {
	Valid        bool          `json:"valid"`
	Message      string        `json:"message"`
	UsableEdges  int           `json:"usable_edges"`
	AccessPoints []accessSnap  `json:"access_points,omitempty"`
	Settings     *lot.Settings `json:"settings,omitempty"`
}

type accessSnap struct {
	Location  [3]float64 `json:"location"`
	Direction [3]float64 `json:"direction"`
	Width     float64    `json:"width"`
}

type solveResponse struct {
	ID          string          `json:"id"`
	RequestHash string          `json:"request_hash"`
	Cached      bool            `json:"cached"`
	Stats       lot.Stats       `json:"stats"`
	Warnings    []lot.Warning   `json:"warnings,omitempty"`
	Lot         json.RawMessage `json:"lot"`
}

type listResponse struct {
	Lots []store.Record `json:"lots"`
}

// =============================================================================
// Handlers
// =============================================================================

// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

// POST /v1/validate
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	site, err := s.decodeSite(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := validateResponse{}
	resp.Valid, resp.Message = solver.Validate(site.Boundary)
	if resp.Valid {
		if err := site.Settings.Validate(); err != nil {
			resp.Valid, resp.Message = false, errors.UserMessage(err)
		}
	}
	if resp.Valid {
		resp.UsableEdges = len(solver.UsableEdges(site.Boundary))
		for _, ap := range solver.ResolveAccessPoints(site.AccessPoints, site.Boundary) {
			resp.AccessPoints = append(resp.AccessPoints, accessSnap{
				Location:  [3]float64{ap.Location.X, ap.Location.Y, ap.Location.Z},
				Direction: [3]float64{ap.Direction.X, ap.Direction.Y, ap.Direction.Z},
				Width:     ap.Width,
			})
		}
		resp.Settings = &site.Settings
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /v1/solve[?format=svg&width=1200&labels=true]
//
// Without a format, or with format=json, the response is a solveResponse.
// Otherwise the body is the rendered artifact and the lot ID is in the
// X-Lot-ID header.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	site, err := s.decodeSite(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]
	if format != pipeline.FormatJSON {
		opts.Formats = append(opts.Formats, pipeline.FormatJSON)
	}

	result, err := s.runner.Execute(r.Context(), solver.Request{
		Boundary:     site.Boundary,
		AccessPoints: site.AccessPoints,
		AxialLines:   site.AxialLines,
		Settings:     site.Settings,
	}, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.store.Save(r.Context(), &store.Record{
		Name:        site.Name,
		RequestHash: result.RequestHash,
		Stats:       result.Stats.Stats,
		Lot:         result.Artifacts[pipeline.FormatJSON],
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Debug("stored lot", "id", rec.ID, "spots", rec.Stats.Spots)

	w.Header().Set("Location", "/v1/lots/"+rec.ID)
	w.Header().Set("X-Lot-ID", rec.ID)
	if format != pipeline.FormatJSON {
		writeArtifact(w, http.StatusCreated, format, result.Artifacts[format])
		return
	}
	writeJSON(w, http.StatusCreated, solveResponse{
		ID:          rec.ID,
		RequestHash: rec.RequestHash,
		Cached:      result.CacheInfo.SolveHit,
		Stats:       rec.Stats,
		Warnings:    result.Lot.Warnings,
		Lot:         json.RawMessage(rec.Lot),
	})
}

// GET /v1/lots[?limit=n]
func (s *Server) handleListLots(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer, got %q", v))
			return
		}
		limit = n
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, listResponse{Lots: recs})
}

// GET /v1/lots/{id}
func (s *Server) handleGetLot(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lookup(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeArtifact(w, http.StatusOK, pipeline.FormatJSON, rec.Lot)
}

// GET /v1/lots/{id}/render[?format=svg&width=1200]
func (s *Server) handleRenderLot(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lookup(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pl, err := pkgio.ReadLot(bytes.NewReader(rec.Lot))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "decode stored lot %s", rec.ID))
		return
	}
	artifacts, err := s.runner.Render(r.Context(), pl, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]
	writeArtifact(w, http.StatusOK, format, artifacts[format])
}

// DELETE /v1/lots/{id}
func (s *Server) handleDeleteLot(w http.ResponseWriter, r *http.Request) {
	id, err := lotID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) decodeSite(w http.ResponseWriter, r *http.Request) (*pkgio.Site, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	return pkgio.ReadSiteWith(body, s.settings)
}

func (s *Server) lookup(r *http.Request) (*store.Record, error) {
	id, err := lotID(r)
	if err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), id)
}

// lotID reads the {id} path parameter. Obviously malformed values are
// rejected before the uuid parse so the error names the problem.
func lotID(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "id")
	if err := errors.ValidateLotID(raw); err != nil {
		return "", err
	}
	return store.ParseID(raw)
}

// renderOptions reads render options from the query string. A request names
// a single format; json is the default.
func renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Formats: []string{pipeline.FormatJSON}}
	if f := strings.TrimSpace(q.Get("format")); f != "" {
		opts.Formats = []string{strings.ToLower(f)}
	}
	if v := q.Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "width must be an integer, got %q", v)
		}
		opts.Width = n
	}
	for name, dst := range map[string]*bool{"labels": &opts.Labels, "skirt": &opts.Skirt, "edges": &opts.Edges} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
			}
			*dst = b
		}
	}
	return opts, errors.ValidateFormats(opts.Formats, pipeline.ValidFormats...)
}
