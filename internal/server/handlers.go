package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/albumgrid/pkg/buildinfo"
	"github.com/matzehuels/albumgrid/pkg/errors"
	"github.com/matzehuels/albumgrid/pkg/grid"
	"github.com/matzehuels/albumgrid/pkg/io"
	"github.com/matzehuels/albumgrid/pkg/media"
	"github.com/matzehuels/albumgrid/pkg/observability"
	"github.com/matzehuels/albumgrid/pkg/pipeline"
)

// request is the body of every /v1 route.
type request struct {
	Items        json.RawMessage `json:"items"`
	Params       grid.Params     `json:"params"`
	MaxGroupSize int             `json:"max_group_size"`
	Refresh      bool            `json:"refresh"`
}

type layoutResponse struct {
	Layout grid.Layout `json:"layout"`
	Cached bool        `json:"cached"`
}

type planResponse struct {
	Plan        grid.Plan `json:"plan"`
	Description string    `json:"description"`
}

type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	items, opts, err := s.decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, hit, err := s.runner.Layout(r.Context(), items, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, layoutResponse{Layout: l, Cached: hit})
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	items, opts, err := s.decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), items, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	items, opts, err := s.decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(items) > opts.MaxGroupSize {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput,
			"a group holds at most %d items, got %d", opts.MaxGroupSize, len(items)))
		return
	}
	plan := grid.New(opts.Params).Plan(items)
	s.writeJSON(w, http.StatusOK, planResponse{Plan: plan, Description: plan.String()})
}

// decode reads the request body on top of the server defaults.
func (s *Server) decode(r *http.Request) ([]media.Item, pipeline.Options, error) {
	req := request{
		Params:       s.defaults.Params,
		MaxGroupSize: s.defaults.MaxGroupSize,
	}
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return nil, pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	if len(req.Items) == 0 {
		return nil, pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "items is required")
	}
	items, err := io.ReadItems(bytes.NewReader(req.Items), io.FormatJSON)
	if err != nil {
		return nil, pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Params:       req.Params,
		MaxGroupSize: req.MaxGroupSize,
		Refresh:      req.Refresh,
		TTL:          s.defaults.TTL,
		Logger:       s.logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, pipeline.Options{}, err
	}
	return items, opts, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.IsClientError(err) {
		status = http.StatusBadRequest
	}
	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
	} else {
		s.logger.Debug("bad request", "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, body)
}

// observe reports every request to the server hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}
