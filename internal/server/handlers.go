package server

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/partsight/insight-cli/internal/model"
)

// envelope is the response wrapper every endpoint uses.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: emptyIfNilSlice(data)})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

// emptyIfNilSlice keeps "no rows" serializing as [] rather than null.
func emptyIfNilSlice(data any) any {
	rv := reflect.ValueOf(data)
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return reflect.MakeSlice(rv.Type(), 0, 0).Interface()
	}
	return data
}

// parseFilter reads the insurer and date-range query parameters shared by
// every pattern endpoint. Dates are YYYY-MM-DD; the end date is inclusive.
func parseFilter(r *http.Request) (model.FilterSpec, error) {
	var filter model.FilterSpec
	q := r.URL.Query()

	if raw := q.Get("insurer"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, errBadParam("insurer")
		}
		filter.InsurerID = &id
	}
	if raw := q.Get("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errBadParam("start_date")
		}
		filter.StartDate = &t
	}
	if raw := q.Get("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errBadParam("end_date")
		}
		filter.EndDate = &t
	}
	return filter, nil
}

type badParamError string

func (e badParamError) Error() string { return "invalid query parameter: " + string(e) }

func errBadParam(name string) error { return badParamError(name) }

// handle adapts an engine method into a pattern endpoint: parse the filter,
// run the analyzer, wrap the result.
func handle[T any](s *Server, fn func(context.Context, model.FilterSpec) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		data, err := fn(r.Context(), filter)
		if err != nil {
			zap.L().Error("server: analyzer failed",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			writeError(w, http.StatusInternalServerError, "analysis failed")
			return
		}
		writeData(w, data)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.source.Ping(r.Context()); err != nil {
		zap.L().Error("server: health check failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	writeData(w, map[string]string{"status": "ok"})
}

func (s *Server) handleInsurers(w http.ResponseWriter, r *http.Request) {
	insurers, err := s.source.ListInsurers(r.Context())
	if err != nil {
		zap.L().Error("server: list insurers failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "listing insurers failed")
		return
	}
	writeData(w, insurers)
}
