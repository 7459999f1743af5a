package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/report"
)

// Reports computes the dashboard views. Implemented by report.Service.
type Reports interface {
	Codec() domain.AreaCodec
	Areas(ctx context.Context, kind report.Kind) ([]report.AreaOption, error)
	Validation(ctx context.Context, area domain.AreaID) (*report.Validation, error)
	ShortTermTable(ctx context.Context) (*report.ShortTermTable, error)
	ShortTermArea(ctx context.Context, area domain.AreaID) (*report.ShortTermArea, error)
	LongTermTable(ctx context.Context) (*report.LongTermTable, error)
	LongTermArea(ctx context.Context, area domain.AreaID) (*report.LongTermArea, error)
}

func (s *Server) handleAreas(kind report.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		areas, err := s.reports.Areas(r.Context(), kind)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"kind": kind, "areas": areas})
	}
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	serveArea(s, w, r, s.reports.Validation)
}

func (s *Server) handleShortTermTable(w http.ResponseWriter, r *http.Request) {
	serveTable(s, w, r, s.reports.ShortTermTable)
}

func (s *Server) handleShortTermArea(w http.ResponseWriter, r *http.Request) {
	serveArea(s, w, r, s.reports.ShortTermArea)
}

func (s *Server) handleLongTermTable(w http.ResponseWriter, r *http.Request) {
	serveTable(s, w, r, s.reports.LongTermTable)
}

func (s *Server) handleLongTermArea(w http.ResponseWriter, r *http.Request) {
	serveArea(s, w, r, s.reports.LongTermArea)
}

func serveTable[T any](s *Server, w http.ResponseWriter, r *http.Request, compute func(context.Context) (*T, error)) {
	out, err := compute(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// serveArea decodes the {area} display label, e.g. "Dwelling 3", before computing.
func serveArea[T any](s *Server, w http.ResponseWriter, r *http.Request, compute func(context.Context, domain.AreaID) (*T, error)) {
	area, err := s.reports.Codec().Decode(r.PathValue("area"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := compute(r.Context(), area)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, report.ErrDataset):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrFormat):
		return http.StatusBadRequest
	case errors.Is(err, report.ErrAreaNotFound), errors.Is(err, report.ErrUnknownKind):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptySeries), errors.Is(err, domain.ErrShape):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
