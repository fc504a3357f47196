package web

import (
	"net/http"
	"strings"

	"github.com/vbonduro/fishedex/internal/service"
)

type outingRequest struct {
	UserID         int64  `json:"user_id" validate:"required,gt=0"`
	LocationID     int64  `json:"location_id" validate:"gte=0"`
	OutingDate     string `json:"outing_date" validate:"required,datetime=2006-01-02"`
	WorthReturning bool   `json:"worth_returning"`
	FieldNotes     string `json:"field_notes"`
	MVPLure        string `json:"mvp_lure" validate:"max=200"`
}

func (req outingRequest) input() service.OutingInput {
	return service.OutingInput{
		UserID:         req.UserID,
		LocationID:     req.LocationID,
		OutingDate:     req.OutingDate,
		WorthReturning: req.WorthReturning,
		FieldNotes:     req.FieldNotes,
		MVPLure:        req.MVPLure,
	}
}

// calendarDate trims an ISO timestamp ("2024-06-01T00:00:00.000Z") down to
// its date part.
func calendarDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 && s[10] == 'T' {
		return s[:10]
	}
	return s
}

func (s *Server) decodeOuting(w http.ResponseWriter, r *http.Request) (outingRequest, error) {
	var req outingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return req, err
	}
	req.OutingDate = calendarDate(req.OutingDate)
	return req, check(req, "User's ID and the date are required")
}

func (s *Server) handleCreateOuting(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeOuting(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	o, err := s.svc.Outings.CreateOuting(r.Context(), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) handleListOutings(w http.ResponseWriter, r *http.Request) {
	outings, err := s.svc.Outings.ListOutings(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outings)
}

func (s *Server) handleOutingsWithLocations(w http.ResponseWriter, r *http.Request) {
	rows, err := s.svc.Outings.ListOutingsWithLocations(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleGetOuting(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	o, err := s.svc.Outings.GetOuting(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleUpdateOuting(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := s.decodeOuting(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	o, err := s.svc.Outings.UpdateOuting(r.Context(), id, req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleDeleteOuting(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Outings.DeleteOuting(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Outing deleted")
}

func (s *Server) handleOutingWeather(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := s.svc.Outings.OutingWeather(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
