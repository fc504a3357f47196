package web

import (
	"net/http"
	"strings"

	"github.com/vbonduro/fishedex/internal/service"
)

type catchRequest struct {
	OutingID int64  `json:"outing_id" validate:"required,gt=0"`
	Species  string `json:"species" validate:"required,max=100"`
	Count    int    `json:"count"`
	Notes    string `json:"notes"`
}

type catchUpdateRequest struct {
	Species string `json:"species" validate:"required,max=100"`
	Count   int    `json:"count"`
	Notes   string `json:"notes"`
}

func (s *Server) handleListCatches(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	catches, err := s.svc.Catches.ListCatches(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catches)
}

func (s *Server) handleCreateCatch(w http.ResponseWriter, r *http.Request) {
	var req catchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Species = strings.TrimSpace(req.Species)
	if err := check(req, "Outing ID and species are required"); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Catches.CreateCatch(r.Context(), service.CatchInput{
		OutingID: req.OutingID,
		Species:  req.Species,
		Count:    req.Count,
		Notes:    req.Notes,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleGetCatch(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Catches.GetCatch(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCatch(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req catchUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Species = strings.TrimSpace(req.Species)
	if err := check(req, "Species is required"); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Catches.UpdateCatch(r.Context(), id, service.CatchInput{
		Species: req.Species,
		Count:   req.Count,
		Notes:   req.Notes,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteCatch(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Catches.DeleteCatch(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Catch deleted")
}
