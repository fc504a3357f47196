package web

import (
	"net/http"
	"strings"

	"github.com/vbonduro/fishedex/internal/service"
)

type locationRequest struct {
	Name     string `json:"location_name" validate:"required,max=200"`
	Region   string `json:"region" validate:"max=200"`
	Pinpoint string `json:"pinpoint" validate:"max=100"`
	IsSecret bool   `json:"is_secret"`
	Lore     string `json:"lore"`
}

func (req locationRequest) input() service.LocationInput {
	return service.LocationInput{
		Name:     strings.TrimSpace(req.Name),
		Region:   req.Region,
		Pinpoint: strings.TrimSpace(req.Pinpoint),
		IsSecret: req.IsSecret,
		Lore:     req.Lore,
	}
}

func (s *Server) decodeLocation(w http.ResponseWriter, r *http.Request, requiredMsg string) (locationRequest, error) {
	var req locationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return req, err
	}
	req.Name = strings.TrimSpace(req.Name)
	return req, check(req, requiredMsg)
}

func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeLocation(w, r, "Must name the spot")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	loc, err := s.svc.Locations.CreateLocation(r.Context(), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, loc)
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := s.svc.Locations.ListLocations(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	loc, err := s.svc.Locations.GetLocation(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (s *Server) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := s.decodeLocation(w, r, "Location name is required")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	loc, err := s.svc.Locations.UpdateLocation(r.Context(), id, req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Locations.DeleteLocation(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Location deleted")
}
