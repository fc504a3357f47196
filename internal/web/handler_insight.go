package web

import "net/http"

func (s *Server) handleFishCaught(w http.ResponseWriter, r *http.Request) {
	rows, err := s.svc.Insights.FishCaught(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleBestSpots(w http.ResponseWriter, r *http.Request) {
	spots, err := s.svc.Insights.BestSpots(r.Context(), r.URL.Query().Get("species"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spots)
}
