package adapthttp

import (
	"errors"
	"net/http"
)

func (s *Server) handleDayFlags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		date := r.URL.Query().Get("date")
		if date == "" {
			writeError(w, http.StatusBadRequest, errors.New("date is required"))
			return
		}
		flags, err := s.flags.Get(ctx, date)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"flags": flags})

	case http.MethodPut:
		var body struct {
			Date       string `json:"date"`
			DidWorkout bool   `json:"didWorkout"`
			DidWalk    bool   `json:"didWalk"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		flags, err := s.flags.Set(ctx, body.Date, body.DidWorkout, body.DidWalk)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"flags": flags})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
