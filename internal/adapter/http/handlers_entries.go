package adapthttp

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		rangeKey := rangeQuery(r)
		limit := intQuery(r, "limit", 0)
		items, err := s.entries.List(ctx, rangeKey, limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"range": rangeKey, "items": items})

	case http.MethodPost:
		var body struct {
			Date      string  `json:"date"`
			Time      string  `json:"time"`
			WeightLbs float64 `json:"weightLbs"`
			Notes     string  `json:"notes"`
			Range     string  `json:"range"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if body.Range == "" {
			body.Range = "30d"
		}
		id, items, err := s.entries.Create(ctx, body.Date, body.Time, body.WeightLbs, body.Notes, body.Range)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "range": body.Range, "items": items})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleEntryByID serves /entries/{id}, /entries/{id}/delete and
// /entries/{id}/restore.
func (s *Server) handleEntryByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rest := strings.TrimPrefix(r.URL.Path, "/entries/")
	idPart, action, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("invalid entry id"))
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		entry, err := s.entries.Get(ctx, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})

	case action == "" && r.Method == http.MethodPut:
		var body struct {
			Date      string  `json:"date"`
			Time      string  `json:"time"`
			WeightLbs float64 `json:"weightLbs"`
			Notes     string  `json:"notes"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := s.entries.Update(ctx, id, body.Date, body.Time, body.WeightLbs, body.Notes)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})

	case action == "delete" && r.Method == http.MethodPost:
		if err := s.entries.SoftDelete(ctx, id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	case action == "restore" && r.Method == http.MethodPost:
		if err := s.entries.Restore(ctx, id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
