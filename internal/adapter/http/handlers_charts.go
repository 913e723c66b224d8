package adapthttp

import (
	"net/http"

	"healthlog/internal/domain"
)

func (s *Server) handleChartsDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rangeKey := rangeQuery(r)
	points, err := s.charts.DailySeries(r.Context(), rangeKey)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if points == nil {
		points = []domain.SeriesPoint{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"range": rangeKey, "items": points})
}
