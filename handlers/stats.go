package handlers

import (
	"log"
	"net/http"

	"academy-backend/database"
)

type StatsHandler struct {
	stats *database.StatsReader
}

func NewStatsHandler(stats *database.StatsReader) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetStats возвращает сводку для дашборда
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	overview, err := h.stats.Overview()
	if err != nil {
		log.Printf("❌ Error loading stats overview: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	loads, err := h.stats.TeacherLoads()
	if err != nil {
		log.Printf("❌ Error loading teacher loads: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"overview":      overview,
		"teacher_loads": loads,
	})
}
