package controllers

import (
	"net/http"
	"strconv"

	"github.com/glucheck/backend/services"
)

// StatsController serves the summary and dashboard rollups.
type StatsController struct {
	stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// Summary handles GET /summary.
func (c *StatsController) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	summary, err := c.stats.Summary(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// Dashboard handles GET /dashboard?chart_param=&points=. An unrecognized
// chart_param still yields a well-formed series, just with null values.
func (c *StatsController) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	field := services.ParseChartField(r.URL.Query().Get("chart_param"))

	points := services.DefaultChartPoints
	if raw := r.URL.Query().Get("points"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			respondError(w, http.StatusBadRequest, "points must be a positive integer")
			return
		}
		points = v
	}

	dashboard, err := c.stats.Dashboard(r.Context(), userID, field, points)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}
