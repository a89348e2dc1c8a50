package handlers

import (
	"net/http"
)

// ============================================================================
// MATCH ENDPOINTS
// ============================================================================

// GetMatches returns the recent matches grid
// @Summary Recent Matches
// @Tags Matches
// @Produce json
// @Success 200 {object} logic.MatchGrid
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /matches [get]
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	grid, err := h.matches.RecentMatches(r.Context())
	if err != nil {
		h.serviceError(w, r, err, "matches")
		return
	}
	h.jsonResponse(w, http.StatusOK, grid)
}

// GetMatch returns one match with its player grid
// @Summary Match Stats
// @Tags Matches
// @Produce json
// @Param matchId path int true "Match ID"
// @Param mode query string false "total, perMatch or perMinute"
// @Param sort query string false "Comma separated columns, '-' for descending"
// @Param q query string false "Username filter"
// @Param team query int false "Team filter"
// @Success 200 {object} logic.MatchStatsView
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /matches/{matchId} [get]
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "matchId", "match")
	if !ok {
		return
	}
	opts, _, ok := h.gridRequest(w, r)
	if !ok {
		return
	}

	view, err := h.matches.MatchStats(r.Context(), id, opts)
	if err != nil {
		h.serviceError(w, r, err, "match", "id", id)
		return
	}
	h.jsonResponse(w, http.StatusOK, view)
}

// GetLeaderboard aggregates recent matches into a rated grid
// @Summary Recent Leaderboard
// @Tags Matches
// @Produce json
// @Param limit query int false "Matches to aggregate (1-50)"
// @Param mode query string false "total, perMatch or perMinute"
// @Param sort query string false "Comma separated columns, '-' for descending"
// @Success 200 {object} logic.LeaderboardView
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /matches/leaderboard [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	opts, limit, ok := h.gridRequest(w, r)
	if !ok {
		return
	}

	view, err := h.matches.Leaderboard(r.Context(), limit, opts)
	if err != nil {
		h.serviceError(w, r, err, "leaderboard", "limit", limit)
		return
	}
	h.jsonResponse(w, http.StatusOK, view)
}
