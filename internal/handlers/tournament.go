package handlers

import (
	"net/http"
)

// ============================================================================
// TOURNAMENT ENDPOINTS
// ============================================================================

// GetTournaments returns list of tournaments
// @Summary List Tournaments
// @Tags Tournaments
// @Produce json
// @Success 200 {array} logic.TournamentSummary
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /tournaments [get]
func (h *Handler) GetTournaments(w http.ResponseWriter, r *http.Request) {
	list, err := h.tournaments.Tournaments(r.Context())
	if err != nil {
		h.serviceError(w, r, err, "tournaments")
		return
	}
	h.jsonResponse(w, http.StatusOK, list)
}

// GetTournament returns details
// @Summary Get Tournament Details
// @Tags Tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Param mode query string false "total, perMatch or perMinute"
// @Success 200 {object} logic.TournamentView
// @Failure 404 {object} map[string]string "Not Found"
// @Router /tournaments/{id} [get]
func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "tournament")
	if !ok {
		return
	}
	opts, _, ok := h.gridRequest(w, r)
	if !ok {
		return
	}

	t, err := h.tournaments.Tournament(r.Context(), id, opts)
	if err != nil {
		h.serviceError(w, r, err, "tournament", "id", id)
		return
	}
	h.jsonResponse(w, http.StatusOK, t)
}

// GetTournamentPlayer returns a player's hover card
// @Summary Tournament Player Card
// @Tags Tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Param uuid path string true "Player UUID"
// @Param mode query string false "total, perMatch or perMinute"
// @Success 200 {object} logic.HoverCard
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /tournaments/{id}/players/{uuid} [get]
func (h *Handler) GetTournamentPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "tournament")
	if !ok {
		return
	}
	playerID, ok := h.pathUUID(w, r, "uuid")
	if !ok {
		return
	}
	opts, _, ok := h.gridRequest(w, r)
	if !ok {
		return
	}

	card, err := h.tournaments.PlayerCard(r.Context(), id, playerID, opts.Mode)
	if err != nil {
		h.serviceError(w, r, err, "player", "id", id, "uuid", playerID)
		return
	}
	h.jsonResponse(w, http.StatusOK, card)
}
