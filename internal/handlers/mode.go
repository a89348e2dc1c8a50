package handlers

import (
	"net/http"

	"github.com/fireballs/brady-stats/internal/logic"
)

type modeResponse struct {
	Mode      logic.Mode `json:"mode"`
	Label     string     `json:"label"`
	GridLabel string     `json:"gridLabel"`
}

func newModeResponse(m logic.Mode) modeResponse {
	return modeResponse{Mode: m, Label: m.Label(), GridLabel: m.GridLabel()}
}

// GetMode returns the shared normalization mode
// @Summary Current Stat Mode
// @Tags Mode
// @Produce json
// @Success 200 {object} modeResponse
// @Failure 502 {object} map[string]string "Mode store unavailable"
// @Router /mode [get]
func (h *Handler) GetMode(w http.ResponseWriter, r *http.Request) {
	m, err := h.modes.Current(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to read stat mode", "error", err)
		h.errorResponse(w, http.StatusBadGateway, "Failed to read stat mode")
		return
	}
	h.jsonResponse(w, http.StatusOK, newModeResponse(m))
}

// CycleMode advances total -> perMatch -> perMinute -> total
// @Summary Cycle Stat Mode
// @Tags Mode
// @Produce json
// @Success 200 {object} modeResponse
// @Failure 502 {object} map[string]string "Mode store unavailable"
// @Router /mode/cycle [post]
func (h *Handler) CycleMode(w http.ResponseWriter, r *http.Request) {
	m, err := h.modes.Cycle(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to cycle stat mode", "error", err)
		h.errorResponse(w, http.StatusBadGateway, "Failed to cycle stat mode")
		return
	}
	h.logger.Infow("Stat mode cycled", "mode", m.String())
	h.jsonResponse(w, http.StatusOK, newModeResponse(m))
}

// GetIndexLegend returns the MVP index colour table
// @Summary MVP Index Legend
// @Tags Mode
// @Produce json
// @Success 200 {array} logic.IndexLegendEntry
// @Router /index-legend [get]
func (h *Handler) GetIndexLegend(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, logic.IndexLegend)
}
