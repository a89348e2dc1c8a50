package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fireballs/brady-stats/internal/logic"
)

// gridQuery holds the query parameters shared by every grid endpoint.
type gridQuery struct {
	Mode  string `validate:"omitempty,oneof=total perMatch perMinute"`
	Sort  string `validate:"omitempty,max=256"`
	Query string `validate:"omitempty,max=64"`
	Team  *int   `validate:"omitempty,min=0"`
	Limit int    `validate:"omitempty,min=1,max=50"`
}

func parseGridQuery(r *http.Request) (gridQuery, error) {
	q := r.URL.Query()
	out := gridQuery{
		Mode:  q.Get("mode"),
		Sort:  q.Get("sort"),
		Query: q.Get("q"),
	}
	if v := q.Get("team"); v != "" {
		team, err := strconv.Atoi(v)
		if err != nil {
			return out, fmt.Errorf("team must be an integer")
		}
		out.Team = &team
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit == 0 {
			return out, fmt.Errorf("limit must be between 1 and 50")
		}
		out.Limit = limit
	}
	return out, nil
}

// validationMessage turns validator errors into a short client message.
func validationMessage(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Field() {
		case "Mode":
			return "mode must be one of total, perMatch, perMinute"
		case "Limit":
			return "limit must be between 1 and 50"
		case "Team":
			return "team must not be negative"
		}
		return fmt.Sprintf("invalid %s", fe.Field())
	}
	return "invalid query parameters"
}

// mode resolves the requested mode, falling back to the shared mode cell.
func (h *Handler) mode(r *http.Request, requested string) logic.Mode {
	if requested != "" {
		if m, err := logic.ParseMode(requested); err == nil {
			return m
		}
	}
	m, err := h.modes.Current(r.Context())
	if err != nil {
		h.logger.Warnw("Failed to read shared mode, using total", "error", err)
		return logic.ModeTotal
	}
	return m
}

// gridRequest parses and validates grid query parameters. On failure it has
// already written a 400 response.
func (h *Handler) gridRequest(w http.ResponseWriter, r *http.Request) (logic.GridOptions, int, bool) {
	q, err := parseGridQuery(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return logic.GridOptions{}, 0, false
	}
	if err := h.validator.Struct(q); err != nil {
		h.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return logic.GridOptions{}, 0, false
	}
	keys, err := logic.ParseSort(q.Sort)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return logic.GridOptions{}, 0, false
	}
	return logic.GridOptions{
		Mode:  h.mode(r, q.Mode),
		Sort:  keys,
		Query: q.Query,
		Team:  q.Team,
	}, q.Limit, true
}

// pathID reads a positive integer URL parameter. On failure it has already
// written a 400 response.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name, what string) (int, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing "+what+" ID")
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		h.errorResponse(w, http.StatusBadRequest, "Invalid "+what+" ID")
		return 0, false
	}
	return id, true
}

// pathUUID reads a player UUID URL parameter, dashed or not.
func (h *Handler) pathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := chi.URLParam(r, name)
	u, err := uuid.Parse(raw)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid player UUID")
		return "", false
	}
	return u.String(), true
}
