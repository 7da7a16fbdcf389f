package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tiesadafc/teamapp/internal/domain"
	"github.com/tiesadafc/teamapp/internal/service"
)

// MatchHandler handles the match schedule endpoints.
type MatchHandler struct {
	svc *service.MatchService
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(svc *service.MatchService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

// List handles GET /matches.
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.svc.ListMatches(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, matches)
}

// Get handles GET /matches/{matchID}.
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	match, err := h.svc.GetMatch(r.Context(), matchID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, match)
}

// Create handles POST /matches.
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateMatchInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}

	match, err := h.svc.CreateMatch(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, match)
}

// Update handles PATCH /matches/{matchID}.
func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.UpdateMatchInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}

	match, err := h.svc.UpdateMatch(r.Context(), matchID, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, match)
}

// Delete handles DELETE /matches/{matchID}.
func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.DeleteMatch(r.Context(), matchID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}

// ToggleAttendance handles POST /matches/{matchID}/attendance.
func (h *MatchHandler) ToggleAttendance(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	matchID, err := matchIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	match, err := h.svc.ToggleAttendance(r.Context(), matchID, playerID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, match)
}

// SetLineup handles PUT /matches/{matchID}/lineup.
func (h *MatchHandler) SetLineup(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var lineup domain.Lineup
	if err := DecodeJSON(r, &lineup); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}

	match, err := h.svc.SetLineup(r.Context(), matchID, lineup)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, match)
}

// Finalize handles POST /matches/{matchID}/finalize.
func (h *MatchHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.FinalizeMatchInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}

	result, err := h.svc.FinalizeMatch(r.Context(), matchID, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

func matchIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "matchID"))
	if err != nil {
		return uuid.Nil, domain.ErrValidation("invalid match id")
	}
	return id, nil
}
