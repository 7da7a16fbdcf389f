package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tiesadafc/teamapp/internal/domain"
	"github.com/tiesadafc/teamapp/internal/service"
)

// PlayerHandler handles roster and wallet endpoints.
type PlayerHandler struct {
	svc *service.RosterService
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(svc *service.RosterService) *PlayerHandler {
	return &PlayerHandler{svc: svc}
}

// List handles GET /players.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.svc.ListPlayers(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, players)
}

// Get handles GET /players/{playerID}.
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(chi.URLParam(r, "playerID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid player id"))
		return
	}

	player, err := h.svc.GetPlayer(r.Context(), playerID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, player)
}

// Create handles POST /players.
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreatePlayerInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}

	player, err := h.svc.CreatePlayer(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, player)
}

// Me handles GET /players/me.
func (h *PlayerHandler) Me(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	player, err := h.svc.GetPlayer(r.Context(), playerID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, player)
}

// MyLedger handles GET /players/me/transactions.
func (h *PlayerHandler) MyLedger(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.svc.GetLedger(r.Context(), playerID, limit)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, entries)
}

// Scoreboard handles GET /players/scoreboard.
func (h *PlayerHandler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.svc.Scoreboard(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, board)
}
