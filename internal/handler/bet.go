package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tiesadafc/teamapp/internal/auth"
	"github.com/tiesadafc/teamapp/internal/domain"
	"github.com/tiesadafc/teamapp/internal/service"
	"github.com/tiesadafc/teamapp/internal/settlement"
)

// BetHandler handles wagering endpoints.
type BetHandler struct {
	wagers     *service.WagerService
	settlement *settlement.Engine
}

// NewBetHandler creates a new BetHandler.
func NewBetHandler(wagers *service.WagerService, settlementEngine *settlement.Engine) *BetHandler {
	return &BetHandler{wagers: wagers, settlement: settlementEngine}
}

// PlaceStandard handles POST /bets.
func (h *BetHandler) PlaceStandard(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.PlaceBetInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}

	bet, err := h.wagers.PlaceStandardBet(r.Context(), playerID, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, bet)
}

// ProposePvP handles POST /bets/pvp.
func (h *BetHandler) ProposePvP(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.PlaceBetInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}

	bet, err := h.wagers.PlacePvPBet(r.Context(), playerID, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, bet)
}

// AcceptPvP handles POST /bets/{betID}/accept.
func (h *BetHandler) AcceptPvP(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	betID, err := uuid.Parse(chi.URLParam(r, "betID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid bet id"))
		return
	}

	bet, err := h.wagers.AcceptPvPBet(r.Context(), playerID, betID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, bet)
}

// resolveInput is the body of a manual resolution request.
type resolveInput struct {
	Resolution settlement.Resolution `json:"resolution"`
}

// ResolveCustom handles POST /bets/{betID}/resolve.
func (h *BetHandler) ResolveCustom(w http.ResponseWriter, r *http.Request) {
	betID, err := uuid.Parse(chi.URLParam(r, "betID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid bet id"))
		return
	}

	var input resolveInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}

	bet, err := h.settlement.ResolveCustomPvPBet(r.Context(), betID, input.Resolution)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, bet)
}

// GetBet handles GET /bets/{betID}.
func (h *BetHandler) GetBet(w http.ResponseWriter, r *http.Request) {
	betID, err := uuid.Parse(chi.URLParam(r, "betID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid bet id"))
		return
	}

	bet, err := h.wagers.GetBet(r.Context(), betID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, bet)
}

// MyBets handles GET /bets/me.
func (h *BetHandler) MyBets(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	bets, err := h.wagers.GetPlayerBets(r.Context(), playerID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, bets)
}

// OpenPvP handles GET /bets/pvp/open.
func (h *BetHandler) OpenPvP(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	bets, err := h.wagers.GetOpenPvPBets(r.Context(), playerID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, bets)
}

func playerIDFromContext(r *http.Request) (uuid.UUID, error) {
	sub := auth.SubjectFromContext(r.Context())
	if sub == "" {
		return uuid.Nil, domain.ErrUnauthorized("no subject in context")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized("invalid subject")
	}
	return id, nil
}
