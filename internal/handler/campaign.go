package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linkvigia/linkvigia/internal/auth"
	"github.com/linkvigia/linkvigia/internal/handler/dto"
	"github.com/linkvigia/linkvigia/internal/model"
	"github.com/linkvigia/linkvigia/internal/service"
)

// CampaignHandler handles outreach campaign endpoints.
type CampaignHandler struct {
	campaigns *service.CampaignService
	logger    *slog.Logger
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(campaigns *service.CampaignService, logger *slog.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaigns: campaigns,
		logger:    logger,
	}
}

// Create handles POST /api/campaigns.
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Corpo da requisição inválido")
		return
	}

	campaign, err := h.campaigns.CreateCampaign(r.Context(), service.CreateCampaignInput{
		UserID:   userID,
		Name:     req.Name,
		Subject:  req.Subject,
		Template: req.Template,
	})
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Nome da campanha é obrigatório")
			return
		}
		h.logger.Error("internal_error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno do servidor")
		return
	}

	h.logger.Info("campaign created",
		slog.String("campaign_id", campaign.ID),
		slog.String("user_id", userID),
	)

	writeJSON(w, http.StatusCreated, dto.CampaignResponse{Campaign: campaign})
}

// List handles GET /api/campaigns.
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	campaigns, err := h.campaigns.ListCampaigns(r.Context(), userID)
	if err != nil {
		h.logger.Error("internal_error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno do servidor")
		return
	}

	if campaigns == nil {
		campaigns = []*model.Campaign{}
	}

	writeJSON(w, http.StatusOK, dto.CampaignListResponse{Campaigns: campaigns})
}
