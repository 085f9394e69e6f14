package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linkvigia/linkvigia/internal/auth"
	"github.com/linkvigia/linkvigia/internal/handler/dto"
	"github.com/linkvigia/linkvigia/internal/service"
)

// UserHandler handles profile and credential endpoints.
type UserHandler struct {
	accounts *service.AccountService
	keys     *service.APIKeyService
	logger   *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accounts *service.AccountService, keys *service.APIKeyService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		accounts: accounts,
		keys:     keys,
		logger:   logger,
	}
}

// GetProfile handles GET /api/user/profile.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	user, stats, err := h.accounts.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Usuário não encontrado")
			return
		}
		h.logger.Error("internal_error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno do servidor")
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileResponse{User: user, Stats: stats})
}

// UpdateProfile handles PUT /api/user/profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Corpo da requisição inválido")
		return
	}

	if err := h.accounts.UpdateProfile(r.Context(), userID, req.Name, req.Company); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Usuário não encontrado")
			return
		}
		h.logger.Error("internal_error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno do servidor")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Perfil atualizado com sucesso"})
}

// SaveAPIKey handles POST /api/user/api-keys.
// The submitted value is encrypted before storage and never echoed back.
func (h *UserHandler) SaveAPIKey(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.SaveKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Corpo da requisição inválido")
		return
	}

	if err := h.keys.SaveKey(r.Context(), userID, req.KeyType, req.KeyValue); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Tipo e valor da chave são obrigatórios")
		case errors.Is(err, service.ErrInvalidKeyType):
			writeError(w, http.StatusBadRequest, "INVALID_KEY_TYPE", "Tipo de chave inválido")
		default:
			h.logger.Error("internal_error", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno do servidor")
		}
		return
	}

	h.logger.Info("api key saved",
		slog.String("user_id", userID),
		slog.String("key_type", req.KeyType),
	)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Chave de API salva com sucesso"})
}

// APIKeyStatus handles GET /api/user/api-keys/status.
func (h *UserHandler) APIKeyStatus(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	status, err := h.keys.KeyStatus(r.Context(), userID)
	if err != nil {
		h.logger.Error("internal_error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno do servidor")
		return
	}

	writeJSON(w, http.StatusOK, status)
}
