package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkvigia/linkvigia/internal/auth"
	"github.com/linkvigia/linkvigia/internal/handler/dto"
	"github.com/linkvigia/linkvigia/internal/model"
	"github.com/linkvigia/linkvigia/internal/quota"
	"github.com/linkvigia/linkvigia/internal/repository"
	"github.com/linkvigia/linkvigia/internal/service"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	projects *service.ProjectService
	logger   *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		logger:   logger,
	}
}

// Create handles POST /api/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Corpo da requisição inválido")
		return
	}

	project, urls, err := h.projects.CreateProject(r.Context(), service.CreateProjectInput{
		UserID: userID,
		Name:   req.Name,
		Domain: req.Domain,
		URLs:   req.URLs,
	})
	if err != nil {
		h.handleProjectError(w, err)
		return
	}

	h.logger.Info("project created",
		slog.String("project_id", project.ID),
		slog.String("user_id", userID),
		slog.Int("urls", len(urls)),
	)

	writeJSON(w, http.StatusCreated, dto.ProjectResponse{Project: project, URLs: urls})
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	projects, err := h.projects.ListProjects(r.Context(), userID)
	if err != nil {
		h.logger.Error("internal_error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno do servidor")
		return
	}

	if projects == nil {
		projects = []*model.ProjectSummary{}
	}

	writeJSON(w, http.StatusOK, dto.ProjectListResponse{Projects: projects})
}

// Backlinks handles GET /api/projects/{projectID}/backlinks.
func (h *ProjectHandler) Backlinks(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	projectID := chi.URLParam(r, "projectID")

	report, err := h.projects.ListBacklinks(r.Context(), userID, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "PROJECT_NOT_FOUND", "Projeto não encontrado")
			return
		}
		h.logger.Error("internal_error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno do servidor")
		return
	}

	writeJSON(w, http.StatusOK, dto.BacklinkListResponse{
		Backlinks: report.Backlinks,
		Total:     report.Total,
		Active:    report.Active,
		Lost:      report.Lost,
	})
}

// handleProjectError maps project service errors to HTTP responses.
func (h *ProjectHandler) handleProjectError(w http.ResponseWriter, err error) {
	var limitErr *quota.LimitError

	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Nome e domínio são obrigatórios")
	case errors.As(err, &limitErr):
		writeError(w, http.StatusForbidden, "QUOTA_EXCEEDED", limitErr.Error())
	case errors.Is(err, model.ErrUnknownPlan):
		// Fail closed: an unrecognized stored plan never grants quota.
		writeError(w, http.StatusForbidden, "QUOTA_EXCEEDED", "Plano da conta não reconhecido. Entre em contato com o suporte.")
	default:
		h.logger.Error("internal_error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno do servidor")
	}
}
