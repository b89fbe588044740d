package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aria-creative/vitrine/internal/model"
	"github.com/aria-creative/vitrine/internal/server/middleware"
	"github.com/aria-creative/vitrine/internal/store"
)

// ProjectHandler covers the portfolio catalog: a public TERMINE-only
// listing, a public detail view, and the admin CRUD surface.
type ProjectHandler struct {
	store  *store.Store
	logger *slog.Logger
	dev    bool
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(st *store.Store, logger *slog.Logger, dev bool) *ProjectHandler {
	return &ProjectHandler{store: st, logger: logger, dev: dev}
}

// ListPublic returns finished projects only, newest-first.
// GET /api/projects
func (h *ProjectHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListPublicProjects(r.Context())
	if err != nil {
		writeInternal(w, h.logger, h.dev, "list public projects", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", projects)
}

// ListAll returns every project regardless of status.
// GET /api/projects/admin
func (h *ProjectHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		writeInternal(w, h.logger, h.dev, "list projects", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", projects)
}

// Get returns one project. The detail view is public even though the
// listing is status-filtered.
// GET /api/projects/{id}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.store.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Projet non trouvé")
			return
		}
		writeInternal(w, h.logger, h.dev, "get project", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", project)
}

// Create validates and stores a new project.
// POST /api/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ProjectRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	if errs := req.Validate(); errs != nil {
		writeValidationError(w, errs)
		return
	}

	project := projectFromRequest(&req)
	if project.Date == "" {
		project.Date = time.Now().Format("02/01/2006")
	}

	if err := h.store.CreateProject(r.Context(), project); err != nil {
		writeInternal(w, h.logger, h.dev, "create project", err)
		return
	}

	claims := middleware.GetClaims(r.Context())
	h.logger.Info("project created", "project_id", project.ID, "title", project.Title, "actor", claims.Email)
	writeSuccess(w, http.StatusCreated, "Projet créé avec succès", project)
}

// Update replaces the full representation of an existing project; partial
// updates are not supported.
// PUT /api/projects/{id}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.ProjectRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	if errs := req.Validate(); errs != nil {
		writeValidationError(w, errs)
		return
	}

	id := chi.URLParam(r, "id")
	project, err := h.store.UpdateProject(r.Context(), id, projectFromRequest(&req))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Projet non trouvé")
			return
		}
		writeInternal(w, h.logger, h.dev, "update project", err)
		return
	}

	claims := middleware.GetClaims(r.Context())
	h.logger.Info("project updated", "project_id", id, "title", project.Title, "actor", claims.Email)
	writeSuccess(w, http.StatusOK, "Projet mis à jour avec succès", project)
}

// SetStatus changes only the publication status.
// POST /api/projects/{id}/status
func (h *ProjectHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	status := model.ProjectStatus(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "Statut invalide")
		return
	}

	id := chi.URLParam(r, "id")
	project, err := h.store.SetProjectStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Projet non trouvé")
			return
		}
		writeInternal(w, h.logger, h.dev, "update project status", err)
		return
	}

	claims := middleware.GetClaims(r.Context())
	h.logger.Info("project status updated", "project_id", id, "status", status, "actor", claims.Email)
	writeSuccess(w, http.StatusOK, "Statut mis à jour avec succès", project)
}

// Delete removes a project permanently.
// DELETE /api/projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteProject(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Projet non trouvé")
			return
		}
		writeInternal(w, h.logger, h.dev, "delete project", err)
		return
	}

	claims := middleware.GetClaims(r.Context())
	h.logger.Info("project deleted", "project_id", id, "actor", claims.Email)
	writeSuccess(w, http.StatusOK, "Projet supprimé avec succès", nil)
}

func projectFromRequest(req *model.ProjectRequest) *model.Project {
	return &model.Project{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Technologies: req.Technologies,
		Client:       strings.TrimSpace(req.Client),
		Duration:     strings.TrimSpace(req.Duration),
		Status:       model.ProjectStatus(req.Status),
		ImageURL:     req.ImageURL,
		Date:         req.Date,
		URL:          req.URL,
	}
}
