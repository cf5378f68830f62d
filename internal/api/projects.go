package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/projectforgeai/forge-server/internal/domain"
	"github.com/projectforgeai/forge-server/internal/identity"
	"github.com/projectforgeai/forge-server/internal/service"
)

// ProjectHandler handles project CRUD and sub-task endpoints.
type ProjectHandler struct {
	*Handler
	projects *service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(base *Handler, projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{Handler: base, projects: projects}
}

// RegisterRoutes registers the project routes on the router.
func (h *ProjectHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/projects", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Add)
		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
			r.Route("/steps/{stepID}/subtasks/{subTaskID}", func(r chi.Router) {
				r.Post("/content", h.MaterializeSubTask)
				r.Post("/toggle", h.ToggleSubTask)
			})
		})
	})
}

// List returns the caller's projects, seeding starter projects on first use.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	projects, err := h.projects.List(r.Context(), userID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	JSON(w, http.StatusOK, projects)
}

// Get returns a single project.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	projectID := chi.URLParam(r, "projectID")

	project, err := h.projects.Get(r.Context(), userID, projectID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if project == nil {
		Error(w, http.StatusNotFound, "project not found")
		return
	}
	JSON(w, http.StatusOK, project)
}

// Add saves a caller-supplied project.
func (h *ProjectHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var project domain.Project
	if err := decodeBody(r, &project); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if project.Title == "" {
		Error(w, http.StatusBadRequest, "title is required")
		return
	}

	if err := h.projects.Add(r.Context(), userID, &project); err != nil {
		Error(w, http.StatusInternalServerError, "failed to save project")
		return
	}
	JSON(w, http.StatusCreated, project)
}

// Update replaces a project document.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	projectID := chi.URLParam(r, "projectID")

	var project domain.Project
	if err := decodeBody(r, &project); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	project.ID = projectID

	if err := h.projects.Update(r.Context(), userID, &project); err != nil {
		Error(w, http.StatusInternalServerError, "failed to save project")
		return
	}
	JSON(w, http.StatusOK, project)
}

// Delete removes a project.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	projectID := chi.URLParam(r, "projectID")

	if err := h.projects.Delete(r.Context(), userID, projectID); err != nil {
		Error(w, http.StatusInternalServerError, "failed to delete project")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// MaterializeSubTask fills in a sub-task's guide content on first view.
func (h *ProjectHandler) MaterializeSubTask(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	projectID := chi.URLParam(r, "projectID")
	stepID := chi.URLParam(r, "stepID")
	subTaskID := chi.URLParam(r, "subTaskID")

	subTask, err := h.projects.MaterializeSubTask(r.Context(), userID, projectID, stepID, subTaskID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			Error(w, http.StatusNotFound, err.Error())
			return
		}
		GenerationError(w, err)
		return
	}
	JSON(w, http.StatusOK, subTask)
}

// ToggleSubTask marks a sub-task complete or incomplete and returns the
// updated project.
func (h *ProjectHandler) ToggleSubTask(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	projectID := chi.URLParam(r, "projectID")
	stepID := chi.URLParam(r, "stepID")
	subTaskID := chi.URLParam(r, "subTaskID")

	var body struct {
		Completed bool `json:"completed"`
	}
	if err := decodeBody(r, &body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projects.ToggleSubTask(r.Context(), userID, projectID, stepID, subTaskID, body.Completed)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			Error(w, http.StatusNotFound, err.Error())
			return
		}
		Error(w, http.StatusInternalServerError, "failed to update project")
		return
	}
	JSON(w, http.StatusOK, project)
}
