package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/projectforgeai/forge-server/internal/domain"
	"github.com/projectforgeai/forge-server/internal/identity"
	"github.com/projectforgeai/forge-server/internal/service"
)

// LearningPathHandler handles learning path CRUD and lesson endpoints.
type LearningPathHandler struct {
	*Handler
	paths   *service.LearningPathService
	account *service.AccountService
}

// NewLearningPathHandler creates a new learning path handler.
func NewLearningPathHandler(base *Handler, paths *service.LearningPathService, account *service.AccountService) *LearningPathHandler {
	return &LearningPathHandler{Handler: base, paths: paths, account: account}
}

// RegisterRoutes registers the learning path routes on the router.
func (h *LearningPathHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/learning-paths", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Add)
		r.Route("/{pathID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
			r.Post("/modules/{moduleID}/lessons/{lessonID}/content", h.MaterializeLesson)
		})
	})
}

// List returns the caller's learning paths.
func (h *LearningPathHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	paths, err := h.paths.List(r.Context(), userID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to list learning paths")
		return
	}
	JSON(w, http.StatusOK, paths)
}

// Get returns a single learning path.
func (h *LearningPathHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	pathID := chi.URLParam(r, "pathID")

	path, err := h.paths.Get(r.Context(), userID, pathID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to load learning path")
		return
	}
	if path == nil {
		Error(w, http.StatusNotFound, "learning path not found")
		return
	}
	JSON(w, http.StatusOK, path)
}

// Add saves a caller-supplied learning path.
func (h *LearningPathHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var path domain.LearningPath
	if err := decodeBody(r, &path); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if path.Title == "" {
		Error(w, http.StatusBadRequest, "title is required")
		return
	}

	if err := h.paths.Add(r.Context(), userID, &path); err != nil {
		Error(w, http.StatusInternalServerError, "failed to save learning path")
		return
	}
	JSON(w, http.StatusCreated, path)
}

// Update replaces a learning path document.
func (h *LearningPathHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	pathID := chi.URLParam(r, "pathID")

	var path domain.LearningPath
	if err := decodeBody(r, &path); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	path.ID = pathID

	if err := h.paths.Update(r.Context(), userID, &path); err != nil {
		Error(w, http.StatusInternalServerError, "failed to save learning path")
		return
	}
	JSON(w, http.StatusOK, path)
}

// Delete removes a learning path.
func (h *LearningPathHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	pathID := chi.URLParam(r, "pathID")

	if err := h.paths.Delete(r.Context(), userID, pathID); err != nil {
		Error(w, http.StatusInternalServerError, "failed to delete learning path")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// MaterializeLesson fills in a lesson's content on first view.
func (h *LearningPathHandler) MaterializeLesson(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	pathID := chi.URLParam(r, "pathID")
	moduleID := chi.URLParam(r, "moduleID")
	lessonID := chi.URLParam(r, "lessonID")

	var body struct {
		OperatingSystem string `json:"operatingSystem"`
	}
	// The body is optional; an empty or absent body falls back to the
	// caller's stored preference.
	_ = decodeBody(r, &body)
	os := h.account.ResolveOS(r.Context(), userID, body.OperatingSystem)

	lesson, err := h.paths.MaterializeLesson(r.Context(), userID, pathID, moduleID, lessonID, os)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			Error(w, http.StatusNotFound, err.Error())
			return
		}
		GenerationError(w, err)
		return
	}
	JSON(w, http.StatusOK, lesson)
}
