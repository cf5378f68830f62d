package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/projectforgeai/forge-server/internal/flow"
	"github.com/projectforgeai/forge-server/internal/identity"
	"github.com/projectforgeai/forge-server/internal/service"
)

// FlowHandler exposes the generation flows directly. The tutorial and
// learning-path flows persist their results under the caller's account;
// the remaining flows are stateless apart from token accounting.
type FlowHandler struct {
	*Handler
	flows    *flow.Service
	projects *service.ProjectService
	paths    *service.LearningPathService
	tokens   *service.TokenService
	account  *service.AccountService
}

// NewFlowHandler creates a new flow handler.
func NewFlowHandler(base *Handler, flows *flow.Service, projects *service.ProjectService, paths *service.LearningPathService, tokens *service.TokenService, account *service.AccountService) *FlowHandler {
	return &FlowHandler{
		Handler:  base,
		flows:    flows,
		projects: projects,
		paths:    paths,
		tokens:   tokens,
		account:  account,
	}
}

// RegisterRoutes registers the flow routes on the router.
func (h *FlowHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/flows", func(r chi.Router) {
		r.Post("/tutorial", h.GenerateTutorial)
		r.Post("/learning-path", h.GenerateLearningPath)
		r.Post("/lesson-content", h.GenerateLessonContent)
		r.Post("/step-content", h.GenerateStepContent)
		r.Post("/interview-feedback", h.GenerateInterviewFeedback)
		r.Post("/assistance", h.PersonalizedAssistance)
	})
}

// GenerateTutorial generates a project tutorial from a prompt and saves it.
func (h *FlowHandler) GenerateTutorial(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var in flow.TutorialInput
	if err := decodeBody(r, &in); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.OperatingSystem = h.account.ResolveOS(r.Context(), userID, in.OperatingSystem)

	project, err := h.projects.CreateFromPrompt(r.Context(), userID, in)
	if err != nil {
		GenerationError(w, err)
		return
	}
	JSON(w, http.StatusCreated, project)
}

// GenerateLearningPath generates a learning path outline and saves it.
func (h *FlowHandler) GenerateLearningPath(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var in flow.LearningPathInput
	if err := decodeBody(r, &in); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.OperatingSystem = h.account.ResolveOS(r.Context(), userID, in.OperatingSystem)

	path, err := h.paths.CreateFromTopic(r.Context(), userID, in)
	if err != nil {
		GenerationError(w, err)
		return
	}
	JSON(w, http.StatusCreated, path)
}

// GenerateLessonContent generates standalone lesson content.
func (h *FlowHandler) GenerateLessonContent(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var in flow.LessonContentInput
	if err := decodeBody(r, &in); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.OperatingSystem = h.account.ResolveOS(r.Context(), userID, in.OperatingSystem)

	out, err := h.flows.GenerateLessonContent(r.Context(), in)
	if err != nil {
		GenerationError(w, err)
		return
	}
	h.tokens.Record(r.Context(), userID, out.TokensUsed)
	JSON(w, http.StatusOK, out)
}

// GenerateStepContent generates standalone sub-task content.
func (h *FlowHandler) GenerateStepContent(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var in flow.StepContentInput
	if err := decodeBody(r, &in); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.flows.GenerateStepContent(r.Context(), in)
	if err != nil {
		GenerationError(w, err)
		return
	}
	h.tokens.Record(r.Context(), userID, out.TokensUsed)
	JSON(w, http.StatusOK, out)
}

// GenerateInterviewFeedback scores an interview answer without saving it.
func (h *FlowHandler) GenerateInterviewFeedback(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var in flow.InterviewFeedbackInput
	if err := decodeBody(r, &in); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	feedback, err := h.flows.GenerateInterviewFeedback(r.Context(), in)
	if err != nil {
		GenerationError(w, err)
		return
	}
	h.tokens.Record(r.Context(), userID, feedback.TokensUsed)
	JSON(w, http.StatusOK, feedback)
}

// PersonalizedAssistance answers a question about the current tutorial step.
func (h *FlowHandler) PersonalizedAssistance(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var in flow.AssistanceInput
	if err := decodeBody(r, &in); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.flows.PersonalizedAssistance(r.Context(), in)
	if err != nil {
		GenerationError(w, err)
		return
	}
	h.tokens.Record(r.Context(), userID, out.TokensUsed)
	JSON(w, http.StatusOK, out)
}
