package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/projectforgeai/forge-server/internal/identity"
	"github.com/projectforgeai/forge-server/internal/service"
)

// InterviewHandler handles interview prep questions and answers.
type InterviewHandler struct {
	*Handler
	interviews *service.InterviewService
}

// NewInterviewHandler creates a new interview handler.
func NewInterviewHandler(base *Handler, interviews *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{Handler: base, interviews: interviews}
}

// RegisterRoutes registers the interview routes on the router.
func (h *InterviewHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/interview", func(r chi.Router) {
		r.Get("/questions", h.ListQuestions)
		r.Get("/questions/{questionID}", h.GetQuestion)
		r.Get("/answers", h.ListAnswers)
		r.Post("/answers", h.SubmitAnswer)
	})
}

// ListQuestions returns the question bank, seeding defaults on first use.
func (h *InterviewHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.interviews.ListQuestions(r.Context())
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to list questions")
		return
	}
	JSON(w, http.StatusOK, questions)
}

// GetQuestion returns a single question.
func (h *InterviewHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")

	question, err := h.interviews.GetQuestion(r.Context(), questionID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to load question")
		return
	}
	if question == nil {
		Error(w, http.StatusNotFound, "question not found")
		return
	}
	JSON(w, http.StatusOK, question)
}

// ListAnswers returns the caller's saved answers with their feedback.
func (h *InterviewHandler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	answers, err := h.interviews.ListAnswers(r.Context(), userID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to list answers")
		return
	}
	JSON(w, http.StatusOK, answers)
}

// SubmitAnswer scores an answer and saves it, replacing any previous
// answer to the same question.
func (h *InterviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var body struct {
		QuestionID  string `json:"questionId"`
		AnswerText  string `json:"answerText"`
		AnswerAudio string `json:"answerAudio"`
	}
	if err := decodeBody(r, &body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.interviews.SubmitAnswer(r.Context(), userID, body.QuestionID, body.AnswerText, body.AnswerAudio)
	if err != nil {
		GenerationError(w, err)
		return
	}
	JSON(w, http.StatusCreated, answer)
}
