package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/projectforgeai/forge-server/internal/domain"
	"github.com/projectforgeai/forge-server/internal/flow"
	"github.com/projectforgeai/forge-server/internal/store"
)

// InterviewService owns the question bank and per-user answers with their
// generated feedback.
type InterviewService struct {
	repo   store.Repository
	flows  *flow.Service
	tokens *TokenService
	logger *slog.Logger
}

// NewInterviewService creates an interview practice service.
func NewInterviewService(repo store.Repository, flows *flow.Service, tokens *TokenService, logger *slog.Logger) *InterviewService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InterviewService{repo: repo, flows: flows, tokens: tokens, logger: logger}
}

// ListQuestions returns the question bank, seeding the fallback set when
// the bank is empty.
func (s *InterviewService) ListQuestions(ctx context.Context) ([]domain.InterviewQuestion, error) {
	questions, err := s.repo.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) > 0 {
		return questions, nil
	}

	seeded := DefaultQuestions()
	for i := range seeded {
		if err := s.repo.UpsertQuestion(ctx, &seeded[i]); err != nil {
			return nil, fmt.Errorf("seed default question: %w", err)
		}
	}
	s.logger.Info("seeded default interview questions", "count", len(seeded))
	return seeded, nil
}

// GetQuestion returns one question, or nil if absent.
func (s *InterviewService) GetQuestion(ctx context.Context, questionID string) (*domain.InterviewQuestion, error) {
	return s.repo.GetQuestion(ctx, questionID)
}

// ListAnswers returns the user's answers, newest first.
func (s *InterviewService) ListAnswers(ctx context.Context, userID string) ([]domain.InterviewAnswer, error) {
	return s.repo.ListAnswers(ctx, userID)
}

// SubmitAnswer runs the feedback flow on the answer and upserts the result
// keyed by (user, question): a previous answer for the same question is
// overwritten in place, keeping its identifier.
func (s *InterviewService) SubmitAnswer(ctx context.Context, userID, questionID, answerText, answerAudio string) (*domain.InterviewAnswer, error) {
	question, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, fmt.Errorf("%w: question %s not found", flow.ErrInvalidInput, questionID)
	}

	feedback, err := s.flows.GenerateInterviewFeedback(ctx, flow.InterviewFeedbackInput{
		Question:    question.Question,
		AnswerText:  answerText,
		AnswerAudio: answerAudio,
	})
	if err != nil {
		return nil, err
	}
	s.tokens.Record(ctx, userID, feedback.TokensUsed)

	answerBody := answerText
	if answerBody == "" {
		answerBody = feedback.Transcript
	}

	answer := &domain.InterviewAnswer{
		UserID:     userID,
		QuestionID: questionID,
		Question:   question.Question,
		Answer:     answerBody,
		Feedback:   *feedback,
		CreatedAt:  time.Now(),
	}

	existing, err := s.repo.GetAnswer(ctx, userID, questionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		answer.ID = existing.ID
	} else {
		answer.ID = fmt.Sprintf("%s-%s-%s", userID, questionID, uuid.NewString())
	}

	if err := s.repo.UpsertAnswer(ctx, answer); err != nil {
		return nil, fmt.Errorf("persist interview answer: %w", err)
	}
	return answer, nil
}
