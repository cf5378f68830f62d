package service

import (
	"context"
	"errors"
	"testing"

	"github.com/projectforgeai/forge-server/internal/flow"
)

const serviceFeedbackPayload = `{
	"feedback": "Solid answer.",
	"score": 80,
	"transcript": "Indexes trade write cost for read speed.",
	"analysis": {
		"clarity": {"rating": "Good", "reason": "r"},
		"relevance": {"rating": "Excellent", "reason": "r"},
		"fillerWords": {"rating": "Good", "reason": "r"},
		"pacing": {"rating": "Good", "reason": "r"},
		"confidence": {"rating": "Good", "reason": "r"}
	}
}`

func newInterviewService(t *testing.T, gen flow.Generator) (*InterviewService, *TokenService) {
	t.Helper()
	repo := newTestRepo(t)
	tokens := NewTokenService(repo, testLogger())
	svc := NewInterviewService(repo, flow.NewService(gen), tokens, testLogger())
	return svc, tokens
}

func TestInterviewService_ListQuestions_SeedsDefaults(t *testing.T) {
	svc, _ := newInterviewService(t, flow.Disabled{})
	ctx := context.Background()

	questions, err := svc.ListQuestions(ctx)
	if err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	if len(questions) != len(DefaultQuestions()) {
		t.Fatalf("Expected %d seeded questions, got %d", len(DefaultQuestions()), len(questions))
	}

	q, err := svc.GetQuestion(ctx, "big-o-notation")
	if err != nil || q == nil {
		t.Fatalf("Expected seeded question persisted, got %v, %v", q, err)
	}
}

func TestInterviewService_SubmitAnswer_UpsertsByQuestion(t *testing.T) {
	gen := &countingGenerator{
		payload: serviceFeedbackPayload,
		usage:   flow.Usage{InputTokens: 50, OutputTokens: 150},
	}
	svc, tokens := newInterviewService(t, gen)
	ctx := context.Background()

	if _, err := svc.ListQuestions(ctx); err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}

	first, err := svc.SubmitAnswer(ctx, "user-1", "database-indexing", "Indexes speed up reads.", "")
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}
	if first.ID == "" {
		t.Fatal("Expected an answer ID")
	}
	if first.Feedback.Score != 80 {
		t.Errorf("Expected score 80, got %d", first.Feedback.Score)
	}

	second, err := svc.SubmitAnswer(ctx, "user-1", "database-indexing", "Indexes are B-trees, mostly.", "")
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected resubmission to keep ID %q, got %q", first.ID, second.ID)
	}

	answers, err := svc.ListAnswers(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListAnswers failed: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("Expected one answer per question, got %d", len(answers))
	}
	if answers[0].Answer != "Indexes are B-trees, mostly." {
		t.Errorf("Expected latest answer stored, got %q", answers[0].Answer)
	}

	// Both submissions are charged.
	usage, err := tokens.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Token usage read failed: %v", err)
	}
	if usage.Count != 400 {
		t.Errorf("Expected 400 tokens recorded, got %d", usage.Count)
	}
}

func TestInterviewService_SubmitAnswer_UnknownQuestion(t *testing.T) {
	gen := &countingGenerator{payload: serviceFeedbackPayload}
	svc, _ := newInterviewService(t, gen)

	_, err := svc.SubmitAnswer(context.Background(), "user-1", "no-such-question", "answer", "")
	if !errors.Is(err, flow.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
	if gen.callCount() != 0 {
		t.Errorf("Expected no model calls for unknown question, got %d", gen.callCount())
	}
}

func TestInterviewService_SubmitAnswer_AnswersIsolatedPerUser(t *testing.T) {
	gen := &countingGenerator{payload: serviceFeedbackPayload}
	svc, _ := newInterviewService(t, gen)
	ctx := context.Background()

	if _, err := svc.ListQuestions(ctx); err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, "user-1", "big-o-notation", "O(n).", ""); err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, "user-2", "big-o-notation", "It bounds growth.", ""); err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}

	mine, err := svc.ListAnswers(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListAnswers failed: %v", err)
	}
	if len(mine) != 1 || mine[0].Answer != "O(n)." {
		t.Errorf("Expected only user-1's answer, got %+v", mine)
	}
}
