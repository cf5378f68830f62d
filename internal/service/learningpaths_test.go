package service

import (
	"context"
	"errors"
	"testing"

	"github.com/projectforgeai/forge-server/internal/domain"
	"github.com/projectforgeai/forge-server/internal/flow"
)

func newLearningPathService(t *testing.T, gen flow.Generator) *LearningPathService {
	t.Helper()
	repo := newTestRepo(t)
	tokens := NewTokenService(repo, testLogger())
	return NewLearningPathService(repo, flow.NewService(gen), tokens, testLogger())
}

func samplePath() *domain.LearningPath {
	return &domain.LearningPath{
		ID:         "go-basics-easy-1",
		Title:      "Go Basics",
		Topic:      "Go",
		Difficulty: domain.DifficultyEasy,
		Modules: []domain.LearningModule{{
			ID:    "mod-1",
			Title: "Syntax",
			Lessons: []domain.LearningLesson{
				{ID: "lesson-1", Title: "Variables", Description: "Declaring variables."},
				{ID: "lesson-2", Title: "Loops", Description: "The for statement."},
			},
		}},
	}
}

func TestLearningPathService_CreateFromTopic(t *testing.T) {
	gen := &countingGenerator{
		payload: `{
			"title": "Learning Go",
			"introduction": "intro",
			"modules": [{"id": "mod-1", "title": "Syntax", "description": "d", "lessons": [
				{"id": "lesson-1", "title": "Variables", "description": "d"}
			]}]
		}`,
		usage: flow.Usage{InputTokens: 40, OutputTokens: 160},
	}
	svc := newLearningPathService(t, gen)
	ctx := context.Background()

	path, err := svc.CreateFromTopic(ctx, "user-1", flow.LearningPathInput{Topic: "Go", Difficulty: "Easy"})
	if err != nil {
		t.Fatalf("CreateFromTopic failed: %v", err)
	}
	if path.Difficulty != domain.DifficultyEasy {
		t.Errorf("Expected difficulty Easy, got %q", path.Difficulty)
	}

	stored, err := svc.Get(ctx, "user-1", path.ID)
	if err != nil || stored == nil {
		t.Fatalf("Expected generated path persisted, got %v, %v", stored, err)
	}
	if stored.Modules[0].Lessons[0].HasContent() {
		t.Error("Outline lessons must start without content")
	}
}

func TestLearningPathService_MaterializeLesson(t *testing.T) {
	gen := &countingGenerator{
		payload: `{"content": "# Variables\nUse := inside functions."}`,
		usage:   flow.Usage{InputTokens: 20, OutputTokens: 80},
	}
	svc := newLearningPathService(t, gen)
	ctx := context.Background()

	path := samplePath()
	if err := svc.Add(ctx, "user-1", path); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	lesson, err := svc.MaterializeLesson(ctx, "user-1", path.ID, "mod-1", "lesson-1", "Linux")
	if err != nil {
		t.Fatalf("MaterializeLesson failed: %v", err)
	}
	if lesson.Content == "" {
		t.Fatal("Expected generated lesson content")
	}

	stored, err := svc.Get(ctx, "user-1", path.ID)
	if err != nil || stored == nil {
		t.Fatalf("Get failed: %v, %v", stored, err)
	}
	if !stored.Modules[0].Lessons[0].HasContent() {
		t.Error("Expected lesson content persisted")
	}
	if stored.Modules[0].Lessons[1].HasContent() {
		t.Error("Sibling lessons must stay untouched")
	}

	// A second view reads the stored content.
	if _, err := svc.MaterializeLesson(ctx, "user-1", path.ID, "mod-1", "lesson-1", "Linux"); err != nil {
		t.Fatalf("MaterializeLesson failed: %v", err)
	}
	if gen.callCount() != 1 {
		t.Errorf("Expected exactly 1 generation, got %d", gen.callCount())
	}
}

func TestLearningPathService_MaterializeLesson_NotFound(t *testing.T) {
	svc := newLearningPathService(t, flow.Disabled{})
	ctx := context.Background()

	_, err := svc.MaterializeLesson(ctx, "user-1", "missing-path", "mod-1", "lesson-1", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing path, got %v", err)
	}

	path := samplePath()
	if err := svc.Add(ctx, "user-1", path); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	_, err = svc.MaterializeLesson(ctx, "user-1", path.ID, "mod-1", "missing-lesson", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing lesson, got %v", err)
	}
}
