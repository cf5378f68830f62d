package flow

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestPathSlug(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	got := pathSlug("Machine Learning & Statistics!", "Medium", now)
	want := "machine-learning-statistics-medium-1700000000000"
	if got != want {
		t.Errorf("Expected slug %q, got %q", want, got)
	}
}

func TestGenerateLearningPath_Success(t *testing.T) {
	gen := &fakeGenerator{
		payload: `{
			"title": "Learning Rust",
			"introduction": "A path into Rust.",
			"modules": [{"id": "mod-1", "title": "Basics", "description": "Start here", "lessons": [
				{"id": "lesson-1", "title": "Ownership", "description": "The borrow checker."}
			]}]
		}`,
		usage: Usage{InputTokens: 50, OutputTokens: 150},
	}
	svc := NewService(gen)

	out, err := svc.GenerateLearningPath(context.Background(), LearningPathInput{
		Topic:      "Rust",
		Difficulty: "Hard",
	})
	if err != nil {
		t.Fatalf("GenerateLearningPath failed: %v", err)
	}

	if !strings.HasPrefix(out.ID, "rust-hard-") {
		t.Errorf("Expected slug ID with topic and difficulty, got %q", out.ID)
	}
	if out.Topic != "Rust" || out.Difficulty != "Hard" {
		t.Errorf("Expected input topic and difficulty echoed, got %q/%q", out.Topic, out.Difficulty)
	}
	if out.TokensUsed != 200 {
		t.Errorf("Expected 200 tokens used, got %d", out.TokensUsed)
	}
	// Outlines never carry lesson bodies.
	for _, mod := range out.Modules {
		for _, lesson := range mod.Lessons {
			if lesson.Content != "" {
				t.Errorf("Expected empty lesson content in outline, got %q", lesson.Content)
			}
		}
	}
}

func TestGenerateLearningPath_RejectsEmptyOutline(t *testing.T) {
	gen := &fakeGenerator{payload: `{"title": "Learning Rust", "modules": []}`}
	svc := NewService(gen)

	_, err := svc.GenerateLearningPath(context.Background(), LearningPathInput{Topic: "Rust", Difficulty: "Easy"})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("Expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerateLessonContent_Validation(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewService(gen)

	_, err := svc.GenerateLessonContent(context.Background(), LessonContentInput{
		PathTitle:   "Learning Rust",
		ModuleTitle: "Basics",
		// missing lesson title
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("Expected no model calls, got %d", gen.calls)
	}
}

func TestGenerateLessonContent_Success(t *testing.T) {
	gen := &fakeGenerator{
		payload: `{"content": "# Ownership\nEvery value has an owner."}`,
		usage:   Usage{InputTokens: 30, OutputTokens: 70},
	}
	svc := NewService(gen)

	out, err := svc.GenerateLessonContent(context.Background(), LessonContentInput{
		PathTitle:       "Learning Rust",
		ModuleTitle:     "Basics",
		LessonTitle:     "Ownership",
		FullOutline:     "Basics > Ownership",
		OperatingSystem: "Windows",
	})
	if err != nil {
		t.Fatalf("GenerateLessonContent failed: %v", err)
	}
	if out.TokensUsed != 100 {
		t.Errorf("Expected 100 tokens used, got %d", out.TokensUsed)
	}
	if !strings.Contains(gen.lastReq.Prompt, "Target Operating System:** Windows") {
		t.Error("Expected prompt to carry the OS instruction")
	}
}
