package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/projectforgeai/forge-server/internal/domain"
	"github.com/projectforgeai/forge-server/internal/flow"
	"golang.org/x/sync/singleflight"
)

// LearningPathService owns per-user learning paths: CRUD and lazy
// generation of lesson content.
type LearningPathService struct {
	repo   learningPathRepo
	flows  *flow.Service
	tokens *TokenService
	logger *slog.Logger

	materialize singleflight.Group
}

// learningPathRepo is the slice of the repository the path service needs.
type learningPathRepo interface {
	ListLearningPaths(ctx context.Context, userID string) ([]domain.LearningPath, error)
	GetLearningPath(ctx context.Context, userID, pathID string) (*domain.LearningPath, error)
	PutLearningPath(ctx context.Context, userID string, path *domain.LearningPath) error
	DeleteLearningPath(ctx context.Context, userID, pathID string) error
}

// NewLearningPathService creates a learning path service.
func NewLearningPathService(repo learningPathRepo, flows *flow.Service, tokens *TokenService, logger *slog.Logger) *LearningPathService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LearningPathService{repo: repo, flows: flows, tokens: tokens, logger: logger}
}

// List returns the user's learning paths.
func (s *LearningPathService) List(ctx context.Context, userID string) ([]domain.LearningPath, error) {
	paths, err := s.repo.ListLearningPaths(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list learning paths: %w", err)
	}
	return paths, nil
}

// Get returns one learning path, or nil if absent.
func (s *LearningPathService) Get(ctx context.Context, userID, pathID string) (*domain.LearningPath, error) {
	return s.repo.GetLearningPath(ctx, userID, pathID)
}

// Add persists a new learning path document.
func (s *LearningPathService) Add(ctx context.Context, userID string, path *domain.LearningPath) error {
	return s.repo.PutLearningPath(ctx, userID, path)
}

// Update replaces a learning path document.
func (s *LearningPathService) Update(ctx context.Context, userID string, path *domain.LearningPath) error {
	return s.repo.PutLearningPath(ctx, userID, path)
}

// Delete removes a learning path document.
func (s *LearningPathService) Delete(ctx context.Context, userID, pathID string) error {
	return s.repo.DeleteLearningPath(ctx, userID, pathID)
}

// CreateFromTopic generates a curriculum outline and persists it as a new
// learning path owned by the user. Lesson bodies stay empty until opened.
func (s *LearningPathService) CreateFromTopic(ctx context.Context, userID string, in flow.LearningPathInput) (*domain.LearningPath, error) {
	out, err := s.flows.GenerateLearningPath(ctx, in)
	if err != nil {
		return nil, err
	}
	s.tokens.Record(ctx, userID, out.TokensUsed)

	path := &domain.LearningPath{
		ID:           out.ID,
		Title:        out.Title,
		Topic:        out.Topic,
		Difficulty:   domain.Difficulty(out.Difficulty),
		Introduction: out.Introduction,
		Modules:      out.Modules,
	}

	if err := s.repo.PutLearningPath(ctx, userID, path); err != nil {
		return nil, fmt.Errorf("persist generated learning path: %w", err)
	}
	return path, nil
}

// MaterializeLesson fills in a lesson's content on first view. At most one
// generation runs per lesson at a time; concurrent triggers share the same
// call. Content that already exists is returned without a call.
func (s *LearningPathService) MaterializeLesson(ctx context.Context, userID, pathID, moduleID, lessonID, operatingSystem string) (*domain.LearningLesson, error) {
	path, err := s.repo.GetLearningPath(ctx, userID, pathID)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, fmt.Errorf("learning path %s: %w", pathID, ErrNotFound)
	}
	mod, lesson := path.FindLesson(moduleID, lessonID)
	if lesson == nil {
		return nil, fmt.Errorf("lesson %s/%s in path %s: %w", moduleID, lessonID, pathID, ErrNotFound)
	}
	if lesson.HasContent() {
		return lesson, nil
	}

	key := userID + "/" + pathID + "/" + moduleID + "/" + lessonID
	content, err, _ := s.materialize.Do(key, func() (interface{}, error) {
		out, err := s.flows.GenerateLessonContent(ctx, flow.LessonContentInput{
			PathTitle:       path.Title,
			ModuleTitle:     mod.Title,
			LessonTitle:     lesson.Title,
			FullOutline:     path.Outline(),
			OperatingSystem: operatingSystem,
		})
		if err != nil {
			return nil, err
		}
		s.tokens.Record(ctx, userID, out.TokensUsed)

		fresh, err := s.repo.GetLearningPath(ctx, userID, pathID)
		if err != nil {
			return nil, err
		}
		if fresh == nil {
			return nil, fmt.Errorf("learning path %s deleted during generation", pathID)
		}
		_, freshLesson := fresh.FindLesson(moduleID, lessonID)
		if freshLesson == nil {
			return nil, fmt.Errorf("lesson %s/%s removed during generation", moduleID, lessonID)
		}
		freshLesson.Content = out.Content
		if err := s.repo.PutLearningPath(ctx, userID, fresh); err != nil {
			return nil, fmt.Errorf("persist materialized lesson: %w", err)
		}
		return out.Content, nil
	})
	if err != nil {
		return nil, err
	}

	lesson.Content = content.(string)
	return lesson, nil
}
