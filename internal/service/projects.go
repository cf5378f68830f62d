// Package service bridges flow outputs to per-user durable storage.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/projectforgeai/forge-server/internal/domain"
	"github.com/projectforgeai/forge-server/internal/flow"
	"golang.org/x/sync/singleflight"
)

// ProjectService owns per-user project tutorials: CRUD, seeding, sub-task
// completion, and lazy generation of sub-task content.
type ProjectService struct {
	repo   projectRepo
	flows  *flow.Service
	tokens *TokenService
	logger *slog.Logger

	// materialize collapses duplicate in-flight content generations for
	// the same sub-task into a single model call.
	materialize singleflight.Group
}

// projectRepo is the slice of the repository the project service needs.
type projectRepo interface {
	ListProjects(ctx context.Context, userID string) ([]domain.Project, error)
	GetProject(ctx context.Context, userID, projectID string) (*domain.Project, error)
	PutProject(ctx context.Context, userID string, project *domain.Project) error
	DeleteProject(ctx context.Context, userID, projectID string) error
}

// NewProjectService creates a project service.
func NewProjectService(repo projectRepo, flows *flow.Service, tokens *TokenService, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectService{repo: repo, flows: flows, tokens: tokens, logger: logger}
}

// List returns the user's projects. A user with no stored projects gets
// the default starter set, persisted before it is returned.
func (s *ProjectService) List(ctx context.Context, userID string) ([]domain.Project, error) {
	projects, err := s.repo.ListProjects(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if len(projects) > 0 {
		return projects, nil
	}

	seeded := DefaultProjects()
	for i := range seeded {
		if err := s.repo.PutProject(ctx, userID, &seeded[i]); err != nil {
			return nil, fmt.Errorf("seed default project: %w", err)
		}
	}
	s.logger.Info("seeded default projects", "user_id", userID, "count", len(seeded))
	return seeded, nil
}

// Get returns one project, or nil if absent.
func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	return s.repo.GetProject(ctx, userID, projectID)
}

// Add persists a new project document.
func (s *ProjectService) Add(ctx context.Context, userID string, project *domain.Project) error {
	if project.ID == "" {
		project.ID = slugify(project.Title) + "-" + uuid.NewString()[:8]
	}
	return s.repo.PutProject(ctx, userID, project)
}

// Update replaces a project document. Replaying the same value is
// harmless: the stored document ends up identical.
func (s *ProjectService) Update(ctx context.Context, userID string, project *domain.Project) error {
	return s.repo.PutProject(ctx, userID, project)
}

// Delete removes a project document.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	return s.repo.DeleteProject(ctx, userID, projectID)
}

// CreateFromPrompt generates a tutorial outline and persists it as a new
// project owned by the user. Token usage is recorded on success.
func (s *ProjectService) CreateFromPrompt(ctx context.Context, userID string, in flow.TutorialInput) (*domain.Project, error) {
	out, err := s.flows.GenerateTutorial(ctx, in)
	if err != nil {
		return nil, err
	}
	s.tokens.Record(ctx, userID, out.TokensUsed)

	project := &domain.Project{
		ID:                slugify(out.Title) + "-" + uuid.NewString()[:8],
		Title:             out.Title,
		Description:       out.Description,
		Steps:             out.Steps,
		Tags:              out.Tags,
		Skills:            out.Skills,
		SimulationDiagram: out.SimulationDiagram,
	}
	for i := range project.Steps {
		project.Steps[i].RecomputeCompleted()
	}

	if err := s.repo.PutProject(ctx, userID, project); err != nil {
		return nil, fmt.Errorf("persist generated project: %w", err)
	}
	return project, nil
}

// ToggleSubTask flips one sub-task's completion flag, recomputes the step
// flag, and persists the whole document.
func (s *ProjectService) ToggleSubTask(ctx context.Context, userID, projectID, stepID, subTaskID string, completed bool) (*domain.Project, error) {
	project, err := s.repo.GetProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if err := project.ToggleSubTask(stepID, subTaskID, completed); err != nil {
		return nil, err
	}
	if err := s.repo.PutProject(ctx, userID, project); err != nil {
		return nil, fmt.Errorf("persist toggled project: %w", err)
	}
	return project, nil
}

// MaterializeSubTask fills in a sub-task's content on first view. At most
// one generation runs per sub-task at a time; concurrent triggers share
// the same call. Content that already exists is returned without a call.
func (s *ProjectService) MaterializeSubTask(ctx context.Context, userID, projectID, stepID, subTaskID string) (*domain.SubTask, error) {
	project, err := s.repo.GetProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	step, subTask := project.FindSubTask(stepID, subTaskID)
	if subTask == nil {
		return nil, fmt.Errorf("sub-task %s/%s in project %s: %w", stepID, subTaskID, projectID, ErrNotFound)
	}
	if subTask.HasContent() {
		return subTask, nil
	}

	key := userID + "/" + projectID + "/" + stepID + "/" + subTaskID
	content, err, _ := s.materialize.Do(key, func() (interface{}, error) {
		out, err := s.flows.GenerateStepContent(ctx, flow.StepContentInput{
			ProjectTitle:       project.Title,
			StepTitle:          step.Title,
			SubTaskTitle:       subTask.Title,
			SubTaskDescription: subTask.Description,
			FullOutline:        project.Outline(),
		})
		if err != nil {
			return nil, err
		}
		s.tokens.Record(ctx, userID, out.TokensUsed)

		// Merge into a fresh copy of the aggregate before persisting, so
		// a toggle that landed meanwhile is not clobbered. Sibling
		// materializations can still race whole-document writes; last
		// writer wins.
		fresh, err := s.repo.GetProject(ctx, userID, projectID)
		if err != nil {
			return nil, err
		}
		if fresh == nil {
			return nil, fmt.Errorf("project %s deleted during generation", projectID)
		}
		_, freshSub := fresh.FindSubTask(stepID, subTaskID)
		if freshSub == nil {
			return nil, fmt.Errorf("sub-task %s/%s removed during generation", stepID, subTaskID)
		}
		freshSub.Content = out.Content
		if err := s.repo.PutProject(ctx, userID, fresh); err != nil {
			return nil, fmt.Errorf("persist materialized sub-task: %w", err)
		}
		return out.Content, nil
	})
	if err != nil {
		return nil, err
	}

	subTask.Content = content.(string)
	return subTask, nil
}
