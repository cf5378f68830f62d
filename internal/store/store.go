// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/projectforgeai/forge-server/internal/domain"
)

// Repository defines the interface for persisting per-user application data.
type Repository interface {
	// GetUser retrieves a user by their user ID, or nil if absent.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// UpsertUser creates or updates a user record.
	UpsertUser(ctx context.Context, user *domain.User) error

	// UpdateLastSeen updates the last_seen_at timestamp for a user.
	UpdateLastSeen(ctx context.Context, userID string, lastSeen time.Time) error

	// ListProjects returns all projects owned by a user.
	ListProjects(ctx context.Context, userID string) ([]domain.Project, error)

	// GetProject returns one project by ID, or nil if absent.
	GetProject(ctx context.Context, userID, projectID string) (*domain.Project, error)

	// PutProject creates or replaces a whole project document.
	PutProject(ctx context.Context, userID string, project *domain.Project) error

	// DeleteProject removes a project document.
	DeleteProject(ctx context.Context, userID, projectID string) error

	// ListLearningPaths returns all learning paths owned by a user.
	ListLearningPaths(ctx context.Context, userID string) ([]domain.LearningPath, error)

	// GetLearningPath returns one learning path by ID, or nil if absent.
	GetLearningPath(ctx context.Context, userID, pathID string) (*domain.LearningPath, error)

	// PutLearningPath creates or replaces a whole learning path document.
	PutLearningPath(ctx context.Context, userID string, path *domain.LearningPath) error

	// DeleteLearningPath removes a learning path document.
	DeleteLearningPath(ctx context.Context, userID, pathID string) error

	// ListQuestions returns the interview question bank.
	ListQuestions(ctx context.Context) ([]domain.InterviewQuestion, error)

	// GetQuestion returns one question by ID, or nil if absent.
	GetQuestion(ctx context.Context, questionID string) (*domain.InterviewQuestion, error)

	// UpsertQuestion creates or updates a question in the bank.
	UpsertQuestion(ctx context.Context, q *domain.InterviewQuestion) error

	// ListAnswers returns a user's interview answers, newest first.
	ListAnswers(ctx context.Context, userID string) ([]domain.InterviewAnswer, error)

	// GetAnswer returns the user's current answer for a question, or nil.
	GetAnswer(ctx context.Context, userID, questionID string) (*domain.InterviewAnswer, error)

	// UpsertAnswer stores an answer, overwriting any previous answer for
	// the same (user, question) pair.
	UpsertAnswer(ctx context.Context, answer *domain.InterviewAnswer) error

	// GetTokenUsage returns the stored usage counter; the zero value if absent.
	GetTokenUsage(ctx context.Context, userID string) (domain.TokenUsage, error)

	// SetTokenUsage writes the usage counter for a user.
	SetTokenUsage(ctx context.Context, userID string, usage domain.TokenUsage) error

	// GetPreferences returns the user's generation preferences; zero value if absent.
	GetPreferences(ctx context.Context, userID string) (domain.Preferences, error)

	// SetPreferences writes the user's generation preferences.
	SetPreferences(ctx context.Context, userID string, prefs domain.Preferences) error

	// GetSubscription returns the user's subscription, or nil if absent.
	GetSubscription(ctx context.Context, userID string) (*domain.Subscription, error)

	// UpsertSubscription creates or updates a subscription record.
	UpsertSubscription(ctx context.Context, sub *domain.Subscription) error

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
