package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/projectforgeai/forge-server/internal/domain"
)

// ListQuestions returns the interview question bank.
func (s *SQLiteStore) ListQuestions(ctx context.Context) ([]domain.InterviewQuestion, error) {
	query := `SELECT doc FROM interview_questions ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer closeRows(rows, "interview_questions")

	var questions []domain.InterviewQuestion
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}
		var q domain.InterviewQuestion
		if err := json.Unmarshal([]byte(doc), &q); err != nil {
			return nil, fmt.Errorf("decode question doc: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}

// GetQuestion returns one question by ID, or nil if absent.
func (s *SQLiteStore) GetQuestion(ctx context.Context, questionID string) (*domain.InterviewQuestion, error) {
	query := `SELECT doc FROM interview_questions WHERE id = ?`
	var doc string
	err := s.db.QueryRowContext(ctx, query, questionID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan question doc: %w", err)
	}
	var q domain.InterviewQuestion
	if err := json.Unmarshal([]byte(doc), &q); err != nil {
		return nil, fmt.Errorf("decode question doc: %w", err)
	}
	return &q, nil
}

// UpsertQuestion creates or updates a question in the bank.
func (s *SQLiteStore) UpsertQuestion(ctx context.Context, q *domain.InterviewQuestion) error {
	doc, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode question doc: %w", err)
	}

	now := time.Now().Unix()
	query := `
	INSERT INTO interview_questions (id, doc, created_at, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		doc = excluded.doc,
		updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, q.ID, string(doc), now, now); err != nil {
		return fmt.Errorf("upsert question: %w", err)
	}
	return nil
}

// ListAnswers returns a user's interview answers, newest first.
func (s *SQLiteStore) ListAnswers(ctx context.Context, userID string) ([]domain.InterviewAnswer, error) {
	query := `SELECT doc FROM interview_answers WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer closeRows(rows, "interview_answers")

	var answers []domain.InterviewAnswer
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan answer row: %w", err)
		}
		var a domain.InterviewAnswer
		if err := json.Unmarshal([]byte(doc), &a); err != nil {
			return nil, fmt.Errorf("decode answer doc: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return answers, nil
}

// GetAnswer returns the user's current answer for a question, or nil.
func (s *SQLiteStore) GetAnswer(ctx context.Context, userID, questionID string) (*domain.InterviewAnswer, error) {
	query := `SELECT doc FROM interview_answers WHERE user_id = ? AND question_id = ?`
	var doc string
	err := s.db.QueryRowContext(ctx, query, userID, questionID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan answer doc: %w", err)
	}
	var a domain.InterviewAnswer
	if err := json.Unmarshal([]byte(doc), &a); err != nil {
		return nil, fmt.Errorf("decode answer doc: %w", err)
	}
	return &a, nil
}

// UpsertAnswer stores an answer, overwriting any previous answer for the
// same (user, question) pair. The unique constraint keeps at most one
// current answer per pair; the stored ID is preserved on overwrite.
func (s *SQLiteStore) UpsertAnswer(ctx context.Context, answer *domain.InterviewAnswer) error {
	doc, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("encode answer doc: %w", err)
	}

	query := `
	INSERT INTO interview_answers (id, user_id, question_id, doc, created_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(user_id, question_id) DO UPDATE SET
		doc = excluded.doc,
		created_at = excluded.created_at`

	if err := s.execRetry(ctx, query,
		answer.ID, answer.UserID, answer.QuestionID, string(doc), answer.CreatedAt.Unix(),
	); err != nil {
		return fmt.Errorf("upsert answer: %w", err)
	}
	return nil
}
