package domain

import (
	"fmt"
	"time"
)

// Interview question categories.
const (
	QuestionCategoryBehavioral = "Behavioral"
	QuestionCategoryTechnical  = "Technical"
)

// Interview question role types.
const (
	QuestionTypeGeneral   = "General"
	QuestionTypeBackend   = "Backend"
	QuestionTypeFrontend  = "Frontend"
	QuestionTypeFullStack = "Full Stack"
	QuestionTypeDevOps    = "DevOps"
)

// InterviewQuestion is one mock-interview question from the question bank.
type InterviewQuestion struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Category   string     `json:"category"`
	Type       string     `json:"type"`
	Difficulty Difficulty `json:"difficulty"`
	Company    string     `json:"company,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
}

// Validate checks a question before it is accepted into the bank.
func (q *InterviewQuestion) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question text cannot be empty")
	}
	switch q.Category {
	case QuestionCategoryBehavioral, QuestionCategoryTechnical:
	default:
		return fmt.Errorf("unknown question category %q", q.Category)
	}
	switch q.Type {
	case QuestionTypeGeneral, QuestionTypeBackend, QuestionTypeFrontend, QuestionTypeFullStack, QuestionTypeDevOps:
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("unknown question difficulty %q", q.Difficulty)
	}
	return nil
}

// RatingNotApplicable marks analysis criteria that cannot be assessed,
// such as delivery criteria for a typed answer with no audio.
const RatingNotApplicable = "Not Applicable"

// CriterionAssessment is one rated aspect of an interview answer.
type CriterionAssessment struct {
	Rating string `json:"rating"`
	Reason string `json:"reason"`
}

// AnswerAnalysis breaks feedback down across fixed criteria. The first two
// are judged from the answer content, the last three from audio delivery.
type AnswerAnalysis struct {
	Clarity     CriterionAssessment `json:"clarity"`
	Relevance   CriterionAssessment `json:"relevance"`
	FillerWords CriterionAssessment `json:"fillerWords"`
	Pacing      CriterionAssessment `json:"pacing"`
	Confidence  CriterionAssessment `json:"confidence"`
}

// InterviewFeedback is the generated assessment of one interview answer.
type InterviewFeedback struct {
	Feedback   string         `json:"feedback"`
	Score      int            `json:"score"`
	Transcript string         `json:"transcript"`
	Analysis   AnswerAnalysis `json:"analysis"`
	TokensUsed int            `json:"tokensUsed,omitempty"`
}

// InterviewAnswer is one user's current answer to one question, plus the
// feedback it received. A (user, question) pair has at most one answer;
// re-submitting overwrites the previous record.
type InterviewAnswer struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	QuestionID string            `json:"questionId"`
	Question   string            `json:"question"`
	Answer     string            `json:"answer"`
	Feedback   InterviewFeedback `json:"feedback"`
	CreatedAt  time.Time         `json:"createdAt"`
}
