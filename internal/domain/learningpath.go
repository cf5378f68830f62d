package domain

import (
	"fmt"
	"strings"
)

// LearningLesson is a single lesson within a learning module.
// Content is empty until it is generated on demand.
type LearningLesson struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
}

// HasContent reports whether the lesson body has been generated.
func (l *LearningLesson) HasContent() bool {
	return l.Content != ""
}

// LearningModule is a major unit of study within a learning path.
type LearningModule struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Lessons     []LearningLesson `json:"lessons"`
}

// LearningPath is a generated curriculum outline owned by one user.
type LearningPath struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Topic        string           `json:"topic"`
	Difficulty   Difficulty       `json:"difficulty"`
	Introduction string           `json:"introduction"`
	Modules      []LearningModule `json:"modules"`
}

// FindLesson locates a lesson by module and lesson ID.
// Returns the containing module and the lesson, or nil if not found.
func (p *LearningPath) FindLesson(moduleID, lessonID string) (*LearningModule, *LearningLesson) {
	for i := range p.Modules {
		if p.Modules[i].ID != moduleID {
			continue
		}
		mod := &p.Modules[i]
		for j := range mod.Lessons {
			if mod.Lessons[j].ID == lessonID {
				return mod, &mod.Lessons[j]
			}
		}
		return mod, nil
	}
	return nil, nil
}

// Outline renders the full path structure as plain text. Used as context
// when generating the body of a single lesson.
func (p *LearningPath) Outline() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Learning Path: %s\n%s\n", p.Title, p.Introduction)
	for _, mod := range p.Modules {
		fmt.Fprintf(&b, "\n## %s\n%s\n", mod.Title, mod.Description)
		for _, lesson := range mod.Lessons {
			fmt.Fprintf(&b, "- %s: %s\n", lesson.Title, lesson.Description)
		}
	}
	return b.String()
}
