// Package domain contains core domain types for the ForgeServer application.
package domain

import (
	"fmt"
	"strings"
)

// SubTask is the smallest actionable unit within a tutorial step.
// Content is empty until it is generated on demand.
type SubTask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Content     string `json:"content,omitempty"`
}

// HasContent reports whether the sub-task body has been generated.
func (st *SubTask) HasContent() bool {
	return st.Content != ""
}

// TutorialStep is a high-level unit of a project tutorial.
// Completed must always equal the conjunction of its sub-tasks' Completed flags.
type TutorialStep struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SubTasks    []SubTask `json:"subTasks"`
	Completed   bool      `json:"completed"`
}

// RecomputeCompleted derives the step flag from its sub-tasks.
// A step with no sub-tasks is never considered completed.
func (s *TutorialStep) RecomputeCompleted() {
	if len(s.SubTasks) == 0 {
		s.Completed = false
		return
	}
	for i := range s.SubTasks {
		if !s.SubTasks[i].Completed {
			s.Completed = false
			return
		}
	}
	s.Completed = true
}

// Project is a generated (or seeded) tutorial outline owned by one user.
type Project struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Image             string         `json:"image,omitempty"`
	DataAIHint        string         `json:"dataAiHint,omitempty"`
	Steps             []TutorialStep `json:"steps"`
	Tags              []string       `json:"tags,omitempty"`
	Skills            []string       `json:"skills,omitempty"`
	SimulationDiagram string         `json:"simulationDiagram,omitempty"`
}

// FindSubTask locates a sub-task by step and sub-task ID.
// Returns the containing step and the sub-task, or nil if not found.
func (p *Project) FindSubTask(stepID, subTaskID string) (*TutorialStep, *SubTask) {
	for i := range p.Steps {
		if p.Steps[i].ID != stepID {
			continue
		}
		step := &p.Steps[i]
		for j := range step.SubTasks {
			if step.SubTasks[j].ID == subTaskID {
				return step, &step.SubTasks[j]
			}
		}
		return step, nil
	}
	return nil, nil
}

// ToggleSubTask flips a sub-task's completion flag and recomputes the
// parent step's flag to preserve the completion invariant.
func (p *Project) ToggleSubTask(stepID, subTaskID string, completed bool) error {
	step, subTask := p.FindSubTask(stepID, subTaskID)
	if subTask == nil {
		return fmt.Errorf("sub-task %s/%s not found in project %s", stepID, subTaskID, p.ID)
	}
	subTask.Completed = completed
	step.RecomputeCompleted()
	return nil
}

// Outline renders the full project structure as plain text. Used as context
// when generating the body of a single sub-task.
func (p *Project) Outline() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n%s\n", p.Title, p.Description)
	for _, step := range p.Steps {
		fmt.Fprintf(&b, "\n## %s\n%s\n", step.Title, step.Description)
		for _, st := range step.SubTasks {
			fmt.Fprintf(&b, "- %s: %s\n", st.Title, st.Description)
		}
	}
	return b.String()
}
