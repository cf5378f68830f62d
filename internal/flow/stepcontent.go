package flow

import (
	"context"
	"fmt"
	"strings"
)

// StepContentInput identifies a single tutorial sub-task whose body should
// be generated, with the full project outline as context.
type StepContentInput struct {
	ProjectTitle       string `json:"projectTitle"`
	StepTitle          string `json:"stepTitle"`
	SubTaskTitle       string `json:"subTaskTitle"`
	SubTaskDescription string `json:"subTaskDescription"`
	FullOutline        string `json:"fullOutline"`
}

// Validate checks the input preconditions before any model call.
func (in *StepContentInput) Validate() error {
	if strings.TrimSpace(in.ProjectTitle) == "" || strings.TrimSpace(in.StepTitle) == "" || strings.TrimSpace(in.SubTaskTitle) == "" {
		return fmt.Errorf("%w: project, step and sub-task titles are required", ErrInvalidInput)
	}
	return nil
}

const stepContentInstructions = `**Instructions:**
1.  Generate comprehensive, easy-to-follow content for the specified sub-task only.
2.  Provide clear explanations of the concepts involved.
3.  Include all necessary code snippets for this sub-task.
4.  **CRITICAL:** All code snippets must be enclosed in fenced code blocks with the appropriate language identifier (e.g., ` + "```javascript or ```bash" + `).
5.  Format the response using Markdown for headings, lists, and inline code.
6.  Focus ONLY on the current sub-task. Do not include content from other sub-tasks.`

func (in *StepContentInput) prompt() string {
	var b strings.Builder
	b.WriteString("You are an expert technical writer creating content for a project-based tutorial.\nYour task is to generate the detailed content for a single sub-task within a larger tutorial.\n\n")
	fmt.Fprintf(&b, "**Tutorial Context:**\n- **Project Title:** %s\n- **Full Tutorial Outline:**\n%s\n\n", in.ProjectTitle, in.FullOutline)
	fmt.Fprintf(&b, "**Current Sub-Task:**\n- **Step:** %s\n- **Sub-Task:** %s\n- **Sub-Task Goal:** %s\n\n", in.StepTitle, in.SubTaskTitle, in.SubTaskDescription)
	b.WriteString(stepContentInstructions)
	return b.String()
}

// GenerateStepContent fills in the body of one tutorial sub-task. The
// project analogue of GenerateLessonContent.
func (s *Service) GenerateStepContent(ctx context.Context, in StepContentInput) (*ContentOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var out ContentOutput
	usage, err := s.callJSON(ctx, ModelRequest{Prompt: in.prompt(), Schema: contentSchema}, &out)
	if err != nil {
		return nil, fmt.Errorf("generate step content: %w", err)
	}
	if out.Content == "" {
		return nil, fmt.Errorf("%w: empty step content", ErrGenerationFailed)
	}
	out.TokensUsed = usage.Total()
	return &out, nil
}
