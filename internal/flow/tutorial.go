package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/projectforgeai/forge-server/internal/domain"
)

// TutorialInput is the request for a full project-tutorial outline.
type TutorialInput struct {
	Prompt          string `json:"prompt"`
	Difficulty      string `json:"difficulty"`
	OperatingSystem string `json:"operatingSystem,omitempty"`
}

// Validate checks the input preconditions before any model call.
func (in *TutorialInput) Validate() error {
	if strings.TrimSpace(in.Prompt) == "" {
		return fmt.Errorf("%w: prompt is required", ErrInvalidInput)
	}
	if _, err := domain.ParseDifficulty(in.Difficulty); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// TutorialOutput is the generated project outline.
type TutorialOutput struct {
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	Steps             []domain.TutorialStep `json:"steps"`
	Tags              []string              `json:"tags"`
	Skills            []string              `json:"skills"`
	SimulationDiagram string                `json:"simulationDiagram"`
	TokensUsed        int                   `json:"tokensUsed"`
}

const tutorialPromptHeader = `You are an expert tutorial generator specializing in creating detailed, comprehensive, project-based learning guides for software developers. Your output must be a robust and well-structured project outline.`

const tutorialPromptInstructions = `**Instructions:**
Your task is to generate a complete project outline based on the user's prompt and the specified difficulty level. The goal is to break down a complex project into a large number of small, manageable, and actionable tasks. For a "Hard" project, you should aim for 100-150 total sub-tasks.

1.  **Main Title and Description:** Generate a concise, descriptive main title and a one-paragraph summary for the entire project.
2.  **High-Level Steps:** Decompose the project into a series of logical, high-level steps (e.g., 'Project Setup', 'API Integration', 'UI Implementation', 'Database Design', 'Deployment'). Each step must have a title and a one-paragraph description.
3.  **Granular Sub-Tasks:** This is the most critical part. For each high-level step, create a detailed list of specific, actionable sub-tasks.
    *   The number and complexity of sub-tasks should directly correspond to the requested **difficulty level**.
        *   **Easy:** Fewer steps, basic sub-tasks. Focus on the core concepts.
        *   **Medium:** More steps, more detailed sub-tasks. Introduce more advanced concepts.
        *   **Hard:** A large number of steps and a very high number of sub-tasks (aim for 100-150 total). Cover advanced topics, edge cases, testing, and best practices.
    *   Each sub-task MUST have a unique ID, a descriptive title, and a single, informative sentence describing its purpose. The sub-task titles should be imperative (e.g., 'Create the Main Component', 'Implement the API Call').
4.  **Tags:** Generate a list of relevant tags for the project. Include the primary programming language, any frameworks or major libraries, and the difficulty rating provided.
5.  **Skills:** Generate a list of 5-10 specific, tangible skills the user will learn by completing this project (e.g., "State Management with React Hooks", "Data Fetching with Axios", "Responsive Design with Flexbox").
6.  **Simulation Diagram:** Create a high-level system architecture or flowchart for the project. The diagram MUST be written using Mermaid.js 'graph' syntax (e.g., 'graph TD; A[Client] --> B(API); B --> C{Database};'). This should give a simple, clear overview of the main components and their interactions.

**CRITICAL:** Do NOT generate the actual implementation code or detailed markdown content in this step. You are only creating the tutorial's high-level structure and outline. The output must be exhaustive and detailed.`

func (in *TutorialInput) prompt() string {
	var b strings.Builder
	b.WriteString(tutorialPromptHeader)
	fmt.Fprintf(&b, "\n\n**Project Request:** %s\n**Difficulty Level:** %s\n", in.Prompt, in.Difficulty)
	writeOSInstruction(&b, in.OperatingSystem)
	b.WriteString("\n")
	b.WriteString(tutorialPromptInstructions)
	return b.String()
}

// GenerateTutorial produces a complete project outline for the prompt.
// Difficulty governs the requested granularity through instruction text only.
func (s *Service) GenerateTutorial(ctx context.Context, in TutorialInput) (*TutorialOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var out TutorialOutput
	usage, err := s.callJSON(ctx, ModelRequest{Prompt: in.prompt(), Schema: tutorialSchema}, &out)
	if err != nil {
		return nil, fmt.Errorf("generate tutorial: %w", err)
	}
	if out.Title == "" || len(out.Steps) == 0 {
		return nil, fmt.Errorf("%w: tutorial output missing title or steps", ErrGenerationFailed)
	}
	out.TokensUsed = usage.Total()
	return &out, nil
}

// writeOSInstruction appends the OS-targeting block shared by the outline
// and content flows. No-op when the user has no OS preference.
func writeOSInstruction(b *strings.Builder, os string) {
	if os == "" {
		return
	}
	fmt.Fprintf(b, "**Target Operating System:** %s\n", os)
	b.WriteString("**Instruction**: Your response must be tailored to the user's OS. For example, use appropriate command-line instructions (e.g., 'dir' for Windows, 'ls' for Linux/macOS) and file path separators.\n")
}
