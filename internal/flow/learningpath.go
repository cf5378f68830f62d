package flow

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/projectforgeai/forge-server/internal/domain"
)

// LearningPathInput is the request for a curriculum outline on a topic.
type LearningPathInput struct {
	Topic           string `json:"topic"`
	Difficulty      string `json:"difficulty"`
	OperatingSystem string `json:"operatingSystem,omitempty"`
}

// Validate checks the input preconditions before any model call.
func (in *LearningPathInput) Validate() error {
	if strings.TrimSpace(in.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	if _, err := domain.ParseDifficulty(in.Difficulty); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// LearningPathOutput is the generated curriculum outline. Lesson bodies are
// intentionally absent; they are generated one at a time on first view.
type LearningPathOutput struct {
	ID           string                  `json:"id"`
	Title        string                  `json:"title"`
	Topic        string                  `json:"topic"`
	Difficulty   string                  `json:"difficulty"`
	Introduction string                  `json:"introduction"`
	Modules      []domain.LearningModule `json:"modules"`
	TokensUsed   int                     `json:"tokensUsed"`
}

const learningPathPrompt = `You are an expert curriculum designer creating a learning path for a given topic.
Your task is to generate a well-structured learning path outline with modules and lessons.
**IMPORTANT**: Do NOT generate the actual lesson content. Only generate the titles and descriptions for the modules and lessons.`

const learningPathInstructions = `**Instructions:**
1.  **Structure:** Create a series of modules. Each module should represent a major unit of study.
2.  **Lessons:** Within each module, create several lessons. Each lesson must have a title and a short description.
3.  **Difficulty:** The depth and complexity of the modules and lessons should directly correspond to the requested difficulty level.
    *   **Easy:** Focus on fundamental concepts, simple examples, and getting started.
    *   **Medium:** Introduce more intermediate concepts, more complex examples, and best practices.
    *   **Hard:** Cover advanced topics, complex use cases, performance considerations, and in-depth theory.`

func (in *LearningPathInput) prompt() string {
	var b strings.Builder
	b.WriteString(learningPathPrompt)
	fmt.Fprintf(&b, "\n\n**Topic:** %s\n**Difficulty Level:** %s\n", in.Topic, in.Difficulty)
	writeOSInstruction(&b, in.OperatingSystem)
	b.WriteString("\n")
	b.WriteString(learningPathInstructions)
	return b.String()
}

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// pathSlug builds a unique slug-style path ID from topic and difficulty.
func pathSlug(topic, difficulty string, now time.Time) string {
	base := slugNonAlnum.ReplaceAllString(strings.ToLower(topic), "-")
	base = strings.Trim(base, "-")
	return fmt.Sprintf("%s-%s-%d", base, strings.ToLower(difficulty), now.UnixMilli())
}

// GenerateLearningPath produces a modules/lessons outline for a topic.
func (s *Service) GenerateLearningPath(ctx context.Context, in LearningPathInput) (*LearningPathOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var out LearningPathOutput
	usage, err := s.callJSON(ctx, ModelRequest{Prompt: in.prompt(), Schema: learningPathSchema}, &out)
	if err != nil {
		return nil, fmt.Errorf("generate learning path: %w", err)
	}
	if out.Title == "" || len(out.Modules) == 0 {
		return nil, fmt.Errorf("%w: learning path output missing title or modules", ErrGenerationFailed)
	}

	out.ID = pathSlug(in.Topic, in.Difficulty, time.Now())
	out.Topic = in.Topic
	out.Difficulty = in.Difficulty
	out.TokensUsed = usage.Total()
	return &out, nil
}

// LessonContentInput identifies a single lesson whose body should be
// generated, with the full path outline as context.
type LessonContentInput struct {
	PathTitle       string `json:"pathTitle"`
	ModuleTitle     string `json:"moduleTitle"`
	LessonTitle     string `json:"lessonTitle"`
	FullOutline     string `json:"fullOutline"`
	OperatingSystem string `json:"operatingSystem,omitempty"`
}

// Validate checks the input preconditions before any model call.
func (in *LessonContentInput) Validate() error {
	if strings.TrimSpace(in.PathTitle) == "" || strings.TrimSpace(in.ModuleTitle) == "" || strings.TrimSpace(in.LessonTitle) == "" {
		return fmt.Errorf("%w: path, module and lesson titles are required", ErrInvalidInput)
	}
	return nil
}

// ContentOutput is a generated Markdown body for one lesson or sub-task.
type ContentOutput struct {
	Content    string `json:"content"`
	TokensUsed int    `json:"tokensUsed"`
}

const lessonContentInstructions = `**Instructions:**
1.  Generate comprehensive, easy-to-follow content for the specified lesson.
2.  Provide clear explanations of the concepts involved.
3.  Include all necessary code snippets for this lesson.
4.  **CRITICAL:** All code snippets must be enclosed in fenced code blocks with the appropriate language identifier (e.g., ` + "```javascript or ```bash" + `).
5.  Format the response using Markdown for headings, lists, and inline code.
6.  Focus ONLY on the current lesson. Do not include content from other lessons.`

func (in *LessonContentInput) prompt() string {
	var b strings.Builder
	b.WriteString("You are an expert technical writer creating content for a learning path.\nYour task is to generate the detailed content for a single lesson within a larger curriculum.\n\n")
	fmt.Fprintf(&b, "**Learning Path Context:**\n- **Path Title:** %s\n- **Full Path Outline:**\n%s\n\n", in.PathTitle, in.FullOutline)
	fmt.Fprintf(&b, "**Current Lesson:**\n- **Module:** %s\n- **Lesson:** %s\n", in.ModuleTitle, in.LessonTitle)
	writeOSInstruction(&b, in.OperatingSystem)
	b.WriteString("\n")
	b.WriteString(lessonContentInstructions)
	return b.String()
}

// GenerateLessonContent fills in the body of one lesson. Kept separate from
// GenerateLearningPath so large paths stay cheap to create and the expensive
// prose is generated incrementally as lessons are opened.
func (s *Service) GenerateLessonContent(ctx context.Context, in LessonContentInput) (*ContentOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var out ContentOutput
	usage, err := s.callJSON(ctx, ModelRequest{Prompt: in.prompt(), Schema: contentSchema}, &out)
	if err != nil {
		return nil, fmt.Errorf("generate lesson content: %w", err)
	}
	if out.Content == "" {
		return nil, fmt.Errorf("%w: empty lesson content", ErrGenerationFailed)
	}
	out.TokensUsed = usage.Total()
	return &out, nil
}
