package flow

import "google.golang.org/genai"

// Response schemas submitted with each flow. The provider constrains its
// JSON output to these shapes; outputs are still re-validated on decode.

var subTaskSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"id":          {Type: genai.TypeString, Description: "A unique ID for the sub-task (e.g., 'subtask-1-1')."},
		"title":       {Type: genai.TypeString, Description: "The title of the sub-task."},
		"description": {Type: genai.TypeString, Description: "A short, one-sentence description of what this sub-task covers."},
	},
	Required: []string{"id", "title", "description"},
}

var tutorialStepSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"id":          {Type: genai.TypeString, Description: "A unique ID for the step (e.g., 'step-1-setup')."},
		"title":       {Type: genai.TypeString, Description: "The title of the tutorial step."},
		"description": {Type: genai.TypeString, Description: "A short, one-paragraph description of what this step covers."},
		"subTasks":    {Type: genai.TypeArray, Items: subTaskSchema, Description: "A list of specific, actionable sub-tasks for this step."},
	},
	Required: []string{"id", "title", "description", "subTasks"},
}

var tutorialSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":             {Type: genai.TypeString, Description: "The main title of the overall tutorial."},
		"description":       {Type: genai.TypeString, Description: "A short, one-paragraph description of the entire project."},
		"steps":             {Type: genai.TypeArray, Items: tutorialStepSchema, Description: "An array of tutorial steps."},
		"tags":              {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "Relevant tags: language, frameworks, and the difficulty level."},
		"skills":            {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "Specific skills the user will learn (e.g., 'React Hooks', 'API Fetching')."},
		"simulationDiagram": {Type: genai.TypeString, Description: "A high-level architecture flowchart in Mermaid.js graph syntax (e.g., 'graph TD; A-->B;')."},
	},
	Required: []string{"title", "description", "steps", "tags", "skills", "simulationDiagram"},
}

var learningLessonSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"id":          {Type: genai.TypeString, Description: "A unique ID for the lesson (e.g., 'lesson-1-1')."},
		"title":       {Type: genai.TypeString, Description: "The title of the lesson."},
		"description": {Type: genai.TypeString, Description: "A short, one-sentence description of what this lesson covers."},
	},
	Required: []string{"id", "title", "description"},
}

var learningModuleSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"id":          {Type: genai.TypeString, Description: "A unique ID for the module (e.g., 'module-1-basics')."},
		"title":       {Type: genai.TypeString, Description: "The title of the learning module."},
		"description": {Type: genai.TypeString, Description: "A short, one-paragraph description of what this module covers."},
		"lessons":     {Type: genai.TypeArray, Items: learningLessonSchema, Description: "A list of specific lessons for this module."},
	},
	Required: []string{"id", "title", "description", "lessons"},
}

var learningPathSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":        {Type: genai.TypeString, Description: "The main title of the overall learning path."},
		"introduction": {Type: genai.TypeString, Description: "A short, one-paragraph introduction to the topic."},
		"modules":      {Type: genai.TypeArray, Items: learningModuleSchema, Description: "An array of learning modules."},
	},
	Required: []string{"title", "introduction", "modules"},
}

var contentSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"content": {Type: genai.TypeString, Description: "Detailed, well-structured Markdown content. All code snippets must be in fenced code blocks with language identifiers."},
	},
	Required: []string{"content"},
}

var criterionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"rating": {Type: genai.TypeString, Description: "The rating for this criterion (e.g., 'Needs Improvement', 'Average', 'Good', 'Excellent')."},
		"reason": {Type: genai.TypeString, Description: "A brief, one-sentence justification for the rating."},
	},
	Required: []string{"rating", "reason"},
}

var interviewFeedbackSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"feedback":   {Type: genai.TypeString, Description: "Detailed, constructive feedback on the answer, formatted in Markdown."},
		"score":      {Type: genai.TypeInteger, Description: "A score from 0 to 100 for the overall quality of the answer.", Minimum: genai.Ptr(0.0), Maximum: genai.Ptr(100.0)},
		"transcript": {Type: genai.TypeString, Description: "The full transcript of the user's answer."},
		"analysis": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"clarity":     criterionSchema,
				"relevance":   criterionSchema,
				"fillerWords": criterionSchema,
				"pacing":      criterionSchema,
				"confidence":  criterionSchema,
			},
			Required:    []string{"clarity", "relevance", "fillerWords", "pacing", "confidence"},
			Description: "A detailed analysis of the answer across fixed criteria.",
		},
	},
	Required: []string{"feedback", "score", "transcript", "analysis"},
}

var assistanceSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"assistanceMessage": {Type: genai.TypeString, Description: "A helpful message in Markdown that guides the user based on their question and the tutorial context."},
	},
	Required: []string{"assistanceMessage"},
}
