package flow

import (
	"context"
	"fmt"
	"strings"
)

// AssistanceInput is a request for contextual help on the current
// tutorial task.
type AssistanceInput struct {
	TutorialStep string `json:"tutorialStep"`
	UserProgress string `json:"userProgress"`
	UserCode     string `json:"userCode,omitempty"`
}

// Validate checks the input preconditions before any model call.
func (in *AssistanceInput) Validate() error {
	if strings.TrimSpace(in.TutorialStep) == "" {
		return fmt.Errorf("%w: tutorialStep is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.UserProgress) == "" {
		return fmt.Errorf("%w: userProgress is required", ErrInvalidInput)
	}
	return nil
}

// AssistanceOutput is the generated guidance message.
type AssistanceOutput struct {
	AssistanceMessage string `json:"assistanceMessage"`
	TokensUsed        int    `json:"tokensUsed"`
}

const assistanceWithCodeInstructions = `**INSTRUCTIONS:**
1.  **Analyze the Context:** Carefully read the user's question, their code, and the provided tutorial context.
2.  **Provide a Direct Answer:** Directly address the user's question or problem. If they provided code with an error, identify the specific error in their code.
3.  **Explain the "Why":** Don't just give the answer. Explain *why* the error is occurring and what concept they might be misunderstanding.
4.  **Guide, Don't Solve:** Guide the user toward the correct solution. Provide corrected code snippets, but avoid giving away the complete solution for the entire task.
5.  **Use Markdown:** Format your response for readability (e.g., use code fences for code, bold for emphasis).
6.  **Be Encouraging:** Maintain a positive and supportive tone. Remind the user that getting stuck is a normal part of learning.`

const assistanceInstructions = `**INSTRUCTIONS:**
1.  **Analyze the Context:** Carefully read the user's question and the provided tutorial context.
2.  **Provide a Direct Answer:** Directly address the user's question or problem.
3.  **Use Markdown:** Format your response using Markdown for readability (e.g., use code fences for code, bold for emphasis, and lists for steps).
4.  **Be Encouraging:** Maintain a positive and supportive tone. Remind the user that getting stuck is a normal part of learning.
5.  **Do Not Give the Full Answer:** Do not just give away the complete solution. Guide the user toward finding the solution themselves. Provide hints, suggest what to look for, or explain the relevant concept.`

func (in *AssistanceInput) prompt() string {
	var b strings.Builder
	b.WriteString("You are an expert AI teaching assistant for a software development learning platform.\nYour goal is to provide clear, concise, and encouraging help to users who are stuck on a specific task.\n\n")
	fmt.Fprintf(&b, "**CONTEXT:**\nThe user is working on the following tutorial task:\n---\n%s\n---\n\n", in.TutorialStep)
	fmt.Fprintf(&b, "**USER'S QUESTION/PROBLEM:**\n---\n%q\n---\n", in.UserProgress)
	if strings.TrimSpace(in.UserCode) != "" {
		fmt.Fprintf(&b, "**USER'S CODE:**\n---\n```\n%s\n```\n---\n", in.UserCode)
		b.WriteString(assistanceWithCodeInstructions)
	} else {
		b.WriteString(assistanceInstructions)
	}
	return b.String()
}

// PersonalizedAssistance answers a learner's question about their current
// task. The prompt contract forbids handing over complete solutions and
// asks the model to explain the underlying misconception.
func (s *Service) PersonalizedAssistance(ctx context.Context, in AssistanceInput) (*AssistanceOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var out AssistanceOutput
	usage, err := s.callJSON(ctx, ModelRequest{Prompt: in.prompt(), Schema: assistanceSchema}, &out)
	if err != nil {
		return nil, fmt.Errorf("personalized assistance: %w", err)
	}
	if out.AssistanceMessage == "" {
		return nil, fmt.Errorf("%w: empty assistance message", ErrGenerationFailed)
	}
	out.TokensUsed = usage.Total()
	return &out, nil
}
