package flow

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/projectforgeai/forge-server/internal/domain"
)

// InterviewFeedbackInput is the request for feedback on one interview
// answer. Exactly one of AnswerText or AnswerAudio is usually set; when
// both are present the audio wins for delivery analysis.
type InterviewFeedbackInput struct {
	Question    string `json:"question"`
	AnswerText  string `json:"answerText,omitempty"`
	AnswerAudio string `json:"answerAudio,omitempty"` // data URI with base64 audio payload
}

// Validate checks the input preconditions before any model call.
func (in *InterviewFeedbackInput) Validate() error {
	if strings.TrimSpace(in.Question) == "" {
		return fmt.Errorf("%w: question is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.AnswerText) == "" && strings.TrimSpace(in.AnswerAudio) == "" {
		return fmt.Errorf("%w: either answerText or answerAudio is required", ErrInvalidInput)
	}
	return nil
}

// hasAudio reports whether delivery criteria can be assessed.
func (in *InterviewFeedbackInput) hasAudio() bool {
	return strings.TrimSpace(in.AnswerAudio) != ""
}

// parseAudioDataURI decodes a "data:<mime>;base64,<payload>" URI.
func parseAudioDataURI(uri string) (*AudioPart, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("audio must be a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("audio data URI has no payload")
	}
	mime, found := strings.CutSuffix(meta, ";base64")
	if !found {
		return nil, fmt.Errorf("audio data URI must be base64 encoded")
	}
	if mime == "" {
		mime = "audio/webm"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode audio payload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("audio payload is empty")
	}
	return &AudioPart{MIMEType: mime, Data: data}, nil
}

const interviewAudioInstructions = `**Instructions:**
1.  **Transcribe the Audio:** First, accurately transcribe the user's spoken answer from the audio. The full transcript must be included in the 'transcript' output field.
2.  **Analyze the Content (from Transcript):** Based on your transcription, evaluate the substance of the answer.
    *   **Clarity:** Is the answer well-organized, logical, and easy to follow?
    *   **Relevance:** Does the answer directly and effectively address the question asked?
3.  **Analyze the Delivery (from Audio):** Listen to the audio to evaluate the user's delivery.
    *   **Filler Words:** Identify the frequency and impact of filler words (e.g., "um," "ah," "uh," "like," "you know"). A great answer has very few.
    *   **Pacing:** Was the speaking pace appropriate? Was it too fast, making it hard to follow? Or too slow, sounding hesitant?
    *   **Confidence:** Assess the user's confidence from their tone, pace, and avoidance of hesitation.
4.  **Provide Structured Analysis:** For each of the analysis criteria (Clarity, Relevance, Filler Words, Pacing, Confidence), provide a rating ('Needs Improvement', 'Average', 'Good', 'Excellent') and a brief, one-sentence reason for that rating.
5.  **Provide Detailed Feedback:** Write comprehensive feedback in Markdown format. Be encouraging and actionable.
    *   Start with a positive point about their content or delivery.
    *   Identify specific areas for improvement, quoting from the transcript where helpful.
    *   Provide concrete examples of how the user could rephrase parts of their answer or improve their delivery.
6.  **Assign a Score:** Give an overall score from 0 to 100, considering both the content of the answer and the quality of the delivery.`

const interviewTextInstructions = `**Instructions:**
1.  **Echo the Answer:** Set the 'transcript' output field to the user's written answer exactly as given.
2.  **Analyze the Content:** Evaluate the substance of the answer.
    *   **Clarity:** Is the answer well-organized, logical, and easy to follow?
    *   **Relevance:** Does the answer directly and effectively address the question asked?
3.  **Provide Structured Analysis:** For Clarity and Relevance, provide a rating ('Needs Improvement', 'Average', 'Good', 'Excellent') and a brief, one-sentence reason. The delivery criteria (fillerWords, pacing, confidence) cannot be judged from text; rate each of them exactly 'Not Applicable' with a one-sentence reason saying a written answer has no delivery to assess.
4.  **Provide Detailed Feedback:** Write comprehensive feedback in Markdown format. Be encouraging and actionable.
    *   Start with a positive point about the content.
    *   Identify specific areas for improvement, quoting from the answer where helpful.
    *   Provide concrete examples of how the user could rephrase parts of their answer.
5.  **Assign a Score:** Give an overall score from 0 to 100 based on the content of the answer.`

func (in *InterviewFeedbackInput) prompt() string {
	var b strings.Builder
	b.WriteString("You are a world-class interview and speech coach. Your task is to provide high-quality, constructive feedback on a user's answer to an interview question.\n\n")
	fmt.Fprintf(&b, "**Interview Question:**\n---\n%s\n---\n\n", in.Question)
	if in.hasAudio() {
		b.WriteString("**User's Spoken Answer:** provided as the attached audio.\n\n")
		b.WriteString(interviewAudioInstructions)
	} else {
		fmt.Fprintf(&b, "**User's Written Answer:**\n---\n%s\n---\n\n", in.AnswerText)
		b.WriteString(interviewTextInstructions)
	}
	return b.String()
}

// GenerateInterviewFeedback scores one interview answer. With audio, all
// five criteria are assessed from the recording; with text only, the three
// delivery criteria are forced to the Not Applicable sentinel rather than
// fabricated.
func (s *Service) GenerateInterviewFeedback(ctx context.Context, in InterviewFeedbackInput) (*domain.InterviewFeedback, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	req := ModelRequest{Prompt: in.prompt(), Schema: interviewFeedbackSchema}
	if in.hasAudio() {
		audio, err := parseAudioDataURI(in.AnswerAudio)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		req.Audio = audio
	}

	var out domain.InterviewFeedback
	usage, err := s.callJSON(ctx, req, &out)
	if err != nil {
		return nil, fmt.Errorf("generate interview feedback: %w", err)
	}
	if out.Score < 0 || out.Score > 100 {
		return nil, fmt.Errorf("%w: score %d out of range", ErrGenerationFailed, out.Score)
	}

	if !in.hasAudio() {
		// Delivery cannot be judged from text regardless of what the
		// model returned.
		notApplicable := domain.CriterionAssessment{
			Rating: domain.RatingNotApplicable,
			Reason: "A written answer has no spoken delivery to assess.",
		}
		out.Analysis.FillerWords = notApplicable
		out.Analysis.Pacing = notApplicable
		out.Analysis.Confidence = notApplicable
		if out.Transcript == "" {
			out.Transcript = in.AnswerText
		}
	}

	out.TokensUsed = usage.Total()
	return &out, nil
}
