package summarizer

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const systemPrompt = `You are an experienced technical recruiter. Summarize the following resume ` +
	`in at most five sentences, focusing on role, seniority, core skills and notable experience. ` +
	`Return plain text only.`

// Summarizer condenses resume text into a short recruiter-facing summary.
type Summarizer struct {
	client *openai.Client
}

// NewSummarizer creates a resume summarizer.
func NewSummarizer(apiKey string) *Summarizer {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Summarizer{
		client: &client,
	}
}

// Summarize produces a short summary of the given resume text.
func (s *Summarizer) Summarize(ctx context.Context, resumeText string) (string, error) {
	if resumeText == "" {
		return "", fmt.Errorf("resume text cannot be empty")
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(resumeText),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to summarize resume: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	return resp.Choices[0].Message.Content, nil
}
