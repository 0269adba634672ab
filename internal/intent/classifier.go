package intent

import (
	"context"
	"fmt"

	"customer-support-agent/pkg/llmprovider"
	"customer-support-agent/pkg/log"
)

// LLMClassifier asks a language model for every plausible intent.
type LLMClassifier struct {
	llm llmprovider.Generator
	l   log.Logger
}

var _ Classifier = (*LLMClassifier)(nil)

// NewLLMClassifier creates a classifier backed by llm.
func NewLLMClassifier(llm llmprovider.Generator, l log.Logger) *LLMClassifier {
	return &LLMClassifier{llm: llm, l: l}
}

func (c *LLMClassifier) Classify(ctx context.Context, text string) ([]Candidate, error) {
	resp, err := c.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role: "system",
			Parts: []llmprovider.Part{
				{Text: PromptClassifierSystem},
				{Text: "\n\nExamples:\n" + PromptClassifierExamples},
			},
		},
		Messages:    []llmprovider.Message{llmprovider.TextMessage("user", text)},
		Temperature: ClassifierTemperature,
		MaxTokens:   ClassifierMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", LogPrefixClassify, ErrClassifierUnavailable, err)
	}

	candidates, err := ParseCandidates(resp.Text())
	if err != nil {
		c.l.Warnf(ctx, "%s: %v", LogPrefixClassify, err)
		return nil, err
	}

	c.l.Debugf(ctx, "%s: %d candidate(s) from %s", LogPrefixClassify, len(candidates), resp.ProviderName)
	return candidates, nil
}
