package usecase

import (
	"context"
	"fmt"
	"strings"

	"customer-support-agent/internal/knowledge"
	"customer-support-agent/internal/knowledge/repository"
	"customer-support-agent/pkg/llmprovider"
)

// Answer retrieves the top passages for question and asks the model to
// answer from them only. With no passages it refuses without calling the
// model.
func (uc *implUseCase) Answer(ctx context.Context, question string) (knowledge.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return knowledge.Answer{}, knowledge.ErrEmptyQuestion
	}

	passages, err := uc.repo.Search(ctx, repository.SearchOptions{Query: question, Limit: uc.cfg.TopK})
	if err != nil {
		uc.l.Errorf(ctx, "%s: search failed: %v", knowledge.LogPrefixAnswer, err)
		return knowledge.Answer{}, fmt.Errorf("%w: %v", knowledge.ErrRetrieverUnavailable, err)
	}
	if len(passages) == 0 {
		uc.l.Infof(ctx, "%s: no passages found", knowledge.LogPrefixAnswer)
		return knowledge.Answer{Text: knowledge.NotEnoughInformation}, nil
	}

	sources := joinPassages(passages)

	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: knowledge.PromptAnswerSystem}},
		},
		Messages: []llmprovider.Message{
			llmprovider.TextMessage("user", fmt.Sprintf(knowledge.PromptAnswerUser, sources, question)),
		},
		Temperature: knowledge.AnswerTemperature,
		MaxTokens:   knowledge.AnswerMaxTokens,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: generation failed: %v", knowledge.LogPrefixAnswer, err)
		return knowledge.Answer{}, fmt.Errorf("%w: %v", knowledge.ErrRetrieverUnavailable, err)
	}

	uc.l.Infof(ctx, "%s: answered from %d passage(s) via %s", knowledge.LogPrefixAnswer, len(passages), resp.ProviderName)
	return knowledge.Answer{Text: strings.TrimSpace(resp.Text()), Sources: sources}, nil
}

func joinPassages(passages []knowledge.Passage) string {
	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		parts = append(parts, strings.TrimSpace(p.Content))
	}
	return strings.Join(parts, "\n\n")
}
