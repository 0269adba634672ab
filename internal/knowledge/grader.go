package knowledge

import (
	"context"
	"strings"

	"customer-support-agent/pkg/log"
)

// IsWeak reports whether answer is blank or contains a refusal or hedging
// phrase. Typographic apostrophes count as plain ones.
func IsWeak(answer string) bool {
	normalized := strings.ToLower(strings.TrimSpace(answer))
	if normalized == "" {
		return true
	}
	normalized = strings.ReplaceAll(normalized, "’", "'")
	for _, p := range weakPhrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}

// Grade classifies an answer. It is pure; the question only documents
// what the answer was for.
func Grade(question string, a Answer) Graded {
	return Graded{Answer: a.Text, Sources: a.Sources, IsWeak: IsWeak(a.Text)}
}

// AnswerGrader asks a Retriever and grades what comes back. Retriever
// failures become an empty, weak answer.
type AnswerGrader struct {
	retriever Retriever
	l         log.Logger
}

// NewAnswerGrader wraps r.
func NewAnswerGrader(r Retriever, l log.Logger) *AnswerGrader {
	return &AnswerGrader{retriever: r, l: l}
}

// GradedAnswer never fails.
func (g *AnswerGrader) GradedAnswer(ctx context.Context, question string) Graded {
	a, err := g.retriever.Answer(ctx, question)
	if err != nil {
		g.l.Warnf(ctx, "%s: retriever failed, treating answer as weak: %v", LogPrefixGrade, err)
		return Graded{IsWeak: true}
	}

	graded := Grade(question, a)
	g.l.Debugf(ctx, "%s: weak=%t", LogPrefixGrade, graded.IsWeak)
	return graded
}
