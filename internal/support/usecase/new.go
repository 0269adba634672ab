package usecase

import (
	"context"
	"strings"
	"time"

	"customer-support-agent/internal/conversation/repository"
	"customer-support-agent/internal/intent"
	"customer-support-agent/internal/knowledge"
	"customer-support-agent/internal/order"
	"customer-support-agent/internal/support"
	"customer-support-agent/pkg/keylock"
	pkgLog "customer-support-agent/pkg/log"
)

// AnswerGrader returns a graded policy answer and never fails.
type AnswerGrader interface {
	GradedAnswer(ctx context.Context, question string) knowledge.Graded
}

type implUseCase struct {
	l        pkgLog.Logger
	resolver intent.Resolver
	grader   AnswerGrader
	orders   order.Lookup
	repo     repository.Repository
	locks    *keylock.Locker
	opts     support.Options
	keywords []string
	now      func() time.Time
}

var _ support.UseCase = (*implUseCase)(nil)

// New creates the support UseCase.
func New(
	l pkgLog.Logger,
	resolver intent.Resolver,
	grader AnswerGrader,
	orders order.Lookup,
	repo repository.Repository,
	opts support.Options,
) *implUseCase {
	keywords := make([]string, 0, len(opts.EscalationKeywords))
	for _, k := range opts.EscalationKeywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}

	return &implUseCase{
		l:        l,
		resolver: resolver,
		grader:   grader,
		orders:   orders,
		repo:     repo,
		locks:    keylock.New(),
		opts:     opts,
		keywords: keywords,
		now:      time.Now,
	}
}
