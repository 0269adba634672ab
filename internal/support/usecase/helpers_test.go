package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"customer-support-agent/internal/conversation"
	"customer-support-agent/internal/conversation/repository"
	"customer-support-agent/internal/conversation/repository/sqlite"
	"customer-support-agent/internal/intent"
	"customer-support-agent/internal/knowledge"
	"customer-support-agent/internal/order"
	"customer-support-agent/internal/support"
	"customer-support-agent/pkg/log"
)

// keywordResolver picks an intent from simple keywords and remembers the
// texts it was asked about.
type keywordResolver struct {
	mu    sync.Mutex
	texts []string
	hook  func(ctx context.Context)
}

func (r *keywordResolver) Resolve(ctx context.Context, text string) intent.Resolution {
	r.mu.Lock()
	r.texts = append(r.texts, text)
	hook := r.hook
	r.mu.Unlock()
	if hook != nil {
		hook(ctx)
	}

	lower := strings.ToLower(text)
	var candidates []intent.Candidate
	switch {
	case strings.Contains(lower, "refund"):
		candidates = []intent.Candidate{{Label: intent.LabelPolicy, Confidence: 0.6}, {Label: intent.LabelRefund, Confidence: 0.8}}
	case strings.Contains(lower, "order") || strings.Contains(lower, "package"):
		candidates = []intent.Candidate{{Label: intent.LabelOrderStatus, Confidence: 0.7}}
	case strings.Contains(lower, "return"):
		candidates = []intent.Candidate{{Label: intent.LabelPolicy, Confidence: 0.9}}
	default:
		candidates = []intent.Candidate{{Label: intent.LabelOther, Confidence: 0.3}}
	}
	return intent.Rank(candidates)
}

func (r *keywordResolver) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

// scriptedGrader answers from a map; unknown questions are weak.
type scriptedGrader struct {
	mu      sync.Mutex
	answers map[string]string
	asked   []string
}

func (g *scriptedGrader) GradedAnswer(ctx context.Context, question string) knowledge.Graded {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.asked = append(g.asked, question)
	a := g.answers[question]
	return knowledge.Grade(question, knowledge.Answer{Text: a, Sources: "policy passage"})
}

type testEnv struct {
	uc       *implUseCase
	repo     repository.Repository
	resolver *keywordResolver
	grader   *scriptedGrader
}

func newTestEnv(t *testing.T, repo repository.Repository, opts support.Options) *testEnv {
	t.Helper()
	if repo == nil {
		r, err := sqlite.OpenInMemory(log.NewNop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = r.Close() })
		repo = r
	}

	env := &testEnv{
		repo:     repo,
		resolver: &keywordResolver{},
		grader:   &scriptedGrader{answers: map[string]string{}},
	}
	env.uc = New(log.NewNop(), env.resolver, env.grader, order.NewCatalog(map[string]string{
		"ORD123": "Shipped - expected delivery in 2 days",
	}), repo, opts)
	env.uc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return env
}

// failingRepo returns loadErr from Load and delegates everything else.
type failingRepo struct {
	repository.Repository
	loadErr error
	saveErr error
	saves   int
}

func (f *failingRepo) Load(ctx context.Context, id string) (conversation.State, error) {
	if f.loadErr != nil {
		return conversation.State{}, f.loadErr
	}
	return f.Repository.Load(ctx, id)
}

func (f *failingRepo) Save(ctx context.Context, opt repository.SaveOptions) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.Repository.Save(ctx, opt)
}
