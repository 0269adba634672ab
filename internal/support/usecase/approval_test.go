package usecase

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer-support-agent/internal/conversation"
	"customer-support-agent/internal/conversation/repository/cached"
	"customer-support-agent/internal/conversation/repository/sqlite"
	"customer-support-agent/internal/support"
	"customer-support-agent/pkg/log"
)

const refundAction = "I want a refund for my order ORD123"

func TestSuspend_IdempotentToken(t *testing.T) {
	env := newTestEnv(t, nil, support.Options{ApprovalGate: true})
	ctx := context.Background()

	first := route(t, env, "c1", refundAction)
	require.Equal(t, support.StatusAwaitingApproval, first.Status)
	require.NotNil(t, first.Approval)
	assert.Equal(t, ApprovalToken("c1"), first.Approval.Token)
	assert.Equal(t, support.DecisionRefundRequiresApproval, first.Outcome.Decision)
	assert.Equal(t, support.MsgRefundApproval, first.Outcome.FinalAnswer)

	// A later clock must not restart the approval.
	env.uc.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

	second := route(t, env, "c1", "Please process my refund now")
	require.Equal(t, support.StatusAwaitingApproval, second.Status)
	assert.Equal(t, first.Approval.Token, second.Approval.Token)
	assert.True(t, first.Approval.RequestedAt.Equal(second.Approval.RequestedAt))

	pending, err := env.repo.GetPendingApproval(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, refundAction, pending.Payload)

	state, err := env.repo.Load(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, state.PendingApproval)
	assert.Len(t, state.Messages, 4)

	other := route(t, env, "c2", refundAction)
	assert.NotEqual(t, first.Approval.Token, other.Approval.Token)
}

func TestSuspend_OtherTurnsKeepPending(t *testing.T) {
	env := newTestEnv(t, nil, support.Options{ApprovalGate: true})

	route(t, env, "c1", refundAction)
	out := route(t, env, "c1", "Where is my order ORD123?")
	assert.Equal(t, support.StatusCompleted, out.Status)

	state, err := env.repo.Load(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, state.PendingApproval)
}

func TestResume(t *testing.T) {
	tests := []struct {
		name     string
		approved bool
		decision support.Decision
		answer   string
	}{
		{"approved", true, support.DecisionRefundApproved, support.MsgRefundApproved},
		{"denied", false, support.DecisionRefundDenied, support.MsgRefundDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil, support.Options{ApprovalGate: true})
			ctx := context.Background()
			route(t, env, "c1", refundAction)

			out, err := env.uc.Resume(ctx, support.ResumeInput{ConversationID: "c1", Approved: tt.approved})
			require.NoError(t, err)
			assert.Equal(t, tt.decision, out.Outcome.Decision)
			assert.Equal(t, tt.answer, out.Outcome.FinalAnswer)
			assert.False(t, out.Outcome.Escalate)

			_, err = env.repo.GetPendingApproval(ctx, "c1")
			assert.ErrorIs(t, err, conversation.ErrNotFound)

			state, err := env.repo.Load(ctx, "c1")
			require.NoError(t, err)
			assert.False(t, state.PendingApproval)
			assert.Equal(t, string(tt.decision), state.LastDecision)
			assert.Equal(t, tt.answer, state.Messages[len(state.Messages)-1].Content)

			_, err = env.uc.Resume(ctx, support.ResumeInput{ConversationID: "c1", Approved: tt.approved})
			assert.ErrorIs(t, err, support.ErrNoPendingApproval)
		})
	}
}

func TestResume_NothingPending(t *testing.T) {
	env := newTestEnv(t, nil, support.Options{ApprovalGate: true})

	_, err := env.uc.Resume(context.Background(), support.ResumeInput{ConversationID: "never-seen", Approved: true})
	assert.ErrorIs(t, err, support.ErrNoPendingApproval)

	_, err = env.uc.Resume(context.Background(), support.ResumeInput{Approved: true})
	assert.ErrorIs(t, err, support.ErrMissingConversationID)
}

func TestResume_AfterRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "support.db")
	ctx := context.Background()

	repo, err := sqlite.Open(path, log.NewNop())
	require.NoError(t, err)
	env := newTestEnv(t, repo, support.Options{ApprovalGate: true})

	suspended := route(t, env, "c1", refundAction)
	require.Equal(t, support.StatusAwaitingApproval, suspended.Status)
	require.NoError(t, repo.Close())

	reopened, err := sqlite.Open(path, log.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	restarted := newTestEnv(t, reopened, support.Options{ApprovalGate: true})

	view, err := restarted.uc.GetConversation(ctx, support.GetConversationInput{ConversationID: "c1"})
	require.NoError(t, err)
	require.NotNil(t, view.Pending)
	assert.Equal(t, suspended.Approval.Token, view.Pending.Token)

	out, err := restarted.uc.Resume(ctx, support.ResumeInput{ConversationID: "c1", Approved: true})
	require.NoError(t, err)
	assert.Equal(t, support.DecisionRefundApproved, out.Outcome.Decision)
}

// The API and the CLI each run their own cache over one database file.
func TestResume_FromAnotherProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "support.db")
	ctx := context.Background()

	open := func() *testEnv {
		backing, err := sqlite.Open(path, log.NewNop())
		require.NoError(t, err)
		repo, err := cached.New(backing, 16)
		require.NoError(t, err)
		t.Cleanup(func() { _ = repo.Close() })
		return newTestEnv(t, repo, support.Options{ApprovalGate: true})
	}
	api, cli := open(), open()

	suspended := route(t, api, "c1", refundAction)
	require.Equal(t, support.StatusAwaitingApproval, suspended.Status)
	_, err := api.uc.GetConversation(ctx, support.GetConversationInput{ConversationID: "c1"})
	require.NoError(t, err)

	out, err := cli.uc.Resume(ctx, support.ResumeInput{ConversationID: "c1", Approved: true})
	require.NoError(t, err)
	require.Equal(t, support.DecisionRefundApproved, out.Outcome.Decision)

	route(t, api, "c1", "Where is my order ORD123?")

	fresh, err := sqlite.Open(path, log.NewNop())
	require.NoError(t, err)
	defer fresh.Close()

	got, err := fresh.Load(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, got.PendingApproval)
	var contents []string
	for _, m := range got.Messages {
		contents = append(contents, m.Content)
	}
	assert.Contains(t, contents, support.MsgRefundApproved)
	assert.Contains(t, contents, "Where is my order ORD123?")
}

func TestGetConversation(t *testing.T) {
	env := newTestEnv(t, nil, support.Options{})
	ctx := context.Background()

	_, err := env.uc.GetConversation(ctx, support.GetConversationInput{ConversationID: "missing"})
	assert.ErrorIs(t, err, support.ErrConversationNotFound)

	_, err = env.uc.GetConversation(ctx, support.GetConversationInput{})
	assert.ErrorIs(t, err, support.ErrMissingConversationID)

	route(t, env, "c1", "hello")
	view, err := env.uc.GetConversation(ctx, support.GetConversationInput{ConversationID: "c1"})
	require.NoError(t, err)
	assert.Nil(t, view.Pending)
	assert.Len(t, view.State.Messages, 2)
	assert.Equal(t, string(support.DecisionFallback), view.State.LastDecision)
}
