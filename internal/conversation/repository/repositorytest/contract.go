// Package repositorytest holds behaviour checks shared by every
// conversation repository backend.
package repositorytest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"customer-support-agent/internal/conversation"
	"customer-support-agent/internal/conversation/repository"
)

// Factory returns a fresh, empty repository.
type Factory func(t *testing.T) repository.Repository

// Run exercises the Repository contract against repositories built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Run("load missing", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Load(context.Background(), "nope")
		assert.ErrorIs(t, err, conversation.ErrNotFound)
	})

	t.Run("save then load", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		s := conversation.NewState("c1")
		s.Append(conversation.RoleUser, "hello")
		s.Append(conversation.RoleAssistant, "hi")
		s.LastDecision = "fallback"
		require.NoError(t, repo.Save(ctx, repository.SaveOptions{State: s}))
		s.Revision++

		got, err := repo.Load(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, s, got)

		got.Append(conversation.RoleUser, "again")
		require.NoError(t, repo.Save(ctx, repository.SaveOptions{State: got}))
		got, err = repo.Load(ctx, "c1")
		require.NoError(t, err)
		assert.Len(t, got.Messages, 3)
		assert.Equal(t, int64(2), got.Revision)
	})

	t.Run("stale save rejected", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		s := conversation.NewState("c1")
		s.Append(conversation.RoleUser, "hello")
		require.NoError(t, repo.Save(ctx, repository.SaveOptions{State: s}))

		first, err := repo.Load(ctx, "c1")
		require.NoError(t, err)
		second, err := repo.Load(ctx, "c1")
		require.NoError(t, err)

		first.Append(conversation.RoleAssistant, "from first")
		require.NoError(t, repo.Save(ctx, repository.SaveOptions{State: first}))

		second.Append(conversation.RoleAssistant, "from second")
		err = repo.Save(ctx, repository.SaveOptions{State: second})
		require.ErrorIs(t, err, conversation.ErrStaleState)

		got, err := repo.Load(ctx, "c1")
		require.NoError(t, err)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "from first", got.Messages[1].Content)

		// A brand new state cannot replace one that already exists.
		err = repo.Save(ctx, repository.SaveOptions{State: conversation.NewState("c1")})
		assert.ErrorIs(t, err, conversation.ErrStaleState)
	})

	t.Run("revision", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Revision(ctx, "c1")
		assert.ErrorIs(t, err, conversation.ErrNotFound)

		s := conversation.NewState("c1")
		require.NoError(t, repo.Save(ctx, repository.SaveOptions{State: s}))
		rev, err := repo.Revision(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), rev)

		s.Revision = rev
		require.NoError(t, repo.Save(ctx, repository.SaveOptions{State: s}))
		rev, err = repo.Revision(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), rev)
	})

	t.Run("pending approval lifecycle", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.GetPendingApproval(ctx, "c1")
		assert.ErrorIs(t, err, conversation.ErrNotFound)

		s := conversation.NewState("c1")
		s.PendingApproval = true
		p := conversation.PendingApproval{
			ConversationID: "c1",
			Token:          "tok-1",
			RequestedAt:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
			Payload:        "I want a refund",
		}
		require.NoError(t, repo.Save(ctx, repository.SaveOptions{State: s, PutPending: &p}))
		s.Revision++

		got, err := repo.GetPendingApproval(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, p.Token, got.Token)
		assert.Equal(t, p.Payload, got.Payload)
		assert.True(t, p.RequestedAt.Equal(got.RequestedAt))

		// Same token again keeps the original record.
		again := p
		again.RequestedAt = p.RequestedAt.Add(time.Hour)
		require.NoError(t, repo.Save(ctx, repository.SaveOptions{State: s, PutPending: &again}))
		s.Revision++
		got, err = repo.GetPendingApproval(ctx, "c1")
		require.NoError(t, err)
		assert.True(t, p.RequestedAt.Equal(got.RequestedAt))

		other := p
		other.Token = "tok-2"
		err = repo.Save(ctx, repository.SaveOptions{State: s, PutPending: &other})
		assert.ErrorIs(t, err, conversation.ErrPendingExists)

		s.PendingApproval = false
		require.NoError(t, repo.Save(ctx, repository.SaveOptions{State: s, DeletePending: true}))
		s.Revision++
		_, err = repo.GetPendingApproval(ctx, "c1")
		assert.ErrorIs(t, err, conversation.ErrNotFound)

		err = repo.Save(ctx, repository.SaveOptions{State: s, DeletePending: true})
		assert.ErrorIs(t, err, conversation.ErrNotFound)
	})

	t.Run("failed write leaves state untouched", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		s := conversation.NewState("c1")
		s.Append(conversation.RoleUser, "first")
		require.NoError(t, repo.Save(ctx, repository.SaveOptions{State: s}))
		s.Revision++

		s.Append(conversation.RoleAssistant, "second")
		err := repo.Save(ctx, repository.SaveOptions{State: s, DeletePending: true})
		require.ErrorIs(t, err, conversation.ErrNotFound)

		got, err := repo.Load(ctx, "c1")
		require.NoError(t, err)
		assert.Len(t, got.Messages, 1)
		assert.Equal(t, int64(1), got.Revision)
	})

	t.Run("invalid options", func(t *testing.T) {
		repo := newRepo(t)
		err := repo.Save(context.Background(), repository.SaveOptions{})
		assert.ErrorIs(t, err, repository.ErrInvalidOptions)
	})

	t.Run("parallel saves on distinct ids", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < 16; i++ {
			id := fmt.Sprintf("conv-%d", i)
			g.Go(func() error {
				s := conversation.NewState(id)
				s.Append(conversation.RoleUser, id)
				return repo.Save(gctx, repository.SaveOptions{State: s})
			})
		}
		require.NoError(t, g.Wait())

		for i := 0; i < 16; i++ {
			id := fmt.Sprintf("conv-%d", i)
			got, err := repo.Load(ctx, id)
			require.NoError(t, err)
			require.Len(t, got.Messages, 1)
			assert.Equal(t, id, got.Messages[0].Content)
		}
	})
}
