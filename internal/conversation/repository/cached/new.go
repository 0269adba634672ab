// Package cached wraps a conversation repository with an in-process LRU of
// recently used states. Writes go through to the backing store first.
//
// A hit is only served after the backing store confirms the cached revision
// is still current, so several processes may share one store. The cache
// saves decoding the transcript, not the round trip.
package cached

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"customer-support-agent/internal/conversation"
	"customer-support-agent/internal/conversation/repository"
)

type implRepository struct {
	next  repository.Repository
	mu    sync.Mutex
	cache *lru.Cache[string, conversation.State]
}

var _ repository.Repository = (*implRepository)(nil)

// New decorates next with an LRU holding up to size states.
func New(next repository.Repository, size int) (*implRepository, error) {
	cache, err := lru.New[string, conversation.State](size)
	if err != nil {
		return nil, fmt.Errorf("cached: %w", err)
	}
	return &implRepository{next: next, cache: cache}, nil
}

func (r *implRepository) Load(ctx context.Context, conversationID string) (conversation.State, error) {
	if s, ok := r.cache.Get(conversationID); ok {
		rev, err := r.next.Revision(ctx, conversationID)
		if err != nil && !errors.Is(err, conversation.ErrNotFound) {
			return conversation.State{}, err
		}
		if err == nil && rev == s.Revision {
			return s.Clone(), nil
		}
	}

	s, err := r.next.Load(ctx, conversationID)
	if err != nil {
		return conversation.State{}, err
	}
	r.fill(conversationID, s)
	return s, nil
}

func (r *implRepository) Revision(ctx context.Context, conversationID string) (int64, error) {
	return r.next.Revision(ctx, conversationID)
}

func (r *implRepository) Save(ctx context.Context, opt repository.SaveOptions) error {
	id := opt.State.ConversationID
	if err := r.next.Save(ctx, opt); err != nil {
		if !errors.Is(err, repository.ErrInvalidOptions) {
			r.mu.Lock()
			r.cache.Remove(id)
			r.mu.Unlock()
		}
		return err
	}
	saved := opt.State
	saved.Revision++
	r.fill(id, saved)
	return nil
}

// fill caches s unless the entry already holds the same or a later revision.
// Loads race with saves, so an older read must never replace a newer write.
func (r *implRepository) fill(id string, s conversation.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.cache.Peek(id); ok && cur.Revision >= s.Revision {
		return
	}
	r.cache.Add(id, s.Clone())
}

func (r *implRepository) GetPendingApproval(ctx context.Context, conversationID string) (conversation.PendingApproval, error) {
	return r.next.GetPendingApproval(ctx, conversationID)
}

func (r *implRepository) Close() error {
	r.cache.Purge()
	return r.next.Close()
}
