package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"customer-support-agent/internal/conversation"
	"customer-support-agent/internal/conversation/repository"
)

// getter is satisfied by both *goredis.Client and *goredis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

func (r *implRepository) Load(ctx context.Context, conversationID string) (conversation.State, error) {
	vals, err := r.rdb.MGet(ctx, r.stateKey(conversationID), r.revKey(conversationID)).Result()
	if err != nil {
		return conversation.State{}, fmt.Errorf("%w: %v", repository.ErrFailedToLoad, err)
	}
	raw, ok := vals[0].(string)
	if !ok {
		return conversation.State{}, conversation.ErrNotFound
	}

	state, err := conversation.Decode(conversationID, []byte(raw))
	if err != nil {
		r.l.Errorf(ctx, "internal.conversation.repository.redis.Load: %s: %v", conversationID, err)
		return conversation.State{}, err
	}
	if s, ok := vals[1].(string); ok {
		if state.Revision, err = strconv.ParseInt(s, 10, 64); err != nil {
			return conversation.State{}, fmt.Errorf("%w: revision: %v", conversation.ErrMalformedState, err)
		}
	}
	return state, nil
}

func (r *implRepository) Revision(ctx context.Context, conversationID string) (int64, error) {
	rev, err := readRevision(ctx, r.rdb, r.revKey(conversationID))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", repository.ErrFailedToLoad, err)
	}
	if rev > 0 {
		return rev, nil
	}
	n, err := r.rdb.Exists(ctx, r.stateKey(conversationID)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", repository.ErrFailedToLoad, err)
	}
	if n == 0 {
		return 0, conversation.ErrNotFound
	}
	return 0, nil
}

// readRevision treats a missing key as revision 0.
func readRevision(ctx context.Context, c getter, key string) (int64, error) {
	rev, err := c.Get(ctx, key).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return rev, err
}

// Save watches the pending and revision keys so the revision check, the
// pending check and the write commit together. Watch conflicts are retried
// a few times; a revision mismatch is not.
func (r *implRepository) Save(ctx context.Context, opt repository.SaveOptions) error {
	if err := opt.Validate(); err != nil {
		return err
	}

	raw, err := conversation.Encode(opt.State)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrFailedToSave, err)
	}

	id := opt.State.ConversationID
	stateKey, pendingKey, revKey := r.stateKey(id), r.pendingKey(id), r.revKey(id)

	txf := func(tx *goredis.Tx) error {
		cur, err := readRevision(ctx, tx, revKey)
		if err != nil {
			return fmt.Errorf("%w: revision: %v", repository.ErrFailedToSave, err)
		}
		if cur != opt.State.Revision {
			return conversation.ErrStaleState
		}

		var pendingRaw []byte
		switch {
		case opt.PutPending != nil:
			current, err := r.readPending(ctx, tx, pendingKey)
			if err == nil {
				if current.Token != opt.PutPending.Token {
					return conversation.ErrPendingExists
				}
			} else if !errors.Is(err, conversation.ErrNotFound) {
				return err
			} else {
				pendingRaw, err = json.Marshal(opt.PutPending)
				if err != nil {
					return fmt.Errorf("%w: %v", repository.ErrFailedToSave, err)
				}
			}
		case opt.DeletePending:
			n, err := tx.Exists(ctx, pendingKey).Result()
			if err != nil {
				return fmt.Errorf("%w: %v", repository.ErrFailedToSave, err)
			}
			if n == 0 {
				return conversation.ErrNotFound
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, stateKey, raw, 0)
			pipe.Set(ctx, revKey, cur+1, 0)
			if pendingRaw != nil {
				pipe.Set(ctx, pendingKey, pendingRaw, 0)
			}
			if opt.DeletePending {
				pipe.Del(ctx, pendingKey)
			}
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err = r.rdb.Watch(ctx, txf, pendingKey, revKey)
		if !errors.Is(err, goredis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) ||
			errors.Is(err, conversation.ErrPendingExists) ||
			errors.Is(err, conversation.ErrStaleState) ||
			errors.Is(err, repository.ErrFailedToSave) {
			return err
		}
		return fmt.Errorf("%w: %v", repository.ErrFailedToSave, err)
	}
	return nil
}

func (r *implRepository) GetPendingApproval(ctx context.Context, conversationID string) (conversation.PendingApproval, error) {
	return r.readPending(ctx, r.rdb, r.pendingKey(conversationID))
}

func (r *implRepository) readPending(ctx context.Context, c getter, key string) (conversation.PendingApproval, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return conversation.PendingApproval{}, conversation.ErrNotFound
	}
	if err != nil {
		return conversation.PendingApproval{}, fmt.Errorf("%w: %v", repository.ErrFailedToLoad, err)
	}

	var p conversation.PendingApproval
	if err := json.Unmarshal(raw, &p); err != nil {
		return conversation.PendingApproval{}, fmt.Errorf("%w: pending approval: %v", conversation.ErrMalformedState, err)
	}
	return p, nil
}
