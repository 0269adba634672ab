package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"customer-support-agent/internal/conversation"
	"customer-support-agent/internal/conversation/repository"
)

const timeLayout = time.RFC3339Nano

func (r *implRepository) Load(ctx context.Context, conversationID string) (conversation.State, error) {
	var (
		raw      string
		revision int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT state_json, revision FROM conversation_state WHERE conversation_id = ?`,
		conversationID,
	).Scan(&raw, &revision)
	if errors.Is(err, sql.ErrNoRows) {
		return conversation.State{}, conversation.ErrNotFound
	}
	if err != nil {
		return conversation.State{}, fmt.Errorf("%w: %v", repository.ErrFailedToLoad, err)
	}

	state, err := conversation.Decode(conversationID, []byte(raw))
	if err != nil {
		r.l.Errorf(ctx, "internal.conversation.repository.sqlite.Load: %s: %v", conversationID, err)
		return conversation.State{}, err
	}
	state.Revision = revision
	return state, nil
}

func (r *implRepository) Revision(ctx context.Context, conversationID string) (int64, error) {
	var revision int64
	err := r.db.QueryRowContext(ctx,
		`SELECT revision FROM conversation_state WHERE conversation_id = ?`,
		conversationID,
	).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, conversation.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", repository.ErrFailedToLoad, err)
	}
	return revision, nil
}

func (r *implRepository) Save(ctx context.Context, opt repository.SaveOptions) error {
	if err := opt.Validate(); err != nil {
		return err
	}

	raw, err := conversation.Encode(opt.State)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrFailedToSave, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", repository.ErrFailedToSave, err)
	}
	defer func() { _ = tx.Rollback() }()

	id := opt.State.ConversationID
	now := time.Now().UTC().Format(timeLayout)

	// The upsert only applies when the stored revision is the one the
	// caller loaded, so a writer in another process cannot be overwritten.
	res, err := tx.ExecContext(ctx, `
		INSERT INTO conversation_state (conversation_id, state_json, updated_at, revision)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(conversation_id) DO UPDATE SET
			state_json = excluded.state_json,
			updated_at = excluded.updated_at,
			revision   = excluded.revision
		WHERE conversation_state.revision = ?`,
		id, string(raw), now, opt.State.Revision+1, opt.State.Revision,
	)
	if err != nil {
		return fmt.Errorf("%w: upsert state: %v", repository.ErrFailedToSave, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("%w: upsert state: %v", repository.ErrFailedToSave, err)
	} else if n == 0 {
		return conversation.ErrStaleState
	}

	switch {
	case opt.PutPending != nil:
		if err := putPending(ctx, tx, *opt.PutPending); err != nil {
			return err
		}
	case opt.DeletePending:
		res, err := tx.ExecContext(ctx, `DELETE FROM pending_approvals WHERE conversation_id = ?`, id)
		if err != nil {
			return fmt.Errorf("%w: delete pending: %v", repository.ErrFailedToSave, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return conversation.ErrNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", repository.ErrFailedToSave, err)
	}
	return nil
}

func putPending(ctx context.Context, tx *sql.Tx, p conversation.PendingApproval) error {
	var token string
	err := tx.QueryRowContext(ctx,
		`SELECT token FROM pending_approvals WHERE conversation_id = ?`,
		p.ConversationID,
	).Scan(&token)
	switch {
	case err == nil:
		if token != p.Token {
			return conversation.ErrPendingExists
		}
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: read pending: %v", repository.ErrFailedToSave, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO pending_approvals (conversation_id, token, payload, requested_at)
		VALUES (?, ?, ?, ?)`,
		p.ConversationID, p.Token, p.Payload, p.RequestedAt.UTC().Format(timeLayout),
	); err != nil {
		return fmt.Errorf("%w: insert pending: %v", repository.ErrFailedToSave, err)
	}
	return nil
}

func (r *implRepository) GetPendingApproval(ctx context.Context, conversationID string) (conversation.PendingApproval, error) {
	var (
		p           conversation.PendingApproval
		requestedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT conversation_id, token, payload, requested_at FROM pending_approvals WHERE conversation_id = ?`,
		conversationID,
	).Scan(&p.ConversationID, &p.Token, &p.Payload, &requestedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return conversation.PendingApproval{}, conversation.ErrNotFound
	}
	if err != nil {
		return conversation.PendingApproval{}, fmt.Errorf("%w: %v", repository.ErrFailedToLoad, err)
	}

	p.RequestedAt, err = time.Parse(timeLayout, requestedAt)
	if err != nil {
		return conversation.PendingApproval{}, fmt.Errorf("%w: requested_at: %v", conversation.ErrMalformedState, err)
	}
	return p, nil
}
