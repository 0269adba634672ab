package sqlite

// Schema is applied on every open.
const Schema = `
CREATE TABLE IF NOT EXISTS conversation_state (
	conversation_id TEXT PRIMARY KEY,
	state_json      TEXT NOT NULL,
	updated_at      TEXT NOT NULL,
	revision        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS pending_approvals (
	conversation_id TEXT PRIMARY KEY,
	token           TEXT NOT NULL,
	payload         TEXT NOT NULL,
	requested_at    TEXT NOT NULL
);
`

// Used to upgrade databases created before conversation_state
// carried a revision.
const (
	revisionColumnExists = `SELECT COUNT(*) FROM pragma_table_info('conversation_state') WHERE name = 'revision'`
	addRevisionColumn    = `ALTER TABLE conversation_state ADD COLUMN revision INTEGER NOT NULL DEFAULT 0`
)
