package prompt

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"callagent/internal/llm"
)

const historyTable = "prompt_history"

const historySchema = `
CREATE TABLE IF NOT EXISTS prompt_history (
	id         BIGSERIAL PRIMARY KEY,
	caller_id  TEXT NOT NULL,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS prompt_history_caller_idx ON prompt_history (caller_id, id);`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresHistory keeps prompt-generator history in Postgres so sessions
// survive restarts.
type PostgresHistory struct {
	db *sql.DB
}

// NewPostgresHistory wraps an open database handle. The caller owns the schema;
// see EnsureSchema.
func NewPostgresHistory(db *sql.DB) *PostgresHistory {
	return &PostgresHistory{db: db}
}

func OpenPostgresHistory(ctx context.Context, dsn string) (*PostgresHistory, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}

	h := NewPostgresHistory(db)
	if err := h.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *PostgresHistory) EnsureSchema(ctx context.Context) error {
	if _, err := h.db.ExecContext(ctx, historySchema); err != nil {
		return fmt.Errorf("create %s: %w", historyTable, err)
	}
	return nil
}

func (h *PostgresHistory) Append(ctx context.Context, callerID, role, content string) error {
	query, args, err := appendQuery(callerID, role, content)
	if err != nil {
		return err
	}
	if _, err := h.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (h *PostgresHistory) Recent(ctx context.Context, callerID string, limit int) ([]llm.Message, error) {
	if limit <= 0 {
		return nil, nil
	}

	query, args, err := recentQuery(callerID, limit)
	if err != nil {
		return nil, err
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var messages []llm.Message
	for rows.Next() {
		var m llm.Message
		if err := rows.Scan(&m.Role, &m.Content); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// newest first from the query; callers want oldest first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (h *PostgresHistory) Close() error {
	return h.db.Close()
}

func appendQuery(callerID, role, content string) (string, []interface{}, error) {
	return psql.Insert(historyTable).
		Columns("caller_id", "role", "content").
		Values(callerID, role, content).
		ToSql()
}

func recentQuery(callerID string, limit int) (string, []interface{}, error) {
	return psql.Select("role", "content").
		From(historyTable).
		Where(sq.Eq{"caller_id": callerID}).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
}
