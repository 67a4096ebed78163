package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/irsalhamdi/course-selling/docstore"
	"github.com/jmoiron/sqlx"
)

// Documents keeps every collection in a single JSONB table, ordered by an
// insertion sequence.
type Documents struct {
	db   *sqlx.DB
	name string
}

func NewDocuments(db *sqlx.DB, name string) *Documents {
	return &Documents{db: db, name: name}
}

type row struct {
	ID   uuid.UUID       `db:"id"`
	Body json.RawMessage `db:"body"`
}

func (d *Documents) Name() string { return d.name }

func (d *Documents) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *Documents) Insert(ctx context.Context, collection string, body []byte) (uuid.UUID, error) {
	const q = `
	INSERT INTO documents (collection, body)
	VALUES ($1, $2::jsonb)
	RETURNING id`

	var id uuid.UUID
	if err := d.db.QueryRowxContext(ctx, q, collection, string(body)).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("inserting into %s: %w", collection, err)
	}
	return id, nil
}

func (d *Documents) Find(ctx context.Context, collection string, filter docstore.Filter) ([]docstore.Raw, error) {
	where, args, err := match(collection, filter)
	if err != nil {
		return nil, err
	}

	q := `
	SELECT id, body
	FROM documents
	WHERE ` + where + `
	ORDER BY seq`

	var rows []row
	if err := d.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("selecting from %s: %w", collection, err)
	}

	out := make([]docstore.Raw, 0, len(rows))
	for _, r := range rows {
		out = append(out, docstore.Raw{ID: r.ID, Body: r.Body})
	}
	return out, nil
}

func (d *Documents) FindByID(ctx context.Context, collection string, id uuid.UUID) (docstore.Raw, bool, error) {
	const q = `
	SELECT id, body
	FROM documents
	WHERE collection = $1 AND id = $2`

	var r row
	if err := d.db.GetContext(ctx, &r, q, collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return docstore.Raw{}, false, nil
		}
		return docstore.Raw{}, false, fmt.Errorf("selecting %s[%s]: %w", collection, id, err)
	}
	return docstore.Raw{ID: r.ID, Body: r.Body}, true, nil
}

func (d *Documents) Update(ctx context.Context, collection string, id uuid.UUID, set []byte) (int64, error) {
	const q = `
	UPDATE documents
	SET body = body || $3::jsonb
	WHERE collection = $1 AND id = $2`

	res, err := d.db.ExecContext(ctx, q, collection, id, string(set))
	if err != nil {
		return 0, fmt.Errorf("updating %s[%s]: %w", collection, id, err)
	}
	return res.RowsAffected()
}

func (d *Documents) Delete(ctx context.Context, collection string, id uuid.UUID) (int64, error) {
	const q = `
	DELETE FROM documents
	WHERE collection = $1 AND id = $2`

	res, err := d.db.ExecContext(ctx, q, collection, id)
	if err != nil {
		return 0, fmt.Errorf("deleting %s[%s]: %w", collection, id, err)
	}
	return res.RowsAffected()
}

func (d *Documents) Count(ctx context.Context, collection string, filter docstore.Filter) (int64, error) {
	where, args, err := match(collection, filter)
	if err != nil {
		return 0, err
	}

	q := `SELECT count(*) FROM documents WHERE ` + where

	var n int64
	if err := d.db.GetContext(ctx, &n, q, args...); err != nil {
		return 0, fmt.Errorf("counting %s: %w", collection, err)
	}
	return n, nil
}

func (d *Documents) Collections(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT collection FROM documents ORDER BY collection`

	names := make([]string, 0)
	if err := d.db.SelectContext(ctx, &names, q); err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return names, nil
}

// match renders an exact-match filter as JSONB equality on top-level keys.
// Keys are sorted so that the statement text is stable.
func match(collection string, filter docstore.Filter) (string, []any, error) {
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conds := []string{"collection = $1"}
	args := []any{collection}
	for _, k := range keys {
		v, err := json.Marshal(filter[k])
		if err != nil {
			return "", nil, fmt.Errorf("encoding filter on %s: %w", k, err)
		}
		conds = append(conds, fmt.Sprintf("body -> $%d::text = $%d::jsonb", len(args)+1, len(args)+2))
		args = append(args, k, string(v))
	}

	return strings.Join(conds, " AND "), args, nil
}

var _ docstore.Backend = (*Documents)(nil)
