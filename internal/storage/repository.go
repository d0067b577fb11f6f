package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"bilancio/internal/core"
)

// Collection provides CRUD primitives over one named collection. Documents
// are stored as JSON bodies keyed by their id. Every call acquires its own
// store handle and releases it before returning; the collection itself is
// stateless beyond the store location and its table name.
type Collection[T core.Document[T]] struct {
	store *Store
	name  string
}

// NewCollection binds a document type to a named collection.
func NewCollection[T core.Document[T]](store *Store, name string) *Collection[T] {
	return &Collection[T]{store: store, name: name}
}

// List returns every document in the collection, in unspecified order.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	db, err := c.store.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT body FROM %s", c.name))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c.name, err)
	}
	defer rows.Close()

	docs := make([]T, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", c.name, err)
		}
		var doc T
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", c.name, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", c.name, err)
	}

	return docs, nil
}

// GetByID returns the document with the given id, or an error wrapping
// ErrNotFound when no such document exists.
func (c *Collection[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T

	db, err := c.store.acquire(ctx)
	if err != nil {
		return zero, err
	}
	defer db.Close()

	var body []byte
	row := db.QueryRowContext(ctx, fmt.Sprintf("SELECT body FROM %s WHERE id = ?", c.name), id.String())
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, fmt.Errorf("get %s %s: %w", c.name, id, ErrNotFound)
		}
		return zero, fmt.Errorf("get %s %s: %w", c.name, id, err)
	}

	var doc T
	if err := json.Unmarshal(body, &doc); err != nil {
		return zero, fmt.Errorf("decode %s document: %w", c.name, err)
	}

	return doc, nil
}

// Insert stores a new document, assigning a fresh id when the document's id
// is the zero uuid. The stored document, id included, is returned. A
// duplicate id fails the write.
func (c *Collection[T]) Insert(ctx context.Context, doc T) (T, error) {
	var zero T

	if doc.DocID() == uuid.Nil {
		doc = doc.WithDocID(uuid.New())
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return zero, fmt.Errorf("encode %s document: %w", c.name, err)
	}

	db, err := c.store.acquire(ctx)
	if err != nil {
		return zero, err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (id, body) VALUES (?, ?)", c.name),
		doc.DocID().String(), string(body))
	if err != nil {
		return zero, fmt.Errorf("insert into %s: %w", c.name, err)
	}

	return doc, nil
}

// Update overwrites the document with the same id. It reports (false, nil)
// when no document has that id; an error always means the write failed.
func (c *Collection[T]) Update(ctx context.Context, doc T) (bool, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("encode %s document: %w", c.name, err)
	}

	db, err := c.store.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET body = ? WHERE id = ?", c.name),
		string(body), doc.DocID().String())
	if err != nil {
		return false, fmt.Errorf("update %s: %w", c.name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update %s rows affected: %w", c.name, err)
	}

	return n > 0, nil
}

// Delete removes the document with the given id, reporting (false, nil)
// when the id matched nothing.
func (c *Collection[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db, err := c.store.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = ?", c.name), id.String())
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", c.name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete from %s rows affected: %w", c.name, err)
	}

	return n > 0, nil
}

// Upsert inserts the document or overwrites the existing one with the same
// id, assigning a fresh id first when the document carries the zero uuid.
// The returned flag only distinguishes insert from update: a nil error
// always means the write reached the store, and overwriting an existing
// document is a success with inserted=false, never a failure.
func (c *Collection[T]) Upsert(ctx context.Context, doc T) (T, bool, error) {
	var zero T

	if doc.DocID() == uuid.Nil {
		doc = doc.WithDocID(uuid.New())
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return zero, false, fmt.Errorf("encode %s document: %w", c.name, err)
	}

	db, err := c.store.acquire(ctx)
	if err != nil {
		return zero, false, err
	}
	defer db.Close()

	var exists bool
	row := db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)", c.name),
		doc.DocID().String())
	if err := row.Scan(&exists); err != nil {
		return zero, false, fmt.Errorf("check %s existence: %w", c.name, err)
	}

	_, err = db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (id, body) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET body = excluded.body", c.name),
		doc.DocID().String(), string(body))
	if err != nil {
		return zero, false, fmt.Errorf("upsert into %s: %w", c.name, err)
	}

	return doc, !exists, nil
}
