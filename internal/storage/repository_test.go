package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"bilancio/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	return store
}

func TestCollection_InsertAssignsID(t *testing.T) {
	store := newTestStore(t)
	col := NewCollection[core.AppState](store, AppStateCollection)
	ctx := context.Background()

	saved, err := col.Insert(ctx, core.AppState{Month: 3, Year: 2024})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if saved.ID == uuid.Nil {
		t.Error("Insert() should assign an id to a document with the zero uuid")
	}

	got, err := col.GetByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Month != 3 || got.Year != 2024 {
		t.Errorf("GetByID() = %d/%d, want 3/2024", got.Month, got.Year)
	}
}

func TestCollection_InsertKeepsExistingID(t *testing.T) {
	store := newTestStore(t)
	col := NewCollection[core.AppState](store, AppStateCollection)
	ctx := context.Background()

	id := uuid.New()
	saved, err := col.Insert(ctx, core.AppState{ID: id, Month: 1, Year: 2024})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if saved.ID != id {
		t.Errorf("Insert() id = %v, want %v", saved.ID, id)
	}
}

func TestCollection_InsertDuplicateIDFails(t *testing.T) {
	store := newTestStore(t)
	col := NewCollection[core.AppState](store, AppStateCollection)
	ctx := context.Background()

	doc := core.AppState{ID: uuid.New(), Month: 1, Year: 2024}
	if _, err := col.Insert(ctx, doc); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if _, err := col.Insert(ctx, doc); err == nil {
		t.Error("Insert() with a duplicate id should fail")
	}
}

func TestCollection_GetByIDNotFound(t *testing.T) {
	store := newTestStore(t)
	col := NewCollection[core.AppState](store, AppStateCollection)

	_, err := col.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestCollection_List(t *testing.T) {
	store := newTestStore(t)
	col := NewCollection[core.AppState](store, AppStateCollection)
	ctx := context.Background()

	empty, err := col.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("List() on empty collection returned %d documents, want 0", len(empty))
	}

	for m := 1; m <= 3; m++ {
		if _, err := col.Insert(ctx, core.AppState{Month: m, Year: 2024}); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	all, err := col.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() returned %d documents, want 3", len(all))
	}
}

func TestCollection_Update(t *testing.T) {
	store := newTestStore(t)
	col := NewCollection[core.AppState](store, AppStateCollection)
	ctx := context.Background()

	saved, err := col.Insert(ctx, core.AppState{Month: 1, Year: 2024})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	saved.Month = 6
	ok, err := col.Update(ctx, saved)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !ok {
		t.Error("Update() of an existing document should report true")
	}

	got, err := col.GetByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Month != 6 {
		t.Errorf("GetByID() month = %d, want 6", got.Month)
	}
}

func TestCollection_UpdateMissingID(t *testing.T) {
	store := newTestStore(t)
	col := NewCollection[core.AppState](store, AppStateCollection)

	ok, err := col.Update(context.Background(), core.AppState{ID: uuid.New(), Month: 2})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if ok {
		t.Error("Update() of a missing id should report false, not error")
	}
}

func TestCollection_Delete(t *testing.T) {
	store := newTestStore(t)
	col := NewCollection[core.AppState](store, AppStateCollection)
	ctx := context.Background()

	saved, err := col.Insert(ctx, core.AppState{Month: 1, Year: 2024})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	ok, err := col.Delete(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !ok {
		t.Error("Delete() of an existing document should report true")
	}

	if _, err := col.GetByID(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestCollection_DeleteMissingID(t *testing.T) {
	store := newTestStore(t)
	col := NewCollection[core.AppState](store, AppStateCollection)

	ok, err := col.Delete(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ok {
		t.Error("Delete() of a missing id should report false, not error")
	}
}

func TestCollection_UpsertInsertsThenUpdates(t *testing.T) {
	store := newTestStore(t)
	col := NewCollection[core.AppState](store, AppStateCollection)
	ctx := context.Background()

	saved, inserted, err := col.Upsert(ctx, core.AppState{Month: 1, Year: 2024})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if !inserted {
		t.Error("Upsert() of a new document should report inserted=true")
	}
	if saved.ID == uuid.Nil {
		t.Error("Upsert() should assign an id to a document with the zero uuid")
	}

	saved.Month = 12
	again, inserted, err := col.Upsert(ctx, saved)
	if err != nil {
		t.Fatalf("Upsert() of an existing document error = %v, want nil: overwriting is a success", err)
	}
	if inserted {
		t.Error("Upsert() of an existing document should report inserted=false")
	}
	if again.ID != saved.ID {
		t.Errorf("Upsert() id = %v, want unchanged %v", again.ID, saved.ID)
	}

	got, err := col.GetByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Month != 12 {
		t.Errorf("GetByID() month = %d, want 12", got.Month)
	}

	all, err := col.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("List() returned %d documents after two upserts of one id, want 1", len(all))
	}
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if store.Path() != path {
		t.Errorf("Path() = %q, want %q", store.Path(), path)
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	if _, err := Open(path); err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	if _, err := Open(path); err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
}
