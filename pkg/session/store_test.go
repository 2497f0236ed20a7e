package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testStoreRoundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if snap, err := store.Load(ctx, "missing"); err != nil || snap != nil {
		t.Fatalf("Load(missing) = %v, %v; want nil, nil", snap, err)
	}

	want := Snapshot{Markup: []byte("<div>hi</div>"), SavedAt: time.Unix(100, 0)}
	if err := store.Save(ctx, "s1", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil || string(got.Markup) != string(want.Markup) {
		t.Errorf("Load = %+v, want markup %q", got, want.Markup)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if snap, err := store.Load(ctx, "s1"); err != nil || snap != nil {
		t.Errorf("Load after delete = %v, %v; want nil, nil", snap, err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Errorf("Delete of missing session should not error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	testStoreRoundTrip(t, store)
}

func TestMemoryStoreClosed(t *testing.T) {
	store := NewMemoryStore()
	store.Close()
	if err := store.Save(context.Background(), "x", Snapshot{}); err == nil {
		t.Error("Save on closed store should fail")
	}
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snaps.db")
	store, err := NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	testStoreRoundTrip(t, store)
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snaps.db")
	store, err := NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := store.Save(ctx, "s1", Snapshot{Markup: []byte("persisted"), SavedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store2, err := NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store2.Close()
	snap, err := store2.Load(ctx, "s1")
	if err != nil || snap == nil || string(snap.Markup) != "persisted" {
		t.Errorf("Load after reopen = %v, %v", snap, err)
	}
}
