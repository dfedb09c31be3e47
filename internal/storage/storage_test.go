// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pdiddy/outline-engine/pkg/types"
)

func testStore(t *testing.T, maxBytes int64) *Store {
	t.Helper()
	cfg := types.StorageConfig{
		ProfileDir: filepath.Join(t.TempDir(), "profile"),
		MaxBytes:   maxBytes,
	}
	s, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := testStore(t, 0)
	ctx := context.Background()

	if err := s.Put(ctx, "thesis", "Cities shape rivers."); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.Get(ctx, "thesis")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || got != "Cities shape rivers." {
		t.Fatalf("got %q ok=%v, want stored value", got, ok)
	}
}

func TestGetMissingSlot(t *testing.T) {
	s := testStore(t, 0)

	got, ok, err := s.Get(context.Background(), "never-written")
	if err != nil {
		t.Fatal(err)
	}
	if ok || got != "" {
		t.Fatalf("missing slot returned %q ok=%v", got, ok)
	}
}

func TestPutOverwritesWholesale(t *testing.T) {
	s := testStore(t, 0)
	ctx := context.Background()

	if err := s.Put(ctx, "outline", "first"); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "outline", "second"); err != nil {
		t.Fatal(err)
	}

	got, _, err := s.Get(ctx, "outline")
	if err != nil {
		t.Fatal(err)
	}
	if got != "second" {
		t.Fatalf("got %q, want %q", got, "second")
	}
}

func TestQuotaExceededPreservesOldValue(t *testing.T) {
	s := testStore(t, 16)
	ctx := context.Background()

	if err := s.Put(ctx, "thesis", "short"); err != nil {
		t.Fatal(err)
	}

	err := s.Put(ctx, "thesis", "this value is far past the quota")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}

	got, _, err := s.Get(ctx, "thesis")
	if err != nil {
		t.Fatal(err)
	}
	if got != "short" {
		t.Fatalf("failed write clobbered slot: got %q", got)
	}
}

func TestQuotaCountsOtherSlots(t *testing.T) {
	s := testStore(t, 10)
	ctx := context.Background()

	if err := s.Put(ctx, "a", "12345"); err != nil {
		t.Fatal(err)
	}
	// 5 bytes used elsewhere; 6 more would exceed the 10-byte cap.
	if err := s.Put(ctx, "b", "123456"); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
	// Overwriting slot a itself is judged against the other slots only.
	if err := s.Put(ctx, "a", "1234567890"); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteAbsentSlot(t *testing.T) {
	s := testStore(t, 0)
	if err := s.Delete(context.Background(), "nothing"); err != nil {
		t.Fatal(err)
	}
}

func TestProfileLock(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile")
	cfg := types.StorageConfig{ProfileDir: dir}

	first, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer first.Close()

	if _, err := Open(cfg); !errors.Is(err, ErrProfileLocked) {
		t.Fatalf("second open err = %v, want ErrProfileLocked", err)
	}
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile")
	cfg := types.StorageConfig{ProfileDir: dir}
	ctx := context.Background()

	s, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "research", `[{"id":"r1"}]`); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, ok, err := s.Get(ctx, "research")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || got != `[{"id":"r1"}]` {
		t.Fatalf("got %q ok=%v after reopen", got, ok)
	}
}
