package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "aurora:news"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := s.Set(ctx, "aurora:news", []byte(`{"items":[]}`)); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, err := s.Get(ctx, "aurora:news")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != `{"items":[]}` {
		t.Fatalf("unexpected value: %s", got)
	}

	if err := s.Delete(ctx, "aurora:news"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, "aurora:news"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	value := []byte(`{"url":"a"}`)
	if err := s.Set(ctx, "aurora:discord_link", value); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	value[8] = 'b'

	got, err := s.Get(ctx, "aurora:discord_link")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != `{"url":"a"}` {
		t.Fatalf("stored value aliased caller buffer: %s", got)
	}
}
