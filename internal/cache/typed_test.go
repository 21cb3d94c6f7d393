package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestTypedCache_RoundTrip(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = backend.Close() }()
	tc := NewTypedCache[testRecord](backend, time.Hour)
	ctx := context.Background()

	in := &testRecord{ID: "r1", Title: "Hello"}
	if err := tc.Set(ctx, "rec", in); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	out, ok := tc.Get(ctx, "rec")
	if !ok {
		t.Fatal("expected hit")
	}
	if out.ID != "r1" || out.Title != "Hello" {
		t.Errorf("got %+v", out)
	}
}

func TestTypedCache_GetOrSet(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = backend.Close() }()
	tc := NewTypedCache[[]testRecord](backend, time.Hour)
	ctx := context.Background()

	calls := 0
	fetch := func() (*[]testRecord, error) {
		calls++
		return &[]testRecord{{ID: "r1"}}, nil
	}

	for i := 0; i < 3; i++ {
		out, err := tc.GetOrSet(ctx, "list", fetch)
		if err != nil {
			t.Fatalf("GetOrSet failed: %v", err)
		}
		if len(*out) != 1 {
			t.Fatalf("got %d records", len(*out))
		}
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
}

func TestTypedCache_GetOrSetPropagatesError(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = backend.Close() }()
	tc := NewTypedCache[testRecord](backend, time.Hour)

	wantErr := errors.New("boom")
	_, err := tc.GetOrSet(context.Background(), "k", func() (*testRecord, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want boom", err)
	}
}
