package conversation

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T, opts ...StoreOption) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store, err := NewStore(StoreTypeRedis, append([]StoreOption{WithRedisClient(client)}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStoreSaveAndGet(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	want := sampleRecord("c1")
	if err := store.Save(ctx, want); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("conversation:c1") {
		t.Fatalf("expected key conversation:c1, got keys %v", mr.Keys())
	}

	got, err := store.Get(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected record: got %+v want %+v", got, want)
	}
}

func TestRedisStoreGetUnknown(t *testing.T) {
	store, _ := newTestRedisStore(t)

	if _, err := store.Get(context.Background(), "never-submitted"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v want %v", err, ErrNotFound)
	}
}

func TestRedisStoreOverwrite(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	first := sampleRecord("c1")
	first.Transcripts = append(first.Transcripts, TranscriptEntry{ID: 2, CreatedAt: "t1", User: "User", Text: "Hello"})
	if err := store.Save(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := &CallRecord{CallID: "c1", Summary: "second"}
	if err := store.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Summary != "second" {
		t.Errorf("last write should win: got %v want %v", got.Summary, "second")
	}
	if len(got.Transcripts) != 0 {
		t.Errorf("records must not be merged: got %d transcripts", len(got.Transcripts))
	}
}

func TestRedisStoreTranscriptOrder(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	rec := &CallRecord{CallID: "c2"}
	for i, text := range []string{"third", "first", "second"} {
		rec.Transcripts = append(rec.Transcripts, TranscriptEntry{ID: 10 - i, Text: text})
	}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "c2")
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, tr := range got.Transcripts {
		texts = append(texts, tr.Text)
	}
	want := []string{"third", "first", "second"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("unexpected order: got %v want %v", texts, want)
	}
}

func TestRedisStoreMissingCallID(t *testing.T) {
	store, mr := newTestRedisStore(t)

	if err := store.Save(context.Background(), &CallRecord{}); !errors.Is(err, ErrMissingCallID) {
		t.Errorf("got %v want %v", err, ErrMissingCallID)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Errorf("expected no keys, got %v", keys)
	}
}

func TestRedisStoreTTL(t *testing.T) {
	ctx := context.Background()

	store, mr := newTestRedisStore(t)
	if err := store.Save(ctx, sampleRecord("c1")); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("conversation:c1"); ttl != 0 {
		t.Errorf("records should not expire by default: got %v", ttl)
	}

	store, mr = newTestRedisStore(t, WithRedisTTL(time.Hour))
	if err := store.Save(ctx, sampleRecord("c1")); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("conversation:c1"); ttl != time.Hour {
		t.Errorf("unexpected ttl: got %v want %v", ttl, time.Hour)
	}

	mr.FastForward(2 * time.Hour)
	if _, err := store.Get(ctx, "c1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired record: got %v want %v", err, ErrNotFound)
	}
}
