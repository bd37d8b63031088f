package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/poliklinik-admin/pkg/listctl"
	"github.com/c14220110/poliklinik-admin/pkg/storage/mariadb"
)

type fakePublisher struct {
	topics   []string
	payloads [][]byte
}

func (p *fakePublisher) Publish(topic string, payload []byte) bool {
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return true
}

type fakeStore struct {
	activities []mariadb.Activity
	err        error
}

func (s *fakeStore) Record(_ context.Context, a mariadb.Activity) error {
	s.activities = append(s.activities, a)
	return s.err
}

func TestTee(t *testing.T) {
	ctx := listctl.WithEntity(context.Background(), "doctors")
	primary := NewCollector(true)
	var seen []Notice
	n := Tee(primary, ObserverFunc(func(_ context.Context, n Notice) { seen = append(seen, n) }))

	assert.True(t, n.Confirm(ctx, "Are you sure?", "Delete?"))
	n.Notify(ctx, listctl.KindSuccess, "Deleted", "The doctor has been deleted")

	require.Len(t, primary.Notices(), 1)
	require.Len(t, seen, 1)
	assert.Equal(t, "doctors", seen[0].Entity)
	assert.Equal(t, listctl.KindSuccess, seen[0].Kind)
	assert.Equal(t, "The doctor has been deleted", seen[0].Text)
	assert.False(t, seen[0].At.IsZero())
}

func TestScoped(t *testing.T) {
	fallback := NewCollector(false)
	scoped := Scoped{Fallback: fallback}

	t.Run("Should use the request notifier when present", func(t *testing.T) {
		request := NewCollector(true)
		ctx := WithNotifier(context.Background(), request)

		assert.True(t, scoped.Confirm(ctx, "t", "x"))
		scoped.Notify(ctx, listctl.KindError, "Error", "boom")
		assert.Len(t, request.Notices(), 1)
		assert.Empty(t, fallback.Notices())
	})

	t.Run("Should fall back otherwise", func(t *testing.T) {
		assert.False(t, scoped.Confirm(context.Background(), "t", "x"))
		scoped.Notify(context.Background(), listctl.KindError, "Error", "boom")
		assert.Len(t, fallback.Notices(), 1)
	})

	t.Run("Should decline without any notifier", func(t *testing.T) {
		assert.False(t, Scoped{}.Confirm(context.Background(), "t", "x"))
	})
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	observer := Log(zerolog.New(&buf))

	observer.Observe(context.Background(), Notice{Entity: "nurses", Kind: listctl.KindError, Title: "Error", Text: "Unable to load nurse data"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "nurses", line["entity"])
	assert.Equal(t, "Unable to load nurse data", line["message"])
}

func TestBroadcast(t *testing.T) {
	pub := &fakePublisher{}
	Broadcast(pub, zerolog.Nop()).Observe(context.Background(), Notice{Entity: "reports", Kind: listctl.KindSuccess, Text: "ok"})

	require.Equal(t, []string{"reports"}, pub.topics)
	var got Notice
	require.NoError(t, json.Unmarshal(pub.payloads[0], &got))
	assert.Equal(t, "reports", got.Entity)
	assert.Equal(t, listctl.KindSuccess, got.Kind)
}

func TestRecord(t *testing.T) {
	store := &fakeStore{}
	observer := Record(store, zerolog.Nop())

	observer.Observe(context.Background(), Notice{Entity: "patients", Kind: listctl.KindSuccess, Title: "Deleted", Text: "The patient has been deleted"})
	require.Len(t, store.activities, 1)
	assert.Equal(t, mariadb.Activity{Entity: "patients", Kind: "success", Title: "Deleted", Text: "The patient has been deleted"}, store.activities[0])

	store.err = errors.New("db down")
	assert.NotPanics(t, func() {
		observer.Observe(context.Background(), Notice{Entity: "patients"})
	})
}
