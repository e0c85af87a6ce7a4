package worker

import (
	"context"
	"testing"
	"time"

	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/biz/infra/queue"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T) (*Worker, *queue.TaskQueue) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	q := queue.NewTaskQueueWithClient(rdb, "worker-test")
	require.NoError(t, q.EnsureGroup(context.Background()))
	return &Worker{Config: &config.Config{}, Queue: q, stepInterval: time.Microsecond}, q
}

func TestLongRunningTaskSucceeds(t *testing.T) {
	w, q := newTestWorker(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, queue.Task{Kind: cst.TaskLongRunning, Data: map[string]any{"key": "value"}})
	require.NoError(t, err)

	msgs, err := q.Read(ctx, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	w.handle(ctx, msgs[0])

	s, err := q.GetStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, cst.TaskStateSuccess, s.Status)
	assert.Equal(t, "completed", s.Result["status"])
	assert.Equal(t, id, s.Result["task_id"])

	// 处理完成后消息已确认
	pending, err := q.Pending(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestDocumentTaskCarriesURL(t *testing.T) {
	w, q := newTestWorker(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, queue.Task{Kind: cst.TaskDocument, DocumentURL: "https://example.com/doc.pdf"})
	require.NoError(t, err)

	msgs, err := q.Read(ctx, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	w.handle(ctx, msgs[0])

	s, err := q.GetStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, cst.TaskStateSuccess, s.Status)
	assert.Equal(t, "https://example.com/doc.pdf", s.Result["document_url"])
	assert.Equal(t, true, s.Result["processed"])
}

func TestUnknownTaskKindFails(t *testing.T) {
	w, q := newTestWorker(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, queue.Task{Kind: "no_such_kind"})
	require.NoError(t, err)

	msgs, err := q.Read(ctx, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	w.handle(ctx, msgs[0])

	s, err := q.GetStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, cst.TaskStateFailure, s.Status)
	assert.Contains(t, s.Error, "unknown task kind")
}

func TestAIProcessingWithoutProviderFails(t *testing.T) {
	w, q := newTestWorker(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, queue.Task{Kind: cst.TaskAIProcessing, Data: map[string]any{"prompt": "hi", "provider": "nope"}})
	require.NoError(t, err)

	msgs, err := q.Read(ctx, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	w.handle(ctx, msgs[0])

	s, err := q.GetStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, cst.TaskStateFailure, s.Status)
}
