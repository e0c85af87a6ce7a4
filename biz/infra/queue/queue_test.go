package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestQueue(t *testing.T) (*TaskQueue, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	q := NewTaskQueueWithClient(rdb, "worker-test")
	q.block = -1 // 非阻塞读
	if err = q.EnsureGroup(context.Background()); err != nil {
		t.Fatalf("ensure group: %v", err)
	}
	return q, mr
}

func TestEnqueueReadAck(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, Task{Kind: cst.TaskLongRunning, Data: map[string]any{"n": "42"}})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated task id")
	}

	// 入队即PENDING
	s, err := q.GetStatus(ctx, id)
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if s.Status != cst.TaskStatePending {
		t.Fatalf("expected PENDING, got %s", s.Status)
	}

	msgs, err := q.Read(ctx, 10)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Task.TaskId != id || msgs[0].Task.Kind != cst.TaskLongRunning {
		t.Fatalf("unexpected task: %+v", msgs[0].Task)
	}

	if err = q.Ack(ctx, msgs[0].ID); err != nil {
		t.Fatalf("ack: %v", err)
	}
	pending, err := q.Pending(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if pending != 0 {
		t.Fatalf("expected empty stream after ack, got %d", pending)
	}
}

func TestEnsureGroupIdempotent(t *testing.T) {
	q, _ := newTestQueue(t)
	// 组已存在时不报错
	if err := q.EnsureGroup(context.Background()); err != nil {
		t.Fatalf("ensure group twice: %v", err)
	}
}

func TestStatusLifecycle(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, Task{Kind: cst.TaskDocument, DocumentURL: "https://example.com/a.pdf"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err = q.SetStatus(ctx, id, &Status{Status: cst.TaskStateProgress, Info: map[string]any{"status": "Extracting text..."}}); err != nil {
		t.Fatalf("set progress: %v", err)
	}
	s, err := q.GetStatus(ctx, id)
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if s.Status != cst.TaskStateProgress || s.Info["status"] != "Extracting text..." {
		t.Fatalf("unexpected status: %+v", s)
	}

	if err = q.SetStatus(ctx, id, &Status{Status: cst.TaskStateFailure, Error: "boom"}); err != nil {
		t.Fatalf("set failure: %v", err)
	}
	s, err = q.GetStatus(ctx, id)
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if s.Status != cst.TaskStateFailure || s.Error != "boom" {
		t.Fatalf("unexpected status: %+v", s)
	}
}

func TestGetStatusUnknownTask(t *testing.T) {
	q, _ := newTestQueue(t)
	_, err := q.GetStatus(context.Background(), "missing")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
