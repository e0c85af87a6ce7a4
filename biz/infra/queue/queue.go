package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 基于Redis Stream的任务队列, 状态单独记在task:<id>的hash中
// 提交方只写stream和初始状态, worker消费并推进状态

const (
	stream         = "coreapi:tasks"
	group          = "coreapi-workers"
	statusPrefix   = "coreapi:task:"
	statusTTL      = 24 * time.Hour
	defaultBlockMs = 2000
)

var ErrTaskNotFound = errors.New("task not found")

// Task 一个待执行的后台任务
type Task struct {
	TaskId      string         `json:"task_id"`
	Kind        string         `json:"kind"`
	Data        map[string]any `json:"data,omitempty"`
	DocumentURL string         `json:"document_url,omitempty"`
	EnqueuedAt  time.Time      `json:"enqueued_at"`
}

// Status 任务的当前状态快照
type Status struct {
	Status string         `json:"status"`
	Info   map[string]any `json:"info,omitempty"`
	Result map[string]any `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

type Message struct {
	ID   string
	Task Task
}

type TaskQueue struct {
	redis    *redis.Client
	consumer string
	block    time.Duration
}

func NewTaskQueue(c *config.Config) *TaskQueue {
	rdb := redis.NewClient(&redis.Options{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	})
	return NewTaskQueueWithClient(rdb, "worker-1")
}

func NewTaskQueueWithClient(rdb *redis.Client, consumer string) *TaskQueue {
	return &TaskQueue{redis: rdb, consumer: consumer, block: defaultBlockMs * time.Millisecond}
}

func (q *TaskQueue) EnsureGroup(ctx context.Context) error {
	err := q.redis.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create stream group: %w", err)
	}
	return nil
}

// Enqueue 提交任务并写入PENDING状态
func (q *TaskQueue) Enqueue(ctx context.Context, task Task) (string, error) {
	if strings.TrimSpace(task.TaskId) == "" {
		task.TaskId = primitive.NewObjectID().Hex()
	}
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = time.Now().UTC()
	}
	payload, err := sonic.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("marshal task: %w", err)
	}
	if err = q.SetStatus(ctx, task.TaskId, &Status{Status: cst.TaskStatePending}); err != nil {
		return "", err
	}
	if err = q.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": payload},
	}).Err(); err != nil {
		return "", fmt.Errorf("enqueue: %w", err)
	}
	return task.TaskId, nil
}

func (q *TaskQueue) Read(ctx context.Context, count int64) ([]Message, error) {
	res, err := q.redis.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: q.consumer,
		Streams:  []string{stream, ">"},
		Count:    count,
		Block:    q.block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("xreadgroup: %w", err)
	}

	out := make([]Message, 0)
	for _, s := range res {
		for _, m := range s.Messages {
			raw, ok := m.Values["payload"]
			if !ok {
				continue
			}
			var b []byte
			switch v := raw.(type) {
			case string:
				b = []byte(v)
			case []byte:
				b = v
			default:
				continue
			}
			var task Task
			if err := sonic.Unmarshal(b, &task); err != nil {
				continue
			}
			out = append(out, Message{ID: m.ID, Task: task})
		}
	}
	return out, nil
}

func (q *TaskQueue) Ack(ctx context.Context, messageID string) error {
	if err := q.redis.XAck(ctx, stream, group, messageID).Err(); err != nil {
		return fmt.Errorf("xack: %w", err)
	}
	if err := q.redis.XDel(ctx, stream, messageID).Err(); err != nil {
		return fmt.Errorf("xdel: %w", err)
	}
	return nil
}

// SetStatus 覆盖任务状态
func (q *TaskQueue) SetStatus(ctx context.Context, taskId string, s *Status) error {
	payload, err := sonic.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}
	return q.redis.Set(ctx, statusPrefix+taskId, payload, statusTTL).Err()
}

// GetStatus 读取任务状态, 不存在时返回ErrTaskNotFound
func (q *TaskQueue) GetStatus(ctx context.Context, taskId string) (*Status, error) {
	raw, err := q.redis.Get(ctx, statusPrefix+taskId).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	var s Status
	if err = sonic.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("unmarshal status: %w", err)
	}
	return &s, nil
}

// Pending 未消费的任务数
func (q *TaskQueue) Pending(ctx context.Context) (int64, error) {
	return q.redis.XLen(ctx, stream).Result()
}

func (q *TaskQueue) Ping(ctx context.Context) error {
	return q.redis.Ping(ctx).Err()
}
