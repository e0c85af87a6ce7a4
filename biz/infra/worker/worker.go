package worker

// 后台任务执行器, 从Redis Stream消费任务并推进状态

import (
	"context"
	"fmt"
	"time"

	dm "github.com/aibootstrap/core-api/biz/domain/model"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/biz/infra/queue"
	"github.com/aibootstrap/core-api/pkg/logs"
	"github.com/aibootstrap/core-api/pkg/safego"
	"github.com/cloudwego/eino/schema"
	"github.com/google/wire"
)

type Worker struct {
	Config *config.Config
	Queue  *queue.TaskQueue

	// 步骤间隔, 测试时缩短
	stepInterval time.Duration
}

var WorkerSet = wire.NewSet(wire.Struct(new(Worker), "Config", "Queue"))

const (
	longRunningSteps = 10
	readBatch        = 8
)

// Start 启动消费循环, ctx结束后退出
func (w *Worker) Start(ctx context.Context) error {
	if err := w.Queue.EnsureGroup(ctx); err != nil {
		return err
	}
	safego.Go(ctx, func() {
		logs.Info("[worker] started")
		for {
			select {
			case <-ctx.Done():
				logs.Info("[worker] stopped")
				return
			default:
			}
			msgs, err := w.Queue.Read(ctx, readBatch)
			if err != nil {
				logs.Errorf("[worker] read error: %v", err)
				time.Sleep(time.Second)
				continue
			}
			for _, m := range msgs {
				w.handle(ctx, m)
			}
		}
	})
	return nil
}

func (w *Worker) handle(ctx context.Context, m queue.Message) {
	logs.CtxInfof(ctx, "[worker] task=%s kind=%s", m.Task.TaskId, m.Task.Kind)
	var result map[string]any
	var err error
	switch m.Task.Kind {
	case cst.TaskLongRunning:
		result, err = w.runLongRunning(ctx, &m.Task)
	case cst.TaskAIProcessing:
		result, err = w.runAIProcessing(ctx, &m.Task)
	case cst.TaskDocument:
		result, err = w.runDocumentProcessing(ctx, &m.Task)
	default:
		err = fmt.Errorf("unknown task kind: %s", m.Task.Kind)
	}

	if err != nil {
		logs.CtxErrorf(ctx, "[worker] task=%s failed: %v", m.Task.TaskId, err)
		w.setStatus(ctx, m.Task.TaskId, &queue.Status{Status: cst.TaskStateFailure, Error: err.Error()})
	} else {
		w.setStatus(ctx, m.Task.TaskId, &queue.Status{Status: cst.TaskStateSuccess, Result: result})
	}
	if ackErr := w.Queue.Ack(ctx, m.ID); ackErr != nil {
		logs.Errorf("[worker] ack error: %v", ackErr)
	}
}

func (w *Worker) runLongRunning(ctx context.Context, task *queue.Task) (map[string]any, error) {
	w.progress(ctx, task.TaskId, map[string]any{"current": 0, "total": 100, "status": "Starting task..."})
	for i := 1; i <= longRunningSteps; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(w.interval()):
		}
		w.progress(ctx, task.TaskId, map[string]any{
			"current": i * 100 / longRunningSteps,
			"total":   100,
			"status":  fmt.Sprintf("Processing step %d/%d...", i, longRunningSteps),
		})
	}
	return map[string]any{
		"status":  "completed",
		"result":  fmt.Sprintf("Processed data: %v", task.Data),
		"task_id": task.TaskId,
	}, nil
}

func (w *Worker) runAIProcessing(ctx context.Context, task *queue.Task) (map[string]any, error) {
	w.progress(ctx, task.TaskId, map[string]any{"status": "Initializing AI processing..."})

	prompt, _ := task.Data["prompt"].(string)
	name, _ := task.Data["model"].(string)
	provider, _ := task.Data["provider"].(string)
	m, err := dm.GetModel(ctx, w.Config, provider, name)
	if err != nil {
		return nil, err
	}

	w.progress(ctx, task.TaskId, map[string]any{"status": "Processing with AI model..."})
	out, err := m.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status":   "completed",
		"response": out.Content,
		"task_id":  task.TaskId,
	}, nil
}

func (w *Worker) runDocumentProcessing(ctx context.Context, task *queue.Task) (map[string]any, error) {
	for _, status := range []string{"Downloading document...", "Extracting text...", "Processing complete"} {
		w.progress(ctx, task.TaskId, map[string]any{"status": status})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(w.interval()):
		}
	}
	return map[string]any{
		"status":       "completed",
		"document_url": task.DocumentURL,
		"processed":    true,
		"task_id":      task.TaskId,
	}, nil
}

func (w *Worker) progress(ctx context.Context, taskId string, info map[string]any) {
	w.setStatus(ctx, taskId, &queue.Status{Status: cst.TaskStateProgress, Info: info})
}

func (w *Worker) setStatus(ctx context.Context, taskId string, s *queue.Status) {
	if err := w.Queue.SetStatus(ctx, taskId, s); err != nil {
		logs.Errorf("[worker] set status error: %v", err)
	}
}

func (w *Worker) interval() time.Duration {
	if w.stepInterval > 0 {
		return w.stepInterval
	}
	return time.Second
}
