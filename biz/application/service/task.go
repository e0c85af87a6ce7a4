package service

import (
	"context"
	"errors"

	"github.com/aibootstrap/core-api/biz/adaptor"
	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/biz/infra/queue"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/google/wire"
)

type ITaskService interface {
	SubmitLongRunning(ctx context.Context, req *core_api.SubmitTaskReq) (*core_api.SubmitTaskResp, error)
	SubmitDocument(ctx context.Context, req *core_api.SubmitDocumentTaskReq) (*core_api.SubmitTaskResp, error)
	TaskStatus(ctx context.Context, req *core_api.TaskStatusReq) (*core_api.TaskStatusResp, error)
	WorkersHealth(ctx context.Context) (map[string]any, error)
}

type TaskService struct {
	Config *config.Config
	Queue  *queue.TaskQueue
}

var TaskServiceSet = wire.NewSet(
	wire.Struct(new(TaskService), "*"),
	wire.Bind(new(ITaskService), new(*TaskService)),
)

func (s *TaskService) SubmitLongRunning(ctx context.Context, req *core_api.SubmitTaskReq) (*core_api.SubmitTaskResp, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	id, err := s.Queue.Enqueue(ctx, queue.Task{Kind: cst.TaskLongRunning, Data: req.Data})
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.TaskSubmitErrCode)
	}
	return &core_api.SubmitTaskResp{TaskId: id, Status: cst.TaskStatePending, Message: "Task submitted successfully"}, nil
}

func (s *TaskService) SubmitDocument(ctx context.Context, req *core_api.SubmitDocumentTaskReq) (*core_api.SubmitTaskResp, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if req.DocumentURL == "" {
		return nil, errorx.New(errno.InvalidParamErrCode, errorx.KV("reason", "document_url must not be empty"))
	}
	id, err := s.Queue.Enqueue(ctx, queue.Task{Kind: cst.TaskDocument, DocumentURL: req.DocumentURL})
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.TaskSubmitErrCode)
	}
	return &core_api.SubmitTaskResp{TaskId: id, Status: cst.TaskStatePending, Message: "Document processing task submitted"}, nil
}

func (s *TaskService) TaskStatus(ctx context.Context, req *core_api.TaskStatusReq) (*core_api.TaskStatusResp, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	st, err := s.Queue.GetStatus(ctx, req.TaskId)
	if err != nil {
		if errors.Is(err, queue.ErrTaskNotFound) {
			return nil, errorx.New(errno.TaskNotFoundErrCode, errorx.KV("task_id", req.TaskId))
		}
		return nil, errorx.WrapByCode(err, errno.TaskStatusErrCode)
	}
	return &core_api.TaskStatusResp{
		TaskId: req.TaskId,
		Status: st.Status,
		Info:   st.Info,
		Result: st.Result,
		Error:  st.Error,
	}, nil
}

// WorkersHealth 队列可用性探测
func (s *TaskService) WorkersHealth(ctx context.Context) (map[string]any, error) {
	if !s.Config.Modules.UseWorkers {
		return map[string]any{"status": "disabled", "message": "workers module is not enabled"}, nil
	}
	if err := s.Queue.Ping(ctx); err != nil {
		return map[string]any{"status": "unhealthy", "error": err.Error()}, nil
	}
	pending, _ := s.Queue.Pending(ctx)
	return map[string]any{"status": "healthy", "pending_tasks": pending}, nil
}

func (s *TaskService) guard(ctx context.Context) error {
	if _, err := adaptor.ExtractUser(ctx); err != nil {
		return errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	if !s.Config.Modules.UseWorkers {
		return errorx.New(errno.WorkersDisabledErrCode)
	}
	return nil
}
