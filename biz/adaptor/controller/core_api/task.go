package core_api

import (
	"context"

	"github.com/aibootstrap/core-api/biz/adaptor"
	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/provider"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

// SubmitTask 提交长耗时任务
// @router /workers/tasks [POST]
func SubmitTask(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.SubmitTaskReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, errorx.WrapByCode(err, errno.InvalidParamErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().TaskService.SubmitLongRunning(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// SubmitDocumentTask 提交文档处理任务
// @router /workers/tasks/document [POST]
func SubmitDocumentTask(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.SubmitDocumentTaskReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, errorx.WrapByCode(err, errno.InvalidParamErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().TaskService.SubmitDocument(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// TaskStatus 查询任务状态
// @router /workers/tasks/:task_id [GET]
func TaskStatus(ctx context.Context, c *app.RequestContext) {
	req := core_api.TaskStatusReq{TaskId: c.Param("task_id")}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().TaskService.TaskStatus(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// WorkersHealth 任务队列健康检查
// @router /workers/health [GET]
func WorkersHealth(ctx context.Context, c *app.RequestContext) {
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().TaskService.WorkersHealth(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}
