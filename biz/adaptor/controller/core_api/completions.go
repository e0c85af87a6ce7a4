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

// Chat 非流式对话
// @router /ai/chat [POST]
func Chat(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.CompletionsReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, errorx.WrapByCode(err, errno.InvalidParamErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().CompletionsService.Chat(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ChatStream 流式对话, 响应为SSE事件流
// @router /ai/chat/stream [POST]
func ChatStream(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.CompletionsReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, errorx.WrapByCode(err, errno.InvalidParamErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	err = provider.Get().CompletionsService.ChatStream(c, ctx, &req)
	adaptor.SSE(ctx, c, &req, err)
}

// ListModels 列出可用模型
// @router /ai/models [GET]
func ListModels(ctx context.Context, c *app.RequestContext) {
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().CompletionsService.ListModels(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}
