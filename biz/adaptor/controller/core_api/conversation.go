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

// ListConversation 分页获取当前用户的对话列表
// @router /ai/chats [GET]
func ListConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ListConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, errorx.WrapByCode(err, errno.InvalidParamErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ConversationService.ListConversation(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetConversation 获取对话的全部消息
// @router /ai/chats/:conversation_id [GET]
func GetConversation(ctx context.Context, c *app.RequestContext) {
	req := core_api.GetConversationReq{ConversationId: c.Param("conversation_id")}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ConversationService.GetConversation(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteConversation 删除对话及其消息
// @router /ai/chats/:conversation_id [DELETE]
func DeleteConversation(ctx context.Context, c *app.RequestContext) {
	req := core_api.DeleteConversationReq{ConversationId: c.Param("conversation_id")}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ConversationService.DeleteConversation(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ChatStats 当前用户的对话统计
// @router /ai/stats [GET]
func ChatStats(ctx context.Context, c *app.RequestContext) {
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ConversationService.ChatStats(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}
