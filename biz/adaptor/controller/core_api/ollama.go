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

// ListOllamaModels 列出本地可用模型
// @router /ollama/models [GET]
func ListOllamaModels(ctx context.Context, c *app.RequestContext) {
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().OllamaService.ListModels(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// PullOllamaModel 拉取模型
// @router /ollama/models/pull [POST]
func PullOllamaModel(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.PullOllamaModelReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, errorx.WrapByCode(err, errno.InvalidParamErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().OllamaService.PullModel(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteOllamaModel 删除模型
// @router /ollama/models/:model_name [DELETE]
func DeleteOllamaModel(ctx context.Context, c *app.RequestContext) {
	req := core_api.DeleteOllamaModelReq{Name: c.Param("model_name")}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().OllamaService.DeleteModel(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// OllamaEmbeddings 生成本地向量
// @router /ollama/embeddings [POST]
func OllamaEmbeddings(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.OllamaEmbeddingsReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, errorx.WrapByCode(err, errno.InvalidParamErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().OllamaService.Embeddings(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// OllamaHealth Ollama服务健康检查
// @router /ollama/health [GET]
func OllamaHealth(ctx context.Context, c *app.RequestContext) {
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().OllamaService.Health(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}
