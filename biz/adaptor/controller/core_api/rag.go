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

// IngestDocuments 向量化并写入文档
// @router /rag/ingest [POST]
func IngestDocuments(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.IngestDocumentsReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, errorx.WrapByCode(err, errno.InvalidParamErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().RAGService.IngestDocuments(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// SearchDocuments 相似文档检索
// @router /rag/search [POST]
func SearchDocuments(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.SearchDocumentsReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, errorx.WrapByCode(err, errno.InvalidParamErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().RAGService.SearchDocuments(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListCollections 列出所有集合
// @router /rag/collections [GET]
func ListCollections(ctx context.Context, c *app.RequestContext) {
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().RAGService.ListCollections(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// CollectionInfo 集合详情
// @router /rag/collections/:collection_name [GET]
func CollectionInfo(ctx context.Context, c *app.RequestContext) {
	req := core_api.CollectionInfoReq{CollectionName: c.Param("collection_name")}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().RAGService.CollectionInfo(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteDocuments 按id删除文档
// @router /rag/documents [DELETE]
func DeleteDocuments(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.DeleteDocumentsReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, errorx.WrapByCode(err, errno.InvalidParamErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().RAGService.DeleteDocuments(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
