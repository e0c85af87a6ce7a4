package service

import (
	"context"
	"fmt"

	"github.com/aibootstrap/core-api/biz/adaptor"
	"github.com/aibootstrap/core-api/biz/application/dto/basic"
	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/domain/rag"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/util"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/google/wire"
)

type IRAGService interface {
	IngestDocuments(ctx context.Context, req *core_api.IngestDocumentsReq) (*core_api.IngestDocumentsResp, error)
	SearchDocuments(ctx context.Context, req *core_api.SearchDocumentsReq) (*core_api.SearchDocumentsResp, error)
	ListCollections(ctx context.Context) (*core_api.ListCollectionsResp, error)
	CollectionInfo(ctx context.Context, req *core_api.CollectionInfoReq) (*core_api.CollectionInfoResp, error)
	DeleteDocuments(ctx context.Context, req *core_api.DeleteDocumentsReq) (*core_api.DeleteDocumentsResp, error)
}

type RAGService struct {
	Config    *config.Config
	RAGDomain *rag.Domain
}

var RAGServiceSet = wire.NewSet(
	wire.Struct(new(RAGService), "*"),
	wire.Bind(new(IRAGService), new(*RAGService)),
)

func (s *RAGService) IngestDocuments(ctx context.Context, req *core_api.IngestDocumentsReq) (*core_api.IngestDocumentsResp, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if len(req.Documents) == 0 {
		return nil, errorx.New(errno.InvalidParamErrCode, errorx.KV("reason", "documents must not be empty"))
	}
	ids, err := s.RAGDomain.Ingest(ctx, req)
	if err != nil {
		return nil, err
	}
	return &core_api.IngestDocumentsResp{
		Resp:        &basic.Response{Code: 200, Msg: fmt.Sprintf("Ingested %d documents", len(ids))},
		DocumentIds: ids,
	}, nil
}

func (s *RAGService) SearchDocuments(ctx context.Context, req *core_api.SearchDocumentsReq) (*core_api.SearchDocumentsResp, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if req.Query == "" {
		return nil, errorx.New(errno.InvalidParamErrCode, errorx.KV("reason", "query must not be empty"))
	}
	results, err := s.RAGDomain.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	return &core_api.SearchDocumentsResp{Resp: util.Success(), Results: results}, nil
}

func (s *RAGService) ListCollections(ctx context.Context) (*core_api.ListCollectionsResp, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	names, err := s.RAGDomain.Collections(ctx)
	if err != nil {
		return nil, err
	}
	return &core_api.ListCollectionsResp{Resp: util.Success(), Collections: names, Count: len(names)}, nil
}

func (s *RAGService) CollectionInfo(ctx context.Context, req *core_api.CollectionInfoReq) (*core_api.CollectionInfoResp, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	total, err := s.RAGDomain.CollectionInfo(ctx, req.CollectionName)
	if err != nil {
		return nil, err
	}
	name := req.CollectionName
	if name == "" {
		name = rag.DefaultCollection
	}
	return &core_api.CollectionInfoResp{Resp: util.Success(), Name: name, DocumentCount: total}, nil
}

func (s *RAGService) DeleteDocuments(ctx context.Context, req *core_api.DeleteDocumentsReq) (*core_api.DeleteDocumentsResp, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if len(req.DocumentIds) == 0 {
		return nil, errorx.New(errno.InvalidParamErrCode, errorx.KV("reason", "document_ids must not be empty"))
	}
	if err := s.RAGDomain.Delete(ctx, req.DocumentIds); err != nil {
		return nil, err
	}
	return &core_api.DeleteDocumentsResp{Resp: util.Success()}, nil
}

// 鉴权并检查模块开关
func (s *RAGService) guard(ctx context.Context) error {
	if _, err := adaptor.ExtractUser(ctx); err != nil {
		return errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	if !s.Config.Modules.UseRAG {
		return errorx.New(errno.RAGDisabledErrCode)
	}
	return nil
}
