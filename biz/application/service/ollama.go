package service

import (
	"context"

	"github.com/aibootstrap/core-api/biz/adaptor"
	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/util"
	"github.com/aibootstrap/core-api/biz/infra/util/httpx"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/google/wire"
)

type IOllamaService interface {
	ListModels(ctx context.Context) (*core_api.ListOllamaModelsResp, error)
	PullModel(ctx context.Context, req *core_api.PullOllamaModelReq) (*core_api.PullOllamaModelResp, error)
	DeleteModel(ctx context.Context, req *core_api.DeleteOllamaModelReq) (*core_api.DeleteOllamaModelResp, error)
	Embeddings(ctx context.Context, req *core_api.OllamaEmbeddingsReq) (*core_api.OllamaEmbeddingsResp, error)
	Health(ctx context.Context) (map[string]any, error)
}

// OllamaService 本地模型管理, 直接代理Ollama的REST管理接口
type OllamaService struct {
	Config *config.Config
}

var OllamaServiceSet = wire.NewSet(
	wire.Struct(new(OllamaService), "*"),
	wire.Bind(new(IOllamaService), new(*OllamaService)),
)

func (s *OllamaService) ListModels(ctx context.Context) (*core_api.ListOllamaModelsResp, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	data, err := httpx.GetHttpClient().Get(ctx, s.Config.Ollama.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.OllamaErrCode)
	}

	models := make([]*core_api.OllamaModelInfo, 0)
	raw, _ := data["models"].([]any)
	for _, it := range raw {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		info := &core_api.OllamaModelInfo{}
		info.Name, _ = m["name"].(string)
		if size, ok := m["size"].(float64); ok {
			info.Size = int64(size)
		}
		info.ModifiedAt, _ = m["modified_at"].(string)
		info.Digest, _ = m["digest"].(string)
		models = append(models, info)
	}
	return &core_api.ListOllamaModelsResp{Resp: util.Success(), Models: models}, nil
}

func (s *OllamaService) PullModel(ctx context.Context, req *core_api.PullOllamaModelReq) (*core_api.PullOllamaModelResp, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, errorx.New(errno.InvalidParamErrCode, errorx.KV("reason", "model name must not be empty"))
	}
	// 拉取可能耗时较长, stream=false等待完成
	if _, err := httpx.GetHttpClient().Post(ctx, s.Config.Ollama.BaseURL+"/api/pull", nil, map[string]any{
		"name":   req.Name,
		"stream": false,
	}); err != nil {
		return nil, errorx.WrapByCode(err, errno.OllamaErrCode, errorx.KV("model", req.Name))
	}
	return &core_api.PullOllamaModelResp{Resp: util.Success()}, nil
}

func (s *OllamaService) DeleteModel(ctx context.Context, req *core_api.DeleteOllamaModelReq) (*core_api.DeleteOllamaModelResp, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if err := httpx.GetHttpClient().Delete(ctx, s.Config.Ollama.BaseURL+"/api/delete", nil, map[string]any{
		"name": req.Name,
	}); err != nil {
		return nil, errorx.WrapByCode(err, errno.OllamaErrCode, errorx.KV("model", req.Name))
	}
	return &core_api.DeleteOllamaModelResp{Resp: util.Success()}, nil
}

func (s *OllamaService) Embeddings(ctx context.Context, req *core_api.OllamaEmbeddingsReq) (*core_api.OllamaEmbeddingsResp, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if req.Text == "" {
		return nil, errorx.New(errno.InvalidParamErrCode, errorx.KV("reason", "text must not be empty"))
	}
	name := req.Model
	if name == "" {
		name = s.Config.Ollama.Model
	}
	data, err := httpx.GetHttpClient().Post(ctx, s.Config.Ollama.BaseURL+"/api/embeddings", nil, map[string]any{
		"model":  name,
		"prompt": req.Text,
	})
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.OllamaErrCode, errorx.KV("model", name))
	}

	raw, _ := data["embedding"].([]any)
	embeddings := make([]float64, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(float64); ok {
			embeddings = append(embeddings, f)
		}
	}
	return &core_api.OllamaEmbeddingsResp{
		Resp:       util.Success(),
		Model:      name,
		Embeddings: embeddings,
		Dimensions: len(embeddings),
	}, nil
}

// Health 探测Ollama服务可达性, 无需鉴权
func (s *OllamaService) Health(ctx context.Context) (map[string]any, error) {
	if !s.Config.Modules.UseOllama {
		return map[string]any{"status": "disabled", "message": "ollama module is not enabled"}, nil
	}
	data, err := httpx.GetHttpClient().Get(ctx, s.Config.Ollama.BaseURL+"/api/tags", nil)
	if err != nil {
		return map[string]any{"status": "unhealthy", "error": err.Error()}, nil
	}
	count := 0
	if raw, ok := data["models"].([]any); ok {
		count = len(raw)
	}
	return map[string]any{"status": "healthy", "models_available": count}, nil
}

func (s *OllamaService) guard(ctx context.Context) error {
	if _, err := adaptor.ExtractUser(ctx); err != nil {
		return errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	if !s.Config.Modules.UseOllama {
		return errorx.New(errno.OllamaDisabledErrCode)
	}
	return nil
}
