package service

import (
	"context"

	"github.com/aibootstrap/core-api/biz/adaptor"
	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	dm "github.com/aibootstrap/core-api/biz/domain/model"
	"github.com/aibootstrap/core-api/biz/domain/relay"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/pkg/logs"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/wire"
)

type ICompletionsService interface {
	Chat(ctx context.Context, req *core_api.CompletionsReq) (*core_api.CompletionsResp, error)
	ChatStream(c *app.RequestContext, ctx context.Context, req *core_api.CompletionsReq) error
	ListModels(ctx context.Context) (*core_api.ListModelsResp, error)
}

type CompletionsService struct {
	Config      *config.Config
	RelayDomain *relay.RelayDomain
}

var CompletionsServiceSet = wire.NewSet(
	wire.Struct(new(CompletionsService), "*"),
	wire.Bind(new(ICompletionsService), new(*CompletionsService)),
)

// Chat 非流式对话
func (s *CompletionsService) Chat(ctx context.Context, req *core_api.CompletionsReq) (*core_api.CompletionsResp, error) {
	u, r, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	r.UserId = u.UserId
	m, err := dm.GetModel(ctx, s.Config, req.Provider, req.Model)
	if err != nil {
		return nil, err
	}
	return s.RelayDomain.Complete(ctx, r, m)
}

// ChatStream 流式对话, 事件通过SSE直接写回
func (s *CompletionsService) ChatStream(c *app.RequestContext, ctx context.Context, req *core_api.CompletionsReq) error {
	u, r, err := s.prepare(ctx, req)
	if err != nil {
		return err
	}
	r.UserId = u.UserId
	m, err := dm.GetModel(ctx, s.Config, req.Provider, req.Model)
	if err != nil {
		return err
	}
	return s.RelayDomain.Stream(ctx, r, m, adaptor.NewEventSink(c))
}

// ListModels 列出可用模型
func (s *CompletionsService) ListModels(ctx context.Context) (*core_api.ListModelsResp, error) {
	if _, err := adaptor.ExtractUser(ctx); err != nil {
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	return &core_api.ListModelsResp{Models: dm.ListModels(s.Config)}, nil
}

// 鉴权+校验并组装转发请求
func (s *CompletionsService) prepare(ctx context.Context, req *core_api.CompletionsReq) (*core_api.UserInfo, *relay.Request, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		logs.CtxInfof(ctx, "extract user error: %s", errorx.ErrorWithoutStack(err))
		return nil, nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	if !s.Config.HasProvider() {
		return nil, nil, errorx.New(errno.NoProviderErrCode)
	}
	if err = validateCompletions(req); err != nil {
		return nil, nil, err
	}
	return u, &relay.Request{
		Model:       req.Model,
		Provider:    req.Provider,
		Turns:       req.Messages,
		Temperature: req.GetTemperature(),
		MaxTokens:   req.GetMaxTokens(),
	}, nil
}

func validateCompletions(req *core_api.CompletionsReq) error {
	if len(req.Messages) == 0 {
		return errorx.New(errno.InvalidParamErrCode, errorx.KV("reason", "messages must not be empty"))
	}
	hasUser := false
	for _, m := range req.Messages {
		switch m.Role {
		case cst.User:
			hasUser = true
		case cst.System, cst.Assistant:
		default:
			return errorx.New(errno.InvalidParamErrCode, errorx.KV("role", m.Role))
		}
		if m.Content == "" {
			return errorx.New(errno.InvalidParamErrCode, errorx.KV("reason", "message content must not be empty"))
		}
	}
	if !hasUser {
		return errorx.New(errno.InvalidParamErrCode, errorx.KV("reason", "at least one user message is required"))
	}
	if t := req.GetTemperature(); t < cst.MinTemperature || t > cst.MaxTemperature {
		return errorx.New(errno.InvalidParamErrCode, errorx.KV("reason", "temperature out of range"))
	}
	if mt := req.GetMaxTokens(); mt < cst.MinMaxTokens || mt > cst.MaxMaxTokens {
		return errorx.New(errno.InvalidParamErrCode, errorx.KV("reason", "max_tokens out of range"))
	}
	return nil
}
