package service

import (
	"context"
	"time"

	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/mapper/conversation"
	"github.com/aibootstrap/core-api/pkg/logs"
	"github.com/google/wire"
	"github.com/zeromicro/go-zero/core/service"
)

const appVersion = "1.0.0"

type ISystemService interface {
	Health(ctx context.Context) (*core_api.HealthResp, error)
	Ready(ctx context.Context) (*core_api.ReadyResp, error)
	Live(ctx context.Context) (*core_api.LiveResp, error)
}

type SystemService struct {
	Config             *config.Config
	ConversationMapper conversation.MongoMapper
}

var SystemServiceSet = wire.NewSet(
	wire.Struct(new(SystemService), "*"),
	wire.Bind(new(ISystemService), new(*SystemService)),
)

func (s *SystemService) Health(_ context.Context) (*core_api.HealthResp, error) {
	env := "production"
	if s.Config.Mode == service.DevMode || s.Config.Mode == service.TestMode {
		env = "development"
	}
	return &core_api.HealthResp{
		Status:      "healthy",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Version:     appVersion,
		Environment: env,
	}, nil
}

// Ready 就绪检查, 带数据库连通性探测
func (s *SystemService) Ready(ctx context.Context) (*core_api.ReadyResp, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.ConversationMapper.Ping(ctx); err != nil {
		logs.CtxErrorf(ctx, "readiness check failed: %v", err)
		return &core_api.ReadyResp{
			Status:    "not_ready",
			Timestamp: now,
			Database:  "disconnected",
			Error:     err.Error(),
		}, nil
	}
	return &core_api.ReadyResp{
		Status:    "ready",
		Timestamp: now,
		Database:  "connected",
		Modules: map[string]bool{
			"workers": s.Config.Modules.UseWorkers,
			"rag":     s.Config.Modules.UseRAG,
			"ollama":  s.Config.Modules.UseOllama,
		},
	}, nil
}

func (s *SystemService) Live(_ context.Context) (*core_api.LiveResp, error) {
	return &core_api.LiveResp{Status: "alive", Timestamp: time.Now().UTC().Format(time.RFC3339)}, nil
}
