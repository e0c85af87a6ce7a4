package service

import (
	"context"

	"github.com/aibootstrap/core-api/biz/adaptor"
	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/google/wire"
)

type IAuthService interface {
	VerifyToken(ctx context.Context, req *core_api.VerifyTokenReq) (*core_api.VerifyTokenResp, error)
	Me(ctx context.Context) (*core_api.MeResp, error)
	AuthConfig(ctx context.Context) (*core_api.AuthConfigResp, error)
}

type AuthService struct {
	Config *config.Config
}

var AuthServiceSet = wire.NewSet(
	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),
)

// VerifyToken 校验token, 校验失败不报错而是返回valid=false
func (s *AuthService) VerifyToken(_ context.Context, req *core_api.VerifyTokenReq) (*core_api.VerifyTokenResp, error) {
	u, err := adaptor.ResolveToken(s.Config, req.Token)
	if err != nil {
		return &core_api.VerifyTokenResp{Valid: false, Error: "invalid or expired token"}, nil
	}
	return &core_api.VerifyTokenResp{Valid: true, User: u}, nil
}

// Me 返回当前用户信息
func (s *AuthService) Me(ctx context.Context) (*core_api.MeResp, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	return &core_api.MeResp{UserId: u.UserId, Email: u.Email, Role: u.Role}, nil
}

// AuthConfig 前端初始化所需的公开配置
func (s *AuthService) AuthConfig(_ context.Context) (*core_api.AuthConfigResp, error) {
	return &core_api.AuthConfigResp{
		SupabaseConfigured: s.Config.Auth.SupabaseURL != "" && s.Config.Auth.SupabaseAnonKey != "",
		SupabaseURL:        s.Config.Auth.SupabaseURL,
		SupabaseAnonKey:    s.Config.Auth.SupabaseAnonKey,
	}, nil
}
