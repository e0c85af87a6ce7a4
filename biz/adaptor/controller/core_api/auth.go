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

// VerifyToken 校验token有效性
// @router /auth/verify [POST]
func VerifyToken(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.VerifyTokenReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, errorx.WrapByCode(err, errno.InvalidParamErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().AuthService.VerifyToken(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Me 当前用户信息
// @router /auth/me [GET]
func Me(ctx context.Context, c *app.RequestContext) {
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().AuthService.Me(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// AuthConfig 公开的认证配置
// @router /auth/config [GET]
func AuthConfig(ctx context.Context, c *app.RequestContext) {
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().AuthService.AuthConfig(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}
