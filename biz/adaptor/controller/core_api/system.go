package core_api

import (
	"context"

	"github.com/aibootstrap/core-api/biz/adaptor"
	"github.com/aibootstrap/core-api/provider"
	"github.com/cloudwego/hertz/pkg/app"
)

// Health 基础健康检查
// @router /health [GET]
func Health(ctx context.Context, c *app.RequestContext) {
	resp, err := provider.Get().SystemService.Health(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// Ready 就绪检查
// @router /health/ready [GET]
func Ready(ctx context.Context, c *app.RequestContext) {
	resp, err := provider.Get().SystemService.Ready(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// Live 存活检查
// @router /health/live [GET]
func Live(ctx context.Context, c *app.RequestContext) {
	resp, err := provider.Get().SystemService.Live(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}
