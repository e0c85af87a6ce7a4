package main

import (
	"context"
	"time"

	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/router"
	"github.com/aibootstrap/core-api/pkg/logs"
	"github.com/aibootstrap/core-api/provider"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/cors"
	prometheus "github.com/hertz-contrib/monitor-prometheus"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
)

func main() {
	provider.Init()
	c := provider.Get().Config

	tracer, cfg := hertztracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(c.ListenOn),
		server.WithTracer(prometheus.NewServerTracer(c.MetricsListenOn, "/metrics")),
		tracer,
	)
	h.Use(hertztracing.ServerMiddleware(cfg))
	h.Use(cors.New(corsConfig(c)))

	router.Register(h, c)

	// 后台任务worker随服务一起启动
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if c.Modules.UseWorkers {
		if err := provider.Get().Worker.Start(ctx); err != nil {
			logs.Errorf("start worker error: %v", err)
		}
	}

	h.Spin()
}

func corsConfig(c *config.Config) cors.Config {
	conf := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(c.CORSOrigins) > 0 {
		conf.AllowOrigins = c.CORSOrigins
		conf.AllowCredentials = true
	} else {
		conf.AllowAllOrigins = true
	}
	return conf
}
