package model

import (
	"context"

	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/cloudwego/eino/components/model"
)

type getModelFunc func(ctx context.Context, c *config.Config, name string) (model.BaseChatModel, error)

var providers = map[string]getModelFunc{}

func RegisterProvider(provider string, f getModelFunc) {
	providers[provider] = f
}

// GetModel 按provider分发, 配置驱动而非继承
func GetModel(ctx context.Context, c *config.Config, provider, name string) (model.BaseChatModel, error) {
	if provider == "" {
		provider = c.DefaultProvider
	}
	f, ok := providers[provider]
	if !ok {
		return nil, errorx.New(errno.InvalidParamErrCode, errorx.KV("provider", provider))
	}
	return f(ctx, c, name)
}

// ListModels 列出各已配置provider的可用模型
func ListModels(c *config.Config) []*core_api.ModelInfo {
	models := make([]*core_api.ModelInfo, 0)
	if c.OpenAI.APIKey != "" {
		models = append(models,
			&core_api.ModelInfo{Id: "gpt-4", Provider: cst.ProviderOpenAI, Name: "GPT-4"},
			&core_api.ModelInfo{Id: "gpt-4-turbo", Provider: cst.ProviderOpenAI, Name: "GPT-4 Turbo"},
			&core_api.ModelInfo{Id: "gpt-3.5-turbo", Provider: cst.ProviderOpenAI, Name: "GPT-3.5 Turbo"},
		)
	}
	if c.Anthropic.APIKey != "" {
		models = append(models,
			&core_api.ModelInfo{Id: "claude-3-opus", Provider: cst.ProviderAnthropic, Name: "Claude 3 Opus"},
			&core_api.ModelInfo{Id: "claude-3-sonnet", Provider: cst.ProviderAnthropic, Name: "Claude 3 Sonnet"},
			&core_api.ModelInfo{Id: "claude-3-haiku", Provider: cst.ProviderAnthropic, Name: "Claude 3 Haiku"},
		)
	}
	if c.OpenRouter.APIKey != "" {
		models = append(models,
			&core_api.ModelInfo{Id: "openai/gpt-4", Provider: cst.ProviderOpenRouter, Name: "GPT-4 (via OpenRouter)"},
			&core_api.ModelInfo{Id: "anthropic/claude-3-opus", Provider: cst.ProviderOpenRouter, Name: "Claude 3 Opus (via OpenRouter)"},
			&core_api.ModelInfo{Id: "meta-llama/llama-2-70b-chat", Provider: cst.ProviderOpenRouter, Name: "Llama 2 70B (via OpenRouter)"},
		)
	}
	if c.Modules.UseOllama {
		models = append(models,
			&core_api.ModelInfo{Id: c.Ollama.Model, Provider: cst.ProviderOllama, Name: c.Ollama.Model + " (local)"},
		)
	}
	return models
}
