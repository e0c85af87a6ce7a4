package model

import (
	"context"
	"time"

	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

func init() {
	RegisterProvider(cst.ProviderOpenRouter, NewOpenRouterChatModel)
}

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter走OpenAI兼容协议, 模型名原样透传(如 openai/gpt-4)
func NewOpenRouterChatModel(ctx context.Context, c *config.Config, name string) (model.BaseChatModel, error) {
	if c.OpenRouter.APIKey == "" {
		return nil, errorx.New(errno.NoProviderErrCode, errorx.KV("provider", cst.ProviderOpenRouter))
	}
	baseURL := c.OpenRouter.BaseURL
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  c.OpenRouter.APIKey,
		BaseURL: baseURL,
		Model:   name,
		Timeout: 60 * time.Second,
	})
}
