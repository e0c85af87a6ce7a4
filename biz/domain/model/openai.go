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
	RegisterProvider(cst.ProviderOpenAI, NewOpenAIChatModel)
}

func NewOpenAIChatModel(ctx context.Context, c *config.Config, name string) (model.BaseChatModel, error) {
	if c.OpenAI.APIKey == "" {
		return nil, errorx.New(errno.NoProviderErrCode, errorx.KV("provider", cst.ProviderOpenAI))
	}
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  c.OpenAI.APIKey,
		BaseURL: c.OpenAI.BaseURL,
		Model:   name,
		Timeout: 60 * time.Second,
	})
}
