package model

import (
	"context"
	"time"

	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino/components/model"
)

func init() {
	RegisterProvider(cst.ProviderOllama, NewOllamaChatModel)
}

func NewOllamaChatModel(ctx context.Context, c *config.Config, name string) (model.BaseChatModel, error) {
	if !c.Modules.UseOllama {
		return nil, errorx.New(errno.OllamaDisabledErrCode)
	}
	if name == "" {
		name = c.Ollama.Model
	}
	return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
		BaseURL: c.Ollama.BaseURL,
		Model:   name,
		Timeout: 60 * time.Second,
	})
}
