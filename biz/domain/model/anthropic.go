package model

import (
	"context"

	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/biz/infra/util"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino/components/model"
)

func init() {
	RegisterProvider(cst.ProviderAnthropic, NewAnthropicChatModel)
}

func NewAnthropicChatModel(ctx context.Context, c *config.Config, name string) (model.BaseChatModel, error) {
	if c.Anthropic.APIKey == "" {
		return nil, errorx.New(errno.NoProviderErrCode, errorx.KV("provider", cst.ProviderAnthropic))
	}
	conf := &claude.Config{
		APIKey:    c.Anthropic.APIKey,
		Model:     name,
		MaxTokens: cst.MaxMaxTokens, // 上限兜底, 单次请求通过option覆盖
	}
	if c.Anthropic.BaseURL != "" {
		conf.BaseURL = util.Ptr(c.Anthropic.BaseURL)
	}
	return claude.NewChatModel(ctx, conf)
}
