package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aibootstrap/core-api/biz/adaptor"
	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/domain/history"
	"github.com/aibootstrap/core-api/biz/domain/relay"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

// countSaver 记录落库次数
type countSaver struct{ calls int }

func (s *countSaver) SaveChat(_ context.Context, _ string, _ []*core_api.ChatMessage, _ *history.AssistantTurn, _, _ string) error {
	s.calls++
	return nil
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `Name: core-api-test
Mode: dev
ListenOn: 127.0.0.1:0
Auth:
  SecretKey: ` + testSecret + `
  AccessExpire: 3600
Mongo:
  URL: mongodb://localhost:27017
  DB: coreapi_test
Cache:
  - Host: localhost:6379
Redis:
  Addr: localhost:6379
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("CONFIG_PATH", path)
	c, err := config.NewConfig()
	require.NoError(t, err)
	return c
}

func signedToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"email": "u@example.com",
		"role":  "user",
	})
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func requestCtx(token string) context.Context {
	c := ut.CreateUtRequestContext("POST", "/ai/chat", nil)
	if token != "" {
		c.Request.Header.Set("Authorization", "Bearer "+token)
	}
	return adaptor.InjectContext(context.Background(), c)
}

func chatReq() *core_api.CompletionsReq {
	return &core_api.CompletionsReq{
		Model:    "gpt-4",
		Provider: cst.ProviderOpenAI,
		Messages: []*core_api.ChatMessage{{Role: cst.User, Content: "hi"}},
	}
}

func TestChatRejectsUnauthenticated(t *testing.T) {
	saver := &countSaver{}
	s := &CompletionsService{Config: &config.Config{}, RelayDomain: &relay.RelayDomain{History: saver}}

	// 无请求上下文
	_, err := s.Chat(context.Background(), chatReq())
	ex, ok := errorx.FromError(err)
	require.True(t, ok)
	assert.Equal(t, errno.UnAuthErrCode, ex.Code())

	// 有请求上下文但缺少bearer token
	_, err = s.Chat(requestCtx(""), chatReq())
	ex, ok = errorx.FromError(err)
	require.True(t, ok)
	assert.Equal(t, errno.UnAuthErrCode, ex.Code())

	// 鉴权失败时不会触达上游, 也不落库
	assert.Zero(t, saver.calls)
}

func TestChatWithoutProviderConfigured(t *testing.T) {
	c := loadTestConfig(t)
	require.False(t, c.HasProvider())

	saver := &countSaver{}
	s := &CompletionsService{Config: c, RelayDomain: &relay.RelayDomain{History: saver}}

	_, err := s.Chat(requestCtx(signedToken(t)), chatReq())
	ex, ok := errorx.FromError(err)
	require.True(t, ok)
	assert.Equal(t, errno.NoProviderErrCode, ex.Code())
	assert.Zero(t, saver.calls)
}

func TestChatStreamFailsFastBeforeStreaming(t *testing.T) {
	rc := ut.CreateUtRequestContext("POST", "/ai/chat/stream", nil)
	ctx := adaptor.InjectContext(context.Background(), rc)
	s := &CompletionsService{Config: &config.Config{}, RelayDomain: &relay.RelayDomain{History: &countSaver{}}}

	err := s.ChatStream(rc, ctx, chatReq())
	ex, ok := errorx.FromError(err)
	require.True(t, ok)
	assert.Equal(t, errno.UnAuthErrCode, ex.Code())

	// 流未开启, 响应未被接管
	assert.NotContains(t, string(rc.Response.Header.ContentType()), "text/event-stream")
}
