package adaptor

import (
	"context"
	"errors"
	"strings"

	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/pkg/logs"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol"
	hertz "github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/golang-jwt/jwt/v4"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel/propagation"
)

const hertzContext = "hertz_context"

func InjectContext(ctx context.Context, c *app.RequestContext) context.Context {
	return context.WithValue(ctx, hertzContext, c)
}

func ExtractContext(ctx context.Context) (*app.RequestContext, error) {
	c, ok := ctx.Value(hertzContext).(*app.RequestContext)
	if !ok {
		return nil, errors.New("hertz context not found")
	}
	return c, nil
}

// ExtractUser 从Authorization头解析用户身份
// 先按Supabase token(HS256, aud=authenticated)解析, 失败后回退到自签JWT
func ExtractUser(ctx context.Context) (u *core_api.UserInfo, err error) {
	defer func() {
		if err != nil {
			logs.CtxInfof(ctx, "extract user fail, err=%v", err)
		}
	}()
	c, err := ExtractContext(ctx)
	if err != nil {
		return nil, err
	}
	token := strings.TrimPrefix(string(c.GetHeader("Authorization")), "Bearer ")
	if token == "" {
		return nil, errors.New("missing bearer token")
	}
	return ResolveToken(config.GetConfig(), token)
}

// ResolveToken 解析bearer token, 无法解析时返回错误
func ResolveToken(c *config.Config, token string) (*core_api.UserInfo, error) {
	if c.Auth.SupabaseAnonKey != "" {
		if u, err := parseHS256(token, c.Auth.SupabaseAnonKey, "authenticated", "authenticated"); err == nil {
			return u, nil
		}
	}
	return parseHS256(token, c.Auth.SecretKey, "", "user")
}

func parseHS256(tokenString, secret, audience, defaultRole string) (*core_api.UserInfo, error) {
	token, err := jwt.Parse(tokenString, func(_ *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if audience != "" && !claims.VerifyAudience(audience, true) {
		return nil, errors.New("audience mismatch")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("missing subject")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = defaultRole
	}
	return &core_api.UserInfo{UserId: sub, Email: email, Role: role}, nil
}

// PostProcess 处理http响应
// 在日志中记录本次调用详情, 同时向响应头中注入符合b3规范的链路信息
// 最佳实践:
// - 在controller中调用业务处理, 处理结束后调用PostProcess
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	b3.New().Inject(ctx, &headerProvider{headers: &c.Response.Header})
	logs.CtxInfof(ctx, "[%s] err=%s", c.Path(), errorx.ErrorWithoutStack(err))

	// 无错, 正常响应
	if err == nil {
		c.JSON(hertz.StatusOK, resp)
		return
	}

	if ex, ok := errorx.FromError(err); ok { // errorx错误, 按注册的状态码响应
		c.JSON(ex.HTTPStatus(), map[string]any{
			"code": ex.Code(),
			"msg":  ex.Msg(),
		})
		return
	}
	// 常规错误, 状态码500, 详情只记录在服务端
	logs.CtxErrorf(ctx, "internal error, err=%s", err.Error())
	c.JSON(hertz.StatusInternalServerError, map[string]any{
		"code": hertz.StatusInternalServerError,
		"msg":  "internal server error",
	})
}

var _ propagation.TextMapCarrier = &headerProvider{}

type headerProvider struct {
	headers *protocol.ResponseHeader
}

// Get a value from metadata by key
func (m *headerProvider) Get(key string) string {
	return m.headers.Get(key)
}

// Set a value to metadata by k/v
func (m *headerProvider) Set(key, value string) {
	m.headers.Set(key, value)
}

// Keys Iteratively get all keys of metadata
func (m *headerProvider) Keys() []string {
	out := make([]string, 0)

	m.headers.VisitAll(func(key, value []byte) {
		out = append(out, string(key))
	})

	return out
}
