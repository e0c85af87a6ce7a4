package errorx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aibootstrap/core-api/pkg/errorx/code"
)

// Errorx 是业务错误, 携带注册过的错误码
// 最佳实践:
// - 业务处理链路的末端使用Errorx, PostProcess处理后给出用户友好的响应
// - 其余error照常处理, 由WrapByCode在边界处收敛

type KVPair struct {
	K, V string
}

func KV(k, v string) KVPair {
	return KVPair{K: k, V: v}
}

type Errorx struct {
	code  int
	cause error
	kvs   []KVPair
}

func New(c int, kvs ...KVPair) *Errorx {
	return &Errorx{code: c, kvs: kvs}
}

// WrapByCode 包装err为带错误码的Errorx, err为nil时返回nil
func WrapByCode(err error, c int, kvs ...KVPair) error {
	if err == nil {
		return nil
	}
	return &Errorx{code: c, cause: err, kvs: kvs}
}

func (e *Errorx) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("code=%d, msg=%s", e.code, code.Msg(e.code)))
	for _, kv := range e.kvs {
		sb.WriteString(fmt.Sprintf(", %s=%s", kv.K, kv.V))
	}
	if e.cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.cause.Error())
	}
	return sb.String()
}

func (e *Errorx) Code() int {
	return e.code
}

func (e *Errorx) Msg() string {
	m := code.Msg(e.code)
	for _, kv := range e.kvs {
		m += fmt.Sprintf(" [%s=%s]", kv.K, kv.V)
	}
	return m
}

func (e *Errorx) HTTPStatus() int {
	return code.HTTPStatus(e.code)
}

func (e *Errorx) Unwrap() error {
	return e.cause
}

// FromError 提取err链上的Errorx
func FromError(err error) (*Errorx, bool) {
	var ex *Errorx
	if errors.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// ErrorWithoutStack 返回不带堆栈的错误描述, 用于日志
func ErrorWithoutStack(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
