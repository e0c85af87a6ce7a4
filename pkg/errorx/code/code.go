package code

import (
	"net/http"
	"sync"
)

// 错误码注册表, 各types/errno包在init中注册

type Option func(*definition)

type definition struct {
	msg             string
	httpStatus      int
	affectStability bool
}

var (
	mu   sync.RWMutex
	defs = map[int]*definition{}
)

func Register(code int, msg string, opts ...Option) {
	d := &definition{msg: msg, httpStatus: http.StatusInternalServerError}
	for _, opt := range opts {
		opt(d)
	}
	mu.Lock()
	defs[code] = d
	mu.Unlock()
}

// WithAffectStability 标记该错误是否计入稳定性
func WithAffectStability(affect bool) Option {
	return func(d *definition) { d.affectStability = affect }
}

// WithHTTPStatus 指定该错误码对应的HTTP状态码, 默认500
func WithHTTPStatus(status int) Option {
	return func(d *definition) { d.httpStatus = status }
}

func Msg(code int) string {
	mu.RLock()
	defer mu.RUnlock()
	if d, ok := defs[code]; ok {
		return d.msg
	}
	return "unknown error"
}

func HTTPStatus(code int) int {
	mu.RLock()
	defer mu.RUnlock()
	if d, ok := defs[code]; ok {
		return d.httpStatus
	}
	return http.StatusInternalServerError
}
