package errno

import (
	"net/http"

	"github.com/aibootstrap/core-api/pkg/errorx/code"
)

const (
	OllamaErrCode         = 74001
	OllamaDisabledErrCode = 74002
)

func init() {
	code.Register(
		OllamaErrCode,
		"ollama request failed",
		code.WithAffectStability(false),
	)
	code.Register(
		OllamaDisabledErrCode,
		"ollama module is not enabled",
		code.WithHTTPStatus(http.StatusServiceUnavailable),
		code.WithAffectStability(false),
	)
}
