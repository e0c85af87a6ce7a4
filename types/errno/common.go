package errno

import (
	"net/http"

	"github.com/aibootstrap/core-api/pkg/errorx/code"
)

const (
	UnAuthErrCode       = 1000
	InvalidParamErrCode = 1001
	NoProviderErrCode   = 1002
	UnImplementErrCode  = 888
)

func init() {
	code.Register(
		UnAuthErrCode,
		"invalid authentication credentials",
		code.WithHTTPStatus(http.StatusUnauthorized),
		code.WithAffectStability(false),
	)
	code.Register(
		InvalidParamErrCode,
		"invalid request parameter",
		code.WithHTTPStatus(http.StatusBadRequest),
		code.WithAffectStability(false),
	)
	code.Register(
		NoProviderErrCode,
		"no AI provider configured",
		code.WithHTTPStatus(http.StatusServiceUnavailable),
		code.WithAffectStability(false),
	)
	code.Register(
		UnImplementErrCode,
		"not implemented",
		code.WithAffectStability(true),
	)
}
