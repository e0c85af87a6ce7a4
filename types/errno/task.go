package errno

import (
	"net/http"

	"github.com/aibootstrap/core-api/pkg/errorx/code"
)

const (
	TaskSubmitErrCode      = 73001
	TaskStatusErrCode      = 73002
	TaskNotFoundErrCode    = 73003
	WorkersDisabledErrCode = 73004
)

func init() {
	code.Register(
		TaskSubmitErrCode,
		"failed to submit task",
		code.WithAffectStability(false),
	)
	code.Register(
		TaskStatusErrCode,
		"failed to get task status",
		code.WithAffectStability(false),
	)
	code.Register(
		TaskNotFoundErrCode,
		"task not found",
		code.WithHTTPStatus(http.StatusNotFound),
		code.WithAffectStability(false),
	)
	code.Register(
		WorkersDisabledErrCode,
		"workers module is not enabled",
		code.WithHTTPStatus(http.StatusServiceUnavailable),
		code.WithAffectStability(false),
	)
}
