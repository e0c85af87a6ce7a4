package errno

import (
	"github.com/aibootstrap/core-api/pkg/errorx/code"
)

const (
	CompletionsErrCode = 70001
	ModelListErrCode   = 70002
)

func init() {
	code.Register(
		CompletionsErrCode,
		"chat completion failed",
		code.WithAffectStability(false),
	)
	code.Register(
		ModelListErrCode,
		"failed to list models",
		code.WithAffectStability(false),
	)
}
