package errno

import (
	"net/http"

	"github.com/aibootstrap/core-api/pkg/errorx/code"
)

const (
	ConversationListErrCode     = 71001
	ConversationGetErrCode      = 71002
	ConversationNotFoundErrCode = 71003
	ConversationDeleteErrCode   = 71004
	ConversationStatsErrCode    = 71005
)

func init() {
	code.Register(
		ConversationListErrCode,
		"failed to list conversations",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationGetErrCode,
		"failed to get conversation messages",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationNotFoundErrCode,
		"conversation not found or access denied",
		code.WithHTTPStatus(http.StatusNotFound),
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationDeleteErrCode,
		"failed to delete conversation",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationStatsErrCode,
		"failed to get chat stats",
		code.WithAffectStability(false),
	)
}
