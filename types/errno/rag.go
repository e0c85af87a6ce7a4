package errno

import (
	"net/http"

	"github.com/aibootstrap/core-api/pkg/errorx/code"
)

const (
	RAGIngestErrCode     = 72001
	RAGSearchErrCode     = 72002
	RAGCollectionErrCode = 72003
	RAGDeleteErrCode     = 72004
	RAGDisabledErrCode   = 72005
)

func init() {
	code.Register(
		RAGDisabledErrCode,
		"rag module is not enabled",
		code.WithHTTPStatus(http.StatusServiceUnavailable),
		code.WithAffectStability(false),
	)
	code.Register(
		RAGIngestErrCode,
		"failed to ingest documents",
		code.WithAffectStability(false),
	)
	code.Register(
		RAGSearchErrCode,
		"failed to search documents",
		code.WithAffectStability(false),
	)
	code.Register(
		RAGCollectionErrCode,
		"failed to access collection",
		code.WithAffectStability(false),
	)
	code.Register(
		RAGDeleteErrCode,
		"failed to delete documents",
		code.WithAffectStability(false),
	)
}
