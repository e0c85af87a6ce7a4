package logs

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
)

// logs 包装logx, 统一业务日志入口

func Info(format string, v ...any) {
	logx.Infof(format, v...)
}

func Error(format string, v ...any) {
	logx.Errorf(format, v...)
}

func Errorf(format string, v ...any) {
	logx.Errorf(format, v...)
}

func CtxInfof(ctx context.Context, format string, v ...any) {
	logx.WithContext(ctx).Infof(format, v...)
}

func CtxErrorf(ctx context.Context, format string, v ...any) {
	logx.WithContext(ctx).Errorf(format, v...)
}

// CondError 条件成立时记录错误日志
func CondError(cond bool, format string, v ...any) {
	if cond {
		logx.Errorf(format, v...)
	}
}
