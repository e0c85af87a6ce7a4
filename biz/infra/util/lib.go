package util

import (
	"github.com/aibootstrap/core-api/biz/application/dto/basic"
)

// Success 返回成功的basic.Response指针
func Success() *basic.Response {
	return &basic.Response{
		Code: 200,
		Msg:  "success",
	}
}

func Ptr[T any](v T) *T {
	return &v
}
