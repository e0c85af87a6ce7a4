package adaptor

// SSE流处理

import (
	"context"

	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/pkg/logs"
	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/sse"
	"go.opentelemetry.io/contrib/propagators/b3"
)

// EventSink 事件输出端
type EventSink interface {
	Write(e *sse.Event) error
}

// NewEventSink 基于请求上下文创建SSE输出端
// 首次写入时才设置响应头并接管响应流, 上游打开失败时仍可返回常规错误响应
func NewEventSink(c *app.RequestContext) EventSink {
	return &streamSink{c: c}
}

type streamSink struct {
	c *app.RequestContext
	w *sse.Writer
}

func (s *streamSink) Write(e *sse.Event) error {
	if s.w == nil {
		s.c.Response.Header.Set("Connection", "keep-alive")
		s.w = sse.NewWriter(s.c)
	}
	return s.w.Write(e)
}

// ChunkEvent 增量内容事件, 数据为chat.completion.chunk信封
func ChunkEvent(id string, created int64, model, content string, finishReason *string) *sse.Event {
	chunk := &core_api.CompletionsChunk{
		Id:      id,
		Object:  cst.ObjectChatCompletionChunk,
		Created: created,
		Model:   model,
		Choices: []*core_api.Choice{{
			Index:        0,
			Delta:        &core_api.Delta{Role: cst.Assistant, Content: content},
			FinishReason: finishReason,
		}},
	}
	data, err := sonic.Marshal(chunk)
	if err != nil {
		logs.Errorf("marshal chunk event err: %s", err.Error())
	}
	return &sse.Event{Data: data}
}

// DoneEvent 终止哨兵事件
func DoneEvent() *sse.Event {
	return &sse.Event{Data: []byte(cst.DoneSentinel)}
}

// SSE 完成sse流响应, 流开启前的错误走常规错误响应
func SSE(ctx context.Context, c *app.RequestContext, req any, err error) {
	b3.New().Inject(ctx, &headerProvider{headers: &c.Response.Header})
	logs.CtxInfof(ctx, "[%s] resp=sse stream, err=%s", c.Path(), errorx.ErrorWithoutStack(err))

	if err != nil { // 流还未开启, 返回常规错误响应
		PostProcess(ctx, c, req, nil, err)
	}
}
