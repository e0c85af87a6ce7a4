package adaptor

import (
	"strings"
	"testing"

	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureWriter 记录写入响应流的原始字节
type captureWriter struct {
	sb strings.Builder
}

func (w *captureWriter) Write(p []byte) (int, error) { return w.sb.Write(p) }
func (w *captureWriter) Flush() error                { return nil }
func (w *captureWriter) Finalize() error             { return nil }

func TestEventSinkDefersHeadersUntilFirstWrite(t *testing.T) {
	c := ut.CreateUtRequestContext("POST", "/ai/chat/stream", nil)
	sink := NewEventSink(c)

	// 未写入事件前不接管响应, 此时出错仍可返回常规JSON错误
	assert.NotContains(t, string(c.Response.Header.ContentType()), "text/event-stream")
	assert.Empty(t, c.Response.Header.Get("Cache-Control"))

	w := &captureWriter{}
	c.Response.HijackWriter(w)
	require.NoError(t, sink.Write(ChunkEvent("chatcmpl-1", 1700000000, "gpt-4", "hi", nil)))

	assert.Contains(t, string(c.Response.Header.ContentType()), "text/event-stream")
	assert.Equal(t, "no-cache", c.Response.Header.Get("Cache-Control"))
	assert.Equal(t, "keep-alive", c.Response.Header.Get("Connection"))

	require.NoError(t, sink.Write(DoneEvent()))
	assert.Contains(t, w.sb.String(), cst.DoneSentinel)
}

func TestChunkEventCarriesAssistantRole(t *testing.T) {
	e := ChunkEvent("chatcmpl-1", 1700000000, "gpt-4", "hello", nil)

	// role字段必须出现在每个增量的线格式里
	assert.Contains(t, string(e.Data), `"role":"assistant"`)

	chunk := new(core_api.CompletionsChunk)
	require.NoError(t, sonic.Unmarshal(e.Data, chunk))
	require.Len(t, chunk.Choices, 1)
	assert.Equal(t, cst.Assistant, chunk.Choices[0].Delta.Role)
	assert.Equal(t, "hello", chunk.Choices[0].Delta.Content)
	assert.Equal(t, cst.ObjectChatCompletionChunk, chunk.Object)
}
