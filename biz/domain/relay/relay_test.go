package relay

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/domain/history"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/cloudwego/hertz/pkg/protocol/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel 按配置回放增量流
type fakeModel struct {
	deltas    []string
	errAfter  int // 第n条增量后上游出错, -1表示正常结束
	openErr   error
	usage     *schema.TokenUsage
	generated string
}

func (f *fakeModel) Generate(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &schema.Message{
		Role:         schema.Assistant,
		Content:      f.generated,
		ResponseMeta: &schema.ResponseMeta{FinishReason: "stop", Usage: f.usage},
	}, nil
}

func (f *fakeModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	sr, sw := schema.Pipe[*schema.Message](len(f.deltas) + 1)
	go func() {
		defer sw.Close()
		for i, d := range f.deltas {
			if f.errAfter >= 0 && i == f.errAfter {
				sw.Send(nil, errors.New("upstream connection reset"))
				return
			}
			sw.Send(&schema.Message{Role: schema.Assistant, Content: d}, nil)
		}
	}()
	return sr, nil
}

// recordSink 记录写出的事件
type recordSink struct {
	events []*sse.Event
	failAt int // 第n次写入开始失败, -1表示不失败
}

func (s *recordSink) Write(e *sse.Event) error {
	if s.failAt >= 0 && len(s.events) >= s.failAt {
		return errors.New("client gone")
	}
	s.events = append(s.events, e)
	return nil
}

// memSaver 记录落库调用
type memSaver struct {
	calls     int
	turns     []*core_api.ChatMessage
	assistant *history.AssistantTurn
	err       error
}

func (m *memSaver) SaveChat(_ context.Context, _ string, turns []*core_api.ChatMessage, assistant *history.AssistantTurn, _, _ string) error {
	m.calls++
	m.turns = turns
	m.assistant = assistant
	return m.err
}

func newRequest() *Request {
	return &Request{
		UserId:      "u-1",
		Model:       "gpt-4o-mini",
		Provider:    cst.ProviderOpenAI,
		Turns:       []*core_api.ChatMessage{{Role: cst.User, Content: "hello"}},
		Temperature: 0.7,
		MaxTokens:   128,
	}
}

func decodeChunk(t *testing.T, e *sse.Event) *core_api.CompletionsChunk {
	t.Helper()
	chunk := new(core_api.CompletionsChunk)
	require.NoError(t, sonic.Unmarshal(e.Data, chunk))
	return chunk
}

func TestStreamEmitsOneEventPerDelta(t *testing.T) {
	m := &fakeModel{deltas: []string{"Hel", "lo ", "world"}, errAfter: -1}
	sink := &recordSink{failAt: -1}
	saver := &memSaver{}
	d := &RelayDomain{History: saver}

	err := d.Stream(context.Background(), newRequest(), m, sink)
	require.NoError(t, err)

	// 每条增量一个事件, 外加终止哨兵
	require.Len(t, sink.events, 4)
	assert.Equal(t, cst.DoneSentinel, string(sink.events[3].Data))

	var sb strings.Builder
	first := decodeChunk(t, sink.events[0])
	for i := 0; i < 3; i++ {
		chunk := decodeChunk(t, sink.events[i])
		assert.Equal(t, first.Id, chunk.Id)
		assert.Equal(t, cst.ObjectChatCompletionChunk, chunk.Object)
		assert.Equal(t, "gpt-4o-mini", chunk.Model)
		require.Len(t, chunk.Choices, 1)
		// 每个增量的delta都带assistant角色
		assert.Equal(t, cst.Assistant, chunk.Choices[0].Delta.Role)
		sb.WriteString(chunk.Choices[0].Delta.Content)
	}
	assert.Equal(t, "Hello world", sb.String())

	// 完整内容恰好落库一次
	assert.Equal(t, 1, saver.calls)
	assert.Equal(t, "Hello world", saver.assistant.Content)
}

func TestStreamRechunkingKeepsPersistedContent(t *testing.T) {
	text := strings.Repeat("golang ", 50)
	split := make([]string, 0, len(text))
	for _, r := range text {
		split = append(split, string(r))
	}

	for _, deltas := range [][]string{{text}, split} {
		sink := &recordSink{failAt: -1}
		saver := &memSaver{}
		d := &RelayDomain{History: saver}
		err := d.Stream(context.Background(), newRequest(), &fakeModel{deltas: deltas, errAfter: -1}, sink)
		require.NoError(t, err)
		assert.Equal(t, text, saver.assistant.Content)
		assert.Len(t, sink.events, len(deltas)+1)
	}
}

func TestStreamUpstreamErrorStillEmitsSentinel(t *testing.T) {
	m := &fakeModel{deltas: []string{"par", "tial", "never"}, errAfter: 2}
	sink := &recordSink{failAt: -1}
	saver := &memSaver{}
	d := &RelayDomain{History: saver}

	err := d.Stream(context.Background(), newRequest(), m, sink)
	require.NoError(t, err)

	// 两条正常增量 + 哨兵, 出错后不再有chunk事件
	require.Len(t, sink.events, 3)
	assert.Equal(t, cst.DoneSentinel, string(sink.events[2].Data))

	// 已收到的部分照常落库
	assert.Equal(t, 1, saver.calls)
	assert.Equal(t, "partial", saver.assistant.Content)
}

func TestStreamOpenFailureReturnsError(t *testing.T) {
	m := &fakeModel{openErr: errors.New("dial tcp: connection refused")}
	sink := &recordSink{failAt: -1}
	saver := &memSaver{}
	d := &RelayDomain{History: saver}

	err := d.Stream(context.Background(), newRequest(), m, sink)
	require.Error(t, err)
	ex, ok := errorx.FromError(err)
	require.True(t, ok)
	assert.Equal(t, errno.CompletionsErrCode, ex.Code())

	// 流未开启, 不发事件也不落库
	assert.Empty(t, sink.events)
	assert.Zero(t, saver.calls)
}

func TestStreamClientGoneStopsConsuming(t *testing.T) {
	m := &fakeModel{deltas: []string{"a", "b", "c", "d"}, errAfter: -1}
	sink := &recordSink{failAt: 2}
	saver := &memSaver{}
	d := &RelayDomain{History: saver}

	err := d.Stream(context.Background(), newRequest(), m, sink)
	require.NoError(t, err)

	// 写失败前只送达2条, 中断前累计的内容照常落库
	assert.Len(t, sink.events, 2)
	assert.Equal(t, 1, saver.calls)
	assert.Equal(t, "abc", saver.assistant.Content)
}

func TestStreamPersistFailureIsSwallowed(t *testing.T) {
	m := &fakeModel{deltas: []string{"ok"}, errAfter: -1}
	sink := &recordSink{failAt: -1}
	saver := &memSaver{err: errors.New("mongo timeout")}
	d := &RelayDomain{History: saver}

	err := d.Stream(context.Background(), newRequest(), m, sink)
	require.NoError(t, err)
	assert.Equal(t, 1, saver.calls)
	// 哨兵在落库之前已送达
	assert.Equal(t, cst.DoneSentinel, string(sink.events[len(sink.events)-1].Data))
}

func TestCompleteReturnsEnvelopeAndPersists(t *testing.T) {
	m := &fakeModel{
		generated: "The answer is 42.",
		usage:     &schema.TokenUsage{PromptTokens: 10, CompletionTokens: 6, TotalTokens: 16},
	}
	saver := &memSaver{}
	d := &RelayDomain{History: saver}

	resp, err := d.Complete(context.Background(), newRequest(), m)
	require.NoError(t, err)
	assert.Equal(t, cst.ObjectChatCompletion, resp.Object)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, cst.Assistant, resp.Choices[0].Message.Role)
	assert.Equal(t, "The answer is 42.", resp.Choices[0].Message.Content)
	require.NotNil(t, resp.Choices[0].FinishReason)
	assert.Equal(t, "stop", *resp.Choices[0].FinishReason)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 16, resp.Usage.TotalTokens)

	assert.Equal(t, 1, saver.calls)
	assert.Equal(t, "The answer is 42.", saver.assistant.Content)
	assert.EqualValues(t, 6, saver.assistant.Tokens)
}

func TestCompleteUpstreamFailure(t *testing.T) {
	m := &fakeModel{openErr: errors.New("upstream 502")}
	saver := &memSaver{}
	d := &RelayDomain{History: saver}

	resp, err := d.Complete(context.Background(), newRequest(), m)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Zero(t, saver.calls)
}
