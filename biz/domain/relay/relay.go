package relay

// 流式转发: 将上游模型的增量响应逐条转为OpenAI兼容的SSE事件

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/aibootstrap/core-api/biz/adaptor"
	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/domain/history"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/biz/infra/util"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/pkg/logs"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request 本轮对话的上下文信息
type Request struct {
	UserId      string                  // 用户id
	Model       string                  // 模型名称
	Provider    string                  // 供应商名称
	Turns       []*core_api.ChatMessage // 输入消息
	Temperature float32
	MaxTokens   int
}

type RelayDomain struct {
	History history.Saver
}

var RelayDomainSet = wire.NewSet(wire.Struct(new(RelayDomain), "*"))

// Stream 流式对话
// 每收到一条增量就发送一个chunk事件, 无论上游或对端如何结束, 最后都发送[DONE]哨兵,
// 再尽力落一次历史记录; 落库失败只记日志, 不影响已发出的响应
func (d *RelayDomain) Stream(ctx context.Context, req *Request, m model.BaseChatModel, sink adaptor.EventSink) error {
	reader, err := m.Stream(ctx, toSchema(req.Turns), getOpts(req)...)
	if err != nil { // 流还未开启, 直接上抛
		return errorx.WrapByCode(err, errno.CompletionsErrCode, errorx.KV("model", req.Model))
	}
	defer reader.Close()

	id := chunkId()
	created := time.Now().Unix()
	var acc strings.Builder
	var meta *schema.ResponseMeta
	for {
		var msg *schema.Message
		if msg, err = reader.Recv(); err != nil {
			// 上游出错与正常EOF同样处理: 停止消费, 已收到的内容照常落库
			logs.CondError(!errors.Is(err, io.EOF), "[relay] recv error: %v", err)
			break
		}
		if msg.ResponseMeta != nil { // 收集用量信息
			meta = msg.ResponseMeta
		}
		acc.WriteString(msg.Content)
		if werr := sink.Write(adaptor.ChunkEvent(id, created, req.Model, msg.Content, finishOf(msg))); werr != nil {
			// 对端断开, 停止消费上游
			logs.Errorf("[relay] write event error: %v", werr)
			break
		}
	}
	if werr := sink.Write(adaptor.DoneEvent()); werr != nil {
		logs.Errorf("[relay] write done error: %v", werr)
	}
	d.persist(ctx, req, acc.String(), meta)
	return nil
}

// Complete 非流式对话, 等待上游完整响应后返回单个信封
func (d *RelayDomain) Complete(ctx context.Context, req *Request, m model.BaseChatModel) (*core_api.CompletionsResp, error) {
	out, err := m.Generate(ctx, toSchema(req.Turns), getOpts(req)...)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.CompletionsErrCode, errorx.KV("model", req.Model))
	}
	resp := &core_api.CompletionsResp{
		Id:      chunkId(),
		Object:  cst.ObjectChatCompletion,
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []*core_api.Choice{{
			Index:        0,
			Message:      &core_api.ChatMessage{Role: cst.Assistant, Content: out.Content},
			FinishReason: finishOf(out),
		}},
	}
	if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		u := out.ResponseMeta.Usage
		resp.Usage = &core_api.Usage{
			PromptTokens:     u.PromptTokens,
			CompletionTokens: u.CompletionTokens,
			TotalTokens:      u.TotalTokens,
		}
	}
	d.persist(ctx, req, out.Content, out.ResponseMeta)
	return resp, nil
}

// 落历史记录, 响应已经(部分)送达, 失败不重试不上抛
func (d *RelayDomain) persist(ctx context.Context, req *Request, content string, meta *schema.ResponseMeta) {
	assistant := &history.AssistantTurn{Content: content, Model: req.Model}
	if meta != nil && meta.Usage != nil {
		assistant.Tokens = int32(meta.Usage.CompletionTokens)
	}
	ctx = context.WithoutCancel(ctx)
	if err := d.History.SaveChat(ctx, req.UserId, req.Turns, assistant, req.Model, req.Provider); err != nil {
		logs.CtxErrorf(ctx, "[relay] save chat error: %v", err)
	}
}

func toSchema(turns []*core_api.ChatMessage) []*schema.Message {
	messages := make([]*schema.Message, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, &schema.Message{Role: schema.RoleType(t.Role), Content: t.Content})
	}
	return messages
}

func getOpts(req *Request) []model.Option {
	return []model.Option{
		model.WithTemperature(req.Temperature),
		model.WithMaxTokens(req.MaxTokens),
	}
}

func finishOf(msg *schema.Message) *string {
	if msg.ResponseMeta != nil && msg.ResponseMeta.FinishReason != "" {
		return util.Ptr(msg.ResponseMeta.FinishReason)
	}
	return nil
}

func chunkId() string {
	return "chatcmpl-" + primitive.NewObjectID().Hex()
}
