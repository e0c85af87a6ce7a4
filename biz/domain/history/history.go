package history

import (
	"context"
	"time"

	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/biz/infra/mapper/conversation"
	"github.com/aibootstrap/core-api/biz/infra/mapper/message"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/pkg/logs"
	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssistantTurn 本次生成的回复
type AssistantTurn struct {
	Content string
	Tokens  int32
	Model   string
}

// Saver 持久化一轮对话: 输入消息(去掉历史assistant消息)加一条新的assistant消息
type Saver interface {
	SaveChat(ctx context.Context, uid string, turns []*core_api.ChatMessage, assistant *AssistantTurn, model, provider string) error
}

type Domain struct {
	ConversationMapper conversation.MongoMapper
	MessageMapper      message.MongoMapper
}

var DomainSet = wire.NewSet(
	wire.Struct(new(Domain), "*"),
	wire.Bind(new(Saver), new(*Domain)),
)

var _ Saver = (*Domain)(nil)

// Title 从第一条用户消息截取对话标题, 只在创建时计算一次
func Title(turns []*core_api.ChatMessage) string {
	for _, t := range turns {
		if t.Role == cst.User {
			r := []rune(t.Content)
			if len(r) > cst.TitleMaxLen {
				return string(r[:cst.TitleMaxLen]) + "..."
			}
			return t.Content
		}
	}
	return cst.DefaultTitle
}

// SaveChat 创建对话并写入本轮的全部消息
// 输入中role为assistant的消息是历史回复, 不重复落库
func (d *Domain) SaveChat(ctx context.Context, uid string, turns []*core_api.ChatMessage, assistant *AssistantTurn, model, provider string) error {
	now := time.Now()
	conv := &conversation.Conversation{
		ConversationId: primitive.NewObjectID(),
		UserId:         uid,
		Title:          Title(turns),
		Model:          model,
		Provider:       provider,
		CreateTime:     now,
		UpdateTime:     now,
	}
	if err := d.ConversationMapper.Insert(ctx, conv); err != nil {
		logs.CtxErrorf(ctx, "[history] insert conversation err:%s", errorx.ErrorWithoutStack(err))
		return err
	}

	var msgs []*message.Message
	seq := 0
	next := func() time.Time { // 创建时间严格递增, 保证消息全序
		t := now.Add(time.Duration(seq) * time.Millisecond)
		seq++
		return t
	}
	for _, t := range turns {
		if t.Role == cst.Assistant {
			continue
		}
		msgs = append(msgs, &message.Message{
			MessageId:      primitive.NewObjectID(),
			ConversationId: conv.ConversationId,
			Role:           message.RoleStoI[t.Role],
			Content:        t.Content,
			CreateTime:     next(),
		})
	}
	if assistant != nil && assistant.Content != "" {
		msgs = append(msgs, &message.Message{
			MessageId:      primitive.NewObjectID(),
			ConversationId: conv.ConversationId,
			Role:           message.RoleStoI[cst.Assistant],
			Content:        assistant.Content,
			Tokens:         assistant.Tokens,
			Model:          assistant.Model,
			CreateTime:     next(),
		})
	}
	if err := d.MessageMapper.InsertMany(ctx, msgs); err != nil {
		logs.CtxErrorf(ctx, "[history] insert messages err:%s", errorx.ErrorWithoutStack(err))
		return err
	}
	return nil
}
