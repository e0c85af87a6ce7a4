package history

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/biz/infra/mapper/conversation"
	"github.com/aibootstrap/core-api/biz/infra/mapper/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeConvMapper struct {
	conversation.MongoMapper
	inserted  []*conversation.Conversation
	insertErr error
}

func (f *fakeConvMapper) Insert(_ context.Context, c *conversation.Conversation) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, c)
	return nil
}

type fakeMsgMapper struct {
	message.MongoMapper
	inserted  []*message.Message
	insertErr error
}

func (f *fakeMsgMapper) InsertMany(_ context.Context, msgs []*message.Message) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, msgs...)
	return nil
}

func TestTitleTruncation(t *testing.T) {
	short := "hello there"
	long := strings.Repeat("x", 53)

	assert.Equal(t, short, Title([]*core_api.ChatMessage{{Role: cst.User, Content: short}}))
	assert.Equal(t, strings.Repeat("x", 50)+"...", Title([]*core_api.ChatMessage{{Role: cst.User, Content: long}}))
	// 恰好50个字符不截断
	exact := strings.Repeat("y", 50)
	assert.Equal(t, exact, Title([]*core_api.ChatMessage{{Role: cst.User, Content: exact}}))
	// 多字节字符按rune截断
	cjk := strings.Repeat("语", 60)
	assert.Equal(t, strings.Repeat("语", 50)+"...", Title([]*core_api.ChatMessage{{Role: cst.User, Content: cjk}}))
}

func TestTitleUsesFirstUserMessage(t *testing.T) {
	turns := []*core_api.ChatMessage{
		{Role: cst.System, Content: "you are helpful"},
		{Role: cst.User, Content: "first question"},
		{Role: cst.User, Content: "second question"},
	}
	assert.Equal(t, "first question", Title(turns))
	assert.Equal(t, cst.DefaultTitle, Title([]*core_api.ChatMessage{{Role: cst.System, Content: "no user turn"}}))
}

func TestSaveChatSkipsAssistantInputTurns(t *testing.T) {
	cm := &fakeConvMapper{}
	mm := &fakeMsgMapper{}
	d := &Domain{ConversationMapper: cm, MessageMapper: mm}

	turns := []*core_api.ChatMessage{
		{Role: cst.User, Content: "q1"},
		{Role: cst.Assistant, Content: "old answer"},
		{Role: cst.User, Content: "q2"},
	}
	err := d.SaveChat(context.Background(), "u-1", turns, &AssistantTurn{Content: "new answer", Tokens: 5, Model: "gpt-4o-mini"}, "gpt-4o-mini", cst.ProviderOpenAI)
	require.NoError(t, err)

	require.Len(t, cm.inserted, 1)
	assert.Equal(t, "u-1", cm.inserted[0].UserId)
	assert.Equal(t, "q1", cm.inserted[0].Title)

	// 历史assistant消息不重复落库, 新回复追加在末尾
	require.Len(t, mm.inserted, 3)
	assert.Equal(t, message.RoleStoI[cst.User], mm.inserted[0].Role)
	assert.Equal(t, "q1", mm.inserted[0].Content)
	assert.Equal(t, "q2", mm.inserted[1].Content)
	assert.Equal(t, message.RoleStoI[cst.Assistant], mm.inserted[2].Role)
	assert.Equal(t, "new answer", mm.inserted[2].Content)
	assert.EqualValues(t, 5, mm.inserted[2].Tokens)

	// 创建时间严格递增, 消息之间存在全序
	for i := 1; i < len(mm.inserted); i++ {
		assert.True(t, mm.inserted[i].CreateTime.After(mm.inserted[i-1].CreateTime))
	}
	for _, m := range mm.inserted {
		assert.Equal(t, cm.inserted[0].ConversationId, m.ConversationId)
		assert.NotEqual(t, primitive.NilObjectID, m.MessageId)
	}
}

func TestSaveChatEmptyAssistantContent(t *testing.T) {
	cm := &fakeConvMapper{}
	mm := &fakeMsgMapper{}
	d := &Domain{ConversationMapper: cm, MessageMapper: mm}

	turns := []*core_api.ChatMessage{{Role: cst.User, Content: "q"}}
	err := d.SaveChat(context.Background(), "u-1", turns, &AssistantTurn{Content: ""}, "m", cst.ProviderOpenAI)
	require.NoError(t, err)
	// 空回复不落assistant消息
	require.Len(t, mm.inserted, 1)
	assert.Equal(t, message.RoleStoI[cst.User], mm.inserted[0].Role)
}

func TestSaveChatPropagatesMapperErrors(t *testing.T) {
	d := &Domain{ConversationMapper: &fakeConvMapper{insertErr: errors.New("mongo down")}, MessageMapper: &fakeMsgMapper{}}
	err := d.SaveChat(context.Background(), "u-1", []*core_api.ChatMessage{{Role: cst.User, Content: "q"}}, &AssistantTurn{Content: "a"}, "m", cst.ProviderOpenAI)
	require.Error(t, err)

	d = &Domain{ConversationMapper: &fakeConvMapper{}, MessageMapper: &fakeMsgMapper{insertErr: errors.New("bulk write fail")}}
	err = d.SaveChat(context.Background(), "u-1", []*core_api.ChatMessage{{Role: cst.User, Content: "q"}}, &AssistantTurn{Content: "a"}, "m", cst.ProviderOpenAI)
	require.Error(t, err)
}

