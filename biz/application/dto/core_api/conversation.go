package core_api

import (
	"github.com/aibootstrap/core-api/biz/application/dto/basic"
)

type Conversation struct {
	ConversationId string `json:"conversation_id"`
	Title          string `json:"title"`
	Model          string `json:"model"`
	Provider       string `json:"provider"`
	CreateTime     int64  `json:"create_time"`
	UpdateTime     int64  `json:"update_time"`
}

type Message struct {
	MessageId      string `json:"message_id"`
	ConversationId string `json:"conversation_id"`
	Role           string `json:"role"`
	Content        string `json:"content"`
	Tokens         int32  `json:"tokens,omitempty"`
	Model          string `json:"model,omitempty"`
	CreateTime     int64  `json:"create_time"`
}

type ListConversationReq struct {
	Page *basic.Page `json:"page,omitempty" query:"page"`
}

func (r *ListConversationReq) GetPage() *basic.Page {
	if r == nil {
		return nil
	}
	return r.Page
}

type ListConversationResp struct {
	Resp          *basic.Response `json:"resp"`
	Conversations []*Conversation `json:"conversations"`
	HasMore       bool            `json:"has_more"`
}

type GetConversationReq struct {
	ConversationId string `json:"conversation_id" path:"conversation_id"`
}

type GetConversationResp struct {
	Resp     *basic.Response `json:"resp"`
	Messages []*Message      `json:"messages"`
}

type DeleteConversationReq struct {
	ConversationId string `json:"conversation_id" path:"conversation_id"`
}

type DeleteConversationResp struct {
	Resp *basic.Response `json:"resp"`
}

type ModelUsage struct {
	Model    string `json:"model"`
	Provider string `json:"provider"`
}

type ChatStatsResp struct {
	Resp          *basic.Response `json:"resp"`
	TotalChats    int64           `json:"total_chats"`
	TotalMessages int64           `json:"total_messages"`
	ModelsUsed    []*ModelUsage   `json:"models_used"`
}
