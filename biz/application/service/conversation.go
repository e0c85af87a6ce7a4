package service

import (
	"context"
	"errors"

	"github.com/aibootstrap/core-api/biz/adaptor"
	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/infra/mapper/conversation"
	mmsg "github.com/aibootstrap/core-api/biz/infra/mapper/message"
	"github.com/aibootstrap/core-api/biz/infra/util"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/pkg/logs"
	"github.com/aibootstrap/core-api/types/errno"
	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IConversationService interface {
	ListConversation(ctx context.Context, req *core_api.ListConversationReq) (*core_api.ListConversationResp, error)
	GetConversation(ctx context.Context, req *core_api.GetConversationReq) (*core_api.GetConversationResp, error)
	DeleteConversation(ctx context.Context, req *core_api.DeleteConversationReq) (*core_api.DeleteConversationResp, error)
	ChatStats(ctx context.Context) (*core_api.ChatStatsResp, error)
}

type ConversationService struct {
	ConversationMapper conversation.MongoMapper
	MessageMapper      mmsg.MongoMapper
}

var ConversationServiceSet = wire.NewSet(
	wire.Struct(new(ConversationService), "*"),
	wire.Bind(new(IConversationService), new(*ConversationService)),
)

func (s *ConversationService) ListConversation(ctx context.Context, req *core_api.ListConversationReq) (*core_api.ListConversationResp, error) {
	// 鉴权
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	cs, hasMore, err := s.ConversationMapper.ListConversations(ctx, u.UserId, req.GetPage())
	if err != nil {
		logs.CtxErrorf(ctx, "list conversations error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationListErrCode)
	}

	out := make([]*core_api.Conversation, 0, len(cs))
	for _, c := range cs {
		out = append(out, &core_api.Conversation{
			ConversationId: c.ConversationId.Hex(),
			Title:          c.Title,
			Model:          c.Model,
			Provider:       c.Provider,
			CreateTime:     c.CreateTime.UnixMilli(),
			UpdateTime:     c.UpdateTime.UnixMilli(),
		})
	}
	return &core_api.ListConversationResp{Resp: util.Success(), Conversations: out, HasMore: hasMore}, nil
}

func (s *ConversationService) GetConversation(ctx context.Context, req *core_api.GetConversationReq) (*core_api.GetConversationResp, error) {
	// 鉴权
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	// 只允许访问自己的对话
	c, err := s.ConversationMapper.FindOwned(ctx, u.UserId, req.ConversationId)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			return nil, errorx.New(errno.ConversationNotFoundErrCode, errorx.KV("conversation_id", req.ConversationId))
		}
		return nil, errorx.WrapByCode(err, errno.ConversationGetErrCode)
	}

	msgs, err := s.MessageMapper.ListByConversation(ctx, c.ConversationId)
	if err != nil {
		logs.CtxErrorf(ctx, "list messages error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationGetErrCode)
	}

	out := make([]*core_api.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, &core_api.Message{
			MessageId:      m.MessageId.Hex(),
			ConversationId: m.ConversationId.Hex(),
			Role:           mmsg.RoleItoS[m.Role],
			Content:        m.Content,
			Tokens:         m.Tokens,
			Model:          m.Model,
			CreateTime:     m.CreateTime.UnixMilli(),
		})
	}
	return &core_api.GetConversationResp{Resp: util.Success(), Messages: out}, nil
}

func (s *ConversationService) DeleteConversation(ctx context.Context, req *core_api.DeleteConversationReq) (*core_api.DeleteConversationResp, error) {
	// 鉴权
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	if err = s.ConversationMapper.DeleteConversation(ctx, u.UserId, req.ConversationId); err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			return nil, errorx.New(errno.ConversationNotFoundErrCode, errorx.KV("conversation_id", req.ConversationId))
		}
		logs.CtxErrorf(ctx, "delete conversation error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationDeleteErrCode)
	}

	// 对话下的消息一并删除
	if oid, err := primitive.ObjectIDFromHex(req.ConversationId); err == nil {
		if err = s.MessageMapper.DeleteByConversation(ctx, oid); err != nil {
			logs.CtxErrorf(ctx, "delete messages error: %s", errorx.ErrorWithoutStack(err))
		}
	}
	return &core_api.DeleteConversationResp{Resp: util.Success()}, nil
}

func (s *ConversationService) ChatStats(ctx context.Context) (*core_api.ChatStatsResp, error) {
	// 鉴权
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	cs, err := s.ConversationMapper.ListAllByUser(ctx, u.UserId)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationStatsErrCode)
	}

	cids := make([]primitive.ObjectID, 0, len(cs))
	seen := make(map[string]struct{})
	used := make([]*core_api.ModelUsage, 0)
	for _, c := range cs {
		cids = append(cids, c.ConversationId)
		key := c.Provider + "/" + c.Model
		if _, ok := seen[key]; !ok && c.Model != "" {
			seen[key] = struct{}{}
			used = append(used, &core_api.ModelUsage{Model: c.Model, Provider: c.Provider})
		}
	}

	var total int64
	if len(cids) > 0 {
		if total, err = s.MessageMapper.CountByConversations(ctx, cids); err != nil {
			return nil, errorx.WrapByCode(err, errno.ConversationStatsErrCode)
		}
	}
	return &core_api.ChatStatsResp{
		Resp:          util.Success(),
		TotalChats:    int64(len(cs)),
		TotalMessages: total,
		ModelsUsed:    used,
	}, nil
}
