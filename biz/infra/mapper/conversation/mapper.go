package conversation

import (
	"context"
	"errors"

	"github.com/aibootstrap/core-api/biz/application/dto/basic"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/biz/infra/util"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/pkg/logs"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var _ MongoMapper = (*mongoMapper)(nil)

var ErrNotFound = errors.New("conversation not found")

const (
	collection     = "conversation"
	cacheKeyPrefix = "cache:conversation:"
)

type MongoMapper interface {
	Insert(ctx context.Context, c *Conversation) error
	FindOwned(ctx context.Context, uid, cid string) (*Conversation, error)
	ListConversations(ctx context.Context, uid string, page *basic.Page) (cs []*Conversation, hasMore bool, err error)
	ListAllByUser(ctx context.Context, uid string) (cs []*Conversation, err error)
	DeleteConversation(ctx context.Context, uid, cid string) (err error)
	Ping(ctx context.Context) error
}

type mongoMapper struct {
	conn *monc.Model
}

func NewConversationMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

// Insert 写入并缓存一个新的对话
func (m *mongoMapper) Insert(ctx context.Context, c *Conversation) error {
	_, err := m.conn.InsertOne(ctx, cacheKeyPrefix+c.ConversationId.Hex(), c)
	return err
}

// FindOwned 查找属于uid的对话, 不属于或不存在时返回ErrNotFound
func (m *mongoMapper) FindOwned(ctx context.Context, uid, cid string) (*Conversation, error) {
	ocid, err := primitive.ObjectIDFromHex(cid)
	if err != nil {
		return nil, ErrNotFound
	}
	var c Conversation
	if err = m.conn.FindOneNoCache(ctx, &c, bson.M{cst.Id: ocid, cst.UserId: uid}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, monc.ErrNotFound) {
			return nil, ErrNotFound
		}
		logs.Errorf("[conversation mapper] find err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return &c, nil
}

// ListConversations 分页查询用户对话列表, 更新时间倒序
func (m *mongoMapper) ListConversations(ctx context.Context, uid string, page *basic.Page) (cs []*Conversation, hasMore bool, err error) {
	var total int64
	opts := util.BuildFindOption(page).SetSort(bson.M{cst.UpdateTime: -1})
	filter := bson.M{cst.UserId: uid}
	if err = m.conn.Find(ctx, &cs, filter, opts); err != nil {
		logs.Errorf("[conversation mapper] find err:%s", errorx.ErrorWithoutStack(err))
		return nil, false, err
	}
	if total, err = m.conn.CountDocuments(ctx, filter); err != nil {
		return nil, false, err
	}
	return cs, util.HasMore(total, page), err
}

// ListAllByUser 取出用户的全部对话, 统计用
func (m *mongoMapper) ListAllByUser(ctx context.Context, uid string) (cs []*Conversation, err error) {
	if err = m.conn.Find(ctx, &cs, bson.M{cst.UserId: uid}); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		logs.Errorf("[conversation mapper] find err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return cs, nil
}

// DeleteConversation 删除对应uid,cid的对话
func (m *mongoMapper) DeleteConversation(ctx context.Context, uid, cid string) (err error) {
	ocid, err := primitive.ObjectIDFromHex(cid)
	if err != nil {
		return ErrNotFound
	}
	n, err := m.conn.DeleteOne(ctx, cacheKeyPrefix+cid, bson.M{cst.Id: ocid, cst.UserId: uid})
	if err != nil {
		logs.Errorf("[conversation mapper] delete err:%s", errorx.ErrorWithoutStack(err))
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping 以一次空查询探测Mongo连接
func (m *mongoMapper) Ping(ctx context.Context) error {
	_, err := m.conn.CountDocuments(ctx, bson.M{cst.Id: primitive.NilObjectID})
	return err
}
