package message

import (
	"context"
	"errors"

	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/pkg/logs"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ MongoMapper = (*mongoMapper)(nil)

const collection = "message"

type MongoMapper interface {
	InsertMany(ctx context.Context, msgs []*Message) (err error)
	ListByConversation(ctx context.Context, cid primitive.ObjectID) (msgs []*Message, err error)
	CountByConversations(ctx context.Context, cids []primitive.ObjectID) (total int64, err error)
	DeleteByConversation(ctx context.Context, cid primitive.ObjectID) (err error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewMessageMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

// InsertMany 批量插入消息, 一个事务
func (m *mongoMapper) InsertMany(ctx context.Context, msgs []*Message) (err error) {
	if len(msgs) == 0 {
		return nil
	}
	session, err := m.conn.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)
	if _, err = session.WithTransaction(ctx, func(sessCtx context.Context) (any, error) {
		var operations []mongo.WriteModel
		for _, msg := range msgs {
			operations = append(operations, mongo.NewInsertOneModel().SetDocument(msg))
		}
		_, err = m.conn.BulkWrite(sessCtx, operations)
		return nil, err
	}); err != nil {
		logs.Errorf("[message mapper] insert many: bulk write err:%s", errorx.ErrorWithoutStack(err))
	}
	return err
}

// ListByConversation 按创建时间正序取出对话的全部消息
func (m *mongoMapper) ListByConversation(ctx context.Context, cid primitive.ObjectID) (msgs []*Message, err error) {
	opts := options.Find().SetSort(bson.M{cst.CreateTime: 1})
	if err = m.conn.Find(ctx, &msgs, bson.M{cst.ConversationId: cid}, opts); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		logs.Errorf("[message mapper] find err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return msgs, nil
}

// CountByConversations 统计多个对话的消息总数
func (m *mongoMapper) CountByConversations(ctx context.Context, cids []primitive.ObjectID) (total int64, err error) {
	if len(cids) == 0 {
		return 0, nil
	}
	return m.conn.CountDocuments(ctx, bson.M{cst.ConversationId: bson.M{cst.In: cids}})
}

// DeleteByConversation 级联删除对话下的全部消息
func (m *mongoMapper) DeleteByConversation(ctx context.Context, cid primitive.ObjectID) (err error) {
	if _, err = m.conn.DeleteMany(ctx, bson.M{cst.ConversationId: cid}); err != nil {
		logs.Errorf("[message mapper] delete many err:%s", errorx.ErrorWithoutStack(err))
	}
	return err
}
