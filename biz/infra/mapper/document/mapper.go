package document

import (
	"context"
	"errors"

	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/cst"
	"github.com/aibootstrap/core-api/biz/infra/util"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/pkg/logs"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var _ MongoMapper = (*mongoMapper)(nil)

const collection = "document"

type MongoMapper interface {
	InsertMany(ctx context.Context, docs []*Document) (err error)
	ListByCollection(ctx context.Context, name string) (docs []*Document, err error)
	Collections(ctx context.Context) (names []string, err error)
	Count(ctx context.Context, name string) (total int64, err error)
	DeleteByIds(ctx context.Context, ids []string) (err error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewDocumentMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

func (m *mongoMapper) InsertMany(ctx context.Context, docs []*Document) (err error) {
	if len(docs) == 0 {
		return nil
	}
	var operations []mongo.WriteModel
	for _, doc := range docs {
		operations = append(operations, mongo.NewInsertOneModel().SetDocument(doc))
	}
	if _, err = m.conn.BulkWrite(ctx, operations); err != nil {
		logs.Errorf("[document mapper] bulk write err:%s", errorx.ErrorWithoutStack(err))
	}
	return err
}

func (m *mongoMapper) ListByCollection(ctx context.Context, name string) (docs []*Document, err error) {
	if err = m.conn.Find(ctx, &docs, bson.M{cst.Collection: name}); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		logs.Errorf("[document mapper] find err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return docs, nil
}

// Collections 列出所有存在文档的集合名
func (m *mongoMapper) Collections(ctx context.Context) (names []string, err error) {
	var groups []struct {
		Id string `bson:"_id"`
	}
	pipeline := []bson.M{{"$group": bson.M{cst.Id: "$" + cst.Collection}}}
	if err = m.conn.Aggregate(ctx, &groups, pipeline); err != nil {
		logs.Errorf("[document mapper] aggregate err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	for _, g := range groups {
		names = append(names, g.Id)
	}
	return names, nil
}

func (m *mongoMapper) Count(ctx context.Context, name string) (total int64, err error) {
	return m.conn.CountDocuments(ctx, bson.M{cst.Collection: name})
}

func (m *mongoMapper) DeleteByIds(ctx context.Context, ids []string) (err error) {
	oids, err := util.ObjectIDsFromHex(ids...)
	if err != nil {
		return err
	}
	if _, err = m.conn.DeleteMany(ctx, bson.M{cst.Id: bson.M{cst.In: oids}}); err != nil {
		logs.Errorf("[document mapper] delete many err:%s", errorx.ErrorWithoutStack(err))
	}
	return err
}
