package rag

// 向量检索: 向量随文档写入Mongo, 检索时在内存中按余弦距离排序

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/mapper/document"
	"github.com/aibootstrap/core-api/pkg/errorx"
	"github.com/aibootstrap/core-api/types/errno"
	openaiembed "github.com/cloudwego/eino-ext/components/embedding/openai"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultCollection = "documents"
	defaultNResults   = 5
	maxNResults       = 20
)

type Domain struct {
	Embedder       embedding.Embedder
	DocumentMapper document.MongoMapper
}

var DomainSet = wire.NewSet(
	NewEmbedder,
	wire.Struct(new(Domain), "*"),
)

// NewEmbedder 创建向量化组件
func NewEmbedder(c *config.Config) (embedding.Embedder, error) {
	return openaiembed.NewEmbedder(context.Background(), &openaiembed.EmbeddingConfig{
		APIKey:  c.Embedding.APIKey,
		BaseURL: c.Embedding.BaseURL,
		Model:   c.Embedding.Model,
		Timeout: 30 * time.Second,
	})
}

// Ingest 向量化并写入文档, 返回生成的文档id
func (d *Domain) Ingest(ctx context.Context, req *core_api.IngestDocumentsReq) ([]string, error) {
	name := req.CollectionName
	if name == "" {
		name = DefaultCollection
	}
	vectors, err := d.Embedder.EmbedStrings(ctx, req.Documents)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.RAGIngestErrCode)
	}
	if len(vectors) != len(req.Documents) {
		return nil, errorx.New(errno.RAGIngestErrCode, errorx.KV("reason", "embedding count mismatch"))
	}

	now := time.Now()
	ids := make([]string, 0, len(req.Documents))
	docs := make([]*document.Document, 0, len(req.Documents))
	for i, content := range req.Documents {
		doc := &document.Document{
			DocumentId: primitive.NewObjectID(),
			Collection: name,
			Content:    content,
			Embedding:  vectors[i],
			CreateTime: now,
		}
		if i < len(req.Metadatas) {
			doc.Metadata = req.Metadatas[i]
		}
		docs = append(docs, doc)
		ids = append(ids, doc.DocumentId.Hex())
	}
	if err = d.DocumentMapper.InsertMany(ctx, docs); err != nil {
		return nil, errorx.WrapByCode(err, errno.RAGIngestErrCode)
	}
	return ids, nil
}

// Search 检索相似文档, 距离越小越相似
func (d *Domain) Search(ctx context.Context, req *core_api.SearchDocumentsReq) ([]*core_api.DocumentItem, error) {
	name := req.CollectionName
	if name == "" {
		name = DefaultCollection
	}
	n := req.NResults
	if n <= 0 {
		n = defaultNResults
	} else if n > maxNResults {
		n = maxNResults
	}

	vectors, err := d.Embedder.EmbedStrings(ctx, []string{req.Query})
	if err != nil || len(vectors) != 1 {
		return nil, errorx.WrapByCode(err, errno.RAGSearchErrCode)
	}
	query := vectors[0]

	docs, err := d.DocumentMapper.ListByCollection(ctx, name)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.RAGSearchErrCode)
	}

	items := make([]*core_api.DocumentItem, 0, len(docs))
	for _, doc := range docs {
		if !matchMetadata(doc.Metadata, req.FilterMetadata) {
			continue
		}
		items = append(items, &core_api.DocumentItem{
			Id:       doc.DocumentId.Hex(),
			Document: doc.Content,
			Metadata: doc.Metadata,
			Distance: CosineDistance(query, doc.Embedding),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Distance < items[j].Distance })
	if len(items) > n {
		items = items[:n]
	}
	return items, nil
}

// Collections 列出所有集合名
func (d *Domain) Collections(ctx context.Context) ([]string, error) {
	names, err := d.DocumentMapper.Collections(ctx)
	return names, errorx.WrapByCode(err, errno.RAGCollectionErrCode)
}

// CollectionInfo 返回集合内文档数量
func (d *Domain) CollectionInfo(ctx context.Context, name string) (int64, error) {
	if name == "" {
		name = DefaultCollection
	}
	total, err := d.DocumentMapper.Count(ctx, name)
	return total, errorx.WrapByCode(err, errno.RAGCollectionErrCode, errorx.KV("collection", name))
}

// Delete 按id删除文档
func (d *Domain) Delete(ctx context.Context, ids []string) error {
	return errorx.WrapByCode(d.DocumentMapper.DeleteByIds(ctx, ids), errno.RAGDeleteErrCode)
}

// 所有过滤键值都匹配才保留
func matchMetadata(metadata, filter map[string]any) bool {
	for k, want := range filter {
		got, ok := metadata[k]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// CosineDistance 余弦距离, 1-余弦相似度, 零向量视为完全不相似
func CosineDistance(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
