package rag

import (
	"context"
	"testing"

	"github.com/aibootstrap/core-api/biz/application/dto/core_api"
	"github.com/aibootstrap/core-api/biz/infra/mapper/document"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder 按预置词表返回固定向量
type fakeEmbedder struct {
	vectors map[string][]float64
}

func (f *fakeEmbedder) EmbedStrings(_ context.Context, texts []string, _ ...embedding.Option) ([][]float64, error) {
	out := make([][]float64, 0, len(texts))
	for _, t := range texts {
		v, ok := f.vectors[t]
		if !ok {
			v = []float64{0, 0, 0}
		}
		out = append(out, v)
	}
	return out, nil
}

type fakeDocMapper struct {
	document.MongoMapper
	docs []*document.Document
}

func (f *fakeDocMapper) InsertMany(_ context.Context, docs []*document.Document) error {
	f.docs = append(f.docs, docs...)
	return nil
}

func (f *fakeDocMapper) ListByCollection(_ context.Context, name string) ([]*document.Document, error) {
	var out []*document.Document
	for _, d := range f.docs {
		if d.Collection == name {
			out = append(out, d)
		}
	}
	return out, nil
}

func TestCosineDistance(t *testing.T) {
	assert.InDelta(t, 0, CosineDistance([]float64{1, 0}, []float64{2, 0}), 1e-9)
	assert.InDelta(t, 1, CosineDistance([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, 2, CosineDistance([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	// 零向量与维度不匹配都按最大距离处理
	assert.EqualValues(t, 1, CosineDistance([]float64{0, 0}, []float64{1, 0}))
	assert.EqualValues(t, 1, CosineDistance([]float64{1}, []float64{1, 0}))
}

func TestIngestAndSearchRanksByDistance(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"go concurrency":  {1, 0, 0},
		"mongo indexes":   {0, 1, 0},
		"goroutine leaks": {0.9, 0.1, 0},
		"channels in go":  {1, 0.05, 0},
	}}
	mapper := &fakeDocMapper{}
	d := &Domain{Embedder: emb, DocumentMapper: mapper}

	ids, err := d.Ingest(context.Background(), &core_api.IngestDocumentsReq{
		Documents: []string{"go concurrency", "mongo indexes", "goroutine leaks"},
		Metadatas: []map[string]any{{"lang": "go"}, {"lang": "db"}, {"lang": "go"}},
	})
	require.NoError(t, err)
	require.Len(t, ids, 3)
	for _, doc := range mapper.docs {
		assert.Equal(t, DefaultCollection, doc.Collection)
		assert.NotEmpty(t, doc.Embedding)
	}

	results, err := d.Search(context.Background(), &core_api.SearchDocumentsReq{Query: "channels in go", NResults: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	// 最相似的排在最前
	assert.Equal(t, "go concurrency", results[0].Document)
	assert.Equal(t, "goroutine leaks", results[1].Document)
	assert.Less(t, results[0].Distance, results[1].Distance)
}

func TestSearchFiltersByMetadata(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"a": {1, 0, 0}, "b": {1, 0, 0}, "q": {1, 0, 0},
	}}
	mapper := &fakeDocMapper{}
	d := &Domain{Embedder: emb, DocumentMapper: mapper}

	_, err := d.Ingest(context.Background(), &core_api.IngestDocumentsReq{
		Documents: []string{"a", "b"},
		Metadatas: []map[string]any{{"source": "wiki"}, {"source": "blog"}},
	})
	require.NoError(t, err)

	results, err := d.Search(context.Background(), &core_api.SearchDocumentsReq{
		Query:          "q",
		FilterMetadata: map[string]any{"source": "wiki"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Document)
}

func TestSearchDefaultsAndCaps(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{"q": {1, 0, 0}}}
	mapper := &fakeDocMapper{}
	d := &Domain{Embedder: emb, DocumentMapper: mapper}

	docs := make([]string, 30)
	for i := range docs {
		docs[i] = "q"
	}
	_, err := d.Ingest(context.Background(), &core_api.IngestDocumentsReq{Documents: docs})
	require.NoError(t, err)

	results, err := d.Search(context.Background(), &core_api.SearchDocumentsReq{Query: "q"})
	require.NoError(t, err)
	assert.Len(t, results, 5)

	results, err = d.Search(context.Background(), &core_api.SearchDocumentsReq{Query: "q", NResults: 100})
	require.NoError(t, err)
	assert.Len(t, results, 20)
}
