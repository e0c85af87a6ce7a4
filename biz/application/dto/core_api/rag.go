package core_api

import (
	"github.com/aibootstrap/core-api/biz/application/dto/basic"
)

type IngestDocumentsReq struct {
	Documents      []string         `json:"documents"`
	Metadatas      []map[string]any `json:"metadatas,omitempty"`
	CollectionName string           `json:"collection_name"`
}

type IngestDocumentsResp struct {
	Resp        *basic.Response `json:"resp"`
	DocumentIds []string        `json:"document_ids"`
}

type SearchDocumentsReq struct {
	Query          string         `json:"query"`
	NResults       int            `json:"n_results"`
	CollectionName string         `json:"collection_name,omitempty"`
	FilterMetadata map[string]any `json:"filter_metadata,omitempty"`
}

type DocumentItem struct {
	Id       string         `json:"id"`
	Document string         `json:"document"`
	Metadata map[string]any `json:"metadata"`
	Distance float64        `json:"distance"`
}

type SearchDocumentsResp struct {
	Resp    *basic.Response `json:"resp"`
	Results []*DocumentItem `json:"results"`
}

type ListCollectionsResp struct {
	Resp        *basic.Response `json:"resp"`
	Collections []string        `json:"collections"`
	Count       int             `json:"count"`
}

type CollectionInfoReq struct {
	CollectionName string `json:"collection_name" path:"collection_name"`
}

type CollectionInfoResp struct {
	Resp          *basic.Response `json:"resp"`
	Name          string          `json:"name"`
	DocumentCount int64           `json:"document_count"`
}

type DeleteDocumentsReq struct {
	DocumentIds []string `json:"document_ids"`
}

type DeleteDocumentsResp struct {
	Resp *basic.Response `json:"resp"`
}
