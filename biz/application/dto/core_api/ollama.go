package core_api

import (
	"github.com/aibootstrap/core-api/biz/application/dto/basic"
)

type OllamaModelInfo struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at,omitempty"`
	Digest     string `json:"digest,omitempty"`
}

type ListOllamaModelsResp struct {
	Resp   *basic.Response    `json:"resp"`
	Models []*OllamaModelInfo `json:"models"`
}

type PullOllamaModelReq struct {
	Name string `json:"name"`
}

type PullOllamaModelResp struct {
	Resp *basic.Response `json:"resp"`
}

type DeleteOllamaModelReq struct {
	Name string `json:"name" path:"model_name"`
}

type DeleteOllamaModelResp struct {
	Resp *basic.Response `json:"resp"`
}

type OllamaEmbeddingsReq struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

type OllamaEmbeddingsResp struct {
	Resp       *basic.Response `json:"resp"`
	Model      string          `json:"model"`
	Embeddings []float64       `json:"embeddings"`
	Dimensions int             `json:"dimensions"`
}
