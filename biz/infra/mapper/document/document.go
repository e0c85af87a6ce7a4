package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document 向量库中的一条文档, 向量随文档一起存储
type Document struct {
	DocumentId primitive.ObjectID `json:"document_id" bson:"_id"`
	Collection string             `json:"collection" bson:"collection"`
	Content    string             `json:"content" bson:"content"`
	Metadata   map[string]any     `json:"metadata,omitempty" bson:"metadata,omitempty"`
	Embedding  []float64          `json:"-" bson:"embedding"`
	CreateTime time.Time          `json:"create_time" bson:"create_time"`
}
