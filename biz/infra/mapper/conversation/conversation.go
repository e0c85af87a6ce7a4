package conversation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation 一个用户持有的对话线程
// 在一次completion结束时创建, 此后只读或删除, 标题不再重算
type Conversation struct {
	ConversationId primitive.ObjectID `json:"conversation_id" bson:"_id"`
	UserId         string             `json:"user_id" bson:"user_id"`
	Title          string             `json:"title" bson:"title"`
	Model          string             `json:"model" bson:"model"`
	Provider       string             `json:"provider" bson:"provider"`
	CreateTime     time.Time          `json:"create_time" bson:"create_time"`
	UpdateTime     time.Time          `json:"update_time" bson:"update_time"`
}
