package message

import (
	"time"

	"github.com/aibootstrap/core-api/biz/infra/cst"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	RoleStoI = map[string]int32{cst.System: 0, cst.Assistant: 1, cst.User: 2}
	RoleItoS = map[int32]string{0: cst.System, 1: cst.Assistant, 2: cst.User}
)

// Message 对话中的一条消息, 写入后不可变
type Message struct {
	MessageId      primitive.ObjectID `json:"message_id" bson:"_id"`                  // 主键
	ConversationId primitive.ObjectID `json:"conversation_id" bson:"conversation_id"` // 归属的对话id
	Role           int32              `json:"role" bson:"role"`                       // 角色, system/assistant/user, 依次为0,1,2
	Content        string             `json:"content" bson:"content"`                 // 消息内容
	Tokens         int32              `json:"tokens,omitempty" bson:"tokens,omitempty"`
	Model          string             `json:"model,omitempty" bson:"model,omitempty"`
	CreateTime     time.Time          `json:"create_time" bson:"create_time"`
}
