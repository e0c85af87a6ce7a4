package cst

const (
	// Assistant is the role of an assistant, means the message is returned by ChatModel.
	Assistant = "assistant"
	// User is the role of a user, means the message is a user message.
	User = "user"
	// System is the role of a system, means the message is a system message.
	System = "system"
)

// 对话服务名称
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
)

// OpenAI兼容的响应对象类型
const (
	ObjectChatCompletion      = "chat.completion"
	ObjectChatCompletionChunk = "chat.completion.chunk"
)

// sse流结束标记
const DoneSentinel = "[DONE]"

// 对话请求参数边界
const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
	MinMaxTokens   = 1
	MaxMaxTokens   = 4000

	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// 对话标题生成
const (
	TitleMaxLen  = 50
	DefaultTitle = "New Chat"
)

// 任务状态
const (
	TaskStatePending  = "PENDING"
	TaskStateProgress = "PROGRESS"
	TaskStateSuccess  = "SUCCESS"
	TaskStateFailure  = "FAILURE"
)

// 任务类型
const (
	TaskLongRunning  = "long_running"
	TaskAIProcessing = "ai_processing"
	TaskDocument     = "document_processing"
)

// mapper层字段枚举
const (
	Id             = "_id"
	ConversationId = "conversation_id"
	UserId         = "user_id"
	Collection     = "collection"
	CreateTime     = "create_time"
	UpdateTime     = "update_time"

	Set = "$set"
	NE  = "$ne"
	LT  = "$lt"
	In  = "$in"
)
