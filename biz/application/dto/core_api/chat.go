package core_api

// ChatMessage 一条role标记的消息
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionsReq struct {
	Messages    []*ChatMessage `json:"messages"`
	Model       string         `json:"model"`
	Provider    string         `json:"provider"`
	Temperature *float32       `json:"temperature,omitempty"`
	MaxTokens   *int           `json:"max_tokens,omitempty"`
	Stream      bool           `json:"stream"`
}

func (r *CompletionsReq) GetTemperature() float32 {
	if r.Temperature == nil {
		return 0.7
	}
	return *r.Temperature
}

func (r *CompletionsReq) GetMaxTokens() int {
	if r.MaxTokens == nil {
		return 1000
	}
	return *r.MaxTokens
}

// Delta 流式响应中的增量片段
type Delta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

type Choice struct {
	Index        int          `json:"index"`
	Message      *ChatMessage `json:"message,omitempty"`
	Delta        *Delta       `json:"delta,omitempty"`
	FinishReason *string      `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionsResp OpenAI兼容的非流式响应
type CompletionsResp struct {
	Id      string    `json:"id"`
	Object  string    `json:"object"`
	Created int64     `json:"created"`
	Model   string    `json:"model"`
	Choices []*Choice `json:"choices"`
	Usage   *Usage    `json:"usage,omitempty"`
}

// CompletionsChunk OpenAI兼容的流式增量响应
type CompletionsChunk struct {
	Id      string    `json:"id"`
	Object  string    `json:"object"`
	Created int64     `json:"created"`
	Model   string    `json:"model"`
	Choices []*Choice `json:"choices"`
}

type ModelInfo struct {
	Id       string `json:"id"`
	Provider string `json:"provider"`
	Name     string `json:"name"`
}

type ListModelsResp struct {
	Models []*ModelInfo `json:"models"`
}
