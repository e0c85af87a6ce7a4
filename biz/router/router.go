package router

import (
	core_api "github.com/aibootstrap/core-api/biz/adaptor/controller/core_api"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/cloudwego/hertz/pkg/app/server"
)

// Register 注册全部路由, 可选模块按配置挂载
func Register(h *server.Hertz, c *config.Config) {
	health := h.Group("/health")
	{
		health.GET("/", core_api.Health)
		health.GET("/ready", core_api.Ready)
		health.GET("/live", core_api.Live)
	}

	auth := h.Group("/auth")
	{
		auth.POST("/verify", core_api.VerifyToken)
		auth.GET("/me", core_api.Me)
		auth.GET("/config", core_api.AuthConfig)
	}

	ai := h.Group("/ai")
	{
		ai.POST("/chat", core_api.Chat)
		ai.POST("/chat/stream", core_api.ChatStream)
		ai.GET("/models", core_api.ListModels)
		ai.GET("/chats", core_api.ListConversation)
		ai.GET("/chats/:conversation_id", core_api.GetConversation)
		ai.DELETE("/chats/:conversation_id", core_api.DeleteConversation)
		ai.GET("/stats", core_api.ChatStats)
	}

	if c.Modules.UseWorkers {
		workers := h.Group("/workers")
		{
			workers.POST("/tasks", core_api.SubmitTask)
			workers.GET("/tasks/:task_id", core_api.TaskStatus)
			workers.POST("/tasks/document", core_api.SubmitDocumentTask)
			workers.GET("/health", core_api.WorkersHealth)
		}
	}

	if c.Modules.UseRAG {
		rag := h.Group("/rag")
		{
			rag.POST("/ingest", core_api.IngestDocuments)
			rag.POST("/search", core_api.SearchDocuments)
			rag.GET("/collections", core_api.ListCollections)
			rag.GET("/collections/:collection_name", core_api.CollectionInfo)
			rag.DELETE("/documents", core_api.DeleteDocuments)
		}
	}

	if c.Modules.UseOllama {
		ollama := h.Group("/ollama")
		{
			ollama.GET("/models", core_api.ListOllamaModels)
			ollama.POST("/models/pull", core_api.PullOllamaModel)
			ollama.DELETE("/models/:model_name", core_api.DeleteOllamaModel)
			ollama.POST("/embeddings", core_api.OllamaEmbeddings)
			ollama.GET("/health", core_api.OllamaHealth)
		}
	}
}
