package provider

import (
	"github.com/aibootstrap/core-api/biz/application/service"
	"github.com/aibootstrap/core-api/biz/domain/history"
	"github.com/aibootstrap/core-api/biz/domain/rag"
	"github.com/aibootstrap/core-api/biz/domain/relay"
	"github.com/aibootstrap/core-api/biz/infra/config"
	"github.com/aibootstrap/core-api/biz/infra/mapper/conversation"
	"github.com/aibootstrap/core-api/biz/infra/mapper/document"
	"github.com/aibootstrap/core-api/biz/infra/mapper/message"
	"github.com/aibootstrap/core-api/biz/infra/queue"
	"github.com/aibootstrap/core-api/biz/infra/worker"
	"github.com/google/wire"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config              *config.Config
	CompletionsService  service.ICompletionsService
	ConversationService service.IConversationService
	AuthService         service.IAuthService
	RAGService          service.IRAGService
	TaskService         service.ITaskService
	OllamaService       service.IOllamaService
	SystemService       service.ISystemService
	Worker              *worker.Worker
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.CompletionsServiceSet,
	service.ConversationServiceSet,
	service.AuthServiceSet,
	service.RAGServiceSet,
	service.TaskServiceSet,
	service.OllamaServiceSet,
	service.SystemServiceSet,
)

var DomainSet = wire.NewSet(
	relay.RelayDomainSet,
	history.DomainSet,
	rag.DomainSet,
)

var InfraSet = wire.NewSet(
	config.NewConfig,
	conversation.NewConversationMongoMapper,
	message.NewMessageMongoMapper,
	document.NewDocumentMongoMapper,
	queue.NewTaskQueue,
	worker.WorkerSet,
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	DomainSet,
	InfraSet,
)
