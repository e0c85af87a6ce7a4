package config

import (
	"os"
	"sync"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
)

var (
	config *Config
	once   sync.Once
)

type Auth struct {
	SecretKey          string
	AccessExpire       int64
	SupabaseURL        string `json:",optional"`
	SupabaseAnonKey    string `json:",optional"`
	SupabaseServiceKey string `json:",optional"`
}

type Mongo struct {
	URL string
	DB  string
}

type Redis struct {
	Addr     string
	Password string `json:",optional"`
	DB       int    `json:",optional"`
}

type Provider struct {
	APIKey  string `json:",optional"`
	BaseURL string `json:",optional"`
}

type Ollama struct {
	BaseURL string `json:",default=http://localhost:11434"`
	Model   string `json:",default=llama2"`
}

type Embedding struct {
	APIKey  string `json:",optional"`
	BaseURL string `json:",optional"`
	Model   string `json:",default=text-embedding-3-small"`
}

type Modules struct {
	UseWorkers bool `json:",default=false"`
	UseRAG     bool `json:",default=false"`
	UseOllama  bool `json:",default=false"`
}

type Config struct {
	service.ServiceConf
	ListenOn        string
	MetricsListenOn string   `json:",default=:9091"`
	CORSOrigins     []string `json:",optional"`
	DefaultProvider string   `json:",default=openai"`
	Auth            Auth
	Mongo           Mongo
	Cache           cache.CacheConf
	Redis           Redis
	OpenAI          Provider `json:",optional"`
	Anthropic       Provider `json:",optional"`
	OpenRouter      Provider `json:",optional"`
	Ollama          Ollama   `json:",optional"`
	Embedding       Embedding
	Modules         Modules
}

func NewConfig() (*Config, error) {
	c := new(Config)
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "etc/config.yaml"
	}
	err := conf.Load(path, c)
	if err != nil {
		return nil, err
	}
	err = c.SetUp()
	if err != nil {
		return nil, err
	}
	config = c
	return config, nil
}

func GetConfig() *Config {
	return config
}

// HasProvider 判断是否有任意可用的对话服务配置
func (c *Config) HasProvider() bool {
	return c.OpenAI.APIKey != "" || c.Anthropic.APIKey != "" || c.OpenRouter.APIKey != "" || c.Modules.UseOllama
}
