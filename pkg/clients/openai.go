package clients

import (
	"github.com/DRSN-tech/fitting-backend/internal/cfg"
	openai "github.com/sashabaranov/go-openai"
)

// NewAzureOpenAIClient создает клиент Azure OpenAI.
// Возвращает nil, если endpoint или ключ не заданы — вызывающая сторона
// трактует это как недоступность AI-функций, а не как ошибку.
func NewAzureOpenAIClient(cfg *cfg.LLMCfg) *openai.Client {
	if cfg.Endpoint == "" || cfg.APIKey == "" {
		return nil
	}

	clientCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	clientCfg.APIVersion = cfg.APIVersion
	clientCfg.AzureModelMapperFunc = func(model string) string {
		return cfg.DeploymentID
	}

	return openai.NewClientWithConfig(clientCfg)
}
