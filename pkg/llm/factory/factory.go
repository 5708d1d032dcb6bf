package factory

import (
	"fmt"

	"competency-assessment-be/pkg/llm"
	"competency-assessment-be/pkg/llm/ollama"
	"competency-assessment-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewProvider("openai", apiKey, baseURL, modelName), nil
	case "huggingface":
		if baseURL == "" {
			baseURL = openai.HuggingFaceBaseURL
		}
		return openai.NewProvider("huggingface", apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
