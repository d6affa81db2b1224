package generator

import (
	"context"
	"fmt"
	"time"
)

// LLMClient 抽象大模型客户端，便于替换/Mock。
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings 提供给具体实现的基础配置（与供应商无关）。
type LLMSettings struct {
	Provider   string
	Model      string
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// NewLLMClient 按 Provider 构造对应客户端。
func NewLLMClient(cfg *LLMSettings) (LLMClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("llm config is nil")
	}
	switch cfg.Provider {
	case "openai":
		return NewOpenAILLMFromConfig(cfg)
	case "deepseek", "openai_compatible":
		// OpenAI-compatible gateways; base_url is mandatory.
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("llm provider %s requires base_url (OpenAI-compatible endpoint)", cfg.Provider)
		}
		return NewOpenAILLMFromConfig(cfg)
	case "anthropic":
		return NewAnthropicLLMFromConfig(cfg)
	case "mock":
		return &MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}
