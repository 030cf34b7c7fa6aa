package config

import "time"

// LLMConfig configures the language model providers.
type LLMConfig struct {
	OpenAIKey      string
	OpenAIModel    string
	AnthropicKey   string
	AnthropicModel string
	BedrockModel   string
	MaxTokens      int
	Timeout        time.Duration
}

func loadLLMConfig() LLMConfig {
	return LLMConfig{
		OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o"),
		AnthropicKey:   getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel: getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		BedrockModel:   getEnv("BEDROCK_MODEL", "anthropic.claude-sonnet-4-20250514-v1:0"),
		MaxTokens:      getEnvInt("LLM_MAX_TOKENS", 1024),
		Timeout:        getEnvDuration("LLM_TIMEOUT", 30*time.Second),
	}
}
