package config

// Config is the root application configuration, loaded from environment
// variables with sensible local-development defaults.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	AWS      AWSConfig
	LLM      LLMConfig
}

// Load reads the full configuration from the environment.
func Load() *Config {
	return &Config{
		Server:   loadServerConfig(),
		Database: loadDatabaseConfig(),
		Redis:    loadRedisConfig(),
		AWS:      loadAWSConfig(),
		LLM:      loadLLMConfig(),
	}
}
