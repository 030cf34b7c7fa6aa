package config

import "time"

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            string
	CORSOrigins     string
	BodyLimit       int
	Debug           bool
	ShutdownTimeout time.Duration
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnv("PORT", "8080"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		BodyLimit:       getEnvInt("SERVER_BODY_LIMIT", 10*1024*1024),
		Debug:           getEnvBool("DEBUG", false),
		ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}
