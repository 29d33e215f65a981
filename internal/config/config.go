package config

type Config interface {
	EnvConfig
	AuthConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetDatabaseURL() string
	GetAuditDatabaseURL() string
	GetRedisAddr() string
}

type mainConfig struct {
	EnvVars
	Auth
	Cors
}

func New() Config {
	return mainConfig{}
}
