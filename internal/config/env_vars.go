package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar       = "PORT"
	appNameVar       = "APP_NAME"
	databaseURLVar   = "DATABASE_URL"
	auditDatabaseVar = "AUDIT_DATABASE_URL"
	redisAddrVar     = "REDIS_ADDR"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "5000")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Go Catalog Server")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func (EnvVars) GetDatabaseURL() string {
	return GetEnv(databaseURLVar, "")
}

// GetAuditDatabaseURL falls back to the primary database when no separate
// audit database is configured.
func (e EnvVars) GetAuditDatabaseURL() string {
	return GetEnv(auditDatabaseVar, e.GetDatabaseURL())
}

func (EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
