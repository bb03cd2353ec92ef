package models

import "time"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig
	Assist   AssistConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	SeedReferenceData bool
}

// AssistConfig holds assistant context settings
type AssistConfig struct {
	ChatModel   string
	SectorsFile string
}
