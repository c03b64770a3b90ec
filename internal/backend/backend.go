// Package backend builds the ledger store selected by configuration.
package backend

import (
	"context"
	"fmt"

	"chitieu/internal/config"
	"chitieu/internal/core"
	"chitieu/internal/ledger"
	"chitieu/internal/services"
)

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = config.BackendSQLite
	MemoryBackend BackendType = config.BackendMemory
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	for _, t := range GetBackendTypes() {
		if bt == t {
			return true
		}
	}
	return false
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// BackendResult is a ready store plus what the HTTP layer needs around it.
type BackendResult struct {
	Store ledger.Store
	// Publisher is nil when transactions are written directly.
	Publisher services.Publisher
	// Ready reports whether the store can serve requests.
	Ready   func(ctx context.Context) error
	Cleanup CleanupFunc
}

// Close runs Cleanup if present.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath   string
	OpeningBalance core.Money
	AMQPURL        string
	AMQPExchange   string
	AMQPQueue      string

	// Memory specific
	SeedFile string
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	bt := BackendType(appConfig.DataBackend)
	if !bt.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}
	return Config{
		Type:           bt,
		SQLiteDBPath:   appConfig.SQLiteDBPath,
		OpeningBalance: core.Money{Minor: appConfig.OpeningBalance},
		AMQPURL:        appConfig.AMQPURL,
		AMQPExchange:   appConfig.AMQPExchange,
		AMQPQueue:      appConfig.AMQPQueue,
		SeedFile:       appConfig.SeedFile,
	}, nil
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type %q: must be one of %v", c.Type, GetBackendTypes())
	}
	if c.Type == SQLiteBackend && c.SQLiteDBPath == "" {
		return fmt.Errorf("SQLite database path is required for sqlite backend")
	}
	if c.Type == MemoryBackend && c.AMQPURL != "" {
		return fmt.Errorf("AMQP is only supported with the sqlite backend")
	}
	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{MemoryBackend, SQLiteBackend}
}
