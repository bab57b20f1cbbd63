// Package backend selects and constructs the range store serving the
// application: the spreadsheet itself, a local SQLite mirror, or memory.
package backend

import (
	"fmt"

	"bizdash/internal/config"
	"bizdash/internal/services"
	"bizdash/internal/sheets"
)

type BackendType string

const (
	SheetsBackend BackendType = "sheets"
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (t BackendType) String() string {
	return string(t)
}

func (t BackendType) IsValid() bool {
	switch t {
	case SheetsBackend, SQLiteBackend, MemoryBackend:
		return true
	}
	return false
}

type Config struct {
	Type BackendType

	// SQLite mirror
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets
	GoogleSpreadsheetID string
}

// BackendResult bundles the constructed store with its optional event
// publisher and cleanup.
type BackendResult struct {
	Store   sheets.Store
	Events  services.EventPublisher
	Cleanup func() error
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:                backendType,
		SQLiteDBPath:        appConfig.SQLiteDBPath,
		AMQPURL:             appConfig.AMQPURL,
		AMQPExchange:        appConfig.AMQPExchange,
		AMQPQueue:           appConfig.AMQPQueue,
		GoogleSpreadsheetID: appConfig.GoogleSpreadsheetID,
	}, nil
}
