package testutil

import "fin-advisor-be/internal/pkg/logger"

// NopLogger discards everything. Satisfies logger.ILogger.
type NopLogger struct{}

func (NopLogger) Debug(module, message string, details map[string]interface{}) {}
func (NopLogger) Info(module, message string, details map[string]interface{})  {}
func (NopLogger) Warn(module, message string, details map[string]interface{})  {}
func (NopLogger) Error(module, message string, details map[string]interface{}) {}
func (NopLogger) Sync() error                                                  { return nil }

func (NopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

func (NopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }
