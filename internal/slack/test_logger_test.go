package slack

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// testLogger wraps a zap logger with an observer so tests can assert on
// what the client logged.
type testLogger struct {
	*zap.Logger
	observer *observer.ObservedLogs
}

func newTestLogger() *testLogger {
	core, logs := observer.New(zapcore.DebugLevel)
	return &testLogger{Logger: zap.New(core), observer: logs}
}

// HasMessage reports whether msg was logged at any level.
func (tl *testLogger) HasMessage(msg string) bool {
	for _, entry := range tl.observer.All() {
		if entry.Message == msg {
			return true
		}
	}
	return false
}
