// Package testing provides test utilities for hydrate.
package testing

import (
	"context"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
)

// Created is the timestamp carried by fixture records.
var Created = time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)

// User is a flat fixture entity.
type User struct {
	ID      int64
	Name    string
	Created time.Time
}

// Account is a fixture entity with an alias tag and an unexported field.
type Account struct {
	ID      int64     `hydrate:"account_id"`
	Email   string    `hydrate:"email_address"`
	Opened  time.Time `hydrate:"opened_at"`
	balance int64
}

// Balance returns the unexported balance field.
func (a Account) Balance() int64 { return a.balance }

// UserRecord returns a record matching User.
func UserRecord() map[string]any {
	return map[string]any{
		"ID":      int64(5),
		"Name":    "Ann",
		"Created": Created,
	}
}

// Warning is one call recorded by a RecordingLogger.
type Warning struct {
	Signal  capitan.Signal
	Message string
}

// RecordingLogger records warnings in call order.
type RecordingLogger struct {
	mu       sync.Mutex
	warnings []Warning
}

// Warn records the warning.
func (l *RecordingLogger) Warn(_ context.Context, signal capitan.Signal, msg string, _ ...capitan.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, Warning{Signal: signal, Message: msg})
}

// Warnings returns a copy of the recorded warnings.
func (l *RecordingLogger) Warnings() []Warning {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Warning, len(l.warnings))
	copy(out, l.warnings)
	return out
}

// Messages returns the recorded messages.
func (l *RecordingLogger) Messages() []string {
	ws := l.Warnings()
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Message
	}
	return out
}
