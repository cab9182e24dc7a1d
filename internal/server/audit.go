package server

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type AuditLogEntry struct {
	Timestamp  time.Time
	Route      string
	Method     string
	Path       string
	StatusCode int
	AccountID  int64
	Role       string
	Duration   time.Duration
}

func (e AuditLogEntry) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddTime("timestamp", e.Timestamp)
	enc.AddString("route", e.Route)
	enc.AddString("method", e.Method)
	enc.AddString("path", e.Path)
	enc.AddInt("status_code", e.StatusCode)
	if e.AccountID != 0 {
		enc.AddInt64("account_id", e.AccountID)
		enc.AddString("role", e.Role)
	}
	enc.AddDuration("duration", e.Duration)
	return nil
}

func (e AuditLogEntry) field() zap.Field {
	return zap.Object("entry", e)
}
