package logger

import (
	"time"

	"go.uber.org/zap"
)

// HTTP

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }
func UserAgent(v string) zap.Field { return zap.String("user_agent", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// Login flow

func Provider(v string) zap.Field { return zap.String("provider", v) }
func Outcome(v string) zap.Field  { return zap.String("outcome", v) }
func Login(v string) zap.Field    { return zap.String("login", v) }

// Component names the emitting package or subsystem.
func Component(v string) zap.Field { return zap.String("component", v) }

// Err attaches an error.
func Err(err error) zap.Field { return zap.Error(err) }

// String is a generic string field.
func String(key, v string) zap.Field { return zap.String(key, v) }

// Strings is a generic string slice field.
func Strings(key string, v []string) zap.Field { return zap.Strings(key, v) }
