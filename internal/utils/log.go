package utils

import (
	"context"
	"io"
	stdlog "log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var Log = zerolog.New(os.Stdout).With().Timestamp().Logger()

func InitLogger() {
	var w io.Writer = os.Stdout
	if V.GetBool("log.pretty") {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}
	Log = zerolog.New(w).
		Level(parseLevel(V.GetString("log.level"))).
		With().Timestamp().Str("service", "officerchat").
		Logger()

	stdlog.SetFlags(0)
	stdlog.SetOutput(Log.With().Str("source", "stdlog").Logger())
}

type logCtxKey struct{}

func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, l)
}

// LogCtx returns the request logger stored in ctx, or the global one.
func LogCtx(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(logCtxKey{}).(zerolog.Logger); ok {
		return l
	}
	return Log
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
