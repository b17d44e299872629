package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	globalLogger zerolog.Logger
	mu           sync.RWMutex
	once         sync.Once
)

// GetLogger returns the process logger. Until New is called it writes
// info-level console output to stdout.
func GetLogger() zerolog.Logger {
	once.Do(func() {
		mu.Lock()
		globalLogger = zerolog.New(consoleWriter(os.Stdout)).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// New builds the logger for the configured level and format ("console" or
// "json") and installs it as the process logger.
func New(level, format, service string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, err
	}

	var out io.Writer
	switch strings.ToLower(format) {
	case "json":
		out = os.Stdout
	case "console", "":
		out = consoleWriter(os.Stdout)
	default:
		return zerolog.Logger{}, fmt.Errorf("unsupported log format %q", format)
	}

	ctx := zerolog.New(out).With().Timestamp()
	if service != "" {
		ctx = ctx.Str("service", service)
	}
	built := ctx.Logger().Level(lvl)

	zerolog.SetGlobalLevel(lvl)
	once.Do(func() {})
	mu.Lock()
	globalLogger = built
	mu.Unlock()
	return built, nil
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}
