package logger

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu           sync.Mutex
	currentLevel = LevelInfo
	logger       = stdlog.New(os.Stdout, "", 0)

	// jsonLogger is non-nil when the json format is selected.
	jsonLogger *slog.Logger

	// output is the file opened by Configure, closed on reconfiguration.
	output io.Closer
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToUpper(level) {
	case "DEBUG":
		currentLevel = LevelDebug
	case "INFO":
		currentLevel = LevelInfo
	case "WARN":
		currentLevel = LevelWarn
	case "ERROR":
		currentLevel = LevelError
	}
}

// Configure sets level, format and destination in one step.
//
// Parameters:
//   - level: DEBUG, INFO, WARN or ERROR (case-insensitive)
//   - format: "text" for the bracketed line format, "json" for one JSON object per line
//   - out: "stdout", "stderr" or a file path (appended to, created if missing)
func Configure(level, format, out string) error {
	var w io.Writer
	var closer io.Closer

	switch strings.ToLower(out) {
	case "", "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log output %q: %w", out, err)
		}
		w, closer = f, f
	}

	switch strings.ToLower(format) {
	case "", "text", "json":
	default:
		if closer != nil {
			_ = closer.Close()
		}
		return fmt.Errorf("unknown log format %q (supported: text, json)", format)
	}

	SetLevel(level)
	setWriter(w, strings.EqualFold(format, "json"))

	mu.Lock()
	if output != nil {
		_ = output.Close()
	}
	output = closer
	mu.Unlock()

	return nil
}

// SetOutput redirects text output to w. Mostly useful in tests.
func SetOutput(w io.Writer) {
	setWriter(w, false)
}

func setWriter(w io.Writer, asJSON bool) {
	mu.Lock()
	defer mu.Unlock()

	logger = stdlog.New(w, "", 0)
	jsonLogger = nil
	if asJSON {
		// The handler level is left at debug; filtering happens in log().
		jsonLogger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func log(level Level, format string, v ...any) {
	mu.Lock()
	threshold, text, structured := currentLevel, logger, jsonLogger
	mu.Unlock()

	if level < threshold {
		return
	}

	message := fmt.Sprintf(format, v...)
	if structured != nil {
		structured.Log(context.Background(), level.slogLevel(), message)
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	prefix := fmt.Sprintf("[%s] [%s] ", timestamp, level.String())
	text.Println(prefix + message)
}

func Debug(format string, v ...any) {
	log(LevelDebug, format, v...)
}

func Info(format string, v ...any) {
	log(LevelInfo, format, v...)
}

func Warn(format string, v ...any) {
	log(LevelWarn, format, v...)
}

func Error(format string, v ...any) {
	log(LevelError, format, v...)
}
