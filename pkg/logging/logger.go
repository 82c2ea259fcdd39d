package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogLevel represents logging verbosity
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

var slogLevels = map[LogLevel]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// Config holds logger configuration
type Config struct {
	Level      LogLevel
	OutputPath string    // empty for stderr
	Format     string    // "text" (default) or "json"
	Writer     io.Writer // overrides OutputPath when set
}

// sink is the installed logger and the file it owns, if any.
type sink struct {
	logger *slog.Logger
	file   *os.File
}

var (
	mu      sync.RWMutex
	current *sink
	// explicit is set by Init and cleared by Close; a lazily installed
	// default does not count.
	explicit bool
)

// ParseLevel maps a level name, in any case, to a LogLevel. The empty
// string selects WARN.
func ParseLevel(s string) (LogLevel, error) {
	if s == "" {
		return LevelWarn, nil
	}
	lvl := LogLevel(strings.ToUpper(s))
	if _, ok := slogLevels[lvl]; !ok {
		return "", fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// Init installs the process-wide logger. It fails if Init was already
// called without an intervening Close.
func Init(config Config) error {
	mu.Lock()
	defer mu.Unlock()

	if explicit {
		return fmt.Errorf("logger already initialized; call Close() first to reinitialize")
	}

	w, file, err := openWriter(config)
	if err != nil {
		return err
	}

	handler, err := newHandler(w, config)
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return err
	}

	current = &sink{logger: slog.New(handler), file: file}
	explicit = true
	return nil
}

func openWriter(config Config) (io.Writer, *os.File, error) {
	switch {
	case config.Writer != nil:
		return config.Writer, nil, nil
	case config.OutputPath == "":
		return os.Stderr, nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(config.OutputPath), 0o750); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(config.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func newHandler(w io.Writer, config Config) (slog.Handler, error) {
	level, ok := slogLevels[config.Level]
	if !ok {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(config.Format) {
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	}
	return nil, fmt.Errorf("unknown log format %q", config.Format)
}

// Close releases the installed logger and its file, if any. Init may be
// called again afterwards. Close is safe to call more than once.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	var err error
	if current != nil && current.file != nil {
		err = current.file.Close()
	}
	current = nil
	explicit = false
	return err
}

// GetLogger returns the installed logger. Until Init is called it installs
// a WARN-level text logger on stderr, so library callers stay quiet unless
// they opt in.
func GetLogger() *slog.Logger {
	mu.RLock()
	s := current
	mu.RUnlock()
	if s != nil {
		return s.logger
	}

	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = &sink{logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))}
	}
	return current.logger
}
