package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	globalLogger *Logger
	globalMu     sync.Mutex
	once         sync.Once
)

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

type Component string
type LogLevel int

const (
	ComponentNATS        Component = "NATS"
	ComponentStorage     Component = "Storage"
	ComponentConfig      Component = "Config"
	ComponentTransaction Component = "Trans"
	ComponentSearch      Component = "Search"
	ComponentCLI         Component = "CLI"
	ComponentService     Component = "Service"
	ComponentGeneral     Component = "General"
)

// AllComponents lists every component known to the logger
var AllComponents = []Component{
	ComponentGeneral,
	ComponentConfig,
	ComponentStorage,
	ComponentTransaction,
	ComponentSearch,
	ComponentNATS,
	ComponentCLI,
	ComponentService,
}

// Logger is a component aware logger on top of zerolog. Every component can
// be switched on and off at runtime.
type Logger struct {
	mu                sync.RWMutex
	base              zerolog.Logger
	file              *os.File
	level             LogLevel
	enabledComponents map[Component]bool
}

func InitGlobalLogger(logDir string, level LogLevel, components []Component) error {
	var err error
	once.Do(func() {
		var logger *Logger
		logger, err = NewLogger(logDir, level, components)
		if err == nil {
			SetGlobalLogger(logger)
		}
	})
	return err
}

// SetGlobalLogger replaces the process wide logger
func SetGlobalLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

func GetLogger() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalLogger == nil {
		console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		globalLogger = NewLoggerWithWriter(console, LogLevelInfo, AllComponents)
	}
	return globalLogger
}

// NewLogger logs to stderr and, when logDir is set, to a timestamped JSON file in logDir
func NewLogger(logDir string, level LogLevel, components []Component) (*Logger, error) {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	var file *os.File

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		logPath := filepath.Join(logDir, fmt.Sprintf("%s_%s.log", DefaultAppName, timestamp))

		var err error
		file, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = zerolog.MultiLevelWriter(out, file)
	}

	logger := NewLoggerWithWriter(out, level, components)
	logger.file = file
	return logger, nil
}

// NewLoggerWithWriter creates a logger writing JSON lines (or whatever w formats) to w
func NewLoggerWithWriter(w io.Writer, level LogLevel, components []Component) *Logger {
	enabledComponents := make(map[Component]bool)
	for _, component := range components {
		enabledComponents[component] = true
	}

	return &Logger{
		base:              zerolog.New(w).With().Timestamp().Logger(),
		level:             level,
		enabledComponents: enabledComponents,
	}
}

// ParseLogLevel parses debug, info, warn, error or fatal
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug, nil
	case "", "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "fatal":
		return LogLevelFatal, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// ParseComponents maps component names to components, ignoring case. An
// empty list enables every component.
func ParseComponents(names []string) ([]Component, error) {
	if len(names) == 0 {
		return AllComponents, nil
	}

	components := make([]Component, 0, len(names))
	for _, name := range names {
		found := false
		for _, component := range AllComponents {
			if strings.EqualFold(name, string(component)) {
				components = append(components, component)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown log component %q", name)
		}
	}
	return components, nil
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) EnableComponent(component Component) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabledComponents[component] = true
}

func (l *Logger) DisableComponent(component Component) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabledComponents[component] = false
}

func (l *Logger) IsComponentEnabled(component Component) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabledComponents[component]
}

// Component returns a structured logger tagged with the component. It
// discards everything while the component is disabled.
func (l *Logger) Component(component Component) zerolog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.enabledComponents[component] {
		return zerolog.Nop()
	}
	return l.base.Level(l.level.zerolog()).With().Str("component", string(component)).Logger()
}

func (l *Logger) Debug(component Component, format string, args ...interface{}) {
	logger := l.Component(component)
	logger.Debug().Msgf(format, args...)
}

func (l *Logger) Info(component Component, format string, args ...interface{}) {
	logger := l.Component(component)
	logger.Info().Msgf(format, args...)
}

func (l *Logger) Warn(component Component, format string, args ...interface{}) {
	logger := l.Component(component)
	logger.Warn().Msgf(format, args...)
}

func (l *Logger) Error(component Component, format string, args ...interface{}) {
	logger := l.Component(component)
	logger.Error().Msgf(format, args...)
}

// Fatal logs and exits, even when the component is disabled
func (l *Logger) Fatal(component Component, format string, args ...interface{}) {
	logger := l.base.With().Str("component", string(component)).Logger()
	logger.Fatal().Msgf(format, args...)
}

func (level LogLevel) zerolog() zerolog.Level {
	switch level {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelFatal:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
