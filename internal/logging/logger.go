// Package logging wraps zerolog with the structured-field conventions the
// rest of ringd logs through: per-component loggers built with WithFields,
// optional async writing, and file rotation.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Fields is a map of fields to add to log entries.
type Fields map[string]any

var (
	instance *Logger
	once     sync.Once
	mu       sync.RWMutex

	fieldPool = &sync.Pool{
		New: func() any {
			return make(Fields, 10)
		},
	}

	timeFormatOnce sync.Once
	stackOnce      sync.Once
	callerSkipOnce sync.Once
)

// Logger wraps zerolog with persistent fields and convenience builders.
type Logger struct {
	*zerolog.Logger
	config *Config
	fields Fields
	mu     sync.RWMutex
}

// Config holds logger configuration.
type Config struct {
	Level           string `json:"level" yaml:"level"`
	Format          string `json:"format" yaml:"format"`
	TimestampFormat string `json:"timestamp_format" yaml:"timestamp_format"`

	Console ConsoleConfig `json:"console" yaml:"console"`
	File    FileConfig    `json:"file" yaml:"file"`

	Fields Fields `json:"fields" yaml:"fields"`

	CallerSkipFrameCount int  `json:"caller_skip_frame_count" yaml:"caller_skip_frame_count"`
	EnableCaller         bool `json:"enable_caller" yaml:"enable_caller"`
	EnableStackTrace     bool `json:"enable_stack_trace" yaml:"enable_stack_trace"`

	// AsyncWrite uses a diode writer so a stalled sink never blocks a
	// stabilization loop.
	AsyncWrite bool `json:"async_write" yaml:"async_write"`
	BufferSize int  `json:"buffer_size" yaml:"buffer_size"`
}

// ConsoleConfig configures console output.
type ConsoleConfig struct {
	Enable     bool   `json:"enable" yaml:"enable"`
	NoColor    bool   `json:"no_color" yaml:"no_color"`
	TimeFormat string `json:"time_format" yaml:"time_format"`
	Output     string `json:"output" yaml:"output"`
}

// FileConfig configures rotated file output.
type FileConfig struct {
	Enable     bool   `json:"enable" yaml:"enable"`
	Path       string `json:"path" yaml:"path"`
	MaxSize    int    `json:"max_size" yaml:"max_size"`
	MaxAge     int    `json:"max_age" yaml:"max_age"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	LocalTime  bool   `json:"local_time" yaml:"local_time"`
	Compress   bool   `json:"compress" yaml:"compress"`
}

// DefaultConfig returns a sensible default logger configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:           "info",
		Format:          "console",
		TimestampFormat: time.RFC3339Nano,
		Console: ConsoleConfig{
			Enable:     true,
			NoColor:    false,
			TimeFormat: "15:04:05.000",
			Output:     "stdout",
		},
		File: FileConfig{
			Enable:     false,
			Path:       "ringd.log",
			MaxSize:    100,
			MaxAge:     30,
			MaxBackups: 10,
			LocalTime:  true,
			Compress:   true,
		},
		Fields:               make(Fields),
		CallerSkipFrameCount: 2,
		EnableCaller:         true,
		EnableStackTrace:     true,
		AsyncWrite:           false,
		BufferSize:           10000,
	}
}

// Init initializes the global logger.
func Init(config *Config) error {
	if config == nil {
		config = DefaultConfig()
	}
	logger, err := New(config)
	if err != nil {
		return err
	}
	SetGlobal(logger)
	return nil
}

// New creates a logger instance from config.
func New(config *Config) (*Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer

	if config.Console.Enable {
		var output io.Writer
		switch config.Console.Output {
		case "stderr":
			output = os.Stderr
		default:
			output = os.Stdout
		}

		if config.Format == "console" {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: config.Console.TimeFormat,
				NoColor:    config.Console.NoColor,
			})
		} else {
			writers = append(writers, output)
		}
	}

	if config.File.Enable {
		if err := os.MkdirAll(filepath.Dir(config.File.Path), 0o755); err != nil {
			return nil, fmt.Errorf("logging: create log directory: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   config.File.Path,
			MaxSize:    config.File.MaxSize,
			MaxAge:     config.File.MaxAge,
			MaxBackups: config.File.MaxBackups,
			LocalTime:  config.File.LocalTime,
			Compress:   config.File.Compress,
		})
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = io.Discard
	case 1:
		writer = writers[0]
	default:
		writer = zerolog.MultiLevelWriter(writers...)
	}

	if config.AsyncWrite {
		writer = diode.NewWriter(writer, config.BufferSize, 10*time.Millisecond, func(missed int) {
			fmt.Fprintf(os.Stderr, "logging: dropped %d messages\n", missed)
		})
	}

	if config.EnableCaller {
		callerSkipOnce.Do(func() {
			zerolog.CallerSkipFrameCount = config.CallerSkipFrameCount
		})
	}

	ctx := zerolog.New(writer).Level(level).With().Timestamp()
	if config.EnableCaller {
		ctx = ctx.Caller()
	}
	for k, v := range config.Fields {
		ctx = ctx.Interface(k, v)
	}

	if config.EnableStackTrace {
		stackOnce.Do(func() {
			zerolog.ErrorStackMarshaler = func(err error) any {
				return fmt.Sprintf("%+v", err)
			}
		})
	}

	zl := ctx.Logger()

	if config.TimestampFormat != "" {
		timeFormatOnce.Do(func() {
			zerolog.TimeFieldFormat = config.TimestampFormat
		})
	}

	return &Logger{
		Logger: &zl,
		config: config,
		fields: make(Fields),
	}, nil
}

// SetGlobal sets the global logger instance.
func SetGlobal(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	instance = l
}

// Get returns the global logger, creating a default one on first use.
func Get() *Logger {
	once.Do(func() {
		if instance == nil {
			l, _ := New(DefaultConfig())
			instance = l
		}
	})
	return instance
}

// WithFields returns a derived logger carrying fields in addition to the
// receiver's own.
func (l *Logger) WithFields(fields Fields) *Logger {
	newFields := fieldPool.Get().(Fields)

	l.mu.RLock()
	for k, v := range l.fields {
		newFields[k] = v
	}
	baseLogger := l.Logger
	l.mu.RUnlock()

	for k, v := range fields {
		newFields[k] = v
	}

	ctx := baseLogger.With()
	for k, v := range newFields {
		ctx = ctx.Interface(k, v)
	}

	zl := ctx.Logger()
	return &Logger{
		Logger: &zl,
		config: l.config,
		fields: newFields,
	}
}

// WithError returns a derived logger carrying error details.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.WithFields(Fields{"error": err.Error(), "error_type": fmt.Sprintf("%T", err)})
}

// WithContext extracts well-known trace/request identifiers from ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := Fields{}
	if traceID := ctx.Value(traceIDKey{}); traceID != nil {
		fields["trace_id"] = fmt.Sprint(traceID)
	}
	if reqID := ctx.Value(requestIDKey{}); reqID != nil {
		fields["request_id"] = fmt.Sprint(reqID)
	}
	return l.WithFields(fields)
}

type traceIDKey struct{}
type requestIDKey struct{}

// UpdateLevel updates the log level dynamically.
func (l *Logger) UpdateLevel(level string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	newLogger := l.Logger.Level(lvl)
	l.Logger = &newLogger
	l.config.Level = level
	return nil
}

// AddField adds a persistent field to the logger in place.
func (l *Logger) AddField(key string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.fields[key] = value
	zl := l.Logger.With().Interface(key, value).Logger()
	l.Logger = &zl
}

// ReleaseFields returns the logger's field map to the pool. Call once the
// logger is no longer in use.
func (l *Logger) ReleaseFields() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.fields) > 0 {
		for k := range l.fields {
			delete(l.fields, k)
		}
		fieldPool.Put(l.fields)
		l.fields = nil
	}
}

// Close flushes buffered logs.
func (l *Logger) Close() error {
	l.ReleaseFields()
	if l.config.AsyncWrite {
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}
