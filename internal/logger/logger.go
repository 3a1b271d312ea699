package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface used across the pipeline.
type Logger interface {
	Logf(format string, args ...interface{})
	Log(msg string)
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Spinner displays progress for a long-running operation.
// Implementations should be safe for single-threaded Start/Stop/Fail usage.
type Spinner interface {
	// Update changes the spinner text while running.
	Update(text string)
	// Stop stops the spinner and prints a success indicator.
	Stop()
	// Fail stops the spinner and prints a failure indicator.
	Fail()
}

// noOpSpinner is used when output is non-interactive (e.g., tests, piped output).
// It performs no rendering to keep output stable.
type noOpSpinner struct{}

func (n *noOpSpinner) Update(text string) {}
func (n *noOpSpinner) Stop()              {}
func (n *noOpSpinner) Fail()              {}

// Options configures New.
type Options struct {
	Verbose bool
	// JSON switches to structured output for machine consumption.
	JSON bool
	// Writer defaults to stderr so that previews on stdout stay clean.
	Writer io.Writer
}

// ZapLogger adapts a zap SugaredLogger to Logger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a logger writing to opts.Writer.
func New(opts Options) *ZapLogger {
	level := zap.InfoLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	var encoder zapcore.Encoder
	if opts.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			MessageKey:       "msg",
			LevelKey:         "level",
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			ConsoleSeparator: " ",
		})
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return &ZapLogger{sugar: zap.New(core).Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &ZapLogger{sugar: zap.NewNop().Sugar()}
}

// Sugar exposes the zap logger behind l, or a no-op one.
func Sugar(l Logger) *zap.SugaredLogger {
	switch v := l.(type) {
	case *ZapLogger:
		return v.sugar
	case *UILogger:
		return Sugar(v.next)
	}
	return zap.NewNop().Sugar()
}

func (l *ZapLogger) Logf(format string, args ...interface{}) {
	l.sugar.Infof(strings.TrimSuffix(format, "\n"), args...)
}

func (l *ZapLogger) Log(msg string) { l.sugar.Info(strings.TrimSuffix(msg, "\n")) }

func (l *ZapLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(strings.TrimSuffix(format, "\n"), args...)
}

func (l *ZapLogger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(strings.TrimSuffix(format, "\n"), args...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error { return l.sugar.Sync() }
