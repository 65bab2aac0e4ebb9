// Package logging configures the global zerolog logger used across refkit.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment variables read by Setup
const (
	EnvLogFile       = "REFKIT_LOG_FILE"
	EnvLogMaxSize    = "REFKIT_LOG_MAX_SIZE"
	EnvLogMaxBackups = "REFKIT_LOG_MAX_BACKUPS"
	EnvLogMaxAge     = "REFKIT_LOG_MAX_AGE"
)

// Options controls Setup
type Options struct {
	Verbose bool
	NoColor bool
	// LogFile, when set, receives every record (debug included) as JSON.
	// Falls back to $REFKIT_LOG_FILE.
	LogFile string
	// Console defaults to os.Stderr
	Console io.Writer
}

// Setup installs the global logger. The returned closer flushes and closes
// the log file, if any.
func Setup(opts Options) (io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleLevel := zerolog.InfoLevel
	if opts.Verbose {
		consoleLevel = zerolog.DebugLevel
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		NoColor:    opts.NoColor,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
	}
	writers := []io.Writer{levelWriter{Writer: consoleWriter, min: consoleLevel}}

	logFile := opts.LogFile
	if logFile == "" {
		logFile = os.Getenv(EnvLogFile)
	}

	var closer io.Closer = nopCloser{}
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotated := newRotatingFile(logFile)
		writers = append(writers, rotated)
		closer = rotated
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	if logFile == "" {
		zerolog.SetGlobalLevel(consoleLevel)
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()

	return closer, nil
}

// newRotatingFile creates a lumberjack logger sized from the environment
func newRotatingFile(path string) *lumberjack.Logger {
	l := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1, // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
		Compress:   false,
	}

	if n, ok := envInt(EnvLogMaxSize); ok && n > 0 {
		l.MaxSize = n
	}
	if n, ok := envInt(EnvLogMaxBackups); ok && n >= 0 {
		l.MaxBackups = n
	}
	if n, ok := envInt(EnvLogMaxAge); ok && n > 0 {
		l.MaxAge = n
	}

	return l
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// levelWriter drops records below min so the console can stay at info while
// the log file receives debug output
type levelWriter struct {
	io.Writer
	min zerolog.Level
}

func (w levelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < w.min {
		return len(p), nil
	}
	return w.Writer.Write(p)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
