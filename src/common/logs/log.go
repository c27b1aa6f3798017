// Package logs builds the charmbracelet loggers used by joblyd. Output can
// go to stdout, stderr or systemd journald, in text or JSON form.
package logs

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// LogOutput defines the output destination for logs
type LogOutput string

const (
	OutputStdout   LogOutput = "stdout"
	OutputStderr   LogOutput = "stderr"
	OutputJournald LogOutput = "journald"
	// OutputAuto selects journald when the journal socket exists, stdout otherwise
	OutputAuto LogOutput = "auto"
)

// Logger wraps the charm log.Logger and remembers where it writes
type Logger struct {
	*log.Logger
	output LogOutput
}

// Config holds the configuration for the logger
type Config struct {
	Output LogOutput
	// Level is one of debug, info, warn, error
	Level string
	// Format is text or json
	Format string
	Prefix string
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Output: OutputStdout,
		Level:  "info",
		Format: "text",
	}
}

func journaldAvailable() bool {
	if _, err := exec.LookPath("systemd-cat"); err != nil {
		return false
	}
	_, err := os.Stat("/run/systemd/journal/socket")
	return err == nil
}

// ParseLevel converts a level name to log.Level, defaulting to info
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func resolveWriter(out LogOutput) (io.Writer, LogOutput) {
	switch out {
	case OutputStderr:
		return os.Stderr, OutputStderr
	case OutputJournald, OutputAuto:
		if journaldAvailable() {
			return &journaldWriter{identifier: "joblyd"}, OutputJournald
		}
	}
	return os.Stdout, OutputStdout
}

// New creates a new Logger with the given configuration
func New(cfg Config) *Logger {
	writer, output := resolveWriter(cfg.Output)
	return newLogger(writer, output, cfg)
}

// NewWithWriter creates a Logger writing to w, mainly for tests
func NewWithWriter(w io.Writer, cfg Config) *Logger {
	return newLogger(w, cfg.Output, cfg)
}

func newLogger(w io.Writer, output LogOutput, cfg Config) *Logger {
	formatter := log.TextFormatter
	if strings.EqualFold(cfg.Format, "json") {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
		ReportTimestamp: true,
	})

	return &Logger{
		Logger: logger,
		output: output,
	}
}

// NewDefault creates a new Logger with default configuration
func NewDefault() *Logger {
	return New(DefaultConfig())
}

// Output returns the resolved output destination
func (l *Logger) Output() LogOutput {
	return l.output
}

// journaldWriter pipes each record through systemd-cat
type journaldWriter struct {
	identifier string
}

func (w *journaldWriter) Write(p []byte) (int, error) {
	cmd := exec.Command("systemd-cat", "-t", w.identifier)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return os.Stdout.Write(p)
	}
	if err := cmd.Start(); err != nil {
		return os.Stdout.Write(p)
	}

	n, _ := stdin.Write(p)
	stdin.Close()
	_ = cmd.Wait()

	return n, nil
}
