package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// Until Init or Setup runs it discards everything, so packages can log from
// tests without ceremony.
var Log = newDiscard()

// Options mirrors the logging section of the config file.
type Options struct {
	Level  string
	Format string
	// File is where logs go. Empty means stdout; the terminal UI sets a file
	// because the screen belongs to the renderer.
	File string
}

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init инициализирует глобальный логгер из переменных окружения, вывод в stdout.
func Init() {
	Log = logrus.New()
	configure(Log, Options{})
	Log.SetOutput(os.Stdout)
}

// Setup configures the global logger from opts. LOG_LEVEL and LOG_FORMAT
// still override the file values. The returned closer releases the log file.
func Setup(opts Options) (io.Closer, error) {
	l := logrus.New()
	configure(l, opts)

	var out io.WriteCloser = nopCloser{os.Stdout}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", opts.File, err)
		}
		out = f
	}
	l.SetOutput(out)
	Log = l
	return out, nil
}

func configure(l *logrus.Logger, opts Options) {
	// 1. Уровень: LOG_LEVEL > config > "info".
	logLevel := opts.Level
	if env, ok := os.LookupEnv("LOG_LEVEL"); ok {
		logLevel = env
	}
	if logLevel == "" {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	// 2. Форматтер. "json" - для сбора логов, "text" - для разработки.
	logFormat := opts.Format
	if env := os.Getenv("LOG_FORMAT"); env != "" {
		logFormat = env
	}
	if strings.ToLower(logFormat) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: opts.File != "",
		})
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
