// Package logger adapts slog to the telegram library's logger interface.
package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

type Logger struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Logger {
	return &Logger{log: log.With(slog.String("component", "tgbotapi"))}
}

func (l *Logger) Println(v ...interface{}) {
	l.log.Debug(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (l *Logger) Printf(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...))
}
