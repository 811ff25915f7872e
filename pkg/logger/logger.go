package logger

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type Logger struct {
	out io.Writer
}

func NewLogger(out io.Writer) *Logger {
	return &Logger{out: out}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(color.FgHiCyan, msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(color.FgHiYellow, msg, args...)
}

func (l *Logger) log(col color.Attribute, msg string, args ...interface{}) {
	if msg == "" {
		_, _ = fmt.Fprintln(l.out, "")
		return
	}

	c := color.New(col)
	_, _ = c.Fprintln(l.out, fmt.Sprintf(msg, args...))
}

func (l *Logger) Error(err error) {
	c := color.New(color.FgHiRed)
	_, _ = c.Fprintln(l.out, fmt.Sprintf("%v", err))
}
