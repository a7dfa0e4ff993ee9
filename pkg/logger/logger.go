// pkg/logger/logger.go

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Уровни логирования
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelFatal = "FATAL"
)

var levelPriority = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
	LevelFatal: 4,
}

type Logger struct {
	logFile   *os.File
	out       io.Writer
	logLevel  string
	colorMode bool
	mu        sync.Mutex
}

// NewLogger создает логгер. Пустой logPath - только консоль.
func NewLogger(logPath string, logLevel string, color bool) (*Logger, error) {
	l := &Logger{
		out:       os.Stdout,
		logLevel:  strings.ToUpper(logLevel),
		colorMode: color,
	}

	if logPath == "" {
		return l, nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	l.logFile = file
	l.out = io.MultiWriter(os.Stdout, file)
	return l, nil
}

// NewWriterLogger создает логгер поверх произвольного writer (тесты, stderr)
func NewWriterLogger(w io.Writer, logLevel string) *Logger {
	return &Logger{
		out:      w,
		logLevel: strings.ToUpper(logLevel),
	}
}

// shouldLog проверяет, нужно ли логировать сообщение на данном уровне
func (l *Logger) shouldLog(level string) bool {
	currentPriority, ok1 := levelPriority[l.logLevel]
	msgPriority, ok2 := levelPriority[level]

	if !ok1 || !ok2 {
		return true // Если неизвестный уровень, логируем всё
	}

	return msgPriority >= currentPriority
}

func (l *Logger) log(level string, format string, v ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	msg := fmt.Sprintf(format, v...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	color := ""
	reset := ""
	if l.colorMode {
		switch level {
		case LevelDebug:
			color = "\033[36m"
		case LevelInfo:
			color = "\033[32m"
		case LevelWarn:
			color = "\033[33m"
		case LevelError:
			color = "\033[31m"
		case LevelFatal:
			color = "\033[35m"
		}
		reset = "\033[0m"
	}

	l.mu.Lock()
	fmt.Fprintf(l.out, "%s[%s] %s %s%s\n", color, level, timestamp, msg, reset)
	l.mu.Unlock()
}

// Методы для разных уровней
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(LevelDebug, format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.log(LevelInfo, format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(LevelWarn, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.log(LevelError, format, v...)
}

func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log(LevelFatal, format, v...)
	l.Close()
	os.Exit(1)
}

// Status печатает блок со статусом (конфигурация при старте и т.п.)
func (l *Logger) Status(title string, stats map[string]string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.out, strings.Repeat("─", 50))
	fmt.Fprintln(l.out, title)
	for key, value := range stats {
		fmt.Fprintf(l.out, "   %-22s: %s\n", key, value)
	}
	fmt.Fprintln(l.out, strings.Repeat("─", 50))
}

func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
		l.logFile = nil
	}
}
