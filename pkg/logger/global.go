// pkg/logger/global.go
package logger

import (
	"os"
)

var globalLogger = &Logger{out: os.Stdout, logLevel: LevelInfo}

// InitGlobal заменяет глобальный логгер. До вызова пишем в stdout с уровнем INFO.
func InitGlobal(logPath, logLevel string, color bool) error {
	l, err := NewLogger(logPath, logLevel, color)
	if err != nil {
		return err
	}
	globalLogger = l
	return nil
}

// SetGlobal подменяет глобальный логгер (используется в тестах)
func SetGlobal(l *Logger) {
	if l != nil {
		globalLogger = l
	}
}

func GetLogger() *Logger {
	return globalLogger
}

// Глобальные методы для удобства
func Debug(format string, v ...interface{}) {
	globalLogger.Debug(format, v...)
}

func Info(format string, v ...interface{}) {
	globalLogger.Info(format, v...)
}

func Warn(format string, v ...interface{}) {
	globalLogger.Warn(format, v...)
}

func Error(format string, v ...interface{}) {
	globalLogger.Error(format, v...)
}

func Fatal(format string, v ...interface{}) {
	globalLogger.Fatal(format, v...)
}

func Close() {
	globalLogger.Close()
}
