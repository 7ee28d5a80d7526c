package logger

import (
	"log"
	"os"
)

// Logger is the structured logging surface used across the service. Fields
// are alternating key/value pairs.
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, err error, fields ...interface{})
}

// SimpleLogger implements Logger on top of the standard log package, one
// underlying logger per level so streams and prefixes can differ.
type SimpleLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	warnLogger  *log.Logger
	debugLogger *log.Logger
}

// NewSimpleLogger creates a logger writing info/warn/debug to stdout and
// errors to stderr.
func NewSimpleLogger() Logger {
	return &SimpleLogger{
		infoLogger:  log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile),
		errorLogger: log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
		warnLogger:  log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile),
		debugLogger: log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

func (l *SimpleLogger) Info(msg string, fields ...interface{}) {
	l.print(l.infoLogger, msg, fields)
}

func (l *SimpleLogger) Error(msg string, err error, fields ...interface{}) {
	if len(fields) > 0 {
		l.errorLogger.Printf("%s: %v %v", msg, err, fields)
	} else {
		l.errorLogger.Printf("%s: %v", msg, err)
	}
}

func (l *SimpleLogger) Warn(msg string, fields ...interface{}) {
	l.print(l.warnLogger, msg, fields)
}

func (l *SimpleLogger) Debug(msg string, fields ...interface{}) {
	l.print(l.debugLogger, msg, fields)
}

// Fatal logs the error and exits the process.
func (l *SimpleLogger) Fatal(msg string, err error, fields ...interface{}) {
	if len(fields) > 0 {
		l.errorLogger.Fatalf("%s: %v %v", msg, err, fields)
	} else {
		l.errorLogger.Fatalf("%s: %v", msg, err)
	}
}

func (l *SimpleLogger) print(lg *log.Logger, msg string, fields []interface{}) {
	if len(fields) > 0 {
		lg.Printf("%s %v", msg, fields)
		return
	}
	lg.Print(msg)
}

// NopLogger discards everything. Used in tests to keep output quiet.
type NopLogger struct{}

// NewNopLogger returns a logger that drops all messages.
func NewNopLogger() Logger {
	return NopLogger{}
}

func (NopLogger) Info(msg string, fields ...interface{})             {}
func (NopLogger) Error(msg string, err error, fields ...interface{}) {}
func (NopLogger) Warn(msg string, fields ...interface{})             {}
func (NopLogger) Debug(msg string, fields ...interface{})            {}
func (NopLogger) Fatal(msg string, err error, fields ...interface{}) {}
