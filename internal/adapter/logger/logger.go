package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Logger interface {
	Info(action, message, requestID string, details map[string]interface{})
	Debug(action, message, requestID string, details map[string]interface{})
	Error(action, message, requestID string, details map[string]interface{}, err error)
}

var levels = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"ERROR": 2,
}

type jsonLogger struct {
	service  string
	hostname string
	minLevel int
	out      io.Writer
	mu       sync.Mutex
}

// New writes DEBUG and above to stdout.
func New(service string) Logger {
	return NewWithWriter(service, "debug", os.Stdout)
}

// NewWithWriter writes entries at or above level (debug, info, error) to w.
// Unknown levels fall back to debug.
func NewWithWriter(service, level string, w io.Writer) Logger {
	hostname, _ := os.Hostname()
	return &jsonLogger{
		service:  service,
		hostname: hostname,
		minLevel: levels[strings.ToUpper(level)],
		out:      w,
	}
}

func (l *jsonLogger) Info(action, message, requestID string, details map[string]interface{}) {
	l.log("INFO", action, message, requestID, details, nil)
}

func (l *jsonLogger) Debug(action, message, requestID string, details map[string]interface{}) {
	l.log("DEBUG", action, message, requestID, details, nil)
}

func (l *jsonLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
	l.log("ERROR", action, message, requestID, details, err)
}

func (l *jsonLogger) log(level, action, message, requestID string, details map[string]interface{}, err error) {
	if levels[level] < l.minLevel {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Service:   l.service,
		Hostname:  l.hostname,
		RequestID: requestID,
		Action:    action,
		Message:   message,
		Details:   details,
	}

	if err != nil {
		entry.Error = &ErrorInfo{
			Msg:   err.Error(),
			Stack: err.Error(),
		}
	}

	json.NewEncoder(l.out).Encode(entry)
}
