// Package logger writes one JSON object per line with a level, a message
// and key/value fields. Credentials and email addresses in field values
// are masked unless redaction is switched off.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level is a log severity.
type Level int32

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int32(l))
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a
// Level, ignoring case. Anything else is INFO.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	}
	return INFO
}

// Logger is safe for concurrent use.
type Logger struct {
	level  atomic.Int32
	redact atomic.Bool

	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

func newLogger() *Logger {
	l := &Logger{out: os.Stderr, now: time.Now}
	l.level.Store(int32(INFO))
	l.redact.Store(true)
	return l
}

var std = newLogger()

// SetLevel sets the minimum level written by the package logger.
func SetLevel(l Level) { std.level.Store(int32(l)) }

// SetRedact switches masking of credentials and emails on or off.
func SetRedact(on bool) { std.redact.Store(on) }

// SetOutput redirects the package logger; nil restores stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	std.mu.Lock()
	std.out = w
	std.mu.Unlock()
}

func Debug(msg string, fields ...interface{}) { std.write(DEBUG, msg, fields) }
func Info(msg string, fields ...interface{})  { std.write(INFO, msg, fields) }
func Warn(msg string, fields ...interface{})  { std.write(WARN, msg, fields) }
func Error(msg string, fields ...interface{}) { std.write(ERROR, msg, fields) }

// missingValue marks a trailing key that had no value.
const missingValue = "(MISSING)"

func (l *Logger) write(level Level, msg string, fields []interface{}) {
	if int32(level) < l.level.Load() {
		return
	}
	redact := l.redact.Load()

	entry := make(map[string]interface{}, 3+len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch key {
		case "time", "level", "msg":
			key = "field." + key
		}
		var val interface{} = missingValue
		if i+1 < len(fields) {
			val = jsonValue(fields[i+1])
		}
		if s, ok := val.(string); ok && redact {
			val = maskField(key, s)
		}
		entry[key] = val
	}
	entry["time"] = l.now().UTC().Format(time.RFC3339)
	entry["level"] = level.String()
	entry["msg"] = msg

	line, err := json.Marshal(entry)
	if err != nil {
		line = []byte(fmt.Sprintf(`{"level":"ERROR","msg":"log encode failed","error":%q}`, err.Error()))
	}
	line = append(line, '\n')

	l.mu.Lock()
	l.out.Write(line)
	l.mu.Unlock()
}

// jsonValue keeps scalars typed and stringifies everything else.
func jsonValue(v interface{}) interface{} {
	switch x := v.(type) {
	case nil:
		return nil
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return x
	case error:
		return x.Error()
	case time.Duration:
		return x.String()
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("%+v", v)
}
