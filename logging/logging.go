package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/petermattis/goid"
)

const (
	TRACE = iota
	DEBUG
	INFO
	WARN
	ERROR
	FATAL

	pTrace = "[TRACE]"
	pDebug = "[DEBUG]"
	pInfo  = "[INFO]"
	pWarn  = "[WARN]"
	pError = "[ERROR]"
	pFatal = "[FATAL]"
)

// LogAllWaterMark lets every level through.
const LogAllWaterMark = -1

var LogLevelPrefixMap = map[int]string{
	TRACE: pTrace,
	DEBUG: pDebug,
	INFO:  pInfo,
	WARN:  pWarn,
	ERROR: pError,
	FATAL: pFatal,
}

var logEntityPool sync.Pool

func init() {
	logEntityPool = sync.Pool{
		New: func() interface{} {
			return new(LogEntity)
		},
	}
}

type LogEntity struct {
	Level       int
	Prefix      string
	GoroutineID int64
	Timestamp   time.Time
	Message     string
}

func (e *LogEntity) recycle() {
	logEntityPool.Put(e)
}

func newLogEntity(level int, prefix string, message string) *LogEntity {
	entity := logEntityPool.Get().(*LogEntity)
	entity.Level = level
	entity.Prefix = prefix
	entity.GoroutineID = goid.Get()
	entity.Timestamp = time.Now()
	entity.Message = message
	return entity
}

type Logger interface {
	Trace(records ...string)
	Debug(records ...string)
	Info(records ...string)
	Warn(records ...string)
	Error(records ...string)
	Fatal(records ...string)

	Tracef(format string, records ...interface{})
	Debugf(format string, records ...interface{})
	Infof(format string, records ...interface{})
	Warnf(format string, records ...interface{})
	Errorf(format string, records ...interface{})
	Fatalf(format string, records ...interface{})

	Prefix(prefix string)
	SetWaterMark(waterMark int)
	WithPrefix(prefix string) Logger
}

var GlobalLogger Logger = CreateLevelLogger(NewConsoleLogWriter(os.Stdout), "", LogAllWaterMark)

func SetLogger(logger Logger) {
	GlobalLogger = logger
}

type LevelLogger struct {
	mu        sync.RWMutex
	writer    LogWriter
	prefix    string
	waterMark int
}

func StdOutLevelLogger(prefix string) Logger {
	return CreateLevelLogger(NewConsoleLogWriter(os.Stdout), prefix, LogAllWaterMark)
}

func CreateLevelLogger(writer LogWriter, prefix string, waterMark int) Logger {
	return &LevelLogger{
		writer:    writer,
		prefix:    prefix,
		waterMark: waterMark,
	}
}

func (l *LevelLogger) output(level int, data ...string) {
	l.mu.RLock()
	waterMark := l.waterMark
	prefix := l.prefix
	writer := l.writer
	l.mu.RUnlock()
	if level < waterMark {
		return
	}
	var message string
	switch len(data) {
	case 0:
		message = ""
	case 1:
		message = data[0]
	default:
		size := 0
		for _, record := range data {
			size += len(record)
		}
		builder := make([]byte, 0, size)
		for _, record := range data {
			builder = append(builder, record...)
		}
		message = string(builder)
	}
	entity := newLogEntity(level, prefix, message)
	writer.Write(entity)
	entity.recycle()
}

func (l *LevelLogger) outputf(level int, format string, records ...interface{}) {
	l.output(level, fmt.Sprintf(format, records...))
}

func (l *LevelLogger) Trace(records ...string) { l.output(TRACE, records...) }
func (l *LevelLogger) Debug(records ...string) { l.output(DEBUG, records...) }
func (l *LevelLogger) Info(records ...string)  { l.output(INFO, records...) }
func (l *LevelLogger) Warn(records ...string)  { l.output(WARN, records...) }
func (l *LevelLogger) Error(records ...string) { l.output(ERROR, records...) }
func (l *LevelLogger) Fatal(records ...string) { l.output(FATAL, records...) }

func (l *LevelLogger) Tracef(format string, records ...interface{}) {
	l.outputf(TRACE, format, records...)
}

func (l *LevelLogger) Debugf(format string, records ...interface{}) {
	l.outputf(DEBUG, format, records...)
}

func (l *LevelLogger) Infof(format string, records ...interface{}) {
	l.outputf(INFO, format, records...)
}

func (l *LevelLogger) Warnf(format string, records ...interface{}) {
	l.outputf(WARN, format, records...)
}

func (l *LevelLogger) Errorf(format string, records ...interface{}) {
	l.outputf(ERROR, format, records...)
}

func (l *LevelLogger) Fatalf(format string, records ...interface{}) {
	l.outputf(FATAL, format, records...)
}

func (l *LevelLogger) Prefix(prefix string) {
	l.mu.Lock()
	l.prefix = prefix
	l.mu.Unlock()
}

func (l *LevelLogger) SetWaterMark(waterMark int) {
	l.mu.Lock()
	l.waterMark = waterMark
	l.mu.Unlock()
}

func (l *LevelLogger) WithPrefix(prefix string) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return CreateLevelLogger(l.writer, prefix, l.waterMark)
}
