package logging

import (
	"bytes"
	"io"
	"strconv"
	"sync"
	"time"
)

type LogWriter interface {
	Write(entity *LogEntity)
}

type ConsoleLogWriter struct {
	mu     sync.Mutex
	writer io.Writer
}

func NewConsoleLogWriter(writer io.Writer) LogWriter {
	return &ConsoleLogWriter{writer: writer}
}

func (w *ConsoleLogWriter) Write(entity *LogEntity) {
	var builder bytes.Buffer
	builder.WriteString(entity.Timestamp.Format(time.RFC3339))
	builder.WriteRune(' ')
	builder.WriteString(LogLevelPrefixMap[entity.Level])
	builder.WriteString("[gr-")
	builder.WriteString(strconv.FormatInt(entity.GoroutineID, 10))
	builder.WriteRune(']')
	if entity.Prefix != "" {
		builder.WriteRune('[')
		builder.WriteString(entity.Prefix)
		builder.WriteRune(']')
	}
	builder.WriteRune(' ')
	builder.WriteString(entity.Message)
	builder.WriteRune('\n')
	w.mu.Lock()
	w.writer.Write(builder.Bytes())
	w.mu.Unlock()
}

type NoopWriter struct{}

func NewNoopWriter() LogWriter {
	return NoopWriter{}
}

func (w NoopWriter) Write(entity *LogEntity) {}
