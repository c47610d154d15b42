package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dlshle/promise/testutils"
)

func TestLevelLogger(t *testing.T) {
	testutils.NewGroup("logging", "").Cases(
		testutils.NewCase("writes level, prefix and goroutine tag", "", func() bool {
			var buf bytes.Buffer
			logger := CreateLevelLogger(NewConsoleLogWriter(&buf), "unit", LogAllWaterMark)
			logger.Infof("hello %s", "world")
			line := buf.String()
			return strings.Contains(line, "[INFO]") &&
				strings.Contains(line, "[unit]") &&
				strings.Contains(line, "[gr-") &&
				strings.Contains(line, "hello world")
		}),
		testutils.NewCase("watermark filters lower levels", "", func() bool {
			var buf bytes.Buffer
			logger := CreateLevelLogger(NewConsoleLogWriter(&buf), "unit", WARN)
			logger.Debug("quiet")
			logger.Info("quiet too")
			if buf.Len() != 0 {
				return false
			}
			logger.Error("loud")
			return strings.Contains(buf.String(), "loud")
		}),
		testutils.NewCase("multi-record message concatenation", "", func() bool {
			var buf bytes.Buffer
			logger := CreateLevelLogger(NewConsoleLogWriter(&buf), "", LogAllWaterMark)
			logger.Info("a", "b", "c")
			return strings.Contains(buf.String(), "abc")
		}),
		testutils.NewCase("derived logger keeps writer and watermark", "", func() bool {
			var buf bytes.Buffer
			logger := CreateLevelLogger(NewConsoleLogWriter(&buf), "parent", WARN)
			child := logger.WithPrefix("child")
			child.Info("filtered")
			child.Warn("kept")
			out := buf.String()
			return !strings.Contains(out, "filtered") &&
				strings.Contains(out, "[child]") &&
				strings.Contains(out, "kept")
		}),
		testutils.NewCase("noop writer swallows output", "", func() bool {
			logger := CreateLevelLogger(NewNoopWriter(), "", LogAllWaterMark)
			logger.Fatal("nothing to see")
			return true
		}),
	).Do(t)
}
