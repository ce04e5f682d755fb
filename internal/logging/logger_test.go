package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriterLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := WriterLogger{W: &buf}

	logger.Debugf("hidden %d", 1)
	logger.Infof("info %s", "line")
	logger.Warnf("warn line")
	logger.Errorf("error line")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Debug output should be suppressed when Debug is false")
	}
	for _, want := range []string{"INFO  info line", "WARN  warn line", "ERROR error line"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestWriterLoggerDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := WriterLogger{W: &buf, Debug: true}
	logger.Debugf("visible")
	if !strings.Contains(buf.String(), "DEBUG visible") {
		t.Errorf("Debug output should appear when enabled")
	}
}
