package logger

import (
	"bytes"
	"strings"
	"testing"
)

func withBuffer(t *testing.T, level LogLevel) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prevLevel, prevOut := defaultLogger.level, defaultLogger.output
	SetLogLevel(level)
	SetOutput(buf)
	t.Cleanup(func() {
		defaultLogger.level = prevLevel
		defaultLogger.output = prevOut
	})
	return buf
}

func TestLevelFiltering(t *testing.T) {
	buf := withBuffer(t, LogLevelWarn)

	Debug("debug line")
	Info("info line")
	Warn("warn line")
	Error("error line")

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("output contains filtered lines: %q", out)
	}
	if !strings.Contains(out, "WARN: warn line") {
		t.Errorf("output missing warn line: %q", out)
	}
	if !strings.Contains(out, "ERROR: error line") {
		t.Errorf("output missing error line: %q", out)
	}
}

func TestRedactMessages(t *testing.T) {
	tests := []struct {
		name  string
		level LogLevel
		input string
		want  string
	}{
		{"quoted", LogLevelInfo, `encoded message="top secret" into RuSt`, `encoded message=*** into RuSt`},
		{"bare", LogLevelInfo, `message=hidden type=RuSt`, `message=*** type=RuSt`},
		{"no message", LogLevelInfo, `wrote 120 bytes`, `wrote 120 bytes`},
		{"debug keeps text", LogLevelDebug, `message="top secret"`, `message="top secret"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := withBuffer(t, tt.level)
			Info("%s", tt.input)
			if !strings.HasSuffix(strings.TrimSpace(buf.String()), tt.want) {
				t.Errorf("log = %q, want suffix %q", buf.String(), tt.want)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LogLevelDebug, false},
		{"INFO", LogLevelInfo, false},
		{" warn ", LogLevelWarn, false},
		{"silent", LogLevelSilent, false},
		{"verbose", LogLevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
