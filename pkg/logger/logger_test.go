package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNewWritesJSONWithContextFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "debug", Encoding: "json", Name: "taskspace", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithUsername(ctx, "sheraz")
	WithRequestID(ctx, log).Debug("hello")
	_ = log.Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("Expected one JSON line, got %q: %v", buf.String(), err)
	}
	for key, want := range map[string]string{
		"msg":        "hello",
		"app":        "taskspace",
		"request_id": "req-1",
		"username":   "sheraz",
	} {
		if entry[key] != want {
			t.Errorf("Expected %s=%q, got %v", key, want, entry[key])
		}
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Errorf("Expected timestamp key")
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(Config{Level: "loud", Output: &buf})
	log.Debug("hidden")
	log.Info("shown")
	_ = log.Sync()
	if bytes.Contains(buf.Bytes(), []byte("hidden")) || !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestRequestID(t *testing.T) {
	if RequestID(context.Background()) != "" {
		t.Errorf("Expected empty request id")
	}
	if got := RequestID(ContextWithRequestID(context.Background(), "abc")); got != "abc" {
		t.Errorf("Expected abc, got %s", got)
	}
}
