package logger

import "testing"

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	in := []interface{}{"api_key", "s3cr3t", "coffee_id", "abc", "token", "", "dangling"}
	out := sanitizeKVs(in)

	if len(out) != len(in) {
		t.Fatalf("len: want=%d got=%d", len(in), len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("api_key: want redacted, got %v", out[1])
	}
	if out[3] != "abc" {
		t.Fatalf("coffee_id: want passthrough, got %v", out[3])
	}
	if out[5] != "" {
		t.Fatalf("empty token: want empty, got %v", out[5])
	}
	if out[6] != "dangling" {
		t.Fatalf("dangling key: want kept, got %v", out[6])
	}
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	log := Nop().With("service", "test")
	log.Debug("debug", "k", 1)
	log.Info("info")
	log.Warn("warn", "api_key", "x")
	log.Error("error", "error", "boom")
	log.Sync()
}
