package telemetry

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrapRedactingJobNamesTruncatesLongNames(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(WrapRedactingJobNames(core))

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	l.Info("job dispatched", zap.String("job_name", string(long)))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	got, _ := entries[0].ContextMap()["job_name"].(string)
	if want := string(long[:61]) + "..."; got != want {
		t.Fatalf("job_name = %q (len %d), want the %d-character truncation", got, len(got), len(want))
	}
}

func TestNewBuildsLogger(t *testing.T) {
	l, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNameRedactingCoreCheck(t *testing.T) {
	core := &nameRedactingCore{Core: zapcore.NewNopCore()}
	ce := core.Check(zapcore.Entry{Level: zapcore.InfoLevel}, nil)
	_ = ce // NopCore is never enabled; this exercises the Check path without asserting a specific core policy
}
