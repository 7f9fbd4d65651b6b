package diag

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSinkCollectsAndLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := NewSink(zap.New(core))

	s.Warnf("macro", "import path %q does not exist", "std/nope")
	s.WarnAt("parser", 3, "unknown metadata key %q", "colour")

	ws := s.Warnings()
	if len(ws) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(ws))
	}
	if got := ws[0].String(); got != `macro: import path "std/nope" does not exist` {
		t.Errorf("unexpected warning text: %s", got)
	}
	if got := ws[1].String(); got != `parser: line 3: unknown metadata key "colour"` {
		t.Errorf("unexpected warning text: %s", got)
	}

	if logs.Len() != 2 {
		t.Fatalf("expected 2 log entries, got %d", logs.Len())
	}
	entry := logs.All()[1]
	if entry.ContextMap()["line"] != int64(3) {
		t.Errorf("expected line field 3, got %v", entry.ContextMap()["line"])
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	s := NewSink(nil)
	s.Warnf("lexer", "x")
	if len(s.Warnings()) != 1 {
		t.Errorf("warning not retained")
	}
}
