package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestEnsureSelectionIDIsStable(t *testing.T) {
	ctx, id := EnsureSelectionID(context.Background())
	if id == "" {
		t.Fatalf("expected a selection id")
	}
	ctx2, id2 := EnsureSelectionID(ctx)
	if id2 != id {
		t.Fatalf("selection id changed: %q -> %q", id, id2)
	}
	if got := SelectionIDFromContext(ctx2); got != id {
		t.Fatalf("SelectionIDFromContext = %q, want %q", got, id)
	}
	if got := SelectionIDFromContext(context.Background()); got != "" {
		t.Fatalf("empty context returned %q", got)
	}
}

func TestWithSelectionLoggerAnnotatesJSON(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: "debug", Format: "json", Output: &buf})

	ctx, log := WithSelectionLogger(context.Background(), base)
	log.Debug(ctx, "selected", Float("power", 25), Error(errors.New("boom")))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["selection_id"] != SelectionIDFromContext(ctx) {
		t.Fatalf("selection_id = %v, want %q", entry["selection_id"], SelectionIDFromContext(ctx))
	}
	if entry["power"] != 25.0 {
		t.Fatalf("power = %v, want 25", entry["power"])
	}
	if entry["error"] != "boom" {
		t.Fatalf("error = %v, want boom", entry["error"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestNoopLogger(t *testing.T) {
	log := Noop().With(String("k", "v"))
	log.Error(context.Background(), "dropped")
	if _, ok := log.(noopLogger); !ok {
		t.Fatalf("Noop().With returned %T", log)
	}
}
