package observability

import (
	"testing"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipMirroredLog(t *testing.T) {
	if !shouldSkipMirroredLog("http request", map[string]any{"path": "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipMirroredLog("http request", map[string]any{"path": "/v1/matches"}) {
		t.Fatalf("did not expect non-health log to be skipped")
	}
	if shouldSkipMirroredLog("match center request failed", map[string]any{"path": "/healthz"}) {
		t.Fatalf("did not expect non-request event to be skipped")
	}
}

func TestBuildOTelLogAttributes_SortedKeys(t *testing.T) {
	attrs := buildOTelLogAttributes(map[string]any{
		"records": int64(12),
		"date":    "06/15/2024",
		"failed":  false,
	})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "date" || attrs[0].Value.AsString() != "06/15/2024" {
		t.Fatalf("unexpected date attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "failed" || attrs[1].Value.AsBool() {
		t.Fatalf("unexpected failed attribute: %+v", attrs[1])
	}
	if attrs[2].Key != "records" || attrs[2].Value.AsInt64() != 12 {
		t.Fatalf("unexpected records attribute: %+v", attrs[2])
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"home_score": "2",
		"is_live":    true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	if items := v.AsMap(); len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}
}

func TestOTelLogCore_RespectsLevelAndFields(t *testing.T) {
	core := newOTelLogCore("test", zapcore.WarnLevel)
	if core.Enabled(zapcore.InfoLevel) {
		t.Fatalf("info must be below the mirror level")
	}
	if !core.Enabled(zapcore.ErrorLevel) {
		t.Fatalf("error must be mirrored")
	}

	child := core.With([]zapcore.Field{zap.String("component", "yallakora")})
	if got := len(child.(*otelLogCore).fields); got != 1 {
		t.Fatalf("expected 1 bound field, got %d", got)
	}
	if got := len(core.(*otelLogCore).fields); got != 0 {
		t.Fatalf("With must not mutate the parent core, got %d fields", got)
	}
	if err := child.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "fetch failed"}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
}
