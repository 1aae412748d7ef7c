package perf

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestStartSpanRecordsFinishedSpans(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	ctx, parent := StartSpan(context.Background(), "parent", attribute.Float64("threshold", 70))
	_, child := StartSpan(ctx, "child")
	child.End()
	parent.End()

	spans := GetSpans()
	require.Len(t, spans, 2)

	childSpan, ok := FindSpanByName(spans, "child")
	require.True(t, ok)
	parentSpan, ok := FindSpanByName(spans, "parent")
	require.True(t, ok)

	assert.Equal(t, parentSpan.SpanID, childSpan.ParentSpanID)
	assert.Equal(t, parentSpan.TraceID, childSpan.TraceID)
	assert.Empty(t, parentSpan.ParentSpanID)
	assert.Equal(t, 70.0, parentSpan.Attributes["threshold"])
	assert.GreaterOrEqual(t, parentSpan.DurationNS, int64(0))
}

func TestUnfinishedSpansAreNotRecorded(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	_, span := StartSpan(context.Background(), "open")
	assert.Empty(t, GetSpans())
	span.End()
	assert.Len(t, GetSpans(), 1)
}

func TestStartSpanAcceptsNilContext(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	//nolint:staticcheck // exercising the nil guard
	ctx, span := StartSpan(nil, "nil-context")
	span.End()

	assert.NotNil(t, ctx)
	_, ok := FindSpanByName(GetSpans(), "nil-context")
	assert.True(t, ok)
}

func TestFindSpanByNameMissing(t *testing.T) {
	_, ok := FindSpanByName([]SpanSnapshot{{Name: "a"}}, "b")
	assert.False(t, ok)
}

func TestExportToFileWritesJSON(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	_, span := StartSpan(context.Background(), "exported")
	span.End()

	fs := afero.NewMemMapFs()
	path, err := ExportToFile(fs, "perf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("perf", "covgate-perf.json"), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	var decoded []SpanSnapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "exported", decoded[0].Name)
}

func TestExportToFileDefaultsToWorkingDirectory(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	fs := afero.NewMemMapFs()
	path, err := ExportToFile(fs, "")
	require.NoError(t, err)
	assert.Equal(t, "covgate-perf.json", path)

	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExportToFileReadOnlyFs(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	_, err := ExportToFile(fs, "perf")
	assert.Error(t, err)
}
