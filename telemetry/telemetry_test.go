package telemetry_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/kestrel-ml/kestrel/telemetry"
)

func TestFromContextWithoutCollectorIsNoOp(t *testing.T) {
	collector := telemetry.FromContext(context.Background())

	// Must be safe to use without panicking.
	timer := collector.Start("anything")
	timer.Child("nested").End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	assert.Equal(t, "", buf.String())
}

func TestCollectorRoundTrip(t *testing.T) {
	collector := telemetry.NewTimingCollector()
	ctx := telemetry.WithCollector(context.Background(), collector)

	assert.True(t, telemetry.FromContext(ctx) == telemetry.Collector(collector))
}

func TestTimingReport(t *testing.T) {
	collector := telemetry.NewTimingCollector()

	root := collector.Start("check demo.ml")
	feed := collector.Start("feed")
	feed.End()
	diags := collector.Start("diagnostics")
	diags.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	assert.Equal(t, 3, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "check demo.ml: "))
	assert.True(t, strings.HasPrefix(lines[1], "├─ feed: "))
	assert.True(t, strings.HasPrefix(lines[2], "└─ diagnostics: "))
}

func TestTimersNestUnderTheOpenTimer(t *testing.T) {
	collector := telemetry.NewTimingCollector()

	root := collector.Start("root")
	outer := collector.Start("outer")
	inner := collector.Start("inner")
	inner.End()
	outer.End()
	// After outer ends, new timers are siblings of it, not children.
	sibling := collector.Start("sibling")
	sibling.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	out := buf.String()

	assert.Contains(t, out, "├─ outer: ")
	assert.Contains(t, out, "│  └─ inner: ")
	assert.Contains(t, out, "└─ sibling: ")
}

func TestChildTimer(t *testing.T) {
	collector := telemetry.NewTimingCollector()

	root := collector.Start("root")
	child := root.Child("child")
	child.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	assert.Contains(t, buf.String(), "└─ child: ")
}

func TestEmptyCollectorReportsNothing(t *testing.T) {
	var buf bytes.Buffer
	telemetry.NewTimingCollector().Report(&buf)
	assert.Equal(t, "", buf.String())
}
