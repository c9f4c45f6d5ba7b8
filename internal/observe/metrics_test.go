package observe

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func findMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) *metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestRecordBattleFinished(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()
	m.RecordBattleFinished(ctx, "resolved", 6*time.Second)
	m.RecordBattleFinished(ctx, "failed", 3*time.Second)
	m.RecordBattleFinished(ctx, "resolved", 6*time.Second)

	got := findMetric(t, reader, "pokemon.battles.finished")
	if got == nil {
		t.Fatal("pokemon.battles.finished not found")
	}
	sum, ok := got.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("unexpected data type %T", got.Data)
	}
	counts := map[string]int64{}
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value("status")
		counts[v.AsString()] = dp.Value
	}
	if counts["resolved"] != 2 || counts["failed"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	hist := findMetric(t, reader, "pokemon.battle.resolution.duration")
	if hist == nil {
		t.Fatal("resolution duration histogram not found")
	}
	h, ok := hist.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("unexpected data type %T", hist.Data)
	}
	var total uint64
	for _, dp := range h.DataPoints {
		total += dp.Count
	}
	if total != 3 {
		t.Fatalf("expected 3 observations, got %d", total)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()
	m.RecordCacheLookup(ctx, true)
	m.RecordCacheLookup(ctx, false)
	m.RecordCacheLookup(ctx, false)

	got := findMetric(t, reader, "pokemon.cache.lookups")
	if got == nil {
		t.Fatal("pokemon.cache.lookups not found")
	}
	sum := got.Data.(metricdata.Sum[int64])
	counts := map[string]int64{}
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value("result")
		counts[v.AsString()] = dp.Value
	}
	if counts["hit"] != 1 || counts["miss"] != 2 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
