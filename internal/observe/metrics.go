// Package observe provides the service's OpenTelemetry metrics and the
// Prometheus bridge that exposes them on /metrics.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/rushikesh-shinde-pyd/PokemonBattle"

// Metrics holds the metric instruments. All fields are safe for concurrent
// use.
type Metrics struct {
	// BattlesCreated counts battles accepted by the API.
	BattlesCreated metric.Int64Counter

	// BattlesFinished counts battles reaching a terminal state. Use with
	// attribute.String("status", ...).
	BattlesFinished metric.Int64Counter

	// ResolutionDuration tracks wall-clock time from runner start to commit.
	ResolutionDuration metric.Float64Histogram

	// ActiveBattles tracks battles currently being resolved.
	ActiveBattles metric.Int64UpDownCounter

	// CacheLookups counts listing cache lookups. Use with
	// attribute.String("result", "hit"|"miss").
	CacheLookups metric.Int64Counter
}

// Battles take a few seconds; buckets cover that range.
var resolutionBuckets = []float64{0.1, 0.5, 1, 2, 4, 6, 8, 10, 15, 30}

// NewMetrics creates the instruments on the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.BattlesCreated, err = m.Int64Counter("pokemon.battles.created",
		metric.WithDescription("Total battles accepted."),
	); err != nil {
		return nil, err
	}
	if met.BattlesFinished, err = m.Int64Counter("pokemon.battles.finished",
		metric.WithDescription("Total battles reaching a terminal state, by status."),
	); err != nil {
		return nil, err
	}
	if met.ResolutionDuration, err = m.Float64Histogram("pokemon.battle.resolution.duration",
		metric.WithDescription("Time taken to resolve a battle."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(resolutionBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ActiveBattles, err = m.Int64UpDownCounter("pokemon.battles.active",
		metric.WithDescription("Battles currently being resolved."),
	); err != nil {
		return nil, err
	}
	if met.CacheLookups, err = m.Int64Counter("pokemon.cache.lookups",
		metric.WithDescription("Listing cache lookups by result."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level instance built on the global
// meter provider.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordBattleFinished records a terminal battle and its resolution time.
func (m *Metrics) RecordBattleFinished(ctx context.Context, status string, d time.Duration) {
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.BattlesFinished.Add(ctx, 1, attrs)
	m.ResolutionDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordCacheLookup records a listing cache hit or miss.
func (m *Metrics) RecordCacheLookup(ctx context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
