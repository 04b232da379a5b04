package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

type poolStat struct {
	desc  *prometheus.Desc
	value func(*pgxpool.Stat) float64
}

func newPoolStat(name, help string, value func(*pgxpool.Stat) float64) poolStat {
	return poolStat{
		desc:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "pgxpool", name), help, []string{"pool"}, nil),
		value: value,
	}
}

// PoolCollector exports pgxpool statistics, read from Stat() on each scrape.
type PoolCollector struct {
	pools map[string]*pgxpool.Pool
	stats []poolStat
}

// NewPoolCollector creates a collector labelling each pool by its map key.
func NewPoolCollector(pools map[string]*pgxpool.Pool) *PoolCollector {
	return &PoolCollector{
		pools: pools,
		stats: []poolStat{
			newPoolStat("acquire_count", "Cumulative count of successful connection acquires.",
				func(s *pgxpool.Stat) float64 { return float64(s.AcquireCount()) }),
			newPoolStat("acquire_duration_seconds", "Cumulative time spent acquiring connections.",
				func(s *pgxpool.Stat) float64 { return s.AcquireDuration().Seconds() }),
			newPoolStat("acquired_conns", "Number of currently acquired connections.",
				func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }),
			newPoolStat("canceled_acquire_count", "Cumulative count of acquires canceled by context.",
				func(s *pgxpool.Stat) float64 { return float64(s.CanceledAcquireCount()) }),
			newPoolStat("empty_acquire_count", "Cumulative count of acquires that had to wait for a connection.",
				func(s *pgxpool.Stat) float64 { return float64(s.EmptyAcquireCount()) }),
			newPoolStat("idle_conns", "Number of idle connections in the pool.",
				func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }),
			newPoolStat("max_conns", "Maximum number of connections allowed.",
				func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) }),
			newPoolStat("new_conns_count", "Cumulative count of new connections opened.",
				func(s *pgxpool.Stat) float64 { return float64(s.NewConnsCount()) }),
			newPoolStat("total_conns", "Total number of connections in the pool.",
				func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }),
		},
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, s := range c.stats {
		ch <- s.desc
	}
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	for name, pool := range c.pools {
		stat := pool.Stat()
		for _, s := range c.stats {
			ch <- prometheus.MustNewConstMetric(s.desc, prometheus.GaugeValue, s.value(stat), name)
		}
	}
}
