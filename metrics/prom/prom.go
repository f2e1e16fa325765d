// Package prom adapts cache access signals to Prometheus metrics.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fuad-daoud/discord-state/cache"
)

// Adapter implements cache.Metrics on top of Prometheus counters. All
// Prometheus metric types are goroutine-safe, so the adapter is too.
type Adapter struct {
	hits   prometheus.Counter
	misses prometheus.Counter
	evicts prometheus.Counter
}

// New constructs a Prometheus metrics adapter and registers its
// collectors. A nil reg falls back to prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Cache hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Cache misses",
			ConstLabels: constLabels,
		}),
		evicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "evictions_total",
			Help:        "Entries evicted from the bounded stores",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts)
	return a
}

func (a *Adapter) Hit()   { a.hits.Inc() }
func (a *Adapter) Miss()  { a.misses.Inc() }
func (a *Adapter) Evict() { a.evicts.Inc() }

var _ cache.Metrics = (*Adapter)(nil)

// StatsSource is anything that can take a census of resident entries.
// *cache.Caches satisfies it.
type StatsSource interface {
	Stats() cache.Stats
}

// StatsCollector exports a gauge of resident entries per store, taking a
// fresh census on every scrape.
type StatsCollector struct {
	src     StatsSource
	entries *prometheus.Desc
}

// NewStatsCollector builds a collector over src. Register it yourself;
// scrape cost is one census per Collect.
func NewStatsCollector(src StatsSource, ns, sub string, constLabels prometheus.Labels) *StatsCollector {
	return &StatsCollector{
		src: src,
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(ns, sub, "entries"),
			"Resident entries per store",
			[]string{"store"},
			constLabels,
		),
	}
}

func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
}

func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.src.Stats()
	for store, count := range map[string]int{
		"users":          stats.Users,
		"guilds":         stats.Guilds,
		"members":        stats.Members,
		"voice_states":   stats.VoiceStates,
		"roles":          stats.Roles,
		"emojis":         stats.Emojis,
		"guild_channels": stats.GuildChannels,
		"dm_channels":    stats.DMChannels,
		"messages":       stats.Messages,
	} {
		ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(count), store)
	}
}

var _ prometheus.Collector = (*StatsCollector)(nil)
