package observe

import (
	"github.com/prometheus/client_golang/prometheus"

	"terragen/internal/core"
)

// Outcome labels used on the generations counter.
const (
	OutcomeOK         = "ok"
	OutcomeDegenerate = "degenerate"
	OutcomeInvalid    = "invalid"
)

// Metrics collects generation metrics on a private registry. It implements
// core.Observer and is safe for concurrent use.
type Metrics struct {
	registry *prometheus.Registry

	generations *prometheus.CounterVec
	stages      *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	cells       *prometheus.CounterVec
}

// NewMetrics creates the collectors under namespace and registers them on a
// fresh registry.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	generations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Total number of heightmap generations by outcome",
		},
		[]string{"generator", "outcome"},
	)

	stages := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_events_total",
			Help:      "Total number of pipeline stage events",
		},
		[]string{"generator", "stage"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time of a single Generate call in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		},
		[]string{"generator"},
	)

	cells := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_generated_total",
			Help:      "Total number of heightmap cells produced",
		},
		[]string{"generator"},
	)

	registry.MustRegister(generations, stages, duration, cells)

	return &Metrics{
		registry:    registry,
		generations: generations,
		stages:      stages,
		duration:    duration,
		cells:       cells,
	}
}

// Observe records e.
func (m *Metrics) Observe(e core.Event) {
	m.stages.WithLabelValues(e.Generator, string(e.Stage)).Inc()
	if e.Stage != core.StageDone {
		return
	}
	outcome := OutcomeOK
	if e.Degenerate {
		outcome = OutcomeDegenerate
	}
	m.generations.WithLabelValues(e.Generator, outcome).Inc()
	m.duration.WithLabelValues(e.Generator).Observe(e.Elapsed.Seconds())
	m.cells.WithLabelValues(e.Generator).Add(float64(e.Count))
}

// RecordInvalid counts a generator that could not be constructed.
func (m *Metrics) RecordInvalid(generator string) {
	m.generations.WithLabelValues(generator, OutcomeInvalid).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes the current metrics in the text exposition format,
// suitable for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
