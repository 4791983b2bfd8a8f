// Package metrics counts what a generator run wrote and exports it in the
// Prometheus text format for node_exporter's textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rustyeddy/optfixture/fixture"
)

// Run holds the metrics of one generator run in a private registry.
type Run struct {
	reg      *prometheus.Registry
	Files    *prometheus.CounterVec
	Rows     prometheus.Counter
	Days     prometheus.Gauge
	Duration prometheus.Gauge
}

func NewRun() *Run {
	m := &Run{
		reg: prometheus.NewRegistry(),
		Files: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "optfixture_files_written_total", Help: "Minute files written"},
			[]string{"day"},
		),
		Rows: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "optfixture_rows_written_total", Help: "CSV data rows written"},
		),
		Days: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "optfixture_day_folders", Help: "Day folders completed by the last run"},
		),
		Duration: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "optfixture_run_duration_seconds", Help: "Wall time of the last run"},
		),
	}
	m.reg.MustRegister(m.Files, m.Rows, m.Days, m.Duration)
	return m
}

// RecordFile implements fixture.Recorder.
func (m *Run) RecordFile(f fixture.FileWritten) error {
	m.Files.WithLabelValues(f.Day).Inc()
	m.Rows.Add(float64(f.Rows))
	return nil
}

func (m *Run) Observe(s fixture.Summary) {
	m.Days.Set(float64(s.Days))
	m.Duration.Set(s.Elapsed.Seconds())
}

// WriteTextfile atomically replaces path with the current metric values.
func (m *Run) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
