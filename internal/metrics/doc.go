// Package metrics records generation run metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics
// cost nothing unless enabled:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	gen := pipeline.NewGenerator(cfg, pipeline.WithRecorder(rec))
//	defer rec.WriteTextfile(path)
//
// The Prometheus recorder is flushed after each run to a node-exporter
// textfile collector file with WriteTextfile.
package metrics
