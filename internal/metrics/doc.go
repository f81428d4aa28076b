// Package metrics records build gate and engine run metrics.
//
// Components receive a Recorder and default to NoopRecorder, so nothing
// needs a nil check. When the CLI is given --metrics-file, a
// PrometheusRecorder backed by its own registry is injected instead and the
// registry is written out in the Prometheus text format on exit:
//
//	reg := prom.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	g := gate.New(fs, fp, store).WithRecorder(rec)
//	...
//	_ = metrics.WriteTextfile(path, reg)
package metrics
