package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test"),
			WithSubsystem("unit"),
			WithHistogramBuckets([]float64{1, 10, 100}),
			WithRefreshInterval(3*time.Second),
			WithCustomLabels(map[string]string{"env": "test"}),
			WithPrometheusRegistry(registry),
		)

		Convey("Then options are applied", func() {
			So(m.namespace, ShouldEqual, "test")
			So(m.subsystem, ShouldEqual, "unit")
			So(m.histogramBuckets, ShouldResemble, []float64{1, 10, 100})
			So(m.RefreshInterval(), ShouldEqual, 3*time.Second)
		})

		Convey("Then metrics carry the namespace and constant labels", func() {
			m.predictions.WithLabelValues("blue").Inc()
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			found := false
			for _, f := range families {
				if f.GetName() == "test_unit_predictions_total" {
					found = true
					So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
				}
			}
			So(found, ShouldBeTrue)
		})
	})

	Convey("Given invalid option values", t, func() {
		m := NewManager(
			WithNamespace(""),
			WithHistogramBuckets(nil),
			WithRefreshInterval(-time.Second),
			WithPrometheusRegistry(prometheus.NewRegistry()),
		)

		Convey("Then defaults are kept", func() {
			So(m.namespace, ShouldEqual, "cageside")
			So(m.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			So(m.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When predictions are recorded", func() {
			before := value(globalManager.predictions.WithLabelValues("red"))
			RecordPrediction("red")
			RecordPrediction("red")

			So(value(globalManager.predictions.WithLabelValues("red")), ShouldEqual, before+2)
		})

		Convey("When resolver outcomes are recorded", func() {
			before := value(globalManager.resolverMatches.WithLabelValues("fuzzy"))
			RecordResolverMatch("fuzzy")
			RecordResolverMiss()

			So(value(globalManager.resolverMatches.WithLabelValues("fuzzy")), ShouldEqual, before+1)
		})

		Convey("When snapshot gauges are updated", func() {
			UpdateSnapshotRecords(4242)
			UpdateSnapshotLastUnix(1700000000)

			So(value(globalManager.snapshotRecords), ShouldEqual, 4242)
			So(value(globalManager.snapshotLastUnix), ShouldEqual, 1700000000)
		})

		Convey("When every recorder is called", func() {
			So(func() {
				RecordPredictionLatency(12)
				RecordCardBouts(5)
				RecordClassifierError("logistic")
				RecordSnapshotReloadDuration(3)
				IncrementSnapshotCount()
				RecordSnapshotReloadError()
				RecordSnapshotRejected(2)
				RecordHTTPRequest("predict", "GET", "200")
				RecordHTTPRequestDuration("predict", "GET", "200", 4)
				RecordErrorByComponent("repository", "reload")
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("predict", "GET", "not_found")
				RecordErrorLatency("http", "not_found", 1)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("Then the registry exposes the metrics", func() {
			RecordHTTPRequest("healthz", "GET", "200")
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			var names []string
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(strings.Join(names, ","), ShouldContainSubstring, "cageside_predictor_http_requests_total")
		})
	})
}

func value(c prometheus.Metric) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return -1
	}
	switch {
	case m.Counter != nil:
		return m.Counter.GetValue()
	case m.Gauge != nil:
		return m.Gauge.GetValue()
	}
	return -1
}
