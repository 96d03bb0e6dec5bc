package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	app "github.com/okian/cageside/internal/app"
	"github.com/okian/cageside/internal/config"
	"github.com/okian/cageside/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

const fixtureCSV = `fighter,n_win,n_loss,Stance
Alex Pereira,12,3,Orthodox
Magomed Ankalaev,21,1,Orthodox
`

func testService(t *testing.T) *app.Service {
	dir := t.TempDir()
	path := filepath.Join(dir, "fighters.csv")
	if err := os.WriteFile(path, []byte(fixtureCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := config.New()
	cfg.DataDir = dir
	cfg.ModelPath = ""
	cfg.RefreshIntervalSeconds = 0

	svc, err := app.FromConfig(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestNewHTTPServer(t *testing.T) {
	convey.Convey("Given a started service", t, func() {
		svc := testService(t)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := newHTTPServer(":0", svc)

		convey.Convey("Then the server carries the configured timeouts", func() {
			convey.So(srv.ReadTimeout, convey.ShouldEqual, readTimeout)
			convey.So(srv.WriteTimeout, convey.ShouldEqual, writeTimeout)
			convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
		})

		convey.Convey("Then the routes are served", func() {
			ts := httptest.NewServer(srv.Handler)
			defer ts.Close()

			resp, err := http.Get(ts.URL + "/healthz")
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

			resp, err = http.Get(ts.URL + "/openapi.yaml")
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

			resp, err = http.Get(ts.URL + "/fighters")
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

			// No model configured.
			resp, err = http.Get(ts.URL + "/predict?blue=pereira&red=ankalaev")
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When running the system metrics updater until cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startSystemMetricsUpdater(ctx)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When running the service metrics updater until cancelled", func() {
			svc := app.New()
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startServiceMetricsUpdater(ctx, svc)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When updating metrics directly", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)

			svc := testService(t)
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			defer svc.Stop()
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})
	})
}
