package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	app "github.com/okian/ctcpredict/internal/app"
	"github.com/okian/ctcpredict/internal/config"
	"github.com/okian/ctcpredict/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given a service started with the bundled model", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		svc := app.New(app.WithModelPath("../models/ctc_model.json"))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := httptest.NewServer(newMux(ctx, svc, cfg))
		defer srv.Close()

		get := func(path string) *http.Response {
			resp, err := http.Get(srv.URL + path)
			convey.So(err, convey.ShouldBeNil)
			return resp
		}

		convey.Convey("When fetching every registered route", func() {
			for _, path := range []string{"/", "/options", "/stats", "/healthz", "/openapi.yaml", "/api-docs"} {
				resp := get(path)
				_ = resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("When posting a candidate", func() {
			body := `{"education":"Grad","passing_year_graduation":2016,"inhand_offer":"Y","current_ctc":600000}`
			resp, err := http.Post(srv.URL+"/predict", "application/json", strings.NewReader(body))
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			convey.Convey("Then a prediction is returned", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When posting an unknown category", func() {
			resp, err := http.Post(srv.URL+"/predict", "application/json", strings.NewReader(`{"education":"Postdoc"}`))
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			convey.Convey("Then the failure is reported as a server error", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestSystemMetricsUpdater(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("When updating once", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("When its context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx)
				close(done)
			}()
			cancel()

			convey.Convey("Then it returns promptly", func() {
				select {
				case <-done:
				case <-time.After(time.Second):
					t.Fatal("metrics updater did not stop")
				}
			})
		})
	})
}
