package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/ctcpredict/internal/adapters/http/api"
	service "github.com/okian/ctcpredict/internal/app"
	"github.com/okian/ctcpredict/internal/domain/candidate"
	"github.com/okian/ctcpredict/internal/domain/estimator"
	"github.com/okian/ctcpredict/internal/domain/types"
	"github.com/okian/ctcpredict/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDependencies implements api.Dependencies.
type mockDependencies struct {
	ready   bool
	result  types.Prediction
	err     error
	calls   int
	lastReq candidate.Form
}

func (m *mockDependencies) Ready() bool { return m.ready }

func (m *mockDependencies) Predict(ctx context.Context, form candidate.Form) (types.Prediction, error) {
	m.calls++
	m.lastReq = form
	if m.err != nil {
		return types.Prediction{}, m.err
	}
	return m.result, nil
}

func (m *mockDependencies) Options(ctx context.Context) candidate.Options {
	return candidate.DefaultOptions()
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newDeps() *mockDependencies {
	rounded := int64(75000)
	return &mockDependencies{
		ready: true,
		result: types.Prediction{
			ID:      "p-1",
			CTC:     75000,
			Rounded: &rounded,
			Amount:  "Rs. 75,000",
			Message: "The estimated CTC to be provided is Rs. 75,000 per annum.",
		},
	}
}

func postPredict(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) errorResponse {
	var resp errorResponse
	_ = json.NewDecoder(w.Body).Decode(&resp)
	return resp
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := newDeps()
		server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, 0)
		mux := http.NewServeMux()

		Convey("When registering routes", func() {
			server.Register(context.Background(), mux)

			Convey("Then health endpoint should be accessible", func() {
				req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And stats endpoint should be accessible", func() {
				req := httptest.NewRequest(http.MethodGet, "/stats", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And options endpoint should be accessible", func() {
				req := httptest.NewRequest(http.MethodGet, "/options", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And predict endpoint should be accessible", func() {
				req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"education":"PG"}`))
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestPredictHandler_HandlePredict(t *testing.T) {
	Convey("Given a predict handler", t, func() {
		deps := newDeps()
		handler := api.NewPredictHandler(deps, 0)

		Convey("When posting a valid form", func() {
			w := postPredict(handler.HandlePredict, `{
				"applicant_id": 17,
				"total_experience": 6,
				"education": "PG",
				"passing_year_graduation": 2012,
				"passing_year_pg": 2014,
				"inhand_offer": " N",
				"current_ctc": 900000
			}`)

			Convey("Then the prediction is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var p types.Prediction
				So(json.NewDecoder(w.Body).Decode(&p), ShouldBeNil)
				So(p.Amount, ShouldEqual, "Rs. 75,000")
				So(p.Message, ShouldEqual, "The estimated CTC to be provided is Rs. 75,000 per annum.")
			})

			Convey("And the form reaches the service intact", func() {
				So(deps.calls, ShouldEqual, 1)
				So(deps.lastReq.ApplicantID, ShouldEqual, 17)
				So(*deps.lastReq.PassingYearPG, ShouldEqual, 2014)
				So(deps.lastReq.PassingYearPHD, ShouldBeNil)
				So(deps.lastReq.InhandOffer, ShouldEqual, " N")
			})
		})

		Convey("When the body is not JSON", func() {
			w := postPredict(handler.HandlePredict, `{not json`)

			Convey("Then it should return bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w).Code, ShouldEqual, "bad_request")
				So(deps.calls, ShouldEqual, 0)
			})
		})

		Convey("When the body has an unknown field", func() {
			w := postPredict(handler.HandlePredict, `{"educaton":"PG"}`)

			Convey("Then it should return bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the body has trailing data", func() {
			w := postPredict(handler.HandlePredict, `{"education":"PG"} {"education":"Grad"}`)

			Convey("Then it should return bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a passing year is out of range", func() {
			w := postPredict(handler.HandlePredict, `{"passing_year_pg": 1850}`)

			Convey("Then validation rejects it", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w).Message, ShouldContainSubstring, "invalid form")
				So(deps.calls, ShouldEqual, 0)
			})
		})

		Convey("When the current CTC is negative", func() {
			w := postPredict(handler.HandlePredict, `{"current_ctc": -1}`)

			Convey("Then validation rejects it", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the model is not loaded", func() {
			deps.ready = false
			w := postPredict(handler.HandlePredict, `{"education":"PG"}`)

			Convey("Then it should return service unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(decodeError(w).Code, ShouldEqual, "unavailable")
			})
		})

		Convey("When the estimator fails", func() {
			deps.err = errors.New("unknown category \"Postdoc\"")
			w := postPredict(handler.HandlePredict, `{"education":"Postdoc"}`)

			Convey("Then it should return a prediction failure", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				resp := decodeError(w)
				So(resp.Code, ShouldEqual, "prediction_failed")
				So(resp.Message, ShouldContainSubstring, "Postdoc")
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodGet, "/predict", nil)
			w := httptest.NewRecorder()
			handler.HandlePredict(w, req)

			Convey("Then it should return not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})

	Convey("Given a started service whose estimator returns infinity", t, func() {
		log, err := logger.New(logger.FormatText, io.Discard)
		So(err, ShouldBeNil)
		svc := service.New(service.WithLogger(log), service.WithEstimator(estimator.Constant(math.Inf(1))))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		handler := api.NewPredictHandler(svc, 0)

		Convey("When posting a valid form", func() {
			w := postPredict(handler.HandlePredict, `{"education":"Grad","inhand_offer":"Y"}`)

			Convey("Then a prediction failure is returned with a JSON body", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				resp := decodeError(w)
				So(resp.Code, ShouldEqual, "prediction_failed")
				So(resp.Message, ShouldContainSubstring, "not finite")
			})
		})
	})

	Convey("Given a predict handler with a tiny body limit", t, func() {
		handler := api.NewPredictHandler(newDeps(), 16)

		Convey("When the body exceeds the limit", func() {
			w := postPredict(handler.HandlePredict, `{"education":"Under Grad","inhand_offer":"Y"}`)

			Convey("Then it should return entity too large", func() {
				So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
				So(decodeError(w).Code, ShouldEqual, "too_large")
			})
		})
	})
}

func TestOptionsHandler_HandleGetOptions(t *testing.T) {
	Convey("Given an options handler", t, func() {
		handler := api.NewOptionsHandler(newDeps())

		Convey("When handling options request", func() {
			req := httptest.NewRequest(http.MethodGet, "/options", nil)
			w := httptest.NewRecorder()
			handler.HandleGetOptions(w, req)

			Convey("Then it should return the option lists", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var opts candidate.Options
				So(json.NewDecoder(w.Body).Decode(&opts), ShouldBeNil)
				So(opts.Educations, ShouldResemble, []string{"PG", "Doctorate", "Grad", "Under Grad"})
				So(opts.InhandOffers, ShouldResemble, []string{"Y", " N"})
			})
		})
	})
}

func TestHealthHandler_HandleHealth(t *testing.T) {
	Convey("Given a health handler", t, func() {
		handler := api.NewHealthHandler()

		Convey("When handling health check request", func() {
			// Drive one request through the middleware so the registry has samples.
			mw := api.MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			}, "probe")
			mw(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/probe", nil))

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			handler.HandleHealth(w, req)

			Convey("Then it should return Prometheus metrics", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "ctc_predictor_http_requests_total")
				So(w.Body.String(), ShouldContainSubstring, `endpoint="probe"`)
			})
		})
	})
}

func TestStatsHandler_HandleStats(t *testing.T) {
	Convey("Given a stats handler", t, func() {
		mockStats := &mockStatsProvider{
			stats: map[string]interface{}{
				"predictions": 1000,
				"failures":    3,
			},
		}
		handler := api.NewStatsHandler(mockStats)

		Convey("When handling stats request", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return stats", func() {
				handler.HandleStats(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response map[string]interface{}
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response["predictions"], ShouldEqual, 1000.0)
				So(response["failures"], ShouldEqual, 3.0)
			})
		})

		Convey("When a stat cannot be encoded", func() {
			mockStats.stats["latency"] = math.NaN()
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			handler.HandleStats(w, req)

			Convey("Then the response is a 500 with an error body", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(decodeError(w).Code, ShouldEqual, "encode_failed")
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodPost, "/stats", nil)
			w := httptest.NewRecorder()
			handler.HandleStats(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestWrapKind(t *testing.T) {
	Convey("Given an error wrapped with an operation and kind", t, func() {
		cause := errors.New("eof")
		err := api.WrapKind("api.predict", api.ErrBadRequest, cause)

		Convey("Then both the kind and the cause are matchable", func() {
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.predict: bad request: eof")
		})

		Convey("And a kind without cause reads cleanly", func() {
			err := api.NewKind("api.predict", api.ErrUnavailable)
			So(errors.Is(err, api.ErrUnavailable), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.predict: service unavailable")
		})
	})
}
