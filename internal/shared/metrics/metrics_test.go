package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithRegistry(reg), metrics.WithNamespace("test"))

		Convey("When evaluations are recorded", func() {
			m.RecordEvaluation("ASCEND", metrics.ResultCreated)
			m.RecordEvaluation("ASCEND", metrics.ResultCreated)
			m.RecordEvaluation("NORTH", metrics.ResultRejected)

			Convey("Then the counters are labelled per framework and result", func() {
				count, err := testutil.GatherAndCount(reg, "test_evaluation_submitted_total")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 2)
			})
		})

		Convey("When the missing criteria gauge is set", func() {
			m.SetRubricCriteriaMissing(3)

			Convey("Then the gauge holds the value", func() {
				count, err := testutil.GatherAndCount(reg, "test_rubric_criteria_missing")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When the handler is scraped", func() {
			m.RecordHTTPRequest("/api/v1/evaluations", http.MethodPost, http.StatusCreated, 15*time.Millisecond)
			w := httptest.NewRecorder()
			m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Convey("Then the exposition contains the http series", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "test_http_requests_total")
			})
		})
	})
}
