package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/shifts/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shifts/123", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}

	ObserveAccessDenied("shift", "delete")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()

	for _, want := range []string{
		`care_scheduler_http_requests_total{method="GET",route="/shifts/:id",status="204"}`,
		`care_scheduler_http_request_duration_seconds_count{method="GET",route="/shifts/:id",status="204"}`,
		`care_scheduler_access_denied_total{action="delete",kind="shift"}`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}
