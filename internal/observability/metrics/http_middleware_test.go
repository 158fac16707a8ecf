package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsMiddlewareLabelsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /task/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := HTTPMetricsMiddleware(mux)

	matched := httpRequestsTotal.WithLabelValues(http.MethodDelete, "DELETE /task/{id}", "404")
	unmatched := httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	beforeMatched := testutil.ToFloat64(matched)
	beforeUnmatched := testutil.ToFloat64(unmatched)

	for _, id := range []string{"a", "b"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/task/"+id, nil))
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if got := testutil.ToFloat64(matched) - beforeMatched; got != 2 {
		t.Fatalf("expected 2 requests under the route pattern, got %v", got)
	}
	if got := testutil.ToFloat64(unmatched) - beforeUnmatched; got != 1 {
		t.Fatalf("expected 1 unmatched request, got %v", got)
	}
}

func TestObserveOrphansIgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(orphanedAssignments)
	ObserveOrphans(0)
	ObserveOrphans(3)
	if got := testutil.ToFloat64(orphanedAssignments) - before; got != 3 {
		t.Fatalf("expected 3 orphans counted, got %v", got)
	}
}
