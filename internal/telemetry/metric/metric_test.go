package metric

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/canikit-go/internal/core/domain"
)

func TestResult(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"api error", domain.NotFound("x"), "NotFound"},
		{"wrapped api error", errors.Join(errors.New("ctx"), domain.Duplicate("x")), "Duplicate"},
		{"plain error", errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Result(tt.err); got != tt.want {
				t.Errorf("Result() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistry_Counters(t *testing.T) {
	r := NewRegistry()

	r.StorageOp("users", "get", nil)
	r.StorageOp("users", "get", nil)
	r.StorageOp("users", "get", domain.NotFound(""))
	r.ExternalCall("ledger", "transfer", errors.New("reject"))

	if got := testutil.ToFloat64(r.StorageOps.WithLabelValues("users", "get", "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.StorageOps.WithLabelValues("users", "get", "NotFound")); got != 1 {
		t.Errorf("not found count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.ExternalCalls.WithLabelValues("ledger", "transfer", "error")); got != 1 {
		t.Errorf("external error count = %v, want 1", got)
	}
}

func TestRegionCollector(t *testing.T) {
	r := NewRegistry()
	c := NewRegionCollector(func() ([]RegionSample, error) {
		return []RegionSample{{ID: 0, Name: "logs", Keys: 3, Bytes: 120}}, nil
	})
	r.Registerer().MustRegister(c)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		`canikit_stable_region_keys{name="logs",region="0"} 3`,
		`canikit_stable_region_bytes{name="logs",region="0"} 120`,
		`canikit_stable_region_scrape_errors_total 0`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
