package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/logger"
)

func analyticsUpstream(t *testing.T, analyticsBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/users", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("role") {
		case "customer":
			w.Write([]byte(`{"data":[{"_id":"c1","email":"c@x.com","role":"customer"}],"pagination":{"total":40}}`))
		case "admin":
			w.Write([]byte(`[{"_id":"a1","email":"a@x.com","role":"admin"}]`))
		case "driver":
			w.Write([]byte(`[{"_id":"d1","email":"d@x.com","role":"driver"},{"_id":"d2","email":"e@x.com","role":"driver"}]`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})
	mux.HandleFunc("/admin/users/banned", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"b1","email":"b@x.com","role":"customer","isBanned":true}]`))
	})
	mux.HandleFunc("/admin/analytics", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(analyticsBody))
	})
	mux.HandleFunc("/admin/withdrawals", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"_id":"w1","amount":100,"status":"approved"},
			{"_id":"w2","amount":50,"status":"paid"},
			{"_id":"w3","amount":30,"status":"pending"},
			{"_id":"w4","amount":20,"status":"rejected"}
		]`))
	})
	mux.HandleFunc("/admin/routes", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"r1","startPoint":"Gate","endPoint":"Library","price":500}]`))
	})
	return httptest.NewServer(mux)
}

func TestAnalyticsLoadFallsBackToSettledWithdrawals(t *testing.T) {
	// No totalPaidToDrivers in the aggregate: the page sums approved and
	// paid withdrawals instead (100 + 50).
	server := analyticsUpstream(t, `{"data":{"totalRides":12,"totalRevenue":900,"activeDrivers":2}}`)
	defer server.Close()

	c := NewAnalyticsController(newTestClient(t, server), logger.NewNop())
	if err := c.Load(context.Background(), upstream.AllTime()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	summary, err := c.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalPaidToDrivers != 150 {
		t.Fatalf("TotalPaidToDrivers = %v, want 150", summary.TotalPaidToDrivers)
	}
	if summary.TotalDriverWithdrawals != 200 {
		t.Fatalf("TotalDriverWithdrawals = %v, want 200", summary.TotalDriverWithdrawals)
	}
	if summary.TotalCustomers != 40 {
		t.Fatalf("TotalCustomers = %v, want pagination total 40", summary.TotalCustomers)
	}
	if summary.TotalAdmins != 1 || summary.TotalDrivers != 2 || summary.TotalBanned != 1 {
		t.Fatalf("role counts = %d/%d/%d", summary.TotalAdmins, summary.TotalDrivers, summary.TotalBanned)
	}
	if summary.TotalRoutes != 1 || summary.TotalRides != 12 || summary.TotalRevenue != 900 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestAnalyticsLoadPrefersAggregateFigure(t *testing.T) {
	// The aggregate's totalPaidToDrivers wins over the withdrawal sum.
	server := analyticsUpstream(t, `{"data":{"totalRides":12,"totalRevenue":900,"activeDrivers":2,"totalPaidToDrivers":100}}`)
	defer server.Close()

	c := NewAnalyticsController(newTestClient(t, server), logger.NewNop())
	if err := c.Load(context.Background(), upstream.LastSevenDays()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	summary, err := c.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalPaidToDrivers != 100 {
		t.Fatalf("TotalPaidToDrivers = %v, want aggregate's 100", summary.TotalPaidToDrivers)
	}
	if c.Range().Kind != upstream.RangeLast7 {
		t.Fatalf("Range kind = %v", c.Range().Kind)
	}
}

func TestAnalyticsLoadIsAllOrNothing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/admin/withdrawals" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom"}`))
			return
		}
		if r.URL.Path == "/admin/analytics" {
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(`[]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := NewAnalyticsController(newTestClient(t, server), logger.NewNop())
	if err := c.Load(context.Background(), upstream.AllTime()); err == nil {
		t.Fatal("expected load error")
	}
	if _, err := c.Summary(); err == nil {
		t.Fatal("Summary should surface the load error, not partial data")
	}
}

func TestAnalyticsRangePassedUpstream(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/admin/analytics" {
			gotQuery = r.URL.RawQuery
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(`[]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := NewAnalyticsController(newTestClient(t, server), logger.NewNop())
	if err := c.Load(context.Background(), upstream.Custom("2025-01-01", "2025-01-31")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if gotQuery != "from=2025-01-01&to=2025-01-31" {
		t.Fatalf("analytics query = %q", gotQuery)
	}
}
