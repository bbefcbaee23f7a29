package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecocruise-admin/pkg/logger"
)

func TestOverviewLoad(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/users", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("role") == "driver" {
			w.Write([]byte(`{"data":[],"pagination":{"total":12}}`))
			return
		}
		// Eight customers, enough to exceed the recent-activity cut.
		var items []string
		for i := 0; i < 8; i++ {
			items = append(items, fmt.Sprintf(`{"_id":"c%d","email":"c%d@x.com","role":"customer"}`, i, i))
		}
		fmt.Fprintf(w, `[%s]`, strings.Join(items, ","))
	})
	mux.HandleFunc("/admin/routes", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"r1","startPoint":"Gate","endPoint":"Library","price":500}]`))
	})
	mux.HandleFunc("/admin/analytics", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"totalRevenue":4200}}`))
	})
	mux.HandleFunc("/admin/withdrawals", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") != "pending" {
			t.Errorf("overview fetched withdrawals with status %q", r.URL.Query().Get("status"))
		}
		w.Write([]byte(`[{"_id":"w1","amount":100,"status":"pending"},{"_id":"w2","amount":50,"status":"pending"}]`))
	})
	mux.HandleFunc("/admin/support-tickets", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"_id":"t1","subject":"A","status":"open"},
			{"_id":"t2","subject":"B","status":"resolved"},
			{"_id":"t3","subject":"C","status":"open"}
		]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := NewOverviewController(newTestClient(t, server), logger.NewNop())
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	overview, err := c.Overview()
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.Stats.TotalCustomers != 8 || overview.Stats.TotalDrivers != 12 {
		t.Fatalf("stats = %+v", overview.Stats)
	}
	if overview.Stats.TotalRevenue != 4200 {
		t.Fatalf("TotalRevenue = %v", overview.Stats.TotalRevenue)
	}
	if overview.Stats.PendingWithdrawals != 2 {
		t.Fatalf("PendingWithdrawals = %d", overview.Stats.PendingWithdrawals)
	}
	if overview.Stats.OpenTickets != 2 {
		t.Fatalf("OpenTickets = %d, want 2", overview.Stats.OpenTickets)
	}
	if len(overview.RecentCustomers) != 5 {
		t.Fatalf("RecentCustomers = %d, want capped at 5", len(overview.RecentCustomers))
	}
	if len(overview.RecentTickets) != 3 {
		t.Fatalf("RecentTickets = %d", len(overview.RecentTickets))
	}
}
