package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/pkg/logger"
)

func routesUpstream(t *testing.T, requests *int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/routes", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requests, 1)
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[{"_id":"r1","startPoint":"Gate","endPoint":"Library","price":500,"studentDiscount":10}]`))
		case http.MethodPost:
			w.Write([]byte(`{"data":{"_id":"r2","startPoint":"Gate","endPoint":"Hostel","price":300,"studentDiscount":5}}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/admin/routes/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requests, 1)
		switch r.Method {
		case http.MethodPatch:
			w.Write([]byte(`{"data":{"_id":"r1","startPoint":"Gate","endPoint":"Stadium","price":700,"studentDiscount":15}}`))
		case http.MethodDelete:
			w.Write([]byte(`{"success":true}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	return httptest.NewServer(mux)
}

func TestRouteCreateValidatesBeforeNetwork(t *testing.T) {
	var requests int64
	server := routesUpstream(t, &requests)
	defer server.Close()

	c := NewRoutesController(newTestClient(t, server), logger.NewNop())

	c.BeginCreate()
	c.SetForm(models.RouteInput{StartPoint: "Gate", EndPoint: "", Price: "500", StudentDiscount: "10"})
	if result := c.Submit(context.Background()); !errors.Is(result.Err, ErrMissingFields) {
		t.Fatalf("err = %v, want ErrMissingFields", result.Err)
	}

	c.SetForm(models.RouteInput{StartPoint: "Gate", EndPoint: "Hostel", Price: "abc", StudentDiscount: "10"})
	if result := c.Submit(context.Background()); !errors.Is(result.Err, ErrInvalidNumber) {
		t.Fatalf("err = %v, want ErrInvalidNumber", result.Err)
	}

	if n := atomic.LoadInt64(&requests); n != 0 {
		t.Fatalf("%d upstream requests before validation passed, want 0", n)
	}
}

func TestRouteCreatePrependsAndResetsForm(t *testing.T) {
	var requests int64
	server := routesUpstream(t, &requests)
	defer server.Close()

	c := NewRoutesController(newTestClient(t, server), logger.NewNop())
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	c.BeginCreate()
	c.SetForm(models.RouteInput{StartPoint: "Gate", EndPoint: "Hostel", Price: "300", StudentDiscount: "5"})
	if result := c.Submit(context.Background()); result.Failed() {
		t.Fatalf("Submit: %v", result.Err)
	}

	routes, err := c.Routes()
	if err != nil {
		t.Fatalf("Routes: %v", err)
	}
	if len(routes) != 2 || routes[0].ID != "r2" {
		t.Fatalf("created route not prepended: %+v", routes)
	}
	if c.Mode() != ModeBrowse {
		t.Fatalf("mode = %v after submit, want browse", c.Mode())
	}
	if c.Form() != (models.RouteInput{}) {
		t.Fatalf("form not reset: %+v", c.Form())
	}
}

func TestRouteEditReplacesInPlace(t *testing.T) {
	var requests int64
	server := routesUpstream(t, &requests)
	defer server.Close()

	c := NewRoutesController(newTestClient(t, server), logger.NewNop())
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := c.BeginEdit("r1"); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if c.Mode() != ModeEdit {
		t.Fatalf("mode = %v, want edit", c.Mode())
	}
	// The form is pre-populated from the selected route.
	if form := c.Form(); form.StartPoint != "Gate" || form.Price != "500" {
		t.Fatalf("form not pre-populated: %+v", form)
	}

	c.SetForm(models.RouteInput{StartPoint: "Gate", EndPoint: "Stadium", Price: "700", StudentDiscount: "15"})
	if result := c.Submit(context.Background()); result.Failed() {
		t.Fatalf("Submit: %v", result.Err)
	}

	routes, _ := c.Routes()
	if len(routes) != 1 || routes[0].EndPoint != "Stadium" || routes[0].Price != 700 {
		t.Fatalf("route not replaced in place: %+v", routes)
	}
}

func TestRouteEditUnknownID(t *testing.T) {
	var requests int64
	server := routesUpstream(t, &requests)
	defer server.Close()

	c := NewRoutesController(newTestClient(t, server), logger.NewNop())
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := c.BeginEdit("missing"); !errors.Is(err, ErrRouteNotFound) {
		t.Fatalf("err = %v, want ErrRouteNotFound", err)
	}
}

func TestRouteDeleteRequiresConfirmation(t *testing.T) {
	var requests int64
	server := routesUpstream(t, &requests)
	defer server.Close()

	c := NewRoutesController(newTestClient(t, server), logger.NewNop())
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	loadRequests := atomic.LoadInt64(&requests)

	if result := c.Delete(context.Background(), "r1", false); !errors.Is(result.Err, ErrConfirmationRequired) {
		t.Fatalf("err = %v, want ErrConfirmationRequired", result.Err)
	}
	if atomic.LoadInt64(&requests) != loadRequests {
		t.Fatal("unconfirmed delete reached upstream")
	}

	if result := c.Delete(context.Background(), "r1", true); result.Failed() {
		t.Fatalf("Delete: %v", result.Err)
	}
	routes, _ := c.Routes()
	if len(routes) != 0 {
		t.Fatalf("route still present after delete: %+v", routes)
	}
}
