package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testBackend(t *testing.T, handlers map[string]http.HandlerFunc) *Client {
	t.Helper()

	mux := http.NewServeMux()
	for path, h := range handlers {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL)
}

func writeBody(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func TestClientStats(t *testing.T) {
	c := testBackend(t, map[string]http.HandlerFunc{
		"/vehicle-stats": func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, `{
				"is_running": true,
				"current_count": 42,
				"active_objects": 3,
				"analytics": {"day": {"labels": ["00:00", "01:00"], "data": [1, 2]}},
				"stats_by_class": {"car": {"count": 2, "percentage": 66.7}}
			}`)
		},
	})

	stats, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() returned error: %v", err)
	}
	if !stats.IsRunning {
		t.Error("IsRunning should be true")
	}
	if stats.CurrentCount != 42 {
		t.Errorf("CurrentCount = %d, want 42", stats.CurrentCount)
	}
	day, ok := stats.Analytics[PeriodDay]
	if !ok {
		t.Fatal("analytics missing day series")
	}
	if len(day.Labels) != 2 || day.Labels[0] != "00:00" {
		t.Errorf("day labels = %v", day.Labels)
	}
	if len(day.Data) != 2 || day.Data[1] != 2 {
		t.Errorf("day data = %v", day.Data)
	}
	if stats.StatsByClass["car"].Count != 2 {
		t.Errorf("car count = %d, want 2", stats.StatsByClass["car"].Count)
	}
}

func TestClientStatusError(t *testing.T) {
	c := testBackend(t, map[string]http.HandlerFunc{
		"/vehicle-stats": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})

	_, err := c.Stats(context.Background())
	if err == nil {
		t.Fatal("Stats() should fail on 500")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error %v is not a StatusError", err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Errorf("Code = %d, want 500", se.Code)
	}
	if se.Path != "/vehicle-stats" {
		t.Errorf("Path = %q, want /vehicle-stats", se.Path)
	}
}

func TestClientCommandMethods(t *testing.T) {
	var gotMethod string
	c := testBackend(t, map[string]http.HandlerFunc{
		"/start-detection": func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			writeBody(w, `{"success": true, "message": "Detection started"}`)
		},
		"/reset-count": func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, `{"success": true, "message": "Count reset", "new_count": 0}`)
		},
	})

	resp, err := c.StartDetection(context.Background())
	if err != nil {
		t.Fatalf("StartDetection() returned error: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("start-detection used method %q, want POST", gotMethod)
	}
	if !resp.Success || resp.Message != "Detection started" {
		t.Errorf("unexpected response: %+v", resp)
	}

	reset, err := c.ResetCount(context.Background())
	if err != nil {
		t.Fatalf("ResetCount() returned error: %v", err)
	}
	if !reset.Success {
		t.Error("reset should report success")
	}
}

func TestClientCommandFailureIsNotError(t *testing.T) {
	c := testBackend(t, map[string]http.HandlerFunc{
		"/start-detection": func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, `{"success": false, "message": "Detection already running"}`)
		},
	})

	resp, err := c.StartDetection(context.Background())
	if err != nil {
		t.Fatalf("success=false must not be a transport error, got: %v", err)
	}
	if resp.Success {
		t.Error("Success should be false")
	}
	if resp.Message != "Detection already running" {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestFetchCycle(t *testing.T) {
	c := testBackend(t, map[string]http.HandlerFunc{
		"/vehicle-stats": func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, `{"is_running": true, "current_count": 7}`)
		},
		"/detected-objects": func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, `{
				"active_objects": 1,
				"total_objects": 7,
				"objects": [{"id": 12, "vehicle_type": "car", "confidence_score": 91.5,
					"detected_at": "10:30:12", "status": "Active"}]
			}`)
		},
	})

	cycle, err := c.FetchCycle(context.Background())
	if err != nil {
		t.Fatalf("FetchCycle() returned error: %v", err)
	}
	if cycle.Stats.CurrentCount != 7 {
		t.Errorf("CurrentCount = %d, want 7", cycle.Stats.CurrentCount)
	}
	if len(cycle.Objects.Objects) != 1 {
		t.Fatalf("got %d objects, want 1", len(cycle.Objects.Objects))
	}
	obj := cycle.Objects.Objects[0]
	if obj.ID != 12 || obj.Type != VehicleCar || obj.Status != StatusActive {
		t.Errorf("unexpected object: %+v", obj)
	}
}

func TestFetchCycleFailsWhole(t *testing.T) {
	// One endpoint healthy, one broken. The cycle must fail as a unit.
	c := testBackend(t, map[string]http.HandlerFunc{
		"/vehicle-stats": func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, `{"is_running": true}`)
		},
		"/detected-objects": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		},
	})

	_, err := c.FetchCycle(context.Background())
	if err == nil {
		t.Fatal("FetchCycle() should fail when one endpoint fails")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error %v should wrap StatusError", err)
	}
	if se.Path != "/detected-objects" {
		t.Errorf("failing path = %q, want /detected-objects", se.Path)
	}
}

func TestClientHealth(t *testing.T) {
	c := testBackend(t, map[string]http.HandlerFunc{
		"/health": func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, `{"status": "healthy", "detection_running": false, "classes_loaded": 2}`)
		},
	})

	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() returned error: %v", err)
	}
	if !h.Healthy() {
		t.Errorf("Healthy() = false for status %q", h.Status)
	}
	if h.ClassesLoaded != 2 {
		t.Errorf("ClassesLoaded = %d, want 2", h.ClassesLoaded)
	}
}

func TestClientCountAndClasses(t *testing.T) {
	c := testBackend(t, map[string]http.HandlerFunc{
		"/vehicle-detection": func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, `{"vehicle_count": 17, "classes": ["car", "motorcycle"]}`)
		},
		"/classes": func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, `{"total_classes": 2, "class_names": ["car", "motorcycle"], "class_mapping": {"2": "car", "3": "motorcycle"}}`)
		},
	})

	count, err := c.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() returned error: %v", err)
	}
	if count.VehicleCount != 17 {
		t.Errorf("VehicleCount = %d, want 17", count.VehicleCount)
	}

	classes, err := c.Classes(context.Background())
	if err != nil {
		t.Fatalf("Classes() returned error: %v", err)
	}
	if classes.TotalClasses != 2 || len(classes.ClassNames) != 2 {
		t.Errorf("unexpected classes payload: %+v", classes)
	}
	if classes.ClassMapping[2] != "car" {
		t.Errorf("class_mapping[2] = %q, want car", classes.ClassMapping[2])
	}
}

func TestClientUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")

	if _, err := c.Stats(context.Background()); err == nil {
		t.Error("Stats() against a closed port should fail")
	}
}
