// README: HTTP-level tests for the booking and catalog endpoints.
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httptransport "carzz/internal/http"
	"carzz/internal/modules/booking"
	"carzz/internal/modules/chat"
	"carzz/internal/modules/pricing"
	"carzz/internal/modules/vehicle"
)

// buildTestRouter wires the full route table over the in-memory stores.
func buildTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	vehicles := vehicle.NewMemStore(vehicle.SeedFleet())
	catalogSvc := vehicle.NewService(vehicles, nil, 0)
	pricingSvc := pricing.NewService()
	bookingSvc := booking.NewService(booking.NewMemStore(), vehicles, pricingSvc, nil)
	chatSvc := chat.NewService(nil, nil, nil)

	return httptransport.NewRouter(httptransport.RouterDeps{
		Catalog:  catalogSvc,
		Pricing:  pricingSvc,
		Bookings: bookingSvc,
		Chat:     chatSvc,
		Log:      zap.NewNop(),
	})
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return out
}

func createBookingBody(vehicleID int64, hours int) map[string]any {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return map[string]any{
		"vehicleId":   vehicleID,
		"vehicleType": "car",
		"userId":      "u1",
		"startTime":   start.Format(time.RFC3339),
		"endTime":     start.Add(time.Duration(hours) * time.Hour).Format(time.RFC3339),
	}
}

func TestListCars_Search(t *testing.T) {
	r := buildTestRouter()

	w := doRequest(r, http.MethodGet, "/api/cars?search=swift", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var cars []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &cars); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cars) != 1 || cars[0]["model"] != "Swift" {
		t.Errorf("cars = %+v, want the Swift only", cars)
	}
}

func TestCreateBooking_EndToEnd(t *testing.T) {
	r := buildTestRouter()

	// 26h on the Swift (150/day): 150 + 2*round(150/8) = 188
	w := doRequest(r, http.MethodPost, "/api/bookings", createBookingBody(1, 26))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	if resp["status"] != "confirmed" {
		t.Errorf("status = %v, want confirmed", resp["status"])
	}
	total := resp["totalCost"].(map[string]any)
	if total["amount"].(float64) != 188 {
		t.Errorf("totalCost = %v, want 188", total["amount"])
	}
	if resp["kmAllowance"] != "300-400km" {
		t.Errorf("kmAllowance = %v", resp["kmAllowance"])
	}

	// The reserved car is no longer available in the catalog.
	w = doRequest(r, http.MethodGet, "/api/cars/1", nil)
	if car := decode(t, w); car["isAvailable"] != false {
		t.Errorf("car 1 still available after booking")
	}

	// A second booking of the same car conflicts.
	w = doRequest(r, http.MethodPost, "/api/bookings", createBookingBody(1, 4))
	if w.Code != http.StatusConflict {
		t.Errorf("double booking status = %d, want 409", w.Code)
	}
}

func TestBookingStatusFlow(t *testing.T) {
	r := buildTestRouter()

	w := doRequest(r, http.MethodPost, "/api/bookings", createBookingBody(2, 5))
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}
	id := decode(t, w)["id"].(string)

	w = doRequest(r, http.MethodPatch, "/api/bookings/"+id+"/status", map[string]any{"status": "completed"})
	if w.Code != http.StatusConflict {
		t.Errorf("confirmed->completed status = %d, want 409", w.Code)
	}

	for _, status := range []string{"active", "completed"} {
		w = doRequest(r, http.MethodPatch, "/api/bookings/"+id+"/status", map[string]any{"status": status})
		if w.Code != http.StatusOK {
			t.Fatalf("-> %s status = %d, body = %s", status, w.Code, w.Body.String())
		}
	}

	// Completion releases the vehicle.
	w = doRequest(r, http.MethodGet, "/api/cars/2", nil)
	if car := decode(t, w); car["isAvailable"] != true {
		t.Errorf("car 2 not released after completion")
	}

	w = doRequest(r, http.MethodPatch, "/api/bookings/"+id+"/status", map[string]any{"status": "cancelled"})
	if w.Code != http.StatusConflict {
		t.Errorf("transition after terminal status = %d, want 409", w.Code)
	}
}

func TestBookingValidation(t *testing.T) {
	r := buildTestRouter()

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString("{not json"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unknown vehicle kind", func(t *testing.T) {
		body := createBookingBody(1, 4)
		body["vehicleType"] = "boat"
		w := doRequest(r, http.MethodPost, "/api/bookings", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("inverted window", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		body := createBookingBody(1, 4)
		body["endTime"] = start.Add(-time.Hour).Format(time.RFC3339)
		w := doRequest(r, http.MethodPost, "/api/bookings", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unknown booking id", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/api/bookings/nope/unlock", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("bad coordinates", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/api/bookings", createBookingBody(3, 4))
		id := decode(t, w)["id"].(string)
		w = doRequest(r, http.MethodPost, "/api/bookings/"+id+"/location", map[string]any{"lat": 95.0, "lng": 10.0})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestQuoteEndpoint(t *testing.T) {
	r := buildTestRouter()

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	w := doRequest(r, http.MethodPost, "/api/quotes", map[string]any{
		"vehicleId":   2,
		"vehicleType": "car",
		"startTime":   start.Format(time.RFC3339),
		"endTime":     start.Add(28 * time.Hour).Format(time.RFC3339),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	// Creta at 250/day, 28h: 250 + round(250*0.6) = 400
	if resp["totalCost"].(float64) != 400 {
		t.Errorf("totalCost = %v, want 400", resp["totalCost"])
	}
	if resp["rateTier"] != "daily_plus_half_day" {
		t.Errorf("rateTier = %v", resp["rateTier"])
	}

	// Quoting does not reserve the vehicle.
	w = doRequest(r, http.MethodGet, "/api/cars/2", nil)
	if car := decode(t, w); car["isAvailable"] != true {
		t.Error("quote flipped availability")
	}
}

func TestChatEndpoint(t *testing.T) {
	r := buildTestRouter()

	w := doRequest(r, http.MethodPost, "/api/chat", map[string]any{"message": "what is the price?"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if reply := decode(t, w)["reply"].(string); reply == "" {
		t.Error("empty chat reply")
	}

	w = doRequest(r, http.MethodPost, "/api/chat", map[string]any{"message": "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank message status = %d, want 400", w.Code)
	}
}
