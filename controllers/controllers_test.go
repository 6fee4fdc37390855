package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"campsite-backend/models"
	"campsite-backend/services"
	"campsite-backend/services/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
}

func serve(method, path, body string, register func(r *gin.Engine)) *httptest.ResponseRecorder {
	r := gin.New()
	register(r)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func svcErr(kind error, msg string) error {
	return &services.Error{Kind: kind, Message: msg}
}

// ---------------------------
// Availability
// ---------------------------

func TestGetAvailability(t *testing.T) {
	svc := new(mocks.MockAvailabilityService)
	svc.On("ResolveAvailability", mock.Anything, "2024-07-01", "2024-07-05", "tenda").
		Return(&services.AvailabilityResult{CheckIn: "2024-07-01", CheckOut: "2024-07-05", TotalAvailable: 0, Pitches: []models.Pitch{}}, nil)
	ac := NewAvailabilityController(svc)

	w := serve(http.MethodGet, "/api/availability?check_in=2024-07-01&check_out=2024-07-05&pitch_type=tenda", "",
		func(r *gin.Engine) { r.GET("/api/availability", ac.GetAvailability) })

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "2024-07-01", body["check_in"])
	assert.Equal(t, float64(0), body["total_available"])
	svc.AssertExpectations(t)
}

func TestGetAvailability_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", svcErr(services.ErrValidation, "check_out must be after check_in"), http.StatusBadRequest, "check_out must be after check_in"},
		{"storage", &services.Error{Kind: services.ErrStorage, Message: "database operation failed", Err: errors.New("dial tcp: refused")}, http.StatusInternalServerError, "database operation failed"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockAvailabilityService)
			svc.On("ResolveAvailability", mock.Anything, "x", "", "").Return(nil, tt.err)
			ac := NewAvailabilityController(svc)

			w := serve(http.MethodGet, "/api/availability?check_in=x", "",
				func(r *gin.Engine) { r.GET("/api/availability", ac.GetAvailability) })

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.msg, body["error"])
			assert.NotContains(t, w.Body.String(), "dial tcp")
		})
	}
}

func TestGetOccupancy_InvalidPitchID(t *testing.T) {
	svc := new(mocks.MockAvailabilityService)
	ac := NewAvailabilityController(svc)

	for _, q := range []string{"", "pitch_id=abc", "pitch_id=0", "pitch_id=-3"} {
		w := serve(http.MethodGet, "/api/occupancy?"+q, "",
			func(r *gin.Engine) { r.GET("/api/occupancy", ac.GetOccupancy) })
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
	svc.AssertNotCalled(t, "CheckOccupancy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOccupancy(t *testing.T) {
	svc := new(mocks.MockAvailabilityService)
	svc.On("CheckOccupancy", mock.Anything, uint(4), "2024-07-01", "2024-07-03").
		Return(&services.OccupancyResult{PitchID: 4, IsOccupied: true, Booking: &services.BookingSummary{ID: 9, Status: "confirmed"}}, nil)
	ac := NewAvailabilityController(svc)

	w := serve(http.MethodGet, "/api/occupancy?pitch_id=4&check_in=2024-07-01&check_out=2024-07-03", "",
		func(r *gin.Engine) { r.GET("/api/occupancy", ac.GetOccupancy) })

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_occupied":true`)
}

// ---------------------------
// Pricing
// ---------------------------

func TestCalculatePrice_ParsesQuery(t *testing.T) {
	svc := new(mocks.MockPricingService)
	want := services.PriceQuery{
		CheckIn:   "2024-07-01",
		CheckOut:  "2024-07-04",
		PitchType: "piazzola",
		Occupants: services.Occupants{Adults: 2, Children: 1, Dogs: 0, Cars: 1},
		ExtraRates: services.ExtraRates{
			AdultRate: 8, ChildRate: 4.5, DogRate: 0, CarRate: 3,
		},
	}
	svc.On("CalculatePrice", mock.Anything, want).
		Return(&services.PriceCalculation{TotalPrice: 120, Days: 3, AverageRate: 40}, nil)
	pc := NewPricingController(svc, new(mocks.MockSeasonService))

	w := serve(http.MethodGet,
		"/api/pricing/calculate?checkIn=2024-07-01&checkOut=2024-07-04&pitchType=piazzola&guests=2&children=1&cars=1&guestPrice=8&childPrice=4.5&carPrice=3", "",
		func(r *gin.Engine) { r.GET("/api/pricing/calculate", pc.CalculatePrice) })

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(120), body["totalPrice"])
	assert.Equal(t, float64(3), body["days"])
	svc.AssertExpectations(t)
}

func TestCalculatePrice_BadNumbers(t *testing.T) {
	svc := new(mocks.MockPricingService)
	pc := NewPricingController(svc, new(mocks.MockSeasonService))

	for _, q := range []string{"guests=two", "dogs=1.5", "guestPrice=abc", "carPrice=NaN", "childPrice=Inf"} {
		w := serve(http.MethodGet, "/api/pricing/calculate?checkIn=2024-07-01&checkOut=2024-07-02&pitchType=tenda&"+q, "",
			func(r *gin.Engine) { r.GET("/api/pricing/calculate", pc.CalculatePrice) })
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
	svc.AssertNotCalled(t, "CalculatePrice", mock.Anything, mock.Anything)
}

func TestCreateSeason_RejectsInvalidPayload(t *testing.T) {
	seasons := new(mocks.MockSeasonService)
	pc := NewPricingController(new(mocks.MockPricingService), seasons)

	payloads := []string{
		`{"start_date":"2024-07-01","end_date":"2024-07-31","piazzola_rate":30,"tenda_rate":20}`,
		`{"name":"Luglio","start_date":"01/07/2024","end_date":"2024-07-31","piazzola_rate":30,"tenda_rate":20}`,
		`{"name":"Luglio","start_date":"2024-07-01","end_date":"2024-07-31","piazzola_rate":-1,"tenda_rate":20}`,
		`{"name":"Luglio","start_date":"2024-07-01","end_date":"2024-07-31","piazzola_rate":30,"tenda_rate":20,"color":"red"}`,
	}
	for _, p := range payloads {
		w := serve(http.MethodPost, "/api/pricing/seasons", p,
			func(r *gin.Engine) { r.POST("/api/pricing/seasons", pc.CreateSeason) })
		assert.Equal(t, http.StatusBadRequest, w.Code, p)
	}
	seasons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// ---------------------------
// Pitches
// ---------------------------

func TestSplitPitch(t *testing.T) {
	svc := new(mocks.MockPitchService)
	svc.On("Split", mock.Anything, uint(3)).Return([]models.Pitch{
		{ID: 3, Number: "003", Suffix: "a", Type: models.PitchTypePiazzola},
		{ID: 21, Number: "003", Suffix: "b", Type: models.PitchTypePiazzola},
	}, nil)
	pc := NewPitchController(svc)

	w := serve(http.MethodPost, "/api/pitches/split", `{"pitch_id":3}`,
		func(r *gin.Engine) { r.POST("/api/pitches/split", pc.SplitPitch) })

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	pitches, ok := body["pitches"].([]interface{})
	require.True(t, ok)
	assert.Len(t, pitches, 2)
}

func TestSplitPitch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"missing id", `{}`, nil, http.StatusBadRequest},
		{"malformed", `{"pitch_id":`, nil, http.StatusBadRequest},
		{"not found", `{"pitch_id":99}`, svcErr(services.ErrNotFound, "pitch not found"), http.StatusNotFound},
		{"already split", `{"pitch_id":3}`, svcErr(services.ErrConflict, "pitch 003 is already split"), http.StatusConflict},
		{"active bookings", `{"pitch_id":3}`, svcErr(services.ErrConflict, "pitch 003 has active bookings"), http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockPitchService)
			if tt.err != nil {
				svc.On("Split", mock.Anything, mock.Anything).Return(nil, tt.err)
			}
			pc := NewPitchController(svc)

			w := serve(http.MethodPost, "/api/pitches/split", tt.body,
				func(r *gin.Engine) { r.POST("/api/pitches/split", pc.SplitPitch) })

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, false, decode(t, w)["success"])
			if tt.err == nil {
				svc.AssertNotCalled(t, "Split", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestMergePitches(t *testing.T) {
	svc := new(mocks.MockPitchService)
	svc.On("Merge", mock.Anything, uint(3), uint(21)).
		Return(&models.Pitch{ID: 3, Number: "003", Type: models.PitchTypePiazzola}, nil)
	pc := NewPitchController(svc)

	w := serve(http.MethodPost, "/api/pitches/merge", `{"pitch_a_id":3,"pitch_b_id":21}`,
		func(r *gin.Engine) { r.POST("/api/pitches/merge", pc.MergePitches) })

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	pitch, ok := body["pitch"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "", pitch["suffix"])
}

func TestMergePitches_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"different numbers", svcErr(services.ErrValidation, "pitches must be the two halves of the same number"), http.StatusBadRequest},
		{"missing half", svcErr(services.ErrNotFound, "pitch not found"), http.StatusNotFound},
		{"busy", svcErr(services.ErrConflict, "pitch 003 is being modified, retry later"), http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockPitchService)
			svc.On("Merge", mock.Anything, uint(3), uint(21)).Return(nil, tt.err)
			pc := NewPitchController(svc)

			w := serve(http.MethodPost, "/api/pitches/merge", `{"pitch_a_id":3,"pitch_b_id":21}`,
				func(r *gin.Engine) { r.POST("/api/pitches/merge", pc.MergePitches) })

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestCreatePitch_RejectsUnknownType(t *testing.T) {
	svc := new(mocks.MockPitchService)
	pc := NewPitchController(svc)

	w := serve(http.MethodPost, "/api/pitches", `{"number":"5","type":"bungalow"}`,
		func(r *gin.Engine) { r.POST("/api/pitches", pc.CreatePitch) })

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetPitch_InvalidID(t *testing.T) {
	pc := NewPitchController(new(mocks.MockPitchService))

	w := serve(http.MethodGet, "/api/pitches/abc", "",
		func(r *gin.Engine) { r.GET("/api/pitches/:id", pc.GetPitch) })

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ---------------------------
// Bookings
// ---------------------------

func TestBookingTransitions(t *testing.T) {
	tests := []struct {
		action string
		method string
		handle func(bc *BookingController) gin.HandlerFunc
	}{
		{"checkin", "CheckIn", func(bc *BookingController) gin.HandlerFunc { return bc.CheckInBooking }},
		{"checkout", "CheckOut", func(bc *BookingController) gin.HandlerFunc { return bc.CheckoutBooking }},
		{"cancel", "Cancel", func(bc *BookingController) gin.HandlerFunc { return bc.CancelBooking }},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			svc := new(mocks.MockBookingService)
			svc.On(tt.method, mock.Anything, uint(7)).Return(&models.Booking{ID: 7}, nil)
			bc := NewBookingController(svc)

			w := serve(http.MethodPost, "/api/bookings/7/"+tt.action, "",
				func(r *gin.Engine) { r.POST("/api/bookings/:id/"+tt.action, tt.handle(bc)) })

			assert.Equal(t, http.StatusOK, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestCheckInBooking_InvalidTransition(t *testing.T) {
	svc := new(mocks.MockBookingService)
	svc.On("CheckIn", mock.Anything, uint(7)).
		Return(nil, svcErr(services.ErrConflict, "cannot check in a booking that is cancelled"))
	bc := NewBookingController(svc)

	w := serve(http.MethodPost, "/api/bookings/7/checkin", "",
		func(r *gin.Engine) { r.POST("/api/bookings/:id/checkin", bc.CheckInBooking) })

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "cannot check in a booking that is cancelled", decode(t, w)["error"])
}

func TestCreateBooking_Validation(t *testing.T) {
	svc := new(mocks.MockBookingService)
	bc := NewBookingController(svc)

	w := serve(http.MethodPost, "/api/bookings", `{"check_in":"2024-07-01","check_out":"2024-07-03"}`,
		func(r *gin.Engine) { r.POST("/api/bookings", bc.CreateBooking) })

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// ---------------------------
// Health
// ---------------------------

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	hc := NewHealthController(map[string]HealthCheck{"database": ok})
	w := serve(http.MethodGet, "/health", "", func(r *gin.Engine) { r.GET("/health", hc.Health) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	hc = NewHealthController(map[string]HealthCheck{"database": ok, "redis": down})
	w = serve(http.MethodGet, "/health", "", func(r *gin.Engine) { r.GET("/health", hc.Health) })
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode(t, w)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, map[string]interface{}{"database": "ok", "redis": "unavailable"}, body["checks"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}
