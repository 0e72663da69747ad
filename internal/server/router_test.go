package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookit-platform/internal/auth"
	"bookit-platform/internal/handlers"
	"bookit-platform/internal/middleware"
	"bookit-platform/internal/models"
	"bookit-platform/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExperiences struct{}

func (stubExperiences) GetExperience(ctx context.Context, id string) (*models.Experience, error) {
	return nil, models.ErrExperienceNotFound
}

func (stubExperiences) ListExperiences(ctx context.Context, search string) ([]*models.Experience, error) {
	return []*models.Experience{}, nil
}

type stubSlots struct{ calls int }

func (s *stubSlots) Refresh(ctx context.Context) (*models.RefreshSummary, error) {
	s.calls++
	return &models.RefreshSummary{SlotsCreated: 3, ExperiencesProcessed: 1}, nil
}

type stubPromos struct{}

func (stubPromos) Validate(ctx context.Context, code string) (*models.PromoCode, error) {
	return nil, models.ErrPromoNotFound
}

type stubPricing struct{}

func (stubPricing) Quote(ctx context.Context, req *services.QuoteRequest) (*models.Quote, error) {
	return nil, models.ErrSlotNotFound
}

type stubBookings struct{}

func (stubBookings) Reserve(ctx context.Context, identity *models.Identity, req *models.ReservationRequest) (*models.Booking, error) {
	return &models.Booking{UserID: identity.UserID, BookingRef: "BK-AAAAAAAA"}, nil
}

func (stubBookings) ListForUser(ctx context.Context, userID string) ([]*models.BookingWithDetails, error) {
	return []*models.BookingWithDetails{}, nil
}

func (stubBookings) GetByRef(ctx context.Context, userID, ref string) (*models.BookingWithDetails, error) {
	return nil, models.ErrBookingNotFound
}

var routerSecret = []byte("router-test-secret")

func testRouter(t *testing.T) (http.Handler, *stubSlots) {
	t.Helper()
	slots := &stubSlots{}
	store := auth.NewSessionStore("test-secret-key", 3600, false)
	verifier := auth.NewHMACVerifier(routerSecret, "")
	limiter := middleware.NewRateLimiter(2, time.Minute)
	t.Cleanup(limiter.Close)

	router := NewRouter(Dependencies{
		Health:        handlers.NewHealthHandler(nil),
		Experiences:   handlers.NewExperienceHandler(stubExperiences{}),
		Bookings:      handlers.NewBookingHandler(stubBookings{}, stubBookings{}),
		Promos:        handlers.NewPromoHandler(stubPromos{}, stubPricing{}),
		Sessions:      handlers.NewSessionHandler(verifier, store),
		Admin:         handlers.NewAdminHandler(slots),
		Verifier:      verifier,
		SessionStore:  store,
		PromoLimiter:  limiter,
		CORSOrigins:   []string{"http://localhost:3000"},
		RefreshSecret: "refresh-me",
	})
	return router, slots
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// signIn exchanges a bearer token for a cookie session and returns the
// cookie with its CSRF token
func signIn(t *testing.T, router http.Handler) (*http.Cookie, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body struct {
		UserID    string `json:"user_id"`
		CSRFToken string `json:"csrf_token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "user_2abc", body.UserID)
	require.NotEmpty(t, body.CSRFToken)
	assert.Equal(t, body.CSRFToken, rr.Header().Get(auth.CSRFHeader))

	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == auth.SessionName {
			return cookie, body.CSRFToken
		}
	}
	t.Fatal("sign in did not set a session cookie")
	return nil, ""
}

func TestRouter_PublicRoutes(t *testing.T) {
	router, _ := testRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/experiences", "", http.StatusOK},
		{http.MethodGet, "/api/search?q=kayak", "", http.StatusOK},
		{http.MethodGet, "/api/experiences/missing", "", http.StatusNotFound},
		{http.MethodPost, "/api/quote", `{"slotId":"x","quantity":1}`, http.StatusNotFound},
		{http.MethodGet, "/api/nowhere", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, jsonRequest(tt.method, tt.path, tt.body))
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}

func TestRouter_BookingsRequireIdentity(t *testing.T) {
	router, _ := testRouter(t)
	body := `{"slotId":"7d4e1c2a-9b1f-4c3e-8a6d-2f5b3c1e0a9d","numGuests":1,"totalPrice":1059}`

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, jsonRequest(http.MethodPost, "/api/bookings", body))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token := signedToken(t)
	req := jsonRequest(http.MethodPost, "/api/bookings", body)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"user_id":"user_2abc"`)
}

func TestRouter_AdminRequiresSecret(t *testing.T) {
	router, slots := testRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/refresh-slots", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// A valid end user identity is not enough
	req := httptest.NewRequest(http.MethodPost, "/api/admin/refresh-slots", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, 0, slots.calls)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/refresh-slots", nil)
	req.Header.Set("Authorization", "Bearer refresh-me")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"slotsCreated":3,"slotsDeleted":0,"experiencesProcessed":1}`, rr.Body.String())
}

func TestRouter_PromoRateLimited(t *testing.T) {
	router, _ := testRouter(t)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := jsonRequest(http.MethodPost, "/api/promo/validate", `{"code":"BOGUS"}`)
		req.RemoteAddr = "198.51.100.4:4000"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusNotFound, http.StatusNotFound, http.StatusTooManyRequests}, codes)
}

func TestRouter_CookieBookingRequiresCSRFToken(t *testing.T) {
	router, _ := testRouter(t)
	cookie, csrfToken := signIn(t, router)
	body := `{"slotId":"7d4e1c2a-9b1f-4c3e-8a6d-2f5b3c1e0a9d","numGuests":1,"totalPrice":1059}`

	tests := []struct {
		name        string
		contentType string
		token       string
		want        int
	}{
		{name: "cross-site text/plain form", contentType: "text/plain", want: http.StatusForbidden},
		{name: "json without token", contentType: "application/json", want: http.StatusForbidden},
		{name: "wrong token", contentType: "application/json", token: "not-the-token", want: http.StatusForbidden},
		{name: "token with text/plain", contentType: "text/plain", token: csrfToken, want: http.StatusUnsupportedMediaType},
		{name: "token with json", contentType: "application/json; charset=utf-8", token: csrfToken, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
			req.Header.Set("Origin", "https://evil.example")
			req.Header.Set("Content-Type", tt.contentType)
			if tt.token != "" {
				req.Header.Set(auth.CSRFHeader, tt.token)
			}
			req.AddCookie(cookie)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
			assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.want == http.StatusOK {
				assert.Contains(t, rr.Body.String(), `"user_id":"user_2abc"`)
			}
		})
	}
}

func TestRouter_BearerBookingSkipsCSRFToken(t *testing.T) {
	router, _ := testRouter(t)
	cookie, _ := signIn(t, router)

	req := jsonRequest(http.MethodPost, "/api/bookings", `{"slotId":"7d4e1c2a-9b1f-4c3e-8a6d-2f5b3c1e0a9d","numGuests":2,"totalPrice":2118}`)
	req.Header.Set("Authorization", "Bearer "+signedToken(t))
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// Bearer requests still need a JSON body
	req = httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{"slotId":"7d4e1c2a-9b1f-4c3e-8a6d-2f5b3c1e0a9d","numGuests":2,"totalPrice":2118}`))
	req.Header.Set("Authorization", "Bearer "+signedToken(t))
	req.Header.Set("Content-Type", "text/plain")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

func TestRouter_CookieSessionLifecycle(t *testing.T) {
	router, _ := testRouter(t)
	cookie, csrfToken := signIn(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"csrf_token":"`+csrfToken+`"`)

	// Signing out is a write too
	req = httptest.NewRequest(http.MethodDelete, "/api/session", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/session", nil)
	req.Header.Set(auth.CSRFHeader, csrfToken)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
