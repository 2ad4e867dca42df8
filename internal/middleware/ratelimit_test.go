package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-backend/internal/models"

	"github.com/google/uuid"
)

type countingLimiter struct {
	limit int
	hits  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.hits == nil {
		l.hits = make(map[string]int)
	}
	l.hits[key]++
	return l.hits[key] <= l.limit, nil
}

func TestRateLimit(t *testing.T) {
	limiter := &countingLimiter{limit: 2}
	handler := RateLimit(limiter, ByClientIP(false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i, status := range want {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != status {
			t.Fatalf("request %d: expected %d, got %d", i+1, status, rec.Code)
		}
	}

	// A different client has its own budget.
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected other client to pass, got %d", rec.Code)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("redis: connection refused")}
	handler := RateLimit(limiter, ByClientIP(false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected request through on limiter error, got %d", rec.Code)
	}
}

func TestRateLimit_NilLimiter(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	rec := httptest.NewRecorder()
	RateLimit(nil, ByClientIP(false))(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected passthrough, got %d", rec.Code)
	}
}

func TestByIdentity(t *testing.T) {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/submit-quiz", nil)
	req.RemoteAddr = "192.0.2.7:1234"

	if got := ByIdentity(false)(req); got != "ip:192.0.2.7" {
		t.Errorf("expected ip fallback, got %q", got)
	}

	ctx := context.WithValue(req.Context(), IdentityContextKey, &models.Identity{UserID: id})
	if got := ByIdentity(false)(req.WithContext(ctx)); got != "user:"+id.String() {
		t.Errorf("expected user key, got %q", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		headers    map[string]string
		remote     string
		want       string
	}{
		{"forwarded chain behind proxy", true, map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "10.0.0.1:80", "203.0.113.5"},
		{"real ip behind proxy", true, map[string]string{"X-Real-IP": "198.51.100.9"}, "10.0.0.1:80", "198.51.100.9"},
		{"proxy trusted without headers", true, nil, "192.0.2.1:4000", "192.0.2.1"},
		{"forwarded ignored without proxy", false, map[string]string{"X-Forwarded-For": "203.0.113.5"}, "192.0.2.1:4000", "192.0.2.1"},
		{"real ip ignored without proxy", false, map[string]string{"X-Real-IP": "198.51.100.9"}, "192.0.2.1:4000", "192.0.2.1"},
		{"remote addr", false, nil, "192.0.2.1:4000", "192.0.2.1"},
		{"remote without port", false, nil, "192.0.2.1", "192.0.2.1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req, tc.trustProxy); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRateLimit_ForwardedHeaderDoesNotResetBudget(t *testing.T) {
	limiter := &countingLimiter{limit: 1}
	handler := RateLimit(limiter, ByClientIP(false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	want := []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}
	for i, status := range want {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("1.2.3.%d", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != status {
			t.Fatalf("request %d: expected %d, got %d", i+1, status, rec.Code)
		}
	}
}
