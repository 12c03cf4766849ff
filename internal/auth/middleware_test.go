package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// stubChecker implements AccountChecker with a canned answer.
type stubChecker struct {
	err error
}

func (s stubChecker) CheckActive(context.Context, string) error { return s.err }

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"case-insensitive scheme", "bearer abc", "abc", true},
		{"missing header", "", "", false},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", false},
		{"bare scheme", "Bearer ", "", false},
		{"no scheme", "abc.def.ghi", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, ok := BearerToken(r)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("BearerToken() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	ts := newTestTokenService(t)
	token, _ := ts.Generate(Identity{UserID: "u1", Username: "alice"})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Error("handler reached without identity in context")
		}
		if id.UserID != "u1" || id.Username != "alice" {
			t.Errorf("identity = %+v", id)
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token passes", func(t *testing.T) {
		h := RequireAuth(ts, stubChecker{})(next)
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		if rr.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rr.Code)
		}
	})

	t.Run("missing token is 401", func(t *testing.T) {
		h := RequireAuth(ts, stubChecker{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Error("handler must not run without a token")
		}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})

	t.Run("banned account is 401 even with valid token", func(t *testing.T) {
		h := RequireAuth(ts, stubChecker{err: errors.New("banned")})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Error("handler must not run for an inactive account")
		}))
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})
}

func TestOptionalAuth(t *testing.T) {
	ts := newTestTokenService(t)
	token, _ := ts.Generate(Identity{UserID: "u1", Username: "alice"})

	t.Run("anonymous passes through", func(t *testing.T) {
		h := OptionalAuth(ts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IdentityFromContext(r.Context()); ok {
				t.Error("anonymous request should carry no identity")
			}
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})

	t.Run("invalid token passes through as anonymous", func(t *testing.T) {
		h := OptionalAuth(ts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IdentityFromContext(r.Context()); ok {
				t.Error("invalid token should not yield an identity")
			}
		}))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer garbage")
		h.ServeHTTP(httptest.NewRecorder(), r)
	})

	t.Run("valid token yields identity", func(t *testing.T) {
		h := OptionalAuth(ts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := IdentityFromContext(r.Context()); !ok || id.UserID != "u1" {
				t.Errorf("identity = %+v, ok = %v", id, ok)
			}
		}))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		h.ServeHTTP(httptest.NewRecorder(), r)
	})
}
