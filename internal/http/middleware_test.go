package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/placement-scheduler/internal/application"
)

func TestRequireSession(t *testing.T) {
	t.Parallel()

	t.Run("rejects requests without valid session tokens", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name           string
			cookieToken    *http.Cookie
			headerToken    string
			lookupError    error
			expectedStatus int
		}{
			{
				name:           "missing credentials",
				expectedStatus: http.StatusUnauthorized,
			},
			{
				name:           "expired session",
				headerToken:    "Bearer stale-token",
				lookupError:    application.ErrSessionExpired,
				expectedStatus: http.StatusUnauthorized,
			},
			{
				name:           "revoked session",
				cookieToken:    &http.Cookie{Name: "session_token", Value: "revoked-token"},
				lookupError:    application.ErrSessionRevoked,
				expectedStatus: http.StatusUnauthorized,
			},
			{
				name:           "unknown session",
				cookieToken:    &http.Cookie{Name: "session_token", Value: "unknown-token"},
				lookupError:    application.ErrNotFound,
				expectedStatus: http.StatusUnauthorized,
			},
			{
				name:           "repository failure",
				cookieToken:    &http.Cookie{Name: "session_token", Value: "transient-error"},
				lookupError:    errors.New("connection reset"),
				expectedStatus: http.StatusInternalServerError,
			},
		}

		for _, tc := range tests {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				req := httptest.NewRequest(http.MethodGet, "/protected", nil)
				if tc.cookieToken != nil {
					req.AddCookie(tc.cookieToken)
				}
				if tc.headerToken != "" {
					req.Header.Set("Authorization", tc.headerToken)
				}

				recorder := httptest.NewRecorder()

				handler := RequireSession(fakeSessionValidator{err: tc.lookupError}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					t.Fatal("next handler should not be called when authentication fails")
				}))
				handler.ServeHTTP(recorder, req)

				if recorder.Code != tc.expectedStatus {
					t.Fatalf("expected status %d, got %d", tc.expectedStatus, recorder.Code)
				}
			})
		}
	})

	t.Run("attaches authenticated principal to request context", func(t *testing.T) {
		t.Parallel()

		principal := application.Principal{OperatorID: "op-123", IsAdmin: true}

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "valid-token"})

		recorder := httptest.NewRecorder()

		var captured application.Principal
		middleware := RequireSession(fakeSessionValidator{principal: principal}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				t.Fatal("expected principal in request context")
			}
			captured = p
			w.WriteHeader(http.StatusOK)
		}))
		middleware.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
		}
		if captured != principal {
			t.Fatalf("expected principal %+v, got %+v", principal, captured)
		}
	})

	t.Run("prefers bearer header over cookie", func(t *testing.T) {
		t.Parallel()

		validator := &recordingSessionValidator{principal: application.Principal{OperatorID: "op-1"}}

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "cookie-token"})

		recorder := httptest.NewRecorder()
		handler := RequireSession(validator, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		handler.ServeHTTP(recorder, req)

		if validator.lastToken != "header-token" {
			t.Fatalf("expected header token to be validated, got %q", validator.lastToken)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	t.Run("attaches request scoped logger to context", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		recorder := httptest.NewRecorder()

		called := false
		handler := RequestLogger(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			if LoggerFromContext(r.Context()) == nil {
				t.Fatal("expected request logger in context")
			}
			w.WriteHeader(http.StatusOK)
		}))
		handler.ServeHTTP(recorder, req)

		if !called {
			t.Fatal("expected wrapped handler to be invoked")
		}
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
		}
	})
}

type fakeSessionValidator struct {
	principal application.Principal
	err       error
}

func (f fakeSessionValidator) ValidateSession(ctx context.Context, token string) (application.Principal, error) {
	return f.principal, f.err
}

type recordingSessionValidator struct {
	principal application.Principal
	err       error
	lastToken string
}

func (r *recordingSessionValidator) ValidateSession(ctx context.Context, token string) (application.Principal, error) {
	r.lastToken = token
	return r.principal, r.err
}
