package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func runIdentity(t *testing.T, method string, setup func(*http.Request)) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/loans", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Identity()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec, called
}

func TestIdentity_ReadsPassThroughAnonymously(t *testing.T) {
	rec, called := runIdentity(t, http.MethodGet, nil)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("GET without headers blocked: code=%d called=%v", rec.Code, called)
	}
}

func TestIdentity_MutationRequiresActor(t *testing.T) {
	rec, called := runIdentity(t, http.MethodPost, nil)
	if called {
		t.Fatalf("handler ran without an actor")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
}

func TestIdentity_MutationRejectsMalformedActor(t *testing.T) {
	rec, called := runIdentity(t, http.MethodPost, func(req *http.Request) {
		req.Header.Set(ActorIDHeader, "not-hex")
		req.Header.Set(EmailVerifiedHeader, "true")
	})
	if called {
		t.Fatalf("handler ran with a malformed actor id")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
}

func TestIdentity_MutationRequiresVerifiedEmail(t *testing.T) {
	rec, called := runIdentity(t, http.MethodPost, func(req *http.Request) {
		req.Header.Set(ActorIDHeader, strings.Repeat("a", 32))
	})
	if called {
		t.Fatalf("handler ran without email verification")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", rec.Code)
	}
}

func TestIdentity_MutationWithFullIdentity(t *testing.T) {
	actor := strings.Repeat("a", 32)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/loans", nil)
	req.Header.Set(ActorIDHeader, strings.ToUpper(actor)) // header casing must not matter
	req.Header.Set(EmailVerifiedHeader, "True")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := Identity()(func(c echo.Context) error {
		seen, _ = c.Get(actorIDKey).(string)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	if seen != actor {
		t.Fatalf("actor in context = %q, want lowercased %q", seen, actor)
	}
}
