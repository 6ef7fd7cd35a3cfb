package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func testManager() *Manager {
	return NewManager("rahasia-panitia", "", []byte("0123456789abcdef0123"), time.Hour)
}

func TestVerifyPassword_Plain(t *testing.T) {
	m := testManager()

	if err := m.VerifyPassword("rahasia-panitia"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := m.VerifyPassword("salah"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong password accepted: %v", err)
	}
	if err := m.VerifyPassword(""); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("empty password accepted: %v", err)
	}
}

func TestVerifyPassword_Hash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia-panitia"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generate hash: %v", err)
	}
	// The hash takes precedence over the plain password.
	m := NewManager("other-password", string(hash), []byte("0123456789abcdef0123"), time.Hour)

	if err := m.VerifyPassword("rahasia-panitia"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := m.VerifyPassword("other-password"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatal("plain password must be ignored when a hash is configured")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager()

	token, err := m.IssueToken()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := m.ValidateToken(token); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	m := testManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := m.IssueToken()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.now = time.Now
	if err := m.ValidateToken(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expired token accepted: %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	m := testManager()
	token, _ := m.IssueToken()

	other := NewManager("rahasia-panitia", "", []byte("another-secret-value"), time.Hour)
	if err := other.ValidateToken(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("token with wrong secret accepted: %v", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	m := testManager()
	if err := m.ValidateToken("not.a.token"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("garbage token accepted: %v", err)
	}
}

func TestMiddleware(t *testing.T) {
	m := testManager()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := m.Middleware(next)

	t.Run("no session redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusSeeOther {
			t.Fatalf("status = %d", rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/login" {
			t.Fatalf("location = %s", loc)
		}
	})

	t.Run("htmx request gets HX-Redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/records", nil)
		req.Header.Set("HX-Request", "true")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rr.Code)
		}
		if rr.Header().Get("HX-Redirect") != "/login" {
			t.Fatal("missing HX-Redirect header")
		}
	})

	t.Run("valid session passes through", func(t *testing.T) {
		token, _ := m.IssueToken()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(m.SessionCookie(token))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d", rr.Code)
		}
	})
}

func TestClearCookie(t *testing.T) {
	m := testManager()
	c := m.ClearCookie()
	if c.MaxAge != -1 || c.Value != "" {
		t.Fatalf("clear cookie = %+v", c)
	}
}
