// Package auth implements the shared committee password gate. One
// password unlocks the app; a signed session cookie keeps it unlocked.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const SessionCookieName = "zakatku_session"

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrNoSession       = errors.New("no session")
	ErrInvalidSession  = errors.New("invalid session")
)

type Manager struct {
	password     string
	passwordHash string
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewManager(password, passwordHash string, secret []byte, ttl time.Duration) *Manager {
	return &Manager{
		password:     password,
		passwordHash: passwordHash,
		secret:       secret,
		ttl:          ttl,
		now:          time.Now,
	}
}

// VerifyPassword checks a login attempt. A configured bcrypt hash takes
// precedence over the plain password.
func (m *Manager) VerifyPassword(candidate string) error {
	if m.passwordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(m.passwordHash), []byte(candidate)); err != nil {
			return ErrInvalidPassword
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(m.password), []byte(candidate)) != 1 {
		return ErrInvalidPassword
	}
	return nil
}

// IssueToken creates a signed session token.
func (m *Manager) IssueToken() (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   "panitia",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks signature and expiry of a session token.
func (m *Manager) ValidateToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return ErrInvalidSession
	}
	return nil
}

// SessionCookie builds the cookie carrying a freshly issued token.
func (m *Manager) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie builds an expired cookie that removes the session.
func (m *Manager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// CheckRequest validates the session cookie on a request.
func (m *Manager) CheckRequest(r *http.Request) error {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ErrNoSession
	}
	return m.ValidateToken(cookie.Value)
}

// Middleware redirects unauthenticated browsers to the login page.
// HTMX partial requests get a client-side redirect header instead,
// a 302 would swap the login page into a fragment.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := m.CheckRequest(r); err != nil {
			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", "/login")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
