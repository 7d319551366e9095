package session

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	DefaultCookieName = "basketball_session"
	DefaultMaxAge     = 30 * 24 * time.Hour
)

type Options struct {
	CookieName string
	// Secrets sign session cookies. The first entry signs new cookies; every entry is accepted
	// when verifying, which allows rotating secrets without logging everyone out.
	Secrets [][]byte
	MaxAge  time.Duration
	Secure  bool
}

type payload struct {
	UserID string `json:"uid"`
}

// Manager issues signed, unencrypted session cookies. There is no server-side session store:
// the cookie is the session record.
type Manager struct {
	name   string
	codecs []securecookie.Codec
	maxAge time.Duration
	secure bool
}

func NewManager(opts Options) (*Manager, error) {
	name := strings.TrimSpace(opts.CookieName)
	if name == "" {
		name = DefaultCookieName
	}
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if len(opts.Secrets) == 0 {
		return nil, fmt.Errorf("session: at least one secret is required")
	}

	codecs := make([]securecookie.Codec, 0, len(opts.Secrets))
	for i, secret := range opts.Secrets {
		if len(secret) == 0 {
			return nil, fmt.Errorf("session: secret %d is empty", i)
		}
		codec := securecookie.New(secret, nil)
		codec.MaxAge(int(maxAge / time.Second))
		codec.SetSerializer(securecookie.JSONEncoder{})
		codecs = append(codecs, codec)
	}

	return &Manager{
		name:   name,
		codecs: codecs,
		maxAge: maxAge,
		secure: opts.Secure,
	}, nil
}

func (m *Manager) CookieName() string {
	return m.name
}

// Create returns the cookie that binds the response to userID.
func (m *Manager) Create(userID string) (*http.Cookie, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("session: user id is required")
	}

	value, err := securecookie.EncodeMulti(m.name, payload{UserID: userID}, m.codecs...)
	if err != nil {
		return nil, fmt.Errorf("session: encode cookie: %w", err)
	}

	return m.cookie(value, int(m.maxAge/time.Second)), nil
}

// Resolve returns the user id carried by the request's session cookie. Missing, tampered and
// expired cookies all resolve to ok=false.
func (m *Manager) Resolve(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(m.name)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	var out payload
	if err := securecookie.DecodeMulti(m.name, cookie.Value, &out, m.codecs...); err != nil {
		return "", false
	}
	if strings.TrimSpace(out.UserID) == "" {
		return "", false
	}
	return out.UserID, true
}

// Destroy returns an expired cookie that clears the session in the browser.
func (m *Manager) Destroy() *http.Cookie {
	cookie := m.cookie("", -1)
	cookie.Expires = time.Unix(0, 0)
	return cookie
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
