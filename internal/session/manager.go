package session

import (
	"net/http"

	"github.com/google/uuid"
)

const DefaultCookieName = "hoponhub_session"

// Manager resolves the session of an incoming request.
type Manager struct {
	Store      Store
	Codec      *Codec
	CookieName string
	Secure     bool
}

func NewManager(store Store, codec *Codec) *Manager {
	return &Manager{Store: store, Codec: codec, CookieName: DefaultCookieName}
}

// Load returns the request's session. A missing or tampered cookie yields a
// fresh session; fresh reports that case.
func (m *Manager) Load(r *http.Request) (sess *Session, fresh bool) {
	if ck, err := r.Cookie(m.cookieName()); err == nil && ck.Value != "" {
		if sid, err := m.Codec.Decode(ck.Value); err == nil {
			return New(sid, m.Store), false
		}
	}
	return New(uuid.NewString(), m.Store), true
}

// Cookie builds the cookie for sess. It has no expiry so the browser drops it
// when the browsing session ends.
func (m *Manager) Cookie(sess *Session) (*http.Cookie, error) {
	token, err := m.Codec.Encode(sess.ID)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     m.cookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

func (m *Manager) cookieName() string {
	if m.CookieName == "" {
		return DefaultCookieName
	}
	return m.CookieName
}
