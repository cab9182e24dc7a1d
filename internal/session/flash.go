package session

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const flashTTL = 5 * time.Minute

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

type flashClaims struct {
	Flashes []Flash `json:"flashes"`
	jwt.StandardClaims
}

func (m *Manager) flashCookieName() string {
	return m.cfg.CookieName + "_flash"
}

func (m *Manager) pendingFlashes(r *http.Request) []Flash {
	cookie, err := r.Cookie(m.flashCookieName())
	if err != nil || cookie.Value == "" {
		return nil
	}
	var claims flashClaims
	if err := m.parse(cookie.Value, &claims); err != nil {
		return nil
	}
	return claims.Flashes
}

// queuedFlashes returns the flashes already set on this response and drops
// that Set-Cookie line so a fresh one can replace it. ok is false when the
// response carries no flash cookie yet.
func (m *Manager) queuedFlashes(w http.ResponseWriter) (flashes []Flash, ok bool) {
	header := w.Header()
	lines := header.Values("Set-Cookie")
	kept := lines[:0:0]
	for _, line := range lines {
		cookie, err := http.ParseSetCookie(line)
		if err != nil || cookie.Name != m.flashCookieName() {
			kept = append(kept, line)
			continue
		}
		ok = true
		flashes = nil
		var claims flashClaims
		if cookie.Value != "" && m.parse(cookie.Value, &claims) == nil {
			flashes = claims.Flashes
		}
	}
	if ok {
		header.Del("Set-Cookie")
		for _, line := range kept {
			header.Add("Set-Cookie", line)
		}
	}
	return flashes, ok
}

// AddFlash queues a message for the next rendered page. Messages added
// earlier in the same response are kept.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, kind FlashKind, message string) {
	flashes, ok := m.queuedFlashes(w)
	if !ok {
		flashes = m.pendingFlashes(r)
	}
	flashes = append(flashes, Flash{Kind: kind, Message: message})

	now := m.timeNow()
	token, err := m.sign(&flashClaims{
		Flashes:        flashes,
		StandardClaims: jwt.StandardClaims{ExpiresAt: now.Add(flashTTL).Unix()},
	})
	if err != nil {
		m.logger.Error("failed to sign flash cookie")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.flashCookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flashes returns the queued messages and clears them.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	if _, err := r.Cookie(m.flashCookieName()); err != nil {
		return nil
	}
	m.clearCookie(w, m.flashCookieName())
	return m.pendingFlashes(r)
}
