package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitlab.com/sprinkles/storefront/internal/repository"
)

var ErrInvalidToken = errors.New("invalid session token")

type Repository interface {
	Create(ctx context.Context, session *repository.Session) error
	GetActive(ctx context.Context, id uuid.UUID, now time.Time) (*repository.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Config struct {
	Secret        []byte
	TTL           time.Duration
	CookieName    string
	Secure        bool
	SweepInterval time.Duration
}

// Claims is the payload of the session cookie. Id holds the session row id
// and Subject the account id.
type Claims struct {
	jwt.StandardClaims
}

// Manager issues and resolves session cookies. The cookie only references a
// server-side session row, so logging out revokes it immediately.
type Manager struct {
	repo    Repository
	cfg     Config
	logger  *zap.Logger
	timeNow func() time.Time
}

func NewManager(repo Repository, cfg Config, logger *zap.Logger) *Manager {
	return &Manager{
		repo:    repo,
		cfg:     cfg,
		logger:  logger.With(zap.String("component", "session")),
		timeNow: time.Now,
	}
}

func (m *Manager) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.Secret)
}

func (m *Manager) parse(token string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.cfg.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}

// Begin creates a session for the account and sets the cookie.
func (m *Manager) Begin(ctx context.Context, w http.ResponseWriter, accountID int64) error {
	now := m.timeNow().UTC()
	session := &repository.Session{
		ID:        uuid.New(),
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.TTL),
	}
	if err := m.repo.Create(ctx, session); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	token, err := m.sign(&Claims{StandardClaims: jwt.StandardClaims{
		Id:        session.ID.String(),
		Subject:   strconv.FormatInt(accountID, 10),
		IssuedAt:  now.Unix(),
		ExpiresAt: session.ExpiresAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Resolve returns the account id behind the request's session cookie. A
// missing, forged, expired or revoked cookie yields ok == false without an
// error; err is only set when the session store failed.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (accountID int64, ok bool, err error) {
	sessionID, ok := m.sessionID(r)
	if !ok {
		return 0, false, nil
	}

	session, err := m.repo.GetActive(ctx, sessionID, m.timeNow().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to load session: %w", err)
	}
	return session.AccountID, true, nil
}

func (m *Manager) sessionID(r *http.Request) (uuid.UUID, bool) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return uuid.Nil, false
	}
	var claims Claims
	if err := m.parse(cookie.Value, &claims); err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.Id)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// End revokes the request's session and clears the cookie.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if sessionID, ok := m.sessionID(r); ok {
		if err := m.repo.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}
	m.clearCookie(w, m.cfg.CookieName)
	return nil
}

func (m *Manager) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// RunJanitor deletes expired sessions every SweepInterval until ctx ends.
func (m *Manager) RunJanitor(ctx context.Context) error {
	if m.cfg.SweepInterval <= 0 {
		return nil
	}
	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("session janitor stopped")
			return nil
		case <-ticker.C:
			m.sweep(ctx)
		}
	}
}

func (m *Manager) sweep(ctx context.Context) {
	removed, err := m.repo.DeleteExpired(ctx, m.timeNow().UTC())
	if err != nil {
		m.logger.Error("failed to delete expired sessions", zap.Error(err))
		return
	}
	if removed > 0 {
		m.logger.Info("deleted expired sessions", zap.Int64("count", removed))
	}
}
