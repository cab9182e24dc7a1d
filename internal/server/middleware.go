package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gitlab.com/sprinkles/storefront/internal/session"
	"gitlab.com/sprinkles/storefront/internal/storage"
)

type ctxKey int

const accountKey ctxKey = iota

func withAccount(ctx context.Context, account *storage.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

func accountFrom(ctx context.Context) (*storage.Account, bool) {
	account, ok := ctx.Value(accountKey).(*storage.Account)
	return account, ok && account != nil
}

// identify resolves the session cookie to an account. Requests without a
// valid session continue anonymously.
func (s *Server) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok, err := s.sessions.Resolve(r.Context(), r)
		if err != nil {
			s.logger.Error("failed to resolve session", zap.Error(err))
			s.renderError(w, r, http.StatusServiceUnavailable, unavailableMessage)
			return
		}
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		account, err := s.engine.GetAccount(r.Context(), accountID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			next.ServeHTTP(w, r)
			return
		case err != nil:
			s.logger.Error("failed to load session account", zap.Int64("account_id", accountID), zap.Error(err))
			s.renderError(w, r, http.StatusServiceUnavailable, unavailableMessage)
			return
		}

		next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), account)))
	})
}

func (s *Server) requireUnauthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := accountFrom(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := accountFrom(r.Context()); !ok {
			s.sessions.AddFlash(w, r, session.FlashError, "Please log in to view that resource")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireRole must be mounted below requireAuthenticated.
func (s *Server) requireRole(role storage.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := accountFrom(r.Context())
			if !ok || account.Role != role {
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
