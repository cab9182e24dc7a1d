package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gitlab.com/sprinkles/storefront/internal/session"
	"gitlab.com/sprinkles/storefront/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"index",
	"login",
	"signup",
	"error",
	"customer_dashboard",
	"product",
	"customer_orders",
	"delivery_dashboard",
	"admin_dashboard",
	"admin_users",
	"admin_products",
	"admin_product_delete",
	"admin_orders",
	"order_history",
}

type views struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"date": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"roles": func() []storage.Role {
		return []storage.Role{storage.RoleCustomer, storage.RoleDelivery, storage.RoleAdmin}
	},
}

func loadViews() (*views, error) {
	v := &views{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		v.pages[name] = tpl
	}
	return v, nil
}

func mustLoadViews() *views {
	v, err := loadViews()
	if err != nil {
		panic(err)
	}
	return v
}

type pageData struct {
	Title   string
	Account *storage.Account
	Flashes []session.Flash
	Errors  []string
	Form    map[string]string
	Data    interface{}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	tpl, ok := s.views.pages[page]
	if !ok {
		s.logger.Error("unknown page", zap.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if account, ok := accountFrom(r.Context()); ok {
		data.Account = account
	}
	data.Flashes = s.sessions.Flashes(w, r)

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		s.logger.Error("failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, "error", pageData{
		Title:  http.StatusText(status),
		Errors: []string{message},
	})
}
