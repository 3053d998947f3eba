package web

import (
	"bytes"
	"net/http"

	"github.com/JonMunkholm/groupbuy/internal/logging"
	"github.com/JonMunkholm/groupbuy/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/gorilla/csrf"
)

func (s *Server) newLayout(w http.ResponseWriter, r *http.Request, title string) templates.Layout {
	return templates.Layout{
		PageTitle:  title,
		Storefront: s.shop.Storefront(),
		Admin:      s.isAdmin(r),
		Flashes:    s.takeFlashes(w, r),
		CSRFField:  csrf.TemplateField(r),
		CSRFToken:  csrf.Token(r),
	}
}

// render writes c with status. The page is rendered to a buffer first so
// a template failure still produces a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "error", err)
		http.Error(w, "An unexpected error occurred (ERR000)", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Debug("render: client went away", "error", err)
	}
}
