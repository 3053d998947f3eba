package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/groupbuy/internal/logging"
	"github.com/JonMunkholm/groupbuy/internal/shop"
	mw "github.com/JonMunkholm/groupbuy/internal/web/middleware"
	"github.com/JonMunkholm/groupbuy/internal/web/templates"
)

const multipartMemory = 8 << 20

// handleLoginPage shows the password prompt.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.isAdmin(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, templates.Login(templates.LoginParams{Layout: s.newLayout(w, r, "Admin login")}))
}

// handleLogin verifies the shared admin secret.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.flashRedirect(w, r, flashError, flashText(errBadForm), "/admin/login")
		return
	}

	if err := s.shop.Authenticate(r.PostForm.Get("password")); err != nil {
		logger.Warn("admin login failed", "ip", mw.ClientIP(r))
		s.flashRedirect(w, r, flashError, flashText(err), "/admin/login")
		return
	}

	s.session(r).Values[loggedInKey] = true
	logger.Info("admin logged in", "ip", mw.ClientIP(r))
	s.flashRedirect(w, r, flashSuccess, "Logged in", "/admin")
}

// handleLogout ends the admin session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	delete(s.session(r).Values, loggedInKey)
	logging.FromContext(r.Context()).Info("admin logged out")
	s.flashRedirect(w, r, flashSuccess, "Logged out", "/admin/login")
}

// handleDashboard renders the storefront settings, catalog and orders.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, templates.Admin(templates.AdminParams{
		Layout:   s.newLayout(w, r, "Admin"),
		Products: s.shop.Products(),
		Orders:   s.shop.OrdersByShipping(),
		Stats:    s.shop.Stats(),
	}))
}

// handleUpdateStorefront saves title, description, colors and background.
func (s *Server) handleUpdateStorefront(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(w, r); err != nil {
		s.adminFailed(w, r, "update storefront", err)
		return
	}

	sf := s.shop.Storefront()
	sf.Title = r.PostFormValue("title")
	sf.Description = r.PostFormValue("description")
	sf.TextColor = r.PostFormValue("text_color")
	sf.BackgroundColor = r.PostFormValue("background_color")

	if r.PostFormValue("remove_background") != "" {
		sf.Background = nil
	}
	img, err := s.formImage(r, "background")
	if err != nil {
		s.adminFailed(w, r, "update storefront", err)
		return
	}
	if img != nil {
		sf.Background = img
	}

	if err := s.shop.UpdateStorefront(sf); err != nil {
		s.adminFailed(w, r, "update storefront", err)
		return
	}

	logging.FromContext(r.Context()).Info("storefront updated", "title", sf.Title, "background", sf.Background != nil)
	s.flashRedirect(w, r, flashSuccess, "Storefront saved", "/admin")
}

// handleChangePassword replaces the admin secret.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.adminFailed(w, r, "change password", fmt.Errorf("%w: %v", errBadForm, err))
		return
	}

	if err := s.shop.ChangePassword(r.PostForm.Get("new_password"), r.PostForm.Get("confirm_password")); err != nil {
		s.adminFailed(w, r, "change password", err)
		return
	}

	logging.FromContext(r.Context()).Info("admin password changed")
	s.flashRedirect(w, r, flashSuccess, "Password changed", "/admin")
}

// handleAddProduct appends a product to the catalog.
func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(w, r); err != nil {
		s.adminFailed(w, r, "add product", err)
		return
	}

	price, err := parsePrice(r.PostFormValue("price"))
	if err != nil {
		s.adminFailed(w, r, "add product", err)
		return
	}
	img, err := s.formImage(r, "image")
	if err != nil {
		s.adminFailed(w, r, "add product", err)
		return
	}

	p, err := s.shop.AddProduct(shop.ProductInput{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Price:       price,
		Image:       img,
	})
	if err != nil {
		s.adminFailed(w, r, "add product", err)
		return
	}

	logging.FromContext(r.Context()).Info("product added", "product_id", p.ID, "name", p.Name, "price", p.Price)
	s.flashRedirect(w, r, flashSuccess, "Added "+p.Name, "/admin")
}

// handleRemoveProduct removes the product at a catalog position.
func (s *Server) handleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.adminFailed(w, r, "remove product", fmt.Errorf("%w: %v", errBadForm, err))
		return
	}

	index, err := parseIndex(r.PostForm.Get("index"))
	if err != nil {
		s.adminFailed(w, r, "remove product", err)
		return
	}

	p, err := s.shop.RemoveProductAt(index, r.PostForm.Get("id"))
	if err != nil {
		s.adminFailed(w, r, "remove product", err)
		return
	}

	logging.FromContext(r.Context()).Info("product removed", "product_id", p.ID, "name", p.Name, "index", index)
	s.flashRedirect(w, r, flashSuccess, "Removed "+p.Name, "/admin")
}

// adminFailed logs a rejected admin action and shows the reason on the dashboard.
func (s *Server) adminFailed(w http.ResponseWriter, r *http.Request, action string, err error) {
	logger := logging.FromContext(r.Context())
	if isUserFacing(err) {
		logger.Info("admin action rejected", "action", action, "error", err.Error())
	} else {
		logger.Error("admin action failed", "action", action, "error", err.Error())
	}
	s.flashRedirect(w, r, flashError, flashText(err), "/admin")
}

// parseMultipart reads a form that may carry an image upload.
func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxImageSize+maxFormBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isTooLarge(err) {
			return fmt.Errorf("%w: %v", shop.ErrImageTooLarge, err)
		}
		if errors.Is(err, http.ErrNotMultipart) {
			// Plain urlencoded forms without a file are fine.
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", errBadForm, err)
			}
			return nil
		}
		return fmt.Errorf("%w: %v", errBadForm, err)
	}
	return nil
}

// formImage loads the uploaded file in field, or returns nil when none was sent.
func (s *Server) formImage(r *http.Request, field string) (*shop.Image, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadForm, err)
	}
	defer file.Close()

	if header.Size == 0 {
		return nil, nil
	}
	return s.images.Load(file)
}
