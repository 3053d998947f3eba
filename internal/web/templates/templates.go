// Package templates holds the page components for the storefront and the
// admin panel. Each page is the shared layout plus the page's "content"
// block, exposed as a templ.Component taking typed parameters.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/JonMunkholm/groupbuy/internal/shop"
	"github.com/a-h/templ"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"money": Money,
	"add":   func(a, b int) int { return a + b },
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}

var pages = map[string]*template.Template{
	"storefront.html": parse("storefront.html"),
	"login.html":      parse("login.html"),
	"admin.html":      parse("admin.html"),
}

func parse(page string) *template.Template {
	return template.Must(template.New(page).Funcs(funcs).ParseFS(files, "layout.html", page))
}

// Money formats a whole amount for display.
func Money(n int) string {
	return fmt.Sprintf("$%d", n)
}

// Flash is a one-time message shown at the top of the next page.
type Flash struct {
	Type    string
	Message string
}

// Layout carries what every page needs.
type Layout struct {
	PageTitle  string
	Storefront shop.Storefront
	Admin      bool
	Flashes    []Flash
	CSRFField  template.HTML
	CSRFToken  string
}

type ShippingOption struct {
	Key   string
	Label string
	Fee   int
}

type PaymentOption struct {
	Key   string
	Label string
}

// OrderForm is the customer form as submitted, kept verbatim so a rejected
// submission can be shown again with everything the customer typed.
type OrderForm struct {
	CustomerName     string
	Phone            string
	Quantities       map[string]string
	Shipping         string
	StoreName        string
	Address          string
	Payment          string
	PaymentReference string
	Note             string
}

// Qty returns the submitted quantity for a product, defaulting to 0.
func (f OrderForm) Qty(productID string) string {
	if q, ok := f.Quantities[productID]; ok && q != "" {
		return q
	}
	return "0"
}

type StorefrontParams struct {
	Layout
	Products    []shop.Product
	Shipping    []ShippingOption
	Payments    []PaymentOption
	Form        OrderForm
	Quote       shop.Quote
	Error       string
	BankDetails string
	LinePayID   string
}

type LoginParams struct {
	Layout
}

type AdminParams struct {
	Layout
	Products []shop.Product
	Orders   []shop.Order
	Stats    shop.OrderStats
}

// Storefront is the customer order form.
func Storefront(p StorefrontParams) templ.Component {
	return templ.FromGoHTML(pages["storefront.html"], p)
}

// Login is the admin password prompt.
func Login(p LoginParams) templ.Component {
	return templ.FromGoHTML(pages["login.html"], p)
}

// Admin is the operator dashboard.
func Admin(p AdminParams) templ.Component {
	return templ.FromGoHTML(pages["admin.html"], p)
}
