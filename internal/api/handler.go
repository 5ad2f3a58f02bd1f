// Package api exposes the store engine over a JSON HTTP surface: product
// listing, per-token cart manipulation, and checkout.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/xenking/storefront/internal/auth"
	"github.com/xenking/storefront/internal/catalog"
	"github.com/xenking/storefront/internal/store"
)

// Handler serves the storefront API. Cart and checkout routes require a
// session token issued by the auth registry; the handler resolves the token
// to a store session and never passes credentials further down.
type Handler struct {
	catalog  *catalog.Catalog
	sessions *store.Manager
	users    *auth.Registry
}

// NewHandler constructs a Handler over the shared catalog, session manager,
// and user registry.
func NewHandler(cat *catalog.Catalog, sessions *store.Manager, users *auth.Registry) *Handler {
	return &Handler{
		catalog:  cat,
		sessions: sessions,
		users:    users,
	}
}

// Routes registers all API routes on mux under /api.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/signup", h.SignUp)
	mux.HandleFunc("POST /api/login", h.Login)
	mux.HandleFunc("POST /api/logout", h.requireToken(h.Logout))
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /api/cart", h.requireToken(h.ViewCart))
	mux.HandleFunc("POST /api/cart/items", h.requireToken(h.AddToCart))
	mux.HandleFunc("DELETE /api/cart/items/{index}", h.requireToken(h.RemoveFromCart))
	mux.HandleFunc("DELETE /api/cart", h.requireToken(h.ClearCart))
	mux.HandleFunc("POST /api/checkout", h.requireToken(h.Checkout))
}

// tokenKey is the context key for the authenticated session token.
type tokenKey struct{}

// requireToken gates a route on a valid session token, taken from the
// Authorization header ("Bearer <token>") or the X-Session-Token header.
func (h *Handler) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			token = r.Header.Get("X-Session-Token")
		}
		if _, ok := h.users.Authenticate(token); !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid session token")
			return
		}
		ctx := context.WithValue(r.Context(), tokenKey{}, token)
		next(w, r.WithContext(ctx))
	}
}

// sessionFor returns the store session bound to the request's token. Only
// call from routes wrapped in requireToken.
func (h *Handler) sessionFor(r *http.Request) *store.Session {
	return h.sessions.Session(sessionToken(r))
}

// sessionToken returns the request's authenticated session token.
func sessionToken(r *http.Request) string {
	t, _ := r.Context().Value(tokenKey{}).(string)
	return t
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}
