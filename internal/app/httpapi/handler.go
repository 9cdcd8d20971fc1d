// Package httpapi exposes the storefront REST API.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	app "github.com/shoplane/storefront/internal/app"
	"github.com/shoplane/storefront/internal/app/domain/user"
	"github.com/shoplane/storefront/internal/app/metrics"
	"github.com/shoplane/storefront/internal/app/services/auth"
	"github.com/shoplane/storefront/internal/app/services/cartsvc"
	"github.com/shoplane/storefront/internal/app/services/catalogsvc"
	ordersvc "github.com/shoplane/storefront/internal/app/services/orders"
	userssvc "github.com/shoplane/storefront/internal/app/services/users"
	"github.com/shoplane/storefront/pkg/logger"
)

// Options tunes the HTTP surface.
type Options struct {
	AllowedOrigins []string
	AuthRatePerSec float64
	AuthRateBurst  int
	AuditPath      string
	AuditMax       int
}

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app   *app.Application
	log   *logger.Logger
	audit *auditLog
}

// NewHandler returns the storefront router with middleware applied.
func NewHandler(application *app.Application, opts Options, log *logger.Logger) (http.Handler, error) {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}

	sink, err := newFileAuditSink(opts.AuditPath)
	if err != nil {
		return nil, err
	}

	h := &handler{
		app:   application,
		log:   log,
		audit: newAuditLog(opts.AuditMax, sink),
	}

	limiter := newRateLimiter(opts.AuthRatePerSec, opts.AuthRateBurst)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", limiter.wrap(h.register)).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", limiter.wrap(h.login)).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", h.requireAuth(h.audited(h.me))).Methods(http.MethodGet)

	api.HandleFunc("/users", h.requireAdmin(h.audited(h.listUsers))).Methods(http.MethodGet)
	api.HandleFunc("/users", h.requireAdmin(h.audited(h.createUser))).Methods(http.MethodPost)

	api.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)

	api.HandleFunc("/cart", h.requireAuth(h.audited(h.getCart))).Methods(http.MethodGet)
	api.HandleFunc("/cart", h.requireAuth(h.audited(h.addCartItem))).Methods(http.MethodPost)
	api.HandleFunc("/cart/{productId}", h.requireAuth(h.audited(h.updateCartItem))).Methods(http.MethodPut)
	api.HandleFunc("/cart/{productId}", h.requireAuth(h.audited(h.removeCartItem))).Methods(http.MethodDelete)

	api.HandleFunc("/orders", h.requireAuth(h.audited(h.checkout))).Methods(http.MethodPost)
	api.HandleFunc("/orders", h.requireAuth(h.audited(h.listOrders))).Methods(http.MethodGet)

	api.HandleFunc("/admin/audit", h.requireAdmin(h.listAudit)).Methods(http.MethodGet)

	var chain http.Handler = r
	chain = requestIDMiddleware(chain)
	chain = loggingMiddleware(log)(chain)
	chain = corsMiddleware(opts.AllowedOrigins)(chain)
	return chain, nil
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- auth ---

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	u, token, err := h.app.Auth.Register(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": u, "token": token})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	u, token, err := h.app.Auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		metrics.RecordLoginAttempt("failure")
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	metrics.RecordLoginAttempt("success")
	writeJSON(w, http.StatusOK, map[string]any{"user": u, "token": token})
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	u, err := h.app.Auth.Me(r.Context(), id)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unknown user")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// --- users (admin) ---

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.app.Users.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	u, err := h.app.Users.Create(r.Context(), payload.Name, payload.Email, payload.Password, user.Role(payload.Role))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// --- catalog ---

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.app.Catalog.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeErrorMsg(w, http.StatusNotFound, "product not found")
		return
	}
	p, err := h.app.Catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// --- cart ---

func (h *handler) getCart(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	c, err := h.app.Cart.Get(r.Context(), id.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	var payload struct {
		ProductID int `json:"productId"`
		Quantity  int `json:"quantity"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	c, err := h.app.Cart.AddItem(r.Context(), id.UserID, payload.ProductID, payload.Quantity)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	productID, err := pathInt(r, "productId")
	if err != nil {
		writeErrorMsg(w, http.StatusNotFound, "item not found in cart")
		return
	}
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	c, err := h.app.Cart.SetQuantity(r.Context(), id.UserID, productID, payload.Quantity)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	productID, err := pathInt(r, "productId")
	if err != nil {
		writeErrorMsg(w, http.StatusNotFound, "item not found in cart")
		return
	}

	c, err := h.app.Cart.RemoveItem(r.Context(), id.UserID, productID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// --- orders ---

func (h *handler) checkout(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	o, err := h.app.Orders.Checkout(r.Context(), id.UserID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	metrics.RecordOrderPlaced(o.Total)
	writeJSON(w, http.StatusCreated, o)
}

// listOrders returns all orders for admins and the caller's own orders
// for everyone else.
func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	var (
		out any
		err error
	)
	if id.IsAdmin() {
		out, err = h.app.Orders.List(r.Context())
	} else {
		out, err = h.app.Orders.ListByUser(r.Context(), id.UserID)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// --- audit ---

// audited records an audit entry for each authenticated request.
func (h *handler) audited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		id, _ := identityFrom(r.Context())
		h.audit.add(auditEntry{
			Time:       time.Now(),
			UserID:     id.UserID,
			User:       id.Email,
			Role:       string(id.Role),
			Path:       r.URL.Path,
			Method:     r.Method,
			Status:     rec.status,
			RemoteAddr: clientIP(r),
			UserAgent:  r.UserAgent(),
		})
	}
}

func (h *handler) listAudit(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	writeJSON(w, http.StatusOK, h.audit.listLimit(limit))
}

// statusFor maps service sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, cartsvc.ErrProductNotFound),
		errors.Is(err, cartsvc.ErrCartNotFound),
		errors.Is(err, cartsvc.ErrItemNotFound),
		errors.Is(err, catalogsvc.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, cartsvc.ErrInvalidQuantity),
		errors.Is(err, ordersvc.ErrEmptyCart),
		errors.Is(err, auth.ErrDuplicateEmail),
		errors.Is(err, userssvc.ErrDuplicateEmail),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
