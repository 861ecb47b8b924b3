package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"loyalty-system/internal/account"
	"loyalty-system/internal/card"
	"loyalty-system/internal/catalog"
	"loyalty-system/internal/common/logger"
	"loyalty-system/internal/domain"
	"loyalty-system/internal/order"
	"loyalty-system/internal/session"
)

type Handler struct {
	accounts account.ServiceInterface
	cards    card.ServiceInterface
	orders   order.ServiceInterface
	catalog  catalog.ServiceInterface
	sessions *session.Registry
	lg       *logger.Logger
}

func NewHandler(
	accounts account.ServiceInterface,
	cards card.ServiceInterface,
	orders order.ServiceInterface,
	cat catalog.ServiceInterface,
	sessions *session.Registry,
	lg *logger.Logger,
) *Handler {
	return &Handler{
		accounts: accounts,
		cards:    cards,
		orders:   orders,
		catalog:  cat,
		sessions: sessions,
		lg:       lg,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	customer, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(w, "register_failed", err)
		return
	}
	h.lg.Info("customer_registered", map[string]any{"customer_id": customer.ID})
	writeJSON(w, http.StatusCreated, domain.RegisterResponse{
		CustomerID: customer.ID,
		Name:       customer.Name,
		Email:      customer.Email,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	customer, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, "login_failed", err)
		return
	}
	token := h.sessions.Create(customer)
	writeJSON(w, http.StatusOK, domain.LoginResponse{
		Token:      token,
		CustomerID: customer.ID,
		Name:       customer.Name,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		h.sessions.Drop(token)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RequestCard(w http.ResponseWriter, r *http.Request, customer domain.Customer) {
	var req domain.RequestCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	c, created, err := h.cards.Issue(r.Context(), customer, domain.CardDetails{
		IdentityDocument: req.IdentityDocument,
		Phone:            req.Phone,
		DeliveryMethod:   req.DeliveryMethod,
		Branch:           req.Branch,
		Bank:             req.Bank,
	})
	if err != nil {
		h.fail(w, "card_request_failed", err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, domain.RequestCardResponse{
		CardID:     c.ID,
		Points:     c.Points,
		Created:    created,
		IssuedAt:   c.IssuedAt,
		FrontImage: c.FrontImage,
		BackImage:  c.BackImage,
		QRImage:    c.QRImage,
	})
}

func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Menu(r.Context())
	if err != nil {
		h.fail(w, "menu_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) Promotions(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Promotions(r.Context())
	if err != nil {
		h.fail(w, "promotions_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"promotions": items})
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request, customer domain.Customer) {
	var req domain.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	names := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		names = append(names, it.Name)
	}
	items, err := h.catalog.Resolve(r.Context(), names)
	if err != nil {
		h.fail(w, "order_failed", err)
		return
	}
	placed, err := h.orders.Place(r.Context(), customer, items, req.Bank)
	if err != nil {
		h.fail(w, "order_failed", err)
		return
	}
	h.lg.Info("order_placed", map[string]any{
		"order_id":      placed.OrderID,
		"customer_id":   customer.ID,
		"total":         placed.Total.String(),
		"points_earned": placed.PointsEarned,
	})
	writeJSON(w, http.StatusCreated, domain.PlaceOrderResponse{
		OrderID:      placed.OrderID,
		Total:        placed.Total,
		PointsEarned: placed.PointsEarned,
		PointBalance: placed.PointBalance,
		PlacedAt:     placed.PlacedAt,
	})
}

func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request, customer domain.Customer) {
	orders, err := h.orders.ListFor(r.Context(), customer.ID)
	if err != nil {
		h.fail(w, "list_orders_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// Authed resolves the bearer token before handing control to next.
func (h *Handler) Authed(next func(http.ResponseWriter, *http.Request, domain.Customer)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customer, ok := h.sessions.Resolve(bearerToken(r))
		if !ok {
			writeProblem(w, http.StatusUnauthorized, "invalid_session", domain.ErrInvalidSession.Error())
			return
		}
		next(w, r, customer)
	}
}

func (h *Handler) fail(w http.ResponseWriter, action string, err error) {
	status, kind := mapError(err)
	if status >= http.StatusInternalServerError {
		h.lg.Error(action, err, nil)
	}
	writeProblem(w, status, kind, err.Error())
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "duplicate_email"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, domain.ErrMissingRequiredField):
		return http.StatusBadRequest, "missing_field"
	case errors.Is(err, domain.ErrEmptyOrder):
		return http.StatusBadRequest, "empty_order"
	case errors.Is(err, domain.ErrUnknownMenuItem):
		return http.StatusUnprocessableEntity, "unknown_item"
	case errors.Is(err, domain.ErrNoSuchCard):
		return http.StatusNotFound, "no_card"
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	return strings.TrimPrefix(auth, "Bearer ")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeProblem keeps a single machine-readable error shape across handlers.
func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}
