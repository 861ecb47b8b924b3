package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyalty-system/internal/account"
	"loyalty-system/internal/card"
	"loyalty-system/internal/catalog"
	"loyalty-system/internal/common/logger"
	"loyalty-system/internal/config"
	"loyalty-system/internal/domain"
	"loyalty-system/internal/notify"
	"loyalty-system/internal/order"
	"loyalty-system/internal/render"
	"loyalty-system/internal/session"
	"loyalty-system/internal/storage"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	// Seed a menu the way an operator would ship menu.json.
	menu := storage.NewCollection[domain.MenuItem](store, storage.Menu)
	require.NoError(t, menu.Put(context.Background(), []domain.MenuItem{
		{Name: "Latte", Price: decimal.RequireFromString("12"), Category: "coffee"},
		{Name: "Brownie", Price: decimal.RequireFromString("8"), Category: "bakery"},
	}, 0))

	gen := render.NewGenerator(config.RenderConfig{OutputDir: t.TempDir(), Title: "Test Card"})
	cards := card.NewService(card.NewRepository(store), gen, notify.Noop{}, 5)
	accounts := account.NewService(account.NewRepository(store))
	orders := order.NewService(order.NewRepository(store), cards, notify.Noop{}, 10)

	h := NewHandler(accounts, cards, orders, catalog.NewService(store), session.NewRegistry(), logger.New("test"))
	return Router(h)
}

func do(t *testing.T, mux *http.ServeMux, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, mux *http.ServeMux) string {
	t.Helper()
	rr := do(t, mux, http.MethodPost, "/register", "", domain.RegisterRequest{
		Name: "Ana Torres", Email: "ana@example.com", Password: "secret",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, mux, http.MethodPost, "/login", "", domain.LoginRequest{
		Email: "ana@example.com", Password: "secret",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp domain.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func requestCard(t *testing.T, mux *http.ServeMux, token string) {
	t.Helper()
	rr := do(t, mux, http.MethodPost, "/cards", token, domain.RequestCardRequest{
		IdentityDocument: "12345678", Phone: "999-111-222", DeliveryMethod: "pickup",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func TestRegisterLoginOrderFlow(t *testing.T) {
	mux := newTestMux(t)
	token := login(t, mux)
	requestCard(t, mux, token)

	rr := do(t, mux, http.MethodPost, "/orders", token, domain.PlaceOrderRequest{
		Items: []domain.PlaceOrderItem{{Name: "Latte"}, {Name: "Brownie"}},
		Bank:  "BCP",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var placed domain.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &placed))
	assert.Equal(t, 1, placed.OrderID)
	assert.True(t, decimal.NewFromInt(20).Equal(placed.Total))
	assert.Equal(t, 2, placed.PointsEarned)
	assert.Equal(t, 7, placed.PointBalance)

	rr = do(t, mux, http.MethodGet, "/orders", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var listed struct {
		Orders []domain.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	require.Len(t, listed.Orders, 1)
	assert.Equal(t, 1, listed.Orders[0].ID)
}

func TestCardRequestIsIdempotentOverHTTP(t *testing.T) {
	mux := newTestMux(t)
	token := login(t, mux)

	body := domain.RequestCardRequest{IdentityDocument: "12345678", Phone: "999-111-222"}
	first := do(t, mux, http.MethodPost, "/cards", token, body)
	require.Equal(t, http.StatusCreated, first.Code)
	second := do(t, mux, http.MethodPost, "/cards", token, body)
	require.Equal(t, http.StatusOK, second.Code)

	var a, b domain.RequestCardResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.Equal(t, a.CardID, b.CardID)
	assert.False(t, b.Created)
}

func TestDuplicateEmailConflicts(t *testing.T) {
	mux := newTestMux(t)
	body := domain.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "x"}

	rr := do(t, mux, http.MethodPost, "/register", "", body)
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = do(t, mux, http.MethodPost, "/register", "", body)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestOrderRequiresSession(t *testing.T) {
	mux := newTestMux(t)
	rr := do(t, mux, http.MethodPost, "/orders", "bogus", domain.PlaceOrderRequest{
		Items: []domain.PlaceOrderItem{{Name: "Latte"}},
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestEmptyOrderRejected(t *testing.T) {
	mux := newTestMux(t)
	token := login(t, mux)
	requestCard(t, mux, token)

	rr := do(t, mux, http.MethodPost, "/orders", token, domain.PlaceOrderRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOrderWithoutCardIsNotFound(t *testing.T) {
	mux := newTestMux(t)
	token := login(t, mux)

	rr := do(t, mux, http.MethodPost, "/orders", token, domain.PlaceOrderRequest{
		Items: []domain.PlaceOrderItem{{Name: "Latte"}},
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUnknownMenuItemRejected(t *testing.T) {
	mux := newTestMux(t)
	token := login(t, mux)
	requestCard(t, mux, token)

	rr := do(t, mux, http.MethodPost, "/orders", token, domain.PlaceOrderRequest{
		Items: []domain.PlaceOrderItem{{Name: "Nonexistent"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestMenuIsPublic(t *testing.T) {
	mux := newTestMux(t)
	rr := do(t, mux, http.MethodGet, "/menu", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Items []domain.MenuItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 2)
}

func TestLogoutDropsSession(t *testing.T) {
	mux := newTestMux(t)
	token := login(t, mux)

	rr := do(t, mux, http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, mux, http.MethodGet, "/orders", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
