package server

import (
	"context"
	"fmt"
	"net/http"

	"loyalty-system/internal/account"
	"loyalty-system/internal/card"
	"loyalty-system/internal/catalog"
	"loyalty-system/internal/common/httpx"
	"loyalty-system/internal/common/logger"
	"loyalty-system/internal/config"
	"loyalty-system/internal/notify"
	"loyalty-system/internal/order"
	"loyalty-system/internal/render"
	"loyalty-system/internal/session"
	"loyalty-system/internal/storage"
)

// Run wires repositories, services and handlers over the given store and
// blocks until ctx is canceled.
func Run(ctx context.Context, cfg config.Config, store storage.Store, events notify.Events, lg *logger.Logger) error {
	accounts := account.NewService(account.NewRepository(store))
	cards := card.NewService(card.NewRepository(store), render.NewGenerator(cfg.Render), events, cfg.Loyalty.StartingBonus)
	orders := order.NewService(order.NewRepository(store), cards, events, cfg.Loyalty.PointsDivisor)
	cat := catalog.NewService(store)

	h := NewHandler(accounts, cards, orders, cat, session.NewRegistry(), lg)

	srv := httpx.New(fmt.Sprintf(":%d", cfg.HTTP.Port), Router(h))
	lg.Info("http_listening", map[string]any{"port": cfg.HTTP.Port})
	return srv.Run(ctx)
}

func Router(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /menu", h.Menu)
	mux.HandleFunc("GET /promotions", h.Promotions)
	mux.HandleFunc("POST /cards", h.Authed(h.RequestCard))
	mux.HandleFunc("POST /orders", h.Authed(h.PlaceOrder))
	mux.HandleFunc("GET /orders", h.Authed(h.MyOrders))
	return mux
}
