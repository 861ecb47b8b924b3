package catalog

import (
	"context"
	"fmt"

	"loyalty-system/internal/domain"
	"loyalty-system/internal/storage"
)

type ServiceInterface interface {
	Menu(ctx context.Context) ([]domain.MenuItem, error)
	Promotions(ctx context.Context) ([]domain.Promotion, error)
	Resolve(ctx context.Context, names []string) ([]domain.OrderItem, error)
}

// Service is the read-only view over the menu and promotions collections.
type Service struct {
	menu  storage.Collection[domain.MenuItem]
	promo storage.Collection[domain.Promotion]
}

func NewService(store storage.Store) *Service {
	return &Service{
		menu:  storage.NewCollection[domain.MenuItem](store, storage.Menu),
		promo: storage.NewCollection[domain.Promotion](store, storage.Promotions),
	}
}

func (s *Service) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	items, _, err := s.menu.Get(ctx)
	return items, err
}

func (s *Service) Promotions(ctx context.Context) ([]domain.Promotion, error) {
	items, _, err := s.promo.Get(ctx)
	return items, err
}

// Resolve turns selected menu item names into price snapshots for an order.
func (s *Service) Resolve(ctx context.Context, names []string) ([]domain.OrderItem, error) {
	menu, err := s.Menu(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]domain.MenuItem, len(menu))
	for _, m := range menu {
		byName[m.Name] = m
	}

	resolved := make([]domain.OrderItem, 0, len(names))
	for _, name := range names {
		m, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, domain.ErrUnknownMenuItem)
		}
		resolved = append(resolved, domain.OrderItem{Name: m.Name, Price: m.Price, Category: m.Category})
	}
	return resolved, nil
}
