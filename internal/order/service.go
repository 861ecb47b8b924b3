package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"loyalty-system/internal/domain"
	"loyalty-system/internal/notify"
)

const retryAttempts = 3

// PlacedOrder is what Place reports back to the caller.
type PlacedOrder struct {
	OrderID      int
	Total        decimal.Decimal
	PointsEarned int
	PointBalance int
	PlacedAt     time.Time
}

type ServiceInterface interface {
	Place(ctx context.Context, customer domain.Customer, items []domain.OrderItem, bank string) (PlacedOrder, error)
	ListFor(ctx context.Context, customerID string) ([]domain.Order, error)
}

// CardLedger is the slice of the card service the order ledger drives.
type CardLedger interface {
	Find(ctx context.Context, customerID string) (domain.Card, bool, error)
	CreditPoints(ctx context.Context, customerID string, amount int) (int, error)
}

type Service struct {
	repo    RepositoryInterface
	cards   CardLedger
	events  notify.Events
	divisor int64 // one point per this many currency units
}

func NewService(repo RepositoryInterface, cards CardLedger, events notify.Events, pointsDivisor int) *Service {
	return &Service{repo: repo, cards: cards, events: events, divisor: int64(pointsDivisor)}
}

// Place records an order and credits the earned points to the customer's
// card. A customer without a card fails the whole operation before anything
// is persisted.
func (s *Service) Place(ctx context.Context, customer domain.Customer, items []domain.OrderItem, bank string) (PlacedOrder, error) {
	if len(items) == 0 {
		return PlacedOrder{}, domain.ErrEmptyOrder
	}
	if _, ok, err := s.cards.Find(ctx, customer.ID); err != nil {
		return PlacedOrder{}, fmt.Errorf("place order: %w", err)
	} else if !ok {
		return PlacedOrder{}, domain.ErrNoSuchCard
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	points := int(total.Div(decimal.NewFromInt(s.divisor)).Floor().IntPart())

	order := domain.Order{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        items,
		Total:        total,
		Bank:         bank,
		PlacedAt:     time.Now().UTC(),
	}

	persisted := false
	for attempt := 0; attempt < retryAttempts && !persisted; attempt++ {
		orders, version, err := s.repo.All(ctx)
		if err != nil {
			return PlacedOrder{}, fmt.Errorf("place order: %w", err)
		}
		order.ID = len(orders) + 1
		err = s.repo.Save(ctx, append(orders, order), version)
		if err == nil {
			persisted = true
			break
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return PlacedOrder{}, fmt.Errorf("place order: %w", err)
		}
	}
	if !persisted {
		return PlacedOrder{}, fmt.Errorf("place order: %w", domain.ErrVersionConflict)
	}

	balance, err := s.cards.CreditPoints(ctx, customer.ID, points)
	if err != nil {
		// The order is on record at this point; surface the failed accrual.
		return PlacedOrder{}, fmt.Errorf("credit points for order %d: %w", order.ID, err)
	}

	s.events.OrderPlaced(ctx, domain.OrderPlacedEvent{
		OrderID:      order.ID,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		Total:        order.Total,
		PointsEarned: points,
		PlacedAt:     order.PlacedAt,
	})

	return PlacedOrder{
		OrderID:      order.ID,
		Total:        total,
		PointsEarned: points,
		PointBalance: balance,
		PlacedAt:     order.PlacedAt,
	}, nil
}

// ListFor returns the customer's orders in creation order, ids preserved.
func (s *Service) ListFor(ctx context.Context, customerID string) ([]domain.Order, error) {
	orders, _, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	mine := make([]domain.Order, 0)
	for _, o := range orders {
		if o.CustomerID == customerID {
			mine = append(mine, o)
		}
	}
	return mine, nil
}
