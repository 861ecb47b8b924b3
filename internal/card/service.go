package card

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loyalty-system/internal/domain"
	"loyalty-system/internal/notify"
	"loyalty-system/internal/render"
)

const retryAttempts = 3

type ServiceInterface interface {
	Find(ctx context.Context, customerID string) (domain.Card, bool, error)
	Issue(ctx context.Context, customer domain.Customer, details domain.CardDetails) (domain.Card, bool, error)
	CreditPoints(ctx context.Context, customerID string, amount int) (int, error)
}

// Renderer produces the card artwork for a finalized card record.
type Renderer interface {
	Render(card domain.Card) (render.Artifacts, error)
}

type Service struct {
	repo     RepositoryInterface
	renderer Renderer
	events   notify.Events
	bonus    int // starting point balance for a freshly issued card
}

func NewService(repo RepositoryInterface, renderer Renderer, events notify.Events, startingBonus int) *Service {
	return &Service{repo: repo, renderer: renderer, events: events, bonus: startingBonus}
}

// Find returns the earliest-created card of the customer.
func (s *Service) Find(ctx context.Context, customerID string) (domain.Card, bool, error) {
	cards, _, err := s.repo.All(ctx)
	if err != nil {
		return domain.Card{}, false, fmt.Errorf("find card: %w", err)
	}
	if c, ok := findIn(cards, customerID); ok {
		return c, true, nil
	}
	return domain.Card{}, false, nil
}

// Issue creates at most one card per customer. A repeated request returns
// the existing card unchanged, with created=false, and does not touch the
// rendered artwork.
func (s *Service) Issue(ctx context.Context, customer domain.Customer, details domain.CardDetails) (domain.Card, bool, error) {
	if details.IdentityDocument == "" || details.Phone == "" {
		return domain.Card{}, false, domain.ErrMissingRequiredField
	}

	for attempt := 0; attempt < retryAttempts; attempt++ {
		cards, version, err := s.repo.All(ctx)
		if err != nil {
			return domain.Card{}, false, fmt.Errorf("issue card: %w", err)
		}
		if existing, ok := findIn(cards, customer.ID); ok {
			return existing, false, nil
		}

		card := domain.Card{
			ID:               len(cards) + 1,
			CustomerID:       customer.ID,
			CustomerName:     customer.Name,
			IdentityDocument: details.IdentityDocument,
			Phone:            details.Phone,
			DeliveryMethod:   details.DeliveryMethod,
			Branch:           details.Branch,
			Bank:             details.Bank,
			Points:           s.bonus,
			IssuedAt:         time.Now().UTC(),
		}
		artifacts, err := s.renderer.Render(card)
		if err != nil {
			return domain.Card{}, false, fmt.Errorf("issue card: %w", err)
		}
		card.FrontImage = artifacts.Front
		card.BackImage = artifacts.Back
		card.QRImage = artifacts.QR

		err = s.repo.Save(ctx, append(cards, card), version)
		if err == nil {
			s.events.CardIssued(ctx, domain.CardIssuedEvent{
				CardID:       card.ID,
				CustomerID:   card.CustomerID,
				CustomerName: card.CustomerName,
				Points:       card.Points,
				IssuedAt:     card.IssuedAt,
			})
			return card, true, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return domain.Card{}, false, fmt.Errorf("issue card: %w", err)
		}
	}
	return domain.Card{}, false, fmt.Errorf("issue card: %w", domain.ErrVersionConflict)
}

// CreditPoints adds amount to the customer's card balance and returns the
// new balance. A customer without a card is an error, never a silent drop.
func (s *Service) CreditPoints(ctx context.Context, customerID string, amount int) (int, error) {
	for attempt := 0; attempt < retryAttempts; attempt++ {
		cards, version, err := s.repo.All(ctx)
		if err != nil {
			return 0, fmt.Errorf("credit points: %w", err)
		}
		idx := -1
		for i := range cards {
			if cards[i].CustomerID == customerID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return 0, domain.ErrNoSuchCard
		}
		cards[idx].Points += amount

		err = s.repo.Save(ctx, cards, version)
		if err == nil {
			return cards[idx].Points, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return 0, fmt.Errorf("credit points: %w", err)
		}
	}
	return 0, fmt.Errorf("credit points: %w", domain.ErrVersionConflict)
}

func findIn(cards []domain.Card, customerID string) (domain.Card, bool) {
	for _, c := range cards {
		if c.CustomerID == customerID {
			return c, true
		}
	}
	return domain.Card{}, false
}
