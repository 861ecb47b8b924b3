package card

import (
	"context"

	"loyalty-system/internal/domain"
	"loyalty-system/internal/storage"
)

type RepositoryInterface interface {
	All(ctx context.Context) ([]domain.Card, int64, error)
	Save(ctx context.Context, cards []domain.Card, version int64) error
}

type Repository struct {
	coll storage.Collection[domain.Card]
}

func NewRepository(store storage.Store) *Repository {
	return &Repository{coll: storage.NewCollection[domain.Card](store, storage.Cards)}
}

func (r *Repository) All(ctx context.Context) ([]domain.Card, int64, error) {
	return r.coll.Get(ctx)
}

func (r *Repository) Save(ctx context.Context, cards []domain.Card, version int64) error {
	return r.coll.Put(ctx, cards, version)
}
