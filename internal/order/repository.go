package order

import (
	"context"

	"loyalty-system/internal/domain"
	"loyalty-system/internal/storage"
)

type RepositoryInterface interface {
	All(ctx context.Context) ([]domain.Order, int64, error)
	Save(ctx context.Context, orders []domain.Order, version int64) error
}

type Repository struct {
	coll storage.Collection[domain.Order]
}

func NewRepository(store storage.Store) *Repository {
	return &Repository{coll: storage.NewCollection[domain.Order](store, storage.Orders)}
}

func (r *Repository) All(ctx context.Context) ([]domain.Order, int64, error) {
	return r.coll.Get(ctx)
}

func (r *Repository) Save(ctx context.Context, orders []domain.Order, version int64) error {
	return r.coll.Put(ctx, orders, version)
}
