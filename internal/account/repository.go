package account

import (
	"context"

	"loyalty-system/internal/domain"
	"loyalty-system/internal/storage"
)

type RepositoryInterface interface {
	All(ctx context.Context) ([]domain.Customer, int64, error)
	Save(ctx context.Context, customers []domain.Customer, version int64) error
}

type Repository struct {
	coll storage.Collection[domain.Customer]
}

func NewRepository(store storage.Store) *Repository {
	return &Repository{coll: storage.NewCollection[domain.Customer](store, storage.Customers)}
}

func (r *Repository) All(ctx context.Context) ([]domain.Customer, int64, error) {
	return r.coll.Get(ctx)
}

func (r *Repository) Save(ctx context.Context, customers []domain.Customer, version int64) error {
	return r.coll.Put(ctx, customers, version)
}
