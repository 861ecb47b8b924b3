package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyalty-system/internal/domain"
	"loyalty-system/internal/storage"
)

func newService(t *testing.T) (*Service, storage.Store) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewService(store), store
}

func seedMenu(t *testing.T, store storage.Store) {
	t.Helper()
	coll := storage.NewCollection[domain.MenuItem](store, storage.Menu)
	items := []domain.MenuItem{
		{Name: "Latte", Price: decimal.RequireFromString("12"), Category: "coffee"},
		{Name: "Brownie", Price: decimal.RequireFromString("8"), Category: "bakery"},
	}
	_, version, err := coll.Get(context.Background())
	require.NoError(t, err)
	require.NoError(t, coll.Put(context.Background(), items, version))
}

func TestMenuEmptyWhenAbsent(t *testing.T) {
	svc, _ := newService(t)

	menu, err := svc.Menu(context.Background())
	require.NoError(t, err)
	assert.Empty(t, menu)

	promos, err := svc.Promotions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, promos)
}

func TestResolveSnapshotsPrices(t *testing.T) {
	svc, store := newService(t)
	seedMenu(t, store)

	items, err := svc.Resolve(context.Background(), []string{"Latte", "Brownie", "Latte"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Latte", items[0].Name)
	assert.True(t, decimal.NewFromInt(12).Equal(items[0].Price))
	assert.Equal(t, "bakery", items[1].Category)
	assert.Equal(t, "Latte", items[2].Name)
}

func TestResolveUnknownItem(t *testing.T) {
	svc, store := newService(t)
	seedMenu(t, store)

	_, err := svc.Resolve(context.Background(), []string{"Latte", "Tea"})
	assert.ErrorIs(t, err, domain.ErrUnknownMenuItem)
}
