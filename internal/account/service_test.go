package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyalty-system/internal/domain"
	"loyalty-system/internal/storage"
)

func newService(t *testing.T) (*Service, *Repository) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	repo := NewRepository(store)
	return NewService(repo), repo
}

func TestRegisterThenAuthenticate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Ana Torres", "ana@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ana Torres", created.Name)

	got, err := svc.Authenticate(ctx, "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "secret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Ana", "ana@example.com", "other")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	customers, _, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(context.Background(), "", "ana@example.com", "secret")
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "secret")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateEmailIsCaseSensitive(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "secret")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "Ana@Example.com", "secret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
