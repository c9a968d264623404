package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"feedback-service/internal/adapter/cache"
	domain "feedback-service/internal/domain/user"
	apperrors "feedback-service/pkg/errors"
)

// MockUserStore is a mock implementation of the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, u *domain.User) (domain.CreateOutcome, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(domain.CreateOutcome), args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func setupCachedRepo(t *testing.T) (*CachedUserRepository, *MockUserStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zaptest.NewLogger(t)
	store := new(MockUserStore)
	repo := NewCachedUserRepository(store, cache.NewRedisUserCache(client, time.Minute, log), log)
	return repo, store, mr
}

func TestGetByUsername_CachesAfterFirstLookup(t *testing.T) {
	repo, store, mr := setupCachedRepo(t)
	ctx := context.Background()

	u := &domain.User{Username: "user1", Email: "user1@email.com", PasswordHash: "hash"}
	store.On("GetByUsername", ctx, "user1").Return(u, nil).Once()

	first, err := repo.GetByUsername(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, u, first)
	assert.True(t, mr.Exists("user:user1"))

	second, err := repo.GetByUsername(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, *u, *second)

	store.AssertNumberOfCalls(t, "GetByUsername", 1)
}

func TestGetByUsername_NotFoundIsNotCached(t *testing.T) {
	repo, store, mr := setupCachedRepo(t)
	ctx := context.Background()

	store.On("GetByUsername", ctx, "ghost").Return(nil, apperrors.NewNotFoundError("user", ""))

	u, err := repo.GetByUsername(ctx, "ghost")
	assert.Nil(t, u)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.False(t, mr.Exists("user:ghost"))
}

func TestGetByUsername_CacheDownFallsBackToStore(t *testing.T) {
	repo, store, mr := setupCachedRepo(t)
	ctx := context.Background()

	mr.Close()
	u := &domain.User{Username: "user1"}
	store.On("GetByUsername", ctx, "user1").Return(u, nil)

	got, err := repo.GetByUsername(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestDelete_InvalidatesCache(t *testing.T) {
	repo, store, mr := setupCachedRepo(t)
	ctx := context.Background()

	store.On("GetByUsername", ctx, "user1").Return(&domain.User{Username: "user1"}, nil).Once()
	store.On("Delete", ctx, "user1").Return(nil)

	_, err := repo.GetByUsername(ctx, "user1")
	require.NoError(t, err)
	require.True(t, mr.Exists("user:user1"))

	require.NoError(t, repo.Delete(ctx, "user1"))
	assert.False(t, mr.Exists("user:user1"))
}

func TestDelete_StoreErrorKeepsCache(t *testing.T) {
	repo, store, mr := setupCachedRepo(t)
	ctx := context.Background()

	store.On("GetByUsername", ctx, "user1").Return(&domain.User{Username: "user1"}, nil).Once()
	store.On("Delete", ctx, "user1").Return(errors.New("db down"))

	_, err := repo.GetByUsername(ctx, "user1")
	require.NoError(t, err)

	assert.Error(t, repo.Delete(ctx, "user1"))
	assert.True(t, mr.Exists("user:user1"))
}

func TestCreate_Delegates(t *testing.T) {
	repo, store, _ := setupCachedRepo(t)
	ctx := context.Background()

	u := &domain.User{Username: "user1"}
	store.On("Create", ctx, u).Return(domain.CreateConflict, nil)

	outcome, err := repo.Create(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, domain.CreateConflict, outcome)
}

func TestNilCache(t *testing.T) {
	store := new(MockUserStore)
	repo := NewCachedUserRepository(store, nil, zaptest.NewLogger(t))
	ctx := context.Background()

	store.On("GetByUsername", ctx, "user1").Return(&domain.User{Username: "user1"}, nil)
	store.On("Delete", ctx, "user1").Return(nil)

	_, err := repo.GetByUsername(ctx, "user1")
	require.NoError(t, err)
	_, err = repo.GetByUsername(ctx, "user1")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "user1"))

	store.AssertNumberOfCalls(t, "GetByUsername", 2)
}
