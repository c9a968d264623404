package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"feedback-service/internal/adapter/cache"
	domain "feedback-service/internal/domain/user"
)

// UserStore is the persistent user store wrapped by CachedUserRepository.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) (domain.CreateOutcome, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Delete(ctx context.Context, username string) error
}

// CachedUserRepository wraps a persistent user store with a cache-aside lookup.
type CachedUserRepository struct {
	dbRepo UserStore
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
// A nil cache disables caching and every call goes to the store.
func NewCachedUserRepository(dbRepo UserStore, cache cache.UserCache, log *zap.Logger) *CachedUserRepository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository.
// New users are cached lazily on first lookup.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (domain.CreateOutcome, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByUsername retrieves a user by username using Cache-Aside pattern.
func (r *CachedUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, username)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.String("username", username), zap.Error(err))
		} else if cachedUser != nil {
			return cachedUser, nil
		}
	}

	// Cache miss or cache disabled: collapse concurrent lookups for the same user
	result, err, _ := r.group.Do("user:"+username, func() (any, error) {
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, username)
			if err == nil && cachedUser != nil {
				r.log.Debug("user retrieved from cache after single-flight wait", zap.String("username", username))
				return cachedUser, nil
			}
		}

		u, err := r.dbRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}

		if r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.String("username", username), zap.Error(err))
			}
		}

		return u, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}

// Delete deletes the user from DB and invalidates the cache.
func (r *CachedUserRepository) Delete(ctx context.Context, username string) error {
	if err := r.dbRepo.Delete(ctx, username); err != nil {
		return err
	}

	if r.cache != nil {
		if err := r.cache.Delete(ctx, username); err != nil {
			r.log.Warn("failed to invalidate cache after delete", zap.String("username", username), zap.Error(err))
		}
	}

	return nil
}
