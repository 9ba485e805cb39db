package user

import (
	"context"
	"errors"
	"fmt"

	domainUser "github.com/Anaselll/TeachMeApp/pkg/domain/user"
	"github.com/Anaselll/TeachMeApp/pkg/infra/cache"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrInvalidCacheType = errors.New("invalid type assertion for user model")

//go:generate mockery --name=Finder --dir=. --output=./mocks --filename=user_finder_mock.go --case=underscore
type Finder interface {
	// FindByIDs returns the users that exist among ids, keyed by id.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domainUser.User, error)
}

type finder struct {
	repo        domainUser.Repository
	memoryCache *cache.TTLMap
	logger      *logrus.Logger
}

func NewFinder(
	logger *logrus.Logger,
	repository domainUser.Repository,
	memoryCache *cache.TTLMap,
) Finder {
	return &finder{
		repo:        repository,
		memoryCache: memoryCache,
		logger:      logger,
	}
}

func (f *finder) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domainUser.User, error) {
	found := make(map[uuid.UUID]*domainUser.User, len(ids))
	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := found[id]; ok {
			continue
		}
		u, err := f.getUserFromMemoryCache(id)
		if err != nil {
			if errors.Is(err, ErrInvalidCacheType) {
				f.logger.WithError(err).Debug("memory cache read user failure")
			}
			missing = append(missing, id)
			continue
		}
		found[id] = u
	}
	if len(missing) == 0 {
		return found, nil
	}

	users, err := f.repo.ListByIDs(ctx, missing)
	if err != nil {
		f.logger.WithError(err).Error("failed to fetch users from repository")
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	for _, u := range users {
		found[u.ID] = u
		f.saveUserToMemoryCache(u)
	}
	return found, nil
}

func (f *finder) getUserFromMemoryCache(id uuid.UUID) (*domainUser.User, error) {
	if f.memoryCache == nil {
		return nil, errors.New("memory cache disabled")
	}
	cachedValue, ok := f.memoryCache.Get(id.String())
	if !ok {
		return nil, errors.New("user not found in memory cache")
	}
	u, ok := cachedValue.(*domainUser.User)
	if !ok {
		return nil, ErrInvalidCacheType
	}
	return u, nil
}

func (f *finder) saveUserToMemoryCache(u *domainUser.User) {
	if f.memoryCache == nil {
		return
	}
	f.memoryCache.Set(u.ID.String(), u)
}
