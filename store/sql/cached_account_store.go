package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-ledger/core"
)

const accountCacheKeyPrefix = "go-ledger::account::v1"

// CachedAccountStore layers a read-through cache over an account store.
// Only Get is cached; balance reads that must observe the serialization
// point (AdjustBalance) always hit the base store, and every write
// invalidates the cached record.
type CachedAccountStore struct {
	base  core.AccountStore
	cache repositorycache.CacheService
}

func NewCachedAccountStore(base core.AccountStore, cacheService repositorycache.CacheService) (*CachedAccountStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base account store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: account cache service is required")
	}
	return &CachedAccountStore{base: base, cache: cacheService}, nil
}

// AccountCacheKey returns the deterministic cache key for an account record:
// go-ledger::account::v1::<id> with the id URL-path escaped.
func AccountCacheKey(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("sqlstore: account id is required")
	}
	return accountCacheKeyPrefix + "::" + url.PathEscape(id), nil
}

func (s *CachedAccountStore) Get(ctx context.Context, id string) (core.Account, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Account{}, fmt.Errorf("sqlstore: cached account store is not configured")
	}
	cacheKey, err := AccountCacheKey(id)
	if err != nil {
		return core.Account{}, err
	}
	return repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (core.Account, error) {
		return s.base.Get(ctx, id)
	})
}

func (s *CachedAccountStore) GetByNumber(ctx context.Context, number string) (core.Account, error) {
	if s == nil || s.base == nil {
		return core.Account{}, fmt.Errorf("sqlstore: cached account store is not configured")
	}
	return s.base.GetByNumber(ctx, number)
}

func (s *CachedAccountStore) ListByOwner(ctx context.Context, ownerID string) ([]core.Account, error) {
	if s == nil || s.base == nil {
		return nil, fmt.Errorf("sqlstore: cached account store is not configured")
	}
	return s.base.ListByOwner(ctx, ownerID)
}

func (s *CachedAccountStore) Create(ctx context.Context, in core.CreateAccountInput) (core.Account, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Account{}, fmt.Errorf("sqlstore: cached account store is not configured")
	}
	account, err := s.base.Create(ctx, in)
	if err != nil {
		return core.Account{}, err
	}
	if err := s.invalidate(ctx, account.ID); err != nil {
		return core.Account{}, err
	}
	return account, nil
}

func (s *CachedAccountStore) AdjustBalance(ctx context.Context, id string, delta int64) (int64, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return 0, fmt.Errorf("sqlstore: cached account store is not configured")
	}
	balance, err := s.base.AdjustBalance(ctx, id, delta)
	if err != nil {
		return 0, err
	}
	if err := s.invalidate(ctx, id); err != nil {
		return 0, err
	}
	return balance, nil
}

func (s *CachedAccountStore) UpdateStatus(ctx context.Context, id string, status core.AccountStatus) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached account store is not configured")
	}
	if err := s.base.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	return s.invalidate(ctx, id)
}

func (s *CachedAccountStore) invalidate(ctx context.Context, id string) error {
	cacheKey, err := AccountCacheKey(id)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

var _ core.AccountStore = (*CachedAccountStore)(nil)
