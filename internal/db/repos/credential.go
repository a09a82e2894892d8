package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/emotu/micro-cloud/internal/auth"
	"github.com/emotu/micro-cloud/internal/cache"
	"github.com/emotu/micro-cloud/internal/db/models"
)

// credentialCacheTTL bounds how long a key lookup may serve a stale record.
const credentialCacheTTL = 10 * time.Second

// CredentialRepository provides access to API credential records.
type CredentialRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewCredentialRepository creates a new credential repository instance.
// The cache is optional; pass nil to look up the database on every request.
func NewCredentialRepository(db *gorm.DB, c *cache.Cache) *CredentialRepository {
	return &CredentialRepository{db: db, cache: c}
}

// GetByID retrieves a credential by its identifier.
func (r *CredentialRepository) GetByID(ctx context.Context, id string) (*models.Credential, error) {
	var cred models.Credential
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return &cred, nil
}

// FindByKey resolves a credential by a presented secret key. The key prefix
// selects whether the test or live keyspace is matched.
func (r *CredentialRepository) FindByKey(ctx context.Context, key string) (*models.Credential, error) {
	if cached, ok := r.cache.Get(ctx, cacheKey(key)); ok {
		var cred models.Credential
		if err := json.Unmarshal([]byte(cached), &cred); err == nil {
			return &cred, nil
		}
	}

	column := "test_key"
	if auth.IsLiveKey(key) {
		column = "live_key"
	}

	var cred models.Credential
	err := r.db.WithContext(ctx).Where(column+" = ?", key).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credential: %w", err)
	}

	if data, err := json.Marshal(&cred); err == nil {
		r.cache.Set(ctx, cacheKey(key), string(data), credentialCacheTTL)
	}
	return &cred, nil
}

// Save persists changes to a credential and invalidates cached key lookups.
func (r *CredentialRepository) Save(ctx context.Context, cred *models.Credential) error {
	// Capture the keys before save; a reset replaces them and the old
	// entries must stop resolving.
	previous, err := r.GetByID(ctx, cred.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	if err := r.db.WithContext(ctx).Save(cred).Error; err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	if previous != nil {
		r.cache.Delete(ctx, cacheKey(previous.TestKey))
		r.cache.Delete(ctx, cacheKey(previous.LiveKey))
	}
	r.cache.Delete(ctx, cacheKey(cred.TestKey))
	r.cache.Delete(ctx, cacheKey(cred.LiveKey))
	return nil
}

func cacheKey(key string) string {
	return "credential:" + key
}
