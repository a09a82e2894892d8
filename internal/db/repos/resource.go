// Package repos provides access to resource-related database operations
package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a record cannot be resolved by id.
var ErrNotFound = errors.New("record not found")

// Resource provides generic storage operations for a persisted resource
// type. The generated CRUD endpoints operate exclusively through it.
type Resource[T any] struct {
	db *gorm.DB
}

// NewResource creates a resource store for the given model type.
func NewResource[T any](db *gorm.DB) *Resource[T] {
	return &Resource[T]{db: db}
}

// Query returns a model-scoped query builder for the resource type.
func (r *Resource[T]) Query(ctx context.Context) *gorm.DB {
	var model T
	return r.db.WithContext(ctx).Model(&model)
}

// List runs the given scoped query with pagination and ordering applied,
// resolving relational links on the results.
func (r *Resource[T]) List(query *gorm.DB, skip, limit int, order string) ([]T, error) {
	items := []T{}
	err := query.Preload(clause.Associations).
		Offset(skip).Limit(limit).Order(order).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return items, nil
}

// Get retrieves a record by its identifier with relational links resolved.
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var obj T
	err := r.db.WithContext(ctx).Preload(clause.Associations).
		Where("id = ?", id).First(&obj).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return &obj, nil
}

// Create persists a new record.
func (r *Resource[T]) Create(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// Save persists the record as a full replace of the stored row.
func (r *Resource[T]) Save(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Save(obj).Error; err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Delete removes a record.
func (r *Resource[T]) Delete(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Delete(obj).Error; err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
