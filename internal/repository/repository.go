package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOptions controls filtering, ordering and pagination for List and Count.
// Filter values translate as follows: a slice becomes an IN clause, a string
// containing '%' becomes a LIKE, anything else an exact match.
type ListOptions struct {
	Offset  int
	Limit   int
	Filters map[string]any
	OrderBy string
	Desc    bool
}

// Repository provides the generic data-access operations shared by every
// entity. Writes go through the caller's *gorm.DB, so running them on a
// transaction handle keeps everything uncommitted until the workflow commits.
type Repository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// Get returns the record with the given id, or nil when absent.
func (r *Repository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var out T
	err := r.db.WithContext(ctx).First(&out, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns records matching opts.
func (r *Repository[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	query := applyFilters(r.db.WithContext(ctx), opts.Filters)

	if opts.OrderBy != "" {
		dir := "ASC"
		if opts.Desc {
			dir = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", opts.OrderBy, dir))
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var out []T
	if err := query.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of records matching the filters.
func (r *Repository[T]) Count(ctx context.Context, filters map[string]any) (int64, error) {
	var model T
	var count int64
	query := applyFilters(r.db.WithContext(ctx).Model(&model), filters)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a record. The insert is flushed immediately so generated
// state is visible to subsequent reads in the same transaction.
func (r *Repository[T]) Create(ctx context.Context, obj *T) error {
	return r.db.WithContext(ctx).Create(obj).Error
}

// CreateBatch inserts several records in one statement.
func (r *Repository[T]) CreateBatch(ctx context.Context, objs []T) error {
	if len(objs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&objs).Error
}

// Update applies a partial update: only the supplied fields are written.
// Returns the updated record, or nil when the id does not exist.
func (r *Repository[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	var model T
	res := r.db.WithContext(ctx).Model(&model).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.Get(ctx, id)
}

// Delete removes the record with the given id. Returns false when nothing was
// deleted.
func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var model T
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether any record matches the filters.
func (r *Repository[T]) Exists(ctx context.Context, filters map[string]any) (bool, error) {
	count, err := r.Count(ctx, filters)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyFilters(query *gorm.DB, filters map[string]any) *gorm.DB {
	for key, value := range filters {
		switch {
		case isSlice(value):
			query = query.Where(fmt.Sprintf("%s IN ?", key), value)
		case isWildcard(value):
			query = query.Where(fmt.Sprintf("%s LIKE ?", key), value)
		default:
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}
	}
	return query
}

func isSlice(value any) bool {
	if value == nil {
		return false
	}
	return reflect.TypeOf(value).Kind() == reflect.Slice
}

func isWildcard(value any) bool {
	s, ok := value.(string)
	return ok && strings.Contains(s, "%")
}
