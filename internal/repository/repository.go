// Package repository is the persistence gateway: a generic CRUD store
// shared by every entity, plus typed repositories where an entity needs
// relationship loading or referential checks beyond plain CRUD.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"heartguard-backend/internal/apperrors"
)

const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
)

// translateError turns store-level failures into the application error
// taxonomy so raw driver errors never leak past this package.
func translateError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("%s not found", entity)
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrRowIsReferenced:
			return apperrors.Conflict("%s is referenced by existing records", entity)
		case mysqlErrNoReferencedRow:
			return apperrors.NotFound("%s references a missing record", entity)
		case mysqlErrDuplicateEntry:
			return apperrors.Conflict("%s already exists", entity)
		}
	}

	// The test database (sqlite) reports constraint violations as text.
	msg := err.Error()
	if strings.Contains(msg, "FOREIGN KEY constraint") {
		return apperrors.Conflict("%s violates a referential constraint", entity)
	}
	if strings.Contains(msg, "UNIQUE constraint") {
		return apperrors.Conflict("%s already exists", entity)
	}

	return apperrors.Internal(err)
}

// Store is the generic gateway, parameterized over the entity type.
type Store[T any] struct {
	db     *gorm.DB
	entity string
}

func NewStore[T any](db *gorm.DB, entity string) *Store[T] {
	return &Store[T]{db: db, entity: entity}
}

func (s *Store[T]) GetByID(ctx context.Context, id any) (*T, error) {
	var out T
	if err := s.db.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		return nil, translateError(err, s.entity)
	}
	return &out, nil
}

func (s *Store[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := s.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, translateError(err, s.entity)
	}
	return out, nil
}

// ListBy filters on a single indexed column, e.g. the owning user id.
func (s *Store[T]) ListBy(ctx context.Context, column string, value any) ([]T, error) {
	var out []T
	if err := s.db.WithContext(ctx).Where(column+" = ?", value).Find(&out).Error; err != nil {
		return nil, translateError(err, s.entity)
	}
	return out, nil
}

func (s *Store[T]) Create(ctx context.Context, entity *T) error {
	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		return translateError(err, s.entity)
	}
	return nil
}

// Update applies a partial update after confirming the row exists.
func (s *Store[T]) Update(ctx context.Context, id any, values map[string]any) error {
	var existing T
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return translateError(err, s.entity)
	}
	if err := s.db.WithContext(ctx).Model(&existing).Updates(values).Error; err != nil {
		return translateError(err, s.entity)
	}
	return nil
}

// Patch updates the non-zero fields of entity onto the stored row.
func (s *Store[T]) Patch(ctx context.Context, id any, entity *T) error {
	var existing T
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return translateError(err, s.entity)
	}
	if err := s.db.WithContext(ctx).Model(&existing).Updates(entity).Error; err != nil {
		return translateError(err, s.entity)
	}
	return nil
}

func (s *Store[T]) Delete(ctx context.Context, id any) error {
	var zero T
	res := s.db.WithContext(ctx).Delete(&zero, "id = ?", id)
	if res.Error != nil {
		return translateError(res.Error, s.entity)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("%s not found", s.entity)
	}
	return nil
}
