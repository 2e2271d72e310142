package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"heartguard-backend/internal/apperrors"
	"heartguard-backend/internal/models"
)

type UserRepo struct {
	*Store[models.User]
	db *gorm.DB
}

func Users(db *gorm.DB) *UserRepo {
	return &UserRepo{Store: NewStore[models.User](db, "user"), db: db}
}

// FindByEmail is the login lookup. A missing user surfaces as
// Unauthorized, not NotFound, so login failures are indistinguishable
// from wrong passwords.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}
