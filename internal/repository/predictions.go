package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"heartguard-backend/internal/apperrors"
	"heartguard-backend/internal/models"
)

// PredictionRepo loads predictions together with their parents in a
// single joined query, and creates them inside one transaction so a
// concurrent parent delete cannot race the insert.
type PredictionRepo struct {
	*Store[models.Prediction]
	db *gorm.DB
}

func Predictions(db *gorm.DB) *PredictionRepo {
	return &PredictionRepo{Store: NewStore[models.Prediction](db, "prediction"), db: db}
}

func (r *PredictionRepo) GetByID(ctx context.Context, id uint) (*models.Prediction, error) {
	var p models.Prediction
	err := r.db.WithContext(ctx).
		Joins("Patient").Joins("Doctor").
		First(&p, "predictions.id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "prediction")
	}
	return &p, nil
}

func (r *PredictionRepo) GetAll(ctx context.Context) ([]models.Prediction, error) {
	var out []models.Prediction
	err := r.db.WithContext(ctx).
		Joins("Patient").Joins("Doctor").
		Order("predictions.id").
		Find(&out).Error
	if err != nil {
		return nil, translateError(err, "prediction")
	}
	return out, nil
}

// Create verifies both parents and inserts the row in one transaction,
// so the insert fails with NotFound rather than succeeding against a
// concurrently deleted patient or doctor. The foreign keys backstop the
// same rule at the store level.
func (r *PredictionRepo) Create(ctx context.Context, p *models.Prediction) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		if err := tx.Select("id").First(&patient, "id = ?", p.PatientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("patient %s not found", p.PatientID)
			}
			return apperrors.Internal(err)
		}
		var doctor models.Doctor
		if err := tx.Select("id").First(&doctor, "id = ?", p.DoctorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("doctor %s not found", p.DoctorID)
			}
			return apperrors.Internal(err)
		}
		if err := tx.Create(p).Error; err != nil {
			return translateError(err, "prediction")
		}
		return nil
	})
	return err
}

// Save persists an administrative correction to an existing row.
func (r *PredictionRepo) Save(ctx context.Context, p *models.Prediction) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return translateError(err, "prediction")
	}
	return nil
}
