package repository

import (
	"context"

	"gorm.io/gorm"

	"heartguard-backend/internal/apperrors"
	"heartguard-backend/internal/models"
)

// PatientRepo adds the restrict-on-delete rule on top of the generic
// store: a patient with recorded predictions must not be deletable, to
// avoid orphaning predictive history.
type PatientRepo struct {
	*Store[models.Patient]
	db *gorm.DB
}

func Patients(db *gorm.DB) *PatientRepo {
	return &PatientRepo{Store: NewStore[models.Patient](db, "patient"), db: db}
}

func (r *PatientRepo) Delete(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Prediction{}).
		Where("patient_id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Internal(err)
	}
	if count > 0 {
		return apperrors.Conflict("patient has %d prediction(s) and cannot be deleted", count)
	}
	return r.Store.Delete(ctx, id)
}

// DoctorRepo mirrors PatientRepo for the other prediction parent.
type DoctorRepo struct {
	*Store[models.Doctor]
	db *gorm.DB
}

func Doctors(db *gorm.DB) *DoctorRepo {
	return &DoctorRepo{Store: NewStore[models.Doctor](db, "doctor"), db: db}
}

func (r *DoctorRepo) Delete(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Prediction{}).
		Where("doctor_id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Internal(err)
	}
	if count > 0 {
		return apperrors.Conflict("doctor has %d prediction(s) and cannot be deleted", count)
	}
	return r.Store.Delete(ctx, id)
}
