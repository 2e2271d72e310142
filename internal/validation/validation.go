// Package validation holds the pure domain checks run before anything is
// persisted. Nothing here touches the database; referential checks are
// composed with these by the repository layer.
package validation

import (
	"time"

	"heartguard-backend/internal/apperrors"
	"heartguard-backend/internal/models"
)

const maxNameLength = 100

// ValidatePatient rejects empty or over-long names and birth dates in
// the future.
func ValidatePatient(p *models.Patient) error {
	if p.Name == "" {
		return apperrors.Validation("patient name must not be empty")
	}
	if len(p.Name) > maxNameLength {
		return apperrors.Validation("patient name must be at most %d characters", maxNameLength)
	}
	if p.DateOfBirth.After(time.Now()) {
		return apperrors.Validation("date of birth must not be in the future")
	}
	return nil
}

func ValidateDoctor(d *models.Doctor) error {
	if d.Name == "" {
		return apperrors.Validation("doctor name must not be empty")
	}
	if len(d.Name) > maxNameLength {
		return apperrors.Validation("doctor name must be at most %d characters", maxNameLength)
	}
	return nil
}

// ValidateFeatures checks every clinical feature against its domain in
// the standard heart-disease encoding. Running this before an inference
// call avoids a network round-trip on input the classifier would reject.
func ValidateFeatures(f models.ClinicalFeatures) error {
	switch {
	case f.Age <= 0 || f.Age > 120:
		return apperrors.Validation("age %d outside valid range (1-120)", f.Age)
	case f.Sex != 0 && f.Sex != 1:
		return apperrors.Validation("sex must be 0 or 1, got %d", f.Sex)
	case f.Cp < 0 || f.Cp > 3:
		return apperrors.Validation("chest pain type must be 0-3, got %d", f.Cp)
	case f.Trestbps <= 0:
		return apperrors.Validation("resting blood pressure must be positive, got %d", f.Trestbps)
	case f.Chol <= 0:
		return apperrors.Validation("cholesterol must be positive, got %d", f.Chol)
	case f.Fbs != 0 && f.Fbs != 1:
		return apperrors.Validation("fasting blood sugar flag must be 0 or 1, got %d", f.Fbs)
	case f.Restecg < 0 || f.Restecg > 2:
		return apperrors.Validation("resting ECG result must be 0-2, got %d", f.Restecg)
	case f.Thalach <= 0:
		return apperrors.Validation("max heart rate must be positive, got %d", f.Thalach)
	case f.Exang != 0 && f.Exang != 1:
		return apperrors.Validation("exercise angina flag must be 0 or 1, got %d", f.Exang)
	case f.Oldpeak < 0:
		return apperrors.Validation("ST depression must not be negative, got %g", f.Oldpeak)
	case f.Slope < 0 || f.Slope > 2:
		return apperrors.Validation("ST slope must be 0-2, got %d", f.Slope)
	case f.Ca < 0 || f.Ca > 3:
		return apperrors.Validation("vessel count must be 0-3, got %d", f.Ca)
	case f.Thal < 0 || f.Thal > 3:
		return apperrors.Validation("thalassemia category must be 0-3, got %d", f.Thal)
	}
	return nil
}

// ValidatePrediction checks the feature vector and the outcome fields.
// The invariant num == 0 <=> !hasHeartDisease holds for every stored row,
// whether entered manually or derived from the classifier.
func ValidatePrediction(p *models.Prediction) error {
	if err := ValidateFeatures(p.ClinicalFeatures); err != nil {
		return err
	}
	if p.Num < 0 || p.Num > 4 {
		return apperrors.Validation("severity code must be 0-4, got %d", p.Num)
	}
	if (p.Num == 0) == p.HasHeartDisease {
		return apperrors.Validation("hasHeartDisease=%t is inconsistent with num=%d", p.HasHeartDisease, p.Num)
	}
	return nil
}
