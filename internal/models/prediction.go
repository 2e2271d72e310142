package models

import "time"

// ClinicalFeatures is the thirteen-field input vector of the standard
// heart-disease dataset encoding. Field names follow the dataset columns
// so the wire contract matches the dashboard and the classifier service.
type ClinicalFeatures struct {
	Age      int     `json:"age"`      // years
	Sex      int     `json:"sex"`      // 0 female, 1 male
	Cp       int     `json:"cp"`       // chest pain type 0..3
	Trestbps int     `json:"trestbps"` // resting blood pressure, mm Hg
	Chol     int     `json:"chol"`     // serum cholesterol, mg/dl
	Fbs      int     `json:"fbs"`      // fasting blood sugar > 120 mg/dl, 0/1
	Restecg  int     `json:"restecg"`  // resting ECG result 0..2
	Thalach  int     `json:"thalach"`  // max heart rate achieved
	Exang    int     `json:"exang"`    // exercise-induced angina, 0/1
	Oldpeak  float64 `json:"oldpeak"`  // ST depression vs rest
	Slope    int     `json:"slope"`    // peak exercise ST slope 0..2
	Ca       int     `json:"ca"`       // major vessels colored 0..3
	Thal     int     `json:"thal"`     // thalassemia category 0..3
}

// Prediction is a stored clinical risk assessment. Rows are immutable
// after creation except for administrative correction via PUT; parents
// are never cascade-deleted out from under them.
type Prediction struct {
	ID               uint             `gorm:"primaryKey" json:"predictionId"`
	PatientID        string           `gorm:"size:36;not null;index" json:"patientId"`
	DoctorID         string           `gorm:"size:36;not null;index" json:"doctorId"`
	HasHeartDisease  bool             `json:"hasHeartDisease"`
	PredictionDate   time.Time        `json:"predictionDate"`
	DateAdded        time.Time        `gorm:"autoCreateTime" json:"dateAdded"`
	ClinicalFeatures `gorm:"embedded"`
	// Raw severity code from the dataset: 0 none, 1..4 increasing.
	Num int `json:"num"`

	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"doctor,omitempty"`
}

// CreatePredictionInput is the manual-entry payload: the clinician sets
// the outcome directly. Nested patient/doctor objects are never accepted
// on write, only emitted on read.
type CreatePredictionInput struct {
	PatientID        string `json:"patientId" binding:"required"`
	DoctorID         string `json:"doctorId" binding:"required"`
	ClinicalFeatures
	HasHeartDisease  bool       `json:"hasHeartDisease"`
	Num              int        `json:"num"`
	PredictionDate   *time.Time `json:"predictionDate"`
}

// PredictRequest is the machine-assisted payload: the outcome comes from
// the external classifier, not the caller.
type PredictRequest struct {
	PatientID        string `json:"patientId" binding:"required"`
	DoctorID         string `json:"doctorId" binding:"required"`
	ClinicalFeatures
}

// PredictionDTO is the read shape with nested parent records.
type PredictionDTO struct {
	PredictionID    uint       `json:"predictionId"`
	PatientID       string     `json:"patientId"`
	DoctorID        string     `json:"doctorId"`
	HasHeartDisease bool       `json:"hasHeartDisease"`
	PredictionDate  time.Time  `json:"predictionDate"`
	DateAdded       time.Time  `json:"dateAdded"`
	ClinicalFeatures
	Num     int         `json:"num"`
	Patient *PatientDTO `json:"patient,omitempty"`
	Doctor  *DoctorDTO  `json:"doctor,omitempty"`
}

func (p *Prediction) DTO() *PredictionDTO {
	dto := &PredictionDTO{
		PredictionID:     p.ID,
		PatientID:        p.PatientID,
		DoctorID:         p.DoctorID,
		HasHeartDisease:  p.HasHeartDisease,
		PredictionDate:   p.PredictionDate,
		DateAdded:        p.DateAdded,
		ClinicalFeatures: p.ClinicalFeatures,
		Num:              p.Num,
	}
	if p.Patient != nil {
		dto.Patient = p.Patient.DTO()
	}
	if p.Doctor != nil {
		dto.Doctor = p.Doctor.DTO()
	}
	return dto
}
