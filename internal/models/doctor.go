package models

import "time"

type Doctor struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	// Optional link to a login account.
	UserID    *string   `gorm:"size:36;index" json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PredictionsMade []Prediction `gorm:"foreignKey:DoctorID;constraint:OnDelete:RESTRICT" json:"predictionsMade,omitempty"`
}

type CreateDoctorInput struct {
	Name   string  `json:"name" binding:"required"`
	UserID *string `json:"userId"`
}

type DoctorDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (d *Doctor) DTO() *DoctorDTO {
	return &DoctorDTO{ID: d.ID, Name: d.Name}
}
