package models

import "time"

type Patient struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	// Optional link to a login account.
	UserID    *string   `gorm:"size:36;index" json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Predictions []Prediction `gorm:"foreignKey:PatientID;constraint:OnDelete:RESTRICT" json:"predictions,omitempty"`
}

type CreatePatientInput struct {
	Name        string  `json:"name" binding:"required"`
	DateOfBirth string  `json:"dateOfBirth" binding:"required"` // YYYY-MM-DD
	UserID      *string `json:"userId"`
}

// PatientDTO is the nested shape embedded in prediction responses.
type PatientDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

func (p *Patient) DTO() *PatientDTO {
	return &PatientDTO{ID: p.ID, Name: p.Name, DateOfBirth: p.DateOfBirth}
}
