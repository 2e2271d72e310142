package models

import "time"

// Role discriminates the single users table instead of per-role subtypes.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// User is the identity record behind logins. Clinical identity lives in
// the Patient/Doctor rows, which may link back here via UserID.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	FullName     string    `gorm:"size:100;not null" json:"fullName"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"size:20;not null;default:'patient'" json:"role"`
	FCMToken     string    `gorm:"size:255" json:"-"`
	DateCreated  time.Time `gorm:"autoCreateTime" json:"dateCreated"`
	DateModified time.Time `gorm:"autoUpdateTime" json:"dateModified"`
}

type RegisterInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     Role   `json:"role" binding:"required,oneof=doctor patient"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	// Optional device token so pushes reach the device that logged in.
	FCMToken string `json:"fcmToken"`
}
