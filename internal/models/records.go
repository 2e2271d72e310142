package models

import "time"

// Ancillary per-user records. Each is owned by exactly one User and
// carries free-form text specific to its purpose; they share the generic
// CRUD store and the restrict-on-delete ownership rule.

type Report struct {
	ID                  uint    `gorm:"primaryKey" json:"reportId"`
	UserID              string  `gorm:"size:36;not null;index" json:"userId"`
	ReportSummary       string  `gorm:"type:text" json:"reportSummary"`
	DetailedReports     string  `gorm:"type:text" json:"detailedReports"`
	GraphicalReports    string  `gorm:"type:text" json:"graphicalReports"`
	DownloadableReports string  `gorm:"type:text" json:"downloadableReports"`
	User                *User   `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
}

type Appointment struct {
	ID                 uint   `gorm:"primaryKey" json:"appointmentId"`
	UserID             string `gorm:"size:36;not null;index" json:"userId"`
	AppointmentList    string `gorm:"type:text" json:"appointmentList"`
	AppointmentDetails string `gorm:"type:text" json:"appointmentDetails"`
	User               *User  `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
}

type HealthData struct {
	ID                 uint   `gorm:"primaryKey" json:"healthDataId"`
	UserID             string `gorm:"size:36;not null;index" json:"userId"`
	PersonalHealthData string `gorm:"type:text" json:"personalHealthData"`
	HealthDataTrends   string `gorm:"type:text" json:"healthDataTrends"`
	User               *User  `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
}

type Message struct {
	ID              uint   `gorm:"primaryKey" json:"messageId"`
	UserID          string `gorm:"size:36;not null;index" json:"userId"`
	MessageThreads  string `gorm:"type:text" json:"messageThreads"`
	ThreadStatus    string `gorm:"size:50" json:"threadStatus"`
	MiniThreadStyle string `gorm:"size:50" json:"miniThreadStyle"`
	User            *User  `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
}

type Notification struct {
	ID               uint      `gorm:"primaryKey" json:"notificationId"`
	UserID           string    `gorm:"size:36;not null;index" json:"userId"`
	NotificationText string    `gorm:"type:text" json:"notificationText"`
	NotificationDate time.Time `json:"notificationDate"`
	User             *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
}

type Medication struct {
	ID             uint   `gorm:"primaryKey" json:"medicationId"`
	UserID         string `gorm:"size:36;not null;index" json:"userId"`
	MedicationList string `gorm:"type:text" json:"medicationList"`
	User           *User  `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
}

type TreatmentPlan struct {
	ID                   uint   `gorm:"primaryKey" json:"treatmentPlanId"`
	UserID               string `gorm:"size:36;not null;index" json:"userId"`
	TreatmentPlanDetails string `gorm:"type:text" json:"treatmentPlanDetails"`
	Progress             string `gorm:"size:100" json:"progress"`
	User                 *User  `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
}

// Suggestion links a doctor's advice to a patient, so it carries both
// parents instead of the single User owner the other records have.
type Suggestion struct {
	ID                        uint     `gorm:"primaryKey" json:"suggestionId"`
	DoctorID                  string   `gorm:"size:36;not null;index" json:"doctorId"`
	PatientID                 string   `gorm:"size:36;not null;index" json:"patientId"`
	SuggestionText            string   `gorm:"type:text" json:"suggestionText"`
	DetailedViewOfSuggestions string   `gorm:"type:text" json:"detailedViewOfSuggestions"`
	Doctor                    *Doctor  `gorm:"foreignKey:DoctorID;constraint:OnDelete:RESTRICT" json:"doctor,omitempty"`
	Patient                   *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:RESTRICT" json:"patient,omitempty"`
}
