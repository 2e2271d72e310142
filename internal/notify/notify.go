// Package notify records Notification rows and pushes them to patient
// devices over Firebase Cloud Messaging. Delivery is best-effort: a
// failed push is logged, never propagated into the request that
// triggered it.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"heartguard-backend/internal/models"
)

type Service struct {
	client *messaging.Client
	db     *gorm.DB
}

// NewService connects to FCM. With an empty credentials path pushes are
// disabled and only Notification rows are written.
func NewService(ctx context.Context, credentialsFile string, db *gorm.DB) (*Service, error) {
	svc := &Service{db: db}
	if credentialsFile == "" {
		return svc, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return svc, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return svc, fmt.Errorf("getting messaging client: %w", err)
	}
	svc.client = client
	return svc, nil
}

// PredictionRecorded notifies the patient's linked account that a new
// assessment was stored for them.
func (s *Service) PredictionRecorded(ctx context.Context, p *models.Prediction) {
	var patient models.Patient
	if err := s.db.WithContext(ctx).First(&patient, "id = ?", p.PatientID).Error; err != nil {
		slog.Warn("notification skipped: patient lookup failed", "patient_id", p.PatientID, "error", err)
		return
	}
	if patient.UserID == nil {
		return
	}

	text := fmt.Sprintf("A new heart disease assessment was recorded for %s.", patient.Name)
	notification := models.Notification{
		UserID:           *patient.UserID,
		NotificationText: text,
		NotificationDate: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		slog.Warn("failed to store notification", "user_id", *patient.UserID, "error", err)
		return
	}

	if s.client == nil {
		return
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", *patient.UserID).Error; err != nil || user.FCMToken == "" {
		return
	}
	s.push(ctx, user.FCMToken, "New assessment recorded", text, map[string]string{
		"predictionId": fmt.Sprint(p.ID),
	})
}

func (s *Service) push(ctx context.Context, token, title, body string, data map[string]string) {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := s.client.Send(ctx, msg); err != nil {
		slog.Warn("failed to send push notification", "error", err)
	}
}
