// internal/notify/notify.go

// Package notify sends the courtesy email and SMS when an application
// reaches 100%. Everything here is best effort: a send failure is logged
// and counted, never surfaced to the student's reply.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"edubot/internal/common/config"
	"edubot/internal/common/logger"
	"edubot/internal/common/metrics"
	"edubot/internal/models"
)

// SESService and SNSService mirror the client methods used, so tests can
// substitute fakes.
type SESService interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Service struct {
	email  SESService
	sms    SNSService
	cfg    config.NotificationConfig
	logger logger.Logger
}

func NewService(email SESService, sms SNSService, cfg config.NotificationConfig, log logger.Logger) *Service {
	return &Service{
		email:  email,
		sms:    sms,
		cfg:    cfg,
		logger: log,
	}
}

// NotifyCompletion congratulates a student whose documents are all
// verified. user may be nil when the uploader has no account record (a
// WhatsApp-only applicant); there is nowhere to send in that case.
func (s *Service) NotifyCompletion(ctx context.Context, user *models.User, app *models.Application) {
	if user == nil {
		s.logger.Debug("Completion notification skipped, no account record", map[string]interface{}{
			"userId": app.UserID,
		})
		return
	}

	subject := "EduBot University - Application Complete"
	body := fmt.Sprintf(
		"Dear %s,\n\nAll required documents for your %s application have been verified. "+
			"Your application is now under review; we will contact you with the outcome.\n\n"+
			"EduBot University Admissions",
		user.Name, app.Program)

	if s.cfg.Email.Enabled && s.email != nil && user.Email != "" {
		if err := s.sendEmail(ctx, user.Email, subject, body); err != nil {
			s.logger.WithError(err).Error("Completion email failed", map[string]interface{}{
				"studentId": user.StudentID,
			})
			metrics.NotificationsSent.WithLabelValues("email", "failed").Inc()
		} else {
			metrics.NotificationsSent.WithLabelValues("email", "sent").Inc()
		}
	}

	if s.cfg.SMS.Enabled && s.sms != nil && user.Phone != "" {
		message := fmt.Sprintf("EduBot University: all documents for your %s application are verified. Your application is under review.", app.Program)
		if err := s.sendSMS(ctx, user.Phone, message); err != nil {
			s.logger.WithError(err).Error("Completion SMS failed", map[string]interface{}{
				"studentId": user.StudentID,
			})
			metrics.NotificationsSent.WithLabelValues("sms", "failed").Inc()
		} else {
			metrics.NotificationsSent.WithLabelValues("sms", "sent").Inc()
		}
	}
}

func (s *Service) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := s.email.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(s.cfg.Email.FromEmail),
	})
	return err
}

func (s *Service) sendSMS(ctx context.Context, to, message string) error {
	_, err := s.sms.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}
