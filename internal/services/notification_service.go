// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gradpath/gradpath-backend/internal/config"
	"github.com/gradpath/gradpath-backend/internal/models"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

// Authentication notifications
func (s *NotificationService) SendWelcomeEmail(user *models.User) error {
	template := s.getEmailTemplate("welcome")

	data := map[string]interface{}{
		"Username":     user.Username,
		"DashboardURL": fmt.Sprintf("%s/applications", s.config.Frontend.BaseURL),
		"PlatformName": "GradPath",
	}

	subject := "Welcome to GradPath"
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

func (s *NotificationService) SendPasswordResetEmail(user *models.User, resetToken string) error {
	template := s.getEmailTemplate("password_reset")

	data := map[string]interface{}{
		"Username":  user.Username,
		"ResetURL":  fmt.Sprintf("%s/reset-password?token=%s", s.config.Frontend.BaseURL, resetToken),
		"ExpiresIn": "1 hour",
	}

	subject := "Password Reset Request"
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

// Deadline notifications
func (s *NotificationService) SendDeadlineReminderEmail(user *models.User, application *models.ApplicationPackage) error {
	if application.ApplicationDeadline == nil {
		return nil
	}

	days := application.DaysUntilDeadline(time.Now())
	if days == nil {
		return nil
	}

	data := map[string]interface{}{
		"Username":        user.Username,
		"ApplicationName": application.Name,
		"TargetName":      application.TargetName,
		"Deadline":        application.ApplicationDeadline.Format("January 2, 2006"),
		"DaysRemaining":   *days,
		"ApplicationURL":  fmt.Sprintf("%s/applications/%s", s.config.Frontend.BaseURL, application.ID),
	}

	subject := fmt.Sprintf("Deadline Reminder - %s", application.Name)
	template := s.getEmailTemplate("deadline_reminder")
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

// SendUpcomingDeadlineReminders emails the owner of every package whose
// deadline falls within the next `days` days and that has not reached a
// terminal status. Returns the number of reminders sent.
func (s *NotificationService) SendUpcomingDeadlineReminders(days int) (int, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, days)

	var applications []models.ApplicationPackage
	err := s.db.
		Where("application_deadline IS NOT NULL AND application_deadline BETWEEN ? AND ?", now, cutoff).
		Where("status NOT IN ?", []models.PackageStatus{
			models.PackageStatusSubmitted,
			models.PackageStatusAccepted,
			models.PackageStatusRejected,
		}).
		Find(&applications).Error
	if err != nil {
		return 0, fmt.Errorf("failed to fetch applications: %w", err)
	}

	sent := 0
	for i := range applications {
		var user models.User
		if err := s.db.First(&user, "id = ?", applications[i].UserID).Error; err != nil {
			logrus.WithError(err).Warn("Failed to load user for deadline reminder")
			continue
		}
		if err := s.SendDeadlineReminderEmail(&user, &applications[i]); err != nil {
			logrus.WithError(err).Warn("Failed to send deadline reminder")
			continue
		}
		sent++
	}
	return sent, nil
}

// RunDeadlineReminderLoop sweeps for upcoming deadlines on a fixed
// interval until the process exits.
func (s *NotificationService) RunDeadlineReminderLoop(interval time.Duration, days int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if _, err := s.SendUpcomingDeadlineReminders(days); err != nil {
			logrus.WithError(err).Error("Deadline reminder sweep failed")
		}
	}
}

// Interview notifications
func (s *NotificationService) SendInterviewScheduledEmail(user *models.User, application *models.ApplicationPackage, interview *models.Interview) error {
	scheduledFor := "to be determined"
	if interview.ScheduledDate != nil {
		scheduledFor = interview.ScheduledDate.Format("January 2, 2006 at 3:04 PM")
	}

	data := map[string]interface{}{
		"Username":        user.Username,
		"ApplicationName": application.Name,
		"Interviewer":     interview.Interviewer,
		"Date":            scheduledFor,
		"Location":        interview.Location,
	}

	subject := fmt.Sprintf("Interview Scheduled - %s", application.Name)
	template := s.getEmailTemplate("interview_scheduled")
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

// sendEmail delivers a single HTML message over SMTP. With no SMTP host
// configured (local development) it logs the would-be delivery instead.
func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).
			Info("SMTP not configured, skipping email")
		return nil
	}

	auth := smtp.PlainAuth("",
		s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)
	msg := []byte(fmt.Sprintf(
		"To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		to, subject, body))
	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)

	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	if t, ok := emailTemplates[templateType]; ok {
		return t
	}
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}

var emailTemplates = map[string]EmailTemplate{
	"welcome": {
		Subject: "Welcome to GradPath",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome {{.Username}}!</h2>
	<p>Thank you for joining GradPath. You can start tracking your applications right away:</p>
	<a href="{{.DashboardURL}}">Go to your applications</a>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
	},
	"password_reset": {
		Subject: "Password Reset Request",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Password Reset</h2>
	<p>Hello {{.Username}},</p>
	<p>We received a request to reset your password. Click the link below to choose a new one:</p>
	<a href="{{.ResetURL}}">Reset Password</a>
	<p>This link expires in {{.ExpiresIn}}. If you did not request a reset, you can ignore this email.</p>
	<p>Best regards,<br>GradPath Team</p>
</body>
</html>`,
	},
	"deadline_reminder": {
		Subject: "Application Deadline Reminder",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Deadline Approaching</h2>
	<p>Hello {{.Username}},</p>
	<p>Your application <strong>{{.ApplicationName}}</strong> is due on {{.Deadline}} - that's {{.DaysRemaining}} days away.</p>
	<a href="{{.ApplicationURL}}">Review your checklist</a>
	<p>Best regards,<br>GradPath Team</p>
</body>
</html>`,
	},
	"interview_scheduled": {
		Subject: "Interview Scheduled",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Interview Scheduled</h2>
	<p>Hello {{.Username}},</p>
	<p>An interview for <strong>{{.ApplicationName}}</strong> has been scheduled for {{.Date}}.</p>
	<p>Interviewer: {{.Interviewer}}<br>Location: {{.Location}}</p>
	<p>Best regards,<br>GradPath Team</p>
</body>
</html>`,
	},
}
