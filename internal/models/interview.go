// internal/models/interview.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Interview struct {
	BaseModel
	ApplicationID   uuid.UUID       `json:"application_id" gorm:"type:uuid;not null;index"`
	InterviewType   InterviewType   `json:"interview_type" gorm:"type:varchar(20);not null"`
	Status          InterviewStatus `json:"status" gorm:"type:varchar(20);default:'scheduled';index"`
	ScheduledDate   *time.Time      `json:"scheduled_date,omitempty"`
	DurationMinutes int             `json:"duration_minutes,omitempty" gorm:"default:0"`
	Interviewer     string          `json:"interviewer,omitempty" gorm:"size:255"`
	Location        string          `json:"location,omitempty" gorm:"size:255"`
	MeetingURL      string          `json:"meeting_url,omitempty" gorm:"size:500"`
	MeetingID       string          `json:"meeting_id,omitempty" gorm:"size:100"`
	MeetingPassword string          `json:"meeting_password,omitempty" gorm:"size:100"`
	Notes           string          `json:"notes,omitempty" gorm:"type:text"`

	// Relationships
	Application ApplicationPackage `json:"application,omitempty" gorm:"foreignKey:ApplicationID"`
}
