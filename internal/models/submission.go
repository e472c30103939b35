// internal/models/submission.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FollowUpEntry is one follow-up action recorded after a submission. Entries
// keep their insertion order inside the submission's follow-up list.
type FollowUpEntry struct {
	ID             uuid.UUID  `json:"id"`
	Date           time.Time  `json:"date" validate:"required"`
	FollowUpType   string     `json:"follow_up_type" validate:"required"`
	Notes          string     `json:"notes,omitempty"`
	Outcome        string     `json:"outcome,omitempty"`
	NextAction     string     `json:"next_action,omitempty"`
	NextActionDate *time.Time `json:"next_action_date,omitempty"`
}

type FollowUpList []FollowUpEntry

func (f FollowUpList) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

func (f *FollowUpList) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if str, isStr := value.(string); isStr {
			bytes = []byte(str)
		} else {
			return nil
		}
	}

	return json.Unmarshal(bytes, f)
}

type SubmissionStatus struct {
	BaseModel
	ApplicationID        uuid.UUID        `json:"application_id" gorm:"type:uuid;not null;uniqueIndex"`
	ApplicationSubmitted bool             `json:"application_submitted" gorm:"default:false"`
	SubmittedAt          *time.Time       `json:"submitted_at,omitempty"`
	SubmissionMethod     SubmissionMethod `json:"submission_method,omitempty" gorm:"type:varchar(20)"`
	ConfirmationNumber   string           `json:"confirmation_number,omitempty" gorm:"size:100"`
	ConfirmationReceived bool             `json:"confirmation_received" gorm:"default:false"`
	FollowUpRequired     bool             `json:"follow_up_required" gorm:"default:false"`
	FollowUps            FollowUpList     `json:"follow_ups" gorm:"type:jsonb"`

	// Relationships
	Application ApplicationPackage `json:"application,omitempty" gorm:"foreignKey:ApplicationID"`
}
