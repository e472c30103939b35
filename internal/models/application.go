// internal/models/application.go
package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type ApplicationPackage struct {
	BaseModel
	UserID               uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	Name                 string          `json:"name" gorm:"size:255;not null"`
	ApplicationType      ApplicationType `json:"application_type" gorm:"type:varchar(20);not null;index"`
	Status               PackageStatus   `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	Priority             PackagePriority `json:"priority" gorm:"type:varchar(20);default:'medium'"`
	ApplicationDeadline  *time.Time      `json:"application_deadline"`
	Progress             int             `json:"progress" gorm:"default:0"`
	RequirementsProgress JSONB           `json:"requirements_progress" gorm:"type:jsonb"`
	TargetID             string          `json:"target_id,omitempty" gorm:"size:100"`
	TargetName           string          `json:"target_name,omitempty" gorm:"size:255"`
	IsExternal           bool            `json:"is_external" gorm:"default:false"`
	ExternalURL          string          `json:"external_url,omitempty" gorm:"size:500"`
	ExternalReference    string          `json:"external_reference,omitempty" gorm:"size:100"`
	Notes                string          `json:"notes,omitempty" gorm:"type:text"`

	// Relationships
	User             User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Requirements     []Requirement     `json:"requirements,omitempty" gorm:"foreignKey:ApplicationID"`
	Interviews       []Interview       `json:"interviews,omitempty" gorm:"foreignKey:ApplicationID"`
	SubmissionStatus *SubmissionStatus `json:"submission_status,omitempty" gorm:"foreignKey:ApplicationID"`
}

// DaysUntilDeadline returns the number of whole days until the application
// deadline, rounding partial days up. Zero means due right now, negative
// means overdue. Nil when no deadline is set.
func (a *ApplicationPackage) DaysUntilDeadline(now time.Time) *int {
	if a.ApplicationDeadline == nil {
		return nil
	}
	days := int(math.Ceil(a.ApplicationDeadline.Sub(now).Seconds() / 86400))
	return &days
}
