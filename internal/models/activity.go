// internal/models/activity.go
package models

import (
	"github.com/google/uuid"
)

// ActivityLog records every mutating API request for the account activity
// trail. Written asynchronously by the logging middleware.
type ActivityLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:255;not null"`
	ResourceType string     `json:"resource_type" gorm:"size:100;index"`
	ResourceID   *uuid.UUID `json:"resource_id,omitempty" gorm:"type:uuid;index"`
	IPAddress    string     `json:"ip_address,omitempty" gorm:"size:45"`
	UserAgent    string     `json:"user_agent,omitempty" gorm:"size:500"`
	NewValues    JSONB      `json:"new_values,omitempty" gorm:"type:jsonb"`
}
