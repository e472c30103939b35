// internal/models/requirement.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Requirement struct {
	BaseModel
	ApplicationID    uuid.UUID           `json:"application_id" gorm:"type:uuid;not null;index"`
	Name             string              `json:"name" gorm:"size:255;not null"`
	Description      string              `json:"description,omitempty" gorm:"type:text"`
	Category         RequirementCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	RequirementType  RequirementType     `json:"requirement_type" gorm:"type:varchar(20);not null"`
	Status           RequirementStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	IsRequired       bool                `json:"is_required"`
	IsOptional       bool                `json:"is_optional"`
	DisplayOrder     int                 `json:"display_order" gorm:"default:0"`
	LinkedDocumentID *uuid.UUID          `json:"linked_document_id,omitempty" gorm:"type:uuid;index"`
	Notes            string              `json:"notes,omitempty" gorm:"type:text"`
	Deadline         *time.Time          `json:"deadline,omitempty"`

	// Relationships
	Application    ApplicationPackage `json:"application,omitempty" gorm:"foreignKey:ApplicationID"`
	LinkedDocument *Document          `json:"linked_document,omitempty" gorm:"foreignKey:LinkedDocumentID"`
}

// RequirementBlueprint is one entry of a template's ordered requirement list.
// Applying a template copies each blueprint into a new Requirement row.
type RequirementBlueprint struct {
	Name            string              `json:"name" validate:"required"`
	Description     string              `json:"description,omitempty"`
	Category        RequirementCategory `json:"category" validate:"required"`
	RequirementType RequirementType     `json:"requirement_type" validate:"required"`
	IsRequired      bool                `json:"is_required"`
	IsOptional      bool                `json:"is_optional"`
	DisplayOrder    int                 `json:"display_order"`
}

type BlueprintList []RequirementBlueprint

func (b BlueprintList) Value() (driver.Value, error) {
	if b == nil {
		return nil, nil
	}
	return json.Marshal(b)
}

func (b *BlueprintList) Scan(value interface{}) error {
	if value == nil {
		*b = nil
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

	return json.Unmarshal(bytes, b)
}

type RequirementsTemplate struct {
	BaseModel
	Name             string           `json:"name" gorm:"size:255;not null"`
	Description      string           `json:"description,omitempty" gorm:"type:text"`
	Category         TemplateCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	Blueprints       BlueprintList    `json:"blueprints" gorm:"type:jsonb"`
	UsageCount       int64            `json:"usage_count" gorm:"default:0"`
	IsSystemTemplate bool             `json:"is_system_template" gorm:"default:false"`
	CreatedBy        *uuid.UUID       `json:"created_by,omitempty" gorm:"type:uuid;index"`
}

// NewRequirement builds the Requirement row a blueprint expands into when a
// template is applied to a package. New rows always start out pending.
func (bp RequirementBlueprint) NewRequirement(applicationID uuid.UUID) Requirement {
	return Requirement{
		ApplicationID:   applicationID,
		Name:            bp.Name,
		Description:     bp.Description,
		Category:        bp.Category,
		RequirementType: bp.RequirementType,
		Status:          RequirementStatusPending,
		IsRequired:      bp.IsRequired,
		IsOptional:      bp.IsOptional,
		DisplayOrder:    bp.DisplayOrder,
	}
}
