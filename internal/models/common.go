// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
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

	return json.Unmarshal(bytes, j)
}

// Enums
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type ApplicationType string

const (
	ApplicationTypeScholarship ApplicationType = "scholarship"
	ApplicationTypeSchool      ApplicationType = "school"
	ApplicationTypeProgram     ApplicationType = "program"
	ApplicationTypeExternal    ApplicationType = "external"
)

type PackageStatus string

const (
	PackageStatusDraft      PackageStatus = "draft"
	PackageStatusInProgress PackageStatus = "in_progress"
	PackageStatusSubmitted  PackageStatus = "submitted"
	PackageStatusAccepted   PackageStatus = "accepted"
	PackageStatusRejected   PackageStatus = "rejected"
	PackageStatusWaitlisted PackageStatus = "waitlisted"
)

type PackagePriority string

const (
	PackagePriorityLow    PackagePriority = "low"
	PackagePriorityMedium PackagePriority = "medium"
	PackagePriorityHigh   PackagePriority = "high"
	PackagePriorityUrgent PackagePriority = "urgent"
)

type RequirementCategory string

const (
	RequirementCategoryAcademic       RequirementCategory = "academic"
	RequirementCategoryFinancial      RequirementCategory = "financial"
	RequirementCategoryPersonal       RequirementCategory = "personal"
	RequirementCategoryProfessional   RequirementCategory = "professional"
	RequirementCategoryAdministrative RequirementCategory = "administrative"
)

type RequirementType string

const (
	RequirementTypeDocument  RequirementType = "document"
	RequirementTypeTestScore RequirementType = "test_score"
	RequirementTypeFee       RequirementType = "fee"
	RequirementTypeInterview RequirementType = "interview"
	RequirementTypeOther     RequirementType = "other"
)

type RequirementStatus string

const (
	RequirementStatusPending       RequirementStatus = "pending"
	RequirementStatusInProgress    RequirementStatus = "in_progress"
	RequirementStatusCompleted     RequirementStatus = "completed"
	RequirementStatusWaived        RequirementStatus = "waived"
	RequirementStatusNotApplicable RequirementStatus = "not_applicable"
)

type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusReview   DocumentStatus = "review"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

type TemplateCategory string

const (
	TemplateCategoryGraduate      TemplateCategory = "graduate"
	TemplateCategoryUndergraduate TemplateCategory = "undergraduate"
	TemplateCategoryScholarship   TemplateCategory = "scholarship"
	TemplateCategoryCustom        TemplateCategory = "custom"
)

type InterviewType string

const (
	InterviewTypeVideo    InterviewType = "video"
	InterviewTypePhone    InterviewType = "phone"
	InterviewTypeInPerson InterviewType = "in_person"
)

type InterviewStatus string

const (
	InterviewStatusScheduled   InterviewStatus = "scheduled"
	InterviewStatusCompleted   InterviewStatus = "completed"
	InterviewStatusCancelled   InterviewStatus = "cancelled"
	InterviewStatusRescheduled InterviewStatus = "rescheduled"
)

type SubmissionMethod string

const (
	SubmissionMethodOnline   SubmissionMethod = "online"
	SubmissionMethodEmail    SubmissionMethod = "email"
	SubmissionMethodMail     SubmissionMethod = "mail"
	SubmissionMethodInPerson SubmissionMethod = "in_person"
)

// RequirementCategories lists every category the progress breakdown reports on.
var RequirementCategories = []RequirementCategory{
	RequirementCategoryAcademic,
	RequirementCategoryFinancial,
	RequirementCategoryPersonal,
	RequirementCategoryProfessional,
	RequirementCategoryAdministrative,
}

// RequirementStatuses lists every status the progress breakdown reports on.
var RequirementStatuses = []RequirementStatus{
	RequirementStatusPending,
	RequirementStatusInProgress,
	RequirementStatusCompleted,
	RequirementStatusWaived,
	RequirementStatusNotApplicable,
}

// IsDone reports whether a requirement status counts toward completion.
func (s RequirementStatus) IsDone() bool {
	return s == RequirementStatusCompleted ||
		s == RequirementStatusWaived ||
		s == RequirementStatusNotApplicable
}

func (s RequirementStatus) IsValid() bool {
	for _, v := range RequirementStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (c RequirementCategory) IsValid() bool {
	for _, v := range RequirementCategories {
		if c == v {
			return true
		}
	}
	return false
}

func (t RequirementType) IsValid() bool {
	switch t {
	case RequirementTypeDocument, RequirementTypeTestScore, RequirementTypeFee,
		RequirementTypeInterview, RequirementTypeOther:
		return true
	}
	return false
}
