// internal/models/document.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Document struct {
	BaseModel
	UserID       uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Title        string         `json:"title" gorm:"size:255;not null"`
	DocumentType string         `json:"document_type" gorm:"size:100;index"`
	Category     string         `json:"category,omitempty" gorm:"size:100;index"`
	Status       DocumentStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	FileURL      string         `json:"file_url,omitempty" gorm:"size:500"`
	FileSize     int64          `json:"file_size,omitempty" gorm:"default:0"`
	MimeType     string         `json:"mime_type,omitempty" gorm:"size:100"`
	Content      string         `json:"content,omitempty" gorm:"type:text"`
	Tags         pq.StringArray `json:"tags,omitempty" gorm:"type:text[]"`

	// LinkedToRequirements is derived from requirements.linked_document_id at
	// read time. The requirement side is the only stored side of the relation.
	LinkedToRequirements []uuid.UUID `json:"linked_to_requirements" gorm:"-"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// HasFile reports whether the document is upload-backed rather than authored
// in the editor. The two content sources are mutually exclusive.
func (d *Document) HasFile() bool {
	return d.FileURL != ""
}
