// internal/services/document_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradpath/gradpath-backend/internal/models"
)

func TestCreateDocumentDefaultsToDraft(t *testing.T) {
	db := setupTestDB(t)
	service := NewDocumentService(db)
	user := createTestUser(t, db, "doccreate")

	document, err := service.CreateDocument(user.ID, &CreateDocumentRequest{
		Title:        "Personal statement",
		DocumentType: "essay",
		Content:      "Draft one.",
		Tags:         []string{"statement", "fall"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentStatusDraft, document.Status)
	assert.Empty(t, document.LinkedToRequirements)
	assert.False(t, document.HasFile())
}

func TestCreateDocumentRejectsFileAndContent(t *testing.T) {
	db := setupTestDB(t)
	service := NewDocumentService(db)
	user := createTestUser(t, db, "docboth")

	_, err := service.CreateDocument(user.ID, &CreateDocumentRequest{
		Title:        "Transcript",
		DocumentType: "transcript",
		FileURL:      "https://files.example.com/transcript.pdf",
		Content:      "inline text",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both a file and authored content")
}

func TestUpdateDocumentRefusesContentOnUpload(t *testing.T) {
	db := setupTestDB(t)
	service := NewDocumentService(db)
	user := createTestUser(t, db, "docupload")

	document, err := service.CreateDocument(user.ID, &CreateDocumentRequest{
		Title:        "Transcript scan",
		DocumentType: "transcript",
		FileURL:      "https://files.example.com/transcript.pdf",
		FileSize:     2048,
		MimeType:     "application/pdf",
	})
	require.NoError(t, err)

	content := "typed transcript"
	_, err = service.UpdateDocument(document.ID, user.ID, &UpdateDocumentRequest{
		Content: &content,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uploaded document")
}

func TestGetDocumentForeignUser(t *testing.T) {
	db := setupTestDB(t)
	service := NewDocumentService(db)
	owner := createTestUser(t, db, "docowner")
	other := createTestUser(t, db, "docother")
	document := createTestDocument(t, db, owner, "Resume")

	_, err := service.GetDocument(document.ID, other.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestDeleteDocumentRefusedWhileLinked(t *testing.T) {
	db := setupTestDB(t)
	documents := NewDocumentService(db)
	requirements := NewRequirementService(db)
	user := createTestUser(t, db, "doclinked")
	application := createTestApplication(t, db, user, "State University")
	document := createTestDocument(t, db, user, "Transcript")

	requirement, err := requirements.CreateRequirement(application.ID, user.ID, &CreateRequirementRequest{
		Name:            "Official transcript",
		Category:        models.RequirementCategoryAcademic,
		RequirementType: models.RequirementTypeDocument,
	})
	require.NoError(t, err)
	_, err = requirements.LinkDocument(requirement.ID, document.ID, user.ID)
	require.NoError(t, err)

	err = documents.DeleteDocument(document.ID, user.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "linked to a requirement")

	_, err = requirements.UnlinkDocument(requirement.ID, user.ID)
	require.NoError(t, err)
	require.NoError(t, documents.DeleteDocument(document.ID, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.Document{}).
		Where("id = ?", document.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestListDocumentsFilters(t *testing.T) {
	db := setupTestDB(t)
	documents := NewDocumentService(db)
	requirements := NewRequirementService(db)
	user := createTestUser(t, db, "doclist")
	application := createTestApplication(t, db, user, "State University")

	transcript := createTestDocument(t, db, user, "Transcript")
	essay, err := documents.CreateDocument(user.ID, &CreateDocumentRequest{
		Title:        "Why this program",
		DocumentType: "essay",
		Status:       models.DocumentStatusApproved,
		Content:      "Final draft.",
	})
	require.NoError(t, err)

	requirement, err := requirements.CreateRequirement(application.ID, user.ID, &CreateRequirementRequest{
		Name:            "Upload transcript",
		Category:        models.RequirementCategoryAcademic,
		RequirementType: models.RequirementTypeDocument,
	})
	require.NoError(t, err)
	_, err = requirements.LinkDocument(requirement.ID, transcript.ID, user.ID)
	require.NoError(t, err)

	docType := "essay"
	list, total, err := documents.ListDocuments(user.ID, DocumentFilterParams{
		PaginationParams: testPagination(),
		DocumentType:     &docType,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, essay.ID, list[0].ID)

	list, total, err = documents.ListDocuments(user.ID, DocumentFilterParams{
		PaginationParams: testPagination(),
		LinkedOnly:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, transcript.ID, list[0].ID)
	assert.Equal(t, []uuid.UUID{requirement.ID}, list[0].LinkedToRequirements)
}

func TestGetLinkedRequirementsOrdering(t *testing.T) {
	db := setupTestDB(t)
	documents := NewDocumentService(db)
	requirements := NewRequirementService(db)
	user := createTestUser(t, db, "doclinks")
	application := createTestApplication(t, db, user, "State University")
	document := createTestDocument(t, db, user, "Recommendation letter")

	second, err := requirements.CreateRequirement(application.ID, user.ID, &CreateRequirementRequest{
		Name:            "Letter for program B",
		Category:        models.RequirementCategoryProfessional,
		RequirementType: models.RequirementTypeDocument,
		DisplayOrder:    2,
	})
	require.NoError(t, err)
	first, err := requirements.CreateRequirement(application.ID, user.ID, &CreateRequirementRequest{
		Name:            "Letter for program A",
		Category:        models.RequirementCategoryProfessional,
		RequirementType: models.RequirementTypeDocument,
		DisplayOrder:    1,
	})
	require.NoError(t, err)

	// Linking moves the reference, so give each requirement its own copy
	copyDoc := createTestDocument(t, db, user, "Recommendation letter copy")
	_, err = requirements.LinkDocument(first.ID, document.ID, user.ID)
	require.NoError(t, err)
	_, err = requirements.LinkDocument(second.ID, copyDoc.ID, user.ID)
	require.NoError(t, err)

	linked, err := documents.GetLinkedRequirements(document.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, first.ID, linked[0].ID)
}
