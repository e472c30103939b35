// internal/services/template_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradpath/gradpath-backend/internal/models"
)

func graduateBlueprints() []models.RequirementBlueprint {
	return []models.RequirementBlueprint{
		{Name: "Transcript", Category: models.RequirementCategoryAcademic, RequirementType: models.RequirementTypeDocument, IsRequired: true, DisplayOrder: 1},
		{Name: "Statement of purpose", Category: models.RequirementCategoryPersonal, RequirementType: models.RequirementTypeDocument, IsRequired: true, DisplayOrder: 2},
		{Name: "GRE scores", Category: models.RequirementCategoryAcademic, RequirementType: models.RequirementTypeTestScore, IsRequired: false, IsOptional: true, DisplayOrder: 3},
	}
}

func TestCreateAndGetTemplate(t *testing.T) {
	db := setupTestDB(t)
	service := NewTemplateService(db)
	user := createTestUser(t, db, "alice")

	template, err := service.CreateTemplate(user.ID, &CreateTemplateRequest{
		Name:       "My grad checklist",
		Category:   models.TemplateCategoryGraduate,
		Blueprints: graduateBlueprints(),
	})
	require.NoError(t, err)
	assert.False(t, template.IsSystemTemplate)
	require.NotNil(t, template.CreatedBy)
	assert.Equal(t, user.ID, *template.CreatedBy)

	fetched, err := service.GetTemplate(template.ID, user.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Blueprints, 3)
}

func TestGetTemplateHidesForeignCustomTemplates(t *testing.T) {
	db := setupTestDB(t)
	service := NewTemplateService(db)
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")

	template, err := service.CreateTemplate(owner.ID, &CreateTemplateRequest{
		Name:       "Private checklist",
		Category:   models.TemplateCategoryCustom,
		Blueprints: graduateBlueprints()[:1],
	})
	require.NoError(t, err)

	_, err = service.GetTemplate(template.ID, other.ID)
	require.Error(t, err)
}

func TestSystemTemplateIsImmutable(t *testing.T) {
	db := setupTestDB(t)
	service := NewTemplateService(db)
	user := createTestUser(t, db, "bob")

	system := &models.RequirementsTemplate{
		Name:             "Graduate School Application",
		Category:         models.TemplateCategoryGraduate,
		Blueprints:       graduateBlueprints(),
		IsSystemTemplate: true,
	}
	require.NoError(t, db.Create(system).Error)

	// Readable by every user
	fetched, err := service.GetTemplate(system.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsSystemTemplate)

	_, err = service.UpdateTemplate(system.ID, user.ID, &UpdateTemplateRequest{Name: "Renamed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "system template")

	err = service.DeleteTemplate(system.ID, user.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "system template")
}

func TestApplyTemplateCreatesPendingRequirements(t *testing.T) {
	db := setupTestDB(t)
	templateService := NewTemplateService(db)
	user := createTestUser(t, db, "carol")
	application := createTestApplication(t, db, user, "Berkeley EECS")

	system := &models.RequirementsTemplate{
		Name:             "Graduate School Application",
		Category:         models.TemplateCategoryGraduate,
		Blueprints:       graduateBlueprints(),
		IsSystemTemplate: true,
	}
	require.NoError(t, db.Create(system).Error)

	created, err := templateService.ApplyTemplate(system.ID, application.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, created, 3)
	for _, requirement := range created {
		assert.Equal(t, models.RequirementStatusPending, requirement.Status)
		assert.Equal(t, application.ID, requirement.ApplicationID)
	}

	// Progress snapshot reflects the new checklist
	var reloaded models.ApplicationPackage
	require.NoError(t, db.First(&reloaded, "id = ?", application.ID).Error)
	assert.Equal(t, 0, reloaded.Progress)
	assert.EqualValues(t, 3, reloaded.RequirementsProgress["total"])

	// Usage counter incremented
	var template models.RequirementsTemplate
	require.NoError(t, db.First(&template, "id = ?", system.ID).Error)
	assert.EqualValues(t, 1, template.UsageCount)
}

func TestApplyTemplateToForeignApplicationFails(t *testing.T) {
	db := setupTestDB(t)
	service := NewTemplateService(db)
	owner := createTestUser(t, db, "dave")
	intruder := createTestUser(t, db, "eve")
	application := createTestApplication(t, db, owner, "Oxford DPhil")

	system := &models.RequirementsTemplate{
		Name:             "Graduate School Application",
		Category:         models.TemplateCategoryGraduate,
		Blueprints:       graduateBlueprints(),
		IsSystemTemplate: true,
	}
	require.NoError(t, db.Create(system).Error)

	_, err := service.ApplyTemplate(system.ID, application.ID, intruder.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")

	// Nothing was copied
	var count int64
	require.NoError(t, db.Model(&models.Requirement{}).
		Where("application_id = ?", application.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListTemplatesMixesSystemAndOwn(t *testing.T) {
	db := setupTestDB(t)
	service := NewTemplateService(db)
	user := createTestUser(t, db, "frank")
	other := createTestUser(t, db, "grace")

	require.NoError(t, db.Create(&models.RequirementsTemplate{
		Name:             "Scholarship Application",
		Category:         models.TemplateCategoryScholarship,
		Blueprints:       graduateBlueprints()[:1],
		IsSystemTemplate: true,
	}).Error)

	_, err := service.CreateTemplate(user.ID, &CreateTemplateRequest{
		Name:       "Mine",
		Category:   models.TemplateCategoryCustom,
		Blueprints: graduateBlueprints()[:1],
	})
	require.NoError(t, err)

	_, err = service.CreateTemplate(other.ID, &CreateTemplateRequest{
		Name:       "Someone else's",
		Category:   models.TemplateCategoryCustom,
		Blueprints: graduateBlueprints()[:1],
	})
	require.NoError(t, err)

	templates, total, err := service.ListTemplates(user.ID, TemplateFilterParams{
		PaginationParams: testPagination(),
		IncludeSystem:    true,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	names := make([]string, 0, len(templates))
	for _, template := range templates {
		names = append(names, template.Name)
	}
	assert.ElementsMatch(t, []string{"Scholarship Application", "Mine"}, names)
}
