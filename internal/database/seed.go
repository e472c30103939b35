// internal/database/seed.go
package database

import (
	"github.com/gradpath/gradpath-backend/internal/models"
)

// systemTemplates returns the built-in requirement templates created on
// first boot. System templates are never mutated by users; applying one
// only copies its blueprints.
func systemTemplates() []models.RequirementsTemplate {
	return []models.RequirementsTemplate{
		{
			Name:             "Graduate School Application",
			Description:      "Standard checklist for a graduate program application",
			Category:         models.TemplateCategoryGraduate,
			IsSystemTemplate: true,
			Blueprints: models.BlueprintList{
				{Name: "Statement of Purpose", Category: models.RequirementCategoryAcademic, RequirementType: models.RequirementTypeDocument, IsRequired: true, DisplayOrder: 1},
				{Name: "Official Transcripts", Category: models.RequirementCategoryAcademic, RequirementType: models.RequirementTypeDocument, IsRequired: true, DisplayOrder: 2},
				{Name: "GRE Scores", Category: models.RequirementCategoryAcademic, RequirementType: models.RequirementTypeTestScore, IsRequired: true, DisplayOrder: 3},
				{Name: "Letters of Recommendation", Category: models.RequirementCategoryProfessional, RequirementType: models.RequirementTypeDocument, IsRequired: true, DisplayOrder: 4},
				{Name: "Resume / CV", Category: models.RequirementCategoryProfessional, RequirementType: models.RequirementTypeDocument, IsRequired: true, DisplayOrder: 5},
				{Name: "Application Fee", Category: models.RequirementCategoryAdministrative, RequirementType: models.RequirementTypeFee, IsRequired: true, DisplayOrder: 6},
				{Name: "Writing Sample", Category: models.RequirementCategoryAcademic, RequirementType: models.RequirementTypeDocument, IsOptional: true, DisplayOrder: 7},
			},
		},
		{
			Name:             "Undergraduate Application",
			Description:      "Standard checklist for an undergraduate admission application",
			Category:         models.TemplateCategoryUndergraduate,
			IsSystemTemplate: true,
			Blueprints: models.BlueprintList{
				{Name: "Personal Essay", Category: models.RequirementCategoryPersonal, RequirementType: models.RequirementTypeDocument, IsRequired: true, DisplayOrder: 1},
				{Name: "High School Transcripts", Category: models.RequirementCategoryAcademic, RequirementType: models.RequirementTypeDocument, IsRequired: true, DisplayOrder: 2},
				{Name: "SAT/ACT Scores", Category: models.RequirementCategoryAcademic, RequirementType: models.RequirementTypeTestScore, IsRequired: true, DisplayOrder: 3},
				{Name: "Teacher Recommendations", Category: models.RequirementCategoryAcademic, RequirementType: models.RequirementTypeDocument, IsRequired: true, DisplayOrder: 4},
				{Name: "Application Fee", Category: models.RequirementCategoryAdministrative, RequirementType: models.RequirementTypeFee, IsRequired: true, DisplayOrder: 5},
				{Name: "Extracurricular List", Category: models.RequirementCategoryPersonal, RequirementType: models.RequirementTypeOther, IsOptional: true, DisplayOrder: 6},
			},
		},
		{
			Name:             "Scholarship Application",
			Description:      "Standard checklist for a scholarship application",
			Category:         models.TemplateCategoryScholarship,
			IsSystemTemplate: true,
			Blueprints: models.BlueprintList{
				{Name: "Scholarship Essay", Category: models.RequirementCategoryPersonal, RequirementType: models.RequirementTypeDocument, IsRequired: true, DisplayOrder: 1},
				{Name: "Financial Aid Forms", Category: models.RequirementCategoryFinancial, RequirementType: models.RequirementTypeDocument, IsRequired: true, DisplayOrder: 2},
				{Name: "Proof of Enrollment", Category: models.RequirementCategoryAdministrative, RequirementType: models.RequirementTypeDocument, IsRequired: true, DisplayOrder: 3},
				{Name: "Recommendation Letter", Category: models.RequirementCategoryProfessional, RequirementType: models.RequirementTypeDocument, IsRequired: true, DisplayOrder: 4},
				{Name: "Interview", Category: models.RequirementCategoryPersonal, RequirementType: models.RequirementTypeInterview, IsOptional: true, DisplayOrder: 5},
			},
		},
	}
}
