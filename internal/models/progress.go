// internal/models/progress.go
package models

import (
	"math"
)

// CategoryProgress is the per-category slice of the requirements breakdown.
type CategoryProgress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// RequirementsProgress is the full progress summary for one application
// package's requirement set. The package row carries a denormalized copy
// that is rewritten after every requirement mutation.
type RequirementsProgress struct {
	Total              int                                      `json:"total"`
	Completed          int                                      `json:"completed"`
	Required           int                                      `json:"required"`
	RequiredCompleted  int                                      `json:"required_completed"`
	Optional           int                                      `json:"optional"`
	OptionalCompleted  int                                      `json:"optional_completed"`
	Percentage         int                                      `json:"percentage"`
	RequiredPercentage int                                      `json:"required_percentage"`
	ByCategory         map[RequirementCategory]CategoryProgress `json:"by_category"`
	ByStatus           map[RequirementStatus]int                `json:"by_status"`
}

// AggregateProgress reduces a package's requirement set into totals,
// per-category and per-status breakdowns, and completion percentages.
// A requirement counts as completed iff its status is completed, waived
// or not_applicable. Must be recomputed from the full set whenever any
// requirement changes; the partitions cannot be patched from a delta.
func AggregateProgress(requirements []Requirement) RequirementsProgress {
	progress := RequirementsProgress{
		ByCategory: make(map[RequirementCategory]CategoryProgress, len(RequirementCategories)),
		ByStatus:   make(map[RequirementStatus]int, len(RequirementStatuses)),
	}

	for _, category := range RequirementCategories {
		progress.ByCategory[category] = CategoryProgress{}
	}
	for _, status := range RequirementStatuses {
		progress.ByStatus[status] = 0
	}

	for _, req := range requirements {
		progress.Total++
		done := req.Status.IsDone()
		if done {
			progress.Completed++
		}

		if req.IsRequired {
			progress.Required++
			if done {
				progress.RequiredCompleted++
			}
		}

		categoryProgress := progress.ByCategory[req.Category]
		categoryProgress.Total++
		if done {
			categoryProgress.Completed++
		}
		progress.ByCategory[req.Category] = categoryProgress

		progress.ByStatus[req.Status]++
	}

	progress.Optional = progress.Total - progress.Required
	progress.OptionalCompleted = progress.Completed - progress.RequiredCompleted
	progress.Percentage = roundPercentage(progress.Completed, progress.Total)
	progress.RequiredPercentage = roundPercentage(progress.RequiredCompleted, progress.Required)

	return progress
}

func roundPercentage(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// Readiness is the coarse four-level summary of how close the required
// subset of requirements is to fully complete.
type Readiness string

const (
	ReadinessReady       Readiness = "ready"
	ReadinessAlmostReady Readiness = "almost_ready"
	ReadinessInProgress  Readiness = "in_progress"
	ReadinessNeedsWork   Readiness = "needs_work"
)

// ClassifyReadiness maps a required-completion percentage to a readiness
// level. Boundary values land in the more-ready bucket: exactly 75 is
// almost_ready, exactly 50 is in_progress, only 100 is ready.
func ClassifyReadiness(requiredPercentage int) Readiness {
	switch {
	case requiredPercentage >= 100:
		return ReadinessReady
	case requiredPercentage >= 75:
		return ReadinessAlmostReady
	case requiredPercentage >= 50:
		return ReadinessInProgress
	default:
		return ReadinessNeedsWork
	}
}

// Rank orders readiness levels from needs_work (0) to ready (3).
func (r Readiness) Rank() int {
	switch r {
	case ReadinessReady:
		return 3
	case ReadinessAlmostReady:
		return 2
	case ReadinessInProgress:
		return 1
	default:
		return 0
	}
}

// Label is the human-facing text shown next to the readiness level.
func (r Readiness) Label() string {
	switch r {
	case ReadinessReady:
		return "Ready to apply!"
	case ReadinessAlmostReady:
		return "Almost ready"
	case ReadinessInProgress:
		return "In progress"
	default:
		return "Needs work"
	}
}

// Snapshot converts the progress summary to the JSONB form stored on the
// application package row.
func (p RequirementsProgress) Snapshot() JSONB {
	byCategory := make(map[string]interface{}, len(p.ByCategory))
	for category, counts := range p.ByCategory {
		byCategory[string(category)] = map[string]interface{}{
			"total":     counts.Total,
			"completed": counts.Completed,
		}
	}

	byStatus := make(map[string]interface{}, len(p.ByStatus))
	for status, count := range p.ByStatus {
		byStatus[string(status)] = count
	}

	return JSONB{
		"total":               p.Total,
		"completed":           p.Completed,
		"required":            p.Required,
		"required_completed":  p.RequiredCompleted,
		"optional":            p.Optional,
		"optional_completed":  p.OptionalCompleted,
		"percentage":          p.Percentage,
		"required_percentage": p.RequiredPercentage,
		"by_category":         byCategory,
		"by_status":           byStatus,
		"readiness":           string(ClassifyReadiness(p.RequiredPercentage)),
	}
}
