// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthPasswordReset      = "auth.password_reset"
	KeyAuthPasswordResetSent  = "auth.password_reset_sent"
	KeyAccessDenied           = "auth.access_denied"

	// User settings
	KeyUserSettingsUpdated = "user.settings_updated"
	KeyUserNotFound        = "user.not_found"
	KeyUserAccountDeleted  = "user.account_deleted"

	// Application packages
	KeyApplicationCreated  = "application.created"
	KeyApplicationUpdated  = "application.updated"
	KeyApplicationDeleted  = "application.deleted"
	KeyApplicationNotFound = "application.not_found"

	// Requirements
	KeyRequirementCreated          = "requirement.created"
	KeyRequirementUpdated          = "requirement.updated"
	KeyRequirementDeleted          = "requirement.deleted"
	KeyRequirementNotFound         = "requirement.not_found"
	KeyRequirementStatusUpdated    = "requirement.status_updated"
	KeyRequirementDocumentLinked   = "requirement.document_linked"
	KeyRequirementDocumentUnlinked = "requirement.document_unlinked"

	// Documents
	KeyDocumentCreated  = "document.created"
	KeyDocumentUpdated  = "document.updated"
	KeyDocumentDeleted  = "document.deleted"
	KeyDocumentNotFound = "document.not_found"
	KeyDocumentUploaded = "document.uploaded"

	// Templates
	KeyTemplateCreated  = "template.created"
	KeyTemplateUpdated  = "template.updated"
	KeyTemplateDeleted  = "template.deleted"
	KeyTemplateNotFound = "template.not_found"
	KeyTemplateApplied  = "template.applied"

	// Interviews
	KeyInterviewCreated  = "interview.created"
	KeyInterviewUpdated  = "interview.updated"
	KeyInterviewDeleted  = "interview.deleted"
	KeyInterviewNotFound = "interview.not_found"

	// Submission
	KeySubmissionUpdated  = "submission.updated"
	KeySubmissionNotFound = "submission.not_found"
	KeyFollowUpAdded      = "submission.follow_up_added"
	KeyFollowUpUpdated    = "submission.follow_up_updated"
	KeyFollowUpDeleted    = "submission.follow_up_deleted"
	KeyFollowUpNotFound   = "submission.follow_up_not_found"

	// Files
	KeyFileUploadFailed = "file.upload_failed"
	KeyFileTooLarge     = "file.too_large"
	KeyFileInvalidType  = "file.invalid_type"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"
)
