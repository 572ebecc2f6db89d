package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound           ErrCode = "NOT_FOUND"
	ErrSessionNotFound    ErrCode = "SESSION_NOT_FOUND"
	ErrQuestionNotFound   ErrCode = "QUESTION_NOT_FOUND"
	ErrDuplicateNumber    ErrCode = "DUPLICATE_QUESTION_NUMBER"
	ErrIssueNotActionable ErrCode = "ISSUE_NOT_ACTIONABLE"

	// ─── Suite upload ──────────────────────────────────────────────────
	ErrFileRequired ErrCode = "FILE_REQUIRED"
	ErrInvalidSuite ErrCode = "INVALID_SUITE_DOCUMENT"

	// ─── Upstream / server ─────────────────────────────────────────────
	ErrUpstream ErrCode = "UPSTREAM_ERROR"
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrInvalidCredentials:
		return "Invalid email or password."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."
	case ErrNotFound:
		return "The requested resource was not found."
	case ErrSessionNotFound:
		return "The editing session does not exist or has expired."
	case ErrQuestionNotFound:
		return "No question with that number exists in the session."
	case ErrDuplicateNumber:
		return "Question numbers must be unique before submission."
	case ErrIssueNotActionable:
		return "Resolved and closed issues can no longer be updated."
	case ErrFileRequired:
		return "Please select a file to upload"
	case ErrInvalidSuite:
		return "The uploaded suite document is invalid."
	case ErrUpstream:
		return "The course service could not be reached. Please try again."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
