package apperrors

// Error codes grouped by domain.
const (
	// Authentication
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeFileTooLarge     ErrorCode = "FILE_TOO_LARGE"
	CodeInvalidFileType  ErrorCode = "INVALID_FILE_TYPE"

	// Resources
	CodeUserNotFound      ErrorCode = "USER_NOT_FOUND"
	CodeEmailAlreadyTaken ErrorCode = "EMAIL_ALREADY_EXISTS"

	// Password reset flow
	CodeResetCodeExpired  ErrorCode = "RESET_CODE_EXPIRED"
	CodeResetCodeMismatch ErrorCode = "RESET_CODE_MISMATCH"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeStorageError  ErrorCode = "STORAGE_ERROR"
	CodeDeliveryError ErrorCode = "DELIVERY_ERROR"
)
