package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Gin context keys set by the auth middleware.
	ContextKeyUserID    = "user_id"
	ContextKeyActor     = "actor"
	ContextKeyRequestID = "request_id"

	// MaxAttachmentBytes is the upper bound for a single ticket attachment.
	MaxAttachmentBytes = 5 << 20
	// MaxImportBytes bounds bulk user import uploads.
	MaxImportBytes = 10 << 20

	// DefaultImportPassword is assigned to users created by bulk import; they
	// are forced to change it on first login.
	DefaultImportPassword = "default_password"

	OrganizationID = 1

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgStorageFailure      = "The operation could not be saved, please try again"
)
