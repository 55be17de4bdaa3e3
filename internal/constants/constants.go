package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "user"
	ContextKeyTaskID = "task_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Feedback rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// ProofFormField is the multipart field carrying a proof-of-completion image.
const ProofFormField = "file"
