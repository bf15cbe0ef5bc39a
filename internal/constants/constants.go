package constants

const (
	// MinPasswordLength is the shortest accepted plaintext password.
	MinPasswordLength = 8
	// MaxNameLength bounds task and project names.
	MaxNameLength = 255

	DefaultPageSize = 20
	MinPageSize     = 1
	MaxPageSize     = 100

	ContextKeyRequestID = "request_id"
	ContextKeyPathID    = "path_id"

	HeaderRequestID = "X-Request-ID"

	ServiceName = "task-tracker"
)
