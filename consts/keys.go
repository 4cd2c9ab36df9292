package consts

// Context keys
const (
	GinContextKey = "GinContext"
	TraceIDKey    = "trace_id"
	UserKey       = "user_id"
	TokenKey      = "token"
)

// Local storage keys
const (
	TokenStorageKey = "token"
	UserStorageKey  = "user"
	DraftStorageKey = "news_draft_data"
)

// Headers
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	RequestIDHeader     = "X-Request-ID"
	UserAgentHeader     = "User-Agent"
	ContentTypeHeader   = "Content-Type"
	JSONContentType     = "application/json"
)
