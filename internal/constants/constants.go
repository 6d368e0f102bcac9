package constants

import "time"

// Session and context keys
const (
	SessionCookieName = "project_session"
	ContextKeyUserID  = "user_id"
	ContextKeyScope   = "request_scope"
)

// Path parameter names resolved by middleware
const (
	ParamProjectID = "projectId"
	ParamTaskID    = "taskId"
	ParamNoteID    = "noteId"
	ParamUserID    = "userId"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
	SessionMaxAge     = 86400 * 7
	LoginRateWindow   = time.Minute
)

// AI drafts
const (
	MaxAIGeneratedTasks = 20
)
