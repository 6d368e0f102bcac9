package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
)

// AuthenticatedUser is the caller as established by RequireAuth.
type AuthenticatedUser struct {
	ID    uuid.UUID
	Email string
	Name  string
}

// RequestScope carries the entities resolved for one request. Each field is
// set by the middleware that owns it and is nil (or zero) until then.
type RequestScope struct {
	User    AuthenticatedUser
	Project *models.Project
	Task    *models.Task
	Note    *models.Note
}

// Scope returns the request scope, creating it on first use.
func Scope(c *gin.Context) *RequestScope {
	if value, ok := c.Get(constants.ContextKeyScope); ok {
		if scope, ok := value.(*RequestScope); ok {
			return scope
		}
	}

	scope := &RequestScope{}
	c.Set(constants.ContextKeyScope, scope)
	return scope
}
