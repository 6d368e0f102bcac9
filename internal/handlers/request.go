package handlers

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/logger"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/validation"
)

// bindJSON binds the body into req. Field problems are answered with
// VALIDATION_FAILED, anything else (bad JSON, wrong types) with INVALID_INPUT.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields, ok := validation.FieldErrors(err); ok {
			apierrors.ValidationFailed(c, fields)
			return false
		}
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// internalError logs err with the request context and answers without detail.
func internalError(c *gin.Context, errorType string, err error) {
	fields := map[string]interface{}{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}
	if userID, ok := middleware.GetUserID(c); ok {
		fields["user_id"] = userID.String()
	}
	logger.LogError(errorType, err, fields)
	apierrors.InternalError(c, "")
}
