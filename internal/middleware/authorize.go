package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/services"
)

// RequireProjectManager lets only the manager of the resolved project through.
// failure decides how everyone else is answered. Must run after ResolveProject.
func RequireProjectManager(failure apierrors.AuthFailure) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := Scope(c)
		if scope.Project == nil {
			apierrors.InternalError(c, "")
			return
		}

		if !services.IsManager(scope.User.ID, scope.Project) {
			apierrors.RespondAuthFailure(c, failure, msgProjectNotFound)
			return
		}

		c.Next()
	}
}
