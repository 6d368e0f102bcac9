package middleware

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/constants"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/logger"
	"github.com/yukikurage/project-management-api/internal/repository"
	"gorm.io/gorm"
)

// RequireAuth checks if the user is authenticated via session and attaches
// the current user to the request scope
func RequireAuth(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw, ok := session.Get(constants.ContextKeyUserID).(string)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			apierrors.Unauthorized(c, "")
			return
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logger.LogError("session_user_lookup", err, map[string]interface{}{"user_id": raw})
				apierrors.InternalError(c, "")
				return
			}
			// account removed while the session was alive
			apierrors.Unauthorized(c, "")
			return
		}

		Scope(c).User = AuthenticatedUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		}
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
