package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthFailure says how a failed role check is reported to the caller.
type AuthFailure int

const (
	// HideExistence answers exactly like a missing resource so callers
	// cannot probe for ids they have no access to.
	HideExistence AuthFailure = iota
	// RejectAction admits the resource exists and refuses the operation.
	RejectAction
)

// Classify maps an authorization failure to its status code and body.
// notFoundMessage must be the message used for the genuinely missing resource.
func Classify(failure AuthFailure, notFoundMessage string) (int, *APIError) {
	switch failure {
	case HideExistence:
		return http.StatusNotFound, NewAPIError(ErrCodeNotFound, notFoundMessage)
	default:
		return http.StatusBadRequest, NewAPIError(ErrCodeInvalidAction, "Invalid action")
	}
}

// RespondAuthFailure writes the classified response and aborts the chain.
func RespondAuthFailure(c *gin.Context, failure AuthFailure, notFoundMessage string) {
	status, apiErr := Classify(failure, notFoundMessage)
	RespondWithError(c, status, apiErr)
}
