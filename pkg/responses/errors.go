package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
)

// SendDomainError maps a domain error onto the right HTTP status:
// validation -> 400, not found -> 404, not undoable -> 409,
// consistency -> 409, anything else -> 500.
func SendDomainError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		SendError(c, http.StatusBadRequest, err.Error(), nil)
	case apperrors.IsNotFound(err):
		SendError(c, http.StatusNotFound, err.Error(), nil)
	case apperrors.IsNotUndoable(err):
		SendError(c, http.StatusConflict, err.Error(), nil)
	case apperrors.IsConsistency(err):
		SendError(c, http.StatusConflict, err.Error(), nil)
	default:
		SendError(c, http.StatusInternalServerError, "An unexpected error occurred on the server", nil)
	}
}
