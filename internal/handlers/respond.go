package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tourcraft/tourcraft-api/internal/apperrors"
)

// respondError maps a service error onto the standard failure shape.
// Internal details are logged, never surfaced.
func (h *Handler) respondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		if appErr.Kind == apperrors.KindInternal {
			h.Log.Error().Err(appErr.Err).Str("path", c.FullPath()).Msg(appErr.Message)
			c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Message})
			return
		}
		c.JSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message})
		return
	}
	h.Log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
