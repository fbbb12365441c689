package handlers

import (
	"net/http"
	"quote-intake-service/internal/platform/obs"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// internalError logs err with the request id and hides it from the client.
func internalError(c *gin.Context, op string, err error) {
	log.Error().
		Str("req_id", obs.RequestID(c.Request.Context())).
		Str("op", op).
		Err(err).
		Msg("request failed")
	writeError(c, http.StatusInternalServerError, "internal server error")
}
