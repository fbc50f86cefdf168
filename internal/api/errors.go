package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/article-publishing-api/internal/apperrors"
)

// respondError maps an application error to an HTTP response. Validation
// errors enumerate every violated field; all errors carry the stable kind
// discriminator.
func respondError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{
		"kind":  appErr.Kind,
		"error": appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.JSON(appErr.Kind.HTTPStatus(), body)
}
