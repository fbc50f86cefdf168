// Package api adapts the use-case facade to HTTP using gin. It owns no
// decision logic: handlers bind payloads to commands, invoke the facade and
// map error kinds to status codes.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/article-publishing-api/internal/auth"
	"github.com/article-publishing-api/internal/service"
)

// NewRouter creates and configures the gin router.
func NewRouter(services *service.Services, verifier *auth.TokenVerifier, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(authMiddleware(verifier, log))

	handler := NewArticleHandler(services, log)

	router.GET("/health", healthCheck)

	v1 := router.Group("/v1")
	{
		articles := v1.Group("/articles")
		{
			articles.POST("", handler.SubmitDraft)
			articles.GET("/:article_id", handler.GetArticle)
			articles.POST("/:article_id/edit", handler.EditDraft)
			articles.POST("/:article_id/publish", handler.Publish)
			articles.POST("/:article_id/assign-copywriter", handler.AssignCopywriter)
			articles.GET("/:article_id/suggestions", handler.GetChangeSuggestions)
			articles.POST("/:article_id/suggestions", handler.SuggestChange)
			articles.POST("/:article_id/suggestions/:suggestion_id/applied", handler.MarkApplied)
			articles.POST("/:article_id/suggestions/:suggestion_id/resolved", handler.Resolve)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "article-publishing-api",
	})
}

// authMiddleware verifies a bearer token, if present, and attaches the
// resulting user to the request context. Requests without a token proceed
// unauthenticated; commands reject them downstream.
func authMiddleware(verifier *auth.TokenVerifier, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		user, err := verifier.Verify(token)
		if err != nil {
			log.Warn().Err(err).Msg("Token verification failed")
			respondError(c, err)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}
