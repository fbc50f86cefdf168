package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/article-publishing-api/internal/messages"
	"github.com/article-publishing-api/internal/service"
)

// ArticleHandler handles article and review endpoints.
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// SubmitDraft handles POST /v1/articles
func (h *ArticleHandler) SubmitDraft(c *gin.Context) {
	var cmd messages.SubmitDraftArticle
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dto, err := h.services.Article.SubmitDraft(c.Request.Context(), &cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

// EditDraft handles POST /v1/articles/:article_id/edit
func (h *ArticleHandler) EditDraft(c *gin.Context) {
	var cmd messages.EditDraftArticle
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cmd.ArticleID = c.Param("article_id")

	dto, err := h.services.Article.EditDraft(c.Request.Context(), &cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// Publish handles POST /v1/articles/:article_id/publish
func (h *ArticleHandler) Publish(c *gin.Context) {
	cmd := messages.PublishArticle{ArticleID: c.Param("article_id")}

	dto, err := h.services.Article.Publish(c.Request.Context(), &cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// AssignCopywriter handles POST /v1/articles/:article_id/assign-copywriter
func (h *ArticleHandler) AssignCopywriter(c *gin.Context) {
	var cmd messages.AssignCopywriterToArticle
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cmd.ArticleID = c.Param("article_id")

	if err := h.services.Review.AssignCopywriter(c.Request.Context(), &cmd); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SuggestChange handles POST /v1/articles/:article_id/suggestions
func (h *ArticleHandler) SuggestChange(c *gin.Context) {
	var cmd messages.SuggestChange
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cmd.ArticleID = c.Param("article_id")

	dto, err := h.services.Review.SuggestChange(c.Request.Context(), &cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

// MarkApplied handles POST /v1/articles/:article_id/suggestions/:suggestion_id/applied
func (h *ArticleHandler) MarkApplied(c *gin.Context) {
	cmd := messages.MarkChangeSuggestionApplied{
		ArticleID:    c.Param("article_id"),
		SuggestionID: c.Param("suggestion_id"),
	}

	dto, err := h.services.Review.MarkApplied(c.Request.Context(), &cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// Resolve handles POST /v1/articles/:article_id/suggestions/:suggestion_id/resolved
func (h *ArticleHandler) Resolve(c *gin.Context) {
	cmd := messages.ResolveChangeSuggestion{
		ArticleID:    c.Param("article_id"),
		SuggestionID: c.Param("suggestion_id"),
	}

	dto, err := h.services.Review.Resolve(c.Request.Context(), &cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// GetArticle handles GET /v1/articles/:article_id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	query := messages.GetArticle{ArticleID: c.Param("article_id")}

	dto, err := h.services.Article.GetArticle(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// GetChangeSuggestions handles GET /v1/articles/:article_id/suggestions
func (h *ArticleHandler) GetChangeSuggestions(c *gin.Context) {
	query := messages.GetChangeSuggestions{ArticleID: c.Param("article_id")}

	dtos, err := h.services.Review.GetChangeSuggestions(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos)
}
