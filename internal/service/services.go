// Package service implements the use-case facade. Every command runs the
// same sequence: schema validation, role resolution, aggregate load,
// aggregate mutation, save, event flush, response mapping. At most one
// aggregate is mutated per invocation; the publish command additionally
// closes the review with a second, independent save (no cross-aggregate
// transaction, no compensation on partial failure).
package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/article-publishing-api/internal/auth"
	"github.com/article-publishing-api/internal/domain"
	"github.com/article-publishing-api/internal/events"
	"github.com/article-publishing-api/internal/messages"
	"github.com/article-publishing-api/internal/repository"
)

// ArticleService is the command/query entry point for article drafting and
// publishing.
type ArticleService interface {
	SubmitDraft(ctx context.Context, cmd *messages.SubmitDraftArticle) (messages.ArticleDTO, error)
	EditDraft(ctx context.Context, cmd *messages.EditDraftArticle) (messages.ArticleDTO, error)
	Publish(ctx context.Context, cmd *messages.PublishArticle) (messages.ArticleDTO, error)
	GetArticle(ctx context.Context, query *messages.GetArticle) (messages.ArticleDTO, error)
}

// ReviewService is the command/query entry point for article reviewing.
type ReviewService interface {
	AssignCopywriter(ctx context.Context, cmd *messages.AssignCopywriterToArticle) error
	SuggestChange(ctx context.Context, cmd *messages.SuggestChange) (messages.ChangeSuggestionDTO, error)
	MarkApplied(ctx context.Context, cmd *messages.MarkChangeSuggestionApplied) (messages.ChangeSuggestionDTO, error)
	Resolve(ctx context.Context, cmd *messages.ResolveChangeSuggestion) (messages.ChangeSuggestionDTO, error)
	GetChangeSuggestions(ctx context.Context, query *messages.GetChangeSuggestions) ([]messages.ChangeSuggestionDTO, error)
}

// Services holds all service interfaces.
type Services struct {
	Article ArticleService
	Review  ReviewService
}

// NewServices wires the facade over the given collaborators.
func NewServices(repos *repository.Repositories, publisher events.Publisher, userCtx auth.UserContext, log zerolog.Logger) *Services {
	reviewSvc := newReviewService(repos, userCtx, log)
	articleSvc := newArticleService(repos, reviewSvc, publisher, userCtx, log)

	return &Services{
		Article: articleSvc,
		Review:  reviewSvc,
	}
}

// flushEvents forwards the aggregate's pending events to the publisher and
// clears the buffer. Called only after a successful save, so consumers
// never observe events for state that was not persisted.
func flushEvents(ctx context.Context, publisher events.Publisher, article *domain.Article) {
	events.PublishAll(ctx, publisher, article.Events())
	article.ClearEvents()
}
