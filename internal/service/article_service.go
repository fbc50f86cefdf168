package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/article-publishing-api/internal/auth"
	"github.com/article-publishing-api/internal/domain"
	"github.com/article-publishing-api/internal/events"
	"github.com/article-publishing-api/internal/messages"
	"github.com/article-publishing-api/internal/repository"
	"github.com/article-publishing-api/internal/validation"
)

// articleService is the concrete implementation of ArticleService.
type articleService struct {
	articles  repository.Articles
	reviewing *reviewService
	policies  *domain.PolicyFactory
	publisher events.Publisher
	userCtx   auth.UserContext
	log       zerolog.Logger
}

func newArticleService(repos *repository.Repositories, reviewing *reviewService, publisher events.Publisher, userCtx auth.UserContext, log zerolog.Logger) *articleService {
	return &articleService{
		articles:  repos.Articles,
		reviewing: reviewing,
		policies:  domain.NewPolicyFactory(repos.Suggestions),
		publisher: publisher,
		userCtx:   userCtx,
		log:       log.With().Str("service", "article").Logger(),
	}
}

// SubmitDraft creates a draft article and opens its review.
func (s *articleService) SubmitDraft(ctx context.Context, cmd *messages.SubmitDraftArticle) (messages.ArticleDTO, error) {
	if err := validation.SubmitDraftArticle(cmd); err != nil {
		return messages.ArticleDTO{}, err
	}
	journalist, err := auth.CurrentJournalist(ctx, s.userCtx)
	if err != nil {
		return messages.ArticleDTO{}, err
	}

	article, err := domain.DraftArticle(*cmd, journalist)
	if err != nil {
		return messages.ArticleDTO{}, err
	}
	if err := s.articles.Save(ctx, article); err != nil {
		return messages.ArticleDTO{}, fmt.Errorf("save article: %w", err)
	}
	flushEvents(ctx, s.publisher, article)

	if err := s.reviewing.beginReviewing(ctx, article.ID()); err != nil {
		return messages.ArticleDTO{}, err
	}

	s.log.Info().
		Str("article_id", article.ID().String()).
		Str("journalist_user_id", journalist.UserID).
		Msg("Draft article submitted")

	return article.DTO(), nil
}

// EditDraft replaces the article content on behalf of its owning journalist.
func (s *articleService) EditDraft(ctx context.Context, cmd *messages.EditDraftArticle) (messages.ArticleDTO, error) {
	if err := validation.EditDraftArticle(cmd); err != nil {
		return messages.ArticleDTO{}, err
	}
	journalist, err := auth.CurrentJournalist(ctx, s.userCtx)
	if err != nil {
		return messages.ArticleDTO{}, err
	}

	article, err := repository.GetArticle(ctx, s.articles, domain.ArticleID(cmd.ArticleID))
	if err != nil {
		return messages.ArticleDTO{}, err
	}
	if err := article.Edit(*cmd, journalist); err != nil {
		return messages.ArticleDTO{}, err
	}
	if err := s.articles.Save(ctx, article); err != nil {
		return messages.ArticleDTO{}, fmt.Errorf("save article: %w", err)
	}
	flushEvents(ctx, s.publisher, article)

	s.log.Info().Str("article_id", article.ID().String()).Msg("Draft article edited")

	return article.DTO(), nil
}

// Publish transitions the article to PUBLISHED once the active publishing
// policy passes, then closes its review. The two saves are independent:
// a failure closing the review leaves the article published.
func (s *articleService) Publish(ctx context.Context, cmd *messages.PublishArticle) (messages.ArticleDTO, error) {
	if err := validation.PublishArticle(cmd); err != nil {
		return messages.ArticleDTO{}, err
	}
	journalist, err := auth.CurrentJournalist(ctx, s.userCtx)
	if err != nil {
		return messages.ArticleDTO{}, err
	}

	article, err := repository.GetArticle(ctx, s.articles, domain.ArticleID(cmd.ArticleID))
	if err != nil {
		return messages.ArticleDTO{}, err
	}

	policy := s.policies.Create()
	result, err := policy.IsSatisfied(ctx, article)
	if err != nil {
		return messages.ArticleDTO{}, fmt.Errorf("evaluate publishing policy: %w", err)
	}
	if err := article.Publish(result, journalist); err != nil {
		return messages.ArticleDTO{}, err
	}
	if err := s.articles.Save(ctx, article); err != nil {
		return messages.ArticleDTO{}, fmt.Errorf("save article: %w", err)
	}
	flushEvents(ctx, s.publisher, article)

	if err := s.reviewing.closeReviewing(ctx, article.ID()); err != nil {
		return messages.ArticleDTO{}, err
	}

	s.log.Info().Str("article_id", article.ID().String()).Msg("Article published")

	return article.DTO(), nil
}

// GetArticle returns the article by id. Queries enforce no authorization.
func (s *articleService) GetArticle(ctx context.Context, query *messages.GetArticle) (messages.ArticleDTO, error) {
	article, err := repository.GetArticle(ctx, s.articles, domain.ArticleID(query.ArticleID))
	if err != nil {
		return messages.ArticleDTO{}, err
	}
	return article.DTO(), nil
}
