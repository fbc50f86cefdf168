package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/article-publishing-api/internal/apperrors"
	"github.com/article-publishing-api/internal/auth"
	"github.com/article-publishing-api/internal/domain"
	"github.com/article-publishing-api/internal/messages"
	"github.com/article-publishing-api/internal/repository"
	"github.com/article-publishing-api/internal/validation"
)

// reviewService is the concrete implementation of ReviewService.
type reviewService struct {
	articles    repository.Articles
	reviews     repository.ArticleReviews
	suggestions repository.ChangeSuggestions
	userCtx     auth.UserContext
	log         zerolog.Logger
}

func newReviewService(repos *repository.Repositories, userCtx auth.UserContext, log zerolog.Logger) *reviewService {
	return &reviewService{
		articles:    repos.Articles,
		reviews:     repos.Reviews,
		suggestions: repos.Suggestions,
		userCtx:     userCtx,
		log:         log.With().Str("service", "review").Logger(),
	}
}

// beginReviewing opens a review for the article. Idempotent: a review that
// already exists is left untouched.
func (s *reviewService) beginReviewing(ctx context.Context, articleID domain.ArticleID) error {
	existing, err := s.reviews.FindByArticleID(ctx, articleID)
	if err != nil {
		return fmt.Errorf("find review: %w", err)
	}
	if existing != nil {
		return nil
	}
	if err := s.reviews.Save(ctx, domain.BeginReview(articleID)); err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	s.log.Info().Str("article_id", articleID.String()).Msg("Article reviewing began")
	return nil
}

// closeReviewing closes the article's review. Invoked by a successful publish.
func (s *reviewService) closeReviewing(ctx context.Context, articleID domain.ArticleID) error {
	review, err := repository.GetReview(ctx, s.reviews, articleID)
	if err != nil {
		return err
	}
	review.Close()
	if err := s.reviews.Save(ctx, review); err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	s.log.Info().Str("article_id", articleID.String()).Msg("Article reviewing closed")
	return nil
}

// AssignCopywriter assigns or reassigns the reviewing copywriter.
func (s *reviewService) AssignCopywriter(ctx context.Context, cmd *messages.AssignCopywriterToArticle) error {
	if err := validation.AssignCopywriterToArticle(cmd); err != nil {
		return err
	}

	review, err := repository.GetReview(ctx, s.reviews, domain.ArticleID(cmd.ArticleID))
	if err != nil {
		return err
	}
	review.AssignCopywriter(cmd.CopywriterUserID)
	if err := s.reviews.Save(ctx, review); err != nil {
		return fmt.Errorf("save review: %w", err)
	}

	s.log.Info().
		Str("article_id", cmd.ArticleID).
		Str("copywriter_user_id", cmd.CopywriterUserID).
		Msg("Copywriter assigned")
	return nil
}

// SuggestChange attaches a change suggestion authored by the assigned copywriter.
func (s *reviewService) SuggestChange(ctx context.Context, cmd *messages.SuggestChange) (messages.ChangeSuggestionDTO, error) {
	if err := validation.SuggestChange(cmd); err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}
	copywriter, err := auth.CurrentCopywriter(ctx, s.userCtx)
	if err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}

	review, err := repository.GetReview(ctx, s.reviews, domain.ArticleID(cmd.ArticleID))
	if err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}
	suggestion, err := review.SuggestChange(*cmd, copywriter)
	if err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}
	if err := s.suggestions.Save(ctx, suggestion); err != nil {
		return messages.ChangeSuggestionDTO{}, fmt.Errorf("save suggestion: %w", err)
	}

	s.log.Info().
		Str("article_id", cmd.ArticleID).
		Str("suggestion_id", suggestion.ID()).
		Msg("Change suggested")

	return suggestion.DTO(), nil
}

// MarkApplied records that the owning journalist made the suggested change.
func (s *reviewService) MarkApplied(ctx context.Context, cmd *messages.MarkChangeSuggestionApplied) (messages.ChangeSuggestionDTO, error) {
	if err := validation.MarkChangeSuggestionApplied(cmd); err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}
	journalist, err := auth.CurrentJournalist(ctx, s.userCtx)
	if err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}

	article, err := repository.GetArticle(ctx, s.articles, domain.ArticleID(cmd.ArticleID))
	if err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}
	if article.JournalistUserID() != journalist.UserID {
		return messages.ChangeSuggestionDTO{}, apperrors.Newf(apperrors.KindOwnership,
			"article %s does not belong to user %s", article.ID(), journalist.UserID)
	}

	suggestion, err := s.suggestionOfArticle(ctx, cmd.SuggestionID, article.ID())
	if err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}
	if err := suggestion.MarkApplied(); err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}
	if err := s.suggestions.Save(ctx, suggestion); err != nil {
		return messages.ChangeSuggestionDTO{}, fmt.Errorf("save suggestion: %w", err)
	}

	s.log.Info().Str("suggestion_id", suggestion.ID()).Msg("Change suggestion marked applied")

	return suggestion.DTO(), nil
}

// Resolve records that the assigned copywriter accepted the change.
func (s *reviewService) Resolve(ctx context.Context, cmd *messages.ResolveChangeSuggestion) (messages.ChangeSuggestionDTO, error) {
	if err := validation.ResolveChangeSuggestion(cmd); err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}
	copywriter, err := auth.CurrentCopywriter(ctx, s.userCtx)
	if err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}

	review, err := repository.GetReview(ctx, s.reviews, domain.ArticleID(cmd.ArticleID))
	if err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}
	suggestion, err := s.suggestionOfArticle(ctx, cmd.SuggestionID, review.ArticleID())
	if err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}
	if err := review.ResolveSuggestion(suggestion, copywriter); err != nil {
		return messages.ChangeSuggestionDTO{}, err
	}
	if err := s.suggestions.Save(ctx, suggestion); err != nil {
		return messages.ChangeSuggestionDTO{}, fmt.Errorf("save suggestion: %w", err)
	}

	s.log.Info().Str("suggestion_id", suggestion.ID()).Msg("Change suggestion resolved")

	return suggestion.DTO(), nil
}

// GetChangeSuggestions lists the suggestions attached to an article, oldest
// first. Queries enforce no authorization.
func (s *reviewService) GetChangeSuggestions(ctx context.Context, query *messages.GetChangeSuggestions) ([]messages.ChangeSuggestionDTO, error) {
	suggestions, err := s.suggestions.FindByArticleID(ctx, domain.ArticleID(query.ArticleID))
	if err != nil {
		return nil, fmt.Errorf("find suggestions: %w", err)
	}
	dtos := make([]messages.ChangeSuggestionDTO, 0, len(suggestions))
	for _, suggestion := range suggestions {
		dtos = append(dtos, suggestion.DTO())
	}
	return dtos, nil
}

// suggestionOfArticle loads a suggestion and checks it belongs to the article.
func (s *reviewService) suggestionOfArticle(ctx context.Context, suggestionID string, articleID domain.ArticleID) (*domain.ChangeSuggestion, error) {
	suggestion, err := repository.GetSuggestion(ctx, s.suggestions, suggestionID)
	if err != nil {
		return nil, err
	}
	if suggestion.ArticleID() != articleID {
		return nil, apperrors.Newf(apperrors.KindNotFound,
			"change suggestion %s not found for article %s", suggestionID, articleID)
	}
	return suggestion, nil
}
