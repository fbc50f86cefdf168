// Package repository defines the storage contracts for the editorial
// aggregates and provides in-memory and Postgres-backed implementations.
package repository

import (
	"context"

	"github.com/article-publishing-api/internal/apperrors"
	"github.com/article-publishing-api/internal/database"
	"github.com/article-publishing-api/internal/domain"
)

// Articles stores the Article aggregate.
type Articles interface {
	Save(ctx context.Context, article *domain.Article) error
	FindByID(ctx context.Context, id domain.ArticleID) (*domain.Article, error)
}

// ArticleReviews stores the ArticleReview aggregate, keyed by article id.
type ArticleReviews interface {
	Save(ctx context.Context, review *domain.ArticleReview) error
	FindByArticleID(ctx context.Context, articleID domain.ArticleID) (*domain.ArticleReview, error)
}

// ChangeSuggestions stores change suggestions, queried by article id.
type ChangeSuggestions interface {
	Save(ctx context.Context, suggestion *domain.ChangeSuggestion) error
	FindByID(ctx context.Context, id string) (*domain.ChangeSuggestion, error)
	FindByArticleID(ctx context.Context, articleID domain.ArticleID) ([]*domain.ChangeSuggestion, error)
}

// GetArticle loads an article or fails with a not-found error.
func GetArticle(ctx context.Context, articles Articles, id domain.ArticleID) (*domain.Article, error) {
	article, err := articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "article %s not found", id)
	}
	return article, nil
}

// GetReview loads an article review or fails with a not-found error.
func GetReview(ctx context.Context, reviews ArticleReviews, articleID domain.ArticleID) (*domain.ArticleReview, error) {
	review, err := reviews.FindByArticleID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "review of article %s not found", articleID)
	}
	return review, nil
}

// GetSuggestion loads a change suggestion or fails with a not-found error.
func GetSuggestion(ctx context.Context, suggestions ChangeSuggestions, id string) (*domain.ChangeSuggestion, error) {
	suggestion, err := suggestions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if suggestion == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "change suggestion %s not found", id)
	}
	return suggestion, nil
}

// Repositories holds all repository interfaces.
type Repositories struct {
	Articles    Articles
	Reviews     ArticleReviews
	Suggestions ChangeSuggestions
}

// NewInMemory creates map-backed repositories. This is the default store
// and the substrate for the test suites.
func NewInMemory() *Repositories {
	return &Repositories{
		Articles:    NewInMemoryArticles(),
		Reviews:     NewInMemoryReviews(),
		Suggestions: NewInMemorySuggestions(),
	}
}

// NewPostgres creates repositories backed by the given database connection.
func NewPostgres(db *database.DB) *Repositories {
	return &Repositories{
		Articles:    NewPostgresArticles(db),
		Reviews:     NewPostgresReviews(db),
		Suggestions: NewPostgresSuggestions(db),
	}
}
