package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/article-publishing-api/internal/domain"
)

// The in-memory repositories store snapshots, not live aggregates, so a
// save is a per-key atomic replace and callers never share mutable state.
// There is no version check: concurrent saves are last-write-wins.

// InMemoryArticles is a mutex-guarded map of article snapshots.
type InMemoryArticles struct {
	mu    sync.RWMutex
	store map[domain.ArticleID]domain.ArticleSnapshot
}

// NewInMemoryArticles creates an empty in-memory article store.
func NewInMemoryArticles() *InMemoryArticles {
	return &InMemoryArticles{store: make(map[domain.ArticleID]domain.ArticleSnapshot)}
}

// Save stores the article snapshot, replacing any previous version.
func (r *InMemoryArticles) Save(ctx context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[article.ID()] = article.Snapshot()
	return nil
}

// FindByID returns the article, or nil when absent.
func (r *InMemoryArticles) FindByID(ctx context.Context, id domain.ArticleID) (*domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot, ok := r.store[id]
	if !ok {
		return nil, nil
	}
	return domain.ArticleFromSnapshot(snapshot), nil
}

// InMemoryReviews is a mutex-guarded map of review snapshots keyed by article id.
type InMemoryReviews struct {
	mu    sync.RWMutex
	store map[domain.ArticleID]domain.ReviewSnapshot
}

// NewInMemoryReviews creates an empty in-memory review store.
func NewInMemoryReviews() *InMemoryReviews {
	return &InMemoryReviews{store: make(map[domain.ArticleID]domain.ReviewSnapshot)}
}

// Save stores the review snapshot, replacing any previous version.
func (r *InMemoryReviews) Save(ctx context.Context, review *domain.ArticleReview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[review.ArticleID()] = review.Snapshot()
	return nil
}

// FindByArticleID returns the review, or nil when absent.
func (r *InMemoryReviews) FindByArticleID(ctx context.Context, articleID domain.ArticleID) (*domain.ArticleReview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot, ok := r.store[articleID]
	if !ok {
		return nil, nil
	}
	return domain.ReviewFromSnapshot(snapshot), nil
}

// InMemorySuggestions is a mutex-guarded map of suggestion snapshots.
type InMemorySuggestions struct {
	mu    sync.RWMutex
	store map[string]domain.SuggestionSnapshot
}

// NewInMemorySuggestions creates an empty in-memory suggestion store.
func NewInMemorySuggestions() *InMemorySuggestions {
	return &InMemorySuggestions{store: make(map[string]domain.SuggestionSnapshot)}
}

// Save stores the suggestion snapshot, replacing any previous version.
func (r *InMemorySuggestions) Save(ctx context.Context, suggestion *domain.ChangeSuggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[suggestion.ID()] = suggestion.Snapshot()
	return nil
}

// FindByID returns the suggestion, or nil when absent.
func (r *InMemorySuggestions) FindByID(ctx context.Context, id string) (*domain.ChangeSuggestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot, ok := r.store[id]
	if !ok {
		return nil, nil
	}
	return domain.SuggestionFromSnapshot(snapshot), nil
}

// FindByArticleID returns every suggestion attached to the article, oldest first.
func (r *InMemorySuggestions) FindByArticleID(ctx context.Context, articleID domain.ArticleID) ([]*domain.ChangeSuggestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var suggestions []*domain.ChangeSuggestion
	for _, snapshot := range r.store {
		if snapshot.ArticleID == articleID.String() {
			suggestions = append(suggestions, domain.SuggestionFromSnapshot(snapshot))
		}
	}
	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Snapshot().CreatedAt.Before(suggestions[j].Snapshot().CreatedAt)
	})
	return suggestions, nil
}
