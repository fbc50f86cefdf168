package domain

import (
	"context"

	"github.com/article-publishing-api/internal/apperrors"
)

// PublishingPolicy is a pluggable eligibility check consulted before an
// article may be published. The strategy shape leaves room for additional
// or composite rules without touching the Article aggregate.
type PublishingPolicy interface {
	IsSatisfied(ctx context.Context, article *Article) (PolicyResult, error)
}

// PolicyResult is the outcome of a single policy evaluation.
type PolicyResult struct {
	ArticleID ArticleID
	Passed    bool
	Reason    string
}

// PolicyPassed builds a passing result.
func PolicyPassed(articleID ArticleID) PolicyResult {
	return PolicyResult{ArticleID: articleID, Passed: true}
}

// PolicyFailed builds a failing result with a reason.
func PolicyFailed(articleID ArticleID, reason string) PolicyResult {
	return PolicyResult{ArticleID: articleID, Reason: reason}
}

// ErrIfFailed converts a failed result into a policy violation error.
func (r PolicyResult) ErrIfFailed() error {
	if r.Passed {
		return nil
	}
	return apperrors.New(apperrors.KindPolicyViolation, r.Reason)
}

// SuggestionSource supplies the change suggestions a policy needs to
// evaluate an article. Satisfied by the ChangeSuggestions repository.
type SuggestionSource interface {
	FindByArticleID(ctx context.Context, articleID ArticleID) ([]*ChangeSuggestion, error)
}

// PolicyFactory constructs the active publishing policy per publish attempt.
type PolicyFactory struct {
	suggestions SuggestionSource
}

// NewPolicyFactory creates a policy factory backed by the given source.
func NewPolicyFactory(suggestions SuggestionSource) *PolicyFactory {
	return &PolicyFactory{suggestions: suggestions}
}

// Create returns the policy to evaluate for the next publish attempt.
func (f *PolicyFactory) Create() PublishingPolicy {
	return &allChangeSuggestionsResolved{suggestions: f.suggestions}
}

// allChangeSuggestionsResolved passes iff every change suggestion for the
// article is resolved. An article with zero suggestions trivially passes.
type allChangeSuggestionsResolved struct {
	suggestions SuggestionSource
}

func (p *allChangeSuggestionsResolved) IsSatisfied(ctx context.Context, article *Article) (PolicyResult, error) {
	suggestions, err := p.suggestions.FindByArticleID(ctx, article.ID())
	if err != nil {
		return PolicyResult{}, err
	}
	for _, s := range suggestions {
		if !s.IsResolved() {
			return PolicyFailed(article.ID(), "Article has unresolved change suggestions"), nil
		}
	}
	return PolicyPassed(article.ID()), nil
}
