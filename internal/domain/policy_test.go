package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/article-publishing-api/internal/auth"
	"github.com/article-publishing-api/internal/messages"
)

type stubSuggestionSource struct {
	suggestions []*ChangeSuggestion
	err         error
}

func (s *stubSuggestionSource) FindByArticleID(ctx context.Context, articleID ArticleID) ([]*ChangeSuggestion, error) {
	return s.suggestions, s.err
}

func suggestionInStatus(t *testing.T, status SuggestionStatus) *ChangeSuggestion {
	t.Helper()
	copywriter := auth.Copywriter{UserID: "copywriter-1"}
	review := BeginReview(ArticleID("a1"))
	review.AssignCopywriter(copywriter.UserID)
	s, err := review.SuggestChange(messages.SuggestChange{ArticleID: "a1", Comment: "c"}, copywriter)
	if err != nil {
		t.Fatalf("SuggestChange failed: %v", err)
	}
	switch status {
	case SuggestionApplied:
		if err := s.MarkApplied(); err != nil {
			t.Fatalf("MarkApplied failed: %v", err)
		}
	case SuggestionResolved:
		if err := review.ResolveSuggestion(s, copywriter); err != nil {
			t.Fatalf("ResolveSuggestion failed: %v", err)
		}
	}
	return s
}

func TestAllChangeSuggestionsResolvedPolicy(t *testing.T) {
	owner := auth.Journalist{UserID: "journalist-1"}
	article, err := DraftArticle(messages.SubmitDraftArticle{Title: "T", Text: "X", Topics: []string{"sport"}}, owner)
	if err != nil {
		t.Fatalf("DraftArticle failed: %v", err)
	}

	tests := []struct {
		name       string
		statuses   []SuggestionStatus
		wantPassed bool
	}{
		{name: "no suggestions", statuses: nil, wantPassed: true},
		{name: "all resolved", statuses: []SuggestionStatus{SuggestionResolved, SuggestionResolved}, wantPassed: true},
		{name: "one unresolved", statuses: []SuggestionStatus{SuggestionResolved, SuggestionUnresolved}, wantPassed: false},
		{name: "applied is not resolved", statuses: []SuggestionStatus{SuggestionApplied}, wantPassed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &stubSuggestionSource{}
			for _, status := range tt.statuses {
				source.suggestions = append(source.suggestions, suggestionInStatus(t, status))
			}

			policy := NewPolicyFactory(source).Create()
			result, err := policy.IsSatisfied(context.Background(), article)
			if err != nil {
				t.Fatalf("IsSatisfied failed: %v", err)
			}
			if result.Passed != tt.wantPassed {
				t.Errorf("Expected passed=%v, got %+v", tt.wantPassed, result)
			}
			if !tt.wantPassed && result.Reason != "Article has unresolved change suggestions" {
				t.Errorf("Unexpected failure reason: %q", result.Reason)
			}
		})
	}
}

func TestPolicySourceFailure(t *testing.T) {
	owner := auth.Journalist{UserID: "journalist-1"}
	article, _ := DraftArticle(messages.SubmitDraftArticle{Title: "T", Text: "X", Topics: []string{"sport"}}, owner)

	source := &stubSuggestionSource{err: errors.New("storage unavailable")}
	policy := NewPolicyFactory(source).Create()
	if _, err := policy.IsSatisfied(context.Background(), article); err == nil {
		t.Fatal("Expected source failure to propagate")
	}
}
