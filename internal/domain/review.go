package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/article-publishing-api/internal/apperrors"
	"github.com/article-publishing-api/internal/auth"
	"github.com/article-publishing-api/internal/messages"
)

// ReviewStatus is the review lifecycle state.
type ReviewStatus string

const (
	// ReviewOpen accepts change suggestions.
	ReviewOpen ReviewStatus = "OPEN"
	// ReviewClosed is set once, when the article is published.
	ReviewClosed ReviewStatus = "CLOSED"
)

// ArticleReview tracks the reviewing of a single article. There is at most
// one review per article, related to it by shared id only.
type ArticleReview struct {
	articleID        ArticleID
	status           ReviewStatus
	copywriterUserID string
}

// BeginReview opens a review for the article.
func BeginReview(articleID ArticleID) *ArticleReview {
	return &ArticleReview{articleID: articleID, status: ReviewOpen}
}

// ArticleID returns the reviewed article's id.
func (r *ArticleReview) ArticleID() ArticleID { return r.articleID }

// AssignCopywriter assigns or reassigns the reviewing copywriter.
// Authorization, if any, belongs to the calling context.
func (r *ArticleReview) AssignCopywriter(userID string) {
	r.copywriterUserID = userID
}

// AssignedCopywriterUserID returns the assigned copywriter's user id, or ""
// when none has been assigned.
func (r *ArticleReview) AssignedCopywriterUserID() string { return r.copywriterUserID }

// SuggestChange creates a change suggestion authored by the assigned
// copywriter. Fails when the copywriter is not assigned to this review or
// when the review has been closed.
func (r *ArticleReview) SuggestChange(cmd messages.SuggestChange, copywriter auth.Copywriter) (*ChangeSuggestion, error) {
	if err := r.assertCopywriterAssigned(copywriter); err != nil {
		return nil, err
	}
	if r.status == ReviewClosed {
		return nil, apperrors.Newf(apperrors.KindReviewClosed, "review of article %s is closed", r.articleID)
	}
	return newChangeSuggestion(cmd, copywriter)
}

// ResolveSuggestion marks a suggestion resolved on behalf of the assigned
// copywriter.
func (r *ArticleReview) ResolveSuggestion(suggestion *ChangeSuggestion, copywriter auth.Copywriter) error {
	if err := r.assertCopywriterAssigned(copywriter); err != nil {
		return err
	}
	return suggestion.resolve()
}

// Close marks the review closed. Invoked once, when the article is published.
func (r *ArticleReview) Close() {
	r.status = ReviewClosed
}

// IsClosed reports whether the review has been closed.
func (r *ArticleReview) IsClosed() bool { return r.status == ReviewClosed }

func (r *ArticleReview) assertCopywriterAssigned(copywriter auth.Copywriter) error {
	if r.copywriterUserID != copywriter.UserID {
		return apperrors.Newf(apperrors.KindOwnership, "copywriter %s is not assigned to review article %s", copywriter.UserID, r.articleID)
	}
	return nil
}

// ReviewSnapshot is the persistence shape of an article review.
type ReviewSnapshot struct {
	ArticleID        string
	Status           string
	CopywriterUserID string
}

// Snapshot captures the review state for persistence.
func (r *ArticleReview) Snapshot() ReviewSnapshot {
	return ReviewSnapshot{
		ArticleID:        r.articleID.String(),
		Status:           string(r.status),
		CopywriterUserID: r.copywriterUserID,
	}
}

// ReviewFromSnapshot rehydrates an article review.
func ReviewFromSnapshot(s ReviewSnapshot) *ArticleReview {
	return &ArticleReview{
		articleID:        ArticleID(s.ArticleID),
		status:           ReviewStatus(s.Status),
		copywriterUserID: s.CopywriterUserID,
	}
}

// SuggestionStatus is the change suggestion resolution state.
type SuggestionStatus string

const (
	// SuggestionUnresolved is the initial state of every suggestion.
	SuggestionUnresolved SuggestionStatus = "UNRESOLVED"
	// SuggestionApplied means the journalist made the suggested change.
	SuggestionApplied SuggestionStatus = "APPLIED"
	// SuggestionResolved means the copywriter accepted the change.
	SuggestionResolved SuggestionStatus = "RESOLVED"
)

// ChangeSuggestion is a reviewer's comment attached to an article under
// review. The resolution status is the only mutable field.
type ChangeSuggestion struct {
	id               string
	articleID        ArticleID
	copywriterUserID string
	createdAt        time.Time
	comment          string
	status           SuggestionStatus
}

func newChangeSuggestion(cmd messages.SuggestChange, copywriter auth.Copywriter) (*ChangeSuggestion, error) {
	if strings.TrimSpace(cmd.Comment) == "" {
		return nil, apperrors.Validation([]apperrors.FieldError{{Field: "comment", Message: "must not be blank"}})
	}
	return &ChangeSuggestion{
		id:               uuid.NewString(),
		articleID:        ArticleID(cmd.ArticleID),
		copywriterUserID: copywriter.UserID,
		createdAt:        time.Now().UTC(),
		comment:          cmd.Comment,
		status:           SuggestionUnresolved,
	}, nil
}

// ID returns the suggestion id.
func (cs *ChangeSuggestion) ID() string { return cs.id }

// ArticleID returns the id of the article the suggestion is attached to.
func (cs *ChangeSuggestion) ArticleID() ArticleID { return cs.articleID }

// IsResolved reports whether the suggestion has been resolved.
func (cs *ChangeSuggestion) IsResolved() bool { return cs.status == SuggestionResolved }

// MarkApplied records that the journalist made the suggested change.
func (cs *ChangeSuggestion) MarkApplied() error {
	if cs.status != SuggestionUnresolved {
		return apperrors.Newf(apperrors.KindConflict, "change suggestion %s is %s and cannot be marked applied", cs.id, cs.status)
	}
	cs.status = SuggestionApplied
	return nil
}

// resolve transitions the suggestion to RESOLVED from either UNRESOLVED or
// APPLIED. The "rejected" outcome from the review workflow narrative is not
// modeled.
func (cs *ChangeSuggestion) resolve() error {
	if cs.status == SuggestionResolved {
		return apperrors.Newf(apperrors.KindConflict, "change suggestion %s is already resolved", cs.id)
	}
	cs.status = SuggestionResolved
	return nil
}

// SuggestionSnapshot is the persistence shape of a change suggestion.
type SuggestionSnapshot struct {
	ID               string
	ArticleID        string
	CopywriterUserID string
	CreatedAt        time.Time
	Comment          string
	Status           string
}

// Snapshot captures the suggestion state for persistence.
func (cs *ChangeSuggestion) Snapshot() SuggestionSnapshot {
	return SuggestionSnapshot{
		ID:               cs.id,
		ArticleID:        cs.articleID.String(),
		CopywriterUserID: cs.copywriterUserID,
		CreatedAt:        cs.createdAt,
		Comment:          cs.comment,
		Status:           string(cs.status),
	}
}

// SuggestionFromSnapshot rehydrates a change suggestion.
func SuggestionFromSnapshot(s SuggestionSnapshot) *ChangeSuggestion {
	return &ChangeSuggestion{
		id:               s.ID,
		articleID:        ArticleID(s.ArticleID),
		copywriterUserID: s.CopywriterUserID,
		createdAt:        s.CreatedAt,
		comment:          s.Comment,
		status:           SuggestionStatus(s.Status),
	}
}

// DTO maps the suggestion to its response shape.
func (cs *ChangeSuggestion) DTO() messages.ChangeSuggestionDTO {
	return messages.ChangeSuggestionDTO{
		ID:               cs.id,
		ArticleID:        cs.articleID.String(),
		CopywriterUserID: cs.copywriterUserID,
		Comment:          cs.comment,
		CreatedAt:        cs.createdAt,
		Status:           string(cs.status),
	}
}
