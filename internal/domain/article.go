// Package domain holds the editorial workflow aggregates: Article,
// ArticleReview with its ChangeSuggestions, and the publishing policy.
// Aggregates mutate state exclusively by applying typed domain events, so
// the recorded notifications can never diverge from the state they caused.
package domain

import (
	"strings"

	"github.com/google/uuid"

	"github.com/article-publishing-api/internal/apperrors"
	"github.com/article-publishing-api/internal/auth"
	"github.com/article-publishing-api/internal/messages"
)

// MaxTitleLength is the upper bound on article titles.
const MaxTitleLength = 200

// ArticleID identifies an article.
type ArticleID string

// NewArticleID generates a fresh article id.
func NewArticleID() ArticleID {
	return ArticleID(uuid.NewString())
}

func (id ArticleID) String() string { return string(id) }

// Title is a non-blank string of at most MaxTitleLength characters.
type Title string

// NewTitle validates and constructs a title.
func NewTitle(s string) (Title, error) {
	if fe := titleRule(s); fe != nil {
		return "", apperrors.Validation([]apperrors.FieldError{*fe})
	}
	return Title(s), nil
}

// Text is a non-blank string of unbounded length.
type Text string

// NewText validates and constructs an article text.
func NewText(s string) (Text, error) {
	if fe := textRule(s); fe != nil {
		return "", apperrors.Validation([]apperrors.FieldError{*fe})
	}
	return Text(s), nil
}

// TopicID identifies a topic an article is filed under.
type TopicID string

// NewTopicID validates and constructs a topic id.
func NewTopicID(s string) (TopicID, error) {
	if strings.TrimSpace(s) == "" {
		return "", apperrors.Validation([]apperrors.FieldError{{Field: "topic", Message: "must not be blank"}})
	}
	return TopicID(s), nil
}

func titleRule(s string) *apperrors.FieldError {
	if strings.TrimSpace(s) == "" {
		return &apperrors.FieldError{Field: "title", Message: "must not be blank"}
	}
	if len([]rune(s)) > MaxTitleLength {
		return &apperrors.FieldError{Field: "title", Message: "must be at most 200 characters"}
	}
	return nil
}

func textRule(s string) *apperrors.FieldError {
	if strings.TrimSpace(s) == "" {
		return &apperrors.FieldError{Field: "text", Message: "must not be blank"}
	}
	return nil
}

// Status is the article lifecycle state.
type Status string

const (
	// StatusDraft is the initial state of every article.
	StatusDraft Status = "DRAFT"
	// StatusPublished is terminal; no transition leaves it.
	StatusPublished Status = "PUBLISHED"
)

// Article is the aggregate enforcing the draft/publish lifecycle and
// journalist ownership.
type Article struct {
	id               ArticleID
	title            Title
	text             Text
	topics           []TopicID
	status           Status
	journalistUserID string

	events []ArticleEvent
}

// DraftArticle creates a new draft article owned by the acting journalist.
func DraftArticle(cmd messages.SubmitDraftArticle, journalist auth.Journalist) (*Article, error) {
	if err := validateContent(cmd.Title, cmd.Text, cmd.Topics); err != nil {
		return nil, err
	}

	a := &Article{id: NewArticleID()}
	a.apply(ArticleDraftCreated{
		ID:               a.id.String(),
		Title:            cmd.Title,
		Text:             cmd.Text,
		Topics:           cmd.Topics,
		JournalistUserID: journalist.UserID,
	})
	return a, nil
}

// Edit replaces the article's title, text and topics. Only the owning
// journalist may edit, and only while the article is still a draft.
func (a *Article) Edit(cmd messages.EditDraftArticle, journalist auth.Journalist) error {
	if err := a.assertBelongsTo(journalist); err != nil {
		return err
	}
	if a.status == StatusPublished {
		return apperrors.Newf(apperrors.KindConflict, "article %s is already published and can no longer be edited", a.id)
	}
	if err := validateContent(cmd.Title, cmd.Text, cmd.Topics); err != nil {
		return err
	}

	a.apply(ArticleDraftEdited{
		ID:     a.id.String(),
		Title:  cmd.Title,
		Text:   cmd.Text,
		Topics: cmd.Topics,
	})
	return nil
}

// Publish transitions the article to PUBLISHED once the publishing policy
// passes. Only the owning journalist may publish.
func (a *Article) Publish(result PolicyResult, journalist auth.Journalist) error {
	if err := a.assertBelongsTo(journalist); err != nil {
		return err
	}
	if a.status == StatusPublished {
		return apperrors.Newf(apperrors.KindConflict, "article %s is already published", a.id)
	}
	if err := result.ErrIfFailed(); err != nil {
		return err
	}

	a.apply(ArticlePublished{ID: a.id.String()})
	return nil
}

func (a *Article) assertBelongsTo(journalist auth.Journalist) error {
	if a.journalistUserID != journalist.UserID {
		return apperrors.Newf(apperrors.KindOwnership, "article %s does not belong to user %s", a.id, journalist.UserID)
	}
	return nil
}

// validateContent checks the title, text and topic constraints together so
// a single failure enumerates every violated field.
func validateContent(title, text string, topics []string) error {
	var fields []apperrors.FieldError
	if fe := titleRule(title); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := textRule(text); fe != nil {
		fields = append(fields, *fe)
	}
	if len(topics) == 0 {
		fields = append(fields, apperrors.FieldError{Field: "topics", Message: "at least one topic is required"})
	}
	for _, topic := range topics {
		if strings.TrimSpace(topic) == "" {
			fields = append(fields, apperrors.FieldError{Field: "topics", Message: "topic must not be blank"})
		}
	}
	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

// apply registers the event and routes it through the dispatch handler.
// This is the only path that mutates aggregate state.
func (a *Article) apply(event ArticleEvent) {
	a.events = append(a.events, event)
	a.on(event)
}

func (a *Article) on(event ArticleEvent) {
	switch e := event.(type) {
	case ArticleDraftCreated:
		a.status = StatusDraft
		a.title = Title(e.Title)
		a.text = Text(e.Text)
		a.topics = topicIDs(e.Topics)
		a.journalistUserID = e.JournalistUserID
	case ArticleDraftEdited:
		a.title = Title(e.Title)
		a.text = Text(e.Text)
		a.topics = topicIDs(e.Topics)
	case ArticlePublished:
		a.status = StatusPublished
	}
}

func topicIDs(topics []string) []TopicID {
	ids := make([]TopicID, 0, len(topics))
	for _, t := range topics {
		ids = append(ids, TopicID(t))
	}
	return ids
}

// ID returns the article id.
func (a *Article) ID() ArticleID { return a.id }

// Status returns the article lifecycle state.
func (a *Article) Status() Status { return a.status }

// JournalistUserID returns the owning journalist's user id.
func (a *Article) JournalistUserID() string { return a.journalistUserID }

// Events returns the pending domain events in application order.
func (a *Article) Events() []Event {
	events := make([]Event, 0, len(a.events))
	for _, e := range a.events {
		events = append(events, e)
	}
	return events
}

// ClearEvents empties the pending-event buffer after a flush.
func (a *Article) ClearEvents() {
	a.events = nil
}

// ArticleSnapshot is the persistence shape of an article.
type ArticleSnapshot struct {
	ID               string
	Title            string
	Text             string
	Topics           []string
	Status           string
	JournalistUserID string
}

// Snapshot captures the article state for persistence.
func (a *Article) Snapshot() ArticleSnapshot {
	topics := make([]string, 0, len(a.topics))
	for _, t := range a.topics {
		topics = append(topics, string(t))
	}
	return ArticleSnapshot{
		ID:               a.id.String(),
		Title:            string(a.title),
		Text:             string(a.text),
		Topics:           topics,
		Status:           string(a.status),
		JournalistUserID: a.journalistUserID,
	}
}

// ArticleFromSnapshot rehydrates an article. No events are registered.
func ArticleFromSnapshot(s ArticleSnapshot) *Article {
	return &Article{
		id:               ArticleID(s.ID),
		title:            Title(s.Title),
		text:             Text(s.Text),
		topics:           topicIDs(s.Topics),
		status:           Status(s.Status),
		journalistUserID: s.JournalistUserID,
	}
}

// DTO maps the article to its response shape.
func (a *Article) DTO() messages.ArticleDTO {
	s := a.Snapshot()
	return messages.ArticleDTO{
		ID:               s.ID,
		Title:            s.Title,
		Text:             s.Text,
		Topics:           s.Topics,
		Status:           s.Status,
		JournalistUserID: s.JournalistUserID,
	}
}
