// Package validation provides schema-level validation for facade commands.
// Each command has a fixed validator that fails fast with the full list of
// violated fields, so a client can render every inline error in one round
// trip. Validators are stateless and shared across invocations.
package validation

import (
	"fmt"
	"strings"

	"github.com/article-publishing-api/internal/apperrors"
	"github.com/article-publishing-api/internal/domain"
	"github.com/article-publishing-api/internal/messages"
)

// field checks shared by the command validators

func checkTitle(fields []apperrors.FieldError, title string) []apperrors.FieldError {
	if strings.TrimSpace(title) == "" {
		return append(fields, apperrors.FieldError{Field: "title", Message: "must not be blank"})
	}
	if len([]rune(title)) > domain.MaxTitleLength {
		return append(fields, apperrors.FieldError{
			Field:   "title",
			Message: fmt.Sprintf("must be at most %d characters", domain.MaxTitleLength),
		})
	}
	return fields
}

func checkText(fields []apperrors.FieldError, text string) []apperrors.FieldError {
	if strings.TrimSpace(text) == "" {
		return append(fields, apperrors.FieldError{Field: "text", Message: "must not be blank"})
	}
	return fields
}

func checkTopics(fields []apperrors.FieldError, topics []string) []apperrors.FieldError {
	if len(topics) == 0 {
		return append(fields, apperrors.FieldError{Field: "topics", Message: "at least one topic is required"})
	}
	for _, topic := range topics {
		if strings.TrimSpace(topic) == "" {
			fields = append(fields, apperrors.FieldError{Field: "topics", Message: "topic must not be blank"})
		}
	}
	return fields
}

func checkRequired(fields []apperrors.FieldError, field, value string) []apperrors.FieldError {
	if strings.TrimSpace(value) == "" {
		return append(fields, apperrors.FieldError{Field: field, Message: "is required"})
	}
	return fields
}

func errOrNil(fields []apperrors.FieldError) error {
	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

// SubmitDraftArticle validates the submit-draft command.
func SubmitDraftArticle(cmd *messages.SubmitDraftArticle) error {
	var fields []apperrors.FieldError
	fields = checkTitle(fields, cmd.Title)
	fields = checkText(fields, cmd.Text)
	fields = checkTopics(fields, cmd.Topics)
	return errOrNil(fields)
}

// EditDraftArticle validates the edit-draft command.
func EditDraftArticle(cmd *messages.EditDraftArticle) error {
	var fields []apperrors.FieldError
	fields = checkRequired(fields, "article_id", cmd.ArticleID)
	fields = checkTitle(fields, cmd.Title)
	fields = checkText(fields, cmd.Text)
	fields = checkTopics(fields, cmd.Topics)
	return errOrNil(fields)
}

// PublishArticle validates the publish command.
func PublishArticle(cmd *messages.PublishArticle) error {
	return errOrNil(checkRequired(nil, "article_id", cmd.ArticleID))
}

// AssignCopywriterToArticle validates the copywriter assignment command.
func AssignCopywriterToArticle(cmd *messages.AssignCopywriterToArticle) error {
	var fields []apperrors.FieldError
	fields = checkRequired(fields, "article_id", cmd.ArticleID)
	fields = checkRequired(fields, "copywriter_user_id", cmd.CopywriterUserID)
	return errOrNil(fields)
}

// SuggestChange validates the suggest-change command.
func SuggestChange(cmd *messages.SuggestChange) error {
	var fields []apperrors.FieldError
	fields = checkRequired(fields, "article_id", cmd.ArticleID)
	if strings.TrimSpace(cmd.Comment) == "" {
		fields = append(fields, apperrors.FieldError{Field: "comment", Message: "must not be blank"})
	}
	return errOrNil(fields)
}

// MarkChangeSuggestionApplied validates the mark-applied command.
func MarkChangeSuggestionApplied(cmd *messages.MarkChangeSuggestionApplied) error {
	var fields []apperrors.FieldError
	fields = checkRequired(fields, "article_id", cmd.ArticleID)
	fields = checkRequired(fields, "suggestion_id", cmd.SuggestionID)
	return errOrNil(fields)
}

// ResolveChangeSuggestion validates the resolve command.
func ResolveChangeSuggestion(cmd *messages.ResolveChangeSuggestion) error {
	var fields []apperrors.FieldError
	fields = checkRequired(fields, "article_id", cmd.ArticleID)
	fields = checkRequired(fields, "suggestion_id", cmd.SuggestionID)
	return errOrNil(fields)
}
