// Package messages holds the transport-agnostic command, query and response
// shapes accepted and returned by the use-case facade.
package messages

// SubmitDraftArticle creates a new draft article owned by the acting journalist.
type SubmitDraftArticle struct {
	Title  string   `json:"title"`
	Text   string   `json:"text"`
	Topics []string `json:"topics"`
}

// EditDraftArticle replaces the title, text and topics of an existing article.
type EditDraftArticle struct {
	ArticleID string   `json:"article_id"`
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Topics    []string `json:"topics"`
}

// PublishArticle transitions an article from DRAFT to PUBLISHED.
type PublishArticle struct {
	ArticleID string `json:"article_id"`
}

// AssignCopywriterToArticle assigns (or reassigns) the reviewing copywriter.
type AssignCopywriterToArticle struct {
	ArticleID        string `json:"article_id"`
	CopywriterUserID string `json:"copywriter_user_id"`
}

// SuggestChange attaches a change suggestion to an article under review.
type SuggestChange struct {
	ArticleID string `json:"article_id"`
	Comment   string `json:"comment"`
}

// MarkChangeSuggestionApplied records that the journalist made the suggested change.
type MarkChangeSuggestionApplied struct {
	ArticleID    string `json:"article_id"`
	SuggestionID string `json:"suggestion_id"`
}

// ResolveChangeSuggestion records that the copywriter accepted the applied change.
type ResolveChangeSuggestion struct {
	ArticleID    string `json:"article_id"`
	SuggestionID string `json:"suggestion_id"`
}
