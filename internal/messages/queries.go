package messages

// GetArticle fetches a single article by id.
type GetArticle struct {
	ArticleID string `json:"article_id"`
}

// GetChangeSuggestions lists the change suggestions attached to an article.
type GetChangeSuggestions struct {
	ArticleID string `json:"article_id"`
}
