package messages

import "time"

// ArticleDTO is the response shape for article commands and queries.
type ArticleDTO struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Text             string   `json:"text"`
	Topics           []string `json:"topics"`
	Status           string   `json:"status"`
	JournalistUserID string   `json:"journalist_user_id"`
}

// ChangeSuggestionDTO is the response shape for change suggestions.
type ChangeSuggestionDTO struct {
	ID               string    `json:"id"`
	ArticleID        string    `json:"article_id"`
	CopywriterUserID string    `json:"copywriter_user_id"`
	Comment          string    `json:"comment"`
	CreatedAt        time.Time `json:"created_at"`
	Status           string    `json:"status"`
}
