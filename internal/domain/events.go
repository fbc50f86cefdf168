package domain

// Event is a domain event produced by an aggregate mutation. Events both
// drive the aggregate's own state transitions and are forwarded to the
// event publisher after a successful save.
type Event interface {
	EventName() string
}

// ArticleEvent is the closed set of events the Article aggregate produces.
type ArticleEvent interface {
	Event
	isArticleEvent()
}

// ArticleDraftCreated records the creation of a draft article.
type ArticleDraftCreated struct {
	ID               string
	Title            string
	Text             string
	Topics           []string
	JournalistUserID string
}

// ArticleDraftEdited records a wholesale replacement of an article's content.
type ArticleDraftEdited struct {
	ID     string
	Title  string
	Text   string
	Topics []string
}

// ArticlePublished records the DRAFT to PUBLISHED transition.
type ArticlePublished struct {
	ID string
}

func (ArticleDraftCreated) EventName() string { return "article.draft_created" }
func (ArticleDraftEdited) EventName() string  { return "article.draft_edited" }
func (ArticlePublished) EventName() string    { return "article.published" }

func (ArticleDraftCreated) isArticleEvent() {}
func (ArticleDraftEdited) isArticleEvent()  {}
func (ArticlePublished) isArticleEvent()    {}
