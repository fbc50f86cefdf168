package repository

import (
	"context"
	"database/sql"

	"github.com/article-publishing-api/internal/database"
	"github.com/article-publishing-api/internal/domain"
)

// PostgresSuggestions is the Postgres-backed change suggestion store.
type PostgresSuggestions struct {
	db *database.DB
}

// NewPostgresSuggestions creates a Postgres suggestion repository.
func NewPostgresSuggestions(db *database.DB) *PostgresSuggestions {
	return &PostgresSuggestions{db: db}
}

// Save upserts the suggestion snapshot. Only the status ever changes after
// creation.
func (r *PostgresSuggestions) Save(ctx context.Context, suggestion *domain.ChangeSuggestion) error {
	s := suggestion.Snapshot()
	query := `
		INSERT INTO change_suggestions (id, article_id, copywriter_user_id, comment, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.ArticleID, s.CopywriterUserID, s.Comment, s.Status, s.CreatedAt,
	)
	return err
}

// FindByID retrieves a suggestion by id, or nil when absent.
func (r *PostgresSuggestions) FindByID(ctx context.Context, id string) (*domain.ChangeSuggestion, error) {
	query := `
		SELECT id, article_id, copywriter_user_id, comment, status, created_at
		FROM change_suggestions WHERE id = $1
	`

	var s domain.SuggestionSnapshot
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.ArticleID, &s.CopywriterUserID, &s.Comment, &s.Status, &s.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return domain.SuggestionFromSnapshot(s), nil
}

// FindByArticleID retrieves every suggestion for the article, oldest first.
func (r *PostgresSuggestions) FindByArticleID(ctx context.Context, articleID domain.ArticleID) ([]*domain.ChangeSuggestion, error) {
	query := `
		SELECT id, article_id, copywriter_user_id, comment, status, created_at
		FROM change_suggestions WHERE article_id = $1 ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, articleID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []*domain.ChangeSuggestion
	for rows.Next() {
		var s domain.SuggestionSnapshot
		if err := rows.Scan(&s.ID, &s.ArticleID, &s.CopywriterUserID, &s.Comment, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, domain.SuggestionFromSnapshot(s))
	}
	return suggestions, rows.Err()
}
