package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/article-publishing-api/internal/database"
	"github.com/article-publishing-api/internal/domain"
)

// PostgresArticles is the Postgres-backed article store.
type PostgresArticles struct {
	db *database.DB
}

// NewPostgresArticles creates a Postgres article repository.
func NewPostgresArticles(db *database.DB) *PostgresArticles {
	return &PostgresArticles{db: db}
}

// Save upserts the article snapshot.
func (r *PostgresArticles) Save(ctx context.Context, article *domain.Article) error {
	s := article.Snapshot()
	topicsJSON, err := json.Marshal(s.Topics)
	if err != nil {
		return fmt.Errorf("marshal topics: %w", err)
	}

	query := `
		INSERT INTO articles (id, title, text, topics, status, journalist_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			text = EXCLUDED.text,
			topics = EXCLUDED.topics,
			status = EXCLUDED.status,
			updated_at = NOW()
	`
	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.Title, s.Text, topicsJSON, s.Status, s.JournalistUserID,
	)
	return err
}

// FindByID retrieves an article by id, or nil when absent.
func (r *PostgresArticles) FindByID(ctx context.Context, id domain.ArticleID) (*domain.Article, error) {
	query := `
		SELECT id, title, text, topics, status, journalist_user_id
		FROM articles WHERE id = $1
	`

	var s domain.ArticleSnapshot
	var topicsJSON []byte

	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(
		&s.ID, &s.Title, &s.Text, &topicsJSON, &s.Status, &s.JournalistUserID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(topicsJSON, &s.Topics); err != nil {
		return nil, fmt.Errorf("unmarshal topics: %w", err)
	}

	return domain.ArticleFromSnapshot(s), nil
}
