package repository

import (
	"context"
	"database/sql"

	"github.com/article-publishing-api/internal/database"
	"github.com/article-publishing-api/internal/domain"
)

// PostgresReviews is the Postgres-backed article review store.
type PostgresReviews struct {
	db *database.DB
}

// NewPostgresReviews creates a Postgres review repository.
func NewPostgresReviews(db *database.DB) *PostgresReviews {
	return &PostgresReviews{db: db}
}

// Save upserts the review snapshot, keyed by article id.
func (r *PostgresReviews) Save(ctx context.Context, review *domain.ArticleReview) error {
	s := review.Snapshot()
	query := `
		INSERT INTO article_reviews (article_id, status, copywriter_user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (article_id) DO UPDATE SET
			status = EXCLUDED.status,
			copywriter_user_id = EXCLUDED.copywriter_user_id,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, s.ArticleID, s.Status, nullable(s.CopywriterUserID))
	return err
}

// FindByArticleID retrieves a review by article id, or nil when absent.
func (r *PostgresReviews) FindByArticleID(ctx context.Context, articleID domain.ArticleID) (*domain.ArticleReview, error) {
	query := `
		SELECT article_id, status, copywriter_user_id
		FROM article_reviews WHERE article_id = $1
	`

	var s domain.ReviewSnapshot
	var copywriter sql.NullString

	err := r.db.QueryRowContext(ctx, query, articleID.String()).Scan(&s.ArticleID, &s.Status, &copywriter)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if copywriter.Valid {
		s.CopywriterUserID = copywriter.String
	}

	return domain.ReviewFromSnapshot(s), nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
