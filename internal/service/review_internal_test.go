package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/article-publishing-api/internal/domain"
	"github.com/article-publishing-api/internal/mocks"
	"github.com/article-publishing-api/internal/repository"
)

func TestBeginReviewingIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewInMemory()
	svc := newReviewService(repos, mocks.NewStaticUserContext(nil), zerolog.Nop())
	articleID := domain.ArticleID("a1")

	if err := svc.beginReviewing(ctx, articleID); err != nil {
		t.Fatalf("beginReviewing failed: %v", err)
	}

	review, err := repository.GetReview(ctx, repos.Reviews, articleID)
	if err != nil {
		t.Fatalf("GetReview failed: %v", err)
	}
	review.AssignCopywriter("copywriter-1")
	if err := repos.Reviews.Save(ctx, review); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// a second begin must not reset the existing review
	if err := svc.beginReviewing(ctx, articleID); err != nil {
		t.Fatalf("beginReviewing failed: %v", err)
	}

	reloaded, err := repository.GetReview(ctx, repos.Reviews, articleID)
	if err != nil {
		t.Fatalf("GetReview failed: %v", err)
	}
	if reloaded.AssignedCopywriterUserID() != "copywriter-1" {
		t.Error("Duplicate begin must leave the existing review untouched")
	}
}

func TestCloseReviewingMissingReview(t *testing.T) {
	repos := repository.NewInMemory()
	svc := newReviewService(repos, mocks.NewStaticUserContext(nil), zerolog.Nop())

	err := svc.closeReviewing(context.Background(), domain.ArticleID("missing"))
	if err == nil {
		t.Fatal("Expected closing a missing review to fail")
	}
}
