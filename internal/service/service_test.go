package service_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/article-publishing-api/internal/auth"
	"github.com/article-publishing-api/internal/messages"
	"github.com/article-publishing-api/internal/mocks"
	"github.com/article-publishing-api/internal/repository"
	"github.com/article-publishing-api/internal/service"
)

var (
	journalist      = auth.User{ID: "journalist-1", Roles: []string{auth.RoleJournalist}}
	otherJournalist = auth.User{ID: "journalist-2", Roles: []string{auth.RoleJournalist}}
	copywriter      = auth.User{ID: "copywriter-1", Roles: []string{auth.RoleCopywriter}}
	otherCopywriter = auth.User{ID: "copywriter-2", Roles: []string{auth.RoleCopywriter}}
)

// fixture wires the facade over in-memory repositories with a switchable
// current user and a recording event publisher.
type fixture struct {
	services  *service.Services
	repos     *repository.Repositories
	publisher *mocks.RecordingPublisher
	userCtx   *mocks.StaticUserContext
}

func newFixture(tb testing.TB) *fixture {
	tb.Helper()
	repos := repository.NewInMemory()
	publisher := mocks.NewRecordingPublisher()
	userCtx := mocks.NewStaticUserContext(nil)
	services := service.NewServices(repos, publisher, userCtx, zerolog.Nop())
	return &fixture{services: services, repos: repos, publisher: publisher, userCtx: userCtx}
}

// submitDraft submits a draft as the given journalist and returns its DTO.
func (f *fixture) submitDraft(t *testing.T, as auth.User) messages.ArticleDTO {
	t.Helper()
	f.userCtx.ActAs(&as)
	dto, err := f.services.Article.SubmitDraft(context.Background(), &messages.SubmitDraftArticle{
		Title:  "Title",
		Text:   "Text",
		Topics: []string{"sport"},
	})
	if err != nil {
		t.Fatalf("SubmitDraft failed: %v", err)
	}
	return dto
}

// assignCopywriter assigns the given copywriter to the article's review.
func (f *fixture) assignCopywriter(t *testing.T, articleID, copywriterUserID string) {
	t.Helper()
	err := f.services.Review.AssignCopywriter(context.Background(), &messages.AssignCopywriterToArticle{
		ArticleID:        articleID,
		CopywriterUserID: copywriterUserID,
	})
	if err != nil {
		t.Fatalf("AssignCopywriter failed: %v", err)
	}
}

// suggestChange attaches a suggestion as the given copywriter.
func (f *fixture) suggestChange(t *testing.T, as auth.User, articleID string) messages.ChangeSuggestionDTO {
	t.Helper()
	f.userCtx.ActAs(&as)
	dto, err := f.services.Review.SuggestChange(context.Background(), &messages.SuggestChange{
		ArticleID: articleID,
		Comment:   "fix the headline",
	})
	if err != nil {
		t.Fatalf("SuggestChange failed: %v", err)
	}
	return dto
}
