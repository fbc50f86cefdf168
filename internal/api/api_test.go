package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/article-publishing-api/internal/api"
	"github.com/article-publishing-api/internal/auth"
	"github.com/article-publishing-api/internal/messages"
	"github.com/article-publishing-api/internal/mocks"
	"github.com/article-publishing-api/internal/repository"
	"github.com/article-publishing-api/internal/service"
)

const testSecret = "test-secret"

type apiFixture struct {
	router   *gin.Engine
	verifier *auth.TokenVerifier
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.NewInMemory()
	publisher := mocks.NewRecordingPublisher()
	services := service.NewServices(repos, publisher, auth.RequestUserContext{}, zerolog.Nop())
	verifier := auth.NewTokenVerifier(testSecret)

	return &apiFixture{
		router:   api.NewRouter(services, verifier, zerolog.Nop()),
		verifier: verifier,
	}
}

func (f *apiFixture) token(t *testing.T, user auth.User) string {
	t.Helper()
	token, err := f.verifier.IssueToken(user, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	return token
}

// do performs a request with an optional JSON body and bearer token.
func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func errorKind(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode[map[string]any](t, w)
	kind, _ := body["kind"].(string)
	return kind
}

func TestHealthEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	w := f.do(t, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := decode[map[string]any](t, w)
	if body["status"] != "healthy" {
		t.Errorf("Unexpected health body: %v", body)
	}
}

func TestSubmitDraftEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	journalistToken := f.token(t, auth.User{ID: "journalist-1", Roles: []string{"journalist"}})
	payload := gin.H{"title": "Title", "text": "Text", "topics": []string{"sport"}}

	t.Run("created", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/v1/articles", journalistToken, payload)
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		dto := decode[messages.ArticleDTO](t, w)
		if dto.ID == "" || dto.Status != "DRAFT" || dto.JournalistUserID != "journalist-1" {
			t.Errorf("Unexpected article: %+v", dto)
		}
	})

	t.Run("no token", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/v1/articles", "", payload)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", w.Code)
		}
		if errorKind(t, w) != "UNAUTHENTICATED" {
			t.Errorf("Unexpected error body: %s", w.Body.String())
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/v1/articles", "not-a-token", payload)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong role", func(t *testing.T) {
		copywriterToken := f.token(t, auth.User{ID: "copywriter-1", Roles: []string{"copywriter"}})
		w := f.do(t, http.MethodPost, "/v1/articles", copywriterToken, payload)
		if w.Code != http.StatusForbidden {
			t.Fatalf("Expected 403, got %d", w.Code)
		}
		if errorKind(t, w) != "MISSING_ROLE" {
			t.Errorf("Unexpected error body: %s", w.Body.String())
		}
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/v1/articles", journalistToken, gin.H{"title": "", "text": "", "topics": []string{}})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
		body := decode[map[string]any](t, w)
		fields, ok := body["fields"].([]any)
		if !ok || len(fields) != 3 {
			t.Errorf("Expected 3 violated fields, got %s", w.Body.String())
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/articles", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Authorization", "Bearer "+journalistToken)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})
}

func TestGetArticleEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	journalistToken := f.token(t, auth.User{ID: "journalist-1", Roles: []string{"journalist"}})

	created := f.do(t, http.MethodPost, "/v1/articles", journalistToken,
		gin.H{"title": "Title", "text": "Text", "topics": []string{"sport"}})
	article := decode[messages.ArticleDTO](t, created)

	t.Run("found without authentication", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/v1/articles/"+article.ID, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		dto := decode[messages.ArticleDTO](t, w)
		if dto.ID != article.ID {
			t.Errorf("Unexpected article: %+v", dto)
		}
	})

	t.Run("not found", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/v1/articles/missing", "", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", w.Code)
		}
		if errorKind(t, w) != "NOT_FOUND" {
			t.Errorf("Unexpected error body: %s", w.Body.String())
		}
	})
}

func TestEditorialWorkflowOverHTTP(t *testing.T) {
	f := newAPIFixture(t)
	journalistToken := f.token(t, auth.User{ID: "journalist-1", Roles: []string{"journalist"}})
	copywriterToken := f.token(t, auth.User{ID: "copywriter-1", Roles: []string{"copywriter"}})

	// journalist submits a draft
	w := f.do(t, http.MethodPost, "/v1/articles", journalistToken,
		gin.H{"title": "Title", "text": "Text", "topics": []string{"sport"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("SubmitDraft: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	article := decode[messages.ArticleDTO](t, w)
	base := "/v1/articles/" + article.ID

	// unassigned copywriter may not suggest yet
	w = f.do(t, http.MethodPost, base+"/suggestions", copywriterToken, gin.H{"comment": "fix it"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("SuggestChange unassigned: expected 403, got %d: %s", w.Code, w.Body.String())
	}

	// assign the copywriter
	w = f.do(t, http.MethodPost, base+"/assign-copywriter", journalistToken,
		gin.H{"copywriter_user_id": "copywriter-1"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("AssignCopywriter: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	// copywriter suggests a change
	w = f.do(t, http.MethodPost, base+"/suggestions", copywriterToken, gin.H{"comment": "fix it"})
	if w.Code != http.StatusCreated {
		t.Fatalf("SuggestChange: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	suggestion := decode[messages.ChangeSuggestionDTO](t, w)
	if suggestion.Status != "UNRESOLVED" {
		t.Fatalf("Expected UNRESOLVED suggestion, got %+v", suggestion)
	}

	// publishing is blocked while the suggestion is unresolved
	w = f.do(t, http.MethodPost, base+"/publish", journalistToken, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("Publish blocked: expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if errorKind(t, w) != "POLICY_VIOLATION" {
		t.Errorf("Unexpected error body: %s", w.Body.String())
	}

	// journalist applies, copywriter resolves
	w = f.do(t, http.MethodPost, base+"/suggestions/"+suggestion.ID+"/applied", journalistToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("MarkApplied: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = f.do(t, http.MethodPost, base+"/suggestions/"+suggestion.ID+"/resolved", copywriterToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Resolve: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// now the publish goes through
	w = f.do(t, http.MethodPost, base+"/publish", journalistToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Publish: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	published := decode[messages.ArticleDTO](t, w)
	if published.Status != "PUBLISHED" {
		t.Fatalf("Expected PUBLISHED, got %+v", published)
	}

	// the review is closed, further suggestions are rejected
	w = f.do(t, http.MethodPost, base+"/suggestions", copywriterToken, gin.H{"comment": "too late"})
	if w.Code != http.StatusConflict {
		t.Fatalf("SuggestChange on closed review: expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if errorKind(t, w) != "REVIEW_CLOSED" {
		t.Errorf("Unexpected error body: %s", w.Body.String())
	}

	// the suggestion listing remains queryable
	w = f.do(t, http.MethodGet, base+"/suggestions", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GetChangeSuggestions: expected 200, got %d", w.Code)
	}
	listed := decode[[]messages.ChangeSuggestionDTO](t, w)
	if len(listed) != 1 || listed[0].Status != "RESOLVED" {
		t.Errorf("Expected 1 resolved suggestion, got %+v", listed)
	}
}

func TestEditEndpointConflicts(t *testing.T) {
	f := newAPIFixture(t)
	journalistToken := f.token(t, auth.User{ID: "journalist-1", Roles: []string{"journalist"}})
	otherToken := f.token(t, auth.User{ID: "journalist-2", Roles: []string{"journalist"}})

	created := f.do(t, http.MethodPost, "/v1/articles", journalistToken,
		gin.H{"title": "Title", "text": "Text", "topics": []string{"sport"}})
	article := decode[messages.ArticleDTO](t, created)
	base := "/v1/articles/" + article.ID
	edit := gin.H{"title": "Edited", "text": "Edited", "topics": []string{"sport"}}

	t.Run("non-owner gets 403", func(t *testing.T) {
		w := f.do(t, http.MethodPost, base+"/edit", otherToken, edit)
		if w.Code != http.StatusForbidden {
			t.Fatalf("Expected 403, got %d: %s", w.Code, w.Body.String())
		}
		if errorKind(t, w) != "OWNERSHIP_VIOLATION" {
			t.Errorf("Unexpected error body: %s", w.Body.String())
		}
	})

	t.Run("edit after publish gets 409", func(t *testing.T) {
		if w := f.do(t, http.MethodPost, base+"/publish", journalistToken, nil); w.Code != http.StatusOK {
			t.Fatalf("Publish failed: %d: %s", w.Code, w.Body.String())
		}
		w := f.do(t, http.MethodPost, base+"/edit", journalistToken, edit)
		if w.Code != http.StatusConflict {
			t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}
