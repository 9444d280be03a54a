package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-engine/config"
	"github.com/d60-Lab/blog-engine/internal/api/handler"
	"github.com/d60-Lab/blog-engine/internal/directory"
	"github.com/d60-Lab/blog-engine/internal/repository"
	"github.com/d60-Lab/blog-engine/internal/service"
	"github.com/d60-Lab/blog-engine/internal/testutil"
	"github.com/d60-Lab/blog-engine/pkg/markdown"
	"github.com/d60-Lab/blog-engine/pkg/storage"
)

const testSecret = "test-secret"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := testutil.NewDB(t)
	store, err := storage.NewLocal(t.TempDir(), "http://cdn.test")
	require.NoError(t, err)

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: gin.TestMode},
		JWT:     config.JWTConfig{Secret: testSecret},
		Storage: config.StorageConfig{Dir: t.TempDir(), BaseURL: "http://cdn.test"},
		Feed:    config.FeedConfig{PageSize: 10},
	}

	postRepo := repository.NewPostRepository(db)
	tagRepo := repository.NewTagRepository(db)
	catRepo := repository.NewCategoryRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	savedRepo := repository.NewSavedPostRepository(db)

	dir := directory.New(repository.NewProfileRepository(db), nil, 0)
	notifications := service.NewNotificationService(repository.NewNotificationRepository(db))
	notifier := service.NewNotifier(notifications, config.NotificationsConfig{})
	postTags := service.NewPostTagService(repository.NewPostTagRepository(db))
	engagement := service.NewEngagementService(postRepo, likeRepo, repository.NewViewRepository(db), commentRepo, savedRepo, postTags, dir)

	h := handler.New(handler.Services{
		Posts:         service.NewPostService(postRepo, tagRepo, catRepo, postTags, engagement, dir, markdown.NewRenderer(), store, notifier),
		Discovery:     service.NewDiscoveryService(postRepo, tagRepo, catRepo, postTags, engagement, dir, cfg.Feed.PageSize),
		Engagement:    engagement,
		Likes:         service.NewLikeService(likeRepo, postRepo, engagement, notifier),
		Comments:      service.NewCommentService(commentRepo, postRepo, engagement, notifier),
		Saved:         service.NewSavedPostService(savedRepo, repository.NewCollectionRepository(db), postRepo, engagement, notifier),
		Relations:     service.NewRelationshipService(repository.NewFollowRepository(db), engagement, notifier),
		Notifications: notifications,
		Taxonomy:      service.NewTaxonomyService(tagRepo, catRepo),
	})
	return NewRouter(cfg, h)
}

func token(t *testing.T, userID string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func do(t *testing.T, r *gin.Engine, method, path, userID string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func createPost(t *testing.T, r *gin.Engine, userID string, body map[string]any) string {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/v1/posts", userID, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p.ID
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w, _ := do(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWriteRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)
	w, _ := do(t, r, http.MethodPost, "/api/v1/posts", "", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPostLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	id := createPost(t, r, "alice", map[string]any{"title": "Hello World", "content_markdown": "hi", "is_published": true})

	w, env := do(t, r, http.MethodGet, "/api/v1/posts/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "published", got["status"])
	assert.Equal(t, "hello-world", got["slug"])

	w, _ = do(t, r, http.MethodDelete, "/api/v1/posts/"+id, "mallory", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, r, http.MethodPut, "/api/v1/posts/"+id, "mallory", map[string]any{"title": "mine"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/v1/posts", "alice", map[string]any{"title": "x", "status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, r, http.MethodPost, "/api/v1/posts", "alice", map[string]any{"title": "x", "scheduled_for": "tomorrow"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/v1/posts/"+id, "alice", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = do(t, r, http.MethodGet, "/api/v1/posts/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMultipartPostWithImage(t *testing.T) {
	r := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "With image"))
	require.NoError(t, mw.WriteField("is_published", "true"))
	fw, err := mw.CreateFormFile("featured_image", "cover.PNG")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token(t, "alice"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var p struct {
		FeaturedImageURL string `json:"featured_image_url"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.True(t, strings.HasPrefix(p.FeaturedImageURL, "http://cdn.test/posts/"), p.FeaturedImageURL)
	assert.True(t, strings.HasSuffix(p.FeaturedImageURL, ".png"))
}

func TestCommentNotifiesOwner(t *testing.T) {
	r := newTestRouter(t)
	id := createPost(t, r, "alice", map[string]any{"title": "p", "is_published": true})

	w, _ := do(t, r, http.MethodPost, "/api/v1/posts/"+id+"/comments", "bob", map[string]any{"content": "nice"})
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = do(t, r, http.MethodPost, "/api/v1/posts/"+id+"/comments", "bob", map[string]any{"content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, r, http.MethodPost, "/api/v1/posts/missing/comments", "bob", map[string]any{"content": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/v1/notifications", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notes []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "comment", notes[0].Type)

	// 别人的通知看不到
	w, _ = do(t, r, http.MethodGet, "/api/v1/notifications/"+notes[0].ID, "bob", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, r, http.MethodPut, "/api/v1/notifications/"+notes[0].ID+"/read", "alice", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestFollowOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w, _ := do(t, r, http.MethodPost, "/api/v1/relations/follow", "alice", map[string]any{"to_user_id": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/v1/relations/follow", "alice", map[string]any{"to_user_id": "bob"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/v1/relations/bob/stats", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.EqualValues(t, 1, stats["followers"])
	assert.Equal(t, true, stats["is_following"])
}

func TestDiscoveryRoutes(t *testing.T) {
	r := newTestRouter(t)
	createPost(t, r, "alice", map[string]any{"title": "Go tips", "is_published": true, "location_tag": "Berlin"})

	w, _ := do(t, r, http.MethodGet, "/api/v1/search?q=", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/v1/search?q=go", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		List []map[string]any `json:"list"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.List, 1)

	w, env = do(t, r, http.MethodGet, "/api/v1/filter?tags=unknown", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)

	w, env = do(t, r, http.MethodGet, "/api/v1/filter?locations=berlin", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}

func TestCollectionsOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	id := createPost(t, r, "alice", map[string]any{"title": "p", "is_published": true})

	w, env := do(t, r, http.MethodPost, "/api/v1/collections", "bob", map[string]any{"name": "later"})
	require.Equal(t, http.StatusCreated, w.Code)
	var col struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &col))

	w, _ = do(t, r, http.MethodPost, "/api/v1/saved", "carol", map[string]any{"post_id": id, "collection_id": col.ID})
	assert.Equal(t, http.StatusNotFound, w.Code, "someone else's collection")

	w, _ = do(t, r, http.MethodPost, "/api/v1/saved", "bob", map[string]any{"post_id": id, "collection_id": col.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/v1/collections/"+col.ID, "bob", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/v1/saved", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var saved []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	require.Len(t, saved, 1)
	_, hasCollection := saved[0]["collection_id"]
	assert.False(t, hasCollection)
}
