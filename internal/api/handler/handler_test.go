package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jobtrack/jobtrack-be/internal/api/auth"
	"github.com/jobtrack/jobtrack-be/internal/api/domain"
	"github.com/jobtrack/jobtrack-be/internal/api/dto"
	"github.com/jobtrack/jobtrack-be/internal/api/model"
	"github.com/jobtrack/jobtrack-be/internal/api/storage"
)

// fakeStore is an in-memory PostStore and SkillStore with the same
// owner-filtering behavior as the SQL layer. It counts post writes so tests
// can assert that empty patches never touch storage.
type fakeStore struct {
	posts      map[string]model.JobPost
	skills     map[string]model.JobSkill
	postWrites int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		posts:  make(map[string]model.JobPost),
		skills: make(map[string]model.JobSkill),
	}
}

func (f *fakeStore) CreatePost(_ context.Context, post *model.JobPost) error {
	f.posts[post.ID] = *post
	f.postWrites++
	return nil
}

func (f *fakeStore) GetPostByID(_ context.Context, id, userID string) (*model.JobPost, error) {
	post, ok := f.posts[id]
	if !ok || post.UserID != userID {
		return nil, domain.ErrPostNotFound
	}
	return &post, nil
}

func (f *fakeStore) ListPosts(_ context.Context, userID string) ([]model.JobPost, error) {
	var posts []model.JobPost
	for _, post := range f.posts {
		if post.UserID == userID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (f *fakeStore) UpdatePost(_ context.Context, id, userID string, patch storage.PostPatch) (*model.JobPost, error) {
	post, ok := f.posts[id]
	if !ok || post.UserID != userID {
		return nil, domain.ErrPostNotFound
	}

	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.CompanyName != nil {
		post.CompanyName = toNullString(*patch.CompanyName)
	}
	if patch.Location != nil {
		post.Location = toNullString(*patch.Location)
	}
	if patch.SourceType != nil {
		post.SourceType = toNullString(*patch.SourceType)
	}
	if patch.SourceURL != nil {
		post.SourceURL = toNullString(*patch.SourceURL)
	}
	if patch.RawText != nil {
		post.RawText = *patch.RawText
	}

	f.posts[id] = post
	f.postWrites++
	return &post, nil
}

func (f *fakeStore) DeletePost(_ context.Context, id, userID string) (*model.JobPost, error) {
	post, ok := f.posts[id]
	if !ok || post.UserID != userID {
		return nil, domain.ErrPostNotFound
	}
	delete(f.posts, id)
	return &post, nil
}

func (f *fakeStore) GetSkillByID(_ context.Context, id string) (*model.JobSkill, error) {
	skill, ok := f.skills[id]
	if !ok {
		return nil, domain.ErrSkillNotFound
	}
	return &skill, nil
}

func (f *fakeStore) InsertSkill(_ context.Context, skill *model.JobSkill) error {
	f.skills[skill.ID] = *skill
	return nil
}

func (f *fakeStore) ReplaceSkill(_ context.Context, skill *model.JobSkill) (*model.JobSkill, error) {
	existing, ok := f.skills[skill.ID]
	if !ok || existing.JobPostID != skill.JobPostID {
		return nil, domain.ErrSkillNotFound
	}
	f.skills[skill.ID] = *skill
	updated := *skill
	return &updated, nil
}

func (f *fakeStore) DeleteSkill(_ context.Context, id, jobPostID string) (*model.JobSkill, error) {
	skill, ok := f.skills[id]
	if !ok || skill.JobPostID != jobPostID {
		return nil, domain.ErrSkillNotFound
	}
	delete(f.skills, id)
	return &skill, nil
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func newTestRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	deps := &Dependencies{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Posts:  store,
		Skills: store,
	}

	postHandler := NewPostHandler(deps)
	skillHandler := NewSkillHandler(deps)

	r := gin.New()
	r.Use(auth.Middleware())

	v1 := r.Group("/api/v1")
	posts := v1.Group("/posts")
	posts.POST("", postHandler.CreatePost)
	posts.GET("", postHandler.ListPosts)
	posts.PATCH("/:post_id", postHandler.UpdatePost)
	posts.DELETE("/:post_id", postHandler.DeletePost)
	posts.PUT("/:post_id/skills", skillHandler.SaveSkill)
	posts.DELETE("/:post_id/skills/:skill_id", skillHandler.DeleteSkill)

	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(auth.HeaderUserID, userID)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodePost(t *testing.T, w *httptest.ResponseRecorder) dto.PostDTO {
	t.Helper()
	var resp struct {
		Post dto.PostDTO `json:"post"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Post
}

func decodeSkill(t *testing.T, w *httptest.ResponseRecorder) dto.SkillDTO {
	t.Helper()
	var resp struct {
		Skill dto.SkillDTO `json:"skill"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Skill
}

func createPost(t *testing.T, r *gin.Engine, userID string, body map[string]any) dto.PostDTO {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/v1/posts", userID, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodePost(t, w)
}
