package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skillPath(postID string) string {
	return "/api/v1/posts/" + postID + "/skills"
}

func TestSaveSkill_Create(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)
	post := createPost(t, r, "user-1", map[string]any{"title": "Eng", "raw_text": "desc"})

	t.Run("inserts with fresh id", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, skillPath(post.ID), "user-1", map[string]any{
			"name":       "Go",
			"category":   "language",
			"importance": 5,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		skill := decodeSkill(t, w)
		assert.NotEmpty(t, skill.ID)
		assert.Equal(t, post.ID, skill.JobPostID)
		assert.Equal(t, "Go", skill.Name)
		require.NotNil(t, skill.Importance)
		assert.Equal(t, 5, *skill.Importance)
	})

	t.Run("no dedup: same name inserts another row", func(t *testing.T) {
		first := doRequest(t, r, http.MethodPut, skillPath(post.ID), "user-1", map[string]any{"name": "SQL"})
		second := doRequest(t, r, http.MethodPut, skillPath(post.ID), "user-1", map[string]any{"name": "SQL"})
		require.Equal(t, http.StatusCreated, first.Code)
		require.Equal(t, http.StatusCreated, second.Code)

		assert.NotEqual(t, decodeSkill(t, first).ID, decodeSkill(t, second).ID)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, skillPath(post.ID), "user-1", map[string]any{"category": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects non-integer importance", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, skillPath(post.ID), "user-1", map[string]any{
			"name":       "Go",
			"importance": 2.5,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("other owner gets not found for the post", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, skillPath(post.ID), "user-2", map[string]any{"name": "Go"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects unauthenticated caller", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, skillPath(post.ID), "", map[string]any{"name": "Go"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSaveSkill_Update(t *testing.T) {
	setup := func(t *testing.T) (*gin.Engine, string, string) {
		store := newFakeStore()
		r := newTestRouter(store)
		post := createPost(t, r, "user-1", map[string]any{"title": "Eng", "raw_text": "desc"})

		w := doRequest(t, r, http.MethodPut, skillPath(post.ID), "user-1", map[string]any{
			"name":       "Go",
			"category":   "language",
			"importance": 3,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		return r, post.ID, decodeSkill(t, w).ID
	}

	t.Run("replaces mutable fields in place", func(t *testing.T) {
		r, postID, skillID := setup(t)

		w := doRequest(t, r, http.MethodPut, skillPath(postID), "user-1", map[string]any{
			"id":   skillID,
			"name": "Go 2",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		skill := decodeSkill(t, w)
		assert.Equal(t, skillID, skill.ID)
		assert.Equal(t, "Go 2", skill.Name)
		// Full replace, not a patch: omitted optional fields are cleared.
		assert.Nil(t, skill.Category)
		assert.Nil(t, skill.Importance)
	})

	t.Run("unknown skill id is not found", func(t *testing.T) {
		r, postID, _ := setup(t)

		w := doRequest(t, r, http.MethodPut, skillPath(postID), "user-1", map[string]any{
			"id":   "no-such-skill",
			"name": "Go",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("skill id under another post is not found even for its owner", func(t *testing.T) {
		r, _, skillID := setup(t)

		otherPost := createPost(t, r, "user-1", map[string]any{"title": "Other", "raw_text": "desc"})

		w := doRequest(t, r, http.MethodPut, skillPath(otherPost.ID), "user-1", map[string]any{
			"id":   skillID,
			"name": "Go",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteSkill(t *testing.T) {
	setup := func(t *testing.T) (*fakeStore, *gin.Engine, string, string) {
		store := newFakeStore()
		r := newTestRouter(store)
		post := createPost(t, r, "user-1", map[string]any{"title": "Eng", "raw_text": "desc"})

		w := doRequest(t, r, http.MethodPut, skillPath(post.ID), "user-1", map[string]any{"name": "Go"})
		require.Equal(t, http.StatusCreated, w.Code)
		return store, r, post.ID, decodeSkill(t, w).ID
	}

	t.Run("owner delete returns the deleted record", func(t *testing.T) {
		store, r, postID, skillID := setup(t)

		w := doRequest(t, r, http.MethodDelete, skillPath(postID)+"/"+skillID, "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, skillID, decodeSkill(t, w).ID)
		assert.NotContains(t, store.skills, skillID)
	})

	t.Run("other owner cannot delete", func(t *testing.T) {
		store, r, postID, skillID := setup(t)

		w := doRequest(t, r, http.MethodDelete, skillPath(postID)+"/"+skillID, "user-2", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, store.skills, skillID)
	})

	t.Run("fails once the parent post is gone", func(t *testing.T) {
		_, r, postID, skillID := setup(t)

		del := doRequest(t, r, http.MethodDelete, "/api/v1/posts/"+postID, "user-1", nil)
		require.Equal(t, http.StatusOK, del.Code)

		w := doRequest(t, r, http.MethodDelete, skillPath(postID)+"/"+skillID, "user-1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("wrong parent post id is not found", func(t *testing.T) {
		_, r, _, skillID := setup(t)

		otherPost := createPost(t, r, "user-1", map[string]any{"title": "Other", "raw_text": "desc"})

		w := doRequest(t, r, http.MethodDelete, skillPath(otherPost.ID)+"/"+skillID, "user-1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// TestOwnershipFlow walks the full two-user scenario end to end.
func TestOwnershipFlow(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	post := createPost(t, r, "user-1", map[string]any{"title": "Eng", "raw_text": "desc"})
	require.Equal(t, "user-1", post.UserID)

	// user-2 sees nothing of it.
	list := doRequest(t, r, http.MethodGet, "/api/v1/posts", "user-2", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.NotContains(t, list.Body.String(), post.ID)

	// user-2 cannot attach a skill.
	denied := doRequest(t, r, http.MethodPut, skillPath(post.ID), "user-2", map[string]any{"name": "Go"})
	assert.Equal(t, http.StatusNotFound, denied.Code)

	// user-1 can, then updates it in place.
	created := doRequest(t, r, http.MethodPut, skillPath(post.ID), "user-1", map[string]any{"name": "Go"})
	require.Equal(t, http.StatusCreated, created.Code)
	skillID := decodeSkill(t, created).ID

	updated := doRequest(t, r, http.MethodPut, skillPath(post.ID), "user-1", map[string]any{
		"id":   skillID,
		"name": "Go 2",
	})
	require.Equal(t, http.StatusOK, updated.Code)
	assert.Equal(t, skillID, decodeSkill(t, updated).ID)
	assert.Equal(t, "Go 2", decodeSkill(t, updated).Name)

	// Deleting the post works once, then conflates to not found.
	first := doRequest(t, r, http.MethodDelete, "/api/v1/posts/"+post.ID, "user-1", nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := doRequest(t, r, http.MethodDelete, "/api/v1/posts/"+post.ID, "user-1", nil)
	assert.Equal(t, http.StatusNotFound, second.Code)
}
