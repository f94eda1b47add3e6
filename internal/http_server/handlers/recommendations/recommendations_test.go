package recommendations

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"careerpath/internal/http_server/middleware/authgate"
	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/storage/memory"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asUser stands in for the gate: it marks every request as coming from uid.
func asUser(uid int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(authgate.WithUserID(r.Context(), uid)))
		})
	}
}

func newRouter(store Store, uid int64) http.Handler {
	log := sl.Discard()

	r := chi.NewRouter()
	if uid > 0 {
		r.Use(asUser(uid))
	}
	r.Post("/generate", NewGenerate(log, store))
	r.Get("/", NewList(log, store))
	r.Put("/{id}/save", NewSave(log, store))

	return r
}

func do(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) ListResponse {
	t.Helper()

	var got ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	return got
}

func TestRecommendations_Flow(t *testing.T) {
	store := memory.New()
	ana := newRouter(store, 1)

	rec := do(ana, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","recommendations":[]}`, rec.Body.String())

	rec = do(ana, http.MethodPost, "/generate")
	require.Equal(t, http.StatusOK, rec.Code)
	generated := decodeList(t, rec).Recommendations
	require.Len(t, generated, 5)
	assert.Equal(t, "Software Developer", generated[0].Title)

	target := generated[2].ID

	rec = do(ana, http.MethodPut, fmt.Sprintf("/%d/save?saved=true", target))
	require.Equal(t, http.StatusOK, rec.Code)

	listed := decodeList(t, do(ana, http.MethodGet, "/")).Recommendations
	require.Len(t, listed, 5)
	assert.True(t, listed[2].Saved)

	rec = do(ana, http.MethodPut, fmt.Sprintf("/%d/save", target))
	require.Equal(t, http.StatusOK, rec.Code)
	listed = decodeList(t, do(ana, http.MethodGet, "/")).Recommendations
	assert.False(t, listed[2].Saved)

	bob := newRouter(store, 2)
	rec = do(bob, http.MethodPut, fmt.Sprintf("/%d/save?saved=true", target))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecommendations_BadInput(t *testing.T) {
	h := newRouter(memory.New(), 1)

	for _, path := range []string{"/abc/save", "/0/save", "/1/save?saved=maybe"} {
		rec := do(h, http.MethodPut, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestRecommendations_RequireIdentity(t *testing.T) {
	h := newRouter(memory.New(), 0)

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/").Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPost, "/generate").Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPut, "/1/save?saved=true").Code)
}
