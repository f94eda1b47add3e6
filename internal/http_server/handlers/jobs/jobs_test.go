package jobs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"careerpath/internal/http_server/middleware/authgate"
	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/lib/validate"
	"careerpath/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(h http.HandlerFunc, method string, uid int64, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/jobs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if uid > 0 {
		req = req.WithContext(authgate.WithUserID(req.Context(), uid))
	}
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) ListResponse {
	t.Helper()

	var got ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	return got
}

func TestSearch(t *testing.T) {
	search := NewSearch(sl.Discard(), validate.New())

	rec := do(search, http.MethodPost, 1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec).Jobs, 3)

	rec = do(search, http.MethodPost, 1, `{"query":"developer"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	found := decodeList(t, rec).Jobs
	require.Len(t, found, 1)
	assert.Equal(t, "Frontend Developer", found[0].Title)

	rec = do(search, http.MethodPost, 1, `{"query":"astronaut"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","jobs":[]}`, rec.Body.String())

	rec = do(search, http.MethodPost, 0, `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSaveAndListSaved(t *testing.T) {
	store := memory.New()
	log := sl.Discard()
	save, saved := NewSave(log, validate.New(), store), NewSaved(log, store)

	rec := do(saved, http.MethodGet, 1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeList(t, rec).Jobs)

	rec = do(save, http.MethodPost, 1, `{"title":" Data Scientist ","company":"Data Inc","url":"https://example.com/job/2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Positive(t, got.Job.ID)
	assert.Equal(t, "Data Scientist", got.Job.Title)

	list := decodeList(t, do(saved, http.MethodGet, 1, "")).Jobs
	require.Len(t, list, 1)
	assert.Equal(t, got.Job.ID, list[0].ID)

	assert.Empty(t, decodeList(t, do(saved, http.MethodGet, 2, "")).Jobs)
}

func TestSave_Rejects(t *testing.T) {
	save := NewSave(sl.Discard(), validate.New(), memory.New())

	for _, body := range []string{
		``,
		`{}`,
		`{"title":"   "}`,
		`{"title":"Dev","url":"not a url"}`,
	} {
		rec := do(save, http.MethodPost, 1, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec := do(save, http.MethodPost, 0, `{"title":"Dev"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
