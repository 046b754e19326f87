package translit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSuggestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &Handler{Engine: NewEngine(nil)}
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func postSuggest(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/translit/suggest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type suggestResponse struct {
	Word        string   `json:"word"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Suggestions []string `json:"suggestions"`
}

func TestSuggestEndpoint(t *testing.T) {
	r := newSuggestRouter()

	rec := postSuggest(t, r, `{"text":"mu bhala na","caret":11}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp suggestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "na", resp.Word)
	assert.Equal(t, 9, resp.Start)
	assert.Equal(t, 11, resp.End)
	assert.Equal(t, []string{"ନ", "ଣ"}, resp.Suggestions)
}

func TestSuggestEndpointDefaultsCaretToEnd(t *testing.T) {
	r := newSuggestRouter()

	rec := postSuggest(t, r, `{"text":"na"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp suggestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "na", resp.Word)
}

func TestSuggestEndpointWhitespaceCaret(t *testing.T) {
	r := newSuggestRouter()

	rec := postSuggest(t, r, `{"text":"a  b","caret":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp suggestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "", resp.Word)
	assert.Empty(t, resp.Suggestions)
}

func TestSuggestEndpointRejectsBadBody(t *testing.T) {
	r := newSuggestRouter()
	rec := postSuggest(t, r, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
