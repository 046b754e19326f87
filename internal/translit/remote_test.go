package translit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteSourceParsesCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "bhala", r.PostFormValue("text"))
		assert.Equal(t, "transliteration_en_or", r.PostFormValue("ime"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["SUCCESS",[["bhala",["ଭଲ","ଭାଲା"],[],{}]]]`))
	}))
	defer srv.Close()

	src := NewRemoteSource(srv.URL, time.Second)
	got := src.Suggest(context.Background(), "bhala")
	assert.Equal(t, []string{"ଭଲ", "ଭାଲା"}, got)
}

func TestRemoteSourceSilentOnFailure(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		src := NewRemoteSource(srv.URL, time.Second)
		assert.Nil(t, src.Suggest(context.Background(), "bhala"))
	})

	t.Run("malformed payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
		}))
		defer srv.Close()

		src := NewRemoteSource(srv.URL, time.Second)
		assert.Nil(t, src.Suggest(context.Background(), "bhala"))
	})

	t.Run("failure status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`["FAILED_TO_PARSE_REQUEST_BODY"]`))
		}))
		defer srv.Close()

		src := NewRemoteSource(srv.URL, time.Second)
		assert.Nil(t, src.Suggest(context.Background(), "bhala"))
	})

	t.Run("unreachable host", func(t *testing.T) {
		src := NewRemoteSource("http://127.0.0.1:1", 200*time.Millisecond)
		assert.Nil(t, src.Suggest(context.Background(), "bhala"))
	})
}

func TestEngineSurvivesRemoteOutage(t *testing.T) {
	src := NewRemoteSource("http://127.0.0.1:1", 100*time.Millisecond)
	e := NewEngine(src)

	got := e.Suggest(context.Background(), "na")
	assert.Equal(t, []string{"ନ", "ଣ"}, got, "local sources still answer when remote is down")
}
