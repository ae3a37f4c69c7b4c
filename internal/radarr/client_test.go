package radarr

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEnabled(t *testing.T) {
	assert.False(t, NewClient("", "").Enabled())
	assert.False(t, NewClient("http://radarr:7878", "").Enabled())
	assert.False(t, NewClient("", "key").Enabled())
	assert.True(t, NewClient("http://radarr:7878", "key").Enabled())

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
}

func TestAcquireHappyPath(t *testing.T) {
	var addBody addMovieRequest
	rootFolderCalls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("X-Api-Key"))
		switch r.URL.Path {
		case "/api/v3/movie/lookup":
			assert.Equal(t, "The Matrix", r.URL.Query().Get("term"))
			json.NewEncoder(w).Encode([]Movie{
				{Title: "The Matrix", Year: 1999, TmdbID: 603, Available: true},
				{Title: "The Matrix Reloaded", Year: 2003, TmdbID: 604, Available: true},
			})
		case "/api/v3/rootfolder":
			rootFolderCalls++
			json.NewEncoder(w).Encode([]rootFolder{{Path: "/movies"}, {Path: "/movies-4k"}})
		case "/api/v3/movie":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&addBody))
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")
	require.NoError(t, c.Acquire("The Matrix"))

	// the first (highest-confidence) match wins and the fixed policy applies
	assert.Equal(t, "The Matrix", addBody.Title)
	assert.Equal(t, int64(603), addBody.TmdbID)
	assert.Equal(t, 1999, addBody.Year)
	assert.True(t, addBody.IsAvailable)
	assert.Equal(t, "/movies", addBody.RootFolderPath)
	assert.Equal(t, qualityProfileID, addBody.QualityProfileID)
	assert.True(t, addBody.Monitored)
	assert.True(t, addBody.AddOptions.SearchForMovie)

	// the root folder is cached after the first success
	require.NoError(t, c.Acquire("The Matrix"))
	assert.Equal(t, 1, rootFolderCalls)
}

func TestAcquireNoLookupMatch(t *testing.T) {
	addCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/movie/lookup":
			json.NewEncoder(w).Encode([]Movie{})
		case "/api/v3/movie":
			addCalls++
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")
	err := c.Acquire("No Such Film")
	assert.Error(t, err)
	assert.Zero(t, addCalls)
}

func TestAcquireUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")
	assert.Error(t, c.Acquire("The Matrix"))
}

// A failed root-folder fetch must not poison the cache.
func TestRootFolderRefetchedAfterFailure(t *testing.T) {
	rootFolderCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/movie/lookup":
			json.NewEncoder(w).Encode([]Movie{{Title: "The Matrix", Year: 1999, TmdbID: 603}})
		case "/api/v3/rootfolder":
			rootFolderCalls++
			if rootFolderCalls == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			json.NewEncoder(w).Encode([]rootFolder{{Path: "/movies"}})
		case "/api/v3/movie":
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")
	assert.Error(t, c.Acquire("The Matrix"))
	assert.NoError(t, c.Acquire("The Matrix"))
	assert.Equal(t, 2, rootFolderCalls)
}
