// Client for the Radarr media-library API: look a title up, resolve the
// storage root folder, and submit an add-and-monitor request.
package radarr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Fixed download policy. Quality and monitoring are deployment constants,
// never derived from user input.
const (
	qualityProfileID = 1
	requestTimeout   = 10 * time.Second
)

// Movie is one lookup match from Radarr's catalog.
type Movie struct {
	Title     string `json:"title"`
	Year      int    `json:"year"`
	TmdbID    int64  `json:"tmdbId"`
	Available bool   `json:"isAvailable"`
}

type rootFolder struct {
	Path string `json:"path"`
}

type addOptions struct {
	SearchForMovie bool `json:"searchForMovie"`
}

type addMovieRequest struct {
	Title            string     `json:"title"`
	TmdbID           int64      `json:"tmdbId"`
	Year             int        `json:"year"`
	QualityProfileID int        `json:"qualityProfileId"`
	Monitored        bool       `json:"monitored"`
	IsAvailable      bool       `json:"isAvailable"`
	RootFolderPath   string     `json:"rootFolderPath"`
	AddOptions       addOptions `json:"addOptions"`
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client

	rootFolder string // cached after the first successful fetch
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// Enabled reports whether the client has a URL and API key. Missing
// credentials disable acquisition without failing the watcher.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != "" && c.apiKey != ""
}

func (c *Client) do(method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// Lookup free-text searches the catalog and returns the first
// (highest-confidence) match.
func (c *Client) Lookup(title string) (Movie, error) {
	var matches []Movie
	query := url.Values{"term": {title}}
	if err := c.do(http.MethodGet, "/api/v3/movie/lookup", query, nil, &matches); err != nil {
		return Movie{}, err
	}
	if len(matches) == 0 {
		return Movie{}, fmt.Errorf("no lookup match for %q", title)
	}
	return matches[0], nil
}

// RootFolder returns Radarr's default storage path. The value is cached
// after the first success so a batch of events makes at most one
// root-folder call; a failed fetch leaves the cache empty for a retry.
func (c *Client) RootFolder() (string, error) {
	if c.rootFolder != "" {
		return c.rootFolder, nil
	}
	var folders []rootFolder
	if err := c.do(http.MethodGet, "/api/v3/rootfolder", nil, nil, &folders); err != nil {
		return "", err
	}
	if len(folders) == 0 {
		return "", fmt.Errorf("radarr has no root folders configured")
	}
	c.rootFolder = folders[0].Path
	return c.rootFolder, nil
}

// Add submits a matched movie for download and monitoring.
func (c *Client) Add(movie Movie, rootFolderPath string) error {
	body := addMovieRequest{
		Title:            movie.Title,
		TmdbID:           movie.TmdbID,
		Year:             movie.Year,
		QualityProfileID: qualityProfileID,
		Monitored:        true,
		IsAvailable:      movie.Available,
		RootFolderPath:   rootFolderPath,
		AddOptions:       addOptions{SearchForMovie: true},
	}
	return c.do(http.MethodPost, "/api/v3/movie", nil, body, nil)
}

// Acquire runs the lookup → root folder → add pipeline for one title. Any
// failure aborts only this title's acquisition.
func (c *Client) Acquire(title string) error {
	movie, err := c.Lookup(title)
	if err != nil {
		return err
	}
	log.Info().Str("title", movie.Title).Int("year", movie.Year).Int64("tmdb_id", movie.TmdbID).
		Msg("radarr lookup matched")

	root, err := c.RootFolder()
	if err != nil {
		return err
	}

	return c.Add(movie, root)
}
