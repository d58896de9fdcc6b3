// Package spotify is the catalog client for the Spotify Web API.
// It authenticates once via the client-credentials grant and exposes typed
// read operations. All calls fail fast: one fixed timeout, no retries.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/agatav13/pipeline-spotify/pkg/models"
)

const (
	defaultTokenURL = "https://accounts.spotify.com/api/token"
	defaultBaseURL  = "https://api.spotify.com"

	requestTimeout = 10 * time.Second
)

// Client talks to the Spotify Web API. It holds exactly one bearer token for
// its lifetime; re-authentication requires a new instance.
type Client struct {
	httpClient *http.Client

	clientID     string
	clientSecret string

	// Overridable for tests.
	TokenURL string
	BaseURL  string

	accessToken string
}

// New builds a client from the application credentials. It returns an
// AuthError when either credential is empty, before any network traffic.
func New(clientID, clientSecret string) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, &AuthError{Reason: "missing CLIENT_ID or CLIENT_SECRET"}
	}
	return &Client{
		httpClient:   &http.Client{Timeout: requestTimeout},
		clientID:     clientID,
		clientSecret: clientSecret,
		TokenURL:     defaultTokenURL,
		BaseURL:      defaultBaseURL,
	}, nil
}

// Authenticate performs the client-credentials token exchange and caches the
// resulting bearer token. There is no refresh logic; the token is expected to
// outlive a single pipeline run.
func (c *Client) Authenticate(ctx context.Context) error {
	conf := &clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	tok, err := conf.Token(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient))
	if err != nil {
		return &AuthError{Reason: "token request failed", Err: err}
	}

	c.accessToken = tok.AccessToken
	return nil
}

// GetNewReleases lists newly released albums, up to limit items.
func (c *Client) GetNewReleases(ctx context.Context, limit int) (*NewReleasesPage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var page NewReleasesPage
	if err := c.get(ctx, "/v1/browse/new-releases", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search queries the catalog for the given entity types
// (e.g. "album", "artist", "track"). Market is optional.
func (c *Client) Search(ctx context.Context, query string, types []string, limit int, market string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", strings.Join(types, ","))
	params.Set("limit", strconv.Itoa(limit))
	if market != "" {
		params.Set("market", market)
	}

	var result SearchResult
	if err := c.get(ctx, "/v1/search", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAlbum fetches a single album by id.
func (c *Client) GetAlbum(ctx context.Context, albumID string) (*models.RawAlbum, error) {
	var album models.RawAlbum
	if err := c.get(ctx, "/v1/albums/"+albumID, nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// GetArtist fetches a single artist by id.
func (c *Client) GetArtist(ctx context.Context, artistID string) (*Artist, error) {
	var artist Artist
	if err := c.get(ctx, "/v1/artists/"+artistID, nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// GetTrack fetches a single track by id.
func (c *Client) GetTrack(ctx context.Context, trackID string) (*Track, error) {
	var track Track
	if err := c.get(ctx, "/v1/tracks/"+trackID, nil, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// get performs an authorized GET and decodes the JSON body into out.
// A non-200 status becomes an UpstreamError carrying status and body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if c.accessToken == "" {
		return &AuthError{Reason: "no access token, call Authenticate first"}
	}

	reqURL := c.BaseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
