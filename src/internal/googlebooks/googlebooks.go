// Package googlebooks fetches single volume records from the Google Books API.
package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"citebook/src/internal/httpx"
	"citebook/src/internal/schema"
)

// DefaultEndpoint is the Books API volumes collection.
const DefaultEndpoint = "https://www.googleapis.com/books/v1/volumes"

const service = "googlebooks"

// ErrNoVolumeInfo is returned when a response decodes but lacks volumeInfo.
var ErrNoVolumeInfo = errors.New("googlebooks: response has no volumeInfo")

// Client fetches volumes by ID.
type Client struct {
	http     httpx.Doer
	endpoint string
	log      zerolog.Logger
}

// NewClient returns a Client. A nil Doer uses a default http.Client; an empty
// endpoint uses DefaultEndpoint.
func NewClient(c httpx.Doer, endpoint string, log zerolog.Logger) *Client {
	if c == nil {
		c = &http.Client{}
	}
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{http: c, endpoint: endpoint, log: log}
}

// URL returns the API URL for a volume ID.
func (c *Client) URL(volumeID string) string {
	return c.endpoint + "/" + url.PathEscape(volumeID)
}

// FetchVolume performs one GET for volumeID and returns the decoded volume
// together with the raw body. raw is also returned with ErrNoVolumeInfo so the
// response can still be inspected.
func (c *Client) FetchVolume(ctx context.Context, volumeID string) (schema.Volume, []byte, error) {
	u := c.URL(volumeID)
	c.log.Debug().Str("url", u).Msg("fetching volume")
	raw, err := httpx.Get(ctx, c.http, service, u, "application/json")
	if err != nil {
		return schema.Volume{}, nil, err
	}
	var v schema.Volume
	if err := json.Unmarshal(raw, &v); err != nil {
		return schema.Volume{}, nil, fmt.Errorf("googlebooks: decode volume: %w", err)
	}
	if v.VolumeInfo == nil {
		return schema.Volume{}, raw, ErrNoVolumeInfo
	}
	c.log.Debug().Str("title", v.VolumeInfo.Title).Int("bytes", len(raw)).Msg("volume received")
	return v, raw, nil
}
