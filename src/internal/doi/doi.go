package doi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"citebook/src/internal/httpx"
	"citebook/src/internal/schema"
)

// DefaultResolver is the DOI registry used for content negotiation.
const DefaultResolver = "https://doi.org"

// CSLMediaType asks the registry for CSL-JSON.
const CSLMediaType = "application/vnd.citationstyles.csl+json"

const service = "doi"

// Client resolves DOIs to CSL-JSON metadata.
type Client struct {
	http     httpx.Doer
	resolver string
	log      zerolog.Logger
}

// NewClient returns a Client. A nil Doer uses a default http.Client; an empty
// resolver uses DefaultResolver.
func NewClient(c httpx.Doer, resolver string, log zerolog.Logger) *Client {
	if c == nil {
		c = &http.Client{}
	}
	resolver = strings.TrimRight(strings.TrimSpace(resolver), "/")
	if resolver == "" {
		resolver = DefaultResolver
	}
	return &Client{http: c, resolver: resolver, log: log}
}

// URL returns the resolver URL for doi.
func (c *Client) URL(doi string) string {
	return c.resolver + "/" + escapeDOI(strings.TrimSpace(doi))
}

// FetchWork performs one GET against the resolver with CSL content negotiation.
// It returns the decoded record and the raw body; raw is nil unless the body
// was valid CSL-JSON.
func (c *Client) FetchWork(ctx context.Context, doi string) (schema.Work, []byte, error) {
	u := c.URL(doi)
	c.log.Debug().Str("url", u).Msg("fetching doi metadata")
	raw, err := httpx.Get(ctx, c.http, service, u, CSLMediaType)
	if err != nil {
		return schema.Work{}, nil, err
	}
	var w schema.Work
	if err := json.Unmarshal(raw, &w); err != nil {
		return schema.Work{}, nil, fmt.Errorf("doi: decode csl-json: %w", err)
	}
	c.log.Debug().Str("type", w.Type).Int("bytes", len(raw)).Msg("doi metadata received")
	return w, raw, nil
}

// escapeDOI percent-encodes characters that would otherwise end the path,
// leaving the slash-separated DOI structure intact.
func escapeDOI(doi string) string {
	segs := strings.Split(doi, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
