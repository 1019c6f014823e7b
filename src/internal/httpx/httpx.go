package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Doer is the minimal HTTP client interface used across packages.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultUA identifies citebook on outbound requests.
const DefaultUA = "citebook/1.0"

// maxErrorBody caps how much of an upstream error body is kept.
const maxErrorBody = 4096

// SetUA sets the default User-Agent header on the request.
func SetUA(req *http.Request) {
	if req != nil {
		req.Header.Set("User-Agent", DefaultUA)
	}
}

type uaDoer struct {
	next Doer
	ua   string
}

func (d uaDoer) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", d.ua)
	return d.next.Do(req)
}

// WithUserAgent wraps d so every request carries ua. A blank ua returns d unchanged.
func WithUserAgent(d Doer, ua string) Doer {
	ua = strings.TrimSpace(ua)
	if ua == "" || ua == DefaultUA {
		return d
	}
	return uaDoer{next: d, ua: ua}
}

// StatusError reports a non-success response from an upstream API.
type StatusError struct {
	Service    string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s: http %d: %s", e.Service, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s: http %d: %s", e.Service, e.StatusCode, body)
}

// Get issues a single GET with the given Accept header and returns the raw body.
// Any status outside 2xx yields a *StatusError carrying the start of the body.
func Get(ctx context.Context, c Doer, service, u, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	SetUA(req)
	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", service, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Service: service, URL: u, StatusCode: resp.StatusCode, Body: string(b)}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", service, err)
	}
	return b, nil
}
