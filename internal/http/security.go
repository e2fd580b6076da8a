// ABOUTME: Hardened HTTP client for fetching manifests and package sources
// ABOUTME: Bounded timeouts on every phase plus a fixed User-Agent header

package http

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a whole request, body included.
const DefaultTimeout = 30 * time.Second

// UserAgent is sent with every request made through SecureHTTPClient.
var UserAgent = "clib/dev"

// SecureHTTPClient creates an HTTP client with per-phase timeouts so a stalled
// host cannot hang an install indefinitely.
func SecureHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			agent: UserAgent,
			next: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 10 * time.Second,
				IdleConnTimeout:       30 * time.Second,
				MaxIdleConns:          10,
				MaxIdleConnsPerHost:   4,
			},
		},
	}
}

// userAgentTransport sets User-Agent on requests that do not carry one.
type userAgentTransport struct {
	agent string
	next  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.agent)
	return t.next.RoundTrip(r)
}
