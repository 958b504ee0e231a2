package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MinImageBytes guards against 1x1 tracking pixels and HTML "access denied"
// pages mislabeled as images.
const MinImageBytes = 256

// defaultProxies are external image-rewriting mirrors, tried in order after
// every direct strategy fails. Each is a printf pattern receiving the
// URL-encoded bare host+path; the mirrors re-encode to a normalized format.
var defaultProxies = []string{
	"https://images.weserv.nl/?url=%s&output=jpg",
	"https://wsrv.nl/?url=%s&output=jpg",
}

// Result is a successfully fetched image body.
type Result struct {
	Body        []byte
	ContentType string
}

// Fetcher retrieves remote product images from unreliable or protected vendor
// hosts. Every attempt is bounded by AttemptTimeout; hosts are throttled with
// a shared per-host rate limiter so concurrent workers stay polite.
type Fetcher struct {
	Client         *http.Client
	AttemptTimeout time.Duration
	Proxies        []string

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewFetcher creates an image fetcher with default timeouts and proxy mirrors.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		AttemptTimeout: 10 * time.Second,
		Proxies:        defaultProxies,
		limiters:       make(map[string]*rate.Limiter),
	}
}

// Fetch resolves a candidate URL to image bytes, trying strategies in strict
// order and stopping at the first success:
//
//  1. direct fetch once per header profile
//  2. the same profile sequence against the URL with its query stripped
//  3. proxy mirrors under a single generic profile
//
// Exhaustion returns an error; the caller treats it as per-item recoverable.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	profiles := ProfilesFor(rawURL)

	if res := f.tryProfiles(ctx, rawURL, profiles); res != nil {
		return res, nil
	}

	// Some hosts reject signed/expiring query parameters in automated
	// contexts but serve the bare path fine.
	if stripped, ok := stripQuery(rawURL); ok {
		if res := f.tryProfiles(ctx, stripped, profiles); res != nil {
			return res, nil
		}
	}

	for _, proxyURL := range f.proxyURLs(rawURL) {
		if res := f.attempt(ctx, proxyURL, baseProfiles[0]); res != nil {
			slog.Debug("Fetched image via proxy", "url", rawURL, "proxy", proxyURL)
			return res, nil
		}
	}

	return nil, fmt.Errorf("all fetch strategies exhausted for %s", rawURL)
}

func (f *Fetcher) tryProfiles(ctx context.Context, rawURL string, profiles []Profile) *Result {
	for _, p := range profiles {
		if res := f.attempt(ctx, rawURL, p); res != nil {
			slog.Debug("Fetched image", "url", rawURL, "profile", p.Name)
			return res
		}
	}
	return nil
}

// attempt issues one bounded request under one profile. Any failure (bad
// status, non-image content type, undersized body, timeout) returns nil and
// the caller advances to the next strategy.
func (f *Fetcher) attempt(ctx context.Context, rawURL string, p Profile) *Result {
	attemptCtx, cancel := context.WithTimeout(ctx, f.AttemptTimeout)
	defer cancel()

	if err := f.limiterFor(rawURL).Wait(attemptCtx); err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", p.UserAgent)
	if p.Referer != "" {
		req.Header.Set("Referer", p.Referer)
	}
	if p.Accept != "" {
		req.Header.Set("Accept", p.Accept)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "image") {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	if len(body) < MinImageBytes {
		return nil
	}

	return &Result{Body: body, ContentType: contentType}
}

func (f *Fetcher) limiterFor(rawURL string) *rate.Limiter {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.limiters == nil {
		f.limiters = make(map[string]*rate.Limiter)
	}
	limiter, ok := f.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(10), 5)
		f.limiters[host] = limiter
	}
	return limiter
}

// proxyURLs builds the mirror URLs for a candidate: bare host+path,
// URL-encoded into each proxy pattern.
func (f *Fetcher) proxyURLs(rawURL string) []string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil
	}
	bare := url.QueryEscape(u.Host + u.Path)

	out := make([]string, 0, len(f.Proxies))
	for _, pattern := range f.Proxies {
		out = append(out, fmt.Sprintf(pattern, bare))
	}
	return out
}

func stripQuery(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.RawQuery == "" {
		return rawURL, false
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), true
}
